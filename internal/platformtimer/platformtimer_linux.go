//go:build linux

package platformtimer

import (
	"fmt"
	"sync"

	"golang.org/x/sys/unix"
)

// timerfdService schedules one-shot callbacks with Linux's timerfd API.
// Each scheduled callback gets its own timerfd, watched by a dedicated
// goroutine that blocks in unix.Read until the fd fires or Cancel closes
// it.
type timerfdService struct {
	mu      sync.Mutex
	nextID  int64
	pending map[ID]int // ID -> fd
}

// New returns the Linux platform timer service.
func New() Service {
	return &timerfdService{pending: make(map[ID]int)}
}

// MinPeriod reports 1ms. The CLOCK_MONOTONIC timerfd resolution on Linux is
// commonly sub-microsecond, but the precision delay's chunking only ever
// asks for ~1ms steps, so 1 is the honest floor to advertise.
func (t *timerfdService) MinPeriod() int { return 1 }

// BeginPeriod/EndPeriod are no-ops on Linux: there is no process-global
// interrupt-rate knob to raise the way Windows' winmm multimedia timer
// needs one. timerfd already delivers sub-millisecond one-shots without it.
func (t *timerfdService) BeginPeriod(ms int) error { return nil }
func (t *timerfdService) EndPeriod(ms int) error   { return nil }

func (t *timerfdService) ScheduleOneShot(delayMs int, fn func()) (ID, error) {
	fd, err := unix.TimerfdCreate(unix.CLOCK_MONOTONIC, 0)
	if err != nil {
		return 0, &ScheduleError{Err: fmt.Errorf("platformtimer: timerfd_create: %w", err)}
	}

	spec := unix.ItimerSpec{
		Value: unix.NsecToTimespec(int64(delayMs) * 1_000_000),
	}
	if err := unix.TimerfdSettime(fd, 0, &spec, nil); err != nil {
		unix.Close(fd)
		return 0, &ScheduleError{Err: fmt.Errorf("platformtimer: timerfd_settime: %w", err)}
	}

	t.mu.Lock()
	t.nextID++
	id := ID(t.nextID)
	t.pending[id] = fd
	t.mu.Unlock()

	go func() {
		buf := make([]byte, 8)
		_, err := unix.Read(fd, buf)
		t.mu.Lock()
		_, live := t.pending[id]
		delete(t.pending, id)
		t.mu.Unlock()
		if !live {
			// Cancel already removed the ID and closed the fd.
			return
		}
		if err == nil {
			fn()
		}
		unix.Close(fd)
	}()

	return id, nil
}

func (t *timerfdService) Cancel(id ID) error {
	t.mu.Lock()
	fd, ok := t.pending[id]
	delete(t.pending, id)
	t.mu.Unlock()
	if !ok {
		return nil
	}
	// Closing the fd does not interrupt a Read already blocked on it; that
	// Read returns when the timer expires, and the watcher goroutine then
	// finds the ID no longer pending and skips fn, so fn is never invoked
	// after Cancel returns.
	return unix.Close(fd)
}
