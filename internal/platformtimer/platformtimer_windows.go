//go:build windows

package platformtimer

import (
	"fmt"
	"sync"
	"syscall"

	"golang.org/x/sys/windows"
)

// winmmService talks to winmm.dll's multimedia timer API through
// golang.org/x/sys/windows's LazyDLL wrapper.
type winmmService struct {
	dll               *windows.LazyDLL
	procTimeBeginPd   *windows.LazyProc
	procTimeEndPd     *windows.LazyProc
	procTimeSetEvent  *windows.LazyProc
	procTimeKillEvent *windows.LazyProc

	mu       sync.Mutex
	callback uintptr
	pending  map[ID]uintptr // ID -> MMRESULT timer handle
	nextID   int64
}

// New returns the Windows platform timer service.
func New() Service {
	dll := windows.NewLazySystemDLL("winmm.dll")
	return &winmmService{
		dll:               dll,
		procTimeBeginPd:   dll.NewProc("timeBeginPeriod"),
		procTimeEndPd:     dll.NewProc("timeEndPeriod"),
		procTimeSetEvent:  dll.NewProc("timeSetEvent"),
		procTimeKillEvent: dll.NewProc("timeKillEvent"),
		pending:           make(map[ID]uintptr),
	}
}

// MinPeriod reports 1ms: winmm's multimedia timers guarantee 1ms resolution
// once timeBeginPeriod(1) has been requested.
func (w *winmmService) MinPeriod() int { return 1 }

func (w *winmmService) BeginPeriod(ms int) error {
	ret, _, _ := w.procTimeBeginPd.Call(uintptr(ms))
	if ret != 0 {
		return fmt.Errorf("platformtimer: timeBeginPeriod(%d) failed, code %d", ms, ret)
	}
	return nil
}

func (w *winmmService) EndPeriod(ms int) error {
	ret, _, _ := w.procTimeEndPd.Call(uintptr(ms))
	if ret != 0 {
		return fmt.Errorf("platformtimer: timeEndPeriod(%d) failed, code %d", ms, ret)
	}
	return nil
}

func (w *winmmService) ScheduleOneShot(delayMs int, fn func()) (ID, error) {
	w.mu.Lock()
	w.nextID++
	id := ID(w.nextID)
	w.mu.Unlock()

	// TIME_ONESHOT = 0, TIME_CALLBACK_FUNCTION = 0
	cb := syscall.NewCallback(func(uTimerID, uMsg uintptr, dwUser, dw1, dw2 uintptr) uintptr {
		fn()
		return 0
	})

	ret, _, _ := w.procTimeSetEvent.Call(
		uintptr(delayMs), uintptr(0), cb, uintptr(0), uintptr(0),
	)
	if ret == 0 {
		return 0, &ScheduleError{Err: fmt.Errorf("platformtimer: timeSetEvent failed")}
	}

	w.mu.Lock()
	w.pending[id] = ret
	w.mu.Unlock()
	return id, nil
}

func (w *winmmService) Cancel(id ID) error {
	w.mu.Lock()
	handle, ok := w.pending[id]
	delete(w.pending, id)
	w.mu.Unlock()
	if !ok {
		return nil
	}
	w.procTimeKillEvent.Call(handle)
	return nil
}
