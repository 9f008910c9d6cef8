package precisionloop_test

import (
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/latticert/precisionloop"
)

// TestPrecisionThread_StartDisposeResolvesWaitForExit checks that
// Start followed by immediate Dispose always resolves WaitForExit
// successfully and invokes the finished hook exactly once.
func TestPrecisionThread_StartDisposeResolvesWaitForExit(t *testing.T) {
	var finished atomic.Int32

	thread, err := precisionloop.NewPrecisionThread(func(ev *precisionloop.CycleEvent) error {
		return nil
	}, precisionloop.FromMilliseconds(1), precisionloop.WithFinishedHook(func(exitErr error) {
		finished.Add(1)
	}))
	if err != nil {
		t.Fatalf("NewPrecisionThread: %v", err)
	}

	if err := thread.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	thread.Dispose()

	if err := thread.WaitForExit(); err != nil {
		t.Fatalf("WaitForExit = %v, want nil", err)
	}
	if got := finished.Load(); got != 1 {
		t.Fatalf("finished hook called %d times, want exactly 1", got)
	}
}

// TestPrecisionThread_StartTwice_ReturnsAlreadyStarted exercises the
// lifecycle state machine at the façade surface.
func TestPrecisionThread_StartTwice_ReturnsAlreadyStarted(t *testing.T) {
	thread, err := precisionloop.NewPrecisionThread(func(ev *precisionloop.CycleEvent) error {
		ev.IsStopRequested = true
		return nil
	}, precisionloop.FromMilliseconds(1))
	if err != nil {
		t.Fatalf("NewPrecisionThread: %v", err)
	}
	if err := thread.Start(); err != nil {
		t.Fatalf("first Start: %v", err)
	}
	if err := thread.Start(); err != precisionloop.ErrAlreadyStarted {
		t.Errorf("second Start = %v, want ErrAlreadyStarted", err)
	}
	thread.Dispose()
	thread.WaitForExit()
}

// TestPrecisionThread_StopFlag_EndsRun checks that the cycle function
// setting IsStopRequested ends the run (WaitForExit resolves within two
// seconds), with no further cycles observed afterward.
func TestPrecisionThread_StopFlag_EndsRun(t *testing.T) {
	var count atomic.Int64

	thread, err := precisionloop.NewPrecisionThread(func(ev *precisionloop.CycleEvent) error {
		n := count.Add(1)
		if n >= 5 {
			ev.IsStopRequested = true
		}
		return nil
	}, precisionloop.FromMilliseconds(2))
	if err != nil {
		t.Fatalf("NewPrecisionThread: %v", err)
	}
	if err := thread.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}

	select {
	case <-waitFor(thread):
	case <-time.After(2 * time.Second):
		t.Fatal("WaitForExit did not resolve after stop flag was set")
	}

	if got := count.Load(); got != 5 {
		t.Errorf("cycle function invoked %d times, want exactly 5", got)
	}
}

func waitFor(thread *precisionloop.PrecisionThread) <-chan struct{} {
	done := make(chan struct{})
	go func() {
		thread.WaitForExit()
		close(done)
	}()
	return done
}

// TestPrecisionThread_UserCycleError_StopsByDefault checks that a
// cycle function error with no failure hook installed stops the loop and
// surfaces a *UserCycleError from WaitForExit.
func TestPrecisionThread_UserCycleError_StopsByDefault(t *testing.T) {
	boom := errTestBoom{}
	thread, err := precisionloop.NewPrecisionThread(func(ev *precisionloop.CycleEvent) error {
		return boom
	}, precisionloop.FromMilliseconds(1))
	if err != nil {
		t.Fatalf("NewPrecisionThread: %v", err)
	}
	if err := thread.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}

	err = thread.WaitForExit()
	var ucErr *precisionloop.UserCycleError
	if !errors.As(err, &ucErr) {
		t.Fatalf("WaitForExit = %v, want *UserCycleError", err)
	}
	if !errors.Is(ucErr, boom) {
		t.Errorf("UserCycleError does not unwrap to the original cause")
	}
}

type errTestBoom struct{}

func (errTestBoom) Error() string { return "boom" }
