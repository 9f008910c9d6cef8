package loopdriver_test

import (
	"sync"
	"testing"

	"github.com/latticert/precisionloop/internal/extent"
	"github.com/latticert/precisionloop/internal/loopdriver"
	"github.com/latticert/precisionloop/internal/loopstate"
)

// TestDriver_StartDisposeRace drives Start and Dispose from concurrent
// goroutines and checks the
// mutex-guarded phase transition never leaves the driver stuck (exactly one
// of Start/Dispose wins the race, but WaitForExit always resolves).
// Run with: go test -race ./internal/loopdriver
func TestDriver_StartDisposeRace(t *testing.T) {
	for i := 0; i < 50; i++ {
		d, err := loopdriver.New(func(ev *loopstate.CycleEvent) error { return nil }, extent.FromMilliseconds(1))
		if err != nil {
			t.Fatalf("New: %v", err)
		}

		var wg sync.WaitGroup
		wg.Add(2)
		go func() {
			defer wg.Done()
			_ = d.Start()
		}()
		go func() {
			defer wg.Done()
			d.Dispose()
		}()
		wg.Wait()

		d.WaitForExit()
	}
}
