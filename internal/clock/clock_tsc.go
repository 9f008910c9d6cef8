package clock

import (
	"sync"
	"time"

	"github.com/templexxx/tsc"

	"github.com/latticert/precisionloop/internal/extent"
)

// newTSCSource wires github.com/templexxx/tsc in as a Clock's raw tick
// source: check tsc.Supported(), calibrate once up front, then recalibrate
// on a timer in the background to track CPU frequency drift.
//
// ok is false when the platform doesn't support TSC; callers fall back to
// the runtime monotonic clock.
func newTSCSource(recalibrateEvery extent.Extent) (raw func() int64, closeFn func(), ok bool) {
	if !tsc.Supported() {
		return nil, nil, false
	}
	tsc.Calibrate()

	stop := make(chan struct{})
	done := make(chan struct{})

	if recalibrateEvery.IsPositive() {
		interval := recalibrateEvery.Duration()
		go func() {
			defer close(done)
			ticker := time.NewTicker(interval)
			defer ticker.Stop()
			for {
				select {
				case <-ticker.C:
					tsc.Calibrate()
				case <-stop:
					return
				}
			}
		}()
	} else {
		close(done)
	}

	var once sync.Once
	return tsc.UnixNano, func() {
		once.Do(func() {
			close(stop)
			<-done
		})
	}, true
}
