//go:build amd64

package tick

import (
	"sync"
	"time"
)

// tscOnce/tscCyclesPerNs cache a single CalibrateTSC() call per process:
// the ~10ms calibration cost is fine to pay once at first use but not on
// every spin-wait.
var (
	tscOnce        sync.Once
	tscCyclesPerNs float64
)

func newTSCSpin(remaining time.Duration) (Deadline, bool) {
	tscOnce.Do(func() { tscCyclesPerNs = CalibrateTSC() })
	return NewTSCDeadline(remaining, tscCyclesPerNs), true
}
