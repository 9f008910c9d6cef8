//go:build !amd64

package tick

import "time"

func newTSCSpin(remaining time.Duration) (Deadline, bool) { return nil, false }
