package precisionloop

import "github.com/latticert/precisionloop/internal/loopstate"

// CycleEvent is the immutable-to-the-caller per-cycle snapshot handed to
// every façade's cycle function. Its fields are
// populated by the driver before the cycle function runs; IsStopRequested
// is the one field the cycle function may set, read back by the driver
// once the cycle function returns.
type CycleEvent = loopstate.CycleEvent
