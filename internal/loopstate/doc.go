// Package loopstate implements the precision loop driver's per-cycle
// book-keeping: drift tracking, the rolling sample
// window, average/jitter statistics, and missed-cycle detection.
//
// State owns the mutable bookkeeping described in the data model as
// LoopState; CycleEvent is the immutable snapshot handed out to the user
// cycle function once per cycle. internal/loopdriver (C6) drives a State
// through one Update call per cycle, made after the user's cycle function
// and the internal/delay wait for the computed residual have both returned.
package loopstate
