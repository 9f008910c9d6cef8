// Package loopdriver implements the precision loop driver: the state
// machine that runs the cycle — produce a CycleEvent snapshot, invoke the
// user's cycle function, delay for the residual computed by
// internal/loopstate, perform the statistics update — and that owns
// cancellation, user-error routing, and termination notification.
//
// Driver is deliberately variant-agnostic: the root precisionloop façade
// package layers PrecisionThread,
// PrecisionTimer, and PrecisionTask over the same Driver by supplying
// different CycleFunc adapters, rather than this package replicating the
// loop body three times.
package loopdriver
