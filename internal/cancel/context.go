package cancel

import "context"

// ContextCanceler wraps context.Context for cancellation signaling.
//
// The PrecisionTask façade owns one of these per instance: Cancel makes
// the wrapped context Done, which is how a task function selecting on its
// context observes Dispose. Each call to Done() performs a non-blocking
// select on ctx.Done(), which carries channel overhead; hot polling paths
// use AtomicCanceler instead.
type ContextCanceler struct {
	ctx    context.Context
	cancel context.CancelFunc
}

// NewContext creates a ContextCanceler from a parent context.
func NewContext(parent context.Context) *ContextCanceler {
	ctx, cancel := context.WithCancel(parent)
	return &ContextCanceler{
		ctx:    ctx,
		cancel: cancel,
	}
}

// Done returns true if the context has been cancelled.
//
// This performs a non-blocking select on ctx.Done().
func (c *ContextCanceler) Done() bool {
	select {
	case <-c.ctx.Done():
		return true
	default:
		return false
	}
}

// Cancel triggers cancellation of the context.
func (c *ContextCanceler) Cancel() {
	c.cancel()
}

// Context returns the underlying context.Context, which task functions
// receive so they can watch cancellation the idiomatic way.
func (c *ContextCanceler) Context() context.Context {
	return c.ctx
}
