package loopstate

import "github.com/latticert/precisionloop/internal/extent"

// window is the bounded FIFO of per-cycle elapsed samples: the newest W
// samples, oldest evicted first. It is a plain single-owner ring — State
// drives it from the one loop goroutine, so there is no producer/consumer
// split and no need for atomics, just evict-on-add semantics and a cheap
// oldest-first copy for the statistics pass.
type window struct {
	buf  []extent.Extent
	head int // index of the oldest sample
	n    int // number of queued samples
}

func newWindow(capacity int) *window {
	if capacity < 1 {
		capacity = 1
	}
	return &window{buf: make([]extent.Extent, capacity)}
}

// at returns the i-th queued sample, 0 being the oldest.
func (w *window) at(i int) extent.Extent {
	return w.buf[(w.head+i)%len(w.buf)]
}

// setCapacity resizes the window bound (W = max(T, ceil(1s/interval)),
// recomputed whenever the configured interval changes). Shrinking keeps
// only the newest samples; growing keeps everything.
func (w *window) setCapacity(capacity int) {
	if capacity < 1 {
		capacity = 1
	}
	if capacity == len(w.buf) {
		return
	}
	keep := w.n
	if keep > capacity {
		keep = capacity
	}
	buf := make([]extent.Extent, capacity)
	for i := 0; i < keep; i++ {
		buf[i] = w.at(w.n - keep + i)
	}
	w.buf, w.head, w.n = buf, 0, keep
}

// add enqueues sample, evicting the oldest if the window is full.
func (w *window) add(sample extent.Extent) {
	if w.n == len(w.buf) {
		w.buf[w.head] = sample
		w.head = (w.head + 1) % len(w.buf)
		return
	}
	w.buf[(w.head+w.n)%len(w.buf)] = sample
	w.n++
}

// len reports the current number of queued samples.
func (w *window) len() int { return w.n }

// samples returns every queued sample, oldest first.
func (w *window) samples() []extent.Extent {
	out := make([]extent.Extent, w.n)
	for i := range out {
		out[i] = w.at(i)
	}
	return out
}
