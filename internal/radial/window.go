package radial

// Window is a fixed-size history of the most recent values.
// The first push fills every slot so a fresh window reflects the first sample.
type Window[T any] struct {
	buf    []T
	head   int
	filled bool
}

// NewWindow allocates a window holding size values. size must be at least 1.
func NewWindow[T any](size int) *Window[T] {
	if size < 1 {
		panic("radial: window size must be >= 1")
	}
	return &Window[T]{buf: make([]T, size)}
}

// Push drops the oldest value and appends v.
func (w *Window[T]) Push(v T) {
	if !w.filled {
		for i := range w.buf {
			w.buf[i] = v
		}
		w.filled = true
		return
	}
	w.buf[w.head] = v
	w.head = (w.head + 1) % len(w.buf)
}

// Oldest returns the value pushed size-1 frames ago.
func (w *Window[T]) Oldest() T {
	return w.buf[w.head]
}

// Reset clears the history; the next push fills the window again.
func (w *Window[T]) Reset() {
	var zero T
	for i := range w.buf {
		w.buf[i] = zero
	}
	w.head = 0
	w.filled = false
}

// AnyTrue reports whether any value in the window is true.
func AnyTrue(w *Window[bool]) bool {
	for _, v := range w.buf {
		if v {
			return true
		}
	}
	return false
}
