package halftone

import "sync/atomic"

// Progress scale used by filter passes. The upstream render is mapped onto
// the first 95% of the range.
const (
	ProgressTotal    = 10000
	upstreamProgress = 9500
)

// ProgressCallback receives progress reports from a render pass.
// AmountComplete returns false to ask the pass to stop.
type ProgressCallback interface {
	AmountComplete(done, total int) bool
}

// ProgressFunc adapts a function to ProgressCallback.
type ProgressFunc func(done, total int) bool

// AmountComplete calls f(done, total).
func (f ProgressFunc) AmountComplete(done, total int) bool {
	return f(done, total)
}

// report forwards to cb, treating a nil callback as "continue".
func report(cb ProgressCallback, done, total int) bool {
	if cb == nil {
		return true
	}
	return cb.AmountComplete(done, total)
}

// SuperCallback maps the progress of a sub-task onto the range
// [start, end] of a parent callback's total.
//
// Once the parent asks to stop, every later report returns false and
// Aborted reports true, even when the sub-task ignores the return value.
type SuperCallback struct {
	parent     ProgressCallback
	start, end int
	total      int
	aborted    atomic.Bool
}

// NewSuperCallback returns a callback reporting into [start, end] of total
// on parent. A nil parent is allowed.
func NewSuperCallback(parent ProgressCallback, start, end, total int) *SuperCallback {
	return &SuperCallback{parent: parent, start: start, end: end, total: total}
}

// AmountComplete implements ProgressCallback.
func (s *SuperCallback) AmountComplete(done, total int) bool {
	if s.aborted.Load() {
		return false
	}
	if s.parent == nil {
		return true
	}

	mapped := s.start
	if total > 0 {
		mapped += int(int64(done) * int64(s.end-s.start) / int64(total))
	}
	if !s.parent.AmountComplete(mapped, s.total) {
		s.aborted.Store(true)
		return false
	}
	return true
}

// Aborted reports whether the parent callback has asked to stop.
func (s *SuperCallback) Aborted() bool {
	return s.aborted.Load()
}
