package ui

// frameScheduler queues callbacks for the next frame of the app's paint
// loop. The camera engine schedules its animation ticks through it, which
// keeps all camera writes on the UI goroutine.
type frameScheduler struct {
	pending []func()
}

// Schedule queues fn for the next frame
func (s *frameScheduler) Schedule(fn func()) {
	s.pending = append(s.pending, fn)
}

// RunFrame runs everything scheduled so far. Callbacks scheduled while the
// frame runs land in the next frame, not this one; an animation tick that
// reschedules itself must not run twice per frame.
func (s *frameScheduler) RunFrame() {
	fns := s.pending
	s.pending = nil
	for _, fn := range fns {
		fn()
	}
}

// Pending reports whether any callbacks are queued
func (s *frameScheduler) Pending() bool {
	return len(s.pending) > 0
}
