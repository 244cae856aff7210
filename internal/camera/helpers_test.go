package camera

import (
	"math"
	"time"

	"hoodatlas/internal/config"
	"hoodatlas/internal/geo"
)

func defaultTestTuning() config.Tuning {
	return config.Default()
}

// fakeHandle is a map widget stand-in that applies poses instantly and
// projects screen positions with the same Mercator math the real host uses.
type fakeHandle struct {
	state ViewportState
	viewW int
	viewH int
	moves int
}

func (h *fakeHandle) Camera() ViewportState { return h.state }

func (h *fakeHandle) MoveTo(state ViewportState) {
	h.state = state
	h.moves++
}

func (h *fakeHandle) ScreenPosition(p geo.Point) (x, y float64) {
	world := geo.WorldPixels(h.state.Zoom)
	wx := func(lng float64) float64 { return world * (lng + 180) / 360 }
	wy := func(lat float64) float64 { return world * (0.5 - geo.LatToMercatorY(lat)/(2*math.Pi)) }

	x = wx(p.Lng) - wx(h.state.Center.Lng) + float64(h.viewW)/2
	y = wy(p.Lat) - wy(h.state.Center.Lat) + float64(h.viewH)/2
	return x, y
}

type fakeSizer struct {
	w, h int
}

func (s *fakeSizer) ViewportSize() (int, int) { return s.w, s.h }

// fakeScheduler queues callbacks and runs them one frame at a time.
// Callbacks scheduled during a frame land in the next one.
type fakeScheduler struct {
	queue []func()
}

func (s *fakeScheduler) Schedule(fn func()) {
	s.queue = append(s.queue, fn)
}

func (s *fakeScheduler) runFrame() {
	frame := s.queue
	s.queue = nil
	for _, fn := range frame {
		fn()
	}
}

func (s *fakeScheduler) pending() int { return len(s.queue) }

type fakeClock struct {
	t time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{t: time.Date(2026, 1, 15, 12, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) now() time.Time { return c.t }

func (c *fakeClock) advance(d time.Duration) { c.t = c.t.Add(d) }

// testRig bundles the fakes behind an engine the way the terminal app
// wires them up.
type testRig struct {
	handle *fakeHandle
	sizer  *fakeSizer
	sched  *fakeScheduler
	clock  *fakeClock
	engine *Engine
}

func newTestRig(start ViewportState, opts ...Option) *testRig {
	r := &testRig{
		handle: &fakeHandle{state: start, viewW: 1000, viewH: 800},
		sizer:  &fakeSizer{w: 1000, h: 800},
		sched:  &fakeScheduler{},
		clock:  newFakeClock(),
	}
	opts = append(opts, WithClock(r.clock.now))
	r.engine = New(r.handle, r.sizer, r.sched, defaultTestTuning(), opts...)
	return r
}

// step advances the clock and runs one scheduler frame
func (r *testRig) step(d time.Duration) {
	r.clock.advance(d)
	r.sched.runFrame()
}

// settle drives frames until no work is pending, bounded to catch
// runaway rescheduling
func (r *testRig) settle(frame time.Duration) {
	for i := 0; i < 1000 && r.sched.pending() > 0; i++ {
		r.step(frame)
	}
}
