package camera

import (
	"time"

	"hoodatlas/internal/debug"
	"hoodatlas/internal/geo"
)

// FlightPlan describes one camera transition. Built once per flight request,
// read on every frame, discarded on completion or preemption.
type FlightPlan struct {
	Start    ViewportState
	Target   ViewportState
	Duration time.Duration
	// CruiseZoom is the zoomed-out midpoint of the parabolic arc
	CruiseZoom float64
	// Arc enables the pull-back-then-dive-in zoom profile. Short hops turn
	// it off and blend zoom directly instead.
	Arc       bool
	StartTime time.Time
}

type flightState int

const (
	flightFlying flightState = iota
	flightCompleted
	flightCancelled
)

// flight is the single in-progress animation. It doubles as the cancellation
// handle: a scheduled frame that finds its flight no longer current exits
// without touching the camera.
type flight struct {
	plan       FlightPlan
	state      flightState
	onComplete func()
}

// Animator owns the one active camera transition. Starting a new flight
// cancels the previous one synchronously, before the first new frame is
// scheduled, so two flights never interleave.
type Animator struct {
	handle  MapHandle
	sched   Scheduler
	now     func() time.Time
	current *flight
}

// NewAnimator creates an animator driving the given map handle
func NewAnimator(handle MapHandle, sched Scheduler) *Animator {
	return &Animator{
		handle: handle,
		sched:  sched,
		now:    time.Now,
	}
}

// Start begins a flight, preempting any flight in progress.
// onStart fires before the first frame; onComplete fires once the camera has
// settled on the target pose. A preempted flight's onComplete never fires.
func (a *Animator) Start(plan FlightPlan, onStart, onComplete func()) {
	a.Cancel()

	plan.StartTime = a.now()
	f := &flight{plan: plan, onComplete: onComplete}
	a.current = f

	if onStart != nil {
		onStart()
	}

	a.sched.Schedule(func() { a.tick(f) })
}

// Cancel stops the active flight without moving the camera; it freezes
// wherever the last tick left it. No-op when nothing is flying.
func (a *Animator) Cancel() {
	if a.current != nil && a.current.state == flightFlying {
		a.current.state = flightCancelled
		debug.Log("camera: flight cancelled at %.0f%%", a.progress(a.current)*100)
	}
	a.current = nil
}

// Flying reports whether a flight is in progress
func (a *Animator) Flying() bool {
	return a.current != nil && a.current.state == flightFlying
}

func (a *Animator) progress(f *flight) float64 {
	if f.plan.Duration <= 0 {
		return 1
	}
	elapsed := a.now().Sub(f.plan.StartTime)
	return clamp01(float64(elapsed) / float64(f.plan.Duration))
}

// tick advances one animation frame. Cooperative cancellation: a frame
// belonging to a preempted flight returns without applying state.
func (a *Animator) tick(f *flight) {
	if f.state != flightFlying || a.current != f {
		return
	}

	t := a.progress(f)
	a.handle.MoveTo(a.poseAt(f.plan, t))

	if t >= 1 {
		f.state = flightCompleted
		a.current = nil
		if f.onComplete != nil {
			f.onComplete()
		}
		return
	}

	a.sched.Schedule(func() { a.tick(f) })
}

// poseAt interpolates the camera pose at progress t in [0, 1]
func (a *Animator) poseAt(plan FlightPlan, t float64) ViewportState {
	eased := easeInOutCubic(t)
	center := geo.Point{
		Lat: lerp(plan.Start.Center.Lat, plan.Target.Center.Lat, eased),
		Lng: lerp(plan.Start.Center.Lng, plan.Target.Center.Lng, eased),
	}

	return ViewportState{Center: center, Zoom: a.zoomAt(plan, t)}
}

// zoomAt blends zoom either directly (short hops) or along the parabolic
// arc: ease out to the cruise zoom over the first half, ease back in to the
// target over the second
func (a *Animator) zoomAt(plan FlightPlan, t float64) float64 {
	if !plan.Arc {
		return lerp(plan.Start.Zoom, plan.Target.Zoom, easeInOutCubic(t))
	}

	if t < 0.5 {
		return lerp(plan.Start.Zoom, plan.CruiseZoom, easeOutQuad(t*2))
	}
	return lerp(plan.CruiseZoom, plan.Target.Zoom, easeInQuad(t*2-1))
}
