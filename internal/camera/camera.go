// Package camera decides where the map should point, how it gets there, and
// how a marker lines up with the variable-height card opened above it.
// It owns no rendering; hosts plug in through the small interfaces below.
package camera

import (
	"math"
	"time"

	"hoodatlas/internal/config"
	"hoodatlas/internal/debug"
	"hoodatlas/internal/geo"
)

// ViewportState is a camera pose. The hosting map widget owns the live pose;
// the engine only reads it and requests changes, it never keeps its own copy
// as source of truth.
type ViewportState struct {
	Center geo.Point
	Zoom   float64
}

// MapHandle is the hosting map widget as the engine sees it
type MapHandle interface {
	// Camera returns the current pose
	Camera() ViewportState
	// MoveTo applies a pose synchronously
	MoveTo(state ViewportState)
	// ScreenPosition converts a geographic point to pixel coordinates
	// within the map container
	ScreenPosition(p geo.Point) (x, y float64)
}

// ViewportSizer reports the map container size in pixels. This must be the
// container, not the OS window; embedded hosts can be much smaller than the
// screen they sit on.
type ViewportSizer interface {
	ViewportSize() (w, h int)
}

// OverlayMeasurer reports the rendered height of the currently-open card,
// or ok=false while it has not been laid out yet
type OverlayMeasurer interface {
	OverlayHeight() (px int, ok bool)
}

// Scheduler runs a function on the host's next frame. The engine never owns
// a timer loop of its own, so tests can drive frames deterministically.
type Scheduler interface {
	Schedule(fn func())
}

// FlyOptions controls a single flight request
type FlyOptions struct {
	// ApplyOffset shifts the target center so the marker and its card are
	// jointly centered. Bounds-fit flights leave it off; there is no single
	// anchor card to make room for.
	ApplyOffset bool
	OnStart     func()
	OnComplete  func()
}

// Engine is the camera navigation engine. One engine serves one viewport;
// at most one flight is ever in progress.
type Engine struct {
	handle    MapHandle
	sizer     ViewportSizer
	sched     Scheduler
	tuning    config.Tuning
	overrides Overrides
	animator  *Animator

	// Pixel offset applied to the current pose, if any. Needed to measure
	// flight distance anchor-to-anchor instead of center-to-center.
	appliedOffsetPx int
}

// Option configures an Engine
type Option func(*Engine)

// WithOverrides installs debug overrides that take precedence over
// computed values
func WithOverrides(o Overrides) Option {
	return func(e *Engine) { e.overrides = o }
}

// WithClock overrides the animator's time source
func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.animator.now = now }
}

// New creates a camera engine for the given host
func New(handle MapHandle, sizer ViewportSizer, sched Scheduler, tuning config.Tuning, opts ...Option) *Engine {
	e := &Engine{
		handle:   handle,
		sizer:    sizer,
		sched:    sched,
		tuning:   tuning,
		animator: NewAnimator(handle, sched),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// SetTuning swaps the tuning parameters. Takes effect on the next flight;
// a flight already in progress keeps the plan it was built with.
func (e *Engine) SetTuning(t config.Tuning) {
	e.tuning = t
}

// Tuning returns the tuning currently in effect
func (e *Engine) Tuning() config.Tuning {
	return e.tuning
}

// FlyTo animates the camera to the target point at the given zoom.
// A flight already in progress is cancelled before the new one starts.
func (e *Engine) FlyTo(target geo.Point, zoom float64, opts FlyOptions) {
	if e.handle == nil {
		debug.Log("camera: flyTo with no map handle, ignoring")
		return
	}

	target, zoom = e.applyOverrides(target, zoom)
	zoom = e.sanitizeZoom(zoom)
	if !target.Valid() || !target.Finite() {
		debug.Log("camera: flyTo target out of range (%.4f, %.4f), ignoring", target.Lat, target.Lng)
		return
	}

	offsetPx := 0
	if opts.ApplyOffset {
		offsetPx = e.computeOffset(zoom)
	}

	start := e.handle.Camera()

	// Tier selection compares visual anchors, not centers. Each pose's own
	// offset is removed first, otherwise the card height itself skews the
	// measured distance.
	startAnchor := geo.Point{
		Lat: geo.OffsetLatByPixels(start.Center.Lat, float64(-e.appliedOffsetPx), start.Zoom),
		Lng: start.Center.Lng,
	}
	anchorDist := geo.Distance(startAnchor, target)

	targetState := ViewportState{
		Center: geo.Point{
			Lat: geo.OffsetLatByPixels(target.Lat, float64(offsetPx), zoom),
			Lng: target.Lng,
		},
		Zoom: zoom,
	}

	plan := e.buildPlan(start, targetState, anchorDist)

	debug.Log("camera: flyTo (%.4f, %.4f) z%.1f dist=%.0fm dur=%dms arc=%v offset=%dpx",
		target.Lat, target.Lng, zoom, anchorDist, plan.Duration.Milliseconds(), plan.Arc, offsetPx)

	onComplete := opts.OnComplete
	e.animator.Start(plan, opts.OnStart, func() {
		e.appliedOffsetPx = offsetPx
		if onComplete != nil {
			onComplete()
		}
	})
}

// FitBounds flies to a pose that frames all the given points with padding.
// No offset is applied; bounds-fit views have no single anchor card.
func (e *Engine) FitBounds(points []geo.Point, paddingPx int, minZoom float64, opts FlyOptions) {
	if e.handle == nil {
		debug.Log("camera: fitBounds with no map handle, ignoring")
		return
	}
	if len(points) == 0 {
		debug.Log("camera: fitBounds with no points, ignoring")
		return
	}

	w, h := e.sizer.ViewportSize()
	state := FitBounds(points, w, h, paddingPx, minZoom, e.tuning)

	opts.ApplyOffset = false
	e.FlyTo(state.Center, state.Zoom, opts)
}

// Cancel stops the active flight, if any, freezing the camera wherever the
// last tick left it. Cancelling with no flight in progress is a no-op.
func (e *Engine) Cancel() {
	e.animator.Cancel()
}

// Flying reports whether a flight is in progress
func (e *Engine) Flying() bool {
	return e.animator.Flying()
}

// AppliedOffset returns the pixel offset baked into the current pose
func (e *Engine) AppliedOffset() int {
	return e.appliedOffsetPx
}

// computeOffset builds an OffsetConfig from live measurements and computes
// the centering offset for the upcoming card
func (e *Engine) computeOffset(zoom float64) int {
	w, h := e.sizer.ViewportSize()
	cfg := OffsetConfig{
		ViewportWidth:      w,
		ViewportHeight:     h,
		CardHeightEstimate: e.tuning.CardHeightForWidth(w),
		TailHeight:         e.tuning.TailHeight,
		MarkerRadius:       e.tuning.MarkerRadius,
		DisclaimerHeight:   e.tuning.DisclaimerHeight,
	}
	return ComputeOffset(cfg, e.tuning, e.overrides)
}

// applyOverrides substitutes explicit debug target overrides when present
func (e *Engine) applyOverrides(target geo.Point, zoom float64) (geo.Point, float64) {
	if e.overrides.Lat != nil && e.overrides.Lng != nil {
		target = geo.Point{Lat: *e.overrides.Lat, Lng: *e.overrides.Lng}
	}
	if e.overrides.Zoom != nil {
		zoom = *e.overrides.Zoom
	}
	return target, zoom
}

// sanitizeZoom keeps non-finite or out-of-range zooms away from the host
func (e *Engine) sanitizeZoom(zoom float64) float64 {
	if math.IsNaN(zoom) || math.IsInf(zoom, 0) {
		debug.Log("camera: non-finite zoom, using fallback %.0f", e.tuning.FallbackZoom)
		return e.tuning.FallbackZoom
	}
	if zoom < e.tuning.MinZoom {
		return e.tuning.MinZoom
	}
	if zoom > e.tuning.MaxZoom {
		return e.tuning.MaxZoom
	}
	return zoom
}

// buildPlan derives duration and zoom arc from the anchor distance tiers
func (e *Engine) buildPlan(start, target ViewportState, anchorDist float64) FlightPlan {
	t := e.tuning

	var durationMs int
	switch {
	case anchorDist < t.DistanceNearM:
		durationMs = t.DurationNearMs
	case anchorDist < t.DistanceMidM:
		durationMs = t.DurationMidMs
	default:
		durationMs = t.DurationFarMs
	}

	// Short hops skip the parabolic arc; zooming out and back in over a
	// couple hundred meters reads as pumping, not travel.
	arc := anchorDist >= t.ShortHopM

	cruise := target.Zoom
	if arc {
		var depth float64
		switch {
		case anchorDist < t.ArcDistMidM:
			depth = t.ArcDepthNear
		case anchorDist < t.ArcDistFarM:
			depth = t.ArcDepthMid
		default:
			depth = t.ArcDepthFar
		}

		cruise = math.Min(start.Zoom, target.Zoom) - depth
		if cruise < t.CruiseZoomMinimum {
			cruise = t.CruiseZoomMinimum
		}

		// Already zoomed out past the target: don't dive further out than
		// one level below the shallower endpoint
		if start.Zoom >= target.Zoom {
			floor := math.Min(start.Zoom-1, target.Zoom-1)
			if cruise < floor {
				cruise = floor
			}
		}
	}

	return FlightPlan{
		Start:      start,
		Target:     target,
		Duration:   time.Duration(durationMs) * time.Millisecond,
		CruiseZoom: cruise,
		Arc:        arc,
	}
}
