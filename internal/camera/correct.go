package camera

import (
	"math"

	"hoodatlas/internal/debug"
	"hoodatlas/internal/geo"
)

// Strategy selects how the correction loop fixes residual centering error
// once the real card height is known
type Strategy int

const (
	// Recompute redoes the full offset formula with the measured card
	// height and re-centers directly
	Recompute Strategy = iota
	// MicroCorrect nudges the center by half the measured top/bottom
	// padding imbalance, clamped to a small maximum. Cheaper and
	// jitter-free when the estimate was already close.
	MicroCorrect
)

// CorrectionResult reports what the correction loop did
type CorrectionResult int

const (
	// Corrected means the center was nudged
	Corrected CorrectionResult = iota
	// AlreadyCentered means the discrepancy was below the threshold
	AlreadyCentered
	// GaveUp means the card never became measurable within the retry
	// budget; the estimate-based position stands
	GaveUp
)

// CorrectCentering refines the pose after a flight settles and a card opens.
// The pre-flight offset used an estimated card height; this measures the
// real one and fixes the difference. Rendering isn't guaranteed on the first
// frame after insertion, so the measurement is polled across frames up to
// the retry budget. Exceeding the budget is non-fatal.
func (e *Engine) CorrectCentering(anchor geo.Point, measurer OverlayMeasurer, strategy Strategy, done func(CorrectionResult)) {
	if e.handle == nil || measurer == nil {
		debug.Log("camera: correction with no handle or measurer, ignoring")
		if done != nil {
			done(GaveUp)
		}
		return
	}

	attempts := 0
	var poll func()
	poll = func() {
		cardHeight, ok := measurer.OverlayHeight()
		if !ok {
			attempts++
			if attempts >= e.tuning.MeasureRetries {
				debug.Log("camera: card never measurable after %d attempts, keeping estimate", attempts)
				if done != nil {
					done(GaveUp)
				}
				return
			}
			e.sched.Schedule(poll)
			return
		}

		var result CorrectionResult
		switch strategy {
		case MicroCorrect:
			result = e.microCorrect(anchor, cardHeight)
		default:
			result = e.recompute(anchor, cardHeight)
		}
		if done != nil {
			done(result)
		}
	}

	e.sched.Schedule(poll)
}

// recompute runs the offset formula with the measured card height and moves
// straight to the corrected pose
func (e *Engine) recompute(anchor geo.Point, cardHeight int) CorrectionResult {
	state := e.handle.Camera()
	w, h := e.sizer.ViewportSize()

	cfg := OffsetConfig{
		ViewportWidth:      w,
		ViewportHeight:     h,
		CardHeightEstimate: cardHeight,
		TailHeight:         e.tuning.TailHeight,
		MarkerRadius:       e.tuning.MarkerRadius,
		DisclaimerHeight:   e.tuning.DisclaimerHeight,
	}
	offsetPx := ComputeOffset(cfg, e.tuning, e.overrides)

	desired := geo.Point{
		Lat: geo.OffsetLatByPixels(anchor.Lat, float64(offsetPx), state.Zoom),
		Lng: anchor.Lng,
	}

	// Residual error in screen pixels between where the center is and
	// where the measured height says it should be
	pixelsPerRadian := geo.WorldPixels(state.Zoom) / (2 * math.Pi)
	deltaPx := (geo.LatToMercatorY(desired.Lat) - geo.LatToMercatorY(state.Center.Lat)) * pixelsPerRadian

	if math.Abs(deltaPx) < float64(e.tuning.CorrectionThresholdPx) {
		debug.Log("camera: recompute residual %.1fpx, already centered", deltaPx)
		return AlreadyCentered
	}

	debug.Log("camera: recompute correcting %.1fpx (measured card %dpx)", deltaPx, cardHeight)
	e.handle.MoveTo(ViewportState{Center: desired, Zoom: state.Zoom})
	e.appliedOffsetPx = offsetPx
	return Corrected
}

// microCorrect balances the measured padding above the card against the
// padding below the marker and nudges the center by half the difference
func (e *Engine) microCorrect(anchor geo.Point, cardHeight int) CorrectionResult {
	state := e.handle.Camera()
	_, viewH := e.sizer.ViewportSize()

	_, markerY := e.handle.ScreenPosition(anchor)

	topPad := markerY - float64(e.tuning.TailHeight) - float64(cardHeight)
	bottomPad := float64(viewH) - (markerY + float64(e.tuning.MarkerRadius))

	nudge := (bottomPad - topPad) / 2
	clampPx := float64(e.tuning.CorrectionClampPx)
	if nudge > clampPx {
		nudge = clampPx
	}
	if nudge < -clampPx {
		nudge = -clampPx
	}

	if math.Abs(nudge) < float64(e.tuning.CorrectionThresholdPx) {
		debug.Log("camera: micro-correct imbalance %.1fpx, already centered", nudge)
		return AlreadyCentered
	}

	debug.Log("camera: micro-correct nudging %.1fpx (top %.0f, bottom %.0f)", nudge, topPad, bottomPad)
	center := geo.Point{
		Lat: geo.OffsetLatByPixels(state.Center.Lat, nudge, state.Zoom),
		Lng: state.Center.Lng,
	}
	e.handle.MoveTo(ViewportState{Center: center, Zoom: state.Zoom})
	e.appliedOffsetPx += int(math.Round(nudge))
	return Corrected
}
