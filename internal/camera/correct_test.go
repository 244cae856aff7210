package camera

import (
	"math"
	"testing"
	"time"

	"hoodatlas/internal/geo"
)

// fakeMeasurer reports not-yet-rendered for the first failFrames calls,
// then a fixed card height, like a card that lays out a few frames after
// insertion.
type fakeMeasurer struct {
	height     int
	failFrames int
	calls      int
}

func (m *fakeMeasurer) OverlayHeight() (int, bool) {
	m.calls++
	if m.calls <= m.failFrames {
		return 0, false
	}
	return m.height, true
}

// rigWithOffset positions the camera offsetPx north of the anchor, as a
// completed offset flight would leave it.
func rigWithOffset(anchor geo.Point, offsetPx int, zoom float64) *testRig {
	center := geo.Point{
		Lat: geo.OffsetLatByPixels(anchor.Lat, float64(offsetPx), zoom),
		Lng: anchor.Lng,
	}
	rig := newTestRig(ViewportState{Center: center, Zoom: zoom})
	rig.engine.appliedOffsetPx = offsetPx
	return rig
}

func runCorrection(t *testing.T, rig *testRig, anchor geo.Point, m OverlayMeasurer, s Strategy) CorrectionResult {
	t.Helper()

	var result CorrectionResult
	fired := 0
	rig.engine.CorrectCentering(anchor, m, s, func(r CorrectionResult) {
		result = r
		fired++
	})
	rig.settle(16 * time.Millisecond)

	if fired != 1 {
		t.Fatalf("done fired %d times, want 1", fired)
	}
	return result
}

func TestMicroCorrectNudgesAndConverges(t *testing.T) {
	anchor := geo.Point{Lat: 30.19, Lng: -85.67}

	// Estimate left the marker 10px off balance: card measured 280 in a
	// 800px viewport wants the center 136px north, camera sits at 126
	rig := rigWithOffset(anchor, 126, 15)
	m := &fakeMeasurer{height: 280}

	if got := runCorrection(t, rig, anchor, m, MicroCorrect); got != Corrected {
		t.Fatalf("first pass = %v, want Corrected", got)
	}
	if got := rig.engine.AppliedOffset(); got != 136 {
		t.Fatalf("applied offset after nudge = %d, want 136", got)
	}

	// The pose is now balanced: a second pass must not move anything
	moves := rig.handle.moves
	if got := runCorrection(t, rig, anchor, m, MicroCorrect); got != AlreadyCentered {
		t.Fatalf("second pass = %v, want AlreadyCentered", got)
	}
	if rig.handle.moves != moves {
		t.Fatal("AlreadyCentered must not move the camera")
	}
}

func TestMicroCorrectClampsLargeError(t *testing.T) {
	anchor := geo.Point{Lat: 30.19, Lng: -85.67}

	// No offset applied at all: the raw imbalance is 136px, far past the
	// clamp, so the nudge caps at CorrectionClampPx
	rig := rigWithOffset(anchor, 0, 15)
	m := &fakeMeasurer{height: 280}

	if got := runCorrection(t, rig, anchor, m, MicroCorrect); got != Corrected {
		t.Fatalf("result = %v, want Corrected", got)
	}

	clamp := rig.engine.Tuning().CorrectionClampPx
	if got := rig.engine.AppliedOffset(); got != clamp {
		t.Fatalf("applied offset = %d, want clamp %d", got, clamp)
	}
}

func TestRecomputeMovesToMeasuredOffset(t *testing.T) {
	anchor := geo.Point{Lat: 30.19, Lng: -85.67}

	rig := rigWithOffset(anchor, 0, 15)
	m := &fakeMeasurer{height: 280}

	if got := runCorrection(t, rig, anchor, m, Recompute); got != Corrected {
		t.Fatalf("first pass = %v, want Corrected", got)
	}

	// (280 + 12 - 20) / 2 for the measured height
	if got := rig.engine.AppliedOffset(); got != 136 {
		t.Fatalf("applied offset = %d, want 136", got)
	}

	wantLat := geo.OffsetLatByPixels(anchor.Lat, 136, 15)
	if got := rig.handle.state.Center.Lat; math.Abs(got-wantLat) > 1e-9 {
		t.Fatalf("center lat = %f, want %f", got, wantLat)
	}

	if got := runCorrection(t, rig, anchor, m, Recompute); got != AlreadyCentered {
		t.Fatalf("second pass = %v, want AlreadyCentered", got)
	}
}

func TestCorrectionWaitsForRender(t *testing.T) {
	anchor := geo.Point{Lat: 30.19, Lng: -85.67}
	rig := rigWithOffset(anchor, 0, 15)

	// Card becomes measurable on the sixth poll
	m := &fakeMeasurer{height: 280, failFrames: 5}
	if got := runCorrection(t, rig, anchor, m, Recompute); got != Corrected {
		t.Fatalf("result = %v, want Corrected once measurable", got)
	}
	if m.calls != 6 {
		t.Fatalf("measured %d times, want 6", m.calls)
	}
}

func TestCorrectionGivesUpAfterRetryBudget(t *testing.T) {
	anchor := geo.Point{Lat: 30.19, Lng: -85.67}
	rig := rigWithOffset(anchor, 50, 15)

	m := &fakeMeasurer{height: 280, failFrames: math.MaxInt32}
	if got := runCorrection(t, rig, anchor, m, MicroCorrect); got != GaveUp {
		t.Fatalf("result = %v, want GaveUp", got)
	}

	if m.calls != rig.engine.Tuning().MeasureRetries {
		t.Fatalf("polled %d times, want the %d retry budget", m.calls, rig.engine.Tuning().MeasureRetries)
	}
	if rig.handle.moves != 0 {
		t.Fatal("giving up must leave the estimate-based pose untouched")
	}
	if rig.engine.AppliedOffset() != 50 {
		t.Fatal("giving up must not change the recorded offset")
	}
}

func TestCorrectionNilMeasurer(t *testing.T) {
	rig := rigWithOffset(geo.Point{Lat: 30.19, Lng: -85.67}, 0, 15)

	fired := 0
	var result CorrectionResult
	rig.engine.CorrectCentering(geo.Point{Lat: 30.19, Lng: -85.67}, nil, Recompute, func(r CorrectionResult) {
		result = r
		fired++
	})

	if fired != 1 || result != GaveUp {
		t.Fatalf("nil measurer should report GaveUp synchronously, got %v fired %d", result, fired)
	}
}
