package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Tuning holds every numeric constant of the camera engine. None of these
// values are load-bearing contracts; they are feel parameters, which is why
// they live in a reloadable file instead of the source.
type Tuning struct {
	// Card height estimates in pixels, tiered by viewport width
	CardHeightNarrow int `yaml:"card_height_narrow"`
	CardHeightMedium int `yaml:"card_height_medium"`
	CardHeightWide   int `yaml:"card_height_wide"`

	// Viewport width breakpoints in pixels for the card height tiers
	BreakpointNarrow int `yaml:"breakpoint_narrow"`
	BreakpointMedium int `yaml:"breakpoint_medium"`

	// Fixed chrome around the card
	TailHeight       int `yaml:"tail_height"`
	MarkerRadius     int `yaml:"marker_radius"`
	DisclaimerHeight int `yaml:"disclaimer_height"`

	// Margins used by the offset calculator
	MarginTop       int `yaml:"margin_top"`
	CenterMargin    int `yaml:"center_margin"`
	MinCenterHeight int `yaml:"min_center_height"`

	// Flight duration tiers in milliseconds, selected by anchor distance
	DurationNearMs int `yaml:"duration_near_ms"`
	DurationMidMs  int `yaml:"duration_mid_ms"`
	DurationFarMs  int `yaml:"duration_far_ms"`

	// Anchor distance breakpoints in meters for the duration tiers
	DistanceNearM float64 `yaml:"distance_near_m"`
	DistanceMidM  float64 `yaml:"distance_mid_m"`

	// Cruise zoom-out depth tiers, selected by anchor distance.
	// Flights below ShortHopM skip the parabolic arc entirely.
	ShortHopM      float64 `yaml:"short_hop_m"`
	ArcDistMidM    float64 `yaml:"arc_dist_mid_m"`
	ArcDistFarM    float64 `yaml:"arc_dist_far_m"`
	ArcDepthNear   float64 `yaml:"arc_depth_near"`
	ArcDepthMid    float64 `yaml:"arc_depth_mid"`
	ArcDepthFar    float64 `yaml:"arc_depth_far"`
	CruiseZoomMinimum float64 `yaml:"cruise_zoom_minimum"`

	// Centering correction
	CorrectionClampPx     int `yaml:"correction_clamp_px"`
	CorrectionThresholdPx int `yaml:"correction_threshold_px"`
	MeasureRetries        int `yaml:"measure_retries"`

	// Zoom limits and fallbacks
	MinZoom        float64 `yaml:"min_zoom"`
	MaxZoom        float64 `yaml:"max_zoom"`
	DegenerateZoom float64 `yaml:"degenerate_zoom"`
	FallbackZoom   float64 `yaml:"fallback_zoom"`
}

// Default returns the tuning the engine ships with
func Default() Tuning {
	return Tuning{
		CardHeightNarrow: 240,
		CardHeightMedium: 280,
		CardHeightWide:   320,
		BreakpointNarrow: 480,
		BreakpointMedium: 768,

		TailHeight:       12,
		MarkerRadius:     20,
		DisclaimerHeight: 0,

		MarginTop:       24,
		CenterMargin:    40,
		MinCenterHeight: 400,

		DurationNearMs: 600,
		DurationMidMs:  900,
		DurationFarMs:  1300,

		DistanceNearM: 1000,
		DistanceMidM:  2000,

		ShortHopM:         2000,
		ArcDistMidM:       5000,
		ArcDistFarM:       20000,
		ArcDepthNear:      2,
		ArcDepthMid:       3,
		ArcDepthFar:       4,
		CruiseZoomMinimum: 8,

		CorrectionClampPx:     30,
		CorrectionThresholdPx: 5,
		MeasureRetries:        30,

		MinZoom:        10,
		MaxZoom:        18,
		DegenerateZoom: 15,
		FallbackZoom:   13,
	}
}

// Load reads a tuning file and overlays it on the defaults.
// Fields absent from the file keep their default values.
func Load(path string) (Tuning, error) {
	t := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return t, fmt.Errorf("failed to read tuning file: %w", err)
	}

	if err := yaml.Unmarshal(data, &t); err != nil {
		return t, fmt.Errorf("failed to parse tuning file: %w", err)
	}

	return t, nil
}

// CardHeightForWidth returns the estimated card height for a viewport width.
// The estimate is made before the card is rendered, so it is tiered by width
// bucket rather than derived from content.
func (t Tuning) CardHeightForWidth(viewportWidth int) int {
	switch {
	case viewportWidth < t.BreakpointNarrow:
		return t.CardHeightNarrow
	case viewportWidth < t.BreakpointMedium:
		return t.CardHeightMedium
	default:
		return t.CardHeightWide
	}
}
