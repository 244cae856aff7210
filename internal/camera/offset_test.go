package camera

import (
	"net/url"
	"testing"

	"hoodatlas/internal/config"
)

func defaultCfg(cardHeight int) OffsetConfig {
	return OffsetConfig{
		ViewportWidth:      1000,
		ViewportHeight:     800,
		CardHeightEstimate: cardHeight,
		TailHeight:         12,
		MarkerRadius:       20,
	}
}

func TestComputeOffsetCentered(t *testing.T) {
	tuning := config.Default()

	// Tall viewport, combo fits: true centering
	got := ComputeOffset(defaultCfg(280), tuning, Overrides{})
	want := (280 + 12 - 20) / 2
	if got != want {
		t.Fatalf("ComputeOffset = %d, want %d", got, want)
	}
}

func TestComputeOffsetMonotonicInCardHeight(t *testing.T) {
	tuning := config.Default()

	prev := -1
	for h := 100; h <= 700; h += 20 {
		got := ComputeOffset(defaultCfg(h), tuning, Overrides{})
		if got < prev {
			t.Fatalf("offset decreased from %d to %d at card height %d", prev, got, h)
		}
		prev = got
	}
}

func TestComputeOffsetShortViewportFallback(t *testing.T) {
	tuning := config.Default()

	// Mobile-landscape-sized viewport: pin to top instead of centering
	cfg := defaultCfg(280)
	cfg.ViewportHeight = 320

	got := ComputeOffset(cfg, tuning, Overrides{})
	combo := 280 + 12 + 20
	want := tuning.MarginTop + combo - 320/2
	if got != want {
		t.Fatalf("short viewport offset = %d, want %d", got, want)
	}
}

func TestComputeOffsetFallbackNeverNegative(t *testing.T) {
	tuning := config.Default()

	cfg := defaultCfg(40)
	cfg.ViewportHeight = 399 // below MinCenterHeight, tiny combo

	if got := ComputeOffset(cfg, tuning, Overrides{}); got < 0 {
		t.Fatalf("fallback offset should clamp at 0, got %d", got)
	}
}

func TestComputeOffsetDisclaimerShrinksViewport(t *testing.T) {
	tuning := config.Default()

	cfg := defaultCfg(280)
	cfg.ViewportHeight = 420
	cfg.DisclaimerHeight = 100

	// 320 usable px can't center a 312px combo; must take the fallback
	got := ComputeOffset(cfg, tuning, Overrides{})
	want := tuning.MarginTop + (280 + 12 + 20) - 320/2
	if got != want {
		t.Fatalf("offset with disclaimer = %d, want %d", got, want)
	}
}

func TestComputeOffsetZeroEstimateUsesTier(t *testing.T) {
	tuning := config.Default()

	cfg := defaultCfg(0)
	got := ComputeOffset(cfg, tuning, Overrides{})

	// 1000px viewport is the wide tier
	want := (tuning.CardHeightWide + 12 - 20) / 2
	if got != want {
		t.Fatalf("offset with no estimate = %d, want %d", got, want)
	}
}

func TestOverridesWinOverComputed(t *testing.T) {
	tuning := config.Default()

	px := 77
	got := ComputeOffset(defaultCfg(280), tuning, Overrides{OffsetPxValue: &px})
	if got != 77 {
		t.Fatalf("absolute override = %d, want 77", got)
	}

	pct := 25.0
	got = ComputeOffset(defaultCfg(280), tuning, Overrides{OffsetPercent: &pct})
	if got != 200 {
		t.Fatalf("percent override = %d, want 200 (25%% of 800)", got)
	}

	// Absolute beats percentage when both are set
	got = ComputeOffset(defaultCfg(280), tuning, Overrides{OffsetPxValue: &px, OffsetPercent: &pct})
	if got != 77 {
		t.Fatalf("absolute should beat percent, got %d", got)
	}
}

func TestOverridePercentClamped(t *testing.T) {
	pct := 90.0
	o := Overrides{OffsetPercent: &pct}

	got, ok := o.OffsetPx(800)
	if !ok || got != 400 {
		t.Fatalf("90%% should clamp to 50%% of 800 = 400, got %d", got)
	}

	neg := -10.0
	o = Overrides{OffsetPercent: &neg}
	got, ok = o.OffsetPx(800)
	if !ok || got != 0 {
		t.Fatalf("negative percent should clamp to 0, got %d", got)
	}
}

func TestParseOverrides(t *testing.T) {
	values, err := url.ParseQuery("offset=120&zoom=15.5&lat=30.19&lng=-85.67")
	if err != nil {
		t.Fatal(err)
	}

	o := ParseOverrides(values)
	if o.OffsetPxValue == nil || *o.OffsetPxValue != 120 {
		t.Fatalf("offset override not parsed: %+v", o)
	}
	if o.Zoom == nil || *o.Zoom != 15.5 {
		t.Fatalf("zoom override not parsed: %+v", o)
	}
	if o.Lat == nil || *o.Lat != 30.19 || o.Lng == nil || *o.Lng != -85.67 {
		t.Fatalf("lat/lng override not parsed: %+v", o)
	}
}

func TestParseOverridesMalformed(t *testing.T) {
	values, _ := url.ParseQuery("offset=abc&zoom=NaN&lat=30.19")

	o := ParseOverrides(values)
	if o.OffsetPxValue != nil {
		t.Fatal("malformed offset should be skipped")
	}
	if o.Zoom != nil {
		t.Fatal("NaN zoom should be skipped")
	}
	if o.Lat != nil || o.Lng != nil {
		t.Fatal("lat without lng should be skipped")
	}
}
