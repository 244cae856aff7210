package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultDurationsOrdered(t *testing.T) {
	d := Default()

	if !(d.DurationNearMs < d.DurationMidMs && d.DurationMidMs < d.DurationFarMs) {
		t.Fatalf("duration tiers out of order: %d, %d, %d",
			d.DurationNearMs, d.DurationMidMs, d.DurationFarMs)
	}
	if !(d.DistanceNearM < d.DistanceMidM) {
		t.Fatal("distance breakpoints out of order")
	}
	if d.MinZoom >= d.MaxZoom {
		t.Fatal("zoom limits inverted")
	}
}

func TestCardHeightForWidth(t *testing.T) {
	d := Default()

	cases := []struct {
		width int
		want  int
	}{
		{320, d.CardHeightNarrow},
		{479, d.CardHeightNarrow},
		{480, d.CardHeightMedium},
		{767, d.CardHeightMedium},
		{768, d.CardHeightWide},
		{1920, d.CardHeightWide},
	}

	for _, tc := range cases {
		if got := d.CardHeightForWidth(tc.width); got != tc.want {
			t.Errorf("CardHeightForWidth(%d) = %d, want %d", tc.width, got, tc.want)
		}
	}
}

func TestLoadOverlaysDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tuning.yaml")
	yaml := "duration_near_ms: 450\nmax_zoom: 17\n"
	if err := os.WriteFile(path, []byte(yaml), 0644); err != nil {
		t.Fatal(err)
	}

	got, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}

	if got.DurationNearMs != 450 {
		t.Fatalf("DurationNearMs = %d, want overridden 450", got.DurationNearMs)
	}
	if got.MaxZoom != 17 {
		t.Fatalf("MaxZoom = %g, want overridden 17", got.MaxZoom)
	}

	// Everything not in the file keeps its default
	d := Default()
	if got.DurationMidMs != d.DurationMidMs || got.CardHeightWide != d.CardHeightWide {
		t.Fatal("unset fields lost their defaults")
	}
}

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	got, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if err == nil {
		t.Fatal("missing file should report an error")
	}
	if got.DurationNearMs != Default().DurationNearMs {
		t.Fatal("missing file should still return usable defaults")
	}
}

func TestLoadMalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tuning.yaml")
	if err := os.WriteFile(path, []byte("duration_near_ms: [not a number\n"), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := Load(path); err == nil {
		t.Fatal("malformed yaml should report an error")
	}
}
