package geo

import (
	"math"
	"testing"
)

func TestPointValid(t *testing.T) {
	cases := []struct {
		name  string
		point Point
		want  bool
	}{
		{"ordinary", Point{Lat: 30.19, Lng: -85.67}, true},
		{"north_pole", Point{Lat: 90, Lng: 0}, true},
		{"lat_too_high", Point{Lat: 90.1, Lng: 0}, false},
		{"lng_wrapped", Point{Lat: 0, Lng: 180.5}, false},
		{"both_bad", Point{Lat: -91, Lng: -181}, false},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := c.point.Valid(); got != c.want {
				t.Fatalf("Valid(%+v) = %v, want %v", c.point, got, c.want)
			}
		})
	}
}

func TestPointFinite(t *testing.T) {
	if !(Point{Lat: 1, Lng: 2}).Finite() {
		t.Fatal("ordinary point should be finite")
	}
	if (Point{Lat: math.NaN(), Lng: 2}).Finite() {
		t.Fatal("NaN latitude should not be finite")
	}
	if (Point{Lat: 1, Lng: math.Inf(1)}).Finite() {
		t.Fatal("infinite longitude should not be finite")
	}
}

func TestDistance(t *testing.T) {
	// One degree of latitude is about 111.2 km everywhere
	a := Point{Lat: 30, Lng: -85}
	b := Point{Lat: 31, Lng: -85}

	d := Distance(a, b)
	if math.Abs(d-111195) > 500 {
		t.Fatalf("one degree of latitude = %vm, want ~111195m", d)
	}

	if Distance(a, a) != 0 {
		t.Fatal("distance to self should be 0")
	}

	if Distance(a, b) != Distance(b, a) {
		t.Fatal("distance should be symmetric")
	}
}

func TestBoundsExtend(t *testing.T) {
	b := NewBounds(Point{Lat: 30, Lng: -85})
	b.Extend(Point{Lat: 31, Lng: -84})
	b.Extend(Point{Lat: 29.5, Lng: -85.5})

	if b.MinLat != 29.5 || b.MaxLat != 31 || b.MinLng != -85.5 || b.MaxLng != -84 {
		t.Fatalf("unexpected envelope: %+v", b)
	}

	center := b.Center()
	if center.Lat != 30.25 || center.Lng != -84.75 {
		t.Fatalf("unexpected center: %+v", center)
	}

	if !b.Contains(Point{Lat: 30, Lng: -85}) {
		t.Fatal("envelope should contain seed point")
	}
	if b.Contains(Point{Lat: 32, Lng: -85}) {
		t.Fatal("envelope should not contain outside point")
	}
}

func TestProjectionRoundTrip(t *testing.T) {
	center := Point{Lat: 30.1947, Lng: -85.6716}
	p := NewProjection(center, 14, 120, 40, 8, 16)

	// A point projected onto a cell should unproject back within a cell
	// of pixels
	target := Point{Lat: 30.21, Lng: -85.65}
	sp := p.Project(target)
	back := p.Unproject(sp.X, sp.Y)

	x1, y1 := p.ProjectPx(target)
	x2, y2 := p.ProjectPx(back)
	if math.Abs(x1-x2) > 8 || math.Abs(y1-y2) > 16 {
		t.Fatalf("round trip moved more than one cell: (%v,%v) vs (%v,%v)", x1, y1, x2, y2)
	}
}

func TestProjectionCenterLandsMidScreen(t *testing.T) {
	center := Point{Lat: 30.1947, Lng: -85.6716}
	p := NewProjection(center, 14, 120, 40, 8, 16)

	x, y := p.ProjectPx(center)
	if x != 120*8/2 || y != 40*16/2 {
		t.Fatalf("center projected to (%v, %v), want middle of viewport", x, y)
	}
}

func TestProjectionVisibleBounds(t *testing.T) {
	center := Point{Lat: 30.1947, Lng: -85.6716}
	p := NewProjection(center, 12, 120, 40, 8, 16)

	b := p.VisibleBounds()
	if !b.Contains(center) {
		t.Fatal("visible bounds should contain the center")
	}
	if b.SpanLat() <= 0 || b.SpanLng() <= 0 {
		t.Fatalf("degenerate visible bounds: %+v", b)
	}
}
