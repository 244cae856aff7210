package camera

import (
	"math"
	"net/url"
	"strconv"

	"hoodatlas/internal/debug"
)

// Overrides are explicit debug values that always win over computed ones.
// They exist for visual QA: a tester can force a fixed offset, zoom, or
// target and compare against what the engine would have chosen.
type Overrides struct {
	// Absolute pixel offset
	OffsetPxValue *int
	// Offset as a percentage of viewport height, clamped to [0, 50]
	OffsetPercent *float64
	Zoom          *float64
	Lat           *float64
	Lng           *float64
}

// ParseOverrides reads overrides from query-string values, e.g.
// "offset=120&zoom=15" or "offsetpct=25&lat=30.19&lng=-85.67".
// Malformed values are logged and skipped.
func ParseOverrides(values url.Values) Overrides {
	var o Overrides

	if s := values.Get("offset"); s != "" {
		if v, err := strconv.Atoi(s); err == nil {
			o.OffsetPxValue = &v
		} else {
			debug.Log("overrides: bad offset %q", s)
		}
	}

	if s := values.Get("offsetpct"); s != "" {
		if v, err := strconv.ParseFloat(s, 64); err == nil && !math.IsNaN(v) {
			o.OffsetPercent = &v
		} else {
			debug.Log("overrides: bad offsetpct %q", s)
		}
	}

	if s := values.Get("zoom"); s != "" {
		if v, err := strconv.ParseFloat(s, 64); err == nil && !math.IsNaN(v) {
			o.Zoom = &v
		} else {
			debug.Log("overrides: bad zoom %q", s)
		}
	}

	lat, latErr := strconv.ParseFloat(values.Get("lat"), 64)
	lng, lngErr := strconv.ParseFloat(values.Get("lng"), 64)
	if latErr == nil && lngErr == nil {
		o.Lat = &lat
		o.Lng = &lng
	} else if values.Get("lat") != "" || values.Get("lng") != "" {
		debug.Log("overrides: lat/lng override requires both values")
	}

	return o
}

// OffsetPx resolves the offset override for a viewport height.
// An absolute pixel value takes precedence over a percentage.
func (o Overrides) OffsetPx(viewportHeight int) (int, bool) {
	if o.OffsetPxValue != nil {
		return *o.OffsetPxValue, true
	}

	if o.OffsetPercent != nil {
		pct := *o.OffsetPercent
		if pct < 0 {
			pct = 0
		}
		if pct > 50 {
			pct = 50
		}
		return int(math.Round(float64(viewportHeight) * pct / 100)), true
	}

	return 0, false
}
