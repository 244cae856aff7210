package geo

import (
	"fmt"
	"strings"
	"sync"

	"github.com/jonas-p/go-shp"
)

// Boundary is a neighborhood outline polygon
type Boundary struct {
	PlaceID string
	Points  []Point
}

// Visible returns true if any vertex of the boundary falls inside the bounds
func (b *Boundary) Visible(bounds *Bounds) bool {
	for _, p := range b.Points {
		if bounds.Contains(p) {
			return true
		}
	}
	return false
}

// BoundaryLoader lazily loads neighborhood boundary polygons from an ESRI
// shapefile. Polygons are read on first request and memoized per place id,
// so startup never pays for boundaries the user never looks at.
type BoundaryLoader struct {
	shpPath string
	mu      sync.Mutex
	loaded  map[string]*Boundary
	missing map[string]bool
}

// NewBoundaryLoader creates a loader for the given shapefile path
func NewBoundaryLoader(shpPath string) *BoundaryLoader {
	return &BoundaryLoader{
		shpPath: shpPath,
		loaded:  make(map[string]*Boundary),
		missing: make(map[string]bool),
	}
}

// Load returns the boundary polygon for a place id, reading it from the
// shapefile on first use. Returns nil with no error when the shapefile has
// no polygon for the id; the map simply renders without an outline.
func (l *BoundaryLoader) Load(placeID string) (*Boundary, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if b, ok := l.loaded[placeID]; ok {
		return b, nil
	}
	if l.missing[placeID] {
		return nil, nil
	}

	b, err := l.scanFor(placeID)
	if err != nil {
		return nil, err
	}
	if b == nil {
		l.missing[placeID] = true
		return nil, nil
	}

	l.loaded[placeID] = b
	return b, nil
}

// Cached returns a boundary only if it has already been loaded
func (l *BoundaryLoader) Cached(placeID string) (*Boundary, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	b, ok := l.loaded[placeID]
	return b, ok
}

// scanFor reads the shapefile looking for a record whose place-id attribute
// matches. Shapefile attribute names are fixed-width byte arrays padded with
// nulls, so they need trimming before comparison.
func (l *BoundaryLoader) scanFor(placeID string) (*Boundary, error) {
	shape, err := shp.Open(l.shpPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open boundary shapefile: %w", err)
	}
	defer shape.Close()

	idIdx := -1
	for i, field := range shape.Fields() {
		name := strings.TrimRight(string(field.Name[:]), "\x00 ")
		if name == "PLACE_ID" || name == "place_id" || name == "GEOID" {
			idIdx = i
			break
		}
	}
	if idIdx < 0 {
		return nil, fmt.Errorf("boundary shapefile has no place id field")
	}

	for shape.Next() {
		n, p := shape.Shape()

		if strings.TrimSpace(shape.ReadAttribute(n, idIdx)) != placeID {
			continue
		}

		switch geom := p.(type) {
		case *shp.Polygon:
			points := make([]Point, len(geom.Points))
			for i, pt := range geom.Points {
				points[i] = Point{Lat: pt.Y, Lng: pt.X}
			}
			if len(points) > 1 {
				return &Boundary{PlaceID: placeID, Points: points}, nil
			}

		case *shp.PolyLine:
			points := make([]Point, len(geom.Points))
			for i, pt := range geom.Points {
				points[i] = Point{Lat: pt.Y, Lng: pt.X}
			}
			if len(points) > 1 {
				return &Boundary{PlaceID: placeID, Points: points}, nil
			}
		}
	}

	return nil, nil
}
