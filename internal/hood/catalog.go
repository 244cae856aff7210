package hood

import (
	"sort"
	"sync"

	"hoodatlas/internal/geo"
)

// SortMode orders results in the catalog
type SortMode int

const (
	SortByName SortMode = iota
	SortByPrice
	SortByDistance
)

// String returns a short label for the sort mode
func (s SortMode) String() string {
	switch s {
	case SortByName:
		return "name"
	case SortByPrice:
		return "price"
	case SortByDistance:
		return "distance"
	default:
		return "unknown"
	}
}

// Next cycles to the following sort mode
func (s SortMode) Next() SortMode {
	return (s + 1) % 3
}

// Catalog manages the neighborhood collection with thread-safe access
type Catalog struct {
	byID map[string]*Neighborhood
	mu   sync.RWMutex
}

// NewCatalog creates a catalog from loaded records.
// Records with duplicate ids keep the last occurrence.
func NewCatalog(records []*Neighborhood) *Catalog {
	byID := make(map[string]*Neighborhood, len(records))
	for _, n := range records {
		if n != nil && n.ID != "" {
			byID[n.ID] = n
		}
	}
	return &Catalog{byID: byID}
}

// Get retrieves a neighborhood by place id
func (c *Catalog) Get(id string) (*Neighborhood, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	n, ok := c.byID[id]
	return n, ok
}

// Count returns the number of neighborhoods in the catalog
func (c *Catalog) Count() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.byID)
}

// All returns every neighborhood sorted by name
func (c *Catalog) All() []*Neighborhood {
	return c.Filter("", SortByName, geo.Point{})
}

// Filter returns neighborhoods matching the query, ordered by the sort
// mode. from is only used by SortByDistance.
func (c *Catalog) Filter(query string, mode SortMode, from geo.Point) []*Neighborhood {
	c.mu.RLock()
	matched := make([]*Neighborhood, 0, len(c.byID))
	for _, n := range c.byID {
		if n.Matches(query) {
			matched = append(matched, n)
		}
	}
	c.mu.RUnlock()

	switch mode {
	case SortByPrice:
		sort.Slice(matched, func(i, j int) bool {
			if matched[i].MedianPrice != matched[j].MedianPrice {
				return matched[i].MedianPrice < matched[j].MedianPrice
			}
			return matched[i].Name < matched[j].Name
		})
	case SortByDistance:
		sort.Slice(matched, func(i, j int) bool {
			di := geo.Distance(from, matched[i].Location)
			dj := geo.Distance(from, matched[j].Location)
			if di != dj {
				return di < dj
			}
			return matched[i].Name < matched[j].Name
		})
	default:
		sort.Slice(matched, func(i, j int) bool {
			return matched[i].Name < matched[j].Name
		})
	}

	return matched
}

// Locations returns the marker anchors of the given neighborhoods,
// in the same order
func Locations(hoods []*Neighborhood) []geo.Point {
	points := make([]geo.Point, 0, len(hoods))
	for _, n := range hoods {
		points = append(points, n.Location)
	}
	return points
}
