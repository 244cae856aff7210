package hood

import (
	"fmt"
	"strings"

	"hoodatlas/internal/geo"
)

// Neighborhood represents one neighborhood record on the map
type Neighborhood struct {
	ID          string    // Stable place id, also keys the boundary shapefile
	Name        string    // Display name
	City        string
	Region      string    // State or province
	Location    geo.Point // Marker anchor
	MedianPrice int       // Median listing price in dollars, 0 if unknown
	Homes       int       // Active listings count
	Tags        []string  // Search keywords (waterfront, golf, ...)
}

// ListDisplay formats a compact one-line summary for the results list
func (n *Neighborhood) ListDisplay() string {
	if n.MedianPrice > 0 {
		return fmt.Sprintf("%-18s $%dk", truncate(n.Name, 18), n.MedianPrice/1000)
	}
	return truncate(n.Name, 24)
}

// Matches reports whether the neighborhood matches a filter query.
// Matching is case-insensitive over name, city and tags.
func (n *Neighborhood) Matches(query string) bool {
	if query == "" {
		return true
	}
	q := strings.ToLower(query)

	if strings.Contains(strings.ToLower(n.Name), q) {
		return true
	}
	if strings.Contains(strings.ToLower(n.City), q) {
		return true
	}
	for _, tag := range n.Tags {
		if strings.Contains(strings.ToLower(tag), q) {
			return true
		}
	}
	return false
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-1] + "…"
}
