package hood

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"hoodatlas/internal/geo"
)

// Loader loads neighborhood records from CSV
type Loader struct {
	csvPath string
}

// NewLoader creates a loader for the given CSV path
func NewLoader(csvPath string) *Loader {
	return &Loader{
		csvPath: csvPath,
	}
}

// Load reads neighborhoods from the CSV file.
// Rows with unparseable or out-of-range coordinates are skipped; a map
// marker at NaN helps nobody.
func (l *Loader) Load() ([]*Neighborhood, error) {
	file, err := os.Open(l.csvPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open neighborhoods CSV: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV header: %w", err)
	}

	colIndices := make(map[string]int)
	for i, col := range header {
		colIndices[strings.TrimSpace(col)] = i
	}

	required := []string{"place_id", "name", "city", "region", "lat", "lng"}
	for _, col := range required {
		if _, ok := colIndices[col]; !ok {
			return nil, fmt.Errorf("missing required column: %s", col)
		}
	}

	var hoods []*Neighborhood

	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			continue
		}

		lat, err := strconv.ParseFloat(record[colIndices["lat"]], 64)
		if err != nil {
			continue
		}
		lng, err := strconv.ParseFloat(record[colIndices["lng"]], 64)
		if err != nil {
			continue
		}

		location := geo.Point{Lat: lat, Lng: lng}
		if !location.Valid() {
			continue
		}

		n := &Neighborhood{
			ID:       record[colIndices["place_id"]],
			Name:     record[colIndices["name"]],
			City:     record[colIndices["city"]],
			Region:   record[colIndices["region"]],
			Location: location,
		}

		if idx, ok := colIndices["median_price"]; ok && idx < len(record) {
			if price, err := strconv.Atoi(record[idx]); err == nil {
				n.MedianPrice = price
			}
		}
		if idx, ok := colIndices["homes"]; ok && idx < len(record) {
			if homes, err := strconv.Atoi(record[idx]); err == nil {
				n.Homes = homes
			}
		}
		if idx, ok := colIndices["tags"]; ok && idx < len(record) && record[idx] != "" {
			for _, tag := range strings.Split(record[idx], ";") {
				if tag = strings.TrimSpace(tag); tag != "" {
					n.Tags = append(n.Tags, tag)
				}
			}
		}

		hoods = append(hoods, n)
	}

	return hoods, nil
}
