package cache

import (
	"archive/zip"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
)

// Manager handles downloading and caching the neighborhood datasets
type Manager struct {
	cacheDir string
}

// DataFile represents a dataset to download
type DataFile struct {
	Name     string // Friendly name
	URL      string // Download URL
	File     string // Filename the app expects in the cache dir
	Zipped   bool   // Archive that needs extracting after download
	Optional bool   // If true, failure to download won't stop the app
}

// DataFiles lists the datasets the app needs. The boundary bundle is
// optional; the map renders markers without outlines when it is missing.
var DataFiles = []DataFile{
	{
		Name: "Neighborhood records",
		URL:  "https://hoodatlas.github.io/data/neighborhoods.csv",
		File: "neighborhoods.csv",
	},
	{
		Name:     "Boundary polygons",
		URL:      "https://hoodatlas.github.io/data/neighborhood_boundaries.zip",
		File:     "neighborhood_boundaries.shp",
		Zipped:   true,
		Optional: true,
	},
}

// NewManager creates a new cache manager
// If cacheDir is empty, uses ~/.hoodatlas/data
func NewManager(cacheDir string) (*Manager, error) {
	if cacheDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to get home directory: %w", err)
		}
		cacheDir = filepath.Join(home, ".hoodatlas", "data")
	}

	if err := os.MkdirAll(cacheDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create cache directory: %w", err)
	}

	return &Manager{
		cacheDir: cacheDir,
	}, nil
}

// EnsureData ensures all datasets are available, downloading missing ones.
// Optional files that fail to download are skipped with a warning.
func (m *Manager) EnsureData() error {
	for _, file := range DataFiles {
		if err := m.ensureFile(file); err != nil {
			if file.Optional {
				fmt.Printf("Warning: Skipping %s (optional): %v\n", file.Name, err)
				continue
			}
			return fmt.Errorf("failed to ensure %s: %w", file.Name, err)
		}
	}
	return nil
}

// ensureFile checks if a data file exists, downloads if needed
func (m *Manager) ensureFile(file DataFile) error {
	if _, err := os.Stat(filepath.Join(m.cacheDir, file.File)); err == nil {
		return nil
	}

	fmt.Printf("Downloading %s...\n", file.Name)

	client := &http.Client{}
	req, err := http.NewRequest("GET", file.URL, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("User-Agent", "Mozilla/5.0 (compatible; hoodatlas/1.0)")

	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to download: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("download failed with status: %s (URL: %s)", resp.Status, file.URL)
	}

	if !file.Zipped {
		outFile, err := os.Create(filepath.Join(m.cacheDir, file.File))
		if err != nil {
			return fmt.Errorf("failed to create file: %w", err)
		}
		defer outFile.Close()

		if _, err := io.Copy(outFile, resp.Body); err != nil {
			return fmt.Errorf("failed to save download: %w", err)
		}

		fmt.Printf("Downloaded %s\n", file.Name)
		return nil
	}

	tmpFile, err := os.CreateTemp("", "hoodatlas_*.zip")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	defer os.Remove(tmpFile.Name())
	defer tmpFile.Close()

	if _, err := io.Copy(tmpFile, resp.Body); err != nil {
		return fmt.Errorf("failed to save download: %w", err)
	}

	tmpFile.Close()

	if err := m.extractZip(tmpFile.Name(), m.cacheDir); err != nil {
		return fmt.Errorf("failed to extract: %w", err)
	}

	fmt.Printf("Downloaded and extracted %s\n", file.Name)
	return nil
}

func (m *Manager) extractZip(zipPath, destDir string) error {
	r, err := zip.OpenReader(zipPath)
	if err != nil {
		return err
	}
	defer r.Close()

	for _, f := range r.File {
		if f.FileInfo().IsDir() || strings.HasPrefix(filepath.Base(f.Name), ".") {
			continue
		}

		destPath := filepath.Join(destDir, filepath.Base(f.Name))
		rc, err := f.Open()

		if err != nil {
			return err
		}

		outFile, err := os.Create(destPath)
		if err != nil {
			rc.Close()
			return err
		}

		_, err = io.Copy(outFile, rc)
		outFile.Close()
		rc.Close()

		if err != nil {
			return err
		}
	}

	return nil
}

// NeighborhoodCSVPath returns the path to the neighborhoods CSV file
func (m *Manager) NeighborhoodCSVPath() string {
	return filepath.Join(m.cacheDir, "neighborhoods.csv")
}

// BoundaryShapefilePath returns the path to the boundary shapefile
func (m *Manager) BoundaryShapefilePath() string {
	return filepath.Join(m.cacheDir, "neighborhood_boundaries.shp")
}

// GetCacheDir returns the cache directory
func (m *Manager) GetCacheDir() string {
	return m.cacheDir
}
