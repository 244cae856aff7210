package main

import (
	"flag"
	"fmt"
	"net/url"
	"os"

	"hoodatlas/internal/cache"
	"hoodatlas/internal/camera"
	"hoodatlas/internal/config"
	"hoodatlas/internal/debug"
	"hoodatlas/internal/geo"
	"hoodatlas/internal/hood"
	"hoodatlas/internal/ui"
)

func main() {
	// Parse command line flags
	help := flag.Bool("h", false, "Show help message")
	cacheDir := flag.String("cache", "", "Cache directory for map data (default: ~/.hoodatlas/data)")
	debugLog := flag.String("d", "", "Debug log file (e.g., debug.log)")
	tuningPath := flag.String("tuning", "", "Camera tuning YAML file (hot-reloaded while running)")
	overrideQS := flag.String("q", "", "Debug overrides as a query string (e.g., 'offset=120&zoom=15')")
	correctMode := flag.String("correct", "micro", "Centering correction strategy: micro or recompute")
	flag.Parse()

	// Show help if requested
	if *help {
		fmt.Println("hoodatlas - Terminal-based neighborhood finder map")
		fmt.Println("\nUsage: hoodatlas [options]")
		fmt.Println("\nOptions:")
		flag.PrintDefaults()
		os.Exit(0)
	}

	var strategy camera.Strategy
	switch *correctMode {
	case "micro":
		strategy = camera.MicroCorrect
	case "recompute":
		strategy = camera.Recompute
	default:
		fmt.Fprintf(os.Stderr, "Error: correction strategy must be 'micro' or 'recompute'\n")
		os.Exit(1)
	}

	// Set up debug logging if requested
	if *debugLog != "" {
		logFile, err := os.Create(*debugLog)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: failed to create debug log: %v\n", err)
		} else {
			defer logFile.Close()
			debug.SetOutput(logFile)
			debug.Log("hoodatlas debug log started")
			fmt.Printf("Debug logging enabled: %s\n", *debugLog)
		}
	}

	// Parse debug overrides
	var overrides camera.Overrides
	if *overrideQS != "" {
		values, err := url.ParseQuery(*overrideQS)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: invalid override query string: %v\n", err)
			os.Exit(1)
		}
		overrides = camera.ParseOverrides(values)
	}

	// Load camera tuning, watching the file for changes if one was given
	tuning := config.Default()
	var tuningUpdates <-chan config.Tuning
	if *tuningPath != "" {
		var err error
		tuning, err = config.Load(*tuningPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: %v, using defaults\n", err)
		}

		watcher, err := config.NewWatcher(*tuningPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: failed to watch tuning file: %v\n", err)
		} else {
			defer watcher.Close()
			tuningUpdates = watcher.Updates
		}
	}

	// Initialize data cache
	fmt.Println("Initializing data cache...")
	cacheManager, err := cache.NewManager(*cacheDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to initialize cache: %v\n", err)
		os.Exit(1)
	}

	if err := cacheManager.EnsureData(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to download data: %v\n", err)
		os.Exit(1)
	}

	// Load neighborhood records
	fmt.Println("Loading neighborhoods...")
	loader := hood.NewLoader(cacheManager.NeighborhoodCSVPath())
	records, err := loader.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to load neighborhoods: %v\n", err)
		os.Exit(1)
	}
	if len(records) == 0 {
		fmt.Fprintf(os.Stderr, "Error: no usable neighborhood records\n")
		os.Exit(1)
	}
	catalog := hood.NewCatalog(records)
	fmt.Printf("Loaded %d neighborhoods\n", catalog.Count())

	// Boundary polygons are optional; loaded lazily per neighborhood
	var boundaries *geo.BoundaryLoader
	if _, err := os.Stat(cacheManager.BoundaryShapefilePath()); err == nil {
		boundaries = geo.NewBoundaryLoader(cacheManager.BoundaryShapefilePath())
	} else {
		fmt.Println("Boundary shapefile unavailable, outlines disabled")
	}

	// Create and run application
	fmt.Println("Starting hoodatlas...")
	app, err := ui.NewApp(catalog, boundaries, tuning, overrides, strategy, tuningUpdates)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to create application: %v\n", err)
		os.Exit(1)
	}

	// Run with panic recovery to ensure terminal is always restored
	func() {
		defer func() {
			if r := recover(); r != nil {
				fmt.Fprintf(os.Stderr, "\nPanic: %v\n", r)
			}
		}()

		if err := app.Run(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
	}()

	fmt.Println("\nGoodbye!")
}
