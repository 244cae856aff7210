package ui

import (
	"fmt"
	"time"

	"github.com/gdamore/tcell/v2"

	"hoodatlas/internal/camera"
	"hoodatlas/internal/config"
	"hoodatlas/internal/debug"
	"hoodatlas/internal/geo"
	"hoodatlas/internal/hood"
	"hoodatlas/internal/render"
)

const (
	// Zoom used when flying to a single neighborhood
	markerZoom = 15
	// Padding around a bounds-fit view in pixels
	fitPaddingPx = 80
)

// App is the main application controller
type App struct {
	screen   tcell.Screen
	catalog  *hood.Catalog
	mapView  *MapView
	listView *ListView
	cardView *CardView
	engine   *camera.Engine
	frames   *frameScheduler
	strategy camera.Strategy

	tuningUpdates <-chan config.Tuning

	results    []*hood.Neighborhood
	selectedID string
	query      string
	filterMode bool
	sortMode   hood.SortMode
	status     string

	quit chan struct{}
}

// NewApp creates the application: a tcell screen hosting the map view, the
// results list, the info card, and the camera engine wired to all three
func NewApp(catalog *hood.Catalog, boundaries *geo.BoundaryLoader, tuning config.Tuning, overrides camera.Overrides, strategy camera.Strategy, tuningUpdates <-chan config.Tuning) (*App, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("failed to create screen: %w", err)
	}

	if err := screen.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize screen: %w", err)
	}

	screen.SetStyle(tcell.StyleDefault)
	screen.Clear()

	width, height := screen.Size()

	// Start centered on the whole catalog; the first frame fits bounds
	// properly through the engine
	center := geo.Point{Lat: 39.8283, Lng: -98.5795}
	if all := catalog.All(); len(all) > 0 {
		env := geo.NewBounds(all[0].Location)
		for _, n := range all[1:] {
			env.Extend(n.Location)
		}
		center = env.Center()
	}

	mapView := NewMapView(width, height-1, center, tuning.FallbackZoom, boundaries)

	listWidth := 30
	listHeight := 14
	listView := NewListView(0, height-1-listHeight, listWidth, listHeight)

	frames := &frameScheduler{}
	engine := camera.New(mapView, mapView, frames, tuning, camera.WithOverrides(overrides))

	app := &App{
		screen:        screen,
		catalog:       catalog,
		mapView:       mapView,
		listView:      listView,
		cardView:      NewCardView(),
		engine:        engine,
		frames:        frames,
		strategy:      strategy,
		tuningUpdates: tuningUpdates,
		sortMode:      hood.SortByName,
		quit:          make(chan struct{}),
	}

	app.refreshResults()
	return app, nil
}

// Run starts the application main loop
func (a *App) Run() error {
	defer a.cleanup()

	// Frame all results once the first frame runs
	a.fitAll()

	ticker := time.NewTicker(100 * time.Millisecond) // 10 FPS
	defer ticker.Stop()

	for {
		select {
		case <-a.quit:
			return nil

		case t := <-a.tuningUpdates:
			a.engine.SetTuning(t)
			a.status = "tuning reloaded"

		case <-ticker.C:
			a.frames.RunFrame()
			a.render()

		default:
			if a.screen.HasPendingEvent() {
				ev := a.screen.PollEvent()
				if !a.handleEvent(ev) {
					return nil // Quit requested
				}
			}
		}
	}
}

// refreshResults re-runs the filter and sort over the catalog
func (a *App) refreshResults() {
	from := a.mapView.Camera().Center
	a.results = a.catalog.Filter(a.query, a.sortMode, from)
	a.listView.Update(a.results)
}

// flyToSelected flies the camera to the selected neighborhood and opens its
// card once the flight settles
func (a *App) flyToSelected() {
	n := a.listView.GetSelected()
	if n == nil {
		return
	}

	a.selectedID = n.ID
	a.cardView.Hide()

	a.engine.FlyTo(n.Location, markerZoom, camera.FlyOptions{
		ApplyOffset: true,
		OnStart: func() {
			a.status = "flying to " + n.Name
		},
		OnComplete: func() {
			a.status = ""
			a.mapView.ShowBoundary(n.ID)
			a.cardView.Show(n)
			a.engine.CorrectCentering(n.Location, a.cardView, a.strategy, func(res camera.CorrectionResult) {
				switch res {
				case camera.Corrected:
					debug.Log("card centered after correction")
				case camera.AlreadyCentered:
					debug.Log("card already centered")
				case camera.GaveUp:
					debug.Log("card correction gave up")
				}
			})
		},
	})
}

// fitAll frames every current result
func (a *App) fitAll() {
	if len(a.results) == 0 {
		return
	}

	a.cardView.Hide()
	a.selectedID = ""
	a.engine.FitBounds(hood.Locations(a.results), fitPaddingPx, a.engine.Tuning().MinZoom, camera.FlyOptions{
		OnStart:    func() { a.status = "framing results" },
		OnComplete: func() { a.status = "" },
	})
}

// render renders the current frame to the screen
func (a *App) render() {
	a.screen.Clear()

	a.mapView.Render(a.results, a.selectedID)

	if a.cardView.Visible() {
		if n := a.cardView.Current(); n != nil {
			sp := a.mapView.Project(n.Location)
			a.cardView.Draw(a.mapView.Canvas(), sp.X, sp.Y)
		}
	}

	a.mapView.Blit(a.screen)
	a.listView.Draw(a.screen)
	a.drawStatusBar()

	a.screen.Show()
}

// drawStatusBar renders the bottom status line
func (a *App) drawStatusBar() {
	width, height := a.screen.Size()
	y := height - 1

	var left string
	if a.filterMode {
		left = fmt.Sprintf(" filter: %s_", a.query)
	} else if a.query != "" {
		left = fmt.Sprintf(" filter: %s", a.query)
	} else {
		left = " / filter  s sort  a fit all  enter fly  q quit"
	}

	pose := a.mapView.Camera()
	right := fmt.Sprintf("sort:%s  z%.1f  %s ", a.sortMode, pose.Zoom, a.status)

	for x := 0; x < width; x++ {
		a.screen.SetContent(x, y, ' ', nil, render.StyleStatusBar)
	}
	for i, ch := range left {
		a.screen.SetContent(i, y, ch, nil, render.StyleStatusBar)
	}
	for i, ch := range right {
		x := width - len(right) + i
		if x > len(left) {
			a.screen.SetContent(x, y, ch, nil, render.StyleStatusBar)
		}
	}
}

// handleEvent processes keyboard events
func (a *App) handleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		if a.filterMode {
			return a.handleFilterKey(ev)
		}

		switch ev.Key() {
		case tcell.KeyEscape:
			if a.cardView.Visible() {
				a.cardView.Hide()
				a.selectedID = ""
			} else {
				close(a.quit)
				return false
			}

		case tcell.KeyEnter:
			a.flyToSelected()

		case tcell.KeyUp:
			a.listView.SelectPrev()

		case tcell.KeyDown:
			a.listView.SelectNext()

		case tcell.KeyRune:
			switch ev.Rune() {
			case 'q', 'Q':
				close(a.quit)
				return false

			case '/':
				a.filterMode = true

			case 's', 'S':
				a.sortMode = a.sortMode.Next()
				a.refreshResults()

			case 'a', 'A':
				a.fitAll()

			case '+', '=':
				a.engine.Cancel()
				a.mapView.ManualZoom(1)

			case '-', '_':
				a.engine.Cancel()
				a.mapView.ManualZoom(-1)
			}
		}

	case *tcell.EventResize:
		a.handleResize()
	}

	return true
}

// handleFilterKey processes keys while typing a filter query
func (a *App) handleFilterKey(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyEscape:
		a.query = ""
		a.filterMode = false
		a.refreshResults()

	case tcell.KeyEnter:
		a.filterMode = false

	case tcell.KeyBackspace, tcell.KeyBackspace2:
		if len(a.query) > 0 {
			a.query = a.query[:len(a.query)-1]
			a.refreshResults()
		}

	case tcell.KeyRune:
		a.query += string(ev.Rune())
		a.refreshResults()
	}

	return true
}

// handleResize handles terminal resize events
func (a *App) handleResize() {
	a.screen.Sync()
	width, height := a.screen.Size()

	a.mapView.UpdateDimensions(width, height-1)

	listWidth := 30
	listHeight := 14
	a.listView.UpdateDimensions(0, height-1-listHeight, listWidth, listHeight)
}

// cleanup restores the terminal before exit
func (a *App) cleanup() {
	if a.screen != nil {
		a.screen.Fini()
	}
}
