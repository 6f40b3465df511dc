// Package app is the application shell: it binds a widget collection
// to a renderer, preferring a real device and falling back to the
// PNG-dumping debug renderer when none can be opened.
package app

import (
	"fmt"
	"time"

	"github.com/JulesMellot/SD-Canvas-Renderer/internal/canvas"
	"github.com/JulesMellot/SD-Canvas-Renderer/internal/deck"
	"github.com/JulesMellot/SD-Canvas-Renderer/internal/render"
	"github.com/JulesMellot/SD-Canvas-Renderer/internal/widget"
)

// Options configure the shell. Zero values get defaults.
type Options struct {
	TargetFPS  int    // default 30
	Brightness *int   // 0..100; nil selects 80
	Background string // default "#000000"

	// Orientation overrides the device-derived transform for decks
	// mounted rotated or mirrored. Empty keeps the derived one.
	Orientation string

	// PreferHardware tries the enumerated devices first; otherwise the
	// debug renderer is used directly.
	PreferHardware bool

	// Debug renderer geometry, used on fallback or when hardware is
	// not preferred.
	DebugCols   int // default 5
	DebugRows   int // default 3
	DebugTilePx int // default 72
	DebugDir    string

	Logger Logger
}

// App wires widgets, device, and renderer together and runs the frame
// loop. Callbacks are optional.
type App struct {
	Widgets *widget.Collection

	// OnSetup runs once after the renderer is ready, before the loop.
	OnSetup func(a *App) error
	// OnLoop runs every frame before the widget collection renders.
	OnLoop func(c *canvas.Canvas, frame uint64, dt time.Duration)
	// OnCleanup runs after the loop exits.
	OnCleanup func(a *App)
	// OnKeyPress receives device key presses in grid coordinates.
	OnKeyPress func(a *App, col, row, index int)

	opts     Options
	log      Logger
	renderer render.Renderer
	device   deck.Device
}

// New creates an unstarted shell with defaulted options.
func New(opts Options) *App {
	if opts.TargetFPS == 0 {
		opts.TargetFPS = 30
	}
	if opts.Background == "" {
		opts.Background = "#000000"
	}
	if opts.DebugCols == 0 {
		opts.DebugCols = 5
	}
	if opts.DebugRows == 0 {
		opts.DebugRows = 3
	}
	if opts.DebugTilePx == 0 {
		opts.DebugTilePx = 72
	}
	if opts.Logger == nil {
		opts.Logger = NoopLogger{}
	}
	a := &App{
		Widgets: widget.NewCollection(),
		opts:    opts,
		log:     opts.Logger,
	}
	a.Widgets.Logger = opts.Logger
	return a
}

// Renderer returns the active renderer, nil before Run.
func (a *App) Renderer() render.Renderer { return a.renderer }

// Canvas returns the active canvas, nil before Run.
func (a *App) Canvas() *canvas.Canvas {
	if a.renderer == nil {
		return nil
	}
	return a.renderer.Canvas()
}

// Run builds a renderer, runs OnSetup, and blocks in the frame loop
// until Stop. Renderer construction never crashes the shell: every
// hardware failure falls back to the debug renderer.
func (a *App) Run() error {
	if err := a.buildRenderer(); err != nil {
		return err
	}
	defer func() {
		if a.device != nil {
			if err := a.device.Close(); err != nil {
				a.log.Errorf("app", "close device: %v", err)
			}
			a.device = nil
		}
	}()

	if a.OnSetup != nil {
		if err := a.OnSetup(a); err != nil {
			return fmt.Errorf("setup: %w", err)
		}
	}

	// The renderer clears the canvas before each frame callback.
	err := a.renderer.Start(func(c *canvas.Canvas, frame uint64, dt time.Duration) {
		if a.OnLoop != nil {
			a.OnLoop(c, frame, dt)
		}
		a.Widgets.RenderAll(c)
	})

	if a.OnCleanup != nil {
		a.OnCleanup(a)
	}
	return err
}

// Stop requests loop exit. Safe to call from a signal handler.
func (a *App) Stop() {
	if a.renderer != nil {
		a.renderer.Stop()
	}
}

func (a *App) buildRenderer() error {
	if a.opts.PreferHardware {
		for _, dev := range deck.Enumerate() {
			r, err := render.NewDeckRenderer(render.DeckConfig{
				Device:      dev,
				TargetFPS:   a.opts.TargetFPS,
				Brightness:  a.opts.Brightness,
				Background:  a.opts.Background,
				Orientation: a.opts.Orientation,
				Logger:      a.log,
				Callbacks:   a.callbacks(),
			})
			if err != nil {
				a.log.Errorf("app", "device %s unavailable: %v", dev.ID(), err)
				continue
			}
			a.log.Infof("app", "using device %s", dev.ID())
			a.device = dev
			a.renderer = r
			return nil
		}
		a.log.Errorf("app", "no device available, falling back to debug renderer")
	}

	r, err := render.NewDebugRenderer(render.DebugConfig{
		Cols:       a.opts.DebugCols,
		Rows:       a.opts.DebugRows,
		TilePx:     a.opts.DebugTilePx,
		TargetFPS:  a.opts.TargetFPS,
		Background: a.opts.Background,
		Dir:        a.opts.DebugDir,
		Logger:     a.log,
		Callbacks:  a.callbacks(),
	})
	if err != nil {
		return fmt.Errorf("debug renderer: %w", err)
	}
	a.log.Infof("app", "using debug renderer, frames in %s", r.Dir())
	a.renderer = r
	return nil
}

func (a *App) callbacks() render.Callbacks {
	return render.Callbacks{
		OnKeyPress: func(col, row, index int) {
			if a.OnKeyPress != nil {
				a.OnKeyPress(a, col, row, index)
			}
		},
		OnError: func(err error) {
			a.log.Errorf("app", "render: %v", err)
		},
		OnDisconnect: func() {
			a.log.Errorf("app", "device disconnected")
		},
	}
}
