package render

import (
	"bytes"
	"fmt"
	"image/jpeg"
	"sync/atomic"
	"time"

	"github.com/JulesMellot/SD-Canvas-Renderer/internal/canvas"
	"github.com/JulesMellot/SD-Canvas-Renderer/internal/deck"
)

const (
	jpegQuality = 85

	// Consecutive failed publishes before the device is declared gone.
	disconnectThreshold = 10
)

// DeckConfig configures a DeckRenderer. Device is required; zero
// values elsewhere get defaults.
type DeckConfig struct {
	Device     deck.Device
	TargetFPS  int    // default 30
	Brightness *int   // 0..100; nil selects 80
	Background string // hex, default "#000000"

	// Orientation names one of the six transforms and overrides the
	// device-derived one, for decks mounted rotated or mirrored. Empty
	// keeps the derived transform.
	Orientation string

	Logger    Logger
	Callbacks Callbacks
}

// DeckRenderer renders onto a key-grid device. It probes the device
// geometry at construction, owns the canvas, and publishes per-key
// JPEG tiles on every update.
type DeckRenderer struct {
	dev    deck.Device
	canvas *canvas.Canvas
	log    Logger
	cbs    Callbacks

	cols, rows  int
	tilePx      int
	orientation Orientation
	targetFPS   int
	background  string

	running      atomic.Bool
	frames       atomic.Uint64
	fpsCounter   FPSCounter
	lastFrame    time.Time
	errCount     int
	disconnected atomic.Bool
}

// NewDeckRenderer opens and probes the device and builds the canvas.
// The device is left open; Close it after Stop.
func NewDeckRenderer(cfg DeckConfig) (*DeckRenderer, error) {
	if cfg.Device == nil {
		return nil, fmt.Errorf("deck renderer: nil device")
	}
	if cfg.TargetFPS == 0 {
		cfg.TargetFPS = 30
	}
	if err := canvas.ValidateFPS(cfg.TargetFPS); err != nil {
		return nil, err
	}
	brightness := 80
	if cfg.Brightness != nil {
		brightness = *cfg.Brightness
	}
	if err := canvas.ValidateRange(brightness, 0, 100, "brightness"); err != nil {
		return nil, err
	}
	if cfg.Background == "" {
		cfg.Background = "#000000"
	}
	if cfg.Logger == nil {
		cfg.Logger = noopLogger{}
	}
	overrideOrientation := cfg.Orientation != ""
	var override Orientation
	if overrideOrientation {
		var err error
		if override, err = ParseOrientation(cfg.Orientation); err != nil {
			return nil, err
		}
	}

	if err := cfg.Device.Open(); err != nil {
		return nil, fmt.Errorf("deck renderer: open device: %w", err)
	}

	cols, rows, tilePx, err := probeGeometry(cfg.Device)
	if err != nil {
		cfg.Device.Close()
		return nil, err
	}
	c, err := canvas.New(cols, rows, tilePx, cfg.Background)
	if err != nil {
		cfg.Device.Close()
		return nil, err
	}
	if err := cfg.Device.SetBrightness(brightness); err != nil {
		cfg.Logger.Errorf("deck", "set brightness: %v", err)
	}

	orientation := OrientationFor(cfg.Device.KeyImageFormat())
	if overrideOrientation {
		orientation = override
	}

	r := &DeckRenderer{
		dev:         cfg.Device,
		canvas:      c,
		log:         cfg.Logger,
		cbs:         cfg.Callbacks,
		cols:        cols,
		rows:        rows,
		tilePx:      tilePx,
		orientation: orientation,
		targetFPS:   cfg.TargetFPS,
		background:  cfg.Background,
	}
	cfg.Device.SetKeyCallback(r.onKey)
	cfg.Logger.Infof("deck", "device %s: %dx%d keys, %dpx tiles, orientation %s",
		cfg.Device.ID(), cols, rows, tilePx, r.orientation)
	return r, nil
}

// probeGeometry resolves the grid from the model table by key count,
// falling back to the device's own reported layout and image size.
func probeGeometry(dev deck.Device) (cols, rows, tilePx int, err error) {
	if l, ok := deck.LayoutForKeyCount(dev.KeyCount()); ok {
		return l.Cols, l.Rows, l.TilePx, nil
	}
	cols, rows = dev.KeyLayout()
	size := dev.KeyImageFormat().Size
	if size.X != size.Y {
		return 0, 0, 0, fmt.Errorf("deck renderer: non-square key images %dx%d", size.X, size.Y)
	}
	if verr := canvas.ValidateSize(cols, rows, size.X); verr != nil {
		return 0, 0, 0, fmt.Errorf("deck renderer: unsupported device geometry: %w", verr)
	}
	return cols, rows, size.X, nil
}

func (r *DeckRenderer) Canvas() *canvas.Canvas { return r.canvas }
func (r *DeckRenderer) IsRunning() bool        { return r.running.Load() }
func (r *DeckRenderer) FrameCount() uint64     { return r.frames.Load() }
func (r *DeckRenderer) FPS() float64           { return r.fpsCounter.FPS() }
func (r *DeckRenderer) TargetFPS() int         { return r.targetFPS }

// Disconnected reports whether publishing has been abandoned after too
// many consecutive failures.
func (r *DeckRenderer) Disconnected() bool { return r.disconnected.Load() }

// Update publishes every canvas tile to the device as an oriented JPEG.
// After disconnectThreshold consecutive failed updates the renderer
// declares the device gone, fires OnDisconnect once, and fails fast on
// every later call until Reconnect succeeds.
func (r *DeckRenderer) Update() error {
	if r.disconnected.Load() {
		return ErrDeviceDisconnected
	}
	if err := r.publish(); err != nil {
		r.errCount++
		r.log.Errorf("deck", "update failed (%d/%d): %v", r.errCount, disconnectThreshold, err)
		if r.errCount >= disconnectThreshold {
			r.disconnected.Store(true)
			r.log.Errorf("deck", "device %s declared disconnected", r.dev.ID())
			if r.cbs.OnDisconnect != nil {
				r.cbs.OnDisconnect()
			}
			return ErrDeviceDisconnected
		}
		return err
	}
	r.errCount = 0
	return nil
}

func (r *DeckRenderer) publish() error {
	tiles := r.canvas.TileImages()
	var buf bytes.Buffer
	for i, tile := range tiles {
		buf.Reset()
		if err := jpeg.Encode(&buf, r.orientation.Apply(tile), &jpeg.Options{Quality: jpegQuality}); err != nil {
			return fmt.Errorf("encode key %d: %w", i, err)
		}
		if err := r.dev.SetKeyImage(i, buf.Bytes()); err != nil {
			return fmt.Errorf("set key %d: %w", i, err)
		}
	}
	return nil
}

// Reconnect probes the device and, if it responds, clears the
// disconnected state so publishing resumes.
func (r *DeckRenderer) Reconnect() error {
	if !r.disconnected.Load() {
		return nil
	}
	if !r.dev.IsVisual() {
		return fmt.Errorf("reconnect %s: %w", r.dev.ID(), ErrDeviceDisconnected)
	}
	if err := r.dev.Reset(); err != nil {
		return fmt.Errorf("reconnect %s: %w", r.dev.ID(), err)
	}
	r.errCount = 0
	r.disconnected.Store(false)
	r.log.Infof("deck", "device %s reconnected", r.dev.ID())
	return nil
}

// RenderFrame clears the canvas to the background, invokes fn once
// against it, and publishes the result. The frame counter advances even
// when publishing fails so frame-driven animation keeps moving.
func (r *DeckRenderer) RenderFrame(fn RenderFunc) error {
	now := time.Now()
	var dt time.Duration
	if !r.lastFrame.IsZero() {
		dt = now.Sub(r.lastFrame)
	}
	r.lastFrame = now

	if err := r.canvas.Clear(r.background); err != nil {
		return err
	}
	frame := r.frames.Load()
	if fn != nil {
		fn(r.canvas, frame, dt)
	}
	r.frames.Add(1)
	r.fpsCounter.Tick()
	return r.Update()
}

// Start runs the paced render loop until Stop is called or the device
// is declared disconnected. It blocks the calling goroutine. A frame
// that overruns its slot is followed immediately by the next one.
func (r *DeckRenderer) Start(fn RenderFunc) error {
	if !r.running.CompareAndSwap(false, true) {
		return ErrAlreadyRunning
	}
	if r.cbs.OnStart != nil {
		r.cbs.OnStart()
	}
	interval := time.Second / time.Duration(r.targetFPS)

	var loopErr error
	for r.running.Load() {
		frameStart := time.Now()
		if err := r.RenderFrame(fn); err != nil {
			if r.cbs.OnError != nil {
				r.cbs.OnError(err)
			}
			if r.disconnected.Load() {
				loopErr = err
				break
			}
		}
		if r.cbs.OnFrame != nil {
			r.cbs.OnFrame(r.frames.Load(), r.fpsCounter.FPS())
		}
		if remaining := interval - time.Since(frameStart); remaining > 0 {
			time.Sleep(remaining)
		}
	}
	r.running.Store(false)

	// Best effort blank frame so the device does not keep showing the
	// last rendered content.
	if !r.disconnected.Load() {
		if err := r.canvas.Clear(r.background); err == nil {
			if err := r.publish(); err != nil {
				r.log.Errorf("deck", "blank frame: %v", err)
			}
		}
	}
	if r.cbs.OnStop != nil {
		r.cbs.OnStop()
	}
	return loopErr
}

// Stop flips the run flag only; the loop exits at the next frame
// boundary and performs shutdown there. Safe from signal handlers.
func (r *DeckRenderer) Stop() {
	r.running.Store(false)
}

// onKey translates device key indices to grid coordinates and guards
// the user callback. Presses only; releases are dropped.
func (r *DeckRenderer) onKey(index int, pressed bool) {
	if !pressed || r.cbs.OnKeyPress == nil {
		return
	}
	if index < 0 || index >= r.cols*r.rows {
		return
	}
	defer func() {
		if v := recover(); v != nil {
			err := fmt.Errorf("key callback panic: %v", v)
			r.log.Errorf("deck", "%v", err)
			if r.cbs.OnError != nil {
				r.cbs.OnError(err)
			}
		}
	}()
	r.cbs.OnKeyPress(index%r.cols, index/r.cols, index)
}

type noopLogger struct{}

func (noopLogger) Infof(component, format string, args ...interface{})  {}
func (noopLogger) Errorf(component, format string, args ...interface{}) {}
