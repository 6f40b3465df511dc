package render

import (
	"fmt"
	"image/png"
	"os"
	"path/filepath"
	"sync/atomic"
	"time"

	"github.com/JulesMellot/SD-Canvas-Renderer/internal/canvas"
)

const debugLogEvery = 30

// DebugConfig configures a DebugRenderer. Geometry is explicit since
// there is no device to probe.
type DebugConfig struct {
	Cols       int
	Rows       int
	TilePx     int
	TargetFPS  int    // default 30
	Background string // hex, default "#000000"
	Dir        string // frame dump directory, default "frames"
	Logger     Logger
	Callbacks  Callbacks
}

// DebugRenderer writes each published frame as a PNG of the whole
// canvas. Useful headless; it never fails hard the way a device does.
type DebugRenderer struct {
	canvas *canvas.Canvas
	log    Logger
	cbs    Callbacks

	targetFPS  int
	background string
	dir        string
	dirReady   bool

	running    atomic.Bool
	frames     atomic.Uint64
	fpsCounter FPSCounter
	lastFrame  time.Time
}

// NewDebugRenderer validates the geometry and builds the canvas. The
// dump directory is created lazily on the first update.
func NewDebugRenderer(cfg DebugConfig) (*DebugRenderer, error) {
	if cfg.TargetFPS == 0 {
		cfg.TargetFPS = 30
	}
	if err := canvas.ValidateFPS(cfg.TargetFPS); err != nil {
		return nil, err
	}
	if cfg.Background == "" {
		cfg.Background = "#000000"
	}
	if cfg.Dir == "" {
		cfg.Dir = "frames"
	}
	if cfg.Logger == nil {
		cfg.Logger = noopLogger{}
	}
	c, err := canvas.New(cfg.Cols, cfg.Rows, cfg.TilePx, cfg.Background)
	if err != nil {
		return nil, err
	}
	return &DebugRenderer{
		canvas:     c,
		log:        cfg.Logger,
		cbs:        cfg.Callbacks,
		targetFPS:  cfg.TargetFPS,
		background: cfg.Background,
		dir:        cfg.Dir,
	}, nil
}

func (r *DebugRenderer) Canvas() *canvas.Canvas { return r.canvas }
func (r *DebugRenderer) IsRunning() bool        { return r.running.Load() }
func (r *DebugRenderer) FrameCount() uint64     { return r.frames.Load() }
func (r *DebugRenderer) FPS() float64           { return r.fpsCounter.FPS() }
func (r *DebugRenderer) TargetFPS() int         { return r.targetFPS }

// Dir returns the frame dump directory.
func (r *DebugRenderer) Dir() string { return r.dir }

// Update writes the canvas to dir/frame_NNNNNN.png, numbered by the
// current frame count.
func (r *DebugRenderer) Update() error {
	if !r.dirReady {
		if err := os.MkdirAll(r.dir, 0o755); err != nil {
			return fmt.Errorf("debug renderer: create %s: %w", r.dir, err)
		}
		r.dirReady = true
	}
	name := filepath.Join(r.dir, fmt.Sprintf("frame_%06d.png", r.frames.Load()))
	f, err := os.Create(name)
	if err != nil {
		return fmt.Errorf("debug renderer: %w", err)
	}
	if err := png.Encode(f, r.canvas.Image()); err != nil {
		f.Close()
		return fmt.Errorf("debug renderer: encode %s: %w", name, err)
	}
	return f.Close()
}

// RenderFrame clears the canvas to the background, invokes fn once,
// and writes the frame file.
func (r *DebugRenderer) RenderFrame(fn RenderFunc) error {
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
	err := r.Update()
	r.frames.Add(1)
	r.fpsCounter.Tick()
	if frame > 0 && frame%debugLogEvery == 0 {
		r.log.Infof("debug", "frame %d written, %.1f fps", frame, r.fpsCounter.FPS())
	}
	return err
}

// Start runs the paced loop until Stop. File write failures are
// reported through OnError and logged but do not end the loop.
func (r *DebugRenderer) Start(fn RenderFunc) error {
	if !r.running.CompareAndSwap(false, true) {
		return ErrAlreadyRunning
	}
	if r.cbs.OnStart != nil {
		r.cbs.OnStart()
	}
	interval := time.Second / time.Duration(r.targetFPS)

	for r.running.Load() {
		frameStart := time.Now()
		if err := r.RenderFrame(fn); err != nil {
			r.log.Errorf("debug", "%v", err)
			if r.cbs.OnError != nil {
				r.cbs.OnError(err)
			}
		}
		if r.cbs.OnFrame != nil {
			r.cbs.OnFrame(r.frames.Load(), r.fpsCounter.FPS())
		}
		if remaining := interval - time.Since(frameStart); remaining > 0 {
			time.Sleep(remaining)
		}
	}
	if r.cbs.OnStop != nil {
		r.cbs.OnStop()
	}
	return nil
}

func (r *DebugRenderer) Stop() {
	r.running.Store(false)
}
