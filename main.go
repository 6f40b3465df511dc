package main

import (
	"fmt"
	"math"
	"math/rand"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alecthomas/kong"

	"github.com/JulesMellot/SD-Canvas-Renderer/internal/app"
	"github.com/JulesMellot/SD-Canvas-Renderer/internal/canvas"
	"github.com/JulesMellot/SD-Canvas-Renderer/internal/config"
	"github.com/JulesMellot/SD-Canvas-Renderer/internal/widget"
)

type cliOptions struct {
	Config   string `short:"c" type:"path" help:"Config file path (TOML). Defaults to the XDG location."`
	Debug    bool   `short:"d" help:"Enable debug logging to ./sd-canvas-debug.log."`
	NoDevice bool   `help:"Skip device probing and render to PNG files."`
	FPS      int    `help:"Override the configured frame rate."`
	StdioLog string `help:"Redirect stdout+stderr (including panics) to this file. Also via SD_CANVAS_STDIO_LOG."`
}

func main() {
	var flags cliOptions
	parser := kong.Must(&flags,
		kong.Name("sd-canvas"),
		kong.Description("Demo dashboard for the grid canvas renderer."))
	_, err := parser.Parse(os.Args[1:])
	parser.FatalIfErrorf(err)

	logPath := flags.StdioLog
	if logPath == "" {
		logPath = os.Getenv("SD_CANVAS_STDIO_LOG")
	}
	if logPath != "" {
		if err := redirectStdIO(logPath); err != nil {
			fmt.Println("stdio log redirect error:", err)
		}
	}

	var logger app.Logger = app.NoopLogger{}
	if flags.Debug {
		f, err := os.OpenFile("./sd-canvas-debug.log", os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
		if err == nil {
			logger = app.NewFileLogger(f)
			logger.Infof("main", "debug logging enabled")
		} else {
			fmt.Println("debug log open error:", err)
		}
	}

	cfgPath := flags.Config
	if cfgPath == "" {
		if p, err := config.DefaultPath(); err == nil {
			cfgPath = p
		}
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		fmt.Println("config error:", err)
		os.Exit(1)
	}
	if flags.FPS != 0 {
		cfg.Render.FPS = flags.FPS
	}
	if flags.NoDevice {
		cfg.Render.Hardware = false
	}

	a := app.New(app.Options{
		TargetFPS:      cfg.Render.FPS,
		Brightness:     &cfg.Render.Brightness,
		Background:     cfg.Render.Background,
		Orientation:    cfg.Render.Orientation,
		PreferHardware: cfg.Render.Hardware,
		DebugCols:      cfg.Debug.Cols,
		DebugRows:      cfg.Debug.Rows,
		DebugTilePx:    cfg.Debug.TilePx,
		DebugDir:       cfg.Debug.Dir,
		Logger:         logger,
	})

	dash := &dashboard{}
	a.OnSetup = dash.setup
	a.OnLoop = dash.loop
	a.OnKeyPress = dash.keyPress

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sig
		a.Stop()
	}()

	if err := a.Run(); err != nil {
		logger.Errorf("main", "run: %v", err)
		fmt.Println("run error:", err)
		os.Exit(1)
	}
}

// dashboard is the demo scene: a couple of buttons, live meters fed
// with synthetic signals, and a moving headline.
type dashboard struct {
	playBtn *widget.Button
	stopBtn *widget.Button
	vu      *widget.VUMeter
	spark   *widget.Sparkline
	gauge   *widget.RadialGauge
	bar     *widget.ProgressBar
	timer   *widget.TimerDisplay
	grid    *widget.GridOverlay

	load float64
}

func (d *dashboard) setup(a *app.App) error {
	c := a.Canvas()
	cols, rows := c.Cols(), c.Rows()

	d.playBtn = widget.NewButton(0, 0, widget.ButtonConfig{Icon: ">", Label: "PLAY"})
	d.stopBtn = widget.NewButton(1, 0, widget.ButtonConfig{
		Icon: "x", Label: "STOP", Background: widget.ColorSurface,
	})
	a.Widgets.Add(d.playBtn)
	a.Widgets.Add(d.stopBtn)

	headline := widget.NewScrollingText(2, 0, cols-2, "SD Canvas Renderer demo dashboard", widget.ScrollingTextConfig{})
	a.Widgets.Add(headline)

	if rows > 1 {
		d.vu = widget.NewVUMeter(0, 1, 1, widget.VUMeterConfig{})
		d.spark = widget.NewSparkline(1, 1, min(2, cols-1), 1, widget.SparklineConfig{})
		d.gauge = widget.NewRadialGauge(min(3, cols-1), 1, widget.RadialGaugeConfig{Label: "load"})
		a.Widgets.Add(d.vu)
		a.Widgets.Add(d.spark)
		a.Widgets.Add(d.gauge)
		if cols > 4 {
			a.Widgets.Add(widget.NewSpinner(4, 1, widget.ColorPrimary, widget.ColorSurface))
		}
	}
	if rows > 2 {
		d.bar = widget.NewProgressBar(0, 2, min(3, cols), widget.ProgressBarConfig{})
		a.Widgets.Add(d.bar)
		d.timer = widget.NewTimerDisplay(min(3, cols-1), 2, widget.ColorTextPrimary, widget.ColorSurface)
		a.Widgets.Add(d.timer)
		if cols > 4 {
			a.Widgets.Add(widget.NewQRCode(4, 2, "https://example.com/sd-canvas"))
		}
	}

	d.grid = widget.NewGridOverlay(cols, rows, widget.ColorTextSecondary, true)
	d.grid.SetVisible(false)
	a.Widgets.Add(d.grid)
	return nil
}

func (d *dashboard) loop(c *canvas.Canvas, frame uint64, dt time.Duration) {
	t := float64(frame) / 30.0

	if d.vu != nil {
		level := math.Abs(math.Sin(t*2.1)) * (0.6 + 0.4*rand.Float64())
		d.vu.SetLevel(level)
	}
	if d.spark != nil {
		d.load = canvas.Clamp(d.load+(rand.Float64()-0.5)*8, 0, 100)
		d.spark.AddValue(d.load)
	}
	if d.gauge != nil {
		d.gauge.SetValue(d.load)
	}
	if d.bar != nil {
		d.bar.SetProgress(math.Mod(t/10, 1))
	}
	if d.timer != nil {
		d.timer.SetTime(math.Mod(t, 300), 300)
	}
}

func (d *dashboard) keyPress(a *app.App, col, row, index int) {
	switch w := a.Widgets.FindWidgetAt(col, row).(type) {
	case *widget.Button:
		w.SetPressed(!w.Pressed())
	default:
		d.grid.SetVisible(!d.grid.Visible())
	}
}
