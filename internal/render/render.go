// Package render drives a canvas onto a sink at a paced frame rate.
// Two renderers exist: DeckRenderer publishes tiles to a deck.Device,
// DebugRenderer dumps whole frames to PNG files.
package render

import (
	"errors"
	"time"

	"github.com/JulesMellot/SD-Canvas-Renderer/internal/canvas"
)

var (
	ErrNotRunning         = errors.New("renderer not running")
	ErrAlreadyRunning     = errors.New("renderer already running")
	ErrDeviceDisconnected = errors.New("device disconnected")
)

// RenderFunc draws one frame onto the canvas. frame is the total frame
// count so far and dt the time since the previous frame (zero on the
// first).
type RenderFunc func(c *canvas.Canvas, frame uint64, dt time.Duration)

// Callbacks are optional hooks into the render lifecycle. Nil fields
// are skipped.
type Callbacks struct {
	OnStart      func()
	OnStop       func()
	OnFrame      func(frame uint64, fps float64)
	OnError      func(err error)
	OnDisconnect func()
	OnKeyPress   func(col, row, index int)
}

// Logger is the subset of the app logger the renderers need.
type Logger interface {
	Infof(component, format string, args ...interface{})
	Errorf(component, format string, args ...interface{})
}

// Renderer is a frame-paced canvas sink. The two implementations in
// this package are the only ones.
type Renderer interface {
	// Canvas returns the surface render functions draw onto.
	Canvas() *canvas.Canvas

	IsRunning() bool
	FrameCount() uint64

	// FPS reports the measured frame rate over a short rolling window.
	FPS() float64

	// Update publishes the current canvas contents to the sink without
	// invoking a render function.
	Update() error

	// Start runs the paced render loop in the calling goroutine until
	// Stop is called or the sink fails hard.
	Start(fn RenderFunc) error

	// Stop requests loop exit at the next frame boundary. Safe to call
	// from a signal handler.
	Stop()

	// RenderFrame clears the canvas to the background, invokes fn once,
	// and publishes the result.
	RenderFrame(fn RenderFunc) error
}
