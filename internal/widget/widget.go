// Package widget provides stateful drawable components composed onto a
// canvas. Widgets address the grid in tile coordinates and draw only
// through the canvas primitives.
package widget

import (
	"fmt"

	"github.com/JulesMellot/SD-Canvas-Renderer/internal/canvas"
)

// Default palette shared by the widget constructors.
const (
	ColorPrimary       = "#FF6B35"
	ColorSecondary     = "#F7931E"
	ColorAccent        = "#FFB627"
	ColorBackground    = "#1A1110"
	ColorSurface       = "#4A4543"
	ColorTextPrimary   = "#FFF8F0"
	ColorTextSecondary = "#CCC2BF"
	ColorSuccess       = "#4CAF50"
	ColorWarning       = "#FF9800"
	ColorError         = "#F44336"
)

// Widget is anything that can draw itself onto a canvas given its own
// top-left tile and tile-span.
type Widget interface {
	// Render draws the widget. Implementations no-op when invisible,
	// re-validate their bounds against the current canvas, draw, and
	// then advance any internal animation state.
	Render(c *canvas.Canvas) error

	// Bounds reports the widget's tile rectangle.
	Bounds() (col, row, width, height int)

	Visible() bool
}

// Base carries the position, span and visibility common to every
// widget. Embed it and call ValidateBounds at the top of Render.
type Base struct {
	col    int
	row    int
	width  int
	height int
	hidden bool
}

// NewBase returns a visible base at (col,row) spanning width x height
// tiles.
func NewBase(col, row, width, height int) Base {
	return Base{col: col, row: row, width: width, height: height}
}

func (b *Base) Bounds() (col, row, width, height int) {
	return b.col, b.row, b.width, b.height
}

func (b *Base) Visible() bool { return !b.hidden }

func (b *Base) SetVisible(v bool) { b.hidden = !v }

// Contains reports whether the tile (col,row) falls inside the widget.
func (b *Base) Contains(col, row int) bool {
	return col >= b.col && col < b.col+b.width &&
		row >= b.row && row < b.row+b.height
}

// ValidateBounds re-checks the widget against the current canvas size.
// The canvas is stable for a renderer's lifetime, but the check is
// cheap and runs on every render.
func (b *Base) ValidateBounds(c *canvas.Canvas) error {
	return canvas.ValidateRegion(c.Cols(), c.Rows(), b.col, b.row, b.width, b.height)
}

// Func adapts a plain render function into a Widget.
type Func struct {
	Base
	Fn func(b *Base, c *canvas.Canvas) error
}

// NewFunc wraps fn as a widget spanning width x height tiles.
func NewFunc(col, row, width, height int, fn func(b *Base, c *canvas.Canvas) error) *Func {
	return &Func{Base: NewBase(col, row, width, height), Fn: fn}
}

func (f *Func) Render(c *canvas.Canvas) error {
	if !f.Visible() {
		return nil
	}
	if err := f.ValidateBounds(c); err != nil {
		return err
	}
	if f.Fn == nil {
		return nil
	}
	return f.Fn(&f.Base, c)
}

func renderError(w Widget, err error) error {
	return fmt.Errorf("widget %T: %w", w, err)
}
