package widget

import (
	"math"

	"github.com/JulesMellot/SD-Canvas-Renderer/internal/canvas"
)

const (
	spinnerPoints    = 8
	spinnerRadius    = 20
	spinnerStepDeg   = 15
	spinnerPenRadius = 2
)

// Spinner draws evenly spaced dots on a circle, rotating a fixed
// angular step each frame. Purely frame-counted; no timer.
type Spinner struct {
	Base
	color      string
	background string
	angle      float64
}

// NewSpinner creates a single-tile spinner. background == "" leaves
// the tile untouched behind the dots.
func NewSpinner(col, row int, color, background string) *Spinner {
	if color == "" {
		color = ColorSecondary
	}
	return &Spinner{Base: NewBase(col, row, 1, 1), color: color, background: background}
}

// Angle exposes the current rotation phase in degrees.
func (s *Spinner) Angle() float64 { return s.angle }

func (s *Spinner) Render(c *canvas.Canvas) error {
	if !s.Visible() {
		return nil
	}
	if err := s.ValidateBounds(c); err != nil {
		return err
	}
	col, row, _, _ := s.Bounds()

	if s.background != "" {
		if err := c.DrawRect(col, row, 1, 1, s.background, "", 1, 10); err != nil {
			return err
		}
	}

	rect, err := c.ButtonRect(col, row)
	if err != nil {
		return err
	}
	cx := rect.Min.X + rect.Dx()/2
	cy := rect.Min.Y + rect.Dy()/2

	for i := 0; i < spinnerPoints; i++ {
		deg := s.angle + float64(i)*(360.0/spinnerPoints)
		rad := deg * math.Pi / 180
		px := cx + int(spinnerRadius*math.Cos(rad))
		py := cy + int(spinnerRadius*math.Sin(rad))
		// Trailing dots shrink for a motion cue.
		size := spinnerPenRadius + int(3*(1-float64(i)/spinnerPoints))
		if err := c.DrawLine(px, py, px, py, s.color, 2*size); err != nil {
			return err
		}
	}

	s.angle = math.Mod(s.angle+spinnerStepDeg, 360)
	return nil
}
