package widget

import (
	"fmt"

	"github.com/JulesMellot/SD-Canvas-Renderer/internal/canvas"
)

// Gauge arc geometry: a 270 degree sweep opening downward, like a
// speedometer.
const (
	gaugeStartDeg = 135
	gaugeEndDeg   = 405
	gaugeArcWidth = 6
)

// RadialGaugeConfig holds the range and colors of a RadialGauge.
type RadialGaugeConfig struct {
	Min        float64
	Max        float64
	Color      string
	Background string
	Label      string
}

// RadialGauge shows a value on a circular arc with a centered numeric
// readout.
type RadialGauge struct {
	Base
	cfg   RadialGaugeConfig
	value float64
}

// NewRadialGauge creates a single-tile gauge. A zero-width range
// defaults to 0..100.
func NewRadialGauge(col, row int, cfg RadialGaugeConfig) *RadialGauge {
	if cfg.Max == cfg.Min {
		cfg.Min, cfg.Max = 0, 100
	}
	if cfg.Color == "" {
		cfg.Color = ColorPrimary
	}
	if cfg.Background == "" {
		cfg.Background = ColorSurface
	}
	return &RadialGauge{Base: NewBase(col, row, 1, 1), cfg: cfg}
}

// SetValue stores v clamped to the gauge range.
func (g *RadialGauge) SetValue(v float64) {
	g.value = canvas.Clamp(v, g.cfg.Min, g.cfg.Max)
}

// Value returns the stored, clamped value.
func (g *RadialGauge) Value() float64 { return g.value }

func (g *RadialGauge) Render(c *canvas.Canvas) error {
	if !g.Visible() {
		return nil
	}
	if err := g.ValidateBounds(c); err != nil {
		return err
	}
	col, row, _, _ := g.Bounds()

	radius := c.TilePx()/2 - 8
	pct := (g.value - g.cfg.Min) / (g.cfg.Max - g.cfg.Min)
	currentDeg := gaugeStartDeg + pct*(gaugeEndDeg-gaugeStartDeg)

	if err := c.DrawArc(col, row, radius, gaugeStartDeg, gaugeEndDeg, g.cfg.Background, gaugeArcWidth); err != nil {
		return err
	}
	if currentDeg > gaugeStartDeg {
		if err := c.DrawArc(col, row, radius, gaugeStartDeg, currentDeg, g.cfg.Color, gaugeArcWidth); err != nil {
			return err
		}
	}
	if err := c.DrawText(col, row, fmt.Sprintf("%d", int(g.value)), ColorTextPrimary, canvas.FontTitle, canvas.AlignCenter, 0, -2); err != nil {
		return err
	}
	if g.cfg.Label != "" {
		return c.DrawText(col, row, g.cfg.Label, ColorTextSecondary, canvas.FontTiny, canvas.AlignBottom, 0, -5)
	}
	return nil
}
