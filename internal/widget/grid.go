package widget

import (
	"strconv"

	"github.com/JulesMellot/SD-Canvas-Renderer/internal/canvas"
)

// GridOverlay draws tile boundaries and optional key indices across
// the whole canvas. Debug aid for laying out dashboards.
type GridOverlay struct {
	Base
	color       string
	showNumbers bool
}

// NewGridOverlay creates an overlay for a cols x rows canvas.
func NewGridOverlay(cols, rows int, color string, showNumbers bool) *GridOverlay {
	if color == "" {
		color = ColorSurface
	}
	return &GridOverlay{Base: NewBase(0, 0, cols, rows), color: color, showNumbers: showNumbers}
}

func (g *GridOverlay) Render(c *canvas.Canvas) error {
	if !g.Visible() {
		return nil
	}
	if err := g.ValidateBounds(c); err != nil {
		return err
	}
	_, _, cols, rows := g.Bounds()

	for col := 0; col <= cols; col++ {
		x := col * c.TilePx()
		if err := c.DrawLine(x, 0, x, c.HeightPx(), g.color, 1); err != nil {
			return err
		}
	}
	for row := 0; row <= rows; row++ {
		y := row * c.TilePx()
		if err := c.DrawLine(0, y, c.WidthPx(), y, g.color, 1); err != nil {
			return err
		}
	}

	if g.showNumbers {
		index := 0
		for row := 0; row < rows; row++ {
			for col := 0; col < cols; col++ {
				if err := c.DrawText(col, row, strconv.Itoa(index), g.color, canvas.FontSmall, canvas.AlignTop, 0, 5); err != nil {
					return err
				}
				index++
			}
		}
	}
	return nil
}
