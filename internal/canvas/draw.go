package canvas

import (
	"fmt"
	"image"
	"image/color"
	"math"
)

// GradientDirection selects the axis of a linear gradient fill.
type GradientDirection string

const (
	GradientVertical   GradientDirection = "vertical"
	GradientHorizontal GradientDirection = "horizontal"
)

// circleMargin keeps circles, arcs and pie slices clear of the tile
// edge.
const circleMargin = 5

// DrawRect fills a tile region, optionally stroked and with rounded
// corners. The fixed inner padding keeps adjacent widgets apart.
// border == "" draws no stroke.
func (c *Canvas) DrawRect(col, row, w, h int, fill, border string, borderWidth, radius int) error {
	rect, err := c.RegionRect(col, row, w, h)
	if err != nil {
		return err
	}
	fillRGBA, err := c.rgba(fill)
	if err != nil {
		return err
	}
	if radius < 0 {
		return fmt.Errorf("%w: radius must be >= 0, got %d", ErrInvalidParam, radius)
	}
	inner := rect.Inset(innerPadding)

	if border != "" {
		if err := ValidatePositive(borderWidth, "borderWidth"); err != nil {
			return err
		}
		borderRGBA, err := c.rgba(border)
		if err != nil {
			return err
		}
		// Stroke by painting the border color first, then the fill
		// inset by the border width.
		fillRoundedRect(c.img, inner, radius, borderRGBA)
		core := inner.Inset(borderWidth)
		coreRadius := radius - borderWidth
		if coreRadius < 0 {
			coreRadius = 0
		}
		if !core.Empty() {
			fillRoundedRect(c.img, core, coreRadius, fillRGBA)
		}
		return nil
	}

	fillRoundedRect(c.img, inner, radius, fillRGBA)
	return nil
}

// DrawGradientRect fills a tile region with a per-pixel linear
// interpolation between two colors along the chosen axis, inside the
// same padded area as DrawRect.
func (c *Canvas) DrawGradientRect(col, row, w, h int, start, end string, dir GradientDirection) error {
	rect, err := c.RegionRect(col, row, w, h)
	if err != nil {
		return err
	}
	from, err := c.rgba(start)
	if err != nil {
		return err
	}
	to, err := c.rgba(end)
	if err != nil {
		return err
	}
	if dir != GradientVertical && dir != GradientHorizontal {
		return fmt.Errorf("%w: gradient direction %q", ErrInvalidParam, dir)
	}
	inner := rect.Inset(innerPadding)
	span := inner.Dy()
	if dir == GradientHorizontal {
		span = inner.Dx()
	}
	if span <= 0 {
		return nil
	}
	for y := inner.Min.Y; y < inner.Max.Y; y++ {
		for x := inner.Min.X; x < inner.Max.X; x++ {
			pos := y - inner.Min.Y
			if dir == GradientHorizontal {
				pos = x - inner.Min.X
			}
			f := float64(pos) / float64(span)
			c.img.SetRGBA(x, y, lerpRGBA(from, to, f))
		}
	}
	return nil
}

// DrawCircle fills a circle centered on a tile's midpoint. The radius
// is clamped so the shape stays inside the tile.
func (c *Canvas) DrawCircle(col, row, radius int, fill, border string, borderWidth int) error {
	rect, err := c.ButtonRect(col, row)
	if err != nil {
		return err
	}
	if err := ValidatePositive(radius, "radius"); err != nil {
		return err
	}
	fillRGBA, err := c.rgba(fill)
	if err != nil {
		return err
	}
	cx, cy := center(rect)
	r := clampRadius(radius, rect)

	if border != "" {
		if err := ValidatePositive(borderWidth, "borderWidth"); err != nil {
			return err
		}
		borderRGBA, err := c.rgba(border)
		if err != nil {
			return err
		}
		fillCircle(c.img, cx, cy, r, borderRGBA)
		if r > borderWidth {
			fillCircle(c.img, cx, cy, r-borderWidth, fillRGBA)
		}
		return nil
	}

	fillCircle(c.img, cx, cy, r, fillRGBA)
	return nil
}

// DrawArc strokes a circular arc centered on a tile's midpoint.
// Angles are in degrees, 0 at three o'clock, increasing clockwise.
func (c *Canvas) DrawArc(col, row, radius int, startDeg, endDeg float64, hexColor string, width int) error {
	rect, err := c.ButtonRect(col, row)
	if err != nil {
		return err
	}
	if err := ValidatePositive(radius, "radius"); err != nil {
		return err
	}
	if err := ValidatePositive(width, "width"); err != nil {
		return err
	}
	rgba, err := c.rgba(hexColor)
	if err != nil {
		return err
	}
	cx, cy := center(rect)
	r := clampRadius(radius, rect)
	strokeArc(c.img, cx, cy, r, startDeg, endDeg, width, rgba)
	return nil
}

// DrawPieslice fills an angular sector centered on a tile's midpoint,
// optionally stroked along its boundary.
func (c *Canvas) DrawPieslice(col, row, radius int, startDeg, endDeg float64, fill, border string, borderWidth int) error {
	rect, err := c.ButtonRect(col, row)
	if err != nil {
		return err
	}
	if err := ValidatePositive(radius, "radius"); err != nil {
		return err
	}
	fillRGBA, err := c.rgba(fill)
	if err != nil {
		return err
	}
	var borderRGBA color.RGBA
	if border != "" {
		if err := ValidatePositive(borderWidth, "borderWidth"); err != nil {
			return err
		}
		borderRGBA, err = c.rgba(border)
		if err != nil {
			return err
		}
	}
	cx, cy := center(rect)
	r := clampRadius(radius, rect)

	sweep := endDeg - startDeg
	if sweep < 0 {
		sweep = 0
	}
	r2 := r * r
	for y := cy - r; y <= cy+r; y++ {
		for x := cx - r; x <= cx+r; x++ {
			dx, dy := x-cx, y-cy
			if dx*dx+dy*dy > r2 {
				continue
			}
			a := math.Mod(math.Atan2(float64(dy), float64(dx))*180/math.Pi-startDeg, 360)
			if a < 0 {
				a += 360
			}
			if a <= sweep || sweep >= 360 {
				c.img.SetRGBA(x, y, fillRGBA)
			}
		}
	}

	if border != "" {
		strokeArc(c.img, cx, cy, r, startDeg, endDeg, borderWidth, borderRGBA)
		for _, deg := range []float64{startDeg, endDeg} {
			rad := deg * math.Pi / 180
			ex := cx + int(float64(r)*math.Cos(rad))
			ey := cy + int(float64(r)*math.Sin(rad))
			drawSegment(c.img, cx, cy, ex, ey, borderWidth, borderRGBA)
		}
	}
	return nil
}

// DrawLine draws a straight line between absolute pixel coordinates.
// No tile validation applies; lines may span the whole surface (grid
// overlays rely on this).
func (c *Canvas) DrawLine(x1, y1, x2, y2 int, hexColor string, width int) error {
	if err := ValidatePositive(width, "width"); err != nil {
		return err
	}
	rgba, err := c.rgba(hexColor)
	if err != nil {
		return err
	}
	drawSegment(c.img, x1, y1, x2, y2, width, rgba)
	return nil
}

// ---- rasterization helpers ----

func center(rect image.Rectangle) (int, int) {
	return rect.Min.X + rect.Dx()/2, rect.Min.Y + rect.Dy()/2
}

func clampRadius(radius int, rect image.Rectangle) int {
	max := rect.Dx()
	if rect.Dy() < max {
		max = rect.Dy()
	}
	max = max/2 - circleMargin
	if radius > max {
		return max
	}
	if radius < 1 {
		return 1
	}
	return radius
}

func lerpRGBA(a, b color.RGBA, f float64) color.RGBA {
	mix := func(x, y uint8) uint8 {
		return uint8(float64(x) + (float64(y)-float64(x))*f)
	}
	return color.RGBA{R: mix(a.R, b.R), G: mix(a.G, b.G), B: mix(a.B, b.B), A: 0xFF}
}

// fillRoundedRect paints rect with quarter-circle corners of the given
// radius using one horizontal span per scanline.
func fillRoundedRect(img *image.RGBA, rect image.Rectangle, radius int, col color.RGBA) {
	if rect.Empty() {
		return
	}
	maxRadius := rect.Dx() / 2
	if rect.Dy()/2 < maxRadius {
		maxRadius = rect.Dy() / 2
	}
	if radius > maxRadius {
		radius = maxRadius
	}
	fr := float64(radius)
	for y := rect.Min.Y; y < rect.Max.Y; y++ {
		inset := 0
		top := y - rect.Min.Y
		bottom := rect.Max.Y - 1 - y
		if top < radius || bottom < radius {
			d := top
			if bottom < d {
				d = bottom
			}
			dy := fr - float64(d) - 0.5
			inset = int(fr - math.Sqrt(fr*fr-dy*dy) + 0.5)
		}
		for x := rect.Min.X + inset; x < rect.Max.X-inset; x++ {
			img.SetRGBA(x, y, col)
		}
	}
}

func fillCircle(img *image.RGBA, cx, cy, r int, col color.RGBA) {
	for dy := -r; dy <= r; dy++ {
		span := int(math.Sqrt(float64(r*r - dy*dy)))
		for dx := -span; dx <= span; dx++ {
			img.SetRGBA(cx+dx, cy+dy, col)
		}
	}
}

// strokeArc stamps small discs along the arc path. The angular step
// shrinks with the radius so the stroke stays continuous.
func strokeArc(img *image.RGBA, cx, cy, r int, startDeg, endDeg float64, width int, col color.RGBA) {
	if endDeg < startDeg {
		return
	}
	step := 45.0 / float64(r+1)
	if step > 1 {
		step = 1
	}
	pen := width / 2
	for a := startDeg; a <= endDeg; a += step {
		rad := a * math.Pi / 180
		x := cx + int(float64(r)*math.Cos(rad))
		y := cy + int(float64(r)*math.Sin(rad))
		stampPen(img, x, y, pen, col)
	}
}

func drawSegment(img *image.RGBA, x1, y1, x2, y2, width int, col color.RGBA) {
	dx := x2 - x1
	dy := y2 - y1
	steps := abs(dx)
	if abs(dy) > steps {
		steps = abs(dy)
	}
	pen := width / 2
	if steps == 0 {
		stampPen(img, x1, y1, pen, col)
		return
	}
	for i := 0; i <= steps; i++ {
		x := x1 + dx*i/steps
		y := y1 + dy*i/steps
		stampPen(img, x, y, pen, col)
	}
}

// stampPen sets a filled disc of radius pen (a single pixel when pen
// is 0) at (x,y).
func stampPen(img *image.RGBA, x, y, pen int, col color.RGBA) {
	if pen <= 0 {
		img.SetRGBA(x, y, col)
		return
	}
	fillCircle(img, x, y, pen, col)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
