package canvas

import (
	"fmt"
	"image"

	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"
)

// TextAlign positions text within a tile.
type TextAlign string

const (
	AlignCenter TextAlign = "center"
	AlignTop    TextAlign = "top"
	AlignBottom TextAlign = "bottom"
	AlignLeft   TextAlign = "left"
)

// edge distance used by top/bottom alignment.
const textEdgePad = 10

// Anchor describes how TextAtPos interprets its coordinates: the first
// letter is horizontal (l, m, r), the second vertical (t, m, b).
type Anchor string

// DrawText renders text inside one tile at a named size.
// Offsets shift the anchor point in pixels.
func (c *Canvas) DrawText(col, row int, text string, hexColor string, size FontSize, align TextAlign, offsetX, offsetY int) error {
	rect, err := c.ButtonRect(col, row)
	if err != nil {
		return err
	}
	var x, y int
	var anchor Anchor
	switch align {
	case AlignCenter:
		x, y = rect.Min.X+rect.Dx()/2, rect.Min.Y+rect.Dy()/2
		anchor = "mm"
	case AlignTop:
		x, y = rect.Min.X+rect.Dx()/2, rect.Min.Y+textEdgePad
		anchor = "mt"
	case AlignBottom:
		x, y = rect.Min.X+rect.Dx()/2, rect.Max.Y-textEdgePad
		anchor = "mb"
	case AlignLeft:
		x, y = rect.Min.X, rect.Min.Y+rect.Dy()/2
		anchor = "lm"
	default:
		return fmt.Errorf("%w: text align %q", ErrInvalidParam, align)
	}
	return c.TextAtPos(x+offsetX, y+offsetY, text, hexColor, size, anchor)
}

// TextAtPos renders text at an absolute pixel position with an anchor.
func (c *Canvas) TextAtPos(x, y int, text string, hexColor string, size FontSize, anchor Anchor) error {
	rgba, err := c.rgba(hexColor)
	if err != nil {
		return err
	}
	face, err := c.fonts.face(size)
	if err != nil {
		return err
	}
	if len(anchor) != 2 {
		return fmt.Errorf("%w: text anchor %q", ErrInvalidParam, anchor)
	}

	drawer := &font.Drawer{
		Dst:  c.img,
		Src:  image.NewUniform(rgba),
		Face: face,
	}
	width := drawer.MeasureString(text).Ceil()
	metrics := face.Metrics()
	ascent := metrics.Ascent.Ceil()
	descent := metrics.Descent.Ceil()

	switch anchor[0] {
	case 'l':
	case 'm':
		x -= width / 2
	case 'r':
		x -= width
	default:
		return fmt.Errorf("%w: text anchor %q", ErrInvalidParam, anchor)
	}
	// Vertical anchors position the baseline.
	switch anchor[1] {
	case 't':
		y += ascent
	case 'm':
		y += (ascent - descent) / 2
	case 'b':
		y -= descent
	default:
		return fmt.Errorf("%w: text anchor %q", ErrInvalidParam, anchor)
	}

	drawer.Dot = fixed.P(x, y)
	drawer.DrawString(text)
	return nil
}

// MeasureText returns the rendered pixel width and line height of text
// at a named size.
func (c *Canvas) MeasureText(text string, size FontSize) (width, height int, err error) {
	face, err := c.fonts.face(size)
	if err != nil {
		return 0, 0, err
	}
	drawer := &font.Drawer{Face: face}
	m := face.Metrics()
	return drawer.MeasureString(text).Ceil(), m.Ascent.Ceil() + m.Descent.Ceil(), nil
}

// DrawIconText places a glyph-like string above a smaller label inside
// one tile, the classic button layout.
func (c *Canvas) DrawIconText(col, row int, icon, label string, iconColor, labelColor string, iconSize, labelSize FontSize) error {
	if err := c.DrawText(col, row, icon, iconColor, iconSize, AlignCenter, 0, -10); err != nil {
		return err
	}
	return c.DrawText(col, row, label, labelColor, labelSize, AlignCenter, 0, 20)
}
