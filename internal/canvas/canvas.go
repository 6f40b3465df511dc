// Package canvas implements the grid-addressable pixel surface for a
// multi-button display. The surface spans cols x rows square tiles and
// is sliced into per-tile images in device scan order for publishing.
package canvas

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"

	xdraw "golang.org/x/image/draw"
)

// innerPadding is the fixed inward padding applied by the rect
// primitives so adjacent widgets never visually touch.
const innerPadding = 3

// Canvas owns one contiguous RGBA buffer covering the whole tile grid.
// It is not safe for concurrent use; a renderer owns its canvas for the
// renderer's lifetime.
type Canvas struct {
	cols   int
	rows   int
	tilePx int

	img        *image.RGBA
	fonts      fontCache
	colorCache map[string]color.RGBA
}

// New creates a canvas of cols x rows tiles of tilePx pixels each,
// cleared to the background color.
func New(cols, rows, tilePx int, background string) (*Canvas, error) {
	if err := ValidateSize(cols, rows, tilePx); err != nil {
		return nil, err
	}
	if err := ValidateColor(background); err != nil {
		return nil, err
	}
	c := &Canvas{
		cols:       cols,
		rows:       rows,
		tilePx:     tilePx,
		colorCache: make(map[string]color.RGBA, colorCacheMax),
	}
	if err := c.Clear(background); err != nil {
		return nil, err
	}
	return c, nil
}

// Cols returns the number of tile columns.
func (c *Canvas) Cols() int { return c.cols }

// Rows returns the number of tile rows.
func (c *Canvas) Rows() int { return c.rows }

// TilePx returns the tile edge length in pixels.
func (c *Canvas) TilePx() int { return c.tilePx }

// WidthPx returns the full surface width in pixels.
func (c *Canvas) WidthPx() int { return c.cols * c.tilePx }

// HeightPx returns the full surface height in pixels.
func (c *Canvas) HeightPx() int { return c.rows * c.tilePx }

// Image exposes the backing buffer for publishing. Callers must not
// retain it across Clear.
func (c *Canvas) Image() *image.RGBA { return c.img }

// Clear repaints the whole surface with a solid color, recreating the
// backing buffer. It is idempotent and called once per frame before
// compositing.
func (c *Canvas) Clear(col string) error {
	rgba, err := c.rgba(col)
	if err != nil {
		return err
	}
	c.img = image.NewRGBA(image.Rect(0, 0, c.WidthPx(), c.HeightPx()))
	draw.Draw(c.img, c.img.Bounds(), &image.Uniform{C: rgba}, image.Point{}, draw.Src)
	return nil
}

// ButtonRect returns the pixel rectangle of a single tile.
func (c *Canvas) ButtonRect(col, row int) (image.Rectangle, error) {
	return c.RegionRect(col, row, 1, 1)
}

// RegionRect returns the pixel rectangle of a w x h tile region
// anchored at (col,row).
func (c *Canvas) RegionRect(col, row, w, h int) (image.Rectangle, error) {
	if err := ValidateRegion(c.cols, c.rows, col, row, w, h); err != nil {
		return image.Rectangle{}, err
	}
	x := col * c.tilePx
	y := row * c.tilePx
	return image.Rect(x, y, x+w*c.tilePx, y+h*c.tilePx), nil
}

// TileImages slices the surface into cols*rows tile copies in device
// scan order: rows bottom-to-top, columns left-to-right within each
// row. Index 0 is the bottom-left tile. This ordering is the key-index
// contract of the device uploads and must not change.
func (c *Canvas) TileImages() []*image.RGBA {
	tiles := make([]*image.RGBA, 0, c.cols*c.rows)
	for row := c.rows - 1; row >= 0; row-- {
		for col := 0; col < c.cols; col++ {
			src := image.Rect(col*c.tilePx, row*c.tilePx, (col+1)*c.tilePx, (row+1)*c.tilePx)
			tile := image.NewRGBA(image.Rect(0, 0, c.tilePx, c.tilePx))
			draw.Draw(tile, tile.Bounds(), c.img, src.Min, draw.Src)
			tiles = append(tiles, tile)
		}
	}
	return tiles
}

// PasteImage blits img into exactly one tile, rescaling it first when
// its dimensions differ from the tile size.
func (c *Canvas) PasteImage(col, row int, img image.Image) error {
	if img == nil {
		return fmt.Errorf("%w: nil image", ErrInvalidParam)
	}
	dst, err := c.ButtonRect(col, row)
	if err != nil {
		return err
	}
	if img.Bounds().Dx() == c.tilePx && img.Bounds().Dy() == c.tilePx {
		draw.Draw(c.img, dst, img, img.Bounds().Min, draw.Over)
		return nil
	}
	xdraw.CatmullRom.Scale(c.img, dst, img, img.Bounds(), xdraw.Over, nil)
	return nil
}
