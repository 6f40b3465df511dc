package canvas

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"testing"
)

func mustCanvas(t *testing.T, cols, rows, tilePx int) *Canvas {
	t.Helper()
	c, err := New(cols, rows, tilePx, "#000000")
	if err != nil {
		t.Fatalf("New(%d, %d, %d): %v", cols, rows, tilePx, err)
	}
	return c
}

func TestNewRejectsBadSizes(t *testing.T) {
	tests := []struct {
		name               string
		cols, rows, tilePx int
	}{
		{"zero cols", 0, 3, 72},
		{"zero rows", 5, 0, 72},
		{"negative cols", -1, 3, 72},
		{"too many cols", 17, 3, 72},
		{"too many rows", 5, 17, 72},
		{"unsupported tile size", 5, 3, 64},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := New(tt.cols, tt.rows, tt.tilePx, "#000000"); err == nil {
				t.Errorf("New(%d, %d, %d) succeeded, want error", tt.cols, tt.rows, tt.tilePx)
			}
		})
	}
}

func TestNewRejectsBadBackground(t *testing.T) {
	if _, err := New(5, 3, 72, "red"); !errors.Is(err, ErrInvalidColor) {
		t.Errorf("New with bad background: err = %v, want ErrInvalidColor", err)
	}
}

func TestRegionRect(t *testing.T) {
	c := mustCanvas(t, 5, 3, 72)

	tests := []struct {
		name           string
		col, row, w, h int
		want           image.Rectangle
	}{
		{"origin single tile", 0, 0, 1, 1, image.Rect(0, 0, 72, 72)},
		{"offset single tile", 2, 1, 1, 1, image.Rect(144, 72, 216, 144)},
		{"wide span", 1, 0, 3, 1, image.Rect(72, 0, 288, 72)},
		{"full canvas", 0, 0, 5, 3, image.Rect(0, 0, 360, 216)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := c.RegionRect(tt.col, tt.row, tt.w, tt.h)
			if err != nil {
				t.Fatalf("RegionRect(%d, %d, %d, %d): %v", tt.col, tt.row, tt.w, tt.h, err)
			}
			if got != tt.want {
				t.Errorf("RegionRect(%d, %d, %d, %d) = %v, want %v", tt.col, tt.row, tt.w, tt.h, got, tt.want)
			}
		})
	}
}

func TestRegionRectOutOfBounds(t *testing.T) {
	c := mustCanvas(t, 5, 3, 72)

	tests := []struct {
		name           string
		col, row, w, h int
	}{
		{"negative col", -1, 0, 1, 1},
		{"negative row", 0, -1, 1, 1},
		{"zero width", 0, 0, 0, 1},
		{"zero height", 0, 0, 1, 0},
		{"col past edge", 5, 0, 1, 1},
		{"row past edge", 0, 3, 1, 1},
		{"span past right edge", 3, 0, 3, 1},
		{"span past bottom edge", 0, 2, 1, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := c.RegionRect(tt.col, tt.row, tt.w, tt.h); !errors.Is(err, ErrOutOfBounds) {
				t.Errorf("RegionRect(%d, %d, %d, %d): err = %v, want ErrOutOfBounds", tt.col, tt.row, tt.w, tt.h, err)
			}
		})
	}
}

func TestDrawPrimitivesRejectOutOfBounds(t *testing.T) {
	c := mustCanvas(t, 3, 2, 80)
	before := append([]byte(nil), c.Image().Pix...)

	tests := []struct {
		name string
		call func() error
	}{
		{"rect", func() error { return c.DrawRect(3, 0, 1, 1, "#FF0000", "", 0, 0) }},
		{"rect span", func() error { return c.DrawRect(2, 0, 2, 1, "#FF0000", "", 0, 0) }},
		{"gradient rect", func() error { return c.DrawGradientRect(0, 2, 1, 1, "#FF0000", "#00FF00", GradientVertical) }},
		{"circle", func() error { return c.DrawCircle(-1, 0, 10, "#FF0000", "", 0) }},
		{"arc", func() error { return c.DrawArc(0, 5, 10, 0, 90, "#FF0000", 2) }},
		{"pieslice", func() error { return c.DrawPieslice(9, 9, 10, 0, 90, "#FF0000", "", 0) }},
		{"text", func() error { return c.DrawText(0, -1, "x", "#FF0000", FontNormal, AlignCenter, 0, 0) }},
		{"paste", func() error { return c.PasteImage(3, 0, image.NewRGBA(image.Rect(0, 0, 80, 80))) }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.call(); !errors.Is(err, ErrOutOfBounds) {
				t.Errorf("err = %v, want ErrOutOfBounds", err)
			}
		})
	}

	if !bytes.Equal(before, c.Image().Pix) {
		t.Error("rejected primitives mutated the canvas")
	}
}

func TestDrawPiesliceRejectsBadBorderWithoutMutation(t *testing.T) {
	c := mustCanvas(t, 3, 2, 80)
	before := append([]byte(nil), c.Image().Pix...)

	tests := []struct {
		name string
		call func() error
		want error
	}{
		{"zero border width", func() error {
			return c.DrawPieslice(0, 0, 20, 0, 90, "#FF0000", "#FFFFFF", 0)
		}, ErrInvalidParam},
		{"bad border color", func() error {
			return c.DrawPieslice(0, 0, 20, 0, 90, "#FF0000", "nope", 2)
		}, ErrInvalidColor},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.call(); !errors.Is(err, tt.want) {
				t.Errorf("err = %v, want %v", err, tt.want)
			}
		})
	}

	if !bytes.Equal(before, c.Image().Pix) {
		t.Error("rejected pieslice painted the sector before failing")
	}
}

func TestClearIdempotent(t *testing.T) {
	c := mustCanvas(t, 3, 2, 80)
	if err := c.DrawRect(0, 0, 1, 1, "#FF0000", "", 0, 0); err != nil {
		t.Fatalf("DrawRect: %v", err)
	}

	if err := c.Clear("#112233"); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	once := append([]byte(nil), c.Image().Pix...)

	if err := c.Clear("#112233"); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	if !bytes.Equal(once, c.Image().Pix) {
		t.Error("second Clear changed pixel state")
	}
}

// paintTile fills one tile with a color that encodes its canvas
// position: R is the column, G the row in top-down coordinates.
func paintTile(t *testing.T, c *Canvas, col, row int) {
	t.Helper()
	rect, err := c.ButtonRect(col, row)
	if err != nil {
		t.Fatalf("ButtonRect(%d, %d): %v", col, row, err)
	}
	img := c.Image()
	for y := rect.Min.Y; y < rect.Max.Y; y++ {
		for x := rect.Min.X; x < rect.Max.X; x++ {
			img.SetRGBA(x, y, color.RGBA{R: uint8(col), G: uint8(row), A: 0xFF})
		}
	}
}

func TestTileImagesScanOrder(t *testing.T) {
	c := mustCanvas(t, 5, 3, 72)
	for row := 0; row < 3; row++ {
		for col := 0; col < 5; col++ {
			paintTile(t, c, col, row)
		}
	}

	tiles := c.TileImages()
	if len(tiles) != 15 {
		t.Fatalf("len(tiles) = %d, want 15", len(tiles))
	}
	for i, tile := range tiles {
		if tile.Bounds().Dx() != 72 || tile.Bounds().Dy() != 72 {
			t.Fatalf("tile %d size = %dx%d, want 72x72", i, tile.Bounds().Dx(), tile.Bounds().Dy())
		}
		wantCol := i % 5
		wantRow := 2 - i/5 // index 0 is the bottom-left tile
		got := tile.RGBAAt(36, 36)
		if int(got.R) != wantCol || int(got.G) != wantRow {
			t.Errorf("tile %d came from (col=%d, row=%d), want (col=%d, row=%d)",
				i, got.R, got.G, wantCol, wantRow)
		}
	}
}

func TestPasteImageRescales(t *testing.T) {
	c := mustCanvas(t, 3, 2, 80)
	src := image.NewRGBA(image.Rect(0, 0, 40, 40))
	for y := 0; y < 40; y++ {
		for x := 0; x < 40; x++ {
			src.SetRGBA(x, y, color.RGBA{R: 0xFF, A: 0xFF})
		}
	}
	if err := c.PasteImage(1, 1, src); err != nil {
		t.Fatalf("PasteImage: %v", err)
	}
	got := c.Image().RGBAAt(120, 120)
	if got.R < 0xF0 {
		t.Errorf("pasted tile center R = %#x, want near 0xFF", got.R)
	}
}
