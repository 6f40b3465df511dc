package canvas

import (
	"fmt"
	"os"

	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
)

// FontSize names the fixed text sizes available to DrawText.
type FontSize string

const (
	FontHuge   FontSize = "huge"
	FontLarge  FontSize = "large"
	FontTitle  FontSize = "title"
	FontNormal FontSize = "normal"
	FontSmall  FontSize = "small"
	FontTiny   FontSize = "tiny"
)

// fontPoints maps each named size to its point size at 72 DPI, so
// points equal pixels.
var fontPoints = map[FontSize]float64{
	FontHuge:   32,
	FontLarge:  24,
	FontTitle:  18,
	FontNormal: 14,
	FontSmall:  11,
	FontTiny:   9,
}

// fontCandidates is the ordered list of platform font files tried on
// first use. When none parse, every size falls back to basicfont.
var fontCandidates = []string{
	"/usr/share/fonts/truetype/dejavu/DejaVuSans.ttf",
	"/System/Library/Fonts/Supplemental/Arial.ttf",
	"C:\\Windows\\Fonts\\arial.ttf",
	"Arial.ttf",
}

// fontCache lazily builds one font.Face per named size. It is owned by
// a single canvas so tests never share loader state.
type fontCache struct {
	faces  map[FontSize]font.Face
	loaded bool
}

func (fc *fontCache) face(size FontSize) (font.Face, error) {
	if _, ok := fontPoints[size]; !ok {
		return nil, fmt.Errorf("%w: unknown font size %q", ErrFont, size)
	}
	if !fc.loaded {
		fc.load()
	}
	return fc.faces[size], nil
}

func (fc *fontCache) load() {
	fc.faces = make(map[FontSize]font.Face, len(fontPoints))

	var parsed *truetype.Font
	for _, path := range fontCandidates {
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		f, err := truetype.Parse(data)
		if err != nil {
			continue
		}
		parsed = f
		break
	}

	for name, points := range fontPoints {
		if parsed != nil {
			fc.faces[name] = truetype.NewFace(parsed, &truetype.Options{
				Size:    points,
				DPI:     72,
				Hinting: font.HintingFull,
			})
		} else {
			fc.faces[name] = basicfont.Face7x13
		}
	}
	fc.loaded = true
}

func (fc *fontCache) reset() {
	fc.faces = nil
	fc.loaded = false
}

// ReloadFonts drops the loaded font faces so the next text call walks
// the candidate list again. Useful after installing a font; the rest
// of the canvas state is untouched.
func (c *Canvas) ReloadFonts() {
	c.fonts.reset()
}
