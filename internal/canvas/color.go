package canvas

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"
)

// colorCacheMax bounds the per-canvas hex decode cache. A frame reuses
// the same handful of palette colors for every fill and stroke, so a
// small cache covers the hot path.
const colorCacheMax = 128

// HexToRGB converts a #RRGGBB (or RRGGBB) string to an opaque RGBA.
func HexToRGB(c string) (color.RGBA, error) {
	if err := ValidateColor(c); err != nil {
		return color.RGBA{}, err
	}
	s := stripHash(c)
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("%w: %q", ErrInvalidColor, c)
	}
	return color.RGBA{
		R: uint8(v >> 16),
		G: uint8(v >> 8),
		B: uint8(v),
		A: 0xFF,
	}, nil
}

// RGBToHex formats r, g, b as an upper-case #RRGGBB string.
func RGBToHex(r, g, b uint8) string {
	return fmt.Sprintf("#%02X%02X%02X", r, g, b)
}

// InterpolateColor linearly mixes two hex colors. factor is clamped to
// [0,1]; 0 yields from, 1 yields to.
func InterpolateColor(from, to string, factor float64) (string, error) {
	a, err := HexToRGB(from)
	if err != nil {
		return "", err
	}
	b, err := HexToRGB(to)
	if err != nil {
		return "", err
	}
	f := Clamp(factor, 0, 1)
	mix := func(x, y uint8) uint8 {
		return uint8(float64(x) + (float64(y)-float64(x))*f)
	}
	return RGBToHex(mix(a.R, b.R), mix(a.G, b.G), mix(a.B, b.B)), nil
}

// rgba resolves a hex color through the canvas-local cache.
func (c *Canvas) rgba(hex string) (color.RGBA, error) {
	key := strings.ToUpper(stripHash(hex))
	if v, ok := c.colorCache[key]; ok {
		return v, nil
	}
	v, err := HexToRGB(hex)
	if err != nil {
		return color.RGBA{}, err
	}
	if len(c.colorCache) >= colorCacheMax {
		// Cheap bound: drop everything rather than track recency.
		c.colorCache = make(map[string]color.RGBA, colorCacheMax)
	}
	c.colorCache[key] = v
	return v, nil
}
