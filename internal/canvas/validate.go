package canvas

import (
	"fmt"
	"regexp"
)

const (
	// MaxGrid bounds cols and rows to a sane size.
	MaxGrid = 16

	// MinFPS and MaxFPS bound renderer frame rates.
	MinFPS = 1
	MaxFPS = 60
)

// TileSizes lists the accepted tile edge lengths in pixels. They match
// the key image sizes of the known device models.
var TileSizes = []int{72, 80, 96}

var hexColorRe = regexp.MustCompile(`^[0-9A-Fa-f]{6}$`)

// ValidateSize checks canvas construction parameters.
func ValidateSize(cols, rows, tilePx int) error {
	if cols < 1 || rows < 1 {
		return fmt.Errorf("%w: %dx%d tiles", ErrInvalidSize, cols, rows)
	}
	if cols > MaxGrid || rows > MaxGrid {
		return fmt.Errorf("%w: %dx%d exceeds maximum %dx%d", ErrInvalidSize, cols, rows, MaxGrid, MaxGrid)
	}
	ok := false
	for _, s := range TileSizes {
		if tilePx == s {
			ok = true
			break
		}
	}
	if !ok {
		return fmt.Errorf("%w: tile size %dpx (accepted: %v)", ErrInvalidSize, tilePx, TileSizes)
	}
	return nil
}

// ValidateRegion checks that a tile region (col,row,w,h) lies fully
// inside a cols x rows grid.
func ValidateRegion(cols, rows, col, row, w, h int) error {
	if col < 0 || col >= cols {
		return fmt.Errorf("%w: col %d (0..%d)", ErrOutOfBounds, col, cols-1)
	}
	if row < 0 || row >= rows {
		return fmt.Errorf("%w: row %d (0..%d)", ErrOutOfBounds, row, rows-1)
	}
	if w < 1 || h < 1 {
		return fmt.Errorf("%w: span %dx%d must be at least 1x1", ErrOutOfBounds, w, h)
	}
	if col+w > cols {
		return fmt.Errorf("%w: col %d + width %d exceeds %d columns", ErrOutOfBounds, col, w, cols)
	}
	if row+h > rows {
		return fmt.Errorf("%w: row %d + height %d exceeds %d rows", ErrOutOfBounds, row, h, rows)
	}
	return nil
}

// ValidateColor checks a 6-hex-digit RGB string, with or without a
// leading '#'.
func ValidateColor(c string) error {
	s := stripHash(c)
	if len(s) != 6 {
		return fmt.Errorf("%w: %q (want #RRGGBB)", ErrInvalidColor, c)
	}
	if !hexColorRe.MatchString(s) {
		return fmt.Errorf("%w: %q contains non-hex characters", ErrInvalidColor, c)
	}
	return nil
}

// ValidatePositive rejects values <= 0.
func ValidatePositive(v int, name string) error {
	if v <= 0 {
		return fmt.Errorf("%w: %s must be > 0, got %d", ErrInvalidParam, name, v)
	}
	return nil
}

// ValidateRange rejects values outside the closed range [min,max].
func ValidateRange(v, min, max int, name string) error {
	if v < min || v > max {
		return fmt.Errorf("%w: %s must be between %d and %d, got %d", ErrInvalidParam, name, min, max, v)
	}
	return nil
}

// ValidateFPS checks a target frame rate.
func ValidateFPS(fps int) error {
	return ValidateRange(fps, MinFPS, MaxFPS, "fps")
}

// Clamp limits v to [min,max]. Continuous quantities (progress
// fractions, levels, mix factors) are clamped rather than rejected.
func Clamp(v, min, max float64) float64 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}

func stripHash(c string) string {
	if len(c) > 0 && c[0] == '#' {
		return c[1:]
	}
	return c
}
