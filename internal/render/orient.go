package render

import (
	"fmt"
	"image"

	"github.com/JulesMellot/SD-Canvas-Renderer/internal/canvas"
	"github.com/JulesMellot/SD-Canvas-Renderer/internal/deck"
)

// Orientation is the pixel mangling a device applies to key images
// before scan-out. The renderer pre-applies the inverse so the device
// shows tiles upright.
type Orientation int

const (
	OrientNormal Orientation = iota
	OrientRotated180
	OrientHMirror
	OrientVMirror
	OrientHMirrorRotated
	OrientVMirrorRotated
)

func (o Orientation) String() string {
	switch o {
	case OrientNormal:
		return "normal"
	case OrientRotated180:
		return "rotated180"
	case OrientHMirror:
		return "hmirror"
	case OrientVMirror:
		return "vmirror"
	case OrientHMirrorRotated:
		return "hmirror+rotated180"
	case OrientVMirrorRotated:
		return "vmirror+rotated180"
	}
	return "unknown"
}

// ParseOrientation resolves one of the six transform names. Used for
// config values that compensate a physically rotated or mirrored mount,
// which the device cannot report itself.
func ParseOrientation(s string) (Orientation, error) {
	for o := OrientNormal; o <= OrientVMirrorRotated; o++ {
		if o.String() == s {
			return o, nil
		}
	}
	return OrientNormal, fmt.Errorf("%w: orientation %q", canvas.ErrInvalidParam, s)
}

// OrientationFor maps a device image format to the transform the
// renderer must apply.
func OrientationFor(f deck.ImageFormat) Orientation {
	rotated := f.Rotation == 180
	switch {
	case f.FlipX && rotated:
		return OrientHMirrorRotated
	case f.FlipY && rotated:
		return OrientVMirrorRotated
	case f.FlipX:
		return OrientHMirror
	case f.FlipY:
		return OrientVMirror
	case rotated:
		return OrientRotated180
	}
	return OrientNormal
}

// Apply returns a transformed copy of img. OrientNormal returns img
// itself.
func (o Orientation) Apply(img *image.RGBA) *image.RGBA {
	switch o {
	case OrientRotated180:
		return rotate180(img)
	case OrientHMirror:
		return mirrorH(img)
	case OrientVMirror:
		return mirrorV(img)
	case OrientHMirrorRotated:
		return rotate180(mirrorH(img))
	case OrientVMirrorRotated:
		return rotate180(mirrorV(img))
	}
	return img
}

func rotate180(src *image.RGBA) *image.RGBA {
	b := src.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	for y := 0; y < b.Dy(); y++ {
		for x := 0; x < b.Dx(); x++ {
			dst.SetRGBA(b.Dx()-1-x, b.Dy()-1-y, src.RGBAAt(b.Min.X+x, b.Min.Y+y))
		}
	}
	return dst
}

func mirrorH(src *image.RGBA) *image.RGBA {
	b := src.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	for y := 0; y < b.Dy(); y++ {
		for x := 0; x < b.Dx(); x++ {
			dst.SetRGBA(b.Dx()-1-x, y, src.RGBAAt(b.Min.X+x, b.Min.Y+y))
		}
	}
	return dst
}

func mirrorV(src *image.RGBA) *image.RGBA {
	b := src.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	for y := 0; y < b.Dy(); y++ {
		for x := 0; x < b.Dx(); x++ {
			dst.SetRGBA(x, b.Dy()-1-y, src.RGBAAt(b.Min.X+x, b.Min.Y+y))
		}
	}
	return dst
}
