// Package deck abstracts the key-grid display devices a renderer can
// drive. Real Elgato HID transport is out of scope; the package ships
// simulator devices (framebuffer, terminal) behind the same interface.
package deck

import "image"

// KeyCallback is invoked on key state changes. pressed is true on the
// down transition and false on release.
type KeyCallback func(index int, pressed bool)

// ImageFormat describes how a device wants its per-key images: pixel
// size, payload encoding, and the orientation mangling the hardware
// applies before scan-out.
type ImageFormat struct {
	Size     image.Point
	Encoding string // "JPEG" or "PNG"
	FlipX    bool
	FlipY    bool
	Rotation int // degrees clockwise, 0 or 180
}

// Device is the boundary to one physical or simulated key-grid
// display. Open must be called before any other method; Close releases
// the device and is safe to call more than once.
type Device interface {
	Open() error
	Close() error

	// Reset restores the device to a blank state. Used as a liveness
	// probe during reconnects.
	Reset() error

	ID() string
	KeyCount() int
	KeyImageFormat() ImageFormat
	KeyLayout() (cols, rows int)

	SetBrightness(percent int) error
	SetKeyImage(index int, data []byte) error
	SetKeyCallback(cb KeyCallback)

	// IsVisual reports whether the device is currently able to display
	// images. A false return after Open means the device dropped off.
	IsVisual() bool
}

// Layout is the grid geometry for a known device model.
type Layout struct {
	Cols   int
	Rows   int
	TilePx int
}

// Known key-count to geometry mappings for the supported models.
var layouts = map[int]Layout{
	6:  {Cols: 3, Rows: 2, TilePx: 80},
	15: {Cols: 5, Rows: 3, TilePx: 72},
	32: {Cols: 8, Rows: 4, TilePx: 96},
}

// LayoutForKeyCount returns the grid geometry for a device with the
// given key count. ok is false for unknown models; callers then fall
// back to the device's own KeyLayout and KeyImageFormat.
func LayoutForKeyCount(keys int) (Layout, bool) {
	l, ok := layouts[keys]
	return l, ok
}

// Enumerate returns the simulator devices available on this platform,
// unopened, in preference order.
func Enumerate() []Device {
	var devices []Device
	devices = append(devices, enumerateFramebuffer()...)
	devices = append(devices, NewTerminal(layouts[15]))
	return devices
}
