//go:build linux

package deck

import (
	"bytes"
	"fmt"
	"image"
	"image/draw"
	"image/jpeg"
	"sync"

	fb "github.com/gonutz/framebuffer"
)

// Framebuffer is a simulator device that composes uploaded key images
// into a grid on the Linux framebuffer. It has no input; key callbacks
// are never invoked.
type Framebuffer struct {
	path   string
	layout Layout

	mu   sync.Mutex
	dev  *fb.Device
	open bool
}

// NewFramebuffer creates an unopened framebuffer device at path with
// the given grid geometry.
func NewFramebuffer(path string, layout Layout) *Framebuffer {
	return &Framebuffer{path: path, layout: layout}
}

func enumerateFramebuffer() []Device {
	return []Device{NewFramebuffer("/dev/fb0", layouts[15])}
}

func (f *Framebuffer) Open() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.open {
		return nil
	}
	dev, err := fb.Open(f.path)
	if err != nil {
		return fmt.Errorf("framebuffer open %s: %w", f.path, err)
	}
	f.dev = dev
	f.open = true
	return nil
}

func (f *Framebuffer) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if !f.open {
		return nil
	}
	f.open = false
	f.dev.Close()
	f.dev = nil
	return nil
}

func (f *Framebuffer) Reset() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if !f.open {
		return fmt.Errorf("framebuffer %s not open", f.path)
	}
	bounds := f.dev.Bounds()
	draw.Draw(f.dev, bounds, image.Black, image.Point{}, draw.Src)
	return nil
}

func (f *Framebuffer) ID() string { return "fb:" + f.path }

func (f *Framebuffer) KeyCount() int { return f.layout.Cols * f.layout.Rows }

func (f *Framebuffer) KeyImageFormat() ImageFormat {
	return ImageFormat{
		Size:     image.Pt(f.layout.TilePx, f.layout.TilePx),
		Encoding: "JPEG",
	}
}

func (f *Framebuffer) KeyLayout() (cols, rows int) {
	return f.layout.Cols, f.layout.Rows
}

// SetBrightness is accepted but has no effect on a framebuffer.
func (f *Framebuffer) SetBrightness(percent int) error {
	if percent < 0 || percent > 100 {
		return fmt.Errorf("brightness %d out of range 0..100", percent)
	}
	return nil
}

// SetKeyImage decodes the JPEG payload and blits it into the key's
// grid slot. Key 0 is the bottom-left slot, matching scan order.
func (f *Framebuffer) SetKeyImage(index int, data []byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if !f.open {
		return fmt.Errorf("framebuffer %s not open", f.path)
	}
	if index < 0 || index >= f.layout.Cols*f.layout.Rows {
		return fmt.Errorf("key index %d out of range", index)
	}
	img, err := jpeg.Decode(bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("key %d: decode jpeg: %w", index, err)
	}
	col := index % f.layout.Cols
	row := f.layout.Rows - 1 - index/f.layout.Cols
	x := col * f.layout.TilePx
	y := row * f.layout.TilePx
	dst := image.Rect(x, y, x+f.layout.TilePx, y+f.layout.TilePx)
	draw.Draw(f.dev, dst, img, img.Bounds().Min, draw.Src)
	return nil
}

// SetKeyCallback is a no-op; the framebuffer has no input path.
func (f *Framebuffer) SetKeyCallback(cb KeyCallback) {}

func (f *Framebuffer) IsVisual() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.open
}
