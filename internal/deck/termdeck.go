package deck

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"
	"os"
	"sync"

	"github.com/gdamore/tcell/v2"
)

// Cell block occupied by one key on the terminal grid. Two cells per
// row keeps the blocks roughly square in most fonts.
const (
	termKeyCellsW = 8
	termKeyCellsH = 4
	termKeyGap    = 1
)

// Terminal is a simulator device that shows each key as a block of
// terminal cells filled with the key image's average color. Mouse
// clicks on a block report key presses.
type Terminal struct {
	layout Layout

	mu     sync.Mutex
	screen tcell.Screen
	open   bool
	cb     KeyCallback
}

// NewTerminal creates an unopened terminal device with the given grid
// geometry.
func NewTerminal(layout Layout) *Terminal {
	return &Terminal{layout: layout}
}

func (t *Terminal) Open() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.open {
		return nil
	}
	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("terminal device: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("terminal device init: %w", err)
	}
	screen.EnableMouse()
	screen.SetStyle(tcell.StyleDefault.Background(tcell.ColorBlack))
	screen.Clear()
	screen.Show()
	t.screen = screen
	t.open = true
	go t.eventLoop(screen)
	return nil
}

func (t *Terminal) Close() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if !t.open {
		return nil
	}
	t.open = false
	t.screen.Fini()
	t.screen = nil
	return nil
}

func (t *Terminal) Reset() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if !t.open {
		return fmt.Errorf("terminal device not open")
	}
	t.screen.Clear()
	t.screen.Show()
	return nil
}

func (t *Terminal) ID() string { return "term" }

func (t *Terminal) KeyCount() int { return t.layout.Cols * t.layout.Rows }

func (t *Terminal) KeyImageFormat() ImageFormat {
	return ImageFormat{
		Size:     image.Pt(t.layout.TilePx, t.layout.TilePx),
		Encoding: "JPEG",
	}
}

func (t *Terminal) KeyLayout() (cols, rows int) {
	return t.layout.Cols, t.layout.Rows
}

// SetBrightness is accepted but has no effect on a terminal.
func (t *Terminal) SetBrightness(percent int) error {
	if percent < 0 || percent > 100 {
		return fmt.Errorf("brightness %d out of range 0..100", percent)
	}
	return nil
}

// SetKeyImage decodes the JPEG payload, averages its color, and fills
// the key's cell block. Key 0 is the bottom-left slot, matching scan
// order.
func (t *Terminal) SetKeyImage(index int, data []byte) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if !t.open {
		return fmt.Errorf("terminal device not open")
	}
	if index < 0 || index >= t.layout.Cols*t.layout.Rows {
		return fmt.Errorf("key index %d out of range", index)
	}
	img, err := jpeg.Decode(bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("key %d: decode jpeg: %w", index, err)
	}
	col := index % t.layout.Cols
	row := t.layout.Rows - 1 - index/t.layout.Cols

	r, g, b := averageColor(img)
	style := tcell.StyleDefault.Background(tcell.NewRGBColor(int32(r), int32(g), int32(b)))
	x0 := col * (termKeyCellsW + termKeyGap)
	y0 := row * (termKeyCellsH + termKeyGap)
	for y := 0; y < termKeyCellsH; y++ {
		for x := 0; x < termKeyCellsW; x++ {
			t.screen.SetContent(x0+x, y0+y, ' ', nil, style)
		}
	}
	t.screen.Show()
	return nil
}

func (t *Terminal) SetKeyCallback(cb KeyCallback) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.cb = cb
}

func (t *Terminal) IsVisual() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.open
}

// eventLoop drains tcell events until the screen is finalized. Mouse
// clicks map to key indices in reading order (row 0 is the top row),
// the same convention press handlers use.
func (t *Terminal) eventLoop(screen tcell.Screen) {
	for {
		ev := screen.PollEvent()
		if ev == nil {
			return
		}
		switch ev := ev.(type) {
		case *tcell.EventKey:
			if ev.Key() == tcell.KeyCtrlC || ev.Key() == tcell.KeyEscape {
				// The terminal owns raw input, so Ctrl-C never reaches
				// the process as SIGINT. Re-raise it.
				if p, err := os.FindProcess(os.Getpid()); err == nil {
					p.Signal(os.Interrupt)
				}
			}
		case *tcell.EventMouse:
			if ev.Buttons()&tcell.Button1 == 0 {
				continue
			}
			x, y := ev.Position()
			col := x / (termKeyCellsW + termKeyGap)
			row := y / (termKeyCellsH + termKeyGap)
			if col >= t.layout.Cols || row >= t.layout.Rows {
				continue
			}
			if x%(termKeyCellsW+termKeyGap) >= termKeyCellsW ||
				y%(termKeyCellsH+termKeyGap) >= termKeyCellsH {
				continue
			}
			index := row*t.layout.Cols + col
			t.mu.Lock()
			cb := t.cb
			t.mu.Unlock()
			if cb != nil {
				cb(index, true)
				cb(index, false)
			}
		}
	}
}

// averageColor computes the mean RGB of an image, sampling every
// fourth pixel in each direction.
func averageColor(img image.Image) (r, g, b uint8) {
	bounds := img.Bounds()
	var sumR, sumG, sumB, n uint64
	for y := bounds.Min.Y; y < bounds.Max.Y; y += 4 {
		for x := bounds.Min.X; x < bounds.Max.X; x += 4 {
			pr, pg, pb, _ := img.At(x, y).RGBA()
			sumR += uint64(pr >> 8)
			sumG += uint64(pg >> 8)
			sumB += uint64(pb >> 8)
			n++
		}
	}
	if n == 0 {
		return 0, 0, 0
	}
	return uint8(sumR / n), uint8(sumG / n), uint8(sumB / n)
}
