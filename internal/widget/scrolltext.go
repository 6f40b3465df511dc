package widget

import "github.com/JulesMellot/SD-Canvas-Renderer/internal/canvas"

const (
	// scrollEveryNFrames slows the scroll to every third frame.
	scrollEveryNFrames = 3

	// scrollTextPad is the left inset and the fit slack.
	scrollTextPad = 10
)

// ScrollingTextConfig holds the optional appearance of ScrollingText.
type ScrollingTextConfig struct {
	Color      string
	Background string
	Speed      int // pixels advanced per scroll step
}

// ScrollingText renders text statically when it fits its tile span and
// scrolls it horizontally, wrapping around, when it overflows.
type ScrollingText struct {
	Base
	cfg    ScrollingTextConfig
	text   string
	offset int
	frames int
}

// NewScrollingText creates a one-row scroller spanning width tiles.
func NewScrollingText(col, row, width int, text string, cfg ScrollingTextConfig) *ScrollingText {
	if cfg.Color == "" {
		cfg.Color = ColorTextPrimary
	}
	if cfg.Background == "" {
		cfg.Background = ColorBackground
	}
	if cfg.Speed <= 0 {
		cfg.Speed = 2
	}
	return &ScrollingText{Base: NewBase(col, row, width, 1), cfg: cfg, text: text}
}

// SetText replaces the text and restarts the scroll.
func (s *ScrollingText) SetText(text string) {
	s.text = text
	s.offset = 0
}

// Text returns the current text.
func (s *ScrollingText) Text() string { return s.text }

// Offset exposes the current scroll offset in pixels.
func (s *ScrollingText) Offset() int { return s.offset }

func (s *ScrollingText) Render(c *canvas.Canvas) error {
	if !s.Visible() {
		return nil
	}
	if err := s.ValidateBounds(c); err != nil {
		return err
	}
	col, row, width, _ := s.Bounds()

	rect, err := c.RegionRect(col, row, width, 1)
	if err != nil {
		return err
	}
	if err := c.DrawRect(col, row, width, 1, s.cfg.Background, "", 1, 0); err != nil {
		return err
	}

	textWidth, _, err := c.MeasureText(s.text, canvas.FontNormal)
	if err != nil {
		return err
	}

	if textWidth > rect.Dx()-2*scrollTextPad {
		s.frames++
		if s.frames%scrollEveryNFrames == 0 {
			s.offset += s.cfg.Speed
			if s.offset > textWidth {
				// Re-enter from the right edge.
				s.offset = -rect.Dx()
			}
		}
	} else {
		s.offset = 0
	}

	x := rect.Min.X + scrollTextPad - s.offset
	y := rect.Min.Y + rect.Dy()/2
	return c.TextAtPos(x, y, s.text, s.cfg.Color, canvas.FontNormal, "lm")
}
