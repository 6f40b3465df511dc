package widget

import (
	"fmt"

	"github.com/JulesMellot/SD-Canvas-Renderer/internal/canvas"
)

// TimerDisplay shows an elapsed/total time pair as MM:SS over MM:SS in
// one tile.
type TimerDisplay struct {
	Base
	color      string
	background string // "" leaves the tile transparent
	current    float64
	total      float64
}

// NewTimerDisplay creates a timer readout at (col,row).
func NewTimerDisplay(col, row int, color, background string) *TimerDisplay {
	if color == "" {
		color = ColorTextPrimary
	}
	return &TimerDisplay{Base: NewBase(col, row, 1, 1), color: color, background: background, total: 300}
}

// SetTime updates the current and, when total > 0, the total seconds.
// Negative current values are clamped to zero.
func (t *TimerDisplay) SetTime(current, total float64) {
	if current < 0 {
		current = 0
	}
	t.current = current
	if total > 0 {
		t.total = total
	}
}

// Current returns the displayed elapsed seconds.
func (t *TimerDisplay) Current() float64 { return t.current }

func formatClock(seconds float64) string {
	s := int(seconds)
	if s < 0 {
		s = 0
	}
	return fmt.Sprintf("%02d:%02d", s/60, s%60)
}

func (t *TimerDisplay) Render(c *canvas.Canvas) error {
	if !t.Visible() {
		return nil
	}
	if err := t.ValidateBounds(c); err != nil {
		return err
	}
	col, row, _, _ := t.Bounds()

	if t.background != "" {
		if err := c.DrawRect(col, row, 1, 1, t.background, "", 1, 10); err != nil {
			return err
		}
	}
	if err := c.DrawText(col, row, formatClock(t.current), t.color, canvas.FontNormal, canvas.AlignCenter, 0, -8); err != nil {
		return err
	}
	return c.DrawText(col, row, formatClock(t.total), t.color, canvas.FontSmall, canvas.AlignCenter, 0, 8)
}
