package widget

import (
	"fmt"

	"github.com/JulesMellot/SD-Canvas-Renderer/internal/canvas"
)

// progressPadding insets the fill bar from the widget frame.
const progressPadding = 10

// ProgressBarConfig holds the optional appearance of a ProgressBar.
type ProgressBarConfig struct {
	Background     string
	FillColor      string
	BorderColor    string
	HidePercentage bool
}

// ProgressBar spans width tiles horizontally and fills a fraction of
// its inner width proportional to a clamped [0,1] progress value.
type ProgressBar struct {
	Base
	cfg      ProgressBarConfig
	progress float64
}

// NewProgressBar creates a bar spanning width tiles at (col,row).
func NewProgressBar(col, row, width int, cfg ProgressBarConfig) *ProgressBar {
	if cfg.Background == "" {
		cfg.Background = ColorBackground
	}
	if cfg.FillColor == "" {
		cfg.FillColor = ColorPrimary
	}
	if cfg.BorderColor == "" {
		cfg.BorderColor = ColorSurface
	}
	return &ProgressBar{Base: NewBase(col, row, width, 1), cfg: cfg}
}

// SetProgress stores v clamped to [0,1].
func (p *ProgressBar) SetProgress(v float64) {
	p.progress = canvas.Clamp(v, 0, 1)
}

// Progress returns the stored, clamped progress value.
func (p *ProgressBar) Progress() float64 { return p.progress }

// FillWidthPx reports the current fill width in pixels for the given
// canvas, bounded by the inner padded width of the span.
func (p *ProgressBar) FillWidthPx(c *canvas.Canvas) int {
	_, _, width, _ := p.Bounds()
	inner := width*c.TilePx() - 2*progressPadding
	return int(float64(inner) * p.progress)
}

func (p *ProgressBar) Render(c *canvas.Canvas) error {
	if !p.Visible() {
		return nil
	}
	if err := p.ValidateBounds(c); err != nil {
		return err
	}
	col, row, width, _ := p.Bounds()

	if err := c.DrawRect(col, row, width, 1, p.cfg.Background, p.cfg.BorderColor, 2, 8); err != nil {
		return err
	}

	rect, err := c.RegionRect(col, row, width, 1)
	if err != nil {
		return err
	}
	barWidth := p.FillWidthPx(c)
	if barWidth > 0 {
		x := rect.Min.X + progressPadding
		midY := rect.Min.Y + rect.Dy()/2
		halfH := (rect.Dy() - 2*progressPadding - 10) / 2
		if err := c.DrawLine(x, midY, x+barWidth, midY, p.cfg.FillColor, 2*halfH); err != nil {
			return err
		}
	}

	if !p.cfg.HidePercentage {
		text := fmt.Sprintf("%d%%", int(p.progress*100))
		if err := c.DrawText(col+width/2, row, text, ColorTextPrimary, canvas.FontNormal, canvas.AlignCenter, 0, 0); err != nil {
			return err
		}
	}
	return nil
}
