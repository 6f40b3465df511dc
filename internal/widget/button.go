package widget

import "github.com/JulesMellot/SD-Canvas-Renderer/internal/canvas"

// ButtonConfig holds the optional appearance of a Button. Zero values
// fall back to the package palette.
type ButtonConfig struct {
	Icon        string
	Label       string
	Background  string
	IconColor   string
	LabelColor  string
	Border      bool
	BorderColor string
}

// Button is a single-tile rounded rectangle with an icon glyph above a
// label. A pressed button darkens to show its state.
type Button struct {
	Base
	cfg     ButtonConfig
	pressed bool
}

// NewButton creates a button occupying one tile at (col,row).
func NewButton(col, row int, cfg ButtonConfig) *Button {
	if cfg.Background == "" {
		cfg.Background = ColorSurface
	}
	if cfg.IconColor == "" {
		cfg.IconColor = ColorTextPrimary
	}
	if cfg.LabelColor == "" {
		cfg.LabelColor = ColorTextPrimary
	}
	if cfg.BorderColor == "" {
		cfg.BorderColor = ColorTextPrimary
	}
	return &Button{Base: NewBase(col, row, 1, 1), cfg: cfg}
}

// SetPressed toggles the pressed visual state.
func (b *Button) SetPressed(pressed bool) { b.pressed = pressed }

// Pressed reports the pressed visual state.
func (b *Button) Pressed() bool { return b.pressed }

// SetLabel replaces the label text.
func (b *Button) SetLabel(label string) { b.cfg.Label = label }

func (b *Button) Render(c *canvas.Canvas) error {
	if !b.Visible() {
		return nil
	}
	if err := b.ValidateBounds(c); err != nil {
		return err
	}
	col, row, _, _ := b.Bounds()

	border := ""
	if b.cfg.Border {
		border = b.cfg.BorderColor
	}
	if err := c.DrawRect(col, row, 1, 1, b.cfg.Background, border, 2, 10); err != nil {
		return err
	}
	if err := c.DrawIconText(col, row, b.cfg.Icon, b.cfg.Label, b.cfg.IconColor, b.cfg.LabelColor, canvas.FontLarge, canvas.FontSmall); err != nil {
		return err
	}
	if b.pressed {
		// The buffer has no alpha channel, so approximate the dark
		// overlay by repainting with the background mixed toward black.
		dark, err := canvas.InterpolateColor(b.cfg.Background, "#000000", 0.55)
		if err != nil {
			return err
		}
		if err := c.DrawRect(col, row, 1, 1, dark, "", 1, 10); err != nil {
			return err
		}
		if err := c.DrawIconText(col, row, b.cfg.Icon, b.cfg.Label, ColorTextSecondary, ColorTextSecondary, canvas.FontLarge, canvas.FontSmall); err != nil {
			return err
		}
	}
	return nil
}
