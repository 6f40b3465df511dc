package widget

import (
	"fmt"

	qrcode "github.com/skip2/go-qrcode"

	"github.com/JulesMellot/SD-Canvas-Renderer/internal/canvas"
)

// QRCode renders a scannable code for a payload string into one tile.
type QRCode struct {
	Base
	payload string
}

// NewQRCode creates a single-tile QR code widget for the given payload.
func NewQRCode(col, row int, payload string) *QRCode {
	return &QRCode{Base: NewBase(col, row, 1, 1), payload: payload}
}

// SetPayload replaces the encoded content. The code is re-encoded on
// the next Render call.
func (q *QRCode) SetPayload(payload string) { q.payload = payload }

// Payload returns the currently encoded content.
func (q *QRCode) Payload() string { return q.payload }

func (q *QRCode) Render(c *canvas.Canvas) error {
	if !q.Visible() {
		return nil
	}
	if err := q.ValidateBounds(c); err != nil {
		return err
	}
	if q.payload == "" {
		return fmt.Errorf("%w: empty qr payload", canvas.ErrInvalidParam)
	}
	code, err := qrcode.New(q.payload, qrcode.Medium)
	if err != nil {
		return fmt.Errorf("%w: qr encode: %v", canvas.ErrDrawing, err)
	}
	col, row, _, _ := q.Bounds()
	return c.PasteImage(col, row, code.Image(c.TilePx()))
}
