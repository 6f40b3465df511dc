package widget

import "github.com/JulesMellot/SD-Canvas-Renderer/internal/canvas"

const (
	// vuSegmentsPerTile sets the vertical segment density.
	vuSegmentsPerTile = 20

	// peakHoldFrames is how long a fresh peak is held before decaying.
	peakHoldFrames = 30

	// peakDecayStep is the per-update decay once the hold expires.
	peakDecayStep = 0.01
)

// VUMeterConfig holds the optional colors of a VUMeter. The banding
// colors apply to segment position, not instantaneous level: the
// bottom 60% of segments use Low, the next 25% Mid, the next 10% High
// and the top 5% Peak.
type VUMeterConfig struct {
	Background string
	Low        string
	Mid        string
	High       string
	Peak       string
}

// VUMeter is a vertical level meter one tile wide. It lights
// floor(segments*level) segments bottom-up and tracks a decaying
// peak-hold high-water mark.
type VUMeter struct {
	Base
	cfg      VUMeterConfig
	level    float64
	peak     float64
	holdLeft int
}

// NewVUMeter creates a meter one tile wide and height tiles tall.
func NewVUMeter(col, row, height int, cfg VUMeterConfig) *VUMeter {
	if cfg.Background == "" {
		cfg.Background = ColorBackground
	}
	if cfg.Low == "" {
		cfg.Low = ColorSuccess
	}
	if cfg.Mid == "" {
		cfg.Mid = ColorAccent
	}
	if cfg.High == "" {
		cfg.High = ColorPrimary
	}
	if cfg.Peak == "" {
		cfg.Peak = ColorError
	}
	return &VUMeter{Base: NewBase(col, row, 1, height), cfg: cfg}
}

// SetLevel stores the level clamped to [0,1] and updates the
// peak-hold: a rising level snaps the peak up and rearms the hold
// window; otherwise the hold counts down and then the peak decays one
// step per call, never below the current level.
func (m *VUMeter) SetLevel(v float64) {
	m.level = canvas.Clamp(v, 0, 1)
	switch {
	case m.level > m.peak:
		m.peak = m.level
		m.holdLeft = peakHoldFrames
	case m.holdLeft > 0:
		m.holdLeft--
	default:
		m.peak -= peakDecayStep
		if m.peak < m.level {
			m.peak = m.level
		}
		if m.peak < 0 {
			m.peak = 0
		}
	}
}

// Level returns the stored, clamped level.
func (m *VUMeter) Level() float64 { return m.level }

// Peak returns the current peak-hold value.
func (m *VUMeter) Peak() float64 { return m.peak }

// segmentColor applies the position-tiered banding rule.
func (m *VUMeter) segmentColor(index, total int) string {
	pos := float64(index) / float64(total)
	switch {
	case pos < 0.60:
		return m.cfg.Low
	case pos < 0.85:
		return m.cfg.Mid
	case pos < 0.95:
		return m.cfg.High
	default:
		return m.cfg.Peak
	}
}

func (m *VUMeter) Render(c *canvas.Canvas) error {
	if !m.Visible() {
		return nil
	}
	if err := m.ValidateBounds(c); err != nil {
		return err
	}
	col, row, _, height := m.Bounds()

	if err := c.DrawRect(col, row, 1, height, m.cfg.Background, ColorSurface, 1, 8); err != nil {
		return err
	}

	rect, err := c.RegionRect(col, row, 1, height)
	if err != nil {
		return err
	}
	segments := vuSegmentsPerTile * height
	segH := float64(rect.Dy()-12) / float64(segments)
	lit := int(float64(segments) * m.level)

	for i := 0; i < lit; i++ {
		top := float64(rect.Max.Y-6) - float64(i+1)*segH
		midY := int(top + segH/2)
		w := int(segH) - 1
		if w < 1 {
			w = 1
		}
		if err := c.DrawLine(rect.Min.X+10, midY, rect.Max.X-10, midY, m.segmentColor(i, segments), w); err != nil {
			return err
		}
	}

	if m.peak > 0 {
		peakY := int(float64(rect.Max.Y-6) - float64(segments)*m.peak*segH)
		if err := c.DrawLine(rect.Min.X+8, peakY, rect.Max.X-8, peakY, ColorTextPrimary, 2); err != nil {
			return err
		}
	}
	return nil
}
