package widget

import "github.com/JulesMellot/SD-Canvas-Renderer/internal/canvas"

// sparklinePad keeps the polyline off the region edges.
const sparklinePad = 5

// SparklineConfig holds the optional appearance and sample capacity of
// a Sparkline.
type SparklineConfig struct {
	LineColor  string
	Background string
	MaxPoints  int
}

// Sparkline keeps a bounded FIFO of samples and draws them as a
// connected polyline, auto-scaling its Y axis to the buffered min/max
// on every render.
type Sparkline struct {
	Base
	cfg  SparklineConfig
	data []float64
}

// NewSparkline creates a graph spanning width x height tiles.
func NewSparkline(col, row, width, height int, cfg SparklineConfig) *Sparkline {
	if cfg.LineColor == "" {
		cfg.LineColor = ColorSuccess
	}
	if cfg.Background == "" {
		cfg.Background = "#000000"
	}
	if cfg.MaxPoints <= 0 {
		cfg.MaxPoints = 50
	}
	return &Sparkline{Base: NewBase(col, row, width, height), cfg: cfg}
}

// AddValue appends a sample, evicting the oldest once the capacity is
// exceeded.
func (s *Sparkline) AddValue(v float64) {
	s.data = append(s.data, v)
	if len(s.data) > s.cfg.MaxPoints {
		s.data = s.data[1:]
	}
}

// Values returns the buffered samples, oldest first.
func (s *Sparkline) Values() []float64 { return s.data }

func (s *Sparkline) Render(c *canvas.Canvas) error {
	if !s.Visible() {
		return nil
	}
	if err := s.ValidateBounds(c); err != nil {
		return err
	}
	col, row, width, height := s.Bounds()

	rect, err := c.RegionRect(col, row, width, height)
	if err != nil {
		return err
	}
	if err := c.DrawRect(col, row, width, height, s.cfg.Background, "", 1, 0); err != nil {
		return err
	}
	if len(s.data) < 2 {
		return nil
	}

	min, max := s.data[0], s.data[0]
	for _, v := range s.data[1:] {
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}
	if max == min {
		// Flat series: use a unit range so scaling never divides by
		// zero.
		max = min + 1
	}

	stepX := float64(rect.Dx()) / float64(len(s.data)-1)
	prevX, prevY := 0, 0
	for i, v := range s.data {
		x := rect.Min.X + int(float64(i)*stepX)
		norm := (v - min) / (max - min)
		y := rect.Max.Y - sparklinePad - int(norm*float64(rect.Dy()-2*sparklinePad))
		if i > 0 {
			if err := c.DrawLine(prevX, prevY, x, y, s.cfg.LineColor, 2); err != nil {
				return err
			}
		}
		prevX, prevY = x, y
	}
	return nil
}
