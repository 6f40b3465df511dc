package widget

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/JulesMellot/SD-Canvas-Renderer/internal/canvas"
)

func testCanvas(t *testing.T) *canvas.Canvas {
	t.Helper()
	c, err := canvas.New(5, 3, 72, "#000000")
	if err != nil {
		t.Fatalf("canvas.New: %v", err)
	}
	return c
}

type recordingLogger struct {
	lines []string
}

func (l *recordingLogger) Errorf(component, format string, args ...interface{}) {
	l.lines = append(l.lines, component+": "+fmt.Sprintf(format, args...))
}

func TestProgressBarClamping(t *testing.T) {
	tests := []struct {
		name string
		set  float64
		want float64
	}{
		{"below range", -0.5, 0},
		{"zero", 0, 0},
		{"in range", 0.42, 0.42},
		{"one", 1, 1},
		{"above range", 3.7, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewProgressBar(0, 0, 5, ProgressBarConfig{})
			p.SetProgress(tt.set)
			if got := p.Progress(); got != tt.want {
				t.Errorf("SetProgress(%v); Progress() = %v, want %v", tt.set, got, tt.want)
			}
		})
	}
}

func TestProgressBarFillMonotone(t *testing.T) {
	c := testCanvas(t)
	p := NewProgressBar(0, 0, 5, ProgressBarConfig{})
	maxFill := 5*c.TilePx() - 2*progressPadding

	prev := -1
	for step := 0; step <= 10; step++ {
		p.SetProgress(float64(step) / 10)
		if err := p.Render(c); err != nil {
			t.Fatalf("Render at step %d: %v", step, err)
		}
		fill := p.FillWidthPx(c)
		if fill < prev {
			t.Errorf("step %d: fill width %d decreased from %d", step, fill, prev)
		}
		if fill > maxFill {
			t.Errorf("step %d: fill width %d exceeds inner width %d", step, fill, maxFill)
		}
		prev = fill
	}
	if prev != maxFill {
		t.Errorf("full progress fill = %d, want %d", prev, maxFill)
	}
}

func TestVUMeterPeakHold(t *testing.T) {
	m := NewVUMeter(0, 0, 1, VUMeterConfig{})

	m.SetLevel(0.0)
	m.SetLevel(0.9)
	if got := m.Peak(); got != 0.9 {
		t.Fatalf("peak after rise = %v, want 0.9", got)
	}

	// Falling levels inside the hold window keep the peak pinned.
	for i := 0; i < peakHoldFrames; i++ {
		m.SetLevel(0.2)
	}
	if got := m.Peak(); got != 0.9 {
		t.Fatalf("peak during hold = %v, want 0.9", got)
	}

	// Once the hold expires the peak decays but never rises and never
	// drops below the current level.
	prev := m.Peak()
	for i := 0; i < 200; i++ {
		m.SetLevel(0.2)
		peak := m.Peak()
		if peak > prev {
			t.Fatalf("peak rose from %v to %v on a falling level", prev, peak)
		}
		if peak < m.Level() {
			t.Fatalf("peak %v fell below level %v", peak, m.Level())
		}
		prev = peak
	}
	if prev >= 0.9 {
		t.Errorf("peak never decayed, still %v", prev)
	}
	if prev != 0.2 {
		t.Errorf("peak settled at %v, want 0.2", prev)
	}
}

func TestVUMeterLevelClamped(t *testing.T) {
	m := NewVUMeter(0, 0, 1, VUMeterConfig{})
	m.SetLevel(4.2)
	if got := m.Level(); got != 1 {
		t.Errorf("Level() = %v, want 1", got)
	}
	m.SetLevel(-1)
	if got := m.Level(); got != 0 {
		t.Errorf("Level() = %v, want 0", got)
	}
}

func TestVUMeterSegmentBanding(t *testing.T) {
	m := NewVUMeter(0, 0, 1, VUMeterConfig{})
	total := 20
	tests := []struct {
		index int
		want  string
	}{
		{0, m.cfg.Low},
		{11, m.cfg.Low},
		{12, m.cfg.Mid},
		{16, m.cfg.Mid},
		{17, m.cfg.High},
		{18, m.cfg.High},
		{19, m.cfg.Peak},
	}
	for _, tt := range tests {
		if got := m.segmentColor(tt.index, total); got != tt.want {
			t.Errorf("segmentColor(%d, %d) = %q, want %q", tt.index, total, got, tt.want)
		}
	}
}

func TestCollectionIsolatesFailures(t *testing.T) {
	c := testCanvas(t)
	log := &recordingLogger{}
	coll := NewCollection()
	coll.Logger = log

	rendered := 0
	coll.Add(NewFunc(0, 0, 1, 1, func(b *Base, cv *canvas.Canvas) error {
		rendered++
		return nil
	}))
	coll.Add(NewFunc(1, 0, 1, 1, func(b *Base, cv *canvas.Canvas) error {
		return errors.New("boom")
	}))
	coll.Add(NewFunc(2, 0, 1, 1, func(b *Base, cv *canvas.Canvas) error {
		panic("widget panic")
	}))
	coll.Add(NewFunc(3, 0, 1, 1, func(b *Base, cv *canvas.Canvas) error {
		rendered++
		return nil
	}))

	coll.RenderAll(c)

	if rendered != 2 {
		t.Errorf("healthy widgets rendered = %d, want 2", rendered)
	}
	if len(log.lines) != 2 {
		t.Fatalf("logged failures = %d, want 2: %v", len(log.lines), log.lines)
	}
	for _, line := range log.lines {
		if !strings.Contains(line, "widget") {
			t.Errorf("log line %q missing component tag", line)
		}
	}
}

func TestCollectionSkipsInvisible(t *testing.T) {
	c := testCanvas(t)
	coll := NewCollection()

	calls := 0
	f := NewFunc(0, 0, 1, 1, func(b *Base, cv *canvas.Canvas) error {
		calls++
		return nil
	})
	coll.Add(f)
	f.SetVisible(false)
	coll.RenderAll(c)
	if calls != 0 {
		t.Errorf("invisible widget rendered %d times", calls)
	}

	f.SetVisible(true)
	coll.RenderAll(c)
	if calls != 1 {
		t.Errorf("visible widget rendered %d times, want 1", calls)
	}
}

func TestFindWidgetAtTopmostWins(t *testing.T) {
	coll := NewCollection()
	bottom := coll.Add(NewButton(1, 1, ButtonConfig{Label: "bottom"}))
	top := coll.Add(NewButton(1, 1, ButtonConfig{Label: "top"}))

	if got := coll.FindWidgetAt(1, 1); got != top {
		t.Errorf("FindWidgetAt(1,1) = %v, want the later-added widget", got)
	}

	top.(*Button).SetVisible(false)
	if got := coll.FindWidgetAt(1, 1); got != bottom {
		t.Errorf("FindWidgetAt(1,1) with top hidden = %v, want the bottom widget", got)
	}

	if got := coll.FindWidgetAt(4, 2); got != nil {
		t.Errorf("FindWidgetAt(4,2) = %v, want nil", got)
	}
}

func TestRemoveAndClear(t *testing.T) {
	coll := NewCollection()
	a := NewButton(0, 0, ButtonConfig{})
	b := NewButton(1, 0, ButtonConfig{})
	coll.Add(a)
	coll.Add(b)

	coll.Remove(a)
	if coll.Len() != 1 {
		t.Fatalf("Len after Remove = %d, want 1", coll.Len())
	}
	if coll.Widgets()[0] != b {
		t.Error("Remove dropped the wrong widget")
	}

	coll.Clear()
	if coll.Len() != 0 {
		t.Errorf("Len after Clear = %d, want 0", coll.Len())
	}
}

func TestOfType(t *testing.T) {
	coll := NewCollection()
	coll.Add(NewButton(0, 0, ButtonConfig{}))
	coll.Add(NewProgressBar(0, 1, 2, ProgressBarConfig{}))
	coll.Add(NewButton(1, 0, ButtonConfig{}))

	buttons := OfType[*Button](coll)
	if len(buttons) != 2 {
		t.Errorf("OfType[*Button] = %d widgets, want 2", len(buttons))
	}
	bars := OfType[*ProgressBar](coll)
	if len(bars) != 1 {
		t.Errorf("OfType[*ProgressBar] = %d widgets, want 1", len(bars))
	}
}

func TestRenderOutOfBoundsWidgetReported(t *testing.T) {
	c := testCanvas(t)
	b := NewButton(4, 2, ButtonConfig{})
	if err := b.Render(c); err != nil {
		t.Fatalf("in-bounds Render: %v", err)
	}

	far := NewButton(7, 7, ButtonConfig{})
	if err := far.Render(c); !errors.Is(err, canvas.ErrOutOfBounds) {
		t.Errorf("out-of-bounds Render: err = %v, want ErrOutOfBounds", err)
	}
}

func TestSparklineFIFO(t *testing.T) {
	s := NewSparkline(0, 0, 2, 1, SparklineConfig{MaxPoints: 3})
	for i := 1; i <= 5; i++ {
		s.AddValue(float64(i))
	}
	got := s.Values()
	if len(got) != 3 {
		t.Fatalf("len(Values) = %d, want 3", len(got))
	}
	for i, want := range []float64{3, 4, 5} {
		if got[i] != want {
			t.Errorf("Values[%d] = %v, want %v", i, got[i], want)
		}
	}
}

func TestScrollingTextStaticWhenFits(t *testing.T) {
	c := testCanvas(t)
	s := NewScrollingText(0, 0, 5, "hi", ScrollingTextConfig{})
	for i := 0; i < 10; i++ {
		if err := s.Render(c); err != nil {
			t.Fatalf("Render: %v", err)
		}
	}
	if s.Offset() != 0 {
		t.Errorf("short text scrolled to offset %d", s.Offset())
	}
}

func TestScrollingTextAdvancesWhenOverflowing(t *testing.T) {
	c := testCanvas(t)
	long := strings.Repeat("monitoring dashboard ", 10)
	s := NewScrollingText(0, 0, 1, long, ScrollingTextConfig{})
	for i := 0; i < 30; i++ {
		if err := s.Render(c); err != nil {
			t.Fatalf("Render: %v", err)
		}
	}
	if s.Offset() == 0 {
		t.Error("overflowing text never advanced")
	}
}

func TestSpinnerAdvancesPerFrame(t *testing.T) {
	c := testCanvas(t)
	sp := NewSpinner(0, 0, ColorPrimary, ColorSurface)
	before := sp.Angle()
	if err := sp.Render(c); err != nil {
		t.Fatalf("Render: %v", err)
	}
	after := sp.Angle()
	if before == after {
		t.Error("spinner angle did not advance after a frame")
	}
}

func TestButtonPressedToggle(t *testing.T) {
	c := testCanvas(t)
	b := NewButton(0, 0, ButtonConfig{Icon: ">", Label: "GO"})
	if b.Pressed() {
		t.Fatal("new button is pressed")
	}
	b.SetPressed(true)
	if !b.Pressed() {
		t.Fatal("SetPressed(true) not stored")
	}
	if err := b.Render(c); err != nil {
		t.Fatalf("Render pressed: %v", err)
	}
}

func TestRadialGaugeClamps(t *testing.T) {
	g := NewRadialGauge(0, 0, RadialGaugeConfig{})
	g.SetValue(250)
	if got := g.Value(); got != 100 {
		t.Errorf("Value() = %v, want 100", got)
	}
	g.SetValue(-5)
	if got := g.Value(); got != 0 {
		t.Errorf("Value() = %v, want 0", got)
	}
}
