package render

import "time"

const fpsWindow = 30

// FPSCounter measures the achieved frame rate over a rolling window of
// frame timestamps. Not safe for concurrent use; each renderer owns
// one and ticks it from its loop goroutine.
type FPSCounter struct {
	samples [fpsWindow]time.Time
	next    int
	count   int
}

// Tick records that a frame completed now.
func (f *FPSCounter) Tick() {
	f.samples[f.next] = time.Now()
	f.next = (f.next + 1) % fpsWindow
	if f.count < fpsWindow {
		f.count++
	}
}

// FPS returns frames per second over the recorded window, or 0 with
// fewer than two samples.
func (f *FPSCounter) FPS() float64 {
	if f.count < 2 {
		return 0
	}
	newest := f.samples[(f.next-1+fpsWindow)%fpsWindow]
	oldest := f.samples[(f.next-f.count+fpsWindow)%fpsWindow]
	elapsed := newest.Sub(oldest)
	if elapsed <= 0 {
		return 0
	}
	return float64(f.count-1) / elapsed.Seconds()
}

// Reset discards all samples.
func (f *FPSCounter) Reset() {
	f.next = 0
	f.count = 0
}
