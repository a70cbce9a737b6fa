package render

import "time"

// FPSCounter estimates the frame rate over rolling one-second windows,
// so the displayed value is stable instead of flickering per frame.
type FPSCounter struct {
	windowStart time.Time
	frames      int
	fps         float64
}

// Tick records one frame and returns the current estimate. The estimate
// only changes when a window closes.
func (c *FPSCounter) Tick(now time.Time) float64 {
	if c.windowStart.IsZero() {
		c.windowStart = now
	}
	c.frames++
	if elapsed := now.Sub(c.windowStart); elapsed >= time.Second {
		c.fps = float64(c.frames) / elapsed.Seconds()
		c.frames = 0
		c.windowStart = now
	}
	return c.fps
}

// FPS returns the last closed-window estimate.
func (c *FPSCounter) FPS() float64 { return c.fps }
