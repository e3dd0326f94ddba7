package viewer

import "time"

// fpsCounter measures frames per second over one-second windows.
type fpsCounter struct {
	now    func() time.Time
	start  time.Time
	frames int
	rate   float64
}

func newFPSCounter(now func() time.Time) *fpsCounter {
	return &fpsCounter{now: now, start: now()}
}

// Frame records one drawn frame and returns the latest measured rate.
func (f *fpsCounter) Frame() float64 {
	f.frames++
	if elapsed := f.now().Sub(f.start); elapsed >= time.Second {
		f.rate = float64(f.frames) / elapsed.Seconds()
		f.frames = 0
		f.start = f.now()
	}
	return f.rate
}
