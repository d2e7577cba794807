package pacer

import "time"

const (
	minFrameDelta = time.Millisecond
	maxFrameDelta = 100 * time.Millisecond
)

// Smoother clamps raw frame deltas and averages the last few samples so a
// single hitch does not turn into a burst of catch-up steps.
type Smoother struct {
	samples []time.Duration
	next    int
	filled  int
}

// NewSmoother creates a smoother averaging over n samples.
func NewSmoother(n int) *Smoother {
	if n < 1 {
		n = 1
	}
	return &Smoother{samples: make([]time.Duration, n)}
}

// Smooth records a raw frame delta and returns the smoothed delta.
func (s *Smoother) Smooth(raw time.Duration) time.Duration {
	if raw < minFrameDelta {
		raw = minFrameDelta
	}
	if raw > maxFrameDelta {
		raw = maxFrameDelta
	}

	s.samples[s.next] = raw
	s.next = (s.next + 1) % len(s.samples)
	if s.filled < len(s.samples) {
		s.filled++
	}

	var sum time.Duration
	for i := 0; i < s.filled; i++ {
		sum += s.samples[i]
	}
	return sum / time.Duration(s.filled)
}

// Reset forgets all samples.
func (s *Smoother) Reset() {
	s.next = 0
	s.filled = 0
}
