package spineflow

import "math"

// Smoothing defaults.
const (
	DefaultSmoothingFactor    = 0.2
	DefaultSmoothingThreshold = 0.001
)

// ScrollProgressSmoother eases raw scroll input toward its target by a fixed
// fraction per frame. Input events only move the target; the value advances
// on Tick, once per rendered frame, and only while it has not settled.
type ScrollProgressSmoother struct {
	factor    float64
	threshold float64

	target  float64
	current float64
	active  bool
}

// NewScrollProgressSmoother returns an idle smoother at 0. Non-positive
// arguments select the defaults; factor is capped at 1 (no smoothing).
func NewScrollProgressSmoother(factor, threshold float64) *ScrollProgressSmoother {
	if factor <= 0 || !isFinite(factor) {
		factor = DefaultSmoothingFactor
	}
	if factor > 1 {
		factor = 1
	}
	if threshold <= 0 || !isFinite(threshold) {
		threshold = DefaultSmoothingThreshold
	}
	return &ScrollProgressSmoother{factor: factor, threshold: threshold}
}

// SetTarget records the latest scroll ratio. The smoother becomes active if
// the target is further than the threshold from the current value.
func (s *ScrollProgressSmoother) SetTarget(t float64) {
	if !isFinite(t) {
		return
	}
	s.target = t
	if math.Abs(s.target-s.current) > s.threshold {
		s.active = true
	}
}

// Tick advances one frame. It returns the smoothed value and whether it
// changed this frame. The frame that brings the value within the threshold
// snaps it to the target exactly and still reports a change; later ticks
// report none until the target moves again.
func (s *ScrollProgressSmoother) Tick() (float64, bool) {
	if !s.active {
		return s.current, false
	}
	s.current += (s.target - s.current) * s.factor
	if math.Abs(s.target-s.current) <= s.threshold {
		s.current = s.target
		s.active = false
	}
	return s.current, true
}

// Reset jumps to v with no easing and goes idle.
func (s *ScrollProgressSmoother) Reset(v float64) {
	s.target = v
	s.current = v
	s.active = false
}

// Value returns the current smoothed value.
func (s *ScrollProgressSmoother) Value() float64 { return s.current }

// Target returns the latest target.
func (s *ScrollProgressSmoother) Target() float64 { return s.target }

// Active reports whether the value is still converging.
func (s *ScrollProgressSmoother) Active() bool { return s.active }
