package lumen

import (
	"math"
	"time"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// Keyframes is a looping track of evenly spaced stops. At period boundaries
// the track restarts from Values[0]; tracks that should loop seamlessly end
// on the value they start with.
type Keyframes struct {
	Values []float64
	Period time.Duration
	// Ease shapes every segment. Nil is linear.
	Ease ease.TweenFunc
}

// At returns the track value at time t.
func (k Keyframes) At(t time.Duration) float64 {
	switch len(k.Values) {
	case 0:
		return 0
	case 1:
		return k.Values[0]
	}
	i, local := segment(t, k.Period, len(k.Values)-1)
	a, b := k.Values[i], k.Values[i+1]
	fn := k.Ease
	if fn == nil {
		fn = ease.Linear
	}
	return float64(fn(float32(local), float32(a), float32(b-a), 1))
}

// segment locates t inside a looping period split into n equal segments. It
// returns the segment index and the position within it in [0, 1).
func segment(t, period time.Duration, n int) (int, float64) {
	if period <= 0 || n <= 0 {
		return 0, 0
	}
	phase := float64(t%period) / float64(period)
	if phase < 0 {
		phase++
	}
	pos := phase * float64(n)
	i := int(math.Floor(pos))
	if i >= n {
		i = n - 1
	}
	return i, pos - float64(i)
}

// loopPhase returns t's position within a looping period in [0, 1).
func loopPhase(t, period time.Duration) float64 {
	_, p := segment(t, period, 1)
	return p
}

// tweenSet evaluates a group of gween tweens against one shared elapsed
// time. All tweens share a duration and easing function.
type tweenSet struct {
	tweens   []*gween.Tween
	duration time.Duration
}

func newTweenSet(duration time.Duration, fn ease.TweenFunc, ranges ...Range) tweenSet {
	s := tweenSet{tweens: make([]*gween.Tween, len(ranges)), duration: duration}
	for i, r := range ranges {
		s.tweens[i] = gween.New(float32(r.Min), float32(r.Max), float32(duration.Seconds()), fn)
	}
	return s
}

// at writes each tween's value at elapsed into out and reports whether the
// set has finished. A zero duration is always finished.
func (s tweenSet) at(elapsed time.Duration, out []float64) bool {
	finished := true
	for i, tw := range s.tweens {
		if s.duration <= 0 {
			v, _ := tw.Set(1)
			out[i] = float64(v)
			continue
		}
		v, done := tw.Set(float32(elapsed.Seconds()))
		out[i] = float64(v)
		if !done {
			finished = false
		}
	}
	return finished
}
