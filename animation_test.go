package lumen

import (
	"testing"
	"time"

	"github.com/tanema/gween/ease"
)

const tweenEps = 1e-5

func TestKeyframesLinear(t *testing.T) {
	k := Keyframes{Values: []float64{0, 10, 0}, Period: time.Second}
	tests := []struct {
		at   time.Duration
		want float64
	}{
		{0, 0},
		{250 * time.Millisecond, 5},
		{500 * time.Millisecond, 10},
		{750 * time.Millisecond, 5},
		{time.Second, 0},
		{1250 * time.Millisecond, 5},
	}
	for _, tt := range tests {
		assertNearEps(t, tt.at.String(), k.At(tt.at), tt.want, tweenEps)
	}
}

func TestKeyframesDegenerate(t *testing.T) {
	assertNear(t, "empty", Keyframes{}.At(time.Second), 0)
	assertNear(t, "single", Keyframes{Values: []float64{3}, Period: time.Second}.At(time.Second), 3)
	assertNear(t, "zero period", Keyframes{Values: []float64{2, 8}}.At(time.Second), 2)
}

func TestKeyframesEasedMidpoint(t *testing.T) {
	k := Keyframes{Values: []float64{1, 0, 1}, Period: time.Second, Ease: ease.InOutSine}
	// InOutSine is symmetric: halfway through a segment is halfway between stops.
	assertNearEps(t, "quarter", k.At(250*time.Millisecond), 0.5, tweenEps)
	assertNearEps(t, "half", k.At(500*time.Millisecond), 0, tweenEps)
	if v := k.At(100 * time.Millisecond); v <= 0.5 || v > 1 {
		t.Errorf("early value %v should still be near 1", v)
	}
}

func TestLoopPhase(t *testing.T) {
	assertNear(t, "0", loopPhase(0, 4*time.Second), 0)
	assertNear(t, "1s", loopPhase(time.Second, 4*time.Second), 0.25)
	assertNear(t, "5s", loopPhase(5*time.Second, 4*time.Second), 0.25)
	assertNear(t, "zero period", loopPhase(time.Second, 0), 0)
}

func TestTweenSet(t *testing.T) {
	s := newTweenSet(300*time.Millisecond, ease.Linear,
		Range{Min: 20, Max: 0},
		Range{Min: 0, Max: 1},
	)
	out := make([]float64, 2)

	if s.at(0, out) {
		t.Error("finished at 0")
	}
	assertNearEps(t, "offset@0", out[0], 20, tweenEps)
	assertNearEps(t, "opacity@0", out[1], 0, tweenEps)

	if s.at(150*time.Millisecond, out) {
		t.Error("finished halfway")
	}
	assertNearEps(t, "offset@150", out[0], 10, tweenEps)
	assertNearEps(t, "opacity@150", out[1], 0.5, tweenEps)

	if !s.at(time.Second, out) {
		t.Error("not finished past duration")
	}
	assertNearEps(t, "offset@end", out[0], 0, tweenEps)
	assertNearEps(t, "opacity@end", out[1], 1, tweenEps)
}

func TestTweenSetZeroDuration(t *testing.T) {
	s := newTweenSet(0, ease.OutCubic, Range{Min: 20, Max: 0})
	out := make([]float64, 1)
	if !s.at(0, out) {
		t.Error("zero-duration set should be finished")
	}
	assertNearEps(t, "value", out[0], 0, tweenEps)
}
