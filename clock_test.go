package lumen

import (
	"testing"
	"time"
)

func TestClockTimersFireInDueOrder(t *testing.T) {
	c := NewClock()
	var got []string
	c.SetTimeout(30*time.Millisecond, func() { got = append(got, "c") })
	c.SetTimeout(10*time.Millisecond, func() { got = append(got, "a") })
	c.SetTimeout(20*time.Millisecond, func() { got = append(got, "b") })

	c.Advance(100 * time.Millisecond)

	if len(got) != 3 || got[0] != "a" || got[1] != "b" || got[2] != "c" {
		t.Errorf("order = %v, want [a b c]", got)
	}
	if c.Now() != 100*time.Millisecond {
		t.Errorf("Now = %v", c.Now())
	}
	if c.PendingTimers() != 0 {
		t.Errorf("PendingTimers = %d", c.PendingTimers())
	}
}

func TestClockTimerSeesDueInstant(t *testing.T) {
	c := NewClock()
	var at time.Duration
	c.SetTimeout(40*time.Millisecond, func() { at = c.Now() })
	c.Advance(time.Second)
	if at != 40*time.Millisecond {
		t.Errorf("timer ran at %v, want 40ms", at)
	}
}

func TestClockTimeoutChainWithinOneAdvance(t *testing.T) {
	c := NewClock()
	count := 0
	var tick func()
	tick = func() {
		count++
		c.SetTimeout(100*time.Millisecond, tick)
	}
	c.SetTimeout(100*time.Millisecond, tick)
	c.Advance(450 * time.Millisecond)
	if count != 4 {
		t.Errorf("count = %d, want 4", count)
	}
}

func TestClockInterval(t *testing.T) {
	c := NewClock()
	count := 0
	id := c.SetInterval(time.Second, func() { count++ })
	c.Advance(3500 * time.Millisecond)
	if count != 3 {
		t.Errorf("count = %d, want 3", count)
	}
	c.ClearTimer(id)
	c.Advance(5 * time.Second)
	if count != 3 {
		t.Errorf("count after clear = %d, want 3", count)
	}
}

func TestClockFramesRunOncePerAdvance(t *testing.T) {
	c := NewClock()
	runs := 0
	var frame FrameFunc
	frame = func(time.Duration) {
		runs++
		c.RequestFrame(frame)
	}
	c.RequestFrame(frame)

	c.Advance(16 * time.Millisecond)
	if runs != 1 {
		t.Fatalf("runs = %d after one advance, want 1", runs)
	}
	c.Advance(16 * time.Millisecond)
	if runs != 2 {
		t.Errorf("runs = %d after two advances, want 2", runs)
	}
	if c.PendingFrames() != 1 {
		t.Errorf("PendingFrames = %d, want 1", c.PendingFrames())
	}
}

func TestClockFrameSeesAdvancedTime(t *testing.T) {
	c := NewClock()
	var at time.Duration
	c.RequestFrame(func(now time.Duration) { at = now })
	c.Advance(250 * time.Millisecond)
	if at != 250*time.Millisecond {
		t.Errorf("frame now = %v", at)
	}
}

func TestClockCancelFrame(t *testing.T) {
	c := NewClock()
	ran := false
	id := c.RequestFrame(func(time.Duration) { ran = true })
	c.CancelFrame(id)
	c.Advance(time.Second)
	if ran {
		t.Error("cancelled frame ran")
	}
}

func TestClockCancelFrameMidBatch(t *testing.T) {
	c := NewClock()
	ran := false
	var second FrameID
	c.RequestFrame(func(time.Duration) { c.CancelFrame(second) })
	second = c.RequestFrame(func(time.Duration) { ran = true })
	c.Advance(time.Millisecond)
	if ran {
		t.Error("frame cancelled by an earlier frame in the same batch still ran")
	}
}

func TestClockNegativeAdvance(t *testing.T) {
	c := NewClock()
	c.Advance(time.Second)
	c.Advance(-time.Second)
	if c.Now() != time.Second {
		t.Errorf("Now = %v, want 1s", c.Now())
	}
}
