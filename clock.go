package lumen

import "time"

// FrameFunc is a frame callback. now is the clock's logical time when the
// frame batch runs.
type FrameFunc func(now time.Duration)

// FrameID identifies a pending frame request. The zero value is never issued.
type FrameID uint64

// TimerID identifies a pending timeout or interval. The zero value is never
// issued.
type TimerID uint64

type frameRequest struct {
	id FrameID
	fn FrameFunc
}

type timer struct {
	id     TimerID
	due    time.Duration
	period time.Duration // > 0 for intervals
	seq    uint64        // tie-break for timers due at the same instant
	fn     func()
}

// Clock is a logical scheduler that plays the role of the browser's frame
// scheduler and timer queue. Nothing reads wall time: the host advances the
// clock explicitly, which makes every engine deterministic under test.
//
// Clock is single-threaded; all callbacks run synchronously inside Advance.
type Clock struct {
	now    time.Duration
	frames []frameRequest
	timers []timer
	nextID uint64
	seq    uint64
	batch  []frameRequest
}

// NewClock creates a clock at logical time zero.
func NewClock() *Clock {
	return &Clock{}
}

// Now returns the current logical time.
func (c *Clock) Now() time.Duration {
	return c.now
}

// RequestFrame schedules fn to run on the next frame batch. Requests made
// from inside a frame callback run on the following batch, never the current
// one.
func (c *Clock) RequestFrame(fn FrameFunc) FrameID {
	c.nextID++
	id := FrameID(c.nextID)
	c.frames = append(c.frames, frameRequest{id: id, fn: fn})
	return id
}

// CancelFrame removes a pending frame request. Unknown or already-run IDs are
// ignored.
func (c *Clock) CancelFrame(id FrameID) {
	for i := range c.frames {
		if c.frames[i].id == id {
			copy(c.frames[i:], c.frames[i+1:])
			c.frames[len(c.frames)-1] = frameRequest{}
			c.frames = c.frames[:len(c.frames)-1]
			return
		}
	}
	// A batch may be running; a frame cancelled mid-batch must not fire.
	for i := range c.batch {
		if c.batch[i].id == id {
			c.batch[i].fn = nil
			return
		}
	}
}

// SetTimeout schedules fn to run once, d after the current logical time.
func (c *Clock) SetTimeout(d time.Duration, fn func()) TimerID {
	return c.addTimer(d, 0, fn)
}

// SetInterval schedules fn to run every period, starting one period from now.
// A non-positive period is treated as one nanosecond so Advance always
// terminates.
func (c *Clock) SetInterval(period time.Duration, fn func()) TimerID {
	if period <= 0 {
		period = 1
	}
	return c.addTimer(period, period, fn)
}

func (c *Clock) addTimer(d, period time.Duration, fn func()) TimerID {
	if d < 0 {
		d = 0
	}
	c.nextID++
	c.seq++
	id := TimerID(c.nextID)
	c.timers = append(c.timers, timer{id: id, due: c.now + d, period: period, seq: c.seq, fn: fn})
	return id
}

// ClearTimer cancels a pending timeout or interval. Unknown IDs are ignored.
func (c *Clock) ClearTimer(id TimerID) {
	for i := range c.timers {
		if c.timers[i].id == id {
			copy(c.timers[i:], c.timers[i+1:])
			c.timers[len(c.timers)-1] = timer{}
			c.timers = c.timers[:len(c.timers)-1]
			return
		}
	}
}

// PendingFrames returns the number of outstanding frame requests.
func (c *Clock) PendingFrames() int {
	return len(c.frames)
}

// PendingTimers returns the number of outstanding timeouts and intervals.
func (c *Clock) PendingTimers() int {
	return len(c.timers)
}

// Advance moves logical time forward by dt. Timers due in (now, now+dt] fire
// in due order, with Now() reporting each timer's due instant while it runs.
// Then every frame request pending at that point runs once at now+dt.
func (c *Clock) Advance(dt time.Duration) {
	if dt < 0 {
		dt = 0
	}
	target := c.now + dt

	for {
		i := c.nextDue(target)
		if i < 0 {
			break
		}
		t := c.timers[i]
		c.now = t.due
		if t.period > 0 {
			c.seq++
			c.timers[i].due += t.period
			c.timers[i].seq = c.seq
		} else {
			copy(c.timers[i:], c.timers[i+1:])
			c.timers[len(c.timers)-1] = timer{}
			c.timers = c.timers[:len(c.timers)-1]
		}
		t.fn()
	}
	c.now = target

	if len(c.frames) == 0 {
		return
	}
	// Swap the pending list out so callbacks re-requesting land in the next
	// batch.
	c.batch, c.frames = c.frames, c.batch[:0]
	for i := range c.batch {
		if fn := c.batch[i].fn; fn != nil {
			fn(c.now)
		}
	}
	clear(c.batch)
	c.batch = c.batch[:0]
}

// nextDue returns the index of the earliest timer due at or before target,
// or -1.
func (c *Clock) nextDue(target time.Duration) int {
	best := -1
	for i := range c.timers {
		t := &c.timers[i]
		if t.due > target {
			continue
		}
		if best < 0 || t.due < c.timers[best].due ||
			(t.due == c.timers[best].due && t.seq < c.timers[best].seq) {
			best = i
		}
	}
	return best
}
