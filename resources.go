package lumen

import (
	"fmt"
	"time"
)

// resources tracks everything one engine instance holds on its host: at most
// one frame request, at most one timer, and any number of listeners. release
// is the single cancellation path; every engine's Stop funnels into it.
type resources struct {
	name      string
	host      *Host
	running   bool
	frame     FrameID
	timer     TimerID
	handles   []CallbackHandle
	onRelease func()
}

func (r *resources) start(h *Host, name string) {
	r.host = h
	r.name = name
	r.running = true
	h.emit(EngineEvent{Type: EngineStarted, Engine: name})
}

// requestFrame schedules fn for the next frame batch, replacing any pending
// request. fn runs behind guard.
func (r *resources) requestFrame(fn FrameFunc) {
	if !r.running {
		return
	}
	r.cancelFrame()
	r.frame = r.host.clock.RequestFrame(func(now time.Duration) {
		r.frame = 0
		if r.running {
			r.guard(func() { fn(now) })
		}
	})
}

// setTimeout arms the engine's single timer, replacing any pending one.
func (r *resources) setTimeout(d time.Duration, fn func()) {
	if !r.running {
		return
	}
	r.clearTimer()
	r.timer = r.host.clock.SetTimeout(d, func() {
		r.timer = 0
		if r.running {
			r.guard(fn)
		}
	})
}

// setInterval arms the engine's single timer as a repeating interval.
func (r *resources) setInterval(period time.Duration, fn func()) {
	if !r.running {
		return
	}
	r.clearTimer()
	r.timer = r.host.clock.SetInterval(period, func() {
		if r.running {
			r.guard(fn)
		}
	})
}

// track records a listener handle so release removes it.
func (r *resources) track(h CallbackHandle) {
	r.handles = append(r.handles, h)
}

// release cancels the pending frame and timer, removes every listener, and
// marks the owner stopped. Safe to call repeatedly.
func (r *resources) release() {
	if !r.running {
		return
	}
	r.running = false
	r.cancelFrame()
	r.clearTimer()
	for _, hd := range r.handles {
		hd.Remove()
	}
	clear(r.handles)
	r.handles = r.handles[:0]
	if r.onRelease != nil {
		r.onRelease()
	}
	r.host.emit(EngineEvent{Type: EngineStopped, Engine: r.name})
}

func (r *resources) cancelFrame() {
	if r.frame != 0 {
		r.host.clock.CancelFrame(r.frame)
		r.frame = 0
	}
}

func (r *resources) clearTimer() {
	if r.timer != 0 {
		r.host.clock.ClearTimer(r.timer)
		r.timer = 0
	}
}

// guard runs fn, converting a panic into a logged, clean stop of the owning
// engine so a broken effect never takes the host loop down with it.
func (r *resources) guard(fn func()) {
	defer func() {
		if v := recover(); v != nil {
			err := fmt.Errorf("lumen: %s: %v", r.name, v)
			r.host.logf("%s stopped: %v", r.name, v)
			r.host.emit(EngineEvent{Type: EngineFailed, Engine: r.name, Err: err})
			r.release()
		}
	}()
	fn()
}
