package lumen

import (
	"fmt"
	"io"
	"os"
	"time"
)

// Host is the mount point engines bind to. It owns the logical clock, the
// listener registry, and the current viewport size.
//
// Host is single-threaded: call every method from the goroutine that drives
// Update (normally the Ebitengine update loop).
type Host struct {
	clock    *Clock
	handlers handlerRegistry
	sink     EventSink
	debug    bool
	logOut   io.Writer

	width, height float64
	pointer       Vec2
	pointerIn     bool

	injectQueue []hostEvent
	runner      *ScriptRunner

	// ScreenshotDir is the directory PNG screenshots are written to.
	// Defaults to "screenshots".
	ScreenshotDir   string
	screenshotQueue []string
	snapshotSource  Snapshotter
}

// NewHost creates a host with a fresh clock at time zero.
func NewHost() *Host {
	return &Host{
		clock:         NewClock(),
		logOut:        os.Stderr,
		ScreenshotDir: "screenshots",
	}
}

// Clock returns the host's scheduler.
func (h *Host) Clock() *Clock {
	return h.clock
}

// Now is shorthand for h.Clock().Now().
func (h *Host) Now() time.Duration {
	return h.clock.now
}

// Size returns the last viewport size passed to Resize.
func (h *Host) Size() (width, height float64) {
	return h.width, h.height
}

// Pointer returns the last pointer position and whether the pointer is
// currently over the host.
func (h *Host) Pointer() (Vec2, bool) {
	return h.pointer, h.pointerIn
}

// Update steps the attached script runner, consumes at most one injected
// input event, advances the clock by dt, and writes any queued screenshots.
func (h *Host) Update(dt time.Duration) {
	if h.runner != nil {
		h.runner.step(h)
	}
	h.processInjected()
	h.clock.Advance(dt)
	h.flushScreenshots()
}

// SetEventSink sets the optional engine event sink.
func (h *Host) SetEventSink(sink EventSink) {
	h.sink = sink
}

// SetDebugMode enables or disables debug mode. When enabled, per-frame
// particle statistics are logged alongside engine failures.
func (h *Host) SetDebugMode(enabled bool) {
	h.debug = enabled
}

// SetLogOutput redirects diagnostics. Defaults to os.Stderr; nil discards.
func (h *Host) SetLogOutput(w io.Writer) {
	if w == nil {
		w = io.Discard
	}
	h.logOut = w
}

func (h *Host) emit(event EngineEvent) {
	if h.sink != nil {
		h.sink.EmitEvent(event)
	}
}

func (h *Host) logf(format string, args ...any) {
	_, _ = fmt.Fprintf(h.logOut, "[lumen] "+format+"\n", args...)
}
