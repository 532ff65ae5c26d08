package lumen

import (
	"bytes"
	"strings"
	"testing"
)

func TestHostResizeDispatch(t *testing.T) {
	h := NewHost()
	var got []ResizeContext
	h.OnResize(func(ctx ResizeContext) { got = append(got, ctx) })
	h.Resize(800, 600)
	if len(got) != 1 || got[0].Width != 800 || got[0].Height != 600 {
		t.Errorf("got %+v", got)
	}
	w, hh := h.Size()
	if w != 800 || hh != 600 {
		t.Errorf("Size = %v x %v", w, hh)
	}
}

func TestCallbackHandleRemove(t *testing.T) {
	h := NewHost()
	calls := 0
	hd := h.OnPointerMove(func(PointerContext) { calls++ })
	h.PointerMove(1, 1)
	hd.Remove()
	hd.Remove()
	h.PointerMove(2, 2)
	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}
	if h.ListenerCount() != 0 {
		t.Errorf("ListenerCount = %d", h.ListenerCount())
	}
	CallbackHandle{}.Remove()
}

func TestListenerRemovedDuringDispatch(t *testing.T) {
	h := NewHost()
	var second CallbackHandle
	secondCalls := 0
	h.OnResize(func(ResizeContext) { second.Remove() })
	second = h.OnResize(func(ResizeContext) { secondCalls++ })
	h.Resize(10, 10)
	if secondCalls != 0 {
		t.Errorf("removed listener fired %d times", secondCalls)
	}
}

func TestPointerLeaveOnlyWhenInside(t *testing.T) {
	h := NewHost()
	leaves := 0
	h.OnPointerLeave(func(ctx PointerContext) {
		leaves++
		if ctx.X != 5 || ctx.Y != 6 {
			t.Errorf("leave ctx = %+v, want last position", ctx)
		}
	})
	h.PointerLeave()
	if leaves != 0 {
		t.Fatal("leave fired while outside")
	}
	h.PointerMove(5, 6)
	if _, in := h.Pointer(); !in {
		t.Error("pointer should be inside after move")
	}
	h.PointerLeave()
	h.PointerLeave()
	if leaves != 1 {
		t.Errorf("leaves = %d, want 1", leaves)
	}
}

func TestHostLogOutput(t *testing.T) {
	h := NewHost()
	var buf bytes.Buffer
	h.SetLogOutput(&buf)
	h.logf("hello %d", 7)
	if got := buf.String(); !strings.HasPrefix(got, "[lumen] hello 7") {
		t.Errorf("log = %q", got)
	}
	h.SetLogOutput(nil)
	h.logf("discarded")
}

func TestHostUpdateAdvancesClock(t *testing.T) {
	h := NewHost()
	h.Update(16_000_000)
	if h.Now() != h.Clock().Now() || h.Now() == 0 {
		t.Errorf("Now = %v", h.Now())
	}
}
