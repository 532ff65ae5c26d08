package lumen

// ResizeContext carries the new host viewport size.
type ResizeContext struct {
	Width  float64
	Height float64
}

// PointerContext carries pointer event data in host coordinates. For
// EventPointerLeave the coordinates are the last known position.
type PointerContext struct {
	X, Y float64
}

// --- Handler registry ---

type resizeHandler struct {
	id uint32
	fn func(ResizeContext)
}

type pointerHandler struct {
	id uint32
	fn func(PointerContext)
}

type handlerRegistry struct {
	resize       []resizeHandler
	pointerMove  []pointerHandler
	pointerLeave []pointerHandler
	nextID       uint32
}

// CallbackHandle allows removing a registered host listener.
type CallbackHandle struct {
	id    uint32
	reg   *handlerRegistry
	event EventType
}

// Remove unregisters this callback so it no longer fires. Calling Remove more
// than once, or on the zero handle, is a no-op.
func (h CallbackHandle) Remove() {
	if h.reg == nil {
		return
	}
	switch h.event {
	case EventResize:
		h.reg.resize = removeResizeHandler(h.reg.resize, h.id)
	case EventPointerMove:
		h.reg.pointerMove = removePointerHandler(h.reg.pointerMove, h.id)
	case EventPointerLeave:
		h.reg.pointerLeave = removePointerHandler(h.reg.pointerLeave, h.id)
	}
}

func removeResizeHandler(s []resizeHandler, id uint32) []resizeHandler {
	for i := range s {
		if s[i].id == id {
			copy(s[i:], s[i+1:])
			s[len(s)-1] = resizeHandler{}
			return s[:len(s)-1]
		}
	}
	return s
}

func removePointerHandler(s []pointerHandler, id uint32) []pointerHandler {
	for i := range s {
		if s[i].id == id {
			copy(s[i:], s[i+1:])
			s[len(s)-1] = pointerHandler{}
			return s[:len(s)-1]
		}
	}
	return s
}

// registered reports whether id is still present for event.
func (r *handlerRegistry) registered(event EventType, id uint32) bool {
	switch event {
	case EventResize:
		for _, hd := range r.resize {
			if hd.id == id {
				return true
			}
		}
	case EventPointerMove:
		for _, hd := range r.pointerMove {
			if hd.id == id {
				return true
			}
		}
	case EventPointerLeave:
		for _, hd := range r.pointerLeave {
			if hd.id == id {
				return true
			}
		}
	}
	return false
}

func (r *handlerRegistry) count() int {
	return len(r.resize) + len(r.pointerMove) + len(r.pointerLeave)
}

// --- Host-level event registration ---

// OnResize registers a callback for viewport resize events.
func (h *Host) OnResize(fn func(ResizeContext)) CallbackHandle {
	h.handlers.nextID++
	id := h.handlers.nextID
	h.handlers.resize = append(h.handlers.resize, resizeHandler{id: id, fn: fn})
	return CallbackHandle{id: id, reg: &h.handlers, event: EventResize}
}

// OnPointerMove registers a callback for pointer move events.
func (h *Host) OnPointerMove(fn func(PointerContext)) CallbackHandle {
	h.handlers.nextID++
	id := h.handlers.nextID
	h.handlers.pointerMove = append(h.handlers.pointerMove, pointerHandler{id: id, fn: fn})
	return CallbackHandle{id: id, reg: &h.handlers, event: EventPointerMove}
}

// OnPointerLeave registers a callback fired when the pointer leaves the host.
func (h *Host) OnPointerLeave(fn func(PointerContext)) CallbackHandle {
	h.handlers.nextID++
	id := h.handlers.nextID
	h.handlers.pointerLeave = append(h.handlers.pointerLeave, pointerHandler{id: id, fn: fn})
	return CallbackHandle{id: id, reg: &h.handlers, event: EventPointerLeave}
}

// ListenerCount returns the number of registered listeners across all event
// types.
func (h *Host) ListenerCount() int {
	return h.handlers.count()
}

// --- Dispatch ---

// Resize records the new viewport size and notifies resize listeners.
func (h *Host) Resize(width, height float64) {
	h.width, h.height = width, height
	ctx := ResizeContext{Width: width, Height: height}
	// Iterate a snapshot: a listener may remove itself (or another) while
	// the event is being dispatched. Removed listeners are skipped.
	var buf [8]resizeHandler
	for _, hd := range append(buf[:0], h.handlers.resize...) {
		if h.handlers.registered(EventResize, hd.id) {
			hd.fn(ctx)
		}
	}
}

// PointerMove records the pointer position and notifies move listeners.
func (h *Host) PointerMove(x, y float64) {
	h.pointer = Vec2{X: x, Y: y}
	h.pointerIn = true
	h.dispatchPointer(EventPointerMove, PointerContext{X: x, Y: y})
}

// PointerLeave notifies leave listeners that the pointer left the host. It is
// a no-op when the pointer is already outside.
func (h *Host) PointerLeave() {
	if !h.pointerIn {
		return
	}
	h.pointerIn = false
	h.dispatchPointer(EventPointerLeave, PointerContext{X: h.pointer.X, Y: h.pointer.Y})
}

func (h *Host) dispatchPointer(event EventType, ctx PointerContext) {
	handlers := h.handlers.pointerMove
	if event == EventPointerLeave {
		handlers = h.handlers.pointerLeave
	}
	var buf [8]pointerHandler
	for _, hd := range append(buf[:0], handlers...) {
		if h.handlers.registered(event, hd.id) {
			hd.fn(ctx)
		}
	}
}
