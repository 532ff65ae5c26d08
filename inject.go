package lumen

// hostEvent represents a single injected host input event.
type hostEvent struct {
	kind EventType
	x, y float64 // pointer position, or width/height for resize
}

// InjectPointerMove queues a pointer move to (x, y). Injected events are
// consumed one per Update, before the clock advances.
func (h *Host) InjectPointerMove(x, y float64) {
	h.injectQueue = append(h.injectQueue, hostEvent{kind: EventPointerMove, x: x, y: y})
}

// InjectPointerLeave queues the pointer leaving the host.
func (h *Host) InjectPointerLeave() {
	h.injectQueue = append(h.injectQueue, hostEvent{kind: EventPointerLeave})
}

// InjectResize queues a viewport resize.
func (h *Host) InjectResize(width, height float64) {
	h.injectQueue = append(h.injectQueue, hostEvent{kind: EventResize, x: width, y: height})
}

// InjectSweep queues a straight pointer path from (fromX, fromY) to (toX, toY)
// over the given number of moves, both endpoints included. Minimum is 2.
func (h *Host) InjectSweep(fromX, fromY, toX, toY float64, moves int) {
	if moves < 2 {
		moves = 2
	}
	for i := 0; i < moves; i++ {
		t := float64(i) / float64(moves-1)
		h.InjectPointerMove(lerp(fromX, toX, t), lerp(fromY, toY, t))
	}
}

// PendingInjected returns the number of queued injected events.
func (h *Host) PendingInjected() int {
	return len(h.injectQueue)
}

// processInjected pops one event from the inject queue and dispatches it as
// if it came from the real input source. Returns true if an event was
// consumed.
func (h *Host) processInjected() bool {
	if len(h.injectQueue) == 0 {
		return false
	}
	evt := h.injectQueue[0]
	copy(h.injectQueue, h.injectQueue[1:])
	h.injectQueue = h.injectQueue[:len(h.injectQueue)-1]

	switch evt.kind {
	case EventPointerMove:
		h.PointerMove(evt.x, evt.y)
	case EventPointerLeave:
		h.PointerLeave()
	case EventResize:
		h.Resize(evt.x, evt.y)
	}
	return true
}
