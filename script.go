package lumen

import (
	"encoding/json"
	"fmt"
)

// scriptStep represents a single action in a replay script.
type scriptStep struct {
	Action string  `json:"action"`
	Label  string  `json:"label,omitempty"`
	X      float64 `json:"x,omitempty"`
	Y      float64 `json:"y,omitempty"`
	Width  float64 `json:"width,omitempty"`
	Height float64 `json:"height,omitempty"`
	ToX    float64 `json:"toX,omitempty"`
	ToY    float64 `json:"toY,omitempty"`
	Frames int     `json:"frames,omitempty"`
}

// script is the top-level JSON structure for a replay script.
type script struct {
	Steps []scriptStep `json:"steps"`
}

// ScriptRunner sequences injected input and screenshots across updates, for
// headless replays and visual regression runs. Attach to a Host via
// SetScriptRunner.
//
// Actions:
//
//	move        pointer to (x, y)
//	sweep       pointer from (x, y) to (toX, toY) over frames moves
//	leave       pointer leaves the host
//	resize      viewport becomes width×height
//	wait        let frames updates pass
//	screenshot  capture the snapshot source under label
type ScriptRunner struct {
	steps     []scriptStep
	cursor    int
	waitCount int
	done      bool
}

// LoadScript parses a JSON replay script and returns a runner ready to be
// attached to a Host.
func LoadScript(jsonData []byte) (*ScriptRunner, error) {
	var sc script
	if err := json.Unmarshal(jsonData, &sc); err != nil {
		return nil, fmt.Errorf("lumen: parse script: %w", err)
	}
	if len(sc.Steps) == 0 {
		return nil, fmt.Errorf("lumen: parse script: no steps")
	}
	for i, st := range sc.Steps {
		switch st.Action {
		case "move", "sweep", "leave", "resize", "wait", "screenshot":
		default:
			return nil, fmt.Errorf("lumen: parse script: step %d: unknown action %q", i, st.Action)
		}
	}
	return &ScriptRunner{steps: sc.Steps}, nil
}

// SetScriptRunner attaches a runner to the host. The runner's step method is
// called from Host.Update before injected input is processed.
func (h *Host) SetScriptRunner(runner *ScriptRunner) {
	h.runner = runner
}

// Done reports whether all steps in the script have been executed.
func (r *ScriptRunner) Done() bool {
	return r.done
}

// step advances the runner by one update. Called from Host.Update.
func (r *ScriptRunner) step(h *Host) {
	if r.done {
		return
	}
	// Wait for pending injections to drain before advancing.
	if len(h.injectQueue) > 0 {
		return
	}
	if r.waitCount > 0 {
		r.waitCount--
		return
	}
	if r.cursor >= len(r.steps) {
		r.done = true
		return
	}

	st := r.steps[r.cursor]
	r.cursor++

	switch st.Action {
	case "screenshot":
		h.Screenshot(st.Label)
	case "move":
		h.InjectPointerMove(st.X, st.Y)
	case "sweep":
		h.InjectSweep(st.X, st.Y, st.ToX, st.ToY, st.Frames)
	case "leave":
		h.InjectPointerLeave()
	case "resize":
		h.InjectResize(st.Width, st.Height)
	case "wait":
		if st.Frames > 0 {
			r.waitCount = st.Frames - 1 // this update counts as one
		}
	}

	if r.cursor >= len(r.steps) && r.waitCount == 0 && len(h.injectQueue) == 0 {
		r.done = true
	}
}
