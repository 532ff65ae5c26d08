package lumen

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadScript(t *testing.T) {
	data := []byte(`{
		"steps": [
			{"action": "screenshot", "label": "initial"},
			{"action": "move", "x": 100, "y": 200},
			{"action": "wait", "frames": 3},
			{"action": "sweep", "x": 0, "y": 0, "toX": 50, "toY": 50, "frames": 4},
			{"action": "resize", "width": 320, "height": 240},
			{"action": "leave"}
		]
	}`)

	runner, err := LoadScript(data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(runner.steps) != 6 {
		t.Fatalf("expected 6 steps, got %d", len(runner.steps))
	}
	if runner.steps[0].Action != "screenshot" || runner.steps[0].Label != "initial" {
		t.Error("step 0 mismatch")
	}
	if runner.steps[1].X != 100 || runner.steps[1].Y != 200 {
		t.Error("step 1 mismatch")
	}
	if runner.steps[3].ToX != 50 || runner.steps[3].Frames != 4 {
		t.Error("step 3 mismatch")
	}
	if runner.steps[4].Width != 320 || runner.steps[4].Height != 240 {
		t.Error("step 4 mismatch")
	}
}

func TestLoadScript_Errors(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"invalid json", `not json`},
		{"empty", `{"steps": []}`},
		{"unknown action", `{"steps": [{"action": "click"}]}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := LoadScript([]byte(tt.data)); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestRunnerStep_Move(t *testing.T) {
	h := NewHost()
	var moves int
	h.OnPointerMove(func(PointerContext) { moves++ })

	runner, err := LoadScript([]byte(`{"steps": [{"action": "move", "x": 5, "y": 5}]}`))
	if err != nil {
		t.Fatal(err)
	}
	h.SetScriptRunner(runner)

	// Update 1: runner queues the move, then it is processed in the same update.
	h.Update(0)
	if moves != 1 {
		t.Errorf("moves = %d, want 1", moves)
	}
	h.Update(0)
	if !runner.Done() {
		t.Error("runner should be done")
	}
}

func TestRunnerStep_Wait(t *testing.T) {
	h := NewHost()
	var moves int
	h.OnPointerMove(func(PointerContext) { moves++ })

	runner, err := LoadScript([]byte(`{"steps": [
		{"action": "wait", "frames": 3},
		{"action": "move", "x": 1, "y": 1}
	]}`))
	if err != nil {
		t.Fatal(err)
	}
	h.SetScriptRunner(runner)

	for i := 0; i < 3; i++ {
		h.Update(0)
		if moves != 0 {
			t.Fatalf("update %d: move fired during wait", i+1)
		}
	}
	h.Update(0)
	if moves != 1 {
		t.Errorf("moves = %d after wait, want 1", moves)
	}
}

func TestRunnerWaitsForInjectQueue(t *testing.T) {
	h := NewHost()
	var moves int
	h.OnPointerMove(func(PointerContext) { moves++ })

	runner, err := LoadScript([]byte(`{"steps": [
		{"action": "sweep", "x": 0, "y": 0, "toX": 10, "toY": 0, "frames": 3},
		{"action": "leave"}
	]}`))
	if err != nil {
		t.Fatal(err)
	}
	h.SetScriptRunner(runner)

	leaves := 0
	h.OnPointerLeave(func(PointerContext) { leaves++ })
	for i := 0; i < 3; i++ {
		h.Update(0)
	}
	if moves != 3 || leaves != 0 {
		t.Fatalf("after sweep: moves=%d leaves=%d", moves, leaves)
	}
	h.Update(0)
	if leaves != 1 {
		t.Errorf("leaves = %d, want 1", leaves)
	}
	h.Update(0)
	if !runner.Done() {
		t.Error("runner should be done")
	}
}

func TestRunnerScreenshots(t *testing.T) {
	dir := t.TempDir()
	h := NewHost()
	h.ScreenshotDir = dir
	s := NewRasterSurface(16, 16)
	h.SetScreenshotSource(s)
	s.DrawCircle(Circle{X: 8, Y: 8, Radius: 4, Fill: opaqueRed})

	runner, err := LoadScript([]byte(`{"steps": [{"action": "screenshot", "label": "after spawn"}]}`))
	if err != nil {
		t.Fatal(err)
	}
	h.SetScriptRunner(runner)
	h.Update(0)

	matches, err := filepath.Glob(filepath.Join(dir, "*_after_spawn.png"))
	if err != nil {
		t.Fatal(err)
	}
	if len(matches) != 1 {
		entries, _ := os.ReadDir(dir)
		t.Fatalf("screenshots = %v (dir has %d entries)", matches, len(entries))
	}
}
