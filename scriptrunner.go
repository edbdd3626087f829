package placard

import (
	"encoding/json"
	"fmt"
)

// scriptStep represents a single action in a scroll script.
type scriptStep struct {
	Action string  `json:"action"`
	Y      float64 `json:"y,omitempty"`
	DY     float64 `json:"dy,omitempty"`
	FromY  float64 `json:"fromY,omitempty"`
	ToY    float64 `json:"toY,omitempty"`
	Index  int     `json:"index,omitempty"`
	Frames int     `json:"frames,omitempty"`
}

// scrollScript is the top-level JSON structure for a scroll script.
type scrollScript struct {
	Steps []scriptStep `json:"steps"`
}

// ScriptRunner sequences injected scroll input across frames for automated
// behavioral testing of a ScrollView. Attach with SetScriptRunner; the
// runner advances one step per Update.
//
// Supported actions: "wheel" (dy), "press"/"move"/"release" (y),
// "drag" (fromY, toY, frames), "jump" (index), "wait" (frames).
type ScriptRunner struct {
	steps     []scriptStep
	cursor    int
	waitCount int
	done      bool
}

// LoadScrollScript parses a JSON scroll script into a ScriptRunner.
func LoadScrollScript(jsonData []byte) (*ScriptRunner, error) {
	var script scrollScript
	if err := json.Unmarshal(jsonData, &script); err != nil {
		return nil, fmt.Errorf("parse scroll script: %w", err)
	}
	if len(script.Steps) == 0 {
		return nil, fmt.Errorf("parse scroll script: no steps")
	}
	return &ScriptRunner{steps: script.Steps}, nil
}

// SetScriptRunner attaches a runner to the view. The runner steps once per
// Update, before input processing.
func (v *ScrollView) SetScriptRunner(runner *ScriptRunner) {
	v.script = runner
}

// Done reports whether all steps have been executed and the injected input
// they queued has been consumed.
func (r *ScriptRunner) Done() bool {
	return r.done
}

// step advances the runner by one frame. Called from ScrollView.Update.
func (r *ScriptRunner) step(v *ScrollView) {
	if r.done {
		return
	}
	if r.waitCount > 0 {
		r.waitCount--
		return
	}
	// Let previously queued synthetic input drain before the next step.
	if len(v.injectQueue) > 0 {
		return
	}
	if r.cursor >= len(r.steps) {
		r.done = true
		return
	}

	s := r.steps[r.cursor]
	r.cursor++

	switch s.Action {
	case "wheel":
		v.InjectWheel(s.DY)
	case "press":
		v.InjectPress(s.Y)
	case "move":
		v.InjectMove(s.Y)
	case "release":
		v.InjectRelease(s.Y)
	case "drag":
		v.InjectDrag(s.FromY, s.ToY, s.Frames)
	case "jump":
		_ = v.ctrl.JumpToHeader(s.Index)
	case "wait":
		r.waitCount = s.Frames
	}
}
