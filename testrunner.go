package sprig

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// scriptStep is one entry of a test script. Which fields matter depends on
// Action; validate checks the required ones at load time.
type scriptStep struct {
	Action   string  `json:"action"`
	Label    string  `json:"label"`
	Key      string  `json:"key"`
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	FromX    float64 `json:"fromX"`
	FromY    float64 `json:"fromY"`
	ToX      float64 `json:"toX"`
	ToY      float64 `json:"toY"`
	Frames   int     `json:"frames"`
	Ms       int     `json:"ms"`
	Scene    string  `json:"scene"`
	Variable string  `json:"variable"`
	Value    any     `json:"value"`
}

func (st scriptStep) validate() error {
	switch st.Action {
	case "click", "move", "drag", "wait", "screenshot":
	case "key":
		if st.Key == "" {
			return errors.New("key step without a key")
		}
	case "scene":
		if st.Scene == "" {
			return errors.New("scene step without a scene")
		}
	case "expect":
		if st.Scene == "" && st.Variable == "" {
			return errors.New("expect step needs a scene or a variable")
		}
	default:
		return fmt.Errorf("unknown action %q", st.Action)
	}
	return nil
}

// TestRunner plays a scripted sequence of input, waits, scene switches,
// screenshots and expectations against an engine, one step per frame.
// Attach it with [Engine.SetTestRunner].
//
//	{"steps": [
//	  {"action": "key", "key": "ArrowUp", "frames": 10},
//	  {"action": "click", "x": 320, "y": 240},
//	  {"action": "wait", "ms": 500},
//	  {"action": "expect", "variable": "score", "value": 1},
//	  {"action": "screenshot", "label": "after-click"}
//	]}
//
// Pointer coordinates are screen pixels. A failed expectation is recorded
// and the script carries on; see [TestRunner.Failures].
type TestRunner struct {
	steps []scriptStep
	next  int

	holdFrames int
	holdUntil  time.Time

	failures []error
	done     bool
}

// LoadTestScript parses and validates a JSON test script.
func LoadTestScript(data []byte) (*TestRunner, error) {
	var script struct {
		Steps []scriptStep `json:"steps"`
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&script); err != nil {
		return nil, fmt.Errorf("sprig: parse test script: %w", err)
	}
	if len(script.Steps) == 0 {
		return nil, errors.New("sprig: parse test script: no steps")
	}
	for i, st := range script.Steps {
		if err := st.validate(); err != nil {
			return nil, fmt.Errorf("sprig: parse test script: step %d: %w", i, err)
		}
	}
	return &TestRunner{steps: script.Steps}, nil
}

// SetTestRunner attaches runner. It advances once per Update, before input
// is polled, so injected events land in the same frame.
func (e *Engine) SetTestRunner(runner *TestRunner) {
	e.testRunner = runner
}

// Done reports whether every step has run and its input has drained.
func (r *TestRunner) Done() bool { return r.done }

// Failures returns the expectations that did not hold, in step order.
func (r *TestRunner) Failures() []error {
	return append([]error(nil), r.failures...)
}

func (r *TestRunner) step(e *Engine) {
	if r.done || len(e.injectQueue) > 0 {
		return
	}
	if r.holdFrames > 0 {
		r.holdFrames--
		return
	}
	if !r.holdUntil.IsZero() {
		if e.clock.Now().Before(r.holdUntil) {
			return
		}
		r.holdUntil = time.Time{}
	}
	if r.next == len(r.steps) {
		r.finish()
		return
	}

	st := r.steps[r.next]
	r.next++
	r.run(e, st)

	if r.next == len(r.steps) && r.holdFrames == 0 && r.holdUntil.IsZero() && len(e.injectQueue) == 0 {
		r.finish()
	}
}

func (r *TestRunner) run(e *Engine, st scriptStep) {
	switch st.Action {
	case "click":
		e.InjectClick(st.X, st.Y)
	case "move":
		e.InjectHover(st.X, st.Y)
	case "drag":
		e.InjectDrag(st.FromX, st.FromY, st.ToX, st.ToY, max(st.Frames, 2))
	case "key":
		e.InjectKey(st.Key, max(st.Frames, 1))
	case "scene":
		e.SetScene(st.Scene)
	case "screenshot":
		e.Screenshot(st.Label)
	case "wait":
		// The frame running the step counts as the first waited frame.
		if st.Frames > 0 {
			r.holdFrames = st.Frames - 1
		}
		if st.Ms > 0 {
			r.holdUntil = e.clock.Now().Add(time.Duration(st.Ms) * time.Millisecond)
		}
	case "expect":
		r.expect(e, st)
	}
}

func (r *TestRunner) expect(e *Engine, st scriptStep) {
	if st.Scene != "" && e.CurrentScene() != st.Scene {
		r.fail("scene is %q, want %q", e.CurrentScene(), st.Scene)
	}
	if st.Variable == "" {
		return
	}
	got, ok := e.Variable(st.Variable)
	switch {
	case !ok:
		r.fail("variable %q is unset, want %v", st.Variable, st.Value)
	case fmt.Sprint(got) != fmt.Sprint(st.Value):
		r.fail("variable %q is %v, want %v", st.Variable, got, st.Value)
	}
}

func (r *TestRunner) fail(format string, args ...any) {
	err := fmt.Errorf("step %d: "+format, append([]any{r.next - 1}, args...)...)
	Logger().Warn("test script expectation failed", "error", err)
	r.failures = append(r.failures, err)
}

func (r *TestRunner) finish() {
	r.done = true
	Logger().Info("test script finished", "steps", len(r.steps), "failures", len(r.failures))
}
