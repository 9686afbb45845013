package turtleizer

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrUnknownStep is returned by LoadScript for an unrecognized action.
var ErrUnknownStep = errors.New("turtleizer: unknown script step")

const (
	defaultStepsPerFrame = 500
	maxScriptOps         = 1 << 20
)

// scriptStep is a single action in a turtle script as written in JSON.
type scriptStep struct {
	Action  string       `json:"action"`
	Value   float64      `json:"value,omitempty"`
	X       float64      `json:"x,omitempty"`
	Y       float64      `json:"y,omitempty"`
	R       uint8        `json:"r,omitempty"`
	G       uint8        `json:"g,omitempty"`
	B       uint8        `json:"b,omitempty"`
	Color   string       `json:"color,omitempty"`
	Turtle  int          `json:"turtle,omitempty"`
	Command string       `json:"command,omitempty"`
	Frames  int          `json:"frames,omitempty"`
	Count   int          `json:"count,omitempty"`
	Steps   []scriptStep `json:"steps,omitempty"`
}

// script is the top-level JSON structure of a turtle script.
type script struct {
	Steps []scriptStep `json:"steps"`
}

type opKind uint8

const (
	opForward opKind = iota
	opFd
	opTurn
	opPenUp
	opPenDown
	opShow
	opHide
	opGotoXY
	opGotoX
	opGotoY
	opPenColor
	opBackground
	opClear
	opAddTurtle
	opSelect
	opCommand
	opWait
)

// scriptOp is a compiled step. Repeats are unrolled at load time.
type scriptOp struct {
	kind     opKind
	a, b     float64
	n        int
	color    Color
	hasColor bool
	cmd      Command
}

// ScriptRunner executes a turtle script against a Scene, a batch of steps
// per frame. A batch ends early when the renderer requests a flush, so a
// drawing with auto-update on is animated while it grows. Attach to a Scene
// via SetScript.
type ScriptRunner struct {
	// MaxStepsPerFrame caps the steps run in one frame.
	MaxStepsPerFrame int

	ops       []scriptOp
	cursor    int
	waitCount int
	done      bool
}

// LoadScript parses a JSON turtle script and returns a ScriptRunner ready
// to be attached to a Scene via SetScript.
//
//	{"steps": [
//	  {"action": "repeat", "count": 4, "steps": [
//	    {"action": "forward", "value": 100, "color": "red"},
//	    {"action": "right", "value": 90}
//	  ]}
//	]}
func LoadScript(jsonData []byte) (*ScriptRunner, error) {
	var sc script
	if err := json.Unmarshal(jsonData, &sc); err != nil {
		return nil, fmt.Errorf("parse script: %w", err)
	}
	if len(sc.Steps) == 0 {
		return nil, fmt.Errorf("parse script: no steps")
	}
	ops, err := compileSteps(nil, sc.Steps)
	if err != nil {
		return nil, fmt.Errorf("parse script: %w", err)
	}
	return &ScriptRunner{MaxStepsPerFrame: defaultStepsPerFrame, ops: ops}, nil
}

func compileSteps(ops []scriptOp, steps []scriptStep) ([]scriptOp, error) {
	for i, st := range steps {
		if st.Action == "repeat" {
			if st.Count < 0 || st.Count > maxScriptOps {
				return nil, fmt.Errorf("step %d (repeat): count %d out of range", i, st.Count)
			}
			for range st.Count {
				n := len(ops)
				var err error
				if ops, err = compileSteps(ops, st.Steps); err != nil {
					return nil, err
				}
				// A body that compiles to nothing does so every time.
				if len(ops) == n {
					break
				}
			}
			continue
		}
		op, err := compileStep(st)
		if err != nil {
			return nil, fmt.Errorf("step %d (%s): %w", i, st.Action, err)
		}
		ops = append(ops, op)
		if len(ops) > maxScriptOps {
			return nil, fmt.Errorf("more than %d steps", maxScriptOps)
		}
	}
	return ops, nil
}

func compileStep(st scriptStep) (scriptOp, error) {
	var op scriptOp
	if st.Color != "" {
		c, err := ParseColor(st.Color)
		if err != nil {
			return op, err
		}
		op.color, op.hasColor = c, true
	}
	switch st.Action {
	case "forward":
		op.kind, op.a = opForward, st.Value
	case "backward":
		op.kind, op.a = opForward, -st.Value
	case "fd":
		op.kind, op.n = opFd, int(st.Value)
	case "bk":
		op.kind, op.n = opFd, -int(st.Value)
	case "left":
		op.kind, op.a = opTurn, st.Value
	case "right":
		op.kind, op.a = opTurn, -st.Value
	case "penUp":
		op.kind = opPenUp
	case "penDown":
		op.kind = opPenDown
	case "show":
		op.kind = opShow
	case "hide":
		op.kind = opHide
	case "gotoXY":
		op.kind, op.a, op.b = opGotoXY, st.X, st.Y
	case "gotoX":
		op.kind, op.a = opGotoX, st.X
	case "gotoY":
		op.kind, op.a = opGotoY, st.Y
	case "setPenColor", "background":
		op.kind = opPenColor
		if st.Action == "background" {
			op.kind = opBackground
		}
		if !op.hasColor {
			op.color, op.hasColor = RGB(st.R, st.G, st.B), true
		}
	case "clear":
		op.kind = opClear
	case "addTurtle":
		op.kind, op.a, op.b = opAddTurtle, st.X, st.Y
	case "select":
		op.kind, op.n = opSelect, st.Turtle
	case "command":
		cmd, ok := CommandByID(st.Command)
		if !ok {
			return op, fmt.Errorf("%w: command %q", ErrUnknownStep, st.Command)
		}
		op.kind, op.cmd = opCommand, cmd
	case "wait":
		op.kind, op.n = opWait, max(st.Frames, 1)
	default:
		return op, fmt.Errorf("%w: %q", ErrUnknownStep, st.Action)
	}
	return op, nil
}

// ParseColor accepts a palette name such as "red" or a #rrggbb value.
func ParseColor(s string) (Color, error) {
	if c, ok := ColorByName(s); ok {
		return c, nil
	}
	h, ok := strings.CutPrefix(strings.TrimSpace(s), "#")
	if !ok || len(h) != 6 {
		return Color{}, fmt.Errorf("invalid color %q", s)
	}
	v, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return Color{}, fmt.Errorf("invalid color %q: %w", s, err)
	}
	return RGB(uint8(v>>16), uint8(v>>8), uint8(v)), nil
}

// SetScript attaches a ScriptRunner to the scene. Its steps run from
// Scene.Update before input is processed.
func (s *Scene) SetScript(runner *ScriptRunner) {
	s.script = runner
}

// Done reports whether every step has been executed.
func (r *ScriptRunner) Done() bool {
	return r.done
}

// Len returns the number of compiled steps.
func (r *ScriptRunner) Len() int { return len(r.ops) }

// RunAll executes the remaining steps at once, ignoring waits and flushes.
func (r *ScriptRunner) RunAll(s *Scene) error {
	for r.cursor < len(r.ops) {
		op := r.ops[r.cursor]
		r.cursor++
		if err := r.exec(s, op); err != nil {
			return err
		}
	}
	r.waitCount = 0
	r.done = true
	return nil
}

// step advances the runner by one frame. Called from Scene.Update.
func (r *ScriptRunner) step(s *Scene) {
	if r.done {
		return
	}
	if r.waitCount > 0 {
		r.waitCount--
		return
	}
	limit := r.MaxStepsPerFrame
	if limit <= 0 {
		limit = defaultStepsPerFrame
	}
	s.renderer.TakeFlush()
	for n := 0; n < limit && r.cursor < len(r.ops); n++ {
		op := r.ops[r.cursor]
		r.cursor++
		if err := r.exec(s, op); err != nil {
			logger().Warn("script step failed", "step", r.cursor-1, "error", err)
		}
		if op.kind == opWait {
			r.waitCount = op.n - 1
			break
		}
		if s.renderer.TakeFlush() {
			break
		}
	}
	if r.cursor >= len(r.ops) && r.waitCount == 0 {
		r.done = true
	}
}

// current returns the selected turtle, creating one at the center of the
// default canvas when the scene is empty.
func (r *ScriptRunner) current(s *Scene) *Turtle {
	if t := s.Selected(); t != nil {
		return t
	}
	return s.AddTurtle(DefaultWidth/2, DefaultHeight/2)
}

func (r *ScriptRunner) exec(s *Scene, op scriptOp) error {
	switch op.kind {
	case opForward:
		t := r.current(s)
		c := t.color
		if op.hasColor {
			c = op.color
		}
		t.ForwardColor(op.a, c)
	case opFd:
		t := r.current(s)
		c := t.color
		if op.hasColor {
			c = op.color
		}
		t.FdColor(op.n, c)
	case opTurn:
		r.current(s).Turn(op.a)
	case opPenUp:
		r.current(s).PenUp()
	case opPenDown:
		r.current(s).PenDown()
	case opShow:
		r.current(s).Show()
	case opHide:
		r.current(s).Hide()
	case opGotoXY:
		r.current(s).JumpTo(op.a, op.b)
	case opGotoX:
		r.current(s).GotoX(op.a)
	case opGotoY:
		r.current(s).GotoY(op.a)
	case opPenColor:
		r.current(s).SetDefaultColor(op.color)
	case opBackground:
		s.SetBackground(op.color)
	case opClear:
		r.current(s).Clear()
	case opAddTurtle:
		t := s.AddTurtle(op.a, op.b)
		s.selected = t.id
	case opSelect:
		if op.n < 0 || op.n >= len(s.turtles) {
			return fmt.Errorf("select: no turtle with id %d", op.n)
		}
		s.selected = op.n
	case opCommand:
		if s.CanExecute(op.cmd) {
			return s.Execute(op.cmd)
		}
	case opWait:
	}
	return nil
}
