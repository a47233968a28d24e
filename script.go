package tuiocanvas

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/phanxgames/tuiocanvas/tuio"
)

// ErrEmptyScript is returned when a session script has no steps.
var ErrEmptyScript = errors.New("tuiocanvas: session script has no steps")

// scriptStep is a single action in a session script.
type scriptStep struct {
	Action string `json:"action"`

	// frame
	Dim      [2]uint16       `json:"dim,omitempty"`
	Pointers []scriptPointer `json:"pointers,omitempty"`
	Tokens   []scriptToken   `json:"tokens,omitempty"`
	Bounds   []scriptBounds  `json:"bounds,omitempty"`
	Alive    []uint32        `json:"alive,omitempty"`

	// wait
	Frames int `json:"frames,omitempty"`

	// screenshot
	Label string `json:"label,omitempty"`

	// correlate
	Session uint32 `json:"session,omitempty"`
	UUID    string `json:"uuid,omitempty"`
}

type scriptPointer struct {
	ID uint32  `json:"id"`
	X  float64 `json:"x"`
	Y  float64 `json:"y"`
}

type scriptToken struct {
	ID    uint32  `json:"id"`
	CID   uint32  `json:"cid"`
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	Angle float64 `json:"angle"`
}

type scriptBounds struct {
	ID     uint32  `json:"id"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	W      float64 `json:"w"`
	H      float64 `json:"h"`
	Angle  float64 `json:"angle"`
	Symbol string  `json:"symbol,omitempty"`
}

// sessionScript is the top-level JSON structure for a session script.
type sessionScript struct {
	Source string       `json:"source,omitempty"`
	Steps  []scriptStep `json:"steps"`
}

// ScriptHooks receives the effects of a session script. Nil hooks are
// skipped.
type ScriptHooks struct {
	Frame      func(tuio.Frame)
	Screenshot func(label string)
	Correlate  func(sessionID uint32, u uuid.UUID)
}

// ScriptPlayer replays a recorded TUIO session one step per tick, for demos
// and automated visual checks.
//
// Steps:
//   - "frame": a TUIO frame. "alive" lists the surviving session ids; when
//     omitted, every id named in the frame is alive and all others are removed.
//   - "wait": idle for "frames" ticks.
//   - "screenshot": capture the frame under "label".
//   - "correlate": attach "uuid" to token "session".
type ScriptPlayer struct {
	source    string
	steps     []scriptStep
	cursor    int
	waitCount int
	frameID   uint32
	done      bool
	now       func() time.Time
}

// LoadScript parses a JSON session script.
func LoadScript(data []byte) (*ScriptPlayer, error) {
	var script sessionScript
	if err := json.Unmarshal(data, &script); err != nil {
		return nil, fmt.Errorf("tuiocanvas: parse session script: %w", err)
	}
	if len(script.Steps) == 0 {
		return nil, ErrEmptyScript
	}
	for i, st := range script.Steps {
		switch st.Action {
		case "frame", "wait", "screenshot":
		case "correlate":
			if _, err := uuid.Parse(st.UUID); err != nil {
				return nil, fmt.Errorf("tuiocanvas: session script step %d: %w", i, err)
			}
		default:
			return nil, fmt.Errorf("tuiocanvas: session script step %d: unknown action %q", i, st.Action)
		}
	}
	source := script.Source
	if source == "" {
		source = "script"
	}
	return &ScriptPlayer{source: source, steps: script.Steps, now: time.Now}, nil
}

// LoadScriptFile reads and parses a session script file.
func LoadScriptFile(path string) (*ScriptPlayer, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("tuiocanvas: read session script: %w", err)
	}
	return LoadScript(data)
}

// Done reports whether every step has been executed.
func (p *ScriptPlayer) Done() bool { return p.done }

// Rewind restarts the script from the first step.
func (p *ScriptPlayer) Rewind() {
	p.cursor = 0
	p.waitCount = 0
	p.done = false
}

// Step advances the script by one tick.
func (p *ScriptPlayer) Step(h ScriptHooks) {
	if p.done {
		return
	}
	if p.waitCount > 0 {
		p.waitCount--
		return
	}
	if p.cursor >= len(p.steps) {
		p.done = true
		return
	}

	st := p.steps[p.cursor]
	p.cursor++

	switch st.Action {
	case "frame":
		if h.Frame != nil {
			h.Frame(p.frame(st))
		}
	case "wait":
		if st.Frames > 0 {
			p.waitCount = st.Frames - 1 // this tick counts as one
		}
	case "screenshot":
		if h.Screenshot != nil {
			h.Screenshot(st.Label)
		}
	case "correlate":
		if h.Correlate != nil {
			h.Correlate(st.Session, uuid.MustParse(st.UUID))
		}
	}

	if p.cursor >= len(p.steps) && p.waitCount == 0 {
		p.done = true
	}
}

func (p *ScriptPlayer) frame(st scriptStep) tuio.Frame {
	p.frameID++
	f := tuio.Frame{
		Time:   tuio.Time{FrameID: p.frameID, At: p.now()},
		Source: p.source,
		Alive:  st.Alive,
	}
	if st.Dim[0] > 0 && st.Dim[1] > 0 {
		f.Dim = tuio.PackDim(st.Dim[0], st.Dim[1])
	}

	var named []uint32
	for _, sp := range st.Pointers {
		f.Pointers = append(f.Pointers, tuio.Pointer{
			SessionID: sp.ID,
			Position:  tuio.Point{X: sp.X, Y: sp.Y},
		})
		named = append(named, sp.ID)
	}
	for _, sk := range st.Tokens {
		f.Tokens = append(f.Tokens, tuio.Token{
			SessionID: sk.ID,
			CID:       sk.CID,
			Position:  tuio.Point{X: sk.X, Y: sk.Y},
			Angle:     sk.Angle,
		})
		named = append(named, sk.ID)
	}
	for _, sb := range st.Bounds {
		f.Bounds = append(f.Bounds, tuio.Bounds{
			SessionID: sb.ID,
			Position:  tuio.Point{X: sb.X, Y: sb.Y},
			Angle:     sb.Angle,
			Size:      tuio.Point{X: sb.W, Y: sb.H},
			Area:      sb.W * sb.H,
		})
		if sb.Symbol != "" {
			f.Symbols = append(f.Symbols, tuio.Symbol{SessionID: sb.ID, Group: "text/plain", Data: sb.Symbol})
		}
		named = append(named, sb.ID)
	}
	if f.Alive == nil {
		f.Alive = append([]uint32{}, named...)
	}
	return f
}
