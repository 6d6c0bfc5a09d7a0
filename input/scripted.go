package input

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/jakecoffman/cp"
)

// Frame is one tick of scripted input.
type Frame struct {
	MoveX float64
	Guard bool
	Press []Button
}

// ScriptedSource replays frames in order, one per Poll, then idles.
type ScriptedSource struct {
	frames []Frame
	next   int
}

func NewScriptedSource(frames ...Frame) *ScriptedSource {
	return &ScriptedSource{frames: frames}
}

func (s *ScriptedSource) Poll(st *State) {
	if s == nil || st == nil {
		return
	}
	if s.next >= len(s.frames) {
		st.Move = cp.Vector{}
		st.GuardHeld = false
		return
	}
	f := s.frames[s.next]
	s.next++
	st.Move = cp.Vector{X: f.MoveX}
	st.GuardHeld = f.Guard
	for _, b := range f.Press {
		st.Press(b)
	}
}

// Done reports whether every frame has been replayed.
func (s *ScriptedSource) Done() bool {
	return s == nil || s.next >= len(s.frames)
}

// ParseScript reads a compact input script, one step per line:
//
//	<count> [left|right] [guard] [+jump] [+attack] ...
//
// Blank lines and lines starting with # are ignored. A press is only raised
// on the first tick of its step.
func ParseScript(src string) ([]Frame, error) {
	var frames []Frame
	for lineNo, line := range strings.Split(src, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Fields(line)
		count, err := strconv.Atoi(fields[0])
		if err != nil || count <= 0 {
			return nil, fmt.Errorf("input: line %d: bad tick count %q", lineNo+1, fields[0])
		}
		var step Frame
		for _, f := range fields[1:] {
			switch {
			case f == "left":
				step.MoveX = -1
			case f == "right":
				step.MoveX = 1
			case f == "guard":
				step.Guard = true
			case strings.HasPrefix(f, "+"):
				b, ok := parseButton(f[1:])
				if !ok {
					return nil, fmt.Errorf("input: line %d: unknown button %q", lineNo+1, f[1:])
				}
				step.Press = append(step.Press, b)
			default:
				return nil, fmt.Errorf("input: line %d: unknown token %q", lineNo+1, f)
			}
		}
		for i := 0; i < count; i++ {
			fr := Frame{MoveX: step.MoveX, Guard: step.Guard}
			if i == 0 {
				fr.Press = step.Press
			}
			frames = append(frames, fr)
		}
	}
	return frames, nil
}

func parseButton(name string) (Button, bool) {
	for b := Button(0); b < buttonCount; b++ {
		if buttonNames[b] == name {
			return b, true
		}
	}
	return 0, false
}
