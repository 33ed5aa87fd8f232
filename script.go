package spineflow

import (
	"encoding/json"
	"fmt"
	"os"
)

// maxScriptFrames bounds Run so a script that never settles cannot spin
// forever.
const maxScriptFrames = 100000

// scriptStep is a single action in a scroll script.
type scriptStep struct {
	Action string  `json:"action"`
	Label  string  `json:"label,omitempty"`
	Value  float64 `json:"value,omitempty"`
	Frames int     `json:"frames,omitempty"`
	Width  float64 `json:"width,omitempty"`
	Height float64 `json:"height,omitempty"`
}

// scrollScriptFile is the top-level JSON structure of a scroll script.
type scrollScriptFile struct {
	Steps []scriptStep `json:"steps"`
}

// ScrollScript sequences scroll input, resizes and snapshots across frames
// so an animation can be replayed deterministically. Actions:
//
//	scroll   {"value": 0.5}              set the scroll ratio
//	wait     {"frames": 10}              run frames without input
//	settle                               run frames until smoothing stops
//	rebuild  {"width": 1024, "height": 768} resize the viewport
//	snapshot {"label": "mid"}            report the frame's parameters
//
// Every step takes at least one frame.
type ScrollScript struct {
	steps     []scriptStep
	cursor    int
	waitCount int
	settling  bool
	done      bool
}

// ParseScrollScript parses a JSON scroll script.
func ParseScrollScript(data []byte) (*ScrollScript, error) {
	var file scrollScriptFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidScript, err)
	}
	if len(file.Steps) == 0 {
		return nil, fmt.Errorf("%w: no steps", ErrInvalidScript)
	}
	for i, st := range file.Steps {
		switch st.Action {
		case "scroll", "wait", "settle", "snapshot":
		case "rebuild":
			if st.Width <= 0 || st.Height <= 0 {
				return nil, fmt.Errorf("%w: step %d: rebuild needs width and height", ErrInvalidScript, i)
			}
		default:
			return nil, fmt.Errorf("%w: step %d: unknown action %q", ErrInvalidScript, i, st.Action)
		}
	}
	return &ScrollScript{steps: file.Steps}, nil
}

// LoadScrollScript reads and parses a JSON scroll script file.
func LoadScrollScript(path string) (*ScrollScript, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load scroll script: %w", err)
	}
	s, err := ParseScrollScript(data)
	if err != nil {
		return nil, fmt.Errorf("load scroll script %s: %w", path, err)
	}
	return s, nil
}

// Done reports whether all steps have been executed.
func (s *ScrollScript) Done() bool {
	return s.done
}

// Len returns the number of steps.
func (s *ScrollScript) Len() int {
	return len(s.steps)
}

// Step advances the script by one frame. Call it before Coordinator.Frame.
// When the executed step is a snapshot, its index and label are returned and
// the caller should capture the frame that follows.
func (s *ScrollScript) Step(c *Coordinator) (index int, label string, err error) {
	index = -1
	if s.done {
		return index, "", nil
	}
	if s.waitCount > 0 {
		s.waitCount--
		return index, "", nil
	}
	if s.settling {
		if c.smoother.Active() {
			return index, "", nil
		}
		s.settling = false
	}
	if s.cursor >= len(s.steps) {
		s.done = true
		return index, "", nil
	}

	st := s.steps[s.cursor]
	s.cursor++

	switch st.Action {
	case "scroll":
		c.OnScroll(st.Value)
	case "wait":
		if st.Frames > 0 {
			s.waitCount = st.Frames - 1 // this frame counts as one
		}
	case "settle":
		s.settling = c.smoother.Active()
	case "rebuild":
		if err := c.Resize(Viewport{Width: st.Width, Height: st.Height}); err != nil {
			return index, "", fmt.Errorf("script step %d: %w", s.cursor-1, err)
		}
	case "snapshot":
		index, label = s.cursor-1, st.Label
	}

	if s.cursor >= len(s.steps) && s.waitCount == 0 && !s.settling {
		s.done = true
	}
	return index, label, nil
}

// Run plays the whole script against c, one Frame per script frame, and calls
// fn with the parameters of every snapshot frame.
func (s *ScrollScript) Run(c *Coordinator, fn func(step int, label string, p Params)) error {
	for frames := 0; !s.done; frames++ {
		if frames >= maxScriptFrames {
			return fmt.Errorf("%w: still running after %d frames", ErrInvalidScript, frames)
		}
		index, label, err := s.Step(c)
		if err != nil {
			return err
		}
		p, _ := c.Frame(0)
		if index >= 0 && fn != nil {
			fn(index, label, p)
		}
	}
	return nil
}
