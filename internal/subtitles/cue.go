package subtitles

import (
	"errors"
	"fmt"

	"subscan/internal/ocr"
)

// ErrUnsorted reports cue sequences that violate the start-time ordering
// contract.
var ErrUnsorted = errors.New("cues not sorted by start time")

// Cue is one timed subtitle entry.
type Cue struct {
	Index   int
	StartMS int64
	EndMS   int64
	Text    string
	// Box is the detection region the cue came from, when known.
	Box *ocr.Rect
}

// DurationMS returns the cue's display duration.
func (c Cue) DurationMS() int64 {
	return c.EndMS - c.StartMS
}

// Validate checks the cue's internal invariants.
func (c Cue) Validate() error {
	if c.StartMS > c.EndMS {
		return fmt.Errorf("cue %d: start %dms after end %dms", c.Index, c.StartMS, c.EndMS)
	}
	return nil
}

// CheckSorted verifies that cues are ordered by ascending start time and
// that every cue is internally valid. Stages that depend on monotonic
// input call this at their boundary and fail fast instead of producing
// silently wrong output.
func CheckSorted(cues []Cue) error {
	for i, cue := range cues {
		if err := cue.Validate(); err != nil {
			return err
		}
		if i > 0 && cue.StartMS < cues[i-1].StartMS {
			return fmt.Errorf("%w: cue at position %d starts %dms before its predecessor", ErrUnsorted, i, cues[i-1].StartMS-cue.StartMS)
		}
	}
	return nil
}

// Renumber returns a copy of cues with indexes reassigned 1..N.
func Renumber(cues []Cue) []Cue {
	out := make([]Cue, len(cues))
	copy(out, cues)
	for i := range out {
		out[i].Index = i + 1
	}
	return out
}
