// Package cluster collapses a time-ordered cue sequence in which the same
// on-screen subtitle was recognized repeatedly into single cues with
// enclosing time ranges.
//
// Membership is chained: a candidate joins an open group when it is
// similar to any member already admitted, not only to the group's first
// (anchor) cue. OCR noise drifts, so cue A and cue B may each resemble
// cue B's neighbor while A and C compare below threshold directly;
// anchor-only comparison splits such chains. The time window is anchored:
// a candidate stays eligible while its start is within the configured gap
// of the anchor's end.
package cluster

import (
	"fmt"

	"subscan/internal/subtitles"
	"subscan/internal/textsim"
)

// Defaults for cue merging.
const (
	DefaultSimilarityThreshold = 0.90
	DefaultMaxMergeGapMS       = 30_000
)

// Config carries the merge policy. Every invocation receives its
// configuration explicitly; there is no process-wide state.
type Config struct {
	// SimilarityThreshold is the score a candidate must exceed against
	// some group member to be absorbed.
	SimilarityThreshold float64
	// MaxMergeGapMS bounds how far past the anchor's end a candidate may
	// start and still be considered.
	MaxMergeGapMS int64
	// Similarity configures the underlying text scorer.
	Similarity textsim.Options
}

// DefaultConfig returns the merge policy used by the pipeline.
func DefaultConfig() Config {
	return Config{
		SimilarityThreshold: DefaultSimilarityThreshold,
		MaxMergeGapMS:       DefaultMaxMergeGapMS,
		Similarity:          textsim.DefaultOptions(),
	}
}

// Validate rejects out-of-range policy values. Configuration problems
// surface here, at construction time, never mid-scan.
func (c Config) Validate() error {
	if c.SimilarityThreshold < 0 || c.SimilarityThreshold > 1 {
		return fmt.Errorf("similarity threshold %v outside [0,1]", c.SimilarityThreshold)
	}
	if c.MaxMergeGapMS < 0 {
		return fmt.Errorf("max merge gap %dms is negative", c.MaxMergeGapMS)
	}
	if c.Similarity.LengthRatioFloor < 0 || c.Similarity.LengthRatioFloor > 1 {
		return fmt.Errorf("length ratio floor %v outside [0,1]", c.Similarity.LengthRatioFloor)
	}
	return nil
}

// Merge performs a single deterministic forward pass over cues sorted by
// start time, absorbing chained near-duplicates into one cue each and
// renumbering the result 1..N. The input is not modified. Unsorted input
// is a contract violation and fails fast.
func Merge(cues []subtitles.Cue, cfg Config) ([]subtitles.Cue, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("cluster config: %w", err)
	}
	if err := subtitles.CheckSorted(cues); err != nil {
		return nil, err
	}
	if len(cues) == 0 {
		return nil, nil
	}

	remaining := make([]subtitles.Cue, len(cues))
	copy(remaining, cues)

	merged := make([]subtitles.Cue, 0, len(remaining))
	for len(remaining) > 0 {
		anchor := remaining[0]
		group := []subtitles.Cue{anchor}
		remaining = remaining[1:]

		i := 0
		for i < len(remaining) {
			candidate := remaining[i]
			// The anchor's end is the fixed window reference; it does
			// not slide as members join.
			if candidate.StartMS-anchor.EndMS > cfg.MaxMergeGapMS {
				break
			}
			if similarToAny(group, candidate, cfg) {
				group = append(group, candidate)
				remaining = append(remaining[:i], remaining[i+1:]...)
				continue
			}
			i++
		}

		merged = append(merged, Reduce(group))
	}

	return subtitles.Renumber(merged), nil
}

func similarToAny(group []subtitles.Cue, candidate subtitles.Cue, cfg Config) bool {
	for _, member := range group {
		if textsim.Score(candidate.Text, member.Text, cfg.Similarity) > cfg.SimilarityThreshold {
			return true
		}
	}
	return false
}

// Reduce collapses a non-empty group into one cue spanning the earliest
// start to the latest end. The text and box come from the earliest-time
// member; the index is left unresolved for the final renumbering pass.
func Reduce(group []subtitles.Cue) subtitles.Cue {
	earliest := group[0]
	start := earliest.StartMS
	end := earliest.EndMS
	for _, member := range group[1:] {
		if member.StartMS < start {
			start = member.StartMS
			earliest = member
		}
		if member.EndMS > end {
			end = member.EndMS
		}
	}
	return subtitles.Cue{
		StartMS: start,
		EndMS:   end,
		Text:    earliest.Text,
		Box:     earliest.Box,
	}
}
