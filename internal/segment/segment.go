// Package segment turns per-frame assembled subtitle text into candidate
// timed cues.
//
// A subtitle that stays on screen is re-recognized in every sampled
// frame; consecutive frames whose text is similar enough form a run, and
// each run becomes one candidate cue bounded by the run's first and last
// frame timestamps. Runs are a local decision only — re-appearances of
// the same text further apart in time are left for the clustering pass.
package segment

import (
	"fmt"
	"sort"
	"strings"

	"subscan/internal/assemble"
	"subscan/internal/ocr"
	"subscan/internal/subtitles"
	"subscan/internal/textsim"
)

// Defaults for run segmentation.
const (
	DefaultSimilarityThreshold = 0.90
	DefaultMinDurationMS       = 1200
	DefaultMaxGapMS            = 500
)

// gapSlackFactor loosens the inter-frame gap bound while a run is open:
// a dropped or unreadable frame should not split a continuous subtitle.
const gapSlackFactor = 3

// Options carries the segmentation policy for one invocation.
type Options struct {
	// SimilarityThreshold is the minimum score between consecutive frame
	// texts for the frames to belong to one run.
	SimilarityThreshold float64
	// MinDurationMS is the shortest display duration a cue may have;
	// shorter cues are extended or merged into a neighbor.
	MinDurationMS int64
	// MaxGapMS bounds the silence allowed between a too-short cue and a
	// neighbor it may merge into. Tripled while extending an open run.
	MaxGapMS int64
	// Similarity configures the underlying text scorer.
	Similarity textsim.Options
}

// DefaultOptions returns the segmentation policy used by the pipeline.
func DefaultOptions() Options {
	return Options{
		SimilarityThreshold: DefaultSimilarityThreshold,
		MinDurationMS:       DefaultMinDurationMS,
		MaxGapMS:            DefaultMaxGapMS,
		Similarity:          textsim.DefaultOptions(),
	}
}

// Validate rejects out-of-range policy values at construction time.
func (o Options) Validate() error {
	if o.SimilarityThreshold < 0 || o.SimilarityThreshold > 1 {
		return fmt.Errorf("similarity threshold %v outside [0,1]", o.SimilarityThreshold)
	}
	if o.MinDurationMS < 0 {
		return fmt.Errorf("min duration %dms is negative", o.MinDurationMS)
	}
	if o.MaxGapMS < 0 {
		return fmt.Errorf("max gap %dms is negative", o.MaxGapMS)
	}
	return nil
}

type frameText struct {
	frame ocr.Frame
	text  string
}

// Cues segments OCR frames into candidate cues. Frames may arrive in any
// order; frames with no readable text are dropped. Cue text is the
// assembled text of the run's most confident frame, cleaned of OCR
// artifacts; the cue box is the union of the first frame's detections.
func Cues(frames []ocr.Frame, opts Options) ([]subtitles.Cue, error) {
	if err := opts.Validate(); err != nil {
		return nil, fmt.Errorf("segment options: %w", err)
	}

	ordered := make([]ocr.Frame, len(frames))
	copy(ordered, frames)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].TimestampMS < ordered[j].TimestampMS
	})

	texts := make([]frameText, 0, len(ordered))
	for _, frame := range ordered {
		text := assemble.FrameText(frame.Detections)
		if strings.TrimSpace(text) == "" {
			continue
		}
		texts = append(texts, frameText{frame: frame, text: text})
	}
	if len(texts) == 0 {
		return nil, nil
	}

	var cues []subtitles.Cue
	run := []frameText{texts[0]}
	for _, ft := range texts[1:] {
		prev := run[len(run)-1]
		gap := ft.frame.TimestampMS - prev.frame.TimestampMS
		similar := textsim.Score(ft.text, prev.text, opts.Similarity) >= opts.SimilarityThreshold
		if similar && gap <= opts.MaxGapMS*gapSlackFactor {
			run = append(run, ft)
			continue
		}
		if cue, ok := runCue(run, opts); ok {
			cues = append(cues, cue)
		}
		run = []frameText{ft}
	}
	if cue, ok := runCue(run, opts); ok {
		cues = append(cues, cue)
	}

	cues = mergeShort(cues, opts)
	return subtitles.Renumber(cues), nil
}

// runCue reduces one run of similar frames to a candidate cue.
func runCue(run []frameText, opts Options) (subtitles.Cue, bool) {
	start := run[0].frame.TimestampMS
	end := run[len(run)-1].frame.TimestampMS

	best := run[0]
	for _, ft := range run[1:] {
		if ft.frame.AverageConfidence() > best.frame.AverageConfidence() {
			best = ft
		}
	}
	text := subtitles.CleanText(best.text)
	if text == "" {
		return subtitles.Cue{}, false
	}

	// Duration below the minimum is resolved later by mergeShort.
	cue := subtitles.Cue{StartMS: start, EndMS: end, Text: text}
	if box, ok := run[0].frame.UnionBox(); ok {
		cue.Box = &box
	}
	return cue, true
}

// mergeShort absorbs cues shorter than the minimum duration into an
// adjacent cue within the gap bound, preferring the following cue;
// isolated short cues are extended instead.
func mergeShort(cues []subtitles.Cue, opts Options) []subtitles.Cue {
	if len(cues) == 0 {
		return nil
	}

	merged := make([]subtitles.Cue, 0, len(cues))
	i := 0
	for i < len(cues) {
		current := cues[i]
		if current.DurationMS() >= opts.MinDurationMS {
			merged = append(merged, current)
			i++
			continue
		}

		if i+1 < len(cues) && cues[i+1].StartMS-current.EndMS <= opts.MaxGapMS {
			next := cues[i+1]
			merged = append(merged, subtitles.Cue{
				StartMS: current.StartMS,
				EndMS:   next.EndMS,
				Text:    current.Text + " " + next.Text,
				Box:     current.Box,
			})
			i += 2
			continue
		}

		if len(merged) > 0 && current.StartMS-merged[len(merged)-1].EndMS <= opts.MaxGapMS {
			prev := merged[len(merged)-1]
			merged[len(merged)-1] = subtitles.Cue{
				StartMS: prev.StartMS,
				EndMS:   current.EndMS,
				Text:    prev.Text + " " + current.Text,
				Box:     prev.Box,
			}
			i++
			continue
		}

		current.EndMS = current.StartMS + opts.MinDurationMS
		merged = append(merged, current)
		i++
	}
	return merged
}
