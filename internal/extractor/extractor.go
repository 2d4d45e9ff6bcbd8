// Package extractor runs the full cue pipeline over one video's OCR
// output: frame texts are assembled, segmented into candidate cues, and
// deduplicated into the final sequence.
//
// The pass is synchronous and side-effect free; all thresholds arrive as
// explicit options, so concurrent invocations over different videos need
// no coordination.
package extractor

import (
	"fmt"
	"log/slog"

	"subscan/internal/cluster"
	"subscan/internal/logging"
	"subscan/internal/ocr"
	"subscan/internal/segment"
	"subscan/internal/subtitles"
)

// Options aggregates the per-invocation policies of both pipeline stages.
type Options struct {
	Segment segment.Options
	Cluster cluster.Config
}

// DefaultOptions returns the pipeline defaults.
func DefaultOptions() Options {
	return Options{
		Segment: segment.DefaultOptions(),
		Cluster: cluster.DefaultConfig(),
	}
}

// Validate checks both stage policies up front so a run cannot fail
// mid-pass on configuration.
func (o Options) Validate() error {
	if err := o.Segment.Validate(); err != nil {
		return fmt.Errorf("segment options: %w", err)
	}
	if err := o.Cluster.Validate(); err != nil {
		return fmt.Errorf("cluster config: %w", err)
	}
	return nil
}

// Result carries the final cues plus counters for reporting.
type Result struct {
	Cues []subtitles.Cue
	// FrameCount is the number of OCR frames consumed.
	FrameCount int
	// CandidateCount is the number of cues before deduplication.
	CandidateCount int
}

// Run executes the pipeline over the frames. A nil logger is replaced
// with a no-op logger.
func Run(frames []ocr.Frame, opts Options, logger *slog.Logger) (Result, error) {
	logger = logging.NewComponentLogger(logger, "extractor")
	if err := opts.Validate(); err != nil {
		return Result{}, err
	}

	candidates, err := segment.Cues(frames, opts.Segment)
	if err != nil {
		return Result{}, fmt.Errorf("segment frames: %w", err)
	}
	logger.Debug("segmented frames",
		slog.Int("frames", len(frames)),
		slog.Int("candidates", len(candidates)))

	merged, err := cluster.Merge(candidates, opts.Cluster)
	if err != nil {
		return Result{}, fmt.Errorf("merge cues: %w", err)
	}
	logger.Info("pipeline complete",
		slog.Int("frames", len(frames)),
		slog.Int("candidates", len(candidates)),
		slog.Int("cues", len(merged)))

	return Result{
		Cues:           merged,
		FrameCount:     len(frames),
		CandidateCount: len(candidates),
	}, nil
}
