package cluster

import (
	"errors"
	"testing"

	"subscan/internal/subtitles"
	"subscan/internal/textsim"
)

func cue(start, end int64, text string) subtitles.Cue {
	return subtitles.Cue{StartMS: start, EndMS: end, Text: text}
}

func TestMergeEmpty(t *testing.T) {
	out, err := Merge(nil, DefaultConfig())
	if err != nil {
		t.Fatalf("Merge(nil) error = %v", err)
	}
	if len(out) != 0 {
		t.Errorf("len(out) = %d, want 0", len(out))
	}
}

func TestMergeSingle(t *testing.T) {
	out, err := Merge([]subtitles.Cue{cue(100, 2000, "hello")}, DefaultConfig())
	if err != nil {
		t.Fatalf("Merge() error = %v", err)
	}
	if len(out) != 1 || out[0].Index != 1 || out[0].Text != "hello" {
		t.Errorf("out = %+v", out)
	}
}

func TestMergeExactDuplicates(t *testing.T) {
	in := []subtitles.Cue{
		cue(0, 1000, "same text here"),
		cue(1200, 2200, "same text here"),
		cue(2400, 3400, "same text here"),
	}
	out, err := Merge(in, DefaultConfig())
	if err != nil {
		t.Fatalf("Merge() error = %v", err)
	}
	if len(out) != 1 {
		t.Fatalf("len(out) = %d, want 1", len(out))
	}
	if out[0].StartMS != 0 || out[0].EndMS != 3400 {
		t.Errorf("interval = [%d, %d], want [0, 3400]", out[0].StartMS, out[0].EndMS)
	}
}

// Chained membership: cue 1 resembles cue 2, cue 2 resembles cue 3, but
// cues 1 and 3 compare at exactly the threshold. Anchor-only comparison
// would leave cue 3 out; chained comparison must absorb it.
func TestMergeChainedDrift(t *testing.T) {
	t1 := "abcdefghijkmnpqrstuv"
	t2 := "zbcdefghijkmnpqrstuv"
	t3 := "zycdefghijkmnpqrstuv"

	cfg := DefaultConfig()
	opts := cfg.Similarity
	if s := textsim.Score(t1, t2, opts); s <= cfg.SimilarityThreshold {
		t.Fatalf("fixture: score(t1,t2) = %v, want above threshold", s)
	}
	if s := textsim.Score(t2, t3, opts); s <= cfg.SimilarityThreshold {
		t.Fatalf("fixture: score(t2,t3) = %v, want above threshold", s)
	}
	if s := textsim.Score(t1, t3, opts); s > cfg.SimilarityThreshold {
		t.Fatalf("fixture: score(t1,t3) = %v, want at or below threshold", s)
	}

	in := []subtitles.Cue{
		cue(0, 1000, t1),
		cue(1500, 2500, t2),
		cue(3000, 4000, t3),
	}
	out, err := Merge(in, cfg)
	if err != nil {
		t.Fatalf("Merge() error = %v", err)
	}
	if len(out) != 1 {
		t.Fatalf("len(out) = %d, want 1 merged cue from the chain", len(out))
	}
	if out[0].StartMS != 0 || out[0].EndMS != 4000 {
		t.Errorf("interval = [%d, %d], want [0, 4000]", out[0].StartMS, out[0].EndMS)
	}
	if out[0].Text != t1 {
		t.Errorf("text = %q, want earliest member's %q", out[0].Text, t1)
	}
}

// Identical text beyond the time window stays separate.
func TestMergeGapExceeded(t *testing.T) {
	in := []subtitles.Cue{
		cue(0, 1000, "identical text"),
		cue(41_000, 42_000, "identical text"),
	}
	out, err := Merge(in, DefaultConfig())
	if err != nil {
		t.Fatalf("Merge() error = %v", err)
	}
	if len(out) != 2 {
		t.Fatalf("len(out) = %d, want 2 cues across a 40s gap", len(out))
	}
}

// The window is measured from the anchor's end, not from the most recent
// member. A duplicate just inside the window extends the group; one whose
// start exceeds the anchor's end by more than the gap does not, even if it
// is close to the previous member.
func TestMergeWindowAnchoredNotSliding(t *testing.T) {
	in := []subtitles.Cue{
		cue(0, 1000, "repeated subtitle text"),
		cue(29_000, 58_000, "repeated subtitle text"),
		cue(60_000, 61_000, "repeated subtitle text"),
	}
	out, err := Merge(in, DefaultConfig())
	if err != nil {
		t.Fatalf("Merge() error = %v", err)
	}
	if len(out) != 2 {
		t.Fatalf("len(out) = %d, want 2 (third cue outside anchor window)", len(out))
	}
	if out[0].EndMS != 58_000 {
		t.Errorf("first interval end = %d, want 58000", out[0].EndMS)
	}
	if out[1].StartMS != 60_000 {
		t.Errorf("second interval start = %d, want 60000", out[1].StartMS)
	}
}

// Six consecutive recognitions of one subtitle, each differing by one
// OCR-confused character, spanning eleven seconds.
func TestMergeRealWorldConfusionRun(t *testing.T) {
	texts := []string{
		"ここが入り口です",
		"ここが入りロです",
		"ここが入り口です",
		"ここが入りロです",
		"ここが入り口です",
		"ここが入りロです",
	}
	in := make([]subtitles.Cue, len(texts))
	for i, text := range texts {
		start := int64(i * 2000)
		in[i] = cue(start, start+1000, text)
	}
	in[5].EndMS = 11_000

	out, err := Merge(in, DefaultConfig())
	if err != nil {
		t.Fatalf("Merge() error = %v", err)
	}
	if len(out) != 1 {
		t.Fatalf("len(out) = %d, want 1", len(out))
	}
	if out[0].StartMS != 0 || out[0].EndMS != 11_000 {
		t.Errorf("interval = [%d, %d], want [0, 11000]", out[0].StartMS, out[0].EndMS)
	}
	if out[0].Text != texts[0] {
		t.Errorf("text = %q, want earliest member's %q", out[0].Text, texts[0])
	}
}

// Output count never exceeds input count; every input interval lies inside
// one output interval.
func TestMergeIntervalContainment(t *testing.T) {
	in := []subtitles.Cue{
		cue(0, 1000, "alpha line one"),
		cue(500, 1800, "alpha line one"),
		cue(2000, 3000, "completely different text"),
		cue(50_000, 51_000, "alpha line one"),
	}
	out, err := Merge(in, DefaultConfig())
	if err != nil {
		t.Fatalf("Merge() error = %v", err)
	}
	if len(out) > len(in) {
		t.Fatalf("output grew: %d > %d", len(out), len(in))
	}
	for _, original := range in {
		contained := 0
		for _, merged := range out {
			if merged.StartMS <= original.StartMS && original.EndMS <= merged.EndMS {
				contained++
			}
		}
		if contained == 0 {
			t.Errorf("input cue [%d, %d] not contained in any output interval", original.StartMS, original.EndMS)
		}
	}
}

func TestMergeRenumbersSequentially(t *testing.T) {
	in := []subtitles.Cue{
		cue(0, 1000, "first unrelated line"),
		cue(2000, 3000, "second unrelated thing"),
		cue(4000, 5000, "third distinct content"),
	}
	out, err := Merge(in, DefaultConfig())
	if err != nil {
		t.Fatalf("Merge() error = %v", err)
	}
	for i, c := range out {
		if c.Index != i+1 {
			t.Errorf("index at position %d = %d, want %d", i, c.Index, i+1)
		}
	}
}

func TestMergeUnsortedInput(t *testing.T) {
	in := []subtitles.Cue{
		cue(5000, 6000, "later"),
		cue(0, 1000, "earlier"),
	}
	_, err := Merge(in, DefaultConfig())
	if !errors.Is(err, subtitles.ErrUnsorted) {
		t.Fatalf("Merge(unsorted) error = %v, want ErrUnsorted", err)
	}
}

func TestMergeDoesNotMutateInput(t *testing.T) {
	in := []subtitles.Cue{
		cue(0, 1000, "same text twice"),
		cue(1500, 2500, "same text twice"),
	}
	if _, err := Merge(in, DefaultConfig()); err != nil {
		t.Fatalf("Merge() error = %v", err)
	}
	if len(in) != 2 || in[1].Text != "same text twice" {
		t.Error("Merge mutated its input slice")
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults", func(*Config) {}, false},
		{"threshold above one", func(c *Config) { c.SimilarityThreshold = 1.5 }, true},
		{"threshold negative", func(c *Config) { c.SimilarityThreshold = -0.1 }, true},
		{"negative gap", func(c *Config) { c.MaxMergeGapMS = -1 }, true},
		{"floor above one", func(c *Config) { c.Similarity.LengthRatioFloor = 1.2 }, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestReduce(t *testing.T) {
	group := []subtitles.Cue{
		cue(1000, 2000, "earliest text"),
		cue(1500, 5000, "later text"),
		cue(2000, 3000, "middle text"),
	}
	got := Reduce(group)
	if got.StartMS != 1000 || got.EndMS != 5000 {
		t.Errorf("interval = [%d, %d], want [1000, 5000]", got.StartMS, got.EndMS)
	}
	if got.Text != "earliest text" {
		t.Errorf("text = %q, want earliest member's", got.Text)
	}
	if got.Index != 0 {
		t.Errorf("index = %d, want unresolved 0", got.Index)
	}
}
