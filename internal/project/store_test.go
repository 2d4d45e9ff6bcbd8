package project

import (
	"context"
	"errors"
	"testing"

	"subscan/internal/ocr"
	"subscan/internal/subtitles"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(t.TempDir())
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func sampleCues() []subtitles.Cue {
	return []subtitles.Cue{
		{Index: 1, StartMS: 0, EndMS: 2000, Text: "first cue", Box: &ocr.Rect{X: 100, Y: 400, W: 300, H: 30}},
		{Index: 2, StartMS: 2500, EndMS: 5000, Text: "second\ncue"},
	}
}

func TestSaveAndGetRun(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	run, err := store.SaveRun(ctx, "/videos/episode1.mkv", sampleCues())
	if err != nil {
		t.Fatalf("SaveRun() error = %v", err)
	}
	if run.ID == "" {
		t.Error("run ID is empty")
	}
	if run.CueCount != 2 {
		t.Errorf("CueCount = %d, want 2", run.CueCount)
	}
	if run.VideoPath != "/videos/episode1.mkv" {
		t.Errorf("VideoPath = %q", run.VideoPath)
	}

	fetched, err := store.GetRun(ctx, run.ID)
	if err != nil {
		t.Fatalf("GetRun() error = %v", err)
	}
	if fetched.ID != run.ID || fetched.CueCount != 2 {
		t.Errorf("fetched = %+v", fetched)
	}
}

func TestCuesRoundTrip(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()
	saved := sampleCues()

	run, err := store.SaveRun(ctx, "/videos/a.mkv", saved)
	if err != nil {
		t.Fatalf("SaveRun() error = %v", err)
	}

	cues, err := store.Cues(ctx, run.ID)
	if err != nil {
		t.Fatalf("Cues() error = %v", err)
	}
	if len(cues) != len(saved) {
		t.Fatalf("len(cues) = %d, want %d", len(cues), len(saved))
	}
	for i, cue := range cues {
		want := saved[i]
		if cue.Index != want.Index || cue.StartMS != want.StartMS || cue.EndMS != want.EndMS || cue.Text != want.Text {
			t.Errorf("cue %d = %+v, want %+v", i, cue, want)
		}
	}
	if cues[0].Box == nil || *cues[0].Box != *saved[0].Box {
		t.Errorf("box round trip failed: %+v", cues[0].Box)
	}
	if cues[1].Box != nil {
		t.Error("nil box did not round trip")
	}
}

func TestGetRunNotFound(t *testing.T) {
	store := openTestStore(t)
	_, err := store.GetRun(context.Background(), "no-such-run")
	if !errors.Is(err, ErrRunNotFound) {
		t.Fatalf("GetRun() error = %v, want ErrRunNotFound", err)
	}
}

func TestListRuns(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	if _, err := store.SaveRun(ctx, "/videos/a.mkv", sampleCues()); err != nil {
		t.Fatal(err)
	}
	if _, err := store.SaveRun(ctx, "/videos/b.mkv", nil); err != nil {
		t.Fatal(err)
	}

	runs, err := store.ListRuns(ctx)
	if err != nil {
		t.Fatalf("ListRuns() error = %v", err)
	}
	if len(runs) != 2 {
		t.Fatalf("len(runs) = %d, want 2", len(runs))
	}
}

func TestDeleteRunCascades(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	run, err := store.SaveRun(ctx, "/videos/a.mkv", sampleCues())
	if err != nil {
		t.Fatal(err)
	}
	if err := store.DeleteRun(ctx, run.ID); err != nil {
		t.Fatalf("DeleteRun() error = %v", err)
	}
	if _, err := store.Cues(ctx, run.ID); !errors.Is(err, ErrRunNotFound) {
		t.Errorf("Cues(deleted) error = %v, want ErrRunNotFound", err)
	}
	if err := store.DeleteRun(ctx, run.ID); !errors.Is(err, ErrRunNotFound) {
		t.Errorf("DeleteRun(twice) error = %v, want ErrRunNotFound", err)
	}
}

func TestOpenSecondWriterBlocked(t *testing.T) {
	dir := t.TempDir()
	first, err := Open(dir)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer first.Close()

	if _, err := Open(dir); !errors.Is(err, ErrStoreBusy) {
		t.Fatalf("second Open() error = %v, want ErrStoreBusy", err)
	}
}

func TestReopenAfterClose(t *testing.T) {
	dir := t.TempDir()
	store, err := Open(dir)
	if err != nil {
		t.Fatal(err)
	}
	run, err := store.SaveRun(context.Background(), "/videos/a.mkv", sampleCues())
	if err != nil {
		t.Fatal(err)
	}
	if err := store.Close(); err != nil {
		t.Fatal(err)
	}

	reopened, err := Open(dir)
	if err != nil {
		t.Fatalf("reopen error = %v", err)
	}
	defer reopened.Close()
	fetched, err := reopened.GetRun(context.Background(), run.ID)
	if err != nil {
		t.Fatalf("GetRun() after reopen error = %v", err)
	}
	if fetched.CueCount != 2 {
		t.Errorf("CueCount = %d, want 2", fetched.CueCount)
	}
}
