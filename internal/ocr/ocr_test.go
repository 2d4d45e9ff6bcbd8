package ocr

import (
	"strings"
	"testing"
)

func TestRectClamped(t *testing.T) {
	tests := []struct {
		name string
		in   Rect
		want Rect
	}{
		{"well formed", Rect{X: 10, Y: 20, W: 30, H: 40}, Rect{X: 10, Y: 20, W: 30, H: 40}},
		{"negative width", Rect{X: 10, Y: 20, W: -5, H: 40}, Rect{X: 10, Y: 20, W: 0, H: 40}},
		{"negative height", Rect{X: 10, Y: 20, W: 30, H: -1}, Rect{X: 10, Y: 20, W: 30, H: 0}},
		{"both negative", Rect{W: -1, H: -1}, Rect{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.in.Clamped(); got != tt.want {
				t.Errorf("Clamped() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestRectUnion(t *testing.T) {
	a := Rect{X: 100, Y: 50, W: 200, H: 20}
	b := Rect{X: 110, Y: 80, W: 150, H: 20}
	got := a.Union(b)
	want := Rect{X: 100, Y: 50, W: 200, H: 50}
	if got != want {
		t.Errorf("Union() = %+v, want %+v", got, want)
	}
}

func TestFrameAverageConfidence(t *testing.T) {
	frame := Frame{Detections: []Detection{
		{Confidence: 0.8},
		{Confidence: 0.6},
	}}
	if got := frame.AverageConfidence(); got != 0.7 {
		t.Errorf("AverageConfidence() = %v, want 0.7", got)
	}
	empty := Frame{}
	if got := empty.AverageConfidence(); got != 0 {
		t.Errorf("AverageConfidence(empty) = %v, want 0", got)
	}
}

func TestReadFrames(t *testing.T) {
	input := `{"timestamp_ms":1000,"detections":[{"text":"hello","confidence":0.95,"bbox":{"x":100,"y":50,"w":200,"h":-3}}]}

{"timestamp_ms":1333,"detections":[]}
`
	frames, err := ReadFrames(strings.NewReader(input))
	if err != nil {
		t.Fatalf("ReadFrames() error = %v", err)
	}
	if len(frames) != 2 {
		t.Fatalf("len(frames) = %d, want 2", len(frames))
	}
	if frames[0].TimestampMS != 1000 {
		t.Errorf("frame timestamp = %d, want 1000", frames[0].TimestampMS)
	}
	det := frames[0].Detections[0]
	if det.Text != "hello" || det.Box.H != 0 {
		t.Errorf("detection = %+v, want text hello with clamped height", det)
	}
	if len(frames[1].Detections) != 0 {
		t.Errorf("second frame should have no detections")
	}
}

func TestReadFramesBadConfidence(t *testing.T) {
	input := `{"timestamp_ms":0,"detections":[{"text":"x","confidence":1.5,"bbox":{"x":0,"y":0,"w":1,"h":1}}]}`
	if _, err := ReadFrames(strings.NewReader(input)); err == nil {
		t.Fatal("expected error for confidence outside [0,1]")
	}
}

func TestReadFramesBadJSON(t *testing.T) {
	if _, err := ReadFrames(strings.NewReader("{not json")); err == nil {
		t.Fatal("expected decode error")
	}
}
