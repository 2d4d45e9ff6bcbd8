package ocr

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
)

// frameRecord is the JSON-lines wire shape emitted by the OCR sidecar: one
// object per analyzed frame.
type frameRecord struct {
	TimestampMS int64             `json:"timestamp_ms"`
	Detections  []detectionRecord `json:"detections"`
}

type detectionRecord struct {
	Text       string  `json:"text"`
	Confidence float64 `json:"confidence"`
	Box        Rect    `json:"bbox"`
}

// ReadFrames decodes per-frame OCR output from JSON-lines input. Blank
// lines are skipped. Detection boxes are clamped; confidences outside
// [0, 1] are a decode error because they indicate a misbehaving engine
// rather than ordinary noise.
func ReadFrames(r io.Reader) ([]Frame, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)

	var frames []Frame
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		var record frameRecord
		if err := json.Unmarshal([]byte(line), &record); err != nil {
			return nil, fmt.Errorf("decode frame line %d: %w", lineNo, err)
		}
		frame := Frame{TimestampMS: record.TimestampMS}
		for _, det := range record.Detections {
			if det.Confidence < 0 || det.Confidence > 1 {
				return nil, fmt.Errorf("frame line %d: confidence %v outside [0,1]", lineNo, det.Confidence)
			}
			frame.Detections = append(frame.Detections, NewDetection(det.Text, det.Confidence, det.Box))
		}
		frames = append(frames, frame)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read frames: %w", err)
	}
	return frames, nil
}

// ReadFramesFile reads per-frame OCR output from a JSON-lines file.
func ReadFramesFile(path string) ([]Frame, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open detections file: %w", err)
	}
	defer file.Close()
	frames, err := ReadFrames(file)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return frames, nil
}
