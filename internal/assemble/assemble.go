// Package assemble reconstructs readable multi-line text from the
// unordered OCR fragments of a single frame.
//
// Fragments that share a visual text row are joined left to right with
// spaces; rows are stacked top to bottom with line breaks. Grouping is
// greedy over fragments sorted by vertical position: a fragment joins the
// current row when its vertical center lies within half its own height of
// the row's reference center.
package assemble

import (
	"math"
	"sort"
	"strings"

	"subscan/internal/ocr"
)

type line struct {
	refCenter float64
	members   []ocr.Detection
}

// FrameText renders one frame's detections as subtitle text. Zero
// detections produce an empty string; a single detection produces its text
// unchanged. The result is deterministic for a fixed input order: ties in
// y and x are broken by the original order (stable sorts).
func FrameText(detections []ocr.Detection) string {
	if len(detections) == 0 {
		return ""
	}

	sorted := make([]ocr.Detection, len(detections))
	for i, det := range detections {
		sorted[i] = ocr.NewDetection(det.Text, det.Confidence, det.Box)
	}
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Box.Y < sorted[j].Box.Y
	})

	lines := groupRows(sorted)

	rendered := make([]string, 0, len(lines))
	for _, ln := range lines {
		sort.SliceStable(ln.members, func(i, j int) bool {
			return ln.members[i].Box.X < ln.members[j].Box.X
		})
		texts := make([]string, len(ln.members))
		for i, det := range ln.members {
			texts[i] = det.Text
		}
		rendered = append(rendered, strings.Join(texts, " "))
	}
	return strings.Join(rendered, "\n")
}

func groupRows(sorted []ocr.Detection) []*line {
	var lines []*line
	var current *line
	for _, det := range sorted {
		center := det.Box.CenterY()
		// Height zero degenerates the threshold to an exact-y match.
		threshold := float64(det.Box.H) / 2
		if current != nil && math.Abs(center-current.refCenter) <= threshold {
			current.members = append(current.members, det)
			continue
		}
		current = &line{refCenter: center, members: []ocr.Detection{det}}
		lines = append(lines, current)
	}
	return lines
}
