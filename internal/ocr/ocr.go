package ocr

// Rect is a bounding box in frame-pixel space. The origin is the top-left
// corner of the frame with y increasing downward.
type Rect struct {
	X int `json:"x"`
	Y int `json:"y"`
	W int `json:"w"`
	H int `json:"h"`
}

// Clamped returns the rectangle with negative width and height raised to
// zero. Upstream OCR engines occasionally emit malformed boxes; they are
// repaired rather than rejected.
func (r Rect) Clamped() Rect {
	if r.W < 0 {
		r.W = 0
	}
	if r.H < 0 {
		r.H = 0
	}
	return r
}

// CenterY returns the vertical center of the rectangle.
func (r Rect) CenterY() float64 {
	return float64(r.Y) + float64(r.H)/2
}

// Union returns the smallest rectangle enclosing both r and other.
func (r Rect) Union(other Rect) Rect {
	minX := min(r.X, other.X)
	minY := min(r.Y, other.Y)
	maxX := max(r.X+r.W, other.X+other.W)
	maxY := max(r.Y+r.H, other.Y+other.H)
	return Rect{X: minX, Y: minY, W: maxX - minX, H: maxY - minY}
}

// Detection is one OCR-recognized text fragment within a single frame.
type Detection struct {
	Text       string
	Confidence float64
	Box        Rect
}

// NewDetection builds a Detection with its bounding box clamped.
func NewDetection(text string, confidence float64, box Rect) Detection {
	return Detection{Text: text, Confidence: confidence, Box: box.Clamped()}
}

// Frame holds the OCR output for one sampled video frame.
type Frame struct {
	TimestampMS int64
	Detections  []Detection
}

// AverageConfidence returns the mean confidence across the frame's
// detections, or zero for an empty frame.
func (f Frame) AverageConfidence() float64 {
	if len(f.Detections) == 0 {
		return 0
	}
	var sum float64
	for _, det := range f.Detections {
		sum += det.Confidence
	}
	return sum / float64(len(f.Detections))
}

// UnionBox returns the smallest rectangle enclosing every detection in the
// frame, and false when the frame has no detections.
func (f Frame) UnionBox() (Rect, bool) {
	if len(f.Detections) == 0 {
		return Rect{}, false
	}
	box := f.Detections[0].Box
	for _, det := range f.Detections[1:] {
		box = box.Union(det.Box)
	}
	return box, true
}
