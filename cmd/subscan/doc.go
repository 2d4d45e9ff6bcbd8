// Command subscan turns per-frame OCR output sampled from video into
// deduplicated subtitle cues.
//
// The extract command reads JSON-lines detections, runs the assembly,
// segmentation, and merge pipeline, and writes SRT or records the run in
// the local store. Supporting commands list stored runs, inspect their
// cues, run readability checks, and re-export.
package main
