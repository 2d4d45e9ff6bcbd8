package config

import "fmt"

// Validate rejects configurations a pipeline run could not honor.
func (c *Config) Validate() error {
	if err := c.validateExtraction(); err != nil {
		return err
	}
	if err := c.validateOutput(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validateExtraction() error {
	e := c.Extraction
	if e.SimilarityThreshold < 0 || e.SimilarityThreshold > 1 {
		return fmt.Errorf("extraction.similarity_threshold %v outside [0,1]", e.SimilarityThreshold)
	}
	if e.LengthRatioFloor < 0 || e.LengthRatioFloor > 1 {
		return fmt.Errorf("extraction.length_ratio_floor %v outside [0,1]", e.LengthRatioFloor)
	}
	if e.MinDurationSec < 0 {
		return fmt.Errorf("extraction.min_duration_sec %v is negative", e.MinDurationSec)
	}
	if e.MaxGapSec < 0 {
		return fmt.Errorf("extraction.max_gap_sec %v is negative", e.MaxGapSec)
	}
	if e.MaxMergeGapSec < 0 {
		return fmt.Errorf("extraction.max_merge_gap_sec %v is negative", e.MaxMergeGapSec)
	}
	return nil
}

func (c *Config) validateOutput() error {
	o := c.Output
	if o.MaxCharsPerLine < 0 {
		return fmt.Errorf("output.max_chars_per_line %d is negative", o.MaxCharsPerLine)
	}
	if o.MaxLines < 0 {
		return fmt.Errorf("output.max_lines %d is negative", o.MaxLines)
	}
	if o.MinDurationMS < 0 || o.MaxDurationMS < 0 {
		return fmt.Errorf("output duration limits must not be negative")
	}
	if o.MaxDurationMS > 0 && o.MinDurationMS > o.MaxDurationMS {
		return fmt.Errorf("output.min_duration_ms %d exceeds output.max_duration_ms %d", o.MinDurationMS, o.MaxDurationMS)
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "", "console", "json":
	default:
		return fmt.Errorf("logging.format %q is not supported (console, json)", c.Logging.Format)
	}
	return nil
}
