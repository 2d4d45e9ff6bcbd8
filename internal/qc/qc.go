// Package qc checks a finished cue sequence against readability limits:
// characters per line, lines per cue, display duration, and timing
// overlap between neighbors. Findings are reported, never auto-fixed.
package qc

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"subscan/internal/subtitles"
)

// Severity ranks a finding.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
	SeverityInfo    Severity = "info"
)

// Issue is one finding against one cue.
type Issue struct {
	CueIndex int
	Rule     string
	Message  string
	Severity Severity
}

// Limits carries the readability thresholds. Zero-valued fields disable
// their rule.
type Limits struct {
	MaxCharsPerLine int
	MaxLines        int
	MinDurationMS   int64
	MaxDurationMS   int64
}

// DefaultLimits returns the limits used for broadcast-style subtitles.
func DefaultLimits() Limits {
	return Limits{
		MaxCharsPerLine: 42,
		MaxLines:        2,
		MinDurationMS:   1000,
		MaxDurationMS:   10_000,
	}
}

// Check runs every enabled rule over the cues and returns the findings in
// cue order.
func Check(cues []subtitles.Cue, limits Limits) []Issue {
	var issues []Issue
	for i, cue := range cues {
		issues = append(issues, checkText(cue, limits)...)
		issues = append(issues, checkDuration(cue, limits)...)
		if i > 0 && cue.StartMS < cues[i-1].EndMS {
			issues = append(issues, Issue{
				CueIndex: cue.Index,
				Rule:     "time_overlap",
				Message:  fmt.Sprintf("starts %dms before cue %d ends", cues[i-1].EndMS-cue.StartMS, cues[i-1].Index),
				Severity: SeverityError,
			})
		}
	}
	return issues
}

func checkText(cue subtitles.Cue, limits Limits) []Issue {
	var issues []Issue
	lines := strings.Split(cue.Text, "\n")

	if limits.MaxCharsPerLine > 0 {
		for n, line := range lines {
			count := utf8.RuneCountInString(line)
			if count > limits.MaxCharsPerLine {
				issues = append(issues, Issue{
					CueIndex: cue.Index,
					Rule:     "line_too_long",
					Message:  fmt.Sprintf("line %d has %d characters (limit %d)", n+1, count, limits.MaxCharsPerLine),
					Severity: SeverityWarning,
				})
			}
		}
	}

	if limits.MaxLines > 0 {
		nonEmpty := 0
		for _, line := range lines {
			if strings.TrimSpace(line) != "" {
				nonEmpty++
			}
		}
		if nonEmpty > limits.MaxLines {
			issues = append(issues, Issue{
				CueIndex: cue.Index,
				Rule:     "too_many_lines",
				Message:  fmt.Sprintf("%d lines (limit %d)", nonEmpty, limits.MaxLines),
				Severity: SeverityWarning,
			})
		}
	}

	if strings.TrimSpace(cue.Text) == "" {
		issues = append(issues, Issue{
			CueIndex: cue.Index,
			Rule:     "empty_text",
			Message:  "cue has no text",
			Severity: SeverityError,
		})
	}
	return issues
}

func checkDuration(cue subtitles.Cue, limits Limits) []Issue {
	var issues []Issue
	duration := cue.DurationMS()
	if limits.MinDurationMS > 0 && duration < limits.MinDurationMS {
		issues = append(issues, Issue{
			CueIndex: cue.Index,
			Rule:     "duration_short",
			Message:  fmt.Sprintf("displayed for %dms (minimum %dms)", duration, limits.MinDurationMS),
			Severity: SeverityWarning,
		})
	}
	if limits.MaxDurationMS > 0 && duration > limits.MaxDurationMS {
		issues = append(issues, Issue{
			CueIndex: cue.Index,
			Rule:     "duration_long",
			Message:  fmt.Sprintf("displayed for %dms (maximum %dms)", duration, limits.MaxDurationMS),
			Severity: SeverityInfo,
		})
	}
	return issues
}
