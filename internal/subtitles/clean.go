package subtitles

import (
	"regexp"
	"strings"
)

var controlChars = regexp.MustCompile(`[\x00-\x08\x0b\x0c\x0e-\x1f\x7f-\x9f]`)

// CleanText strips OCR artifacts from recognized subtitle text: control
// characters go away and runs of four or more identical characters, which
// real dialogue almost never contains, collapse to one. Line breaks are
// preserved.
func CleanText(text string) string {
	if text == "" {
		return ""
	}
	cleaned := controlChars.ReplaceAllString(text, "")
	cleaned = collapseRuns(cleaned, 4)
	lines := strings.Split(cleaned, "\n")
	kept := make([]string, 0, len(lines))
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		kept = append(kept, line)
	}
	return strings.Join(kept, "\n")
}

// collapseRuns reduces any run of the same rune at least minRun long to a
// single occurrence.
func collapseRuns(s string, minRun int) string {
	runes := []rune(s)
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(runes); {
		j := i
		for j < len(runes) && runes[j] == runes[i] {
			j++
		}
		if j-i >= minRun {
			b.WriteRune(runes[i])
		} else {
			b.WriteString(string(runes[i:j]))
		}
		i = j
	}
	return b.String()
}
