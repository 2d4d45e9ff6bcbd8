package subtitles

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// FormatTimestamp renders milliseconds in the SRT form HH:MM:SS,mmm.
func FormatTimestamp(ms int64) string {
	totalSeconds := ms / 1000
	millis := ms % 1000
	hours := totalSeconds / 3600
	minutes := (totalSeconds % 3600) / 60
	seconds := totalSeconds % 60
	return fmt.Sprintf("%02d:%02d:%02d,%03d", hours, minutes, seconds, millis)
}

// ParseTimestamp reads an SRT timestamp. A period separator is tolerated
// since some tools emit it in place of the standard comma.
func ParseTimestamp(value string) (int64, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return 0, fmt.Errorf("empty timestamp")
	}
	value = strings.ReplaceAll(value, ".", ",")
	parts := strings.Split(value, ",")
	if len(parts) != 2 {
		return 0, fmt.Errorf("invalid timestamp %q", value)
	}
	hms := strings.Split(parts[0], ":")
	if len(hms) != 3 {
		return 0, fmt.Errorf("invalid timestamp %q", value)
	}
	hours, errH := strconv.ParseInt(hms[0], 10, 64)
	minutes, errM := strconv.ParseInt(hms[1], 10, 64)
	seconds, errS := strconv.ParseInt(hms[2], 10, 64)
	millis, errMS := strconv.ParseInt(parts[1], 10, 64)
	if errH != nil || errM != nil || errS != nil || errMS != nil {
		return 0, fmt.Errorf("invalid timestamp %q", value)
	}
	return (hours*3600+minutes*60+seconds)*1000 + millis, nil
}

// WriteSRT writes cues as UTF-8 SRT blocks. Cue indexes are written as-is;
// callers renumber before exporting.
func WriteSRT(w io.Writer, cues []Cue) error {
	bw := bufio.NewWriter(w)
	for i, cue := range cues {
		if i > 0 {
			if _, err := bw.WriteString("\n"); err != nil {
				return fmt.Errorf("write srt: %w", err)
			}
		}
		block := fmt.Sprintf("%d\n%s --> %s\n%s\n",
			cue.Index,
			FormatTimestamp(cue.StartMS),
			FormatTimestamp(cue.EndMS),
			cue.Text,
		)
		if _, err := bw.WriteString(block); err != nil {
			return fmt.Errorf("write srt: %w", err)
		}
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("write srt: %w", err)
	}
	return nil
}

// ReadSRT parses SRT content into cues. CRLF line endings and a UTF-8 BOM
// are tolerated. Blocks without a timing line are rejected.
func ReadSRT(r io.Reader) ([]Cue, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read srt: %w", err)
	}
	content := strings.ReplaceAll(string(data), "\r\n", "\n")
	content = strings.TrimPrefix(content, "\ufeff")
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, nil
	}

	var cues []Cue
	for _, block := range strings.Split(content, "\n\n") {
		block = strings.TrimSpace(block)
		if block == "" {
			continue
		}
		cue, err := parseBlock(block)
		if err != nil {
			return nil, err
		}
		cues = append(cues, cue)
	}
	return cues, nil
}

func parseBlock(block string) (Cue, error) {
	lines := strings.Split(block, "\n")
	pos := 0

	var index int
	if n, err := strconv.Atoi(strings.TrimSpace(lines[pos])); err == nil {
		index = n
		pos++
	}

	if pos >= len(lines) || !strings.Contains(lines[pos], "-->") {
		return Cue{}, fmt.Errorf("srt block %q: missing timing line", firstLine(block))
	}
	timing := strings.SplitN(lines[pos], "-->", 2)
	start, err := ParseTimestamp(timing[0])
	if err != nil {
		return Cue{}, fmt.Errorf("srt block %q: %w", firstLine(block), err)
	}
	end, err := ParseTimestamp(timing[1])
	if err != nil {
		return Cue{}, fmt.Errorf("srt block %q: %w", firstLine(block), err)
	}
	pos++

	text := strings.TrimSpace(strings.Join(lines[pos:], "\n"))
	cue := Cue{Index: index, StartMS: start, EndMS: end, Text: text}
	if err := cue.Validate(); err != nil {
		return Cue{}, err
	}
	return cue, nil
}

func firstLine(block string) string {
	if i := strings.IndexByte(block, '\n'); i >= 0 {
		return block[:i]
	}
	return block
}
