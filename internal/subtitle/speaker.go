package subtitle

import (
	"strconv"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var titleCaser = cases.Title(language.Und)

// DisplayName normalizes a diarization id for human display. Conventional
// ids shed their prefix and leading zeros (SPEAKER_01 becomes "Speaker 1");
// anything else is title-cased with underscores treated as spaces.
func DisplayName(speakerID string) string {
	if rest, ok := strings.CutPrefix(speakerID, "SPEAKER_"); ok && isDigits(rest) {
		trimmed := strings.TrimLeft(rest, "0")
		if trimmed == "" {
			trimmed = "0"
		}
		return "Speaker " + trimmed
	}
	return titleCaser.String(strings.ToLower(strings.ReplaceAll(speakerID, "_", " ")))
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// speakerLabels maps each distinct speaker id to its display label. In
// numeric mode labels are assigned sequentially in first-seen order;
// otherwise each id is normalized independently.
func speakerLabels(chunks []Chunk, numeric bool) map[string]string {
	labels := make(map[string]string)
	next := 1
	for _, chunk := range chunks {
		if chunk.Speaker == "" {
			continue
		}
		if _, ok := labels[chunk.Speaker]; ok {
			continue
		}
		if numeric {
			labels[chunk.Speaker] = "Speaker " + strconv.Itoa(next)
			next++
		} else {
			labels[chunk.Speaker] = DisplayName(chunk.Speaker)
		}
	}
	return labels
}
