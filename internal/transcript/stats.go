package transcript

import "strings"

// Stats summarizes a transcript for reporting.
type Stats struct {
	Language        string
	SegmentCount    int
	WordCount       int
	Duration        float64
	SpeakerSegments map[string]int
	SpeakerWords    map[string]int
}

// Stats computes summary counts across all segments. Word counts come from
// word-level timing where present and fall back to whitespace tokens.
func (t *Transcript) Stats() Stats {
	stats := Stats{
		Language:        t.Language,
		SegmentCount:    len(t.Segments),
		SpeakerSegments: make(map[string]int),
		SpeakerWords:    make(map[string]int),
	}
	for _, seg := range t.Segments {
		words := len(seg.Words)
		if words == 0 {
			words = len(strings.Fields(seg.Text))
		}
		stats.WordCount += words
		if seg.End > stats.Duration {
			stats.Duration = seg.End
		}
		speaker := seg.Speaker
		if speaker == "" {
			speaker = "Unknown"
		}
		stats.SpeakerSegments[speaker]++
		stats.SpeakerWords[speaker] += words
	}
	return stats
}
