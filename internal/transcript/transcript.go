package transcript

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Word is a single spoken word with timing attribution.
type Word struct {
	Word        string   `json:"word"`
	Start       float64  `json:"start"`
	End         float64  `json:"end"`
	Speaker     string   `json:"speaker,omitempty"`
	Probability *float64 `json:"probability,omitempty"`
}

// Segment is one contiguous span of speech.
type Segment struct {
	ID      *int    `json:"id,omitempty"`
	Start   float64 `json:"start"`
	End     float64 `json:"end"`
	Text    string  `json:"text"`
	Speaker string  `json:"speaker,omitempty"`
	Words   []Word  `json:"words,omitempty"`
}

// Duration returns the segment length in seconds.
func (s Segment) Duration() float64 {
	return s.End - s.Start
}

// Transcript is a complete diarized transcript document.
type Transcript struct {
	Language string    `json:"language"`
	Segments []Segment `json:"segments"`
}

// ValidationError reports a transcript document that fails schema checks.
type ValidationError struct {
	Segment int // index of the offending segment, -1 for document-level issues
	Field   string
	Reason  string
}

func (e *ValidationError) Error() string {
	if e.Segment >= 0 {
		return fmt.Sprintf("transcript schema: segment %d: %s: %s", e.Segment, e.Field, e.Reason)
	}
	return fmt.Sprintf("transcript schema: %s: %s", e.Field, e.Reason)
}

// Raw document shapes used to detect missing timing fields, which plain
// float64 targets would silently coerce to zero.
type rawWord struct {
	Word        string   `json:"word"`
	Start       *float64 `json:"start"`
	End         *float64 `json:"end"`
	Speaker     string   `json:"speaker"`
	Probability *float64 `json:"probability"`
}

type rawSegment struct {
	ID      *int      `json:"id"`
	Start   *float64  `json:"start"`
	End     *float64  `json:"end"`
	Text    string    `json:"text"`
	Speaker string    `json:"speaker"`
	Words   []rawWord `json:"words"`
}

type rawTranscript struct {
	Language string       `json:"language"`
	Segments []rawSegment `json:"segments"`
}

// Decode parses and validates a JSON transcript document.
func Decode(data []byte) (*Transcript, error) {
	var raw rawTranscript
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse transcript json: %w", err)
	}

	out := &Transcript{
		Language: strings.TrimSpace(raw.Language),
		Segments: make([]Segment, 0, len(raw.Segments)),
	}
	for i, seg := range raw.Segments {
		if seg.Start == nil {
			return nil, &ValidationError{Segment: i, Field: "start", Reason: "missing"}
		}
		if seg.End == nil {
			return nil, &ValidationError{Segment: i, Field: "end", Reason: "missing"}
		}
		if *seg.End < *seg.Start {
			return nil, &ValidationError{Segment: i, Field: "end", Reason: fmt.Sprintf("end %.3f precedes start %.3f", *seg.End, *seg.Start)}
		}
		words := make([]Word, 0, len(seg.Words))
		for j, w := range seg.Words {
			if w.Start == nil || w.End == nil {
				return nil, &ValidationError{Segment: i, Field: fmt.Sprintf("words[%d]", j), Reason: "missing timing"}
			}
			if *w.End < *w.Start {
				return nil, &ValidationError{Segment: i, Field: fmt.Sprintf("words[%d].end", j), Reason: fmt.Sprintf("end %.3f precedes start %.3f", *w.End, *w.Start)}
			}
			words = append(words, Word{
				Word:        w.Word,
				Start:       *w.Start,
				End:         *w.End,
				Speaker:     w.Speaker,
				Probability: w.Probability,
			})
		}
		if len(words) == 0 {
			words = nil
		}
		out.Segments = append(out.Segments, Segment{
			ID:      seg.ID,
			Start:   *seg.Start,
			End:     *seg.End,
			Text:    seg.Text,
			Speaker: seg.Speaker,
			Words:   words,
		})
	}
	return out, nil
}

// Validate checks timing invariants on an already constructed transcript.
// Decode performs these checks itself; Validate covers transcripts built in
// code.
func (t *Transcript) Validate() error {
	for i, seg := range t.Segments {
		if seg.End < seg.Start {
			return &ValidationError{Segment: i, Field: "end", Reason: fmt.Sprintf("end %.3f precedes start %.3f", seg.End, seg.Start)}
		}
		for j, w := range seg.Words {
			if w.End < w.Start {
				return &ValidationError{Segment: i, Field: fmt.Sprintf("words[%d].end", j), Reason: fmt.Sprintf("end %.3f precedes start %.3f", w.End, w.Start)}
			}
		}
	}
	return nil
}
