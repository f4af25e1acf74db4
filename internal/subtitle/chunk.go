package subtitle

import (
	"strings"
	"unicode/utf8"

	"cuemill/internal/transcript"
)

// Segments shorter than this are treated as degenerate and skipped.
const minSegmentSeconds = 0.1

// Limits bounds chunk construction.
type Limits struct {
	MaxDuration float64 // seconds per chunk
	MaxLength   int     // characters per chunk
	MaxWords    int     // words per chunk
	MinDuration float64 // floor applied to fragments of split segments
}

// DefaultLimits returns the limits used when a caller leaves a field unset.
func DefaultLimits() Limits {
	return Limits{
		MaxDuration: 5.0,
		MaxLength:   80,
		MaxWords:    30,
		MinDuration: 1.0,
	}
}

func (l Limits) normalized() Limits {
	defaults := DefaultLimits()
	if l.MaxDuration <= 0 {
		l.MaxDuration = defaults.MaxDuration
	}
	if l.MaxLength <= 0 {
		l.MaxLength = defaults.MaxLength
	}
	if l.MaxWords <= 0 {
		l.MaxWords = defaults.MaxWords
	}
	if l.MinDuration <= 0 {
		l.MinDuration = defaults.MinDuration
	}
	return l
}

// ChunkWord is a single timed word inside a chunk.
type ChunkWord struct {
	Word    string
	Start   float64
	End     float64
	Speaker string
}

// Chunk is a format-agnostic timed text unit. Chunks built from word-level
// timing carry their words; chunks built from plain segment text do not.
type Chunk struct {
	Start   float64
	End     float64
	Text    string
	Speaker string
	Words   []ChunkWord
}

// WordCount returns the word-level count where timing is available and the
// whitespace-token count otherwise.
func (c Chunk) WordCount() int {
	if len(c.Words) > 0 {
		return len(c.Words)
	}
	return len(strings.Fields(c.Text))
}

// ChunkTranscript converts a transcript into an ordered sequence of chunks.
//
// Segments with word-level timing accumulate words into a pending chunk that
// carries across segment boundaries; the pending chunk is flushed before a
// word that changes speaker, reaches the word limit, stretches the chunk past
// the duration limit, or overflows the character limit, and that word begins
// the next chunk. Segments without word timing are emitted whole when they
// fit the limits and are otherwise split along punctuation and word
// boundaries with proportional time allocation.
func ChunkTranscript(t *transcript.Transcript, limits Limits) []Chunk {
	c := &chunker{limits: limits.normalized()}
	for _, seg := range t.Segments {
		if seg.Duration() < minSegmentSeconds {
			continue
		}
		if len(seg.Words) == 0 {
			// Plain segments interrupt any pending word accumulation so the
			// output stays ordered by start time.
			c.flush()
			c.appendPlain(seg)
			continue
		}
		c.accumulate(seg)
	}
	c.flush()
	return c.chunks
}

type chunker struct {
	limits  Limits
	chunks  []Chunk
	pending []ChunkWord
	length  int // character length of the pending text, separators included
}

func (c *chunker) accumulate(seg transcript.Segment) {
	for _, w := range seg.Words {
		text := strings.TrimSpace(w.Word)
		if text == "" {
			continue
		}
		speaker := w.Speaker
		if speaker == "" {
			speaker = seg.Speaker
		}
		next := ChunkWord{Word: text, Start: w.Start, End: w.End, Speaker: speaker}
		if c.shouldFlushBefore(next) {
			c.flush()
		}
		if len(c.pending) > 0 {
			c.length++ // joining space
		}
		c.length += charLen(text)
		c.pending = append(c.pending, next)
	}
}

func (c *chunker) shouldFlushBefore(next ChunkWord) bool {
	if len(c.pending) == 0 {
		return false
	}
	if c.pending[0].Speaker != next.Speaker {
		return true
	}
	if len(c.pending) >= c.limits.MaxWords {
		return true
	}
	if next.End-c.pending[0].Start > c.limits.MaxDuration {
		return true
	}
	if c.length+1+charLen(next.Word) > c.limits.MaxLength {
		return true
	}
	return false
}

func (c *chunker) flush() {
	if len(c.pending) == 0 {
		return
	}
	words := make([]ChunkWord, len(c.pending))
	copy(words, c.pending)
	parts := make([]string, len(words))
	for i, w := range words {
		parts[i] = w.Word
	}
	c.chunks = append(c.chunks, Chunk{
		Start:   words[0].Start,
		End:     words[len(words)-1].End,
		Text:    strings.Join(parts, " "),
		Speaker: words[0].Speaker,
		Words:   words,
	})
	c.pending = c.pending[:0]
	c.length = 0
}

func (c *chunker) appendPlain(seg transcript.Segment) {
	text := strings.TrimSpace(seg.Text)
	if text == "" {
		return
	}
	if seg.Duration() <= c.limits.MaxDuration && charLen(text) <= c.limits.MaxLength {
		c.chunks = append(c.chunks, Chunk{
			Start:   seg.Start,
			End:     seg.End,
			Text:    text,
			Speaker: seg.Speaker,
		})
		return
	}

	fragments := splitSegmentText(text, c.limits)
	total := seg.Duration()
	textChars := charLen(text)
	prevEnd := seg.Start
	for _, fragment := range fragments {
		share := total * float64(charLen(fragment)) / float64(textChars)
		start := prevEnd
		end := start + share
		if end > seg.End {
			end = seg.End
		}
		// Later fragments keep their allocated starts; the minimum-duration
		// raise only extends this fragment's end.
		prevEnd = end
		if end-start < c.limits.MinDuration {
			end = start + c.limits.MinDuration
		}
		c.chunks = append(c.chunks, Chunk{
			Start:   start,
			End:     end,
			Text:    fragment,
			Speaker: seg.Speaker,
		})
	}
}

// punctuationMarks are the split points for overlong plain segments. The
// mark stays attached to the preceding fragment.
const punctuationMarks = ".!?,:;"

// charLen measures text in characters, not bytes; every length limit in
// this package counts characters.
func charLen(s string) int {
	return utf8.RuneCountInString(s)
}

func splitSegmentText(text string, limits Limits) []string {
	pieces := splitOnPunctuation(text)
	packed := packFragments(pieces, limits.MaxLength)

	fragments := make([]string, 0, len(packed))
	for _, fragment := range packed {
		if charLen(fragment) <= limits.MaxLength {
			fragments = append(fragments, fragment)
			continue
		}
		fragments = append(fragments, splitByWords(fragment, limits)...)
	}
	return fragments
}

func splitOnPunctuation(text string) []string {
	var pieces []string
	var b strings.Builder
	for _, r := range text {
		b.WriteRune(r)
		if strings.ContainsRune(punctuationMarks, r) {
			pieces = append(pieces, b.String())
			b.Reset()
		}
	}
	if b.Len() > 0 {
		pieces = append(pieces, b.String())
	}
	return pieces
}

// packFragments merges punctuation pieces back together while the combined
// text stays within maxLength.
func packFragments(pieces []string, maxLength int) []string {
	var out []string
	current := ""
	for _, piece := range pieces {
		if strings.TrimSpace(piece) == "" {
			continue
		}
		if current != "" && charLen(current)+charLen(piece) > maxLength {
			out = append(out, strings.TrimSpace(current))
			current = piece
			continue
		}
		current += piece
	}
	if trimmed := strings.TrimSpace(current); trimmed != "" {
		out = append(out, trimmed)
	}
	return out
}

// splitByWords divides a fragment on whitespace, bounded by both the
// character and word limits. A single token longer than the character limit
// is emitted alone as permitted overflow.
func splitByWords(fragment string, limits Limits) []string {
	var out []string
	var current []string
	length := 0
	for _, word := range strings.Fields(fragment) {
		fits := length == 0 || length+1+charLen(word) <= limits.MaxLength
		if fits && len(current) < limits.MaxWords {
			if length > 0 {
				length++
			}
			length += charLen(word)
			current = append(current, word)
			continue
		}
		if len(current) > 0 {
			out = append(out, strings.Join(current, " "))
		}
		current = []string{word}
		length = charLen(word)
	}
	if len(current) > 0 {
		out = append(out, strings.Join(current, " "))
	}
	return out
}
