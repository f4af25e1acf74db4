package subtitle

import (
	"strings"
	"testing"

	"cuemill/internal/transcript"
)

// makeWords builds evenly spaced timed words starting at start, step seconds
// apart, all attributed to speaker.
func makeWords(speaker string, start, step float64, tokens ...string) []transcript.Word {
	words := make([]transcript.Word, 0, len(tokens))
	at := start
	for _, tok := range tokens {
		words = append(words, transcript.Word{Word: tok, Start: at, End: at + step, Speaker: speaker})
		at += step
	}
	return words
}

func wordSegment(speaker string, start, step float64, tokens ...string) transcript.Segment {
	words := makeWords(speaker, start, step, tokens...)
	return transcript.Segment{
		Start:   start,
		End:     words[len(words)-1].End,
		Text:    strings.Join(tokens, " "),
		Speaker: speaker,
		Words:   words,
	}
}

func TestChunkMergesShortSameSpeakerSegments(t *testing.T) {
	tr := &transcript.Transcript{Segments: []transcript.Segment{
		wordSegment("SPEAKER_00", 0.0, 0.3, "one", "two", "three", "four", "five"),
		wordSegment("SPEAKER_00", 1.6, 0.3, "six", "seven", "eight", "nine", "ten"),
	}}

	chunks := ChunkTranscript(tr, Limits{MaxDuration: 10, MaxLength: 200, MaxWords: 14, MinDuration: 0.5})
	if len(chunks) != 1 {
		t.Fatalf("expected segments to merge into 1 chunk, got %d", len(chunks))
	}
	if got := len(chunks[0].Words); got != 10 {
		t.Fatalf("expected 10 words, got %d", got)
	}
	if chunks[0].Text != "one two three four five six seven eight nine ten" {
		t.Fatalf("unexpected text %q", chunks[0].Text)
	}
}

func TestChunkSplitsExactlyAtSpeakerChange(t *testing.T) {
	words := makeWords("SPEAKER_00", 0, 0.5, "good", "morning", "council")
	words = append(words, makeWords("SPEAKER_01", 1.5, 0.5, "thank", "you", "mayor")...)
	tr := &transcript.Transcript{Segments: []transcript.Segment{{
		Start: 0, End: 3, Text: "good morning council thank you mayor", Words: words,
	}}}

	chunks := ChunkTranscript(tr, Limits{MaxDuration: 30, MaxLength: 200, MaxWords: 30, MinDuration: 0.5})
	if len(chunks) != 2 {
		t.Fatalf("expected 2 chunks, got %d", len(chunks))
	}
	if chunks[0].Speaker != "SPEAKER_00" || chunks[1].Speaker != "SPEAKER_01" {
		t.Fatalf("unexpected speakers %q / %q", chunks[0].Speaker, chunks[1].Speaker)
	}
	if chunks[1].Words[0].Word != "thank" {
		t.Fatalf("new chunk should begin at the speaker change, got %q", chunks[1].Words[0].Word)
	}
	// A same-speaker run below the word limit never splits.
	if len(chunks[0].Words) != 3 {
		t.Fatalf("expected the first run to stay whole, got %d words", len(chunks[0].Words))
	}
}

func TestChunkFlushesAtWordLimit(t *testing.T) {
	tr := &transcript.Transcript{Segments: []transcript.Segment{
		wordSegment("SPEAKER_00", 0, 0.2, "a", "b", "c", "d", "e", "f"),
	}}

	chunks := ChunkTranscript(tr, Limits{MaxDuration: 30, MaxLength: 200, MaxWords: 4, MinDuration: 0.5})
	if len(chunks) != 2 {
		t.Fatalf("expected 2 chunks, got %d", len(chunks))
	}
	if len(chunks[0].Words) != 4 || len(chunks[1].Words) != 2 {
		t.Fatalf("expected 4+2 words, got %d+%d", len(chunks[0].Words), len(chunks[1].Words))
	}
}

func TestChunkFlushesAtDurationLimit(t *testing.T) {
	tr := &transcript.Transcript{Segments: []transcript.Segment{
		wordSegment("SPEAKER_00", 0, 1.0, "first", "second", "third", "fourth"),
	}}

	chunks := ChunkTranscript(tr, Limits{MaxDuration: 2.5, MaxLength: 200, MaxWords: 30, MinDuration: 0.5})
	if len(chunks) != 2 {
		t.Fatalf("expected 2 chunks, got %d", len(chunks))
	}
	// Appending "third" would stretch the chunk to 3.0s, past the 2.5s cap.
	if chunks[1].Words[0].Word != "third" {
		t.Fatalf("expected second chunk to begin with the triggering word, got %q", chunks[1].Words[0].Word)
	}
}

func TestChunkRespectsLengthLimit(t *testing.T) {
	tokens := []string{"alpha", "bravo", "charlie", "delta", "echo", "foxtrot", "golf", "hotel"}
	tr := &transcript.Transcript{Segments: []transcript.Segment{
		wordSegment("SPEAKER_00", 0, 0.4, tokens...),
	}}

	limit := 20
	chunks := ChunkTranscript(tr, Limits{MaxDuration: 30, MaxLength: limit, MaxWords: 30, MinDuration: 0.5})
	if len(chunks) < 2 {
		t.Fatalf("expected the length limit to split the run, got %d chunk(s)", len(chunks))
	}
	for i, chunk := range chunks {
		if len(chunk.Text) > limit {
			t.Errorf("chunk %d text %q exceeds limit %d", i, chunk.Text, limit)
		}
	}
}

func TestChunkDropsEmptyWordTokens(t *testing.T) {
	tr := &transcript.Transcript{Segments: []transcript.Segment{{
		Start: 0, End: 2, Text: "hello world", Speaker: "SPEAKER_00",
		Words: []transcript.Word{
			{Word: "hello", Start: 0, End: 0.5, Speaker: "SPEAKER_00"},
			{Word: "   ", Start: 0.5, End: 0.6, Speaker: "SPEAKER_00"},
			{Word: "world", Start: 0.6, End: 1.0, Speaker: "SPEAKER_00"},
		},
	}}}

	chunks := ChunkTranscript(tr, Limits{MaxDuration: 5, MaxLength: 80, MaxWords: 30, MinDuration: 0.5})
	if len(chunks) != 1 {
		t.Fatalf("expected 1 chunk, got %d", len(chunks))
	}
	if len(chunks[0].Words) != 2 {
		t.Fatalf("blank tokens must not be counted, got %d words", len(chunks[0].Words))
	}
	if chunks[0].Text != "hello world" {
		t.Fatalf("unexpected text %q", chunks[0].Text)
	}
}

func TestChunkSkipsDegenerateSegments(t *testing.T) {
	tr := &transcript.Transcript{Segments: []transcript.Segment{
		{Start: 1.0, End: 1.05, Text: "blip", Speaker: "SPEAKER_00"},
	}}

	if chunks := ChunkTranscript(tr, DefaultLimits()); len(chunks) != 0 {
		t.Fatalf("expected degenerate segment to be skipped, got %d chunks", len(chunks))
	}
}

func TestChunkPlainSegmentPassThrough(t *testing.T) {
	tr := &transcript.Transcript{Segments: []transcript.Segment{
		{Start: 1, End: 4, Text: " Short remark. ", Speaker: "SPEAKER_01"},
	}}

	chunks := ChunkTranscript(tr, Limits{MaxDuration: 5, MaxLength: 80, MaxWords: 30, MinDuration: 1})
	if len(chunks) != 1 {
		t.Fatalf("expected 1 chunk, got %d", len(chunks))
	}
	chunk := chunks[0]
	if chunk.Start != 1 || chunk.End != 4 {
		t.Fatalf("expected pass-through timing, got %v-%v", chunk.Start, chunk.End)
	}
	if chunk.Text != "Short remark." {
		t.Fatalf("expected trimmed text, got %q", chunk.Text)
	}
	if chunk.Words != nil {
		t.Fatalf("plain chunks carry no word timing, got %v", chunk.Words)
	}
}

func TestChunkSplitsOverlongPlainSegment(t *testing.T) {
	text := "The council will now hear public comment. Each speaker has three minutes, and the clerk will keep time. Please state your name for the record."
	tr := &transcript.Transcript{Segments: []transcript.Segment{
		{Start: 0, End: 12, Text: text, Speaker: "SPEAKER_02"},
	}}

	limits := Limits{MaxDuration: 5, MaxLength: 60, MaxWords: 30, MinDuration: 1}
	chunks := ChunkTranscript(tr, limits)
	if len(chunks) < 2 {
		t.Fatalf("expected the segment to split, got %d chunk(s)", len(chunks))
	}

	prevStart := 0.0
	for i, chunk := range chunks {
		if len(chunk.Text) > limits.MaxLength {
			t.Errorf("chunk %d text %q exceeds max length", i, chunk.Text)
		}
		if chunk.End-chunk.Start < limits.MinDuration {
			t.Errorf("chunk %d duration %.3f below minimum", i, chunk.End-chunk.Start)
		}
		if chunk.Start < prevStart {
			t.Errorf("chunk %d start %.3f precedes previous start %.3f", i, chunk.Start, prevStart)
		}
		prevStart = chunk.Start
		if chunk.Speaker != "SPEAKER_02" {
			t.Errorf("chunk %d lost speaker attribution", i)
		}
	}

	// Punctuation stays attached to the preceding fragment.
	if !strings.HasSuffix(chunks[0].Text, ".") && !strings.HasSuffix(chunks[0].Text, ",") {
		t.Fatalf("expected first fragment to end at a punctuation boundary, got %q", chunks[0].Text)
	}
	if chunks[0].Start != 0 {
		t.Fatalf("first fragment must start at the segment start, got %v", chunks[0].Start)
	}
}

func TestChunkSplitsUnpunctuatedTextByWords(t *testing.T) {
	text := strings.Repeat("word ", 40) // 200 chars, no punctuation
	tr := &transcript.Transcript{Segments: []transcript.Segment{
		{Start: 0, End: 20, Text: strings.TrimSpace(text)},
	}}

	limits := Limits{MaxDuration: 5, MaxLength: 40, MaxWords: 6, MinDuration: 1}
	chunks := ChunkTranscript(tr, limits)
	for i, chunk := range chunks {
		if len(chunk.Text) > limits.MaxLength {
			t.Errorf("chunk %d exceeds length limit: %q", i, chunk.Text)
		}
		if n := len(strings.Fields(chunk.Text)); n > limits.MaxWords {
			t.Errorf("chunk %d has %d words, limit %d", i, n, limits.MaxWords)
		}
	}
}

func TestChunkOversizedTokenOverflowsAlone(t *testing.T) {
	token := strings.Repeat("x", 50)
	tr := &transcript.Transcript{Segments: []transcript.Segment{
		{Start: 0, End: 6, Text: "short lead " + token + " short tail"},
	}}

	chunks := ChunkTranscript(tr, Limits{MaxDuration: 5, MaxLength: 20, MaxWords: 30, MinDuration: 1})
	found := false
	for _, chunk := range chunks {
		if chunk.Text == token {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected the oversized token to be emitted alone, chunks: %+v", chunks)
	}
}

func TestChunkCountsCharactersNotBytes(t *testing.T) {
	// Ten 4-character words whose UTF-8 encoding is 6 bytes each: the run is
	// 49 characters (69 bytes) including separators, so a 60-character limit
	// keeps it whole.
	tokens := make([]string, 10)
	for i := range tokens {
		tokens[i] = "žluť"
	}
	tr := &transcript.Transcript{Segments: []transcript.Segment{
		wordSegment("SPEAKER_00", 0, 0.3, tokens...),
	}}

	chunks := ChunkTranscript(tr, Limits{MaxDuration: 30, MaxLength: 60, MaxWords: 30, MinDuration: 0.5})
	if len(chunks) != 1 {
		t.Fatalf("expected 49-character run to stay whole, got %d chunks", len(chunks))
	}
	if chunks[0].Text != strings.Join(tokens, " ") {
		t.Fatalf("unexpected text %q", chunks[0].Text)
	}
}

func TestChunkPlainSegmentLengthCountsCharacters(t *testing.T) {
	// 59 characters but 99 bytes; must pass through whole under a
	// 60-character limit.
	words := make([]string, 20)
	for i := range words {
		words[i] = "éé"
	}
	text := strings.Join(words, " ")
	tr := &transcript.Transcript{Segments: []transcript.Segment{
		{Start: 0, End: 4, Text: text, Speaker: "SPEAKER_00"},
	}}

	chunks := ChunkTranscript(tr, Limits{MaxDuration: 10, MaxLength: 60, MaxWords: 30, MinDuration: 0.5})
	if len(chunks) != 1 {
		t.Fatalf("expected plain segment to pass through whole, got %d chunks", len(chunks))
	}
	if chunks[0].Text != text {
		t.Fatalf("unexpected text %q", chunks[0].Text)
	}
}

func TestChunkOutputOrderedByStart(t *testing.T) {
	tr := &transcript.Transcript{Segments: []transcript.Segment{
		wordSegment("SPEAKER_00", 0, 0.5, "one", "two", "three"),
		{Start: 2.0, End: 9.0, Text: "A plain segment that is quite long, certainly too long to stay whole."},
		wordSegment("SPEAKER_01", 9.5, 0.5, "closing", "remarks"),
	}}

	chunks := ChunkTranscript(tr, Limits{MaxDuration: 3, MaxLength: 40, MaxWords: 10, MinDuration: 0.5})
	prev := 0.0
	for i, chunk := range chunks {
		if chunk.Start < prev {
			t.Fatalf("chunk %d start %.3f precedes previous %.3f", i, chunk.Start, prev)
		}
		prev = chunk.Start
		if chunk.Text == "" {
			t.Fatalf("chunk %d has empty text", i)
		}
	}
}
