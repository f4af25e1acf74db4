package subtitle

import (
	"fmt"

	"cuemill/internal/transcript"
)

// Options controls track assembly.
type Options struct {
	Format Format
	Limits Limits
	// IncludeSpeakerPrefix prepends "[<label>] " to each cue's text.
	IncludeSpeakerPrefix bool
	// NumericSpeakerLabels assigns sequential "Speaker N" labels in
	// first-seen order instead of deriving labels from diarization ids.
	NumericSpeakerLabels bool
	// SpeakerColors overrides the hashed palette assignment per speaker id.
	SpeakerColors map[string]string
	// Style customizes the ASS style block; nil uses DefaultASSStyle.
	Style *ASSStyle
	Title string
}

// Assemble compiles a transcript into an immutable SubtitleTrack: chunks the
// transcript, assigns speaker colors and labels, and constructs the entry
// variant matching the requested format. It performs no I/O.
func Assemble(t *transcript.Transcript, opts Options) (*SubtitleTrack, error) {
	format, err := ParseFormat(string(opts.Format))
	if err != nil {
		return nil, err
	}

	chunks := ChunkTranscript(t, opts.Limits)
	labels := speakerLabels(chunks, opts.NumericSpeakerLabels)

	speakers := make(map[string]SpeakerInfo, len(labels))
	for id, label := range labels {
		speakers[id] = SpeakerInfo{
			ID:          id,
			Color:       ColorFor(id, opts.SpeakerColors),
			DisplayName: label,
		}
	}

	var wordCount int
	var duration float64
	entries := make([]Entry, 0, len(chunks))
	for i, chunk := range chunks {
		words := chunk.WordCount()
		wordCount += words
		if chunk.End > duration {
			duration = chunk.End
		}

		text := chunk.Text
		if opts.IncludeSpeakerPrefix && chunk.Speaker != "" {
			text = fmt.Sprintf("[%s] %s", labels[chunk.Speaker], text)
		}

		cue := Cue{
			Index:     i + 1,
			Start:     chunk.Start,
			End:       chunk.End,
			Text:      text,
			SpeakerID: chunk.Speaker,
			WordCount: words,
		}
		entries = append(entries, buildEntry(format, cue, chunk, speakers, opts))
	}

	return &SubtitleTrack{
		Metadata: TrackMetadata{
			Format:    format,
			Language:  t.Language,
			Title:     opts.Title,
			Speakers:  speakers,
			Style:     opts.Style,
			WordCount: wordCount,
			Duration:  duration,
		},
		Entries: entries,
	}, nil
}

func buildEntry(format Format, cue Cue, chunk Chunk, speakers map[string]SpeakerInfo, opts Options) Entry {
	switch format {
	case FormatVTT:
		entry := VTTEntry{Cue: cue}
		// The voice tag carries the speaker when prefixing is off; emitting
		// both would duplicate the attribution.
		if chunk.Speaker != "" && !opts.IncludeSpeakerPrefix {
			entry.SpeakerName = speakers[chunk.Speaker].DisplayName
		}
		return entry
	case FormatASS:
		entry := ASSEntry{Cue: cue, Style: "Default"}
		if info, ok := speakers[chunk.Speaker]; ok {
			entry.Style = SpeakerStyleName(info.ID)
			if opts.IncludeSpeakerPrefix {
				entry.StyledText = fmt.Sprintf("{\\c&H%s&}%s", assColorCode(info.Color), cue.Text)
			}
		}
		return entry
	default:
		return SRTEntry{Cue: cue}
	}
}

// Render compiles a transcript straight to document text. This pure function
// is the single entry point surrounding pipelines depend on.
func Render(t *transcript.Transcript, opts Options) (string, error) {
	track, err := Assemble(t, opts)
	if err != nil {
		return "", err
	}
	return track.Content()
}
