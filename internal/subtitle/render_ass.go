package subtitle

import (
	"fmt"
	"sort"
	"strings"
)

const (
	assStylesFormat = "Format: Name, Fontname, Fontsize, PrimaryColour, SecondaryColour, OutlineColour, BackColour, Bold, Italic, Underline, StrikeOut, ScaleX, ScaleY, Spacing, Angle, BorderStyle, Outline, Shadow, Alignment, MarginL, MarginR, MarginV, Encoding"
	assEventsFormat = "Format: Layer, Start, End, Style, Name, MarginL, MarginR, MarginV, Effect, Text"

	// Alpha channel for the BackColour field, half opaque.
	assBackAlpha = "7f"
)

func renderASS(track *SubtitleTrack) (string, error) {
	style := DefaultASSStyle()
	if track.Metadata.Style != nil {
		style = *track.Metadata.Style
	}

	var b strings.Builder
	b.WriteString("[Script Info]\n")
	if title := strings.TrimSpace(track.Metadata.Title); title != "" {
		fmt.Fprintf(&b, "Title: %s\n", title)
	}
	b.WriteString("ScriptType: v4.00+\n")
	b.WriteString("PlayResX: 384\n")
	b.WriteString("PlayResY: 288\n")
	b.WriteString("ScaledBorderAndShadow: yes\n")
	b.WriteString("\n")

	b.WriteString("[V4+ Styles]\n")
	b.WriteString(assStylesFormat)
	b.WriteString("\n")
	writeStyleLine(&b, "Default", style.PrimaryColor, style)
	for _, speaker := range sortedSpeakers(track.Metadata.Speakers) {
		writeStyleLine(&b, SpeakerStyleName(speaker.ID), assColorCode(speaker.Color), style)
	}
	b.WriteString("\n")

	b.WriteString("[Events]\n")
	b.WriteString(assEventsFormat)
	b.WriteString("\n\n")

	for _, entry := range track.Entries {
		cue, ok := entry.(ASSEntry)
		if !ok {
			return "", fmt.Errorf("%w: ass renderer received %s entry", ErrFormatMismatch, entry.EntryFormat())
		}
		text := cue.Text
		if cue.StyledText != "" {
			text = cue.StyledText
		}
		styleName := cue.Style
		if styleName == "" {
			styleName = "Default"
		}
		fmt.Fprintf(&b, "Dialogue: %d,%s,%s,%s,%s,%d,%d,%d,%s,%s\n",
			cue.Layer,
			FormatASSTimestamp(cue.Start),
			FormatASSTimestamp(cue.End),
			styleName,
			cue.Name,
			cue.MarginL,
			cue.MarginR,
			cue.MarginV,
			cue.Effect,
			text,
		)
	}
	return b.String(), nil
}

func writeStyleLine(b *strings.Builder, name, primaryBGR string, style ASSStyle) {
	fmt.Fprintf(b, "Style: %s,%s,%d,&H00%s,&H00%s,&H00%s,&H%s%s,%d,%d,%d,%d,%d,%d,%d,%d,%d,%d,%d,%d,%d,%d,%d,%d\n",
		name,
		style.FontName,
		style.FontSize,
		primaryBGR,
		style.SecondaryColor,
		style.OutlineColor,
		assBackAlpha,
		style.BackColor,
		boolFlag(style.Bold),
		boolFlag(style.Italic),
		boolFlag(style.Underline),
		boolFlag(style.StrikeOut),
		style.ScaleX,
		style.ScaleY,
		style.Spacing,
		style.Angle,
		style.BorderStyle,
		style.Outline,
		style.Shadow,
		style.Alignment,
		style.MarginL,
		style.MarginR,
		style.MarginV,
		style.Encoding,
	)
}

// SpeakerStyleName derives the per-speaker ASS style name from a
// diarization id, e.g. SPEAKER_01 becomes Speaker_01.
func SpeakerStyleName(speakerID string) string {
	return "Speaker_" + strings.TrimPrefix(speakerID, "SPEAKER_")
}

func sortedSpeakers(speakers map[string]SpeakerInfo) []SpeakerInfo {
	out := make([]SpeakerInfo, 0, len(speakers))
	for _, info := range speakers {
		out = append(out, info)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func boolFlag(v bool) int {
	if v {
		return 1
	}
	return 0
}
