package subtitle

import (
	"fmt"
	"strings"
)

func renderVTT(track *SubtitleTrack) (string, error) {
	var b strings.Builder
	b.WriteString("WEBVTT\n\n")
	for _, entry := range track.Entries {
		cue, ok := entry.(VTTEntry)
		if !ok {
			return "", fmt.Errorf("%w: vtt renderer received %s entry", ErrFormatMismatch, entry.EntryFormat())
		}
		text := cue.Text
		if cue.SpeakerName != "" {
			text = fmt.Sprintf("<v %s>%s</v>", cue.SpeakerName, text)
		}
		fmt.Fprintf(&b, "%d\n%s --> %s\n%s\n\n",
			cue.Index,
			FormatVTTTimestamp(cue.Start),
			FormatVTTTimestamp(cue.End),
			text,
		)
	}
	return b.String(), nil
}
