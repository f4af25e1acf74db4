package subtitle

import (
	"fmt"
	"strings"
)

func renderSRT(track *SubtitleTrack) (string, error) {
	var b strings.Builder
	for _, entry := range track.Entries {
		cue, ok := entry.(SRTEntry)
		if !ok {
			return "", fmt.Errorf("%w: srt renderer received %s entry", ErrFormatMismatch, entry.EntryFormat())
		}
		fmt.Fprintf(&b, "%d\n%s --> %s\n%s\n\n",
			cue.Index,
			FormatSRTTimestamp(cue.Start),
			FormatSRTTimestamp(cue.End),
			cue.Text,
		)
	}
	return b.String(), nil
}
