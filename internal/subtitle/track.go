package subtitle

import (
	"errors"
	"fmt"
)

// Cue is the timestamp+text base shared by every entry variant.
type Cue struct {
	Index     int // 1-based
	Start     float64
	End       float64
	Text      string
	SpeakerID string
	WordCount int
}

// Entry is one rendered cue in a specific track format. The concrete types
// form a closed set: SRTEntry, VTTEntry, and ASSEntry.
type Entry interface {
	Base() Cue
	EntryFormat() Format
}

// SRTEntry is a SubRip cue.
type SRTEntry struct {
	Cue
}

func (e SRTEntry) Base() Cue           { return e.Cue }
func (e SRTEntry) EntryFormat() Format { return FormatSRT }

// VTTEntry is a WebVTT cue. SpeakerName, when set, wraps the text in a
// voice tag.
type VTTEntry struct {
	Cue
	SpeakerName string
}

func (e VTTEntry) Base() Cue           { return e.Cue }
func (e VTTEntry) EntryFormat() Format { return FormatVTT }

// ASSEntry is an Advanced SubStation Alpha dialogue event.
type ASSEntry struct {
	Cue
	StyledText string // overrides Text in the Dialogue line when set
	Style      string
	Name       string
	Layer      int
	MarginL    int
	MarginR    int
	MarginV    int
	Effect     string
}

func (e ASSEntry) Base() Cue           { return e.Cue }
func (e ASSEntry) EntryFormat() Format { return FormatASS }

// SpeakerInfo describes one distinct speaker encountered in a track.
type SpeakerInfo struct {
	ID          string
	Color       string
	DisplayName string
}

// ASSStyle holds the style parameters emitted into the [V4+ Styles] section.
type ASSStyle struct {
	FontName       string
	FontSize       int
	PrimaryColor   string // BGR hex
	SecondaryColor string
	OutlineColor   string
	BackColor      string
	Bold           bool
	Italic         bool
	Underline      bool
	StrikeOut      bool
	ScaleX         int
	ScaleY         int
	Spacing        int
	Angle          int
	BorderStyle    int
	Outline        int
	Shadow         int
	Alignment      int
	MarginL        int
	MarginR        int
	MarginV        int
	Encoding       int
}

// DefaultASSStyle returns the baseline style: white Arial, bottom center.
func DefaultASSStyle() ASSStyle {
	return ASSStyle{
		FontName:       "Arial",
		FontSize:       24,
		PrimaryColor:   "FFFFFF",
		SecondaryColor: "FFFFFF",
		OutlineColor:   "000000",
		BackColor:      "000000",
		ScaleX:         100,
		ScaleY:         100,
		BorderStyle:    1,
		Outline:        1,
		Alignment:      2,
		MarginL:        10,
		MarginR:        10,
		MarginV:        20,
		Encoding:       1,
	}
}

// TrackMetadata describes an assembled subtitle track.
type TrackMetadata struct {
	Format    Format
	Language  string
	Title     string
	Speakers  map[string]SpeakerInfo
	Style     *ASSStyle
	WordCount int
	Duration  float64
}

// SubtitleTrack is an immutable compiled track: metadata plus ordered
// entries, all of the variant matching Metadata.Format.
type SubtitleTrack struct {
	Metadata TrackMetadata
	Entries  []Entry
}

// ErrFormatMismatch indicates entries of one variant reached the renderer of
// another. This is an integration fault, not an input error.
var ErrFormatMismatch = errors.New("subtitle entry format mismatch")

type renderFunc func(*SubtitleTrack) (string, error)

// renderers dispatches track rendering over the closed format set.
var renderers = map[Format]renderFunc{
	FormatSRT: renderSRT,
	FormatVTT: renderVTT,
	FormatASS: renderASS,
}

// Content renders the track into its document text.
func (t *SubtitleTrack) Content() (string, error) {
	render, ok := renderers[t.Metadata.Format]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, t.Metadata.Format)
	}
	return render(t)
}
