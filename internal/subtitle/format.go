package subtitle

import (
	"errors"
	"fmt"
	"strings"
)

// Format identifies a subtitle track format.
type Format string

const (
	FormatSRT Format = "srt"
	FormatVTT Format = "vtt"
	FormatASS Format = "ass"
)

// ErrUnsupportedFormat indicates a format identifier outside the supported set.
var ErrUnsupportedFormat = errors.New("unsupported subtitle format")

// ParseFormat resolves a format identifier to a Format.
func ParseFormat(value string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(value))) {
	case FormatSRT:
		return FormatSRT, nil
	case FormatVTT:
		return FormatVTT, nil
	case FormatASS:
		return FormatASS, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, value)
}

// Extension returns the file extension for the format, dot included.
func (f Format) Extension() string {
	return "." + string(f)
}

// ContentType returns the MIME type used when handing rendered documents to
// a content sink.
func (f Format) ContentType() string {
	switch f {
	case FormatVTT:
		return "text/vtt"
	case FormatASS:
		return "text/x-ssa"
	default:
		return "application/x-subrip"
	}
}

func (f Format) String() string {
	return string(f)
}
