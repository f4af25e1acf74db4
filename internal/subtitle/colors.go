package subtitle

import (
	"crypto/md5"
	"regexp"
)

// speakerPalette is the fixed ordered palette used for deterministic
// speaker coloring. Order matters: color assignment indexes into it.
var speakerPalette = [...]string{
	"yellow",
	"cyan",
	"lime",
	"magenta",
	"red",
	"aqua",
	"chartreuse",
	"coral",
	"gold",
	"pink",
	"lavender",
	"orange",
	"orchid",
	"plum",
	"salmon",
}

// assColorCodes maps palette color names to ASS color values in BGR byte
// order.
var assColorCodes = map[string]string{
	"white":      "FFFFFF",
	"yellow":     "00FFFF",
	"cyan":       "FFFF00",
	"lime":       "00FF00",
	"magenta":    "FF00FF",
	"red":        "0000FF",
	"aqua":       "FFFF00",
	"chartreuse": "00FF7F",
	"coral":      "507FFF",
	"gold":       "00D7FF",
	"pink":       "CBC0FF",
	"lavender":   "FAE6E6",
	"orange":     "00A5FF",
	"orchid":     "D670DA",
	"plum":       "DDA0DD",
	"salmon":     "7280FA",
}

var hexColorPattern = regexp.MustCompile(`^[0-9A-Fa-f]{6}$`)

// ColorFor returns the display color for a speaker. Explicit mappings are
// returned unchanged; otherwise the speaker id is hashed onto the fixed
// palette. The function is pure: the same id yields the same color across
// calls and across processes.
func ColorFor(speakerID string, explicit map[string]string) string {
	if color, ok := explicit[speakerID]; ok {
		return color
	}
	sum := md5.Sum([]byte(speakerID))
	idx := 0
	for _, b := range sum {
		idx = (idx*256 + int(b)) % len(speakerPalette)
	}
	return speakerPalette[idx]
}

// assColorCode converts a color to the BGR hex value used in ASS style and
// override fields. Values that already look like a six-digit hex code pass
// through; unknown names fall back to white.
func assColorCode(color string) string {
	if hexColorPattern.MatchString(color) {
		return color
	}
	if code, ok := assColorCodes[color]; ok {
		return code
	}
	return "FFFFFF"
}
