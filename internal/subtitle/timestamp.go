package subtitle

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// FormatSRTTimestamp renders seconds as HH:MM:SS,mmm. Milliseconds are
// truncated, never rounded, and the hour field is zero-padded to two digits.
func FormatSRTTimestamp(seconds float64) string {
	return clockTimestamp(seconds, ',')
}

// FormatVTTTimestamp renders seconds as HH:MM:SS.mmm for WebVTT cues.
func FormatVTTTimestamp(seconds float64) string {
	return clockTimestamp(seconds, '.')
}

// FormatASSTimestamp renders seconds as H:MM:SS.cc. ASS uses centisecond
// precision with an unpadded hour field; the value is truncated.
func FormatASSTimestamp(seconds float64) string {
	if seconds < 0 {
		seconds = 0
	}
	centis := int64(math.Floor(seconds * 100))
	hours := centis / 360000
	minutes := (centis % 360000) / 6000
	secs := (centis % 6000) / 100
	return fmt.Sprintf("%d:%02d:%02d.%02d", hours, minutes, secs, centis%100)
}

func clockTimestamp(seconds float64, sep byte) string {
	if seconds < 0 {
		seconds = 0
	}
	millis := int64(math.Floor(seconds * 1000))
	hours := millis / 3600000
	minutes := (millis % 3600000) / 60000
	secs := (millis % 60000) / 1000
	return fmt.Sprintf("%02d:%02d:%02d%c%03d", hours, minutes, secs, sep, millis%1000)
}

// ParseSRTTimestamp converts an SRT or VTT timestamp back to seconds. Both
// comma and period millisecond separators are accepted.
func ParseSRTTimestamp(value string) (float64, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return 0, fmt.Errorf("empty timestamp")
	}
	value = strings.ReplaceAll(value, ".", ",")
	timeParts := strings.Split(value, ",")
	if len(timeParts) != 2 {
		return 0, fmt.Errorf("invalid timestamp %q", value)
	}
	hms := strings.Split(timeParts[0], ":")
	if len(hms) != 3 {
		return 0, fmt.Errorf("invalid timestamp %q", value)
	}
	hours, errH := strconv.Atoi(hms[0])
	minutes, errM := strconv.Atoi(hms[1])
	seconds, errS := strconv.Atoi(hms[2])
	millis, errMS := strconv.Atoi(timeParts[1])
	if errH != nil || errM != nil || errS != nil || errMS != nil {
		return 0, fmt.Errorf("invalid timestamp %q", value)
	}
	return float64(hours*3600+minutes*60+seconds) + float64(millis)/1000, nil
}
