package transcript

import (
	"regexp"
	"strings"
)

var (
	srtIndexLine  = regexp.MustCompile(`^\d+$`)
	srtTimingLine = regexp.MustCompile(`^\d{2}:\d{2}:\d{2},\d{3} --> \d{2}:\d{2}:\d{2},\d{3}$`)
)

// StripSRT removes cue indexes and timing lines from SubRip text and joins
// the remaining caption lines with single spaces.
func StripSRT(srt string) string {
	srt = strings.ReplaceAll(srt, "\r\n", "\n")
	parts := make([]string, 0, 64)
	for _, line := range strings.Split(srt, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || srtIndexLine.MatchString(line) || srtTimingLine.MatchString(line) {
			continue
		}
		parts = append(parts, line)
	}
	return strings.TrimSpace(strings.Join(parts, " "))
}
