// Package videoid normalizes user input into canonical YouTube video IDs.
package videoid

import (
	"regexp"
	"strings"

	"widviz/common"
)

// IDLength is the fixed length of a YouTube video ID.
const IDLength = 11

// urlPatterns are tried in order; the first match wins.
var urlPatterns = []*regexp.Regexp{
	// watch?v=, /v/, /e/, /embed/, channel-style paths, youtu.be/
	regexp.MustCompile(`(?:youtube\.com/(?:[^/]+/.+/|(?:v|e(?:mbed)?)/|.*[?&]v=)|youtu\.be/)([A-Za-z0-9_-]{11})`),
	// narrower fallback for the three canonical shapes
	regexp.MustCompile(`(?:youtube\.com/(?:watch\?v=|embed/|v/)|youtu\.be/)([A-Za-z0-9_-]{11})`),
}

// Resolve returns the 11-character video ID contained in raw, which may be a
// bare ID or a watch, short-link or embed URL.
func Resolve(raw string) (string, error) {
	if IsValidID(raw) {
		return raw, nil
	}
	for _, re := range urlPatterns {
		if m := re.FindStringSubmatch(raw); len(m) == 2 {
			return m[1], nil
		}
	}
	return "", common.NewError(common.ErrInvalidVideoReference, "resolve video", "", nil)
}

// IsValidID reports whether s is exactly 11 characters from [A-Za-z0-9_-].
func IsValidID(s string) bool {
	if len(s) != IDLength {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9', c == '_', c == '-':
		default:
			return false
		}
	}
	return true
}

// WatchURL is the canonical watch page for id.
func WatchURL(id string) string {
	return "https://www.youtube.com/watch?v=" + strings.TrimSpace(id)
}
