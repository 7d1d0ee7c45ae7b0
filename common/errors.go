package common

import (
	"errors"
	"fmt"
	"strings"
)

// Failure kinds surfaced by the video-to-quiz pipeline. Every one of them is
// terminal for the current request.
var (
	ErrInvalidVideoReference = errors.New("invalid video reference")
	ErrToolMissing           = errors.New("tool missing")
	ErrDownloadTimeout       = errors.New("download timeout")
	ErrDownloadFailed        = errors.New("download failed")
	ErrOutputMissing         = errors.New("output missing")
	ErrTranscriptionFailed   = errors.New("transcription failed")
	ErrServiceUnavailable    = errors.New("service unavailable")
	ErrGenerationTimeout     = errors.New("generation timeout")
	ErrGenerationFailed      = errors.New("generation failed")
)

// Error tags a failure with one of the kinds above. Detail carries
// diagnostic text such as tool stderr or a response body; Err is the
// underlying cause. Both are logged, neither is returned to callers.
type Error struct {
	Kind   error
	Op     string
	Detail string
	Err    error
}

// NewError builds an Error tagged with kind.
func NewError(kind error, op, detail string, err error) *Error {
	return &Error{Kind: kind, Op: strings.TrimSpace(op), Detail: strings.TrimSpace(detail), Err: err}
}

func (e *Error) Error() string {
	parts := make([]string, 0, 4)
	if e.Op != "" {
		parts = append(parts, e.Op)
	}
	if e.Kind != nil {
		parts = append(parts, e.Kind.Error())
	}
	if e.Detail != "" {
		parts = append(parts, e.Detail)
	}
	msg := strings.Join(parts, ": ")
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

// Unwrap exposes both the kind and the cause to errors.Is / errors.As.
func (e *Error) Unwrap() []error {
	out := make([]error, 0, 2)
	if e.Kind != nil {
		out = append(out, e.Kind)
	}
	if e.Err != nil {
		out = append(out, e.Err)
	}
	return out
}

// DetailOf returns the detail of the first *Error in err's chain.
func DetailOf(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Detail
	}
	return ""
}

// Truncate shortens s to at most n runes.
func Truncate(s string, n int) string {
	if n <= 0 {
		return ""
	}
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
