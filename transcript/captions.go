// Package transcript produces plain-text transcripts for videos, preferring
// platform captions and falling back to local speech recognition.
package transcript

import (
	"context"
	"log/slog"
)

// CaptionAPI is the slice of the video platform used for captions.
type CaptionAPI interface {
	ListCaptionTracks(ctx context.Context, videoID string) ([]string, error)
	DownloadSRT(ctx context.Context, trackID string) (string, error)
}

// CaptionSource fetches the first caption track of a video as plain text.
type CaptionSource struct {
	api CaptionAPI
}

// NewCaptionSource returns a source backed by api. A nil api never finds
// captions.
func NewCaptionSource(api CaptionAPI) *CaptionSource {
	return &CaptionSource{api: api}
}

// Fetch reports found=false with a nil error when the video has no caption
// tracks. A non-nil error means the platform call itself failed.
func (c *CaptionSource) Fetch(ctx context.Context, videoID string) (string, bool, error) {
	if c == nil || c.api == nil {
		return "", false, nil
	}

	tracks, err := c.api.ListCaptionTracks(ctx, videoID)
	if err != nil {
		return "", false, err
	}
	if len(tracks) == 0 {
		return "", false, nil
	}

	slog.Debug("downloading caption track", "video_id", videoID, "track_id", tracks[0], "tracks", len(tracks))
	srt, err := c.api.DownloadSRT(ctx, tracks[0])
	if err != nil {
		return "", false, err
	}
	text := StripSRT(srt)
	return text, text != "", nil
}
