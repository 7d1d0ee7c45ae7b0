package transcript

import (
	"context"
	"log/slog"
)

// Source tags where a transcript came from.
type Source string

const (
	SourceCaptions Source = "captions"
	SourceSpeech   Source = "speech"
)

// Transcript is the text of one video plus its origin.
type Transcript struct {
	Text   string
	Source Source
}

// Captions finds existing caption text for a video.
type Captions interface {
	Fetch(ctx context.Context, videoID string) (string, bool, error)
}

// AudioAcquirer downloads a video's audio to a local file.
type AudioAcquirer interface {
	Acquire(ctx context.Context, videoID string) (*AudioAsset, error)
}

// SpeechToText recognizes speech in a local audio file.
type SpeechToText interface {
	Transcribe(ctx context.Context, path string) (string, error)
}

// Pipeline prefers captions and falls back to downloading and transcribing
// the audio track.
type Pipeline struct {
	captions Captions
	audio    AudioAcquirer
	speech   SpeechToText
}

// NewPipeline wires the three transcript stages.
func NewPipeline(captions Captions, audio AudioAcquirer, speech SpeechToText) *Pipeline {
	return &Pipeline{captions: captions, audio: audio, speech: speech}
}

// Transcript returns the transcript for videoID. Caption lookup failures are
// logged and treated as missing captions. Errors from the audio fallback are
// returned unchanged. No audio file outlives this call.
func (p *Pipeline) Transcript(ctx context.Context, videoID string) (Transcript, error) {
	if p.captions != nil {
		text, found, err := p.captions.Fetch(ctx, videoID)
		switch {
		case err != nil:
			slog.Warn("caption lookup failed, falling back to speech", "video_id", videoID, "error", err)
		case found && text != "":
			slog.Info("transcript from captions", "video_id", videoID, "chars", len(text))
			return Transcript{Text: text, Source: SourceCaptions}, nil
		default:
			slog.Info("no captions available, falling back to speech", "video_id", videoID)
		}
	}

	asset, err := p.audio.Acquire(ctx, videoID)
	if err != nil {
		return Transcript{}, err
	}
	defer asset.Release()

	text, err := p.speech.Transcribe(ctx, asset.Path)
	if err != nil {
		return Transcript{}, err
	}
	return Transcript{Text: text, Source: SourceSpeech}, nil
}
