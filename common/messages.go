package common

import "errors"

var userMessages = []struct {
	kind error
	msg  string
}{
	{ErrInvalidVideoReference, "Invalid YouTube video ID or URL."},
	{ErrToolMissing, "yt-dlp is not installed. Install it to transcribe videos without captions."},
	{ErrDownloadTimeout, "Audio download timed out."},
	{ErrDownloadFailed, "Failed to download audio for this video."},
	{ErrOutputMissing, "Audio download finished but no audio file was produced."},
	{ErrTranscriptionFailed, "Speech transcription failed."},
	{ErrServiceUnavailable, "Could not connect to the text generation service. Please make sure it is running."},
	{ErrGenerationTimeout, "Text generation timed out."},
	{ErrGenerationFailed, "Text generation failed."},
}

// UserMessage is the text shown to API and queue consumers for err. It never
// includes wrapped causes.
func UserMessage(err error) string {
	for _, m := range userMessages {
		if errors.Is(err, m.kind) {
			return m.msg
		}
	}
	return "An unexpected error occurred."
}
