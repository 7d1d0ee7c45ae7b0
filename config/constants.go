package config

import "time"

// Audio acquisition constants
const (
	// DownloadTimeout is the wall-clock budget for one yt-dlp invocation
	DownloadTimeout = 5 * time.Minute

	// MaxDownloadSize is passed to yt-dlp as --max-filesize
	MaxDownloadSize = "100M"

	// AudioFormat is the container yt-dlp extracts audio into
	AudioFormat = "wav"

	// AudioFilePrefix prefixes every temporary audio file
	AudioFilePrefix = "temp_"

	// DiagnosticLimit caps how much downloader stderr is carried in errors
	DiagnosticLimit = 500
)

// Speech-to-text constants
const (
	// DefaultWhisperModel is the fastest tier that is still usable for lectures
	DefaultWhisperModel = "base"

	// SpeechSampleRate is the sample rate audio is normalized to before inference
	SpeechSampleRate = 16000
)

// Generative service constants
const (
	// ProbeTimeout bounds the liveness probe
	ProbeTimeout = 5 * time.Second

	// GenerationTimeout bounds a single generate call
	GenerationTimeout = 60 * time.Second

	// SummaryInputLimit is the transcript character budget for summaries
	SummaryInputLimit = 9000

	// QuizInputLimit is the transcript character budget for quizzes
	QuizInputLimit = 7000

	// QuizQuestionCount is how many questions the quiz prompt asks for
	QuizQuestionCount = 5

	// DefaultOllamaURL is used when OLLAMA_URL is unset
	DefaultOllamaURL = "http://localhost:11434"

	// DefaultOllamaModel is used when OLLAMA_MODEL is unset
	DefaultOllamaModel = "mistral"
)

// Janitor constants
const (
	// DefaultSweepSchedule is the cron spec for the temp audio sweeper
	DefaultSweepSchedule = "@every 15m"

	// DefaultAudioMaxAge is how old a leftover audio file must be before it is swept
	DefaultAudioMaxAge = 30 * time.Minute
)

// Account constants
const (
	// OTPLifetime is how long a password reset code stays valid
	OTPLifetime = 10 * time.Minute
)

// Search constants
const (
	// DefaultSearchResults is used when a search request omits max_results
	DefaultSearchResults = 10

	// MaxSearchResults is the Data API ceiling for search.list
	MaxSearchResults = 50
)
