package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config is the process-wide configuration. It is built once at startup and
// handed to constructors; nothing mutates it afterwards.
type Config struct {
	Port         string
	DatabasePath string

	YouTubeAPIKey          string
	YouTubeCredentialsFile string

	OllamaURL   string
	OllamaModel string

	YTDLPPath     string
	FFmpegPath    string
	WhisperPath   string
	WhisperModel  string
	WhisperDevice string

	AudioDir      string
	SweepSchedule string
	AudioMaxAge   time.Duration

	GmailCredentialsFile string
	GmailTokenFile       string

	KafkaBrokers      []string
	KafkaRequestTopic string
	KafkaResultTopic  string
	KafkaGroupID      string

	LogLevel  string
	LogFormat string
}

// Load reads .env if present (non-fatal if missing) and then the environment.
func Load() Config {
	_ = godotenv.Load()
	return FromEnv()
}

// FromEnv builds a Config from the current environment only.
func FromEnv() Config {
	return Config{
		Port:         getEnvOrDefault("PORT", "5000"),
		DatabasePath: getEnvOrDefault("DATABASE_PATH", "widviz.db"),

		YouTubeAPIKey:          os.Getenv("YOUTUBE_API_KEY"),
		YouTubeCredentialsFile: os.Getenv("YOUTUBE_CREDENTIALS_FILE"),

		OllamaURL:   strings.TrimRight(getEnvOrDefault("OLLAMA_URL", DefaultOllamaURL), "/"),
		OllamaModel: getEnvOrDefault("OLLAMA_MODEL", DefaultOllamaModel),

		YTDLPPath:     getEnvOrDefault("YTDLP_PATH", "yt-dlp"),
		FFmpegPath:    getEnvOrDefault("FFMPEG_PATH", "ffmpeg"),
		WhisperPath:   getEnvOrDefault("WHISPER_PATH", "whisper"),
		WhisperModel:  getEnvOrDefault("WHISPER_MODEL", DefaultWhisperModel),
		WhisperDevice: strings.ToLower(getEnvOrDefault("WHISPER_DEVICE", "auto")),

		AudioDir:      getEnvOrDefault("AUDIO_DIR", os.TempDir()),
		SweepSchedule: getEnvOrDefault("AUDIO_SWEEP_SCHEDULE", DefaultSweepSchedule),
		AudioMaxAge:   getEnvDurationOrDefault("AUDIO_MAX_AGE", DefaultAudioMaxAge),

		GmailCredentialsFile: os.Getenv("GMAIL_CREDENTIALS_FILE"),
		GmailTokenFile:       getEnvOrDefault("GMAIL_TOKEN_FILE", "token.json"),

		KafkaBrokers:      getEnvListOrDefault("KAFKA_BOOTSTRAP_SERVERS", "localhost:9093"),
		KafkaRequestTopic: getEnvOrDefault("KAFKA_TOPIC_STUDY_REQUESTS", "study-requests"),
		KafkaResultTopic:  getEnvOrDefault("KAFKA_TOPIC_STUDY_RESULTS", "study-results"),
		KafkaGroupID:      getEnvOrDefault("KAFKA_CONSUMER_GROUP_ID", "widviz-study-worker"),

		LogLevel:  getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat: getEnvOrDefault("LOG_FORMAT", "text"),
	}
}

func getEnvOrDefault(key, defaultVal string) string {
	if val := strings.TrimSpace(os.Getenv(key)); val != "" {
		return val
	}
	return defaultVal
}

func getEnvDurationOrDefault(key string, defaultVal time.Duration) time.Duration {
	val := strings.TrimSpace(os.Getenv(key))
	if val == "" {
		return defaultVal
	}
	if d, err := time.ParseDuration(val); err == nil && d > 0 {
		return d
	}
	if secs, err := strconv.Atoi(val); err == nil && secs > 0 {
		return time.Duration(secs) * time.Second
	}
	return defaultVal
}

func getEnvListOrDefault(key, defaultVal string) []string {
	raw := getEnvOrDefault(key, defaultVal)
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
