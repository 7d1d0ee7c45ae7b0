package config

import (
	"reflect"
	"testing"
	"time"
)

func TestFromEnvDefaults(t *testing.T) {
	for _, key := range []string{"PORT", "OLLAMA_URL", "OLLAMA_MODEL", "WHISPER_MODEL", "AUDIO_MAX_AGE", "KAFKA_BOOTSTRAP_SERVERS"} {
		t.Setenv(key, "")
	}

	cfg := FromEnv()
	if cfg.Port != "5000" {
		t.Fatalf("Port = %q", cfg.Port)
	}
	if cfg.OllamaURL != DefaultOllamaURL {
		t.Fatalf("OllamaURL = %q", cfg.OllamaURL)
	}
	if cfg.OllamaModel != DefaultOllamaModel {
		t.Fatalf("OllamaModel = %q", cfg.OllamaModel)
	}
	if cfg.WhisperModel != DefaultWhisperModel {
		t.Fatalf("WhisperModel = %q", cfg.WhisperModel)
	}
	if cfg.AudioMaxAge != DefaultAudioMaxAge {
		t.Fatalf("AudioMaxAge = %v", cfg.AudioMaxAge)
	}
	if !reflect.DeepEqual(cfg.KafkaBrokers, []string{"localhost:9093"}) {
		t.Fatalf("KafkaBrokers = %v", cfg.KafkaBrokers)
	}
}

func TestFromEnvOverrides(t *testing.T) {
	t.Setenv("OLLAMA_URL", "http://ollama:11434/")
	t.Setenv("AUDIO_MAX_AGE", "90")
	t.Setenv("KAFKA_BOOTSTRAP_SERVERS", "a:9092, b:9092,,")
	t.Setenv("WHISPER_DEVICE", "CPU")

	cfg := FromEnv()
	if cfg.OllamaURL != "http://ollama:11434" {
		t.Fatalf("OllamaURL = %q", cfg.OllamaURL)
	}
	if cfg.AudioMaxAge != 90*time.Second {
		t.Fatalf("AudioMaxAge = %v", cfg.AudioMaxAge)
	}
	if !reflect.DeepEqual(cfg.KafkaBrokers, []string{"a:9092", "b:9092"}) {
		t.Fatalf("KafkaBrokers = %v", cfg.KafkaBrokers)
	}
	if cfg.WhisperDevice != "cpu" {
		t.Fatalf("WhisperDevice = %q", cfg.WhisperDevice)
	}
}
