package transcript

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	ffmpeg "github.com/u2takey/ffmpeg-go"

	"widviz/common"
	"widviz/config"
)

// Whisper devices
const (
	DeviceAuto = "auto"
	DeviceCUDA = "cuda"
	DeviceCPU  = "cpu"
)

// SpeechTranscriber runs the openai-whisper CLI over a local audio file.
// Input is first normalized to 16 kHz mono PCM with ffmpeg.
type SpeechTranscriber struct {
	whisper string
	ffmpeg  string
	model   string
	device  string
}

// NewSpeechTranscriber configures a transcriber from cfg.
func NewSpeechTranscriber(cfg config.Config) *SpeechTranscriber {
	return &SpeechTranscriber{
		whisper: cfg.WhisperPath,
		ffmpeg:  cfg.FFmpegPath,
		model:   cfg.WhisperModel,
		device:  resolveDevice(cfg.WhisperDevice),
	}
}

// Device is the compute device passed to whisper.
func (s *SpeechTranscriber) Device() string { return s.device }

func resolveDevice(requested string) string {
	switch requested {
	case DeviceCUDA, DeviceCPU:
		return requested
	}
	if _, err := exec.LookPath("nvidia-smi"); err == nil {
		return DeviceCUDA
	}
	return DeviceCPU
}

// Transcribe returns the recognised text of the audio at path. Every failure
// is reported as common.ErrTranscriptionFailed.
func (s *SpeechTranscriber) Transcribe(ctx context.Context, path string) (string, error) {
	const op = "transcribe audio"

	normalized, err := s.normalize(ctx, path)
	if err != nil {
		return "", common.NewError(common.ErrTranscriptionFailed, op, "audio normalization failed", err)
	}
	defer removeAudio(normalized)

	outDir, err := os.MkdirTemp("", "widviz-whisper-*")
	if err != nil {
		return "", common.NewError(common.ErrTranscriptionFailed, op, "", err)
	}
	defer os.RemoveAll(outDir)

	start := time.Now()
	var stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, s.whisper, normalized,
		"--model", s.model,
		"--device", s.device,
		"--output_format", "txt",
		"--output_dir", outDir,
	)
	cmd.Stderr = &stderr
	cmd.WaitDelay = 2 * time.Second
	if err := cmd.Run(); err != nil {
		diag := common.Truncate(stderr.String(), config.DiagnosticLimit)
		return "", common.NewError(common.ErrTranscriptionFailed, op, diag, err)
	}

	base := strings.TrimSuffix(filepath.Base(normalized), filepath.Ext(normalized))
	data, err := os.ReadFile(filepath.Join(outDir, base+".txt"))
	if err != nil {
		return "", common.NewError(common.ErrTranscriptionFailed, op, "whisper produced no transcript", err)
	}

	text := strings.TrimSpace(string(data))
	slog.Info("speech transcription complete",
		"model", s.model,
		"device", s.device,
		"chars", len(text),
		"elapsed", time.Since(start).Round(time.Millisecond))
	return text, nil
}

func (s *SpeechTranscriber) normalize(ctx context.Context, src string) (string, error) {
	dst := strings.TrimSuffix(src, filepath.Ext(src)) + "_16k.wav"
	args := ffmpeg.Input(src).
		Output(dst, ffmpeg.KwArgs{
			"ac":     1,
			"ar":     strconv.Itoa(config.SpeechSampleRate),
			"acodec": "pcm_s16le",
		}).
		OverWriteOutput().
		GetArgs()

	var stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, s.ffmpeg, args...)
	cmd.Stderr = &stderr
	cmd.WaitDelay = 2 * time.Second
	if err := cmd.Run(); err != nil {
		removeAudio(dst)
		return "", fmt.Errorf("ffmpeg: %w: %s", err, common.Truncate(stderr.String(), config.DiagnosticLimit))
	}
	if _, err := os.Stat(dst); err != nil {
		return "", fmt.Errorf("ffmpeg output missing: %w", err)
	}
	return dst, nil
}
