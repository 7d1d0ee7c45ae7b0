package main

import (
	"context"
	"fmt"
	"log/slog"

	"widviz/config"
	"widviz/generation"
	"widviz/study"
	"widviz/transcript"
	"widviz/youtube"
)

// app holds the components shared by every subcommand.
type app struct {
	cfg     config.Config
	youtube *youtube.Client
	study   *study.Service
}

func newApp(ctx context.Context, cfg config.Config) (*app, error) {
	a := &app{cfg: cfg}

	if cfg.YouTubeAPIKey != "" || cfg.YouTubeCredentialsFile != "" {
		yt, err := youtube.NewClient(ctx, youtube.Config{
			APIKey:          cfg.YouTubeAPIKey,
			CredentialsFile: cfg.YouTubeCredentialsFile,
		})
		if err != nil {
			return nil, fmt.Errorf("youtube client: %w", err)
		}
		a.youtube = yt
	} else {
		slog.Warn("no YouTube credentials configured; captions and search disabled")
	}

	var captionAPI transcript.CaptionAPI
	if a.youtube != nil {
		captionAPI = a.youtube
	}
	speech := transcript.NewSpeechTranscriber(cfg)
	slog.Info("speech transcriber configured", "model", cfg.WhisperModel, "device", speech.Device())

	pipeline := transcript.NewPipeline(
		transcript.NewCaptionSource(captionAPI),
		transcript.NewDownloader(cfg),
		speech,
	)
	generator := generation.NewClient(cfg.OllamaURL, cfg.OllamaModel)
	a.study = study.NewService(pipeline, generator)
	return a, nil
}
