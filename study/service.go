// Package study turns a video reference into study material: transcript,
// summary and quiz.
package study

import (
	"context"
	"log/slog"
	"time"

	"widviz/quiz"
	"widviz/transcript"
	"widviz/types"
	"widviz/videoid"
)

// Transcriber produces the transcript of a resolved video.
type Transcriber interface {
	Transcript(ctx context.Context, videoID string) (transcript.Transcript, error)
}

// Generator is the text generation backend.
type Generator interface {
	Summarize(ctx context.Context, transcript string) string
	QuizText(ctx context.Context, transcript string) (string, error)
}

// Material is the result of summarizing one video.
type Material struct {
	VideoID    string
	Transcript string
	Source     transcript.Source
	Summary    string
}

// Service runs resolve, transcript, summary and quiz steps in order.
type Service struct {
	transcripts Transcriber
	generator   Generator
}

func NewService(transcripts Transcriber, generator Generator) *Service {
	return &Service{transcripts: transcripts, generator: generator}
}

// Transcribe resolves rawVideo and fetches its transcript.
func (s *Service) Transcribe(ctx context.Context, rawVideo string) (string, transcript.Transcript, error) {
	id, err := videoid.Resolve(rawVideo)
	if err != nil {
		return "", transcript.Transcript{}, err
	}
	t, err := s.transcripts.Transcript(ctx, id)
	if err != nil {
		return id, transcript.Transcript{}, err
	}
	return id, t, nil
}

// Summarize resolves rawVideo, transcribes it and summarizes the transcript.
// A failed summary is reported inside Material.Summary, not as an error.
func (s *Service) Summarize(ctx context.Context, rawVideo string) (Material, error) {
	start := time.Now()
	id, t, err := s.Transcribe(ctx, rawVideo)
	if err != nil {
		return Material{VideoID: id}, err
	}

	m := Material{
		VideoID:    id,
		Transcript: t.Text,
		Source:     t.Source,
		Summary:    s.generator.Summarize(ctx, t.Text),
	}
	slog.Info("video summarized",
		"video_id", id,
		"source", t.Source,
		"transcript_chars", len(t.Text),
		"elapsed", time.Since(start).Round(time.Millisecond))
	return m, nil
}

// Quiz generates and parses a multiple-choice quiz for transcriptText.
func (s *Service) Quiz(ctx context.Context, transcriptText string) ([]types.QuizQuestion, error) {
	raw, err := s.generator.QuizText(ctx, transcriptText)
	if err != nil {
		return nil, err
	}
	questions := quiz.Parse(raw)
	slog.Info("quiz generated", "questions", len(questions))
	return questions, nil
}
