// Package worker consumes study requests from Kafka and publishes results.
package worker

import (
	"context"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"widviz/common"
	"widviz/shared/kafka"
	"widviz/study"
	"widviz/types"
)

// StudyService is the subset of study.Service the worker uses.
type StudyService interface {
	Summarize(ctx context.Context, rawVideo string) (study.Material, error)
	Quiz(ctx context.Context, transcript string) ([]types.QuizQuestion, error)
}

// ResultPublisher sends a keyed JSON message.
type ResultPublisher interface {
	Publish(key string, v any) error
}

type Worker struct {
	study     StudyService
	publisher ResultPublisher
}

func New(svc StudyService, publisher ResultPublisher) *Worker {
	return &Worker{study: svc, publisher: publisher}
}

// Handler adapts the worker to the Kafka consumer. Every message is marked
// after a single attempt.
func (w *Worker) Handler() *kafka.TypedMessageHandler[types.StudyRequest] {
	return &kafka.TypedMessageHandler[types.StudyRequest]{
		Validate: func(req *types.StudyRequest) bool {
			if strings.TrimSpace(req.VideoID) == "" {
				slog.Warn("study request without video_id, skipping", "request_id", req.RequestID)
				return false
			}
			return true
		},
		Process:       w.Process,
		MarkOnFailure: true,
	}
}

// Process runs one request and publishes its result. Pipeline failures are
// reported in the result; only a publish failure is returned.
func (w *Worker) Process(ctx context.Context, req *types.StudyRequest) error {
	if req.RequestID == "" {
		req.RequestID = uuid.NewString()
	}
	result := w.run(ctx, req)

	if err := w.publisher.Publish(result.RequestID, result); err != nil {
		slog.Error("failed to publish study result", "request_id", result.RequestID, "error", err)
		return err
	}
	slog.Info("study result published",
		"request_id", result.RequestID,
		"video_id", result.VideoID,
		"success", result.Success)
	return nil
}

func (w *Worker) run(ctx context.Context, req *types.StudyRequest) types.StudyResult {
	result := types.StudyResult{RequestID: req.RequestID, VideoID: req.VideoID}

	material, err := w.study.Summarize(ctx, req.VideoID)
	if material.VideoID != "" {
		result.VideoID = material.VideoID
	}
	if err != nil {
		slog.Error("study request failed", "request_id", req.RequestID, "video", req.VideoID, "error", err)
		result.Message = common.UserMessage(err)
		return result
	}
	result.Transcript = material.Transcript
	result.Summary = material.Summary

	if req.IncludeQuiz {
		questions, err := w.study.Quiz(ctx, material.Transcript)
		if err != nil {
			slog.Error("quiz generation failed", "request_id", req.RequestID, "error", err)
			result.Message = common.UserMessage(err)
			return result
		}
		result.Quiz = questions
	}

	result.Success = true
	return result
}
