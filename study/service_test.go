package study

import (
	"context"
	"errors"
	"testing"

	"widviz/common"
	"widviz/transcript"
)

type fakeTranscriber struct {
	text   string
	err    error
	gotIDs []string
}

func (f *fakeTranscriber) Transcript(_ context.Context, id string) (transcript.Transcript, error) {
	f.gotIDs = append(f.gotIDs, id)
	if f.err != nil {
		return transcript.Transcript{}, f.err
	}
	return transcript.Transcript{Text: f.text, Source: transcript.SourceCaptions}, nil
}

type fakeGenerator struct {
	summary string
	quiz    string
	quizErr error
}

func (f *fakeGenerator) Summarize(context.Context, string) string { return f.summary }

func (f *fakeGenerator) QuizText(context.Context, string) (string, error) {
	return f.quiz, f.quizErr
}

func TestSummarizeResolvesURL(t *testing.T) {
	tr := &fakeTranscriber{text: "never gonna give you up"}
	svc := NewService(tr, &fakeGenerator{summary: "a<br>• b"})

	m, err := svc.Summarize(context.Background(), "https://www.youtube.com/watch?v=dQw4w9WgXcQ")
	if err != nil {
		t.Fatalf("Summarize: %v", err)
	}
	if m.VideoID != "dQw4w9WgXcQ" || m.Transcript != "never gonna give you up" || m.Summary != "a<br>• b" {
		t.Fatalf("unexpected material %+v", m)
	}
	if len(tr.gotIDs) != 1 || tr.gotIDs[0] != "dQw4w9WgXcQ" {
		t.Fatalf("transcriber ids = %v", tr.gotIDs)
	}
}

func TestSummarizeInvalidReference(t *testing.T) {
	tr := &fakeTranscriber{}
	svc := NewService(tr, &fakeGenerator{})

	_, err := svc.Summarize(context.Background(), "not a video")
	if !errors.Is(err, common.ErrInvalidVideoReference) {
		t.Fatalf("expected ErrInvalidVideoReference, got %v", err)
	}
	if len(tr.gotIDs) != 0 {
		t.Fatal("transcriber called for invalid reference")
	}
}

func TestSummarizePropagatesTranscriptErrors(t *testing.T) {
	failure := common.NewError(common.ErrToolMissing, "acquire audio", "", nil)
	svc := NewService(&fakeTranscriber{err: failure}, &fakeGenerator{})

	m, err := svc.Summarize(context.Background(), "dQw4w9WgXcQ")
	if !errors.Is(err, common.ErrToolMissing) {
		t.Fatalf("expected ErrToolMissing, got %v", err)
	}
	if m.VideoID != "dQw4w9WgXcQ" {
		t.Fatalf("video id = %q", m.VideoID)
	}
}

func TestQuizParsesGeneratedText(t *testing.T) {
	raw := "1. What is Go\na) a game\nb) a language\nc) a verb\nd) a city\nAnswer: b) a language\n"
	svc := NewService(&fakeTranscriber{}, &fakeGenerator{quiz: raw})

	questions, err := svc.Quiz(context.Background(), "transcript")
	if err != nil {
		t.Fatalf("Quiz: %v", err)
	}
	if len(questions) != 1 || questions[0].Question != "What is Go?" || questions[0].Answer != "b) a language" {
		t.Fatalf("unexpected quiz %+v", questions)
	}
}

func TestQuizFailure(t *testing.T) {
	failure := common.NewError(common.ErrServiceUnavailable, "probe", "", nil)
	svc := NewService(&fakeTranscriber{}, &fakeGenerator{quizErr: failure})

	if _, err := svc.Quiz(context.Background(), "transcript"); !errors.Is(err, common.ErrServiceUnavailable) {
		t.Fatalf("expected ErrServiceUnavailable, got %v", err)
	}
}
