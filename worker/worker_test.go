package worker

import (
	"context"
	"errors"
	"testing"

	"widviz/common"
	"widviz/study"
	"widviz/types"
)

type fakeStudy struct {
	material study.Material
	err      error
	quiz     []types.QuizQuestion
	quizErr  error
	quizzed  int
}

func (f *fakeStudy) Summarize(context.Context, string) (study.Material, error) {
	return f.material, f.err
}

func (f *fakeStudy) Quiz(context.Context, string) ([]types.QuizQuestion, error) {
	f.quizzed++
	return f.quiz, f.quizErr
}

type published struct {
	key string
	res types.StudyResult
}

type fakePublisher struct {
	sent []published
	err  error
}

func (f *fakePublisher) Publish(key string, v any) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, published{key: key, res: v.(types.StudyResult)})
	return nil
}

func TestProcessSuccessWithQuiz(t *testing.T) {
	svc := &fakeStudy{
		material: study.Material{VideoID: "dQw4w9WgXcQ", Transcript: "text", Summary: "sum"},
		quiz:     []types.QuizQuestion{{Question: "Q?", Options: []string{"a) x"}, Answer: "a) x"}},
	}
	pub := &fakePublisher{}
	w := New(svc, pub)

	req := &types.StudyRequest{RequestID: "req-1", VideoID: "https://youtu.be/dQw4w9WgXcQ", IncludeQuiz: true}
	if err := w.Process(context.Background(), req); err != nil {
		t.Fatalf("Process: %v", err)
	}
	if len(pub.sent) != 1 {
		t.Fatalf("published %d results", len(pub.sent))
	}
	got := pub.sent[0]
	if got.key != "req-1" || !got.res.Success || got.res.VideoID != "dQw4w9WgXcQ" || len(got.res.Quiz) != 1 {
		t.Fatalf("unexpected result %+v", got)
	}
}

func TestProcessFailureIsPublished(t *testing.T) {
	svc := &fakeStudy{err: common.NewError(common.ErrInvalidVideoReference, "resolve video", "", nil)}
	pub := &fakePublisher{}
	w := New(svc, pub)

	req := &types.StudyRequest{VideoID: "nope", IncludeQuiz: true}
	if err := w.Process(context.Background(), req); err != nil {
		t.Fatalf("Process: %v", err)
	}
	got := pub.sent[0].res
	if got.Success || got.Message != "Invalid YouTube video ID or URL." {
		t.Fatalf("unexpected result %+v", got)
	}
	if got.RequestID == "" || pub.sent[0].key != got.RequestID {
		t.Fatalf("expected generated request id, got %+v", pub.sent[0])
	}
	if svc.quizzed != 0 {
		t.Fatal("quiz attempted after failed summary")
	}
}

func TestProcessQuizFailure(t *testing.T) {
	svc := &fakeStudy{
		material: study.Material{VideoID: "dQw4w9WgXcQ", Transcript: "text", Summary: "sum"},
		quizErr:  common.NewError(common.ErrGenerationTimeout, "generate text", "", nil),
	}
	pub := &fakePublisher{}
	if err := New(svc, pub).Process(context.Background(), &types.StudyRequest{RequestID: "r", VideoID: "dQw4w9WgXcQ", IncludeQuiz: true}); err != nil {
		t.Fatalf("Process: %v", err)
	}
	got := pub.sent[0].res
	if got.Success || got.Message != "Text generation timed out." || got.Summary != "sum" {
		t.Fatalf("unexpected result %+v", got)
	}
}

func TestHandlerMarksEveryMessage(t *testing.T) {
	pubErr := errors.New("broker down")
	w := New(&fakeStudy{material: study.Material{VideoID: "dQw4w9WgXcQ"}}, &fakePublisher{err: pubErr})
	h := w.Handler()

	for _, msg := range []string{`{"video_id":"dQw4w9WgXcQ"}`, `{"video_id":""}`, `not json`} {
		mark, _ := h.HandleMessage(context.Background(), []byte(msg))
		if !mark {
			t.Fatalf("message %q not marked", msg)
		}
	}
}
