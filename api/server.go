package api

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"

	"widviz/mail"
	"widviz/study"
	"widviz/types"
)

// StudyService is the video-to-study-material pipeline.
type StudyService interface {
	Summarize(ctx context.Context, rawVideo string) (study.Material, error)
	Quiz(ctx context.Context, transcript string) ([]types.QuizQuestion, error)
}

// VideoSearcher finds videos by free-text query.
type VideoSearcher interface {
	Search(ctx context.Context, query string, maxResults int64) ([]types.VideoSearchResult, error)
}

// AccountStore persists users and password reset codes.
type AccountStore interface {
	CreateUser(ctx context.Context, username, email, password string) error
	Authenticate(ctx context.Context, email, password string) (types.User, error)
	IssueOTP(ctx context.Context, email string) (string, error)
	VerifyOTP(ctx context.Context, email, otp string) error
	ResetPassword(ctx context.Context, email, otp, password string) error
}

// NoteStore persists study notes.
type NoteStore interface {
	ListNotes(ctx context.Context, email string) ([]types.Note, error)
	AddNote(ctx context.Context, email, title, content string) (int64, error)
	EditNote(ctx context.Context, id int64, title, content string) error
	DeleteNote(ctx context.Context, id int64) error
}

// GoalStore persists dated goals.
type GoalStore interface {
	GoalsForMonth(ctx context.Context, email string, year int, month time.Month) ([]types.Goal, error)
	AddGoal(ctx context.Context, email, text, goalDate string) (int64, error)
	CompleteGoal(ctx context.Context, id int64) error
	DeleteGoal(ctx context.Context, id int64) error
}

// Deps are the collaborators behind the HTTP API. Nil Search disables the
// search endpoint; nil Health reports healthy unconditionally.
type Deps struct {
	Study    StudyService
	Search   VideoSearcher
	Accounts AccountStore
	Notes    NoteStore
	Goals    GoalStore
	Mailer   mail.Mailer
	Health   func(ctx context.Context) error
	Now      func() time.Time
}

// NewRouter constructs a Gin engine with registered routes.
func NewRouter(deps Deps) *gin.Engine {
	if deps.Now == nil {
		deps.Now = time.Now
	}
	if deps.Mailer == nil {
		deps.Mailer = mail.LogMailer{}
	}

	r := gin.New()
	r.Use(gin.Recovery(), requestLogger(), allowCORS())

	RegisterHealthRoutes(r, deps.Health)
	RegisterVideoRoutes(r, &videoController{study: deps.Study, search: deps.Search})
	RegisterAccountRoutes(r, &accountController{accounts: deps.Accounts, mailer: deps.Mailer})
	RegisterNoteRoutes(r, &noteController{notes: deps.Notes})
	RegisterGoalRoutes(r, &goalController{goals: deps.Goals, now: deps.Now})
	return r
}
