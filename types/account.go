package types

import "time"

// User is an account row. PasswordHash never leaves the store package in
// responses.
type User struct {
	ID           int64     `json:"-"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"-"`
}

// Note is a user's free-form study note.
type Note struct {
	ID        int64  `json:"id"`
	Title     string `json:"title"`
	Content   string `json:"content"`
	CreatedAt string `json:"created_at"`
}

// Goal statuses
const (
	GoalPending   = "pending"
	GoalCompleted = "completed"
)

// Goal is a dated study goal.
type Goal struct {
	ID       int64  `json:"id"`
	GoalText string `json:"goal_text"`
	GoalDate string `json:"goal_date"`
	Status   string `json:"status"`
}

// CalendarDay is one cell of the goals calendar.
type CalendarDay struct {
	Date           int    `json:"date"`
	FullDate       string `json:"full_date"`
	Today          bool   `json:"today"`
	InCurrentMonth bool   `json:"in_current_month"`
	Goals          []Goal `json:"goals"`
}
