package api

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"widviz/store"
)

// RegisterGoalRoutes registers the goals calendar and goal CRUD.
func RegisterGoalRoutes(r *gin.Engine, h *goalController) {
	g := r.Group("/api/goals")
	g.GET("", h.calendar)
	g.POST("/add", h.add)
	g.POST("/complete", h.complete)
	g.POST("/delete", h.remove)
}

type goalController struct {
	goals GoalStore
	now   func() time.Time
}

type goalRequest struct {
	ID       int64  `json:"id"`
	Email    string `json:"email"`
	GoalText string `json:"goal_text"`
	GoalDate string `json:"goal_date"`
}

func (h *goalController) calendar(c *gin.Context) {
	email := strings.TrimSpace(c.Query("email"))
	if email == "" {
		respondFail(c, http.StatusBadRequest, "Email is required.")
		return
	}

	today := h.now()
	month, ok := intQuery(c, "month", int(today.Month()))
	if !ok || month < 1 || month > 12 {
		respondFail(c, http.StatusBadRequest, "Invalid month.")
		return
	}
	year, ok := intQuery(c, "year", today.Year())
	if !ok || year < 1 {
		respondFail(c, http.StatusBadRequest, "Invalid year.")
		return
	}

	goals, err := h.goals.GoalsForMonth(c.Request.Context(), email, year, time.Month(month))
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, gin.H{
		"calendar_weeks":     store.BuildCalendar(year, time.Month(month), today, goals),
		"current_month":      month,
		"current_year":       year,
		"current_month_name": time.Month(month).String(),
	})
}

func (h *goalController) add(c *gin.Context) {
	var req goalRequest
	if !bindJSON(c, &req) {
		return
	}
	if blank(req.Email, req.GoalText, req.GoalDate) {
		respondFail(c, http.StatusBadRequest, "Email, goal text, and date are required.")
		return
	}
	id, err := h.goals.AddGoal(c.Request.Context(), req.Email, req.GoalText, req.GoalDate)
	switch {
	case errors.Is(err, store.ErrPastDate):
		respondFail(c, http.StatusBadRequest, "You cannot add goals for past dates!")
		return
	case errors.Is(err, store.ErrInvalidDate):
		respondFail(c, http.StatusBadRequest, "Goal date must be YYYY-MM-DD.")
		return
	case err != nil:
		respondError(c, err)
		return
	}
	respondOK(c, gin.H{"message": "Goal added successfully.", "id": id})
}

func (h *goalController) complete(c *gin.Context) {
	id, ok := h.goalID(c)
	if !ok {
		return
	}
	if err := h.goals.CompleteGoal(c.Request.Context(), id); err != nil {
		notFoundOr(c, err, "Goal not found.")
		return
	}
	respondOK(c, gin.H{"message": "Goal marked as completed."})
}

func (h *goalController) remove(c *gin.Context) {
	id, ok := h.goalID(c)
	if !ok {
		return
	}
	if err := h.goals.DeleteGoal(c.Request.Context(), id); err != nil {
		notFoundOr(c, err, "Goal not found.")
		return
	}
	respondOK(c, gin.H{"message": "Goal deleted successfully."})
}

func (h *goalController) goalID(c *gin.Context) (int64, bool) {
	var req goalRequest
	if !bindJSON(c, &req) {
		return 0, false
	}
	if req.ID <= 0 {
		respondFail(c, http.StatusBadRequest, "Goal ID is required.")
		return 0, false
	}
	return req.ID, true
}

func intQuery(c *gin.Context, key string, fallback int) (int, bool) {
	raw := strings.TrimSpace(c.Query(key))
	if raw == "" {
		return fallback, true
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}
	return n, true
}
