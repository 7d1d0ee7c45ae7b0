package store

import (
	"context"
	"fmt"
	"strings"
	"time"

	"widviz/types"
)

// GoalsForMonth returns the goals of email dated within year/month.
func (s *Store) GoalsForMonth(ctx context.Context, email string, year int, month time.Month) ([]types.Goal, error) {
	if month < time.January || month > time.December {
		return nil, fmt.Errorf("%w: month %d", ErrInvalidDate, month)
	}
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	next := first.AddDate(0, 1, 0)

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, goal_text, goal_date, status FROM goals
		WHERE email = ? AND goal_date >= ? AND goal_date < ?
		ORDER BY goal_date, id`,
		normalizeEmail(email), first.Format(dateLayout), next.Format(dateLayout))
	if err != nil {
		return nil, fmt.Errorf("list goals: %w", err)
	}
	defer rows.Close()

	goals := make([]types.Goal, 0)
	for rows.Next() {
		var g types.Goal
		if err := rows.Scan(&g.ID, &g.GoalText, &g.GoalDate, &g.Status); err != nil {
			return nil, fmt.Errorf("scan goal: %w", err)
		}
		goals = append(goals, g)
	}
	return goals, rows.Err()
}

// AddGoal stores a pending goal dated goalDate (YYYY-MM-DD). Dates before
// today are rejected with ErrPastDate.
func (s *Store) AddGoal(ctx context.Context, email, text, goalDate string) (int64, error) {
	day, err := time.Parse(dateLayout, strings.TrimSpace(goalDate))
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidDate, goalDate)
	}
	if day.Format(dateLayout) < s.now().Format(dateLayout) {
		return 0, ErrPastDate
	}

	res, err := s.db.ExecContext(ctx,
		`INSERT INTO goals (email, goal_text, goal_date, status) VALUES (?, ?, ?, ?)`,
		normalizeEmail(email), strings.TrimSpace(text), day.Format(dateLayout), types.GoalPending)
	if err != nil {
		return 0, fmt.Errorf("insert goal: %w", err)
	}
	return res.LastInsertId()
}

// CompleteGoal marks goal id completed.
func (s *Store) CompleteGoal(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `UPDATE goals SET status = ? WHERE id = ?`, types.GoalCompleted, id)
	if err != nil {
		return fmt.Errorf("complete goal: %w", err)
	}
	return affectedOne(res)
}

func (s *Store) DeleteGoal(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM goals WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete goal: %w", err)
	}
	return affectedOne(res)
}

// BuildCalendar lays out month as Monday-first weeks, padding with days of
// the adjacent months, and attaches goals to their dates.
func BuildCalendar(year int, month time.Month, today time.Time, goals []types.Goal) [][]types.CalendarDay {
	byDate := make(map[string][]types.Goal, len(goals))
	for _, g := range goals {
		byDate[g.GoalDate] = append(byDate[g.GoalDate], g)
	}

	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	last := first.AddDate(0, 1, -1)
	start := first.AddDate(0, 0, -mondayOffset(first.Weekday()))
	end := last.AddDate(0, 0, 6-mondayOffset(last.Weekday()))
	todayStr := today.Format(dateLayout)

	weeks := make([][]types.CalendarDay, 0, 6)
	week := make([]types.CalendarDay, 0, 7)
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		full := d.Format(dateLayout)
		dayGoals := byDate[full]
		if dayGoals == nil {
			dayGoals = []types.Goal{}
		}
		week = append(week, types.CalendarDay{
			Date:           d.Day(),
			FullDate:       full,
			Today:          full == todayStr,
			InCurrentMonth: d.Month() == month,
			Goals:          dayGoals,
		})
		if len(week) == 7 {
			weeks = append(weeks, week)
			week = make([]types.CalendarDay, 0, 7)
		}
	}
	return weeks
}

// mondayOffset is the number of days since the preceding Monday.
func mondayOffset(w time.Weekday) int {
	return (int(w) + 6) % 7
}
