// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package habit

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/taibuivan/habitrack/internal/platform/apperr"
	"github.com/taibuivan/habitrack/internal/platform/calendar"
	"github.com/taibuivan/habitrack/internal/platform/metrics"
	"github.com/taibuivan/habitrack/internal/platform/validate"
	"github.com/taibuivan/habitrack/pkg/normalize"
	"github.com/taibuivan/habitrack/pkg/pointer"
	"github.com/taibuivan/habitrack/pkg/uuid"
)

// HabitInput is the payload of create and update requests.
//
// A nil field is "not provided": create applies defaults, update leaves the
// stored value unchanged. An empty description clears it.
type HabitInput struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Color       *string `json:"color"`
}

// Service implements the habit and completion use cases.
type Service struct {
	repository Repository
	calendar   *calendar.Calendar
	metrics    *metrics.Metrics
	logger     *slog.Logger
}

// NewService wires the habit service. metrics may be nil.
func NewService(repository Repository, cal *calendar.Calendar, collector *metrics.Metrics, logger *slog.Logger) *Service {
	return &Service{
		repository: repository,
		calendar:   cal,
		metrics:    collector,
		logger:     logger,
	}
}

// # Habits

/*
CreateHabit validates the input and stores a new habit for the user.

Returns:
  - *HabitView: The new habit with empty stats
  - error: VALIDATION_ERROR or storage failures
*/
func (service *Service) CreateHabit(context context.Context, userID string, input HabitInput) (*HabitView, error) {
	now := service.calendar.Now()
	habit := &Habit{
		ID:        uuid.New(),
		UserID:    userID,
		Title:     normalize.Text(pointer.Val(input.Title)),
		Color:     DefaultColor,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if input.Description != nil {
		habit.Description = pointer.NonEmpty(normalize.Multiline(*input.Description))
	}
	if input.Color != nil {
		habit.Color = normalize.Color(*input.Color)
	}

	if err := validateHabit(habit); err != nil {
		return nil, err
	}

	if err := service.repository.CreateHabit(context, habit); err != nil {
		return nil, fmt.Errorf("habit_service_create_failed: %w", err)
	}

	service.metrics.HabitCreated()
	service.logger.Info("habit_created",
		slog.String("habit_id", habit.ID),
		slog.String("user_id", userID),
	)

	return service.view(habit, nil), nil
}

// GetHabit returns one owned habit with its stats.
func (service *Service) GetHabit(context context.Context, userID, habitID string) (*HabitView, error) {
	habit, err := service.ownedHabit(context, userID, habitID)
	if err != nil {
		return nil, err
	}

	completions, err := service.repository.ListCompletions(context, habit.ID, 0)
	if err != nil {
		return nil, fmt.Errorf("habit_service_get_failed: %w", err)
	}

	return service.view(habit, completions), nil
}

/*
ListHabits returns every habit of the user, newest first, each with its most
recent completions and stats computed from the full completion history.
*/
func (service *Service) ListHabits(context context.Context, userID string) ([]*HabitView, error) {
	habits, err := service.repository.ListHabitsByOwner(context, userID)
	if err != nil {
		return nil, fmt.Errorf("habit_service_list_failed: %w", err)
	}

	completions, err := service.repository.ListCompletionsByOwner(context, userID)
	if err != nil {
		return nil, fmt.Errorf("habit_service_list_failed: %w", err)
	}

	byHabit := make(map[string][]*Completion, len(habits))
	for _, completion := range completions {
		byHabit[completion.HabitID] = append(byHabit[completion.HabitID], completion)
	}

	views := make([]*HabitView, len(habits))
	for i, habit := range habits {
		views[i] = service.view(habit, byHabit[habit.ID])
	}
	return views, nil
}

// UpdateHabit applies a partial update to an owned habit.
func (service *Service) UpdateHabit(context context.Context, userID, habitID string, input HabitInput) (*HabitView, error) {
	habit, err := service.ownedHabit(context, userID, habitID)
	if err != nil {
		return nil, err
	}

	if input.Title != nil {
		habit.Title = normalize.Text(*input.Title)
	}
	if input.Description != nil {
		habit.Description = pointer.NonEmpty(normalize.Multiline(*input.Description))
	}
	if input.Color != nil {
		habit.Color = normalize.Color(*input.Color)
	}
	habit.UpdatedAt = service.calendar.Now()

	if err := validateHabit(habit); err != nil {
		return nil, err
	}

	if err := service.repository.UpdateHabit(context, habit); err != nil {
		if apperr.HasCode(err, apperr.CodeNotFound) {
			return nil, apperr.NotFound("Habit")
		}
		return nil, fmt.Errorf("habit_service_update_failed: %w", err)
	}

	service.logger.Info("habit_updated", slog.String("habit_id", habit.ID))

	return service.GetHabit(context, userID, habit.ID)
}

// DeleteHabit removes an owned habit together with its completions.
func (service *Service) DeleteHabit(context context.Context, userID, habitID string) error {
	if _, err := service.ownedHabit(context, userID, habitID); err != nil {
		return err
	}

	if err := service.repository.DeleteHabit(context, userID, habitID); err != nil {
		if apperr.HasCode(err, apperr.CodeNotFound) {
			return apperr.NotFound("Habit")
		}
		return fmt.Errorf("habit_service_delete_failed: %w", err)
	}

	service.logger.Warn("habit_deleted",
		slog.String("habit_id", habitID),
		slog.String("user_id", userID),
	)
	return nil
}

// # Completions

/*
RecordCompletion marks an owned habit as done on dayKey (today when empty).
Recording the same day twice returns the existing completion.

Returns:
  - *Completion: The stored completion
  - error: VALIDATION_ERROR for a malformed day, NOT_FOUND, FORBIDDEN
*/
func (service *Service) RecordCompletion(context context.Context, userID, habitID, dayKey string) (*Completion, error) {
	if dayKey == "" {
		dayKey = service.calendar.Today()
	}

	day, err := service.calendar.Parse(dayKey)
	if err != nil {
		return nil, validate.FieldErr(FieldDate, "Must be a date formatted as YYYY-MM-DD")
	}

	if _, err := service.ownedHabit(context, userID, habitID); err != nil {
		return nil, err
	}

	completion, err := service.repository.RecordCompletion(context, userID, &Completion{
		ID:        uuid.New(),
		HabitID:   habitID,
		Day:       day,
		CreatedAt: service.calendar.Now(),
	})
	if err != nil {
		// The habit vanished between the ownership check and the insert.
		if apperr.HasCode(err, apperr.CodeNotFound) {
			return nil, apperr.NotFound("Habit")
		}
		return nil, fmt.Errorf("habit_service_record_failed: %w", err)
	}
	completion.Date = service.calendar.DayKey(completion.Day)

	service.metrics.CompletionRecorded()
	service.logger.Info("completion_recorded",
		slog.String("habit_id", habitID),
		slog.String("date", completion.Date),
	)

	return completion, nil
}

/*
DeleteCompletion removes the completion of an owned habit on dayKey.
Removing a day that was never completed succeeds.

Returns:
  - int64: Number of removed completions (0 or 1)
  - error: VALIDATION_ERROR when dayKey is missing or malformed
*/
func (service *Service) DeleteCompletion(context context.Context, userID, habitID, dayKey string) (int64, error) {
	if dayKey == "" {
		return 0, validate.FieldErr(FieldDate, "This field is required")
	}

	start, end, err := service.calendar.DayRange(dayKey)
	if err != nil {
		return 0, validate.FieldErr(FieldDate, "Must be a date formatted as YYYY-MM-DD")
	}

	if _, err := service.ownedHabit(context, userID, habitID); err != nil {
		return 0, err
	}

	removed, err := service.repository.DeleteCompletions(context, userID, habitID, start, end)
	if err != nil {
		return 0, fmt.Errorf("habit_service_unrecord_failed: %w", err)
	}

	service.metrics.CompletionsDeleted(removed)
	service.logger.Info("completion_deleted",
		slog.String("habit_id", habitID),
		slog.String("date", dayKey),
		slog.Int64("removed", removed),
	)

	return removed, nil
}

// # Dashboard

// Dashboard aggregates the user's habits for today. A positive limit caps the
// number of habit cards; totals always cover every habit.
func (service *Service) Dashboard(context context.Context, userID string, limit int) (*Dashboard, error) {
	views, err := service.ListHabits(context, userID)
	if err != nil {
		return nil, err
	}

	dashboard := &Dashboard{
		Date:        service.calendar.Today(),
		TotalHabits: len(views),
		Habits:      views,
	}
	for _, view := range views {
		if view.Stats.CompletedToday {
			dashboard.CompletedToday++
		}
		dashboard.BestStreak = max(dashboard.BestStreak, view.Stats.Streak)
	}

	if limit > 0 && len(dashboard.Habits) > limit {
		dashboard.Habits = dashboard.Habits[:limit]
	}
	return dashboard, nil
}

// # Helpers

// ownedHabit loads a habit and enforces that userID owns it.
func (service *Service) ownedHabit(context context.Context, userID, habitID string) (*Habit, error) {
	habit, err := service.repository.FindHabitByID(context, habitID)
	if err != nil {
		if apperr.HasCode(err, apperr.CodeNotFound) {
			return nil, apperr.NotFound("Habit")
		}
		return nil, fmt.Errorf("habit_service_find_failed: %w", err)
	}

	if habit.UserID != userID {
		service.logger.Warn("habit_access_denied",
			slog.String("habit_id", habitID),
			slog.String("user_id", userID),
		)
		return nil, apperr.Forbidden("You do not have access to this habit")
	}
	return habit, nil
}

func (service *Service) view(habit *Habit, completions []*Completion) *HabitView {
	stamp(completions, service.calendar)
	return &HabitView{
		Habit:       habit,
		Completions: append([]*Completion{}, recent(completions, RecentCompletionLimit)...),
		Stats:       ComputeStats(completions, service.calendar),
	}
}

func validateHabit(habit *Habit) error {
	validator := &validate.Validator{}
	validator.
		Required(FieldTitle, habit.Title).
		MaxLen(FieldTitle, habit.Title, MaxTitleLength).
		MaxLen(FieldDescription, pointer.Val(habit.Description), MaxDescriptionLength).
		Color(FieldColor, habit.Color)
	return validator.Err()
}
