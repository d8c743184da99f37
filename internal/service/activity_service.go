package service

import (
	"context"
	"encoding/json"
	"time"

	"learnloop-be/internal/dto"
	"learnloop-be/internal/pkg/logger"
	"learnloop-be/internal/repository/contract"

	"github.com/google/uuid"
)

const (
	ActivityStatusChanged = "status_changed"
	ActivityNoteUpdated   = "note_updated"
	ActivityTimeLogged    = "time_logged"
	ActivitySummary       = "summary_generated"

	// streakWindow bounds how far back activity is read when computing a streak.
	streakWindow = 60
)

// IActivityTracker records learning interactions. Tracking never fails the caller.
type IActivityTracker interface {
	Track(ctx context.Context, userId uuid.UUID, kind string)
}

type activityTracker struct {
	publisher IPublisherService
	logger    logger.ILogger
	now       func() time.Time
}

func NewActivityTracker(publisher IPublisherService, log logger.ILogger) IActivityTracker {
	return &activityTracker{
		publisher: publisher,
		logger:    log,
		now:       time.Now,
	}
}

func (t *activityTracker) Track(ctx context.Context, userId uuid.UUID, kind string) {
	payload, err := json.Marshal(dto.ActivityMessage{
		UserId:     userId,
		Kind:       kind,
		OccurredAt: t.now().UTC(),
	})
	if err != nil {
		return
	}

	if err := t.publisher.Publish(ctx, payload); err != nil {
		t.logger.Warn("ACTIVITY", "Failed to publish activity", map[string]interface{}{
			"user_id": userId,
			"kind":    kind,
			"error":   err.Error(),
		})
	}
}

func activityDay(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ComputeStreak counts consecutive active days ending today, or ending
// yesterday when nothing has been recorded yet today.
func ComputeStreak(days []time.Time, now time.Time) int {
	active := make(map[time.Time]struct{}, len(days))
	for _, d := range days {
		active[activityDay(d)] = struct{}{}
	}

	cursor := activityDay(now)
	if _, ok := active[cursor]; !ok {
		cursor = cursor.AddDate(0, 0, -1)
	}

	streak := 0
	for {
		if _, ok := active[cursor]; !ok {
			return streak
		}
		streak++
		cursor = cursor.AddDate(0, 0, -1)
	}
}

func currentStreak(ctx context.Context, repo contract.UserActivityRepository, userId uuid.UUID, now time.Time) (int, error) {
	activities, err := repo.FindSince(ctx, userId, activityDay(now).AddDate(0, 0, -streakWindow))
	if err != nil {
		return 0, err
	}
	days := make([]time.Time, 0, len(activities))
	for _, a := range activities {
		if a.Events > 0 {
			days = append(days, a.Day)
		}
	}
	return ComputeStreak(days, now), nil
}
