package contract

import (
	"context"
	"time"

	"learnloop-be/internal/entity"

	"github.com/google/uuid"
)

type UserActivityRepository interface {
	// Increment adds one event to the user's counter for the given day.
	Increment(ctx context.Context, userId uuid.UUID, day time.Time) error
	FindSince(ctx context.Context, userId uuid.UUID, since time.Time) ([]*entity.UserActivity, error)
}
