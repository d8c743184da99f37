package contract

import (
	"context"

	"learnloop-be/internal/entity"
	"learnloop-be/internal/repository/specification"

	"github.com/google/uuid"
)

type BadgeRepository interface {
	// CreateIfAbsent inserts the badge unless the user already holds one with the
	// same title. It reports whether a row was inserted.
	CreateIfAbsent(ctx context.Context, badge *entity.Badge) (bool, error)
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteAll(ctx context.Context, specs ...specification.Specification) (int64, error)
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Badge, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Badge, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
