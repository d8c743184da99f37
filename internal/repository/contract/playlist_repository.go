package contract

import (
	"context"

	"learnloop-be/internal/entity"
	"learnloop-be/internal/repository/specification"

	"github.com/google/uuid"
)

type PlaylistRepository interface {
	Create(ctx context.Context, playlist *entity.Playlist) error
	Update(ctx context.Context, playlist *entity.Playlist) error
	Delete(ctx context.Context, id uuid.UUID) error
	// RenameCategory moves every playlist of the user from one category to another.
	RenameCategory(ctx context.Context, userId uuid.UUID, from, to string) (int64, error)
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Playlist, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Playlist, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
