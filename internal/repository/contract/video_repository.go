package contract

import (
	"context"

	"learnloop-be/internal/entity"
	"learnloop-be/internal/repository/specification"

	"github.com/google/uuid"
)

type VideoRepository interface {
	Create(ctx context.Context, video *entity.Video) error
	CreateBatch(ctx context.Context, videos []*entity.Video) error
	Update(ctx context.Context, video *entity.Video) error
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteByPlaylistID(ctx context.Context, playlistId uuid.UUID) (int64, error)
	// ResetProgress puts every video of the playlist back to to-watch with no time spent.
	ResetProgress(ctx context.Context, playlistId uuid.UUID) (int64, error)
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Video, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Video, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
