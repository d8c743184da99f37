package implementation

import (
	"context"
	"errors"

	"learnloop-be/internal/entity"
	"learnloop-be/internal/mapper"
	"learnloop-be/internal/model"
	"learnloop-be/internal/repository/contract"
	"learnloop-be/internal/repository/scope"
	"learnloop-be/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const videoBatchSize = 100

type VideoRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.VideoMapper
}

func NewVideoRepository(db *gorm.DB) contract.VideoRepository {
	return &VideoRepositoryImpl{
		db:     db,
		mapper: mapper.NewVideoMapper(),
	}
}

func (r *VideoRepositoryImpl) Create(ctx context.Context, video *entity.Video) error {
	m := r.mapper.ToModel(video)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return translateError(err)
	}
	*video = *r.mapper.ToEntity(m)
	return nil
}

func (r *VideoRepositoryImpl) CreateBatch(ctx context.Context, videos []*entity.Video) error {
	if len(videos) == 0 {
		return nil
	}
	models := r.mapper.ToModels(videos)
	if err := r.db.WithContext(ctx).CreateInBatches(models, videoBatchSize).Error; err != nil {
		return err
	}
	for i, m := range models {
		*videos[i] = *r.mapper.ToEntity(m)
	}
	return nil
}

func (r *VideoRepositoryImpl) Update(ctx context.Context, video *entity.Video) error {
	m := r.mapper.ToModel(video)
	if err := r.db.WithContext(ctx).Save(m).Error; err != nil {
		return translateError(err)
	}
	*video = *r.mapper.ToEntity(m)
	return nil
}

func (r *VideoRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.Video{}, id).Error
}

func (r *VideoRepositoryImpl) DeleteByPlaylistID(ctx context.Context, playlistId uuid.UUID) (int64, error) {
	res := r.db.WithContext(ctx).Where("playlist_id = ?", playlistId).Delete(&model.Video{})
	return res.RowsAffected, res.Error
}

func (r *VideoRepositoryImpl) ResetProgress(ctx context.Context, playlistId uuid.UUID) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&model.Video{}).
		Where("playlist_id = ?", playlistId).
		Updates(map[string]interface{}{
			"status":     string(entity.VideoStatusToWatch),
			"time_spent": 0,
		})
	return res.RowsAffected, res.Error
}

func (r *VideoRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Video, error) {
	var m model.Video
	query := applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *VideoRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Video, error) {
	var models []*model.Video
	query := applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Scopes(scope.OrderByCreatedAsc).Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}

func (r *VideoRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := applySpecifications(r.db.WithContext(ctx).Model(&model.Video{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
