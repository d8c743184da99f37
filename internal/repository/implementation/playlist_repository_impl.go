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

type PlaylistRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.PlaylistMapper
}

func NewPlaylistRepository(db *gorm.DB) contract.PlaylistRepository {
	return &PlaylistRepositoryImpl{
		db:     db,
		mapper: mapper.NewPlaylistMapper(),
	}
}

func (r *PlaylistRepositoryImpl) Create(ctx context.Context, playlist *entity.Playlist) error {
	m := r.mapper.ToModel(playlist)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return translateError(err)
	}
	*playlist = *r.mapper.ToEntity(m)
	return nil
}

func (r *PlaylistRepositoryImpl) Update(ctx context.Context, playlist *entity.Playlist) error {
	m := r.mapper.ToModel(playlist)
	if err := r.db.WithContext(ctx).Save(m).Error; err != nil {
		return translateError(err)
	}
	*playlist = *r.mapper.ToEntity(m)
	return nil
}

func (r *PlaylistRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.Playlist{}, id).Error
}

func (r *PlaylistRepositoryImpl) RenameCategory(ctx context.Context, userId uuid.UUID, from, to string) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&model.Playlist{}).
		Where("user_id = ? AND category = ?", userId, from).
		Update("category", to)
	return res.RowsAffected, res.Error
}

func (r *PlaylistRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Playlist, error) {
	var m model.Playlist
	query := applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *PlaylistRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Playlist, error) {
	var models []*model.Playlist
	query := applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Scopes(scope.OrderByCreatedAsc).Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}

func (r *PlaylistRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := applySpecifications(r.db.WithContext(ctx).Model(&model.Playlist{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
