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
	"gorm.io/gorm/clause"
)

type BadgeRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.BadgeMapper
}

func NewBadgeRepository(db *gorm.DB) contract.BadgeRepository {
	return &BadgeRepositoryImpl{
		db:     db,
		mapper: mapper.NewBadgeMapper(),
	}
}

func (r *BadgeRepositoryImpl) CreateIfAbsent(ctx context.Context, badge *entity.Badge) (bool, error) {
	m := r.mapper.ToModel(badge)
	res := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "title"}},
			DoNothing: true,
		}).
		Create(m)
	if res.Error != nil {
		return false, res.Error
	}
	if res.RowsAffected == 0 {
		return false, nil
	}
	*badge = *r.mapper.ToEntity(m)
	return true, nil
}

func (r *BadgeRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.Badge{}, id).Error
}

func (r *BadgeRepositoryImpl) DeleteAll(ctx context.Context, specs ...specification.Specification) (int64, error) {
	query := applySpecifications(r.db.WithContext(ctx), specs...)
	res := query.Delete(&model.Badge{})
	return res.RowsAffected, res.Error
}

func (r *BadgeRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Badge, error) {
	var m model.Badge
	query := applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *BadgeRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Badge, error) {
	var models []*model.Badge
	query := applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Scopes(scope.OrderByEarnedAsc).Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}

func (r *BadgeRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := applySpecifications(r.db.WithContext(ctx).Model(&model.Badge{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
