package implementation

import (
	"context"
	"time"

	"learnloop-be/internal/entity"
	"learnloop-be/internal/mapper"
	"learnloop-be/internal/model"
	"learnloop-be/internal/repository/contract"
	"learnloop-be/internal/repository/scope"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type UserActivityRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.UserActivityMapper
}

func NewUserActivityRepository(db *gorm.DB) contract.UserActivityRepository {
	return &UserActivityRepositoryImpl{
		db:     db,
		mapper: mapper.NewUserActivityMapper(),
	}
}

func (r *UserActivityRepositoryImpl) Increment(ctx context.Context, userId uuid.UUID, day time.Time) error {
	row := &model.UserActivity{
		Id:     uuid.New(),
		UserId: userId,
		Day:    day.UTC().Truncate(24 * time.Hour),
		Events: 1,
	}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "user_id"}, {Name: "day"}},
			DoUpdates: clause.Assignments(map[string]interface{}{
				"events":     gorm.Expr("user_activities.events + 1"),
				"updated_at": time.Now(),
			}),
		}).
		Create(row).Error
}

func (r *UserActivityRepositoryImpl) FindSince(ctx context.Context, userId uuid.UUID, since time.Time) ([]*entity.UserActivity, error) {
	var models []*model.UserActivity
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND day >= ?", userId, since.UTC().Truncate(24*time.Hour)).
		Scopes(scope.OrderByDayDesc).
		Find(&models).Error
	if err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}
