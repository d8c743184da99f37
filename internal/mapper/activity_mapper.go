package mapper

import (
	"learnloop-be/internal/entity"
	"learnloop-be/internal/model"
)

type UserActivityMapper struct{}

func NewUserActivityMapper() *UserActivityMapper {
	return &UserActivityMapper{}
}

func (m *UserActivityMapper) ToEntity(a *model.UserActivity) *entity.UserActivity {
	if a == nil {
		return nil
	}
	return &entity.UserActivity{
		Id:        a.Id,
		UserId:    a.UserId,
		Day:       a.Day,
		Events:    a.Events,
		UpdatedAt: a.UpdatedAt,
	}
}

func (m *UserActivityMapper) ToEntities(activities []*model.UserActivity) []*entity.UserActivity {
	entities := make([]*entity.UserActivity, len(activities))
	for i, a := range activities {
		entities[i] = m.ToEntity(a)
	}
	return entities
}
