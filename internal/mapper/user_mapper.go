package mapper

import (
	"learnloop-be/internal/entity"
	"learnloop-be/internal/model"

	"gorm.io/datatypes"
)

type UserMapper struct{}

func NewUserMapper() *UserMapper {
	return &UserMapper{}
}

func (m *UserMapper) ToEntity(u *model.User) *entity.User {
	if u == nil {
		return nil
	}
	categories := make([]string, len(u.Categories))
	copy(categories, u.Categories)

	return &entity.User{
		Id:         u.Id,
		Name:       u.Name,
		Email:      u.Email,
		Avatar:     u.Avatar,
		Categories: categories,
		DailyGoal:  u.DailyGoal,
		CreatedAt:  u.CreatedAt,
		UpdatedAt:  u.UpdatedAt,
	}
}

func (m *UserMapper) ToModel(u *entity.User) *model.User {
	if u == nil {
		return nil
	}
	categories := u.Categories
	if categories == nil {
		categories = []string{}
	}

	return &model.User{
		Id:         u.Id,
		Name:       u.Name,
		Email:      u.Email,
		Avatar:     u.Avatar,
		Categories: datatypes.JSONSlice[string](categories),
		DailyGoal:  u.DailyGoal,
		CreatedAt:  u.CreatedAt,
		UpdatedAt:  u.UpdatedAt,
	}
}

func (m *UserMapper) ToEntities(users []*model.User) []*entity.User {
	entities := make([]*entity.User, len(users))
	for i, u := range users {
		entities[i] = m.ToEntity(u)
	}
	return entities
}
