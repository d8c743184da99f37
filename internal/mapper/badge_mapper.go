package mapper

import (
	"learnloop-be/internal/entity"
	"learnloop-be/internal/model"
)

type BadgeMapper struct{}

func NewBadgeMapper() *BadgeMapper {
	return &BadgeMapper{}
}

func (m *BadgeMapper) ToEntity(b *model.Badge) *entity.Badge {
	if b == nil {
		return nil
	}
	return &entity.Badge{
		Id:          b.Id,
		UserId:      b.UserId,
		Title:       b.Title,
		Description: b.Description,
		IconUrl:     b.IconUrl,
		DateEarned:  b.DateEarned,
	}
}

func (m *BadgeMapper) ToModel(b *entity.Badge) *model.Badge {
	if b == nil {
		return nil
	}
	return &model.Badge{
		Id:          b.Id,
		UserId:      b.UserId,
		Title:       b.Title,
		Description: b.Description,
		IconUrl:     b.IconUrl,
		DateEarned:  b.DateEarned,
	}
}

func (m *BadgeMapper) ToEntities(badges []*model.Badge) []*entity.Badge {
	entities := make([]*entity.Badge, len(badges))
	for i, b := range badges {
		entities[i] = m.ToEntity(b)
	}
	return entities
}
