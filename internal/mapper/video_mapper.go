package mapper

import (
	"learnloop-be/internal/entity"
	"learnloop-be/internal/model"

	"gorm.io/datatypes"
)

type VideoMapper struct{}

func NewVideoMapper() *VideoMapper {
	return &VideoMapper{}
}

func (m *VideoMapper) ToEntity(v *model.Video) *entity.Video {
	if v == nil {
		return nil
	}

	tags := make([]string, len(v.Tags))
	copy(tags, v.Tags)

	resources := make([]entity.Resource, len(v.Resources))
	for i, r := range v.Resources {
		resources[i] = entity.Resource{
			Id:    r.Id,
			Title: r.Title,
			Url:   r.Url,
			Type:  entity.ParseResourceType(r.Type),
		}
	}

	return &entity.Video{
		Id:                 v.Id,
		PlaylistId:         v.PlaylistId,
		UserId:             v.UserId,
		YtId:               v.YtId,
		Title:              v.Title,
		Description:        v.Description,
		Thumbnail:          v.Thumbnail,
		Duration:           v.Duration,
		ViewCount:          v.ViewCount,
		LikeCount:          v.LikeCount,
		PublishedAt:        v.PublishedAt,
		ChannelTitle:       v.ChannelTitle,
		Status:             entity.VideoStatus(v.Status),
		TimeSpent:          v.TimeSpent,
		Notes:              v.Notes,
		AiSummary:          v.AiSummary,
		AiSummaryGenerated: v.AiSummaryGenerated,
		Tags:               tags,
		Resources:          resources,
		Pinned:             v.Pinned,
		Position:           v.Position,
		CreatedAt:          v.CreatedAt,
		UpdatedAt:          v.UpdatedAt,
	}
}

func (m *VideoMapper) ToModel(v *entity.Video) *model.Video {
	if v == nil {
		return nil
	}

	tags := v.Tags
	if tags == nil {
		tags = []string{}
	}

	resources := make([]model.VideoResource, len(v.Resources))
	for i, r := range v.Resources {
		resources[i] = model.VideoResource{
			Id:    r.Id,
			Title: r.Title,
			Url:   r.Url,
			Type:  string(r.Type),
		}
	}

	status := v.Status
	if status == "" {
		status = entity.VideoStatusToWatch
	}

	return &model.Video{
		Id:                 v.Id,
		PlaylistId:         v.PlaylistId,
		UserId:             v.UserId,
		YtId:               v.YtId,
		Title:              v.Title,
		Description:        v.Description,
		Thumbnail:          v.Thumbnail,
		Duration:           v.Duration,
		ViewCount:          v.ViewCount,
		LikeCount:          v.LikeCount,
		PublishedAt:        v.PublishedAt,
		ChannelTitle:       v.ChannelTitle,
		Status:             string(status),
		TimeSpent:          v.TimeSpent,
		Notes:              v.Notes,
		AiSummary:          v.AiSummary,
		AiSummaryGenerated: v.AiSummaryGenerated,
		Tags:               datatypes.JSONSlice[string](tags),
		Resources:          datatypes.JSONSlice[model.VideoResource](resources),
		Pinned:             v.Pinned,
		Position:           v.Position,
		CreatedAt:          v.CreatedAt,
		UpdatedAt:          v.UpdatedAt,
	}
}

func (m *VideoMapper) ToEntities(videos []*model.Video) []*entity.Video {
	entities := make([]*entity.Video, len(videos))
	for i, v := range videos {
		entities[i] = m.ToEntity(v)
	}
	return entities
}

func (m *VideoMapper) ToModels(videos []*entity.Video) []*model.Video {
	models := make([]*model.Video, len(videos))
	for i, v := range videos {
		models[i] = m.ToModel(v)
	}
	return models
}
