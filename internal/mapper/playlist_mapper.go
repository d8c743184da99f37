package mapper

import (
	"learnloop-be/internal/entity"
	"learnloop-be/internal/model"

	"gorm.io/datatypes"
)

type PlaylistMapper struct{}

func NewPlaylistMapper() *PlaylistMapper {
	return &PlaylistMapper{}
}

func (m *PlaylistMapper) ToEntity(p *model.Playlist) *entity.Playlist {
	if p == nil {
		return nil
	}
	info := p.YtInfo.Data()

	return &entity.Playlist{
		Id:               p.Id,
		UserId:           p.UserId,
		Name:             p.Name,
		Category:         p.Category,
		YtPlaylistUrl:    p.YtPlaylistUrl,
		YtPlaylistId:     p.YtPlaylistId,
		IsCustomPlaylist: p.IsCustomPlaylist,
		YtInfo: entity.YtPlaylistInfo{
			Title:        info.Title,
			Description:  info.Description,
			Thumbnail:    info.Thumbnail,
			ChannelTitle: info.ChannelTitle,
			ItemCount:    info.ItemCount,
			PublishedAt:  info.PublishedAt,
		},
		Completed: p.Completed,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}

func (m *PlaylistMapper) ToModel(p *entity.Playlist) *model.Playlist {
	if p == nil {
		return nil
	}

	return &model.Playlist{
		Id:               p.Id,
		UserId:           p.UserId,
		Name:             p.Name,
		Category:         p.Category,
		YtPlaylistUrl:    p.YtPlaylistUrl,
		YtPlaylistId:     p.YtPlaylistId,
		IsCustomPlaylist: p.IsCustomPlaylist,
		YtInfo: datatypes.NewJSONType(model.YtPlaylistInfo{
			Title:        p.YtInfo.Title,
			Description:  p.YtInfo.Description,
			Thumbnail:    p.YtInfo.Thumbnail,
			ChannelTitle: p.YtInfo.ChannelTitle,
			ItemCount:    p.YtInfo.ItemCount,
			PublishedAt:  p.YtInfo.PublishedAt,
		}),
		Completed: p.Completed,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}

func (m *PlaylistMapper) ToEntities(playlists []*model.Playlist) []*entity.Playlist {
	entities := make([]*entity.Playlist, len(playlists))
	for i, p := range playlists {
		entities[i] = m.ToEntity(p)
	}
	return entities
}
