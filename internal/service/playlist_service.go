package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"

	"learnloop-be/internal/dto"
	"learnloop-be/internal/entity"
	"learnloop-be/internal/pkg/apperror"
	"learnloop-be/internal/pkg/logger"
	"learnloop-be/internal/repository/contract"
	"learnloop-be/internal/repository/specification"
	"learnloop-be/internal/repository/unitofwork"
	"learnloop-be/pkg/cache"
	"learnloop-be/pkg/youtube"

	"github.com/google/uuid"
)

type IPlaylistService interface {
	Add(ctx context.Context, userId uuid.UUID, req *dto.AddPlaylistRequest) (*dto.PlaylistDetailResponse, error)
	List(ctx context.Context, userId uuid.UUID) ([]dto.PlaylistListItem, error)
	Show(ctx context.Context, userId, playlistId uuid.UUID) (*dto.PlaylistDetailResponse, error)
	Delete(ctx context.Context, userId, playlistId uuid.UUID) error
	AddVideo(ctx context.Context, userId uuid.UUID, req *dto.AddVideoRequest) (*dto.PlaylistDetailResponse, error)
	Sync(ctx context.Context, userId, playlistId uuid.UUID) (*dto.SyncPlaylistResponse, error)
	Reset(ctx context.Context, userId, playlistId uuid.UUID) (*dto.ResetPlaylistResponse, error)
	ChangeCategory(ctx context.Context, userId uuid.UUID, req *dto.ChangeCategoryRequest) (*dto.ChangeCategoryResponse, error)
	Reorder(ctx context.Context, userId uuid.UUID, req *dto.ReorderRequest) (*dto.PlaylistDetailResponse, error)
	TogglePin(ctx context.Context, userId, playlistId, videoId uuid.UUID) (*dto.TogglePinResponse, error)
}

type playlistService struct {
	uowFactory unitofwork.RepositoryFactory
	youtube    YouTubeClient
	cache      *cache.SafeStore
	badges     IBadgeService
	logger     logger.ILogger
}

func NewPlaylistService(
	uowFactory unitofwork.RepositoryFactory,
	yt YouTubeClient,
	store *cache.SafeStore,
	badges IBadgeService,
	log logger.ILogger,
) IPlaylistService {
	return &playlistService{
		uowFactory: uowFactory,
		youtube:    yt,
		cache:      store,
		badges:     badges,
		logger:     log,
	}
}

// ytSnapshot is what gets cached per YouTube playlist id.
type ytSnapshot struct {
	Playlist youtube.Playlist `json:"playlist"`
	Videos   []youtube.Video  `json:"videos"`
}

// cachedPlaylistDetail keeps the owner next to the payload so a cache hit can
// still be checked against the caller.
type cachedPlaylistDetail struct {
	UserId uuid.UUID                  `json:"userId"`
	Detail dto.PlaylistDetailResponse `json:"detail"`
}

// ownedPlaylist returns the playlist when it exists and belongs to userId.
func ownedPlaylist(ctx context.Context, uow unitofwork.UnitOfWork, userId, playlistId uuid.UUID, lock bool) (*entity.Playlist, error) {
	specs := []specification.Specification{
		specification.ByID{ID: playlistId},
		specification.UserOwnedBy{UserID: userId},
	}
	if lock {
		specs = append(specs, specification.ForUpdate{})
	}
	playlist, err := uow.PlaylistRepository().FindOne(ctx, specs...)
	if err != nil {
		return nil, err
	}
	if playlist == nil {
		return nil, apperror.NotFound("Playlist not found")
	}
	return playlist, nil
}

func playlistVideos(ctx context.Context, repo contract.VideoRepository, playlistIds ...uuid.UUID) ([]*entity.Video, error) {
	return repo.FindAll(ctx,
		specification.ByPlaylistIDs{PlaylistIDs: playlistIds},
		specification.OrderBy{Field: "position"},
	)
}

// resolveCategory applies the category rule: a playlist either sits in one of
// the owner's categories or in Uncategorized, which is created on demand.
func resolveCategory(ctx context.Context, uow unitofwork.UnitOfWork, user *entity.User, requested string) (string, bool, error) {
	requested = strings.TrimSpace(requested)
	if requested != "" && user.HasCategory(requested) {
		return requested, false, nil
	}
	if user.HasCategory(entity.UncategorizedCategory) {
		return entity.UncategorizedCategory, false, nil
	}
	user.Categories = append(user.Categories, entity.UncategorizedCategory)
	if err := uow.UserRepository().Update(ctx, user); err != nil {
		return "", false, err
	}
	return entity.UncategorizedCategory, true, nil
}

// deletePlaylistCascade removes the playlist with its videos and completion badge.
func deletePlaylistCascade(ctx context.Context, uow unitofwork.UnitOfWork, playlist *entity.Playlist) error {
	if _, err := uow.VideoRepository().DeleteByPlaylistID(ctx, playlist.Id); err != nil {
		return err
	}
	if _, err := uow.BadgeRepository().DeleteAll(ctx,
		specification.UserOwnedBy{UserID: playlist.UserId},
		specification.ByTitle{Title: playlist.CompletionBadgeTitle()},
	); err != nil {
		return err
	}
	return uow.PlaylistRepository().Delete(ctx, playlist.Id)
}

// playlistCacheKeys lists the detail keys of the playlists and of their videos.
func playlistCacheKeys(ctx context.Context, uow unitofwork.UnitOfWork, playlists []*entity.Playlist) ([]string, error) {
	if len(playlists) == 0 {
		return nil, nil
	}
	ids := make([]uuid.UUID, 0, len(playlists))
	keys := make([]string, 0, len(playlists))
	for _, p := range playlists {
		ids = append(ids, p.Id)
		keys = append(keys, cache.PlaylistKey(p.Id))
	}
	videos, err := uow.VideoRepository().FindAll(ctx, specification.ByPlaylistIDs{PlaylistIDs: ids})
	if err != nil {
		return nil, err
	}
	for _, v := range videos {
		keys = append(keys, cache.VideoKey(v.Id))
	}
	return keys, nil
}

func progressOf(videos []*entity.Video) dto.PlaylistProgress {
	p := dto.PlaylistProgress{TotalVideos: len(videos)}
	for _, v := range videos {
		switch v.Status {
		case entity.VideoStatusCompleted:
			p.CompletedVideos++
		case entity.VideoStatusInProgress:
			p.InProgressVideos++
		}
	}
	if p.TotalVideos > 0 {
		p.Progress = int(math.Round(float64(p.CompletedVideos) / float64(p.TotalVideos) * 100))
	}
	return p
}

func toPlaylistDetail(p *entity.Playlist, videos []*entity.Video) *dto.PlaylistDetailResponse {
	items := make([]dto.PlaylistVideo, 0, len(videos))
	for _, v := range videos {
		tags := v.Tags
		if tags == nil {
			tags = []string{}
		}
		items = append(items, dto.PlaylistVideo{
			Id:                 v.Id,
			YtId:               v.YtId,
			Title:              v.Title,
			Thumbnail:          v.Thumbnail,
			Duration:           v.Duration,
			ChannelTitle:       v.ChannelTitle,
			Status:             v.Status,
			TimeSpent:          v.TimeSpent,
			Notes:              v.Notes,
			AiSummary:          v.AiSummary,
			AiSummaryGenerated: v.AiSummaryGenerated,
			Tags:               tags,
			Pinned:             v.Pinned,
			Position:           v.Position,
		})
	}
	return &dto.PlaylistDetailResponse{
		Id:               p.Id,
		Name:             p.Name,
		Category:         p.Category,
		YtPlaylistUrl:    p.YtPlaylistUrl,
		YtPlaylistId:     p.YtPlaylistId,
		IsCustomPlaylist: p.IsCustomPlaylist,
		YtInfo:           p.YtInfo,
		PlaylistProgress: progressOf(videos),
		Completed:        p.Completed,
		CreatedAt:        p.CreatedAt,
		Videos:           items,
	}
}

func newVideoFromYouTube(p *entity.Playlist, yv youtube.Video, position int) *entity.Video {
	return &entity.Video{
		Id:           uuid.New(),
		PlaylistId:   p.Id,
		UserId:       p.UserId,
		YtId:         yv.YtId,
		Title:        yv.Title,
		Description:  yv.Description,
		Thumbnail:    yv.Thumbnail,
		Duration:     yv.Duration,
		ViewCount:    yv.ViewCount,
		LikeCount:    yv.LikeCount,
		PublishedAt:  yv.PublishedAt,
		ChannelTitle: yv.ChannelTitle,
		Status:       entity.VideoStatusToWatch,
		Tags:         []string{},
		Resources:    []entity.Resource{},
		Position:     position,
	}
}

func ytInfoOf(p youtube.Playlist) entity.YtPlaylistInfo {
	return entity.YtPlaylistInfo{
		Title:        p.Title,
		Description:  p.Description,
		Thumbnail:    p.Thumbnail,
		ChannelTitle: p.ChannelTitle,
		ItemCount:    p.ItemCount,
		PublishedAt:  p.PublishedAt,
	}
}

// fetchSnapshot loads playlist metadata and items, from the cache unless fresh is set.
func (s *playlistService) fetchSnapshot(ctx context.Context, ytPlaylistId string, fresh bool) (*ytSnapshot, error) {
	key := cache.YtPlaylistKey(ytPlaylistId)
	if !fresh {
		var cached ytSnapshot
		if s.cache.Get(ctx, key, &cached) {
			return &cached, nil
		}
	}

	meta, err := s.youtube.GetPlaylist(ctx, ytPlaylistId)
	if err != nil {
		return nil, youtubeError(err, "YouTube playlist not found")
	}
	videos, err := s.youtube.ListPlaylistVideos(ctx, ytPlaylistId)
	if err != nil {
		return nil, youtubeError(err, "YouTube playlist not found")
	}

	snapshot := &ytSnapshot{Playlist: *meta, Videos: videos}
	s.cache.Set(ctx, key, snapshot, cache.YtPlaylistTTL)
	return snapshot, nil
}

func (s *playlistService) invalidate(ctx context.Context, userId uuid.UUID, keys ...string) {
	s.cache.Delete(ctx, append(keys, cache.PlaylistsKey(userId))...)
}

func (s *playlistService) Add(ctx context.Context, userId uuid.UUID, req *dto.AddPlaylistRequest) (*dto.PlaylistDetailResponse, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, apperror.BadRequest("Playlist name is required")
	}

	var ytPlaylistId string
	var snapshot *ytSnapshot
	if !req.IsCustomPlaylist {
		if strings.TrimSpace(req.YtPlaylistUrl) == "" {
			return nil, apperror.BadRequest("YouTube playlist URL is required")
		}
		id, ok := youtube.ExtractPlaylistID(req.YtPlaylistUrl)
		if !ok {
			return nil, apperror.BadRequest("Invalid YouTube playlist URL")
		}
		ytPlaylistId = id

		existing, err := s.uowFactory.NewUnitOfWork(ctx).PlaylistRepository().FindOne(ctx,
			specification.UserOwnedBy{UserID: userId},
			specification.ByYtPlaylistID{YtPlaylistID: ytPlaylistId},
		)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			return nil, apperror.BadRequest("Playlist already exists")
		}

		snapshot, err = s.fetchSnapshot(ctx, ytPlaylistId, false)
		if err != nil {
			return nil, err
		}
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	user, err := lockUser(ctx, uow, userId)
	if err != nil {
		return nil, err
	}
	category, _, err := resolveCategory(ctx, uow, user, req.Category)
	if err != nil {
		return nil, err
	}

	playlist := &entity.Playlist{
		Id:               uuid.New(),
		UserId:           userId,
		Name:             name,
		Category:         category,
		IsCustomPlaylist: req.IsCustomPlaylist,
	}
	videos := make([]*entity.Video, 0)
	if snapshot != nil {
		playlist.YtPlaylistUrl = strings.TrimSpace(req.YtPlaylistUrl)
		playlist.YtPlaylistId = ytPlaylistId
		playlist.YtInfo = ytInfoOf(snapshot.Playlist)
		for _, yv := range snapshot.Videos {
			videos = append(videos, newVideoFromYouTube(playlist, yv, yv.Position))
		}
	}

	if err := uow.PlaylistRepository().Create(ctx, playlist); err != nil {
		if errors.Is(err, contract.ErrDuplicateKey) {
			return nil, apperror.BadRequest("Playlist already exists")
		}
		return nil, err
	}
	if len(videos) > 0 {
		if err := uow.VideoRepository().CreateBatch(ctx, videos); err != nil {
			return nil, err
		}
	}
	if err := uow.Commit(); err != nil {
		return nil, err
	}

	s.invalidate(ctx, userId, cache.CategoriesKey(userId), cache.UserKey(userId))
	s.logger.Info("PLAYLIST", "Playlist added", map[string]interface{}{
		"user_id":     userId,
		"playlist_id": playlist.Id,
		"videos":      len(videos),
	})

	if _, err := s.badges.CheckBadges(ctx, userId); err != nil {
		s.logger.Warn("PLAYLIST", "Badge check after import failed", map[string]interface{}{
			"user_id": userId,
			"error":   err.Error(),
		})
	}

	return toPlaylistDetail(playlist, videos), nil
}

func (s *playlistService) List(ctx context.Context, userId uuid.UUID) ([]dto.PlaylistListItem, error) {
	var cached []dto.PlaylistListItem
	if s.cache.Get(ctx, cache.PlaylistsKey(userId), &cached) {
		return cached, nil
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	playlists, err := uow.PlaylistRepository().FindAll(ctx,
		specification.UserOwnedBy{UserID: userId},
		specification.OrderBy{Field: "created_at", Desc: true},
	)
	if err != nil {
		return nil, err
	}

	byPlaylist := make(map[uuid.UUID][]*entity.Video, len(playlists))
	if len(playlists) > 0 {
		ids := make([]uuid.UUID, 0, len(playlists))
		for _, p := range playlists {
			ids = append(ids, p.Id)
		}
		videos, err := playlistVideos(ctx, uow.VideoRepository(), ids...)
		if err != nil {
			return nil, err
		}
		for _, v := range videos {
			byPlaylist[v.PlaylistId] = append(byPlaylist[v.PlaylistId], v)
		}
	}

	items := make([]dto.PlaylistListItem, 0, len(playlists))
	for _, p := range playlists {
		videos := byPlaylist[p.Id]
		item := dto.PlaylistListItem{
			Id:               p.Id,
			Name:             p.Name,
			Category:         p.Category,
			IsCustomPlaylist: p.IsCustomPlaylist,
			Thumbnail:        p.YtInfo.Thumbnail,
			PlaylistProgress: progressOf(videos),
			Completed:        p.Completed,
			CreatedAt:        p.CreatedAt,
			Videos:           make([]dto.PlaylistVideoSummary, 0, len(videos)),
		}
		for _, v := range videos {
			hasNotes := strings.TrimSpace(v.Notes) != ""
			item.TotalTimeSpent += v.TimeSpent
			if hasNotes {
				item.NotesCount++
			}
			if item.Thumbnail == "" {
				item.Thumbnail = v.Thumbnail
			}
			item.Videos = append(item.Videos, dto.PlaylistVideoSummary{
				Id:        v.Id,
				Status:    v.Status,
				TimeSpent: v.TimeSpent,
				HasNotes:  hasNotes,
			})
		}
		items = append(items, item)
	}

	s.cache.Set(ctx, cache.PlaylistsKey(userId), items, cache.PlaylistsTTL)
	return items, nil
}

func (s *playlistService) loadDetail(ctx context.Context, uow unitofwork.UnitOfWork, playlist *entity.Playlist) (*dto.PlaylistDetailResponse, error) {
	videos, err := playlistVideos(ctx, uow.VideoRepository(), playlist.Id)
	if err != nil {
		return nil, err
	}
	return toPlaylistDetail(playlist, videos), nil
}

func (s *playlistService) Show(ctx context.Context, userId, playlistId uuid.UUID) (*dto.PlaylistDetailResponse, error) {
	var cached cachedPlaylistDetail
	if s.cache.Get(ctx, cache.PlaylistKey(playlistId), &cached) {
		if cached.UserId != userId {
			return nil, apperror.NotFound("Playlist not found")
		}
		return &cached.Detail, nil
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	playlist, err := ownedPlaylist(ctx, uow, userId, playlistId, false)
	if err != nil {
		return nil, err
	}
	detail, err := s.loadDetail(ctx, uow, playlist)
	if err != nil {
		return nil, err
	}

	s.cache.Set(ctx, cache.PlaylistKey(playlistId), cachedPlaylistDetail{UserId: userId, Detail: *detail}, cache.PlaylistTTL)
	return detail, nil
}

func (s *playlistService) Delete(ctx context.Context, userId, playlistId uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer uow.Rollback()

	playlist, err := ownedPlaylist(ctx, uow, userId, playlistId, true)
	if err != nil {
		return err
	}
	keys, err := playlistCacheKeys(ctx, uow, []*entity.Playlist{playlist})
	if err != nil {
		return err
	}
	if err := deletePlaylistCascade(ctx, uow, playlist); err != nil {
		return err
	}
	if err := uow.Commit(); err != nil {
		return err
	}

	s.invalidate(ctx, userId, append(keys, cache.BadgesKey(userId))...)
	s.logger.Info("PLAYLIST", "Playlist deleted", map[string]interface{}{
		"user_id":     userId,
		"playlist_id": playlistId,
	})
	return nil
}

func (s *playlistService) AddVideo(ctx context.Context, userId uuid.UUID, req *dto.AddVideoRequest) (*dto.PlaylistDetailResponse, error) {
	ytId, ok := youtube.ExtractVideoID(req.VideoUrl)
	if !ok {
		return nil, apperror.BadRequest("Invalid YouTube video URL")
	}

	reader := s.uowFactory.NewUnitOfWork(ctx)
	playlist, err := ownedPlaylist(ctx, reader, userId, req.PlaylistId, false)
	if err != nil {
		return nil, err
	}
	if !playlist.IsCustomPlaylist {
		return nil, apperror.BadRequest("Videos can only be added to custom playlists")
	}
	exists, err := reader.VideoRepository().Count(ctx,
		specification.ByPlaylistID{PlaylistID: playlist.Id},
		specification.ByYtID{YtID: ytId},
	)
	if err != nil {
		return nil, err
	}
	if exists > 0 {
		return nil, apperror.BadRequest("Video already exists in this playlist")
	}

	yv, err := s.youtube.GetVideo(ctx, ytId)
	if err != nil {
		return nil, youtubeError(err, "YouTube video not found")
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	playlist, err = ownedPlaylist(ctx, uow, userId, req.PlaylistId, true)
	if err != nil {
		return nil, err
	}
	exists, err = uow.VideoRepository().Count(ctx,
		specification.ByPlaylistID{PlaylistID: playlist.Id},
		specification.ByYtID{YtID: ytId},
	)
	if err != nil {
		return nil, err
	}
	if exists > 0 {
		return nil, apperror.BadRequest("Video already exists in this playlist")
	}

	position := 0
	last, err := uow.VideoRepository().FindOne(ctx,
		specification.ByPlaylistID{PlaylistID: playlist.Id},
		specification.OrderBy{Field: "position", Desc: true},
	)
	if err != nil {
		return nil, err
	}
	if last != nil {
		position = last.Position + 1
	}

	video := newVideoFromYouTube(playlist, *yv, position)
	if err := uow.VideoRepository().Create(ctx, video); err != nil {
		return nil, err
	}
	_, badge, err := settleCompletion(ctx, uow, playlist)
	if err != nil {
		return nil, err
	}
	detail, err := s.loadDetail(ctx, uow, playlist)
	if err != nil {
		return nil, err
	}
	if err := uow.Commit(); err != nil {
		return nil, err
	}

	s.invalidate(ctx, userId, cache.PlaylistKey(playlist.Id))
	if badge != nil {
		s.badges.Announce(ctx, userId, []*entity.Badge{badge})
	}
	return detail, nil
}

func (s *playlistService) Sync(ctx context.Context, userId, playlistId uuid.UUID) (*dto.SyncPlaylistResponse, error) {
	playlist, err := ownedPlaylist(ctx, s.uowFactory.NewUnitOfWork(ctx), userId, playlistId, false)
	if err != nil {
		return nil, err
	}
	if playlist.IsCustomPlaylist || playlist.YtPlaylistId == "" {
		return nil, apperror.BadRequest("Custom playlists cannot be synced with YouTube")
	}

	snapshot, err := s.fetchSnapshot(ctx, playlist.YtPlaylistId, true)
	if err != nil {
		return nil, err
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	playlist, err = ownedPlaylist(ctx, uow, userId, playlistId, true)
	if err != nil {
		return nil, err
	}
	existing, err := playlistVideos(ctx, uow.VideoRepository(), playlist.Id)
	if err != nil {
		return nil, err
	}
	known := make(map[string]struct{}, len(existing))
	for _, v := range existing {
		known[v.YtId] = struct{}{}
	}

	added := make([]*entity.Video, 0)
	for _, yv := range snapshot.Videos {
		if _, ok := known[yv.YtId]; ok {
			continue
		}
		known[yv.YtId] = struct{}{}
		added = append(added, newVideoFromYouTube(playlist, yv, yv.Position))
	}
	if len(added) > 0 {
		if err := uow.VideoRepository().CreateBatch(ctx, added); err != nil {
			return nil, err
		}
	}

	playlist.YtInfo = ytInfoOf(snapshot.Playlist)
	if err := uow.PlaylistRepository().Update(ctx, playlist); err != nil {
		return nil, err
	}
	_, badge, err := settleCompletion(ctx, uow, playlist)
	if err != nil {
		return nil, err
	}
	if err := uow.Commit(); err != nil {
		return nil, err
	}

	s.invalidate(ctx, userId, cache.PlaylistKey(playlist.Id))
	if badge != nil {
		s.badges.Announce(ctx, userId, []*entity.Badge{badge})
	}
	s.logger.Info("PLAYLIST", "Playlist synced", map[string]interface{}{
		"playlist_id": playlist.Id,
		"new_videos":  len(added),
	})

	return &dto.SyncPlaylistResponse{
		NewVideosCount: len(added),
		TotalVideos:    len(existing) + len(added),
	}, nil
}

func (s *playlistService) Reset(ctx context.Context, userId, playlistId uuid.UUID) (*dto.ResetPlaylistResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	playlist, err := ownedPlaylist(ctx, uow, userId, playlistId, true)
	if err != nil {
		return nil, err
	}
	count, err := uow.VideoRepository().ResetProgress(ctx, playlist.Id)
	if err != nil {
		return nil, err
	}
	if playlist.Completed {
		playlist.Completed = false
		if err := uow.PlaylistRepository().Update(ctx, playlist); err != nil {
			return nil, err
		}
	}
	keys, err := playlistCacheKeys(ctx, uow, []*entity.Playlist{playlist})
	if err != nil {
		return nil, err
	}
	if err := uow.Commit(); err != nil {
		return nil, err
	}

	s.invalidate(ctx, userId, keys...)
	return &dto.ResetPlaylistResponse{Success: true, VideosCount: count}, nil
}

func (s *playlistService) ChangeCategory(ctx context.Context, userId uuid.UUID, req *dto.ChangeCategoryRequest) (*dto.ChangeCategoryResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	user, err := lockUser(ctx, uow, userId)
	if err != nil {
		return nil, err
	}
	playlist, err := ownedPlaylist(ctx, uow, userId, req.PlaylistId, true)
	if err != nil {
		return nil, err
	}
	category, userChanged, err := resolveCategory(ctx, uow, user, req.Category)
	if err != nil {
		return nil, err
	}
	playlist.Category = category
	if err := uow.PlaylistRepository().Update(ctx, playlist); err != nil {
		return nil, err
	}
	// video details carry the playlist category
	keys, err := playlistCacheKeys(ctx, uow, []*entity.Playlist{playlist})
	if err != nil {
		return nil, err
	}
	if err := uow.Commit(); err != nil {
		return nil, err
	}

	if userChanged {
		keys = append(keys, cache.UserKey(userId), cache.CategoriesKey(userId))
	}
	s.invalidate(ctx, userId, keys...)
	return &dto.ChangeCategoryResponse{Id: playlist.Id, Category: category}, nil
}

func (s *playlistService) Reorder(ctx context.Context, userId uuid.UUID, req *dto.ReorderRequest) (*dto.PlaylistDetailResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	playlist, err := ownedPlaylist(ctx, uow, userId, req.PlaylistId, true)
	if err != nil {
		return nil, err
	}
	videos, err := playlistVideos(ctx, uow.VideoRepository(), playlist.Id)
	if err != nil {
		return nil, err
	}
	byId := make(map[uuid.UUID]*entity.Video, len(videos))
	for _, v := range videos {
		byId[v.Id] = v
	}

	keys := []string{cache.PlaylistKey(playlist.Id)}
	for _, vp := range req.VideoPositions {
		video, ok := byId[vp.VideoId]
		if !ok {
			return nil, apperror.BadRequest(fmt.Sprintf("Video %s does not belong to this playlist", vp.VideoId))
		}
		video.Position = vp.Position
		if err := uow.VideoRepository().Update(ctx, video); err != nil {
			return nil, err
		}
		keys = append(keys, cache.VideoKey(video.Id))
	}

	detail, err := s.loadDetail(ctx, uow, playlist)
	if err != nil {
		return nil, err
	}
	if err := uow.Commit(); err != nil {
		return nil, err
	}

	s.invalidate(ctx, userId, keys...)
	return detail, nil
}

func (s *playlistService) TogglePin(ctx context.Context, userId, playlistId, videoId uuid.UUID) (*dto.TogglePinResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	playlist, err := ownedPlaylist(ctx, uow, userId, playlistId, false)
	if err != nil {
		return nil, err
	}
	video, err := uow.VideoRepository().FindOne(ctx,
		specification.ByID{ID: videoId},
		specification.ByPlaylistID{PlaylistID: playlist.Id},
		specification.ForUpdate{},
	)
	if err != nil {
		return nil, err
	}
	if video == nil {
		return nil, apperror.NotFound("Video not found in this playlist")
	}

	video.Pinned = !video.Pinned
	if err := uow.VideoRepository().Update(ctx, video); err != nil {
		return nil, err
	}
	if err := uow.Commit(); err != nil {
		return nil, err
	}

	s.invalidate(ctx, userId, cache.PlaylistKey(playlist.Id), cache.VideoKey(video.Id))
	return &dto.TogglePinResponse{Success: true, Pinned: video.Pinned}, nil
}
