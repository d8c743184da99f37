package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"learnloop-be/internal/constant"
	"learnloop-be/internal/dto"
	"learnloop-be/internal/entity"
	"learnloop-be/internal/pkg/apperror"
	"learnloop-be/internal/pkg/logger"
	"learnloop-be/internal/repository/specification"
	"learnloop-be/internal/repository/unitofwork"
	"learnloop-be/pkg/cache"
	"learnloop-be/pkg/events"
	"learnloop-be/pkg/llm"
	"learnloop-be/pkg/search"
	"learnloop-be/pkg/transcript"
	"learnloop-be/pkg/utils"

	"github.com/google/uuid"
)

const (
	maxTranscriptChars = 12000
	summaryTemperature = 0.5
	summaryMaxTokens   = 700
)

type IVideoService interface {
	Pinned(ctx context.Context, userId uuid.UUID) (*dto.VideoListResponse, error)
	Rewatch(ctx context.Context, userId uuid.UUID) (*dto.VideoListResponse, error)
	SearchByTags(ctx context.Context, userId uuid.UUID, tags []string) (*dto.VideoListResponse, error)
	SearchNotes(ctx context.Context, userId uuid.UUID, query string) (*dto.VideoListResponse, error)
	Show(ctx context.Context, userId, videoId uuid.UUID) (*dto.VideoDetailResponse, error)

	UpdateStatus(ctx context.Context, userId uuid.UUID, req *dto.UpdateStatusRequest) (*dto.VideoStatusResponse, error)
	UpdateNote(ctx context.Context, userId uuid.UUID, req *dto.UpdateNoteRequest) (*dto.VideoNoteResponse, error)
	UpdateTime(ctx context.Context, userId uuid.UUID, req *dto.UpdateTimeRequest) (*dto.VideoTimeResponse, error)
	UpdateSummary(ctx context.Context, userId uuid.UUID, req *dto.UpdateSummaryRequest) (*dto.VideoSummaryResponse, error)
	SummaryToNote(ctx context.Context, userId, videoId uuid.UUID) (*dto.VideoNoteResponse, error)
	GenerateSummary(ctx context.Context, userId, videoId uuid.UUID) (*dto.VideoSummaryResponse, error)

	GetTags(ctx context.Context, userId, videoId uuid.UUID) (*dto.TagsResponse, error)
	AddTags(ctx context.Context, userId uuid.UUID, req *dto.TagsRequest) (*dto.TagsResponse, error)
	RemoveTags(ctx context.Context, userId uuid.UUID, req *dto.TagsRequest) (*dto.TagsResponse, error)
	ReplaceTags(ctx context.Context, userId uuid.UUID, req *dto.TagsRequest) (*dto.TagsResponse, error)

	GetResources(ctx context.Context, userId, videoId uuid.UUID) (*dto.ResourcesResponse, error)
	AddResource(ctx context.Context, userId uuid.UUID, req *dto.AddResourceRequest) (*dto.ResourcesResponse, error)
	RemoveResource(ctx context.Context, userId, videoId, resourceId uuid.UUID) (*dto.ResourcesResponse, error)

	RemoveFromPlaylist(ctx context.Context, userId, videoId uuid.UUID) (*dto.RemoveVideoResponse, error)
}

type videoService struct {
	uowFactory  unitofwork.RepositoryFactory
	cache       *cache.SafeStore
	badges      IBadgeService
	activity    IActivityTracker
	transcripts transcript.Fetcher
	llm         llm.LLMProvider
	publisher   events.Publisher
	delivery    NotificationDelivery
	logger      logger.ILogger
}

type VideoServiceDeps struct {
	UowFactory  unitofwork.RepositoryFactory
	Cache       *cache.SafeStore
	Badges      IBadgeService
	Activity    IActivityTracker
	Transcripts transcript.Fetcher
	LLM         llm.LLMProvider
	Publisher   events.Publisher
	Delivery    NotificationDelivery
	Logger      logger.ILogger
}

func NewVideoService(deps VideoServiceDeps) IVideoService {
	return &videoService{
		uowFactory:  deps.UowFactory,
		cache:       deps.Cache,
		badges:      deps.Badges,
		activity:    deps.Activity,
		transcripts: deps.Transcripts,
		llm:         deps.LLM,
		publisher:   deps.Publisher,
		delivery:    deps.Delivery,
		logger:      deps.Logger,
	}
}

type cachedVideoDetail struct {
	UserId uuid.UUID               `json:"userId"`
	Detail dto.VideoDetailResponse `json:"detail"`
}

// ownedVideo loads a video and checks it belongs to userId: 404 when missing,
// 403 when it belongs to someone else.
func ownedVideo(ctx context.Context, uow unitofwork.UnitOfWork, userId, videoId uuid.UUID, lock bool) (*entity.Video, error) {
	specs := []specification.Specification{specification.ByID{ID: videoId}}
	if lock {
		specs = append(specs, specification.ForUpdate{})
	}
	video, err := uow.VideoRepository().FindOne(ctx, specs...)
	if err != nil {
		return nil, err
	}
	if video == nil {
		return nil, apperror.NotFound("Video not found")
	}
	if video.UserId != userId {
		return nil, apperror.Forbidden("Access denied")
	}
	return video, nil
}

func nonNilTags(tags []string) []string {
	if tags == nil {
		return []string{}
	}
	return tags
}

func nonNilResources(resources []entity.Resource) []entity.Resource {
	if resources == nil {
		return []entity.Resource{}
	}
	return resources
}

func (s *videoService) invalidate(ctx context.Context, userId uuid.UUID, video *entity.Video) {
	s.cache.Delete(ctx,
		cache.VideoKey(video.Id),
		cache.PlaylistKey(video.PlaylistId),
		cache.PlaylistsKey(userId),
	)
}

// mutate applies fn to the locked video and persists it in one transaction.
func (s *videoService) mutate(ctx context.Context, userId, videoId uuid.UUID, fn func(v *entity.Video) error) (*entity.Video, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	video, err := ownedVideo(ctx, uow, userId, videoId, true)
	if err != nil {
		return nil, err
	}
	if err := fn(video); err != nil {
		return nil, err
	}
	if err := uow.VideoRepository().Update(ctx, video); err != nil {
		return nil, err
	}
	if err := uow.Commit(); err != nil {
		return nil, err
	}

	s.invalidate(ctx, userId, video)
	return video, nil
}

func (s *videoService) listVideos(ctx context.Context, userId uuid.UUID, includeNotes bool, specs ...specification.Specification) (*dto.VideoListResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	specs = append([]specification.Specification{specification.UserOwnedBy{UserID: userId}}, specs...)
	specs = append(specs, specification.OrderBy{Field: "updated_at", Desc: true})

	videos, err := uow.VideoRepository().FindAll(ctx, specs...)
	if err != nil {
		return nil, err
	}

	names := make(map[uuid.UUID]string)
	if len(videos) > 0 {
		ids := make([]uuid.UUID, 0, len(videos))
		for _, v := range videos {
			if _, ok := names[v.PlaylistId]; !ok {
				names[v.PlaylistId] = ""
				ids = append(ids, v.PlaylistId)
			}
		}
		playlists, err := uow.PlaylistRepository().FindAll(ctx, specification.ByIDs{IDs: ids})
		if err != nil {
			return nil, err
		}
		for _, p := range playlists {
			names[p.Id] = p.Name
		}
	}

	items := make([]dto.VideoListItem, 0, len(videos))
	for _, v := range videos {
		item := dto.VideoListItem{
			Id:           v.Id,
			PlaylistId:   v.PlaylistId,
			PlaylistName: names[v.PlaylistId],
			YtId:         v.YtId,
			Title:        v.Title,
			Thumbnail:    v.Thumbnail,
			Duration:     v.Duration,
			Status:       v.Status,
			Tags:         nonNilTags(v.Tags),
			Pinned:       v.Pinned,
			UpdatedAt:    v.UpdatedAt,
		}
		if includeNotes {
			item.Notes = v.Notes
		}
		items = append(items, item)
	}
	return &dto.VideoListResponse{Videos: items, Count: len(items)}, nil
}

func (s *videoService) Pinned(ctx context.Context, userId uuid.UUID) (*dto.VideoListResponse, error) {
	return s.listVideos(ctx, userId, false, specification.Pinned{})
}

func (s *videoService) Rewatch(ctx context.Context, userId uuid.UUID) (*dto.VideoListResponse, error) {
	return s.listVideos(ctx, userId, false, specification.ByStatus{Status: string(entity.VideoStatusRewatch)})
}

func (s *videoService) SearchByTags(ctx context.Context, userId uuid.UUID, tags []string) (*dto.VideoListResponse, error) {
	tags = utils.NormalizeTags(tags)
	if len(tags) == 0 {
		return nil, apperror.BadRequest("At least one tag is required")
	}
	return s.listVideos(ctx, userId, false, specification.HasAnyTag{Tags: tags})
}

func (s *videoService) SearchNotes(ctx context.Context, userId uuid.UUID, query string) (*dto.VideoListResponse, error) {
	filters := search.ParseNoteQuery(query)
	if filters.Empty() {
		return nil, apperror.BadRequest("Search query is required")
	}

	var specs []specification.Specification
	if filters.Text != "" {
		specs = append(specs, specification.NotesContain{Query: filters.Text})
	}
	if tags := utils.NormalizeTags(filters.Tags); len(tags) > 0 {
		specs = append(specs, specification.HasAnyTag{Tags: tags})
	}
	if filters.Status != "" {
		if !entity.VideoStatus(filters.Status).Valid() {
			return nil, apperror.BadRequest("Invalid status filter")
		}
		specs = append(specs, specification.ByStatus{Status: filters.Status})
	}
	return s.listVideos(ctx, userId, true, specs...)
}

func (s *videoService) Show(ctx context.Context, userId, videoId uuid.UUID) (*dto.VideoDetailResponse, error) {
	var cached cachedVideoDetail
	if s.cache.Get(ctx, cache.VideoKey(videoId), &cached) {
		if cached.UserId != userId {
			return nil, apperror.Forbidden("Access denied")
		}
		return &cached.Detail, nil
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	video, err := ownedVideo(ctx, uow, userId, videoId, false)
	if err != nil {
		return nil, err
	}
	playlist, err := uow.PlaylistRepository().FindOne(ctx, specification.ByID{ID: video.PlaylistId})
	if err != nil {
		return nil, err
	}

	detail := dto.VideoDetailResponse{
		Id:                 video.Id,
		PlaylistId:         video.PlaylistId,
		YtId:               video.YtId,
		Title:              video.Title,
		Description:        video.Description,
		Thumbnail:          video.Thumbnail,
		Duration:           video.Duration,
		ViewCount:          video.ViewCount,
		LikeCount:          video.LikeCount,
		PublishedAt:        video.PublishedAt,
		ChannelTitle:       video.ChannelTitle,
		Status:             video.Status,
		TimeSpent:          video.TimeSpent,
		Notes:              video.Notes,
		AiSummary:          video.AiSummary,
		AiSummaryGenerated: video.AiSummaryGenerated,
		Tags:               nonNilTags(video.Tags),
		Resources:          nonNilResources(video.Resources),
		Pinned:             video.Pinned,
		Position:           video.Position,
		Timestamps:         utils.ParseTimestamps(video.Description),
		CreatedAt:          video.CreatedAt,
	}
	if playlist != nil {
		detail.PlaylistName = playlist.Name
		detail.PlaylistCategory = playlist.Category
	}

	s.cache.Set(ctx, cache.VideoKey(videoId), cachedVideoDetail{UserId: userId, Detail: detail}, cache.VideoTTL)
	return &detail, nil
}

func (s *videoService) UpdateStatus(ctx context.Context, userId uuid.UUID, req *dto.UpdateStatusRequest) (*dto.VideoStatusResponse, error) {
	status := entity.VideoStatus(req.Status)
	if !status.Valid() {
		return nil, apperror.BadRequest("Invalid status value")
	}

	current, err := ownedVideo(ctx, s.uowFactory.NewUnitOfWork(ctx), userId, req.Id, false)
	if err != nil {
		return nil, err
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	// playlist row first, then the video, so concurrent updates of sibling
	// videos serialize on the playlist
	playlist, err := ownedPlaylist(ctx, uow, userId, current.PlaylistId, true)
	if err != nil {
		return nil, err
	}
	video, err := ownedVideo(ctx, uow, userId, req.Id, true)
	if err != nil {
		return nil, err
	}

	video.Status = status
	if err := uow.VideoRepository().Update(ctx, video); err != nil {
		return nil, err
	}
	changed, badge, err := settleCompletion(ctx, uow, playlist)
	if err != nil {
		return nil, err
	}
	if err := uow.Commit(); err != nil {
		return nil, err
	}

	s.invalidate(ctx, userId, video)
	s.activity.Track(ctx, userId, ActivityStatusChanged)

	res := &dto.VideoStatusResponse{
		Id:                video.Id,
		Status:            video.Status,
		PlaylistCompleted: playlist.Completed,
		NewBadges:         []dto.BadgeResponse{},
	}

	if changed && playlist.Completed {
		dispatchEvent(ctx, s.publisher, s.delivery, s.logger, userId,
			events.NewPlaylistCompleted(userId, playlist.Id, playlist.Name))
	}
	if badge != nil {
		s.badges.Announce(ctx, userId, []*entity.Badge{badge})
		res.NewBadges = append(res.NewBadges, toBadgeResponses([]*entity.Badge{badge})...)
	}

	if status == entity.VideoStatusCompleted {
		checked, err := s.badges.CheckBadges(ctx, userId)
		if err != nil {
			s.logger.Warn("VIDEO", "Badge check failed", map[string]interface{}{
				"user_id": userId,
				"error":   err.Error(),
			})
		} else {
			res.NewBadges = append(res.NewBadges, checked.NewBadges...)
		}
	}

	return res, nil
}

func (s *videoService) UpdateNote(ctx context.Context, userId uuid.UUID, req *dto.UpdateNoteRequest) (*dto.VideoNoteResponse, error) {
	if req.Note == nil {
		return nil, apperror.BadRequest("Note field is required")
	}
	video, err := s.mutate(ctx, userId, req.Id, func(v *entity.Video) error {
		v.Notes = *req.Note
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.activity.Track(ctx, userId, ActivityNoteUpdated)
	return &dto.VideoNoteResponse{Id: video.Id, Notes: video.Notes}, nil
}

func (s *videoService) UpdateTime(ctx context.Context, userId uuid.UUID, req *dto.UpdateTimeRequest) (*dto.VideoTimeResponse, error) {
	if req.TimeSpent == nil || *req.TimeSpent < 0 {
		return nil, apperror.BadRequest("Valid timeSpent value is required")
	}
	video, err := s.mutate(ctx, userId, req.Id, func(v *entity.Video) error {
		v.TimeSpent = *req.TimeSpent
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.activity.Track(ctx, userId, ActivityTimeLogged)
	return &dto.VideoTimeResponse{Id: video.Id, TimeSpent: video.TimeSpent}, nil
}

func (s *videoService) UpdateSummary(ctx context.Context, userId uuid.UUID, req *dto.UpdateSummaryRequest) (*dto.VideoSummaryResponse, error) {
	if strings.TrimSpace(req.Summary) == "" {
		return nil, apperror.BadRequest("Summary is required")
	}
	video, err := s.mutate(ctx, userId, req.Id, func(v *entity.Video) error {
		v.AiSummary = req.Summary
		v.AiSummaryGenerated = true
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &dto.VideoSummaryResponse{
		Id:                 video.Id,
		AiSummary:          video.AiSummary,
		AiSummaryGenerated: video.AiSummaryGenerated,
	}, nil
}

func (s *videoService) SummaryToNote(ctx context.Context, userId, videoId uuid.UUID) (*dto.VideoNoteResponse, error) {
	video, err := s.mutate(ctx, userId, videoId, func(v *entity.Video) error {
		if strings.TrimSpace(v.AiSummary) == "" {
			return apperror.BadRequest("No AI summary available to copy")
		}
		v.Notes = v.AiSummary
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.activity.Track(ctx, userId, ActivityNoteUpdated)
	return &dto.VideoNoteResponse{Id: video.Id, Notes: video.Notes}, nil
}

func (s *videoService) transcriptFor(ctx context.Context, ytId string) (string, error) {
	var text string
	if s.cache.Get(ctx, cache.TranscriptKey(ytId), &text) && text != "" {
		return text, nil
	}
	text, err := s.transcripts.Fetch(ctx, ytId)
	if err != nil {
		return "", err
	}
	s.cache.Set(ctx, cache.TranscriptKey(ytId), text, cache.TranscriptTTL)
	return text, nil
}

// summarize returns the cached summary of ytId or asks the model for one.
func (s *videoService) summarize(ctx context.Context, ytId, title string) (string, error) {
	var summary string
	if s.cache.Get(ctx, cache.SummaryKey(ytId), &summary) && summary != "" {
		return summary, nil
	}
	if s.llm == nil {
		return "", apperror.Unavailable("AI summaries are not configured", nil)
	}

	text, err := s.transcriptFor(ctx, ytId)
	if err != nil {
		if errors.Is(err, transcript.ErrNoTranscript) {
			return "", apperror.NotFound("No transcript available for this video")
		}
		return "", apperror.Unavailable("Could not fetch video transcript", err)
	}

	history := []llm.Message{
		{Role: constant.ChatMessageRoleSystem, Content: constant.SummarySystemPromptV1},
		{Role: constant.ChatMessageRoleUser, Content: fmt.Sprintf(constant.SummaryUserPromptV1,
			title, utils.Truncate(text, maxTranscriptChars, "..."))},
	}
	summary, err = s.llm.Chat(ctx, history,
		llm.WithTemperature(summaryTemperature),
		llm.WithMaxTokens(summaryMaxTokens),
	)
	if err != nil {
		if errors.Is(err, llm.ErrRateLimited) {
			return "", apperror.TooManyRequests("Rate limit exceeded. Please try again later.", err)
		}
		return "", apperror.Unavailable("Error generating summary", err)
	}
	summary = strings.TrimSpace(summary)

	s.cache.Set(ctx, cache.SummaryKey(ytId), summary, cache.SummaryTTL)
	return summary, nil
}

func (s *videoService) GenerateSummary(ctx context.Context, userId, videoId uuid.UUID) (*dto.VideoSummaryResponse, error) {
	current, err := ownedVideo(ctx, s.uowFactory.NewUnitOfWork(ctx), userId, videoId, false)
	if err != nil {
		return nil, err
	}
	if current.AiSummaryGenerated {
		return nil, apperror.BadRequest("Summary already exists for this video").
			WithDetails(map[string]interface{}{"aiSummary": current.AiSummary})
	}

	summary, err := s.summarize(ctx, current.YtId, current.Title)
	if err != nil {
		s.logger.Error("VIDEO", "Summary generation failed", map[string]interface{}{
			"video_id": videoId,
			"yt_id":    current.YtId,
			"error":    err.Error(),
		})
		return nil, err
	}

	video, err := s.mutate(ctx, userId, videoId, func(v *entity.Video) error {
		v.AiSummary = summary
		v.AiSummaryGenerated = true
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.activity.Track(ctx, userId, ActivitySummary)

	return &dto.VideoSummaryResponse{
		Id:                 video.Id,
		AiSummary:          video.AiSummary,
		AiSummaryGenerated: true,
	}, nil
}

func (s *videoService) GetTags(ctx context.Context, userId, videoId uuid.UUID) (*dto.TagsResponse, error) {
	video, err := ownedVideo(ctx, s.uowFactory.NewUnitOfWork(ctx), userId, videoId, false)
	if err != nil {
		return nil, err
	}
	return &dto.TagsResponse{Success: true, Tags: nonNilTags(video.Tags)}, nil
}

func (s *videoService) AddTags(ctx context.Context, userId uuid.UUID, req *dto.TagsRequest) (*dto.TagsResponse, error) {
	video, err := s.mutate(ctx, userId, req.Id, func(v *entity.Video) error {
		v.Tags = utils.NormalizeTags(append(append([]string{}, v.Tags...), req.Tags...))
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &dto.TagsResponse{Success: true, Tags: video.Tags}, nil
}

func (s *videoService) RemoveTags(ctx context.Context, userId uuid.UUID, req *dto.TagsRequest) (*dto.TagsResponse, error) {
	drop := make(map[string]struct{})
	for _, t := range utils.NormalizeTags(req.Tags) {
		drop[t] = struct{}{}
	}
	video, err := s.mutate(ctx, userId, req.Id, func(v *entity.Video) error {
		kept := make([]string, 0, len(v.Tags))
		for _, t := range v.Tags {
			if _, ok := drop[t]; !ok {
				kept = append(kept, t)
			}
		}
		v.Tags = kept
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &dto.TagsResponse{Success: true, Tags: video.Tags}, nil
}

func (s *videoService) ReplaceTags(ctx context.Context, userId uuid.UUID, req *dto.TagsRequest) (*dto.TagsResponse, error) {
	video, err := s.mutate(ctx, userId, req.Id, func(v *entity.Video) error {
		v.Tags = utils.NormalizeTags(req.Tags)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &dto.TagsResponse{Success: true, Tags: video.Tags}, nil
}

func (s *videoService) GetResources(ctx context.Context, userId, videoId uuid.UUID) (*dto.ResourcesResponse, error) {
	video, err := ownedVideo(ctx, s.uowFactory.NewUnitOfWork(ctx), userId, videoId, false)
	if err != nil {
		return nil, err
	}
	return &dto.ResourcesResponse{Success: true, Resources: nonNilResources(video.Resources)}, nil
}

func (s *videoService) AddResource(ctx context.Context, userId uuid.UUID, req *dto.AddResourceRequest) (*dto.ResourcesResponse, error) {
	title := strings.TrimSpace(req.Title)
	url := strings.TrimSpace(req.Url)
	if title == "" || url == "" {
		return nil, apperror.BadRequest("Title and URL are required")
	}
	video, err := s.mutate(ctx, userId, req.Id, func(v *entity.Video) error {
		v.Resources = append(v.Resources, entity.Resource{
			Id:    uuid.New(),
			Title: title,
			Url:   url,
			Type:  entity.ParseResourceType(req.Type),
		})
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &dto.ResourcesResponse{Success: true, Resources: video.Resources}, nil
}

func (s *videoService) RemoveResource(ctx context.Context, userId, videoId, resourceId uuid.UUID) (*dto.ResourcesResponse, error) {
	video, err := s.mutate(ctx, userId, videoId, func(v *entity.Video) error {
		for i, r := range v.Resources {
			if r.Id == resourceId {
				v.Resources = append(v.Resources[:i:i], v.Resources[i+1:]...)
				return nil
			}
		}
		return apperror.NotFound("Resource not found")
	})
	if err != nil {
		return nil, err
	}
	return &dto.ResourcesResponse{Success: true, Resources: nonNilResources(video.Resources)}, nil
}

func (s *videoService) RemoveFromPlaylist(ctx context.Context, userId, videoId uuid.UUID) (*dto.RemoveVideoResponse, error) {
	current, err := ownedVideo(ctx, s.uowFactory.NewUnitOfWork(ctx), userId, videoId, false)
	if err != nil {
		return nil, err
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	playlist, err := ownedPlaylist(ctx, uow, userId, current.PlaylistId, true)
	if err != nil {
		return nil, err
	}
	if !playlist.IsCustomPlaylist {
		return nil, apperror.BadRequest("Videos can only be removed from custom playlists")
	}
	video, err := ownedVideo(ctx, uow, userId, videoId, true)
	if err != nil {
		return nil, err
	}
	if err := uow.VideoRepository().Delete(ctx, video.Id); err != nil {
		return nil, err
	}
	_, badge, err := settleCompletion(ctx, uow, playlist)
	if err != nil {
		return nil, err
	}
	if err := uow.Commit(); err != nil {
		return nil, err
	}

	s.invalidate(ctx, userId, video)
	if badge != nil {
		s.badges.Announce(ctx, userId, []*entity.Badge{badge})
	}
	return &dto.RemoveVideoResponse{Success: true, PlaylistId: playlist.Id}, nil
}
