package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"learnloop-be/internal/dto"
	"learnloop-be/internal/entity"
	"learnloop-be/internal/pkg/logger"
	"learnloop-be/internal/repository/contract"
	"learnloop-be/internal/repository/specification"
	"learnloop-be/internal/repository/unitofwork"
	"learnloop-be/pkg/cache"
	"learnloop-be/pkg/events"

	"github.com/google/uuid"
)

const (
	FirstPlaylistBadgeTitle = "First Playlist Added"
	ConsistencyBadgeTitle   = "Consistency Champion"
	PlaylistMasterTitle     = "Playlist Master"

	completionBadgeIcon = "🏆"
	streakBadgeDays     = 7
)

type videoMilestone struct {
	count int64
	title string
	icon  string
}

var videoMilestones = []videoMilestone{
	{count: 10, title: "10 Videos Completed", icon: "🎓"},
	{count: 50, title: "50 Videos Completed", icon: "🏆"},
	{count: 100, title: "100 Videos Completed", icon: "🌟"},
}

var badgeCatalog = []dto.BadgeDefinition{
	{Title: FirstPlaylistBadgeTitle, Description: "You added your first playlist to track", IconUrl: "📋"},
	{Title: "10 Videos Completed", Description: "You've completed 10 videos", IconUrl: "🎓"},
	{Title: "50 Videos Completed", Description: "You've completed 50 videos", IconUrl: "🏆"},
	{Title: "100 Videos Completed", Description: "You've completed 100 videos", IconUrl: "🌟"},
	{Title: ConsistencyBadgeTitle, Description: "You maintained a 7-day learning streak", IconUrl: "🔥"},
	{Title: PlaylistMasterTitle, Description: "You completed every video in a playlist", IconUrl: completionBadgeIcon},
}

func newBadge(userId uuid.UUID, title, description, icon string) *entity.Badge {
	return &entity.Badge{
		Id:          uuid.New(),
		UserId:      userId,
		Title:       title,
		Description: description,
		IconUrl:     icon,
		DateEarned:  time.Now(),
	}
}

func completionBadge(p *entity.Playlist) *entity.Badge {
	return newBadge(p.UserId, p.CompletionBadgeTitle(),
		fmt.Sprintf("Completed all videos in the \"%s\" playlist", p.Name), completionBadgeIcon)
}

type IBadgeService interface {
	GetMyBadges(ctx context.Context, userId uuid.UUID) ([]dto.BadgeResponse, error)
	GetAllBadges(ctx context.Context) []dto.BadgeDefinition
	CheckBadges(ctx context.Context, userId uuid.UUID) (*dto.CheckBadgesResponse, error)
	CleanupDuplicates(ctx context.Context, userId uuid.UUID) (*dto.CleanupBadgesResponse, error)
	SyncBadges(ctx context.Context, userId uuid.UUID) (*dto.SyncBadgesResponse, error)

	// Announce invalidates the badge list and notifies the user about freshly awarded badges.
	// It must be called after the awarding transaction committed.
	Announce(ctx context.Context, userId uuid.UUID, badges []*entity.Badge)
}

type badgeService struct {
	uowFactory unitofwork.RepositoryFactory
	cache      *cache.SafeStore
	publisher  events.Publisher
	delivery   NotificationDelivery
	logger     logger.ILogger
	now        func() time.Time
}

// NewBadgeService wires badge rules. When publisher is nil, awards are pushed to
// delivery directly instead of going through the event bus.
func NewBadgeService(
	uowFactory unitofwork.RepositoryFactory,
	store *cache.SafeStore,
	publisher events.Publisher,
	delivery NotificationDelivery,
	log logger.ILogger,
) IBadgeService {
	return &badgeService{
		uowFactory: uowFactory,
		cache:      store,
		publisher:  publisher,
		delivery:   delivery,
		logger:     log,
		now:        time.Now,
	}
}

func toBadgeResponses(badges []*entity.Badge) []dto.BadgeResponse {
	res := make([]dto.BadgeResponse, 0, len(badges))
	for _, b := range badges {
		res = append(res, dto.BadgeResponse{
			Id:          b.Id,
			Title:       b.Title,
			Description: b.Description,
			IconUrl:     b.IconUrl,
			DateEarned:  b.DateEarned,
		})
	}
	return res
}

func userBadges(ctx context.Context, repo contract.BadgeRepository, userId uuid.UUID) ([]*entity.Badge, error) {
	return repo.FindAll(ctx,
		specification.UserOwnedBy{UserID: userId},
		specification.OrderBy{Field: "date_earned", Desc: true},
	)
}

func (s *badgeService) GetMyBadges(ctx context.Context, userId uuid.UUID) ([]dto.BadgeResponse, error) {
	var cached []dto.BadgeResponse
	if s.cache.Get(ctx, cache.BadgesKey(userId), &cached) {
		return cached, nil
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	badges, err := userBadges(ctx, uow.BadgeRepository(), userId)
	if err != nil {
		return nil, err
	}

	res := toBadgeResponses(badges)
	s.cache.Set(ctx, cache.BadgesKey(userId), res, cache.BadgesTTL)
	return res, nil
}

func (s *badgeService) GetAllBadges(ctx context.Context) []dto.BadgeDefinition {
	res := make([]dto.BadgeDefinition, len(badgeCatalog))
	copy(res, badgeCatalog)
	return res
}

// evaluateRules awards every rule-based badge the user qualifies for and
// returns the ones that were created by this call.
func (s *badgeService) evaluateRules(ctx context.Context, uow unitofwork.UnitOfWork, userId uuid.UUID) ([]*entity.Badge, error) {
	owned := specification.UserOwnedBy{UserID: userId}
	var candidates []*entity.Badge

	playlistCount, err := uow.PlaylistRepository().Count(ctx, owned)
	if err != nil {
		return nil, err
	}
	if playlistCount > 0 {
		candidates = append(candidates, newBadge(userId, FirstPlaylistBadgeTitle, "You added your first playlist to track", "📋"))
	}

	completedVideos, err := uow.VideoRepository().Count(ctx, owned, specification.ByStatus{Status: string(entity.VideoStatusCompleted)})
	if err != nil {
		return nil, err
	}
	for _, m := range videoMilestones {
		if completedVideos >= m.count {
			candidates = append(candidates, newBadge(userId, m.title,
				fmt.Sprintf("You've completed %d videos. Keep up the great work!", m.count), m.icon))
		}
	}

	streak, err := currentStreak(ctx, uow.UserActivityRepository(), userId, s.now())
	if err != nil {
		return nil, err
	}
	if streak >= streakBadgeDays {
		candidates = append(candidates, newBadge(userId, ConsistencyBadgeTitle, "You maintained a 7-day learning streak", "🔥"))
	}

	completedPlaylists, err := uow.PlaylistRepository().FindAll(ctx, owned, specification.Filter("completed", true))
	if err != nil {
		return nil, err
	}
	for _, p := range completedPlaylists {
		candidates = append(candidates, completionBadge(p))
	}

	awarded := make([]*entity.Badge, 0)
	for _, b := range candidates {
		created, err := uow.BadgeRepository().CreateIfAbsent(ctx, b)
		if err != nil {
			return nil, err
		}
		if created {
			awarded = append(awarded, b)
		}
	}
	return awarded, nil
}

func (s *badgeService) CheckBadges(ctx context.Context, userId uuid.UUID) (*dto.CheckBadgesResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	awarded, err := s.evaluateRules(ctx, uow, userId)
	if err != nil {
		return nil, err
	}

	if err := uow.Commit(); err != nil {
		return nil, err
	}

	s.Announce(ctx, userId, awarded)

	res := &dto.CheckBadgesResponse{
		NewBadges: toBadgeResponses(awarded),
		Message:   "No new badges earned",
	}
	if len(awarded) > 0 {
		res.Message = "New badges earned! Check your collection."
	}
	return res, nil
}

func (s *badgeService) CleanupDuplicates(ctx context.Context, userId uuid.UUID) (*dto.CleanupBadgesResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	badges, err := uow.BadgeRepository().FindAll(ctx,
		specification.UserOwnedBy{UserID: userId},
		specification.TitlePrefix{Prefix: entity.CompletionBadgePrefix},
		specification.OrderBy{Field: "date_earned", Desc: true},
	)
	if err != nil {
		return nil, err
	}

	// newest first, so the first badge seen for a title is the one kept
	seen := make(map[string]struct{}, len(badges))
	removed := 0
	for _, b := range badges {
		if _, dup := seen[b.Title]; !dup {
			seen[b.Title] = struct{}{}
			continue
		}
		if err := uow.BadgeRepository().Delete(ctx, b.Id); err != nil {
			return nil, err
		}
		removed++
	}

	if err := uow.Commit(); err != nil {
		return nil, err
	}
	s.cache.Delete(ctx, cache.BadgesKey(userId))

	return &dto.CleanupBadgesResponse{
		Success:      true,
		Message:      fmt.Sprintf("Removed %d duplicate badges", removed),
		RemovedCount: removed,
	}, nil
}

func (s *badgeService) SyncBadges(ctx context.Context, userId uuid.UUID) (*dto.SyncBadgesResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	owned := specification.UserOwnedBy{UserID: userId}

	playlists, err := uow.PlaylistRepository().FindAll(ctx, owned)
	if err != nil {
		return nil, err
	}
	byName := make(map[string]*entity.Playlist, len(playlists))
	awarded := make([]*entity.Badge, 0)
	for _, p := range playlists {
		byName[p.Name] = p
		// legacy rows may carry a stale completion flag
		_, badge, err := settleCompletion(ctx, uow, p)
		if err != nil {
			return nil, err
		}
		if badge != nil {
			awarded = append(awarded, badge)
		}
	}

	completionBadges, err := uow.BadgeRepository().FindAll(ctx, owned,
		specification.TitlePrefix{Prefix: entity.CompletionBadgePrefix},
		specification.OrderBy{Field: "date_earned", Desc: true},
	)
	if err != nil {
		return nil, err
	}

	stats := dto.BadgeSyncStats{}
	kept := make(map[string]struct{}, len(completionBadges))
	for _, b := range completionBadges {
		name := strings.TrimPrefix(b.Title, entity.CompletionBadgePrefix)
		_, playlistExists := byName[name]
		_, duplicate := kept[b.Title]

		switch {
		case !playlistExists:
			stats.OrphanedBadgesRemoved++
		case duplicate:
			stats.DuplicateBadgesRemoved++
		default:
			kept[b.Title] = struct{}{}
			continue
		}
		if err := uow.BadgeRepository().Delete(ctx, b.Id); err != nil {
			return nil, err
		}
	}

	ruleBadges, err := s.evaluateRules(ctx, uow, userId)
	if err != nil {
		return nil, err
	}
	awarded = append(awarded, ruleBadges...)
	for _, b := range awarded {
		if strings.HasPrefix(b.Title, entity.CompletionBadgePrefix) {
			stats.NewBadgesAdded++
		}
	}

	final, err := userBadges(ctx, uow.BadgeRepository(), userId)
	if err != nil {
		return nil, err
	}
	stats.TotalBadges = len(final)

	if err := uow.Commit(); err != nil {
		return nil, err
	}

	keys := []string{cache.PlaylistsKey(userId)}
	for _, p := range playlists {
		keys = append(keys, cache.PlaylistKey(p.Id))
	}
	s.cache.Delete(ctx, keys...)
	s.Announce(ctx, userId, awarded)

	return &dto.SyncBadgesResponse{
		Success: true,
		Message: "Badges synchronized successfully",
		Stats:   stats,
		Badges:  toBadgeResponses(final),
	}, nil
}

func (s *badgeService) Announce(ctx context.Context, userId uuid.UUID, badges []*entity.Badge) {
	s.cache.Delete(ctx, cache.BadgesKey(userId))
	if len(badges) == 0 {
		return
	}

	for _, b := range badges {
		evt := events.NewBadgeAwarded(userId, b.Id, b.Title, b.Description, b.IconUrl, b.DateEarned)
		dispatchEvent(ctx, s.publisher, s.delivery, s.logger, userId, evt)
	}

	s.logger.Info("BADGE", "Badges awarded", map[string]interface{}{
		"user_id": userId,
		"count":   len(badges),
	})
}
