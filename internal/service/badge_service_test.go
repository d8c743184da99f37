package service

import (
	"context"
	"testing"
	"time"

	"learnloop-be/internal/dto"
	"learnloop-be/internal/entity"
	"learnloop-be/internal/repository/specification"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// markCompletedDirectly changes a video status without going through the
// service, leaving the playlist flag and badges stale.
func markCompletedDirectly(t *testing.T, env *testEnv, videoId uuid.UUID) {
	t.Helper()
	ctx := context.Background()
	uow := env.uowFactory.NewUnitOfWork(ctx)
	video, err := uow.VideoRepository().FindOne(ctx, specification.ByID{ID: videoId})
	require.NoError(t, err)
	require.NotNil(t, video)
	video.Status = entity.VideoStatusCompleted
	require.NoError(t, uow.VideoRepository().Update(ctx, video))
}

func TestBadgeService_CheckBadgesReturnsOnlyNewBadges(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	user := env.seedUser(t)

	res, err := env.badges.CheckBadges(ctx, user.Id)
	require.NoError(t, err)
	assert.Empty(t, res.NewBadges)
	assert.Equal(t, "No new badges earned", res.Message)

	// import runs the check itself
	env.importPlaylist(t, user.Id, "PLcheck", 1)
	res, err = env.badges.CheckBadges(ctx, user.Id)
	require.NoError(t, err)
	assert.Empty(t, res.NewBadges)

	mine, err := env.badges.GetMyBadges(ctx, user.Id)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, FirstPlaylistBadgeTitle, mine[0].Title)
}

func TestBadgeService_VideoMilestones(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	user := env.seedUser(t)
	detail := env.importPlaylist(t, user.Id, "PLten", 11)

	for _, v := range detail.Videos[:10] {
		markCompletedDirectly(t, env, v.Id)
	}

	res, err := env.badges.CheckBadges(ctx, user.Id)
	require.NoError(t, err)
	require.Len(t, res.NewBadges, 1)
	assert.Equal(t, "10 Videos Completed", res.NewBadges[0].Title)
	assert.Equal(t, "New badges earned! Check your collection.", res.Message)

	notified := env.delivery.ofType(dto.NotificationBadgeEarned)
	require.NotEmpty(t, notified)
	assert.Equal(t, "10 Videos Completed", notified[len(notified)-1].Title)
}

func TestBadgeService_StreakBadge(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	user := env.seedUser(t)

	repo := env.uowFactory.NewUnitOfWork(ctx).UserActivityRepository()
	today := activityDay(time.Now())
	for i := 1; i <= 7; i++ {
		require.NoError(t, repo.Increment(ctx, user.Id, today.AddDate(0, 0, -i)))
	}

	res, err := env.badges.CheckBadges(ctx, user.Id)
	require.NoError(t, err)
	require.Len(t, res.NewBadges, 1)
	assert.Equal(t, ConsistencyBadgeTitle, res.NewBadges[0].Title)
}

func TestBadgeService_CleanupKeepsNewestDuplicate(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	user := env.seedUser(t)
	now := time.Now()

	title := entity.CompletionBadgePrefix + "Go"
	env.store.InsertBadge(entity.Badge{UserId: user.Id, Title: title, DateEarned: now.Add(-2 * time.Hour)})
	newest := env.store.InsertBadge(entity.Badge{UserId: user.Id, Title: title, DateEarned: now})
	env.store.InsertBadge(entity.Badge{UserId: user.Id, Title: title, DateEarned: now.Add(-time.Hour)})
	env.store.InsertBadge(entity.Badge{UserId: user.Id, Title: FirstPlaylistBadgeTitle, DateEarned: now})
	// other users are left alone
	env.store.InsertBadge(entity.Badge{UserId: uuid.New(), Title: title, DateEarned: now})

	res, err := env.badges.CleanupDuplicates(ctx, user.Id)
	require.NoError(t, err)
	assert.True(t, res.Success)
	assert.Equal(t, 2, res.RemovedCount)
	assert.Equal(t, "Removed 2 duplicate badges", res.Message)

	remaining := env.userBadges(t, user.Id)
	require.Len(t, remaining, 2)
	for _, b := range remaining {
		if b.Title == title {
			assert.Equal(t, newest.Id, b.Id)
		}
	}

	res, err = env.badges.CleanupDuplicates(ctx, user.Id)
	require.NoError(t, err)
	assert.Zero(t, res.RemovedCount)
}

func TestBadgeService_SyncBadges(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	user := env.seedUser(t)

	done := env.importPlaylist(t, user.Id, "PLdone", 1)
	_, err := env.videos.UpdateStatus(ctx, user.Id, &dto.UpdateStatusRequest{Id: done.Videos[0].Id, Status: "completed"})
	require.NoError(t, err)

	stale := env.importPlaylist(t, user.Id, "PLstale", 1)
	markCompletedDirectly(t, env, stale.Videos[0].Id)

	doneTitle := entity.CompletionBadgePrefix + done.Name
	env.store.InsertBadge(entity.Badge{UserId: user.Id, Title: doneTitle, DateEarned: time.Now().Add(-time.Hour)})
	env.store.InsertBadge(entity.Badge{UserId: user.Id, Title: entity.CompletionBadgePrefix + "Deleted long ago", DateEarned: time.Now()})

	res, err := env.badges.SyncBadges(ctx, user.Id)
	require.NoError(t, err)
	assert.True(t, res.Success)
	assert.Equal(t, 1, res.Stats.OrphanedBadgesRemoved)
	assert.Equal(t, 1, res.Stats.DuplicateBadgesRemoved)
	assert.Equal(t, 1, res.Stats.NewBadgesAdded)
	assert.Equal(t, 3, res.Stats.TotalBadges)
	assert.Len(t, res.Badges, 3)

	assert.ElementsMatch(t,
		[]string{FirstPlaylistBadgeTitle, doneTitle, entity.CompletionBadgePrefix + stale.Name},
		badgeTitles(env.userBadges(t, user.Id)))

	detail, err := env.playlists.Show(ctx, user.Id, stale.Id)
	require.NoError(t, err)
	assert.True(t, detail.Completed)
}

func TestBadgeService_GetAllBadgesIsACopy(t *testing.T) {
	env := newTestEnv(t)

	all := env.badges.GetAllBadges(context.Background())
	require.Len(t, all, len(badgeCatalog))
	all[0].Title = "changed"
	assert.Equal(t, FirstPlaylistBadgeTitle, env.badges.GetAllBadges(context.Background())[0].Title)
}

func TestComputeStreak(t *testing.T) {
	now := time.Date(2024, 5, 10, 15, 0, 0, 0, time.UTC)
	day := func(offset int) time.Time { return now.AddDate(0, 0, offset) }

	tests := []struct {
		name string
		days []time.Time
		want int
	}{
		{"no activity", nil, 0},
		{"today only", []time.Time{day(0)}, 1},
		{"ends yesterday", []time.Time{day(-1), day(-2), day(-3)}, 3},
		{"gap breaks streak", []time.Time{day(0), day(-1), day(-3)}, 2},
		{"stale activity", []time.Time{day(-2), day(-3)}, 0},
		{"duplicates on a day", []time.Time{day(0), day(0).Add(-time.Hour), day(-1)}, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ComputeStreak(tt.days, now))
		})
	}
}
