package memory

import (
	"context"
	"testing"
	"time"

	"learnloop-be/internal/entity"
	"learnloop-be/internal/repository/contract"
	"learnloop-be/internal/repository/specification"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUnitOfWork_RollbackRestoresSnapshot(t *testing.T) {
	ctx := context.Background()
	factory := NewRepositoryFactory(NewStore())
	userId := uuid.New()

	uow := factory.NewUnitOfWork(ctx)
	require.NoError(t, uow.Begin(ctx))
	require.NoError(t, uow.PlaylistRepository().Create(ctx, &entity.Playlist{UserId: userId, Name: "Draft", IsCustomPlaylist: true}))
	require.NoError(t, uow.Rollback())
	assert.Error(t, uow.Rollback())

	count, err := factory.NewUnitOfWork(ctx).PlaylistRepository().Count(ctx, specification.UserOwnedBy{UserID: userId})
	require.NoError(t, err)
	assert.Zero(t, count)

	uow = factory.NewUnitOfWork(ctx)
	require.NoError(t, uow.Begin(ctx))
	require.NoError(t, uow.PlaylistRepository().Create(ctx, &entity.Playlist{UserId: userId, Name: "Kept", IsCustomPlaylist: true}))
	require.NoError(t, uow.Commit())
	// deferred rollback after commit must not release the lock twice
	assert.Error(t, uow.Rollback())

	count, err = factory.NewUnitOfWork(ctx).PlaylistRepository().Count(ctx, specification.UserOwnedBy{UserID: userId})
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)
}

func TestPlaylistRepository_UniqueYoutubeIdPerUser(t *testing.T) {
	ctx := context.Background()
	repo := NewRepositoryFactory(NewStore()).NewUnitOfWork(ctx).PlaylistRepository()
	userId := uuid.New()

	require.NoError(t, repo.Create(ctx, &entity.Playlist{UserId: userId, Name: "A", YtPlaylistId: "PL1"}))
	assert.ErrorIs(t, repo.Create(ctx, &entity.Playlist{UserId: userId, Name: "B", YtPlaylistId: "PL1"}), contract.ErrDuplicateKey)
	assert.NoError(t, repo.Create(ctx, &entity.Playlist{UserId: uuid.New(), Name: "C", YtPlaylistId: "PL1"}))

	// custom playlists carry no youtube id and never collide
	assert.NoError(t, repo.Create(ctx, &entity.Playlist{UserId: userId, Name: "D", IsCustomPlaylist: true}))
	assert.NoError(t, repo.Create(ctx, &entity.Playlist{UserId: userId, Name: "E", IsCustomPlaylist: true}))
}

func TestVideoRepository_OrderAndPage(t *testing.T) {
	ctx := context.Background()
	repo := NewRepositoryFactory(NewStore()).NewUnitOfWork(ctx).VideoRepository()
	playlistId := uuid.New()

	for _, pos := range []int{2, 0, 3, 1} {
		require.NoError(t, repo.Create(ctx, &entity.Video{PlaylistId: playlistId, Position: pos, YtId: "v"}))
	}
	require.NoError(t, repo.Create(ctx, &entity.Video{PlaylistId: uuid.New(), Position: 0}))

	videos, err := repo.FindAll(ctx,
		specification.ByPlaylistID{PlaylistID: playlistId},
		specification.OrderBy{Field: "position"},
		specification.Pagination{Limit: 2, Offset: 1},
	)
	require.NoError(t, err)
	require.Len(t, videos, 2)
	assert.Equal(t, 1, videos[0].Position)
	assert.Equal(t, 2, videos[1].Position)
	assert.Equal(t, entity.VideoStatusToWatch, videos[0].Status)

	desc, err := repo.FindAll(ctx, specification.ByPlaylistID{PlaylistID: playlistId}, specification.OrderBy{Field: "position", Desc: true})
	require.NoError(t, err)
	require.Len(t, desc, 4)
	assert.Equal(t, 3, desc[0].Position)
}

func TestVideoRepository_ReturnsCopies(t *testing.T) {
	ctx := context.Background()
	repo := NewRepositoryFactory(NewStore()).NewUnitOfWork(ctx).VideoRepository()
	video := &entity.Video{PlaylistId: uuid.New(), Tags: []string{"go"}}
	require.NoError(t, repo.Create(ctx, video))

	found, err := repo.FindOne(ctx, specification.ByID{ID: video.Id})
	require.NoError(t, err)
	found.Tags[0] = "changed"
	found.Title = "changed"

	again, err := repo.FindOne(ctx, specification.ByID{ID: video.Id})
	require.NoError(t, err)
	assert.Equal(t, []string{"go"}, again.Tags)
	assert.Empty(t, again.Title)
}

func TestBadgeRepository_CreateIfAbsent(t *testing.T) {
	ctx := context.Background()
	repo := NewRepositoryFactory(NewStore()).NewUnitOfWork(ctx).BadgeRepository()
	userId := uuid.New()

	created, err := repo.CreateIfAbsent(ctx, &entity.Badge{UserId: userId, Title: "First Playlist Added"})
	require.NoError(t, err)
	assert.True(t, created)

	created, err = repo.CreateIfAbsent(ctx, &entity.Badge{UserId: userId, Title: "First Playlist Added"})
	require.NoError(t, err)
	assert.False(t, created)

	created, err = repo.CreateIfAbsent(ctx, &entity.Badge{UserId: uuid.New(), Title: "First Playlist Added"})
	require.NoError(t, err)
	assert.True(t, created)
}

func TestUserActivityRepository_IncrementPerDay(t *testing.T) {
	ctx := context.Background()
	repo := NewRepositoryFactory(NewStore()).NewUnitOfWork(ctx).UserActivityRepository()
	userId := uuid.New()
	today := time.Date(2024, 5, 10, 0, 0, 0, 0, time.UTC)

	require.NoError(t, repo.Increment(ctx, userId, today.Add(9*time.Hour)))
	require.NoError(t, repo.Increment(ctx, userId, today.Add(18*time.Hour)))
	require.NoError(t, repo.Increment(ctx, userId, today.AddDate(0, 0, -1)))
	require.NoError(t, repo.Increment(ctx, userId, today.AddDate(0, 0, -5)))

	rows, err := repo.FindSince(ctx, userId, today.AddDate(0, 0, -2))
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.True(t, today.Equal(rows[0].Day))
	assert.Equal(t, 2, rows[0].Events)
	assert.Equal(t, 1, rows[1].Events)
}
