package integration

import (
	"context"
	"log"
	"os"
	"testing"
	"time"

	"learnloop-be/internal/entity"
	"learnloop-be/internal/repository/contract"
	"learnloop-be/internal/repository/specification"
	"learnloop-be/internal/repository/unitofwork"
	"learnloop-be/pkg/database"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// openDB connects to the database named by DB_CONNECTION_STRING. The schema
// must already be migrated with cmd/migrate.
func openDB(t *testing.T) *gorm.DB {
	t.Helper()
	if err := godotenv.Load("../../.env"); err != nil {
		log.Println("No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		t.Skip("Skipping integration test: DB_CONNECTION_STRING not set")
	}

	gormDB, err := database.NewGormDBFromDSN(dsn, "silent")
	require.NoError(t, err, "Failed to connect to DB")
	return gormDB
}

func createUser(t *testing.T, uowFactory unitofwork.RepositoryFactory) *entity.User {
	t.Helper()
	ctx := context.Background()
	user := &entity.User{
		Id:         uuid.New(),
		Name:       "Integration Learner",
		Email:      "test-integration-" + uuid.NewString() + "@example.com",
		Categories: []string{entity.UncategorizedCategory},
	}
	require.NoError(t, uowFactory.NewUnitOfWork(ctx).UserRepository().Create(ctx, user))
	return user
}

func TestGormRepositories(t *testing.T) {
	gormDB := openDB(t)
	ctx := context.Background()

	uowFactory := unitofwork.NewRepositoryFactory(gormDB)
	user := createUser(t, uowFactory)
	t.Cleanup(func() {
		gormDB.Exec("DELETE FROM videos WHERE user_id = ?", user.Id)
		gormDB.Exec("DELETE FROM playlists WHERE user_id = ?", user.Id)
		gormDB.Exec("DELETE FROM badges WHERE user_id = ?", user.Id)
		gormDB.Exec("DELETE FROM user_activities WHERE user_id = ?", user.Id)
		gormDB.Exec("DELETE FROM users WHERE id = ?", user.Id)
	})

	t.Run("user round trip keeps categories", func(t *testing.T) {
		found, err := uowFactory.NewUnitOfWork(ctx).UserRepository().FindOne(ctx, specification.ByEmail{Email: user.Email})
		require.NoError(t, err)
		require.NotNil(t, found)
		assert.Equal(t, []string{entity.UncategorizedCategory}, found.Categories)
	})

	var playlist *entity.Playlist
	t.Run("playlist unique per user and youtube id", func(t *testing.T) {
		repo := uowFactory.NewUnitOfWork(ctx).PlaylistRepository()
		playlist = &entity.Playlist{
			Id:           uuid.New(),
			UserId:       user.Id,
			Name:         "Integration course",
			Category:     entity.UncategorizedCategory,
			YtPlaylistId: "PLintegration",
			YtInfo:       entity.YtPlaylistInfo{Title: "Integration course", ItemCount: 2},
		}
		require.NoError(t, repo.Create(ctx, playlist))

		dup := *playlist
		dup.Id = uuid.New()
		assert.ErrorIs(t, repo.Create(ctx, &dup), contract.ErrDuplicateKey)

		found, err := repo.FindOne(ctx, specification.ByID{ID: playlist.Id})
		require.NoError(t, err)
		require.NotNil(t, found)
		assert.Equal(t, 2, found.YtInfo.ItemCount)
	})

	t.Run("videos keep tags and reset progress", func(t *testing.T) {
		require.NotNil(t, playlist)
		repo := uowFactory.NewUnitOfWork(ctx).VideoRepository()
		videos := []*entity.Video{
			{Id: uuid.New(), PlaylistId: playlist.Id, UserId: user.Id, YtId: "aaaaaaaaaaa", Title: "One", Status: entity.VideoStatusCompleted, Tags: []string{"go"}, Position: 0},
			{Id: uuid.New(), PlaylistId: playlist.Id, UserId: user.Id, YtId: "bbbbbbbbbbb", Title: "Two", Status: entity.VideoStatusInProgress, Position: 1},
		}
		require.NoError(t, repo.CreateBatch(ctx, videos))

		found, err := repo.FindOne(ctx, specification.ByID{ID: videos[0].Id})
		require.NoError(t, err)
		require.NotNil(t, found)
		assert.Equal(t, []string{"go"}, found.Tags)

		reset, err := repo.ResetProgress(ctx, playlist.Id)
		require.NoError(t, err)
		assert.EqualValues(t, 2, reset)

		count, err := repo.Count(ctx, specification.ByPlaylistID{PlaylistID: playlist.Id}, specification.ByStatus{Status: string(entity.VideoStatusCompleted)})
		require.NoError(t, err)
		assert.Zero(t, count)
	})

	t.Run("badge is created at most once per title", func(t *testing.T) {
		repo := uowFactory.NewUnitOfWork(ctx).BadgeRepository()
		badge := &entity.Badge{UserId: user.Id, Title: entity.CompletionBadgePrefix + "Integration course", DateEarned: time.Now()}

		created, err := repo.CreateIfAbsent(ctx, badge)
		require.NoError(t, err)
		assert.True(t, created)

		again := &entity.Badge{UserId: user.Id, Title: badge.Title, DateEarned: time.Now()}
		created, err = repo.CreateIfAbsent(ctx, again)
		require.NoError(t, err)
		assert.False(t, created)

		count, err := repo.Count(ctx, specification.UserOwnedBy{UserID: user.Id})
		require.NoError(t, err)
		assert.EqualValues(t, 1, count)
	})

	t.Run("activity increments the same day row", func(t *testing.T) {
		repo := uowFactory.NewUnitOfWork(ctx).UserActivityRepository()
		day := time.Now().UTC().Truncate(24 * time.Hour)
		require.NoError(t, repo.Increment(ctx, user.Id, day))
		require.NoError(t, repo.Increment(ctx, user.Id, day))

		rows, err := repo.FindSince(ctx, user.Id, day)
		require.NoError(t, err)
		require.Len(t, rows, 1)
		assert.Equal(t, 2, rows[0].Events)
	})

	t.Run("rollback discards writes", func(t *testing.T) {
		uow := uowFactory.NewUnitOfWork(ctx)
		require.NoError(t, uow.Begin(ctx))
		require.NoError(t, uow.PlaylistRepository().Create(ctx, &entity.Playlist{
			Id: uuid.New(), UserId: user.Id, Name: "Never saved", Category: entity.UncategorizedCategory, IsCustomPlaylist: true,
		}))
		require.NoError(t, uow.Rollback())

		count, err := uowFactory.NewUnitOfWork(ctx).PlaylistRepository().Count(ctx, specification.UserOwnedBy{UserID: user.Id})
		require.NoError(t, err)
		assert.EqualValues(t, 1, count)
	})
}
