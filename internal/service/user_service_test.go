package service

import (
	"context"
	"testing"

	"learnloop-be/internal/dto"
	"learnloop-be/internal/entity"
	"learnloop-be/internal/pkg/apperror"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserService_AddCategory(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	user := env.seedUser(t)

	categories, err := env.users.AddCategory(ctx, user.Id, &dto.AddCategoryRequest{Category: "  Go  "})
	require.NoError(t, err)
	assert.Equal(t, []string{"Go"}, categories)

	_, err = env.users.AddCategory(ctx, user.Id, &dto.AddCategoryRequest{Category: "Go"})
	requireAppError(t, err, apperror.KindBadRequest, "Category already exists")

	_, err = env.users.AddCategory(ctx, user.Id, &dto.AddCategoryRequest{Category: " "})
	requireAppError(t, err, apperror.KindBadRequest, "Category name is required")

	_, err = env.users.AddCategory(ctx, uuid.New(), &dto.AddCategoryRequest{Category: "Go"})
	requireAppError(t, err, apperror.KindNotFound, "User not found")
}

func TestUserService_UpdateCategoryRenamesPlaylists(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	user := env.seedUser(t, "Go", "Rust")
	playlist, err := env.playlists.Add(ctx, user.Id, &dto.AddPlaylistRequest{Name: "Mine", Category: "Go", IsCustomPlaylist: true})
	require.NoError(t, err)

	// warm the list cache so the rename has to invalidate it
	_, err = env.playlists.List(ctx, user.Id)
	require.NoError(t, err)

	categories, err := env.users.UpdateCategory(ctx, user.Id, &dto.UpdateCategoryRequest{OldCategory: "Go", NewCategory: "Golang"})
	require.NoError(t, err)
	assert.Equal(t, []string{"Golang", "Rust"}, categories)

	detail, err := env.playlists.Show(ctx, user.Id, playlist.Id)
	require.NoError(t, err)
	assert.Equal(t, "Golang", detail.Category)

	list, err := env.playlists.List(ctx, user.Id)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Golang", list[0].Category)

	// renaming to the same name changes nothing
	categories, err = env.users.UpdateCategory(ctx, user.Id, &dto.UpdateCategoryRequest{OldCategory: "Rust", NewCategory: "Rust"})
	require.NoError(t, err)
	assert.Equal(t, []string{"Golang", "Rust"}, categories)

	_, err = env.users.UpdateCategory(ctx, user.Id, &dto.UpdateCategoryRequest{OldCategory: "Rust", NewCategory: "Golang"})
	requireAppError(t, err, apperror.KindBadRequest, "New category name already exists")

	_, err = env.users.UpdateCategory(ctx, user.Id, &dto.UpdateCategoryRequest{OldCategory: "Haskell", NewCategory: "Elm"})
	requireAppError(t, err, apperror.KindBadRequest, "Category does not exist")
}

func TestUserService_DeleteCategory(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	user := env.seedUser(t, "Go", "Empty")
	env.youtube.addPlaylist("PLcat", 2)
	detail, err := env.playlists.Add(ctx, user.Id, &dto.AddPlaylistRequest{Name: "Go course", Category: "Go", YtPlaylistUrl: ytPlaylistURL("PLcat")})
	require.NoError(t, err)

	res, err := env.users.DeleteCategory(ctx, user.Id, &dto.DeleteCategoryRequest{Category: "Empty"})
	require.NoError(t, err)
	assert.Equal(t, []string{"Go"}, res.Categories)
	assert.Zero(t, res.DeletedPlaylistsCount)

	_, err = env.users.DeleteCategory(ctx, user.Id, &dto.DeleteCategoryRequest{Category: "Go"})
	requireAppError(t, err, apperror.KindBadRequest, "")
	appErr, _ := apperror.As(err)
	assert.Equal(t, true, appErr.Details["hasPlaylists"])
	assert.Equal(t, 1, appErr.Details["count"])

	res, err = env.users.DeleteCategory(ctx, user.Id, &dto.DeleteCategoryRequest{Category: "Go", DeleteAssociatedPlaylists: true})
	require.NoError(t, err)
	assert.Empty(t, res.Categories)
	assert.Equal(t, 1, res.DeletedPlaylistsCount)

	_, err = env.playlists.Show(ctx, user.Id, detail.Id)
	requireAppError(t, err, apperror.KindNotFound, "Playlist not found")
	_, err = env.videos.Show(ctx, user.Id, detail.Videos[0].Id)
	requireAppError(t, err, apperror.KindNotFound, "Video not found")

	_, err = env.users.DeleteCategory(ctx, user.Id, &dto.DeleteCategoryRequest{Category: "Go"})
	requireAppError(t, err, apperror.KindBadRequest, "Category does not exist")
}

func TestUserService_DeletingUncategorizedIsRecreatedOnDemand(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	user := env.seedUser(t)
	env.importPlaylist(t, user.Id, "PLun", 1)

	_, err := env.users.DeleteCategory(ctx, user.Id, &dto.DeleteCategoryRequest{Category: entity.UncategorizedCategory, DeleteAssociatedPlaylists: true})
	require.NoError(t, err)
	assert.Empty(t, env.loadUser(t, user.Id).Categories)

	detail := env.importPlaylist(t, user.Id, "PLun2", 1)
	assert.Equal(t, entity.UncategorizedCategory, detail.Category)
	assert.Equal(t, []string{entity.UncategorizedCategory}, env.loadUser(t, user.Id).Categories)
}

func TestUserService_DailyGoal(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	user := env.seedUser(t)

	goal, err := env.users.GetDailyGoal(ctx, user.Id)
	require.NoError(t, err)
	assert.Empty(t, goal.DailyGoal)

	text := "Finish the Go concurrency playlist"
	goal, err = env.users.SetDailyGoal(ctx, user.Id, &dto.DailyGoalRequest{DailyGoal: &text})
	require.NoError(t, err)
	assert.Equal(t, text, goal.DailyGoal)

	goal, err = env.users.GetDailyGoal(ctx, user.Id)
	require.NoError(t, err)
	assert.Equal(t, text, goal.DailyGoal)
	assert.Equal(t, text, env.loadUser(t, user.Id).DailyGoal)

	cleared := ""
	goal, err = env.users.SetDailyGoal(ctx, user.Id, &dto.DailyGoalRequest{DailyGoal: &cleared})
	require.NoError(t, err)
	assert.Empty(t, goal.DailyGoal)

	_, err = env.users.SetDailyGoal(ctx, user.Id, &dto.DailyGoalRequest{})
	requireAppError(t, err, apperror.KindBadRequest, "Daily goal is required")
}
