package service

import (
	"context"
	"sync"
	"testing"

	"learnloop-be/internal/constant"
	"learnloop-be/internal/dto"
	"learnloop-be/internal/entity"
	"learnloop-be/internal/pkg/apperror"
	"learnloop-be/internal/pkg/logger"
	"learnloop-be/pkg/transcript"
	"learnloop-be/pkg/youtube"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVideoService_ConcurrentCompletionAwardsBadgeOnce(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	user := env.seedUser(t)
	detail := env.importPlaylist(t, user.Id, "PLrace", 6)
	badgeTitle := entity.CompletionBadgePrefix + detail.Name

	var wg sync.WaitGroup
	completedFlags := make([]bool, len(detail.Videos))
	for i, v := range detail.Videos {
		wg.Add(1)
		go func(i int, id uuid.UUID) {
			defer wg.Done()
			res, err := env.videos.UpdateStatus(ctx, user.Id, &dto.UpdateStatusRequest{Id: id, Status: "completed"})
			if assert.NoError(t, err) {
				completedFlags[i] = res.PlaylistCompleted
			}
		}(i, v.Id)
	}
	wg.Wait()

	titles := badgeTitles(env.userBadges(t, user.Id))
	count := 0
	for _, title := range titles {
		if title == badgeTitle {
			count++
		}
	}
	assert.Equal(t, 1, count)

	// only the update that finished the playlist reports it
	reported := 0
	for _, done := range completedFlags {
		if done {
			reported++
		}
	}
	assert.Equal(t, 1, reported)

	assert.Len(t, env.delivery.ofType(dto.NotificationPlaylistCompleted), 1)
	awarded := 0
	for _, n := range env.delivery.ofType(dto.NotificationBadgeEarned) {
		if n.Title == badgeTitle {
			awarded++
		}
	}
	assert.Equal(t, 1, awarded)

	after, err := env.playlists.Show(ctx, user.Id, detail.Id)
	require.NoError(t, err)
	assert.True(t, after.Completed)
	assert.Equal(t, 100, after.Progress)
}

func TestVideoService_UpdateStatusTogglesCompletion(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	user := env.seedUser(t)
	detail := env.importPlaylist(t, user.Id, "PLtoggle", 1)
	videoId := detail.Videos[0].Id

	res, err := env.videos.UpdateStatus(ctx, user.Id, &dto.UpdateStatusRequest{Id: videoId, Status: "completed"})
	require.NoError(t, err)
	assert.True(t, res.PlaylistCompleted)
	require.NotEmpty(t, res.NewBadges)
	assert.Equal(t, entity.CompletionBadgePrefix+detail.Name, res.NewBadges[0].Title)

	res, err = env.videos.UpdateStatus(ctx, user.Id, &dto.UpdateStatusRequest{Id: videoId, Status: "rewatch"})
	require.NoError(t, err)
	assert.False(t, res.PlaylistCompleted)
	assert.Empty(t, res.NewBadges)

	// completing again does not award a second badge
	res, err = env.videos.UpdateStatus(ctx, user.Id, &dto.UpdateStatusRequest{Id: videoId, Status: "completed"})
	require.NoError(t, err)
	assert.True(t, res.PlaylistCompleted)
	assert.Empty(t, res.NewBadges)
	assert.Len(t, env.delivery.ofType(dto.NotificationPlaylistCompleted), 2)

	_, err = env.videos.UpdateStatus(ctx, user.Id, &dto.UpdateStatusRequest{Id: videoId, Status: "watched"})
	requireAppError(t, err, apperror.KindBadRequest, "Invalid status value")

	assert.Contains(t, env.tracker.kinds, ActivityStatusChanged)
}

func TestVideoService_Ownership(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	owner := env.seedUser(t)
	stranger := env.seedUser(t)
	detail := env.importPlaylist(t, owner.Id, "PLowner", 1)
	videoId := detail.Videos[0].Id

	_, err := env.videos.Show(ctx, stranger.Id, videoId)
	requireAppError(t, err, apperror.KindForbidden, "Access denied")

	_, err = env.videos.UpdateNote(ctx, stranger.Id, &dto.UpdateNoteRequest{Id: videoId, Note: strPtr("mine now")})
	requireAppError(t, err, apperror.KindForbidden, "Access denied")

	_, err = env.videos.UpdateStatus(ctx, stranger.Id, &dto.UpdateStatusRequest{Id: videoId, Status: "completed"})
	requireAppError(t, err, apperror.KindForbidden, "Access denied")

	_, err = env.videos.Show(ctx, owner.Id, uuid.New())
	requireAppError(t, err, apperror.KindNotFound, "Video not found")

	// a cached detail is still checked against the caller
	_, err = env.videos.Show(ctx, owner.Id, videoId)
	require.NoError(t, err)
	_, err = env.videos.Show(ctx, stranger.Id, videoId)
	requireAppError(t, err, apperror.KindForbidden, "Access denied")
}

func TestVideoService_ShowParsesTimestamps(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	user := env.seedUser(t)
	env.youtube.addVideo(youtube.Video{
		YtId:        "dQw4w9WgXcQ",
		Title:       "Chapters",
		Description: "Intro text\n2:15 - Channels\n0:00 - Welcome\n1:02:03 Wrap up",
	})
	custom, err := env.playlists.Add(ctx, user.Id, &dto.AddPlaylistRequest{Name: "Mix", IsCustomPlaylist: true})
	require.NoError(t, err)
	detail, err := env.playlists.AddVideo(ctx, user.Id, &dto.AddVideoRequest{PlaylistId: custom.Id, VideoUrl: "dQw4w9WgXcQ"})
	require.NoError(t, err)

	video, err := env.videos.Show(ctx, user.Id, detail.Videos[0].Id)
	require.NoError(t, err)
	assert.Equal(t, "Mix", video.PlaylistName)
	require.Len(t, video.Timestamps, 3)
	assert.Equal(t, "00:00:00", video.Timestamps[0].Time)
	assert.Equal(t, "Channels", video.Timestamps[1].Topic)
	assert.Equal(t, 135, video.Timestamps[1].Seconds)
	assert.Equal(t, "01:02:03", video.Timestamps[2].Time)
}

func TestVideoService_TagsAreNormalizedAndIdempotent(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	user := env.seedUser(t)
	detail := env.importPlaylist(t, user.Id, "PLtags", 2)
	videoId := detail.Videos[0].Id

	res, err := env.videos.AddTags(ctx, user.Id, &dto.TagsRequest{Id: videoId, Tags: []string{"Go", " go ", "Concurrency", ""}})
	require.NoError(t, err)
	assert.Equal(t, []string{"go", "concurrency"}, res.Tags)

	res, err = env.videos.AddTags(ctx, user.Id, &dto.TagsRequest{Id: videoId, Tags: []string{"GO"}})
	require.NoError(t, err)
	assert.Equal(t, []string{"go", "concurrency"}, res.Tags)

	found, err := env.videos.SearchByTags(ctx, user.Id, []string{"CONCURRENCY", "rust"})
	require.NoError(t, err)
	require.Equal(t, 1, found.Count)
	assert.Equal(t, videoId, found.Videos[0].Id)

	res, err = env.videos.RemoveTags(ctx, user.Id, &dto.TagsRequest{Id: videoId, Tags: []string{"Concurrency", "missing"}})
	require.NoError(t, err)
	assert.Equal(t, []string{"go"}, res.Tags)

	res, err = env.videos.ReplaceTags(ctx, user.Id, &dto.TagsRequest{Id: videoId, Tags: []string{"Testing", "testing"}})
	require.NoError(t, err)
	assert.Equal(t, []string{"testing"}, res.Tags)

	got, err := env.videos.GetTags(ctx, user.Id, detail.Videos[1].Id)
	require.NoError(t, err)
	assert.NotNil(t, got.Tags)
	assert.Empty(t, got.Tags)

	_, err = env.videos.SearchByTags(ctx, user.Id, []string{" ", ""})
	requireAppError(t, err, apperror.KindBadRequest, "At least one tag is required")
}

func TestVideoService_Resources(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	user := env.seedUser(t)
	detail := env.importPlaylist(t, user.Id, "PLres", 1)
	videoId := detail.Videos[0].Id

	res, err := env.videos.AddResource(ctx, user.Id, &dto.AddResourceRequest{
		Id: videoId, Title: "Repo", Url: "https://github.com/golang/go", Type: "github",
	})
	require.NoError(t, err)
	require.Len(t, res.Resources, 1)
	assert.Equal(t, entity.ResourceTypeGithub, res.Resources[0].Type)

	res, err = env.videos.AddResource(ctx, user.Id, &dto.AddResourceRequest{
		Id: videoId, Title: "Slides", Url: "https://example.com/slides", Type: "slides",
	})
	require.NoError(t, err)
	require.Len(t, res.Resources, 2)
	assert.Equal(t, entity.ResourceTypeOther, res.Resources[1].Type)

	res, err = env.videos.RemoveResource(ctx, user.Id, videoId, res.Resources[0].Id)
	require.NoError(t, err)
	require.Len(t, res.Resources, 1)
	assert.Equal(t, "Slides", res.Resources[0].Title)

	_, err = env.videos.RemoveResource(ctx, user.Id, videoId, uuid.New())
	requireAppError(t, err, apperror.KindNotFound, "Resource not found")

	got, err := env.videos.GetResources(ctx, user.Id, videoId)
	require.NoError(t, err)
	assert.Len(t, got.Resources, 1)
}

func TestVideoService_NotesSearchAndRewatch(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	user := env.seedUser(t)
	detail := env.importPlaylist(t, user.Id, "PLnotes", 3)

	_, err := env.videos.UpdateNote(ctx, user.Id, &dto.UpdateNoteRequest{Id: detail.Videos[0].Id, Note: strPtr("Select blocks on Channels")})
	require.NoError(t, err)
	_, err = env.videos.UpdateStatus(ctx, user.Id, &dto.UpdateStatusRequest{Id: detail.Videos[1].Id, Status: "rewatch"})
	require.NoError(t, err)

	found, err := env.videos.SearchNotes(ctx, user.Id, "channels")
	require.NoError(t, err)
	require.Equal(t, 1, found.Count)
	assert.Equal(t, "Select blocks on Channels", found.Videos[0].Notes)

	_, err = env.videos.SearchNotes(ctx, user.Id, "   ")
	requireAppError(t, err, apperror.KindBadRequest, "Search query is required")

	_, err = env.videos.AddTags(ctx, user.Id, &dto.TagsRequest{Id: detail.Videos[2].Id, Tags: []string{"Go"}})
	require.NoError(t, err)
	_, err = env.videos.UpdateNote(ctx, user.Id, &dto.UpdateNoteRequest{Id: detail.Videos[2].Id, Note: strPtr("channels again")})
	require.NoError(t, err)

	found, err = env.videos.SearchNotes(ctx, user.Id, "/tag:go channels")
	require.NoError(t, err)
	require.Equal(t, 1, found.Count)
	assert.Equal(t, detail.Videos[2].Id, found.Videos[0].Id)

	found, err = env.videos.SearchNotes(ctx, user.Id, "/status:rewatch")
	require.NoError(t, err)
	require.Equal(t, 1, found.Count)
	assert.Equal(t, detail.Videos[1].Id, found.Videos[0].Id)

	_, err = env.videos.SearchNotes(ctx, user.Id, "/status:done")
	requireAppError(t, err, apperror.KindBadRequest, "Invalid status filter")

	rewatch, err := env.videos.Rewatch(ctx, user.Id)
	require.NoError(t, err)
	require.Equal(t, 1, rewatch.Count)
	assert.Equal(t, detail.Videos[1].Id, rewatch.Videos[0].Id)
	assert.Empty(t, rewatch.Videos[0].Notes)

	_, err = env.videos.UpdateNote(ctx, user.Id, &dto.UpdateNoteRequest{Id: detail.Videos[0].Id})
	requireAppError(t, err, apperror.KindBadRequest, "Note field is required")
}

func TestVideoService_GenerateSummary(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	user := env.seedUser(t)
	detail := env.importPlaylist(t, user.Id, "PLsum", 1)
	videoId := detail.Videos[0].Id

	_, err := env.videos.SummaryToNote(ctx, user.Id, videoId)
	requireAppError(t, err, apperror.KindBadRequest, "No AI summary available to copy")

	res, err := env.videos.GenerateSummary(ctx, user.Id, videoId)
	require.NoError(t, err)
	assert.Equal(t, "- goroutines are cheap", res.AiSummary)
	assert.True(t, res.AiSummaryGenerated)
	require.Len(t, env.llm.history, 2)
	assert.Equal(t, constant.SummarySystemPromptV1, env.llm.history[0].Content)
	assert.Contains(t, env.llm.history[1].Content, "Video 0")
	assert.Contains(t, env.llm.history[1].Content, "a transcript about goroutines")

	_, err = env.videos.GenerateSummary(ctx, user.Id, videoId)
	requireAppError(t, err, apperror.KindBadRequest, "Summary already exists for this video")
	appErr, _ := apperror.As(err)
	assert.Equal(t, "- goroutines are cheap", appErr.Details["aiSummary"])

	note, err := env.videos.SummaryToNote(ctx, user.Id, videoId)
	require.NoError(t, err)
	assert.Equal(t, res.AiSummary, note.Notes)

	// the same YouTube video imported by someone else reuses the cached summary
	other := env.seedUser(t)
	otherDetail, err := env.playlists.Add(ctx, other.Id, &dto.AddPlaylistRequest{Name: "Copy", YtPlaylistUrl: ytPlaylistURL("PLsum")})
	require.NoError(t, err)
	_, err = env.videos.GenerateSummary(ctx, other.Id, otherDetail.Videos[0].Id)
	require.NoError(t, err)
	assert.Equal(t, 1, env.llm.calls)
	assert.Equal(t, 1, env.transcripts.calls)
	assert.Contains(t, env.tracker.kinds, ActivitySummary)
}

func TestVideoService_GenerateSummaryFailures(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	user := env.seedUser(t)
	detail := env.importPlaylist(t, user.Id, "PLfail", 1)
	videoId := detail.Videos[0].Id

	env.transcripts.err = transcript.ErrNoTranscript
	_, err := env.videos.GenerateSummary(ctx, user.Id, videoId)
	requireAppError(t, err, apperror.KindNotFound, "No transcript available for this video")
	assert.Zero(t, env.llm.calls)

	noLLM := NewVideoService(VideoServiceDeps{
		UowFactory:  env.uowFactory,
		Cache:       env.cache,
		Badges:      env.badges,
		Activity:    env.tracker,
		Transcripts: env.transcripts,
		Logger:      logger.NewNopLogger(),
	})
	_, err = noLLM.GenerateSummary(ctx, user.Id, videoId)
	requireAppError(t, err, apperror.KindUnavailable, "AI summaries are not configured")

	summary, err := env.videos.UpdateSummary(ctx, user.Id, &dto.UpdateSummaryRequest{Id: videoId, Summary: "written by hand"})
	require.NoError(t, err)
	assert.True(t, summary.AiSummaryGenerated)
}

func TestVideoService_RemoveFromPlaylistSettlesCompletion(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	user := env.seedUser(t)
	env.youtube.addVideo(youtube.Video{YtId: "dQw4w9WgXcQ", Title: "Intro"})
	env.youtube.addVideo(youtube.Video{YtId: "9bZkp7q19f0", Title: "Follow-up"})

	custom, err := env.playlists.Add(ctx, user.Id, &dto.AddPlaylistRequest{Name: "Mix", IsCustomPlaylist: true})
	require.NoError(t, err)
	_, err = env.playlists.AddVideo(ctx, user.Id, &dto.AddVideoRequest{PlaylistId: custom.Id, VideoUrl: "dQw4w9WgXcQ"})
	require.NoError(t, err)
	detail, err := env.playlists.AddVideo(ctx, user.Id, &dto.AddVideoRequest{PlaylistId: custom.Id, VideoUrl: "9bZkp7q19f0"})
	require.NoError(t, err)

	_, err = env.videos.UpdateStatus(ctx, user.Id, &dto.UpdateStatusRequest{Id: detail.Videos[0].Id, Status: "completed"})
	require.NoError(t, err)

	res, err := env.videos.RemoveFromPlaylist(ctx, user.Id, detail.Videos[1].Id)
	require.NoError(t, err)
	assert.Equal(t, custom.Id, res.PlaylistId)

	after, err := env.playlists.Show(ctx, user.Id, custom.Id)
	require.NoError(t, err)
	assert.True(t, after.Completed)
	assert.Contains(t, badgeTitles(env.userBadges(t, user.Id)), entity.CompletionBadgePrefix+"Mix")

	imported := env.importPlaylist(t, user.Id, "PLkeep", 1)
	_, err = env.videos.RemoveFromPlaylist(ctx, user.Id, imported.Videos[0].Id)
	requireAppError(t, err, apperror.KindBadRequest, "Videos can only be removed from custom playlists")
}
