package service

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"learnloop-be/internal/dto"
	"learnloop-be/internal/entity"
	"learnloop-be/internal/pkg/apperror"
	"learnloop-be/internal/pkg/logger"
	"learnloop-be/internal/repository/memory"
	"learnloop-be/internal/repository/specification"
	"learnloop-be/internal/repository/unitofwork"
	"learnloop-be/pkg/cache"
	"learnloop-be/pkg/llm"
	"learnloop-be/pkg/youtube"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeYouTube struct {
	mu        sync.Mutex
	playlists map[string]*youtube.Playlist
	items     map[string][]youtube.Video
	videos    map[string]*youtube.Video
	calls     int
}

func newFakeYouTube() *fakeYouTube {
	return &fakeYouTube{
		playlists: make(map[string]*youtube.Playlist),
		items:     make(map[string][]youtube.Video),
		videos:    make(map[string]*youtube.Video),
	}
}

// addPlaylist registers a YouTube playlist with n videos named <id>-v<i>.
func (f *fakeYouTube) addPlaylist(id string, n int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.playlists[id] = &youtube.Playlist{Id: id, Title: "Playlist " + id, Thumbnail: "http://img/" + id, ItemCount: n}
	videos := make([]youtube.Video, 0, n)
	for i := 0; i < n; i++ {
		videos = append(videos, youtube.Video{
			YtId:     fmt.Sprintf("%s-v%d", id, i),
			Title:    fmt.Sprintf("Video %d", i),
			Position: i,
		})
	}
	f.items[id] = videos
}

func (f *fakeYouTube) addVideo(v youtube.Video) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.videos[v.YtId] = &v
}

func (f *fakeYouTube) GetPlaylist(ctx context.Context, playlistId string) (*youtube.Playlist, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	p, ok := f.playlists[playlistId]
	if !ok {
		return nil, youtube.ErrNotFound
	}
	return p, nil
}

func (f *fakeYouTube) ListPlaylistVideos(ctx context.Context, playlistId string) ([]youtube.Video, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	items, ok := f.items[playlistId]
	if !ok {
		return nil, youtube.ErrNotFound
	}
	return append([]youtube.Video(nil), items...), nil
}

func (f *fakeYouTube) GetVideo(ctx context.Context, videoId string) (*youtube.Video, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	v, ok := f.videos[videoId]
	if !ok {
		return nil, youtube.ErrNotFound
	}
	return v, nil
}

type sentNotification struct {
	userId       uuid.UUID
	notification dto.Notification
}

type recordingDelivery struct {
	mu   sync.Mutex
	sent []sentNotification
}

func (d *recordingDelivery) Send(userID uuid.UUID, n dto.Notification) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.sent = append(d.sent, sentNotification{userId: userID, notification: n})
}

func (d *recordingDelivery) ofType(kind string) []dto.Notification {
	d.mu.Lock()
	defer d.mu.Unlock()
	var out []dto.Notification
	for _, s := range d.sent {
		if s.notification.Type == kind {
			out = append(out, s.notification)
		}
	}
	return out
}

type recordingTracker struct {
	mu    sync.Mutex
	kinds []string
}

func (r *recordingTracker) Track(ctx context.Context, userId uuid.UUID, kind string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.kinds = append(r.kinds, kind)
}

type fakeTranscripts struct {
	text  string
	err   error
	calls int
}

func (f *fakeTranscripts) Fetch(ctx context.Context, ytId string) (string, error) {
	f.calls++
	return f.text, f.err
}

type fakeLLM struct {
	reply   string
	err     error
	history []llm.Message
	calls   int
}

func (f *fakeLLM) Chat(ctx context.Context, history []llm.Message, options ...llm.Option) (string, error) {
	f.calls++
	f.history = history
	return f.reply, f.err
}

func (f *fakeLLM) Generate(ctx context.Context, prompt string, options ...llm.Option) (string, error) {
	return f.Chat(ctx, []llm.Message{{Role: "user", Content: prompt}}, options...)
}

type testEnv struct {
	store       *memory.Store
	uowFactory  unitofwork.RepositoryFactory
	cache       *cache.SafeStore
	youtube     *fakeYouTube
	delivery    *recordingDelivery
	tracker     *recordingTracker
	transcripts *fakeTranscripts
	llm         *fakeLLM

	badges    IBadgeService
	playlists IPlaylistService
	videos    IVideoService
	users     IUserService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	log := logger.NewNopLogger()

	env := &testEnv{
		store:       memory.NewStore(),
		cache:       cache.NewSafeStore(cache.NewMemoryStore(), log),
		youtube:     newFakeYouTube(),
		delivery:    &recordingDelivery{},
		tracker:     &recordingTracker{},
		transcripts: &fakeTranscripts{text: "a transcript about goroutines"},
		llm:         &fakeLLM{reply: "  - goroutines are cheap  "},
	}
	env.uowFactory = memory.NewRepositoryFactory(env.store)
	env.badges = NewBadgeService(env.uowFactory, env.cache, nil, env.delivery, log)
	env.playlists = NewPlaylistService(env.uowFactory, env.youtube, env.cache, env.badges, log)
	env.videos = NewVideoService(VideoServiceDeps{
		UowFactory:  env.uowFactory,
		Cache:       env.cache,
		Badges:      env.badges,
		Activity:    env.tracker,
		Transcripts: env.transcripts,
		LLM:         env.llm,
		Delivery:    env.delivery,
		Logger:      log,
	})
	env.users = NewUserService(env.uowFactory, env.cache, log)
	return env
}

func (e *testEnv) seedUser(t *testing.T, categories ...string) *entity.User {
	t.Helper()
	if categories == nil {
		categories = []string{}
	}
	user := &entity.User{
		Name:       "Learner",
		Email:      uuid.NewString() + "@example.com",
		Categories: categories,
	}
	require.NoError(t, e.uowFactory.NewUnitOfWork(context.Background()).UserRepository().Create(context.Background(), user))
	return user
}

func (e *testEnv) loadUser(t *testing.T, id uuid.UUID) *entity.User {
	t.Helper()
	user, err := e.uowFactory.NewUnitOfWork(context.Background()).UserRepository().FindOne(context.Background(), specification.ByID{ID: id})
	require.NoError(t, err)
	require.NotNil(t, user)
	return user
}

func (e *testEnv) userBadges(t *testing.T, userId uuid.UUID) []*entity.Badge {
	t.Helper()
	badges, err := e.uowFactory.NewUnitOfWork(context.Background()).BadgeRepository().FindAll(context.Background(),
		specification.UserOwnedBy{UserID: userId})
	require.NoError(t, err)
	return badges
}

func badgeTitles(badges []*entity.Badge) []string {
	titles := make([]string, 0, len(badges))
	for _, b := range badges {
		titles = append(titles, b.Title)
	}
	return titles
}

func ytPlaylistURL(id string) string {
	return "https://www.youtube.com/playlist?list=" + id
}

// importPlaylist adds a YouTube playlist with n videos for the user.
func (e *testEnv) importPlaylist(t *testing.T, userId uuid.UUID, ytId string, n int) *dto.PlaylistDetailResponse {
	t.Helper()
	e.youtube.addPlaylist(ytId, n)
	detail, err := e.playlists.Add(context.Background(), userId, &dto.AddPlaylistRequest{
		Name:          "Course " + ytId,
		YtPlaylistUrl: ytPlaylistURL(ytId),
	})
	require.NoError(t, err)
	return detail
}

func requireAppError(t *testing.T, err error, kind apperror.Kind, message string) {
	t.Helper()
	require.Error(t, err)
	appErr, ok := apperror.As(err)
	require.True(t, ok, "expected AppError, got %v", err)
	assert.Equal(t, kind, appErr.Kind)
	if message != "" {
		assert.Equal(t, message, appErr.Message)
	}
}
