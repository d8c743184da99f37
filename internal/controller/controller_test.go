package controller

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"learnloop-be/internal/dto"
	"learnloop-be/internal/entity"
	"learnloop-be/internal/pkg/logger"
	"learnloop-be/internal/pkg/serverutils"
	"learnloop-be/internal/repository/memory"
	"learnloop-be/internal/service"
	"learnloop-be/pkg/cache"
	"learnloop-be/pkg/youtube"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "controller-secret"

type envelope[T any] struct {
	Success bool                   `json:"success"`
	Code    int                    `json:"code"`
	Message string                 `json:"message"`
	Data    T                      `json:"data"`
	Errors  map[string]interface{} `json:"errors"`
}

type nopDelivery struct{}

func (nopDelivery) Send(uuid.UUID, dto.Notification) {}

// newYouTubeServer answers the Data API calls for a single playlist "PLhttp"
// holding two videos.
func newYouTubeServer(t *testing.T) *httptest.Server {
	t.Helper()
	write := func(w http.ResponseWriter, body any) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(body)
	}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/playlists":
			if r.URL.Query().Get("id") != "PLhttp" {
				write(w, map[string]any{"items": []any{}})
				return
			}
			write(w, map[string]any{"items": []map[string]any{{
				"id":             "PLhttp",
				"snippet":        map[string]any{"title": "HTTP course"},
				"contentDetails": map[string]any{"itemCount": 2},
			}}})
		case "/playlistItems":
			write(w, map[string]any{"items": []map[string]any{
				{"snippet": map[string]any{"position": 0}, "contentDetails": map[string]any{"videoId": "aaaaaaaaaaa"}},
				{"snippet": map[string]any{"position": 1}, "contentDetails": map[string]any{"videoId": "bbbbbbbbbbb"}},
			}})
		case "/videos":
			var items []map[string]any
			for _, id := range strings.Split(r.URL.Query().Get("id"), ",") {
				items = append(items, map[string]any{
					"id":             id,
					"snippet":        map[string]any{"title": "Video " + id},
					"contentDetails": map[string]any{"duration": "PT5M"},
				})
			}
			write(w, map[string]any{"items": items})
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	t.Cleanup(server.Close)
	return server
}

type testApp struct {
	app   *fiber.App
	store *memory.Store
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()
	log := logger.NewNopLogger()
	store := memory.NewStore()
	uowFactory := memory.NewRepositoryFactory(store)
	safeCache := cache.NewSafeStore(cache.NewMemoryStore(), log)

	pubSub := gochannel.NewGoChannel(gochannel.Config{}, watermill.NopLogger{})
	t.Cleanup(func() { _ = pubSub.Close() })
	tracker := service.NewActivityTracker(service.NewPublisherService("learning.activity", pubSub), log)

	yt := youtube.NewClient("key", youtube.WithBaseURL(newYouTubeServer(t).URL), youtube.WithRateLimit(0))

	badges := service.NewBadgeService(uowFactory, safeCache, nil, nopDelivery{}, log)
	playlists := service.NewPlaylistService(uowFactory, yt, safeCache, badges, log)
	videos := service.NewVideoService(service.VideoServiceDeps{
		UowFactory: uowFactory,
		Cache:      safeCache,
		Badges:     badges,
		Activity:   tracker,
		Delivery:   nopDelivery{},
		Logger:     log,
	})
	users := service.NewUserService(uowFactory, safeCache, log)

	app := fiber.New(fiber.Config{
		ErrorHandler: func(ctx *fiber.Ctx, err error) error {
			return serverutils.WriteError(ctx, log, err)
		},
	})
	app.Use(serverutils.ErrorHandlerMiddleware(log))

	api := app.Group("/api")
	auth := serverutils.NewJwtMiddleware(testSecret)
	NewUserController(users).RegisterRoutes(api, auth)
	NewPlaylistController(playlists).RegisterRoutes(api, auth)
	NewVideoController(videos).RegisterRoutes(api, auth)
	NewBadgeController(badges).RegisterRoutes(api, auth)

	return &testApp{app: app, store: store}
}

// login stores a fresh user and returns a bearer token for it.
func (a *testApp) login(t *testing.T, categories ...string) string {
	t.Helper()
	if categories == nil {
		categories = []string{}
	}
	user := &entity.User{Name: "Learner", Email: uuid.NewString() + "@example.com", Categories: categories}
	ctx := context.Background()
	require.NoError(t, memory.NewRepositoryFactory(a.store).NewUnitOfWork(ctx).UserRepository().Create(ctx, user))

	token, err := serverutils.GenerateToken(testSecret, user.Id, time.Hour)
	require.NoError(t, err)
	return token
}

func (a *testApp) do(t *testing.T, method, path, token string, body any) *http.Response {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := a.app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decode[T any](t *testing.T, resp *http.Response) envelope[T] {
	t.Helper()
	defer resp.Body.Close()
	var out envelope[T]
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func TestRoutes_RequireToken(t *testing.T) {
	a := newTestApp(t)

	resp := a.do(t, http.MethodGet, "/api/playlist", "", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "Token missing, please login", decode[any](t, resp).Message)

	resp = a.do(t, http.MethodGet, "/api/playlist", "not-a-jwt", nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestPlaylistRoutes_ImportAndComplete(t *testing.T) {
	a := newTestApp(t)
	token := a.login(t)

	resp := a.do(t, http.MethodPost, "/api/playlist/add", token, dto.AddPlaylistRequest{
		Name:          "HTTP course",
		YtPlaylistUrl: "https://www.youtube.com/playlist?list=PLhttp",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	created := decode[dto.PlaylistDetailResponse](t, resp)
	assert.True(t, created.Success)
	assert.Equal(t, "Playlist added", created.Message)
	require.Len(t, created.Data.Videos, 2)
	assert.Equal(t, "aaaaaaaaaaa", created.Data.Videos[0].YtId)
	assert.Equal(t, entity.UncategorizedCategory, created.Data.Category)

	// a second import of the same URL is refused
	resp = a.do(t, http.MethodPost, "/api/playlist/add", token, dto.AddPlaylistRequest{
		Name:          "Again",
		YtPlaylistUrl: "https://www.youtube.com/playlist?list=PLhttp",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "Playlist already exists", decode[any](t, resp).Message)

	for i, v := range created.Data.Videos {
		resp = a.do(t, http.MethodPatch, "/api/video/"+v.Id.String()+"/status", token, map[string]string{"status": "completed"})
		require.Equal(t, http.StatusOK, resp.StatusCode)
		status := decode[dto.VideoStatusResponse](t, resp)
		assert.Equal(t, i == len(created.Data.Videos)-1, status.Data.PlaylistCompleted)
	}

	resp = a.do(t, http.MethodGet, "/api/playlist/"+created.Data.Id.String(), token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	shown := decode[dto.PlaylistDetailResponse](t, resp)
	assert.True(t, shown.Data.Completed)
	assert.Equal(t, 100, shown.Data.Progress)

	resp = a.do(t, http.MethodGet, "/api/badge/my-badges", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var titles []string
	for _, b := range decode[[]dto.BadgeResponse](t, resp).Data {
		titles = append(titles, b.Title)
	}
	assert.ElementsMatch(t, []string{service.FirstPlaylistBadgeTitle, entity.CompletionBadgePrefix + "HTTP course"}, titles)
}

func TestPlaylistRoutes_OwnershipAndBadIds(t *testing.T) {
	a := newTestApp(t)
	owner := a.login(t)
	stranger := a.login(t)

	resp := a.do(t, http.MethodPost, "/api/playlist/add", owner, dto.AddPlaylistRequest{Name: "Mine", IsCustomPlaylist: true})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	id := decode[dto.PlaylistDetailResponse](t, resp).Data.Id.String()

	resp = a.do(t, http.MethodGet, "/api/playlist/"+id, stranger, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp = a.do(t, http.MethodDelete, "/api/playlist/"+id, stranger, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp = a.do(t, http.MethodGet, "/api/playlist/not-a-uuid", owner, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "Invalid id", decode[any](t, resp).Message)

	resp = a.do(t, http.MethodDelete, "/api/playlist/"+id, owner, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "Playlist deleted successfully", decode[any](t, resp).Message)
}

func TestVideoRoutes_ValidationErrors(t *testing.T) {
	a := newTestApp(t)
	token := a.login(t)

	resp := a.do(t, http.MethodPatch, "/api/video/"+uuid.NewString()+"/status", token, map[string]string{"status": "finished"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	body := decode[any](t, resp)
	assert.Equal(t, "Validation failed", body.Message)
	assert.Contains(t, body.Errors, "Status")

	resp = a.do(t, http.MethodGet, "/api/video/"+uuid.NewString(), token, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestUserRoutes_Categories(t *testing.T) {
	a := newTestApp(t)
	token := a.login(t)

	resp := a.do(t, http.MethodPost, "/api/user/category", token, dto.AddCategoryRequest{Category: "Data Science"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, []string{"Data Science"}, decode[[]string](t, resp).Data)

	resp = a.do(t, http.MethodGet, "/api/user/categories", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, []string{"Data Science"}, decode[[]string](t, resp).Data)

	// names with spaces arrive percent-encoded in the path
	resp = a.do(t, http.MethodDelete, "/api/user/category/Data%20Science", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	deleted := decode[dto.DeleteCategoryResponse](t, resp)
	assert.Empty(t, deleted.Data.Categories)
}

func TestUserRoutes_DailyGoal(t *testing.T) {
	a := newTestApp(t)
	token := a.login(t)

	goal := "Finish the Go concurrency playlist"
	resp := a.do(t, http.MethodPost, "/api/user/daily-goal", token, map[string]any{"dailyGoal": goal})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, goal, decode[dto.DailyGoalResponse](t, resp).Data.DailyGoal)

	resp = a.do(t, http.MethodPost, "/api/user/daily-goal", token, map[string]any{})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = a.do(t, http.MethodPost, "/api/user/daily-goal", token, map[string]any{"dailyGoal": 30})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = a.do(t, http.MethodGet, "/api/user/daily-goal", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, goal, decode[dto.DailyGoalResponse](t, resp).Data.DailyGoal)
}

func TestBadgeRoutes_Catalog(t *testing.T) {
	a := newTestApp(t)
	token := a.login(t)

	resp := a.do(t, http.MethodGet, "/api/badge/all", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.NotEmpty(t, decode[[]dto.BadgeDefinition](t, resp).Data)

	resp = a.do(t, http.MethodPost, "/api/badge/check-badges", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
}
