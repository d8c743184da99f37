package integration

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"learnloop-be/internal/bootstrap"
	"learnloop-be/internal/config"
	"learnloop-be/internal/dto"
	"learnloop-be/internal/pkg/logger"
	"learnloop-be/internal/pkg/serverutils"
	"learnloop-be/internal/repository/unitofwork"
	"learnloop-be/internal/server"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(t *testing.T) *config.Config {
	return &config.Config{
		App: config.AppConfig{
			Environment:     "test",
			NotificationLog: filepath.Join(t.TempDir(), "notification.log"),
			ActivityTopic:   "learning.activity.integration",
		},
		Cache: config.CacheConfig{Driver: "memory"},
		Auth: config.AuthConfig{
			JwtSecret: "integration-secret",
			JwtTTL:    time.Hour,
		},
		Ai: config.AIConfig{LLMProvider: "ollama", OllamaModel: "gemma:2b", OllamaBaseURL: "http://localhost:11434"},
	}
}

func TestServer_CategoriesOverHTTP(t *testing.T) {
	gormDB := openDB(t)
	cfg := testConfig(t)

	container := bootstrap.NewContainer(gormDB, cfg, logger.NewNopLogger())
	t.Cleanup(container.Close)
	app := server.New(cfg, container).GetApp()

	user := createUser(t, unitofwork.NewRepositoryFactory(gormDB))
	t.Cleanup(func() {
		gormDB.Exec("DELETE FROM users WHERE id = ?", user.Id)
	})
	token, err := serverutils.GenerateToken(cfg.Auth.JwtSecret, user.Id, time.Hour)
	require.NoError(t, err)

	t.Run("health", func(t *testing.T) {
		resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/health", nil), -1)
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})

	t.Run("current user", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/auth/user", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		resp, err := app.Test(req, -1)
		require.NoError(t, err)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var body serverutils.BaseResponse[dto.UserResponse]
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		assert.Equal(t, user.Email, body.Data.Email)
	})

	t.Run("add category persists", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/user/category", strings.NewReader(`{"category":"Integration"}`))
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Authorization", "Bearer "+token)
		resp, err := app.Test(req, -1)
		require.NoError(t, err)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var body serverutils.BaseResponse[[]string]
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		assert.Contains(t, body.Data, "Integration")
	})
}
