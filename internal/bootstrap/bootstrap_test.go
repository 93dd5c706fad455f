package bootstrap

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GoSim-25-26J-441/duis-detector/config"
	"github.com/GoSim-25-26J-441/duis-detector/internal/ui_smell_detection/detection"
)

func testConfig() *config.Config {
	return &config.Config{
		Server:    config.ServerConfig{Port: "0", AllowedOrigins: []string{"*"}},
		App:       config.AppConfig{ServiceName: "duis-detector", Version: "test"},
		RateLimit: config.RateLimitConfig{Enabled: true, RPS: 0.001, Burst: 1},
	}
}

func TestBuildRouter(t *testing.T) {
	SetGinMode("test")
	mr := miniredis.RunT(t)
	cfg := testConfig()
	cfg.Redis = config.RedisConfig{Enabled: true, Addr: mr.Addr()}

	rdb, err := OpenRedis(context.Background(), cfg.Redis)
	require.NoError(t, err)
	defer rdb.Close()

	r := BuildRouter(RouterDeps{Config: cfg, Rules: detection.DefaultConfig(), Redis: rdb})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"db":"disabled"`)
	assert.Contains(t, w.Body.String(), `"redis":"up"`)
	assert.NotEmpty(t, w.Header().Get("X-Request-Id"))

	post := func() int {
		body, _ := json.Marshal(map[string]string{"document": "nodes:\n  - {id: App, role: component}\n"})
		req := httptest.NewRequest(http.MethodPost, "/api/v1/duis/analyze-raw", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w.Code
	}
	assert.Equal(t, http.StatusOK, post())
	assert.Equal(t, http.StatusTooManyRequests, post())

	keys, err := rdb.Keys(context.Background(), "duis:report:*").Result()
	require.NoError(t, err)
	assert.Len(t, keys, 1)

	// read routes are not rate limited
	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/duis/rules", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestOpenStores_Disabled(t *testing.T) {
	db, err := OpenDB(context.Background(), config.DatabaseConfig{})
	require.NoError(t, err)
	assert.Nil(t, db)

	rdb, err := OpenRedis(context.Background(), config.RedisConfig{})
	require.NoError(t, err)
	assert.Nil(t, rdb)
}

func TestOpenRedis_Unreachable(t *testing.T) {
	mr := miniredis.RunT(t)
	addr := mr.Addr()
	mr.Close()

	_, err := OpenRedis(context.Background(), config.RedisConfig{Enabled: true, Addr: addr})
	assert.Error(t, err)
}

func TestSetGinMode(t *testing.T) {
	defer gin.SetMode(gin.TestMode)
	SetGinMode("production")
	assert.Equal(t, gin.ReleaseMode, gin.Mode())
}
