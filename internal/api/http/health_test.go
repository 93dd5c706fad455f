package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type pingFunc func(ctx context.Context) error

func (f pingFunc) Ping(ctx context.Context) error { return f(ctx) }

func TestHealthCheck(t *testing.T) {
	gin.SetMode(gin.TestMode)

	up := pingFunc(func(context.Context) error { return nil })
	down := pingFunc(func(context.Context) error { return errors.New("connection refused") })

	tests := []struct {
		name      string
		db, redis Pinger
		wantDB    string
		wantRedis string
	}{
		{"nothing configured", nil, nil, "disabled", "disabled"},
		{"both up", up, up, "up", "up"},
		{"redis down", up, down, "up", "down"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := gin.New()
			NewHealthHandler("duis-detector", "1.2.3", 9, tt.db, tt.redis).RegisterRoutes(r)

			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))
			require.Equal(t, http.StatusOK, w.Code)

			var resp HealthResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.Equal(t, "healthy", resp.Status)
			assert.Equal(t, "duis-detector", resp.Service)
			assert.Equal(t, "1.2.3", resp.Version)
			assert.Equal(t, 9, resp.Rules)
			assert.Equal(t, tt.wantDB, resp.DB)
			assert.Equal(t, tt.wantRedis, resp.Redis)
		})
	}
}
