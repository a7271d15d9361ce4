package system

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

func get(t *testing.T, r *gin.Engine, path string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func TestReadiness(t *testing.T) {
	gin.SetMode(gin.TestMode)
	t.Cleanup(func() { ready.Store(false) })

	healthy := true
	r := gin.New()
	require.NoError(t, mountRoutes(r, func(context.Context) error {
		if healthy {
			return nil
		}
		return errors.New("store unreachable")
	}))

	require.Equal(t, http.StatusOK, get(t, r, "/health").Code)

	rec := get(t, r, "/ready")
	require.Equal(t, http.StatusServiceUnavailable, rec.Code)
	require.Contains(t, rec.Body.String(), "starting")

	MarkReady()
	require.Equal(t, http.StatusOK, get(t, r, "/ready").Code)

	healthy = false
	rec = get(t, r, "/ready")
	require.Equal(t, http.StatusServiceUnavailable, rec.Code)
	require.Contains(t, rec.Body.String(), "store unreachable")
}

func TestMetricsEndpoint(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	require.NoError(t, mountRoutes(r, nil))
	rec := get(t, r, "/metrics")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), "go_goroutines")
}
