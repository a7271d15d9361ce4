package serve

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/chirino/docmodel/internal/config"
	"github.com/chirino/docmodel/internal/security"
	"github.com/chirino/docmodel/internal/testutil/testmongo"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

func TestMaxBodySizeMiddleware_Enforces(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(maxBodySizeMiddleware(4))
	router.POST("/api/rpc", readBodyLengthHandler)

	req := httptest.NewRequest(http.MethodPost, "/api/rpc", strings.NewReader("0123456789"))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
}

func TestMaxBodySizeMiddleware_ZeroDisables(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(maxBodySizeMiddleware(0))
	router.POST("/api/rpc", readBodyLengthHandler)

	req := httptest.NewRequest(http.MethodPost, "/api/rpc", strings.NewReader("0123456789"))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "10", rec.Body.String())
}

func readBodyLengthHandler(c *gin.Context) {
	n, err := io.Copy(io.Discard, c.Request.Body)
	if err != nil {
		c.Status(http.StatusRequestEntityTooLarge)
		return
	}
	c.String(http.StatusOK, "%d", n)
}

func TestStartServer(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.DBURL = testmongo.StartMongo(t)
	cfg.Listener.Port = 0
	cfg.Management.Port = 0
	cfg.ManagementListenerEnabled = true

	srv, err := StartServer(context.Background(), &cfg)
	require.NoError(t, err)
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		require.NoError(t, srv.Shutdown(ctx))
	})

	resp, err := http.Get(fmt.Sprintf("http://localhost:%d/ready", srv.Management.Port))
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	req, err := http.NewRequest(http.MethodPost,
		fmt.Sprintf("http://localhost:%d/api/rpc", srv.Running.Port),
		strings.NewReader(`{"jsonrpc":"2.0","id":1,"method":"create_example","params":{"data":{"name":"Alice","age":30}}}`))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(security.HeaderUserID, "alice")
	resp, err = http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Contains(t, string(body), `"name":"Alice"`)
	require.NotContains(t, string(body), `"error"`)
}
