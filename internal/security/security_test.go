package security

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

func TestParseMetricsLabels(t *testing.T) {
	t.Setenv("DOCMODEL_TEST_POD", "pod-1")

	labels, err := ParseMetricsLabels("service=docmodel,pod=${DOCMODEL_TEST_POD}")
	require.NoError(t, err)
	require.Equal(t, "docmodel", labels["service"])
	require.Equal(t, "pod-1", labels["pod"])

	labels, err = ParseMetricsLabels("")
	require.NoError(t, err)
	require.Nil(t, labels)

	_, err = ParseMetricsLabels("novalue")
	require.Error(t, err)

	_, err = ParseMetricsLabels("1bad=x")
	require.Error(t, err)
}

func newCtxRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RequestContextMiddleware())
	r.GET("/whoami", func(c *gin.Context) {
		rc, ok := GetCtx(c)
		if !ok {
			c.Status(http.StatusInternalServerError)
			return
		}
		conv, _ := rc.ConvID()
		c.JSON(http.StatusOK, gin.H{"user": rc.UserID(), "tenant": rc.TenantID(), "conv": conv})
	})
	return r
}

func TestRequestContextMiddleware_RequiresUser(t *testing.T) {
	rec := httptest.NewRecorder()
	newCtxRouter().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/whoami", nil))
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequestContextMiddleware_BuildsCtx(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set(HeaderUserID, "alice")
	req.Header.Set(HeaderTenantID, "acme")
	req.Header.Set(HeaderConversationID, "c1")
	rec := httptest.NewRecorder()
	newCtxRouter().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, `{"user":"alice","tenant":"acme","conv":"c1"}`, rec.Body.String())
}
