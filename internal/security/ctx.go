package security

import (
	"net/http"
	"strings"

	"github.com/chirino/docmodel/internal/reqctx"
	"github.com/gin-gonic/gin"
)

const (
	HeaderUserID         = "X-User-ID"
	HeaderTenantID       = "X-Tenant-ID"
	HeaderConversationID = "X-Conversation-ID"
)

const ctxKey = "docmodel.ctx"

// RequestContextMiddleware builds the request identity from upstream headers.
// The headers are trusted verbatim: an authenticating proxy in front of the
// service is responsible for setting them.
func RequestContextMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		rc, err := reqctx.New(strings.TrimSpace(c.GetHeader(HeaderUserID)))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"code": "unauthorized", "error": err.Error()})
			return
		}
		if tenant := strings.TrimSpace(c.GetHeader(HeaderTenantID)); tenant != "" {
			rc = rc.WithTenantID(tenant)
		}
		if conv := strings.TrimSpace(c.GetHeader(HeaderConversationID)); conv != "" {
			rc = rc.WithConvID(conv)
		}
		c.Set(ctxKey, rc)
		c.Request = c.Request.WithContext(reqctx.WithContext(c.Request.Context(), rc))
		c.Next()
	}
}

// GetCtx returns the request identity set by RequestContextMiddleware.
func GetCtx(c *gin.Context) (reqctx.Ctx, bool) {
	v, ok := c.Get(ctxKey)
	if !ok {
		return reqctx.Ctx{}, false
	}
	rc, ok := v.(reqctx.Ctx)
	return rc, ok
}
