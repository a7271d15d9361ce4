// Package reqctx holds the per-request identity used to route every data
// access: who is calling, in which conversation, and for which tenant.
package reqctx

import (
	"context"
	"errors"
)

const (
	// RootUserID is the user identifier carried by the root context.
	RootUserID = "0000"
	// DefaultTenantID selects the default logical database.
	DefaultTenantID = "d1UuaOAUBRL2glq1eawbyKHqBgc"
)

// ErrCannotNewRootCtx is returned when New is called without a user identifier.
var ErrCannotNewRootCtx = errors.New("ctx: cannot create a user context with an empty user id")

// Ctx is an immutable request identity. The tenant identifier is used verbatim
// as the database name by the model layer.
type Ctx struct {
	userID   string
	tenantID string
	convID   *string
}

// Root returns the context used for privileged/system operations.
func Root() Ctx {
	return Ctx{userID: RootUserID, tenantID: DefaultTenantID}
}

// New returns a user context on the default tenant.
func New(userID string) (Ctx, error) {
	if userID == "" {
		return Ctx{}, ErrCannotNewRootCtx
	}
	return Ctx{userID: userID, tenantID: DefaultTenantID}, nil
}

// WithConvID returns a copy of c bound to the given conversation.
func (c Ctx) WithConvID(convID string) Ctx {
	c.convID = &convID
	return c
}

// WithTenantID returns a copy of c routed to the given tenant.
func (c Ctx) WithTenantID(tenantID string) Ctx {
	c.tenantID = tenantID
	return c
}

func (c Ctx) UserID() string { return c.userID }

func (c Ctx) TenantID() string { return c.tenantID }

// ConvID returns the conversation identifier, if one was attached.
func (c Ctx) ConvID() (string, bool) {
	if c.convID == nil {
		return "", false
	}
	return *c.convID, true
}

// IsRoot reports whether c carries the root user identifier.
func (c Ctx) IsRoot() bool { return c.userID == RootUserID }

type contextKey struct{}

// WithContext returns a new context carrying the given Ctx.
func WithContext(ctx context.Context, c Ctx) context.Context {
	return context.WithValue(ctx, contextKey{}, c)
}

// FromContext retrieves the Ctx from the context.
func FromContext(ctx context.Context) (Ctx, bool) {
	c, ok := ctx.Value(contextKey{}).(Ctx)
	return c, ok
}
