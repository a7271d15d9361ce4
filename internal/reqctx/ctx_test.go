package reqctx

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRoot(t *testing.T) {
	c := Root()
	require.Equal(t, RootUserID, c.UserID())
	require.Equal(t, DefaultTenantID, c.TenantID())
	require.True(t, c.IsRoot())
	_, ok := c.ConvID()
	require.False(t, ok)
}

func TestNew_RejectsEmptyUserID(t *testing.T) {
	_, err := New("")
	require.ErrorIs(t, err, ErrCannotNewRootCtx)
}

func TestNew_UsesDefaultTenant(t *testing.T) {
	c, err := New("alice")
	require.NoError(t, err)
	require.Equal(t, "alice", c.UserID())
	require.Equal(t, DefaultTenantID, c.TenantID())
	require.False(t, c.IsRoot())
}

func TestWithers_DoNotMutateReceiver(t *testing.T) {
	base, err := New("alice")
	require.NoError(t, err)

	scoped := base.WithTenantID("t2").WithConvID("conv-1")
	require.Equal(t, "t2", scoped.TenantID())
	conv, ok := scoped.ConvID()
	require.True(t, ok)
	require.Equal(t, "conv-1", conv)

	require.Equal(t, DefaultTenantID, base.TenantID())
	_, ok = base.ConvID()
	require.False(t, ok)
}

func TestContextCarrier(t *testing.T) {
	_, ok := FromContext(context.Background())
	require.False(t, ok)

	c, err := New("bob")
	require.NoError(t, err)
	got, ok := FromContext(WithContext(context.Background(), c))
	require.True(t, ok)
	require.Equal(t, "bob", got.UserID())
}
