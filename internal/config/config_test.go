package config

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestContextCarrier(t *testing.T) {
	require.Nil(t, FromContext(context.Background()))

	cfg := DefaultConfig()
	got := FromContext(WithContext(context.Background(), &cfg))
	require.Same(t, &cfg, got)
}

func TestApplyEnv_OverridesDefaults(t *testing.T) {
	t.Setenv("DOCMODEL_DB_CONNECT_TIMEOUT", "3s")
	t.Setenv("DOCMODEL_DRAIN_TIMEOUT_SECONDS", "7")
	t.Setenv("DOCMODEL_MAX_BODY_SIZE", "2MB")
	t.Setenv("DOCMODEL_SEED_TENANT_ID", "tenant-x")

	cfg := DefaultConfig()
	require.NoError(t, cfg.ApplyEnv())
	require.Equal(t, 3*time.Second, cfg.DBConnectTimeout)
	require.Equal(t, 7, cfg.DrainTimeout)
	require.Equal(t, int64(2*1024*1024), cfg.MaxBodySize)
	require.Equal(t, "tenant-x", cfg.SeedTenantID)
}

func TestApplyEnv_RejectsInvalidValues(t *testing.T) {
	t.Setenv("DOCMODEL_DB_CONNECT_TIMEOUT", "soon")
	cfg := DefaultConfig()
	require.Error(t, cfg.ApplyEnv())
}

func TestParseMemorySize(t *testing.T) {
	n, err := parseMemorySize("16k")
	require.NoError(t, err)
	require.Equal(t, int64(16*1024), n)

	_, err = parseMemorySize("-1")
	require.Error(t, err)
}

func TestApplyEnv_NilConfig(t *testing.T) {
	var cfg *Config
	require.NoError(t, cfg.ApplyEnv())
}
