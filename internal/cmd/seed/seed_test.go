package seed

import (
	"context"
	"testing"

	"github.com/chirino/docmodel/internal/config"
	"github.com/chirino/docmodel/internal/entity"
	"github.com/chirino/docmodel/internal/reqctx"
	"github.com/chirino/docmodel/internal/testutil/testmongo"
	"github.com/stretchr/testify/require"
)

func TestRun_IsIdempotent(t *testing.T) {
	mm := testmongo.NewModelManager(t)
	ctx := context.Background()
	cfg := config.DefaultConfig()
	cfg.SeedTenantID = "seeded"

	first, err := Run(ctx, mm, &cfg)
	require.NoError(t, err)
	second, err := Run(ctx, mm, &cfg)
	require.NoError(t, err)
	require.Equal(t, first, second)

	rc := reqctx.Root().WithTenantID("seeded")
	all, err := entity.ExampleController{}.List(ctx, rc, mm, nil)
	require.NoError(t, err)
	require.Len(t, all, 1)
	require.Equal(t, DemoName, *all[0].Name)
}
