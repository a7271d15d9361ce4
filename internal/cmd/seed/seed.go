package seed

import (
	"context"
	"errors"

	"github.com/charmbracelet/log"
	"github.com/chirino/docmodel/internal/config"
	"github.com/chirino/docmodel/internal/entity"
	"github.com/chirino/docmodel/internal/model"
	"github.com/chirino/docmodel/internal/reqctx"
	"github.com/urfave/cli/v3"
)

// DemoName is the name of the seeded Example.
const DemoName = "demo"

// Command returns the seed sub-command.
func Command() *cli.Command {
	return &cli.Command{
		Name:  "seed",
		Usage: "Create demo data for local development",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "db-url",
				Sources: cli.EnvVars("DOCMODEL_DB_URL"),
				Usage:   "MongoDB connection URL",
				Value:   config.DefaultConfig().DBURL,
			},
			&cli.StringFlag{
				Name:    "tenant",
				Sources: cli.EnvVars("DOCMODEL_SEED_TENANT_ID"),
				Usage:   "Tenant to seed; defaults to the root context's tenant",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			cfg := config.DefaultConfig()
			if err := cfg.ApplyEnv(); err != nil {
				return err
			}
			cfg.DBURL = cmd.String("db-url")
			if cmd.IsSet("tenant") {
				cfg.SeedTenantID = cmd.String("tenant")
			}
			ctx = config.WithContext(ctx, &cfg)

			mm, err := model.NewModelManager(ctx, &cfg)
			if err != nil {
				return err
			}
			defer func() {
				if err := mm.Close(context.Background()); err != nil {
					log.Warn("Failed to close model manager", "err", err)
				}
			}()

			id, err := Run(ctx, mm, &cfg)
			if err != nil {
				return err
			}
			log.Info("Seed completed", "example", id)
			return nil
		},
	}
}

// Run creates the demo Example under the root context unless it already
// exists, and returns its id.
func Run(ctx context.Context, mm *model.ModelManager, cfg *config.Config) (string, error) {
	rc := reqctx.Root()
	if cfg.SeedTenantID != "" {
		rc = rc.WithTenantID(cfg.SeedTenantID)
	}

	ctrl := entity.ExampleController{}
	name := DemoName
	existing, err := ctrl.Get(ctx, rc, mm, &entity.ExampleFilter{Name: &name})
	switch {
	case err == nil:
		log.Info("Demo data already present", "tenant", rc.TenantID())
		return *existing.ID, nil
	case !errors.Is(err, model.ErrRead):
		return "", err
	}

	description := "seeded for local development"
	age := int32(1)
	id, err := ctrl.Create(ctx, rc, mm, entity.ExampleForCreate{
		Name:        DemoName,
		Description: &description,
		Age:         &age,
		Skills:      []string{"crud"},
	})
	if err != nil {
		return "", err
	}
	log.Info("Created demo example", "tenant", rc.TenantID(), "id", id)
	return id, nil
}
