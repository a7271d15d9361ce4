package bdd

import (
	"context"

	"github.com/chirino/docmodel/internal/testutil/cucumber"
	"github.com/cucumber/godog"
)

func init() {
	cucumber.StepModules = append(cucumber.StepModules, func(ctx *godog.ScenarioContext, s *cucumber.TestScenario) {
		if s.Suite.DB == nil {
			return
		}
		ctx.After(func(ctx context.Context, sc *godog.Scenario, err error) (context.Context, error) {
			return ctx, s.Suite.DB.DropTenant(ctx, s.Tenant)
		})
	})
}
