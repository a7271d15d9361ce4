package bdd

import (
	"github.com/chirino/docmodel/internal/testutil/cucumber"
	"github.com/cucumber/godog"
)

func init() {
	cucumber.StepModules = append(cucumber.StepModules, func(ctx *godog.ScenarioContext, s *cucumber.TestScenario) {
		a := &authSteps{s: s}
		ctx.Step(`^I am user "([^"]*)"$`, a.iAmUser)
		ctx.Step(`^I am user "([^"]*)" in tenant "([^"]*)"$`, a.iAmUserInTenant)
		ctx.Step(`^I am anonymous$`, a.iAmAnonymous)
	})
}

type authSteps struct {
	s *cucumber.TestScenario
}

// iAmUser acts as userID inside the scenario's own tenant.
func (a *authSteps) iAmUser(userID string) error {
	a.s.As = cucumber.Identity{User: userID, Tenant: a.s.Tenant}
	return nil
}

func (a *authSteps) iAmUserInTenant(userID, tenant string) error {
	expanded, err := a.s.Expand(tenant)
	if err != nil {
		return err
	}
	a.s.As = cucumber.Identity{User: userID, Tenant: expanded}
	return nil
}

// iAmAnonymous sends the following requests without identity headers.
func (a *authSteps) iAmAnonymous() error {
	a.s.As = cucumber.Identity{}
	return nil
}
