package cucumber

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/cucumber/godog"
	"github.com/itchyny/gojq"
)

func init() {
	StepModules = append(StepModules, func(ctx *godog.ScenarioContext, s *TestScenario) {
		ctx.Step(`^I call rpc "([^"]*)"$`, s.iCallRPC)
		ctx.Step(`^I call rpc "([^"]*)" with params:$`, s.iCallRPCWithParams)
		ctx.Step(`^I POST path "([^"]*)" with json body:$`, s.iPOSTPathWithJSONBody)
		ctx.Step(`^the rpc call should succeed$`, s.theRPCCallShouldSucceed)
		ctx.Step(`^the rpc error code should be (-?\d+)$`, s.theRPCErrorCodeShouldBe)
		ctx.Step(`^the rpc error kind should be "([^"]*)"$`, s.theRPCErrorKindShouldBe)
		ctx.Step(`^I store the rpc result id as \${([^}]*)}$`, s.iStoreTheRPCResultIDAs)
		ctx.Step(`^the response code should be (\d+)$`, s.theResponseCodeShouldBe)
		ctx.Step(`^the response should contain json:$`, s.theResponseShouldContainJSON)
		ctx.Step(`^the "(.*)" selection from the response should match "([^"]*)"$`, s.theSelectionShouldMatch)
		ctx.Step(`^the "([^"]*)" collection should have (\d+) documents?$`, s.theCollectionShouldHaveDocuments)
	})
}

func (s *TestScenario) iCallRPC(method string) error {
	return s.CallRPC(method, "")
}

func (s *TestScenario) iCallRPCWithParams(method string, params *godog.DocString) error {
	expanded, err := s.Expand(params.Content)
	if err != nil {
		return err
	}
	return s.CallRPC(method, expanded)
}

func (s *TestScenario) iPOSTPathWithJSONBody(path string, body *godog.DocString) error {
	expanded, err := s.Expand(body.Content)
	if err != nil {
		return err
	}
	return s.Post(path, expanded)
}

func (s *TestScenario) theRPCCallShouldSucceed() error {
	out, err := s.RPCReply()
	if err != nil {
		return err
	}
	if out.Error != nil {
		return fmt.Errorf("rpc call failed with code %d: %s", out.Error.Code, out.Error.Message)
	}
	return nil
}

func (s *TestScenario) theRPCErrorCodeShouldBe(code int) error {
	out, err := s.RPCReply()
	if err != nil {
		return err
	}
	if out.Error == nil {
		return fmt.Errorf("expected rpc error code %d, but the call succeeded: %s", code, out.Result)
	}
	if out.Error.Code != code {
		return fmt.Errorf("expected rpc error code %d, actual %d: %s", code, out.Error.Code, out.Error.Message)
	}
	return nil
}

func (s *TestScenario) theRPCErrorKindShouldBe(kind string) error {
	out, err := s.RPCReply()
	if err != nil {
		return err
	}
	if out.Error == nil {
		return fmt.Errorf("expected rpc error kind %s, but the call succeeded: %s", kind, out.Result)
	}
	if out.Error.Data.Kind != kind {
		return fmt.Errorf("expected rpc error kind %s, actual %q: %s", kind, out.Error.Data.Kind, out.Error.Message)
	}
	return nil
}

func (s *TestScenario) iStoreTheRPCResultIDAs(name string) error {
	out, err := s.RPCReply()
	if err != nil {
		return err
	}
	if out.Error != nil {
		return fmt.Errorf("rpc call failed with code %d: %s", out.Error.Code, out.Error.Message)
	}
	var result struct {
		Data struct {
			ID string `json:"id"`
		} `json:"data"`
	}
	if err := json.Unmarshal(out.Result, &result); err != nil {
		return fmt.Errorf("error parsing rpc result: %w", err)
	}
	if result.Data.ID == "" {
		return fmt.Errorf("rpc result has no data.id: %s", out.Result)
	}
	s.Variables[name] = result.Data.ID
	return nil
}

func (s *TestScenario) theResponseCodeShouldBe(expected int) error {
	if s.Last == nil {
		return fmt.Errorf("no HTTP response available")
	}
	if s.Last.Status != expected {
		return fmt.Errorf("expected response code %d, actual %d, body: %s", expected, s.Last.Status, s.Last.Body)
	}
	return nil
}

func (s *TestScenario) theResponseShouldContainJSON(expected *godog.DocString) error {
	if s.Last == nil || len(s.Last.Body) == 0 {
		return fmt.Errorf("got an empty response from server, expected a json body")
	}
	expanded, err := s.Expand(expected.Content)
	if err != nil {
		return err
	}
	return JSONMustContain(s.Last.Body, []byte(expanded))
}

// theSelectionShouldMatch runs a jq selector over the last reply and compares
// its scalar rendering with expected.
func (s *TestScenario) theSelectionShouldMatch(selector, expected string) error {
	if s.Last == nil {
		return fmt.Errorf("no HTTP response available")
	}
	var doc any
	if err := json.Unmarshal(s.Last.Body, &doc); err != nil {
		return fmt.Errorf("error parsing response json: %w\njson was:\n%s", err, s.Last.Body)
	}
	query, err := gojq.Parse(selector)
	if err != nil {
		return err
	}
	actual, found := query.Run(doc).Next()
	if !found {
		return fmt.Errorf("selector %s matched nothing in:\n%s", selector, s.Last.Body)
	}
	if err, ok := actual.(error); ok {
		return fmt.Errorf("selector %s: %w", selector, err)
	}
	expected, err = s.Expand(expected)
	if err != nil {
		return err
	}
	text := "null"
	if actual != nil {
		text = fmt.Sprintf("%v", actual)
	}
	if text != expected {
		return fmt.Errorf("selection %s: expected %s, actual %s", selector, expected, text)
	}
	return nil
}

func (s *TestScenario) theCollectionShouldHaveDocuments(collection string, expected int64) error {
	if s.Suite.DB == nil {
		return fmt.Errorf("no test database configured")
	}
	n, err := s.Suite.DB.CountDocuments(context.Background(), s.Tenant, collection)
	if err != nil {
		return err
	}
	if n != expected {
		return fmt.Errorf("expected %d documents in %s, actual %d", expected, collection, n)
	}
	return nil
}
