// Package cucumber is a godog harness for driving the JSON-RPC endpoint of a
// running server.
//
// Each scenario gets its own tenant and acts as one user at a time. The last
// HTTP reply is kept on the scenario so later steps can assert on it.
// ${name} in step text expands to a scenario variable, and ${tenant} expands
// to the scenario's tenant id.
package cucumber

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/cucumber/godog"
	"github.com/cucumber/godog/colors"
	"github.com/google/uuid"
)

func DefaultOptions() godog.Options {
	return godog.Options{
		Output:      colors.Colored(os.Stdout),
		Format:      "progress",
		Paths:       []string{"features"},
		Randomize:   time.Now().UTC().UnixNano(),
		Concurrency: 1,
	}
}

// ApplyReportOptions switches output to junit XML under GODOG_REPORT_DIR when
// that variable is set. The returned func closes the report file.
func ApplyReportOptions(opts *godog.Options, testName string) func() {
	reportDir := os.Getenv("GODOG_REPORT_DIR")
	if reportDir == "" {
		return func() {}
	}
	if err := os.MkdirAll(reportDir, 0755); err != nil {
		return func() {}
	}
	f, err := os.Create(filepath.Join(reportDir, strings.ReplaceAll(testName, "/", "-")+".xml"))
	if err != nil {
		return func() {}
	}
	opts.Output = f
	opts.Format = "junit"
	return func() { _ = f.Close() }
}

// TestDB gives steps direct access to the store behind the server.
type TestDB interface {
	DropTenant(ctx context.Context, tenantID string) error
	CountDocuments(ctx context.Context, tenantID, collection string) (int64, error)
}

// TestSuite is shared by every scenario of a run.
type TestSuite struct {
	APIURL string
	Client *http.Client
	DB     TestDB
}

func NewTestSuite(apiURL string, db TestDB) *TestSuite {
	return &TestSuite{APIURL: apiURL, Client: &http.Client{Timeout: 30 * time.Second}, DB: db}
}

// Identity is who the scenario's requests are sent as. An empty User sends
// no identity headers.
type Identity struct {
	User   string
	Tenant string
}

// Reply is the last HTTP response a scenario received.
type Reply struct {
	Status int
	Body   []byte
}

type TestScenario struct {
	Suite     *TestSuite
	Tenant    string
	As        Identity
	Variables map[string]string
	Last      *Reply

	nextRPCID int
}

// StepModules register steps for every new scenario.
var StepModules []func(ctx *godog.ScenarioContext, s *TestScenario)

func (suite *TestSuite) InitializeScenario(ctx *godog.ScenarioContext) {
	s := &TestScenario{
		Suite:     suite,
		Tenant:    "t" + strings.ReplaceAll(uuid.NewString(), "-", ""),
		Variables: map[string]string{},
	}
	for _, module := range StepModules {
		module(ctx, s)
	}
}

// Expand replaces ${name} references in value. Unknown names are an error.
func (s *TestScenario) Expand(value string) (string, error) {
	var missing []string
	out := os.Expand(value, func(name string) string {
		if name == "tenant" {
			return s.Tenant
		}
		v, ok := s.Variables[name]
		if !ok {
			missing = append(missing, name)
		}
		return v
	})
	if len(missing) > 0 {
		return "", fmt.Errorf("variable ${%s} not defined yet", strings.Join(missing, "}, ${"))
	}
	return out, nil
}
