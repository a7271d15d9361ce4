package cucumber

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/chirino/docmodel/internal/plugin/route/jsonrpc"
	"github.com/chirino/docmodel/internal/security"
)

// RPCReply is the decoded JSON-RPC envelope of the last reply.
type RPCReply struct {
	Result json.RawMessage `json:"result"`
	Error  *struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
		Data    struct {
			Kind string `json:"kind"`
		} `json:"data"`
	} `json:"error"`
}

// Post sends body to path as the current identity and records the reply.
func (s *TestScenario) Post(path, body string) error {
	s.Last = nil
	req, err := http.NewRequestWithContext(context.Background(), http.MethodPost, s.Suite.APIURL+path, strings.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if s.As.User != "" {
		req.Header.Set(security.HeaderUserID, s.As.User)
		if s.As.Tenant != "" {
			req.Header.Set(security.HeaderTenantID, s.As.Tenant)
		}
	}

	resp, err := s.Suite.Client.Do(req)
	if err != nil {
		return err
	}
	defer func() {
		_ = resp.Body.Close()
	}()
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	s.Last = &Reply{Status: resp.StatusCode, Body: data}
	return nil
}

// CallRPC posts a JSON-RPC request for method. params is raw JSON and is
// omitted when blank.
func (s *TestScenario) CallRPC(method, params string) error {
	s.nextRPCID++
	var body strings.Builder
	fmt.Fprintf(&body, `{"jsonrpc":"2.0","id":%d,"method":%s`, s.nextRPCID, strconv.Quote(method))
	if strings.TrimSpace(params) != "" {
		body.WriteString(`,"params":`)
		body.WriteString(params)
	}
	body.WriteString("}")
	return s.Post(jsonrpc.Path, body.String())
}

// RPCReply decodes the last reply as a JSON-RPC envelope.
func (s *TestScenario) RPCReply() (*RPCReply, error) {
	if s.Last == nil {
		return nil, fmt.Errorf("no rpc response available")
	}
	var out RPCReply
	if err := json.Unmarshal(s.Last.Body, &out); err != nil {
		return nil, fmt.Errorf("error parsing rpc response: %w\nbody was:\n%s", err, s.Last.Body)
	}
	return &out, nil
}
