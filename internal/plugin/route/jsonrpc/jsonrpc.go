// Package jsonrpc serves the RPC router as a JSON-RPC 2.0 endpoint.
package jsonrpc

import (
	"encoding/json"
	"errors"
	"net/http"
	"slices"

	"github.com/charmbracelet/log"
	"github.com/chirino/docmodel/internal/model"
	"github.com/chirino/docmodel/internal/rpc"
	"github.com/chirino/docmodel/internal/security"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// Path is where the endpoint is mounted.
const Path = "/api/rpc"

// JSON-RPC 2.0 error codes. Engine failures use CodeStore with the error
// kind in data.kind.
const (
	CodeParseError     = -32700
	CodeInvalidRequest = -32600
	CodeMethodNotFound = -32601
	CodeInvalidParams  = -32602
	CodeInternal       = -32603
	CodeStore          = -32000
)

type request struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      any             `json:"id"`
	Method  string          `json:"method"`
	Params  json.RawMessage `json:"params"`
}

type response struct {
	JSONRPC string    `json:"jsonrpc"`
	ID      any       `json:"id"`
	Result  any       `json:"result,omitempty"`
	Error   *rpcError `json:"error,omitempty"`
}

type rpcError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

// MountRoutes mounts the endpoint behind the given middleware. The
// middleware must include security.RequestContextMiddleware.
func MountRoutes(r *gin.Engine, mm *model.ModelManager, router *rpc.Router, middleware ...gin.HandlerFunc) {
	handlers := append(slices.Clone(middleware), func(c *gin.Context) {
		handle(c, mm, router)
	})
	r.POST(Path, handlers...)
}

func handle(c *gin.Context, mm *model.ModelManager, router *rpc.Router) {
	var req request
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusOK, response{JSONRPC: "2.0", Error: &rpcError{Code: CodeParseError, Message: err.Error()}})
		return
	}
	if req.ID == nil {
		req.ID = uuid.NewString()
	}
	if req.JSONRPC != "2.0" || req.Method == "" {
		reply(c, req.ID, nil, &rpcError{Code: CodeInvalidRequest, Message: "invalid request"})
		return
	}

	rc, ok := security.GetCtx(c)
	if !ok {
		log.Error("RPC request without request context", "method", req.Method)
		reply(c, req.ID, nil, &rpcError{Code: CodeInternal, Message: "internal error"})
		return
	}

	res, err := router.Call(c.Request.Context(), rc, mm, req.Method, req.Params)
	if err != nil {
		rerr := toRPCError(err)
		label := req.Method
		if rerr.Code == CodeMethodNotFound {
			label = "unknown"
		}
		security.CountRPC(label, outcome(err))
		log.Debug("RPC call failed", "method", req.Method, "tenantId", rc.TenantID(), "err", err)
		reply(c, req.ID, nil, rerr)
		return
	}
	security.CountRPC(req.Method, "ok")
	reply(c, req.ID, res, nil)
}

func reply(c *gin.Context, id, result any, rerr *rpcError) {
	c.JSON(http.StatusOK, response{JSONRPC: "2.0", ID: id, Result: result, Error: rerr})
}

// outcome labels a failed call with its error kind, or "error" when the
// failure is outside the taxonomy.
func outcome(err error) string {
	var cant *model.CantCreateModelManagerProviderError
	if errors.As(err, &cant) {
		return "CantCreateModelManagerProvider"
	}
	if kind := model.KindOf(err); kind != nil {
		return kind.Error()
	}
	return "error"
}

func toRPCError(err error) *rpcError {
	var pe *rpc.ParamsError
	switch {
	case errors.Is(err, rpc.ErrMethodNotFound):
		return &rpcError{Code: CodeMethodNotFound, Message: err.Error()}
	case errors.As(err, &pe):
		return &rpcError{Code: CodeInvalidParams, Message: err.Error()}
	}

	kind := model.KindOf(err)
	if kind == nil {
		log.Error("RPC call failed", "err", err)
		return &rpcError{Code: CodeInternal, Message: "internal error"}
	}
	code := CodeStore
	if errors.Is(kind, model.ErrObID) {
		code = CodeInvalidParams
	}
	return &rpcError{Code: code, Message: kind.Error(), Data: gin.H{"kind": kind.Error()}}
}
