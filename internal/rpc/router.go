package rpc

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"

	"github.com/chirino/docmodel/internal/model"
	"github.com/chirino/docmodel/internal/reqctx"
	"github.com/gin-gonic/gin/binding"
)

// ErrMethodNotFound is returned by Call for an unregistered method.
var ErrMethodNotFound = errors.New("method not found")

// ParamsError reports params that could not be decoded or failed validation.
type ParamsError struct {
	Method string
	Err    error
}

func (e *ParamsError) Error() string {
	return fmt.Sprintf("invalid params for %s: %v", e.Method, e.Err)
}

func (e *ParamsError) Unwrap() error { return e.Err }

// Handler runs one method against the raw JSON params.
type Handler func(ctx context.Context, rc reqctx.Ctx, mm *model.ModelManager, params json.RawMessage) (any, error)

// Method adapts a typed handler. Params are decoded from JSON and validated
// with gin's validator, so binding:"required" fields must be present.
func Method[P, R any](fn func(context.Context, reqctx.Ctx, *model.ModelManager, P) (R, error)) Handler {
	return func(ctx context.Context, rc reqctx.Ctx, mm *model.ModelManager, raw json.RawMessage) (any, error) {
		var params P
		if len(raw) > 0 && !bytes.Equal(raw, []byte("null")) {
			if err := json.Unmarshal(raw, &params); err != nil {
				return nil, &ParamsError{Err: err}
			}
		}
		if err := binding.Validator.ValidateStruct(&params); err != nil {
			return nil, &ParamsError{Err: err}
		}
		return fn(ctx, rc, mm, params)
	}
}

// Router maps method names to handlers. It is built once at startup and
// read concurrently afterwards.
type Router struct {
	methods map[string]Handler
}

// NewRouter returns an empty router.
func NewRouter() *Router {
	return &Router{methods: map[string]Handler{}}
}

// AllRoutes returns a router with the methods of every RPC entity.
func AllRoutes() *Router {
	r := NewRouter()
	registerGenerated(r)
	return r
}

// Add registers h under name. Registering a name twice panics.
func (r *Router) Add(name string, h Handler) {
	if _, dup := r.methods[name]; dup {
		panic(fmt.Sprintf("rpc: method %q registered twice", name))
	}
	r.methods[name] = h
}

// Methods returns the registered method names, sorted.
func (r *Router) Methods() []string {
	names := make([]string, 0, len(r.methods))
	for name := range r.methods {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Call runs method. Handler errors are returned unchanged, except that a
// ParamsError is stamped with the method name.
func (r *Router) Call(ctx context.Context, rc reqctx.Ctx, mm *model.ModelManager, method string, params json.RawMessage) (any, error) {
	h, ok := r.methods[method]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrMethodNotFound, method)
	}
	res, err := h(ctx, rc, mm, params)
	var pe *ParamsError
	if errors.As(err, &pe) && pe.Method == "" {
		pe.Method = method
	}
	return res, err
}
