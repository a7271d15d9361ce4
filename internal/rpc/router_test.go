package rpc

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/chirino/docmodel/internal/model"
	"github.com/chirino/docmodel/internal/reqctx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type echoParams struct {
	Value string `json:"value" binding:"required"`
}

func echo(_ context.Context, rc reqctx.Ctx, _ *model.ModelManager, p echoParams) (DataResult[string], error) {
	return Data(rc.UserID() + ":" + p.Value), nil
}

func TestRouter_Call(t *testing.T) {
	r := NewRouter()
	r.Add("echo", Method(echo))

	res, err := r.Call(context.Background(), reqctx.Root(), nil, "echo", json.RawMessage(`{"value":"hi"}`))
	require.NoError(t, err)
	assert.Equal(t, DataResult[string]{Data: "0000:hi"}, res)
}

func TestRouter_MethodNotFound(t *testing.T) {
	_, err := NewRouter().Call(context.Background(), reqctx.Root(), nil, "nope", nil)
	assert.ErrorIs(t, err, ErrMethodNotFound)
}

func TestRouter_ParamsErrors(t *testing.T) {
	r := NewRouter()
	r.Add("echo", Method(echo))

	for name, raw := range map[string]string{
		"malformed": `{"value":`,
		"missing":   `{}`,
		"absent":    ``,
	} {
		t.Run(name, func(t *testing.T) {
			_, err := r.Call(context.Background(), reqctx.Root(), nil, "echo", json.RawMessage(raw))
			var pe *ParamsError
			require.ErrorAs(t, err, &pe)
			assert.Equal(t, "echo", pe.Method)
		})
	}
}

func TestRouter_DuplicatePanics(t *testing.T) {
	r := NewRouter()
	r.Add("echo", Method(echo))
	assert.Panics(t, func() { r.Add("echo", Method(echo)) })
}

func TestAllRoutes(t *testing.T) {
	assert.Equal(t, []string{
		"create_example", "create_note",
		"delete_example", "delete_note",
		"get_example", "get_note",
		"list_examples", "list_notes",
		"update_example", "update_note",
	}, AllRoutes().Methods())
}

func TestGenerated_ValidatesBeforeStore(t *testing.T) {
	r := AllRoutes()
	ctx := context.Background()

	_, err := r.Call(ctx, reqctx.Root(), nil, "create_example", json.RawMessage(`{"data":{"age":3}}`))
	var pe *ParamsError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, "create_example", pe.Method)

	_, err = r.Call(ctx, reqctx.Root(), nil, "get_note", json.RawMessage(`{}`))
	require.ErrorAs(t, err, &pe)
}
