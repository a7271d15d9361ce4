package rpc_test

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/chirino/docmodel/internal/entity"
	"github.com/chirino/docmodel/internal/model"
	"github.com/chirino/docmodel/internal/reqctx"
	"github.com/chirino/docmodel/internal/rpc"
	"github.com/chirino/docmodel/internal/testutil/testmongo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr[T any](v T) *T { return &v }

func TestExampleMethods(t *testing.T) {
	mm := testmongo.NewModelManager(t)
	ctx := context.Background()
	rc := reqctx.Root()

	created, err := rpc.CreateExample(ctx, rc, mm, rpc.ParamsForCreate[entity.ExampleForCreate]{
		Data: entity.ExampleForCreate{Name: "Alice", Age: ptr(int32(30))},
	})
	require.NoError(t, err)
	require.NotNil(t, created.Data.ID)
	id := *created.Data.ID
	assert.Equal(t, "Alice", *created.Data.Name)

	updated, err := rpc.UpdateExample(ctx, rc, mm, rpc.ParamsForUpdate[entity.ExampleForUpdate]{
		ID:   id,
		Data: entity.ExampleForUpdate{Age: ptr(int32(31))},
	})
	require.NoError(t, err)
	assert.Equal(t, int32(31), *updated.Data.Age)
	assert.Equal(t, "Alice", *updated.Data.Name)

	listed, err := rpc.ListExamples(ctx, rc, mm, rpc.ParamsList[entity.ExampleFilter]{})
	require.NoError(t, err)
	assert.Len(t, listed.Data, 1)

	deleted, err := rpc.DeleteExample(ctx, rc, mm, rpc.ParamsIded{ID: id})
	require.NoError(t, err)
	assert.Equal(t, int32(31), *deleted.Data.Age)

	_, err = rpc.GetExample(ctx, rc, mm, rpc.ParamsIded{ID: id})
	assert.ErrorIs(t, err, model.ErrRead)

	_, err = rpc.DeleteExample(ctx, rc, mm, rpc.ParamsIded{ID: id})
	assert.ErrorIs(t, err, model.ErrRead)

	_, err = rpc.GetExample(ctx, rc, mm, rpc.ParamsIded{ID: "bogus"})
	assert.ErrorIs(t, err, model.ErrObID)
}

func TestRouterOverStore(t *testing.T) {
	mm := testmongo.NewModelManager(t)
	ctx := context.Background()
	rc, err := reqctx.New("user-42")
	require.NoError(t, err)
	r := rpc.AllRoutes()

	res, err := r.Call(ctx, rc, mm, "create_note", json.RawMessage(`{"data":{"title":"first"}}`))
	require.NoError(t, err)
	note := res.(rpc.DataResult[entity.Note]).Data
	assert.Equal(t, "user-42", *note.OwnerID)

	res, err = r.Call(ctx, rc, mm, "list_notes", json.RawMessage(`{"filter":{"owner_id":"user-42"}}`))
	require.NoError(t, err)
	assert.Len(t, res.(rpc.DataResult[[]entity.Note]).Data, 1)
}
