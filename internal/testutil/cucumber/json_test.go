package cucumber

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJSONMustContain(t *testing.T) {
	actual := []byte(`{"jsonrpc":"2.0","id":1,"result":{"data":{"id":"a","name":"Alice","tags":["x","y"]}}}`)

	require.NoError(t, JSONMustContain(actual, []byte(`{"result":{"data":{"name":"Alice"}}}`)))
	require.NoError(t, JSONMustContain(actual, []byte(`{"result":{"data":{"tags":["x","y"]}}}`)))

	err := JSONMustContain(actual, []byte(`{"result":{"data":{"name":"Bob"}}}`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "at $.result.data.name")

	err = JSONMustContain(actual, []byte(`{"result":{"data":{"tags":["x"]}}}`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "array length")

	err = JSONMustContain(actual, []byte(`{"error":{}}`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), `missing key "error"`)
}

func TestExpand(t *testing.T) {
	s := &TestScenario{Tenant: "t1", Variables: map[string]string{"exampleId": "abc"}}

	out, err := s.Expand(`{"id":"${exampleId}","tenant":"${tenant}-other"}`)
	require.NoError(t, err)
	assert.Equal(t, `{"id":"abc","tenant":"t1-other"}`, out)

	_, err = s.Expand("${missing}")
	require.ErrorContains(t, err, "${missing} not defined yet")
}
