package values_test

import (
	"encoding/json"
	"testing"

	jsonpatch "github.com/evanphx/json-patch/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rewenila/helmvalues/values"
)

func TestJSONPatchOperations(t *testing.T) {
	t.Parallel()

	oldTree := map[string]any{"a": 1, "b": 2}
	newTree := map[string]any{"a": 2, "c": 3}

	ops := values.JSONPatch(oldTree, newTree)
	require.Len(t, ops, 3)

	assert.Equal(t, "replace", ops[0].Op)
	assert.Equal(t, "/a", ops[0].Path)
	require.NotNil(t, ops[0].Value)
	assert.Equal(t, 2, *ops[0].Value)

	assert.Equal(t, "remove", ops[1].Op)
	assert.Equal(t, "/b", ops[1].Path)
	assert.Nil(t, ops[1].Value)

	assert.Equal(t, "add", ops[2].Op)
	assert.Equal(t, "/c", ops[2].Path)
	require.NotNil(t, ops[2].Value)
	assert.Equal(t, 3, *ops[2].Value)
}

func TestJSONPatchPointerEscaping(t *testing.T) {
	t.Parallel()

	oldTree := map[string]any{}
	newTree := map[string]any{
		"a/b": "slash",
		"a~b": "tilde",
	}

	ops := values.JSONPatch(oldTree, newTree)
	require.Len(t, ops, 2)

	paths := []string{ops[0].Path, ops[1].Path}
	assert.Contains(t, paths, "/a~1b")
	assert.Contains(t, paths, "/a~0b")
}

func TestJSONPatchRemoveOmitsValue(t *testing.T) {
	t.Parallel()

	ops := values.JSONPatch(map[string]any{"gone": 1}, map[string]any{})
	require.Len(t, ops, 1)

	out, err := json.Marshal(ops[0])
	require.NoError(t, err)

	assert.JSONEq(t, `{"op":"remove","path":"/gone"}`, string(out))
}

func TestJSONPatchAddNullValue(t *testing.T) {
	t.Parallel()

	ops := values.JSONPatch(map[string]any{}, map[string]any{"empty": nil})
	require.Len(t, ops, 1)

	out, err := json.Marshal(ops[0])
	require.NoError(t, err)

	// An explicit null must still carry a value member.
	assert.JSONEq(t, `{"op":"add","path":"/empty","value":null}`, string(out))
}

func TestJSONPatchApplies(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		oldTree map[string]any
		newTree map[string]any
	}{
		"scalar replace": {
			oldTree: map[string]any{"a": 1, "b": "keep"},
			newTree: map[string]any{"a": 2, "b": "keep"},
		},
		"leaf add and remove": {
			oldTree: map[string]any{"a": 1, "b": 2},
			newTree: map[string]any{"a": 1, "c": 3},
		},
		"nested add with missing parents": {
			oldTree: map[string]any{"replicas": 1},
			newTree: map[string]any{"replicas": 1, "image": map[string]any{"tag": "1.2.3"}},
		},
		"sequence replaced wholesale": {
			oldTree: map[string]any{"tags": []any{"x", "y"}},
			newTree: map[string]any{"tags": []any{"z"}},
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			patchBytes, err := json.Marshal(values.JSONPatch(tc.oldTree, tc.newTree))
			require.NoError(t, err)

			patch, err := jsonpatch.DecodePatch(patchBytes)
			require.NoError(t, err)

			oldDoc, err := json.Marshal(tc.oldTree)
			require.NoError(t, err)

			opts := jsonpatch.NewApplyOptions()
			opts.EnsurePathExistsOnAdd = true

			patched, err := patch.ApplyWithOptions(oldDoc, opts)
			require.NoError(t, err)

			var got map[string]any
			require.NoError(t, json.Unmarshal(patched, &got))

			assert.True(t, values.Equal(got, tc.newTree),
				"patched %s must equal new tree", patched)
		})
	}
}
