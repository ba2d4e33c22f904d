package values_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rewenila/helmvalues/values"
)

func TestGet(t *testing.T) {
	t.Parallel()

	tree := map[string]any{
		"replicas": 1,
		"image": map[string]any{
			"tag": "latest",
			"pullPolicy": map[string]any{
				"mode": "IfNotPresent",
			},
		},
		"tags":     []any{"x", "y"},
		"explicit": nil,
	}

	tcs := map[string]struct {
		path   string
		want   any
		wantOK bool
	}{
		"top-level scalar": {
			path:   "replicas",
			want:   1,
			wantOK: true,
		},
		"nested scalar": {
			path:   "image.tag",
			want:   "latest",
			wantOK: true,
		},
		"deeply nested scalar": {
			path:   "image.pullPolicy.mode",
			want:   "IfNotPresent",
			wantOK: true,
		},
		"intermediate mapping": {
			path:   "image",
			want:   map[string]any{"tag": "latest", "pullPolicy": map[string]any{"mode": "IfNotPresent"}},
			wantOK: true,
		},
		"sequence leaf": {
			path:   "tags",
			want:   []any{"x", "y"},
			wantOK: true,
		},
		"explicit null is present": {
			path:   "explicit",
			want:   nil,
			wantOK: true,
		},
		"missing top-level key": {
			path:   "missing",
			wantOK: false,
		},
		"missing nested key": {
			path:   "image.missing",
			wantOK: false,
		},
		"descent through scalar": {
			path:   "replicas.count",
			wantOK: false,
		},
		"descent through sequence": {
			path:   "tags.0",
			wantOK: false,
		},
		"descent through null": {
			path:   "explicit.inner",
			wantOK: false,
		},
		"empty path": {
			path:   "",
			wantOK: false,
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			got, ok := values.Get(tree, tc.path)
			require.Equal(t, tc.wantOK, ok)

			if tc.wantOK {
				assert.Equal(t, tc.want, got)
			}
		})
	}
}

func TestSet(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		tree  map[string]any
		path  string
		value any
		want  map[string]any
	}{
		"top-level assignment": {
			tree:  map[string]any{},
			path:  "replicas",
			value: 3,
			want:  map[string]any{"replicas": 3},
		},
		"creates intermediate mappings": {
			tree:  map[string]any{},
			path:  "image.tag",
			value: "1.2.3",
			want:  map[string]any{"image": map[string]any{"tag": "1.2.3"}},
		},
		"replaces scalar intermediate with mapping": {
			tree:  map[string]any{"image": "busybox"},
			path:  "image.tag",
			value: "1.2.3",
			want:  map[string]any{"image": map[string]any{"tag": "1.2.3"}},
		},
		"overwrites existing leaf": {
			tree:  map[string]any{"image": map[string]any{"tag": "latest"}},
			path:  "image.tag",
			value: "1.2.3",
			want:  map[string]any{"image": map[string]any{"tag": "1.2.3"}},
		},
		"preserves sibling keys": {
			tree:  map[string]any{"image": map[string]any{"repository": "nginx"}},
			path:  "image.tag",
			value: "1.2.3",
			want:  map[string]any{"image": map[string]any{"repository": "nginx", "tag": "1.2.3"}},
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			values.Set(tc.tree, tc.path, tc.value)
			assert.Equal(t, tc.want, tc.tree)
		})
	}
}

func TestDelete(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		tree map[string]any
		path string
		want map[string]any
	}{
		"removes leaf": {
			tree: map[string]any{"image": map[string]any{"tag": "latest", "repository": "nginx"}},
			path: "image.tag",
			want: map[string]any{"image": map[string]any{"repository": "nginx"}},
		},
		"removes subtree": {
			tree: map[string]any{"image": map[string]any{"tag": "latest"}, "replicas": 1},
			path: "image",
			want: map[string]any{"replicas": 1},
		},
		"missing path is a no-op": {
			tree: map[string]any{"replicas": 1},
			path: "image.tag",
			want: map[string]any{"replicas": 1},
		},
		"scalar intermediate is a no-op": {
			tree: map[string]any{"image": "busybox"},
			path: "image.tag",
			want: map[string]any{"image": "busybox"},
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			values.Delete(tc.tree, tc.path)
			assert.Equal(t, tc.want, tc.tree)
		})
	}
}

func TestLeafPaths(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		tree map[string]any
		want []string
	}{
		"scalars and sequences are leaves": {
			tree: map[string]any{
				"replicas": 1,
				"tags":     []any{"x", "y"},
				"image": map[string]any{
					"tag":        "latest",
					"repository": "nginx",
				},
			},
			want: []string{"image.repository", "image.tag", "replicas", "tags"},
		},
		"explicit null is a leaf": {
			tree: map[string]any{"a": nil},
			want: []string{"a"},
		},
		"empty tree": {
			tree: map[string]any{},
			want: nil,
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tc.want, values.LeafPaths(tc.tree))
		})
	}
}

func TestLeafPathRoundTrip(t *testing.T) {
	t.Parallel()

	tree := map[string]any{
		"replicas": 1,
		"image": map[string]any{
			"tag": "latest",
			"resources": map[string]any{
				"limits": map[string]any{"cpu": "100m"},
			},
		},
		"tags": []any{"x", "y"},
	}

	// Re-setting every leaf at its own path onto a copy reproduces the
	// original tree.
	rebuilt := values.DeepCopy(tree)

	for _, path := range values.LeafPaths(tree) {
		value, ok := values.Get(tree, path)
		require.True(t, ok, "leaf path %q must resolve", path)

		values.Set(rebuilt, path, value)
	}

	assert.True(t, values.Equal(tree, rebuilt))
}
