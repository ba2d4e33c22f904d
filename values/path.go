package values

import (
	"fmt"
	"maps"
	"slices"
	"strings"
)

// splitPath splits a dot-delimited path into its segments.
// An empty path has no segments.
func splitPath(path string) []string {
	if path == "" {
		return nil
	}

	return strings.Split(path, ".")
}

// joinPath appends a key to a parent path.
func joinPath(parent, key string) string {
	if parent == "" {
		return key
	}

	return parent + "." + key
}

// indexPath returns the display form of a sequence element path,
// e.g. "containers[2]". Index paths are display-only and never resolved.
func indexPath(parent string, index int) string {
	return fmt.Sprintf("%s[%d]", parent, index)
}

// sortedKeys returns the keys of m in sorted order.
func sortedKeys(m map[string]any) []string {
	return slices.Sorted(maps.Keys(m))
}

// Get resolves a dot-delimited path against tree. It returns false the
// moment any intermediate node is missing or is not a mapping when a
// further descent is required. A present key holding an explicit nil
// returns (nil, true).
func Get(tree map[string]any, path string) (any, bool) {
	segments := splitPath(path)
	if tree == nil || len(segments) == 0 {
		return nil, false
	}

	var current any = tree

	for _, segment := range segments {
		node, ok := current.(map[string]any)
		if !ok {
			return nil, false
		}

		current, ok = node[segment]
		if !ok {
			return nil, false
		}
	}

	return current, true
}

// Set assigns value at a dot-delimited path, creating intermediate mapping
// nodes as needed. An intermediate segment that is missing or holds a
// non-mapping value is replaced with an empty mapping. The tree is mutated
// in place.
func Set(tree map[string]any, path string, value any) {
	segments := splitPath(path)
	if tree == nil || len(segments) == 0 {
		return
	}

	current := tree

	for _, segment := range segments[:len(segments)-1] {
		child, ok := current[segment].(map[string]any)
		if !ok {
			child = make(map[string]any)
			current[segment] = child
		}

		current = child
	}

	current[segments[len(segments)-1]] = value
}

// Delete removes the value at a dot-delimited path. Missing paths are a
// no-op.
func Delete(tree map[string]any, path string) {
	segments := splitPath(path)
	if tree == nil || len(segments) == 0 {
		return
	}

	current := tree

	for _, segment := range segments[:len(segments)-1] {
		child, ok := current[segment].(map[string]any)
		if !ok {
			return
		}

		current = child
	}

	delete(current, segments[len(segments)-1])
}

// LeafPaths enumerates every path in tree whose value is not itself a
// mapping. Sequences and scalars are both leaves. The traversal is
// pre-order with keys visited in sorted order, so output is deterministic
// regardless of construction order.
func LeafPaths(tree map[string]any) []string {
	var paths []string

	walkLeaves(tree, "", &paths)

	return paths
}

// walkLeaves appends the leaf paths under tree to paths.
func walkLeaves(tree map[string]any, prefix string, paths *[]string) {
	for _, key := range sortedKeys(tree) {
		path := joinPath(prefix, key)

		child, ok := tree[key].(map[string]any)
		if !ok {
			*paths = append(*paths, path)

			continue
		}

		walkLeaves(child, path, paths)
	}
}
