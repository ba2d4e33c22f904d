package values

import (
	"maps"
	"slices"
)

// DiffKind classifies a single difference between two value trees.
type DiffKind string

const (
	// DiffAdded marks a path present only in the new tree.
	DiffAdded DiffKind = "added"
	// DiffRemoved marks a path present only in the old tree.
	DiffRemoved DiffKind = "removed"
	// DiffModified marks a path present in both trees with unequal values.
	DiffModified DiffKind = "modified"
)

// DiffEntry reports one leaf-equivalent path where two trees disagree.
type DiffEntry struct {
	Path string
	Old  any
	New  any
	Kind DiffKind
}

// Diff compares two value trees and reports every path that was added,
// removed, or changed. The comparison covers the union of leaf paths
// reachable from both trees; paths where both values are equal are omitted.
// Entries are sorted by path so output is reproducible for identical inputs
// regardless of construction order.
func Diff(oldTree, newTree map[string]any) []DiffEntry {
	pathSet := make(map[string]bool)

	for _, path := range LeafPaths(oldTree) {
		pathSet[path] = true
	}

	for _, path := range LeafPaths(newTree) {
		pathSet[path] = true
	}

	var entries []DiffEntry

	for _, path := range slices.Sorted(maps.Keys(pathSet)) {
		oldValue, oldOK := Get(oldTree, path)
		newValue, newOK := Get(newTree, path)

		switch {
		case !oldOK && newOK:
			entries = append(entries, DiffEntry{Path: path, New: newValue, Kind: DiffAdded})

		case oldOK && !newOK:
			entries = append(entries, DiffEntry{Path: path, Old: oldValue, Kind: DiffRemoved})

		case oldOK && newOK && !Equal(oldValue, newValue):
			entries = append(entries, DiffEntry{Path: path, Old: oldValue, New: newValue, Kind: DiffModified})
		}
	}

	return entries
}
