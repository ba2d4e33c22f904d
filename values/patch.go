package values

import "strings"

// Operation is a single RFC 6902 JSON Patch operation. Value is a pointer
// so that add/replace operations carrying an explicit null still marshal a
// "value" member.
type Operation struct {
	Op    string `json:"op"`
	Path  string `json:"path"`
	Value *any   `json:"value,omitempty"`
}

// JSONPatch converts the differences between two trees into RFC 6902 JSON
// Patch operations, one per [DiffEntry]. Added paths become "add"
// operations targeting the leaf; appliers should enable ensure-path-exists
// semantics so that missing parent containers are created. Removal
// operations target leaf paths only, so a container emptied by removals is
// left in place rather than removed itself.
func JSONPatch(oldTree, newTree map[string]any) []Operation {
	var ops []Operation

	for _, entry := range Diff(oldTree, newTree) {
		switch entry.Kind {
		case DiffAdded:
			ops = append(ops, Operation{Op: "add", Path: pointerPath(entry.Path), Value: ptrValue(entry.New)})

		case DiffRemoved:
			ops = append(ops, Operation{Op: "remove", Path: pointerPath(entry.Path)})

		case DiffModified:
			ops = append(ops, Operation{Op: "replace", Path: pointerPath(entry.Path), Value: ptrValue(entry.New)})
		}
	}

	return ops
}

// pointerPath converts a dot-delimited path to an RFC 6901 JSON Pointer.
func pointerPath(path string) string {
	segments := splitPath(path)

	for i, segment := range segments {
		segment = strings.ReplaceAll(segment, "~", "~0")
		segment = strings.ReplaceAll(segment, "/", "~1")
		segments[i] = segment
	}

	return "/" + strings.Join(segments, "/")
}

// ptrValue boxes a value for use in an [Operation].
func ptrValue(value any) *any {
	return &value
}
