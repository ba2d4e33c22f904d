package values

import "slices"

// Merge deep-merges an override value onto a base value and returns the
// effective result.
//
// A nil override leaves base untouched. A nil base yields the override.
// Sequences replace wholesale: an override sequence produces a shallow copy
// of itself, never an element-wise merge with a base sequence. When both
// sides are mappings they merge key by key, with keys only in base kept,
// keys only in override added, and shared keys merged recursively. Any type
// conflict resolves in favor of the override.
//
// Neither input is ever mutated. Fresh mapping objects are returned along
// every merged spine; unchanged subtrees from base may be shared by
// reference.
func Merge(base, override any) any {
	if override == nil {
		return base
	}

	switch ov := override.(type) {
	case []any:
		return slices.Clone(ov)

	case map[string]any:
		bm, _ := base.(map[string]any)

		return mergeMaps(bm, ov)

	default:
		return override
	}
}

// mergeMaps merges override into base key by key, returning a fresh map.
func mergeMaps(base, override map[string]any) map[string]any {
	result := make(map[string]any, len(base)+len(override))

	for key, value := range base {
		result[key] = value
	}

	for key, value := range override {
		result[key] = Merge(result[key], value)
	}

	return result
}

// DeepCopy returns a deep copy of tree. Mappings and sequences are copied
// recursively; scalar leaves are shared.
func DeepCopy(tree map[string]any) map[string]any {
	if tree == nil {
		return nil
	}

	result := make(map[string]any, len(tree))

	for key, value := range tree {
		result[key] = copyValue(value)
	}

	return result
}

// copyValue deep-copies a single tree value.
func copyValue(value any) any {
	switch v := value.(type) {
	case map[string]any:
		return DeepCopy(v)

	case []any:
		result := make([]any, len(v))
		for i, elem := range v {
			result[i] = copyValue(elem)
		}

		return result

	default:
		return value
	}
}
