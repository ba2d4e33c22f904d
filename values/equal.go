package values

import "reflect"

// Equal reports structural equality between two tree values.
//
// Scalars are equal when their values are identical, with all Go numeric
// kinds compared by numeric value. Sequences are equal iff they have the
// same length and every element is pairwise equal, order-sensitive.
// Mappings are equal iff they have the same key set and every value is
// pairwise equal, order-insensitive. Nil is equal only to nil, and a value
// is never equal to a differently-typed value.
func Equal(a, b any) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}

	if na, ok := toNumber(a); ok {
		nb, ok := toNumber(b)

		return ok && na == nb
	}

	switch av := a.(type) {
	case bool:
		bv, ok := b.(bool)

		return ok && av == bv

	case string:
		bv, ok := b.(string)

		return ok && av == bv

	case []any:
		bv, ok := b.([]any)
		if !ok || len(av) != len(bv) {
			return false
		}

		for i := range av {
			if !Equal(av[i], bv[i]) {
				return false
			}
		}

		return true

	case map[string]any:
		bv, ok := b.(map[string]any)
		if !ok || len(av) != len(bv) {
			return false
		}

		for key, value := range av {
			other, ok := bv[key]
			if !ok || !Equal(value, other) {
				return false
			}
		}

		return true
	}

	return reflect.DeepEqual(a, b)
}

// toNumber converts any Go numeric kind to float64. Returns false for
// non-numeric values.
func toNumber(value any) (float64, bool) {
	switch n := value.(type) {
	case int:
		return float64(n), true
	case int8:
		return float64(n), true
	case int16:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint8:
		return float64(n), true
	case uint16:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	case float32:
		return float64(n), true
	case float64:
		return n, true
	}

	return 0, false
}
