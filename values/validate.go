package values

import (
	"fmt"
	"log/slog"
	"math"
	"regexp"
	"slices"

	"github.com/google/jsonschema-go/jsonschema"
)

// requiredMessage is reported when a required value is absent. Callers
// match on it, so it is part of the package contract.
const requiredMessage = "Required value is missing"

// ValidationError describes one constraint violation at one path.
// Validation results are data, never raised.
type ValidationError struct {
	Path    string
	Message string
	Value   any
	Schema  *jsonschema.Schema
}

// String renders the error as "path: message".
func (e ValidationError) String() string {
	if e.Path == "" {
		return e.Message
	}

	return e.Path + ": " + e.Message
}

// Validate checks a value tree against a schema tree. The walk follows the
// schema, not the value, so properties the schema declares but the tree
// omits are still checked for required-ness. A nil schema validates
// everything.
func Validate(tree map[string]any, schema *jsonschema.Schema) []ValidationError {
	if schema == nil {
		return nil
	}

	return ValidatePath(tree, true, false, schema, "")
}

// ValidatePath validates a single value against the schema node declared
// for it. present distinguishes an explicit null from an absent value;
// required reports whether the parent schema lists this property as
// required. The rules short-circuit per path: an absent value stops
// everything after the required check, and a type mismatch stops all
// constraint checks below it.
func ValidatePath(value any, present, required bool, schema *jsonschema.Schema, path string) []ValidationError {
	var errs []ValidationError

	validateNode(value, present, required, schema, path, &errs)

	return errs
}

// validateNode applies the validation rules for one path, recursing into
// array items and object properties, accumulating into errs.
func validateNode(value any, present, required bool, schema *jsonschema.Schema, path string, errs *[]ValidationError) {
	if schema == nil {
		return
	}

	missing := !present || value == nil

	if required && missing {
		*errs = append(*errs, ValidationError{
			Path:    path,
			Message: requiredMessage,
			Value:   value,
			Schema:  schema,
		})

		return
	}

	// Optional and absent is valid.
	if missing {
		return
	}

	kind := schemaType(schema)
	if kind != "" && !matchesType(value, kind) {
		*errs = append(*errs, ValidationError{
			Path:    path,
			Message: fmt.Sprintf("Expected type %s, got %s", kind, valueType(value)),
			Value:   value,
			Schema:  schema,
		})

		return
	}

	if len(schema.Enum) > 0 && !enumContains(schema.Enum, value) {
		*errs = append(*errs, ValidationError{
			Path:    path,
			Message: "Value is not one of the allowed values",
			Value:   value,
			Schema:  schema,
		})

		return
	}

	validateBounds(value, schema, path, errs)
	validatePattern(value, schema, path, errs)

	if seq, ok := value.([]any); ok && schema.Items != nil {
		for i, elem := range seq {
			validateNode(elem, true, false, schema.Items, indexPath(path, i), errs)
		}
	}

	if schema.Properties != nil {
		node, ok := value.(map[string]any)
		if !ok {
			return
		}

		// Walk declared properties regardless of whether the value supplies
		// them, so missing required nested properties are still caught.
		for _, key := range propertyKeys(schema) {
			child, childPresent := node[key]
			childRequired := slices.Contains(schema.Required, key)

			validateNode(child, childPresent, childRequired, schema.Properties[key], joinPath(path, key), errs)
		}
	}
}

// validateBounds checks numeric minimum/maximum constraints. Each violated
// bound is its own error.
func validateBounds(value any, schema *jsonschema.Schema, path string, errs *[]ValidationError) {
	num, ok := toNumber(value)
	if !ok {
		return
	}

	if schema.Minimum != nil && num < *schema.Minimum {
		*errs = append(*errs, ValidationError{
			Path:    path,
			Message: fmt.Sprintf("Value must be at least %v", *schema.Minimum),
			Value:   value,
			Schema:  schema,
		})
	}

	if schema.Maximum != nil && num > *schema.Maximum {
		*errs = append(*errs, ValidationError{
			Path:    path,
			Message: fmt.Sprintf("Value must be at most %v", *schema.Maximum),
			Value:   value,
			Schema:  schema,
		})
	}
}

// validatePattern checks the string pattern constraint. Patterns that do
// not compile are skipped fail-open with a warning log.
func validatePattern(value any, schema *jsonschema.Schema, path string, errs *[]ValidationError) {
	str, ok := value.(string)
	if !ok || schema.Pattern == "" {
		return
	}

	re, err := regexp.Compile(schema.Pattern)
	if err != nil {
		slog.Warn("skipping invalid schema pattern",
			slog.String("path", path),
			slog.String("pattern", schema.Pattern),
			slog.Any("error", err),
		)

		return
	}

	if !re.MatchString(str) {
		*errs = append(*errs, ValidationError{
			Path:    path,
			Message: fmt.Sprintf("Value does not match pattern %q", schema.Pattern),
			Value:   value,
			Schema:  schema,
		})
	}
}

// matchesType reports whether a value's runtime shape satisfies a JSON
// Schema type string. Unknown type strings are not enforced.
func matchesType(value any, kind string) bool {
	switch kind {
	case typeString:
		_, ok := value.(string)

		return ok

	case typeBoolean:
		_, ok := value.(bool)

		return ok

	case typeNumber:
		num, ok := toNumber(value)

		return ok && !math.IsNaN(num)

	case typeInteger:
		num, ok := toNumber(value)

		return ok && !math.IsNaN(num) && num == math.Trunc(num)

	case typeArray:
		_, ok := value.([]any)

		return ok

	case typeObject:
		_, ok := value.(map[string]any)

		return ok
	}

	return true
}

// valueType names a value's logical type for error messages.
func valueType(value any) string {
	switch value.(type) {
	case nil:
		return "null"
	case bool:
		return typeBoolean
	case string:
		return typeString
	case []any:
		return typeArray
	case map[string]any:
		return typeObject
	}

	if _, ok := toNumber(value); ok {
		return typeNumber
	}

	return fmt.Sprintf("%T", value)
}

// enumContains reports whether candidates contains a value equal to value.
func enumContains(candidates []any, value any) bool {
	for _, candidate := range candidates {
		if Equal(candidate, value) {
			return true
		}
	}

	return false
}
