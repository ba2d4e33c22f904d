package values

import (
	"slices"
	"strings"

	"github.com/google/jsonschema-go/jsonschema"
)

// JSON Schema type constants.
const (
	typeBoolean = "boolean"
	typeInteger = "integer"
	typeNumber  = "number"
	typeString  = "string"
	typeArray   = "array"
	typeObject  = "object"
)

// SchemaAt returns the schema node declared at a dot-delimited path, or nil
// when the schema tree declares nothing there. The empty path returns the
// root schema.
func SchemaAt(schema *jsonschema.Schema, path string) *jsonschema.Schema {
	if schema == nil {
		return nil
	}

	current := schema

	for _, segment := range splitPath(path) {
		if current.Properties == nil {
			return nil
		}

		next, ok := current.Properties[segment]
		if !ok {
			return nil
		}

		current = next
	}

	return current
}

// RequiredAt reports whether the property at path is listed in its parent
// schema's required array. The empty path is never required.
func RequiredAt(schema *jsonschema.Schema, path string) bool {
	segments := splitPath(path)
	if schema == nil || len(segments) == 0 {
		return false
	}

	parent := schema
	if len(segments) > 1 {
		parent = SchemaAt(schema, strings.Join(segments[:len(segments)-1], "."))
	}

	if parent == nil {
		return false
	}

	return slices.Contains(parent.Required, segments[len(segments)-1])
}

// SchemaPaths lists every property path declared by the schema tree in
// pre-order. Keys follow PropertyOrder where present so source order is
// preserved; keys outside PropertyOrder are appended in sorted order to
// keep output deterministic.
func SchemaPaths(schema *jsonschema.Schema) []string {
	var paths []string

	walkSchemaPaths(schema, "", &paths)

	return paths
}

// walkSchemaPaths appends the property paths under schema to paths.
func walkSchemaPaths(schema *jsonschema.Schema, prefix string, paths *[]string) {
	if schema == nil || schema.Properties == nil {
		return
	}

	for _, key := range propertyKeys(schema) {
		path := joinPath(prefix, key)
		*paths = append(*paths, path)

		walkSchemaPaths(schema.Properties[key], path, paths)
	}
}

// propertyKeys returns property keys in PropertyOrder, then any remaining
// keys in sorted order.
func propertyKeys(schema *jsonschema.Schema) []string {
	if schema.Properties == nil {
		return nil
	}

	seen := make(map[string]bool, len(schema.PropertyOrder))

	var keys []string

	for _, key := range schema.PropertyOrder {
		if _, ok := schema.Properties[key]; ok && !seen[key] {
			keys = append(keys, key)
			seen[key] = true
		}
	}

	var rest []string

	for key := range schema.Properties {
		if !seen[key] {
			rest = append(rest, key)
		}
	}

	slices.Sort(rest)

	return append(keys, rest...)
}

// schemaType returns the effective type string from a schema node.
func schemaType(schema *jsonschema.Schema) string {
	if schema.Type != "" {
		return schema.Type
	}

	if len(schema.Types) == 1 {
		return schema.Types[0]
	}

	return ""
}
