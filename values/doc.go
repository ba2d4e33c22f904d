// Package values implements a hierarchical configuration values engine:
// deep-merge of layered value trees, dot-path addressed access and mutation,
// schema-driven validation, structural diffing, and round-trip text
// serialization.
//
// A value tree is a map[string]any whose leaves are nil, booleans, numbers,
// strings, or []any sequences. Sequences are atomic for merge purposes: an
// override sequence always replaces a base sequence wholesale, never
// element-by-element. All Go numeric kinds are treated as a single logical
// number type, so trees decoded by different parsers (YAML integers vs JSON
// float64) compare equal when their values are equal.
//
// Locations in a tree are addressed by dot-delimited paths such as
// "image.tag". Bracketed indices ("containers[2]") appear only in validation
// error and diff output; they are never used for mutation.
//
// # Processor
//
// [Processor] is the façade external callers use. It owns three trees: an
// immutable default tree set at construction, a mutable user override tree,
// and an optional schema. The effective configuration is always
// Merge(defaults, user), recomputed on demand and never cached:
//
//	proc := values.New(defaults, values.WithSchema(schema))
//	proc.SetValue("image.tag", "1.2.3")
//	merged := proc.MergedValues()
//	errs := proc.Validate()
//
// Processors are not safe for concurrent mutation. [Processor.Clone] is the
// mechanism for editing two independent drafts derived from one baseline.
//
// # Schemas
//
// Schema trees are represented as [*jsonschema.Schema] from
// github.com/google/jsonschema-go. The validator enforces a deliberate
// subset: type (string, number, integer, boolean, array, object), enum,
// numeric minimum/maximum, string pattern, array items, and object
// properties with per-parent required lists. Validation results are returned
// as data ([ValidationError] slices), never raised, so the same validator
// serves both "validate everything" and "validate one field on blur".
// Required-but-absent values are reported with the exact message
// "Required value is missing". Invalid pattern regexps are skipped with a
// warning log rather than failing the value.
//
// Going the other direction, [Inferrer] derives a schema tree from a value
// tree, typing scalar leaves and widening sequence element types, so a
// defaults file can bootstrap its own schema.
//
// # Serialization
//
// [EncodeText] renders a tree in a YAML-like text encoding. [DecodeText]
// first attempts strict structured parsing of the whole input; on failure it
// falls back to a flat line parser that reads key: value pairs with textual
// scalar coercion. The flat parser rejects nested block structure with
// [ErrParse] instead of silently truncating it, so a round trip through
// DecodeText either preserves the tree or fails loudly. JSON import/export
// is provided by [EncodeJSON] and [DecodeJSON].
//
// # Errors
//
// The package defines sentinel errors for use with [errors.Is]:
//
//   - [ErrParse]: textual input could not be interpreted as a value tree.
//   - [ErrInvalidOption]: a configuration value is invalid, such as an
//     unparseable --set pair in [Config.ApplyOverrides].
//   - [ErrReadInput], [ErrWriteOutput]: I/O failures, used by CLI callers.
//
// Everything else is total: Get on a missing path, Delete on a missing path,
// and validation of an absent optional value all return "no value"/"no
// error" rather than failing. Sparse trees are the expected shape of layered
// configuration, not an error condition.
//
// [*jsonschema.Schema]: https://pkg.go.dev/github.com/google/jsonschema-go/jsonschema#Schema
package values
