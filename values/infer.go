package values

import (
	"encoding/json"

	"github.com/google/jsonschema-go/jsonschema"
)

// Inferrer derives a schema tree from a value tree. Scalar leaves produce
// typed schema nodes, mappings produce object nodes with per-key
// properties, and sequences produce array nodes whose items type is widened
// across the elements. Null leaves produce unconstrained nodes.
//
// Create instances with [NewInferrer].
type Inferrer struct {
	title       string
	description string
	id          string
	strict      bool
	defaults    bool
}

// InferOption configures an [Inferrer].
type InferOption func(*Inferrer)

// WithTitle sets the root schema title.
func WithTitle(title string) InferOption {
	return func(in *Inferrer) {
		in.title = title
	}
}

// WithDescription sets the root schema description.
func WithDescription(desc string) InferOption {
	return func(in *Inferrer) {
		in.description = desc
	}
}

// WithID sets the root schema $id.
func WithID(id string) InferOption {
	return func(in *Inferrer) {
		in.id = id
	}
}

// WithStrict sets additionalProperties to false on every inferred object
// node, so validation rejects keys the value tree never carried.
func WithStrict(strict bool) InferOption {
	return func(in *Inferrer) {
		in.strict = strict
	}
}

// WithDefaults records each scalar leaf value as the default of its schema
// node.
func WithDefaults(defaults bool) InferOption {
	return func(in *Inferrer) {
		in.defaults = defaults
	}
}

// NewInferrer creates an Inferrer with the given options.
func NewInferrer(opts ...InferOption) *Inferrer {
	in := &Inferrer{}

	for _, opt := range opts {
		opt(in)
	}

	return in
}

// InferSchema derives a schema tree from a value tree with default
// inference options.
func InferSchema(tree map[string]any) *jsonschema.Schema {
	return NewInferrer().Infer(tree)
}

// Infer derives the schema tree for a value tree.
func (in *Inferrer) Infer(tree map[string]any) *jsonschema.Schema {
	schema := in.inferNode(tree)

	schema.Title = in.title
	schema.Description = in.description
	schema.ID = in.id

	return schema
}

// inferNode derives the schema node for one value.
func (in *Inferrer) inferNode(value any) *jsonschema.Schema {
	switch v := value.(type) {
	case nil:
		// Null carries no type information; leave the node unconstrained.
		return &jsonschema.Schema{}

	case map[string]any:
		schema := &jsonschema.Schema{Type: typeObject}

		if len(v) > 0 {
			schema.Properties = make(map[string]*jsonschema.Schema, len(v))

			for _, key := range sortedKeys(v) {
				schema.Properties[key] = in.inferNode(v[key])
			}

			schema.PropertyOrder = sortedKeys(v)
		}

		if in.strict {
			schema.AdditionalProperties = &jsonschema.Schema{Not: &jsonschema.Schema{}}
		}

		return schema

	case []any:
		schema := &jsonschema.Schema{Type: typeArray}

		if items := inferItems(v); items != nil {
			schema.Items = items
		}

		return schema
	}

	schema := &jsonschema.Schema{Type: scalarType(value)}

	if in.defaults {
		schema.Default = defaultValue(value)
	}

	return schema
}

// inferItems derives the items schema for a sequence, widening across
// element types. Returns nil when the elements share no usable type.
func inferItems(seq []any) *jsonschema.Schema {
	if len(seq) == 0 {
		return nil
	}

	itemsType := scalarValueType(seq[0])

	for _, elem := range seq[1:] {
		itemsType = widenType(itemsType, scalarValueType(elem))
	}

	if itemsType == "" {
		return nil
	}

	return &jsonschema.Schema{Type: itemsType}
}

// widenType returns the common type of two inferred type strings. Integer
// widens with number to number; anything else incompatible widens to no
// constraint.
func widenType(a, b string) string {
	if a == b {
		return a
	}

	if a == "" {
		return b
	}

	if b == "" {
		return a
	}

	if (a == typeInteger && b == typeNumber) || (a == typeNumber && b == typeInteger) {
		return typeNumber
	}

	return ""
}

// scalarValueType names the inferred type of any value, containers
// included. Null yields no constraint.
func scalarValueType(value any) string {
	switch value.(type) {
	case nil:
		return ""
	case map[string]any:
		return typeObject
	case []any:
		return typeArray
	}

	return scalarType(value)
}

// scalarType names the inferred type of a scalar value.
func scalarType(value any) string {
	switch value.(type) {
	case bool:
		return typeBoolean
	case string:
		return typeString
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return typeInteger
	case float32, float64:
		return typeNumber
	}

	return ""
}

// defaultValue renders a value as a JSON Schema default. Returns nil when
// the value does not marshal.
func defaultValue(value any) json.RawMessage {
	b, err := json.Marshal(value)
	if err != nil {
		return nil
	}

	return b
}
