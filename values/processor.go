package values

import (
	"github.com/google/jsonschema-go/jsonschema"
)

// Processor composes merge, validation, diff, and serialization behind one
// API. It owns exactly three trees: an immutable default tree set at
// construction, a mutable user override tree, and an optional schema. The
// effective configuration is Merge(defaults, user), recomputed on every
// call.
//
// The default tree is shared by reference and must never be written
// through; all mutation targets the user tree. Processors provide no
// internal locking; use [Processor.Clone] for independent concurrent
// drafts.
//
// Create instances with [New].
type Processor struct {
	defaults map[string]any
	user     map[string]any
	schema   *jsonschema.Schema
}

// ProcessorOption configures a [Processor].
type ProcessorOption func(*Processor)

// WithSchema sets the schema tree used for validation.
func WithSchema(schema *jsonschema.Schema) ProcessorOption {
	return func(p *Processor) {
		p.schema = schema
	}
}

// WithUserValues seeds the user override tree.
func WithUserValues(user map[string]any) ProcessorOption {
	return func(p *Processor) {
		p.SetUserValues(user)
	}
}

// New creates a Processor over the given default tree. A nil default tree
// is treated as empty.
func New(defaults map[string]any, opts ...ProcessorOption) *Processor {
	if defaults == nil {
		defaults = make(map[string]any)
	}

	p := &Processor{
		defaults: defaults,
		user:     make(map[string]any),
	}

	for _, opt := range opts {
		opt(p)
	}

	return p
}

// SetUserValues replaces the entire user override tree. A nil tree clears
// all overrides.
func (p *Processor) SetUserValues(user map[string]any) {
	if user == nil {
		user = make(map[string]any)
	}

	p.user = user
}

// UserValues returns the user override tree.
func (p *Processor) UserValues() map[string]any {
	return p.user
}

// DefaultValues returns the default tree. Callers must not mutate it.
func (p *Processor) DefaultValues() map[string]any {
	return p.defaults
}

// MergedValues returns the effective tree, Merge(defaults, user). The
// result is computed fresh on every call and is never cached across
// mutation.
func (p *Processor) MergedValues() map[string]any {
	merged, _ := Merge(p.defaults, p.user).(map[string]any)

	return merged
}

// Value returns the user override at a dot-delimited path.
func (p *Processor) Value(path string) (any, bool) {
	return Get(p.user, path)
}

// SetValue sets a user override at a dot-delimited path.
func (p *Processor) SetValue(path string, value any) {
	Set(p.user, path, value)
}

// RemoveValue removes the user override at a dot-delimited path. Missing
// paths are a no-op.
func (p *Processor) RemoveValue(path string) {
	Delete(p.user, path)
}

// ResetValue clears the override at path so the default shows through.
func (p *Processor) ResetValue(path string) {
	Delete(p.user, path)
}

// ResetAllValues discards every user override.
func (p *Processor) ResetAllValues() {
	p.user = make(map[string]any)
}

// IsModified reports whether the user tree overrides path with a value
// that differs from the default. Paths without an override are never
// modified.
func (p *Processor) IsModified(path string) bool {
	userValue, ok := Get(p.user, path)
	if !ok {
		return false
	}

	defaultValue, _ := Get(p.defaults, path)

	return !Equal(userValue, defaultValue)
}

// SetSchema replaces the schema tree.
func (p *Processor) SetSchema(schema *jsonschema.Schema) {
	p.schema = schema
}

// Schema returns the root schema tree, which may be nil.
func (p *Processor) Schema() *jsonschema.Schema {
	return p.schema
}

// SchemaAt returns the schema node declared at path, or nil.
func (p *Processor) SchemaAt(path string) *jsonschema.Schema {
	return SchemaAt(p.schema, path)
}

// HasSchema reports whether the schema tree declares anything at path.
func (p *Processor) HasSchema(path string) bool {
	return SchemaAt(p.schema, path) != nil
}

// SchemaPaths lists every property path the schema tree declares.
func (p *Processor) SchemaPaths() []string {
	return SchemaPaths(p.schema)
}

// Validate checks the merged tree against the schema. A nil schema
// validates everything.
func (p *Processor) Validate() []ValidationError {
	return Validate(p.MergedValues(), p.schema)
}

// ValidateValue validates a single candidate value against the schema
// declared at path, without mutating any tree. Paths the schema does not
// declare validate cleanly.
func (p *Processor) ValidateValue(path string, value any) []ValidationError {
	schema := SchemaAt(p.schema, path)
	if schema == nil {
		return nil
	}

	return ValidatePath(value, true, RequiredAt(p.schema, path), schema, path)
}

// IsValid reports whether the merged tree passes validation.
func (p *Processor) IsValid() bool {
	return len(p.Validate()) == 0
}

// Warning flags a non-fatal inconsistency between the merged tree and the
// schema.
type Warning struct {
	Path    string
	Message string
}

// Result is the outcome of [Processor.Process].
type Result struct {
	Values    map[string]any
	Schema    *jsonschema.Schema
	Errors    []ValidationError
	Warnings  []Warning
	Processed bool
}

// Process computes the merged tree, validates it, and reports two warning
// classes on top of the validation errors: required schema paths absent
// from the merged tree, and merged leaf paths with no corresponding schema
// entry.
func (p *Processor) Process() Result {
	merged := p.MergedValues()

	result := Result{
		Values:    merged,
		Schema:    p.schema,
		Errors:    Validate(merged, p.schema),
		Processed: true,
	}

	if p.schema == nil {
		return result
	}

	for _, path := range SchemaPaths(p.schema) {
		if !RequiredAt(p.schema, path) {
			continue
		}

		if _, ok := Get(merged, path); ok {
			continue
		}

		result.Warnings = append(result.Warnings, Warning{
			Path:    path,
			Message: "required value is absent from merged values",
		})
	}

	for _, path := range LeafPaths(merged) {
		if SchemaAt(p.schema, path) != nil {
			continue
		}

		result.Warnings = append(result.Warnings, Warning{
			Path:    path,
			Message: "no schema entry for value path",
		})
	}

	return result
}

// Compare diffs this processor's merged tree against another's.
func (p *Processor) Compare(other *Processor) []DiffEntry {
	return Diff(p.MergedValues(), other.MergedValues())
}

// ExportYAML renders the merged tree in the engine's YAML-like text
// encoding.
func (p *Processor) ExportYAML() string {
	return EncodeText(p.MergedValues())
}

// ImportYAML parses YAML-like textual input and replaces the user override
// tree with the result. Failures wrap [ErrParse] and leave the processor
// unchanged.
func (p *Processor) ImportYAML(text string) error {
	tree, err := DecodeText(text)
	if err != nil {
		return err
	}

	p.user = tree

	return nil
}

// ExportJSON renders the merged tree as indented JSON.
func (p *Processor) ExportJSON() ([]byte, error) {
	return EncodeJSON(p.MergedValues())
}

// ImportJSON parses JSON input and replaces the user override tree with
// the result. Failures wrap [ErrParse] and leave the processor unchanged.
func (p *Processor) ImportJSON(data []byte) error {
	tree, err := DecodeJSON(data)
	if err != nil {
		return err
	}

	p.user = tree

	return nil
}

// Clone returns a new Processor sharing the same default tree and schema
// references, with an independent deep copy of the user overrides.
func (p *Processor) Clone() *Processor {
	return &Processor{
		defaults: p.defaults,
		user:     DeepCopy(p.user),
		schema:   p.schema,
	}
}

// Summary aggregates the processor's state for display.
type Summary struct {
	TotalPaths    int
	ModifiedPaths int
	ErrorCount    int
	HasSchema     bool
	Valid         bool
}

// Summary counts the merged leaf paths, user-modified paths, and
// validation errors.
func (p *Processor) Summary() Summary {
	modified := 0

	for _, path := range LeafPaths(p.user) {
		if p.IsModified(path) {
			modified++
		}
	}

	errCount := len(p.Validate())

	return Summary{
		TotalPaths:    len(LeafPaths(p.MergedValues())),
		ModifiedPaths: modified,
		ErrorCount:    errCount,
		HasSchema:     p.schema != nil,
		Valid:         errCount == 0,
	}
}
