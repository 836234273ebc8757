package manifest

import (
	"fmt"
	"slices"
	"sort"

	"github.com/confspec/confspec"
)

// Manifest is an ordered collection of canonical parameter schemas. It is
// validated once at construction and never observably non-canonical.
//
// A Manifest does not mutate after construction except through the
// in-place merge variants, which replace its state only after the merged
// schema has validated. Concurrent readers are safe as long as no writer
// calls an in-place merge; treat-as-immutable plus Merge is the
// recommended pattern.
type Manifest struct {
	keys []string
	body map[string]map[string]any
}

// New validates and canonicalizes a raw schema description into a
// Manifest. Parameter order is sorted by name, since Go maps carry no
// insertion order; use FromText when document order matters.
//
// Returns a KindSchema error if the description is malformed.
func New(schema map[string]any) (*Manifest, error) {
	keys := make([]string, 0, len(schema))
	for name := range schema {
		keys = append(keys, name)
	}
	sort.Strings(keys)
	return build("manifest.New", keys, schema)
}

// FromText parses the textual form produced by ToText and constructs a
// Manifest from it, preserving document order. Full schema validation
// applies. Hidden parameters are not present in the text form and cannot
// be recovered.
func FromText(text string) (*Manifest, error) {
	const op = "manifest.FromText"
	keys, raw, err := decodeSchema(text)
	if err != nil {
		return nil, confspec.NewSchemaError(op, err)
	}
	return build(op, keys, raw)
}

// build runs construction-order processing: validate the raw description
// first, then canonicalize it into the stored body.
func build(op string, keys []string, raw map[string]any) (*Manifest, error) {
	if err := validateSchema(keys, raw); err != nil {
		return nil, confspec.NewSchemaError(op, err)
	}
	body := make(map[string]map[string]any, len(keys))
	for _, name := range keys {
		body[name] = canonicalize(raw[name].(map[string]any))
	}
	return &Manifest{keys: keys, body: body}, nil
}

// Len returns the number of declared parameters.
func (m *Manifest) Len() int {
	return len(m.keys)
}

// Has reports whether name is a declared parameter.
func (m *Manifest) Has(name string) bool {
	_, ok := m.body[name]
	return ok
}

// Keys returns the parameter names in manifest order. The returned slice
// is a copy.
func (m *Manifest) Keys() []string {
	return slices.Clone(m.keys)
}

// ToMap returns the canonical schema as a deep copy. Mutating the result
// never affects the manifest.
func (m *Manifest) ToMap() map[string]map[string]any {
	out := make(map[string]map[string]any, len(m.body))
	for name, props := range m.body {
		out[name] = deepCopy(props).(map[string]any)
	}
	return out
}

// IsRequired reports whether the named parameter must be supplied at
// apply time, which is exactly when it declares no default.
//
// Returns a KindArgument error if name is not an identifier or not a
// declared parameter.
func (m *Manifest) IsRequired(name string) (bool, error) {
	const op = "Manifest.IsRequired"
	if !IsIdentifier(name) {
		return false, confspec.NewArgumentError(op, fmt.Errorf("name %q is not an identifier", name))
	}
	props, ok := m.body[name]
	if !ok {
		return false, confspec.NewArgumentError(op, fmt.Errorf("unknown parameter %q", name))
	}
	_, hasDefault := props[propDefault]
	return !hasDefault, nil
}

// Merge deep-merges other into a copy of this manifest and returns the
// result as a new Manifest. Existing parameters keep their positions;
// parameters new to the receiver are appended in other's order. Scalar
// property conflicts resolve to other's value, while map and list
// properties compose.
//
// On a KindSchema error neither manifest is changed.
func (m *Manifest) Merge(other *Manifest) (*Manifest, error) {
	return m.merged("Manifest.Merge", other.keys, other.rawBody())
}

// MergeSchema is Merge for a raw schema description. Parameters new to
// the receiver are appended in sorted order.
func (m *Manifest) MergeSchema(raw map[string]any) (*Manifest, error) {
	keys := make([]string, 0, len(raw))
	for name := range raw {
		keys = append(keys, name)
	}
	sort.Strings(keys)
	return m.merged("Manifest.MergeSchema", keys, raw)
}

// MergeInPlace replaces this manifest's state with the result of merging
// other into it. On error the receiver is untouched.
func (m *Manifest) MergeInPlace(other *Manifest) error {
	merged, err := m.merged("Manifest.MergeInPlace", other.keys, other.rawBody())
	if err != nil {
		return err
	}
	m.keys, m.body = merged.keys, merged.body
	return nil
}

// MergeSchemaInPlace is MergeInPlace for a raw schema description.
func (m *Manifest) MergeSchemaInPlace(raw map[string]any) error {
	keys := make([]string, 0, len(raw))
	for name := range raw {
		keys = append(keys, name)
	}
	sort.Strings(keys)
	merged, err := m.merged("Manifest.MergeSchemaInPlace", keys, raw)
	if err != nil {
		return err
	}
	m.keys, m.body = merged.keys, merged.body
	return nil
}

// merged runs merge-order processing: deep-merge the raw descriptions,
// canonicalize, then re-validate before committing anything.
func (m *Manifest) merged(op string, otherKeys []string, otherRaw map[string]any) (*Manifest, error) {
	mergedRaw := deepMerge(m.rawBody(), otherRaw)
	keys := mergeKeys(m.keys, otherKeys)

	canon := make(map[string]any, len(mergedRaw))
	for name, props := range mergedRaw {
		if pm, ok := props.(map[string]any); ok {
			canon[name] = canonicalize(pm)
		} else {
			canon[name] = props
		}
	}

	if err := validateSchema(keys, canon); err != nil {
		return nil, confspec.NewSchemaError(op, err)
	}

	body := make(map[string]map[string]any, len(keys))
	for _, name := range keys {
		body[name] = canon[name].(map[string]any)
	}
	return &Manifest{keys: keys, body: body}, nil
}

// rawBody exposes the canonical body as a raw schema description.
// Canonicalization is idempotent, so the canonical form is itself a valid
// raw description. The copy is deep.
func (m *Manifest) rawBody() map[string]any {
	out := make(map[string]any, len(m.body))
	for name, props := range m.body {
		out[name] = deepCopy(props)
	}
	return out
}

// Apply validates the supplied raw option values against the manifest and
// returns the coerced option map, covering every declared parameter.
// Constant parameters and parameters with no supplied value resolve to
// their default as-is, bypassing coercion; values supplied for parameters
// the manifest does not declare are silently ignored.
//
// Missing required parameters and type-invalid values are reported
// together in one KindValidation error, in manifest key order.
func (m *Manifest) Apply(values map[string]any) (map[string]any, error) {
	out, err := applyValues(m.keys, m.body, values)
	if err != nil {
		return nil, confspec.NewValidationError("Manifest.Apply", err)
	}
	return out, nil
}

// ToText renders the manifest in a line-oriented YAML form, one block per
// visible parameter in manifest order. Hidden parameters are dropped; the
// round trip through FromText is lossy for them.
func (m *Manifest) ToText() (string, error) {
	text, err := encodeManifest(m.keys, m.body)
	if err != nil {
		return "", confspec.NewSchemaError("Manifest.ToText", err)
	}
	return text, nil
}
