// Package manifest implements a schema-driven configuration manifest
// engine.
//
// A raw schema is a map from parameter name to a property map declaring
// that parameter:
//
//	manifest.New(map[string]any{
//		"host": map[string]any{
//			"description": "database host",
//		},
//		"port": map[string]any{
//			"type":    "integer",
//			"default": 5432,
//		},
//		"mode": map[string]any{
//			"type":    []string{"fast", "safe"},
//			"default": "safe",
//		},
//	})
//
// Recognized property keys:
//
//   - description: human-readable text, defaults to ""
//   - type: one of "string", "integer", "decimal", "boolean", "json", or
//     a non-empty list of enum members; defaults to "string"
//   - default: a literal value or a DefaultFunc; declaring it marks the
//     parameter optional, omitting it marks the parameter required
//   - hidden: excluded from serialized output when true
//   - constant: the parameter always resolves to its default and supplied
//     input is ignored; a constant parameter must declare a default
//
// The schema is validated once at construction and stored in canonical
// form: every property present, scalar type names normalized to Kind
// tags, enum members normalized to []string. A Manifest never mutates
// after construction; Merge and MergeSchema produce new manifests, and
// the in-place variants replace the receiver's state only after the
// merged schema has validated.
//
// Apply validates and coerces a bag of raw option values against the
// manifest. Missing required parameters and type-invalid values are
// aggregated into a single validation error so the caller sees every
// problem in one pass; schema validation, by contrast, deliberately fails
// on the first bad parameter.
//
// ToText and FromText convert a manifest to and from a YAML-based block
// format. Hidden parameters are dropped by ToText, so the round trip is
// lossy for them.
package manifest
