// Package confspec provides a schema-driven configuration manifest engine
// for pluggable components.
//
// A component declares its configurable parameters once, as a schema: each
// parameter has a description, a value type, an optional default, and
// visibility/mutability flags. The engine validates the schema, merges
// schemas together, validates and type-coerces user-supplied option values
// against the schema, and serializes manifests to a YAML-based text form.
//
// # Packages
//
// The module is organized around two concerns:
//
//   - manifest: the engine itself, covering schema validation,
//     canonicalization, deep merging, value coercion, and the text codec
//   - component: a start/stop lifecycle registry for configurable
//     components, which routes option values through the engine
//
// # Getting Started
//
// Declare a schema and build a manifest:
//
//	m, err := manifest.New(map[string]any{
//		"host": map[string]any{"description": "server host"},
//		"port": map[string]any{"type": "integer", "default": 8080},
//	})
//	if err != nil {
//		log.Fatal(err)
//	}
//
// Then coerce user input against it:
//
//	opts, err := m.Apply(map[string]any{"host": "db1", "port": "9000"})
//	// opts["port"] == int64(9000)
//
// # Errors
//
// All failures are reported as *confspec.Error values categorized by kind:
// KindSchema for malformed schemas, KindValidation for bad or missing
// input values, and KindArgument for API misuse. Schema errors fail fast
// on the first bad parameter; validation errors aggregate every offending
// parameter into a single message.
package confspec
