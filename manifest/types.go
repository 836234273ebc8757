package manifest

import "regexp"

// Kind identifies one of the recognized scalar value types.
type Kind string

const (
	// KindString accepts any value and coerces it via string conversion.
	KindString Kind = "string"

	// KindInteger accepts integer-typed values, whole-valued floats, or
	// strings of decimal digits, and coerces to int64.
	KindInteger Kind = "integer"

	// KindDecimal accepts integer-typed values, floats, decimal.Decimal
	// values, or strings like "3.14", and coerces to decimal.Decimal.
	KindDecimal Kind = "decimal"

	// KindBoolean accepts boolean literals or the strings "true" and
	// "false", and coerces to bool.
	KindBoolean Kind = "boolean"

	// KindJSON accepts a string of valid JSON and coerces to the parsed
	// structure.
	KindJSON Kind = "json"
)

// DefaultFunc is a zero-argument callback producing a parameter default.
// Apply invokes it each time the default is needed; ToText invokes it
// once to literal-encode the produced value.
type DefaultFunc func() any

// Canonical property keys. A canonical parameter always carries the first
// four; "default" is present only when the schema declared it.
const (
	propDescription = "description"
	propType        = "type"
	propDefault     = "default"
	propHidden      = "hidden"
	propConstant    = "constant"
)

var identifierPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// IsIdentifier reports whether name is a valid parameter name.
func IsIdentifier(name string) bool {
	return identifierPattern.MatchString(name)
}

// kindFromName maps a scalar type name to its Kind tag.
func kindFromName(name string) (Kind, bool) {
	switch k := Kind(name); k {
	case KindString, KindInteger, KindDecimal, KindBoolean, KindJSON:
		return k, true
	}
	return "", false
}
