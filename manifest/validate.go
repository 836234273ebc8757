package manifest

import (
	"fmt"
	"strings"
)

// validateSchema checks a raw schema description for structural
// correctness. Bad parameter names are all reported in one error; after
// that, validation stops at the first invalid parameter in key order.
// Value validation at apply time aggregates instead; the asymmetry is
// deliberate, since schema mistakes are developer mistakes.
func validateSchema(keys []string, raw map[string]any) error {
	var bad []string
	for _, name := range keys {
		if !IsIdentifier(name) {
			bad = append(bad, fmt.Sprintf("%q", name))
		}
	}
	if len(bad) > 0 {
		return fmt.Errorf("parameter names must be identifiers: %s", strings.Join(bad, ", "))
	}

	for _, name := range keys {
		if err := validateParameter(name, raw[name]); err != nil {
			return err
		}
	}
	return nil
}

// validateParameter checks one parameter's properties. Every problem with
// the parameter is wrapped into a single message prefixed with its name.
func validateParameter(name string, v any) error {
	props, ok := v.(map[string]any)
	if !ok {
		return fmt.Errorf("parameter %q: properties must be a map, got %T", name, v)
	}

	var problems []string

	if d, ok := props[propDescription]; ok {
		if _, isString := d.(string); !isString {
			problems = append(problems, fmt.Sprintf("description must be a string, got %T", d))
		}
	}

	if t, ok := props[propType]; ok {
		if err := validateTypeDecl(t); err != nil {
			problems = append(problems, err.Error())
		}
	}

	if h, ok := props[propHidden]; ok {
		if _, isBool := h.(bool); !isBool {
			problems = append(problems, fmt.Sprintf("hidden must be a boolean, got %T", h))
		}
	}

	if c, ok := props[propConstant]; ok {
		if _, isBool := c.(bool); !isBool {
			problems = append(problems, fmt.Sprintf("constant must be a boolean, got %T", c))
		}
	}

	if truthy(props[propConstant]) {
		if _, ok := props[propDefault]; !ok {
			problems = append(problems, "constant parameter requires a default")
		}
	}

	if len(problems) > 0 {
		return fmt.Errorf("parameter %q: %s", name, strings.Join(problems, "; "))
	}
	return nil
}

// validateTypeDecl checks a declared value type: a recognized scalar name
// or Kind tag, or a non-empty enumeration of scalar members.
func validateTypeDecl(t any) error {
	switch v := t.(type) {
	case Kind:
		if _, ok := kindFromName(string(v)); !ok {
			return fmt.Errorf("unrecognized type %q", string(v))
		}
		return nil
	case string:
		if _, ok := kindFromName(v); !ok {
			return fmt.Errorf("unrecognized type %q", v)
		}
		return nil
	}

	if list, ok := asList(t); ok {
		if len(list) == 0 {
			return fmt.Errorf("enumeration must not be empty")
		}
		for _, el := range list {
			if !isScalar(el) {
				return fmt.Errorf("enumeration members must be scalars, got %T", el)
			}
		}
		return nil
	}

	return fmt.Errorf("unrecognized type %v (%T)", t, t)
}

// isScalar reports whether v can be stringified into an enum member.
func isScalar(v any) bool {
	switch v.(type) {
	case string, bool,
		int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64,
		float32, float64:
		return true
	}
	return false
}
