package manifest

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

var (
	integerPattern = regexp.MustCompile(`^\d+$`)
	decimalPattern = regexp.MustCompile(`^\d+(\.\d+)?$`)
)

// applyValues validates raw option values against the canonical body and
// produces the coerced option map. Every missing required parameter and
// every type-invalid value is reported in one aggregated error, one
// sentence each, missing first, in manifest key order.
func applyValues(keys []string, body map[string]map[string]any, values map[string]any) (map[string]any, error) {
	var missing []string
	for _, name := range keys {
		p := body[name]
		if p[propConstant].(bool) {
			continue
		}
		if _, hasDefault := p[propDefault]; hasDefault {
			continue
		}
		if v, present := values[name]; !present || v == nil {
			missing = append(missing, fmt.Sprintf("missing required parameter %q.", name))
		}
	}

	var invalid []string
	for _, name := range keys {
		p := body[name]
		// Constant parameters never inspect supplied input.
		if p[propConstant].(bool) {
			continue
		}
		v, present := values[name]
		if !present || v == nil {
			continue
		}
		if _, err := coerceValue(p[propType], v); err != nil {
			invalid = append(invalid, fmt.Sprintf("invalid value for parameter %q: %v.", name, err))
		}
	}

	if len(missing)+len(invalid) > 0 {
		return nil, errors.New(strings.Join(append(missing, invalid...), " "))
	}

	out := make(map[string]any, len(keys))
	for _, name := range keys {
		p := body[name]
		v, present := values[name]
		if p[propConstant].(bool) || !present || v == nil {
			// The default bypasses coercion and is returned as-is,
			// apart from copying so callers cannot reach manifest state.
			out[name] = resolveDefault(p[propDefault])
			continue
		}
		coerced, err := coerceValue(p[propType], v)
		if err != nil {
			return nil, err
		}
		out[name] = coerced
	}
	return out, nil
}

// resolveDefault produces the effective default: callbacks are invoked,
// literals are deep-copied.
func resolveDefault(d any) any {
	switch fn := d.(type) {
	case DefaultFunc:
		return fn()
	case func() any:
		return fn()
	}
	return deepCopy(d)
}

// coerceValue applies the declared type rule to a raw input value. typ is
// canonical: a Kind tag or a []string enumeration.
func coerceValue(typ, v any) (any, error) {
	if members, ok := typ.([]string); ok {
		return coerceEnum(members, v)
	}

	switch typ {
	case KindString:
		return stringify(v), nil
	case KindInteger:
		return coerceInteger(v)
	case KindDecimal:
		return coerceDecimal(v)
	case KindBoolean:
		return coerceBoolean(v)
	case KindJSON:
		return coerceJSON(v)
	}
	return nil, fmt.Errorf("unrecognized type %v", typ)
}

func coerceInteger(v any) (int64, error) {
	switch n := v.(type) {
	case int:
		return int64(n), nil
	case int8:
		return int64(n), nil
	case int16:
		return int64(n), nil
	case int32:
		return int64(n), nil
	case int64:
		return n, nil
	case uint:
		return int64(n), nil
	case uint8:
		return int64(n), nil
	case uint16:
		return int64(n), nil
	case uint32:
		return int64(n), nil
	case uint64:
		if n > math.MaxInt64 {
			return 0, fmt.Errorf("integer %d overflows int64", n)
		}
		return int64(n), nil
	case float32:
		return wholeFloat(float64(n))
	case float64:
		return wholeFloat(n)
	case string:
		if !integerPattern.MatchString(n) {
			return 0, fmt.Errorf("expected integer, got %q", n)
		}
		return strconv.ParseInt(n, 10, 64)
	}
	return 0, fmt.Errorf("expected integer, got %T", v)
}

// wholeFloat accepts floats with no fractional part, the usual shape of
// integers that passed through a JSON or YAML decoder.
func wholeFloat(f float64) (int64, error) {
	if f != math.Trunc(f) || math.IsInf(f, 0) || math.IsNaN(f) {
		return 0, fmt.Errorf("expected integer, got float %v", f)
	}
	return int64(f), nil
}

func coerceDecimal(v any) (decimal.Decimal, error) {
	switch n := v.(type) {
	case decimal.Decimal:
		return n, nil
	case float32:
		return decimal.NewFromFloat32(n), nil
	case float64:
		return decimal.NewFromFloat(n), nil
	case string:
		if !decimalPattern.MatchString(n) {
			return decimal.Decimal{}, fmt.Errorf("expected decimal, got %q", n)
		}
		return decimal.NewFromString(n)
	}
	if i, err := coerceInteger(v); err == nil {
		return decimal.NewFromInt(i), nil
	}
	return decimal.Decimal{}, fmt.Errorf("expected decimal, got %T", v)
}

func coerceBoolean(v any) (bool, error) {
	switch b := v.(type) {
	case bool:
		return b, nil
	case string:
		if b != "true" && b != "false" {
			return false, fmt.Errorf("expected boolean, got %q", b)
		}
		return b == "true", nil
	}
	return false, fmt.Errorf("expected boolean, got %T", v)
}

func coerceJSON(v any) (any, error) {
	s, ok := v.(string)
	if !ok {
		return nil, fmt.Errorf("expected a JSON string, got %T", v)
	}
	var parsed any
	if err := json.Unmarshal([]byte(s), &parsed); err != nil {
		return nil, fmt.Errorf("expected valid JSON: %v", err)
	}
	return parsed, nil
}

func coerceEnum(members []string, v any) (string, error) {
	s, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("expected one of %v, got %T", members, v)
	}
	for _, m := range members {
		if s == m {
			return s, nil
		}
	}
	return "", fmt.Errorf("value %q is not one of the allowed values: %v", s, members)
}
