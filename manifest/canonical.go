package manifest

import (
	"fmt"
	"reflect"
	"slices"
)

// canonicalDefaults are the properties every parameter starts from.
// Supplied properties win.
func canonicalDefaults() map[string]any {
	return map[string]any{
		propDescription: "",
		propType:        KindString,
		propHidden:      false,
		propConstant:    false,
	}
}

// canonicalize merges the supplied properties over the defaults and
// normalizes each: description stringified, scalar type names converted
// to Kind tags, enum members stringified to []string, hidden and constant
// collapsed to strict booleans. Supplied values are deep-copied so the
// canonical map never aliases caller state.
//
// Canonicalizing an already-canonical property map is a no-op.
func canonicalize(props map[string]any) map[string]any {
	out := canonicalDefaults()
	for k, v := range props {
		out[k] = deepCopy(v)
	}
	out[propDescription] = stringify(out[propDescription])
	out[propType] = canonicalType(out[propType])
	out[propHidden] = truthy(out[propHidden])
	out[propConstant] = truthy(out[propConstant])
	return out
}

// canonicalType normalizes a declared value type: scalar names become
// Kind tags, enum lists become []string. Unrecognized declarations pass
// through untouched for the validator to reject.
func canonicalType(t any) any {
	switch v := t.(type) {
	case Kind:
		return v
	case string:
		if k, ok := kindFromName(v); ok {
			return k
		}
		return v
	case []string:
		return slices.Clone(v)
	}
	if list, ok := asList(t); ok {
		members := make([]string, len(list))
		for i, el := range list {
			members[i] = stringify(el)
		}
		return members
	}
	return t
}

// stringify renders a value as text. nil maps to the empty string rather
// than "<nil>".
func stringify(v any) string {
	switch s := v.(type) {
	case nil:
		return ""
	case string:
		return s
	}
	return fmt.Sprint(v)
}

// truthy collapses a value to a strict boolean: only nil and false are
// false.
func truthy(v any) bool {
	return v != nil && v != false
}

// asList returns the elements of any slice or array value. Strings and
// byte slices are not lists.
func asList(v any) ([]any, bool) {
	if v == nil {
		return nil, false
	}
	if _, ok := v.([]byte); ok {
		return nil, false
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return nil, false
	}
	out := make([]any, rv.Len())
	for i := range out {
		out[i] = rv.Index(i).Interface()
	}
	return out, true
}

// deepCopy duplicates nested maps and slices so that two manifests, or a
// manifest and a caller's map, never alias mutable structure. Scalars and
// function values are returned as-is.
func deepCopy(v any) any {
	switch t := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, e := range t {
			out[k] = deepCopy(e)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = deepCopy(e)
		}
		return out
	case []string:
		return slices.Clone(t)
	}
	return v
}
