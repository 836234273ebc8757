package manifest

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/confspec/confspec"
)

func mustNew(t *testing.T, schema map[string]any) *Manifest {
	t.Helper()
	m, err := New(schema)
	require.NoError(t, err)
	return m
}

func TestApplyEmptyManifest(t *testing.T) {
	m := mustNew(t, nil)

	out, err := m.Apply(map[string]any{})
	require.NoError(t, err)
	assert.NotNil(t, out)
	assert.Empty(t, out)
}

func TestApplyMissingRequired(t *testing.T) {
	m := mustNew(t, map[string]any{
		"host": map[string]any{},
	})

	_, err := m.Apply(map[string]any{})
	require.Error(t, err)
	assert.ErrorIs(t, err, confspec.ErrInvalidValues)
	assert.Contains(t, err.Error(), `missing required parameter "host"`)

	// A nil value counts as missing.
	_, err = m.Apply(map[string]any{"host": nil})
	require.Error(t, err)
	assert.Contains(t, err.Error(), `missing required parameter "host"`)
}

func TestApplyConstantIgnoresInput(t *testing.T) {
	m := mustNew(t, map[string]any{
		"version": map[string]any{"constant": true, "default": 1},
	})

	// The supplied value is discarded without ever being type-checked.
	out, err := m.Apply(map[string]any{"version": 999})
	require.NoError(t, err)
	assert.Equal(t, 1, out["version"])

	out, err = m.Apply(map[string]any{"version": "not even close"})
	require.NoError(t, err)
	assert.Equal(t, 1, out["version"])
}

func TestApplyIntegerCoercion(t *testing.T) {
	m := mustNew(t, map[string]any{
		"n": map[string]any{"type": "integer", "default": 0},
	})

	tests := []struct {
		name    string
		value   any
		want    int64
		wantErr bool
	}{
		{"int", 42, 42, false},
		{"int64", int64(7), 7, false},
		{"uint", uint(3), 3, false},
		{"digit string", "42", 42, false},
		{"whole float", 42.0, 42, false},
		{"fractional float", 3.5, 0, true},
		{"trailing garbage", "42abc", 0, true},
		{"negative string", "-1", 0, true},
		{"bool", true, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := m.Apply(map[string]any{"n": tt.value})
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), `invalid value for parameter "n"`)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, out["n"])
		})
	}
}

func TestApplyBooleanCoercion(t *testing.T) {
	m := mustNew(t, map[string]any{
		"flag": map[string]any{"type": "boolean", "default": false},
	})

	tests := []struct {
		name    string
		value   any
		want    bool
		wantErr bool
	}{
		{"true literal", true, true, false},
		{"false literal", false, false, false},
		{"true string", "true", true, false},
		{"false string", "false", false, false},
		{"abbreviation", "t", false, true},
		{"number", 1, false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := m.Apply(map[string]any{"flag": tt.value})
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, out["flag"])
		})
	}
}

func TestApplyDecimalCoercion(t *testing.T) {
	m := mustNew(t, map[string]any{
		"price": map[string]any{"type": "decimal", "default": "0"},
	})

	out, err := m.Apply(map[string]any{"price": "3.14"})
	require.NoError(t, err)
	got := out["price"].(decimal.Decimal)
	assert.True(t, got.Equal(decimal.RequireFromString("3.14")), "got %s", got)

	out, err = m.Apply(map[string]any{"price": 2})
	require.NoError(t, err)
	assert.True(t, out["price"].(decimal.Decimal).Equal(decimal.NewFromInt(2)))

	out, err = m.Apply(map[string]any{"price": decimal.RequireFromString("10.5")})
	require.NoError(t, err)
	assert.True(t, out["price"].(decimal.Decimal).Equal(decimal.RequireFromString("10.5")))

	_, err = m.Apply(map[string]any{"price": "1.2.3"})
	require.Error(t, err)

	_, err = m.Apply(map[string]any{"price": true})
	require.Error(t, err)
}

func TestApplyJSONCoercion(t *testing.T) {
	m := mustNew(t, map[string]any{
		"payload": map[string]any{"type": "json", "default": "null"},
	})

	out, err := m.Apply(map[string]any{"payload": `[{"k":1}]`})
	require.NoError(t, err)
	assert.Equal(t, []any{map[string]any{"k": float64(1)}}, out["payload"])

	_, err = m.Apply(map[string]any{"payload": "not json"})
	require.Error(t, err)

	_, err = m.Apply(map[string]any{"payload": 42})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "expected a JSON string")
}

func TestApplyEnumCoercion(t *testing.T) {
	m := mustNew(t, map[string]any{
		"mode": map[string]any{"type": []string{"fast", "safe"}},
	})

	out, err := m.Apply(map[string]any{"mode": "fast"})
	require.NoError(t, err)
	assert.Equal(t, "fast", out["mode"])

	_, err = m.Apply(map[string]any{"mode": "reckless"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not one of the allowed values")

	_, err = m.Apply(map[string]any{"mode": 1})
	require.Error(t, err)
}

func TestApplyStringCoercion(t *testing.T) {
	m := mustNew(t, map[string]any{
		"label": map[string]any{},
	})

	out, err := m.Apply(map[string]any{"label": 42})
	require.NoError(t, err)
	assert.Equal(t, "42", out["label"])

	out, err = m.Apply(map[string]any{"label": true})
	require.NoError(t, err)
	assert.Equal(t, "true", out["label"])
}

func TestApplyDefaultBypassesCoercion(t *testing.T) {
	// The default is returned as-is: it is never run through the type
	// rule, even when it would not pass it.
	m := mustNew(t, map[string]any{
		"port": map[string]any{"type": "integer", "default": "unset"},
	})

	out, err := m.Apply(map[string]any{})
	require.NoError(t, err)
	assert.Equal(t, "unset", out["port"])

	out, err = m.Apply(map[string]any{"port": nil})
	require.NoError(t, err)
	assert.Equal(t, "unset", out["port"])

	out, err = m.Apply(map[string]any{"port": 8080})
	require.NoError(t, err)
	assert.Equal(t, int64(8080), out["port"])
}

func TestApplyCallbackDefault(t *testing.T) {
	calls := 0
	m := mustNew(t, map[string]any{
		"stamp": map[string]any{
			"default": DefaultFunc(func() any {
				calls++
				return calls
			}),
		},
	})

	out, err := m.Apply(map[string]any{})
	require.NoError(t, err)
	assert.Equal(t, 1, out["stamp"])

	// Invoked once per apply, not once per manifest.
	out, err = m.Apply(map[string]any{})
	require.NoError(t, err)
	assert.Equal(t, 2, out["stamp"])
}

func TestApplyIgnoresUndeclaredParameters(t *testing.T) {
	m := mustNew(t, map[string]any{
		"host": map[string]any{"default": "localhost"},
	})

	out, err := m.Apply(map[string]any{"host": "db1", "stray": 42})
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"host": "db1"}, out)
}

func TestApplyAggregatesAllFailures(t *testing.T) {
	m := mustNew(t, map[string]any{
		"alpha": map[string]any{},
		"count": map[string]any{"type": "integer", "default": 0},
		"flag":  map[string]any{"type": "boolean", "default": false},
		"zeta":  map[string]any{},
	})

	_, err := m.Apply(map[string]any{
		"count": "many",
		"flag":  "t",
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, confspec.ErrInvalidValues)

	msg := err.Error()
	assert.Contains(t, msg, `missing required parameter "alpha"`)
	assert.Contains(t, msg, `missing required parameter "zeta"`)
	assert.Contains(t, msg, `invalid value for parameter "count"`)
	assert.Contains(t, msg, `invalid value for parameter "flag"`)

	// Missing sentences come before invalid sentences, each group in
	// manifest key order.
	alpha := strings.Index(msg, `"alpha"`)
	zeta := strings.Index(msg, `"zeta"`)
	count := strings.Index(msg, `"count"`)
	flag := strings.Index(msg, `"flag"`)
	assert.True(t, alpha < zeta, "missing sentences out of key order")
	assert.True(t, zeta < count, "invalid sentences must follow missing ones")
	assert.True(t, count < flag, "invalid sentences out of key order")
}

func TestApplyConstantNeverTypeChecked(t *testing.T) {
	m := mustNew(t, map[string]any{
		"pinned": map[string]any{"type": "integer", "constant": true, "default": 1},
		"other":  map[string]any{"type": "integer", "default": 0},
	})

	// "pinned" gets garbage input but must not contribute a failure.
	out, err := m.Apply(map[string]any{"pinned": "garbage", "other": 2})
	require.NoError(t, err)
	assert.Equal(t, 1, out["pinned"])
	assert.Equal(t, int64(2), out["other"])
}
