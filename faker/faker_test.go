package faker_test

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"math"
	"slices"
	"testing"

	"github.com/speakeasy-api/schemafaker/faker"
	"github.com/speakeasy-api/schemafaker/formats"
	"github.com/speakeasy-api/schemafaker/internal/check"
	"github.com/speakeasy-api/schemafaker/sequencedmap"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"
)

func TestGenerate_ValuesMatchSchema_Success(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name   string
		schema string
	}{
		{name: "free form", schema: `{}`},
		{name: "true", schema: `true`},
		{name: "string with length", schema: `{"type": "string", "minLength": 2, "maxLength": 4}`},
		{name: "nullable string", schema: `{"type": ["string", "null"]}`},
		{name: "integer range", schema: `{"type": "integer", "minimum": -5, "maximum": 5}`},
		{name: "number without whole values", schema: `{"type": "number", "minimum": 0.5, "maximum": 0.75}`},
		{name: "number with one bound", schema: `{"type": "number", "maximum": -100}`},
		{name: "closed tuple", schema: `{"type": "array", "items": [{"type": "string"}, {"type": "boolean"}], "additionalItems": false}`},
		{name: "open tuple", schema: `{"type": "array", "items": [{"type": "integer"}], "additionalItems": {"type": "null"}, "minItems": 1}`},
		{name: "uniform array", schema: `{"type": "array", "items": {"type": "integer", "minimum": 0}, "minItems": 1, "maxItems": 4}`},
		{name: "free form array", schema: `{"type": "array", "items": {}}`},
		{
			name: "closed object",
			schema: `{"type": "object", "properties": {"id": {"type": "integer"}, "name": {"type": "string"}, "tag": {"type": "null"}},
				"required": ["id"], "additionalProperties": false}`,
		},
		{name: "pattern properties", schema: `{"type": "object", "patternProperties": {"^n": {"type": "integer"}}, "additionalProperties": {"type": "string"}, "minProperties": 2}`},
		{name: "property names", schema: `{"type": "object", "propertyNames": {"pattern": "^[a-z]{3,6}$"}, "minProperties": 1}`},
		{name: "property name length", schema: `{"type": "object", "propertyNames": {"maxLength": 4}}`},
		{name: "allOf", schema: `{"allOf": [{"type": "integer"}, {"minimum": 10}, {"maximum": 20}]}`},
		{name: "anyOf", schema: `{"anyOf": [{"type": "string", "minLength": 2}, {"type": "string", "maxLength": 5}]}`},
		{name: "disjoint oneOf", schema: `{"oneOf": [{"type": "string", "maxLength": 3}, {"type": "integer", "minimum": 0}]}`},
		{name: "const", schema: `{"const": {"x": [1, "two"]}}`},
		{name: "enum", schema: `{"enum": ["a", 1, null, {"k": [1, 2]}]}`},
		{name: "date-time", schema: `{"type": "string", "format": "date-time"}`},
		{name: "date", schema: `{"type": "string", "format": "date"}`},
		{name: "time", schema: `{"type": "string", "format": "time"}`},
		{name: "email", schema: `{"type": "string", "format": "email"}`},
		{name: "hostname", schema: `{"type": "string", "format": "hostname"}`},
		{name: "ipv4", schema: `{"type": "string", "format": "ipv4"}`},
		{name: "ipv6", schema: `{"type": "string", "format": "ipv6"}`},
		{name: "uri", schema: `{"type": "string", "format": "uri"}`},
		{name: "uuid", schema: `{"type": "string", "format": "uuid"}`},
		{name: "pattern", schema: `{"type": "string", "pattern": "^[A-Z]{2}-\\d{3}$"}`},
		{
			name: "nested",
			schema: `{"type": "object", "required": ["list"], "properties": {"list": {"type": "array", "maxItems": 3,
				"items": {"type": "object", "required": ["id"], "properties": {"id": {"type": "integer", "minimum": 1}}}}}}`,
		},
		{name: "number oneOf with integer branch lacking whole numbers", schema: `{"type": "number", "oneOf": [{"type": "integer", "minimum": 0.5, "maximum": 0.75}, {"type": "number", "minimum": 5, "maximum": 6}]}`},
		{name: "integer beyond int64", schema: `{"type": "integer", "minimum": 1e19}`},
		{name: "number spanning float64", schema: `{"type": "number", "minimum": -1.7e308, "maximum": 1.7e308}`},
		{name: "declared name rejected by propertyNames", schema: `{"type": "object", "properties": {"abcdef": {}}, "propertyNames": {"maxLength": 3}}`},
		{name: "format with length bound", schema: `{"type": "string", "format": "date-time", "maxLength": 25}`},
		{name: "pattern with length bounds", schema: `{"type": "string", "pattern": "^a{1,8}$", "minLength": 4, "maxLength": 6}`},
		{name: "tuple merged through allOf", schema: `{"type": "array", "allOf": [{"items": [{"type": "integer"}]}], "items": [{"minimum": 0}], "additionalItems": false}`},
		{
			name: "allOf with closed object",
			schema: `{"type": "object", "allOf": [{"properties": {"a": {"type": "string"}}, "required": ["a"]}],
				"properties": {"a": {}, "b": {"type": "integer"}}, "additionalProperties": false}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			js := schema(t, tt.schema)

			v, err := check.Compile(js)
			require.NoError(t, err)

			values, err := newGenerator(t).GenerateN(js, 50)
			require.NoError(t, err)
			require.Len(t, values, 50)

			for i, value := range values {
				assert.Empty(t, v.Validate(value), "value %d: %v", i, value)
			}
		})
	}
}

func TestGenerate_ClosedTupleHasExactLength_Success(t *testing.T) {
	t.Parallel()
	g := newGenerator(t)
	js := schema(t, `{"type": "array", "items": [{"type": "string"}, {"type": "integer"}, {"type": "boolean"}], "additionalItems": false, "minItems": 3}`)

	for range 20 {
		v, err := g.Generate(js)
		require.NoError(t, err)
		arr, ok := v.([]any)
		require.True(t, ok)
		require.Len(t, arr, 3)
		assert.IsType(t, "", arr[0])
		assert.IsType(t, int64(0), arr[1])
		assert.IsType(t, false, arr[2])
	}
}

func TestGenerate_ClosedEmptyObject_Success(t *testing.T) {
	t.Parallel()
	g := newGenerator(t)
	js := schema(t, `{"type": "object", "additionalProperties": false}`)

	for range 20 {
		v, err := g.Generate(js)
		require.NoError(t, err)
		obj, ok := v.(*sequencedmap.Map[string, any])
		require.True(t, ok)
		assert.Equal(t, 0, obj.Len())
	}
}

func TestGenerate_FixedLengthString_Success(t *testing.T) {
	t.Parallel()
	g := newGenerator(t)
	js := schema(t, `{"type": "string", "minLength": 5, "maxLength": 5}`)

	seen := map[string]bool{}
	for range 20 {
		v, err := g.Generate(js)
		require.NoError(t, err)
		s, ok := v.(string)
		require.True(t, ok)
		assert.Len(t, s, 5)
		seen[s] = true
	}
	assert.Greater(t, len(seen), 1)
}

func TestGenerate_SingleInteger_Success(t *testing.T) {
	t.Parallel()
	g := newGenerator(t)
	js := schema(t, `{"type": "integer", "minimum": 3, "maximum": 3}`)

	for range 20 {
		v, err := g.Generate(js)
		require.NoError(t, err)
		assert.Equal(t, int64(3), v)
	}
}

func TestGenerate_MaxDepth_Success(t *testing.T) {
	t.Parallel()
	g := newGenerator(t, withConfig(t, func(c *faker.Config) { c.MaxDepth = 1 }))
	js := schema(t, `{"type": "array", "items": {}, "minItems": 1}`)

	for range 20 {
		v, err := g.Generate(js)
		require.NoError(t, err)
		arr, ok := v.([]any)
		require.True(t, ok)
		for _, item := range arr {
			switch item.(type) {
			case []any, *sequencedmap.Map[string, any]:
				t.Errorf("item %v is not a scalar", item)
			}
		}
	}
}

func TestGenerate_Error(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name     string
		schema   string
		expected error
		contains string
	}{
		{name: "false schema", schema: `false`, expected: faker.ErrUnsatisfiable},
		{name: "min properties above max", schema: `{"type": "object", "minProperties": 4, "maxProperties": 3}`, expected: faker.ErrUnsatisfiable, contains: "minProperties 4 exceeds maxProperties 3"},
		{name: "conflicting types", schema: `{"type": "string", "allOf": [{"type": "integer"}]}`, expected: faker.ErrUnsatisfiable},
		{name: "unsupported pattern", schema: `{"type": "string", "pattern": "(?=x)a"}`, expected: faker.ErrPatternGeneration, contains: "(?=x)a"},
		{name: "format longer than maxLength", schema: `{"type": "string", "format": "email", "maxLength": 5}`, expected: faker.ErrUnsatisfiable, contains: "no string within length 0 to 5"},
		{name: "forbidden required property", schema: `{"type": "object", "required": ["a"], "additionalProperties": false}`, expected: faker.ErrUnsatisfiable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			g, err := faker.New()
			require.NoError(t, err)

			// failures do not depend on the random draw
			for range 10 {
				_, err := g.Generate(schema(t, tt.schema))
				require.Error(t, err)
				require.ErrorIs(t, err, tt.expected)
				assert.Contains(t, err.Error(), tt.contains)
			}
		})
	}
}

func TestGenerate_UnknownPatternHook_Success(t *testing.T) {
	t.Parallel()

	var gotPattern string
	var gotCause error
	g := newGenerator(t, faker.WithUnknownPatternHook(func(pattern string, cause error) any {
		gotPattern, gotCause = pattern, cause
		return "fallback"
	}))

	v, err := g.Generate(schema(t, `{"type": "string", "pattern": "(?=x)a", "maxLength": 2}`))
	require.NoError(t, err)
	assert.Equal(t, "fallback", v, "hook output is used verbatim")
	assert.Equal(t, "(?=x)a", gotPattern)
	require.Error(t, gotCause)
}

func TestGenerate_UnknownPatternHook_Error(t *testing.T) {
	t.Parallel()

	g := newGenerator(t, faker.WithUnknownPatternHook(func(string, error) any {
		return 7
	}))

	_, err := g.Generate(schema(t, `{"type": "string", "pattern": "(?=x)a"}`))
	require.Error(t, err)
	require.ErrorIs(t, err, faker.ErrFallbackContract)
	assert.Contains(t, err.Error(), "int")
}

func TestGenerate_WithFormat_Success(t *testing.T) {
	t.Parallel()

	g := newGenerator(t, faker.WithFormat(formats.Email, func(formats.Rand) string {
		return "fixed@example.com"
	}))

	v, err := g.Generate(schema(t, `{"type": "string", "format": "email"}`))
	require.NoError(t, err)
	assert.Equal(t, "fixed@example.com", v)

	// the override does not leak into other generators
	other := newGenerator(t)
	v, err = other.Generate(schema(t, `{"type": "string", "format": "email"}`))
	require.NoError(t, err)
	assert.NotEqual(t, "fixed@example.com", v)
}

func TestGenerate_SeedIsReproducible_Success(t *testing.T) {
	t.Parallel()
	js := schema(t, `{"type": "object", "properties": {"a": {"type": "array", "items": {}}, "b": {"oneOf": [{"type": "string"}, {"type": "number"}]}},
		"additionalProperties": {"type": ["integer", "boolean"]}}`)

	generate := func(seed uint64) string {
		g, err := faker.New(faker.WithSeed(seed))
		require.NoError(t, err)
		values, err := g.GenerateN(js, 10)
		require.NoError(t, err)
		data, err := json.Marshal(values)
		require.NoError(t, err)
		return string(data)
	}

	assert.Equal(t, generate(7), generate(7))
	assert.NotEqual(t, generate(7), generate(8))
}

func TestGenerate_ConcurrentUse_Success(t *testing.T) {
	t.Parallel()
	js := schema(t, `{"type": "object", "properties": {"id": {"type": "string", "format": "uuid"}}, "required": ["id"]}`)

	g, err := faker.New()
	require.NoError(t, err)
	v, err := check.Compile(js)
	require.NoError(t, err)

	var eg errgroup.Group
	for range 8 {
		eg.Go(func() error {
			for range 20 {
				value, err := g.Generate(js)
				if err != nil {
					return err
				}
				if errs := v.Validate(value); len(errs) > 0 {
					return errs[0]
				}
			}
			return nil
		})
	}
	require.NoError(t, eg.Wait())
}

func TestResolve_GenerateConformed_Success(t *testing.T) {
	t.Parallel()
	g := newGenerator(t)

	c, err := g.Resolve(schema(t, `{"type": "object", "properties": {"b": {"const": 1}, "a": {"enum": ["x"]}}, "required": ["b", "a"], "additionalProperties": false}`))
	require.NoError(t, err)
	assert.Equal(t, faker.KindObject, c.Kind())

	v, err := g.GenerateConformed(c)
	require.NoError(t, err)
	data, err := json.Marshal(v)
	require.NoError(t, err)
	assert.JSONEq(t, `{"b": 1, "a": "x"}`, string(data))
	assert.Equal(t, []string{"b", "a"}, slices.Collect(v.(*sequencedmap.Map[string, any]).Keys()))
}

func TestGenerate_Logging_Success(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	g := newGenerator(t, faker.WithLogger(faker.NewSlogAdapter(logger)))

	_, err := g.Generate(schema(t, `{"anyOf": [{"type": "string"}]}`))
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "selected kind")
	assert.Contains(t, buf.String(), "resolved anyOf")
}

func TestGenerate_OneOfCoversEveryBranch_Success(t *testing.T) {
	t.Parallel()
	g := newGenerator(t)
	js := schema(t, `{"oneOf": [{"type": "string"}, {"type": "boolean"}, {"type": "integer"}]}`)

	seen := map[string]bool{}
	for range 60 {
		v, err := g.Generate(js)
		require.NoError(t, err)
		switch v.(type) {
		case string:
			seen["string"] = true
		case bool:
			seen["boolean"] = true
		case int64:
			seen["integer"] = true
		default:
			t.Fatalf("unexpected value %v of type %T", v, v)
		}
	}
	assert.Len(t, seen, 3)
}

func TestGenerate_NumbersAtTheEdges_Success(t *testing.T) {
	t.Parallel()
	g := newGenerator(t)

	v, err := g.Generate(schema(t, `{"type": "integer", "minimum": 1e19}`))
	require.NoError(t, err)
	assert.Equal(t, 1e19, v, "whole numbers outside int64 are returned as float64")

	v, err = g.Generate(schema(t, `{"type": "integer", "minimum": -1e19, "maximum": -1e19}`))
	require.NoError(t, err)
	assert.Equal(t, -1e19, v)

	for range 50 {
		v, err = g.Generate(schema(t, `{"type": "number", "minimum": -1.7e308, "maximum": 1.7e308}`))
		require.NoError(t, err)
		switch n := v.(type) {
		case float64:
			assert.False(t, math.IsInf(n, 0) || math.IsNaN(n))
			assert.LessOrEqual(t, n, 1.7e308)
			assert.GreaterOrEqual(t, n, -1.7e308)
		case int64:
		default:
			t.Fatalf("unexpected value %v of type %T", v, v)
		}

		v, err = g.Generate(schema(t, `{"type": "integer", "minimum": -5, "maximum": 5}`))
		require.NoError(t, err)
		assert.IsType(t, int64(0), v)
	}
}

func TestGenerate_IntegerFallbackPicksDecimalBranch_Success(t *testing.T) {
	t.Parallel()
	g := newGenerator(t)
	js := schema(t, `{"type": "number", "oneOf": [{"type": "integer", "minimum": 0.5, "maximum": 0.75}, {"type": "number", "minimum": 5, "maximum": 6}]}`)

	for range 100 {
		v, err := g.Generate(js)
		require.NoError(t, err)
		switch n := v.(type) {
		case float64:
			assert.GreaterOrEqual(t, n, 5.0)
			assert.LessOrEqual(t, n, 6.0)
		case int64:
			assert.Contains(t, []int64{5, 6}, n)
		default:
			t.Fatalf("unexpected value %v of type %T", v, v)
		}
	}
}

func TestGenerate_OptionalPropertyProbability_Success(t *testing.T) {
	t.Parallel()
	js := schema(t, `{"type": "object", "properties": {"first_declared": {}, "second_declared": {}, "third_declared": {}},
		"minProperties": 3, "maxProperties": 3}`)
	declared := []string{"first_declared", "second_declared", "third_declared"}

	tests := []struct {
		name        string
		probability float64
		expected    func(t *testing.T, names []string)
	}{
		{
			name:        "declared names first",
			probability: 1,
			expected: func(t *testing.T, names []string) {
				t.Helper()
				assert.ElementsMatch(t, declared, names)
			},
		},
		{
			name:        "synthesized names first",
			probability: 0,
			expected: func(t *testing.T, names []string) {
				t.Helper()
				assert.Len(t, names, 3)
				for _, name := range names {
					assert.NotContains(t, declared, name)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			g := newGenerator(t, withConfig(t, func(c *faker.Config) { c.OptionalPropertyProbability = tt.probability }))

			for range 20 {
				v, err := g.Generate(js)
				require.NoError(t, err)
				obj, ok := v.(*sequencedmap.Map[string, any])
				require.True(t, ok)
				tt.expected(t, slices.Collect(obj.Keys()))
			}
		})
	}
}
