package faker_test

import (
	"testing"

	"github.com/speakeasy-api/schemafaker/faker"
	"github.com/speakeasy-api/schemafaker/jsonschema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMerge_Bounds_Success(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name     string
		a, b     string
		expected *jsonschema.Schema
	}{
		{name: "minimum takes larger", a: `{"minimum": 2}`, b: `{"minimum": 5}`, expected: &jsonschema.Schema{Minimum: ptr(5.0)}},
		{name: "maximum takes smaller", a: `{"maximum": 2}`, b: `{"maximum": 5}`, expected: &jsonschema.Schema{Maximum: ptr(2.0)}},
		{name: "lengths", a: `{"minLength": 1, "maxLength": 9}`, b: `{"minLength": 4, "maxLength": 6}`, expected: &jsonschema.Schema{MinLength: ptr(int64(4)), MaxLength: ptr(int64(6))}},
		{name: "item counts", a: `{"minItems": 3}`, b: `{"minItems": 1, "maxItems": 7}`, expected: &jsonschema.Schema{MinItems: ptr(int64(3)), MaxItems: ptr(int64(7))}},
		{name: "property counts", a: `{"maxProperties": 2}`, b: `{"minProperties": 1, "maxProperties": 8}`, expected: &jsonschema.Schema{MinProperties: ptr(int64(1)), MaxProperties: ptr(int64(2))}},
		{name: "absent on one side is adopted", a: `{}`, b: `{"minimum": 1.5}`, expected: &jsonschema.Schema{Minimum: ptr(1.5)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			merged := faker.Merge(schema(t, tt.a).GetSchema(), schema(t, tt.b).GetSchema())
			assert.Equal(t, tt.expected, merged)
		})
	}
}

func TestMerge_LaterWins_Success(t *testing.T) {
	t.Parallel()

	merged := faker.Merge(
		schema(t, `{"type": "string", "const": "a", "enum": ["x"], "format": "date", "pattern": "a+", "title": "first"}`).GetSchema(),
		schema(t, `{"type": "integer", "const": "b", "enum": ["y", "z"], "format": "uuid", "pattern": "b+", "title": "second"}`).GetSchema(),
	)

	assert.Equal(t, jsonschema.Types{jsonschema.SchemaTypeString}, merged.Type)
	assert.Equal(t, "b", merged.Const.Value)
	assert.Equal(t, []any{"y", "z"}, merged.Enum)
	assert.Equal(t, "uuid", merged.GetFormat())
	assert.Equal(t, "b+", merged.GetPattern())
	assert.Equal(t, "second", merged.Extra.GetOrZero("title"))
}

func TestMerge_Required_Success(t *testing.T) {
	t.Parallel()

	a := schema(t, `{"required": ["a", "b"]}`).GetSchema()
	merged := faker.Merge(a, schema(t, `{"required": ["b", "c"]}`).GetSchema())

	assert.Equal(t, []string{"a", "b", "c"}, merged.Required)
	assert.Equal(t, []string{"a", "b"}, a.Required)
}

func TestMerge_Properties_Success(t *testing.T) {
	t.Parallel()

	merged := faker.Merge(
		schema(t, `{"properties": {"x": {"type": "string"}, "only_a": {}}, "additionalProperties": false}`).GetSchema(),
		schema(t, `{"properties": {"x": {"minLength": 2}, "only_b": {"type": "integer"}}, "additionalProperties": {"type": "integer"}}`).GetSchema(),
	)

	require.Equal(t, 3, merged.Properties.Len())

	x := merged.Properties.GetOrZero("x").GetSchema()
	require.NotNil(t, x)
	assert.Len(t, x.AllOf, 2)

	// declared only by a, so b's additionalProperties applies
	onlyA := merged.Properties.GetOrZero("only_a").GetSchema()
	require.NotNil(t, onlyA)
	assert.Equal(t, jsonschema.Types{jsonschema.SchemaTypeInteger}, onlyA.Type)

	// a forbids undeclared names
	assert.True(t, merged.Properties.GetOrZero("only_b").IsFalse())
	assert.True(t, merged.AdditionalProperties.IsFalse())
}

func TestMerge_PatternProperties_Success(t *testing.T) {
	t.Parallel()

	merged := faker.Merge(
		schema(t, `{"patternProperties": {"^x-": {"type": "string"}}, "additionalProperties": false}`).GetSchema(),
		schema(t, `{"properties": {"x-id": {"maxLength": 4}, "other": {}}, "patternProperties": {"^x-": {"minLength": 1}}}`).GetSchema(),
	)

	xid := merged.Properties.GetOrZero("x-id").GetSchema()
	require.NotNil(t, xid)
	assert.Len(t, xid.AllOf, 2)
	assert.True(t, merged.Properties.GetOrZero("other").IsFalse())
	assert.Len(t, merged.PatternProperties.GetOrZero("^x-").GetSchema().AllOf, 2)
}

func TestMerge_Items_Success(t *testing.T) {
	t.Parallel()

	t.Run("uniform and uniform", func(t *testing.T) {
		t.Parallel()
		merged := faker.Merge(
			schema(t, `{"items": {"type": "string"}}`).GetSchema(),
			schema(t, `{"items": {"minLength": 2}}`).GetSchema(),
		)
		require.False(t, merged.Items.IsTuple())
		assert.Len(t, merged.Items.Schema.GetSchema().AllOf, 2)
	})

	t.Run("tuple and tuple", func(t *testing.T) {
		t.Parallel()
		b := schema(t, `{"items": [{"minLength": 1}, {"type": "integer"}]}`).GetSchema()
		merged := faker.Merge(schema(t, `{"items": [{"type": "string"}]}`).GetSchema(), b)
		require.True(t, merged.Items.IsTuple())
		require.Len(t, merged.Items.Tuple, 2)
		assert.Len(t, merged.Items.Tuple[0].GetSchema().AllOf, 2)
		assert.Same(t, b.Items.Tuple[1], merged.Items.Tuple[1])
	})

	t.Run("tuple surplus meets additionalItems", func(t *testing.T) {
		t.Parallel()
		merged := faker.Merge(
			schema(t, `{"items": [{}], "additionalItems": false}`).GetSchema(),
			schema(t, `{"items": [{}, {}]}`).GetSchema(),
		)
		require.Len(t, merged.Items.Tuple, 2)
		assert.True(t, merged.Items.Tuple[1].IsFalse())
		assert.True(t, merged.AdditionalItems.IsFalse())
	})

	t.Run("tuple and uniform", func(t *testing.T) {
		t.Parallel()
		merged := faker.Merge(
			schema(t, `{"items": [{"type": "string"}, {"type": "integer"}]}`).GetSchema(),
			schema(t, `{"items": {"minimum": 0}}`).GetSchema(),
		)
		require.True(t, merged.Items.IsTuple())
		for _, slot := range merged.Items.Tuple {
			assert.Len(t, slot.GetSchema().AllOf, 2)
		}
		assert.InDelta(t, 0, *merged.AdditionalItems.GetSchema().Minimum, 0)
	})
}

func TestMerge_Combinators_Success(t *testing.T) {
	t.Parallel()

	merged := faker.Merge(
		schema(t, `{"anyOf": [{"type": "string"}], "allOf": [{}]}`).GetSchema(),
		schema(t, `{"anyOf": [{"type": "integer"}], "allOf": [{"minimum": 1}]}`).GetSchema(),
	)

	require.Len(t, merged.AnyOf, 1)
	require.Len(t, merged.AllOf, 3)
	assert.Len(t, merged.AllOf[2].GetSchema().AnyOf, 1)
}

func TestMerge_Nil_Success(t *testing.T) {
	t.Parallel()

	s := schema(t, `{"minimum": 1}`).GetSchema()
	assert.Equal(t, s, faker.Merge(nil, s))
	assert.Equal(t, s, faker.Merge(s, nil))
	assert.NotSame(t, s, faker.Merge(s, nil))
}
