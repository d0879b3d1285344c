package faker_test

import (
	"testing"

	"github.com/speakeasy-api/schemafaker/faker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCoerce_Success(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name     string
		schema   string
		expected faker.Kinds
	}{
		{name: "empty schema", schema: `{}`, expected: faker.AllKinds()},
		{name: "true schema", schema: `true`, expected: faker.AllKinds()},
		{name: "unknown type", schema: `{"type": "date"}`, expected: faker.AllKinds()},
		{name: "empty type list", schema: `{"type": []}`, expected: faker.AllKinds()},
		{name: "number", schema: `{"type": "number"}`, expected: faker.Kinds{faker.KindDecimal, faker.KindInteger}},
		{name: "integer and number", schema: `{"type": ["integer", "number"]}`, expected: faker.Kinds{faker.KindInteger, faker.KindDecimal}},
		{
			name:     "allOf intersects",
			schema:   `{"allOf": [{"type": ["string", "integer"]}, {"allOf": [{"type": ["integer", "boolean"]}]}]}`,
			expected: faker.Kinds{faker.KindInteger},
		},
		{
			name:     "anyOf narrows to alternatives",
			schema:   `{"anyOf": [{"type": "boolean"}, {"type": "string"}, false]}`,
			expected: faker.Kinds{faker.KindString, faker.KindBoolean},
		},
		{
			name:     "oneOf skips unsatisfiable alternatives",
			schema:   `{"type": ["null", "object"], "oneOf": [{"type": "object"}, {"type": "string", "const": 1}]}`,
			expected: faker.Kinds{faker.KindObject},
		},
		{name: "const", schema: `{"const": 3}`, expected: faker.Kinds{faker.KindInteger, faker.KindDecimal}},
		{name: "enum", schema: `{"enum": ["a", null, 1.5]}`, expected: faker.Kinds{faker.KindNull, faker.KindString, faker.KindDecimal}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			ts, err := faker.Coerce(schema(t, tt.schema))
			require.NoError(t, err)
			assert.Equal(t, tt.expected, ts.Kinds)
			assert.NotNil(t, ts.Schema)
		})
	}
}

func TestCoerce_CopiesSchema_Success(t *testing.T) {
	t.Parallel()

	js := schema(t, `{"type": "object", "required": ["a"]}`)
	ts, err := faker.Coerce(js)
	require.NoError(t, err)

	ts.Schema.Required[0] = "b"
	assert.Equal(t, []string{"a"}, js.GetSchema().Required)
}

func TestCoerce_Error(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name   string
		schema string
	}{
		{name: "false schema", schema: `false`},
		{name: "false allOf member", schema: `{"allOf": [{}, false]}`},
		{name: "disjoint allOf", schema: `{"type": "string", "allOf": [{"type": "integer"}]}`},
		{name: "const of other kind", schema: `{"type": "string", "const": 1}`},
		{name: "enum of other kinds", schema: `{"type": "boolean", "enum": ["yes", 1]}`},
		{name: "no satisfiable alternative", schema: `{"anyOf": [false, {"allOf": [false]}]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := faker.Coerce(schema(t, tt.schema))
			require.Error(t, err)
			require.ErrorIs(t, err, faker.ErrUnsatisfiable)
		})
	}
}
