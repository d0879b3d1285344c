package jsonschema

import (
	"encoding/json"

	"github.com/speakeasy-api/schemafaker/sequencedmap"
)

// MarshalJSON encodes the schema with keywords in a stable order.
func (j *JSONSchema) MarshalJSON() ([]byte, error) {
	switch {
	case j == nil:
		return []byte("null"), nil
	case j.IsBool():
		return json.Marshal(*j.boolean)
	default:
		return json.Marshal(j.schema)
	}
}

// MarshalJSON encodes the schema with keywords in a stable order.
func (s *Schema) MarshalJSON() ([]byte, error) {
	if s == nil {
		return []byte("null"), nil
	}
	return json.Marshal(s.toMap())
}

func (s *Schema) toMap() *sequencedmap.Map[string, any] {
	m := sequencedmap.New[string, any]()

	switch len(s.Type) {
	case 0:
		if s.Type != nil {
			m.Set("type", []SchemaType{})
		}
	case 1:
		m.Set("type", s.Type[0])
	default:
		m.Set("type", []SchemaType(s.Type))
	}

	setList(m, "allOf", s.AllOf)
	setList(m, "anyOf", s.AnyOf)
	setList(m, "oneOf", s.OneOf)

	if s.Const != nil {
		m.Set("const", s.Const.Value)
	}
	if s.Enum != nil {
		m.Set("enum", s.Enum)
	}

	if s.Items != nil {
		if s.Items.IsTuple() {
			m.Set("items", s.Items.Tuple)
		} else {
			m.Set("items", s.Items.Schema)
		}
	}
	setSchema(m, "additionalItems", s.AdditionalItems)
	setValue(m, "minItems", s.MinItems)
	setValue(m, "maxItems", s.MaxItems)

	if s.Properties != nil {
		m.Set("properties", s.Properties)
	}
	if s.PatternProperties != nil {
		m.Set("patternProperties", s.PatternProperties)
	}
	setSchema(m, "propertyNames", s.PropertyNames)
	setSchema(m, "additionalProperties", s.AdditionalProperties)
	if s.Required != nil {
		m.Set("required", s.Required)
	}
	setValue(m, "minProperties", s.MinProperties)
	setValue(m, "maxProperties", s.MaxProperties)

	setValue(m, "minLength", s.MinLength)
	setValue(m, "maxLength", s.MaxLength)
	setValue(m, "format", s.Format)
	setValue(m, "pattern", s.Pattern)

	setValue(m, "minimum", s.Minimum)
	setValue(m, "maximum", s.Maximum)

	for k, v := range s.Extra.All() {
		m.Set(k, v)
	}

	return m
}

func setList(m *sequencedmap.Map[string, any], key string, schemas []*JSONSchema) {
	if schemas != nil {
		m.Set(key, schemas)
	}
}

func setSchema(m *sequencedmap.Map[string, any], key string, js *JSONSchema) {
	if js != nil {
		m.Set(key, js)
	}
}

func setValue[T any](m *sequencedmap.Map[string, any], key string, v *T) {
	if v != nil {
		m.Set(key, *v)
	}
}
