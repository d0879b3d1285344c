// Package jsonschema contains the data model for the subset of JSON Schema
// understood by the fixture generator, along with decoding from JSON/YAML.
package jsonschema

import (
	"reflect"
	"slices"

	"github.com/speakeasy-api/schemafaker/sequencedmap"
)

// Schema is a JSON Schema object. Optional keywords are pointers or nil-able
// collections so that an absent keyword can be told apart from a zero value.
type Schema struct {
	// Type represents the type of a schema either an array of types or a single type.
	Type Types

	AllOf []*JSONSchema
	AnyOf []*JSONSchema
	OneOf []*JSONSchema

	Const *Literal
	Enum  []any

	Items           *Items
	AdditionalItems *JSONSchema
	MinItems        *int64
	MaxItems        *int64

	Properties           *sequencedmap.Map[string, *JSONSchema]
	PatternProperties    *sequencedmap.Map[string, *JSONSchema]
	PropertyNames        *JSONSchema
	AdditionalProperties *JSONSchema
	Required             []string
	MinProperties        *int64
	MaxProperties        *int64

	MinLength *int64
	MaxLength *int64
	Format    *string
	Pattern   *string

	Minimum *float64
	Maximum *float64

	// Extra holds keywords that have no meaning for data generation (title,
	// description, ...). They are carried through unchanged.
	Extra *sequencedmap.Map[string, any]
}

// ShallowCopy creates a shallow copy of the Schema.
// This copies all struct fields and creates new slices/maps but does not deep copy the referenced objects.
func (s *Schema) ShallowCopy() *Schema {
	if s == nil {
		return nil
	}

	result := *s

	result.Type = slices.Clone(s.Type)
	result.AllOf = slices.Clone(s.AllOf)
	result.AnyOf = slices.Clone(s.AnyOf)
	result.OneOf = slices.Clone(s.OneOf)
	result.Enum = slices.Clone(s.Enum)
	result.Required = slices.Clone(s.Required)
	if s.Items != nil {
		result.Items = &Items{Schema: s.Items.Schema, Tuple: slices.Clone(s.Items.Tuple)}
	}
	result.Properties = s.Properties.Clone()
	result.PatternProperties = s.PatternProperties.Clone()
	result.Extra = s.Extra.Clone()

	return &result
}

// IsEmpty reports whether the schema has no keywords at all. nil safe.
func (s *Schema) IsEmpty() bool {
	return s == nil || reflect.ValueOf(*s).IsZero()
}

// HasCombinators reports whether any of allOf, anyOf or oneOf is present.
func (s *Schema) HasCombinators() bool {
	return s != nil && (s.AllOf != nil || s.AnyOf != nil || s.OneOf != nil)
}

// WithoutCombinators returns a copy of the schema with allOf, anyOf and oneOf removed.
func (s *Schema) WithoutCombinators() *Schema {
	c := s.ShallowCopy()
	if c == nil {
		return nil
	}
	c.AllOf = nil
	c.AnyOf = nil
	c.OneOf = nil
	return c
}

// GetFormat returns the value of the Format field. Returns empty string if not set.
func (s *Schema) GetFormat() string {
	if s == nil || s.Format == nil {
		return ""
	}
	return *s.Format
}

// GetPattern returns the value of the Pattern field. Returns empty string if not set.
func (s *Schema) GetPattern() string {
	if s == nil || s.Pattern == nil {
		return ""
	}
	return *s.Pattern
}

// IsRequired reports whether name is listed in the required keyword.
func (s *Schema) IsRequired(name string) bool {
	return s != nil && slices.Contains(s.Required, name)
}
