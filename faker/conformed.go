package faker

import (
	"github.com/speakeasy-api/schemafaker/sequencedmap"
)

// Conformed is a schema resolved to a single kind with every keyword the
// generator needs populated. The set of implementations is closed.
type Conformed interface {
	Kind() Kind
	conformed()
}

// NullSchema generates null.
type NullSchema struct{}

// BooleanSchema generates true or false.
type BooleanSchema struct{}

// NumberSchema generates a number within [Minimum, Maximum]. Integer schemas
// have whole bounds.
type NumberSchema struct {
	Integer bool
	Minimum float64
	Maximum float64
}

// StringSchema generates a string. Format takes precedence over Pattern.
// Format and pattern strings are redrawn until they fall within the length
// bounds.
type StringSchema struct {
	MinLength int
	MaxLength int
	Format    string
	Pattern   string
}

// ArraySchema generates an array with one element per item, in order.
type ArraySchema struct {
	Items []Conformed
}

// ObjectSchema generates an object with one member per property, in order.
type ObjectSchema struct {
	Properties *sequencedmap.Map[string, Conformed]
}

// ConstSchema generates exactly Value.
type ConstSchema struct {
	kind  Kind
	Value any
}

// EnumSchema generates one of Values, each of which is of the schema's kind.
type EnumSchema struct {
	kind   Kind
	Values []any
}

func (NullSchema) Kind() Kind    { return KindNull }
func (BooleanSchema) Kind() Kind { return KindBoolean }
func (StringSchema) Kind() Kind  { return KindString }
func (ArraySchema) Kind() Kind   { return KindArray }
func (ObjectSchema) Kind() Kind  { return KindObject }
func (c ConstSchema) Kind() Kind { return c.kind }
func (e EnumSchema) Kind() Kind  { return e.kind }

func (n NumberSchema) Kind() Kind {
	if n.Integer {
		return KindInteger
	}
	return KindDecimal
}

func (NullSchema) conformed()    {}
func (BooleanSchema) conformed() {}
func (NumberSchema) conformed()  {}
func (StringSchema) conformed()  {}
func (ArraySchema) conformed()   {}
func (ObjectSchema) conformed()  {}
func (ConstSchema) conformed()   {}
func (EnumSchema) conformed()    {}
