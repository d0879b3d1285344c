package jsonschema

import "slices"

// SchemaType is a name accepted by the type keyword. Names outside the
// constants below are carried as-is so callers can decide how to treat them.
type SchemaType string

const (
	SchemaTypeArray   SchemaType = "array"
	SchemaTypeBoolean SchemaType = "boolean"
	SchemaTypeInteger SchemaType = "integer"
	SchemaTypeNumber  SchemaType = "number"
	SchemaTypeNull    SchemaType = "null"
	SchemaTypeObject  SchemaType = "object"
	SchemaTypeString  SchemaType = "string"
)

// Types is the value of the type keyword, either a single type or a list of types.
// A nil Types means the keyword is absent.
type Types []SchemaType

// NewTypes creates a Types value from the provided type names.
func NewTypes(types ...SchemaType) Types {
	return Types(slices.Clone(types))
}

// Has reports whether t contains typ.
func (t Types) Has(typ SchemaType) bool {
	return slices.Contains(t, typ)
}

// Items is the value of the items keyword, either a single schema applied to
// every element or a tuple of positional schemas.
type Items struct {
	Schema *JSONSchema
	Tuple  []*JSONSchema
}

// NewItems creates a uniform items value.
func NewItems(schema *JSONSchema) *Items {
	return &Items{Schema: schema}
}

// NewTupleItems creates a positional items value.
func NewTupleItems(schemas ...*JSONSchema) *Items {
	if schemas == nil {
		schemas = []*JSONSchema{}
	}
	return &Items{Tuple: schemas}
}

// IsTuple reports whether the items keyword was given as a list.
func (i *Items) IsTuple() bool {
	return i != nil && i.Schema == nil && i.Tuple != nil
}

// Literal carries the value of the const keyword. A nil *Literal means const
// is absent while a Literal holding nil is the JSON null.
type Literal struct {
	Value any
}

// NewLiteral wraps a value for use as const.
func NewLiteral(v any) *Literal {
	return &Literal{Value: v}
}
