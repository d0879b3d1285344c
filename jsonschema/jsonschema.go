package jsonschema

// JSONSchema is either a full Schema or one of the literal schemas true
// (matches anything) and false (matches nothing).
type JSONSchema struct {
	schema  *Schema
	boolean *bool
}

// FromSchema wraps a schema object.
func FromSchema(s *Schema) *JSONSchema {
	if s == nil {
		s = &Schema{}
	}
	return &JSONSchema{schema: s}
}

// FromBool creates one of the literal schemas.
func FromBool(b bool) *JSONSchema {
	return &JSONSchema{boolean: &b}
}

// True returns the literal schema that matches anything.
func True() *JSONSchema {
	return FromBool(true)
}

// False returns the literal schema that matches nothing.
func False() *JSONSchema {
	return FromBool(false)
}

// IsBool reports whether j is a literal true/false schema.
func (j *JSONSchema) IsBool() bool {
	return j != nil && j.boolean != nil
}

// IsTrue reports whether j is the literal true schema.
func (j *JSONSchema) IsTrue() bool {
	return j.IsBool() && *j.boolean
}

// IsFalse reports whether j is the literal false schema.
func (j *JSONSchema) IsFalse() bool {
	return j.IsBool() && !*j.boolean
}

// GetSchema returns the wrapped schema object or nil for literal schemas.
func (j *JSONSchema) GetSchema() *Schema {
	if j == nil {
		return nil
	}
	return j.schema
}

// AsSchema returns the schema object equivalent of j. The literal true schema
// becomes an empty schema; the literal false schema has no equivalent and
// returns nil.
func (j *JSONSchema) AsSchema() *Schema {
	switch {
	case j == nil || j.IsTrue():
		return &Schema{}
	case j.IsFalse():
		return nil
	default:
		return j.schema
	}
}
