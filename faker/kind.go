package faker

import (
	"slices"

	"github.com/speakeasy-api/schemafaker/jsonschema"
)

// Kind is one of the concrete value categories the generator produces.
type Kind int

const (
	KindNull Kind = iota
	KindString
	KindInteger
	// KindDecimal is a number that is not necessarily a whole number.
	KindDecimal
	KindBoolean
	KindArray
	KindObject
)

var kindNames = [...]string{
	KindNull:    "null",
	KindString:  "string",
	KindInteger: "integer",
	KindDecimal: "decimal",
	KindBoolean: "boolean",
	KindArray:   "array",
	KindObject:  "object",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return "unknown"
	}
	return kindNames[k]
}

// Valid reports whether k is part of the fixed kind vocabulary.
func (k Kind) Valid() bool {
	return k >= KindNull && k <= KindObject
}

// IsScalar reports whether values of this kind have no children.
func (k Kind) IsScalar() bool {
	return k != KindArray && k != KindObject
}

// SchemaType returns the JSON Schema type name for the kind.
func (k Kind) SchemaType() jsonschema.SchemaType {
	switch k {
	case KindNull:
		return jsonschema.SchemaTypeNull
	case KindString:
		return jsonschema.SchemaTypeString
	case KindInteger:
		return jsonschema.SchemaTypeInteger
	case KindDecimal:
		return jsonschema.SchemaTypeNumber
	case KindBoolean:
		return jsonschema.SchemaTypeBoolean
	case KindArray:
		return jsonschema.SchemaTypeArray
	case KindObject:
		return jsonschema.SchemaTypeObject
	default:
		return ""
	}
}

// Kinds is an ordered set of kinds.
type Kinds []Kind

// AllKinds returns every supported kind.
func AllKinds() Kinds {
	return Kinds{KindNull, KindString, KindInteger, KindDecimal, KindBoolean, KindArray, KindObject}
}

// Has reports whether k is in the set.
func (ks Kinds) Has(k Kind) bool {
	return slices.Contains(ks, k)
}

// Intersect returns the kinds present in both sets, in the order of ks.
func (ks Kinds) Intersect(other Kinds) Kinds {
	out := Kinds{}
	for _, k := range ks {
		if other.Has(k) {
			out = append(out, k)
		}
	}
	return out
}

// Union returns ks followed by the kinds of other not already present.
func (ks Kinds) Union(other Kinds) Kinds {
	out := slices.Clone(ks)
	for _, k := range other {
		if !out.Has(k) {
			out = append(out, k)
		}
	}
	return out
}

// Scalars returns the scalar kinds of the set.
func (ks Kinds) Scalars() Kinds {
	out := Kinds{}
	for _, k := range ks {
		if k.IsScalar() {
			out = append(out, k)
		}
	}
	return out
}

// KindsFromTypes normalizes declared type names into kinds. Unsupported
// names are dropped and duplicates removed. "number" expands to decimal and
// integer, unless integer was declared as well in which case it only adds
// decimal.
func KindsFromTypes(types jsonschema.Types) Kinds {
	out := Kinds{}
	add := func(k Kind) {
		if !out.Has(k) {
			out = append(out, k)
		}
	}

	for _, t := range types {
		switch t {
		case jsonschema.SchemaTypeNull:
			add(KindNull)
		case jsonschema.SchemaTypeString:
			add(KindString)
		case jsonschema.SchemaTypeInteger:
			add(KindInteger)
		case jsonschema.SchemaTypeNumber:
			add(KindDecimal)
			if !types.Has(jsonschema.SchemaTypeInteger) {
				add(KindInteger)
			}
		case jsonschema.SchemaTypeBoolean:
			add(KindBoolean)
		case jsonschema.SchemaTypeArray:
			add(KindArray)
		case jsonschema.SchemaTypeObject:
			add(KindObject)
		}
	}

	return out
}

// KindsOfValue reports the kinds a literal value belongs to. A whole number
// is both integer and decimal, any other number only decimal.
func KindsOfValue(v any) Kinds {
	types := jsonschema.ValueTypes(v)
	if types.Has(jsonschema.SchemaTypeNumber) && !types.Has(jsonschema.SchemaTypeInteger) {
		return Kinds{KindDecimal}
	}
	return KindsFromTypes(types)
}
