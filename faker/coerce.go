package faker

import (
	"github.com/speakeasy-api/schemafaker/errors"
	"github.com/speakeasy-api/schemafaker/jsonschema"
)

// TypedSchema is a schema together with the non-empty set of kinds a value
// for it may take.
type TypedSchema struct {
	Schema *jsonschema.Schema
	Kinds  Kinds
}

// Coerce normalizes the declared type of a schema into a set of kinds.
//
// A missing or unrecognized type allows every kind. The set is then narrowed
// to what allOf members, the anyOf and oneOf alternatives, const and enum
// permit. The literal false schema, or narrowing down to nothing, is
// ErrUnsatisfiable.
func Coerce(js *jsonschema.JSONSchema) (*TypedSchema, error) {
	if js.IsFalse() {
		return nil, ErrUnsatisfiable.Wrap(errors.New("the false schema matches no value"))
	}

	s := js.AsSchema()
	kinds, err := coerceKinds(s)
	if err != nil {
		return nil, err
	}

	return &TypedSchema{Schema: s.ShallowCopy(), Kinds: kinds}, nil
}

func coerceKinds(s *jsonschema.Schema) (Kinds, error) {
	kinds := KindsFromTypes(s.Type)
	if len(kinds) == 0 {
		kinds = AllKinds()
	}

	for i, member := range s.AllOf {
		if member.IsFalse() {
			return nil, ErrUnsatisfiable.Wrapf("allOf[%d] is the false schema", i)
		}
		mk, err := coerceKinds(member.AsSchema())
		if err != nil {
			return nil, err
		}
		kinds = kinds.Intersect(mk)
	}

	if s.AnyOf != nil {
		kinds = kinds.Intersect(alternativeKinds(s.AnyOf))
	}
	if s.OneOf != nil {
		kinds = kinds.Intersect(alternativeKinds(s.OneOf))
	}

	if s.Const != nil {
		kinds = kinds.Intersect(KindsOfValue(s.Const.Value))
	}
	if s.Enum != nil {
		allowed := Kinds{}
		for _, v := range s.Enum {
			allowed = allowed.Union(KindsOfValue(v))
		}
		kinds = kinds.Intersect(allowed)
	}

	if len(kinds) == 0 {
		return nil, ErrUnsatisfiable.Wrap(errors.New("no kind satisfies type, allOf, anyOf, oneOf, const and enum together"))
	}
	return kinds, nil
}

// alternativeKinds returns the kinds at least one alternative can produce.
// Alternatives that can never match are ignored.
func alternativeKinds(members []*jsonschema.JSONSchema) Kinds {
	kinds := Kinds{}
	for _, m := range members {
		if mk, ok := memberKinds(m); ok {
			kinds = kinds.Union(mk)
		}
	}
	return kinds
}

func memberKinds(m *jsonschema.JSONSchema) (Kinds, bool) {
	if m.IsFalse() {
		return nil, false
	}
	kinds, err := coerceKinds(m.AsSchema())
	if err != nil {
		return nil, false
	}
	return kinds, true
}
