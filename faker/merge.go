package faker

import (
	"cmp"
	"slices"

	"github.com/speakeasy-api/schemafaker/jsonschema"
	"github.com/speakeasy-api/schemafaker/sequencedmap"
)

// Merge folds b into a and returns a new schema a value must satisfy to
// satisfy both, as far as generation is concerned. Lower bounds take the
// larger value, upper bounds the smaller, required names are united and
// sub-schemas present on both sides are conjoined. const, enum, format and
// pattern are taken from b when it sets them. Neither input is modified.
func Merge(a, b *jsonschema.Schema) *jsonschema.Schema {
	switch {
	case a == nil:
		return b.ShallowCopy()
	case b == nil:
		return a.ShallowCopy()
	}

	out := a.ShallowCopy()

	if out.Type == nil {
		out.Type = slices.Clone(b.Type)
	}

	out.AllOf = append(out.AllOf, b.AllOf...)
	out.AnyOf = mergeAlternatives(out, out.AnyOf, b.AnyOf, func(s *jsonschema.Schema, m []*jsonschema.JSONSchema) { s.AnyOf = m })
	out.OneOf = mergeAlternatives(out, out.OneOf, b.OneOf, func(s *jsonschema.Schema, m []*jsonschema.JSONSchema) { s.OneOf = m })

	if b.Const != nil {
		out.Const = b.Const
	}
	if b.Enum != nil {
		out.Enum = slices.Clone(b.Enum)
	}
	if b.Format != nil {
		out.Format = b.Format
	}
	if b.Pattern != nil {
		out.Pattern = b.Pattern
	}

	out.Minimum = greater(a.Minimum, b.Minimum)
	out.Maximum = lesser(a.Maximum, b.Maximum)
	out.MinLength = greater(a.MinLength, b.MinLength)
	out.MaxLength = lesser(a.MaxLength, b.MaxLength)
	out.MinItems = greater(a.MinItems, b.MinItems)
	out.MaxItems = lesser(a.MaxItems, b.MaxItems)
	out.MinProperties = greater(a.MinProperties, b.MinProperties)
	out.MaxProperties = lesser(a.MaxProperties, b.MaxProperties)

	out.Items, out.AdditionalItems = mergeItems(a, b)

	for _, name := range b.Required {
		if !slices.Contains(out.Required, name) {
			out.Required = append(out.Required, name)
		}
	}

	out.Properties = mergeProperties(a, b)
	out.PatternProperties = mergeSchemaMaps(a.PatternProperties, b.PatternProperties)
	out.PropertyNames = conjoin(a.PropertyNames, b.PropertyNames)
	out.AdditionalProperties = conjoin(a.AdditionalProperties, b.AdditionalProperties)

	if b.Extra != nil {
		if out.Extra == nil {
			out.Extra = sequencedmap.New[string, any]()
		}
		for k, v := range b.Extra.All() {
			out.Extra.Set(k, v)
		}
	}

	return out
}

// conjoin returns a schema satisfied only by values satisfying every given
// schema. nil, true and {} are neutral, false absorbs everything.
func conjoin(schemas ...*jsonschema.JSONSchema) *jsonschema.JSONSchema {
	var parts []*jsonschema.JSONSchema
	for _, js := range schemas {
		switch {
		case js.IsFalse():
			return js
		case js == nil || js.IsTrue() || js.GetSchema().IsEmpty():
			continue
		}
		parts = append(parts, js)
	}

	switch len(parts) {
	case 0:
		for _, js := range schemas {
			if js != nil {
				return js
			}
		}
		return nil
	case 1:
		return parts[0]
	default:
		return jsonschema.FromSchema(&jsonschema.Schema{AllOf: parts})
	}
}

// mergeAlternatives keeps a single anyOf/oneOf list on the merged schema and
// moves a second one into allOf so both disjunctions still apply.
func mergeAlternatives(out *jsonschema.Schema, a, b []*jsonschema.JSONSchema, set func(*jsonschema.Schema, []*jsonschema.JSONSchema)) []*jsonschema.JSONSchema {
	switch {
	case b == nil:
		return a
	case a == nil:
		return slices.Clone(b)
	}

	wrapper := &jsonschema.Schema{}
	set(wrapper, slices.Clone(b))
	out.AllOf = append(out.AllOf, jsonschema.FromSchema(wrapper))
	return a
}

func mergeItems(a, b *jsonschema.Schema) (*jsonschema.Items, *jsonschema.JSONSchema) {
	// additionalItems only has meaning next to a tuple
	additional := func(s *jsonschema.Schema) *jsonschema.JSONSchema {
		if s.Items.IsTuple() {
			return s.AdditionalItems
		}
		return nil
	}

	switch {
	case a.Items == nil && b.Items == nil:
		return nil, conjoin(a.AdditionalItems, b.AdditionalItems)
	case b.Items == nil:
		return a.Items, additional(a)
	case a.Items == nil:
		return b.Items, additional(b)
	case !a.Items.IsTuple() && !b.Items.IsTuple():
		return jsonschema.NewItems(conjoin(a.Items.Schema, b.Items.Schema)), nil
	case a.Items.IsTuple() && b.Items.IsTuple():
		return mergeTuples(a.Items.Tuple, additional(a), b.Items.Tuple, additional(b))
	case a.Items.IsTuple():
		return conjoinTuple(a.Items.Tuple, additional(a), b.Items.Schema, false)
	default:
		return conjoinTuple(b.Items.Tuple, additional(b), a.Items.Schema, true)
	}
}

func mergeTuples(a []*jsonschema.JSONSchema, aAdditional *jsonschema.JSONSchema, b []*jsonschema.JSONSchema, bAdditional *jsonschema.JSONSchema) (*jsonschema.Items, *jsonschema.JSONSchema) {
	tuple := make([]*jsonschema.JSONSchema, max(len(a), len(b)))
	for i := range tuple {
		switch {
		case i < len(a) && i < len(b):
			tuple[i] = conjoin(a[i], b[i])
		case i < len(a):
			tuple[i] = conjoin(a[i], bAdditional)
		default:
			tuple[i] = conjoin(aAdditional, b[i])
		}
		if tuple[i] == nil {
			tuple[i] = jsonschema.True()
		}
	}
	return jsonschema.NewTupleItems(tuple...), conjoin(aAdditional, bAdditional)
}

// conjoinTuple applies a uniform items schema to every tuple slot and to the
// items past the tuple.
func conjoinTuple(tuple []*jsonschema.JSONSchema, additional, uniform *jsonschema.JSONSchema, uniformFirst bool) (*jsonschema.Items, *jsonschema.JSONSchema) {
	both := func(slot *jsonschema.JSONSchema) *jsonschema.JSONSchema {
		if uniformFirst {
			return conjoin(uniform, slot)
		}
		return conjoin(slot, uniform)
	}

	out := make([]*jsonschema.JSONSchema, len(tuple))
	for i, slot := range tuple {
		out[i] = both(slot)
	}

	additional = both(additional)
	if additional == nil {
		additional = uniform
	}
	return jsonschema.NewTupleItems(out...), additional
}

// mergeProperties unites declared properties. A property declared on one
// side only must also satisfy whatever the other side requires of
// undeclared names.
func mergeProperties(a, b *jsonschema.Schema) *sequencedmap.Map[string, *jsonschema.JSONSchema] {
	if a.Properties == nil && b.Properties == nil {
		return nil
	}

	out := sequencedmap.NewWithCapacity[string, *jsonschema.JSONSchema](a.Properties.Len() + b.Properties.Len())
	for name, js := range a.Properties.All() {
		if other, ok := b.Properties.Get(name); ok {
			out.Set(name, conjoin(js, other))
			continue
		}
		out.Set(name, conjoin(js, undeclared(b, name)))
	}
	for name, js := range b.Properties.All() {
		if !out.Has(name) {
			out.Set(name, conjoin(undeclared(a, name), js))
		}
	}
	return out
}

// undeclared returns the constraint s places on a property it does not
// declare. Patterns that do not compile are skipped here and reported when
// the merged schema is conformed.
func undeclared(s *jsonschema.Schema, name string) *jsonschema.JSONSchema {
	js, err := schemaForName(s.PatternProperties, s.AdditionalProperties, name)
	if err != nil {
		return nil
	}
	return js
}

func mergeSchemaMaps(a, b *sequencedmap.Map[string, *jsonschema.JSONSchema]) *sequencedmap.Map[string, *jsonschema.JSONSchema] {
	if a == nil && b == nil {
		return nil
	}

	out := a.Clone()
	if out == nil {
		out = sequencedmap.New[string, *jsonschema.JSONSchema]()
	}
	for k, js := range b.All() {
		out.Set(k, conjoin(out.GetOrZero(k), js))
	}
	return out
}

func greater[T cmp.Ordered](a, b *T) *T {
	switch {
	case a == nil:
		return b
	case b == nil:
		return a
	}
	v := max(*a, *b)
	return &v
}

func lesser[T cmp.Ordered](a, b *T) *T {
	switch {
	case a == nil:
		return b
	case b == nil:
		return a
	}
	v := min(*a, *b)
	return &v
}
