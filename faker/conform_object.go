package faker

import (
	"fmt"
	"slices"

	"github.com/speakeasy-api/schemafaker/formats"
	"github.com/speakeasy-api/schemafaker/internal/check"
	"github.com/speakeasy-api/schemafaker/jsonschema"
	"github.com/speakeasy-api/schemafaker/sequencedmap"
)

// maxNameAttempts is how many consecutive unusable names are drawn before
// property name synthesis gives up.
const maxNameAttempts = 100

// PseudoObject is the working structure an object schema is conformed from.
type PseudoObject struct {
	// Properties maps every declared or required name to its schema. Declared
	// schemas are conjoined with the patternProperties matching their name.
	Properties *sequencedmap.Map[string, *jsonschema.JSONSchema]
	// Required lists the names every generated object contains, in order.
	Required []string
	// Optional is the shuffled pool of declared names that are not required.
	Optional          []string
	PatternProperties *sequencedmap.Map[string, *jsonschema.JSONSchema]
	PropertyNames     *jsonschema.JSONSchema
	// Additional is the schema of synthesized properties, nil when they are forbidden.
	Additional    *jsonschema.JSONSchema
	MinProperties int
	MaxProperties int

	allowsName func(name string) bool
}

func (s *session) buildPseudoObject(merged *jsonschema.Schema, depth int) (*PseudoObject, error) {
	p := &PseudoObject{
		Properties:        sequencedmap.New[string, *jsonschema.JSONSchema](),
		PatternProperties: merged.PatternProperties,
		PropertyNames:     merged.PropertyNames,
		Additional:        defaultSchema(),
		allowsName:        s.nameFilter(merged.PropertyNames),
	}
	if merged.AdditionalProperties != nil {
		p.Additional = merged.AdditionalProperties
	}
	namesForbidden := merged.PropertyNames.IsFalse()
	if p.Additional.IsFalse() || namesForbidden {
		p.Additional = nil
	}

	if merged.MinProperties != nil && merged.MaxProperties != nil && *merged.MinProperties > *merged.MaxProperties {
		return nil, ErrUnsatisfiable.Wrapf("minProperties %d exceeds maxProperties %d", *merged.MinProperties, *merged.MaxProperties)
	}

	for name, js := range merged.Properties.All() {
		matched, err := matchingPatterns(merged.PatternProperties, name)
		if err != nil {
			return nil, err
		}
		js = conjoin(append([]*jsonschema.JSONSchema{js}, matched...)...)
		if !p.allowsName(name) {
			js = jsonschema.False()
		}
		p.Properties.Set(name, js)
	}

	for _, name := range merged.Required {
		if slices.Contains(p.Required, name) {
			continue
		}
		if !p.allowsName(name) {
			return nil, ErrUnsatisfiable.Wrapf("required property %q is rejected by propertyNames", name)
		}

		js, ok := p.Properties.Get(name)
		if !ok {
			var err error
			if js, err = schemaForName(merged.PatternProperties, p.Additional, name); err != nil {
				return nil, err
			}
			if js == nil {
				return nil, ErrUnsatisfiable.Wrapf("required property %q has no schema and additionalProperties is false", name)
			}
			p.Properties.Set(name, js)
		}
		if js.IsFalse() {
			return nil, ErrUnsatisfiable.Wrapf("required property %q can never be valid", name)
		}
		p.Required = append(p.Required, name)
	}

	declared := 0
	for name, js := range p.Properties.All() {
		if js.IsFalse() {
			continue
		}
		declared++
		if !slices.Contains(p.Required, name) {
			p.Optional = append(p.Optional, name)
		}
	}
	s.r.Shuffle(len(p.Optional), func(i, j int) {
		p.Optional[i], p.Optional[j] = p.Optional[j], p.Optional[i]
	})

	capacity := -1
	if p.Additional == nil {
		capacity = declared
	}

	required := len(p.Required)
	lo := s.cfg.MinProperties
	if merged.MinProperties != nil {
		lo = int(*merged.MinProperties)
		if capacity >= 0 && lo > capacity {
			return nil, ErrUnsatisfiable.Wrapf("minProperties %d exceeds the %d properties allowed when additionalProperties is false", lo, capacity)
		}
	}
	lo = max(lo, required)

	var hi int
	switch {
	case merged.MaxProperties != nil:
		hi = int(*merged.MaxProperties)
		if hi < required {
			return nil, ErrUnsatisfiable.Wrapf("maxProperties %d is below the %d required properties", hi, required)
		}
	case declared > 0:
		hi = max(lo, declared+s.cfg.AdditionalPropertiesRange)
	default:
		hi = lo + s.cfg.PropertiesRange
	}

	if capacity >= 0 {
		hi = min(hi, capacity)
	}
	lo = min(lo, hi)
	if depth >= s.cfg.MaxDepth {
		hi = lo
	}

	p.MinProperties, p.MaxProperties = lo, hi
	return p, nil
}

func (s *session) conformObject(merged *jsonschema.Schema, depth int) (Conformed, error) {
	p, err := s.buildPseudoObject(merged, depth)
	if err != nil {
		return nil, err
	}

	size := between(s.r, p.MinProperties, p.MaxProperties)
	s.logger.Debug("object size", "size", size, "minProperties", p.MinProperties, "maxProperties", p.MaxProperties, "depth", depth)

	names := slices.Clone(p.Required)
	schemas := p.Properties.Clone()
	pool := p.Optional

	for attempts := 0; len(names) < size; {
		if len(pool) > 0 && (p.Additional == nil || chance(s.r, s.cfg.OptionalPropertyProbability)) {
			names = append(names, pool[0])
			pool = pool[1:]
			continue
		}
		if p.Additional == nil {
			break
		}

		if attempts >= maxNameAttempts {
			return nil, ErrPropertyNameExhausted.Wrapf("gave up after %d attempts with %d of %d properties", attempts, len(names), size)
		}

		name, err := s.synthesizeName(p, attempts, depth)
		if err != nil {
			return nil, err
		}
		if schemas.Has(name) || !p.allowsName(name) {
			attempts++
			continue
		}

		js, err := schemaForName(p.PatternProperties, p.Additional, name)
		if err != nil {
			return nil, err
		}
		if js.IsFalse() {
			attempts++
			continue
		}

		attempts = 0
		names = append(names, name)
		schemas.Set(name, js)
	}

	properties := sequencedmap.NewWithCapacity[string, Conformed](len(names))
	for _, name := range names {
		c, err := s.resolve(schemas.GetOrZero(name), depth+1)
		if err != nil {
			return nil, err
		}
		properties.Set(name, c)
	}
	return ObjectSchema{Properties: properties}, nil
}

// nameFilter reports whether a property name satisfies propertyNames.
// A schema the validator cannot compile filters nothing.
func (s *session) nameFilter(names *jsonschema.JSONSchema) func(string) bool {
	switch {
	case names == nil || names.IsTrue():
		return func(string) bool { return true }
	case names.IsFalse():
		return func(string) bool { return false }
	}

	v, err := check.Compile(names)
	if err != nil {
		s.logger.Debug("propertyNames not checked", "cause", err.Error())
		return func(string) bool { return true }
	}
	return func(name string) bool { return len(v.Validate(name)) == 0 }
}

// synthesizeName draws a name for an additional property, from the
// propertyNames schema when one constrains names.
func (s *session) synthesizeName(p *PseudoObject, attempts, depth int) (string, error) {
	if p.PropertyNames == nil || p.PropertyNames.IsTrue() {
		name := formats.Word(s.r)
		if attempts > 0 {
			name = fmt.Sprintf("%s%d", name, s.r.IntN(1000))
		}
		return name, nil
	}

	js := conjoin(p.PropertyNames, jsonschema.FromSchema(&jsonschema.Schema{
		Type: jsonschema.NewTypes(jsonschema.SchemaTypeString),
	}))
	c, err := s.resolve(js, depth+1)
	if err != nil {
		return "", err
	}
	v, err := s.generate(c)
	if err != nil {
		return "", err
	}
	name, ok := v.(string)
	if !ok {
		return "", ErrUnsatisfiable.Wrapf("propertyNames produced a %T instead of a string", v)
	}
	return name, nil
}
