package faker

import (
	"math"
	"slices"

	"github.com/speakeasy-api/schemafaker/formats"
	"github.com/speakeasy-api/schemafaker/jsonschema"
)

// resolve runs a schema through coercion, kind selection, combinator
// resolution and conformance. Nested schemas re-enter here with depth+1.
func (s *session) resolve(js *jsonschema.JSONSchema, depth int) (Conformed, error) {
	ts, err := Coerce(js)
	if err != nil {
		return nil, err
	}

	kind := s.selectKind(ts, depth)

	merged, err := s.resolveCombinators(ts.Schema, kind)
	if err != nil {
		return nil, err
	}

	// "number" allows both kinds; bounds without a whole number in between
	// leave only decimal, whose branches are picked afresh
	if kind == KindInteger && ts.Kinds.Has(KindDecimal) && merged.Const == nil && merged.Enum == nil && !s.admitsInteger(merged) {
		s.logger.Debug("no integer within bounds, using decimal", "depth", depth)
		kind = KindDecimal
		if merged, err = s.resolveCombinators(ts.Schema, kind); err != nil {
			return nil, err
		}
	}

	return s.conform(kind, merged, depth)
}

func (s *session) conform(kind Kind, merged *jsonschema.Schema, depth int) (Conformed, error) {
	if merged == nil {
		merged = &jsonschema.Schema{}
	}

	if merged.Const != nil {
		return ConstSchema{kind: kind, Value: merged.Const.Value}, nil
	}
	if merged.Enum != nil {
		return conformEnum(kind, merged.Enum)
	}

	switch kind {
	case KindNull:
		return NullSchema{}, nil
	case KindBoolean:
		return BooleanSchema{}, nil
	case KindInteger, KindDecimal:
		return s.conformNumber(kind, merged)
	case KindString:
		return s.conformString(merged)
	case KindArray:
		return s.conformArray(merged, depth)
	case KindObject:
		return s.conformObject(merged, depth)
	default:
		return nil, ErrUnknownKind.Wrapf("%s", kind)
	}
}

func conformEnum(kind Kind, values []any) (Conformed, error) {
	matching := slices.DeleteFunc(slices.Clone(values), func(v any) bool {
		return !KindsOfValue(v).Has(kind)
	})
	if len(matching) == 0 {
		return nil, ErrUnsatisfiable.Wrapf("no enum value is a %s", kind)
	}
	return EnumSchema{kind: kind, Values: matching}, nil
}

func (s *session) conformNumber(kind Kind, merged *jsonschema.Schema) (Conformed, error) {
	lo, hi, err := s.numberBounds(merged)
	if err != nil {
		return nil, err
	}

	if kind == KindDecimal {
		return NumberSchema{Minimum: lo, Maximum: hi}, nil
	}

	ilo, ihi := math.Ceil(lo), math.Floor(hi)
	if ilo > ihi {
		return nil, ErrUnsatisfiable.Wrapf("no integer lies between minimum %v and maximum %v", lo, hi)
	}
	return NumberSchema{Integer: true, Minimum: ilo, Maximum: ihi}, nil
}

// numberBounds fills in missing bounds from the configuration. A single
// bound is widened by NumberRange.
func (s *session) numberBounds(merged *jsonschema.Schema) (float64, float64, error) {
	switch {
	case merged.Minimum != nil && merged.Maximum != nil:
		lo, hi := *merged.Minimum, *merged.Maximum
		if lo > hi {
			return 0, 0, ErrUnsatisfiable.Wrapf("minimum %v exceeds maximum %v", lo, hi)
		}
		return lo, hi, nil
	case merged.Minimum != nil:
		return *merged.Minimum, *merged.Minimum + s.cfg.NumberRange, nil
	case merged.Maximum != nil:
		return *merged.Maximum - s.cfg.NumberRange, *merged.Maximum, nil
	default:
		return s.cfg.Minimum, s.cfg.Maximum, nil
	}
}

// admitsInteger reports whether the numeric bounds of merged leave room for
// a whole number.
func (s *session) admitsInteger(merged *jsonschema.Schema) bool {
	lo, hi, err := s.numberBounds(merged)
	return err != nil || math.Ceil(lo) <= math.Floor(hi)
}

func (s *session) conformString(merged *jsonschema.Schema) (Conformed, error) {
	lo, hi := s.cfg.MinLength, s.cfg.MinLength+s.cfg.LengthRange

	switch {
	case merged.MinLength != nil && merged.MaxLength != nil:
		lo, hi = int(*merged.MinLength), int(*merged.MaxLength)
		if lo > hi {
			return nil, ErrUnsatisfiable.Wrapf("minLength %d exceeds maxLength %d", lo, hi)
		}
	case merged.MinLength != nil:
		lo = int(*merged.MinLength)
		hi = lo + s.cfg.LengthRange
	case merged.MaxLength != nil:
		hi = int(*merged.MaxLength)
		lo = min(lo, hi)
	}

	c := StringSchema{MinLength: lo, MaxLength: hi, Pattern: merged.GetPattern()}
	if format := merged.GetFormat(); formats.IsRecognized(format) {
		c.Format = format
	}

	// formats and patterns bring their own lengths; only declared bounds apply
	if c.Format != "" || c.Pattern != "" {
		c.MinLength, c.MaxLength = 0, math.MaxInt
		if merged.MinLength != nil {
			c.MinLength = int(*merged.MinLength)
		}
		if merged.MaxLength != nil {
			c.MaxLength = int(*merged.MaxLength)
		}
	}
	return c, nil
}

// defaultSchema is used for array items and object properties the schema
// leaves unconstrained.
func defaultSchema() *jsonschema.JSONSchema {
	return jsonschema.FromSchema(&jsonschema.Schema{
		Type: jsonschema.NewTypes(
			jsonschema.SchemaTypeNull,
			jsonschema.SchemaTypeBoolean,
			jsonschema.SchemaTypeInteger,
			jsonschema.SchemaTypeNumber,
			jsonschema.SchemaTypeString,
		),
	})
}
