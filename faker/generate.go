package faker

import (
	"math"
	"unicode/utf8"

	"github.com/speakeasy-api/schemafaker/formats"
	"github.com/speakeasy-api/schemafaker/internal/regexgen"
	"github.com/speakeasy-api/schemafaker/jsonschema"
	"github.com/speakeasy-api/schemafaker/sequencedmap"
)

// generate produces a value from a conformed schema. Objects are returned as
// *sequencedmap.Map[string, any] so property order survives encoding.
func (s *session) generate(c Conformed) (any, error) {
	switch c := c.(type) {
	case NullSchema:
		return nil, nil
	case BooleanSchema:
		return s.r.IntN(2) == 1, nil
	case NumberSchema:
		return s.generateNumber(c), nil
	case StringSchema:
		return s.generateString(c)
	case ArraySchema:
		out := make([]any, len(c.Items))
		for i, item := range c.Items {
			v, err := s.generate(item)
			if err != nil {
				return nil, err
			}
			out[i] = v
		}
		return out, nil
	case ObjectSchema:
		out := sequencedmap.NewWithCapacity[string, any](c.Properties.Len())
		for name, prop := range c.Properties.All() {
			v, err := s.generate(prop)
			if err != nil {
				return nil, err
			}
			out.Set(name, v)
		}
		return out, nil
	case ConstSchema:
		return jsonschema.CloneValue(c.Value), nil
	case EnumSchema:
		return jsonschema.CloneValue(c.Values[s.r.IntN(len(c.Values))]), nil
	default:
		return nil, ErrUnknownKind.Wrapf("%T", c)
	}
}

// maxLengthAttempts is how many format or pattern strings are drawn before
// giving up on the length bounds.
const maxLengthAttempts = 50

// maxExactInteger is the largest width of an integer range whose members
// float64 still tells apart.
const maxExactInteger = 1 << 53

func (s *session) generateNumber(c NumberSchema) any {
	lo, hi := c.Minimum, c.Maximum
	f := s.r.Float64()
	if !c.Integer {
		return interpolate(lo, hi, f)
	}

	var v float64
	if width := hi - lo; width < maxExactInteger {
		v = min(lo+math.Floor(f*(width+1)), hi)
	} else {
		v = math.Floor(interpolate(lo, hi, f))
		v = max(v, lo)
	}

	// whole numbers outside the int64 range stay float64
	if v < math.MinInt64 || v >= math.MaxInt64 {
		return v
	}
	return int64(v)
}

// interpolate returns the point at f in [lo, hi] without computing hi-lo,
// which overflows for ranges spanning most of float64.
func interpolate(lo, hi, f float64) float64 {
	return min(max(lo*(1-f)+hi*f, lo), hi)
}

func (s *session) generateString(c StringSchema) (string, error) {
	var draw func() (string, bool, error)
	switch {
	case c.Format != "":
		provider, ok := s.formats.Lookup(c.Format)
		if !ok {
			return "", ErrUnknownFormat.Wrapf("%q", c.Format)
		}
		draw = func() (string, bool, error) { return provider(s.r), false, nil }
	case c.Pattern != "":
		draw = func() (string, bool, error) { return s.generatePattern(c.Pattern) }
	default:
		return formats.Text(s.r, between(s.r, c.MinLength, c.MaxLength)), nil
	}

	for range maxLengthAttempts {
		str, verbatim, err := draw()
		if err != nil {
			return "", err
		}
		if n := utf8.RuneCountInString(str); verbatim || n >= c.MinLength && n <= c.MaxLength {
			return str, nil
		}
	}
	return "", ErrUnsatisfiable.Wrapf("no string within length %d to %d after %d attempts (format %q, pattern %q)",
		c.MinLength, c.MaxLength, maxLengthAttempts, c.Format, c.Pattern)
}

// generatePattern returns a string matching pattern. A string from the
// unknown pattern hook is reported as verbatim.
func (s *session) generatePattern(pattern string) (string, bool, error) {
	str, err := regexgen.Generate(s.r, pattern)
	if err == nil {
		return str, false, nil
	}

	if s.patternHook == nil {
		return "", false, ErrPatternGeneration.Wrapf("pattern %q: %w", pattern, err)
	}

	s.logger.Debug("using unknown pattern hook", "pattern", pattern, "cause", err.Error())
	v := s.patternHook(pattern, err)
	str, ok := v.(string)
	if !ok {
		return "", false, ErrFallbackContract.Wrapf("hook returned %T for pattern %q", v, pattern)
	}
	return str, true, nil
}
