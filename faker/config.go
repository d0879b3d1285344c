package faker

import (
	"fmt"
	"math"
	"slices"
	"sort"

	"github.com/speakeasy-api/schemafaker/errors"
	"github.com/speakeasy-api/schemafaker/jsonschema"
)

// Config holds the numeric tunables of a generator. It is read-only once the
// generator is constructed.
type Config struct {
	// Minimum and Maximum bound numbers whose schema declares neither bound.
	Minimum float64 `yaml:"minimum"`
	Maximum float64 `yaml:"maximum"`
	// NumberRange derives the missing bound when only one is declared.
	NumberRange float64 `yaml:"numberRange"`

	MinLength   int `yaml:"minLength"`
	LengthRange int `yaml:"lengthRange"`

	MinItems int `yaml:"minItems"`
	// ItemsRange is the extra length allowed for uniform arrays.
	ItemsRange int `yaml:"itemsRange"`
	// AdditionalItemsRange is how many items past the tuple a tuple array may grow.
	AdditionalItemsRange int `yaml:"additionalItemsRange"`

	MinProperties int `yaml:"minProperties"`
	// PropertiesRange is the extra size allowed for objects without declared properties.
	PropertiesRange int `yaml:"propertiesRange"`
	// AdditionalPropertiesRange is how many properties past the declared ones an object may grow.
	AdditionalPropertiesRange int `yaml:"additionalPropertiesRange"`

	// OptionalPropertyProbability is the chance of filling an object slot with a
	// declared optional property instead of a synthesized additional one.
	OptionalPropertyProbability float64 `yaml:"optionalPropertyProbability"`
	// AnyOfProbability is the chance of honoring each anyOf branch beyond the first.
	AnyOfProbability float64 `yaml:"anyOfProbability"`

	// MaxDepth is the nesting depth past which free-form schemas stick to scalar
	// kinds and arrays/objects use their minimum size.
	MaxDepth int `yaml:"maxDepth"`
}

// DefaultConfig returns the configuration used when no overrides are given.
func DefaultConfig() Config {
	return Config{
		Minimum:                     -10000,
		Maximum:                     10000,
		NumberRange:                 1000,
		MinLength:                   3,
		LengthRange:                 12,
		MinItems:                    0,
		ItemsRange:                  5,
		AdditionalItemsRange:        3,
		MinProperties:               0,
		PropertiesRange:             5,
		AdditionalPropertiesRange:   3,
		OptionalPropertyProbability: 0.75,
		AnyOfProbability:            0.5,
		MaxDepth:                    6,
	}
}

type configKey struct {
	name string
	set  func(c *Config, v any) error
}

var configKeys = []configKey{
	{"minimum", floatSetter(func(c *Config) *float64 { return &c.Minimum })},
	{"maximum", floatSetter(func(c *Config) *float64 { return &c.Maximum })},
	{"numberRange", floatSetter(func(c *Config) *float64 { return &c.NumberRange })},
	{"minLength", intSetter(func(c *Config) *int { return &c.MinLength })},
	{"lengthRange", intSetter(func(c *Config) *int { return &c.LengthRange })},
	{"minItems", intSetter(func(c *Config) *int { return &c.MinItems })},
	{"itemsRange", intSetter(func(c *Config) *int { return &c.ItemsRange })},
	{"additionalItemsRange", intSetter(func(c *Config) *int { return &c.AdditionalItemsRange })},
	{"minProperties", intSetter(func(c *Config) *int { return &c.MinProperties })},
	{"propertiesRange", intSetter(func(c *Config) *int { return &c.PropertiesRange })},
	{"additionalPropertiesRange", intSetter(func(c *Config) *int { return &c.AdditionalPropertiesRange })},
	{"optionalPropertyProbability", floatSetter(func(c *Config) *float64 { return &c.OptionalPropertyProbability })},
	{"anyOfProbability", floatSetter(func(c *Config) *float64 { return &c.AnyOfProbability })},
	{"maxDepth", intSetter(func(c *Config) *int { return &c.MaxDepth })},
}

// ConfigKeys returns the names accepted by ConfigFromMap.
func ConfigKeys() []string {
	names := make([]string, len(configKeys))
	for i, k := range configKeys {
		names[i] = k.name
	}
	return names
}

// ConfigFromMap overlays the named options onto DefaultConfig and validates
// the result. Unknown names, values of the wrong type and out of range values
// are all reported together in a single ErrInvalidConfig.
func ConfigFromMap(values map[string]any) (Config, error) {
	cfg := DefaultConfig()

	names := make([]string, 0, len(values))
	for name := range values {
		names = append(names, name)
	}
	sort.Strings(names)

	var errs []error
	for _, name := range names {
		i := slices.IndexFunc(configKeys, func(k configKey) bool { return k.name == name })
		if i < 0 {
			errs = append(errs, fmt.Errorf("unknown option %q", name))
			continue
		}
		if err := configKeys[i].set(&cfg, values[name]); err != nil {
			errs = append(errs, fmt.Errorf("option %q: %w", name, err))
		}
	}
	if len(errs) > 0 {
		return cfg, ErrInvalidConfig.Wrap(errors.Join(errs...))
	}

	return cfg, cfg.Validate()
}

// Validate checks every option and reports all out of range values at once.
func (c Config) Validate() error {
	var errs []error
	nonNegative := func(name string, v int) {
		if v < 0 {
			errs = append(errs, fmt.Errorf("option %q must not be negative, got %d", name, v))
		}
	}
	probability := func(name string, v float64) {
		if math.IsNaN(v) || v < 0 || v > 1 {
			errs = append(errs, fmt.Errorf("option %q must be within [0, 1], got %v", name, v))
		}
	}
	finite := func(name string, v float64) {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			errs = append(errs, fmt.Errorf("option %q must be a finite number, got %v", name, v))
		}
	}

	finite("minimum", c.Minimum)
	finite("maximum", c.Maximum)
	finite("numberRange", c.NumberRange)
	if c.Minimum > c.Maximum {
		errs = append(errs, fmt.Errorf("option \"minimum\" (%v) must not exceed \"maximum\" (%v)", c.Minimum, c.Maximum))
	}
	if !(c.NumberRange > 0) {
		errs = append(errs, fmt.Errorf("option \"numberRange\" must be positive, got %v", c.NumberRange))
	}

	nonNegative("minLength", c.MinLength)
	nonNegative("lengthRange", c.LengthRange)
	nonNegative("minItems", c.MinItems)
	nonNegative("itemsRange", c.ItemsRange)
	nonNegative("additionalItemsRange", c.AdditionalItemsRange)
	nonNegative("minProperties", c.MinProperties)
	nonNegative("propertiesRange", c.PropertiesRange)
	nonNegative("additionalPropertiesRange", c.AdditionalPropertiesRange)

	probability("optionalPropertyProbability", c.OptionalPropertyProbability)
	probability("anyOfProbability", c.AnyOfProbability)

	if c.MaxDepth < 1 {
		errs = append(errs, fmt.Errorf("option \"maxDepth\" must be at least 1, got %d", c.MaxDepth))
	}

	if len(errs) > 0 {
		return ErrInvalidConfig.Wrap(errors.Join(errs...))
	}
	return nil
}

func floatSetter(field func(c *Config) *float64) func(c *Config, v any) error {
	return func(c *Config, v any) error {
		switch n := jsonschema.NormalizeNumber(v).(type) {
		case int64:
			*field(c) = float64(n)
		case float64:
			*field(c) = n
		default:
			return fmt.Errorf("expected a number, got %T", v)
		}
		return nil
	}
}

func intSetter(field func(c *Config) *int) func(c *Config, v any) error {
	return func(c *Config, v any) error {
		switch n := jsonschema.NormalizeNumber(v).(type) {
		case int64:
			*field(c) = int(n)
		case float64:
			if n != math.Trunc(n) || math.IsInf(n, 0) {
				return fmt.Errorf("expected an integer, got %v", n)
			}
			*field(c) = int(n)
		default:
			return fmt.Errorf("expected an integer, got %T", v)
		}
		return nil
	}
}
