package faker

import (
	"github.com/speakeasy-api/schemafaker/errors"
	"github.com/speakeasy-api/schemafaker/formats"
)

// Option configures a Generator.
type Option func(*Generator) error

// UnknownPatternHook is called when no string can be generated for a pattern.
// It must return a string, which is used verbatim.
type UnknownPatternHook func(pattern string, cause error) any

// WithConfig replaces the default configuration. The configuration is
// validated when the generator is constructed.
func WithConfig(cfg Config) Option {
	return func(g *Generator) error {
		g.cfg = cfg
		return nil
	}
}

// WithConfigMap overlays named options onto the default configuration.
func WithConfigMap(values map[string]any) Option {
	return func(g *Generator) error {
		cfg, err := ConfigFromMap(values)
		if err != nil {
			return err
		}
		g.cfg = cfg
		return nil
	}
}

// WithRand pins the source of randomness used by every call. A pinned source
// makes output reproducible but must not be shared between goroutines.
func WithRand(r Rand) Option {
	return func(g *Generator) error {
		if r == nil {
			return ErrInvalidConfig.Wrap(errors.New("rand source must not be nil"))
		}
		g.rand = r
		return nil
	}
}

// WithSeed pins a deterministic source seeded with seed.
func WithSeed(seed uint64) Option {
	return func(g *Generator) error {
		g.rand = NewRand(seed)
		return nil
	}
}

// WithLogger sets the logger used for debug tracing of generation decisions.
func WithLogger(l Logger) Option {
	return func(g *Generator) error {
		if l == nil {
			l = NopLogger{}
		}
		g.logger = l
		return nil
	}
}

// WithUnknownPatternHook installs a fallback for patterns that cannot be
// generated.
func WithUnknownPatternHook(hook UnknownPatternHook) Option {
	return func(g *Generator) error {
		g.patternHook = hook
		return nil
	}
}

// WithFormat registers or overrides the provider for a recognized format.
func WithFormat(name string, provider formats.Provider) Option {
	return func(g *Generator) error {
		if !formats.IsRecognized(name) {
			return ErrInvalidConfig.Wrapf("format %q is not recognized", name)
		}
		if provider == nil {
			return ErrInvalidConfig.Wrapf("provider for format %q must not be nil", name)
		}
		g.formats[name] = provider
		return nil
	}
}
