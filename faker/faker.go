// Package faker generates values that satisfy a JSON Schema.
//
// A value is produced by a pipeline of stages: the declared type is coerced
// into a set of kinds, one kind is selected, combinators are folded into a
// single merged schema, the merged schema is conformed into a generation
// ready form and a value is generated from it. Nested schemas re-enter the
// pipeline from the start.
//
// A oneOf is resolved by merging a single compatible branch. The value is not
// checked against the other branches, so schemas whose oneOf branches overlap
// can produce values that match more than one of them.
package faker

import (
	"github.com/speakeasy-api/schemafaker/formats"
	"github.com/speakeasy-api/schemafaker/jsonschema"
)

// Generator produces values for schemas. Its configuration is fixed at
// construction. Unless a source is pinned with WithRand or WithSeed, every
// call draws from its own source and a Generator may be shared between
// goroutines.
type Generator struct {
	cfg         Config
	rand        Rand
	logger      Logger
	patternHook UnknownPatternHook
	formats     formats.Registry
}

// New creates a Generator. Configuration errors from every option are
// reported as ErrInvalidConfig.
func New(opts ...Option) (*Generator, error) {
	g := &Generator{
		cfg:     DefaultConfig(),
		logger:  NopLogger{},
		formats: formats.Default(),
	}

	for _, opt := range opts {
		if err := opt(g); err != nil {
			return nil, err
		}
	}

	if err := g.cfg.Validate(); err != nil {
		return nil, err
	}

	return g, nil
}

// Config returns the configuration of the generator.
func (g *Generator) Config() Config {
	return g.cfg
}

// Generate resolves the schema and produces one value for it.
func (g *Generator) Generate(js *jsonschema.JSONSchema) (any, error) {
	s := g.newSession()
	c, err := s.resolve(js, 0)
	if err != nil {
		return nil, err
	}
	return s.generate(c)
}

// GenerateN produces n independent values for the schema.
func (g *Generator) GenerateN(js *jsonschema.JSONSchema, n int) ([]any, error) {
	values := make([]any, 0, max(n, 0))
	for range n {
		v, err := g.Generate(js)
		if err != nil {
			return nil, err
		}
		values = append(values, v)
	}
	return values, nil
}

// Resolve runs every stage but the last and returns the conformed schema.
func (g *Generator) Resolve(js *jsonschema.JSONSchema) (Conformed, error) {
	return g.newSession().resolve(js, 0)
}

// GenerateConformed produces a value from an already conformed schema.
func (g *Generator) GenerateConformed(c Conformed) (any, error) {
	return g.newSession().generate(c)
}

// SelectKind picks one kind of the typed schema.
func (g *Generator) SelectKind(ts *TypedSchema) Kind {
	return g.newSession().selectKind(ts, 0)
}

// ResolveCombinators folds allOf, anyOf and oneOf of s into a single schema
// for the given kind.
func (g *Generator) ResolveCombinators(s *jsonschema.Schema, kind Kind) (*jsonschema.Schema, error) {
	return g.newSession().resolveCombinators(s, kind)
}

// Conform derives the generation ready schema of a merged schema.
func (g *Generator) Conform(kind Kind, merged *jsonschema.Schema) (Conformed, error) {
	return g.newSession().conform(kind, merged, 0)
}

// BuildPseudoArray derives the array working structure of a merged schema.
func (g *Generator) BuildPseudoArray(merged *jsonschema.Schema) (*PseudoArray, error) {
	return g.newSession().buildPseudoArray(merged, 0)
}

// BuildPseudoObject derives the object working structure of a merged schema.
func (g *Generator) BuildPseudoObject(merged *jsonschema.Schema) (*PseudoObject, error) {
	return g.newSession().buildPseudoObject(merged, 0)
}

// session carries the state of one call tree.
type session struct {
	*Generator
	r Rand
}

func (g *Generator) newSession() *session {
	r := g.rand
	if r == nil {
		r = newRandomSource()
	}
	return &session{Generator: g, r: r}
}
