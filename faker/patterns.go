package faker

import (
	"sync"
	"time"

	"github.com/dlclark/regexp2"
	"github.com/speakeasy-api/schemafaker/jsonschema"
	"github.com/speakeasy-api/schemafaker/sequencedmap"
)

const patternMatchTimeout = time.Second

type compiledPattern struct {
	re  *regexp2.Regexp
	err error
}

// patternCache holds compiled patternProperties keys. Compiled expressions
// are safe for concurrent use.
var patternCache sync.Map

func compilePattern(pattern string) (*regexp2.Regexp, error) {
	if v, ok := patternCache.Load(pattern); ok {
		c := v.(compiledPattern)
		return c.re, c.err
	}

	re, err := regexp2.Compile(pattern, regexp2.ECMAScript)
	if err != nil {
		err = jsonschema.ErrInvalidSchema.Wrapf("patternProperties %q: %w", pattern, err)
	} else {
		re.MatchTimeout = patternMatchTimeout
	}

	v, _ := patternCache.LoadOrStore(pattern, compiledPattern{re: re, err: err})
	c := v.(compiledPattern)
	return c.re, c.err
}

// matchingPatterns returns the schemas of every pattern matching name, in the
// order the patterns were declared.
func matchingPatterns(patterns *sequencedmap.Map[string, *jsonschema.JSONSchema], name string) ([]*jsonschema.JSONSchema, error) {
	var out []*jsonschema.JSONSchema
	for pattern, js := range patterns.All() {
		re, err := compilePattern(pattern)
		if err != nil {
			return nil, err
		}
		ok, err := re.MatchString(name)
		if err != nil {
			return nil, jsonschema.ErrInvalidSchema.Wrapf("patternProperties %q: %w", pattern, err)
		}
		if ok {
			out = append(out, js)
		}
	}
	return out, nil
}

// schemaForName returns the schema an undeclared property name must satisfy:
// the conjunction of every matching pattern, or additional when none matches.
// A nil result means the name is not allowed.
func schemaForName(patterns *sequencedmap.Map[string, *jsonschema.JSONSchema], additional *jsonschema.JSONSchema, name string) (*jsonschema.JSONSchema, error) {
	matched, err := matchingPatterns(patterns, name)
	if err != nil {
		return nil, err
	}
	if len(matched) == 0 {
		return additional, nil
	}
	return conjoin(matched...), nil
}
