package faker

import "github.com/speakeasy-api/schemafaker/errors"

const (
	// ErrUnsatisfiable is returned when keywords of a schema conflict so no value can satisfy it.
	ErrUnsatisfiable errors.Error = "unsatisfiable schema"
	// ErrUnknownKind is returned when a schema reaches generation with a kind outside the supported vocabulary.
	ErrUnknownKind errors.Error = "unknown kind"
	// ErrPatternGeneration is returned when no string can be produced for a pattern.
	ErrPatternGeneration errors.Error = "pattern generation failed"
	// ErrFallbackContract is returned when the unknown pattern hook returns something other than a string.
	ErrFallbackContract errors.Error = "unknown pattern hook must return a string"
	// ErrInvalidConfig is returned when the generator is configured with unsupported or out of range values.
	ErrInvalidConfig errors.Error = "invalid configuration"
	// ErrUnknownFormat is returned when a recognized format has no provider registered.
	ErrUnknownFormat errors.Error = "no provider for format"
	// ErrPropertyNameExhausted is returned when no new unique property name could be synthesized.
	ErrPropertyNameExhausted errors.Error = "unable to synthesize a unique property name"
)
