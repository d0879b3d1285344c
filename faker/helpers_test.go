package faker_test

import (
	"testing"

	"github.com/speakeasy-api/schemafaker/faker"
	"github.com/speakeasy-api/schemafaker/jsonschema"
	"github.com/stretchr/testify/require"
)

func newGenerator(t *testing.T, opts ...faker.Option) *faker.Generator {
	t.Helper()
	g, err := faker.New(append([]faker.Option{faker.WithSeed(42)}, opts...)...)
	require.NoError(t, err)
	return g
}

func schema(t *testing.T, src string) *jsonschema.JSONSchema {
	t.Helper()
	js, err := jsonschema.Parse([]byte(src))
	require.NoError(t, err)
	return js
}

func ptr[T any](v T) *T {
	return &v
}
