package faker

import (
	"github.com/speakeasy-api/schemafaker/jsonschema"
)

// resolveCombinators flattens allOf, one random non-empty subset of the
// compatible anyOf branches and one compatible oneOf branch into a single
// combinator free schema typed as kind.
func (s *session) resolveCombinators(schema *jsonschema.Schema, kind Kind) (*jsonschema.Schema, error) {
	merged := schema.WithoutCombinators()
	if merged == nil {
		merged = &jsonschema.Schema{}
	}

	fold := func(member *jsonschema.JSONSchema) error {
		sub, err := s.resolveCombinators(member.AsSchema(), kind)
		if err != nil {
			return err
		}
		merged = Merge(merged, sub)
		return nil
	}

	for i, member := range schema.AllOf {
		if member.IsFalse() {
			return nil, ErrUnsatisfiable.Wrapf("allOf[%d] is the false schema", i)
		}
		if err := fold(member); err != nil {
			return nil, err
		}
	}

	if schema.AnyOf != nil {
		kept, err := s.pickAnyOf(schema.AnyOf, kind)
		if err != nil {
			return nil, err
		}
		for _, member := range kept {
			if err := fold(member); err != nil {
				return nil, err
			}
		}
	}

	if schema.OneOf != nil {
		candidates := compatibleWith(schema.OneOf, kind)
		if len(candidates) == 0 {
			return nil, ErrUnsatisfiable.Wrapf("no oneOf branch allows a %s", kind)
		}
		chosen := s.r.IntN(len(candidates))
		s.logger.Debug("resolved oneOf", "kind", kind.String(), "candidates", len(candidates), "chosen", chosen)
		if err := fold(candidates[chosen]); err != nil {
			return nil, err
		}
	}

	merged.Type = jsonschema.Types{kind.SchemaType()}
	return merged, nil
}

// pickAnyOf shuffles the branches compatible with kind and keeps the first
// plus each other one with the configured probability.
func (s *session) pickAnyOf(members []*jsonschema.JSONSchema, kind Kind) ([]*jsonschema.JSONSchema, error) {
	candidates := compatibleWith(members, kind)
	if len(candidates) == 0 {
		return nil, ErrUnsatisfiable.Wrapf("no anyOf branch allows a %s", kind)
	}

	s.r.Shuffle(len(candidates), func(i, j int) {
		candidates[i], candidates[j] = candidates[j], candidates[i]
	})

	kept := candidates[:1]
	for _, member := range candidates[1:] {
		if chance(s.r, s.cfg.AnyOfProbability) {
			kept = append(kept, member)
		}
	}

	s.logger.Debug("resolved anyOf", "kind", kind.String(), "candidates", len(candidates), "kept", len(kept))
	return kept, nil
}

func compatibleWith(members []*jsonschema.JSONSchema, kind Kind) []*jsonschema.JSONSchema {
	var out []*jsonschema.JSONSchema
	for _, m := range members {
		if kinds, ok := memberKinds(m); ok && kinds.Has(kind) {
			out = append(out, m)
		}
	}
	return out
}
