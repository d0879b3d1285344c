package faker

// selectKind picks one kind uniformly. Past the configured depth scalar kinds
// are preferred so free-form nesting terminates.
func (s *session) selectKind(ts *TypedSchema, depth int) Kind {
	candidates := ts.Kinds
	if depth >= s.cfg.MaxDepth {
		if scalars := candidates.Scalars(); len(scalars) > 0 {
			candidates = scalars
		}
	}

	k := candidates[s.r.IntN(len(candidates))]
	s.logger.Debug("selected kind", "kind", k.String(), "candidates", len(candidates), "depth", depth)
	return k
}
