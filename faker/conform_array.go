package faker

import (
	"github.com/speakeasy-api/schemafaker/jsonschema"
)

// PseudoArray is the working structure an array schema is conformed from.
type PseudoArray struct {
	// Tuple holds the positional item schemas.
	Tuple []*jsonschema.JSONSchema
	// Additional is the schema of items past the tuple, nil when none are allowed.
	Additional *jsonschema.JSONSchema
	MinItems   int
	MaxItems   int
}

// ItemSchema returns the schema of the item at index i.
func (p *PseudoArray) ItemSchema(i int) *jsonschema.JSONSchema {
	if i < len(p.Tuple) {
		return p.Tuple[i]
	}
	return p.Additional
}

func (s *session) buildPseudoArray(merged *jsonschema.Schema, depth int) (*PseudoArray, error) {
	p := &PseudoArray{Additional: defaultSchema()}
	isTuple := merged.Items.IsTuple()

	switch {
	case isTuple:
		p.Tuple = merged.Items.Tuple
		if merged.AdditionalItems != nil {
			p.Additional = merged.AdditionalItems
		}
	case merged.Items != nil:
		p.Additional = merged.Items.Schema
	}
	if p.Additional.IsFalse() {
		p.Additional = nil
	}

	// no array reaches past a false slot
	for i, slot := range p.Tuple {
		if slot.IsFalse() {
			p.Tuple = p.Tuple[:i]
			p.Additional = nil
			break
		}
	}

	capacity := -1
	if p.Additional == nil {
		capacity = len(p.Tuple)
	}

	lo := s.cfg.MinItems
	if merged.MinItems != nil {
		lo = int(*merged.MinItems)
		switch {
		case capacity == 0 && lo > 0:
			return nil, ErrUnsatisfiable.Wrapf("minItems %d but items allows no elements", lo)
		case capacity >= 0 && lo > capacity:
			return nil, ErrUnsatisfiable.Wrapf("minItems %d exceeds the %d items allowed by items and additionalItems", lo, capacity)
		}
	}

	var hi int
	switch {
	case merged.MaxItems != nil:
		hi = int(*merged.MaxItems)
		if merged.MinItems != nil && hi < lo {
			return nil, ErrUnsatisfiable.Wrapf("maxItems %d is below minItems %d", hi, lo)
		}
	case isTuple:
		hi = max(lo, len(p.Tuple)+s.cfg.AdditionalItemsRange)
	default:
		hi = lo + s.cfg.ItemsRange
	}

	if capacity >= 0 {
		hi = min(hi, capacity)
	}
	lo = min(lo, hi)
	if depth >= s.cfg.MaxDepth {
		hi = lo
	}

	p.MinItems, p.MaxItems = lo, hi
	return p, nil
}

func (s *session) conformArray(merged *jsonschema.Schema, depth int) (Conformed, error) {
	p, err := s.buildPseudoArray(merged, depth)
	if err != nil {
		return nil, err
	}

	length := between(s.r, p.MinItems, p.MaxItems)
	s.logger.Debug("array length", "length", length, "minItems", p.MinItems, "maxItems", p.MaxItems, "depth", depth)

	items := make([]Conformed, length)
	for i := range items {
		c, err := s.resolve(p.ItemSchema(i), depth+1)
		if err != nil {
			return nil, err
		}
		items[i] = c
	}
	return ArraySchema{Items: items}, nil
}
