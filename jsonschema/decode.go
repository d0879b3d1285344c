package jsonschema

import (
	"fmt"
	"math"

	"github.com/speakeasy-api/schemafaker/errors"
	"github.com/speakeasy-api/schemafaker/sequencedmap"
	"gopkg.in/yaml.v3"
)

const (
	// ErrInvalidSchema is returned when a document cannot be read as a schema.
	ErrInvalidSchema errors.Error = "invalid schema"
)

// Parse reads a schema from JSON or YAML, preserving the order of object keys.
func Parse(data []byte) (*JSONSchema, error) {
	var node yaml.Node
	if err := yaml.Unmarshal(data, &node); err != nil {
		return nil, ErrInvalidSchema.Wrap(err)
	}
	if node.Kind == 0 {
		return nil, ErrInvalidSchema.Wrap(errors.New("empty document"))
	}

	return FromNode(&node)
}

// MustParse is like Parse but panics on error. Intended for tests and package level fixtures.
func MustParse(data string) *JSONSchema {
	js, err := Parse([]byte(data))
	if err != nil {
		panic(err)
	}
	return js
}

// FromNode builds a schema from an already decoded YAML node.
func FromNode(node *yaml.Node) (*JSONSchema, error) {
	return decodeJSONSchema(node, "#")
}

func decodeJSONSchema(node *yaml.Node, path string) (*JSONSchema, error) {
	node = resolveNode(node)

	switch node.Kind {
	case yaml.ScalarNode:
		var b bool
		if node.Tag != "!!bool" || node.Decode(&b) != nil {
			return nil, ErrInvalidSchema.Wrapf("%s: expected an object or boolean, got %q", path, node.Value)
		}
		return FromBool(b), nil
	case yaml.MappingNode:
		s, err := decodeSchema(node, path)
		if err != nil {
			return nil, err
		}
		return FromSchema(s), nil
	default:
		return nil, ErrInvalidSchema.Wrapf("%s: expected an object or boolean", path)
	}
}

func resolveNode(node *yaml.Node) *yaml.Node {
	for node != nil {
		switch {
		case node.Kind == yaml.DocumentNode && len(node.Content) > 0:
			node = node.Content[0]
		case node.Kind == yaml.AliasNode && node.Alias != nil:
			node = node.Alias
		default:
			return node
		}
	}
	return &yaml.Node{}
}

func decodeSchema(node *yaml.Node, path string) (*Schema, error) {
	s := &Schema{}

	for i := 1; i < len(node.Content); i += 2 {
		key := resolveNode(node.Content[i-1]).Value
		value := resolveNode(node.Content[i])
		keyPath := path + "/" + key

		var err error
		switch key {
		case "type":
			s.Type, err = decodeTypes(value, keyPath)
		case "allOf":
			s.AllOf, err = decodeSchemaList(value, keyPath)
		case "anyOf":
			s.AnyOf, err = decodeSchemaList(value, keyPath)
		case "oneOf":
			s.OneOf, err = decodeSchemaList(value, keyPath)
		case "const":
			var v any
			v, err = ValueFromNode(value)
			s.Const = NewLiteral(v)
		case "enum":
			s.Enum, err = decodeEnum(value, keyPath)
		case "items":
			s.Items, err = decodeItems(value, keyPath)
		case "additionalItems":
			s.AdditionalItems, err = decodeJSONSchema(value, keyPath)
		case "minItems":
			s.MinItems, err = decodeCount(value, keyPath)
		case "maxItems":
			s.MaxItems, err = decodeCount(value, keyPath)
		case "properties":
			s.Properties, err = decodeSchemaMap(value, keyPath)
		case "patternProperties":
			s.PatternProperties, err = decodeSchemaMap(value, keyPath)
		case "propertyNames":
			s.PropertyNames, err = decodeJSONSchema(value, keyPath)
		case "additionalProperties":
			s.AdditionalProperties, err = decodeJSONSchema(value, keyPath)
		case "required":
			s.Required, err = decodeStrings(value, keyPath)
		case "minProperties":
			s.MinProperties, err = decodeCount(value, keyPath)
		case "maxProperties":
			s.MaxProperties, err = decodeCount(value, keyPath)
		case "minLength":
			s.MinLength, err = decodeCount(value, keyPath)
		case "maxLength":
			s.MaxLength, err = decodeCount(value, keyPath)
		case "format":
			s.Format, err = decodeString(value, keyPath)
		case "pattern":
			s.Pattern, err = decodeString(value, keyPath)
		case "minimum":
			s.Minimum, err = decodeNumber(value, keyPath)
		case "maximum":
			s.Maximum, err = decodeNumber(value, keyPath)
		default:
			var v any
			v, err = ValueFromNode(value)
			if err == nil {
				if s.Extra == nil {
					s.Extra = sequencedmap.New[string, any]()
				}
				s.Extra.Set(key, v)
			}
		}
		if err != nil {
			return nil, err
		}
	}

	return s, nil
}

func decodeTypes(node *yaml.Node, path string) (Types, error) {
	switch node.Kind {
	case yaml.ScalarNode:
		return Types{SchemaType(node.Value)}, nil
	case yaml.SequenceNode:
		types := make(Types, 0, len(node.Content))
		for _, n := range node.Content {
			n = resolveNode(n)
			if n.Kind != yaml.ScalarNode {
				return nil, ErrInvalidSchema.Wrapf("%s: type entries must be strings", path)
			}
			types = append(types, SchemaType(n.Value))
		}
		return types, nil
	default:
		return nil, ErrInvalidSchema.Wrapf("%s: expected a string or a list of strings", path)
	}
}

func decodeSchemaList(node *yaml.Node, path string) ([]*JSONSchema, error) {
	if node.Kind != yaml.SequenceNode {
		return nil, ErrInvalidSchema.Wrapf("%s: expected a list of schemas", path)
	}

	schemas := make([]*JSONSchema, 0, len(node.Content))
	for i, n := range node.Content {
		js, err := decodeJSONSchema(n, fmt.Sprintf("%s/%d", path, i))
		if err != nil {
			return nil, err
		}
		schemas = append(schemas, js)
	}
	return schemas, nil
}

func decodeSchemaMap(node *yaml.Node, path string) (*sequencedmap.Map[string, *JSONSchema], error) {
	if node.Kind != yaml.MappingNode {
		return nil, ErrInvalidSchema.Wrapf("%s: expected a mapping of schemas", path)
	}

	m := sequencedmap.NewWithCapacity[string, *JSONSchema](len(node.Content) / 2)
	for i := 1; i < len(node.Content); i += 2 {
		key := resolveNode(node.Content[i-1]).Value
		js, err := decodeJSONSchema(node.Content[i], path+"/"+key)
		if err != nil {
			return nil, err
		}
		m.Set(key, js)
	}
	return m, nil
}

func decodeItems(node *yaml.Node, path string) (*Items, error) {
	if node.Kind == yaml.SequenceNode {
		tuple, err := decodeSchemaList(node, path)
		if err != nil {
			return nil, err
		}
		return NewTupleItems(tuple...), nil
	}

	js, err := decodeJSONSchema(node, path)
	if err != nil {
		return nil, err
	}
	return NewItems(js), nil
}

func decodeEnum(node *yaml.Node, path string) ([]any, error) {
	if node.Kind != yaml.SequenceNode {
		return nil, ErrInvalidSchema.Wrapf("%s: expected a list", path)
	}

	v, err := ValueFromNode(node)
	if err != nil {
		return nil, ErrInvalidSchema.Wrap(err)
	}
	return v.([]any), nil
}

func decodeStrings(node *yaml.Node, path string) ([]string, error) {
	if node.Kind != yaml.SequenceNode {
		return nil, ErrInvalidSchema.Wrapf("%s: expected a list of strings", path)
	}

	out := make([]string, 0, len(node.Content))
	for _, n := range node.Content {
		n = resolveNode(n)
		if n.Kind != yaml.ScalarNode {
			return nil, ErrInvalidSchema.Wrapf("%s: expected a list of strings", path)
		}
		out = append(out, n.Value)
	}
	return out, nil
}

func decodeString(node *yaml.Node, path string) (*string, error) {
	if node.Kind != yaml.ScalarNode {
		return nil, ErrInvalidSchema.Wrapf("%s: expected a string", path)
	}
	v := node.Value
	return &v, nil
}

func decodeNumber(node *yaml.Node, path string) (*float64, error) {
	var f float64
	if node.Kind != yaml.ScalarNode || node.Decode(&f) != nil {
		return nil, ErrInvalidSchema.Wrapf("%s: expected a number, got %q", path, node.Value)
	}
	if math.IsInf(f, 0) || math.IsNaN(f) {
		return nil, ErrInvalidSchema.Wrapf("%s: expected a finite number, got %q", path, node.Value)
	}
	return &f, nil
}

func decodeCount(node *yaml.Node, path string) (*int64, error) {
	f, err := decodeNumber(node, path)
	if err != nil {
		return nil, err
	}
	if *f < 0 || *f != math.Trunc(*f) {
		return nil, ErrInvalidSchema.Wrapf("%s: expected a non-negative integer, got %v", path, *f)
	}
	if *f >= math.MaxInt64 {
		return nil, ErrInvalidSchema.Wrapf("%s: %v is too large", path, *f)
	}
	i := int64(*f)
	return &i, nil
}
