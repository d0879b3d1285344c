package jsonschema

import (
	"encoding/json"
	"fmt"
	"math"
	"reflect"

	"github.com/speakeasy-api/schemafaker/sequencedmap"
	"gopkg.in/yaml.v3"
)

// ValueFromNode converts a YAML node into a plain value in a stable way not
// reordering keys. Mappings become *sequencedmap.Map[string, any], sequences
// []any, integers int64 and other numbers float64.
func ValueFromNode(node *yaml.Node) (any, error) {
	switch node.Kind {
	case yaml.DocumentNode:
		if len(node.Content) == 0 {
			return nil, nil
		}
		return ValueFromNode(node.Content[0])
	case yaml.SequenceNode:
		return sequenceValue(node)
	case yaml.MappingNode:
		return mappingValue(node)
	case yaml.ScalarNode:
		return scalarValue(node)
	case yaml.AliasNode:
		return ValueFromNode(node.Alias)
	default:
		return nil, fmt.Errorf("unknown node kind: %d", node.Kind)
	}
}

func mappingValue(node *yaml.Node) (any, error) {
	v := sequencedmap.NewWithCapacity[string, any](len(node.Content) / 2)
	for i := 1; i < len(node.Content); i += 2 {
		kv, err := ValueFromNode(node.Content[i-1])
		if err != nil {
			return nil, err
		}

		key, ok := kv.(string)
		if !ok {
			keyData, err := json.Marshal(kv)
			if err != nil {
				return nil, err
			}
			key = string(keyData)
		}

		vv, err := ValueFromNode(node.Content[i])
		if err != nil {
			return nil, err
		}

		v.Set(key, vv)
	}

	return v, nil
}

func sequenceValue(node *yaml.Node) (any, error) {
	v := make([]any, len(node.Content))
	for i, n := range node.Content {
		vv, err := ValueFromNode(n)
		if err != nil {
			return nil, err
		}
		v[i] = vv
	}

	return v, nil
}

func scalarValue(node *yaml.Node) (any, error) {
	var v any

	if err := node.Decode(&v); err != nil {
		return nil, err
	}

	return NormalizeNumber(v), nil
}

// NormalizeNumber converts the numeric types produced by decoders into int64
// or float64. Other values are returned unchanged.
func NormalizeNumber(v any) any {
	switch n := v.(type) {
	case int:
		return int64(n)
	case int8:
		return int64(n)
	case int16:
		return int64(n)
	case int32:
		return int64(n)
	case uint:
		return uint64ToNumber(uint64(n))
	case uint8:
		return int64(n)
	case uint16:
		return int64(n)
	case uint32:
		return int64(n)
	case uint64:
		return uint64ToNumber(n)
	case float32:
		return float64(n)
	case json.Number:
		if i, err := n.Int64(); err == nil {
			return i
		}
		if f, err := n.Float64(); err == nil {
			return f
		}
		return n.String()
	default:
		return v
	}
}

func uint64ToNumber(n uint64) any {
	if n > math.MaxInt64 {
		return float64(n)
	}
	return int64(n)
}

// ValueTypes reports the schema types a literal value satisfies. A whole
// number satisfies both integer and number.
func ValueTypes(v any) Types {
	switch n := NormalizeNumber(v).(type) {
	case nil:
		return Types{SchemaTypeNull}
	case bool:
		return Types{SchemaTypeBoolean}
	case string:
		return Types{SchemaTypeString}
	case int64:
		return Types{SchemaTypeInteger, SchemaTypeNumber}
	case float64:
		if n == math.Trunc(n) && !math.IsInf(n, 0) {
			return Types{SchemaTypeInteger, SchemaTypeNumber}
		}
		return Types{SchemaTypeNumber}
	case []any:
		return Types{SchemaTypeArray}
	case map[string]any, *sequencedmap.Map[string, any]:
		return Types{SchemaTypeObject}
	}

	switch reflect.ValueOf(v).Kind() {
	case reflect.Slice, reflect.Array:
		return Types{SchemaTypeArray}
	case reflect.Map, reflect.Struct:
		return Types{SchemaTypeObject}
	}
	return nil
}

// CloneValue deep copies slices and maps of a plain value so a literal can be
// handed out without sharing mutable state.
func CloneValue(v any) any {
	switch t := v.(type) {
	case []any:
		c := make([]any, len(t))
		for i, e := range t {
			c[i] = CloneValue(e)
		}
		return c
	case map[string]any:
		c := make(map[string]any, len(t))
		for k, e := range t {
			c[k] = CloneValue(e)
		}
		return c
	case *sequencedmap.Map[string, any]:
		if t == nil {
			return t
		}
		c := sequencedmap.NewWithCapacity[string, any](t.Len())
		for k, e := range t.All() {
			c.Set(k, CloneValue(e))
		}
		return c
	default:
		return v
	}
}
