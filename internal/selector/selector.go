// Package selector picks a sub-document, typically one schema out of a larger
// definitions file, with a JSONPath expression.
package selector

import (
	"github.com/speakeasy-api/jsonpath/pkg/jsonpath"
	"github.com/speakeasy-api/jsonpath/pkg/jsonpath/config"
	"github.com/speakeasy-api/schemafaker/errors"
	"github.com/vmware-labs/yaml-jsonpath/pkg/yamlpath"
	"gopkg.in/yaml.v3"
)

const (
	// ErrInvalidPath is returned when an expression cannot be parsed.
	ErrInvalidPath errors.Error = "invalid jsonpath"
	// ErrNoMatch is returned when an expression selects nothing.
	ErrNoMatch errors.Error = "jsonpath matched nothing"
	// ErrAmbiguous is returned when an expression selects more than one node.
	ErrAmbiguous errors.Error = "jsonpath matched more than one node"
)

// Queryable is an interface for querying YAML nodes using JSONPath expressions.
type Queryable interface {
	Query(root *yaml.Node) []*yaml.Node
}

type yamlPathQueryable struct {
	path *yamlpath.Path
}

func (y yamlPathQueryable) Query(root *yaml.Node) []*yaml.Node {
	if y.path == nil {
		return []*yaml.Node{}
	}
	// errors aren't actually possible from yamlpath.
	result, _ := y.path.Find(root)
	return result
}

type rfcJSONPathQueryable struct {
	path *jsonpath.JSONPath
}

func (r rfcJSONPathQueryable) Query(root *yaml.Node) []*yaml.Node {
	return r.path.Query(root)
}

// NewPath parses an RFC 9535 expression, or one in the older yaml-jsonpath
// dialect when legacy is set.
func NewPath(expr string, legacy bool) (Queryable, error) {
	if legacy {
		path, err := yamlpath.NewPath(expr)
		if err != nil {
			return nil, ErrInvalidPath.Wrapf("%s: %w", expr, err)
		}
		return yamlPathQueryable{path: path}, nil
	}

	path, err := jsonpath.NewPath(expr, config.WithPropertyNameExtension())
	if err != nil {
		return nil, ErrInvalidPath.Wrapf("%s: %w", expr, err)
	}
	return rfcJSONPathQueryable{path: path}, nil
}

// Select returns the single node expr selects from root.
func Select(root *yaml.Node, expr string, legacy bool) (*yaml.Node, error) {
	path, err := NewPath(expr, legacy)
	if err != nil {
		return nil, err
	}

	nodes := path.Query(root)
	switch len(nodes) {
	case 0:
		return nil, ErrNoMatch.Wrapf("%s", expr)
	case 1:
		return nodes[0], nil
	default:
		return nil, ErrAmbiguous.Wrapf("%s selected %d nodes", expr, len(nodes))
	}
}
