// Package check validates generated values against the schema they were
// generated from using an independent JSON Schema validator.
package check

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	jsValidator "github.com/santhosh-tekuri/jsonschema/v6"
	"github.com/speakeasy-api/schemafaker/errors"
	"github.com/speakeasy-api/schemafaker/jsonschema"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const (
	// ErrCompile is returned when the schema is rejected by the validator.
	ErrCompile errors.Error = "schema cannot be compiled for validation"
	// ErrMismatch is returned for each way a value fails its schema.
	ErrMismatch errors.Error = "value does not match schema"
)

const resourceURL = "schema.json"

var defaultPrinter = message.NewPrinter(language.English)

// Validator checks values against one compiled schema. It is safe for
// concurrent use.
type Validator struct {
	schema *jsValidator.Schema
}

// Compile prepares a validator for js. Formats are asserted and the schema
// is read as draft 7 unless it declares otherwise.
func Compile(js *jsonschema.JSONSchema) (*Validator, error) {
	data, err := json.Marshal(js)
	if err != nil {
		return nil, ErrCompile.Wrap(err)
	}

	doc, err := jsValidator.UnmarshalJSON(bytes.NewReader(data))
	if err != nil {
		return nil, ErrCompile.Wrap(err)
	}

	c := jsValidator.NewCompiler()
	c.DefaultDraft(jsValidator.Draft7)
	c.AssertFormat()
	if err := c.AddResource(resourceURL, doc); err != nil {
		return nil, ErrCompile.Wrap(err)
	}

	schema, err := c.Compile(resourceURL)
	if err != nil {
		return nil, ErrCompile.Wrap(err)
	}

	return &Validator{schema: schema}, nil
}

// Validate returns one error per leaf failure, or nil when value matches.
func (v *Validator) Validate(value any) []error {
	data, err := json.Marshal(value)
	if err != nil {
		return []error{ErrMismatch.Wrapf("value is not valid json: %s", err.Error())}
	}

	inst, err := jsValidator.UnmarshalJSON(bytes.NewReader(data))
	if err != nil {
		return []error{ErrMismatch.Wrapf("value is not valid json: %s", err.Error())}
	}

	err = v.schema.Validate(inst)
	if err == nil {
		return nil
	}

	var validationErr *jsValidator.ValidationError
	if errors.As(err, &validationErr) {
		return getRootCauses(validationErr)
	}
	return []error{ErrMismatch.Wrap(err)}
}

func getRootCauses(err *jsValidator.ValidationError) []error {
	if len(err.Causes) == 0 {
		return []error{ErrMismatch.Wrap(fmt.Errorf("at %s: %s", location(err.InstanceLocation), err.ErrorKind.LocalizedString(defaultPrinter)))}
	}

	var errs []error
	for _, cause := range err.Causes {
		errs = append(errs, getRootCauses(cause)...)
	}
	return errs
}

func location(parts []string) string {
	return "/" + strings.Join(parts, "/")
}
