package model

import (
	"strings"
	"sync"

	"github.com/AmrMohamed17/smart-cv-builder/templates"
	"github.com/pkg/errors"
	"github.com/xeipuuv/gojsonschema"
)

// SchemaError lists the problems found by a schema validation.
type SchemaError struct {
	Schema   string
	Problems []string
}

func (e *SchemaError) Error() string {
	return "schema validation failed (" + e.Schema + "): " + strings.Join(e.Problems, "; ")
}

var (
	generatedSchema = sync.OnceValues(func() (*gojsonschema.Schema, error) {
		return loadSchema("schema/generated.schema.json")
	})
	documentSchema = sync.OnceValues(func() (*gojsonschema.Schema, error) {
		return loadSchema("schema/document.schema.json")
	})
)

func loadSchema(name string) (*gojsonschema.Schema, error) {
	b, err := templates.FS.ReadFile(name)
	if err != nil {
		return nil, errors.Wrapf(err, "read %s", name)
	}
	s, err := gojsonschema.NewSchema(gojsonschema.NewBytesLoader(b))
	if err != nil {
		return nil, errors.Wrapf(err, "compile %s", name)
	}
	return s, nil
}

// ValidateGenerated checks a parsed LLM response against the flat resume
// schema.
func ValidateGenerated(doc Document) error {
	return validate("generated", generatedSchema, doc)
}

// ValidateSubmitted checks a document posted by the editor. Both shapes are
// accepted.
func ValidateSubmitted(doc Document) error {
	return validate("document", documentSchema, doc)
}

func validate(name string, load func() (*gojsonschema.Schema, error), doc Document) error {
	schema, err := load()
	if err != nil {
		return err
	}
	res, err := schema.Validate(gojsonschema.NewGoLoader(map[string]any(doc)))
	if err != nil {
		return errors.Wrap(err, "validate document")
	}
	if res.Valid() {
		return nil
	}
	serr := &SchemaError{Schema: name}
	for _, e := range res.Errors() {
		serr.Problems = append(serr.Problems, e.String())
	}
	return serr
}
