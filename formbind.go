// Package formbind derives web form definitions from declarative schemas so
// fields and validation rules are declared once. A definition mirrors a
// schema's field table exactly; binding a submission validates it through the
// schema and reports outcomes the way form frameworks expect: a boolean
// check, per-field error lists, and a cleaned-data mapping.
package formbind

import (
	"context"

	"github.com/goliatone/go-formbind/pkg/form"
	"github.com/goliatone/go-formbind/pkg/openapi"
	"github.com/goliatone/go-formbind/pkg/schema"
)

// Re-exports so common flows only import the root package.
type (
	Definition = form.Definition
	Form       = form.Form
	Field      = form.Field
	Descriptor = schema.Descriptor
)

// NewDefinition builds a form definition straight from a descriptor table.
func NewDefinition(desc schema.Descriptor, options ...form.Option) (*form.Definition, error) {
	return form.NewDefinition(desc, options...)
}

// DefinitionFromYAML parses a YAML schema document and builds its definition.
func DefinitionFromYAML(raw []byte, options ...form.Option) (*form.Definition, error) {
	desc, err := schema.ParseYAML(raw)
	if err != nil {
		return nil, err
	}
	return form.NewDefinition(desc, options...)
}

// DefinitionFromJSON parses a JSON schema document and builds its definition.
func DefinitionFromJSON(raw []byte, options ...form.Option) (*form.Definition, error) {
	desc, err := schema.ParseJSON(raw)
	if err != nil {
		return nil, err
	}
	return form.NewDefinition(desc, options...)
}

// DefinitionFromOpenAPI derives a definition from a component schema inside
// an OpenAPI document.
func DefinitionFromOpenAPI(ctx context.Context, raw []byte, component string, options ...form.Option) (*form.Definition, error) {
	desc, err := openapi.Descriptor(ctx, raw, component)
	if err != nil {
		return nil, err
	}
	return form.NewDefinition(desc, options...)
}
