// Package openapi derives schema descriptors from OpenAPI documents so a
// form definition can mirror a component schema instead of restating it.
package openapi

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/goliatone/go-formbind/pkg/schema"
)

// Options exposes toggles for document loading.
type Options struct {
	// ResolveReferences controls whether the loader follows external $ref
	// pointers. Defaults to true.
	ResolveReferences bool
}

// Option mutates Options during construction.
type Option func(*Options)

// WithReferenceResolution toggles external reference resolution.
func WithReferenceResolution(enabled bool) Option {
	return func(opts *Options) {
		opts.ResolveReferences = enabled
	}
}

// Descriptor loads an OpenAPI document and converts the named component
// schema into a field-descriptor table. The component must be an object
// schema; every property must carry a type the form layer can map.
func Descriptor(ctx context.Context, raw []byte, component string, options ...Option) (schema.Descriptor, error) {
	opts := Options{ResolveReferences: true}
	for _, opt := range options {
		opt(&opts)
	}

	if len(raw) == 0 {
		return schema.Descriptor{}, errors.New("openapi: document payload is empty")
	}
	if component == "" {
		return schema.Descriptor{}, errors.New("openapi: component name is required")
	}

	loader := &openapi3.Loader{
		Context:               ctx,
		IsExternalRefsAllowed: opts.ResolveReferences,
	}
	doc, err := loader.LoadFromData(raw)
	if err != nil {
		return schema.Descriptor{}, fmt.Errorf("openapi: load document: %w", err)
	}

	if doc.Components == nil || doc.Components.Schemas == nil {
		return schema.Descriptor{}, errors.New("openapi: document declares no component schemas")
	}
	ref, ok := doc.Components.Schemas[component]
	if !ok || ref == nil || ref.Value == nil {
		return schema.Descriptor{}, fmt.Errorf("openapi: component schema %q not found", component)
	}

	return descriptorFromSchema(component, ref.Value)
}

func descriptorFromSchema(name string, src *openapi3.Schema) (schema.Descriptor, error) {
	if kind := firstSchemaType(src.Type); kind != "object" && kind != "" {
		return schema.Descriptor{}, fmt.Errorf("openapi: component %q is %q, expected an object schema", name, kind)
	}
	if len(src.Properties) == 0 {
		return schema.Descriptor{}, fmt.Errorf("openapi: component %q declares no properties", name)
	}

	requiredSet := make(map[string]struct{}, len(src.Required))
	for _, entry := range src.Required {
		requiredSet[entry] = struct{}{}
	}

	propNames := make([]string, 0, len(src.Properties))
	for propName := range src.Properties {
		propNames = append(propNames, propName)
	}
	sort.Strings(propNames)

	desc := schema.Descriptor{Name: name}
	for _, propName := range propNames {
		propRef := src.Properties[propName]
		if propRef == nil || propRef.Value == nil {
			return schema.Descriptor{}, fmt.Errorf("openapi: property %q has no resolved schema", propName)
		}
		_, required := requiredSet[propName]
		field, err := fieldFromProperty(propName, propRef.Value, required)
		if err != nil {
			return schema.Descriptor{}, err
		}
		desc.Fields = append(desc.Fields, field)
	}

	if err := desc.Validate(); err != nil {
		return schema.Descriptor{}, err
	}
	return desc, nil
}

func fieldFromProperty(name string, src *openapi3.Schema, required bool) (schema.Field, error) {
	fieldType, format, err := mapPropertyType(name, src)
	if err != nil {
		return schema.Field{}, err
	}

	field := schema.Field{
		Name:             name,
		Type:             fieldType,
		Format:           format,
		Required:         required && !src.Nullable,
		Default:          src.Default,
		Title:            schema.SanitizeText(src.Title),
		Description:      schema.SanitizeText(src.Description),
		ExclusiveMinimum: src.ExclusiveMin,
		ExclusiveMaximum: src.ExclusiveMax,
		Pattern:          src.Pattern,
	}
	if len(src.Enum) > 0 {
		field.Enum = append([]any(nil), src.Enum...)
	}
	if src.Min != nil {
		value := *src.Min
		field.Minimum = &value
	}
	if src.Max != nil {
		value := *src.Max
		field.Maximum = &value
	}
	if src.MinLength != 0 {
		value := int(src.MinLength)
		field.MinLength = &value
	}
	if src.MaxLength != nil {
		value := int(*src.MaxLength)
		field.MaxLength = &value
	}
	return field, nil
}

// mapPropertyType is the fixed OpenAPI-to-descriptor type table. Composite
// and unknown types are rejected here so the failure happens while the
// definition is being configured.
func mapPropertyType(name string, src *openapi3.Schema) (schema.FieldType, string, error) {
	kind := firstSchemaType(src.Type)
	switch kind {
	case "string":
		switch src.Format {
		case "date":
			return schema.FieldTypeDate, "", nil
		case "date-time":
			return schema.FieldTypeDateTime, "", nil
		}
		return schema.FieldTypeString, src.Format, nil
	case "integer":
		return schema.FieldTypeInteger, src.Format, nil
	case "number":
		return schema.FieldTypeNumber, src.Format, nil
	case "boolean":
		return schema.FieldTypeBoolean, src.Format, nil
	}
	return "", "", fmt.Errorf("openapi: property %q has unmapped type %q", name, kind)
}

func firstSchemaType(types *openapi3.Types) string {
	if types == nil {
		return ""
	}
	values := types.Slice()
	if len(values) == 0 {
		return ""
	}
	return values[0]
}
