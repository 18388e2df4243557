package schema

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// FieldType enumerates the declared types a descriptor field may carry. The
// set is closed on purpose: the form layer maps every member onto a widget
// kind, and anything outside the set is rejected at definition time rather
// than at submission time.
type FieldType string

const (
	FieldTypeString   FieldType = "string"
	FieldTypeInteger  FieldType = "integer"
	FieldTypeNumber   FieldType = "number"
	FieldTypeBoolean  FieldType = "boolean"
	FieldTypeDate     FieldType = "date"
	FieldTypeDateTime FieldType = "datetime"
)

// KnownFieldType reports whether value names a member of the FieldType set.
func KnownFieldType(value string) bool {
	switch FieldType(value) {
	case FieldTypeString, FieldTypeInteger, FieldTypeNumber, FieldTypeBoolean,
		FieldTypeDate, FieldTypeDateTime:
		return true
	}
	return false
}

// Field is one entry in the statically declared field-descriptor table. It
// carries everything the form layer and the validator need: the declared
// type, optionality, a default for absent optional values, and constraint
// metadata.
type Field struct {
	Name        string
	Type        FieldType
	Format      string
	Required    bool
	Default     any
	Title       string
	Description string
	Enum        []any

	Minimum          *float64
	Maximum          *float64
	ExclusiveMinimum bool
	ExclusiveMaximum bool
	MinLength        *int
	MaxLength        *int
	Pattern          string
}

// Descriptor is the field-descriptor table for one schema type. It is built
// once (by hand, from a document, or from an OpenAPI component) and consulted
// by form definitions and the validator; it is never mutated after Validate.
type Descriptor struct {
	Name   string
	Fields []Field
}

var errNoFields = errors.New("schema: descriptor declares no fields")

// Validate checks the structural invariants every consumer relies on: at
// least one field, non-empty unique names, and a known declared type per
// field.
func (d Descriptor) Validate() error {
	if len(d.Fields) == 0 {
		return errNoFields
	}
	seen := make(map[string]struct{}, len(d.Fields))
	for _, field := range d.Fields {
		name := strings.TrimSpace(field.Name)
		if name == "" {
			return errors.New("schema: field with empty name")
		}
		if _, dup := seen[name]; dup {
			return fmt.Errorf("schema: duplicate field %q", name)
		}
		seen[name] = struct{}{}
		if !KnownFieldType(string(field.Type)) {
			return fmt.Errorf("schema: field %q has unknown type %q", name, field.Type)
		}
		if field.Pattern != "" {
			if _, err := regexp.Compile(field.Pattern); err != nil {
				return fmt.Errorf("schema: field %q has invalid pattern: %w", name, err)
			}
		}
	}
	return nil
}

// Field looks up a field by name.
func (d Descriptor) Field(name string) (Field, bool) {
	for _, field := range d.Fields {
		if field.Name == name {
			return field, true
		}
	}
	return Field{}, false
}

// FieldNames returns the declared names in table order.
func (d Descriptor) FieldNames() []string {
	if len(d.Fields) == 0 {
		return nil
	}
	names := make([]string, 0, len(d.Fields))
	for _, field := range d.Fields {
		names = append(names, field.Name)
	}
	return names
}
