package schema

import (
	"errors"
	"fmt"

	"github.com/goccy/go-json"
	"gopkg.in/yaml.v3"
)

// rawDocument mirrors the on-disk schema document shape. Both the YAML and
// JSON decoders funnel through it before descriptor construction so the two
// formats cannot drift.
type rawDocument struct {
	Name   string     `json:"name" yaml:"name"`
	Fields []rawField `json:"fields" yaml:"fields"`
}

type rawField struct {
	Name        string `json:"name" yaml:"name"`
	Type        string `json:"type" yaml:"type"`
	Format      string `json:"format" yaml:"format"`
	Required    bool   `json:"required" yaml:"required"`
	Default     any    `json:"default" yaml:"default"`
	Title       string `json:"title" yaml:"title"`
	Description string `json:"description" yaml:"description"`
	Enum        []any  `json:"enum" yaml:"enum"`

	Minimum          *float64 `json:"minimum" yaml:"minimum"`
	Maximum          *float64 `json:"maximum" yaml:"maximum"`
	ExclusiveMinimum bool     `json:"exclusiveMinimum" yaml:"exclusiveMinimum"`
	ExclusiveMaximum bool     `json:"exclusiveMaximum" yaml:"exclusiveMaximum"`
	MinLength        *int     `json:"minLength" yaml:"minLength"`
	MaxLength        *int     `json:"maxLength" yaml:"maxLength"`
	Pattern          string   `json:"pattern" yaml:"pattern"`
}

// ParseYAML decodes a YAML schema document into a Descriptor.
func ParseYAML(raw []byte) (Descriptor, error) {
	if len(raw) == 0 {
		return Descriptor{}, errors.New("schema: empty document")
	}
	var doc rawDocument
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return Descriptor{}, fmt.Errorf("schema: decode yaml document: %w", err)
	}
	return doc.descriptor()
}

// ParseJSON decodes a JSON schema document into a Descriptor.
func ParseJSON(raw []byte) (Descriptor, error) {
	if len(raw) == 0 {
		return Descriptor{}, errors.New("schema: empty document")
	}
	var doc rawDocument
	if err := json.Unmarshal(raw, &doc); err != nil {
		return Descriptor{}, fmt.Errorf("schema: decode json document: %w", err)
	}
	return doc.descriptor()
}

func (doc rawDocument) descriptor() (Descriptor, error) {
	desc := Descriptor{Name: doc.Name}
	for _, entry := range doc.Fields {
		if entry.Name == "" {
			return Descriptor{}, errors.New("schema: document field missing name")
		}
		if !KnownFieldType(entry.Type) {
			return Descriptor{}, fmt.Errorf("schema: field %q declares unknown type %q", entry.Name, entry.Type)
		}
		desc.Fields = append(desc.Fields, Field{
			Name:             entry.Name,
			Type:             FieldType(entry.Type),
			Format:           entry.Format,
			Required:         entry.Required,
			Default:          entry.Default,
			Title:            SanitizeText(entry.Title),
			Description:      SanitizeText(entry.Description),
			Enum:             append([]any(nil), entry.Enum...),
			Minimum:          entry.Minimum,
			Maximum:          entry.Maximum,
			ExclusiveMinimum: entry.ExclusiveMinimum,
			ExclusiveMaximum: entry.ExclusiveMaximum,
			MinLength:        entry.MinLength,
			MaxLength:        entry.MaxLength,
			Pattern:          entry.Pattern,
		})
	}
	if err := desc.Validate(); err != nil {
		return Descriptor{}, err
	}
	return desc, nil
}
