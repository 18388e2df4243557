// Package form adapts a schema descriptor into a web form: one form field
// per descriptor field with a widget inferred from the declared type, plus a
// binding layer that validates a raw submission and reports the outcome
// through per-field error lists and a cleaned-data mapping.
package form

import (
	"bytes"
	"errors"
	"fmt"
	"net/url"

	"github.com/goccy/go-json"

	"github.com/goliatone/go-formbind/pkg/schema"
	"github.com/goliatone/go-formbind/pkg/validate"
	"github.com/goliatone/go-formbind/pkg/widgets"
)

// ErrMissingDescriptor is returned when a definition is built without a
// schema descriptor to mirror.
var ErrMissingDescriptor = errors.New("form: definition requires a schema descriptor")

// Definition is the configuration-checked form shape for one schema type.
// Build it once per descriptor; every check that can fail from configuration
// alone (unknown types, duplicate names, unmapped widgets, bad defaults)
// happens here so binding a submission can never trip over them.
type Definition struct {
	desc   schema.Descriptor
	fields []Field
}

// Options configures definition construction.
type Options struct {
	// Registry resolves widget kinds. Defaults to the built-in table.
	Registry *widgets.Registry
	// Labeler derives display labels from field names. Defaults to
	// DefaultLabeler.
	Labeler func(string) string
}

// Option mutates Options during construction.
type Option func(*Options)

// WithRegistry overrides the widget registry consulted per field.
func WithRegistry(reg *widgets.Registry) Option {
	return func(opts *Options) {
		opts.Registry = reg
	}
}

// WithLabeler overrides label derivation.
func WithLabeler(labeler func(string) string) Option {
	return func(opts *Options) {
		opts.Labeler = labeler
	}
}

// NewDefinition builds the form definition for a descriptor. Every
// descriptor field becomes exactly one form field, in table order. A field
// whose type resolves to no widget fails construction with an error naming
// the field and its declared type.
func NewDefinition(desc schema.Descriptor, options ...Option) (*Definition, error) {
	opts := Options{
		Registry: widgets.NewRegistry(),
		Labeler:  DefaultLabeler,
	}
	for _, opt := range options {
		opt(&opts)
	}
	if opts.Registry == nil {
		opts.Registry = widgets.NewRegistry()
	}
	if opts.Labeler == nil {
		opts.Labeler = DefaultLabeler
	}

	if len(desc.Fields) == 0 {
		return nil, ErrMissingDescriptor
	}
	if err := desc.Validate(); err != nil {
		return nil, fmt.Errorf("form: invalid descriptor: %w", err)
	}

	fields := make([]Field, 0, len(desc.Fields))
	for _, entry := range desc.Fields {
		widget, err := opts.Registry.Resolve(entry)
		if err != nil {
			return nil, fmt.Errorf("form: %w", err)
		}
		if err := validate.CheckDefault(entry); err != nil {
			return nil, fmt.Errorf("form: %w", err)
		}
		label := entry.Title
		if label == "" {
			label = opts.Labeler(entry.Name)
		}
		fields = append(fields, Field{
			Name:     entry.Name,
			Type:     entry.Type,
			Widget:   widget,
			Format:   entry.Format,
			Required: entry.Required,
			Label:    label,
			Help:     entry.Description,
			Default:  entry.Default,
			Enum:     append([]any(nil), entry.Enum...),
		})
	}

	return &Definition{desc: desc, fields: fields}, nil
}

// MustDefinition panics when the definition cannot be built. Useful for
// package-level declarations where the descriptor is a compile-time fixture.
func MustDefinition(desc schema.Descriptor, options ...Option) *Definition {
	def, err := NewDefinition(desc, options...)
	if err != nil {
		panic(err)
	}
	return def
}

// Descriptor returns the schema descriptor the definition mirrors.
func (d *Definition) Descriptor() schema.Descriptor {
	return d.desc
}

// Fields returns the form fields in descriptor order.
func (d *Definition) Fields() []Field {
	return append([]Field(nil), d.fields...)
}

// Field looks up a form field by name.
func (d *Definition) Field(name string) (Field, bool) {
	for _, field := range d.fields {
		if field.Name == name {
			return field, true
		}
	}
	return Field{}, false
}

// Bind creates a request-scoped form around a raw submission mapping. The
// mapping is not validated until IsValid runs.
func (d *Definition) Bind(values map[string]any) *Form {
	cloned := make(map[string]any, len(values))
	for key, value := range values {
		cloned[key] = value
	}
	return &Form{def: d, raw: cloned, bound: true}
}

// BindValues adapts url.Values submissions (form posts, query strings). Only
// the first value per key is considered.
func (d *Definition) BindValues(values url.Values) *Form {
	raw := make(map[string]any, len(values))
	for key, entries := range values {
		if len(entries) == 0 {
			continue
		}
		raw[key] = entries[0]
	}
	return &Form{def: d, raw: raw, bound: true}
}

// BindJSON decodes a JSON object payload and binds it. Numbers decode as
// json.Number so integer fields survive without precision loss.
func (d *Definition) BindJSON(payload []byte) (*Form, error) {
	decoder := json.NewDecoder(bytes.NewReader(payload))
	decoder.UseNumber()

	var raw map[string]any
	if err := decoder.Decode(&raw); err != nil {
		return nil, fmt.Errorf("form: decode json submission: %w", err)
	}
	return d.Bind(raw), nil
}
