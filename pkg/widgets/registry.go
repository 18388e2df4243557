// Package widgets owns the type-to-widget mapping consulted when a form
// definition is built. The table is explicit and closed: a descriptor field
// whose type and format resolve to nothing is a configuration error surfaced
// at definition time, never at submission time.
package widgets

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/goliatone/go-formbind/pkg/schema"
)

// Built-in widget identifiers exposed by the registry.
const (
	WidgetText     = "text"
	WidgetTextarea = "textarea"
	WidgetEmail    = "email"
	WidgetPassword = "password"
	WidgetURL      = "url"
	WidgetNumber   = "number"
	WidgetCheckbox = "checkbox"
	WidgetSelect   = "select"
	WidgetDate     = "date"
	WidgetDateTime = "datetime-local"
)

// UnmappedTypeError reports a descriptor field the mapping table cannot
// place. It carries the field name and declared type so configuration
// mistakes read back in schema terms.
type UnmappedTypeError struct {
	Field string
	Type  schema.FieldType
}

func (e UnmappedTypeError) Error() string {
	return fmt.Sprintf("widgets: no widget mapped for field %q of type %q", e.Field, e.Type)
}

// Matcher decides whether a widget should handle the supplied field.
type Matcher func(field schema.Field) bool

type rule struct {
	name     string
	priority int
	match    Matcher
	order    int
}

// Registry resolves widget kinds for descriptor fields. Higher priority wins;
// ties fall back to registration order.
type Registry struct {
	mu    sync.RWMutex
	rules []rule
}

// NewRegistry constructs a registry with the built-in mapping table
// registered.
func NewRegistry() *Registry {
	reg := &Registry{}
	reg.registerBuiltins()
	return reg
}

// Register adds a widget matcher with the provided name and priority. Higher
// priority values take precedence over the built-ins.
func (r *Registry) Register(name string, priority int, matcher Matcher) {
	if r == nil || matcher == nil {
		return
	}
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	r.rules = append(r.rules, rule{
		name:     trimmed,
		priority: priority,
		match:    matcher,
		order:    len(r.rules),
	})
}

// Resolve returns the widget kind for a field, or an UnmappedTypeError when
// no table entry accepts it.
func (r *Registry) Resolve(field schema.Field) (string, error) {
	if r == nil {
		return "", UnmappedTypeError{Field: field.Name, Type: field.Type}
	}
	r.mu.RLock()
	rules := append([]rule(nil), r.rules...)
	r.mu.RUnlock()

	sort.SliceStable(rules, func(i, j int) bool {
		if rules[i].priority == rules[j].priority {
			return rules[i].order < rules[j].order
		}
		return rules[i].priority > rules[j].priority
	})
	for _, entry := range rules {
		if entry.match(field) {
			return entry.name, nil
		}
	}
	return "", UnmappedTypeError{Field: field.Name, Type: field.Type}
}

func (r *Registry) registerBuiltins() {
	r.Register(WidgetSelect, 90, func(field schema.Field) bool {
		return len(field.Enum) > 0 && field.Type != schema.FieldTypeBoolean
	})

	r.Register(WidgetCheckbox, 80, func(field schema.Field) bool {
		return field.Type == schema.FieldTypeBoolean
	})

	r.Register(WidgetEmail, 70, func(field schema.Field) bool {
		return field.Type == schema.FieldTypeString && normalizedFormat(field) == "email"
	})

	r.Register(WidgetPassword, 70, func(field schema.Field) bool {
		return field.Type == schema.FieldTypeString && normalizedFormat(field) == "password"
	})

	r.Register(WidgetURL, 70, func(field schema.Field) bool {
		format := normalizedFormat(field)
		return field.Type == schema.FieldTypeString && (format == "uri" || format == "url")
	})

	r.Register(WidgetTextarea, 60, func(field schema.Field) bool {
		return field.Type == schema.FieldTypeString && normalizedFormat(field) == "multiline"
	})

	r.Register(WidgetText, 50, func(field schema.Field) bool {
		return field.Type == schema.FieldTypeString
	})

	r.Register(WidgetNumber, 50, func(field schema.Field) bool {
		return field.Type == schema.FieldTypeInteger || field.Type == schema.FieldTypeNumber
	})

	r.Register(WidgetDate, 50, func(field schema.Field) bool {
		return field.Type == schema.FieldTypeDate
	})

	r.Register(WidgetDateTime, 50, func(field schema.Field) bool {
		return field.Type == schema.FieldTypeDateTime
	})
}

func normalizedFormat(field schema.Field) string {
	return strings.ToLower(strings.TrimSpace(field.Format))
}
