package form

import "github.com/goliatone/go-formbind/pkg/schema"

// Field models one input in a definition. It mirrors a descriptor field
// one-to-one: the name set of a definition's fields always equals the name
// set of the descriptor it was built from.
type Field struct {
	Name     string
	Type     schema.FieldType
	Widget   string
	Format   string
	Required bool
	Label    string
	Help     string
	Default  any
	Enum     []any
}
