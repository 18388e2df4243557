package form

import (
	"github.com/goliatone/go-formbind/pkg/validate"
)

// Form is one bound submission against a definition. A form instance
// validates exactly one submission: IsValid runs the schema validation once
// and every later call replays the stored outcome. Instances hold no shared
// state and are meant to be constructed and discarded per request.
type Form struct {
	def   *Definition
	raw   map[string]any
	bound bool

	validated      bool
	valid          bool
	cleaned        map[string]any
	fieldErrors    map[string][]string
	nonFieldErrors []string
}

// IsValid reports whether the bound submission satisfies the schema. An
// unbound form is never valid. Validation failures land in Errors and
// NonFieldErrors; they are reported, never raised.
func (f *Form) IsValid() bool {
	f.validate()
	return f.valid
}

// CleanedData returns the validated, coerced value mapping. It is nil until
// IsValid has reported true. Callers get a copy: the stored outcome never
// changes after validation.
func (f *Form) CleanedData() map[string]any {
	f.validate()
	if !f.valid {
		return nil
	}
	out := make(map[string]any, len(f.cleaned))
	for key, value := range f.cleaned {
		out[key] = value
	}
	return out
}

// Errors returns per-field error messages keyed by field name, in the order
// the validator reported them. The map is empty when the form is valid or
// unbound; callers get a copy.
func (f *Form) Errors() map[string][]string {
	f.validate()
	out := make(map[string][]string, len(f.fieldErrors))
	for name, messages := range f.fieldErrors {
		out[name] = append([]string(nil), messages...)
	}
	return out
}

// FieldErrors returns the messages recorded for one field.
func (f *Form) FieldErrors(name string) []string {
	f.validate()
	return append([]string(nil), f.fieldErrors[name]...)
}

// NonFieldErrors returns messages whose path matched no declared field.
func (f *Form) NonFieldErrors() []string {
	f.validate()
	return append([]string(nil), f.nonFieldErrors...)
}

// Fields exposes the definition's fields so callers can render the form.
func (f *Form) Fields() []Field {
	return f.def.Fields()
}

// validate runs the schema validation exactly once per form instance and
// files each issue under the first segment of its path. Issues whose first
// segment names no declared field become form-level errors.
func (f *Form) validate() {
	if f.validated {
		return
	}
	f.validated = true
	f.fieldErrors = make(map[string][]string)

	if !f.bound {
		return
	}

	cleaned, issues := validate.Apply(f.def.desc, f.raw)
	if len(issues) == 0 {
		f.valid = true
		f.cleaned = cleaned
		return
	}
	f.fileIssues(issues)
}

// fileIssues routes each issue onto the error list of the field named by the
// first segment of its path. Issues whose first segment matches no declared
// field land on the form-level list.
func (f *Form) fileIssues(issues []validate.Issue) {
	for _, issue := range issues {
		name := issue.FieldName()
		if _, known := f.def.Field(name); known {
			f.fieldErrors[name] = append(f.fieldErrors[name], issue.Message)
			continue
		}
		f.nonFieldErrors = append(f.nonFieldErrors, issue.Message)
	}
}
