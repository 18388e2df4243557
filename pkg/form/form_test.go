package form

import (
	"errors"
	"net/url"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formbind/pkg/schema"
	"github.com/goliatone/go-formbind/pkg/validate"
	"github.com/goliatone/go-formbind/pkg/widgets"
)

func fooBarDescriptor() schema.Descriptor {
	return schema.Descriptor{
		Name: "foobar",
		Fields: []schema.Field{
			{Name: "foo", Type: schema.FieldTypeString, Required: true},
			{Name: "bar", Type: schema.FieldTypeInteger, Required: true},
		},
	}
}

func TestNewDefinitionMirrorsFieldSet(t *testing.T) {
	def, err := NewDefinition(fooBarDescriptor())
	if err != nil {
		t.Fatalf("NewDefinition returned error: %v", err)
	}

	var names []string
	for _, field := range def.Fields() {
		names = append(names, field.Name)
	}
	if diff := cmp.Diff(def.Descriptor().FieldNames(), names); diff != "" {
		t.Fatalf("form fields must mirror schema fields (-schema +form):\n%s", diff)
	}
}

func TestNewDefinitionWidgetsAndLabels(t *testing.T) {
	desc := schema.Descriptor{
		Fields: []schema.Field{
			{Name: "email_address", Type: schema.FieldTypeString, Format: "email", Required: true, Description: "Where we reach you"},
			{Name: "age", Type: schema.FieldTypeInteger},
			{Name: "subscribed", Type: schema.FieldTypeBoolean, Default: true},
			{Name: "plan", Type: schema.FieldTypeString, Enum: []any{"free", "pro"}},
		},
	}

	def, err := NewDefinition(desc)
	if err != nil {
		t.Fatalf("NewDefinition returned error: %v", err)
	}

	email, _ := def.Field("email_address")
	if email.Widget != widgets.WidgetEmail {
		t.Fatalf("expected email widget, got %q", email.Widget)
	}
	if email.Label != "Email Address" {
		t.Fatalf("expected derived label, got %q", email.Label)
	}
	if email.Help != "Where we reach you" {
		t.Fatalf("expected description carried as help text, got %q", email.Help)
	}

	age, _ := def.Field("age")
	if age.Widget != widgets.WidgetNumber || age.Required {
		t.Fatalf("unexpected age field: %+v", age)
	}

	subscribed, _ := def.Field("subscribed")
	if subscribed.Widget != widgets.WidgetCheckbox || subscribed.Default != true {
		t.Fatalf("unexpected subscribed field: %+v", subscribed)
	}

	plan, _ := def.Field("plan")
	if plan.Widget != widgets.WidgetSelect {
		t.Fatalf("expected select for enum field, got %q", plan.Widget)
	}
}

func TestNewDefinitionTitleOverridesLabel(t *testing.T) {
	desc := schema.Descriptor{
		Fields: []schema.Field{
			{Name: "dob", Type: schema.FieldTypeDate, Title: "Date of birth"},
			{Name: "nickname", Type: schema.FieldTypeString},
		},
	}

	def, err := NewDefinition(desc)
	if err != nil {
		t.Fatalf("NewDefinition returned error: %v", err)
	}

	dob, _ := def.Field("dob")
	if dob.Label != "Date of birth" {
		t.Fatalf("expected declared title to win, got %q", dob.Label)
	}
	nickname, _ := def.Field("nickname")
	if nickname.Label != "Nickname" {
		t.Fatalf("expected derived label for untitled field, got %q", nickname.Label)
	}
}

func TestNewDefinitionConfigurationErrors(t *testing.T) {
	t.Run("missing descriptor", func(t *testing.T) {
		if _, err := NewDefinition(schema.Descriptor{}); !errors.Is(err, ErrMissingDescriptor) {
			t.Fatalf("expected ErrMissingDescriptor, got %v", err)
		}
	})

	t.Run("unknown field type names the field", func(t *testing.T) {
		desc := schema.Descriptor{
			Fields: []schema.Field{
				{Name: "payload", Type: schema.FieldType("geo-point")},
			},
		}
		_, err := NewDefinition(desc)
		if err == nil {
			t.Fatal("expected configuration error")
		}
		if !strings.Contains(err.Error(), `"payload"`) || !strings.Contains(err.Error(), `"geo-point"`) {
			t.Fatalf("error should name field and type, got %v", err)
		}
	})

	t.Run("malformed default names the field", func(t *testing.T) {
		desc := schema.Descriptor{
			Fields: []schema.Field{
				{Name: "retries", Type: schema.FieldTypeInteger, Default: "abc"},
			},
		}
		_, err := NewDefinition(desc)
		if err == nil {
			t.Fatal("expected configuration error for malformed default")
		}
		if !strings.Contains(err.Error(), `default for field "retries"`) {
			t.Fatalf("error should name the field, got %v", err)
		}
	})

	t.Run("boolean default garbage is rejected", func(t *testing.T) {
		desc := schema.Descriptor{
			Fields: []schema.Field{
				{Name: "subscribed", Type: schema.FieldTypeBoolean, Default: "banana"},
			},
		}
		if _, err := NewDefinition(desc); err == nil {
			t.Fatal("expected configuration error, not a silent false")
		}
	})

	t.Run("default outside enum is rejected", func(t *testing.T) {
		desc := schema.Descriptor{
			Fields: []schema.Field{
				{Name: "plan", Type: schema.FieldTypeString, Default: "platinum", Enum: []any{"free", "pro"}},
			},
		}
		_, err := NewDefinition(desc)
		if err == nil || !strings.Contains(err.Error(), `default for field "plan"`) {
			t.Fatalf("expected enum-violating default to fail construction, got %v", err)
		}
	})

	t.Run("unmapped widget surfaces at construction", func(t *testing.T) {
		_, err := NewDefinition(fooBarDescriptor(), WithRegistry(&widgets.Registry{}))
		if err == nil {
			t.Fatal("expected configuration error")
		}
		var unmapped widgets.UnmappedTypeError
		if !errors.As(err, &unmapped) {
			t.Fatalf("expected UnmappedTypeError, got %v", err)
		}
		if unmapped.Field != "foo" {
			t.Fatalf("error should name the first unmappable field, got %+v", unmapped)
		}
	})
}

func TestFormValidSubmission(t *testing.T) {
	def, err := NewDefinition(fooBarDescriptor())
	if err != nil {
		t.Fatalf("NewDefinition returned error: %v", err)
	}

	f := def.Bind(map[string]any{"foo": "fooval", "bar": 12})
	if !f.IsValid() {
		t.Fatalf("expected valid submission, errors: %v", f.Errors())
	}

	want := map[string]any{"foo": "fooval", "bar": int64(12)}
	if diff := cmp.Diff(want, f.CleanedData()); diff != "" {
		t.Fatalf("cleaned data mismatch (-want +got):\n%s", diff)
	}
	if len(f.Errors()) != 0 || len(f.NonFieldErrors()) != 0 {
		t.Fatalf("expected no errors, got %v / %v", f.Errors(), f.NonFieldErrors())
	}
}

func TestFormInvalidSubmission(t *testing.T) {
	def, err := NewDefinition(fooBarDescriptor())
	if err != nil {
		t.Fatalf("NewDefinition returned error: %v", err)
	}

	f := def.Bind(map[string]any{"foo": "fooval", "bar": "not-an-int"})
	if f.IsValid() {
		t.Fatal("expected invalid submission")
	}
	if f.CleanedData() != nil {
		t.Fatalf("expected nil cleaned data, got %v", f.CleanedData())
	}

	errs := f.Errors()
	if len(errs) != 1 {
		t.Fatalf("expected errors under exactly one field, got %v", errs)
	}
	if msgs := f.FieldErrors("bar"); len(msgs) == 0 {
		t.Fatal("expected messages under bar")
	}
	if msgs := f.FieldErrors("foo"); len(msgs) != 0 {
		t.Fatalf("expected no messages under foo, got %v", msgs)
	}
}

func TestFormUnboundIsNeverValid(t *testing.T) {
	def, err := NewDefinition(fooBarDescriptor())
	if err != nil {
		t.Fatalf("NewDefinition returned error: %v", err)
	}

	f := &Form{def: def}
	if f.IsValid() {
		t.Fatal("unbound form must not validate")
	}
	if len(f.Errors()) != 0 {
		t.Fatalf("unbound form should carry no errors, got %v", f.Errors())
	}
}

func TestFormBindValues(t *testing.T) {
	def, err := NewDefinition(fooBarDescriptor())
	if err != nil {
		t.Fatalf("NewDefinition returned error: %v", err)
	}

	f := def.BindValues(url.Values{
		"foo": {"fooval"},
		"bar": {"12"},
	})
	if !f.IsValid() {
		t.Fatalf("expected form post to validate, errors: %v", f.Errors())
	}
	if f.CleanedData()["bar"] != int64(12) {
		t.Fatalf("expected coerced integer, got %[1]v (%[1]T)", f.CleanedData()["bar"])
	}
}

func TestFormBindJSON(t *testing.T) {
	def, err := NewDefinition(fooBarDescriptor())
	if err != nil {
		t.Fatalf("NewDefinition returned error: %v", err)
	}

	f, err := def.BindJSON([]byte(`{"foo": "fooval", "bar": 12}`))
	if err != nil {
		t.Fatalf("BindJSON returned error: %v", err)
	}
	if !f.IsValid() {
		t.Fatalf("expected JSON submission to validate, errors: %v", f.Errors())
	}
	if f.CleanedData()["bar"] != int64(12) {
		t.Fatalf("expected json.Number coerced to int64, got %[1]v (%[1]T)", f.CleanedData()["bar"])
	}

	if _, err := def.BindJSON([]byte(`not-json`)); err == nil {
		t.Fatal("expected malformed payload to error")
	}
}

func TestFormValidatesOnce(t *testing.T) {
	def, err := NewDefinition(fooBarDescriptor())
	if err != nil {
		t.Fatalf("NewDefinition returned error: %v", err)
	}

	f := def.Bind(map[string]any{"foo": "fooval", "bar": 12})
	if !f.IsValid() || !f.IsValid() {
		t.Fatal("repeated IsValid calls must replay the stored outcome")
	}

	first := f.CleanedData()
	second := f.CleanedData()
	if diff := cmp.Diff(first, second); diff != "" {
		t.Fatalf("cleaned data changed between calls:\n%s", diff)
	}
}

func TestFormAccessorsReturnCopies(t *testing.T) {
	def, err := NewDefinition(fooBarDescriptor())
	if err != nil {
		t.Fatalf("NewDefinition returned error: %v", err)
	}

	valid := def.Bind(map[string]any{"foo": "fooval", "bar": 12})
	if !valid.IsValid() {
		t.Fatalf("expected valid submission, errors: %v", valid.Errors())
	}
	data := valid.CleanedData()
	data["foo"] = "tampered"
	data["extra"] = true
	if diff := cmp.Diff(map[string]any{"foo": "fooval", "bar": int64(12)}, valid.CleanedData()); diff != "" {
		t.Fatalf("cleaned data must not observe caller mutation (-want +got):\n%s", diff)
	}

	invalid := def.Bind(map[string]any{"foo": "fooval", "bar": "nope"})
	if invalid.IsValid() {
		t.Fatal("expected invalid submission")
	}
	errs := invalid.Errors()
	errs["bar"] = append(errs["bar"], "injected")
	errs["foo"] = []string{"injected"}
	if msgs := invalid.FieldErrors("bar"); len(msgs) != 1 {
		t.Fatalf("stored errors must not observe caller mutation, got %v", msgs)
	}
	if msgs := invalid.FieldErrors("foo"); len(msgs) != 0 {
		t.Fatalf("expected foo untouched, got %v", msgs)
	}
}

func TestFormRoutesUnknownPathsToNonFieldErrors(t *testing.T) {
	def, err := NewDefinition(fooBarDescriptor())
	if err != nil {
		t.Fatalf("NewDefinition returned error: %v", err)
	}

	f := def.Bind(map[string]any{})
	f.validated = true
	f.fieldErrors = make(map[string][]string)
	f.fileIssues([]validate.Issue{
		{Path: "bar.nested", Code: validate.CodeType, Message: "nested failure"},
		{Path: "ghost", Code: validate.CodeRequired, Message: "no such field"},
	})

	if msgs := f.FieldErrors("bar"); len(msgs) != 1 || msgs[0] != "nested failure" {
		t.Fatalf("expected dotted path filed under its first segment, got %v", msgs)
	}
	if diff := cmp.Diff([]string{"no such field"}, f.NonFieldErrors()); diff != "" {
		t.Fatalf("non-field routing mismatch (-want +got):\n%s", diff)
	}
}

func TestDefaultLabeler(t *testing.T) {
	cases := []struct {
		input string
		want  string
	}{
		{input: "email_address", want: "Email Address"},
		{input: "firstName", want: "First Name"},
		{input: "zip-code", want: "Zip Code"},
		{input: "id", want: "ID"},
		{input: "avatar_url", want: "Avatar URL"},
		{input: "apiKey", want: "API Key"},
		{input: "", want: ""},
	}

	for _, tc := range cases {
		if got := DefaultLabeler(tc.input); got != tc.want {
			t.Errorf("DefaultLabeler(%q) = %q, want %q", tc.input, got, tc.want)
		}
	}
}
