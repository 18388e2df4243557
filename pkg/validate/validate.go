// Package validate applies a schema descriptor to a raw submission mapping.
// It is the single validation entry point behind form binding: callers get
// back either a fully coerced value mapping or a structured issue list, never
// both and never a panic.
package validate

import (
	"fmt"
	"regexp"
	"time"

	"github.com/goliatone/go-formbind/pkg/schema"
)

// Apply validates values against the descriptor. On success the returned
// issue slice is empty and the mapping holds one coerced entry per satisfied
// field (declared defaults fill absent fields). On failure the
// mapping is nil and every constraint violation is reported; Apply never
// stops at the first issue.
//
// Submitted keys that match no descriptor field are ignored, mirroring how
// web forms discard inputs they never declared.
func Apply(desc schema.Descriptor, values map[string]any) (map[string]any, []Issue) {
	cleaned := make(map[string]any, len(desc.Fields))
	var issues []Issue

	for _, field := range desc.Fields {
		value, present := values[field.Name]
		if present && isBlank(value) && field.Type != schema.FieldTypeString {
			// Browsers submit empty strings for untouched inputs; treat
			// them as absent for every non-text field.
			present = false
		}

		if !present {
			switch {
			case field.Default != nil:
				coerced, err := coerceValue(field, field.Default)
				if err != nil {
					issues = append(issues, issueAt(field.Name, CodeType, capitalize(err.Error())+"."))
					continue
				}
				issues = append(issues, checkConstraints(field, coerced)...)
				cleaned[field.Name] = coerced
			case field.Required:
				issues = append(issues, issueAt(field.Name, CodeRequired, "This field is required."))
			case field.Type == schema.FieldTypeBoolean:
				// Unchecked optional checkboxes never appear in the
				// submission.
				cleaned[field.Name] = false
			}
			continue
		}

		if isBlank(value) {
			if field.Required {
				issues = append(issues, issueAt(field.Name, CodeRequired, "This field is required."))
				continue
			}
			// Optional text input left empty: keep the empty string and skip
			// constraint checks, the way web forms treat untouched fields.
			cleaned[field.Name] = ""
			continue
		}

		coerced, err := coerceValue(field, value)
		if err != nil {
			issues = append(issues, issueAt(field.Name, CodeType, capitalize(err.Error())+"."))
			continue
		}

		issues = append(issues, checkConstraints(field, coerced)...)
		cleaned[field.Name] = coerced
	}

	if len(issues) > 0 {
		return nil, issues
	}
	return cleaned, nil
}

// CheckDefault verifies that a field's declared default coerces to the
// field's type and satisfies its own constraints. Definition construction
// calls this per field so a malformed default is a configuration error, not
// a per-submission validation failure.
func CheckDefault(field schema.Field) error {
	if field.Default == nil {
		return nil
	}
	coerced, err := coerceValue(field, field.Default)
	if err != nil {
		return fmt.Errorf("validate: default for field %q: %s", field.Name, err)
	}
	if issues := checkConstraints(field, coerced); len(issues) > 0 {
		return fmt.Errorf("validate: default for field %q: %s", field.Name, issues[0].Message)
	}
	return nil
}

func isBlank(value any) bool {
	str, ok := value.(string)
	return ok && str == ""
}

func checkConstraints(field schema.Field, value any) []Issue {
	var issues []Issue

	if str, ok := value.(string); ok {
		issues = append(issues, checkStringConstraints(field, str)...)
	}
	if num, ok := numericValue(value); ok {
		issues = append(issues, checkBounds(field, num)...)
	}
	if len(field.Enum) > 0 && !enumContains(field.Enum, value) {
		issues = append(issues, issueAt(field.Name, CodeEnum,
			fmt.Sprintf("Select a valid choice. %v is not one of the available choices.", value)))
	}

	return issues
}

func checkStringConstraints(field schema.Field, value string) []Issue {
	var issues []Issue
	length := len([]rune(value))

	if field.MinLength != nil && length < *field.MinLength {
		issues = append(issues, issueAt(field.Name, CodeMinLength,
			fmt.Sprintf("Ensure this value has at least %d characters (it has %d).", *field.MinLength, length)))
	}
	if field.MaxLength != nil && length > *field.MaxLength {
		issues = append(issues, issueAt(field.Name, CodeMaxLength,
			fmt.Sprintf("Ensure this value has at most %d characters (it has %d).", *field.MaxLength, length)))
	}
	if field.Pattern != "" {
		if re, err := regexp.Compile(field.Pattern); err == nil && !re.MatchString(value) {
			issues = append(issues, issueAt(field.Name, CodePattern,
				"Enter a value matching the required pattern."))
		}
	}
	return issues
}

func checkBounds(field schema.Field, value float64) []Issue {
	var issues []Issue

	if field.Minimum != nil {
		min := *field.Minimum
		if field.ExclusiveMinimum && value <= min {
			issues = append(issues, issueAt(field.Name, CodeMin,
				fmt.Sprintf("Ensure this value is greater than %v.", min)))
		} else if !field.ExclusiveMinimum && value < min {
			issues = append(issues, issueAt(field.Name, CodeMin,
				fmt.Sprintf("Ensure this value is greater than or equal to %v.", min)))
		}
	}
	if field.Maximum != nil {
		max := *field.Maximum
		if field.ExclusiveMaximum && value >= max {
			issues = append(issues, issueAt(field.Name, CodeMax,
				fmt.Sprintf("Ensure this value is less than %v.", max)))
		} else if !field.ExclusiveMaximum && value > max {
			issues = append(issues, issueAt(field.Name, CodeMax,
				fmt.Sprintf("Ensure this value is less than or equal to %v.", max)))
		}
	}
	return issues
}

func numericValue(value any) (float64, bool) {
	switch v := value.(type) {
	case int64:
		return float64(v), true
	case float64:
		return v, true
	}
	return 0, false
}

func enumContains(enum []any, value any) bool {
	for _, candidate := range enum {
		if equalEnumValue(candidate, value) {
			return true
		}
	}
	return false
}

// equalEnumValue compares loosely across the numeric types document decoding
// produces: a YAML enum of [1, 2] must match an int64 coerced from "2".
func equalEnumValue(candidate, value any) bool {
	if cn, ok := anyNumeric(candidate); ok {
		if vn, vok := anyNumeric(value); vok {
			return cn == vn
		}
		return false
	}
	if t, ok := value.(time.Time); ok {
		return fmt.Sprint(candidate) == t.Format(time.RFC3339)
	}
	return fmt.Sprint(candidate) == fmt.Sprint(value)
}

func anyNumeric(value any) (float64, bool) {
	switch v := value.(type) {
	case int:
		return float64(v), true
	case int32:
		return float64(v), true
	case int64:
		return float64(v), true
	case float32:
		return float64(v), true
	case float64:
		return v, true
	}
	return 0, false
}

func capitalize(msg string) string {
	if msg == "" {
		return msg
	}
	if msg[0] >= 'a' && msg[0] <= 'z' {
		return string(msg[0]-'a'+'A') + msg[1:]
	}
	return msg
}
