package validate

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-json"

	"github.com/goliatone/go-formbind/pkg/schema"
)

const (
	dateLayout = "2006-01-02"
)

// coerceValue turns a raw submitted value into the typed value the field
// declares. Submissions arrive either as strings (form posts) or as decoded
// JSON values, so every branch accepts both shapes.
func coerceValue(field schema.Field, value any) (any, error) {
	switch field.Type {
	case schema.FieldTypeString:
		return coerceString(value)
	case schema.FieldTypeInteger:
		return coerceInteger(value)
	case schema.FieldTypeNumber:
		return coerceNumber(value)
	case schema.FieldTypeBoolean:
		return coerceBoolean(value)
	case schema.FieldTypeDate:
		return coerceTime(value, dateLayout, "date")
	case schema.FieldTypeDateTime:
		return coerceTime(value, time.RFC3339, "datetime")
	}
	return nil, fmt.Errorf("value of type %q is not supported", field.Type)
}

func coerceString(value any) (any, error) {
	str, ok := value.(string)
	if !ok {
		return nil, fmt.Errorf("expected a string, got %T", value)
	}
	return str, nil
}

func coerceInteger(value any) (any, error) {
	switch v := value.(type) {
	case int:
		return int64(v), nil
	case int32:
		return int64(v), nil
	case int64:
		return v, nil
	case float64:
		if v != math.Trunc(v) {
			return nil, fmt.Errorf("expected an integer, got %v", v)
		}
		return int64(v), nil
	case json.Number:
		parsed, err := v.Int64()
		if err != nil {
			return nil, fmt.Errorf("expected an integer, got %q", v.String())
		}
		return parsed, nil
	case string:
		trimmed := strings.TrimSpace(v)
		parsed, err := strconv.ParseInt(trimmed, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("expected an integer, got %q", v)
		}
		return parsed, nil
	}
	return nil, fmt.Errorf("expected an integer, got %T", value)
}

func coerceNumber(value any) (any, error) {
	switch v := value.(type) {
	case float64:
		return v, nil
	case float32:
		return float64(v), nil
	case int:
		return float64(v), nil
	case int64:
		return float64(v), nil
	case json.Number:
		parsed, err := v.Float64()
		if err != nil {
			return nil, fmt.Errorf("expected a number, got %q", v.String())
		}
		return parsed, nil
	case string:
		trimmed := strings.TrimSpace(v)
		parsed, err := strconv.ParseFloat(trimmed, 64)
		if err != nil {
			return nil, fmt.Errorf("expected a number, got %q", v)
		}
		return parsed, nil
	}
	return nil, fmt.Errorf("expected a number, got %T", value)
}

// coerceBoolean accepts native bools plus the encodings browsers and form
// middleware produce for checkboxes.
func coerceBoolean(value any) (any, error) {
	switch v := value.(type) {
	case bool:
		return v, nil
	case string:
		switch strings.ToLower(strings.TrimSpace(v)) {
		case "true", "on", "1", "yes":
			return true, nil
		case "false", "off", "0", "no", "":
			return false, nil
		}
		return nil, fmt.Errorf("expected a boolean, got %q", v)
	}
	return nil, fmt.Errorf("expected a boolean, got %T", value)
}

func coerceTime(value any, layout, kind string) (any, error) {
	switch v := value.(type) {
	case time.Time:
		return v, nil
	case string:
		parsed, err := time.Parse(layout, strings.TrimSpace(v))
		if err != nil {
			return nil, fmt.Errorf("expected a %s in %q format, got %q", kind, layout, v)
		}
		return parsed, nil
	}
	return nil, fmt.Errorf("expected a %s, got %T", kind, value)
}
