// Package schema validates request records against named, versionless
// schemas. Scalar values are coerced before structural validation
// (transport layers deliver query parameters as strings), and every
// field-level problem is reported, not just the first.
package schema

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// FieldError is one field-level validation failure.
// swagger:model FieldError
type FieldError struct {
	Field  string `json:"field"`
	Reason string `json:"reason"`
}

// Type is the expected JSON type of a field.
type Type string

const (
	TypeString  Type = "string"
	TypeNumber  Type = "number"
	TypeInteger Type = "integer"
	TypeBoolean Type = "boolean"
	TypeArray   Type = "array"
)

// Recognized string formats.
const (
	FormatDateTime = "date-time"
	FormatEmail    = "email"
	FormatUUID     = "uuid"
)

// Field describes one schema field.
type Field struct {
	Type      Type
	Required  bool
	Format    string
	Enum      []string
	MinLength int
	MaxLength int
	Minimum   *float64
	MinItems  int
	Items     *Schema // element schema for arrays of objects
}

// Schema is a named-schema document: a flat set of fields.
type Schema struct {
	Fields map[string]Field
}

var formatChecker = validator.New()

// Validate checks record against the named schema. An unknown schema name
// is a programmer error and panics rather than producing a user-facing
// error. Coerced scalar values (e.g. numeric strings) are written back
// into record so callers read the typed values.
func Validate(name string, record map[string]any) (bool, []FieldError) {
	s, ok := registry[name]
	if !ok {
		panic(fmt.Sprintf("schema: unknown schema %q", name))
	}
	errs := s.validate("", record)
	return len(errs) == 0, errs
}

func (s Schema) validate(prefix string, record map[string]any) []FieldError {
	var errs []FieldError
	for name, field := range s.Fields {
		path := name
		if prefix != "" {
			path = prefix + "." + name
		}
		value, present := record[name]
		if !present || value == nil {
			if field.Required {
				errs = append(errs, FieldError{Field: path, Reason: "is required"})
			}
			continue
		}
		coerced, fieldErrs := field.check(path, value)
		if len(fieldErrs) > 0 {
			errs = append(errs, fieldErrs...)
			continue
		}
		record[name] = coerced
	}
	return errs
}

// check coerces value to the field's type and validates it. On success
// the returned value is the coerced one.
func (f Field) check(path string, value any) (any, []FieldError) {
	switch f.Type {
	case TypeString:
		s, ok := value.(string)
		if !ok {
			return value, []FieldError{{Field: path, Reason: "must be a string"}}
		}
		return s, f.checkString(path, s)
	case TypeNumber, TypeInteger:
		n, ok := coerceNumber(value)
		if !ok {
			return value, []FieldError{{Field: path, Reason: "must be a number"}}
		}
		if f.Type == TypeInteger && n != float64(int64(n)) {
			return value, []FieldError{{Field: path, Reason: "must be an integer"}}
		}
		if f.Minimum != nil && n < *f.Minimum {
			return value, []FieldError{{Field: path, Reason: fmt.Sprintf("must be >= %g", *f.Minimum)}}
		}
		return n, nil
	case TypeBoolean:
		switch v := value.(type) {
		case bool:
			return v, nil
		case string:
			if b, err := strconv.ParseBool(v); err == nil {
				return b, nil
			}
		}
		return value, []FieldError{{Field: path, Reason: "must be a boolean"}}
	case TypeArray:
		items, ok := value.([]any)
		if !ok {
			return value, []FieldError{{Field: path, Reason: "must be an array"}}
		}
		if len(items) < f.MinItems {
			return value, []FieldError{{Field: path, Reason: fmt.Sprintf("must have at least %d item(s)", f.MinItems)}}
		}
		var errs []FieldError
		if f.Items != nil {
			for i, item := range items {
				obj, ok := item.(map[string]any)
				if !ok {
					errs = append(errs, FieldError{Field: fmt.Sprintf("%s[%d]", path, i), Reason: "must be an object"})
					continue
				}
				errs = append(errs, f.Items.validate(fmt.Sprintf("%s[%d]", path, i), obj)...)
			}
		}
		return items, errs
	default:
		panic(fmt.Sprintf("schema: unknown field type %q for %s", f.Type, path))
	}
}

func (f Field) checkString(path, s string) []FieldError {
	var errs []FieldError
	if f.Required && strings.TrimSpace(s) == "" {
		return []FieldError{{Field: path, Reason: "must not be empty"}}
	}
	if f.MinLength > 0 && len(s) < f.MinLength {
		errs = append(errs, FieldError{Field: path, Reason: fmt.Sprintf("must be at least %d characters", f.MinLength)})
	}
	if f.MaxLength > 0 && len(s) > f.MaxLength {
		errs = append(errs, FieldError{Field: path, Reason: fmt.Sprintf("must be at most %d characters", f.MaxLength)})
	}
	if len(f.Enum) > 0 {
		found := false
		for _, allowed := range f.Enum {
			if s == allowed {
				found = true
				break
			}
		}
		if !found {
			errs = append(errs, FieldError{Field: path, Reason: "must be one of " + strings.Join(f.Enum, ", ")})
		}
	}
	if s != "" && f.Format != "" {
		if reason := checkFormat(f.Format, s); reason != "" {
			errs = append(errs, FieldError{Field: path, Reason: reason})
		}
	}
	return errs
}

// checkFormat returns a failure reason, or "" when the value matches.
// A structurally well-typed value that fails its format is still invalid.
func checkFormat(format, s string) string {
	switch format {
	case FormatEmail:
		if err := formatChecker.Var(s, "email"); err != nil {
			return "must be a valid email address"
		}
	case FormatDateTime:
		if err := formatChecker.Var(s, "datetime=2006-01-02T15:04:05Z07:00"); err != nil {
			return "must be an RFC 3339 date-time"
		}
	case FormatUUID:
		if _, err := uuid.Parse(s); err != nil {
			return "must be a valid UUID"
		}
	default:
		panic(fmt.Sprintf("schema: unknown format %q", format))
	}
	return ""
}

func coerceNumber(value any) (float64, bool) {
	switch v := value.(type) {
	case float64:
		return v, true
	case int:
		return float64(v), true
	case string:
		n, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return 0, false
		}
		return n, true
	}
	return 0, false
}
