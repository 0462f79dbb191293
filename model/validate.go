package model

import (
	"fmt"
	"strconv"
	"strings"
)

type FieldError struct {
	FieldID string `json:"fieldId"`
	Label   string `json:"label"`
	Message string `json:"message"`
}

func (e FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Label, e.Message)
}

// ValidateSubmission checks a live answer set against the form definition.
// Violations are collected, not short-circuited, so the client can render
// every inline message at once.
func ValidateSubmission(form FormSchema, answers AnswerSet) []FieldError {
	var errs []FieldError

	for _, f := range form.Fields {
		value, ok := answers[f.ID]
		if f.Required && (!ok || isEmptyAnswer(value)) {
			errs = append(errs, FieldError{f.ID, f.Label, "este campo es obligatorio"})
			continue
		}
		if !ok || isEmptyAnswer(value) {
			continue
		}

		switch f.Type {
		case Number, Payment:
			n, err := numericAnswer(f, value)
			if err != nil {
				errs = append(errs, FieldError{f.ID, f.Label, "debe ser un número"})
				continue
			}
			if v := f.Validation; v != nil {
				if v.Min != nil && n < *v.Min {
					errs = append(errs, FieldError{f.ID, f.Label, fmt.Sprintf("debe ser al menos %g", *v.Min)})
				}
				if v.Max != nil && n > *v.Max {
					errs = append(errs, FieldError{f.ID, f.Label, fmt.Sprintf("debe ser como máximo %g", *v.Max)})
				}
			}
		case Product:
			known := make(map[string]bool, len(f.ProductOptions))
			for _, opt := range f.ProductOptions {
				known[opt.Label] = true
			}
			for _, sel := range stringList(value) {
				if !known[sel] {
					errs = append(errs, FieldError{f.ID, f.Label, fmt.Sprintf("opción desconocida: %s", sel)})
				}
			}
		case SingleSelect:
			if len(f.Options) == 0 {
				break
			}
			sel, _ := value.(string)
			found := false
			for _, opt := range f.Options {
				if opt == sel {
					found = true
					break
				}
			}
			if !found {
				errs = append(errs, FieldError{f.ID, f.Label, fmt.Sprintf("opción desconocida: %s", sel)})
			}
		}
	}

	return errs
}

func isEmptyAnswer(v any) bool {
	switch v := v.(type) {
	case nil:
		return true
	case string:
		return strings.TrimSpace(v) == ""
	case []any:
		return len(v) == 0
	}
	return false
}

// numericAnswer parses a numeric answer. Payment-like fields are parsed
// leniently, the way the derivation engine reads them: currency symbols,
// spaces and separators are stripped, only digits, dot and minus survive, so
// "$30.50" validates and later derives as 30.5.
func numericAnswer(f FormField, v any) (float64, error) {
	switch v := v.(type) {
	case float64:
		return v, nil
	case string:
		if f.PaymentLike() {
			var b strings.Builder
			for _, r := range v {
				if r >= '0' && r <= '9' || r == '.' || r == '-' {
					b.WriteRune(r)
				}
			}
			v = b.String()
		}
		return strconv.ParseFloat(strings.TrimSpace(v), 64)
	}
	return 0, fmt.Errorf("unexpected answer type %T", v)
}

func stringList(v any) []string {
	switch v := v.(type) {
	case []string:
		return v
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	case string:
		if v == "" {
			return nil
		}
		return []string{v}
	}
	return nil
}
