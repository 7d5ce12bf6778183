package validator

import (
	"errors"
	"fmt"
	"strings"
)

type Numeric interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 |
		~float32 | ~float64
}

// ValidationError represents a single validation failure on a field. Err
// carries the sentinel classifying the failure so callers can use errors.Is
// on the collection.
type ValidationError struct {
	Field   string
	Message string
	Err     error
}

// ValidationErrors represents a collection of validation errors.
type ValidationErrors []ValidationError

func (ve ValidationErrors) Error() string {
	if len(ve) == 0 {
		return "validation failed"
	}

	var parts []string
	for _, err := range ve {
		parts = append(parts, fmt.Sprintf("%s: %s", err.Field, err.Message))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

func (ve ValidationErrors) Has(field string) bool {
	for _, err := range ve {
		if err.Field == field {
			return true
		}
	}
	return false
}

func (ve ValidationErrors) Get(field string) []string {
	var messages []string
	for _, err := range ve {
		if err.Field == field {
			messages = append(messages, err.Message)
		}
	}
	return messages
}

func (ve ValidationErrors) Fields() []string {
	var fields []string
	seen := make(map[string]bool)
	for _, err := range ve {
		if !seen[err.Field] {
			fields = append(fields, err.Field)
			seen[err.Field] = true
		}
	}
	return fields
}

// ByField groups messages per field, the shape rendered in API error
// responses.
func (ve ValidationErrors) ByField() map[string][]string {
	out := make(map[string][]string, len(ve))
	for _, err := range ve {
		out[err.Field] = append(out[err.Field], err.Message)
	}
	return out
}

func (ve ValidationErrors) IsEmpty() bool {
	return len(ve) == 0
}

// Is makes errors.Is work against the sentinels: ErrValidationFailed
// matches any non-empty collection, and the per-kind sentinels match when
// any recorded violation carries them.
func (ve ValidationErrors) Is(target error) bool {
	if target == ErrValidationFailed {
		return len(ve) > 0
	}
	for _, err := range ve {
		if err.Err != nil && errors.Is(err.Err, target) {
			return true
		}
	}
	return false
}

// Rule represents a single validation rule.
type Rule struct {
	Check func() bool
	Error ValidationError
}

// Apply executes all rules and returns the accumulated violations, or nil
// when every rule passes.
func Apply(rules ...Rule) error {
	var verrs ValidationErrors

	for _, rule := range rules {
		if !rule.Check() {
			verrs = append(verrs, rule.Error)
		}
	}

	if verrs.IsEmpty() {
		return nil
	}

	return verrs
}

// Optional wraps a rule so it only applies when the value is non-empty.
// Useful for fields that may be omitted but must be well-formed when present.
func Optional(value string, rule Rule) Rule {
	return Rule{
		Check: func() bool {
			if value == "" {
				return true
			}
			return rule.Check()
		},
		Error: rule.Error,
	}
}

// ExtractValidationErrors extracts ValidationErrors from an error chain.
func ExtractValidationErrors(err error) ValidationErrors {
	if err == nil {
		return nil
	}

	var verrs ValidationErrors
	if errors.As(err, &verrs) {
		return verrs
	}

	return nil
}

func IsValidationError(err error) bool {
	var verrs ValidationErrors
	return errors.As(err, &verrs)
}
