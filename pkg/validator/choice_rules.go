package validator

import (
	"fmt"
	"strings"
)

func InList[T comparable](field string, value T, allowedValues []T) Rule {
	return Rule{
		Check: func() bool {
			for _, allowed := range allowedValues {
				if value == allowed {
					return true
				}
			}
			return false
		},
		Error: ValidationError{
			Field:   field,
			Message: fmt.Sprintf("must be one of: %v", allowedValues),
			Err:     ErrInvalidValue,
		},
	}
}

// InListString is the string variant with a friendlier error message.
func InListString(field, value string, allowedValues []string) Rule {
	return Rule{
		Check: func() bool {
			for _, allowed := range allowedValues {
				if value == allowed {
					return true
				}
			}
			return false
		},
		Error: ValidationError{
			Field:   field,
			Message: fmt.Sprintf("must be one of: %s", strings.Join(allowedValues, ", ")),
			Err:     ErrInvalidValue,
		},
	}
}
