package validator

import "time"

// DateFormat is the layout accepted for date query parameters.
const DateFormat = "2006-01-02"

// ValidDateString validates that a string is an ISO calendar date
// (YYYY-MM-DD).
func ValidDateString(field, value string) Rule {
	return Rule{
		Check: func() bool {
			_, err := time.Parse(DateFormat, value)
			return err == nil
		},
		Error: ValidationError{
			Field:   field,
			Message: "must be a valid ISO date (YYYY-MM-DD)",
			Err:     ErrInvalidFormat,
		},
	}
}
