package validator

import "fmt"

func MinNum[T Numeric](field string, value T, min T) Rule {
	return Rule{
		Check: func() bool {
			return value >= min
		},
		Error: ValidationError{
			Field:   field,
			Message: fmt.Sprintf("must be at least %v", min),
			Err:     ErrInvalidValue,
		},
	}
}

func MaxNum[T Numeric](field string, value T, max T) Rule {
	return Rule{
		Check: func() bool {
			return value <= max
		},
		Error: ValidationError{
			Field:   field,
			Message: fmt.Sprintf("must be at most %v", max),
			Err:     ErrInvalidValue,
		},
	}
}

// Convenience aliases matching the string rule naming

func Min[T Numeric](field string, value T, min T) Rule {
	return MinNum(field, value, min)
}

func Max[T Numeric](field string, value T, max T) Rule {
	return MaxNum(field, value, max)
}
