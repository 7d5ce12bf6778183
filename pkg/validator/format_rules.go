package validator

import (
	"net/mail"
	"strings"
)

// ValidEmail validates that a string is a syntactically valid email address.
// Go's RFC 5322 parser accepts bare local parts and dotless domains, so a
// couple of extra checks enforce the shape expected from web forms.
func ValidEmail(field, value string) Rule {
	return Rule{
		Check: func() bool {
			if strings.TrimSpace(value) == "" {
				return false
			}

			addr, err := mail.ParseAddress(value)
			if err != nil {
				return false
			}

			parts := strings.Split(addr.Address, "@")
			if len(parts) != 2 {
				return false
			}

			localPart, domain := parts[0], parts[1]
			if localPart == "" {
				return false
			}

			if !strings.Contains(domain, ".") || strings.HasPrefix(domain, ".") || strings.HasSuffix(domain, ".") {
				return false
			}

			for part := range strings.SplitSeq(domain, ".") {
				if part == "" {
					return false
				}
			}

			return true
		},
		Error: ValidationError{
			Field:   field,
			Message: "must be a valid email address",
			Err:     ErrInvalidFormat,
		},
	}
}
