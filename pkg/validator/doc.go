// Package validator provides composable, rule-based validation that reports
// every violated field rather than stopping at the first failure.
//
// Rules are plain values pairing a check with the error to record when the
// check fails. Apply runs a rule set and returns either nil or a
// ValidationErrors collection implementing the error interface.
//
// # Usage
//
//	err := validator.Apply(
//		validator.Required("name", req.Name),
//		validator.MaxLen("name", req.Name, 100),
//		validator.ValidEmail("email", req.Email),
//	)
//	if verrs := validator.ExtractValidationErrors(err); verrs != nil {
//		// render a 400 listing every violation
//	}
package validator
