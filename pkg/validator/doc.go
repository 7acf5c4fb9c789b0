// Package validator builds declarative, field-level validation out of small
// Rule values.
//
// Each rule constructor captures the value to check and returns a Rule with
// the error to report. Apply evaluates the rules in order and returns a
// ValidationErrors slice, which implements error, when any of them fail:
//
//	err := validator.Apply(
//		validator.MinLen("name", form.Name, 2),
//		validator.MaxLen("name", form.Name, 100),
//		validator.ValidEmail("email", form.Email),
//		validator.MaxLen("phone", form.Phone, 30).When(form.Phone != ""),
//	)
//	if verrs := validator.ExtractValidationErrors(err); verrs != nil {
//		// verrs lists one entry per failing field
//	}
//
// Lengths are measured in characters so that names such as "José" count
// four, not five.
package validator
