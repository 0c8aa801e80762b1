// Package validation validates dime settings using struct tags.
//
//	type Settings struct {
//	    InjectTimeout time.Duration `validate:"gte=0"`
//	}
//	err := validation.Validate(settings) // *errors.AppError with INVALID_CONFIG
package validation
