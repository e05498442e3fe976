// Package validate wraps go-playground/validator with a shared instance and
// errs-compatible error reporting.
package validate

import (
	"errors"
	"sync"

	"github.com/go-playground/validator/v10"

	"pinmap/internal/pkg/errs"
)

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

func instance() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
	})
	return validate
}

// Struct validates s against its `validate` tags.
// Coordinate violations map to ErrInvalidLocation, any other violation to ErrInvalidParams.
func Struct(s any) error {
	err := instance().Struct(s)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return errs.NewError(errs.ErrInvalidParams)
	}

	for _, fe := range fieldErrs {
		switch fe.Tag() {
		case "latitude", "longitude":
			return errs.NewError(errs.ErrInvalidLocation)
		}
	}

	return errs.NewError(errs.ErrInvalidParams)
}
