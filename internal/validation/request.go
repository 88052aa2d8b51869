package validation

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

var ErrMissingFields = errors.New("missing required fields")

var validate = validator.New(validator.WithRequiredStructEnabled())

// Struct runs the `validate` tags on a request body. Any failed `required`
// rule is reported as ErrMissingFields; other failures name the field.
func Struct(v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}

	for _, fe := range fieldErrs {
		if fe.Tag() == "required" {
			return ErrMissingFields
		}
	}

	fe := fieldErrs[0]
	return fmt.Errorf("invalid %s", strings.ToLower(fe.Field()))
}
