package validators

import (
	"github.com/go-playground/validator/v10"
)

// validate is built once at init and never mutated afterwards.
var validate = validator.New()

// fieldErrors flattens validator.ValidationErrors into field -> message form
// for utils.ValidationError responses.
func fieldErrors(err error) map[string]string {
	errors := make(map[string]string)
	if verrs, ok := err.(validator.ValidationErrors); ok {
		for _, verr := range verrs {
			errors[verr.Field()] = "failed on rule: " + verr.Tag()
		}
		return errors
	}
	errors["body"] = err.Error()
	return errors
}
