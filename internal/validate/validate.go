package validate

import "github.com/go-playground/validator/v10"

// FormValidator wraps go-playground/validator behind echo's Validator
// interface.
type FormValidator struct {
	validator *validator.Validate
}

func New() *FormValidator {
	return &FormValidator{validator: validator.New()}
}

func (f *FormValidator) Validate(i interface{}) error {
	return f.validator.Struct(i)
}
