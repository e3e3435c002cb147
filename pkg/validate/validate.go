package validate

import (
	"github.com/go-playground/validator/v10"
)

type CustomValidator struct {
	validator *validator.Validate
}

type Option func(v *validator.Validate)

// WithRule registers a custom validation tag.
func WithRule(tag string, fn validator.Func) Option {
	return func(v *validator.Validate) {
		if err := v.RegisterValidation(tag, fn); err != nil {
			panic(err)
		}
	}
}

func NewCustomValidator(opts ...Option) *CustomValidator {
	v := validator.New()
	for _, op := range opts {
		op(v)
	}
	return &CustomValidator{validator: v}
}

func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}
