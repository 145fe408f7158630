package validator

import (
	"regexp"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

// account names are up to 12 characters of a-z, 1-5 and dots, not ending with a dot
var nameRegexp = regexp.MustCompile(`^[a-z1-5.]{0,11}[a-z1-5]$`)

// IsValidName returns is an account name valid or not
func IsValidName(name string) bool {
	return nameRegexp.MatchString(name)
}

// New returns a validator that knows the "name" tag.
func New() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("name", func(fl validator.FieldLevel) bool {
		return IsValidName(fl.Field().String())
	})
	return v
}

func NewCustomValidator(v *validator.Validate) echo.Validator {
	return &CustomValidator{v}
}

type CustomValidator struct {
	validator *validator.Validate
}

func (v *CustomValidator) Validate(i interface{}) error {
	if err := v.validator.Struct(i); err != nil {
		return err
	}
	return nil
}
