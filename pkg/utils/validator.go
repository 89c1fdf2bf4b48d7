package utils

import (
	"regexp"

	"github.com/go-playground/validator/v10"
)

// Usernames allow Latin and Arabic-script letters, digits, spaces, underscores
// and hyphens, three characters minimum.
var usernameRegexp = regexp.MustCompile(`^[a-zA-Z0-9\x{0600}-\x{06FF} _-]{3,}$`)

// Email check matching the registration form: local@domain.tld, no whitespace.
var emailRegexp = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

type Validator struct {
	validate *validator.Validate
}

func NewValidator() *Validator {
	v := validator.New()

	// Custom validations
	v.RegisterValidation("username", validateUsername)

	return &Validator{
		validate: v,
	}
}

func (v *Validator) Struct(s interface{}) error {
	return v.validate.Struct(s)
}

func validateUsername(fl validator.FieldLevel) bool {
	return usernameRegexp.MatchString(fl.Field().String())
}

// IsValidUsername reports whether name satisfies the username rules.
func IsValidUsername(name string) bool {
	return usernameRegexp.MatchString(name)
}

// IsValidEmail reports whether address has a plausible email shape.
func IsValidEmail(address string) bool {
	return emailRegexp.MatchString(address)
}
