package validation

import (
	"regexp"
)

var (
	usernamePattern = regexp.MustCompile(`^[a-zA-Z0-9_]{3,30}$`)
	emailPattern    = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)
)

// SignupValidator validates new-account fields.
type SignupValidator struct{}

// NewSignupValidator creates a new signup validator
func NewSignupValidator() *SignupValidator {
	return &SignupValidator{}
}

// ValidateSignup checks username, email and password against the account
// rules. All failures for a submission are collected into one error.
func (v *SignupValidator) ValidateSignup(username, email, password string) error {
	ve := NewValidationError()

	if username == "" || !usernamePattern.MatchString(username) {
		ve.AddError("username", ErrorTypeInvalidFormat,
			"Username must be 3-30 characters (letters, numbers, underscores).", username)
	}
	if email == "" || !emailPattern.MatchString(email) {
		ve.AddError("email", ErrorTypeInvalidFormat,
			"Please enter a valid email address.", email)
	}
	if len(password) < 6 {
		ve.AddError("password", ErrorTypeInvalidLength,
			"Password must be at least 6 characters.", nil)
	} else if len(password) > 128 {
		ve.AddError("password", ErrorTypeInvalidLength,
			"Password must be under 128 characters.", nil)
	}

	if ve.HasErrors() {
		return ve
	}
	return nil
}
