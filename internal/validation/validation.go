// Package validation checks signup input before it reaches the storage
// layer: email syntax and password strength. Failures surface through the
// error taxonomy (InvalidEmail, FormValidation).
package validation

import (
	"unicode"

	"github.com/go-playground/validator/v10"

	apperrors "authstore/internal/errors"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// Field error codes concatenated into the form validation message.
const (
	codeTooShort    = "The password must be at least 8 characters long.\n"
	codeNoUppercase = "The password must include at least one uppercase character.\n"
	codeNoLowercase = "The password must include at least one lowercase character.\n"
	codeNoDigit     = "The password has to contain at least one digit.\n"
)

const minPasswordLen = 8

// ValidateEmail checks email syntax, reporting InvalidEmail on failure.
func ValidateEmail(email string) error {
	if err := validate.Var(email, "required,email"); err != nil {
		return apperrors.InvalidEmail(apperrors.MsgInvalidEmail)
	}
	return nil
}

// ValidatePassword enforces the password policy: at least 8 characters, one
// uppercase, one lowercase, and one digit. All violated rules are collected
// into a single FormValidation error.
func ValidatePassword(password string) error {
	var codes []string

	if len(password) < minPasswordLen {
		codes = append(codes, codeTooShort)
	}

	var hasUpper, hasLower, hasDigit bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsDigit(r):
			hasDigit = true
		}
	}

	if !hasUpper {
		codes = append(codes, codeNoUppercase)
	}
	if !hasLower {
		codes = append(codes, codeNoLowercase)
	}
	if !hasDigit {
		codes = append(codes, codeNoDigit)
	}

	if len(codes) > 0 {
		return apperrors.FormValidation(codes...)
	}
	return nil
}

// ValidateCredentials runs both checks, email first.
func ValidateCredentials(email, password string) error {
	if err := ValidateEmail(email); err != nil {
		return err
	}
	return ValidatePassword(password)
}
