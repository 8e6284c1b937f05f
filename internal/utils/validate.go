package utils

import (
	"errors"
	"regexp"
	"strings"
)

// Registration validation errors, surfaced verbatim as API messages.
var (
	ErrFieldsRequired = errors.New("All fields are required")
	ErrInvalidName    = errors.New("Name must be at least 2 characters and contain only letters and spaces")
	ErrInvalidEmail   = errors.New("Please enter a valid email address")
	ErrWeakPassword   = errors.New("Password must contain at least one uppercase letter, one lowercase letter, and one number")
	ErrInvalidPhone   = errors.New("Please enter a valid phone number")
	ErrInvalidRole    = errors.New(`Invalid role. Role must be "user" or "farmer"`)
)

var (
	nameRegex      = regexp.MustCompile(`^[a-zA-Z\s]+$`)
	emailRegex     = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	phoneRegex     = regexp.MustCompile(`^\+?[1-9][0-9]{6,15}$`)
	phoneSeparator = strings.NewReplacer(" ", "", "-", "", "(", "", ")", "")
	passwordChars  = regexp.MustCompile(`^[a-zA-Z0-9@$!%*?&]{6,}$`)
)

// RegisterInput carries sanitized registration fields after validation.
type RegisterInput struct {
	Name     string
	Email    string
	Password string
	Phone    string
	Role     string
}

// ValidateRegistration runs the fixed validation sequence over raw
// registration fields, short-circuiting on the first failure. On
// success it returns the trimmed and normalized input (lowercased
// email and role, separator-stripped phone).
func ValidateRegistration(name, email, password, phone, role string) (RegisterInput, error) {
	if role == "" {
		role = "user"
	}

	if name == "" || email == "" || password == "" || phone == "" {
		return RegisterInput{}, ErrFieldsRequired
	}

	in := RegisterInput{
		Name:     strings.TrimSpace(name),
		Email:    strings.ToLower(strings.TrimSpace(email)),
		Password: password,
		Phone:    phoneSeparator.Replace(strings.TrimSpace(phone)),
		Role:     strings.ToLower(role),
	}

	if len(in.Name) < 2 || !nameRegex.MatchString(in.Name) {
		return RegisterInput{}, ErrInvalidName
	}
	if !emailRegex.MatchString(in.Email) {
		return RegisterInput{}, ErrInvalidEmail
	}
	if !ValidPassword(in.Password) {
		return RegisterInput{}, ErrWeakPassword
	}
	if !phoneRegex.MatchString(in.Phone) {
		return RegisterInput{}, ErrInvalidPhone
	}
	if in.Role != "user" && in.Role != "farmer" {
		return RegisterInput{}, ErrInvalidRole
	}

	return in, nil
}

// ValidPassword requires at least 6 characters with an uppercase
// letter, a lowercase letter and a digit, drawn from the allowed set
// of letters, digits and @$!%*?& symbols.
func ValidPassword(password string) bool {
	if !passwordChars.MatchString(password) {
		return false
	}
	var upper, lower, digit bool
	for _, r := range password {
		switch {
		case r >= 'A' && r <= 'Z':
			upper = true
		case r >= 'a' && r <= 'z':
			lower = true
		case r >= '0' && r <= '9':
			digit = true
		}
	}
	return upper && lower && digit
}
