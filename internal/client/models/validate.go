package models

import (
	"regexp"
	"strings"
)

// ValidationError is a pre-network rejection of user input. It never reaches
// the request-status machinery; screens show Message as a transient notice.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

func validationErr(msg string) *ValidationError {
	return &ValidationError{Message: msg}
}

// Deliberately loose: one '@', a dot in the domain, no whitespace.
var emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

const minPasswordLen = 6

// ValidateLogin checks login form input before any network call is made.
func ValidateLogin(email, password string) error {
	if email == "" || password == "" {
		return validationErr("please fill in all fields")
	}
	if !emailRe.MatchString(email) {
		return validationErr("please enter a valid email address")
	}
	if len(password) < minPasswordLen {
		return validationErr("password must be at least 6 characters")
	}
	return nil
}

// ValidateRegistration checks registration form input. Same rules as login
// plus a non-empty name.
func ValidateRegistration(name, email, password string) error {
	if strings.TrimSpace(name) == "" {
		return validationErr("please enter your name to register")
	}
	return ValidateLogin(email, password)
}

// Normalize applies draft defaults: unset category becomes DefaultCategory,
// description whitespace is trimmed.
func (d *ReportDraft) Normalize() {
	if d.Category == "" {
		d.Category = DefaultCategory
	}
	d.Description = strings.TrimSpace(d.Description)
}

// Validate checks a draft for submission. The draft is normalized first.
// Photo and location are optional.
func (d *ReportDraft) Validate() error {
	d.Normalize()
	if d.Description == "" {
		return validationErr("please enter a description")
	}
	if !d.Category.Valid() {
		return validationErr("unknown report category")
	}
	return nil
}
