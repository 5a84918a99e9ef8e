package service

import "regexp"

const (
	// MaxCredentialLength bounds usernames and passwords.
	MaxCredentialLength = 40
	// MaxEmailLength bounds email addresses.
	MaxEmailLength = 100
	// MaxTextLength bounds task and opinion text.
	MaxTextLength = 255
)

var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9_.+-]+@[a-zA-Z0-9-]+\.[a-zA-Z0-9-.]+$`)

// FieldValidator validates form field values.
type FieldValidator struct{}

// NewFieldValidator creates a new field validator.
func NewFieldValidator() *FieldValidator {
	return &FieldValidator{}
}

// ValidEmail reports whether s looks like local@domain.tld and fits the
// column limit.
func (v *FieldValidator) ValidEmail(s string) bool {
	return len(s) < MaxEmailLength && emailPattern.MatchString(s)
}

// ValidLength reports whether s is non-empty and shorter than max.
func (v *FieldValidator) ValidLength(s string, max int) bool {
	return len(s) > 0 && len(s) < max
}
