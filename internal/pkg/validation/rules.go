package validation

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/yigit/sims/internal/pkg/apperrors"
)

// Field limits matching the column sizes in the migrations.
const (
	UsernameMinLength = 3
	UsernameMaxLength = 50
	CodeMaxLength     = 20
	NameMaxLength     = 100
	CreditsMin        = 1
	CreditsMax        = 10
)

var (
	// UsernamePattern allows letters, digits and . _ -
	UsernamePattern = regexp.MustCompile(`^[A-Za-z0-9._\-]+$`)
	EmailPattern    = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
)

// StringValidation checks a single named string value.
type StringValidation struct {
	Field    string
	Value    string
	MinLen   int
	MaxLen   int
	Required bool
	Pattern  *regexp.Regexp
}

// NewStringValidation starts a required check of value, trimmed, for field.
func NewStringValidation(field, value string) *StringValidation {
	return &StringValidation{Field: field, Value: strings.TrimSpace(value), Required: true}
}

func (v *StringValidation) WithMinLength(n int) *StringValidation {
	v.MinLen = n
	return v
}

func (v *StringValidation) WithMaxLength(n int) *StringValidation {
	v.MaxLen = n
	return v
}

func (v *StringValidation) WithPattern(p *regexp.Regexp) *StringValidation {
	v.Pattern = p
	return v
}

func (v *StringValidation) Optional() *StringValidation {
	v.Required = false
	return v
}

// Validate returns a validation error naming the field, or nil.
func (v *StringValidation) Validate() error {
	if v.Value == "" {
		if v.Required {
			return apperrors.NewValidationError(v.Field, fmt.Sprintf("%s is required", v.Field))
		}
		return nil
	}

	n := utf8.RuneCountInString(v.Value)
	if v.MinLen > 0 && n < v.MinLen {
		return apperrors.NewValidationError(v.Field, fmt.Sprintf("%s must be at least %d characters", v.Field, v.MinLen))
	}
	if v.MaxLen > 0 && n > v.MaxLen {
		return apperrors.NewValidationError(v.Field, fmt.Sprintf("%s must be at most %d characters", v.Field, v.MaxLen))
	}
	if v.Pattern != nil && !v.Pattern.MatchString(v.Value) {
		return apperrors.NewValidationError(v.Field, fmt.Sprintf("%s has an invalid format", v.Field))
	}
	return nil
}

// ValidateRange checks an optional integer against [min, max].
func ValidateRange(field string, value *int, min, max int) error {
	if value == nil {
		return nil
	}
	if *value < min || *value > max {
		return apperrors.NewValidationError(field, fmt.Sprintf("%s must be between %d and %d", field, min, max))
	}
	return nil
}

// First returns the first non-nil error.
func First(errs ...error) error {
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}
