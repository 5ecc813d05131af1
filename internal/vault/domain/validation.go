package domain

import (
	"errors"
	"slices"
	"strings"
)

// Human readable validation reasons.
const (
	ReasonMissingUsername     = "Missing username"
	ReasonMissingPassword     = "Missing password"
	ReasonMissingConfirmation = "Missing password confirmation"
	ReasonPasswordMismatch    = "Password and confirmation do not match"
	ReasonUsernameUnavailable = "Username unavailable"
	ReasonMissingApplication  = "Missing application"
	ReasonMissingLogin        = "Missing login"
)

// ValidationError lists every rule an input broke, in the order checked.
type ValidationError struct {
	Reasons []string
}

func (e *ValidationError) Add(reason string) {
	e.Reasons = append(e.Reasons, reason)
}

// Has reports whether reason was recorded.
func (e *ValidationError) Has(reason string) bool {
	return slices.Contains(e.Reasons, reason)
}

// Err returns e when it holds at least one reason, nil otherwise.
func (e *ValidationError) Err() error {
	if e == nil || len(e.Reasons) == 0 {
		return nil
	}
	return e
}

func (e *ValidationError) Error() string {
	return "validation failed: " + strings.Join(e.Reasons, "; ")
}

// AsValidation unwraps err into a *ValidationError.
func AsValidation(err error) (*ValidationError, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}
