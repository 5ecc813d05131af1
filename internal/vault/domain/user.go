package domain

import "time"

// User is a registered vault account. Usernames are unique and compared
// case-sensitively.
type User struct {
	ID           string
	Username     string
	PasswordHash string // argon2id PHC string, or bcrypt for older vaults
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// AccountDraft is the raw input for creating a User.
type AccountDraft struct {
	Username     string
	Password     string
	Confirmation string
}

// Validate checks the field rules that need no storage lookup. Username
// availability is checked by the account service.
func (d AccountDraft) Validate() *ValidationError {
	ve := &ValidationError{}
	if d.Username == "" {
		ve.Add(ReasonMissingUsername)
	}
	if d.Password == "" {
		ve.Add(ReasonMissingPassword)
	}
	if d.Confirmation == "" {
		ve.Add(ReasonMissingConfirmation)
	}
	if d.Password != d.Confirmation {
		ve.Add(ReasonPasswordMismatch)
	}
	return ve
}
