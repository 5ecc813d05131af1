package domain

import "time"

// Credential is one stored login for an application.
//
// Secret is stored in plaintext. Only the master password is protected
// (hashed); anyone who can read the database file can read every secret.
type Credential struct {
	ID          string
	OwnerID     string // Foreign key to users table
	Application string
	Login       string
	Secret      string
	Notes       string
	CreatedAt   time.Time
	ModifiedAt  time.Time
}

// CredentialDraft is the raw input for adding or editing a Credential.
type CredentialDraft struct {
	Application  string
	Login        string
	Secret       string
	Confirmation string
	Notes        string // optional
}

// Validate collects every violated field rule.
func (d CredentialDraft) Validate() *ValidationError {
	ve := &ValidationError{}
	if d.Application == "" {
		ve.Add(ReasonMissingApplication)
	}
	if d.Login == "" {
		ve.Add(ReasonMissingLogin)
	}
	if d.Secret == "" {
		ve.Add(ReasonMissingPassword)
	}
	if d.Confirmation == "" {
		ve.Add(ReasonMissingConfirmation)
	}
	if d.Secret != d.Confirmation {
		ve.Add(ReasonPasswordMismatch)
	}
	return ve
}
