package service

import "errors"

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrTooManyAttempts    = errors.New("too many login attempts")
	ErrUnauthenticated    = errors.New("no authenticated session")
	ErrForbidden          = errors.New("forbidden")
	ErrRecordNotFound     = errors.New("record not found")
)

// PasswordHasher is the slow, salted hashing primitive behind account
// passwords. cryptox.Hasher satisfies it.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(password, encodedHash string) bool
	NeedsRehash(encodedHash string) bool
}
