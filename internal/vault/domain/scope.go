package domain

import "fmt"

// Scope decides which credentials a session can list.
type Scope string

const (
	// ScopeOwner lists only the session user's credentials.
	ScopeOwner Scope = "owner"
	// ScopeShared lists every credential in the vault regardless of owner.
	ScopeShared Scope = "shared"
)

func ParseScope(s string) (Scope, error) {
	switch Scope(s) {
	case ScopeOwner, "":
		return ScopeOwner, nil
	case ScopeShared:
		return ScopeShared, nil
	default:
		return "", fmt.Errorf("unknown vault scope %q (want %q or %q)", s, ScopeOwner, ScopeShared)
	}
}
