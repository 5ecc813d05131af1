package domain

// Session is the identity the operator authenticated as. The zero value
// is unauthenticated; there is no way back once a Session holds a user.
type Session struct {
	user *User
}

func NewSession(u User) Session {
	return Session{user: &u}
}

func (s Session) Authenticated() bool { return s.user != nil }

// User returns the authenticated user, if any.
func (s Session) User() (User, bool) {
	if s.user == nil {
		return User{}, false
	}
	return *s.user, true
}

// UserID returns the authenticated user's id, or "" when unauthenticated.
func (s Session) UserID() string {
	if s.user == nil {
		return ""
	}
	return s.user.ID
}

// Username returns the authenticated username, or "" when unauthenticated.
func (s Session) Username() string {
	if s.user == nil {
		return ""
	}
	return s.user.Username
}
