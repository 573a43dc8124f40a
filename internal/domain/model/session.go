package model

// Session describes the requester identity resolved from the session cookie.
// The zero value is an anonymous visitor.
type Session struct {
	UserID string
	Email  string
	Name   string
}

// LoggedIn reports whether the session belongs to an authenticated user.
func (s Session) LoggedIn() bool {
	return s.UserID != ""
}

// NewSession builds session data for the given user.
func NewSession(u *User) Session {
	return Session{UserID: u.ID, Email: u.Email, Name: u.Name}
}
