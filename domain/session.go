package domain

import "time"

// Session holds the state tied to one browser session: the authenticated
// user, the backend-issued bearer token, and transient named values pages
// stash between interactions.
type Session struct {
	ID        string            `json:"id"`
	User      User              `json:"user"`
	Token     string            `json:"token"`
	Values    map[string]string `json:"values,omitempty"`
	CreatedAt time.Time         `json:"created_at"`
	ExpiresAt time.Time         `json:"expires_at"`
}

func (s *Session) IsExpired(reference time.Time) bool {
	if s == nil {
		return true
	}
	if reference.IsZero() {
		reference = time.Now()
	}
	return !s.ExpiresAt.After(reference)
}

// Authenticated reports whether the session carries a logged-in user.
func (s *Session) Authenticated() bool {
	return s != nil && s.User.ID != "" && s.Token != ""
}

// Value returns the named session value, or "" when unset.
func (s *Session) Value(name string) string {
	if s == nil {
		return ""
	}
	return s.Values[name]
}

// SetValue stores a named value on the session. The caller still has to
// persist the session through the store for the value to survive the request.
func (s *Session) SetValue(name, value string) {
	if s == nil {
		return
	}
	if s.Values == nil {
		s.Values = make(map[string]string)
	}
	s.Values[name] = value
}

// DeleteValue removes a named value.
func (s *Session) DeleteValue(name string) {
	if s == nil {
		return
	}
	delete(s.Values, name)
}

// PopValue returns the named value and removes it, for one-shot flashes.
func (s *Session) PopValue(name string) string {
	if s == nil {
		return ""
	}
	value, ok := s.Values[name]
	if !ok {
		return ""
	}
	delete(s.Values, name)
	return value
}
