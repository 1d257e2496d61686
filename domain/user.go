package domain

import "time"

// User represents the identity the backend returns at login time.
type User struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email,omitempty"`
	CreatedAt time.Time `json:"created_at,omitempty"`
}

// DisplayName returns the name pages greet the user with.
func (u *User) DisplayName() string {
	if u == nil {
		return ""
	}
	if u.Username != "" {
		return u.Username
	}
	return u.Email
}
