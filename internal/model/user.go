// Package model defines domain entities shared by the cinema services.
package model

// User is an account record from the user catalog, keyed by username.
type User struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Email      string `json:"email,omitempty"`
	LastActive int64  `json:"last_active"`
}

// PublicView strips PII from a user record. Email is revealed only on the
// single-profile endpoint, never in listings.
func (u User) PublicView() User {
	u.Email = ""
	return u
}
