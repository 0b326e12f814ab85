package model

import "time"

// User represents a registered customer.
type User struct {
	ID           string
	Login        string
	PasswordHash string
	Email        string
	FirstName    string
	LastName     string
	CreatedAt    time.Time
}

// DisplayName prefers the real name when both parts are present,
// falling back to the login otherwise.
func (u *User) DisplayName() string {
	if u.FirstName != "" && u.LastName != "" {
		return u.FirstName + " " + u.LastName
	}
	return u.Login
}
