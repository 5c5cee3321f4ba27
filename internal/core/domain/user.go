package domain

import "time"

// User is the identity record at the heart of the service. ID is immutable
// once assigned; username and email are unique across all users and may
// change through profile updates. PasswordHash always holds a bcrypt hash,
// never the raw secret.
type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	FirstName    string    `json:"first_name"`
	LastName     string    `json:"last_name"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// ProfileChanges carries the mutable profile fields for an update. Nil
// pointers mean "leave unchanged".
type ProfileChanges struct {
	Username  *string
	Email     *string
	FirstName *string
	LastName  *string
}

// Apply overwrites the user's fields with the requested changes and bumps
// UpdatedAt. ID and PasswordHash are never touched here.
func (u *User) Apply(changes ProfileChanges, now time.Time) {
	if changes.Username != nil {
		u.Username = *changes.Username
	}
	if changes.Email != nil {
		u.Email = *changes.Email
	}
	if changes.FirstName != nil {
		u.FirstName = *changes.FirstName
	}
	if changes.LastName != nil {
		u.LastName = *changes.LastName
	}
	u.UpdatedAt = now
}
