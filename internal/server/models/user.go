// Package models defines the server-side records persisted in the database.
package models

import "time"

// User is an identity record. PasswordHash and Salt never leave the server.
type User struct {
	ID           string
	UserName     string
	PasswordHash []byte
	Salt         []byte
	FirstName    string
	LastName     string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// UserSummary is the directory view of a User.
type UserSummary struct {
	ID        string
	UserName  string
	FirstName string
	LastName  string
}

// ProfileChanges lists the columns an update may touch. A nil field is left
// as stored.
type ProfileChanges struct {
	FirstName    *string
	LastName     *string
	PasswordHash []byte
	Salt         []byte
}
