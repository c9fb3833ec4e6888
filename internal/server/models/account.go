package models

import "time"

// Account is the balance record owned one-to-one by a User.
type Account struct {
	ID        string
	UserID    string
	Balance   float64
	CreatedAt time.Time
}
