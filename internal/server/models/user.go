// Package models defines server-side data models persisted in the database
// or returned by the HTTP API.
package models

import "time"

type User struct {
	ID           string
	Email        string
	PasswordHash []byte
	CreatedAt    time.Time
}

// Principal is the authenticated identity behind a bearer token.
type Principal struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}
