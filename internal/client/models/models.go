// Package models defines the client-side shapes of the photodrop API and
// of the local upload journal.
package models

import "time"

// Principal is the identity behind the current session.
type Principal struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

type TokenPair struct {
	AccessToken  string    `json:"access_token"`
	RefreshToken string    `json:"refresh_token"`
	TokenType    string    `json:"token_type"`
	ExpiresIn    int64     `json:"expires_in"`
	ExpiresAt    time.Time `json:"expires_at"`
}

// UploadCredential is the issuer's answer: where to PUT, under which object
// path, and the signature that authorizes it.
type UploadCredential struct {
	UploadURL string `json:"upload_url"`
	Path      string `json:"path"`
	Token     string `json:"token"`
}

// NewPhoto asks the server to record an upload. The server derives the
// image URL from Path; ImageURL is only used when there is no path.
type NewPhoto struct {
	UserID   string `json:"user_id"`
	ImageURL string `json:"image_url,omitempty"`
	Path     string `json:"path,omitempty"`
}

type Photo struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	ImageURL  string    `json:"image_url"`
	CreatedAt time.Time `json:"created_at"`
}
