package models

import "time"

// Photo is one row of user_photos. Rows are only ever inserted.
type Photo struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	ImageURL  string    `json:"image_url"`
	CreatedAt time.Time `json:"created_at"`
}

// NewPhoto is an insert request. When Path is set the image URL is derived
// from it and ImageURL is ignored.
type NewPhoto struct {
	UserID   string `json:"user_id"`
	ImageURL string `json:"image_url"`
	Path     string `json:"path"`
}

// UploadCredential is a signed, path-scoped, time-bounded permission to PUT
// exactly one object.
type UploadCredential struct {
	// UploadURL is the signed URL the client sends its PUT to.
	UploadURL string `json:"upload_url"`
	// Path is the object key, uploads/{principalId}/{uuid}.{ext}.
	Path string `json:"path"`
	// Token is the signature component of UploadURL.
	Token string `json:"token"`
}
