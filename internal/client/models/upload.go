package models

import "time"

// Upload modes.
const (
	ModeDelegated = "delegated"
	ModeDirect    = "direct"
)

// Upload is one user action recorded in the local journal.
type Upload struct {
	ID         string
	FileName   string
	Path       string
	Mode       string
	Status     string
	StatusCode int
	Error      string
	CreatedAt  time.Time
	FinishedAt *time.Time
}
