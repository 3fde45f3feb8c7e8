// Package httpserver exposes the issuer, session and photo endpoints over
// HTTP.
package httpserver

import (
	"net/http"

	"github.com/dmitrijs2005/photodrop/internal/logging"
	"github.com/go-chi/chi/v5"
)

const IssuePath = "/functions/v1/get-upload-url"

// NewRouter wires middleware (outermost first) and routes.
func NewRouter(h *Handlers, log logging.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(
		Recover(log),
		RequestID(),
		Logging(log),
	)

	r.HandleFunc(IssuePath, h.IssueUploadURL)

	r.Route("/auth/v1", func(r chi.Router) {
		r.Post("/signup", h.SignUp)
		r.Post("/token", h.Token)
		r.Get("/user", h.User)
	})

	r.Route("/rest/v1", func(r chi.Router) {
		r.Post("/user_photos", h.InsertPhoto)
		r.Get("/user_photos", h.ListPhotos)
	})

	r.Get("/health", h.Health)

	return r
}
