package httpserver

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/dmitrijs2005/photodrop/internal/common"
	"github.com/dmitrijs2005/photodrop/internal/logging"
	"github.com/dmitrijs2005/photodrop/internal/server/issuer"
	"github.com/dmitrijs2005/photodrop/internal/server/models"
)

type Issuer interface {
	Issue(ctx context.Context, authorization string, ext issuer.ExtSource) (*models.UploadCredential, error)
}

type Sessions interface {
	SignUp(ctx context.Context, email, password string) (*models.Principal, error)
	Login(ctx context.Context, email, password string) (*models.TokenPair, error)
	RefreshToken(ctx context.Context, refreshToken string) (*models.TokenPair, error)
	Principal(ctx context.Context, authorization string) (*models.Principal, error)
}

type Photos interface {
	Record(ctx context.Context, principal *models.Principal, in models.NewPhoto) (*models.Photo, error)
	List(ctx context.Context, principal *models.Principal) ([]*models.Photo, error)
}

type Handlers struct {
	issuer   Issuer
	sessions Sessions
	photos   Photos
	log      logging.Logger
}

func NewHandlers(issuer Issuer, sessions Sessions, photos Photos, log logging.Logger) *Handlers {
	return &Handlers{issuer: issuer, sessions: sessions, photos: photos, log: log}
}

type issueRequest struct {
	Ext string `json:"ext"`
}

// IssueUploadURL answers any method. A missing principal is a plain-text
// 401 "Unauthorized" whatever the body holds; every other failure is a 400
// {"error": message}. The body is read only after authentication.
func (h *Handlers) IssueUploadURL(w http.ResponseWriter, r *http.Request) {
	ext := func() (string, error) { return requestedExt(w, r) }

	cred, err := h.issuer.Issue(r.Context(), r.Header.Get(common.AuthorizationHeader), ext)
	if err != nil {
		if errors.Is(err, common.ErrorUnauthorized) {
			w.Header().Set("Content-Type", "text/plain; charset=utf-8")
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = io.WriteString(w, "Unauthorized")
			return
		}
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, cred)
}

// requestedExt reads ext from the query string, then from an optional JSON
// body.
func requestedExt(w http.ResponseWriter, r *http.Request) (string, error) {
	if ext := r.URL.Query().Get("ext"); ext != "" {
		return ext, nil
	}
	if r.Body == nil || r.ContentLength == 0 || !strings.HasPrefix(r.Header.Get("Content-Type"), "application/json") {
		return "", nil
	}

	var req issueRequest
	if err := decodeJSON(w, r, &req); err != nil && !errors.Is(err, io.EOF) {
		return "", err
	}
	return req.Ext, nil
}

type credentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type refreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

func (h *Handlers) SignUp(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	p, err := h.sessions.SignUp(r.Context(), req.Email, req.Password)
	if err != nil {
		h.logFailure(r, "signup failed", err)
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, p)
}

// Token handles grant_type=password and grant_type=refresh_token.
func (h *Handlers) Token(w http.ResponseWriter, r *http.Request) {
	var (
		pair *models.TokenPair
		err  error
	)

	switch grant := r.URL.Query().Get("grant_type"); grant {
	case "password":
		var req credentialsRequest
		if err := decodeJSON(w, r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		pair, err = h.sessions.Login(r.Context(), req.Email, req.Password)
	case "refresh_token":
		var req refreshRequest
		if err := decodeJSON(w, r, &req); err != nil || req.RefreshToken == "" {
			writeError(w, http.StatusBadRequest, "refresh_token is required")
			return
		}
		pair, err = h.sessions.RefreshToken(r.Context(), req.RefreshToken)
	default:
		writeError(w, http.StatusBadRequest, "unsupported grant_type "+grant)
		return
	}

	if err != nil {
		h.logFailure(r, "token grant failed", err)
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, pair)
}

func (h *Handlers) User(w http.ResponseWriter, r *http.Request) {
	p, ok := h.principal(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (h *Handlers) InsertPhoto(w http.ResponseWriter, r *http.Request) {
	p, ok := h.principal(w, r)
	if !ok {
		return
	}

	var req models.NewPhoto
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	photo, err := h.photos.Record(r.Context(), p, req)
	if err != nil {
		h.logFailure(r, "photo insert failed", err)
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, photo)
}

func (h *Handlers) ListPhotos(w http.ResponseWriter, r *http.Request) {
	p, ok := h.principal(w, r)
	if !ok {
		return
	}

	list, err := h.photos.List(r.Context(), p)
	if err != nil {
		h.logFailure(r, "photo list failed", err)
		writeServiceError(w, err)
		return
	}
	if list == nil {
		list = []*models.Photo{}
	}
	writeJSON(w, http.StatusOK, list)
}

func (h *Handlers) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// principal authenticates the request and writes the error response itself
// when that fails.
func (h *Handlers) principal(w http.ResponseWriter, r *http.Request) (*models.Principal, bool) {
	p, err := h.sessions.Principal(r.Context(), r.Header.Get(common.AuthorizationHeader))
	if err != nil {
		if !errors.Is(err, common.ErrorUnauthorized) {
			h.logFailure(r, "authentication failed", err)
		}
		writeServiceError(w, err)
		return nil, false
	}
	return p, true
}

func (h *Handlers) logFailure(r *http.Request, msg string, err error) {
	if statusFor(err) == http.StatusInternalServerError {
		h.log.Error(r.Context(), msg, "error", err, "request_id", RequestIDFrom(r.Context()))
		return
	}
	h.log.Debug(r.Context(), msg, "error", err, "request_id", RequestIDFrom(r.Context()))
}
