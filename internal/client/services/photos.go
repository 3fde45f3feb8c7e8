package services

import (
	"context"
	"net/url"
	"strings"

	"github.com/dmitrijs2005/photodrop/internal/client/models"
	"github.com/dmitrijs2005/photodrop/internal/common"
)

type PhotoAPI interface {
	InsertPhoto(ctx context.Context, accessToken string, in models.NewPhoto) (*models.Photo, error)
	ListPhotos(ctx context.Context, accessToken string) ([]*models.Photo, error)
}

// Principals is the session provider as seen by the photo service.
type Principals interface {
	CurrentPrincipal(ctx context.Context) (*models.Principal, error)
	AccessToken(ctx context.Context) (string, error)
}

type PhotoService struct {
	api           PhotoAPI
	sessions      Principals
	publicBaseURL string
}

// NewPhotoService builds display URLs from publicBaseURL; when it is empty
// they are derived from the signed upload URL instead. Recorded rows always
// carry the URL the server derives from the path.
func NewPhotoService(api PhotoAPI, sessions Principals, publicBaseURL string) *PhotoService {
	return &PhotoService{api: api, sessions: sessions, publicBaseURL: strings.TrimRight(publicBaseURL, "/")}
}

// PublicURL returns the readable URL of the object stored at path, for
// uploads that are not recorded.
func (s *PhotoService) PublicURL(path, uploadURL string) string {
	if s.publicBaseURL != "" {
		return s.publicBaseURL + "/" + strings.TrimLeft(path, "/")
	}

	u, err := url.Parse(uploadURL)
	if err != nil {
		return ""
	}
	u.RawQuery = ""
	u.Fragment = ""
	return u.String()
}

// Record inserts the uploaded-photo row for the current principal. With
// nobody logged in there is nothing to record and (nil, nil) is returned.
// uploadURL is accepted for the redeemer.Recorder contract and not sent.
func (s *PhotoService) Record(ctx context.Context, path, _ string) (*models.Photo, error) {
	p, err := s.sessions.CurrentPrincipal(ctx)
	if err != nil || p == nil {
		return nil, err
	}

	token, err := s.sessions.AccessToken(ctx)
	if err != nil {
		return nil, err
	}

	return s.api.InsertPhoto(ctx, token, models.NewPhoto{UserID: p.ID, Path: path})
}

func (s *PhotoService) List(ctx context.Context) ([]*models.Photo, error) {
	p, err := s.sessions.CurrentPrincipal(ctx)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, common.ErrorUnauthorized
	}

	token, err := s.sessions.AccessToken(ctx)
	if err != nil {
		return nil, err
	}
	return s.api.ListPhotos(ctx, token)
}
