package services

import (
	"context"
	"database/sql"
	"fmt"
	"path"
	"strings"

	"github.com/dmitrijs2005/photodrop/internal/common"
	"github.com/dmitrijs2005/photodrop/internal/server/models"
	"github.com/dmitrijs2005/photodrop/internal/server/repositories/repomanager"
)

// PublicURLs maps an object path to its public address. storage.Signer
// implements it.
type PublicURLs interface {
	PublicURL(path string) string
}

type PhotoService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	urls        PublicURLs
}

func NewPhotoService(db *sql.DB, m repomanager.RepositoryManager, urls PublicURLs) *PhotoService {
	return &PhotoService{db: db, repomanager: m, urls: urls}
}

// Record appends a user_photos row. A principal may only record photos for
// itself: any other user id, or a path outside uploads/{principal}/, yields
// common.ErrorForbidden. With a path the image URL comes from the storage
// backend.
func (s *PhotoService) Record(ctx context.Context, principal *models.Principal, in models.NewPhoto) (*models.Photo, error) {
	if principal == nil {
		return nil, common.ErrorUnauthorized
	}
	if in.UserID != principal.ID {
		return nil, common.ErrorForbidden
	}

	imageURL := strings.TrimSpace(in.ImageURL)
	if in.Path != "" {
		if !ownsPath(principal.ID, in.Path) {
			return nil, common.ErrorForbidden
		}
		imageURL = s.urls.PublicURL(in.Path)
	}
	if imageURL == "" {
		return nil, fmt.Errorf("%w: image_url or path is required", common.ErrorValidation)
	}

	p := &models.Photo{UserID: in.UserID, ImageURL: imageURL}
	if err := s.repomanager.Photos(s.db).Insert(ctx, p); err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrorInternal, err)
	}
	return p, nil
}

func ownsPath(principalID, p string) bool {
	prefix := "uploads/" + principalID + "/"
	return strings.HasPrefix(p, prefix) && path.Clean(p) == p && len(p) > len(prefix)
}

func (s *PhotoService) List(ctx context.Context, principal *models.Principal) ([]*models.Photo, error) {
	if principal == nil {
		return nil, common.ErrorUnauthorized
	}
	list, err := s.repomanager.Photos(s.db).ListByUser(ctx, principal.ID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrorInternal, err)
	}
	return list, nil
}
