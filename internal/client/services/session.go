// Package services contains application services for the photodrop client:
// the session provider backed by the local metadata store, and photo
// bookkeeping against the server.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/photodrop/internal/client/models"
	"github.com/dmitrijs2005/photodrop/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/photodrop/internal/common"
	"github.com/dmitrijs2005/photodrop/internal/dbx"
)

// Metadata keys holding the current session.
const (
	keyAccessToken  = "access_token"
	keyRefreshToken = "refresh_token"
	keyUserID       = "user_id"
	keyEmail        = "email"
)

// AuthAPI is the part of the server API the session provider needs.
type AuthAPI interface {
	SignUp(ctx context.Context, email, password string) (*models.Principal, error)
	Login(ctx context.Context, email, password string) (*models.TokenPair, error)
	Refresh(ctx context.Context, refreshToken string) (*models.TokenPair, error)
	GetUser(ctx context.Context, accessToken string) (*models.Principal, error)
}

// SessionService is the client-side session provider. The session lives in
// the metadata table so it survives between CLI invocations.
type SessionService struct {
	api AuthAPI
	db  *sql.DB
}

func NewSessionService(api AuthAPI, db *sql.DB) *SessionService {
	return &SessionService{api: api, db: db}
}

func (s *SessionService) getMetadataRepo() metadata.Repository {
	return metadata.NewSQLiteRepository(s.db)
}

func (s *SessionService) SignUp(ctx context.Context, email, password string) (*models.Principal, error) {
	return s.api.SignUp(ctx, email, password)
}

// Login authenticates with email and password and installs the resulting
// session.
func (s *SessionService) Login(ctx context.Context, email, password string) (*models.Principal, error) {
	pair, err := s.api.Login(ctx, email, password)
	if err != nil {
		return nil, err
	}

	p, err := s.api.GetUser(ctx, pair.AccessToken)
	if err != nil {
		return nil, err
	}

	if err := s.save(ctx, pair.AccessToken, pair.RefreshToken, p); err != nil {
		return nil, fmt.Errorf("session saving error: %w", err)
	}
	return p, nil
}

// InstallSession adopts an externally issued token pair. The access token is
// checked against the server; when it is no longer accepted the refresh
// token is exchanged for a new pair. Errors carry the server's message.
func (s *SessionService) InstallSession(ctx context.Context, accessToken, refreshToken string) error {
	p, err := s.api.GetUser(ctx, accessToken)
	if errors.Is(err, common.ErrorUnauthorized) {
		pair, rerr := s.api.Refresh(ctx, refreshToken)
		if rerr != nil {
			return rerr
		}
		accessToken, refreshToken = pair.AccessToken, pair.RefreshToken
		p, err = s.api.GetUser(ctx, accessToken)
	}
	if err != nil {
		return err
	}

	return s.save(ctx, accessToken, refreshToken, p)
}

// CurrentPrincipal returns the principal of the stored session, refreshing
// it once if the access token has expired. (nil, nil) means nobody is
// logged in.
func (s *SessionService) CurrentPrincipal(ctx context.Context) (*models.Principal, error) {
	repo := s.getMetadataRepo()

	access, err := stored(ctx, repo, keyAccessToken)
	if access == "" || err != nil {
		return nil, err
	}

	p, err := s.api.GetUser(ctx, access)
	if err == nil {
		return p, nil
	}
	if !errors.Is(err, common.ErrorUnauthorized) {
		return nil, err
	}

	refresh, err := stored(ctx, repo, keyRefreshToken)
	if refresh == "" || err != nil {
		return nil, err
	}

	pair, err := s.api.Refresh(ctx, refresh)
	if errors.Is(err, common.ErrorUnauthorized) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	p, err = s.api.GetUser(ctx, pair.AccessToken)
	if errors.Is(err, common.ErrorUnauthorized) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	if err := s.save(ctx, pair.AccessToken, pair.RefreshToken, p); err != nil {
		return nil, fmt.Errorf("session saving error: %w", err)
	}
	return p, nil
}

// AccessToken returns the stored access token, or common.ErrorUnauthorized
// when there is none. Call CurrentPrincipal first to get a fresh one.
func (s *SessionService) AccessToken(ctx context.Context) (string, error) {
	access, err := stored(ctx, s.getMetadataRepo(), keyAccessToken)
	if err != nil {
		return "", err
	}
	if access == "" {
		return "", common.ErrorUnauthorized
	}
	return access, nil
}

// stored reads a session key; a missing key is "" without error.
func stored(ctx context.Context, repo metadata.Repository, key string) (string, error) {
	v, err := repo.Get(ctx, key)
	if errors.Is(err, common.ErrorNotFound) {
		return "", nil
	}
	return v, err
}

// Logout forgets the stored session.
func (s *SessionService) Logout(ctx context.Context) error {
	return s.getMetadataRepo().Clear(ctx)
}

func (s *SessionService) save(ctx context.Context, accessToken, refreshToken string, p *models.Principal) error {
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := metadata.NewSQLiteRepository(tx)
		if err := repo.Clear(ctx); err != nil {
			return err
		}
		return repo.SetAll(ctx, map[string]string{
			keyAccessToken:  accessToken,
			keyRefreshToken: refreshToken,
			keyUserID:       p.ID,
			keyEmail:        p.Email,
		})
	})
}
