package services

import (
	"context"
	"database/sql"
	"testing"

	"github.com/dmitrijs2005/photodrop/internal/client/models"
	"github.com/dmitrijs2005/photodrop/internal/common"
	"github.com/stretchr/testify/require"

	_ "modernc.org/sqlite"
)

func setupDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec(`
CREATE TABLE metadata (
  key   TEXT PRIMARY KEY,
  value BLOB NOT NULL
);
`)
	require.NoError(t, err)
	return db
}

func getMeta(t *testing.T, db *sql.DB, k string) string {
	t.Helper()
	var v []byte
	err := db.QueryRow(`SELECT value FROM metadata WHERE key=?`, k).Scan(&v)
	if err == sql.ErrNoRows {
		return ""
	}
	require.NoError(t, err)
	return string(v)
}

// fakeAPI accepts the access tokens in users and the refresh tokens in
// refresh; everything else is unauthorized.
type fakeAPI struct {
	users   map[string]*models.Principal
	refresh map[string]*models.TokenPair

	getUserErr error
	insertErr  error

	getUserCalls []string
	refreshCalls []string
	inserted     []models.NewPhoto
	photos       []*models.Photo
}

func newFakeAPI() *fakeAPI {
	return &fakeAPI{users: map[string]*models.Principal{}, refresh: map[string]*models.TokenPair{}}
}

func (f *fakeAPI) SignUp(ctx context.Context, email, password string) (*models.Principal, error) {
	return &models.Principal{ID: "new", Email: email}, nil
}

func (f *fakeAPI) Login(ctx context.Context, email, password string) (*models.TokenPair, error) {
	if password != "pw" {
		return nil, common.ErrorUnauthorized
	}
	return &models.TokenPair{AccessToken: "A-login", RefreshToken: "R-login"}, nil
}

func (f *fakeAPI) Refresh(ctx context.Context, refreshToken string) (*models.TokenPair, error) {
	f.refreshCalls = append(f.refreshCalls, refreshToken)
	pair, ok := f.refresh[refreshToken]
	if !ok {
		return nil, common.ErrorUnauthorized
	}
	return pair, nil
}

func (f *fakeAPI) GetUser(ctx context.Context, accessToken string) (*models.Principal, error) {
	f.getUserCalls = append(f.getUserCalls, accessToken)
	if f.getUserErr != nil {
		return nil, f.getUserErr
	}
	p, ok := f.users[accessToken]
	if !ok {
		return nil, common.ErrorUnauthorized
	}
	return p, nil
}

func (f *fakeAPI) InsertPhoto(ctx context.Context, accessToken string, in models.NewPhoto) (*models.Photo, error) {
	if f.insertErr != nil {
		return nil, f.insertErr
	}
	f.inserted = append(f.inserted, in)
	return &models.Photo{ID: "p1", UserID: in.UserID, ImageURL: "http://server/" + in.Path}, nil
}

func (f *fakeAPI) ListPhotos(ctx context.Context, accessToken string) ([]*models.Photo, error) {
	return f.photos, nil
}
