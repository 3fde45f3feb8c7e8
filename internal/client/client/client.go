package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/dmitrijs2005/photodrop/internal/client/models"
	"github.com/dmitrijs2005/photodrop/internal/common"
)

// Server paths.
const (
	IssuePath  = "/functions/v1/get-upload-url"
	SignUpPath = "/auth/v1/signup"
	TokenPath  = "/auth/v1/token"
	UserPath   = "/auth/v1/user"
	PhotosPath = "/rest/v1/user_photos"
	HealthPath = "/health"
)

type Client interface {
	Ping(ctx context.Context) error
	SignUp(ctx context.Context, email, password string) (*models.Principal, error)
	Login(ctx context.Context, email, password string) (*models.TokenPair, error)
	Refresh(ctx context.Context, refreshToken string) (*models.TokenPair, error)
	GetUser(ctx context.Context, accessToken string) (*models.Principal, error)
	IssueUploadCredential(ctx context.Context, accessToken, ext string) (*models.UploadCredential, error)
	InsertPhoto(ctx context.Context, accessToken string, in models.NewPhoto) (*models.Photo, error)
	ListPhotos(ctx context.Context, accessToken string) ([]*models.Photo, error)
}

type HTTPClient struct {
	baseURL string
	http    *http.Client
}

// NewHTTPClient returns a client for the server at baseURL. A nil hc means
// http.DefaultClient.
func NewHTTPClient(baseURL string, hc *http.Client) *HTTPClient {
	if hc == nil {
		hc = http.DefaultClient
	}
	return &HTTPClient{baseURL: strings.TrimRight(baseURL, "/"), http: hc}
}

func (c *HTTPClient) Ping(ctx context.Context) error {
	return c.do(ctx, http.MethodGet, HealthPath, "", nil, nil)
}

type credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (c *HTTPClient) SignUp(ctx context.Context, email, password string) (*models.Principal, error) {
	var p models.Principal
	if err := c.do(ctx, http.MethodPost, SignUpPath, "", credentials{Email: email, Password: password}, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (c *HTTPClient) Login(ctx context.Context, email, password string) (*models.TokenPair, error) {
	var pair models.TokenPair
	path := TokenPath + "?grant_type=password"
	if err := c.do(ctx, http.MethodPost, path, "", credentials{Email: email, Password: password}, &pair); err != nil {
		return nil, err
	}
	return &pair, nil
}

func (c *HTTPClient) Refresh(ctx context.Context, refreshToken string) (*models.TokenPair, error) {
	var pair models.TokenPair
	path := TokenPath + "?grant_type=refresh_token"
	body := map[string]string{"refresh_token": refreshToken}
	if err := c.do(ctx, http.MethodPost, path, "", body, &pair); err != nil {
		return nil, err
	}
	return &pair, nil
}

func (c *HTTPClient) GetUser(ctx context.Context, accessToken string) (*models.Principal, error) {
	var p models.Principal
	if err := c.do(ctx, http.MethodGet, UserPath, accessToken, nil, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// IssueUploadCredential asks the issuer for a fresh signed upload URL. A 401
// matches common.ErrorUnauthorized; any other refusal matches
// common.ErrCredentialBackend and carries the server message verbatim.
func (c *HTTPClient) IssueUploadCredential(ctx context.Context, accessToken, ext string) (*models.UploadCredential, error) {
	path := IssuePath
	if ext != "" {
		path += "?ext=" + url.QueryEscape(ext)
	}

	var cred models.UploadCredential
	err := c.do(ctx, http.MethodPost, path, accessToken, nil, &cred)
	if err != nil {
		var apiErr *APIError
		if errors.As(err, &apiErr) && apiErr.StatusCode != http.StatusUnauthorized {
			apiErr.kind = common.ErrCredentialBackend
		}
		return nil, err
	}
	return &cred, nil
}

func (c *HTTPClient) InsertPhoto(ctx context.Context, accessToken string, in models.NewPhoto) (*models.Photo, error) {
	var p models.Photo
	if err := c.do(ctx, http.MethodPost, PhotosPath, accessToken, in, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (c *HTTPClient) ListPhotos(ctx context.Context, accessToken string) ([]*models.Photo, error) {
	var list []*models.Photo
	if err := c.do(ctx, http.MethodGet, PhotosPath, accessToken, nil, &list); err != nil {
		return nil, err
	}
	return list, nil
}

func (c *HTTPClient) do(ctx context.Context, method, path, accessToken string, in, out any) error {
	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	if accessToken != "" {
		req.Header.Set(common.AuthorizationHeader, common.BearerPrefix+accessToken)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return fmt.Errorf("%w: read response: %v", ErrUnavailable, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &APIError{StatusCode: resp.StatusCode, Message: errorMessage(resp.StatusCode, data), kind: kindFor(resp.StatusCode)}
	}

	if out == nil || len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// errorMessage extracts {"error": msg}; plain-text bodies are used as is.
func errorMessage(status int, data []byte) string {
	var e struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(data, &e); err == nil && e.Error != "" {
		return e.Error
	}
	if s := strings.TrimSpace(string(data)); s != "" {
		return s
	}
	return http.StatusText(status)
}
