package redeemer

import (
	"context"

	"github.com/dmitrijs2005/photodrop/internal/client/models"
	"github.com/dmitrijs2005/photodrop/internal/common"
)

type IssueAPI interface {
	IssueUploadCredential(ctx context.Context, accessToken, ext string) (*models.UploadCredential, error)
}

type Sessions interface {
	CurrentPrincipal(ctx context.Context) (*models.Principal, error)
	AccessToken(ctx context.Context) (string, error)
}

// SessionIssuer asks the server issuer for a credential using the live
// session's access token.
type SessionIssuer struct {
	api      IssueAPI
	sessions Sessions
}

func NewSessionIssuer(api IssueAPI, sessions Sessions) *SessionIssuer {
	return &SessionIssuer{api: api, sessions: sessions}
}

func (i *SessionIssuer) Issue(ctx context.Context, ext string) (*Destination, error) {
	p, err := i.sessions.CurrentPrincipal(ctx)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, common.ErrorUnauthorized
	}

	token, err := i.sessions.AccessToken(ctx)
	if err != nil {
		return nil, err
	}

	cred, err := i.api.IssueUploadCredential(ctx, token, ext)
	if err != nil {
		return nil, err
	}
	return &Destination{UploadURL: cred.UploadURL, Path: cred.Path, Token: cred.Token}, nil
}
