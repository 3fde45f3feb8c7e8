package redeemer

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/dmitrijs2005/photodrop/internal/client/location"
	"github.com/dmitrijs2005/photodrop/internal/client/models"
	"github.com/dmitrijs2005/photodrop/internal/client/repositories/uploads"
	"github.com/dmitrijs2005/photodrop/internal/common"
	"github.com/dmitrijs2005/photodrop/internal/filex"
	"github.com/dmitrijs2005/photodrop/internal/logging"
	"github.com/dmitrijs2005/photodrop/internal/netx"
	"github.com/google/uuid"
)

// Issuer hands out a fresh credential for a file with the given extension.
type Issuer interface {
	Issue(ctx context.Context, ext string) (*Destination, error)
}

// Recorder writes the uploaded-photo row once a transfer succeeded. It
// returns (nil, nil) when there is no principal to record for.
type Recorder interface {
	Record(ctx context.Context, path, uploadURL string) (*models.Photo, error)
}

// Redeemer runs Transition and executes its commands. It is meant for one
// user at a time; actions are sequential.
type Redeemer struct {
	state    State
	issuer   Issuer
	recorder Recorder
	journal  uploads.Repository
	http     *http.Client
	log      logging.Logger
	now      func() time.Time
}

type Option func(*Redeemer)

func WithRecorder(rec Recorder) Option {
	return func(r *Redeemer) { r.recorder = rec }
}

// WithJournal records every action in the local uploads journal.
func WithJournal(j uploads.Repository) Option {
	return func(r *Redeemer) { r.journal = j }
}

func WithHTTPClient(c *http.Client) Option {
	return func(r *Redeemer) { r.http = c }
}

func WithLogger(l logging.Logger) Option {
	return func(r *Redeemer) { r.log = l }
}

func newRedeemer(s State, opts ...Option) *Redeemer {
	r := &Redeemer{state: s, log: logging.Discard(), now: time.Now}
	for _, o := range opts {
		o(r)
	}
	return r
}

// NewDelegated reads upload_url (and optionally path) from page: query
// first, fragment second. Without upload_url the redeemer starts blocked.
func NewDelegated(page *url.URL, opts ...Option) *Redeemer {
	return newRedeemer(Delegated(DestinationFromPage(page)), opts...)
}

// NewDirect issues a new credential through issuer for every action.
func NewDirect(issuer Issuer, opts ...Option) *Redeemer {
	r := newRedeemer(Direct(), opts...)
	r.issuer = issuer
	return r
}

// DestinationFromPage returns nil when page carries no upload_url.
func DestinationFromPage(page *url.URL) *Destination {
	uploadURL, ok := location.Param(page, common.UploadURLParam)
	if !ok {
		return nil
	}
	path, _ := location.Param(page, common.UploadPathParam)
	return &Destination{UploadURL: uploadURL, Path: path, Token: netx.SignatureOf(uploadURL)}
}

func (r *Redeemer) State() State {
	return r.state
}

// Select handles one user action. The returned error is the reason the
// action did not end in a clean success: a rejection, the transfer failure,
// or the record insert failure (the upload itself then still succeeded).
// Selecting a file after a success does nothing.
func (r *Redeemer) Select(ctx context.Context, f *File) (State, error) {
	next, cmd := Transition(r.state, FileSelected{File: f})
	r.state = next

	switch c := cmd.(type) {
	case nil:
		return r.state, nil
	case Reject:
		return r.state, c.Err
	case StartTransfer:
		r.state, _ = Transition(r.state, r.transfer(ctx, c))
	}

	switch {
	case r.state.Phase == Failed:
		return r.state, r.state.Err
	case r.state.RecordErr != nil:
		return r.state, r.state.RecordErr
	default:
		return r.state, nil
	}
}

func (r *Redeemer) transfer(ctx context.Context, c StartTransfer) TransferFinished {
	entry := r.journalStart(ctx, c.File.Name)

	dest := c.Destination
	if dest == nil {
		var err error
		dest, err = r.issue(ctx, c.File.Name)
		if err != nil {
			r.log.Warn(ctx, "credential issue failed", "error", err)
			msg := TransferFinished{Err: err}
			r.journalFinish(ctx, entry, msg)
			return msg
		}
	}

	msg := TransferFinished{Destination: dest}
	msg.Err = netx.PutPresigned(ctx, r.http, dest.UploadURL, c.File.Data, c.File.ContentType)
	if msg.Err != nil {
		r.log.Warn(ctx, "upload failed", "path", dest.Path, "error", msg.Err)
		r.journalFinish(ctx, entry, msg)
		return msg
	}
	r.log.Info(ctx, "upload finished", "path", dest.Path, "bytes", len(c.File.Data))

	if r.recorder != nil && dest.Path != "" {
		photo, err := r.recorder.Record(ctx, dest.Path, dest.UploadURL)
		if err != nil {
			msg.RecordErr = fmt.Errorf("%w: %v", common.ErrRecordInsertFailed, err)
			r.log.Warn(ctx, "photo record insert failed", "path", dest.Path, "error", err)
		}
		msg.Photo = photo
	}

	r.journalFinish(ctx, entry, msg)
	return msg
}

func (r *Redeemer) issue(ctx context.Context, name string) (*Destination, error) {
	if r.issuer == nil {
		return nil, common.ErrNoDestinationConfigured
	}
	return r.issuer.Issue(ctx, filex.Ext(name))
}

func (r *Redeemer) journalStart(ctx context.Context, name string) *models.Upload {
	if r.journal == nil {
		return nil
	}
	u := &models.Upload{
		ID:        uuid.NewString(),
		FileName:  name,
		Mode:      r.state.Mode,
		Status:    Uploading.String(),
		CreatedAt: r.now(),
	}
	if err := r.journal.Create(ctx, u); err != nil {
		r.log.Warn(ctx, "journal write failed", "error", err)
		return nil
	}
	return u
}

func (r *Redeemer) journalFinish(ctx context.Context, u *models.Upload, msg TransferFinished) {
	if u == nil {
		return
	}
	outcome, _ := Transition(r.state, msg)
	if outcome.Destination != nil {
		u.Path = outcome.Destination.Path
	}
	u.Status = outcome.Phase.String()
	u.StatusCode = outcome.StatusCode
	switch {
	case outcome.Err != nil:
		u.Error = outcome.Err.Error()
	case outcome.RecordErr != nil:
		u.Error = outcome.RecordErr.Error()
	}
	if err := r.journal.Finish(ctx, u.ID, u, r.now()); err != nil {
		r.log.Warn(ctx, "journal write failed", "error", err)
	}
}
