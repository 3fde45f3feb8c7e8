// Package synchronizer moves a session handed over in a page fragment
// (access_token and refresh_token) into the local session store, then
// navigates to the landing page once.
package synchronizer

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/dmitrijs2005/photodrop/internal/client/location"
	"github.com/dmitrijs2005/photodrop/internal/common"
	"github.com/dmitrijs2005/photodrop/internal/logging"
)

type Phase int

const (
	Parsing Phase = iota
	MissingToken
	Restoring
	Restored
	RestoreFailed
)

// Status lines.
const (
	StatusParsing      = "Parsing token..."
	StatusNoToken      = "No token found in URL."
	StatusMissingToken = "Missing access_token or refresh_token."
	StatusRestoring    = "Restoring session..."
	StatusRestored     = "Session restored! Redirecting..."
	statusFailedPrefix = "Error restoring session: "
)

type Installer interface {
	InstallSession(ctx context.Context, accessToken, refreshToken string) error
}

// Result is the terminal outcome of Run.
type Result struct {
	Phase  Phase
	Status string
	Err    error
}

type Synchronizer struct {
	installer Installer
	delay     time.Duration
	landing   string
	navigate  func(ctx context.Context, path string) error
	report    func(phase Phase, status string)
	after     func(d time.Duration) <-chan time.Time
	log       logging.Logger
}

// New returns a synchronizer that waits delay after a restored session and
// then calls navigate(landing). report, when not nil, sees every status
// line as it happens, terminal ones included.
func New(installer Installer, delay time.Duration, landing string, navigate func(ctx context.Context, path string) error, report func(Phase, string), log logging.Logger) *Synchronizer {
	if report == nil {
		report = func(Phase, string) {}
	}
	if log == nil {
		log = logging.Discard()
	}
	return &Synchronizer{
		installer: installer,
		delay:     delay,
		landing:   landing,
		navigate:  navigate,
		report:    report,
		after:     time.After,
		log:       log,
	}
}

// Run handles one page load. It never retries.
func (s *Synchronizer) Run(ctx context.Context, page *url.URL) (Result, error) {
	s.report(Parsing, StatusParsing)

	if page == nil || page.EscapedFragment() == "" {
		return s.finish(Result{Phase: MissingToken, Status: StatusNoToken, Err: common.ErrMissingToken}), nil
	}

	params := location.Fragment(page)
	access := params.Get(common.AccessTokenParam)
	refresh := params.Get(common.RefreshTokenParam)
	if access == "" || refresh == "" {
		return s.finish(Result{Phase: MissingToken, Status: StatusMissingToken, Err: common.ErrMissingToken}), nil
	}

	s.report(Restoring, StatusRestoring)
	if err := s.installer.InstallSession(ctx, access, refresh); err != nil {
		s.log.Warn(ctx, "session restore failed", "error", err)
		return s.finish(Result{
			Phase:  RestoreFailed,
			Status: statusFailedPrefix + err.Error(),
			Err:    fmt.Errorf("%w: %w", common.ErrRestoreFailed, err),
		}), nil
	}

	res := s.finish(Result{Phase: Restored, Status: StatusRestored})

	select {
	case <-ctx.Done():
		return res, ctx.Err()
	case <-s.after(s.delay):
	}

	if s.navigate == nil {
		return res, nil
	}
	return res, s.navigate(ctx, s.landing)
}

func (s *Synchronizer) finish(r Result) Result {
	s.report(r.Phase, r.Status)
	return r
}
