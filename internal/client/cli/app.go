package cli

import (
	"bufio"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/dmitrijs2005/photodrop/internal/client/client"
	"github.com/dmitrijs2005/photodrop/internal/client/config"
	"github.com/dmitrijs2005/photodrop/internal/client/repositories/uploads"
	"github.com/dmitrijs2005/photodrop/internal/client/services"
	"github.com/dmitrijs2005/photodrop/internal/client/view"
	"github.com/dmitrijs2005/photodrop/internal/filex"
	"github.com/dmitrijs2005/photodrop/internal/logging"
)

// App holds everything a command needs. One App serves one command run.
type App struct {
	config   *config.Config
	db       *sql.DB
	http     *http.Client
	api      *client.HTTPClient
	sessions *services.SessionService
	photos   *services.PhotoService
	journal  uploads.Repository
	out      *view.Printer
	prompt   io.Writer
	in       *bufio.Reader
	stdinFd  int
	log      logging.Logger
}

func NewApp(ctx context.Context, c *config.Config, in io.Reader, out, errOut io.Writer) (*App, error) {
	if err := filex.EnsureParentDir(c.DBPath); err != nil {
		return nil, err
	}

	db, err := client.InitDatabase(ctx, c.DBPath)
	if err != nil {
		return nil, fmt.Errorf("error initializing database: %w", err)
	}

	hc := &http.Client{Timeout: c.HTTPTimeout}
	api := client.NewHTTPClient(c.ServerURL, hc)
	sessions := services.NewSessionService(api, db)

	fd := -1
	if f, ok := in.(*os.File); ok {
		fd = int(f.Fd())
	}

	return &App{
		config:   c,
		db:       db,
		http:     hc,
		api:      api,
		sessions: sessions,
		photos:   services.NewPhotoService(api, sessions, c.PublicBaseURL),
		journal:  uploads.NewSQLiteRepository(db),
		out:      view.New(out),
		prompt:   out,
		in:       bufio.NewReader(in),
		stdinFd:  fd,
		log:      logging.NewJSONLogger(errOut, c.LogLevel).With("component", "cli"),
	}, nil
}

func (a *App) Close() error {
	return a.db.Close()
}

// reportedError marks an error whose message was already shown to the user.
type reportedError struct {
	err error
}

func (e *reportedError) Error() string { return e.err.Error() }
func (e *reportedError) Unwrap() error { return e.err }

func reported(err error) error {
	return &reportedError{err: err}
}

func isReported(err error) bool {
	var r *reportedError
	return errors.As(err, &r)
}
