package cli

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/photodrop/internal/client/location"
	"github.com/dmitrijs2005/photodrop/internal/client/redeemer"
	"github.com/dmitrijs2005/photodrop/internal/common"
	"github.com/spf13/cobra"
)

var errUploadModes = errors.New("use either --page-url or --direct, not both")

func newUploadCommand(r *root) *cobra.Command {
	var (
		pageURL string
		direct  bool
	)
	cmd := &cobra.Command{
		Use:   "upload [file]",
		Short: "Upload one image",
		Long: "With --page-url the signed upload_url (and optional path) is read from the\n" +
			"page address, query first, then fragment. Otherwise a fresh upload URL is\n" +
			"issued for the logged-in user.",
		Args: cobra.MaximumNArgs(1),
		RunE: r.run(func(ctx context.Context, a *App, args []string) error {
			if pageURL != "" && direct {
				return errUploadModes
			}
			file := ""
			if len(args) == 1 {
				file = args[0]
			}
			return a.Upload(ctx, file, pageURL)
		}),
	}
	cmd.Flags().StringVar(&pageURL, "page-url", "", "page address carrying upload_url")
	cmd.Flags().BoolVar(&direct, "direct", false, "issue a fresh upload URL (default)")
	return cmd
}

// Upload runs one redeemer action. An empty pageURL selects direct mode.
func (a *App) Upload(ctx context.Context, filePath, pageURL string) error {
	opts := []redeemer.Option{
		redeemer.WithRecorder(a.photos),
		redeemer.WithJournal(a.journal),
		redeemer.WithHTTPClient(a.http),
		redeemer.WithLogger(a.log),
	}

	var r *redeemer.Redeemer
	if pageURL != "" {
		page, err := location.Parse(pageURL)
		if err != nil {
			a.out.Error(err.Error())
			return reported(err)
		}
		r = redeemer.NewDelegated(page, opts...)
	} else {
		r = redeemer.NewDirect(redeemer.NewSessionIssuer(a.api, a.sessions), opts...)
	}

	if r.State().Phase == redeemer.NoDestination {
		a.out.Blocked(r.State().Status())
		return reported(common.ErrNoDestinationConfigured)
	}

	var file *redeemer.File
	if filePath != "" {
		var err error
		if file, err = redeemer.LoadFile(filePath); err != nil {
			a.out.Error("Error uploading image: " + err.Error())
			return reported(err)
		}
		a.out.Info("Uploading...")
	}

	s, err := r.Select(ctx, file)
	switch {
	case errors.Is(err, common.ErrNoFileSelected):
		a.out.Error("Error uploading image: " + err.Error())
		return reported(err)
	case s.Phase == redeemer.Failed:
		a.out.Error(s.Status())
		return reported(err)
	}

	a.out.Success(s.Status())
	if u := a.imageURL(s); u != "" {
		a.out.Line("Uploaded Image: " + u)
	}
	if s.RecordErr != nil {
		a.out.Error("Error saving photo record: " + s.RecordErr.Error())
	}
	return nil
}

func (a *App) imageURL(s redeemer.State) string {
	if s.Photo != nil {
		return s.Photo.ImageURL
	}
	if s.Destination == nil || s.Destination.Path == "" {
		return ""
	}
	return a.photos.PublicURL(s.Destination.Path, s.Destination.UploadURL)
}
