package cli

import (
	"context"

	"github.com/dmitrijs2005/photodrop/internal/client/location"
	"github.com/dmitrijs2005/photodrop/internal/client/synchronizer"
	"github.com/dmitrijs2005/photodrop/internal/client/view"
	"github.com/spf13/cobra"
)

func newSyncCommand(r *root) *cobra.Command {
	return &cobra.Command{
		Use:   "sync <page-url>",
		Short: "Adopt the session carried in a page URL fragment",
		Long: "Reads access_token and refresh_token from the fragment of page-url,\n" +
			"installs them as the local session and then shows the landing view.",
		Args: cobra.ExactArgs(1),
		RunE: r.run(func(ctx context.Context, a *App, args []string) error {
			return a.Sync(ctx, args[0])
		}),
	}
}

var syncStyles = map[synchronizer.Phase]view.Kind{
	synchronizer.Parsing:       view.Info,
	synchronizer.Restoring:     view.Info,
	synchronizer.MissingToken:  view.Blocked,
	synchronizer.RestoreFailed: view.Error,
	synchronizer.Restored:      view.Success,
}

func (a *App) Sync(ctx context.Context, pageURL string) error {
	page, err := location.Parse(pageURL)
	if err != nil {
		a.out.Error(err.Error())
		return reported(err)
	}

	s := synchronizer.New(a.sessions, a.config.SyncDelay, a.config.LandingPath, a.navigate,
		func(phase synchronizer.Phase, status string) {
			a.out.Print(syncStyles[phase], status)
		},
		a.log,
	)

	res, err := s.Run(ctx, page)
	if err != nil {
		return err
	}
	if res.Err != nil {
		return reported(res.Err)
	}
	return nil
}

// navigate shows the view that lives at path.
func (a *App) navigate(ctx context.Context, path string) error {
	if path == "/" {
		return a.WhoAmI(ctx)
	}
	a.out.Info("Continue at " + path)
	return nil
}
