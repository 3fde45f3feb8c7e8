package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

func newPhotosCommand(r *root) *cobra.Command {
	return &cobra.Command{
		Use:   "photos",
		Short: "List the photos recorded for the current user",
		Args:  cobra.NoArgs,
		RunE: r.run(func(ctx context.Context, a *App, _ []string) error {
			return a.Photos(ctx)
		}),
	}
}

func newHistoryCommand(r *root) *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recent upload actions from the local journal",
		Args:  cobra.NoArgs,
		RunE: r.run(func(ctx context.Context, a *App, _ []string) error {
			return a.History(ctx, limit)
		}),
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "number of entries")
	return cmd
}

func (a *App) Photos(ctx context.Context) error {
	list, err := a.photos.List(ctx)
	if err != nil {
		a.out.Error(err.Error())
		return reported(err)
	}
	if len(list) == 0 {
		a.out.Info("No photos yet.")
		return nil
	}
	for _, p := range list {
		a.out.Line(fmt.Sprintf("%s  %s", p.CreatedAt.Local().Format(time.DateTime), p.ImageURL))
	}
	return nil
}

func (a *App) History(ctx context.Context, limit int) error {
	list, err := a.journal.List(ctx, limit)
	if err != nil {
		return err
	}
	if len(list) == 0 {
		a.out.Info("No uploads yet.")
		return nil
	}
	for _, u := range list {
		line := fmt.Sprintf("%s  %-9s  %-9s  %s", u.CreatedAt.Local().Format(time.DateTime), u.Mode, u.Status, u.FileName)
		if u.Path != "" {
			line += "  " + u.Path
		}
		if u.StatusCode != 0 {
			line += fmt.Sprintf("  (%d)", u.StatusCode)
		}
		if u.Error != "" {
			line += "  " + u.Error
		}
		a.out.Line(line)
	}
	return nil
}
