package cli

import (
	"context"
	"io"
	"os"

	"github.com/dmitrijs2005/photodrop/internal/client/config"
	"github.com/dmitrijs2005/photodrop/internal/client/view"
	"github.com/dmitrijs2005/photodrop/internal/flagx"
	"github.com/spf13/cobra"
)

type root struct {
	configPath string
	flags      *config.Flags
	in         io.Reader
	out        io.Writer
	errOut     io.Writer
}

// open builds the App for one command: defaults, JSON file, environment,
// then the flags the user set.
func (r *root) open(ctx context.Context) (*App, error) {
	path := r.configPath
	if path == "" {
		path = os.Getenv(flagx.ConfigFileEnv)
	}

	cfg, err := config.LoadConfig(path)
	if err != nil {
		return nil, err
	}
	r.flags.Apply(cfg)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return NewApp(ctx, cfg, r.in, r.out, r.errOut)
}

func (r *root) run(fn func(ctx context.Context, a *App, args []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		a, err := r.open(ctx)
		if err != nil {
			return err
		}
		defer a.Close()
		return fn(ctx, a, args)
	}
}

func NewRootCommand(in io.Reader, out, errOut io.Writer) *cobra.Command {
	r := &root{in: in, out: out, errOut: errOut}

	cmd := &cobra.Command{
		Use:           "photodrop",
		Short:         "Upload photos through signed upload URLs",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.SetIn(in)
	cmd.SetOut(out)
	cmd.SetErr(errOut)

	r.flags = config.BindFlags(cmd.PersistentFlags())
	cmd.PersistentFlags().StringVarP(&r.configPath, "config", "c", "", "path to JSON config file")

	cmd.AddCommand(
		newSignupCommand(r),
		newLoginCommand(r),
		newLogoutCommand(r),
		newWhoamiCommand(r),
		newSyncCommand(r),
		newUploadCommand(r),
		newPhotosCommand(r),
		newHistoryCommand(r),
	)
	return cmd
}

// Execute runs the CLI and returns the process exit code.
func Execute(ctx context.Context, args []string, in io.Reader, out, errOut io.Writer) int {
	cmd := NewRootCommand(in, out, errOut)
	cmd.SetArgs(args)

	if err := cmd.ExecuteContext(ctx); err != nil {
		if !isReported(err) {
			view.New(errOut).Error(err.Error())
		}
		return 1
	}
	return 0
}
