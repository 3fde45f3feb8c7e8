package cli

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/photodrop/internal/common"
	"github.com/spf13/cobra"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
var (
	getSimpleText = GetSimpleText
	getPassword   = GetPassword
)

func newSignupCommand(r *root) *cobra.Command {
	var email string
	cmd := &cobra.Command{
		Use:   "signup",
		Short: "Create an account and log in",
		Args:  cobra.NoArgs,
		RunE: r.run(func(ctx context.Context, a *App, _ []string) error {
			return a.SignUp(ctx, email)
		}),
	}
	cmd.Flags().StringVarP(&email, "email", "e", "", "account email")
	return cmd
}

func newLoginCommand(r *root) *cobra.Command {
	var email string
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in with email and password",
		Args:  cobra.NoArgs,
		RunE: r.run(func(ctx context.Context, a *App, _ []string) error {
			return a.Login(ctx, email)
		}),
	}
	cmd.Flags().StringVarP(&email, "email", "e", "", "account email")
	return cmd
}

func newLogoutCommand(r *root) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the local session",
		Args:  cobra.NoArgs,
		RunE: r.run(func(ctx context.Context, a *App, _ []string) error {
			return a.Logout(ctx)
		}),
	}
}

func newWhoamiCommand(r *root) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show who is logged in",
		Args:  cobra.NoArgs,
		RunE: r.run(func(ctx context.Context, a *App, _ []string) error {
			return a.WhoAmI(ctx)
		}),
	}
}

func (a *App) credentials(email string) (string, []byte, error) {
	if email == "" {
		var err error
		if email, err = getSimpleText(a.in, "Enter email", a.prompt); err != nil {
			return "", nil, err
		}
	}

	password, err := getPassword(a.in, a.stdinFd, a.prompt)
	if err != nil {
		return "", nil, err
	}
	return email, password, nil
}

// SignUp creates the account and logs straight in.
func (a *App) SignUp(ctx context.Context, email string) error {
	email, password, err := a.credentials(email)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	if _, err := a.sessions.SignUp(ctx, email, string(password)); err != nil {
		a.out.Error("Sign up failed: " + err.Error())
		return reported(err)
	}

	p, err := a.sessions.Login(ctx, email, string(password))
	if err != nil {
		a.out.Error("Login failed: " + err.Error())
		return reported(err)
	}
	a.out.Home(p)
	return nil
}

func (a *App) Login(ctx context.Context, email string) error {
	email, password, err := a.credentials(email)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	p, err := a.sessions.Login(ctx, email, string(password))
	if err != nil {
		a.log.Debug(ctx, "login failed", "error", err)
		a.out.Error("Login failed: " + err.Error())
		return reported(err)
	}
	a.out.Home(p)
	return nil
}

func (a *App) Logout(ctx context.Context) error {
	if err := a.sessions.Logout(ctx); err != nil {
		return err
	}
	a.out.Info("Logged out.")
	return nil
}

// WhoAmI renders the landing view. An unreachable server is reported as
// such rather than as being logged out.
func (a *App) WhoAmI(ctx context.Context) error {
	if err := a.api.Ping(ctx); err != nil {
		a.log.Debug(ctx, "ping failed", "error", err)
		a.out.Error(fmt.Sprintf("Server unavailable at %s: %v", a.config.ServerURL, err))
		return reported(err)
	}

	p, err := a.sessions.CurrentPrincipal(ctx)
	if err != nil {
		a.out.Error(err.Error())
		return reported(err)
	}
	a.out.Home(p)
	return nil
}
