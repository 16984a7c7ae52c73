package main

import (
	"context"
	"errors"

	"github.com/urfave/cli/v3"

	"github.com/desertthunder/fivhter/internal/auth"
	"github.com/desertthunder/fivhter/internal/models"
	"github.com/desertthunder/fivhter/internal/shared"
	"github.com/desertthunder/fivhter/internal/ui"
)

// authCommand handles authentication operations
func authCommand(r *Runner) *cli.Command {
	credentials := func(confirm bool) []cli.Flag {
		flags := []cli.Flag{
			&cli.StringFlag{Name: "email", Aliases: []string{"e"}, Usage: "Account email"},
			&cli.StringFlag{Name: "password", Aliases: []string{"p"}, Usage: "Account password"},
		}
		if confirm {
			flags = append(flags, &cli.StringFlag{Name: "confirm", Usage: "Repeat the password"})
		}
		return flags
	}

	return &cli.Command{
		Name:  "auth",
		Usage: "Manage the signed in user",
		Commands: []*cli.Command{
			{
				Name:   "signin",
				Usage:  "Sign in with email and password",
				Flags:  credentials(false),
				Action: r.AuthSignIn,
			},
			{
				Name:   "signup",
				Usage:  "Create an account",
				Flags:  credentials(true),
				Action: r.AuthSignUp,
			},
			{
				Name:   "signout",
				Usage:  "Sign out and clear the stored session",
				Action: r.AuthSignOut,
			},
			{
				Name:   "whoami",
				Usage:  "Show the signed in user",
				Action: r.AuthWhoami,
			},
			{
				Name:  "google",
				Usage: "Sign in with Google",
				Flags: []cli.Flag{
					&cli.BoolFlag{Name: "open", Usage: "Open the consent page in the system browser"},
				},
				Action: r.AuthGoogle,
			},
		},
	}
}

// AuthSignIn validates the form, then signs in and stores the session.
func (r *Runner) AuthSignIn(ctx context.Context, cmd *cli.Command) error {
	email, password := cmd.String("email"), cmd.String("password")
	if err := auth.ValidateCredentialsForm(email, password, "", false); err != nil {
		return render(r, cmd, shared.Fail[models.Session](err), nil)
	}

	if err := r.open(); err != nil {
		return err
	}

	res := mutated(r, r.client.SignIn(ctx, email, password))
	return render(r, cmd, res, r.printSession)
}

// AuthSignUp validates the form and registers the account without signing in.
func (r *Runner) AuthSignUp(ctx context.Context, cmd *cli.Command) error {
	email, password := cmd.String("email"), cmd.String("password")
	if err := auth.ValidateCredentialsForm(email, password, cmd.String("confirm"), true); err != nil {
		return render(r, cmd, shared.Fail[models.User](err), nil)
	}

	if err := r.open(); err != nil {
		return err
	}

	res := mutated(r, r.client.SignUp(ctx, email, password))
	return render(r, cmd, res, func(u models.User) error {
		return r.writePlain("%s account created for %s, sign in to continue\n", ui.Styles.OK("✓"), u.Email)
	})
}

func (r *Runner) AuthSignOut(ctx context.Context, cmd *cli.Command) error {
	if err := r.open(); err != nil {
		return err
	}

	return render(r, cmd, r.client.SignOut(ctx), func(shared.Empty) error {
		return r.writePlain("%s signed out\n", ui.Styles.OK("✓"))
	})
}

func (r *Runner) AuthWhoami(ctx context.Context, cmd *cli.Command) error {
	if err := r.open(); err != nil {
		return err
	}

	return render(r, cmd, r.client.GetSession(ctx), r.printSession)
}

// AuthGoogle prints the consent URL when a Google client is configured, then completes the mock sign-in.
func (r *Runner) AuthGoogle(ctx context.Context, cmd *cli.Command) error {
	if err := r.open(); err != nil {
		return err
	}

	url, err := r.auth.GoogleAuthURL(shared.GenerateID())
	if err != nil && !errors.Is(err, shared.ErrMissingConfig) {
		return err
	}
	if err == nil {
		if cmd.Bool("open") {
			if err := shared.OpenBrowser(url); err != nil {
				r.logger.Warn("could not open browser", "error", err)
			}
		}
		if !cmd.Bool("json") {
			r.writePlain("%s %s\n", ui.Styles.Help("Authorize at:"), url)
		}
	}

	res := mutated(r, r.client.SignInWithGoogle(ctx))
	return render(r, cmd, res, r.printSession)
}

func (r *Runner) printSession(s models.Session) error {
	if !s.SignedIn() {
		return r.writePlain("%s\n", ui.Styles.Warn("not signed in"))
	}
	u := s.User
	r.writePlain("%s %s\n", ui.Styles.Title(u.Username), ui.Styles.Help("("+u.ID+")"))
	if u.Email != "" {
		r.writePlain("email: %s\n", u.Email)
	}
	if s.Token != nil {
		r.writePlain("session expires: %s\n", s.Token.Expiry.Format("2006-01-02 15:04 MST"))
	}
	return nil
}
