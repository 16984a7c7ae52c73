package backend

import (
	"context"

	"github.com/desertthunder/fivhter/internal/models"
	"github.com/desertthunder/fivhter/internal/shared"
)

func (c *Client) SignIn(ctx context.Context, email, password string) shared.Result[models.Session] {
	return call(ctx, c, "SignIn", "", func() (models.Session, error) {
		return c.auth.SignIn(ctx, email, password)
	})
}

// SignUp registers an account. No session is started.
func (c *Client) SignUp(ctx context.Context, email, password string) shared.Result[models.User] {
	return call(ctx, c, "SignUp", "", func() (models.User, error) {
		return c.auth.SignUp(ctx, email, password)
	})
}

func (c *Client) SignOut(ctx context.Context) shared.Result[shared.Empty] {
	return call(ctx, c, "SignOut", "", func() (shared.Empty, error) {
		if err := c.auth.SignOut(ctx); err != nil {
			return shared.Empty{}, err
		}
		return shared.Empty{Success: true}, nil
	})
}

// GetSession returns the current session; its user is nil when signed out.
func (c *Client) GetSession(ctx context.Context) shared.Result[models.Session] {
	return call(ctx, c, "GetSession", "", func() (models.Session, error) {
		sess, err := c.auth.GetSession(ctx)
		if err != nil || sess == nil {
			return models.Session{}, err
		}
		return *sess, nil
	})
}

func (c *Client) SignInWithGoogle(ctx context.Context) shared.Result[models.Session] {
	return call(ctx, c, "SignInWithGoogle", "", func() (models.Session, error) {
		return c.auth.SignInWithGoogle(ctx)
	})
}
