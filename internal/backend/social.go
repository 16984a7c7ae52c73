package backend

import (
	"context"

	"github.com/desertthunder/fivhter/internal/models"
	"github.com/desertthunder/fivhter/internal/shared"
)

// ToggleVote stars or unstars a list for the signed in user.
func (c *Client) ToggleVote(ctx context.Context, listID string) shared.Result[models.VoteState] {
	return call(ctx, c, "ToggleVote", c.actor(ctx), func() (models.VoteState, error) {
		user, err := c.auth.CurrentUser(ctx)
		if err != nil {
			return models.VoteState{}, err
		}
		return c.store.ToggleVote(listID, user.ID)
	})
}

// AddComment posts content on a list as the signed in user.
func (c *Client) AddComment(ctx context.Context, listID, content string) shared.Result[models.Comment] {
	return call(ctx, c, "AddComment", c.actor(ctx), func() (models.Comment, error) {
		user, err := c.auth.CurrentUser(ctx)
		if err != nil {
			return models.Comment{}, err
		}
		return c.store.AddComment(listID, user.ID, content)
	})
}

func (c *Client) ListComments(ctx context.Context, listID string) shared.Result[[]models.Comment] {
	return call(ctx, c, "ListComments", "", func() ([]models.Comment, error) {
		return c.store.ListComments(listID)
	})
}

func (c *Client) GetProfile(ctx context.Context, id string) shared.Result[models.Profile] {
	return call(ctx, c, "GetProfile", "", func() (models.Profile, error) {
		return c.store.GetProfile(id)
	})
}

// UpdateProfile patches the signed in user's profile.
func (c *Client) UpdateProfile(ctx context.Context, patch models.ProfilePatch) shared.Result[models.Profile] {
	return call(ctx, c, "UpdateProfile", c.actor(ctx), func() (models.Profile, error) {
		user, err := c.auth.CurrentUser(ctx)
		if err != nil {
			return models.Profile{}, err
		}
		return c.store.UpdateProfile(user.ID, patch)
	})
}
