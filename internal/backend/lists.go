package backend

import (
	"context"

	"github.com/desertthunder/fivhter/internal/auth"
	"github.com/desertthunder/fivhter/internal/models"
	"github.com/desertthunder/fivhter/internal/shared"
	"github.com/desertthunder/fivhter/internal/store"
)

// CreateList validates the form and stores the list under the signed in user, ignoring params.OwnerID.
func (c *Client) CreateList(ctx context.Context, params models.CreateListParams) shared.Result[models.TopFiveList] {
	return call(ctx, c, "CreateList", c.actor(ctx), func() (models.TopFiveList, error) {
		if err := auth.ValidateListForm(params.Title, params.Items); err != nil {
			return models.TopFiveList{}, err
		}

		user, err := c.auth.CurrentUser(ctx)
		if err != nil {
			return models.TopFiveList{}, err
		}
		params.OwnerID = user.ID

		defer c.touched()
		return c.store.CreateList(params)
	})
}

func (c *Client) GetList(ctx context.Context, id string) shared.Result[models.TopFiveList] {
	return call(ctx, c, "GetList", "", func() (models.TopFiveList, error) {
		return c.store.GetList(id)
	})
}

func (c *Client) UpdateList(ctx context.Context, id string, patch models.ListPatch) shared.Result[models.TopFiveList] {
	return call(ctx, c, "UpdateList", c.actor(ctx), func() (models.TopFiveList, error) {
		return c.store.UpdateList(id, patch)
	})
}

func (c *Client) DeleteList(ctx context.Context, id string) shared.Result[shared.Empty] {
	return call(ctx, c, "DeleteList", c.actor(ctx), func() (shared.Empty, error) {
		defer c.touched()
		if err := c.store.DeleteList(id); err != nil {
			return shared.Empty{}, err
		}
		return shared.Empty{Success: true}, nil
	})
}

// ListLists runs q. When q.ViewerID is empty the signed in user, if any, is the viewer.
func (c *Client) ListLists(ctx context.Context, q store.Query) shared.Result[[]models.TopFiveList] {
	return call(ctx, c, "ListLists", "", func() ([]models.TopFiveList, error) {
		if q.ViewerID == "" {
			if user, err := c.auth.CurrentUser(ctx); err == nil {
				q.ViewerID = user.ID
			}
		}
		return c.store.ListLists(q)
	})
}
