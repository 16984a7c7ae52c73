package store

import (
	"fmt"
	"slices"
	"time"

	"github.com/desertthunder/fivhter/internal/models"
	"github.com/desertthunder/fivhter/internal/shared"
)

// CreateList stores a new list and its items and returns the hydrated list.
//
// The list and every item get a fresh time-based id and share one created_at stamp.
func (s *Store) CreateList(params models.CreateListParams) (models.TopFiveList, error) {
	visibility := params.Visibility
	if visibility == "" {
		visibility = models.VisibilityPublic
	}
	if !visibility.Valid() {
		return models.TopFiveList{}, fmt.Errorf("%w: unknown visibility %q", shared.ErrInvalidArgument, visibility)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()

	list := &models.List{
		ID:          shared.TimeID("list", now),
		Title:       params.Title,
		Description: nilIfEmpty(params.Description),
		UserID:      params.OwnerID,
		Category:    nilIfEmpty(params.Category),
		Visibility:  visibility,
		CreatedAt:   now,
	}

	items := make([]*models.ListItem, 0, len(params.Items))
	for i, it := range params.Items {
		items = append(items, &models.ListItem{
			ID:          shared.TimeID("item", now, i),
			ListID:      list.ID,
			Title:       it.Title,
			Description: nilIfEmpty(it.Description),
			Rank:        it.Rank,
			CreatedAt:   now,
		})
	}

	s.lists[list.ID] = list
	s.order = append(s.order, list.ID)
	s.items[list.ID] = items

	s.logger.Debug("created list", "id", list.ID, "owner", list.UserID, "items", len(items))

	return s.hydrateLocked(list), nil
}

// GetList returns the list joined with its rank sorted items and author profile.
func (s *Store) GetList(id string) (models.TopFiveList, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	list, ok := s.lists[id]
	if !ok {
		return models.TopFiveList{}, fmt.Errorf("%w: %s", shared.ErrListNotFound, id)
	}

	return s.hydrateLocked(list), nil
}

// UpdateList applies a field level patch and stamps updated_at.
//
// Items without an id are inserted; a missing or zero rank defaults to the current item count + 1,
// which can repeat an existing rank once items have been removed elsewhere.
// Items with an id update only their present fields; unknown ids are skipped.
func (s *Store) UpdateList(id string, patch models.ListPatch) (models.TopFiveList, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	list, ok := s.lists[id]
	if !ok {
		return models.TopFiveList{}, fmt.Errorf("%w: %s", shared.ErrListNotFound, id)
	}

	if v, ok := patch.Visibility.Get(); ok && !v.Valid() {
		return models.TopFiveList{}, fmt.Errorf("%w: unknown visibility %q", shared.ErrInvalidArgument, v)
	}

	now := s.now()

	if title, ok := patch.Title.Get(); ok && title != "" {
		list.Title = title
	}
	patch.Description.Apply(&list.Description)
	patch.Category.Apply(&list.Category)
	if v, ok := patch.Visibility.Get(); ok {
		list.Visibility = v
	}
	list.UpdatedAt = &now

	if len(patch.Items) > 0 {
		existing := s.items[id]
		for _, ip := range patch.Items {
			if ip.ID == "" {
				existing = append(existing, newItemFromPatch(id, ip, len(existing), now))
				continue
			}

			item := findItem(existing, ip.ID)
			if item == nil {
				s.logger.Warn("skipping patch for unknown item", "list", id, "item", ip.ID)
				continue
			}
			if title, ok := ip.Title.Get(); ok && title != "" {
				item.Title = title
			}
			ip.Description.Apply(&item.Description)
			if rank, ok := ip.Rank.Get(); ok && rank != 0 {
				item.Rank = rank
			}
		}
		s.items[id] = existing
	}

	s.logger.Debug("updated list", "id", id, "item_patches", len(patch.Items))

	return s.hydrateLocked(list), nil
}

// DeleteList removes the list together with its items, votes and comments.
func (s *Store) DeleteList(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.lists[id]; !ok {
		return fmt.Errorf("%w: %s", shared.ErrListNotFound, id)
	}

	delete(s.lists, id)
	delete(s.items, id)
	delete(s.votes, id)
	delete(s.comments, id)
	if i := slices.Index(s.order, id); i >= 0 {
		s.order = slices.Delete(s.order, i, i+1)
	}

	s.logger.Debug("deleted list", "id", id)

	return nil
}

func newItemFromPatch(listID string, ip models.ItemPatch, count int, now time.Time) *models.ListItem {
	title, _ := ip.Title.Get()

	rank, ok := ip.Rank.Get()
	if !ok || rank == 0 {
		rank = count + 1
	}

	var description *string
	if d, ok := ip.Description.Get(); ok {
		description = nilIfEmpty(&d)
	}

	return &models.ListItem{
		ID:          shared.TimeID("item", now, count),
		ListID:      listID,
		Title:       title,
		Description: description,
		Rank:        rank,
		CreatedAt:   now,
	}
}

func findItem(items []*models.ListItem, id string) *models.ListItem {
	for _, it := range items {
		if it.ID == id {
			return it
		}
	}
	return nil
}
