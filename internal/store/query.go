package store

import (
	"fmt"
	"slices"
	"strings"

	"github.com/desertthunder/fivhter/internal/models"
	"github.com/desertthunder/fivhter/internal/shared"
)

// SortBy names a list ordering.
type SortBy string

const (
	SortRecent  SortBy = "recent"  // created_at descending
	SortPopular SortBy = "popular" // vote_count descending
)

// CategoryAll disables the category filter.
const CategoryAll = "all"

// Query selects, orders and pages lists.
type Query struct {
	OwnerID  string // only lists owned by this user
	Category string // only lists in this category; "" or "all" for any
	Search   string // case-insensitive substring of title or description
	SortBy   SortBy // defaults to [SortRecent]
	Page     int    // 0-based page, used when PageSize > 0
	PageSize int    // 0 disables pagination
	ViewerID string // private lists are only visible to their owner
}

// ListLists filters, sorts and paginates the list table and hydrates each result.
//
// Sorting is stable: lists that tie keep their insertion order.
func (s *Store) ListLists(q Query) ([]models.TopFiveList, error) {
	sortBy := q.SortBy
	if sortBy == "" {
		sortBy = SortRecent
	}
	if sortBy != SortRecent && sortBy != SortPopular {
		return nil, fmt.Errorf("%w: %q", shared.ErrUnsupportedSort, sortBy)
	}
	if q.Page < 0 || q.PageSize < 0 {
		return nil, fmt.Errorf("%w: page and page size must not be negative", shared.ErrInvalidArgument)
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	search := strings.ToLower(strings.TrimSpace(q.Search))

	selected := make([]*models.List, 0, len(s.order))
	for _, id := range s.order {
		l := s.lists[id]
		if q.OwnerID != "" && l.UserID != q.OwnerID {
			continue
		}
		if q.Category != "" && q.Category != CategoryAll && (l.Category == nil || *l.Category != q.Category) {
			continue
		}
		if search != "" && !matches(l, search) {
			continue
		}
		if l.Visibility == models.VisibilityPrivate && l.UserID != q.ViewerID {
			continue
		}
		selected = append(selected, l)
	}

	switch sortBy {
	case SortRecent:
		slices.SortStableFunc(selected, func(a, b *models.List) int { return b.CreatedAt.Compare(a.CreatedAt) })
	case SortPopular:
		slices.SortStableFunc(selected, func(a, b *models.List) int { return b.VoteCount - a.VoteCount })
	}

	if q.PageSize > 0 {
		// compared by division so huge pages cannot overflow the offset
		if q.Page > 0 && (len(selected) == 0 || q.Page > (len(selected)-1)/q.PageSize) {
			selected = selected[:0]
		} else {
			start := q.Page * q.PageSize
			end := min(start+q.PageSize, len(selected))
			selected = selected[start:end]
		}
	}

	results := make([]models.TopFiveList, 0, len(selected))
	for _, l := range selected {
		results = append(results, s.hydrateLocked(l))
	}
	return results, nil
}

func matches(l *models.List, term string) bool {
	if strings.Contains(strings.ToLower(l.Title), term) {
		return true
	}
	return l.Description != nil && strings.Contains(strings.ToLower(*l.Description), term)
}
