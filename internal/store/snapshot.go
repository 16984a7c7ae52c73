package store

import (
	"cmp"
	"slices"

	"github.com/desertthunder/fivhter/internal/models"
)

// Snapshot is a deep copy of every table, in insertion order, used to persist and restore a [Store].
type Snapshot struct {
	Profiles []models.Profile
	Lists    []models.List
	Items    []models.ListItem
	Votes    []models.Vote
	Comments []models.Comment
}

// Snapshot copies the current tables.
//
// Lists, items and comments keep insertion order. Profiles are ordered by id and votes by list then user.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var snap Snapshot

	for _, p := range s.profiles {
		snap.Profiles = append(snap.Profiles, p.Clone())
	}
	slices.SortFunc(snap.Profiles, func(a, b models.Profile) int { return cmp.Compare(a.ID, b.ID) })

	for _, id := range s.order {
		snap.Lists = append(snap.Lists, s.lists[id].Clone())
		for _, it := range s.items[id] {
			snap.Items = append(snap.Items, it.Clone())
		}

		votes := make([]models.Vote, 0, len(s.votes[id]))
		for _, v := range s.votes[id] {
			votes = append(votes, v)
		}
		slices.SortFunc(votes, func(a, b models.Vote) int { return cmp.Compare(a.UserID, b.UserID) })
		snap.Votes = append(snap.Votes, votes...)

		snap.Comments = append(snap.Comments, s.comments[id]...)
	}

	return snap
}

// Restore replaces every table with the contents of snap.
//
// Rows that reference a list missing from snap are dropped.
func (s *Store) Restore(snap Snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.restoreLocked(snap)
}

func (s *Store) restoreLocked(snap Snapshot) {
	s.lists = make(map[string]*models.List, len(snap.Lists))
	s.order = make([]string, 0, len(snap.Lists))
	s.items = make(map[string][]*models.ListItem, len(snap.Lists))
	s.profiles = make(map[string]*models.Profile, len(snap.Profiles))
	s.votes = make(map[string]map[string]models.Vote)
	s.comments = make(map[string][]models.Comment)

	for _, p := range snap.Profiles {
		p := p.Clone()
		s.profiles[p.ID] = &p
	}

	for _, l := range snap.Lists {
		l := l.Clone()
		if _, dup := s.lists[l.ID]; !dup {
			s.order = append(s.order, l.ID)
		}
		s.lists[l.ID] = &l
	}

	for _, it := range snap.Items {
		if _, ok := s.lists[it.ListID]; !ok {
			continue
		}
		it := it.Clone()
		s.items[it.ListID] = append(s.items[it.ListID], &it)
	}

	for _, v := range snap.Votes {
		if _, ok := s.lists[v.ListID]; !ok {
			continue
		}
		if s.votes[v.ListID] == nil {
			s.votes[v.ListID] = make(map[string]models.Vote)
		}
		s.votes[v.ListID][v.UserID] = v
	}

	for _, c := range snap.Comments {
		if _, ok := s.lists[c.ListID]; !ok {
			continue
		}
		s.comments[c.ListID] = append(s.comments[c.ListID], c)
	}
}
