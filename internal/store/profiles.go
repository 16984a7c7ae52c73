package store

import (
	"fmt"

	"github.com/desertthunder/fivhter/internal/models"
	"github.com/desertthunder/fivhter/internal/shared"
)

// GetProfile returns the profile for a user id.
func (s *Store) GetProfile(id string) (models.Profile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.profiles[id]
	if !ok {
		return models.Profile{}, fmt.Errorf("%w: %s", shared.ErrProfileNotFound, id)
	}
	return p.Clone(), nil
}

// EnsureProfile returns the profile for id, creating it with username when absent.
//
// An existing profile is returned as is; created reports whether a new one was stored.
func (s *Store) EnsureProfile(id, username string) (profile models.Profile, created bool, err error) {
	if id == "" {
		return models.Profile{}, false, fmt.Errorf("%w: profile id is required", shared.ErrInvalidArgument)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if p, ok := s.profiles[id]; ok {
		return p.Clone(), false, nil
	}

	p := &models.Profile{ID: id, Username: username, CreatedAt: s.now()}
	s.profiles[id] = p

	s.logger.Debug("created profile", "id", id, "username", username)

	return p.Clone(), true, nil
}

// UpdateProfile applies a field level patch and stamps updated_at.
//
// A username can be changed but not cleared.
func (s *Store) UpdateProfile(id string, patch models.ProfilePatch) (models.Profile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.profiles[id]
	if !ok {
		return models.Profile{}, fmt.Errorf("%w: %s", shared.ErrProfileNotFound, id)
	}

	if username, ok := patch.Username.Get(); ok && username != "" {
		p.Username = username
	}
	patch.AvatarURL.Apply(&p.AvatarURL)

	now := s.now()
	p.UpdatedAt = &now

	return p.Clone(), nil
}
