// package session persists the signed in user between runs.
package session

import (
	"encoding/json"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/fivhter/internal/models"
	"github.com/desertthunder/fivhter/internal/shared"
)

// Key is the slot the serialized session lives under.
const Key = "fivhter_user"

// Store reads and writes the current [models.Session] through a [Slot].
type Store struct {
	slot   Slot
	logger *log.Logger
}

// New returns a Store over slot. A nil logger discards output.
func New(slot Slot, logger *log.Logger) *Store {
	if logger == nil {
		logger = shared.NopLogger()
	}
	return &Store{slot: slot, logger: logger}
}

// Save persists session, replacing whatever was stored.
func (s *Store) Save(session models.Session) error {
	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("failed to encode session: %w", err)
	}

	if err := s.slot.Set(Key, string(data)); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}

	if session.User != nil {
		s.logger.Debug("saved session", "user", session.User.ID)
	}
	return nil
}

// Load returns the stored session, or nil when there is none.
func (s *Store) Load() (*models.Session, error) {
	raw, ok, err := s.slot.Get(Key)
	if err != nil {
		return nil, fmt.Errorf("failed to load session: %w", err)
	}
	if !ok || raw == "" {
		return nil, nil
	}

	var session models.Session
	if err := json.Unmarshal([]byte(raw), &session); err != nil {
		return nil, fmt.Errorf("failed to decode session: %w", err)
	}
	if !session.SignedIn() {
		return nil, nil
	}
	return &session, nil
}

// Clear removes the stored session. Clearing an empty slot succeeds.
func (s *Store) Clear() error {
	if err := s.slot.Remove(Key); err != nil {
		return fmt.Errorf("failed to clear session: %w", err)
	}
	s.logger.Debug("cleared session")
	return nil
}
