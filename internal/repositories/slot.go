package repositories

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/desertthunder/fivhter/internal/session"
)

// SlotRepository is a [session.Slot] over the kv_slots table.
type SlotRepository struct {
	db    *sql.DB
	clock func() time.Time
}

var _ session.Slot = (*SlotRepository)(nil)

// NewSlotRepository creates a new SlotRepository with the given database connection
func NewSlotRepository(db *sql.DB) *SlotRepository {
	return &SlotRepository{db: db, clock: time.Now}
}

func (r *SlotRepository) Get(key string) (string, bool, error) {
	var value string
	err := r.db.QueryRow(`SELECT value FROM kv_slots WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to read slot %s: %w", key, err)
	}
	return value, true, nil
}

func (r *SlotRepository) Set(key, value string) error {
	query := `
		INSERT INTO kv_slots (key, value, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
	`

	if _, err := r.db.Exec(query, key, value, r.clock().UTC()); err != nil {
		return fmt.Errorf("failed to write slot %s: %w", key, err)
	}
	return nil
}

func (r *SlotRepository) Remove(key string) error {
	if _, err := r.db.Exec(`DELETE FROM kv_slots WHERE key = ?`, key); err != nil {
		return fmt.Errorf("failed to remove slot %s: %w", key, err)
	}
	return nil
}
