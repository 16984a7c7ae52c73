package repositories

import (
	"database/sql"
	"fmt"

	"github.com/desertthunder/fivhter/internal/store"
)

var entityTables = []string{"comments", "votes", "list_items", "lists", "profiles"}

// SnapshotRepository writes and reads a whole [store.Snapshot].
type SnapshotRepository struct {
	db *sql.DB
}

// NewSnapshotRepository creates a new SnapshotRepository with the given database connection
func NewSnapshotRepository(db *sql.DB) *SnapshotRepository {
	return &SnapshotRepository{db: db}
}

// Save replaces every entity row with snap in one transaction.
func (r *SnapshotRepository) Save(snap store.Snapshot) error {
	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	for _, table := range entityTables {
		if _, err := tx.Exec("DELETE FROM " + table); err != nil {
			return fmt.Errorf("failed to clear %s: %w", table, err)
		}
	}

	profiles := NewProfileRepository(tx)
	for _, p := range snap.Profiles {
		if err := profiles.Create(p); err != nil {
			return err
		}
	}

	lists := NewListRepository(tx)
	for i, l := range snap.Lists {
		if err := lists.Create(l, i); err != nil {
			return err
		}
	}

	items := NewItemRepository(tx)
	for i, it := range snap.Items {
		if err := items.Create(it, i); err != nil {
			return err
		}
	}

	votes := NewVoteRepository(tx)
	for _, v := range snap.Votes {
		if err := votes.Create(v); err != nil {
			return err
		}
	}

	comments := NewCommentRepository(tx)
	for i, c := range snap.Comments {
		if err := comments.Create(c, i); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit snapshot: %w", err)
	}

	return nil
}

// Load reads every entity table. An empty database yields an empty snapshot.
func (r *SnapshotRepository) Load() (store.Snapshot, error) {
	var (
		snap store.Snapshot
		err  error
	)

	if snap.Profiles, err = NewProfileRepository(r.db).List(); err != nil {
		return store.Snapshot{}, err
	}
	if snap.Lists, err = NewListRepository(r.db).List(); err != nil {
		return store.Snapshot{}, err
	}
	if snap.Items, err = NewItemRepository(r.db).List(); err != nil {
		return store.Snapshot{}, err
	}
	if snap.Votes, err = NewVoteRepository(r.db).List(); err != nil {
		return store.Snapshot{}, err
	}
	if snap.Comments, err = NewCommentRepository(r.db).List(); err != nil {
		return store.Snapshot{}, err
	}

	return snap, nil
}

// Empty reports whether no lists or profiles have been saved yet.
func (r *SnapshotRepository) Empty() (bool, error) {
	var n int
	err := r.db.QueryRow(`SELECT (SELECT COUNT(*) FROM lists) + (SELECT COUNT(*) FROM profiles)`).Scan(&n)
	if err != nil {
		return false, fmt.Errorf("failed to count rows: %w", err)
	}
	return n == 0, nil
}
