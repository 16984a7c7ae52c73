package repositories

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/desertthunder/fivhter/internal/models"
	"github.com/desertthunder/fivhter/internal/shared"
)

const listColumns = `id, title, description, user_id, category, visibility, vote_count, comment_count, created_at, updated_at`

// ListRepository persists list headers. Items, votes and comments live in their own repositories.
type ListRepository struct {
	db Querier
}

// NewListRepository creates a new ListRepository with the given connection or transaction
func NewListRepository(db Querier) *ListRepository {
	return &ListRepository{db: db}
}

// Create inserts a list at position, its index in insertion order.
func (r *ListRepository) Create(l models.List, position int) error {
	query := `
		INSERT INTO lists (id, position, title, description, user_id, category, visibility, vote_count, comment_count, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := r.db.Exec(query,
		l.ID,
		position,
		l.Title,
		nullString(l.Description),
		l.UserID,
		nullString(l.Category),
		string(l.Visibility),
		l.VoteCount,
		l.CommentCount,
		l.CreatedAt.UTC(),
		nullTime(l.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("failed to insert list: %w", err)
	}
	return nil
}

// Get retrieves a list by ID
func (r *ListRepository) Get(id string) (models.List, error) {
	l, err := r.scan(r.db.QueryRow(`SELECT `+listColumns+` FROM lists WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return models.List{}, fmt.Errorf("%w: %s", shared.ErrListNotFound, id)
	}
	return l, err
}

// List returns every list in insertion order.
func (r *ListRepository) List() ([]models.List, error) {
	rows, err := r.db.Query(`SELECT ` + listColumns + ` FROM lists ORDER BY position ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to query lists: %w", err)
	}
	defer rows.Close()

	var lists []models.List
	for rows.Next() {
		l, err := r.scan(rows)
		if err != nil {
			return nil, err
		}
		lists = append(lists, l)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return lists, nil
}

// Delete removes a list header by ID
func (r *ListRepository) Delete(id string) error {
	result, err := r.db.Exec(`DELETE FROM lists WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete list: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("%w: %s", shared.ErrListNotFound, id)
	}

	return nil
}

func (r *ListRepository) scan(row scanner) (models.List, error) {
	var (
		l           models.List
		description sql.NullString
		category    sql.NullString
		visibility  string
		updatedAt   sql.NullTime
	)

	err := row.Scan(&l.ID, &l.Title, &description, &l.UserID, &category, &visibility,
		&l.VoteCount, &l.CommentCount, &l.CreatedAt, &updatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.List{}, err
		}
		return models.List{}, fmt.Errorf("failed to scan list: %w", err)
	}

	l.Description = stringPtr(description)
	l.Category = stringPtr(category)
	l.Visibility = models.Visibility(visibility)
	l.CreatedAt = l.CreatedAt.UTC()
	l.UpdatedAt = timePtr(updatedAt)
	return l, nil
}
