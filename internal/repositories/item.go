package repositories

import (
	"database/sql"
	"fmt"

	"github.com/desertthunder/fivhter/internal/models"
)

const itemColumns = `id, list_id, title, description, rank, created_at`

// ItemRepository persists ranked list items.
type ItemRepository struct {
	db Querier
}

// NewItemRepository creates a new ItemRepository with the given connection or transaction
func NewItemRepository(db Querier) *ItemRepository {
	return &ItemRepository{db: db}
}

// Create inserts an item at position, its index in insertion order.
func (r *ItemRepository) Create(it models.ListItem, position int) error {
	query := `
		INSERT INTO list_items (id, list_id, position, title, description, rank, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`

	_, err := r.db.Exec(query, it.ID, it.ListID, position, it.Title, nullString(it.Description), it.Rank, it.CreatedAt.UTC())
	if err != nil {
		return fmt.Errorf("failed to insert list item: %w", err)
	}
	return nil
}

// ListByList returns the items of one list ordered by rank.
func (r *ItemRepository) ListByList(listID string) ([]models.ListItem, error) {
	return r.query(`SELECT `+itemColumns+` FROM list_items WHERE list_id = ? ORDER BY rank ASC, position ASC`, listID)
}

// List returns every item in insertion order.
func (r *ItemRepository) List() ([]models.ListItem, error) {
	return r.query(`SELECT ` + itemColumns + ` FROM list_items ORDER BY position ASC`)
}

func (r *ItemRepository) query(query string, args ...any) ([]models.ListItem, error) {
	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query list items: %w", err)
	}
	defer rows.Close()

	var items []models.ListItem
	for rows.Next() {
		var (
			it          models.ListItem
			description sql.NullString
		)
		if err := rows.Scan(&it.ID, &it.ListID, &it.Title, &description, &it.Rank, &it.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan list item: %w", err)
		}
		it.Description = stringPtr(description)
		it.CreatedAt = it.CreatedAt.UTC()
		items = append(items, it)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return items, nil
}
