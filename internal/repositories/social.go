package repositories

import (
	"fmt"

	"github.com/desertthunder/fivhter/internal/models"
)

// VoteRepository persists votes. The (list_id, user_id) pair is unique.
type VoteRepository struct {
	db Querier
}

// NewVoteRepository creates a new VoteRepository with the given connection or transaction
func NewVoteRepository(db Querier) *VoteRepository {
	return &VoteRepository{db: db}
}

func (r *VoteRepository) Create(v models.Vote) error {
	_, err := r.db.Exec(`INSERT INTO votes (id, list_id, user_id, created_at) VALUES (?, ?, ?, ?)`,
		v.ID, v.ListID, v.UserID, v.CreatedAt.UTC())
	if err != nil {
		return fmt.Errorf("failed to insert vote: %w", err)
	}
	return nil
}

// List returns every vote in the order it was written.
func (r *VoteRepository) List() ([]models.Vote, error) {
	rows, err := r.db.Query(`SELECT id, list_id, user_id, created_at FROM votes ORDER BY rowid ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to query votes: %w", err)
	}
	defer rows.Close()

	var votes []models.Vote
	for rows.Next() {
		var v models.Vote
		if err := rows.Scan(&v.ID, &v.ListID, &v.UserID, &v.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan vote: %w", err)
		}
		v.CreatedAt = v.CreatedAt.UTC()
		votes = append(votes, v)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return votes, nil
}

// CommentRepository persists comments.
type CommentRepository struct {
	db Querier
}

// NewCommentRepository creates a new CommentRepository with the given connection or transaction
func NewCommentRepository(db Querier) *CommentRepository {
	return &CommentRepository{db: db}
}

// Create inserts a comment at position, its index in insertion order.
func (r *CommentRepository) Create(c models.Comment, position int) error {
	query := `
		INSERT INTO comments (id, list_id, position, user_id, username, content, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`

	_, err := r.db.Exec(query, c.ID, c.ListID, position, c.UserID, c.Username, c.Content, c.CreatedAt.UTC())
	if err != nil {
		return fmt.Errorf("failed to insert comment: %w", err)
	}
	return nil
}

// ListByList returns the comments of one list, oldest first.
func (r *CommentRepository) ListByList(listID string) ([]models.Comment, error) {
	return r.query(`SELECT id, list_id, user_id, username, content, created_at FROM comments WHERE list_id = ? ORDER BY position ASC`, listID)
}

// List returns every comment in insertion order.
func (r *CommentRepository) List() ([]models.Comment, error) {
	return r.query(`SELECT id, list_id, user_id, username, content, created_at FROM comments ORDER BY position ASC`)
}

func (r *CommentRepository) query(query string, args ...any) ([]models.Comment, error) {
	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query comments: %w", err)
	}
	defer rows.Close()

	var comments []models.Comment
	for rows.Next() {
		var c models.Comment
		if err := rows.Scan(&c.ID, &c.ListID, &c.UserID, &c.Username, &c.Content, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan comment: %w", err)
		}
		c.CreatedAt = c.CreatedAt.UTC()
		comments = append(comments, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return comments, nil
}
