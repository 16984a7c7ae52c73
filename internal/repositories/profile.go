package repositories

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/desertthunder/fivhter/internal/models"
	"github.com/desertthunder/fivhter/internal/shared"
)

// ProfileRepository persists [models.Profile] rows.
type ProfileRepository struct {
	db Querier
}

// NewProfileRepository creates a new ProfileRepository with the given connection or transaction
func NewProfileRepository(db Querier) *ProfileRepository {
	return &ProfileRepository{db: db}
}

// Create inserts a profile as is; the id must be set.
func (r *ProfileRepository) Create(p models.Profile) error {
	query := `
		INSERT INTO profiles (id, username, avatar_url, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?)
	`

	_, err := r.db.Exec(query, p.ID, p.Username, nullString(p.AvatarURL), p.CreatedAt.UTC(), nullTime(p.UpdatedAt))
	if err != nil {
		return fmt.Errorf("failed to insert profile: %w", err)
	}
	return nil
}

// Get retrieves a profile by ID
func (r *ProfileRepository) Get(id string) (models.Profile, error) {
	query := `
		SELECT id, username, avatar_url, created_at, updated_at
		FROM profiles
		WHERE id = ?
	`

	p, err := r.scan(r.db.QueryRow(query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return models.Profile{}, fmt.Errorf("%w: %s", shared.ErrProfileNotFound, id)
	}
	return p, err
}

// List returns every profile ordered by id.
func (r *ProfileRepository) List() ([]models.Profile, error) {
	rows, err := r.db.Query(`
		SELECT id, username, avatar_url, created_at, updated_at
		FROM profiles
		ORDER BY id ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query profiles: %w", err)
	}
	defer rows.Close()

	var profiles []models.Profile
	for rows.Next() {
		p, err := r.scan(rows)
		if err != nil {
			return nil, err
		}
		profiles = append(profiles, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return profiles, nil
}

func (r *ProfileRepository) scan(row scanner) (models.Profile, error) {
	var (
		p         models.Profile
		avatarURL sql.NullString
		updatedAt sql.NullTime
	)

	if err := row.Scan(&p.ID, &p.Username, &avatarURL, &p.CreatedAt, &updatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Profile{}, err
		}
		return models.Profile{}, fmt.Errorf("failed to scan profile: %w", err)
	}

	p.AvatarURL = stringPtr(avatarURL)
	p.CreatedAt = p.CreatedAt.UTC()
	p.UpdatedAt = timePtr(updatedAt)
	return p, nil
}
