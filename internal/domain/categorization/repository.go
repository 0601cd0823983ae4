package categorization

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Category is a persisted category record. OwnerID nil means a global,
// predefined category visible to every user.
type Category struct {
	ID      uuid.UUID
	Name    string
	OwnerID *uuid.UUID
}

// ErrCategoryNotFound is returned when no category matches a name lookup.
var ErrCategoryNotFound = errors.New("category not found")

// Repository reads category records. The import pipeline only ever reads
// categories; it never creates them.
type Repository struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

// ListForOwner returns the categories visible to an owner: the global set
// plus the owner's own, with owner categories shadowing global ones of the
// same name.
func (r *Repository) ListForOwner(ctx context.Context, ownerID uuid.UUID) ([]Category, error) {
	query := `
		SELECT DISTINCT ON (lower(name)) id, name, owner_id
		FROM categories
		WHERE owner_id IS NULL OR owner_id = $1
		ORDER BY lower(name), owner_id NULLS LAST
	`
	rows, err := r.db.Query(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()

	var out []Category
	for rows.Next() {
		var c Category
		if err := rows.Scan(&c.ID, &c.Name, &c.OwnerID); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate categories: %w", err)
	}
	return out, nil
}

// FindByName looks up a category by exact name, preferring the owner's own
// category over a global one.
func (r *Repository) FindByName(ctx context.Context, name string, ownerID uuid.UUID) (*Category, error) {
	query := `
		SELECT id, name, owner_id
		FROM categories
		WHERE lower(name) = lower($1) AND (owner_id IS NULL OR owner_id = $2)
		ORDER BY owner_id NULLS LAST
		LIMIT 1
	`
	var c Category
	err := r.db.QueryRow(ctx, query, name, ownerID).Scan(&c.ID, &c.Name, &c.OwnerID)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrCategoryNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find category %q: %w", name, err)
	}
	return &c, nil
}
