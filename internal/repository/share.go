package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/lib/pq"
	"github.com/securedoc/server/internal/models"
)

// PostgresShareRepository implements share-record persistence against a
// PostgreSQL database. At most one row exists per (owner, name) pair.
type PostgresShareRepository struct {
	// DB is the database handle for executing queries.
	DB *sql.DB
}

// NewPostgresShareRepository creates a new PostgresShareRepository using
// the provided *sql.DB.
func NewPostgresShareRepository(db *sql.DB) *PostgresShareRepository {
	return &PostgresShareRepository{DB: db}
}

// UpsertShare creates the share record for (owner, name) or replaces its
// grantee set wholesale if one already exists.
func (r *PostgresShareRepository) UpsertShare(ctx context.Context, owner, name string, grantees []string) error {
	_, err := r.DB.ExecContext(ctx, `
		INSERT INTO shares (owner, name, grantees)
		VALUES ($1, $2, $3)
		ON CONFLICT (owner, name) DO UPDATE SET grantees = EXCLUDED.grantees
	`, owner, name, pq.Array(grantees))
	if err != nil {
		return fmt.Errorf("upsert share: %w", err)
	}
	return nil
}

// ShareFor fetches the share record for (owner, name).
// It returns sql.ErrNoRows when the document has never been shared.
func (r *PostgresShareRepository) ShareFor(ctx context.Context, owner, name string) (*models.Share, error) {
	share := models.Share{Owner: owner, Name: name}
	err := r.DB.QueryRowContext(ctx, `
		SELECT grantees FROM shares WHERE owner = $1 AND name = $2
	`, owner, name).Scan(pq.Array(&share.Grantees))
	if err != nil {
		return nil, err
	}
	return &share, nil
}
