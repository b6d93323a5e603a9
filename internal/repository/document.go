package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/securedoc/server/internal/models"
)

// PostgresDocumentRepository implements document persistence against a
// PostgreSQL database.
type PostgresDocumentRepository struct {
	// DB is the database handle for executing queries.
	DB *sql.DB
}

// NewPostgresDocumentRepository creates a new PostgresDocumentRepository
// using the provided *sql.DB.
func NewPostgresDocumentRepository(db *sql.DB) *PostgresDocumentRepository {
	return &PostgresDocumentRepository{DB: db}
}

// CreateDocument inserts a new document. The insert is conditional on the
// (owner, name) unique constraint, closing the race between a uniqueness
// check and a separate write: it returns false with no error when the
// owner already has a document with that name.
func (r *PostgresDocumentRepository) CreateDocument(ctx context.Context, doc models.Document) (bool, error) {
	res, err := r.DB.ExecContext(ctx, `
		INSERT INTO documents (id, owner, name, body, updated_at)
		VALUES ($1, $2, $3, $4, NOW())
		ON CONFLICT (owner, name) DO NOTHING
	`, doc.ID, doc.Owner, doc.Name, doc.Body)
	if err != nil {
		return false, fmt.Errorf("create document: %w", err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return rows == 1, nil
}

// DocumentsByOwner fetches all documents owned by the given user.
func (r *PostgresDocumentRepository) DocumentsByOwner(ctx context.Context, owner string) ([]models.Document, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT id, owner, name, body, updated_at FROM documents WHERE owner = $1 ORDER BY updated_at DESC
	`, owner)
	if err != nil {
		return nil, fmt.Errorf("documents by owner: %w", err)
	}
	defer rows.Close()

	var docs []models.Document
	for rows.Next() {
		var doc models.Document
		if err := rows.Scan(&doc.ID, &doc.Owner, &doc.Name, &doc.Body, &doc.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan: %w", err)
		}
		docs = append(docs, doc)
	}
	return docs, rows.Err()
}

// UpdateBody replaces the body of the matching document and returns the
// number of rows that matched.
func (r *PostgresDocumentRepository) UpdateBody(ctx context.Context, owner, name, body string) (int64, error) {
	res, err := r.DB.ExecContext(ctx, `
		UPDATE documents SET body = $1, updated_at = NOW() WHERE owner = $2 AND name = $3
	`, body, owner, name)
	if err != nil {
		return 0, fmt.Errorf("update body: %w", err)
	}
	return res.RowsAffected()
}

// DeleteDocument removes the matching document and returns the number of
// rows deleted.
func (r *PostgresDocumentRepository) DeleteDocument(ctx context.Context, owner, name string) (int64, error) {
	res, err := r.DB.ExecContext(ctx, `
		DELETE FROM documents WHERE owner = $1 AND name = $2
	`, owner, name)
	if err != nil {
		return 0, fmt.Errorf("delete document: %w", err)
	}
	return res.RowsAffected()
}

// DocumentByName fetches a single document by owner and name.
// It returns sql.ErrNoRows when no such document exists.
func (r *PostgresDocumentRepository) DocumentByName(ctx context.Context, owner, name string) (*models.Document, error) {
	var doc models.Document
	err := r.DB.QueryRowContext(ctx, `
		SELECT id, owner, name, body, updated_at FROM documents WHERE owner = $1 AND name = $2
	`, owner, name).Scan(&doc.ID, &doc.Owner, &doc.Name, &doc.Body, &doc.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &doc, nil
}
