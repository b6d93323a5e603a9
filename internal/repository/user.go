// Package repository provides PostgreSQL persistence for users, documents,
// and share records.
package repository

import (
	"context"
	"database/sql"

	"github.com/securedoc/server/internal/models"
)

// PostgresUserRepository implements credential persistence using a
// PostgreSQL database.
type PostgresUserRepository struct {
	// DB is the database handle for executing queries.
	DB *sql.DB
}

// NewPostgresUserRepository creates a new PostgresUserRepository with the
// given database connection. db must be a valid *sql.DB connected to a
// PostgreSQL instance.
func NewPostgresUserRepository(db *sql.DB) *PostgresUserRepository {
	return &PostgresUserRepository{DB: db}
}

// CreateUser inserts a new user record. The insert is conditional on the
// username primary key, so a concurrent duplicate cannot slip through:
// it returns false with no error when the username is already taken.
func (r *PostgresUserRepository) CreateUser(ctx context.Context, username string, passwordHash []byte) (bool, error) {
	res, err := r.DB.ExecContext(
		ctx,
		`INSERT INTO users (username, password_hash) VALUES ($1, $2) ON CONFLICT DO NOTHING`,
		username, string(passwordHash),
	)
	if err != nil {
		return false, err
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return rows == 1, nil
}

// UserByName fetches the user with the given username.
// It returns sql.ErrNoRows when no such user exists.
func (r *PostgresUserRepository) UserByName(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	var hash string
	err := r.DB.QueryRowContext(
		ctx,
		`SELECT username, password_hash FROM users WHERE username = $1`,
		username,
	).Scan(&user.Username, &hash)
	if err != nil {
		return nil, err
	}
	user.PasswordHash = []byte(hash)
	return &user, nil
}
