// Package service provides the business logic for authentication, session
// tokens, documents, and the sharing access-control core, delegating
// persistence to repository interfaces.
package service

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/securedoc/server/internal/models"
)

// hashCost is the bcrypt cost factor for password hashing.
const hashCost = 10

var (
	// ErrUserExists is returned when registering a username that is taken.
	ErrUserExists = errors.New("user already exists")
	// ErrNotRegistered is returned when logging in with an unknown username.
	ErrNotRegistered = errors.New("user not registered")
	// ErrInvalidCredentials is returned when the password does not match.
	ErrInvalidCredentials = errors.New("invalid username or password")
)

// UserRepository defines the persistence operations required by the
// authentication service.
type UserRepository interface {
	// CreateUser inserts a user record, returning false when the
	// username is already taken.
	CreateUser(ctx context.Context, username string, passwordHash []byte) (bool, error)
	// UserByName fetches a user, returning sql.ErrNoRows when absent.
	UserByName(ctx context.Context, username string) (*models.User, error)
}

// AuthService implements registration and credential verification.
type AuthService struct {
	repo UserRepository
}

// NewAuthService constructs an AuthService using the provided repository.
func NewAuthService(repo UserRepository) *AuthService {
	return &AuthService{repo: repo}
}

// Register creates a new user with a bcrypt-hashed password. The username
// is canonicalized to lowercase before the write. Returns ErrUserExists
// when the username is already taken.
func (s *AuthService) Register(ctx context.Context, username, password string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), hashCost)
	if err != nil {
		return err
	}
	created, err := s.repo.CreateUser(ctx, CanonicalUsername(username), hash)
	if err != nil {
		return err
	}
	if !created {
		return ErrUserExists
	}
	return nil
}

// Login verifies the given credentials and returns the canonical username
// on success. It returns ErrNotRegistered when no such user exists and
// ErrInvalidCredentials when the password does not match the stored hash.
func (s *AuthService) Login(ctx context.Context, username, password string) (string, error) {
	user, err := s.repo.UserByName(ctx, CanonicalUsername(username))
	if errors.Is(err, sql.ErrNoRows) {
		return "", ErrNotRegistered
	}
	if err != nil {
		return "", err
	}
	if err := bcrypt.CompareHashAndPassword(user.PasswordHash, []byte(password)); err != nil {
		return "", ErrInvalidCredentials
	}
	return user.Username, nil
}

// CanonicalUsername lowercases and trims a username. Every identity the
// service stores or compares goes through this.
func CanonicalUsername(username string) string {
	return strings.ToLower(strings.TrimSpace(username))
}
