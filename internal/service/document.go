package service

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/securedoc/server/internal/models"
)

var (
	// ErrDuplicateName is returned when creating a document whose name
	// the owner already uses.
	ErrDuplicateName = errors.New("filename must be unique")
	// ErrDocumentNotFound is returned when no document matches the
	// (owner, name) pair.
	ErrDocumentNotFound = errors.New("document not found")
)

// DocumentRepository defines the persistence operations needed by the
// document service.
type DocumentRepository interface {
	// CreateDocument conditionally inserts a document, returning false
	// when the (owner, name) pair is already taken.
	CreateDocument(ctx context.Context, doc models.Document) (bool, error)
	// DocumentsByOwner retrieves all documents owned by the given user.
	DocumentsByOwner(ctx context.Context, owner string) ([]models.Document, error)
	// UpdateBody replaces a document body and reports matched rows.
	UpdateBody(ctx context.Context, owner, name, body string) (int64, error)
	// DeleteDocument removes a document and reports deleted rows.
	DeleteDocument(ctx context.Context, owner, name string) (int64, error)
	// DocumentByName fetches a single document, sql.ErrNoRows when absent.
	DocumentByName(ctx context.Context, owner, name string) (*models.Document, error)
}

// DocumentService implements owner-scoped document lifecycle operations.
// The owner argument always comes from the verified session identity,
// never from a request body.
type DocumentService struct {
	repo DocumentRepository
}

// NewDocumentService constructs a DocumentService with the provided
// repository.
func NewDocumentService(repo DocumentRepository) *DocumentService {
	return &DocumentService{repo: repo}
}

// Create makes a new document with the placeholder body. The uniqueness
// of (owner, name) is enforced by a single conditional insert, so two
// concurrent creates cannot both succeed. Returns ErrDuplicateName when
// the owner already has a document with that name.
func (s *DocumentService) Create(ctx context.Context, owner, name string) (*models.Document, error) {
	doc := models.Document{
		ID:    uuid.NewString(),
		Owner: CanonicalUsername(owner),
		Name:  name,
		Body:  models.DefaultDocumentBody,
	}
	created, err := s.repo.CreateDocument(ctx, doc)
	if err != nil {
		return nil, err
	}
	if !created {
		return nil, ErrDuplicateName
	}
	return &doc, nil
}

// Upload stores a body as a new document under a generated name. Unlike
// Create it never reports a duplicate: the generated name is unique.
func (s *DocumentService) Upload(ctx context.Context, owner, body string) (*models.Document, error) {
	id := uuid.NewString()
	doc := models.Document{
		ID:    id,
		Owner: CanonicalUsername(owner),
		Name:  "upload-" + id[:8],
		Body:  body,
	}
	created, err := s.repo.CreateDocument(ctx, doc)
	if err != nil {
		return nil, err
	}
	if !created {
		return nil, ErrDuplicateName
	}
	return &doc, nil
}

// ListForUser returns all documents owned by the given user.
func (s *DocumentService) ListForUser(ctx context.Context, owner string) ([]models.Document, error) {
	return s.repo.DocumentsByOwner(ctx, CanonicalUsername(owner))
}

// Update replaces the body of the matching document. Returns
// ErrDocumentNotFound when the owner has no document with that name.
func (s *DocumentService) Update(ctx context.Context, owner, name, body string) error {
	rows, err := s.repo.UpdateBody(ctx, CanonicalUsername(owner), name, body)
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrDocumentNotFound
	}
	return nil
}

// Delete removes the matching document, scoped to the authenticated
// owner. Returns ErrDocumentNotFound when nothing matched.
func (s *DocumentService) Delete(ctx context.Context, owner, name string) error {
	rows, err := s.repo.DeleteDocument(ctx, CanonicalUsername(owner), name)
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrDocumentNotFound
	}
	return nil
}
