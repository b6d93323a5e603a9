package service

import (
	"context"
	"database/sql"
	"errors"
	"slices"

	"github.com/securedoc/server/internal/models"
)

var (
	// ErrNotShared is returned when no share record exists for the
	// (owner, name) pair.
	ErrNotShared = errors.New("file not shared or deleted by owner")
	// ErrFileDeleted is returned when a share record exists but the
	// document itself is gone.
	ErrFileDeleted = errors.New("file deleted by user")
	// ErrNotSharedWithYou is returned when the document is shared but
	// the requester is not in the grantee set.
	ErrNotSharedWithYou = errors.New("file is not shared with you")
)

// ShareRepository defines the persistence operations needed by the
// access-control core.
type ShareRepository interface {
	// UpsertShare creates or wholesale-replaces the grantee set for
	// one (owner, name) pair.
	UpsertShare(ctx context.Context, owner, name string, grantees []string) error
	// ShareFor fetches the share record, sql.ErrNoRows when absent.
	ShareFor(ctx context.Context, owner, name string) (*models.Share, error)
}

// DocumentFinder is the read access the core needs into document storage.
type DocumentFinder interface {
	// DocumentByName fetches a single document, sql.ErrNoRows when absent.
	DocumentByName(ctx context.Context, owner, name string) (*models.Document, error)
}

// AccessService is the access-control core: a pure decision layer over
// share and document reads, holding no state of its own.
//
// Two read paths expose someone else's document. The unauthenticated
// path (SharedDocument) requires only that a share record exists; the
// authenticated path (SharedDocumentFor) additionally requires grantee
// membership. Each DENY carries a distinct error so callers can tell
// "never shared" from "shared but deleted" from "shared, not with you".
type AccessService struct {
	shares ShareRepository
	docs   DocumentFinder
}

// NewAccessService constructs an AccessService over the given share and
// document stores.
func NewAccessService(shares ShareRepository, docs DocumentFinder) *AccessService {
	return &AccessService{shares: shares, docs: docs}
}

// SetShare records the grantee set for (owner, name), replacing any
// previous set wholesale. Grantee usernames are canonicalized. The final
// state depends only on the last call.
func (s *AccessService) SetShare(ctx context.Context, owner, name string, grantees []string) error {
	canonical := make([]string, len(grantees))
	for i, g := range grantees {
		canonical[i] = CanonicalUsername(g)
	}
	return s.shares.UpsertShare(ctx, CanonicalUsername(owner), name, canonical)
}

// IsSharedWith reports whether (owner, name) has a share record whose
// grantee set contains candidate. A missing share record is not an error.
func (s *AccessService) IsSharedWith(ctx context.Context, owner, name, candidate string) (bool, error) {
	share, err := s.shares.ShareFor(ctx, CanonicalUsername(owner), name)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return slices.Contains(share.Grantees, CanonicalUsername(candidate)), nil
}

// SharedDocument is the unauthenticated shared-view decision: ALLOW iff a
// share record exists for (owner, name) and the document still exists.
// No identity is checked, so any caller who knows owner and name can read
// a document that has ever been shared. The authenticated variant is
// SharedDocumentFor.
func (s *AccessService) SharedDocument(ctx context.Context, owner, name string) (*models.Document, error) {
	owner = CanonicalUsername(owner)

	if _, err := s.shares.ShareFor(ctx, owner, name); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotShared
		}
		return nil, err
	}

	doc, err := s.docs.DocumentByName(ctx, owner, name)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrFileDeleted
	}
	if err != nil {
		return nil, err
	}
	return doc, nil
}

// SharedDocumentFor is the authenticated shared-view decision: ALLOW iff
// a share record exists, the document exists, and requester is a member
// of the grantee set.
func (s *AccessService) SharedDocumentFor(ctx context.Context, owner, name, requester string) (*models.Document, error) {
	owner = CanonicalUsername(owner)

	share, err := s.shares.ShareFor(ctx, owner, name)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotShared
	}
	if err != nil {
		return nil, err
	}

	doc, err := s.docs.DocumentByName(ctx, owner, name)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrFileDeleted
	}
	if err != nil {
		return nil, err
	}

	if !slices.Contains(share.Grantees, CanonicalUsername(requester)) {
		return nil, ErrNotSharedWithYou
	}
	return doc, nil
}
