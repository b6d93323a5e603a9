// Package models defines the core data structures for users, documents,
// and share records.
package models

import "time"

// DefaultDocumentBody is the placeholder body given to newly created documents.
const DefaultDocumentBody = "<p>This is your document</p>"

// User represents an application user with credentials.
type User struct {
	// Username is the canonical (lowercased) login name.
	Username string
	// PasswordHash is the bcrypt hash of the user's password.
	PasswordHash []byte
}

// Document represents a named text document owned by a single user.
// The (Owner, Name) pair is unique.
type Document struct {
	// ID is the unique identifier for the document.
	ID string `json:"id"`
	// Owner is the username of the owning user.
	Owner string `json:"owner"`
	// Name is the document name, unique per owner.
	Name string `json:"name"`
	// Body is the document content.
	Body string `json:"content"`
	// UpdatedAt is the time of the last body replacement.
	UpdatedAt time.Time `json:"updated_at"`
}

// Share holds the sharing state of exactly one (Owner, Name) document:
// the set of usernames granted view access. Re-sharing replaces the set
// wholesale.
type Share struct {
	// Owner is the username of the document owner.
	Owner string `json:"owner"`
	// Name is the shared document's name.
	Name string `json:"name"`
	// Grantees are the usernames allowed to view the document.
	Grantees []string `json:"grantees"`
}
