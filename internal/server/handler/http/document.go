package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/securedoc/server/internal/middleware"
	"github.com/securedoc/server/internal/models"
	"github.com/securedoc/server/internal/service"
)

// DocumentService defines the document operations required by the HTTP
// handlers. The owner argument is always the session identity.
type DocumentService interface {
	// Create makes a new named document with the placeholder body.
	Create(ctx context.Context, owner, name string) (*models.Document, error)
	// Upload stores a body as a new document under a generated name.
	Upload(ctx context.Context, owner, body string) (*models.Document, error)
	// ListForUser returns all documents owned by the given user.
	ListForUser(ctx context.Context, owner string) ([]models.Document, error)
	// Update replaces the body of the matching document.
	Update(ctx context.Context, owner, name, body string) error
	// Delete removes the matching document.
	Delete(ctx context.Context, owner, name string) error
}

// DocumentHandler handles HTTP requests for the document lifecycle. All
// routes run behind the auth middleware; the owner is derived from the
// verified session, never from the request body.
type DocumentHandler struct {
	DocumentService DocumentService
}

// UserFiles handles POST /userfiles, listing the session user's documents.
func (h *DocumentHandler) UserFiles(w http.ResponseWriter, r *http.Request) {
	owner := middleware.GetUserFromContext(r.Context())

	docs, err := h.DocumentService.ListForUser(r.Context(), owner)
	if err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	if docs == nil {
		docs = []models.Document{}
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(docs)
}

// Create handles POST /create.
// It expects a JSON body with a non-empty "name" and creates a document
// with the placeholder body for the session user.
func (h *DocumentHandler) Create(w http.ResponseWriter, r *http.Request) {
	owner := middleware.GetUserFromContext(r.Context())

	var req struct {
		Name string `json:"name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Name == "" {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}

	doc, err := h.DocumentService.Create(r.Context(), owner, req.Name)
	if errors.Is(err, service.ErrDuplicateName) {
		http.Error(w, "Filename must be unique", http.StatusUnauthorized)
		return
	}
	if err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(doc)
}

// Update handles POST /update, replacing the body of one of the session
// user's documents.
func (h *DocumentHandler) Update(w http.ResponseWriter, r *http.Request) {
	owner := middleware.GetUserFromContext(r.Context())

	var req struct {
		Name string `json:"name"`
		Body string `json:"content"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Name == "" {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}

	err := h.DocumentService.Update(r.Context(), owner, req.Name, req.Body)
	if errors.Is(err, service.ErrDocumentNotFound) {
		http.Error(w, "document not found", http.StatusNotFound)
		return
	}
	if err != nil {
		http.Error(w, "Update Failed", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("Updated"))
}

// Delete handles POST /delete, removing one of the session user's
// documents. Deleting is owner-scoped: another user's document with the
// same name is untouched.
func (h *DocumentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	owner := middleware.GetUserFromContext(r.Context())

	var req struct {
		Name string `json:"name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Name == "" {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}

	if err := h.DocumentService.Delete(r.Context(), owner, req.Name); err != nil {
		http.Error(w, "failed to delete", http.StatusBadRequest)
		return
	}

	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("Deleted"))
}

// Upload handles POST /content, storing raw content as a new document
// under a generated name for the session user.
func (h *DocumentHandler) Upload(w http.ResponseWriter, r *http.Request) {
	owner := middleware.GetUserFromContext(r.Context())

	var req struct {
		Body string `json:"content"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}

	if _, err := h.DocumentService.Upload(r.Context(), owner, req.Body); err != nil {
		http.Error(w, "Error", http.StatusBadRequest)
		return
	}

	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("Uploaded"))
}
