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

// AccessService defines the sharing and shared-view decisions required by
// the HTTP handlers.
type AccessService interface {
	// SetShare wholesale-replaces the grantee set of (owner, name).
	SetShare(ctx context.Context, owner, name string, grantees []string) error
	// SharedDocument is the unauthenticated shared-view decision.
	SharedDocument(ctx context.Context, owner, name string) (*models.Document, error)
	// SharedDocumentFor is the authenticated, membership-checked
	// shared-view decision.
	SharedDocumentFor(ctx context.Context, owner, name, requester string) (*models.Document, error)
}

// ShareHandler handles HTTP requests for sharing documents and viewing
// documents shared by others.
type ShareHandler struct {
	AccessService AccessService
}

// sharedViewRequest names a document by its owner and name.
type sharedViewRequest struct {
	Owner string `json:"username"`
	Name  string `json:"docName"`
}

// Share handles POST /share.
// It expects a JSON body with "name" and "emails" and replaces the
// grantee set of the session user's document with the given list.
func (h *ShareHandler) Share(w http.ResponseWriter, r *http.Request) {
	owner := middleware.GetUserFromContext(r.Context())

	var req struct {
		Name     string   `json:"name"`
		Grantees []string `json:"emails"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Name == "" {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}

	if err := h.AccessService.SetShare(r.Context(), owner, req.Name, req.Grantees); err != nil {
		http.Error(w, "Server Error", http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]string{"userId": owner})
}

// All handles POST /all, the unauthenticated shared-view: any caller who
// knows owner and document name may read a document that has a share
// record. The two DENY reasons get distinct 404 texts.
func (h *ShareHandler) All(w http.ResponseWriter, r *http.Request) {
	var req sharedViewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Owner == "" || req.Name == "" {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}

	doc, err := h.AccessService.SharedDocument(r.Context(), req.Owner, req.Name)
	switch {
	case errors.Is(err, service.ErrNotShared):
		http.Error(w, "File not shared or deleted by owner", http.StatusNotFound)
		return
	case errors.Is(err, service.ErrFileDeleted):
		http.Error(w, "File deleted by user", http.StatusNotFound)
		return
	case err != nil:
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(doc)
}

// Sharing handles POST /sharing, the authenticated shared-view: the
// session user must be a member of the document's grantee set.
func (h *ShareHandler) Sharing(w http.ResponseWriter, r *http.Request) {
	requester := middleware.GetUserFromContext(r.Context())

	var req sharedViewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Owner == "" || req.Name == "" {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}

	doc, err := h.AccessService.SharedDocumentFor(r.Context(), req.Owner, req.Name, requester)
	switch {
	case errors.Is(err, service.ErrNotShared):
		http.Error(w, "File not shared or deleted by owner", http.StatusNotFound)
		return
	case errors.Is(err, service.ErrFileDeleted):
		http.Error(w, "File deleted by user", http.StatusNotFound)
		return
	case errors.Is(err, service.ErrNotSharedWithYou):
		http.Error(w, "File is not shared with you", http.StatusBadRequest)
		return
	case err != nil:
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(doc)
}
