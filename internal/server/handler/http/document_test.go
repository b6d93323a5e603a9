package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/securedoc/server/internal/middleware"
	"github.com/securedoc/server/internal/models"
	"github.com/securedoc/server/internal/service"
)

// fakeDocumentService implements DocumentService for testing.
type fakeDocumentService struct {
	createDoc *models.Document
	createErr error
	uploadDoc *models.Document
	uploadErr error
	listDocs  []models.Document
	listErr   error
	updateErr error
	deleteErr error

	gotOwner string
	gotName  string
	gotBody  string
}

func (f *fakeDocumentService) Create(ctx context.Context, owner, name string) (*models.Document, error) {
	f.gotOwner, f.gotName = owner, name
	return f.createDoc, f.createErr
}
func (f *fakeDocumentService) Upload(ctx context.Context, owner, body string) (*models.Document, error) {
	f.gotOwner, f.gotBody = owner, body
	return f.uploadDoc, f.uploadErr
}
func (f *fakeDocumentService) ListForUser(ctx context.Context, owner string) ([]models.Document, error) {
	f.gotOwner = owner
	return f.listDocs, f.listErr
}
func (f *fakeDocumentService) Update(ctx context.Context, owner, name, body string) error {
	f.gotOwner, f.gotName, f.gotBody = owner, name, body
	return f.updateErr
}
func (f *fakeDocumentService) Delete(ctx context.Context, owner, name string) error {
	f.gotOwner, f.gotName = owner, name
	return f.deleteErr
}

func doSession(t *testing.T, identity string, h http.HandlerFunc, method, target, body string) *http.Response {
	t.Helper()
	rec := httptest.NewRecorder()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, bytes.NewBufferString(body))
	}
	req.AddCookie(&http.Cookie{Name: middleware.SessionCookieName, Value: "sometoken"})
	withSession(identity, h).ServeHTTP(rec, req)
	return rec.Result()
}

func TestDocumentHandler_UserFiles(t *testing.T) {
	svc := &fakeDocumentService{listDocs: []models.Document{
		{ID: "doc-1", Owner: "alice", Name: "notes", Body: "<p>hi</p>"},
	}}
	h := &DocumentHandler{DocumentService: svc}

	res := doSession(t, "alice", h.UserFiles, "POST", "/userfiles", "")
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, res.StatusCode)
	}
	if svc.gotOwner != "alice" {
		t.Errorf("owner = %q; want session identity %q", svc.gotOwner, "alice")
	}

	var docs []models.Document
	if err := json.NewDecoder(res.Body).Decode(&docs); err != nil {
		t.Fatalf("failed to decode JSON: %v", err)
	}
	if len(docs) != 1 || docs[0].Name != "notes" {
		t.Errorf("docs = %v; want one document named notes", docs)
	}
}

func TestDocumentHandler_UserFiles_EmptyList(t *testing.T) {
	h := &DocumentHandler{DocumentService: &fakeDocumentService{}}

	res := doSession(t, "alice", h.UserFiles, "POST", "/userfiles", "")
	defer res.Body.Close()

	buf := new(bytes.Buffer)
	if _, err := buf.ReadFrom(res.Body); err != nil {
		t.Fatalf("failed to read body: %v", err)
	}
	// An owner with no documents gets [], not null.
	if got := bytes.TrimSpace(buf.Bytes()); string(got) != "[]" {
		t.Errorf("body = %q; want []", got)
	}
}

func TestDocumentHandler_Create(t *testing.T) {
	tests := []struct {
		name         string
		body         string
		service      *fakeDocumentService
		expectedCode int
	}{
		{
			name:         "invalid JSON",
			body:         `nope`,
			service:      &fakeDocumentService{},
			expectedCode: http.StatusBadRequest,
		},
		{
			name:         "empty name",
			body:         `{"name":""}`,
			service:      &fakeDocumentService{},
			expectedCode: http.StatusBadRequest,
		},
		{
			name:         "duplicate name",
			body:         `{"name":"notes"}`,
			service:      &fakeDocumentService{createErr: service.ErrDuplicateName},
			expectedCode: http.StatusUnauthorized,
		},
		{
			name:         "store error",
			body:         `{"name":"notes"}`,
			service:      &fakeDocumentService{createErr: errors.New("db down")},
			expectedCode: http.StatusInternalServerError,
		},
		{
			name: "success",
			body: `{"name":"notes"}`,
			service: &fakeDocumentService{createDoc: &models.Document{
				ID: "doc-1", Owner: "alice", Name: "notes", Body: models.DefaultDocumentBody,
			}},
			expectedCode: http.StatusOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := &DocumentHandler{DocumentService: tt.service}
			res := doSession(t, "alice", h.Create, "POST", "/create", tt.body)
			defer res.Body.Close()

			if res.StatusCode != tt.expectedCode {
				t.Fatalf("expected status %d, got %d", tt.expectedCode, res.StatusCode)
			}
			if res.StatusCode == http.StatusOK {
				var doc models.Document
				if err := json.NewDecoder(res.Body).Decode(&doc); err != nil {
					t.Fatalf("failed to decode JSON: %v", err)
				}
				if doc.Body != models.DefaultDocumentBody {
					t.Errorf("Body = %q; want the placeholder", doc.Body)
				}
			}
		})
	}
}

func TestDocumentHandler_Update(t *testing.T) {
	tests := []struct {
		name         string
		body         string
		service      *fakeDocumentService
		expectedCode int
	}{
		{
			name:         "invalid JSON",
			body:         `nope`,
			service:      &fakeDocumentService{},
			expectedCode: http.StatusBadRequest,
		},
		{
			name:         "not found",
			body:         `{"name":"ghost","content":"<p>x</p>"}`,
			service:      &fakeDocumentService{updateErr: service.ErrDocumentNotFound},
			expectedCode: http.StatusNotFound,
		},
		{
			name:         "store error",
			body:         `{"name":"notes","content":"<p>x</p>"}`,
			service:      &fakeDocumentService{updateErr: errors.New("db down")},
			expectedCode: http.StatusInternalServerError,
		},
		{
			name:         "success",
			body:         `{"name":"notes","content":"<p>new</p>"}`,
			service:      &fakeDocumentService{},
			expectedCode: http.StatusOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := &DocumentHandler{DocumentService: tt.service}
			res := doSession(t, "alice", h.Update, "POST", "/update", tt.body)
			defer res.Body.Close()

			if res.StatusCode != tt.expectedCode {
				t.Fatalf("expected status %d, got %d", tt.expectedCode, res.StatusCode)
			}
		})
	}
}

func TestDocumentHandler_Update_OwnerFromSession(t *testing.T) {
	// The owner comes from the verified session, never from the body:
	// a username smuggled into the payload must not change the target.
	svc := &fakeDocumentService{}
	h := &DocumentHandler{DocumentService: svc}

	res := doSession(t, "alice", h.Update, "POST", "/update",
		`{"name":"notes","content":"<p>x</p>","username":"mallory"}`)
	defer res.Body.Close()

	if svc.gotOwner != "alice" {
		t.Errorf("owner = %q; want session identity %q", svc.gotOwner, "alice")
	}
}

func TestDocumentHandler_Delete(t *testing.T) {
	tests := []struct {
		name         string
		body         string
		service      *fakeDocumentService
		expectedCode int
	}{
		{
			name:         "invalid JSON",
			body:         `nope`,
			service:      &fakeDocumentService{},
			expectedCode: http.StatusBadRequest,
		},
		{
			name:         "not found",
			body:         `{"name":"ghost"}`,
			service:      &fakeDocumentService{deleteErr: service.ErrDocumentNotFound},
			expectedCode: http.StatusBadRequest,
		},
		{
			name:         "success",
			body:         `{"name":"notes"}`,
			service:      &fakeDocumentService{},
			expectedCode: http.StatusOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := &DocumentHandler{DocumentService: tt.service}
			res := doSession(t, "alice", h.Delete, "POST", "/delete", tt.body)
			defer res.Body.Close()

			if res.StatusCode != tt.expectedCode {
				t.Fatalf("expected status %d, got %d", tt.expectedCode, res.StatusCode)
			}
		})
	}
}

func TestDocumentHandler_Upload(t *testing.T) {
	svc := &fakeDocumentService{uploadDoc: &models.Document{ID: "doc-9"}}
	h := &DocumentHandler{DocumentService: svc}

	res := doSession(t, "alice", h.Upload, "POST", "/content", `{"content":"<p>bulk</p>"}`)
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, res.StatusCode)
	}
	if svc.gotOwner != "alice" || svc.gotBody != "<p>bulk</p>" {
		t.Errorf("Upload called with (%q, %q); want (alice, <p>bulk</p>)", svc.gotOwner, svc.gotBody)
	}
}

func TestDocumentHandler_Upload_Error(t *testing.T) {
	h := &DocumentHandler{DocumentService: &fakeDocumentService{uploadErr: errors.New("db down")}}

	res := doSession(t, "alice", h.Upload, "POST", "/content", `{"content":"<p>bulk</p>"}`)
	defer res.Body.Close()

	if res.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected status %d, got %d", http.StatusBadRequest, res.StatusCode)
	}
}
