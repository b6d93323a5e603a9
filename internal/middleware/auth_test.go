package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

// fakeVerifier implements TokenVerifier for testing.
type fakeVerifier struct {
	identity string
	err      error
}

func (f *fakeVerifier) Verify(token string) (string, error) {
	return f.identity, f.err
}

func TestAuth_MissingCookie(t *testing.T) {
	handler := Auth(&fakeVerifier{})(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("handler should not be reached without a cookie")
	}))

	rec := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/userfiles", nil)
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d; want %d", rec.Code, http.StatusUnauthorized)
	}
}

func TestAuth_InvalidToken(t *testing.T) {
	verifier := &fakeVerifier{err: errors.New("bad token")}
	handler := Auth(verifier)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("handler should not be reached with an invalid token")
	}))

	rec := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/userfiles", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: "garbage"})
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d; want %d", rec.Code, http.StatusUnauthorized)
	}
}

func TestAuth_ValidToken(t *testing.T) {
	verifier := &fakeVerifier{identity: "alice"}
	var gotIdentity string
	handler := Auth(verifier)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotIdentity = GetUserFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	rec := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/userfiles", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: "sometoken"})
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d; want %d", rec.Code, http.StatusOK)
	}
	if gotIdentity != "alice" {
		t.Errorf("identity in context = %q; want %q", gotIdentity, "alice")
	}
}

func TestGetUserFromContext_Empty(t *testing.T) {
	req := httptest.NewRequest("GET", "/", nil)
	if got := GetUserFromContext(req.Context()); got != "" {
		t.Errorf("identity = %q; want empty string", got)
	}
}
