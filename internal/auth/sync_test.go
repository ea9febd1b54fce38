package auth

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"go.uber.org/zap"

	"talent-search/internal/apperr"
	"talent-search/internal/storage"
)

type stubVerifier struct {
	id  Identity
	err error
}

func (s stubVerifier) Verify(context.Context, string) (Identity, error) { return s.id, s.err }

type memUsers struct {
	byUID map[string]*storage.User
}

func (m *memUsers) UpsertUser(_ context.Context, id storage.UserIdentity) (*storage.User, error) {
	if m.byUID == nil {
		m.byUID = map[string]*storage.User{}
	}
	u, ok := m.byUID[id.ExternalUID]
	if !ok {
		u = &storage.User{ID: "u-" + id.ExternalUID, ExternalUID: id.ExternalUID, Role: "user"}
		m.byUID[id.ExternalUID] = u
	}
	u.Name, u.Email, u.Picture = id.Name, id.Email, id.Picture
	return u, nil
}

func (m *memUsers) GetUserByExternalUID(_ context.Context, uid string) (*storage.User, error) {
	u, ok := m.byUID[uid]
	if !ok {
		return nil, storage.ErrNotFound
	}
	return u, nil
}

func TestSyncUserUpsertsAndKeepsRole(t *testing.T) {
	users := &memUsers{byUID: map[string]*storage.User{
		"uid-1": {ID: "u-1", ExternalUID: "uid-1", Name: "Old", Role: "admin"},
	}}
	svc := NewService(stubVerifier{id: Identity{Subject: "uid-1", Name: "New Name", Email: "n@example.com"}}, users, zap.NewNop())

	u, err := svc.SyncUser(context.Background(), "token")
	if err != nil {
		t.Fatalf("SyncUser failed: %v", err)
	}
	if u.Name != "New Name" || u.Email != "n@example.com" {
		t.Errorf("Profile not refreshed: %+v", u)
	}
	if u.Role != "admin" {
		t.Errorf("Role changed to %q", u.Role)
	}

	u2, err := svc.SyncUser(context.Background(), "token")
	if err != nil || u2.ID != u.ID {
		t.Errorf("Second sync should return the same user: %+v, %v", u2, err)
	}
}

func TestSyncUserInvalidToken(t *testing.T) {
	svc := NewService(stubVerifier{err: apperr.Unauthorized("Invalid identity token", errors.New("expired"))}, &memUsers{}, zap.NewNop())
	if _, err := svc.SyncUser(context.Background(), "bad"); !apperr.Is(err, apperr.ErrTypeUnauthorized) {
		t.Errorf("Expected unauthorized, got %v", err)
	}
}

func TestRequireAdmin(t *testing.T) {
	users := &memUsers{byUID: map[string]*storage.User{
		"admin-uid": {ID: "1", ExternalUID: "admin-uid", Role: "admin"},
		"user-uid":  {ID: "2", ExternalUID: "user-uid", Role: "user"},
	}}

	writeErr := func(w http.ResponseWriter, r *http.Request, err error) {
		status := http.StatusInternalServerError
		if de, ok := apperr.As(err); ok {
			switch de.Type {
			case apperr.ErrTypeUnauthorized:
				status = http.StatusUnauthorized
			case apperr.ErrTypeForbidden:
				status = http.StatusForbidden
			}
		}
		w.WriteHeader(status)
	}

	ok := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, found := UserFromContext(r.Context()); !found {
			t.Error("Admin user missing from context")
		}
		w.WriteHeader(http.StatusNoContent)
	})

	tests := []struct {
		name    string
		subject string
		header  string
		want    int
	}{
		{name: "admin", subject: "admin-uid", header: "Bearer t", want: http.StatusNoContent},
		{name: "plain user", subject: "user-uid", header: "Bearer t", want: http.StatusForbidden},
		{name: "unknown user", subject: "ghost", header: "Bearer t", want: http.StatusForbidden},
		{name: "no header", subject: "admin-uid", header: "", want: http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewService(stubVerifier{id: Identity{Subject: tt.subject}}, users, zap.NewNop())
			h := svc.RequireAdmin(true, writeErr)(ok)

			req := httptest.NewRequest(http.MethodDelete, "/api/candidates/1", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			if rec.Code != tt.want {
				t.Errorf("status = %d, want %d", rec.Code, tt.want)
			}
		})
	}
}

func TestRequireAdminDisabled(t *testing.T) {
	svc := NewService(stubVerifier{err: errors.New("never called")}, &memUsers{}, zap.NewNop())
	h := svc.RequireAdmin(false, nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/interests", nil))
	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", rec.Code)
	}
}
