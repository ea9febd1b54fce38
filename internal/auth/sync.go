package auth

import (
	"context"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"talent-search/internal/apperr"
	"talent-search/internal/storage"
)

type UserStore interface {
	UpsertUser(ctx context.Context, id storage.UserIdentity) (*storage.User, error)
	GetUserByExternalUID(ctx context.Context, uid string) (*storage.User, error)
}

type Service struct {
	verifier TokenVerifier
	users    UserStore
	logger   *zap.Logger
}

func NewService(verifier TokenVerifier, users UserStore, logger *zap.Logger) *Service {
	return &Service{verifier: verifier, users: users, logger: logger}
}

// SyncUser verifies token and upserts the user it names. The role is left as
// stored.
func (s *Service) SyncUser(ctx context.Context, token string) (*storage.User, error) {
	id, err := s.verifier.Verify(ctx, token)
	if err != nil {
		return nil, err
	}

	name := id.Name
	if name == "" {
		name = id.Email
	}
	user, err := s.users.UpsertUser(ctx, storage.UserIdentity{
		ExternalUID: id.Subject,
		Name:        name,
		Email:       id.Email,
		Picture:     id.Picture,
	})
	if err != nil {
		return nil, apperr.Internal("Failed to sync user", err)
	}

	s.logger.Info("User synced", zap.String("user_id", user.ID), zap.String("role", user.Role))
	return user, nil
}

type ctxKey struct{}

func WithUser(ctx context.Context, u *storage.User) context.Context {
	return context.WithValue(ctx, ctxKey{}, u)
}

func UserFromContext(ctx context.Context) (*storage.User, bool) {
	u, ok := ctx.Value(ctxKey{}).(*storage.User)
	return u, ok
}

// ErrorWriter renders an error response; the API package supplies it.
type ErrorWriter func(w http.ResponseWriter, r *http.Request, err error)

// RequireAdmin admits only requests bearing a token whose user has the admin
// role. When disabled it passes every request through.
func (s *Service) RequireAdmin(enabled bool, writeError ErrorWriter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if !enabled {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := bearerToken(r)
			if !ok {
				writeError(w, r, apperr.Unauthorized("Authentication required", nil))
				return
			}

			id, err := s.verifier.Verify(r.Context(), token)
			if err != nil {
				writeError(w, r, err)
				return
			}

			user, err := s.users.GetUserByExternalUID(r.Context(), id.Subject)
			if err == storage.ErrNotFound {
				writeError(w, r, apperr.Forbidden("Admin access required", nil))
				return
			}
			if err != nil {
				writeError(w, r, apperr.Internal("Failed to load user", err))
				return
			}
			if !user.IsAdmin() {
				writeError(w, r, apperr.Forbidden("Admin access required", nil))
				return
			}

			next.ServeHTTP(w, r.WithContext(WithUser(r.Context(), user)))
		})
	}
}

func bearerToken(r *http.Request) (string, bool) {
	h := r.Header.Get("Authorization")
	token, ok := strings.CutPrefix(h, "Bearer ")
	token = strings.TrimSpace(token)
	return token, ok && token != ""
}
