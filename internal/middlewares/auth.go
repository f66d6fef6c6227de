package middlewares

import (
	"context"
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/sbilibin2017/taskboard/internal/jwt"
	"github.com/sbilibin2017/taskboard/internal/logger"
	"github.com/sbilibin2017/taskboard/internal/models"
	"github.com/sbilibin2017/taskboard/internal/services"
)

//go:generate mockgen -source=auth.go -destination=mock_auth.go -package=middlewares

// Tokener defines the minimal interface needed by the middleware
type Tokener interface {
	GetTokenFromRequest(ctx context.Context, r *http.Request) (string, error)
	GetClaims(ctx context.Context, tokenString string) (*jwt.Claims, error)
}

// SessionResolver loads the user owning a live session.
type SessionResolver interface {
	ResolveSession(ctx context.Context, userID uuid.UUID, sessionToken string) (*models.User, error)
}

// AuthMiddleware validates the bearer JWT, checks that its session is
// still the user's current one and stores the user in the context.
func AuthMiddleware(tokener Tokener, sessions SessionResolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			tokenString, err := tokener.GetTokenFromRequest(ctx, r)
			if err != nil {
				logger.Log.Infow("authorization failed", "err", err)
				w.WriteHeader(http.StatusUnauthorized)
				return
			}

			claims, err := tokener.GetClaims(ctx, tokenString)
			if err != nil {
				logger.Log.Infow("authorization failed", "err", err)
				w.WriteHeader(http.StatusUnauthorized)
				return
			}

			user, err := sessions.ResolveSession(ctx, claims.UserID, claims.SessionToken)
			if errors.Is(err, services.ErrInvalidSession) {
				logger.Log.Infow("authorization failed", "user_id", claims.UserID, "err", err)
				w.WriteHeader(http.StatusUnauthorized)
				return
			}
			if err != nil {
				logger.Log.Errorw("failed to resolve session", "user_id", claims.UserID, "err", err)
				w.WriteHeader(http.StatusInternalServerError)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithUser(ctx, user)))
		})
	}
}

// AdminMiddleware lets only admins through. It must run after AuthMiddleware.
func AdminMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user := GetUserFromContext(r.Context())
		if user == nil {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		if !user.IsAdmin {
			logger.Log.Infow("admin route denied", "user_id", user.ID, "path", r.URL.Path)
			w.WriteHeader(http.StatusForbidden)
			return
		}
		next.ServeHTTP(w, r)
	})
}

type userContextKey struct{}

var userKey = userContextKey{}

// WithUser stores the authenticated user in the context.
func WithUser(ctx context.Context, user *models.User) context.Context {
	return context.WithValue(ctx, userKey, user)
}

// GetUserFromContext returns the authenticated user, or nil.
func GetUserFromContext(ctx context.Context) *models.User {
	user, _ := ctx.Value(userKey).(*models.User)
	return user
}
