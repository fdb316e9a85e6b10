package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/mvera/storedash/internal/access"
	"github.com/mvera/storedash/internal/auth"
)

type contextKey string

const (
	UserIDKey   contextKey = "user_id"
	IdentityKey contextKey = "identity"
	GrantKey    contextKey = "grant"
)

// Auth verifies the bearer access token and stores the subject user id
// in the request context. Tokens carry no store or permission claims;
// those are resolved fresh by the Identity middleware.
func Auth(jwtService *auth.JWTService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var token string

			authHeader := r.Header.Get("Authorization")
			if strings.HasPrefix(authHeader, "Bearer ") {
				token = strings.TrimPrefix(authHeader, "Bearer ")
			}

			if token == "" {
				http.Error(w, "Unauthorized", http.StatusUnauthorized)
				return
			}

			claims, err := jwtService.ValidateAccessToken(token)
			if err != nil {
				http.Error(w, "Unauthorized", http.StatusUnauthorized)
				return
			}

			ctx := context.WithValue(r.Context(), UserIDKey, claims.UserID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// Identity resolves the acting user's store relationships from current
// database state on every request. No session cache: a permission
// revoked mid-session takes effect on the very next request.
func Identity(resolver *access.Resolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userID := GetUserID(r.Context())
			if userID == uuid.Nil {
				http.Error(w, "Unauthorized", http.StatusUnauthorized)
				return
			}

			identity, err := resolver.Resolve(r.Context(), userID)
			if err != nil {
				http.Error(w, "Unauthorized", http.StatusUnauthorized)
				return
			}

			ctx := context.WithValue(r.Context(), IdentityKey, identity)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// StoreAccess parses the {storeID} path segment and runs the store
// access guard. A missing or malformed store id is a caller defect
// (400), distinct from an authorization failure (403).
func StoreAccess() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			identity := GetIdentity(r.Context())
			if identity == nil {
				http.Error(w, "Unauthorized", http.StatusUnauthorized)
				return
			}

			raw := chi.URLParam(r, "storeID")
			if raw == "" {
				http.Error(w, "Missing store ID", http.StatusBadRequest)
				return
			}
			storeID, err := uuid.Parse(raw)
			if err != nil {
				http.Error(w, "Invalid store ID", http.StatusBadRequest)
				return
			}

			grant, err := access.CheckStore(identity, storeID)
			if err != nil {
				http.Error(w, "Forbidden", http.StatusForbidden)
				return
			}

			ctx := context.WithValue(r.Context(), GrantKey, grant)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequirePermission gates a write action on a fine-grained permission.
// The denial names the missing permission so clients can present an
// actionable message.
func RequirePermission(perm access.Permission) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			grant := GetGrant(r.Context())
			if grant == nil {
				http.Error(w, "Forbidden", http.StatusForbidden)
				return
			}

			if err := grant.Require(perm); err != nil {
				http.Error(w, err.Error(), http.StatusForbidden)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// Helper functions to extract values from context
func GetUserID(ctx context.Context) uuid.UUID {
	if id, ok := ctx.Value(UserIDKey).(uuid.UUID); ok {
		return id
	}
	return uuid.Nil
}

func GetIdentity(ctx context.Context) *access.Identity {
	if id, ok := ctx.Value(IdentityKey).(*access.Identity); ok {
		return id
	}
	return nil
}

func GetGrant(ctx context.Context) *access.Grant {
	if g, ok := ctx.Value(GrantKey).(*access.Grant); ok {
		return g
	}
	return nil
}
