package api

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/golang-jwt/jwt/v4"
	guuid "github.com/google/uuid"

	"github.com/videolibre/vault-ms-go/internal/api_context"
	"github.com/videolibre/vault-ms-go/internal/uuid"
)

func WithID() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := chi.URLParam(r, "id")
			if id == "" {
				WriteError(w, http.StatusBadRequest, "ID is required", nil)
				return
			}
			parsedID, err := guuid.Parse(id)
			if err != nil {
				WriteError(w, http.StatusBadRequest, fmt.Sprintf("ID %q is not a valid UUID", id), nil)
				return
			}

			// stash it in context and call the real handler
			ctx := context.WithValue(r.Context(), api_context.IDKey, uuid.UUID(parsedID))
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// WithJWTAuth validates the RS256 bearer token and stashes the requester id
// from the "sub" claim. An empty public key disables the check, which only
// local development should ever do.
func WithJWTAuth(publicKeyPEM string) func(http.Handler) http.Handler {
	if publicKeyPEM == "" {
		return func(next http.Handler) http.Handler {
			return next
		}
	}

	publicKey, keyErr := jwt.ParseRSAPublicKeyFromPEM([]byte(publicKeyPEM))

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if keyErr != nil {
				WriteError(w, http.StatusInternalServerError, "auth is misconfigured", keyErr)
				return
			}

			auth := r.Header.Get("Authorization")
			if !strings.HasPrefix(auth, "Bearer ") {
				WriteError(w, http.StatusUnauthorized, "missing bearer token", nil)
				return
			}
			tokenStr := strings.TrimPrefix(auth, "Bearer ")

			claims := jwt.MapClaims{}
			token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (interface{}, error) {
				if _, ok := t.Method.(*jwt.SigningMethodRSA); !ok {
					return nil, fmt.Errorf("unexpected signing method %q", t.Method.Alg())
				}
				return publicKey, nil
			})
			if err != nil || !token.Valid {
				WriteError(w, http.StatusUnauthorized, "unauthorized", nil)
				return
			}

			sub, _ := claims["sub"].(string)
			requesterID, err := uuid.Parse(sub)
			if err != nil {
				WriteError(w, http.StatusUnauthorized, "token subject is not a valid UUID", nil)
				return
			}

			ctx := context.WithValue(r.Context(), api_context.RequesterIDKey, requesterID)
			if rawRoles, ok := claims["roles"].([]interface{}); ok {
				roles := make([]string, 0, len(rawRoles))
				for _, r := range rawRoles {
					if s, ok := r.(string); ok {
						roles = append(roles, s)
					}
				}
				ctx = context.WithValue(ctx, api_context.AuthRolesKey, roles)
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
