package api

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/golang-jwt/jwt/v4"

	"github.com/videolibre/vault-ms-go/internal/api_context"
)

func TestWithID(t *testing.T) {
	tests := []struct {
		name       string
		id         string
		wantStatus int
		wantNext   bool
	}{
		{"valid uuid", "aaaaaaaa-bbbb-cccc-dddd-eeeeeeeeeeee", http.StatusOK, true},
		{"not a uuid", "definitely-not", http.StatusBadRequest, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var nextCalled bool
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				nextCalled = true
				if id, ok := api_context.IDFromContext(r.Context()); !ok || id.String() != tc.id {
					t.Errorf("context id = %v (ok=%v)", id, ok)
				}
				w.WriteHeader(http.StatusOK)
			})

			r := chi.NewRouter()
			r.With(WithID()).Get("/videos/{id}", next)

			req := httptest.NewRequest(http.MethodGet, "/videos/"+tc.id, nil)
			rec := httptest.NewRecorder()
			r.ServeHTTP(rec, req)

			if rec.Code != tc.wantStatus {
				t.Fatalf("status = %d; want %d", rec.Code, tc.wantStatus)
			}
			if nextCalled != tc.wantNext {
				t.Errorf("next called = %v; want %v", nextCalled, tc.wantNext)
			}
		})
	}
}

func testKeyPair(t *testing.T) (*rsa.PrivateKey, string) {
	t.Helper()
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		t.Fatal(err)
	}
	der, err := x509.MarshalPKIXPublicKey(&key.PublicKey)
	if err != nil {
		t.Fatal(err)
	}
	pub := pem.EncodeToMemory(&pem.Block{Type: "PUBLIC KEY", Bytes: der})
	return key, string(pub)
}

func signedToken(t *testing.T, key *rsa.PrivateKey, claims jwt.MapClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodRS256, claims).SignedString(key)
	if err != nil {
		t.Fatal(err)
	}
	return token
}

func TestWithJWTAuth(t *testing.T) {
	key, pub := testKeyPair(t)
	requesterID := "11111111-2222-3333-4444-555555555555"

	next := func(gotRequester *string) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			if id, ok := api_context.RequesterIDFromContext(r.Context()); ok {
				*gotRequester = id.String()
			}
			w.WriteHeader(http.StatusOK)
		}
	}

	t.Run("valid token", func(t *testing.T) {
		var gotRequester string
		h := WithJWTAuth(pub)(next(&gotRequester))

		token := signedToken(t, key, jwt.MapClaims{
			"sub": requesterID,
			"exp": time.Now().Add(time.Hour).Unix(),
		})
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d; want %d (body %q)", rec.Code, http.StatusOK, rec.Body.String())
		}
		if gotRequester != requesterID {
			t.Errorf("requester from context = %q; want %q", gotRequester, requesterID)
		}
	})

	t.Run("missing token", func(t *testing.T) {
		var gotRequester string
		h := WithJWTAuth(pub)(next(&gotRequester))

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)

		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("status = %d; want %d", rec.Code, http.StatusUnauthorized)
		}
	})

	t.Run("expired token", func(t *testing.T) {
		var gotRequester string
		h := WithJWTAuth(pub)(next(&gotRequester))

		token := signedToken(t, key, jwt.MapClaims{
			"sub": requesterID,
			"exp": time.Now().Add(-time.Hour).Unix(),
		})
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)

		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("status = %d; want %d", rec.Code, http.StatusUnauthorized)
		}
	})

	t.Run("subject is not a uuid", func(t *testing.T) {
		var gotRequester string
		h := WithJWTAuth(pub)(next(&gotRequester))

		token := signedToken(t, key, jwt.MapClaims{
			"sub": "system",
			"exp": time.Now().Add(time.Hour).Unix(),
		})
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)

		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("status = %d; want %d", rec.Code, http.StatusUnauthorized)
		}
	})

	t.Run("empty key disables the check", func(t *testing.T) {
		var gotRequester string
		h := WithJWTAuth("")(next(&gotRequester))

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d; want %d", rec.Code, http.StatusOK)
		}
	})
}
