package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/menulink/api/internal/auth"
)

const testSecret = "test-secret"

func protectedHandler(t *testing.T, wantUserID uuid.UUID) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims := ClaimsFromContext(r.Context())
		if claims == nil {
			t.Error("expected claims in request context")
		} else if claims.UserID != wantUserID {
			t.Errorf("user id: got %s, want %s", claims.UserID, wantUserID)
		}
		w.WriteHeader(http.StatusOK)
	})
}

func TestAuthenticate_ValidToken(t *testing.T) {
	userID := uuid.New()
	token, err := auth.GenerateToken(testSecret, userID)
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}

	handler := Authenticate(testSecret)(protectedHandler(t, userID))

	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Errorf("status: got %d, want %d", rr.Code, http.StatusOK)
	}
}

func TestAuthenticate_MissingHeader(t *testing.T) {
	handler := Authenticate(testSecret)(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		t.Error("handler must not run without a token")
	}))

	req := httptest.NewRequest("GET", "/", nil)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusUnauthorized {
		t.Errorf("status: got %d, want %d", rr.Code, http.StatusUnauthorized)
	}
}

func TestAuthenticate_MalformedHeader(t *testing.T) {
	handler := Authenticate(testSecret)(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		t.Error("handler must not run with a malformed header")
	}))

	for _, header := range []string{"Bearer", "Basic dXNlcjpwYXNz", "just-a-token"} {
		req := httptest.NewRequest("GET", "/", nil)
		req.Header.Set("Authorization", header)
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)

		if rr.Code != http.StatusUnauthorized {
			t.Errorf("header %q: status got %d, want %d", header, rr.Code, http.StatusUnauthorized)
		}
	}
}

func TestAuthenticate_WrongSecret(t *testing.T) {
	token, err := auth.GenerateToken("other-secret", uuid.New())
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}

	handler := Authenticate(testSecret)(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		t.Error("handler must not run with a forged token")
	}))

	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusUnauthorized {
		t.Errorf("status: got %d, want %d", rr.Code, http.StatusUnauthorized)
	}
}

func TestClaimsFromContext_Empty(t *testing.T) {
	req := httptest.NewRequest("GET", "/", nil)
	if claims := ClaimsFromContext(req.Context()); claims != nil {
		t.Errorf("expected nil claims, got %+v", claims)
	}
}
