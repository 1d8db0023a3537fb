package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
)

var testSecret = []byte("test-secret")

func signToken(t *testing.T, secret []byte, claims jwt.MapClaims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(secret)
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return signed
}

func authRequest(token string) *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/api/stats", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return req
}

func TestRequireAuthValidToken(t *testing.T) {
	mw := NewAuthMiddleware(testSecret)

	var gotUserID int
	handler := mw.RequireAuth(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUserID, _ = r.Context().Value("userID").(int)
	}))

	token := signToken(t, testSecret, jwt.MapClaims{
		"sub": 42,
		"exp": time.Now().Add(time.Hour).Unix(),
	})
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, authRequest(token))

	if rr.Code != http.StatusOK {
		t.Fatalf("status: got %d, want 200", rr.Code)
	}
	if gotUserID != 42 {
		t.Errorf("userID: got %d, want 42", gotUserID)
	}
}

func TestRequireAuthMissingToken(t *testing.T) {
	mw := NewAuthMiddleware(testSecret)
	handler := mw.RequireAuth(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("handler should not run")
	}))

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, authRequest(""))
	if rr.Code != http.StatusUnauthorized {
		t.Errorf("status: got %d, want 401", rr.Code)
	}
}

func TestRequireAuthWrongSecret(t *testing.T) {
	mw := NewAuthMiddleware(testSecret)
	handler := mw.RequireAuth(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("handler should not run")
	}))

	token := signToken(t, []byte("other-secret"), jwt.MapClaims{
		"sub": 42,
		"exp": time.Now().Add(time.Hour).Unix(),
	})
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, authRequest(token))
	if rr.Code != http.StatusUnauthorized {
		t.Errorf("status: got %d, want 401", rr.Code)
	}
}

func TestRequireAuthExpiredToken(t *testing.T) {
	mw := NewAuthMiddleware(testSecret)
	handler := mw.RequireAuth(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("handler should not run")
	}))

	token := signToken(t, testSecret, jwt.MapClaims{
		"sub": 42,
		"exp": time.Now().Add(-time.Hour).Unix(),
	})
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, authRequest(token))
	if rr.Code != http.StatusUnauthorized {
		t.Errorf("status: got %d, want 401", rr.Code)
	}
}
