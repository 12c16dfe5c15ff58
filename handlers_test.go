package main

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// these tests exercise the auth middleware and parameter handling without a
// database; nothing here reaches a handler that queries

func newTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	jwtSecret = []byte("test-secret")
	tokenTTL = time.Hour
	r := gin.New()
	setupRoutes(r)
	return r
}

func mintToken(t *testing.T, secret []byte, sub string) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":      sub,
		"username": "tester",
		"exp":      time.Now().Add(time.Hour).Unix(),
	})
	s, err := token.SignedString(secret)
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return s
}

func TestAuthMissingHeader(t *testing.T) {
	r := newTestRouter()
	req := httptest.NewRequest(http.MethodGet, "/accounts", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
}

func TestAuthWrongScheme(t *testing.T) {
	r := newTestRouter()
	req := httptest.NewRequest(http.MethodGet, "/accounts", nil)
	req.Header.Set("Authorization", "Basic abc123")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
}

func TestAuthWrongSecret(t *testing.T) {
	r := newTestRouter()
	tok := mintToken(t, []byte("other-secret"), uuid.NewString())
	req := httptest.NewRequest(http.MethodGet, "/accounts", nil)
	req.Header.Set("Authorization", "Bearer "+tok)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
}

func TestAuthExpiredToken(t *testing.T) {
	r := newTestRouter()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":      uuid.NewString(),
		"username": "tester",
		"exp":      time.Now().Add(-time.Hour).Unix(),
	})
	tok, err := token.SignedString(jwtSecret)
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	req := httptest.NewRequest(http.MethodGet, "/accounts", nil)
	req.Header.Set("Authorization", "Bearer "+tok)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
}

func TestAuthGarbageSubject(t *testing.T) {
	r := newTestRouter()
	tok := mintToken(t, jwtSecret, "not-a-uuid")
	req := httptest.NewRequest(http.MethodGet, "/accounts", nil)
	req.Header.Set("Authorization", "Bearer "+tok)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
}

func TestBadPathParam(t *testing.T) {
	r := newTestRouter()
	tok := mintToken(t, jwtSecret, uuid.NewString())
	for _, path := range []string{
		"/accounts/not-a-uuid",
		"/categories/12345",
		"/shopping-plans/xyz",
	} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		req.Header.Set("Authorization", "Bearer "+tok)
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("GET %s status = %d, want 400", path, rec.Code)
		}
	}
}

// aggregate fields default to 0 for childless parents, they never disappear
// from the payload
func TestZeroAggregatesStayInPayload(t *testing.T) {
	cases := []struct {
		name string
		v    any
		keys []string
	}{
		{"account", accountResponse{Name: "empty"}, []string{`"count":0`, `"total":0`}},
		{"category", categoryResponse{Name: "empty"}, []string{`"count":0`, `"total":0`}},
		{"transaction", transactionResponse{Description: "unlinked"}, []string{`"shoppingPlanAmount":0`}},
	}
	for _, tc := range cases {
		b, err := json.Marshal(tc.v)
		if err != nil {
			t.Fatalf("%s: marshal: %v", tc.name, err)
		}
		for _, key := range tc.keys {
			if !strings.Contains(string(b), key) {
				t.Errorf("%s: payload %s is missing %s", tc.name, b, key)
			}
		}
	}
}

func TestParseIDsDropsMalformed(t *testing.T) {
	a, b := uuid.NewString(), uuid.NewString()
	got := parseIDs([]string{a, "garbage", b, ""})
	if len(got) != 2 {
		t.Fatalf("parseIDs kept %d ids, want 2", len(got))
	}
	if got[0].String() != a || got[1].String() != b {
		t.Fatalf("parseIDs = %v, want [%s %s]", got, a, b)
	}
}
