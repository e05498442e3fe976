package jwt

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"pinmap/internal/app/user"
)

const testSecret = "test-secret"

func runExtractor(t *testing.T, header string) *user.User {
	t.Helper()

	var got *user.User
	h := IdentityExtractorMiddleware(testSecret)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = user.CurrentUser(r.Context())
		w.WriteHeader(http.StatusNoContent)
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/me", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	if rr.Code != http.StatusNoContent {
		t.Fatalf("extractor must never short-circuit, got status %d", rr.Code)
	}
	return got
}

func TestExtractorInjectsUser(t *testing.T) {
	token, err := GenerateToken(&Payload{ID: "u1", Name: "Reed", Email: "reed@example.com"}, testSecret, time.Hour)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	got := runExtractor(t, "Bearer "+token)
	if got == nil || got.ID != "u1" || got.Name != "Reed" {
		t.Fatalf("unexpected user %+v", got)
	}
}

func TestExtractorLeavesAnonymous(t *testing.T) {
	expired, err := GenerateToken(&Payload{ID: "u1"}, testSecret, -time.Minute)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}
	foreign, err := GenerateToken(&Payload{ID: "u1"}, "other-secret", time.Hour)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	for name, header := range map[string]string{
		"missing":   "",
		"malformed": "Token abc",
		"expired":   "Bearer " + expired,
		"foreign":   "Bearer " + foreign,
	} {
		if got := runExtractor(t, header); got != nil {
			t.Errorf("%s: expected anonymous caller, got %+v", name, got)
		}
	}
}
