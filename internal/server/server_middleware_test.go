package server

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestRedactRequestForLogging(t *testing.T) {
	req := httptest.NewRequest("GET", "http://localhost:7480/api/v1/libraries?token=abc123&access_token=def456&q=hello", nil)

	redacted := redactRequestForLogging(req)
	if redacted == req {
		t.Fatal("redactRequestForLogging() should clone request when sensitive params are present")
	}

	query := redacted.URL.Query()
	if got := query.Get("token"); got != "[REDACTED]" {
		t.Fatalf("token query = %q, want [REDACTED]", got)
	}
	if got := query.Get("access_token"); got != "[REDACTED]" {
		t.Fatalf("access_token query = %q, want [REDACTED]", got)
	}
	if got := query.Get("q"); got != "hello" {
		t.Fatalf("q query = %q, want hello", got)
	}

	if strings.Contains(redacted.RequestURI, "abc123") || strings.Contains(redacted.RequestURI, "def456") {
		t.Fatalf("RequestURI should not include raw secret values: %s", redacted.RequestURI)
	}
}

func TestRedactRequestForLogging_NoSensitiveQuery(t *testing.T) {
	req := httptest.NewRequest("GET", "http://localhost:7480/api/v1/libraries/search?q=hello", nil)

	redacted := redactRequestForLogging(req)
	if redacted != req {
		t.Fatal("redactRequestForLogging() should return the original request when no sensitive params are present")
	}
}

func TestCORSMiddleware_Preflight(t *testing.T) {
	nextCalled := false
	wrapped := corsMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		nextCalled = true
	}))

	req := httptest.NewRequest("OPTIONS", "/api/v1/sheets", nil)
	rr := httptest.NewRecorder()
	wrapped.ServeHTTP(rr, req)

	if nextCalled {
		t.Fatal("preflight request should not reach the handler")
	}
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusOK)
	}
	if got := rr.Header().Get("Access-Control-Allow-Headers"); !strings.Contains(got, "Authorization") {
		t.Fatalf("Access-Control-Allow-Headers = %q, want Authorization", got)
	}
}

func TestBearerAuthenticator(t *testing.T) {
	t.Setenv(TokenEnvVar, "")
	auth := NewBearerAuthenticator("secret")
	handler := auth.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))

	tests := []struct {
		name   string
		header string
		query  string
		want   int
	}{
		{"missing", "", "", http.StatusUnauthorized},
		{"wrong scheme", "Basic secret", "", http.StatusUnauthorized},
		{"wrong token", "Bearer nope", "", http.StatusUnauthorized},
		{"header", "Bearer secret", "", http.StatusNoContent},
		{"lowercase scheme", "bearer secret", "", http.StatusNoContent},
		{"query", "", "?token=secret", http.StatusNoContent},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/api/v1/libraries"+tt.query, nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rr := httptest.NewRecorder()
			handler.ServeHTTP(rr, req)

			if rr.Code != tt.want {
				t.Fatalf("status = %d, want %d", rr.Code, tt.want)
			}
			if tt.want == http.StatusUnauthorized && rr.Header().Get("WWW-Authenticate") == "" {
				t.Error("missing WWW-Authenticate header")
			}
		})
	}
}

func TestBearerAuthenticator_EnvFallback(t *testing.T) {
	t.Setenv(TokenEnvVar, "from-env")
	if !NewBearerAuthenticator("").IsEnabled() {
		t.Fatal("authenticator should read the token from the environment")
	}

	t.Setenv(TokenEnvVar, "")
	if NewBearerAuthenticator("").IsEnabled() {
		t.Fatal("authenticator without a token should be disabled")
	}
}

func TestGenerateSecureToken(t *testing.T) {
	a, err := GenerateSecureToken()
	if err != nil {
		t.Fatal(err)
	}
	b, err := GenerateSecureToken()
	if err != nil {
		t.Fatal(err)
	}
	if len(a) != 64 {
		t.Errorf("token length = %d, want 64", len(a))
	}
	if a == b {
		t.Error("tokens should differ")
	}
}
