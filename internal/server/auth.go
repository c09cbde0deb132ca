package server

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/hex"
	"fmt"
	"net/http"
	"os"
	"strings"

	"github.com/wethinkt/go-swatchsheet/internal/runlog"
)

// TokenEnvVar names the environment variable holding the API token.
const TokenEnvVar = "SWATCHSHEET_API_TOKEN"

// BearerAuthenticator checks bearer tokens on API requests. With no token
// configured every request is allowed.
type BearerAuthenticator struct {
	token string
	realm string
}

// NewBearerAuthenticator creates an authenticator for token. An empty token
// falls back to TokenEnvVar.
func NewBearerAuthenticator(token string) *BearerAuthenticator {
	if token == "" {
		token = os.Getenv(TokenEnvVar)
	}
	return &BearerAuthenticator{token: token, realm: "swatchsheet-api"}
}

// IsEnabled returns true if a token is required.
func (a *BearerAuthenticator) IsEnabled() bool {
	return a.token != ""
}

// AuthenticateRequest verifies the request's token, writing a 401 response
// when it is missing or wrong.
func (a *BearerAuthenticator) AuthenticateRequest(w http.ResponseWriter, r *http.Request) bool {
	if !a.IsEnabled() {
		return true
	}

	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		if qToken := r.URL.Query().Get("token"); qToken != "" {
			authHeader = "Bearer " + qToken
		}
	}
	if authHeader == "" {
		a.writeUnauthorized(w, "Missing Authorization header")
		return false
	}

	scheme, provided, ok := strings.Cut(authHeader, " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		a.writeUnauthorized(w, "Invalid Authorization header format")
		return false
	}

	if subtle.ConstantTimeCompare([]byte(provided), []byte(a.token)) != 1 {
		runlog.Log.Info("Authentication failed: invalid token", "remote", r.RemoteAddr)
		a.writeUnauthorized(w, "Invalid token")
		return false
	}
	return true
}

func (a *BearerAuthenticator) writeUnauthorized(w http.ResponseWriter, message string) {
	w.Header().Set("WWW-Authenticate", fmt.Sprintf(`Bearer realm="%s"`, a.realm))
	writeError(w, http.StatusUnauthorized, "unauthorized", message)
}

// Middleware enforces authentication when a token is configured.
func (a *BearerAuthenticator) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !a.AuthenticateRequest(w, r) {
			return
		}
		next.ServeHTTP(w, r)
	})
}

// GenerateSecureToken generates a random 256-bit token encoded as hex.
func GenerateSecureToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}
	return hex.EncodeToString(buf), nil
}
