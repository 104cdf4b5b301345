package testutil

import (
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"testing"

	"golang.org/x/oauth2"
)

// Fixture values accepted by TokenServer.
const (
	TestClientID     = "test-client-id"
	TestClientSecret = "test-client-secret"
	TestRedirectURL  = "https://example.com/callback"
	ValidCode        = "valid-code"
	TokenPath        = "/token"
)

// TokenServer is a fake OAuth2 token endpoint. It accepts ValidCode for
// TestClientID/TestClientSecret passed in the form body and answers every
// other request with an "invalid_grant" or "invalid_client" error.
type TokenServer struct {
	*httptest.Server

	// AccessToken is returned on successful exchanges.
	AccessToken string

	mu       sync.Mutex
	requests []url.Values
}

// NewTokenServer starts a TokenServer that is closed when the test ends.
func NewTokenServer(t testing.TB) *TokenServer {
	t.Helper()

	ts := &TokenServer{AccessToken: GenerateRandomString(32)}
	ts.Server = httptest.NewServer(http.HandlerFunc(ts.handle))
	t.Cleanup(ts.Close)
	return ts
}

// TokenURL returns the absolute URL of the token endpoint.
func (ts *TokenServer) TokenURL() string {
	return ts.URL + TokenPath
}

// Requests returns the form bodies received so far.
func (ts *TokenServer) Requests() []url.Values {
	ts.mu.Lock()
	defer ts.mu.Unlock()
	out := make([]url.Values, len(ts.requests))
	copy(out, ts.requests)
	return out
}

func (ts *TokenServer) handle(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != TokenPath || r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	if err := r.ParseForm(); err != nil {
		WriteJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid_request"})
		return
	}

	ts.mu.Lock()
	ts.requests = append(ts.requests, r.PostForm)
	ts.mu.Unlock()

	switch {
	case r.PostForm.Get("client_id") != TestClientID || r.PostForm.Get("client_secret") != TestClientSecret:
		WriteJSON(w, http.StatusUnauthorized, map[string]string{
			"error":             "invalid_client",
			"error_description": "client authentication failed",
		})
	case r.PostForm.Get("grant_type") != "authorization_code" || r.PostForm.Get("code") != ValidCode:
		WriteJSON(w, http.StatusBadRequest, map[string]string{
			"error":             "invalid_grant",
			"error_description": "authorization code is invalid or expired",
		})
	default:
		WriteJSON(w, http.StatusOK, map[string]string{
			"access_token": ts.AccessToken,
			"token_type":   "bearer",
			"scope":        "read_public",
		})
	}
}

// NewAPIServer starts a server that requires "Authorization: Bearer <accessToken>"
// and serves routes keyed by "METHOD /path". Unknown routes get a Pinterest
// style 404 body. The server is closed when the test ends.
func NewAPIServer(t testing.TB, accessToken string, routes map[string]http.HandlerFunc) *httptest.Server {
	t.Helper()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer "+accessToken {
			WriteJSON(w, http.StatusUnauthorized, map[string]string{
				"status":  "failure",
				"message": "Authorization failed.",
				"type":    "api",
			})
			return
		}
		handler, ok := routes[r.Method+" "+r.URL.Path]
		if !ok {
			WriteJSON(w, http.StatusNotFound, map[string]string{
				"status":  "failure",
				"message": fmt.Sprintf("%s not found", r.URL.Path),
				"type":    "api",
			})
			return
		}
		handler(w, r)
	}))
	t.Cleanup(srv.Close)
	return srv
}

// WriteData writes v inside the Pinterest {"data": ...} envelope.
func WriteData(w http.ResponseWriter, v any) {
	WriteJSON(w, http.StatusOK, map[string]any{"data": v})
}

// WriteJSON writes v as a JSON response with the given status.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// GenerateTestToken creates a test OAuth2 token
func GenerateTestToken() *oauth2.Token {
	return &oauth2.Token{
		AccessToken: GenerateRandomString(32),
		TokenType:   "bearer",
	}
}

// GenerateRandomString generates a random base64-encoded string
func GenerateRandomString(length int) string {
	b := make([]byte, length)
	if _, err := rand.Read(b); err != nil {
		panic(fmt.Sprintf("failed to generate random string: %v", err))
	}
	return base64.RawURLEncoding.EncodeToString(b)[:length]
}
