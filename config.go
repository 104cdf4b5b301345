package pinterest

import (
	"log/slog"
	"net/http"
	"time"

	"golang.org/x/oauth2"

	"github.com/giantswarm/go-pinterest/instrumentation"
)

// APIBase is the base URL of the Pinterest v1 REST API.
const APIBase = "https://api.pinterest.com/v1/"

// Pinterest OAuth endpoints, used when Config leaves them empty.
const (
	DefaultAuthorizeURL = "https://api.pinterest.com/oauth/"
	DefaultTokenURL     = "https://api.pinterest.com/v1/oauth/token"
)

// DefaultRequestTimeout bounds a token exchange whose context has no deadline.
const DefaultRequestTimeout = 30 * time.Second

// Config holds the OAuth2 configuration of a Pinterest application.
type Config struct {
	// ClientID is the Pinterest app ID.
	ClientID string

	// ClientSecret is the Pinterest app secret.
	ClientSecret string

	// AuthorizeURL is the authorization endpoint.
	// Default: DefaultAuthorizeURL
	AuthorizeURL string

	// TokenURL is the token endpoint.
	// Default: DefaultTokenURL
	TokenURL string

	// RedirectURL is the callback registered for the app.
	RedirectURL string

	// Scope selects the permissions to request.
	Scope Scope

	// HTTPClient is an optional custom HTTP client for the token exchange.
	HTTPClient *http.Client

	// RequestTimeout is applied to token exchanges whose context has no deadline.
	// Default: DefaultRequestTimeout
	RequestTimeout time.Duration

	// Logger for structured logging (optional, uses slog.Default() if not provided)
	Logger *slog.Logger

	// Instrumentation records traces and metrics for token exchanges (optional).
	Instrumentation *instrumentation.Instrumentation
}

// withDefaults returns a copy of c with the zero-valued optional fields filled in.
func (c Config) withDefaults() Config {
	if c.AuthorizeURL == "" {
		c.AuthorizeURL = DefaultAuthorizeURL
	}
	if c.TokenURL == "" {
		c.TokenURL = DefaultTokenURL
	}
	if c.RequestTimeout <= 0 {
		c.RequestTimeout = DefaultRequestTimeout
	}
	if c.HTTPClient == nil {
		c.HTTPClient = &http.Client{Timeout: c.RequestTimeout}
	}
	if c.Logger == nil {
		c.Logger = slog.Default()
	}
	return c
}

// OAuth2Config builds the golang.org/x/oauth2 configuration for c: client
// credentials, both endpoints, the redirect URL and the resolved scope list.
// Pinterest expects the client credentials in the request body.
func (c Config) OAuth2Config() *oauth2.Config {
	c = c.withDefaults()
	return &oauth2.Config{
		ClientID:     c.ClientID,
		ClientSecret: c.ClientSecret,
		Endpoint: oauth2.Endpoint{
			AuthURL:   c.AuthorizeURL,
			TokenURL:  c.TokenURL,
			AuthStyle: oauth2.AuthStyleInParams,
		},
		RedirectURL: c.RedirectURL,
		Scopes:      c.Scope.Scopes(),
	}
}
