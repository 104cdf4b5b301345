package pinterest

import (
	"context"
	"net/http"

	"golang.org/x/oauth2"
)

// TokenExchanger is the OAuth2 capability a TokenBuilder needs.
// *oauth2.Config implements it.
type TokenExchanger interface {
	AuthCodeURL(state string, opts ...oauth2.AuthCodeOption) string
	Exchange(ctx context.Context, code string, opts ...oauth2.AuthCodeOption) (*oauth2.Token, error)
}

// HTTPDoer is the HTTP transport capability a Client needs.
// *http.Client implements it.
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Compile-time checks that the library types provide the capabilities.
var (
	_ TokenExchanger = (*oauth2.Config)(nil)
	_ HTTPDoer       = (*http.Client)(nil)
)
