// Package pinterest is a client binding for the Pinterest REST API.
//
// It covers the OAuth2 authorization-code flow and holds the access token
// for API calls:
//   - Scope: the permissions to request (read_public, write_public,
//     read_relationships, write_relationships)
//   - Config / TokenBuilder: builds the authorization URL and exchanges the
//     authorization code for a token, using golang.org/x/oauth2
//   - Client: owns an HTTP transport and the access token, and issues
//     rate-limited requests against APIBase
//
// Example usage:
//
//	builder := pinterest.NewTokenBuilder(pinterest.Config{
//	    ClientID:     os.Getenv("PINTEREST_CLIENT_ID"),
//	    ClientSecret: os.Getenv("PINTEREST_CLIENT_SECRET"),
//	    RedirectURL:  "https://example.com/callback",
//	    Scope:        pinterest.Scope{ReadPublic: true},
//	})
//
//	// Redirect the user, then read "code" from the callback request.
//	http.Redirect(w, r, builder.AuthorizeURL(), http.StatusFound)
//
//	token, err := builder.ExchangeCode(ctx, code)
//	if errors.Is(err, pinterest.ErrToken) {
//	    // ask the user to authorize again
//	}
//
//	client := builder.NewClient(token)
//	defer client.Close()
//
//	var me struct {
//	    ID        string `json:"id"`
//	    FirstName string `json:"first_name"`
//	}
//	err = client.Do(ctx, http.MethodGet, "me/", nil, &me)
package pinterest
