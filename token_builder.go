package pinterest

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/oauth2"

	"github.com/giantswarm/go-pinterest/instrumentation"
	"github.com/giantswarm/go-pinterest/internal/util"
)

// TokenBuilder drives the OAuth2 authorization-code flow against Pinterest:
// it generates the authorization URL and exchanges the returned code for a
// token. It is immutable and safe for concurrent use.
//
// After sending the user to AuthorizeURL, the application has to receive the
// callback on its redirect URL itself and pass the "code" query parameter to
// ExchangeCode.
type TokenBuilder struct {
	config         *oauth2.Config
	exchanger      TokenExchanger
	httpClient     *http.Client
	requestTimeout time.Duration
	logger         *slog.Logger
	inst           *instrumentation.Instrumentation
}

// NewTokenBuilder creates a TokenBuilder from cfg.
func NewTokenBuilder(cfg Config) *TokenBuilder {
	oauthConfig := cfg.OAuth2Config()
	return newTokenBuilder(cfg, oauthConfig, oauthConfig)
}

// NewTokenBuilderWithExchanger creates a TokenBuilder that performs the token
// exchange and AuthCodeURL through ex instead of golang.org/x/oauth2.
// AuthorizeURL is still derived from cfg. A nil ex falls back to the
// golang.org/x/oauth2 configuration built from cfg.
func NewTokenBuilderWithExchanger(cfg Config, ex TokenExchanger) *TokenBuilder {
	oauthConfig := cfg.OAuth2Config()
	if ex == nil {
		ex = oauthConfig
	}
	return newTokenBuilder(cfg, oauthConfig, ex)
}

func newTokenBuilder(cfg Config, oauthConfig *oauth2.Config, ex TokenExchanger) *TokenBuilder {
	cfg = cfg.withDefaults()
	return &TokenBuilder{
		config:         oauthConfig,
		exchanger:      ex,
		httpClient:     cfg.HTTPClient,
		requestTimeout: cfg.RequestTimeout,
		logger:         cfg.Logger,
		inst:           cfg.Instrumentation,
	}
}

// AuthorizeURL returns the URL to send the user to for authorization.
//
// The query carries exactly client_id, scope, response_type=code and
// redirect_uri, in that order. scope and redirect_uri are always present,
// with empty values when nothing was configured for them.
func (b *TokenBuilder) AuthorizeURL() string {
	var buf strings.Builder
	buf.WriteString(b.config.Endpoint.AuthURL)
	if strings.Contains(b.config.Endpoint.AuthURL, "?") {
		buf.WriteByte('&')
	} else {
		buf.WriteByte('?')
	}
	buf.WriteString("client_id=")
	buf.WriteString(url.QueryEscape(b.config.ClientID))
	buf.WriteString("&scope=")
	buf.WriteString(url.QueryEscape(strings.Join(b.config.Scopes, " ")))
	buf.WriteString("&response_type=code")
	buf.WriteString("&redirect_uri=")
	buf.WriteString(url.QueryEscape(b.config.RedirectURL))
	return buf.String()
}

// AuthCodeURL returns an authorization URL carrying a CSRF state and any
// extra parameters (e.g. PKCE), as generated by golang.org/x/oauth2.
// Parameters are sorted by name, unlike AuthorizeURL.
func (b *TokenBuilder) AuthCodeURL(state string, opts ...oauth2.AuthCodeOption) string {
	return b.exchanger.AuthCodeURL(state, opts...)
}

// Scopes returns the scope identifiers requested by this builder.
func (b *TokenBuilder) Scopes() []string {
	scopes := make([]string, len(b.config.Scopes))
	copy(scopes, b.config.Scopes)
	return scopes
}

// OAuth2Config returns a copy of the underlying golang.org/x/oauth2 configuration.
func (b *TokenBuilder) OAuth2Config() *oauth2.Config {
	cfg := *b.config
	cfg.Scopes = b.Scopes()
	return &cfg
}

// ensureContextTimeout ensures the context has a deadline, adding one if needed.
// If the context already has a deadline, returns the original context with a no-op cancel.
func (b *TokenBuilder) ensureContextTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if _, hasDeadline := ctx.Deadline(); hasDeadline {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, b.requestTimeout)
}

// ExchangeCode exchanges an authorization code for an access token.
//
// The code is sent as-is. This is a single round trip with no retry. Any
// failure is returned as an *Error of kind ErrorKindToken wrapping the error
// from golang.org/x/oauth2 (usually an *oauth2.RetrieveError).
func (b *TokenBuilder) ExchangeCode(ctx context.Context, code string, opts ...oauth2.AuthCodeOption) (*oauth2.Token, error) {
	ctx, cancel := b.ensureContextTimeout(ctx)
	defer cancel()

	var span trace.Span
	if b.inst != nil {
		ctx, span = b.inst.Tracer("oauth").Start(ctx, "pinterest.ExchangeCode")
		defer span.End()
		instrumentation.AddOAuthAttributes(span, b.config.ClientID, strings.Join(b.config.Scopes, " "))
		instrumentation.SetSpanAttributes(span,
			attribute.String(instrumentation.AttrGrantType, "authorization_code"),
			attribute.Bool(instrumentation.AttrCodePresent, code != ""),
		)
	}

	// Use custom HTTP client
	ctx = context.WithValue(ctx, oauth2.HTTPClient, b.httpClient)

	start := time.Now()
	token, err := b.exchanger.Exchange(ctx, code, opts...)
	durationMs := float64(time.Since(start).Microseconds()) / 1000
	if err == nil && token == nil {
		err = errors.New("token endpoint returned no token")
	}

	if b.inst != nil {
		b.inst.Metrics().RecordCodeExchange(ctx, b.config.ClientID, durationMs, err)
	}

	if err != nil {
		tokenErr := newTokenError(err)
		instrumentation.RecordError(span, tokenErr)
		if errCode := tokenErr.Code(); errCode != "" {
			instrumentation.SetSpanAttributes(span, attribute.String(instrumentation.AttrErrorCode, errCode))
		}
		b.logger.Debug("Authorization code exchange failed",
			"client_id", b.config.ClientID,
			"error_code", tokenErr.Code(),
			"duration_ms", durationMs)
		return nil, tokenErr
	}

	instrumentation.SetSpanAttributes(span, attribute.String(instrumentation.AttrTokenType, token.Type()))
	instrumentation.SetSpanSuccess(span)
	b.logger.Debug("Exchanged authorization code",
		"client_id", b.config.ClientID,
		"token_type", token.Type(),
		"token_prefix", util.SafeTruncate(token.AccessToken, 6),
		"duration_ms", durationMs)

	return token, nil
}

// NewClient creates a Client holding token that shares this builder's
// logger and instrumentation. A nil token yields a client without token.
func (b *TokenBuilder) NewClient(token *oauth2.Token, opts ...ClientOption) *Client {
	opts = append([]ClientOption{WithLogger(b.logger), WithInstrumentation(b.inst)}, opts...)
	if token == nil {
		return NewClient(opts...)
	}
	return NewClientWithToken(token, opts...)
}
