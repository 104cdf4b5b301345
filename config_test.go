package pinterest

import (
	"reflect"
	"testing"

	"golang.org/x/oauth2"
)

func TestConfig_OAuth2Config(t *testing.T) {
	cfg := Config{
		ClientID:     "myclientid",
		ClientSecret: "myclientsecret",
		AuthorizeURL: "https://example.com/authorize",
		TokenURL:     "https://example.com/token",
		RedirectURL:  "https://mysite.com:8000",
		Scope:        Scope{WriteRelationships: true, ReadPublic: true},
	}

	got := cfg.OAuth2Config()

	if got.ClientID != "myclientid" {
		t.Errorf("ClientID = %q, want %q", got.ClientID, "myclientid")
	}
	if got.ClientSecret != "myclientsecret" {
		t.Errorf("ClientSecret = %q, want %q", got.ClientSecret, "myclientsecret")
	}
	if got.Endpoint.AuthURL != "https://example.com/authorize" {
		t.Errorf("Endpoint.AuthURL = %q", got.Endpoint.AuthURL)
	}
	if got.Endpoint.TokenURL != "https://example.com/token" {
		t.Errorf("Endpoint.TokenURL = %q", got.Endpoint.TokenURL)
	}
	if got.Endpoint.AuthStyle != oauth2.AuthStyleInParams {
		t.Errorf("Endpoint.AuthStyle = %v, want AuthStyleInParams", got.Endpoint.AuthStyle)
	}
	if got.RedirectURL != "https://mysite.com:8000" {
		t.Errorf("RedirectURL = %q", got.RedirectURL)
	}
	if want := []string{"read_public", "write_relationships"}; !reflect.DeepEqual(got.Scopes, want) {
		t.Errorf("Scopes = %q, want %q", got.Scopes, want)
	}
}

func TestConfig_Defaults(t *testing.T) {
	cfg := Config{ClientID: "id"}.withDefaults()

	if cfg.AuthorizeURL != DefaultAuthorizeURL {
		t.Errorf("AuthorizeURL = %q, want %q", cfg.AuthorizeURL, DefaultAuthorizeURL)
	}
	if cfg.TokenURL != DefaultTokenURL {
		t.Errorf("TokenURL = %q, want %q", cfg.TokenURL, DefaultTokenURL)
	}
	if cfg.RequestTimeout != DefaultRequestTimeout {
		t.Errorf("RequestTimeout = %v, want %v", cfg.RequestTimeout, DefaultRequestTimeout)
	}
	if cfg.HTTPClient == nil {
		t.Error("HTTPClient is nil")
	} else if cfg.HTTPClient.Timeout != DefaultRequestTimeout {
		t.Errorf("HTTPClient.Timeout = %v, want %v", cfg.HTTPClient.Timeout, DefaultRequestTimeout)
	}
	if cfg.Logger == nil {
		t.Error("Logger is nil")
	}
}

func TestConfig_OAuth2Config_DoesNotMutate(t *testing.T) {
	cfg := Config{ClientID: "id"}
	_ = cfg.OAuth2Config()

	if cfg.AuthorizeURL != "" || cfg.TokenURL != "" || cfg.HTTPClient != nil {
		t.Errorf("OAuth2Config() modified the receiver: %+v", cfg)
	}
}

func TestAPIBase(t *testing.T) {
	if APIBase != "https://api.pinterest.com/v1/" {
		t.Errorf("APIBase = %q", APIBase)
	}
}
