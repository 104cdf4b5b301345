package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/giantswarm/go-pinterest"
)

// Environment variables read by loadConfig.
const (
	envClientID     = "PINTEREST_CLIENT_ID"
	envClientSecret = "PINTEREST_CLIENT_SECRET"
	envRedirectURL  = "PINTEREST_REDIRECT_URL"
	envAccessToken  = "PINTEREST_ACCESS_TOKEN"
)

// fileConfig is the YAML configuration file layout.
type fileConfig struct {
	ClientID     string   `yaml:"client_id"`
	ClientSecret string   `yaml:"client_secret"`
	AuthorizeURL string   `yaml:"authorize_url"`
	TokenURL     string   `yaml:"token_url"`
	RedirectURL  string   `yaml:"redirect_url"`
	APIBase      string   `yaml:"api_base"`
	AccessToken  string   `yaml:"access_token"`
	Scopes       []string `yaml:"scopes"`
}

// loadConfig reads path (if non-empty) and applies environment overrides.
// A missing file is an error only when path was given explicitly.
func loadConfig(path string, explicit bool) (fileConfig, error) {
	var cfg fileConfig

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, fs.ErrNotExist) && !explicit:
		case err != nil:
			return cfg, fmt.Errorf("failed to read config file: %w", err)
		default:
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return cfg, fmt.Errorf("failed to parse config file %s: %w", path, err)
			}
		}
	}

	overrideFromEnv(&cfg.ClientID, envClientID)
	overrideFromEnv(&cfg.ClientSecret, envClientSecret)
	overrideFromEnv(&cfg.RedirectURL, envRedirectURL)
	overrideFromEnv(&cfg.AccessToken, envAccessToken)

	return cfg, nil
}

func overrideFromEnv(field *string, key string) {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		*field = v
	}
}

// pinterestConfig converts the file configuration into a pinterest.Config.
func (c fileConfig) pinterestConfig() (pinterest.Config, error) {
	scope, err := pinterest.ParseScope(c.Scopes...)
	if err != nil {
		return pinterest.Config{}, err
	}
	return pinterest.Config{
		ClientID:     c.ClientID,
		ClientSecret: c.ClientSecret,
		AuthorizeURL: c.AuthorizeURL,
		TokenURL:     c.TokenURL,
		RedirectURL:  c.RedirectURL,
		Scope:        scope,
	}, nil
}
