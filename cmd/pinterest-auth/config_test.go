package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/giantswarm/go-pinterest"
)

func TestLoadConfig(t *testing.T) {
	t.Setenv(envClientID, "")
	t.Setenv(envClientSecret, "from-env")
	t.Setenv(envRedirectURL, "")
	t.Setenv(envAccessToken, "")

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
client_id: abc
client_secret: from-file
token_url: https://example.com/token
scopes: [read_public, write_relationships]
`), 0o600))

	cfg, err := loadConfig(path, true)
	require.NoError(t, err)
	assert.Equal(t, "abc", cfg.ClientID)
	assert.Equal(t, "from-env", cfg.ClientSecret)
	assert.Equal(t, "https://example.com/token", cfg.TokenURL)

	pcfg, err := cfg.pinterestConfig()
	require.NoError(t, err)
	assert.Equal(t, pinterest.Scope{ReadPublic: true, WriteRelationships: true}, pcfg.Scope)
	assert.Equal(t, "abc", pcfg.ClientID)
}

func TestLoadConfig_Missing(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "missing.yaml")

	_, err := loadConfig(missing, false)
	assert.NoError(t, err)

	_, err = loadConfig(missing, true)
	assert.Error(t, err)
}

func TestLoadConfig_Invalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("client_id: [unterminated"), 0o600))

	_, err := loadConfig(path, true)
	assert.ErrorContains(t, err, "failed to parse config file")
}
