package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/oauth2"

	"github.com/giantswarm/go-pinterest"
)

// rootOptions holds the values of the global flags and the configuration
// resolved from them.
type rootOptions struct {
	configPath   string
	clientID     string
	clientSecret string
	redirectURL  string
	authorizeURL string
	tokenURL     string
	scopes       []string
	debug        bool

	cfg    fileConfig
	logger *slog.Logger
}

func defaultConfigPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "pinterest-auth", "config.yaml")
}

// newRootCmd builds the command tree.
func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "pinterest-auth",
		Short: "Obtain and use Pinterest OAuth2 access tokens",
		Long: `pinterest-auth runs the Pinterest OAuth2 authorization-code flow.

Configuration is read from a YAML file, then PINTEREST_CLIENT_ID,
PINTEREST_CLIENT_SECRET, PINTEREST_REDIRECT_URL and PINTEREST_ACCESS_TOKEN,
then command line flags.

Examples:
  pinterest-auth url --scope read_public,write_public
  pinterest-auth exchange <code>
  pinterest-auth get me/ --token <access-token>`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return opts.resolve(cmd)
		},
	}
	cmd.SetVersionTemplate(`{{printf "pinterest-auth version %s\n" .Version}}`)

	flags := cmd.PersistentFlags()
	flags.StringVar(&opts.configPath, "config", defaultConfigPath(), "Path to the YAML configuration file")
	flags.StringVar(&opts.clientID, "client-id", "", "Pinterest app ID")
	flags.StringVar(&opts.clientSecret, "client-secret", "", "Pinterest app secret")
	flags.StringVar(&opts.redirectURL, "redirect-url", "", "Redirect URL registered for the app")
	flags.StringVar(&opts.authorizeURL, "authorize-url", "", "Authorization endpoint (default "+pinterest.DefaultAuthorizeURL+")")
	flags.StringVar(&opts.tokenURL, "token-url", "", "Token endpoint (default "+pinterest.DefaultTokenURL+")")
	flags.StringSliceVar(&opts.scopes, "scope", nil, "Scopes to request (read_public, write_public, read_relationships, write_relationships)")
	flags.BoolVar(&opts.debug, "debug", false, "Enable debug logging")

	cmd.AddCommand(newURLCmd(opts), newExchangeCmd(opts), newGetCmd(opts))
	return cmd
}

// resolve loads the configuration file and applies flag overrides.
func (o *rootOptions) resolve(cmd *cobra.Command) error {
	level := slog.LevelInfo
	if o.debug {
		level = slog.LevelDebug
	}
	o.logger = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))

	cfg, err := loadConfig(o.configPath, cmd.Flags().Changed("config"))
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("client-id") {
		cfg.ClientID = o.clientID
	}
	if flags.Changed("client-secret") {
		cfg.ClientSecret = o.clientSecret
	}
	if flags.Changed("redirect-url") {
		cfg.RedirectURL = o.redirectURL
	}
	if flags.Changed("authorize-url") {
		cfg.AuthorizeURL = o.authorizeURL
	}
	if flags.Changed("token-url") {
		cfg.TokenURL = o.tokenURL
	}
	if flags.Changed("scope") {
		cfg.Scopes = o.scopes
	}

	o.cfg = cfg
	o.logger.Debug("Resolved configuration",
		"client_id", cfg.ClientID,
		"redirect_url", cfg.RedirectURL,
		"scopes", strings.Join(cfg.Scopes, " "))
	return nil
}

// tokenBuilder creates a TokenBuilder from the resolved configuration.
func (o *rootOptions) tokenBuilder() (*pinterest.TokenBuilder, error) {
	if o.cfg.ClientID == "" {
		return nil, fmt.Errorf("client ID is required (--client-id or %s)", envClientID)
	}
	cfg, err := o.cfg.pinterestConfig()
	if err != nil {
		return nil, err
	}
	cfg.Logger = o.logger
	return pinterest.NewTokenBuilder(cfg), nil
}

func newURLCmd(opts *rootOptions) *cobra.Command {
	var state string

	cmd := &cobra.Command{
		Use:   "url",
		Short: "Print the authorization URL to open in a browser",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			builder, err := opts.tokenBuilder()
			if err != nil {
				return err
			}
			u := builder.AuthorizeURL()
			if state != "" {
				u = builder.AuthCodeURL(state)
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), u)
			return err
		},
	}
	cmd.Flags().StringVar(&state, "state", "", "Add a CSRF state parameter")
	return cmd
}

func newExchangeCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "exchange <code>",
		Short: "Exchange an authorization code for an access token",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			builder, err := opts.tokenBuilder()
			if err != nil {
				return err
			}
			if opts.cfg.ClientSecret == "" {
				return fmt.Errorf("client secret is required (--client-secret or %s)", envClientSecret)
			}

			token, err := builder.ExchangeCode(contextOf(cmd), args[0])
			if err != nil {
				return err
			}
			return writeJSON(cmd, token)
		},
	}
}

func newGetCmd(opts *rootOptions) *cobra.Command {
	var accessToken string
	var params map[string]string

	cmd := &cobra.Command{
		Use:   "get <path>",
		Short: "Issue an authenticated GET request against the Pinterest API",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("token") {
				opts.cfg.AccessToken = accessToken
			}
			if opts.cfg.AccessToken == "" {
				return fmt.Errorf("access token is required (--token or %s)", envAccessToken)
			}

			clientOpts := []pinterest.ClientOption{pinterest.WithLogger(opts.logger)}
			if opts.cfg.APIBase != "" {
				clientOpts = append(clientOpts, pinterest.WithBaseURL(opts.cfg.APIBase))
			}
			client := pinterest.NewClientWithToken(&oauth2.Token{
				AccessToken: opts.cfg.AccessToken,
				TokenType:   "bearer",
			}, clientOpts...)
			defer client.Close()

			query := make(map[string][]string, len(params))
			for k, v := range params {
				query[k] = []string{v}
			}

			var data json.RawMessage
			if err := client.Do(contextOf(cmd), "GET", args[0], query, &data); err != nil {
				return err
			}
			return writeJSON(cmd, data)
		},
	}
	cmd.Flags().StringVar(&accessToken, "token", "", "Access token")
	cmd.Flags().StringToStringVar(&params, "param", nil, "Query parameter key=value (repeatable)")
	return cmd
}

func contextOf(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

func writeJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
