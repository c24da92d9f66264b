package slack

import (
	"context"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/sfomuseum/runtimevar"
)

// DEFAULT_TOKEN_ENV is the environment variable checked first for an API token.
const DEFAULT_TOKEN_ENV string = "SLACK_API_KEY"

// SYSTEM_TOKEN_PATH is the system-wide fallback token file.
const SYSTEM_TOKEN_PATH string = "/etc/slack/api-token"

// TokenConfig describes where to look for a Slack API token.
type TokenConfig struct {
	// EnvVar is the name of the environment variable consulted first.
	EnvVar string
	// Paths are fallback files, tried in order when EnvVar is unset or blank.
	Paths []string
	// Credentials is an optional gocloud.dev/runtimevar URI (for example "file:///path/to/token" or
	// "constant://?val=xoxb-..."). When set it replaces Paths; EnvVar still takes priority.
	Credentials string
}

// DefaultTokenConfig returns the SLACK_API_KEY environment variable followed by
// ~/.slack/api-token and /etc/slack/api-token.
func DefaultTokenConfig() *TokenConfig {

	home, _ := os.UserHomeDir()

	return &TokenConfig{
		EnvVar: DEFAULT_TOKEN_ENV,
		Paths: []string{
			filepath.Join(home, ".slack", "api-token"),
			SYSTEM_TOKEN_PATH,
		},
	}
}

// ResolveToken returns the first non-blank token, with surrounding whitespace removed, derived
// from cfg. Token files that are missing or unreadable are skipped. ErrTokenNotFound is returned
// if every source is exhausted.
func ResolveToken(ctx context.Context, cfg *TokenConfig) (string, error) {

	if cfg.EnvVar != "" {

		token := strings.TrimSpace(os.Getenv(cfg.EnvVar))

		if token != "" {
			return token, nil
		}
	}

	if cfg.Credentials != "" {
		return resolveCredentials(ctx, cfg.Credentials)
	}

	for _, path := range cfg.Paths {

		body, err := os.ReadFile(path)

		if err != nil {
			continue
		}

		token := strings.TrimSpace(string(body))

		if token != "" {
			return token, nil
		}
	}

	return "", ErrTokenNotFound
}

func resolveCredentials(ctx context.Context, uri string) (string, error) {

	rt_ctx, rt_cancel := context.WithTimeout(ctx, 5*time.Second)
	defer rt_cancel()

	str_token, err := runtimevar.StringVar(rt_ctx, uri)

	if err != nil {
		return "", &TokenReadError{Source: redactURI(uri), Err: err}
	}

	token := strings.TrimSpace(str_token)

	if token == "" {
		return "", ErrTokenNotFound
	}

	return token, nil
}

// redactURI drops the query string, which may carry the token itself, from a credentials URI.
func redactURI(uri string) string {

	u, err := url.Parse(uri)

	if err != nil {
		return "credentials URI"
	}

	u.RawQuery = ""
	return u.String()
}
