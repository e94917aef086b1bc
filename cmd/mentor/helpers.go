package main

import (
	"fmt"

	"github.com/jonathan/career-mentor/internal/api"
	"github.com/jonathan/career-mentor/internal/auth"
	"github.com/jonathan/career-mentor/internal/config"
)

// loadCLIConfig merges the optional config file with root-level flags.
// Flags win over the file; the file wins over environment defaults.
func loadCLIConfig() (*config.Config, error) {
	cfg := config.Config{BaseURL: apiURL, Verbose: verbose}
	if configPath != "" {
		loaded, err := config.LoadConfig(configPath)
		if err != nil {
			return nil, err
		}
		cfg = cfg.MergeWithDefaults(*loaded)
		// MergeWithDefaults leaves bools alone; the file can only turn them on.
		cfg.UseBrowser = cfg.UseBrowser || loaded.UseBrowser
		cfg.Verbose = cfg.Verbose || loaded.Verbose
	}
	return &cfg, nil
}

// sessionStore resolves where the login session lives.
func sessionStore(cfg *config.Config) (*auth.Store, error) {
	path, err := cfg.ResolveSessionPath()
	if err != nil {
		return nil, fmt.Errorf("failed to resolve session path: %w", err)
	}
	return auth.NewStore(path), nil
}

// newGateway builds the backend gateway, attaching the bearer token when one
// is available.
func newGateway(cfg *config.Config, token string) *api.Gateway {
	return api.NewGateway(cfg.ResolveBaseURL(), &api.Options{
		Timeout: api.DefaultTimeout,
		Token:   token,
	})
}

// requireGateway loads the config, enforces a valid login session, and
// returns a gateway that sends the session's token.
func requireGateway() (*config.Config, *auth.Session, *api.Gateway, error) {
	cfg, err := loadCLIConfig()
	if err != nil {
		return nil, nil, nil, err
	}
	store, err := sessionStore(cfg)
	if err != nil {
		return nil, nil, nil, err
	}
	session, err := store.Require()
	if err != nil {
		return nil, nil, nil, err
	}
	return cfg, session, newGateway(cfg, session.Token), nil
}
