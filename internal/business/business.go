// Package business assembles the gateway from its parts and runs it.
package business

import (
	"context"
	"errors"
	"fmt"

	"github.com/openkcm/common-sdk/pkg/commoncfg"

	slogctx "github.com/veqryn/slog-context"

	"github.com/nordcodes/session-gateway/internal/authority"
	"github.com/nordcodes/session-gateway/internal/business/server"
	"github.com/nordcodes/session-gateway/internal/config"
	"github.com/nordcodes/session-gateway/internal/session"
	sessionmemory "github.com/nordcodes/session-gateway/internal/session/memory"
)

// Main starts the public HTTP API server and blocks until the context is
// cancelled.
func Main(ctx context.Context, cfg *config.Config) error {
	manager, err := initManager(ctx, cfg)
	if err != nil {
		return fmt.Errorf("initialising the session gateway: %w", err)
	}

	return server.StartHTTPServer(ctx, cfg, manager)
}

func initManager(ctx context.Context, cfg *config.Config) (*session.Manager, error) {
	apiKeyBytes, err := commoncfg.LoadValueFromSourceRef(cfg.Gateway.APIKey)
	if err != nil {
		return nil, fmt.Errorf("loading the API key: %w", err)
	}

	apiKey := string(apiKeyBytes)
	if apiKey == "" {
		return nil, errors.New("the API key must not be empty")
	}

	cfg.Gateway.APIKeyParsed = apiKey

	authorityClient, err := authority.NewClient(cfg.Gateway.Authority, nil)
	if err != nil {
		return nil, fmt.Errorf("initialising the authority client: %w", err)
	}

	sessions := sessionmemory.NewRepository(cfg.Gateway.SessionDuration)

	manager, err := session.NewManager(&cfg.Gateway, sessions, authorityClient)
	if err != nil {
		return nil, fmt.Errorf("initialising the session manager: %w", err)
	}

	slogctx.Info(ctx, "Session gateway initialised",
		"authority", cfg.Gateway.Authority.BaseURL,
		"sessionDuration", cfg.Gateway.SessionDuration,
	)

	return manager, nil
}
