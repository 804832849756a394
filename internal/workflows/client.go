package workflows

import (
	"context"
	"fmt"
	"net/http"

	"github.com/smallwat3r/shhh/internal/api"
	"github.com/smallwat3r/shhh/internal/configs"
	logger "github.com/smallwat3r/shhh/internal/logging"
	"github.com/smallwat3r/shhh/internal/requester"
)

// session bundles what one action needs to talk to the server.
type session struct {
	config    *configs.Config
	client    *api.Client
	requester *requester.Requester
}

// newSession loads the configuration, applies the server override and builds
// an API client with the configured retry behavior.
func newSession(server string, log requester.Logger, doer requester.Doer) (*session, error) {
	config, err := configs.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	if server != "" {
		config.Server.URL = server
		if err := config.Validate(); err != nil {
			return nil, err
		}
	}

	if log == nil {
		log = logger.Logger{}
	}
	if doer == nil {
		doer = http.DefaultClient
	}

	opts := []requester.Option{
		requester.WithClient(doer),
		requester.WithLogger(log),
	}
	if config.Server.DetachedRetries {
		opts = append(opts, requester.WithDetachedRetries())
	}

	r := requester.New(opts...)
	return &session{
		config:    config,
		client:    api.NewClient(config.Server.URL, r, config.Policy()),
		requester: r,
	}, nil
}

// withTimeout bounds the action by the configured timeout.
func (s *session) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, s.config.Timeout())
}
