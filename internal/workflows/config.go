package workflows

import (
	"context"

	"github.com/smallwat3r/shhh/internal/configs"
	kerrors "github.com/smallwat3r/shhh/internal/errors"
)

// InitConfigOptions configures the config init workflow. Nil fields keep
// their default value.
type InitConfigOptions struct {
	Server          *string
	Retries         *int
	BackoffMs       *int
	TimeoutSeconds  *int
	DetachedRetries *bool
	Days            *int
	Tries           *int

	// Force overwrites an existing config file.
	Force bool
}

// InitConfigResult contains the outcome of a config init operation.
type InitConfigResult struct {
	// Path is where the config was written.
	Path string

	// Config is the written configuration.
	Config *configs.Config

	// Overwritten is true when an existing file was replaced.
	Overwritten bool
}

// InitConfig writes a config file built from the defaults and the given overrides.
//
// Returns ErrConfigExists if a config file exists and Force is not set.
// Returns ErrInvalidConfig if an override is out of range.
func InitConfig(ctx context.Context, opts InitConfigOptions) (*InitConfigResult, error) {
	exists := configs.ConfigExists()
	if exists && !opts.Force {
		return nil, kerrors.ErrConfigExists
	}

	config := configs.Default()
	if opts.Server != nil {
		config.Server.URL = *opts.Server
	}
	if opts.Retries != nil {
		config.Server.Retries = *opts.Retries
	}
	if opts.BackoffMs != nil {
		config.Server.BackoffMs = *opts.BackoffMs
	}
	if opts.TimeoutSeconds != nil {
		config.Server.TimeoutSeconds = *opts.TimeoutSeconds
	}
	if opts.DetachedRetries != nil {
		config.Server.DetachedRetries = *opts.DetachedRetries
	}
	if opts.Days != nil {
		config.Secrets.Days = *opts.Days
	}
	if opts.Tries != nil {
		config.Secrets.Tries = *opts.Tries
	}

	if err := configs.SaveConfig(config); err != nil {
		return nil, err
	}

	return &InitConfigResult{
		Path:        configs.ConfigPath(),
		Config:      config,
		Overwritten: exists,
	}, nil
}

// ShowConfigResult contains the effective configuration.
type ShowConfigResult struct {
	// Path is the config file location.
	Path string

	// Exists is false when only defaults and environment overrides apply.
	Exists bool

	// Config is the effective configuration.
	Config *configs.Config
}

// ShowConfig loads the effective configuration.
//
// Returns ErrInvalidConfig if the config file or environment is malformed.
func ShowConfig(ctx context.Context) (*ShowConfigResult, error) {
	config, err := configs.LoadConfig()
	if err != nil {
		return nil, err
	}

	return &ShowConfigResult{
		Path:   configs.ConfigPath(),
		Exists: configs.ConfigExists(),
		Config: config,
	}, nil
}
