package mcp

import (
	"context"

	"go.uber.org/zap"

	"github.com/flowisehq/flowise-mcp/flowise"
	"github.com/flowisehq/flowise-mcp/mcp/config"
	"github.com/flowisehq/flowise-mcp/mcp/filter"
)

// init is the main bootstrap routine invoked by New once all options have
// been applied.  Configuration and filter-compilation errors are fatal here;
// a failed remote listing in dynamic mode is not (the server then starts
// with zero dynamic tools).
func (s *Service) init(ctx context.Context) error {
	if err := s.initDefaults(); err != nil {
		return err
	}

	// Validate configuration early to fail fast before any remote call.
	if err := s.config.Validate(); err != nil {
		return err
	}

	aFilter, err := filter.New(filter.Options{
		WhitelistIDs:  s.config.WhitelistIDs,
		BlacklistIDs:  s.config.BlacklistIDs,
		WhitelistName: s.config.WhitelistNameRegex,
		BlacklistName: s.config.BlacklistNameRegex,
	})
	if err != nil {
		return err
	}
	s.filter = aFilter

	if s.client == nil {
		s.client = flowise.NewClient(s.config.Endpoint, s.config.APIKey,
			flowise.WithTimeout(s.config.Timeout()),
			flowise.WithLogger(s.logger))
	}

	s.logger.Info("flowise endpoint configured",
		zap.String("endpoint", s.config.Endpoint),
		zap.String("apiKey", s.config.RedactedKey()),
		zap.Bool("simpleMode", s.config.SimpleMode))

	if s.config.SimpleMode {
		s.registerStaticTools()
	} else {
		s.registerDynamicTools(ctx)
	}
	return nil
}

// initDefaults applies fall-back values for dependencies that were not
// supplied through options.
func (s *Service) initDefaults() error {
	if s.config == nil {
		s.config = config.FromEnv()
	}
	if s.logger == nil {
		logger, err := newLogger(s.config.Debug)
		if err != nil {
			return err
		}
		s.logger = logger
	}
	return nil
}

func newLogger(debug bool) (*zap.Logger, error) {
	if debug {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}
