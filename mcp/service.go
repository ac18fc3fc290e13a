package mcp

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/flowisehq/flowise-mcp/flowise"
	"github.com/flowisehq/flowise-mcp/internal/syncmap"
	"github.com/flowisehq/flowise-mcp/mcp/config"
	"github.com/flowisehq/flowise-mcp/mcp/filter"
)

// Service bundles configuration, the Flowise client and the MCP tool
// registry.  All heavy lifting during instantiation lives in bootstrap.go to
// keep this file focused on the public surface.
type Service struct {
	config *config.Config
	client *flowise.Client
	filter *filter.Filter
	logger *zap.Logger

	// guard concurrent access to the cached tool definitions.
	mu sync.RWMutex
	// MCP tool definitions built during bootstrap.
	mcpTools []toolEntry

	// bindings maps dynamic tool names to their bound chatflow IDs; read-only
	// after bootstrap.
	bindings *syncmap.Map[string]
}

// Option modifies a service instance before it is initialised.
type Option func(*Service)

// WithConfig sets a custom configuration instance.  When omitted the
// configuration is resolved from environment variables.
func WithConfig(cfg *config.Config) Option {
	return func(s *Service) {
		s.config = cfg
	}
}

// WithClient overrides the Flowise client; tests use this to point the
// service at a fake endpoint.
func WithClient(client *flowise.Client) Option {
	return func(s *Service) {
		s.client = client
	}
}

// WithLogger sets a custom logger.
func WithLogger(logger *zap.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

// New constructs a service instance.  The actual bootstrap is handled by
// init() in bootstrap.go so that callers do not need to care about the
// internal initialisation sequence.
func New(ctx context.Context, opts ...Option) (*Service, error) {
	svc := &Service{bindings: syncmap.New[string]()}
	for _, opt := range opts {
		opt(svc)
	}
	if err := svc.init(ctx); err != nil {
		return nil, err
	}
	return svc, nil
}

// Config returns the effective configuration.  Callers must treat the
// returned object as read-only.
func (s *Service) Config() *config.Config { return s.config }

// Client returns the underlying Flowise client.
func (s *Service) Client() *flowise.Client { return s.client }

// Chatflows returns the remote listing after whitelist/blacklist filtering,
// preserving the remote order.
func (s *Service) Chatflows(ctx context.Context) ([]flowise.Chatflow, error) {
	flows, err := s.client.ListChatflows(ctx)
	if err != nil {
		return nil, err
	}
	return s.filter.Apply(flows), nil
}

// Predict runs one chatflow with the supplied question and returns the raw
// prediction payload.
func (s *Service) Predict(ctx context.Context, chatflowID, question string) (string, error) {
	return s.client.Predict(ctx, chatflowID, question)
}

// ToolNames returns all registered MCP tool names.  The slice is a copy and
// therefore safe for callers to modify.
func (s *Service) ToolNames() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	names := make([]string, len(s.mcpTools))
	for i, e := range s.mcpTools {
		names[i] = e.name
	}
	return names
}

// ToolMetadata returns description and input schema for a named tool when
// present.  The third return value is false when the tool does not exist.
func (s *Service) ToolMetadata(name string) (string, interface{}, bool) {
	e, ok := s.toolEntryByName(name)
	if !ok {
		return "", nil, false
	}
	return e.description, e.inputSchema, true
}

func (s *Service) toolEntryByName(name string) (*toolEntry, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for i := range s.mcpTools {
		if s.mcpTools[i].name == name {
			return &s.mcpTools[i], true
		}
	}
	return nil, false
}
