package mcp

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/flowisehq/flowise-mcp/internal/conv"
	mcpschema "github.com/viant/mcp-protocol/schema"
	serverproto "github.com/viant/mcp-protocol/server"
)

// Tools returns MCP tool entries for every registered tool.
func (s *Service) Tools() serverproto.Tools {
	s.mu.RLock()
	defer s.mu.RUnlock()
	result := make(serverproto.Tools, 0, len(s.mcpTools))
	for i := range s.mcpTools {
		result = append(result, s.mcpTools[i].proto())
	}
	return result
}

// LookupTool returns the entry registered under the given name.
func (s *Service) LookupTool(name string) (*serverproto.ToolEntry, error) {
	entry, ok := s.toolEntryByName(name)
	if !ok {
		return nil, fmt.Errorf("unknown tool: %v", name)
	}
	return entry.proto(), nil
}

func (e *toolEntry) proto() *serverproto.ToolEntry {
	return &serverproto.ToolEntry{
		Metadata: mcpschema.Tool{
			Name:        e.name,
			Description: conv.Pointer(e.description),
			InputSchema: e.inputSchema,
		},
		Handler: e.handler,
	}
}

// ExecuteTool invokes a registered tool handler directly with the supplied
// arguments.  The CLI uses it to exercise tools without a running server; a
// tool-call failure comes back as an error.
func (s *Service) ExecuteTool(ctx context.Context, name string, args map[string]interface{}) (string, error) {
	entry, ok := s.toolEntryByName(name)
	if !ok {
		return "", fmt.Errorf("unknown tool: %v", name)
	}
	req := &mcpschema.CallToolRequest{
		Params: mcpschema.CallToolRequestParams{
			Name:      name,
			Arguments: mcpschema.CallToolRequestParamsArguments(args),
		},
	}
	res, jErr := entry.handler(ctx, req)
	if jErr != nil {
		return "", errors.New(jErr.Message)
	}
	var parts []string
	for _, elem := range res.Content {
		parts = append(parts, elem.Text)
	}
	text := strings.Join(parts, "\n")
	if conv.Dereference(res.IsError) {
		return "", errors.New(text)
	}
	return text, nil
}
