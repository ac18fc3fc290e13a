package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"

	"github.com/flowisehq/flowise-mcp/internal/conv"
	"github.com/flowisehq/flowise-mcp/mcp/tool"
	"github.com/viant/jsonrpc"
	mcpschema "github.com/viant/mcp-protocol/schema"
)

// Static tool names exposed in simple mode.
const (
	listChatflowsTool    = "list_chatflows"
	createPredictionTool = "create_prediction"
)

// toolEntry holds metadata and the execution handler for one MCP tool.
type toolEntry struct {
	name        string
	description string
	inputSchema mcpschema.ToolInputSchema
	handler     func(context.Context, *mcpschema.CallToolRequest) (*mcpschema.CallToolResult, *jsonrpc.Error)
}

// predictionInput models create_prediction arguments.
type predictionInput struct {
	ChatflowID string `json:"chatflow_id,omitempty"`
	Question   string `json:"question"`
}

// questionInput models the single argument of dynamically registered tools.
type questionInput struct {
	Question string `json:"question"`
}

// addToolEntries appends entries, skipping duplicates so that every
// registration path behaves consistently.
func (s *Service) addToolEntries(entries []toolEntry) {
	if len(entries) == 0 {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	existing := make(map[string]struct{}, len(s.mcpTools))
	for _, e := range s.mcpTools {
		existing[e.name] = struct{}{}
	}
	for _, e := range entries {
		if _, dup := existing[e.name]; dup {
			continue // keep first definition encountered
		}
		s.mcpTools = append(s.mcpTools, e)
		existing[e.name] = struct{}{}
	}
}

// registerStaticTools exposes the two-tool simple surface: list_chatflows and
// create_prediction.
func (s *Service) registerStaticTools() {
	pinned := s.config.PinnedID()
	s.addToolEntries([]toolEntry{
		{
			name:        listChatflowsTool,
			description: "List chatflows available on the configured Flowise endpoint",
			inputSchema: mcpschema.ToolInputSchema{
				Type:       "object",
				Properties: map[string]map[string]interface{}{},
			},
			handler: s.handleListChatflows,
		},
		{
			name:        createPredictionTool,
			description: "Send a question to a Flowise chatflow and return its prediction",
			inputSchema: predictionSchema(pinned != ""),
			handler:     s.handleCreatePrediction,
		},
	})
	s.logger.Info("registered static tools",
		zap.Strings("tools", []string{listChatflowsTool, createPredictionTool}),
		zap.String("pinned", pinned))
}

// registerDynamicTools fetches the remote listing, applies the configured
// filters and registers one prediction tool per surviving chatflow.  A failed
// listing is not fatal: the server starts with zero dynamic tools.
func (s *Service) registerDynamicTools(ctx context.Context) {
	flows, err := s.client.ListChatflows(ctx)
	if err != nil {
		s.logger.Error("failed to fetch chatflows, no dynamic tools registered", zap.Error(err))
		return
	}
	flows = s.filter.Apply(flows)
	if len(flows) == 0 {
		s.logger.Warn("no chatflows left after filtering, no dynamic tools registered")
		return
	}

	names := tool.Derive(flows)
	entries := make([]toolEntry, 0, len(flows))
	for i, flow := range flows {
		description := s.config.Descriptions[flow.ID]
		if description == "" {
			description = flow.Name
		}
		s.bindings.Set(names[i], flow.ID)
		entries = append(entries, toolEntry{
			name:        names[i],
			description: description,
			inputSchema: questionSchema(),
			handler:     s.dynamicHandler(names[i]),
		})
	}
	s.addToolEntries(entries)
	s.logger.Info("registered dynamic chatflow tools", zap.Int("count", len(entries)))
}

func (s *Service) handleListChatflows(ctx context.Context, _ *mcpschema.CallToolRequest) (*mcpschema.CallToolResult, *jsonrpc.Error) {
	flows, err := s.Chatflows(ctx)
	if err != nil {
		return errorResult(err), nil
	}
	type item struct {
		ID   string `json:"id"`
		Name string `json:"name"`
	}
	items := make([]item, 0, len(flows))
	for _, flow := range flows {
		items = append(items, item{ID: flow.ID, Name: flow.Name})
	}
	data, err := json.Marshal(items)
	if err != nil {
		return nil, jsonrpc.NewError(jsonrpc.InternalError, err.Error(), nil)
	}
	return textResult(string(data)), nil
}

func (s *Service) handleCreatePrediction(ctx context.Context, req *mcpschema.CallToolRequest) (*mcpschema.CallToolResult, *jsonrpc.Error) {
	var input predictionInput
	if err := conv.Convert(req.Params.Arguments, &input); err != nil {
		return nil, jsonrpc.NewError(jsonrpc.InvalidParams, err.Error(), nil)
	}
	if input.Question == "" {
		return errorResult(fmt.Errorf("missing %q argument", "question")), nil
	}
	chatflowID := input.ChatflowID
	if chatflowID == "" {
		chatflowID = s.config.PinnedID()
	}
	if chatflowID == "" {
		return errorResult(fmt.Errorf("chatflow_id is required: no chatflow or assistant is pre-configured")), nil
	}
	answer, err := s.client.Predict(ctx, chatflowID, input.Question)
	if err != nil {
		s.logger.Warn("prediction failed", zap.String("chatflow", chatflowID), zap.Error(err))
		return errorResult(err), nil
	}
	return textResult(answer), nil
}

// dynamicHandler resolves the bound chatflow ID at call time through the
// binding registry rather than closing over it directly.
func (s *Service) dynamicHandler(toolName string) func(context.Context, *mcpschema.CallToolRequest) (*mcpschema.CallToolResult, *jsonrpc.Error) {
	return func(ctx context.Context, req *mcpschema.CallToolRequest) (*mcpschema.CallToolResult, *jsonrpc.Error) {
		var input questionInput
		if err := conv.Convert(req.Params.Arguments, &input); err != nil {
			return nil, jsonrpc.NewError(jsonrpc.InvalidParams, err.Error(), nil)
		}
		if input.Question == "" {
			return errorResult(fmt.Errorf("missing %q argument", "question")), nil
		}
		chatflowID, ok := s.bindings.Get(toolName)
		if !ok {
			return nil, jsonrpc.NewError(jsonrpc.InternalError, fmt.Sprintf("no chatflow bound to tool %q", toolName), nil)
		}
		answer, err := s.client.Predict(ctx, chatflowID, input.Question)
		if err != nil {
			s.logger.Warn("prediction failed",
				zap.String("tool", toolName),
				zap.String("chatflow", chatflowID),
				zap.Error(err))
			return errorResult(err), nil
		}
		return textResult(answer), nil
	}
}

func predictionSchema(pinned bool) mcpschema.ToolInputSchema {
	schema := mcpschema.ToolInputSchema{
		Type: "object",
		Properties: map[string]map[string]interface{}{
			"chatflow_id": {
				"type":        "string",
				"description": "Chatflow to run; defaults to the pre-configured one",
			},
			"question": {
				"type":        "string",
				"description": "Question or prompt to send",
			},
		},
		Required: []string{"question"},
	}
	if !pinned {
		schema.Required = append([]string{"chatflow_id"}, schema.Required...)
	}
	return schema
}

func questionSchema() mcpschema.ToolInputSchema {
	return mcpschema.ToolInputSchema{
		Type: "object",
		Properties: map[string]map[string]interface{}{
			"question": {
				"type":        "string",
				"description": "Question or prompt to send to the chatflow",
			},
		},
		Required: []string{"question"},
	}
}

func textResult(text string) *mcpschema.CallToolResult {
	return &mcpschema.CallToolResult{Content: []mcpschema.CallToolResultContentElem{{
		Type: "text",
		Text: text,
	}}}
}

// errorResult surfaces a remote failure as a failed tool call so that the
// request loop keeps serving.
func errorResult(err error) *mcpschema.CallToolResult {
	return &mcpschema.CallToolResult{
		IsError: conv.Pointer(true),
		Content: []mcpschema.CallToolResultContentElem{{
			Type: "text",
			Text: err.Error(),
		}},
	}
}
