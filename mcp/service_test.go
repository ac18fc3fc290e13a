package mcp

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"github.com/flowisehq/flowise-mcp/mcp/config"
)

const listingPayload = `[{"id":"a1","name":"Support Bot"},{"id":"a2","name":"Support Bot"}]`

// fakeFlowise serves a canned chatflow listing and echoes the chatflow ID on
// prediction calls.
func fakeFlowise(listing string) *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.URL.Path == "/api/v1/chatflows":
			_, _ = w.Write([]byte(listing))
		case strings.HasPrefix(r.URL.Path, "/api/v1/prediction/"):
			id := strings.TrimPrefix(r.URL.Path, "/api/v1/prediction/")
			_, _ = w.Write([]byte("answer from " + id))
		default:
			http.NotFound(w, r)
		}
	}))
}

func newService(t *testing.T, cfg *config.Config) *Service {
	t.Helper()
	svc, err := New(context.Background(), WithConfig(cfg), WithLogger(zap.NewNop()))
	if err != nil {
		t.Fatalf("failed to create service: %v", err)
	}
	return svc
}

func TestNewMutuallyExclusiveIDs(t *testing.T) {
	cfg := &config.Config{APIKey: "test-key-123", ChatflowID: "cf-1", AssistantID: "as-1"}
	_, err := New(context.Background(), WithConfig(cfg), WithLogger(zap.NewNop()))
	if assert.Error(t, err) {
		assert.Contains(t, err.Error(), "mutually exclusive")
	}
}

func TestNewInvalidFilterPattern(t *testing.T) {
	cfg := &config.Config{APIKey: "test-key-123", WhitelistNameRegex: "("}
	_, err := New(context.Background(), WithConfig(cfg), WithLogger(zap.NewNop()))
	assert.Error(t, err)
}

func TestSimpleModeTools(t *testing.T) {
	server := fakeFlowise(listingPayload)
	defer server.Close()

	svc := newService(t, &config.Config{
		APIKey:     "test-key-123",
		Endpoint:   server.URL,
		SimpleMode: true,
		ChatflowID: "cf-1",
	})

	assert.EqualValues(t, []string{"list_chatflows", "create_prediction"}, svc.ToolNames())

	ctx := context.Background()

	// Pinned chatflow is used when no explicit argument is supplied.
	out, err := svc.ExecuteTool(ctx, "create_prediction", map[string]interface{}{"question": "hi"})
	assert.NoError(t, err)
	assert.EqualValues(t, "answer from cf-1", out)

	// An explicit argument overrides the pinned default.
	out, err = svc.ExecuteTool(ctx, "create_prediction", map[string]interface{}{
		"chatflow_id": "cf-9",
		"question":    "hi",
	})
	assert.NoError(t, err)
	assert.EqualValues(t, "answer from cf-9", out)

	// list_chatflows relays the remote listing as JSON.
	out, err = svc.ExecuteTool(ctx, "list_chatflows", nil)
	assert.NoError(t, err)
	assert.Contains(t, out, `"id":"a1"`)
	assert.Contains(t, out, `"id":"a2"`)
}

func TestCreatePredictionMissingArguments(t *testing.T) {
	server := fakeFlowise(listingPayload)
	defer server.Close()

	svc := newService(t, &config.Config{
		APIKey:     "test-key-123",
		Endpoint:   server.URL,
		SimpleMode: true,
	})

	ctx := context.Background()

	_, err := svc.ExecuteTool(ctx, "create_prediction", map[string]interface{}{"chatflow_id": "cf-1"})
	if assert.Error(t, err) {
		assert.Contains(t, err.Error(), "question")
	}

	// Without a pinned ID the chatflow argument is required.
	_, err = svc.ExecuteTool(ctx, "create_prediction", map[string]interface{}{"question": "hi"})
	if assert.Error(t, err) {
		assert.Contains(t, err.Error(), "chatflow_id")
	}
}

func TestCreatePredictionRemoteFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/api/v1/chatflows" {
			_, _ = w.Write([]byte(listingPayload))
			return
		}
		http.Error(w, "chatflow exploded", http.StatusInternalServerError)
	}))
	defer server.Close()

	svc := newService(t, &config.Config{
		APIKey:     "test-key-123",
		Endpoint:   server.URL,
		SimpleMode: true,
		ChatflowID: "cf-1",
	})

	ctx := context.Background()

	// The remote failure becomes a failed tool call carrying the detail.
	_, err := svc.ExecuteTool(ctx, "create_prediction", map[string]interface{}{"question": "hi"})
	if assert.Error(t, err) {
		assert.Contains(t, err.Error(), "500")
		assert.Contains(t, err.Error(), "chatflow exploded")
	}

	// The service keeps serving subsequent requests.
	out, err := svc.ExecuteTool(ctx, "list_chatflows", nil)
	assert.NoError(t, err)
	assert.Contains(t, out, `"id":"a1"`)
}

func TestDynamicModeRegistersTools(t *testing.T) {
	server := fakeFlowise(listingPayload)
	defer server.Close()

	svc := newService(t, &config.Config{
		APIKey:       "test-key-123",
		Endpoint:     server.URL,
		Descriptions: map[string]string{"a1": "Answers support questions"},
	})

	names := svc.ToolNames()
	assert.EqualValues(t, []string{"support_bot", "support_bot_a2"}, names)

	// Description comes from configuration when present, else the name.
	description, _, ok := svc.ToolMetadata("support_bot")
	assert.True(t, ok)
	assert.EqualValues(t, "Answers support questions", description)

	description, _, ok = svc.ToolMetadata("support_bot_a2")
	assert.True(t, ok)
	assert.EqualValues(t, "Support Bot", description)

	// Each tool forwards to its bound chatflow.
	ctx := context.Background()
	out, err := svc.ExecuteTool(ctx, "support_bot", map[string]interface{}{"question": "hi"})
	assert.NoError(t, err)
	assert.EqualValues(t, "answer from a1", out)

	out, err = svc.ExecuteTool(ctx, "support_bot_a2", map[string]interface{}{"question": "hi"})
	assert.NoError(t, err)
	assert.EqualValues(t, "answer from a2", out)

	// Missing question argument fails the call without touching the remote.
	_, err = svc.ExecuteTool(ctx, "support_bot", nil)
	assert.Error(t, err)
}

func TestDynamicModeWhitelist(t *testing.T) {
	server := fakeFlowise(listingPayload)
	defer server.Close()

	svc := newService(t, &config.Config{
		APIKey:       "test-key-123",
		Endpoint:     server.URL,
		WhitelistIDs: []string{"a1"},
	})

	assert.EqualValues(t, []string{"support_bot"}, svc.ToolNames())
}

func TestDynamicModeAllFilteredOut(t *testing.T) {
	server := fakeFlowise(listingPayload)
	defer server.Close()

	svc := newService(t, &config.Config{
		APIKey:       "test-key-123",
		Endpoint:     server.URL,
		BlacklistIDs: []string{"a1", "a2"},
	})

	// Zero dynamic tools is not fatal; the service still reaches serving state.
	assert.Empty(t, svc.ToolNames())
	assert.Empty(t, svc.Tools())
}

func TestDynamicModeListingFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "listing unavailable", http.StatusInternalServerError)
	}))
	defer server.Close()

	svc := newService(t, &config.Config{
		APIKey:   "test-key-123",
		Endpoint: server.URL,
	})

	assert.Empty(t, svc.ToolNames())
}

func TestLookupTool(t *testing.T) {
	server := fakeFlowise(listingPayload)
	defer server.Close()

	svc := newService(t, &config.Config{
		APIKey:   "test-key-123",
		Endpoint: server.URL,
	})

	entry, err := svc.LookupTool("support_bot")
	if assert.NoError(t, err) {
		assert.EqualValues(t, "support_bot", entry.Metadata.Name)
		assert.Contains(t, entry.Metadata.InputSchema.Required, "question")
	}

	_, err = svc.LookupTool("no_such_tool")
	assert.Error(t, err)
}
