package flowise

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"
)

const (
	chatflowsPath  = "/api/v1/chatflows"
	predictionPath = "/api/v1/prediction/"

	// DefaultTimeout bounds every remote round-trip.
	DefaultTimeout = 30 * time.Second
)

// Chatflow is one workflow record as returned by the chatflows listing.
// Additional remote fields are tolerated; only ID and Name drive tool
// registration.
type Chatflow struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Category string `json:"category,omitempty"`
	Deployed bool   `json:"deployed,omitempty"`
}

// Client issues authenticated calls against a single Flowise endpoint.  The
// endpoint and bearer token are immutable for the client's lifetime; construct
// instances with NewClient.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	logger     *zap.Logger
}

// ClientOption customises a Client instance.
type ClientOption func(*Client)

// WithHTTPClient overrides the underlying HTTP client.
func WithHTTPClient(httpClient *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// WithTimeout adjusts the per-call timeout of the default HTTP client.
func WithTimeout(timeout time.Duration) ClientOption {
	return func(c *Client) {
		c.httpClient.Timeout = timeout
	}
}

// WithLogger attaches a logger; a no-op logger is used when omitted.
func WithLogger(logger *zap.Logger) ClientOption {
	return func(c *Client) {
		c.logger = logger
	}
}

// NewClient creates a client for the supplied endpoint and API key.
func NewClient(endpoint, apiKey string, opts ...ClientOption) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(endpoint, "/"),
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: DefaultTimeout},
		logger:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ListChatflows fetches all chatflows visible to the configured API key.
func (c *Client) ListChatflows(ctx context.Context) ([]Chatflow, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+chatflowsPath, nil)
	if err != nil {
		return nil, err
	}
	c.authorize(req)
	body, err := c.do(req)
	if err != nil {
		return nil, err
	}
	var flows []Chatflow
	if err := json.Unmarshal(body, &flows); err != nil {
		return nil, &Error{Kind: KindDecode, Message: fmt.Sprintf("malformed chatflows payload: %v", err)}
	}
	c.logger.Debug("fetched chatflows", zap.Int("count", len(flows)))
	return flows, nil
}

// Predict runs the identified chatflow with the supplied question and returns
// the raw response body.  The remote answers either JSON or plain text and the
// payload is relayed verbatim.
func (c *Client) Predict(ctx context.Context, chatflowID, question string) (string, error) {
	payload, err := json.Marshal(map[string]interface{}{
		"chatflowId": chatflowID,
		"question":   question,
		"streaming":  false,
	})
	if err != nil {
		return "", err
	}
	target := c.baseURL + predictionPath + url.PathEscape(chatflowID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, target, bytes.NewReader(payload))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	c.authorize(req)
	body, err := c.do(req)
	if err != nil {
		return "", err
	}
	return string(body), nil
}

func (c *Client) authorize(req *http.Request) {
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}
}

// do executes a request and classifies failures into Error kinds.  There are
// no retries; a failed call surfaces directly to the caller.
func (c *Client) do(req *http.Request) ([]byte, error) {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, classify(err)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, classify(err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.logger.Debug("remote call failed",
			zap.String("path", req.URL.Path),
			zap.Int("status", resp.StatusCode))
		return nil, &Error{
			Kind:       KindStatus,
			StatusCode: resp.StatusCode,
			Message:    strings.TrimSpace(string(body)),
		}
	}
	return body, nil
}

func classify(err error) *Error {
	var netErr net.Error
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return &Error{Kind: KindTimeout, Message: err.Error()}
	case errors.As(err, &netErr) && netErr.Timeout():
		return &Error{Kind: KindTimeout, Message: err.Error()}
	}
	return &Error{Kind: KindNetwork, Message: err.Error()}
}
