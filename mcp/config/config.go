package config

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/viant/afs"
	"gopkg.in/yaml.v3"

	mcp "github.com/viant/mcp"
)

// Environment variables consumed by FromEnv/ApplyEnv.  Names match the
// original Flowise adapter so that existing deployments keep working.
const (
	EnvAPIKey             = "FLOWISE_API_KEY"
	EnvAPIEndpoint        = "FLOWISE_API_ENDPOINT"
	EnvSimpleMode         = "FLOWISE_SIMPLE_MODE"
	EnvChatflowID         = "FLOWISE_CHATFLOW_ID"
	EnvAssistantID        = "FLOWISE_ASSISTANT_ID"
	EnvDescriptions       = "FLOWISE_CHATFLOW_DESCRIPTIONS"
	EnvWhitelistIDs       = "FLOWISE_WHITELIST_ID"
	EnvBlacklistIDs       = "FLOWISE_BLACKLIST_ID"
	EnvWhitelistNameRegex = "FLOWISE_WHITELIST_NAME_REGEX"
	EnvBlacklistNameRegex = "FLOWISE_BLACKLIST_NAME_REGEX"
	EnvHTTPTimeout        = "FLOWISE_HTTP_TIMEOUT"
	EnvDebug              = "DEBUG"
)

// DefaultEndpoint is assumed when FLOWISE_API_ENDPOINT is unset.
const DefaultEndpoint = "http://localhost:3000"

const defaultTimeoutSec = 30

// Config is the process-wide configuration, constructed once at startup and
// passed explicitly to every component that needs it.  Callers must treat it
// as read-only after Validate.
type Config struct {
	Server *mcp.ServerOptions `yaml:"server,omitempty" json:"server,omitempty"`

	Endpoint    string `yaml:"endpoint,omitempty" json:"endpoint,omitempty"`
	APIKey      string `yaml:"apiKey,omitempty" json:"apiKey,omitempty"`
	SimpleMode  bool   `yaml:"simpleMode,omitempty" json:"simpleMode,omitempty"`
	ChatflowID  string `yaml:"chatflowId,omitempty" json:"chatflowId,omitempty"`
	AssistantID string `yaml:"assistantId,omitempty" json:"assistantId,omitempty"`

	// Descriptions overrides tool descriptions per chatflow ID in dynamic mode.
	Descriptions map[string]string `yaml:"descriptions,omitempty" json:"descriptions,omitempty"`

	WhitelistIDs       []string `yaml:"whitelistIds,omitempty" json:"whitelistIds,omitempty"`
	BlacklistIDs       []string `yaml:"blacklistIds,omitempty" json:"blacklistIds,omitempty"`
	WhitelistNameRegex string   `yaml:"whitelistNameRegex,omitempty" json:"whitelistNameRegex,omitempty"`
	BlacklistNameRegex string   `yaml:"blacklistNameRegex,omitempty" json:"blacklistNameRegex,omitempty"`

	TimeoutSec int  `yaml:"timeoutSec,omitempty" json:"timeoutSec,omitempty"`
	Debug      bool `yaml:"debug,omitempty" json:"debug,omitempty"`

	// raw FLOWISE_CHATFLOW_DESCRIPTIONS value, parsed during Validate.
	descriptionsSpec string
}

// Load reads a YAML configuration from a local path or URL (file, http, s3,
// gs – any scheme supported by afs) and overlays environment variables on
// top.
func Load(ctx context.Context, URL string) (*Config, error) {
	fs := afs.New()
	data, err := fs.DownloadWithURL(ctx, URL)
	if err != nil {
		return nil, fmt.Errorf("failed to read config %q: %w", URL, err)
	}
	cfg := &Config{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %q: %w", URL, err)
	}
	cfg.ApplyEnv()
	return cfg, nil
}

// FromEnv builds a configuration from environment variables only.
func FromEnv() *Config {
	cfg := &Config{}
	cfg.ApplyEnv()
	return cfg
}

// ApplyEnv overlays environment variables onto the receiver; a set variable
// wins over a file-provided value.
func (c *Config) ApplyEnv() {
	if v := os.Getenv(EnvAPIKey); v != "" {
		c.APIKey = v
	}
	if v := os.Getenv(EnvAPIEndpoint); v != "" {
		c.Endpoint = v
	}
	if v := os.Getenv(EnvSimpleMode); v != "" {
		c.SimpleMode = isTruthy(v)
	}
	if v := os.Getenv(EnvChatflowID); v != "" {
		c.ChatflowID = v
	}
	if v := os.Getenv(EnvAssistantID); v != "" {
		c.AssistantID = v
	}
	if v := os.Getenv(EnvDescriptions); v != "" {
		c.descriptionsSpec = v
	}
	if v := os.Getenv(EnvWhitelistIDs); v != "" {
		c.WhitelistIDs = splitCSV(v)
	}
	if v := os.Getenv(EnvBlacklistIDs); v != "" {
		c.BlacklistIDs = splitCSV(v)
	}
	if v := os.Getenv(EnvWhitelistNameRegex); v != "" {
		c.WhitelistNameRegex = v
	}
	if v := os.Getenv(EnvBlacklistNameRegex); v != "" {
		c.BlacklistNameRegex = v
	}
	if v := os.Getenv(EnvHTTPTimeout); v != "" {
		if sec, err := strconv.Atoi(v); err == nil && sec > 0 {
			c.TimeoutSec = sec
		}
	}
	if v := os.Getenv(EnvDebug); v != "" {
		c.Debug = isTruthy(v)
	}
}

// Validate enforces startup invariants and finalises derived fields.  It must
// be called once before the configuration is used; any error is fatal.
func (c *Config) Validate() error {
	if c.Endpoint == "" {
		c.Endpoint = DefaultEndpoint
	}
	c.Endpoint = strings.TrimRight(c.Endpoint, "/")
	if c.APIKey == "" {
		return fmt.Errorf("%s is required", EnvAPIKey)
	}
	if c.ChatflowID != "" && c.AssistantID != "" {
		return fmt.Errorf("%s and %s are mutually exclusive; set only one", EnvChatflowID, EnvAssistantID)
	}
	if c.TimeoutSec <= 0 {
		c.TimeoutSec = defaultTimeoutSec
	}
	if c.descriptionsSpec != "" {
		parsed, err := ParseDescriptions(c.descriptionsSpec)
		if err != nil {
			return err
		}
		if c.Descriptions == nil {
			c.Descriptions = make(map[string]string, len(parsed))
		}
		for id, description := range parsed {
			c.Descriptions[id] = description
		}
	}
	return nil
}

// PinnedID returns the single pre-configured identifier, if any.  Validate
// guarantees that at most one of the two is set.
func (c *Config) PinnedID() string {
	if c.ChatflowID != "" {
		return c.ChatflowID
	}
	return c.AssistantID
}

// Timeout returns the remote call timeout as a duration.
func (c *Config) Timeout() time.Duration {
	sec := c.TimeoutSec
	if sec <= 0 {
		sec = defaultTimeoutSec
	}
	return time.Duration(sec) * time.Second
}

// RedactedKey returns the API key in a form safe for log output.
func (c *Config) RedactedKey() string {
	key := c.APIKey
	if len(key) <= 4 {
		return "<not set>"
	}
	return key[:2] + strings.Repeat("*", len(key)-4) + key[len(key)-2:]
}

// ParseDescriptions parses the comma-separated "id:description" pairs used by
// FLOWISE_CHATFLOW_DESCRIPTIONS.
func ParseDescriptions(spec string) (map[string]string, error) {
	out := make(map[string]string)
	for _, pair := range strings.Split(spec, ",") {
		pair = strings.TrimSpace(pair)
		if pair == "" {
			continue
		}
		idx := strings.Index(pair, ":")
		if idx <= 0 || idx == len(pair)-1 {
			return nil, fmt.Errorf("invalid chatflow description pair %q, expected id:description", pair)
		}
		id := strings.TrimSpace(pair[:idx])
		description := strings.TrimSpace(pair[idx+1:])
		out[id] = description
	}
	return out, nil
}

func splitCSV(value string) []string {
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func isTruthy(value string) bool {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "true", "1", "yes":
		return true
	}
	return false
}
