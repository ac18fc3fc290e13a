package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFromEnv(t *testing.T) {
	t.Setenv(EnvAPIKey, "secret-key-1234")
	t.Setenv(EnvAPIEndpoint, "http://flowise.local:3000/")
	t.Setenv(EnvSimpleMode, "true")
	t.Setenv(EnvChatflowID, "cf-1")
	t.Setenv(EnvDescriptions, "cf-1:Answers support questions, cf-2:Sales assistant")
	t.Setenv(EnvWhitelistIDs, "cf-1, cf-2")
	t.Setenv(EnvBlacklistNameRegex, ".*internal.*")
	t.Setenv(EnvHTTPTimeout, "45")

	cfg := FromEnv()
	assert.NoError(t, cfg.Validate())

	assert.EqualValues(t, "secret-key-1234", cfg.APIKey)
	assert.EqualValues(t, "http://flowise.local:3000", cfg.Endpoint)
	assert.True(t, cfg.SimpleMode)
	assert.EqualValues(t, "cf-1", cfg.PinnedID())
	assert.EqualValues(t, map[string]string{
		"cf-1": "Answers support questions",
		"cf-2": "Sales assistant",
	}, cfg.Descriptions)
	assert.EqualValues(t, []string{"cf-1", "cf-2"}, cfg.WhitelistIDs)
	assert.EqualValues(t, ".*internal.*", cfg.BlacklistNameRegex)
	assert.EqualValues(t, 45, cfg.TimeoutSec)
}

func TestValidateDefaults(t *testing.T) {
	cfg := &Config{APIKey: "key-123456"}
	assert.NoError(t, cfg.Validate())
	assert.EqualValues(t, DefaultEndpoint, cfg.Endpoint)
	assert.EqualValues(t, defaultTimeoutSec, cfg.TimeoutSec)
	assert.False(t, cfg.SimpleMode)
}

func TestValidateMutualExclusion(t *testing.T) {
	cfg := &Config{APIKey: "key-123456", ChatflowID: "cf-1", AssistantID: "as-1"}
	err := cfg.Validate()
	if assert.Error(t, err) {
		assert.Contains(t, err.Error(), "mutually exclusive")
	}
}

func TestValidateMissingAPIKey(t *testing.T) {
	cfg := &Config{}
	err := cfg.Validate()
	if assert.Error(t, err) {
		assert.Contains(t, err.Error(), EnvAPIKey)
	}
}

func TestValidateInvalidDescriptions(t *testing.T) {
	t.Setenv(EnvAPIKey, "key-123456")
	t.Setenv(EnvDescriptions, "cf-1 no separator here")
	cfg := FromEnv()
	assert.Error(t, cfg.Validate())
}

func TestParseDescriptions(t *testing.T) {
	parsed, err := ParseDescriptions("a1:First flow, a2:Second flow")
	assert.NoError(t, err)
	assert.EqualValues(t, map[string]string{"a1": "First flow", "a2": "Second flow"}, parsed)

	_, err = ParseDescriptions("a1First flow")
	assert.Error(t, err)

	_, err = ParseDescriptions("a1:")
	assert.Error(t, err)
}

func TestRedactedKey(t *testing.T) {
	cfg := &Config{APIKey: "abcdefgh"}
	assert.EqualValues(t, "ab****gh", cfg.RedactedKey())

	cfg = &Config{APIKey: "abc"}
	assert.EqualValues(t, "<not set>", cfg.RedactedKey())

	cfg = &Config{}
	assert.EqualValues(t, "<not set>", cfg.RedactedKey())
}
