// Package config defines the process-wide configuration model sourced from
// FLOWISE_* environment variables and, optionally, a YAML file or URL.  The
// configuration is resolved once at startup, validated fail-fast and treated
// as immutable afterwards.
package config
