// Package tool derives MCP tool names from chatflow records.  Names are
// identifier-safe, deterministic for a fixed listing order and guaranteed to
// be unique even when several chatflows share the same display name.
package tool
