// Package mcp wires the Flowise REST client into the MCP protocol
// implementation.  Its central Service type resolves configuration, builds
// the remote client and the chatflow filter, registers tools in either the
// static two-tool mode or the dynamic one-tool-per-chatflow mode and can
// expose them over an MCP server.
package mcp
