package cmd

import (
	"context"
	"encoding/json"
	"os"
	"sync"

	"github.com/flowisehq/flowise-mcp/mcp"
	mcpconfig "github.com/flowisehq/flowise-mcp/mcp/config"
)

var (
	cfgPath string

	svcOnce sync.Once
	svcInst *mcp.Service
	svcErr  error
)

// setConfigPath remembers the CLI-level -f/--config parameter so that the
// service singleton can be created lazily by whichever sub-command is
// executed first.
func setConfigPath(p string) { cfgPath = p }

// serviceSingleton initialises an mcp.Service only once and reuses the
// instance across sub-commands within the same CLI invocation.  Without a
// config file the configuration comes from FLOWISE_* environment variables.
func serviceSingleton() (*mcp.Service, error) {
	svcOnce.Do(func() {
		ctx := context.Background()
		var cfg *mcpconfig.Config
		if cfgPath != "" {
			cfg, svcErr = mcpconfig.Load(ctx, cfgPath)
			if svcErr != nil {
				return
			}
			if os.Getenv("FLOWISE_MCP_DEBUG_CONFIG") == "1" {
				_ = json.NewEncoder(os.Stderr).Encode(cfg)
			}
		}
		svcInst, svcErr = mcp.New(ctx, mcp.WithConfig(cfg))
	})
	return svcInst, svcErr
}
