package main

import (
	"os"

	"github.com/flowisehq/flowise-mcp/cmd"
)

func main() {
	cmd.Run(os.Args[1:])
}
