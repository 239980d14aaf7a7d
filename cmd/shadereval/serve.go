package main

import (
	"shadereval/internal/foldserver"
)

// ServeCommand starts the WebSocket fold server. args[0], if present, is
// the listen address; it defaults to 127.0.0.1:8787.
func ServeCommand(args []string) error {
	addr := "127.0.0.1:8787"
	if len(args) > 0 {
		addr = args[0]
	}
	return foldserver.New(addr).Serve()
}
