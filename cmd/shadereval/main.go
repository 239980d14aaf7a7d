// cmd/shadereval/main.go
package main

import (
	"fmt"
	"log"
	"os"
)

const VERSION = "1.0.0"

// Command aliases mapping, a single-letter shorthand convention.
var commandAliases = map[string]string{
	"f": "fold",
	"s": "serve",
	"c": "cache",
}

func main() {
	args := os.Args[1:]
	if len(args) == 0 {
		showUsage()
		return
	}

	cmd := args[0]
	if alias, ok := commandAliases[cmd]; ok {
		cmd = alias
		args[0] = alias
	}

	if cmd == "--help" || cmd == "-h" || cmd == "help" {
		if len(args) > 1 {
			showCommandHelp(args[1])
		} else {
			showUsage()
		}
		return
	}

	if cmd == "--version" || cmd == "-v" || cmd == "version" {
		fmt.Printf("shadereval %s\n", VERSION)
		return
	}

	switch cmd {
	case "fold":
		if err := FoldCommand(args[1:]); err != nil {
			log.Fatalf("Error: %v", err)
		}
	case "serve":
		if err := ServeCommand(args[1:]); err != nil {
			log.Fatalf("Error: %v", err)
		}
	case "cache":
		if err := CacheCommand(args[1:]); err != nil {
			log.Fatalf("Error: %v", err)
		}
	default:
		fmt.Fprintf(os.Stderr, "shadereval: unknown command %q\n\n", cmd)
		showUsage()
		os.Exit(1)
	}
}

func showUsage() {
	fmt.Println(`shadereval - constant folding for shader-language expressions

Usage:
  shadereval <command> [arguments]

Commands:
  fold <expr>      Fold a single expression and print the result
  serve [addr]     Run the WebSocket fold server (default: 127.0.0.1:8787)
  cache <subcmd>   Inspect or query the fold result cache
  help [command]   Show this message, or help for a specific command
  version          Show the version number

Aliases: f=fold, s=serve, c=cache`)
}

func showCommandHelp(cmd string) {
	switch cmd {
	case "fold", "f":
		fmt.Println(`shadereval fold <expr> [-D name=value ...]

Parses expr as a single shader-language expression and folds it as far as
possible. -D declares a constant binding visible to the fold (repeatable).

Example:
  shadereval fold "uvec2(1, 2) + 3"`)
	case "serve", "s":
		fmt.Println(`shadereval serve [addr]

Starts a WebSocket server on addr (default 127.0.0.1:8787) at path /fold.
Each connection gets its own constant-binding scope; send {"id":"...",
"source":"..."} JSON frames and read back the folded result.`)
	case "cache", "c":
		fmt.Println(`shadereval cache <dialect> <dsn> lookup <expr>

Opens the fold cache at dsn (using dialect: sqlite, postgres, mysql, or
sqlserver) and reports any stored result for expr, if present.`)
	default:
		fmt.Printf("shadereval: no help topic for %q\n", cmd)
	}
}
