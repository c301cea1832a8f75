package main

import (
	"fmt"
	"os"
	"strings"

	bench "github.com/sdlp-org/sdlp-sub001/cmd/bench"
	mcpcmd "github.com/sdlp-org/sdlp-sub001/cmd/mcp"
)

var version = "dev"

func main() {
	args := os.Args[1:]
	if len(args) == 0 {
		os.Exit(bench.Run(nil, version))
	}

	switch args[0] {
	case "run":
		os.Exit(bench.Run(args[1:], version))
	case "mcp":
		os.Exit(mcpcmd.Run(version))
	case "help", "-h", "--help":
		printUsage()
		return
	case "version", "--version":
		fmt.Printf("sdlp-bench %s\n", version)
		return
	default:
		if strings.HasPrefix(args[0], "-") {
			os.Exit(bench.Run(args, version))
		}
		fmt.Fprintf(os.Stderr, "sdlp-bench: unknown command %q\n\n", args[0])
		printUsage()
		os.Exit(2)
	}
}

func printUsage() {
	fmt.Fprintf(os.Stdout, `Usage: sdlp-bench <command> [args]

Commands:
  run       Run the benchmark suite (default when no command provided)
  mcp       Run as MCP server (stdio transport, for AI agents)

Examples:
  sdlp-bench run -format table
  sdlp-bench run -format json -iterations 500 -warmup 10
  sdlp-bench run -monitor 127.0.0.1:9090
  sdlp-bench mcp
`)
}
