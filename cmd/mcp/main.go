// Package mcp implements the `sdlp-bench mcp` subcommand — an MCP (Model
// Context Protocol) server over stdio transport. Agents can spawn this
// process and run the benchmark suite as a tool.
package mcp

import (
	"context"
	"fmt"
	"os"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/sdlp-org/sdlp-sub001/internal/config"
	"github.com/sdlp-org/sdlp-sub001/internal/format"
	"github.com/sdlp-org/sdlp-sub001/internal/runner"
	"github.com/sdlp-org/sdlp-sub001/internal/sdlp"
	"github.com/sdlp-org/sdlp-sub001/pkg/types"
)

// Run starts the MCP stdio server. Blocks until stdin closes or a signal is
// received.
func Run(version string) int {
	s := server.NewMCPServer(
		"sdlp-bench",
		version,
		server.WithToolCapabilities(true),
	)

	benchTool := mcp.NewTool("run_benchmark",
		mcp.WithDescription("Run the full SDLP benchmark suite (creation, verification, compression, capacity) against the built-in reference protocol operations and return the formatted report. Takes a few seconds at default iteration counts."),
		mcp.WithString("format",
			mcp.Description("Output format: table, json, or csv (default: json)"),
		),
		mcp.WithNumber("iterations",
			mcp.Description("Iterations per timed scenario, 1-10000 (default: 100)"),
		),
	)
	s.AddTool(benchTool, handleRunBenchmark)

	if err := server.ServeStdio(s); err != nil {
		fmt.Fprintf(os.Stderr, "sdlp-bench mcp: error: %v\n", err)
		return 1
	}
	return 0
}

func handleRunBenchmark(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	outputFormat := req.GetString("format", "json")
	iterations := req.GetInt("iterations", 100)
	if iterations < 1 || iterations > 10000 {
		return mcp.NewToolResultError(fmt.Sprintf("iterations must be 1-10000, got %d", iterations)), nil
	}

	cfg := config.DefaultConfig()
	cfg.CreationIterations = iterations
	cfg.VerificationIterations = iterations
	cfg.CompressionIterations = iterations
	cfg.Format = types.OutputFormat(outputFormat)
	if err := cfg.Validate(); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Invalid benchmark config: %v", err)), nil
	}

	ops, err := sdlp.NewReferenceOps()
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Init protocol operations failed: %v", err)), nil
	}

	suite, err := runner.New(ops, cfg).Run(ctx)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Benchmark run failed: %v", err)), nil
	}

	out, err := format.Render(suite, cfg.Format)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Render failed: %v", err)), nil
	}
	return mcp.NewToolResultText(out), nil
}
