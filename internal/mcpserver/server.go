// Package mcpserver exposes the adapter over the Model Context Protocol
// so coding agents can query and run the project's flake8 configuration.
package mcpserver

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/flake518/flake518/internal/adapter"
	"github.com/flake518/flake518/internal/flake8"
	"github.com/flake518/flake518/internal/iniconv"
	"github.com/flake518/flake518/internal/pyproject"
)

// Server is a MCP (Model Context Protocol) server.
// It communicates via JSON-RPC over stdio.
type Server struct {
	version string
}

// NewServer creates a new MCP server instance.
func NewServer(version string) *Server {
	return &Server{version: version}
}

// ShowConfigInput represents the input schema for the show_config tool.
type ShowConfigInput struct {
	Dir string `json:"dir,omitempty" jsonschema:"Directory to start the pyproject.toml search from (optional, defaults to the current working directory)"`
}

// RunFlake8Input represents the input schema for the run_flake8 tool.
type RunFlake8Input struct {
	Args []string `json:"args,omitempty" jsonschema:"Arguments passed to flake8, e.g. file paths or options like --select. The project's pyproject.toml configuration is injected automatically."`
}

// Start runs the MCP server over stdio until the client disconnects.
func (s *Server) Start(ctx context.Context) error {
	fmt.Fprintln(os.Stderr, "flake518 MCP server started (stdio mode)")
	fmt.Fprintln(os.Stderr, "Available tools: show_config, run_flake8")

	server := sdkmcp.NewServer(&sdkmcp.Implementation{
		Name:    "flake518",
		Version: s.version,
	}, nil)

	// Tool: show_config
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "show_config",
		Description: "Show the flake8 configuration resolved from the project's pyproject.toml ([tool.flake8] and [tool.flake518] merged), rendered in the INI format flake8 consumes.",
	}, func(ctx context.Context, req *sdkmcp.CallToolRequest, input ShowConfigInput) (*sdkmcp.CallToolResult, map[string]any, error) {
		result, err := s.showConfig(input)
		if err != nil {
			return &sdkmcp.CallToolResult{IsError: true}, nil, err
		}
		return nil, result, nil
	})

	// Tool: run_flake8
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "run_flake8",
		Description: "Run flake8 with the project's pyproject.toml configuration injected. Returns flake8's output and exit code.",
	}, func(ctx context.Context, req *sdkmcp.CallToolRequest, input RunFlake8Input) (*sdkmcp.CallToolResult, map[string]any, error) {
		result, err := s.runFlake8(ctx, input)
		if err != nil {
			return &sdkmcp.CallToolResult{IsError: true}, nil, err
		}
		return nil, result, nil
	})

	return server.Run(ctx, &sdkmcp.StdioTransport{})
}

// showConfig resolves and renders the merged configuration.
func (s *Server) showConfig(input ShowConfigInput) (map[string]any, error) {
	path, ok, err := s.locate(input.Dir)
	if err != nil {
		return nil, err
	}

	if !ok {
		return textResult("No pyproject.toml found."), nil
	}

	config, err := pyproject.ReadLinterConfig(path)
	if err != nil {
		return nil, err
	}
	if len(config) == 0 {
		return textResult(fmt.Sprintf("%s contains no [tool.flake8] or [tool.flake518] configuration.", path)), nil
	}

	var rendered strings.Builder
	if err := iniconv.Write(config.Wrap(), &rendered); err != nil {
		return nil, err
	}

	text := fmt.Sprintf("Configuration from %s:\n\n%s", path, rendered.String())
	return textResult(text), nil
}

// captureInvoker adapts RunCapture to the adapter's invoker interface,
// retaining the captured output of the last run.
type captureInvoker struct {
	runner *flake8.Runner
	output *flake8.Output
}

func (c *captureInvoker) Run(ctx context.Context, args []string) (int, error) {
	out, err := c.runner.RunCapture(ctx, args)
	if err != nil {
		return -1, err
	}
	c.output = out
	return out.ExitCode, nil
}

// runFlake8 runs the full adapter pipeline with captured output.
func (s *Server) runFlake8(ctx context.Context, input RunFlake8Input) (map[string]any, error) {
	runner := &flake8.Runner{Binary: os.Getenv(flake8.EnvBinary)}
	if err := runner.CheckAvailability(ctx); err != nil {
		return nil, err
	}

	invoker := &captureInvoker{runner: runner}
	code, err := adapter.New(invoker).Run(ctx, input.Args)
	if err != nil {
		return nil, err
	}

	var text strings.Builder
	if code == 0 {
		text.WriteString("flake8 passed: no style violations found.\n")
	} else {
		fmt.Fprintf(&text, "flake8 exited with code %d.\n", code)
	}
	if out := strings.TrimSpace(invoker.output.Stdout); out != "" {
		fmt.Fprintf(&text, "\n%s\n", out)
	}
	if errOut := strings.TrimSpace(invoker.output.Stderr); errOut != "" {
		fmt.Fprintf(&text, "\nstderr:\n%s\n", errOut)
	}

	result := textResult(text.String())
	result["isError"] = code != 0
	return result, nil
}

// locate resolves the search start directory and finds pyproject.toml.
func (s *Server) locate(dir string) (string, bool, error) {
	if dir == "" {
		return pyproject.LocateFromWorkingDir()
	}

	resolved, err := filepath.EvalSymlinks(dir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve directory %s: %w", dir, err)
	}

	path, ok := pyproject.Locate(resolved)
	return path, ok, nil
}

// textResult wraps plain text in an MCP-compliant content array.
func textResult(text string) map[string]any {
	return map[string]any{
		"content": []map[string]any{
			{"type": "text", "text": text},
		},
	}
}
