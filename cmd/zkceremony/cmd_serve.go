package main

import (
	"context"
	"os"
	"strings"

	"github.com/spf13/cobra"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"zkceremony/internal/logging"
	"zkceremony/internal/mcpserver"
	"zkceremony/internal/verifier"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the MCP server over stdio",
	Long: `Starts an MCP server over stdin/stdout exposing ceremony_status and
ceremony_verify tools for agent frontends.

stdout carries the JSON-RPC transport, so the external verifier's output is
redirected to stderr while serving. The server watches for parent process
death and self-terminates to avoid zombie processes.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	// stdin and stdout belong to the MCP transport; the child verifier
	// must not touch either.
	exec := verifier.NewExec(cfg.Verifier)
	exec.Stdout = os.Stderr
	exec.Stdin = strings.NewReader("")
	srv := mcpserver.NewServer(cfg, exec)

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()
	mcpserver.WatchParent(ctx, cancel)

	logging.New("mcp").Info("starting zkceremony MCP server over stdio")
	return srv.MCPServer.Run(ctx, &sdkmcp.StdioTransport{})
}
