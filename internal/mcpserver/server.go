// Package mcpserver exposes ceremony operations as MCP tools over stdio, so
// agent frontends can inspect and verify a ceremony without shelling out to
// the CLI verbs.
package mcpserver

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"zkceremony/internal/ceremony"
	"zkceremony/internal/config"
	"zkceremony/internal/format"
	"zkceremony/internal/logging"
)

// Server wraps the MCP SDK server around a ceremony configuration.
type Server struct {
	MCPServer *sdkmcp.Server
	Config    config.Config
	Verifier  ceremony.Verifier

	// mu serializes verification runs: the external verifier needs
	// exclusive use of the host's memory, so concurrent tool calls queue.
	mu sync.Mutex
}

// NewServer creates an MCP server exposing status and verification tools.
// The verifier's streams must not touch stdout, which carries the MCP
// transport.
func NewServer(cfg config.Config, v ceremony.Verifier) *Server {
	s := &Server{Config: cfg, Verifier: v}
	s.MCPServer = sdkmcp.NewServer(
		&sdkmcp.Implementation{Name: "zkceremony", Version: "dev"},
		nil,
	)
	s.registerTools()
	return s
}

func (s *Server) registerTools() {
	sdkmcp.AddTool(s.MCPServer, &sdkmcp.Tool{
		Name:        "ceremony_status",
		Description: "List the contribution folders under the ceremony root with per-folder artifact counts.",
	}, s.handleStatus)

	sdkmcp.AddTool(s.MCPServer, &sdkmcp.Tool{
		Name:        "ceremony_verify",
		Description: "Verify the whole contribution chain against the baseline. Blocks until every external verifier invocation has finished; expect minutes per artifact.",
	}, s.handleVerify)
}

// --- Tool input/output types ---

type statusInput struct{}

type folderStatus struct {
	Name      string `json:"name"`
	Artifacts int    `json:"artifacts"`
	Baseline  bool   `json:"baseline"`
}

type statusOutput struct {
	Root    string         `json:"root"`
	Params  string         `json:"params,omitempty"`
	Folders []folderStatus `json:"folders"`
}

type verifyInput struct{}

type verifyOutput struct {
	Total    int      `json:"total"`
	Passed   int      `json:"passed"`
	Failed   int      `json:"failed"`
	Failures []string `json:"failures,omitempty"`
	Skipped  []string `json:"skipped,omitempty"`
	Report   string   `json:"report"`
}

// --- Handlers ---

func (s *Server) handleStatus(ctx context.Context, _ *sdkmcp.CallToolRequest, _ statusInput) (*sdkmcp.CallToolResult, statusOutput, error) {
	folders, err := ceremony.ListContributionFolders(s.Config.Root)
	if err != nil {
		return nil, statusOutput{}, err
	}

	out := statusOutput{Root: s.Config.Root}
	if params, err := s.paramsPath(); err == nil {
		out.Params = params
	}
	for i, f := range folders {
		arts, err := ceremony.ListArtifacts(filepath.Join(s.Config.Root, f.Name))
		if err != nil {
			return nil, statusOutput{}, err
		}
		out.Folders = append(out.Folders, folderStatus{
			Name:      f.Name,
			Artifacts: len(arts),
			Baseline:  i == 0,
		})
	}
	return nil, out, nil
}

func (s *Server) handleVerify(ctx context.Context, _ *sdkmcp.CallToolRequest, _ verifyInput) (*sdkmcp.CallToolResult, verifyOutput, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	logger := logging.New("mcp-verify")

	folders, err := ceremony.ListContributionFolders(s.Config.Root)
	if err != nil {
		return nil, verifyOutput{}, err
	}
	params, err := s.paramsPath()
	if err != nil {
		return nil, verifyOutput{}, err
	}

	logger.InfoContext(ctx, "starting chain verification", "root", s.Config.Root, "folders", len(folders))
	driver := &ceremony.Driver{
		Root:     s.Config.Root,
		Params:   params,
		Verifier: s.Verifier,
		Progress: os.Stderr,
	}
	res := driver.Run(folders)
	report := ceremony.BuildReport(res.Outcomes)

	out := verifyOutput{
		Total:  report.Total,
		Passed: report.Passed,
		Failed: report.Failed,
		Report: ceremony.RenderRun(res, format.Markdown),
	}
	for _, o := range report.Failures {
		out.Failures = append(out.Failures, fmt.Sprintf("%s/%s: %s", o.Folder, o.Circuit, o.Err))
	}
	for _, sk := range res.Skipped {
		out.Skipped = append(out.Skipped, fmt.Sprintf("%s: %s", sk.Folder, sk.Reason))
	}
	return nil, out, nil
}

func (s *Server) paramsPath() (string, error) {
	if s.Config.Params != "" {
		return s.Config.Params, nil
	}
	return ceremony.FindParamsFile(s.Config.Root)
}
