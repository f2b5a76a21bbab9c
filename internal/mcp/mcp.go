// Package mcp provides the solvent MCP server, registering the run,
// cancel, analyze, and inspect tools and publishing model instructions.
package mcp

import (
	"context"
	_ "embed"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"go.uber.org/zap"

	"github.com/ktsuchiya/solvent"
	"github.com/ktsuchiya/solvent/internal/analyze"
	"github.com/ktsuchiya/solvent/internal/config"
	"github.com/ktsuchiya/solvent/internal/report"
	"github.com/ktsuchiya/solvent/internal/supervisor"
)

//go:embed instructions.md
var Instructions string

// ReportFunc produces an analysis report from raw captured log text.
// The default implementation compresses the log and calls the Gemini
// API; tests substitute a recording stub.
type ReportFunc func(ctx context.Context, apiKey, model, raw, focus, instruction string) (string, error)

// handler holds shared dependencies for all tool handlers.
type handler struct {
	cfg    *config.Config
	sup    *supervisor.Supervisor
	store  report.Store
	report ReportFunc
	logger *zap.Logger
}

// NewServer creates an MCP server with all solvent tools registered.
func NewServer(cfg *config.Config, sup *supervisor.Supervisor, store report.Store, opts ...ServerOption) *mcp.Server {
	h := &handler{
		cfg:    cfg,
		sup:    sup,
		store:  store,
		logger: zap.NewNop(),
	}

	var so serverOptions
	for _, o := range opts {
		o(&so)
	}
	if so.logger != nil {
		h.logger = so.logger
	}
	if so.report != nil {
		h.report = so.report
	} else {
		h.report = geminiReportFunc(cfg, h.logger)
	}

	mcpOpts := &mcp.ServerOptions{
		Instructions: Instructions,
		Capabilities: &mcp.ServerCapabilities{
			Tools: &mcp.ToolCapabilities{ListChanged: false},
		},
	}
	s := mcp.NewServer(&mcp.Implementation{Name: "solvent", Version: solvent.Version}, mcpOpts)

	mcp.AddTool(s, &mcp.Tool{
		Name: "sol_run",
		Description: `Run a solver script under supervision and capture its output.

The configured command prefix (default "uv run python -u") is prepended, the
script path appended, then the whitespace-tokenized args. Returns the
banner-sanitized stdout on success, or the exit code plus stderr on failure.
Output is stored for drill-down via sol_inspect and analysis via sol_analyze.`,
	}, h.runHandler)

	mcp.AddTool(s, &mcp.Tool{
		Name: "sol_cancel",
		Description: `Cancel a running solver process by pid.

Issues a forced, recursive kill of the process tree. Best-effort: a pid that
no longer exists is reported, never escalated.`,
	}, h.cancelHandler)

	mcp.AddTool(s, &mcp.Tool{
		Name: "sol_analyze",
		Description: `Compress a solver log and generate a Markdown analysis report.

Provide run_id for a stored sol_run, or raw log text directly. The log is
digested (JSON pruning, whitespace normalization, line sampling, tail
truncation) before submission, so arbitrarily large logs are accepted.`,
	}, h.analyzeHandler)

	mcp.AddTool(s, &mcp.Tool{
		Name: "sol_inspect",
		Description: `Drill into a stored run: summary, sanitized output, stderr,
digest, or the generated report.`,
	}, h.inspectHandler)

	return s
}

// ServerOption configures the solvent MCP server.
type ServerOption func(*serverOptions)

type serverOptions struct {
	report ReportFunc
	logger *zap.Logger
}

// WithReporter substitutes the report generator. Used by tests to avoid
// real API calls.
func WithReporter(fn ReportFunc) ServerOption {
	return func(o *serverOptions) {
		o.report = fn
	}
}

// WithLogger attaches a logger to the server's handlers.
func WithLogger(l *zap.Logger) ServerOption {
	return func(o *serverOptions) {
		o.logger = l
	}
}

// geminiReportFunc builds the default ReportFunc backed by the Gemini API.
func geminiReportFunc(cfg *config.Config, logger *zap.Logger) ReportFunc {
	return func(ctx context.Context, apiKey, model, raw, focus, instruction string) (string, error) {
		an, err := analyze.New(ctx, apiKey, model, cfg.DigestSettings(), cfg.MaxPromptChars(), logger)
		if err != nil {
			return "", err
		}
		return an.Analyze(ctx, raw, focus, instruction)
	}
}

// textResult is a helper to build a text-only tool result.
func textResult(text string) (*mcp.CallToolResult, any, error) {
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: text}},
	}, nil, nil
}

// errorResult is a helper to build an error tool result.
func errorResult(text string) (*mcp.CallToolResult, any, error) {
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: text}},
		IsError: true,
	}, nil, nil
}
