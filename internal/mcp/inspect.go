package mcp

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

type inspectParams struct {
	RunID   string `json:"run_id" jsonschema:"id of a stored sol_run"`
	Section string `json:"section,omitempty" jsonschema:"one of summary, output, stderr, digest, report; defaults to summary"`
}

func (h *handler) inspectHandler(ctx context.Context, req *mcp.CallToolRequest, params inspectParams) (*mcp.CallToolResult, any, error) {
	if params.RunID == "" {
		return errorResult("run_id is required")
	}

	rec, err := h.store.Load(params.RunID)
	if err != nil {
		return errorResult(fmt.Sprintf("unknown run %s: %v", params.RunID, err))
	}

	switch params.Section {
	case "", "summary":
		var b strings.Builder
		fmt.Fprintf(&b, "Run: %s\n", rec.ID)
		fmt.Fprintf(&b, "Script: %s\n", rec.ScriptPath)
		if rec.Args != "" {
			fmt.Fprintf(&b, "Args: %s\n", rec.Args)
		}
		fmt.Fprintf(&b, "PID: %d\n", rec.PID)
		fmt.Fprintf(&b, "Exit: %d\n", rec.ExitCode)
		fmt.Fprintf(&b, "Started: %s\n", rec.StartedAt.Format(time.RFC3339))
		fmt.Fprintf(&b, "Duration: %s\n", rec.Duration.Round(time.Millisecond))
		fmt.Fprintf(&b, "Report: %s", yesNo(rec.Report != ""))
		return textResult(b.String())
	case "output":
		return textResult(rec.Display)
	case "stderr":
		return textResult(rec.Stderr)
	case "digest":
		return textResult(rec.Digest)
	case "report":
		if rec.Report == "" {
			return errorResult(fmt.Sprintf("run %s has no report; generate one with sol_analyze", rec.ID))
		}
		return textResult(rec.Report)
	default:
		return errorResult(fmt.Sprintf("unknown section %q; use summary, output, stderr, digest, or report", params.Section))
	}
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
