package mcp

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"go.uber.org/zap"

	"github.com/ktsuchiya/solvent/internal/digest"
	"github.com/ktsuchiya/solvent/internal/report"
	"github.com/ktsuchiya/solvent/internal/supervisor"
)

type runParams struct {
	ScriptPath string `json:"script_path,omitempty" jsonschema:"path to the solver script to execute"`
	Args       string `json:"args,omitempty" jsonschema:"whitespace-separated arguments appended after the script path"`
}

func (h *handler) runHandler(ctx context.Context, req *mcp.CallToolRequest, params runParams) (*mcp.CallToolResult, any, error) {
	if params.ScriptPath == "" {
		return errorResult("script_path is required")
	}

	res, runErr := h.sup.Run(h.cfg.CommandPrefix(), params.ScriptPath, params.Args)
	if res == nil {
		// Spawn failure: nothing ran, nothing to record.
		return errorResult(fmt.Sprintf("run failed: %v", runErr))
	}

	rec := &report.RunRecord{
		ID:         res.RunID,
		ScriptPath: params.ScriptPath,
		Args:       params.Args,
		PID:        res.PID,
		ExitCode:   res.ExitCode,
		Display:    res.Display,
		Stderr:     res.Stderr,
		Combined:   res.Combined,
		Digest:     digest.Compress(res.Combined, h.cfg.DigestSettings()).Text,
		StartedAt:  res.StartedAt,
		Duration:   res.Duration,
	}
	if err := h.store.Save(rec); err != nil {
		h.logger.Warn("saving run record", zap.String("run_id", rec.ID), zap.Error(err))
	}

	if runErr != nil {
		var ee *supervisor.ExitError
		if errors.As(runErr, &ee) {
			return errorResult(fmt.Sprintf("Run: %s\n%s", rec.ID, ee.Error()))
		}
		return errorResult(fmt.Sprintf("Run: %s\nwait failed: %v", rec.ID, runErr))
	}
	return textResult(formatRun(rec))
}

func formatRun(rec *report.RunRecord) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Run: %s\n", rec.ID)
	fmt.Fprintf(&b, "PID: %d\n", rec.PID)
	fmt.Fprintf(&b, "Exit: %d\n", rec.ExitCode)
	fmt.Fprintf(&b, "Duration: %s\n", rec.Duration.Round(time.Millisecond))
	if rec.Display != "" {
		b.WriteString("\n")
		b.WriteString(rec.Display)
		if !strings.HasSuffix(rec.Display, "\n") {
			b.WriteString("\n")
		}
	}
	fmt.Fprintf(&b, "\nUse sol_inspect with run_id %s for stderr, digest, or report.", rec.ID)
	return b.String()
}
