package mcp

import (
	"context"
	"errors"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/ktsuchiya/solvent/internal/supervisor"
)

type cancelParams struct {
	PID int `json:"pid" jsonschema:"process id reported when the run was spawned"`
}

func (h *handler) cancelHandler(ctx context.Context, req *mcp.CallToolRequest, params cancelParams) (*mcp.CallToolResult, any, error) {
	if params.PID <= 0 {
		return errorResult("pid must be a positive integer")
	}

	err := h.sup.Cancel(params.PID)
	if err != nil {
		// Cancellation is best effort: a run that already finished is
		// reported, not treated as a tool failure.
		var ce *supervisor.CancelError
		if errors.As(err, &ce) {
			return textResult(fmt.Sprintf("Cancel of pid %d did not take effect: %v", ce.PID, ce.Err))
		}
		return errorResult(fmt.Sprintf("cancel failed: %v", err))
	}
	return textResult(fmt.Sprintf("Kill signal delivered to process tree of pid %d.", params.PID))
}
