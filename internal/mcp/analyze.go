package mcp

import (
	"context"
	"fmt"
	"os"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"go.uber.org/zap"
)

type analyzeParams struct {
	RunID       string `json:"run_id,omitempty" jsonschema:"id of a stored sol_run to analyze"`
	Log         string `json:"log,omitempty" jsonschema:"raw log text to analyze instead of a stored run"`
	Focus       string `json:"focus,omitempty" jsonschema:"extra directive appended to the analysis focus"`
	Instruction string `json:"instruction,omitempty" jsonschema:"replaces the built-in analysis instruction"`
	Model       string `json:"model,omitempty" jsonschema:"model identifier override"`
	APIKey      string `json:"api_key,omitempty" jsonschema:"API key override; falls back to the configured env var"`
}

func (h *handler) analyzeHandler(ctx context.Context, req *mcp.CallToolRequest, params analyzeParams) (*mcp.CallToolResult, any, error) {
	if params.RunID == "" && params.Log == "" {
		return errorResult("provide run_id or log")
	}
	if params.RunID != "" && params.Log != "" {
		return errorResult("run_id and log are mutually exclusive")
	}

	raw := params.Log
	if params.RunID != "" {
		rec, err := h.store.Load(params.RunID)
		if err != nil {
			return errorResult(fmt.Sprintf("unknown run %s: %v", params.RunID, err))
		}
		raw = rec.Combined
	}

	apiKey := params.APIKey
	if apiKey == "" {
		apiKey = os.Getenv(h.cfg.APIKeyEnv())
	}
	model := params.Model
	if model == "" {
		model = h.cfg.Model()
	}

	text, err := h.report(ctx, apiKey, model, raw, params.Focus, params.Instruction)
	if err != nil {
		return errorResult(fmt.Sprintf("analysis failed: %v", err))
	}

	if params.RunID != "" {
		rec, err := h.store.Load(params.RunID)
		if err == nil {
			rec.Report = text
			if err := h.store.Save(rec); err != nil {
				h.logger.Warn("saving report", zap.String("run_id", params.RunID), zap.Error(err))
			}
		}
	}
	return textResult(text)
}
