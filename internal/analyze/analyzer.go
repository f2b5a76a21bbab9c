// Package analyze submits compressed solver logs to the Gemini API and
// returns a Markdown analysis report. The compression pipeline and
// prompt assembly live in internal/digest; this package only owns the
// network call.
package analyze

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"google.golang.org/genai"

	"github.com/ktsuchiya/solvent/internal/digest"
)

// Analyzer turns raw solver output into an analysis report.
type Analyzer struct {
	client *genai.Client
	model  string
	cfg    digest.Config
	maxLen int // prompt bound; 0 trusts the digest budget
	logger *zap.Logger
}

// New creates an Analyzer. The API key and model identifier are opaque
// passthroughs to the Gemini client.
func New(ctx context.Context, apiKey, model string, cfg digest.Config, maxPromptChars int, logger *zap.Logger) (*Analyzer, error) {
	if apiKey == "" {
		return nil, errors.New("API key is required; set GEMINI_API_KEY or configure api_key_env")
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{APIKey: apiKey})
	if err != nil {
		return nil, fmt.Errorf("creating Gemini client: %w", err)
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Analyzer{
		client: client,
		model:  model,
		cfg:    cfg,
		maxLen: maxPromptChars,
		logger: logger,
	}, nil
}

// Analyze compresses raw captured output, assembles the prompt, and
// asks the model for a report. focus and instruction may be empty; the
// assembler substitutes its built-in defaults.
func (a *Analyzer) Analyze(ctx context.Context, raw, focus, instruction string) (string, error) {
	d := digest.Compress(raw, a.cfg)
	prompt := digest.AssemblePrompt(instruction, focus, d, a.maxLen)

	a.logger.Debug("submitting analysis prompt",
		zap.String("model", a.model),
		zap.Int("raw_chars", len(raw)),
		zap.Int("prompt_chars", len(prompt)))

	resp, err := a.client.Models.GenerateContent(ctx, a.model, genai.Text(prompt), nil)
	if err != nil {
		return "", fmt.Errorf("generating report: %w", err)
	}
	text := resp.Text()
	if strings.TrimSpace(text) == "" {
		return "", errors.New("model returned no text content")
	}
	return text, nil
}
