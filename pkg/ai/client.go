// Package ai builds the resume prompt and sends it to the Gemini API.
package ai

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/AmrMohamed17/smart-cv-builder/pkg/apperr"
	"github.com/AmrMohamed17/smart-cv-builder/pkg/config"
)

const service = "gemini"

// Backend sends one prompt and returns the first candidate's text.
type Backend interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// Client generates structured resumes through a Backend.
type Client struct {
	cfg     config.LLMConfig
	backend Backend
	log     *slog.Logger
}

// NewClient selects the backend named by cfg.Backend ("rest" or "genai").
// A missing API key is reported on the first call, not here.
func NewClient(cfg config.LLMConfig, httpClient *http.Client, log *slog.Logger) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}
	if log == nil {
		log = slog.Default()
	}
	var b Backend
	switch cfg.Backend {
	case "genai", "sdk":
		b = &sdkBackend{cfg: cfg, http: httpClient}
	default:
		b = &restBackend{cfg: cfg, http: httpClient}
	}
	return &Client{cfg: cfg, backend: b, log: log}
}

// NewClientWithBackend is used when the backend is supplied by the caller.
func NewClientWithBackend(cfg config.LLMConfig, b Backend, log *slog.Logger) *Client {
	if log == nil {
		log = slog.Default()
	}
	return &Client{cfg: cfg, backend: b, log: log}
}

// GenerateResume builds the prompt for in and returns the raw model text.
// It makes exactly one request and does not retry.
func (c *Client) GenerateResume(ctx context.Context, in PromptInput) (string, error) {
	if c.cfg.APIKey == "" {
		return "", apperr.NewConfigurationError("GEMINI_API_KEY")
	}
	if in.SkillsTopN == 0 {
		in.SkillsTopN = c.cfg.SkillsTopN
	}
	prompt := BuildPrompt(in)

	if c.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.cfg.Timeout)
		defer cancel()
	}

	c.log.Debug("llm request", slog.String("model", c.cfg.Model), slog.Int("prompt_len", len(prompt)))
	text, err := c.backend.Generate(ctx, prompt)
	if err != nil {
		return "", err
	}
	c.log.Debug("llm response", slog.Int("len", len(text)))
	return text, nil
}
