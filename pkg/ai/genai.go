package ai

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/AmrMohamed17/smart-cv-builder/pkg/apperr"
	"github.com/AmrMohamed17/smart-cv-builder/pkg/config"
	"github.com/pkg/errors"
	"google.golang.org/genai"
)

// sdkBackend calls the same model through the Google Gen AI SDK.
type sdkBackend struct {
	cfg  config.LLMConfig
	http *http.Client
}

func (b *sdkBackend) Generate(ctx context.Context, prompt string) (string, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:     b.cfg.APIKey,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: b.http,
	})
	if err != nil {
		return "", &apperr.RemoteServiceError{Service: service, Err: errors.Wrap(err, "create genai client")}
	}

	resp, err := client.Models.GenerateContent(ctx, b.cfg.Model, genai.Text(prompt), &genai.GenerateContentConfig{
		Temperature:     genai.Ptr(b.cfg.Temperature),
		MaxOutputTokens: int32(b.cfg.MaxOutputTokens),
	})
	if err != nil {
		return "", sdkError(err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", &apperr.RemoteServiceError{Service: service, Err: errors.New("response has no candidate content")}
	}
	return resp.Candidates[0].Content.Parts[0].Text, nil
}

// sdkError keeps the status and error body of a failed SDK call.
func sdkError(err error) error {
	rerr := &apperr.RemoteServiceError{Service: service, Err: err}
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		rerr.StatusCode = apiErr.Code
		if b, jerr := json.Marshal(apiErr); jerr == nil {
			rerr.Body = string(b)
		} else {
			rerr.Body = apiErr.Message
		}
	}
	return rerr
}
