package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"

	"github.com/AmrMohamed17/smart-cv-builder/pkg/apperr"
	"github.com/AmrMohamed17/smart-cv-builder/pkg/config"
	"github.com/pkg/errors"
	"github.com/tidwall/gjson"
)

const textPath = "candidates.0.content.parts.0.text"

type restPart struct {
	Text string `json:"text"`
}

type restContent struct {
	Parts []restPart `json:"parts"`
}

type generationConfig struct {
	Temperature     float32 `json:"temperature"`
	MaxOutputTokens int     `json:"maxOutputTokens"`
}

type generateRequest struct {
	Contents         []restContent    `json:"contents"`
	GenerationConfig generationConfig `json:"generationConfig"`
}

// restBackend calls models/{model}:generateContent over plain HTTP.
type restBackend struct {
	cfg  config.LLMConfig
	http *http.Client
}

func (b *restBackend) endpoint() string {
	return b.cfg.BaseURL + "/models/" + url.PathEscape(b.cfg.Model) + ":generateContent?key=" + url.QueryEscape(b.cfg.APIKey)
}

func (b *restBackend) Generate(ctx context.Context, prompt string) (string, error) {
	body, err := json.Marshal(generateRequest{
		Contents: []restContent{{Parts: []restPart{{Text: prompt}}}},
		GenerationConfig: generationConfig{
			Temperature:     b.cfg.Temperature,
			MaxOutputTokens: b.cfg.MaxOutputTokens,
		},
	})
	if err != nil {
		return "", errors.Wrap(err, "encode request")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, b.endpoint(), bytes.NewReader(body))
	if err != nil {
		return "", errors.Wrap(err, "build request")
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := b.http.Do(req)
	if err != nil {
		return "", &apperr.RemoteServiceError{Service: service, Err: redact(err)}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &apperr.RemoteServiceError{Service: service, StatusCode: resp.StatusCode, Err: errors.Wrap(err, "read body")}
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", &apperr.RemoteServiceError{Service: service, StatusCode: resp.StatusCode, Body: string(raw)}
	}

	text := gjson.GetBytes(raw, textPath)
	if !text.Exists() {
		return "", &apperr.RemoteServiceError{
			Service:    service,
			StatusCode: resp.StatusCode,
			Body:       string(raw),
			Err:        errors.New("response has no " + textPath),
		}
	}
	return text.String(), nil
}

// redact drops the request URL, which carries the API key, from transport
// errors.
func redact(err error) error {
	var uerr *url.Error
	if errors.As(err, &uerr) {
		return errors.Wrap(uerr.Err, uerr.Op)
	}
	return err
}
