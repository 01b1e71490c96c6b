package ai

import (
	"context"
	"testing"

	"github.com/AmrMohamed17/smart-cv-builder/pkg/apperr"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"
)

func TestSDKErrorKeepsBody(t *testing.T) {
	err := sdkError(errors.Wrap(genai.APIError{Code: 429, Message: "quota exceeded", Status: "RESOURCE_EXHAUSTED"}, "generate"))

	var rerr *apperr.RemoteServiceError
	require.True(t, errors.As(err, &rerr))
	assert.Equal(t, 429, rerr.StatusCode)
	assert.JSONEq(t, `{"code":429,"message":"quota exceeded","status":"RESOURCE_EXHAUSTED"}`, rerr.Body)
	assert.Equal(t, 502, apperr.HTTPStatus(err))
}

func TestSDKErrorTransport(t *testing.T) {
	err := sdkError(context.DeadlineExceeded)

	var rerr *apperr.RemoteServiceError
	require.True(t, errors.As(err, &rerr))
	assert.Zero(t, rerr.StatusCode)
	assert.Empty(t, rerr.Body)
	assert.True(t, errors.Is(err, context.DeadlineExceeded))
}
