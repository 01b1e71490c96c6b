package apperr

import (
	"net/http"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, http.StatusOK},
		{"validation", NewValidationError("cv", "resume file is required"), http.StatusBadRequest},
		{"configuration", NewConfigurationError("GEMINI_API_KEY"), http.StatusInternalServerError},
		{"remote wrapped", errors.Wrap(&RemoteServiceError{Service: "github", StatusCode: 404}, "fetch digest"), http.StatusBadGateway},
		{"malformed", &MalformedResponseError{Raw: "nope", Err: errors.New("invalid character")}, http.StatusBadGateway},
		{"other", errors.New("disk full"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, HTTPStatus(tt.err))
		})
	}
}

func TestRemoteServiceErrorKeepsBody(t *testing.T) {
	err := &RemoteServiceError{Service: "gemini", StatusCode: 500, Body: `{"error":"boom"}`}
	assert.Contains(t, err.Error(), "status 500")
	assert.Contains(t, err.Error(), `{"error":"boom"}`)
	assert.NotContains(t, UserMessage(err), "boom")
}

func TestUserMessage(t *testing.T) {
	assert.Equal(t, "resume file is required", UserMessage(NewValidationError("cv", "resume file is required")))
	assert.Contains(t, UserMessage(NewConfigurationError("GEMINI_API_KEY")), "GEMINI_API_KEY")
}
