package model

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

func TestValidateGenerated(t *testing.T) {
	assert.NoError(t, ValidateGenerated(Document{"name": "A"}))
	assert.NoError(t, ValidateGenerated(decode(t, `{"name":null,"skills":[{"category":"Go","technologies":["Fiber"]}]}`)))

	err := ValidateGenerated(decode(t, `{"experience":{"title":"Dev"}}`))
	var serr *SchemaError
	assert.True(t, errors.As(err, &serr))
	assert.Equal(t, "generated", serr.Schema)
	assert.NotEmpty(t, serr.Problems)
}

func TestValidateSubmitted(t *testing.T) {
	assert.NoError(t, ValidateSubmitted(Document{"name": "A"}))
	assert.NoError(t, ValidateSubmitted(decode(t, `{"sections":[{"type":"experience","items":[{"title":"Dev"}]}]}`)))
	assert.Error(t, ValidateSubmitted(decode(t, `{"sections":[{"content":"no type"}]}`)))
	assert.Error(t, ValidateSubmitted(decode(t, `{"name":42}`)))
}
