package ai

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"json fence", "```json\n{\"a\":1}\n```", `{"a":1}`},
		{"no fence", `{"a":1}`, `{"a":1}`},
		{"bare fence", "```\n{\"a\":1}\n```", `{"a":1}`},
		{"surrounding whitespace", "\n\n  ```json   {\"a\":1}```  \n", `{"a":1}`},
		{"empty", "", ""},
		{"upper case tag", "```JSON\n{\"a\":1}\n```", `{"a":1}`},
		{"other tag", "```javascript\n{\"a\":1}\n```", `{"a":1}`},
		{"tag without newline", "```json{\"a\":1}```", `{"a":1}`},
		{"backticks in payload", "```json\n{\"d\":\"run ```go build``` first\"}\n```", "{\"d\":\"run ```go build``` first\"}"},
		{"unfenced backticks", "{\"d\":\"run ```go build``` first\"}", "{\"d\":\"run ```go build``` first\"}"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Sanitize(tt.in))
		})
	}
}
