package github

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSummarizeSkipsEmptyRepos(t *testing.T) {
	out := Summarize([]Repo{{Name: "empty"}, {Name: "kept", Description: "d"}})
	assert.NotContains(t, out, "empty")
	assert.Contains(t, out, "Repo: kept")
}

func TestSummarizeTruncatesReadme(t *testing.T) {
	readme := strings.Repeat("a", 690) + "\n" + strings.Repeat("b", 100)
	out := Summarize([]Repo{{Name: "long", README: readme}})

	want := strings.Repeat("a", 690) + " " + strings.Repeat("b", 9)
	assert.Contains(t, out, "README Snippet: "+want+"\n---")
	assert.NotContains(t, out, strings.Repeat("b", 10))
}

func TestSnippetCountsCharacters(t *testing.T) {
	readme := strings.Repeat("é", 800)
	assert.Equal(t, strings.Repeat("é", SnippetLength), Snippet(readme))
}

func TestSummarizeEmpty(t *testing.T) {
	assert.Equal(t, "", Summarize(nil))
}
