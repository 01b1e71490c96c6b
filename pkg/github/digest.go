package github

import (
	"fmt"
	"strings"
)

// SnippetLength is the number of README characters kept per repository.
const SnippetLength = 700

// Summarize renders one block per repository and joins them with newlines.
// Repositories with neither a description nor a README are skipped.
func Summarize(repos []Repo) string {
	blocks := make([]string, 0, len(repos))
	for _, r := range repos {
		if r.Description == "" && r.README == "" {
			continue
		}
		desc := r.Description
		if desc == "" {
			desc = "No description"
		}
		lang := r.Language
		if lang == "" {
			lang = "N/A"
		}
		snippet := "No README"
		if r.README != "" {
			snippet = Snippet(r.README)
		}
		blocks = append(blocks, fmt.Sprintf(
			"Repo: %s\nStars: %d\nDescription: %s\nTech: %s\nREADME Snippet: %s\n---",
			r.Name, r.Stars, desc, lang, snippet,
		))
	}
	return strings.Join(blocks, "\n")
}

// Snippet returns the first SnippetLength characters of readme, trimmed,
// with newlines replaced by spaces.
func Snippet(readme string) string {
	runes := []rune(readme)
	if len(runes) > SnippetLength {
		runes = runes[:SnippetLength]
	}
	return strings.ReplaceAll(strings.TrimSpace(string(runes)), "\n", " ")
}
