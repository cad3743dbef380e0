package concierge

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/rishiboppana/travel-concierge/internal/types"
)

// extractJSONObject is the lenient first stage of the response repair
// pipeline. It strips markdown code-fence markers and slices between the
// first '{' and the last '}', tolerating explanatory prose around the JSON.
// The strict second stage (json.Unmarshal) decides whether the result is
// actually usable.
func extractJSONObject(response string) (string, bool) {
	response = strings.TrimSpace(response)

	if strings.HasPrefix(response, "```json") {
		response = strings.TrimPrefix(response, "```json")
	} else if strings.HasPrefix(response, "```") {
		response = strings.TrimPrefix(response, "```")
	}
	if strings.HasSuffix(response, "```") {
		response = strings.TrimSuffix(response, "```")
	}
	response = strings.TrimSpace(response)

	firstBrace := strings.Index(response, "{")
	if firstBrace == -1 {
		return "", false
	}
	lastBrace := strings.LastIndex(response, "}")
	if lastBrace == -1 || lastBrace <= firstBrace {
		return "", false
	}

	return strings.TrimSpace(response[firstBrace : lastBrace+1]), true
}

// truncate shortens s to at most n bytes, backing up to a rune boundary so
// multi-byte content is never split. Snippet excerpts in prompts are capped
// so a single verbose search result cannot crowd out the rest.
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n]
}

// snippetExcerpts renders up to limit snippets as "- title: content" lines
// with each content truncated to maxContent bytes.
func snippetExcerpts(snippets []types.Snippet, limit, maxContent int) string {
	if len(snippets) > limit {
		snippets = snippets[:limit]
	}
	lines := make([]string, 0, len(snippets))
	for _, s := range snippets {
		title := s.Title
		if title == "" {
			title = "N/A"
		}
		lines = append(lines, fmt.Sprintf("- %s: %s", title, truncate(s.Content, maxContent)))
	}
	return strings.Join(lines, "\n")
}

// joinedContents concatenates up to limit snippet contents, each truncated
// to maxContent bytes, separated by single spaces.
func joinedContents(snippets []types.Snippet, limit, maxContent int) string {
	if len(snippets) > limit {
		snippets = snippets[:limit]
	}
	parts := make([]string, 0, len(snippets))
	for _, s := range snippets {
		parts = append(parts, truncate(s.Content, maxContent))
	}
	return strings.Join(parts, " ")
}

// interestsOrDefault joins the interest tags for template text, defaulting
// to "sightseeing" when the request carries none.
func interestsOrDefault(interests []string) string {
	if len(interests) == 0 {
		return "sightseeing"
	}
	return strings.Join(interests, ", ")
}
