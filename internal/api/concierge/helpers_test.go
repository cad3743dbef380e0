package concierge

import (
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rishiboppana/travel-concierge/internal/types"
)

func TestExtractJSONObject(t *testing.T) {
	tests := []struct {
		name     string
		response string
		want     string
		wantOK   bool
	}{
		{"bare object", `{"a": 1}`, `{"a": 1}`, true},
		{"json fence", "```json\n{\"a\": 1}\n```", `{"a": 1}`, true},
		{"plain fence", "```\n{\"a\": 1}\n```", `{"a": 1}`, true},
		{"prose around object", "Here you go:\n{\"a\": 1}\nHope that helps!", `{"a": 1}`, true},
		{"nested braces", `{"a": {"b": 2}}`, `{"a": {"b": 2}}`, true},
		{"no braces", "no json here", "", false},
		{"only opening brace", "{ unterminated", "", false},
		{"brace order reversed", "} before {", "", false},
		{"empty input", "", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := extractJSONObject(tt.response)
			require.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "abc", truncate("abc", 5))
	assert.Equal(t, "ab", truncate("abcdef", 2))
	assert.Equal(t, "", truncate("", 3))
}

func TestTruncate_RuneBoundary(t *testing.T) {
	// "Sé" is 3 bytes; cutting at 2 would split the é.
	got := truncate("Sé de Lisboa", 2)
	assert.Equal(t, "S", got)
	assert.True(t, utf8.ValidString(got))

	got = truncate("日本語の天気予報", 7)
	assert.Equal(t, "日本", got)
	assert.True(t, utf8.ValidString(got))
}

func TestSnippetExcerpts(t *testing.T) {
	snippets := []types.Snippet{
		{Title: "First", Content: "aaaa"},
		{Title: "", Content: "bbbb"},
		{Title: "Third", Content: "cccc"},
	}

	got := snippetExcerpts(snippets, 2, 2)
	assert.Equal(t, "- First: aa\n- N/A: bb", got)
}

func TestJoinedContents(t *testing.T) {
	snippets := []types.Snippet{
		{Content: "sunny all week"},
		{Content: "light rain friday"},
		{Content: "ignored"},
	}

	got := joinedContents(snippets, 2, 10)
	assert.Equal(t, "sunny all light rain", got)
}

func TestInterestsOrDefault(t *testing.T) {
	assert.Equal(t, "sightseeing", interestsOrDefault(nil))
	assert.Equal(t, "culture, food", interestsOrDefault([]string{"culture", "food"}))
}
