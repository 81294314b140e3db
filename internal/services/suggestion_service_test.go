package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSuggestionService_Suggest(t *testing.T) {
	candidates := []string{"deploy", "deploy-prod", "logs", "serve", "server", "deploy"}

	tests := []struct {
		name     string
		query    string
		expected []string
	}{
		{name: "typo", query: "delpoy", expected: []string{"deploy"}},
		{name: "substring", query: "serv", expected: []string{"serve", "server"}},
		{name: "capped and ordered", query: "deploy", expected: []string{"deploy", "deploy-prod"}},
		{name: "case insensitive", query: "LOGS", expected: []string{"logs"}},
		{name: "nothing close", query: "kubernetes", expected: nil},
		{name: "empty query", query: " ", expected: nil},
	}

	service := NewSuggestionService()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, service.Suggest(tt.query, candidates))
		})
	}
}

func TestSuggestionService_Max(t *testing.T) {
	service := NewSuggestionService()
	got := service.Suggest("a", []string{"ab", "ac", "ad", "ae", "af"})
	assert.Len(t, got, DefaultMaxSuggestions)
	assert.Equal(t, []string{"ab", "ac", "ad"}, got)
}
