package services

import (
	"sort"
	"strings"

	"github.com/agnivade/levenshtein"
)

// DefaultMaxSuggestions caps how many names Suggest returns.
const DefaultMaxSuggestions = 3

// SuggestionService proposes known names close to a mistyped one.
type SuggestionService struct {
	initialized bool
	max         int
}

// NewSuggestionService creates a new SuggestionService instance.
func NewSuggestionService() *SuggestionService {
	return &SuggestionService{max: DefaultMaxSuggestions}
}

// Name returns the service name "suggestion" for registration.
func (s *SuggestionService) Name() string {
	return "suggestion"
}

// Initialize marks the service ready.
func (s *SuggestionService) Initialize() error {
	s.initialized = true
	return nil
}

type scored struct {
	name     string
	distance int
}

// Suggest returns up to the configured number of candidates that contain the
// query or are within an edit distance of a third of the query length
// (at least 2), closest first. Duplicates are dropped.
func (s *SuggestionService) Suggest(query string, candidates []string) []string {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return nil
	}

	threshold := len(query) / 3
	if threshold < 2 {
		threshold = 2
	}

	seen := make(map[string]struct{}, len(candidates))
	var matches []scored
	for _, candidate := range candidates {
		if _, dup := seen[candidate]; dup {
			continue
		}
		seen[candidate] = struct{}{}

		lower := strings.ToLower(candidate)
		distance := levenshtein.ComputeDistance(query, lower)
		if distance <= threshold || strings.Contains(lower, query) {
			matches = append(matches, scored{name: candidate, distance: distance})
		}
	}

	sort.SliceStable(matches, func(i, j int) bool {
		if matches[i].distance != matches[j].distance {
			return matches[i].distance < matches[j].distance
		}
		return matches[i].name < matches[j].name
	})

	if len(matches) == 0 {
		return nil
	}
	if len(matches) > s.max {
		matches = matches[:s.max]
	}
	names := make([]string, len(matches))
	for i, m := range matches {
		names[i] = m.name
	}
	return names
}
