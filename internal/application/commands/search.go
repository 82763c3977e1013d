package commands

import (
	"context"
	"sort"
	"strings"

	"scrivano/internal/application/session"
	"scrivano/internal/domain"
)

// SearchResult wraps domain.SearchResult with a relevance score
type SearchResult struct {
	domain.SearchResult
	Score int
}

// SearchCommand searches scenes, characters and world notes
type SearchCommand struct {
	manager *session.Manager
	Query   string
}

// NewSearchCommand creates a new SearchCommand
func NewSearchCommand(manager *session.Manager, query string) *SearchCommand {
	return &SearchCommand{
		manager: manager,
		Query:   query,
	}
}

// Execute runs the search command and returns scored, sorted results.
// Queries shorter than two characters return nothing.
func (c *SearchCommand) Execute(ctx context.Context) ([]SearchResult, error) {
	query := strings.TrimSpace(c.Query)
	if len(query) < 2 {
		return nil, nil
	}

	results, err := c.manager.Search(query)
	if err != nil {
		return nil, err
	}

	return RankResults(results, query), nil
}

// FuzzyScore calculates a relevance score for how well target matches query
func FuzzyScore(target, query string) int {
	target = strings.ToLower(target)
	query = strings.ToLower(query)

	if len(query) == 0 {
		return 0
	}

	// Exact substring first
	if strings.Contains(target, query) {
		score := 100
		if strings.HasPrefix(target, query) {
			score += 50
		}
		return score
	}

	// Fuzzy match: chars appear in order
	score := 0
	queryIdx := 0
	prevMatchIdx := -1

	for i := 0; i < len(target) && queryIdx < len(query); i++ {
		if target[i] == query[queryIdx] {
			if prevMatchIdx == i-1 {
				score += 10 // consecutive chars
			}
			if i == 0 {
				score += 15 // start of string
			}
			if i > 0 && (target[i-1] == ' ' || target[i-1] == '.' || target[i-1] == '-') {
				score += 10 // after separator
			}
			score += 1
			prevMatchIdx = i
			queryIdx++
		}
	}

	if queryIdx == len(query) {
		return score
	}
	return 0
}

// RankResults scores results by relevance to the query, best first.
// Equal scores keep document order: scene names, scene text, characters, notes.
func RankResults(results []domain.SearchResult, query string) []SearchResult {
	scored := make([]SearchResult, 0, len(results))

	for _, r := range results {
		best := max(FuzzyScore(r.Name, query), FuzzyScore(r.MatchedText, query))
		if best > 0 {
			scored = append(scored, SearchResult{
				SearchResult: r,
				Score:        best,
			})
		}
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})

	return scored
}
