// Package enrichment merges Codeforces ratings and tags into stored ladders.
package enrichment

import (
	"slices"

	"github.com/jonathan/ladder-scraper/internal/types"
)

// Lookup maps a join key to the external record for that problem.
type Lookup map[string]types.ExternalProblem

// BuildLookup keys every record that has both a contest id and an index.
func BuildLookup(problems []types.ExternalProblem) Lookup {
	lookup := make(Lookup, len(problems))
	for _, p := range problems {
		if p.ContestID == 0 || p.Index == "" {
			continue
		}
		lookup[p.Key()] = p
	}
	return lookup
}

// LadderResult counts the outcome of enriching one ladder.
type LadderResult struct {
	ID       int
	Name     string
	Total    int
	Enriched int
	Missing  int
}

// Complete reports whether every problem was matched.
func (r LadderResult) Complete() bool {
	return r.Missing == 0
}

// EnrichLadder updates the problems of l in place. A matched problem takes the
// external rating when it is set and the external tags when there are any; contest id
// and problem id are never touched. Problems without a full join key, or without a
// match, count as missing.
func EnrichLadder(l *types.Ladder, lookup Lookup) LadderResult {
	result := LadderResult{ID: l.ID, Name: l.Name, Total: len(l.Problems)}

	for i := range l.Problems {
		p := &l.Problems[i]
		if !p.HasIdentity() {
			result.Missing++
			continue
		}

		ext, ok := lookup[p.Key()]
		if !ok {
			result.Missing++
			continue
		}

		if ext.Rating != nil {
			rating := *ext.Rating
			p.Rating = &rating
		}
		if len(ext.Tags) > 0 {
			p.Tags = slices.Clone(ext.Tags)
		}
		result.Enriched++
	}

	return result
}
