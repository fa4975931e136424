package analytics

import (
	"math"

	"github.com/jonathan/ladder-scraper/internal/codeforces"
	"github.com/jonathan/ladder-scraper/internal/types"
)

// Status holds the join keys a user has solved and those attempted without success.
type Status struct {
	Solved    map[string]struct{}
	Attempted map[string]struct{}
}

// NewStatus builds the solved and attempted sets from submissions. Submissions without
// a verdict (still being judged) are ignored, and a problem solved at least once is
// never counted as attempted.
func NewStatus(subs []codeforces.Submission) *Status {
	s := &Status{
		Solved:    make(map[string]struct{}),
		Attempted: make(map[string]struct{}),
	}
	for _, sub := range subs {
		switch {
		case sub.Accepted():
			s.Solved[sub.Key()] = struct{}{}
		case sub.Verdict != "":
			s.Attempted[sub.Key()] = struct{}{}
		}
	}
	for key := range s.Solved {
		delete(s.Attempted, key)
	}
	return s
}

// LadderProgress is a user's standing on one ladder.
type LadderProgress struct {
	ID        int
	Name      string
	Type      types.LadderType
	Solved    int
	Attempted int
	Total     int
}

// Percent returns the rounded completion percentage.
func (p LadderProgress) Percent() int {
	if p.Total == 0 {
		return 0
	}
	return int(math.Round(float64(p.Solved) / float64(p.Total) * 100))
}

// Progress counts the solved and attempted problems of l.
func (s *Status) Progress(l *types.Ladder) LadderProgress {
	out := LadderProgress{ID: l.ID, Name: l.Name, Type: l.Type, Total: len(l.Problems)}
	for _, p := range l.Problems {
		key := p.Key()
		if _, ok := s.Solved[key]; ok {
			out.Solved++
		} else if _, ok := s.Attempted[key]; ok {
			out.Attempted++
		}
	}
	return out
}
