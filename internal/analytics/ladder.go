package analytics

import (
	"fmt"
	"slices"
	"sort"

	"github.com/jonathan/ladder-scraper/internal/types"
)

// Default rating range reported when no problem in a ladder is rated.
const (
	DefaultMinRating = 800
	DefaultMaxRating = 3500
)

// RatingRange is the lowest and highest rating in a ladder.
type RatingRange struct {
	Min int
	Max int
}

// Range is one analytics bucket: a label and the number of problems it covers.
type Range struct {
	Label string
	Count int
}

const analyticsBuckets = 4

// AllTags returns the distinct tags of problems, sorted.
func AllTags(problems []types.Problem) []string {
	seen := make(map[string]struct{})
	for _, p := range problems {
		for _, tag := range p.Tags {
			seen[tag] = struct{}{}
		}
	}
	tags := make([]string, 0, len(seen))
	for tag := range seen {
		tags = append(tags, tag)
	}
	sort.Strings(tags)
	return tags
}

// Ratings returns the range of ratings over rated problems.
func Ratings(problems []types.Problem) RatingRange {
	var ratings []int
	for _, p := range problems {
		if p.Rating != nil {
			ratings = append(ratings, *p.Rating)
		}
	}
	if len(ratings) == 0 {
		return RatingRange{Min: DefaultMinRating, Max: DefaultMaxRating}
	}
	return RatingRange{Min: slices.Min(ratings), Max: slices.Max(ratings)}
}

// AnalyticsRanges summarizes problems in four buckets centred on the most populated
// rating band: everything up to the band below the peak, the next two bands, then
// everything above. Unrated problems count as rating 0.
func AnalyticsRanges(problems []types.Problem) []Range {
	counts := make([]int, len(levels))
	for i, l := range levels {
		for _, p := range problems {
			if l.Contains(ratingOf(p)) {
				counts[i]++
			}
		}
	}

	peak, peakCount := 0, 0
	for i, c := range counts {
		if c > peakCount {
			peak, peakCount = i, c
		}
	}

	start := max(0, peak-1)
	ranges := make([]Range, 0, analyticsBuckets)

	if start > 0 {
		ranges = append(ranges, Range{
			Label: "≤ " + levels[start].Name,
			Count: countWhere(problems, func(r int) bool { return r <= levels[start].Max }),
		})
	} else {
		ranges = append(ranges, Range{Label: levels[0].Name, Count: counts[0]})
	}

	second := 1
	if start > 0 {
		second = start + 1
	}
	if second < len(levels) {
		ranges = append(ranges, Range{Label: levels[second].Name, Count: counts[second]})
	}

	third := second + 1
	if third < len(levels) {
		ranges = append(ranges, Range{Label: levels[third].Name, Count: counts[third]})
	}

	rest := third + 1
	switch {
	case rest < len(levels):
		ranges = append(ranges, Range{
			Label: "≥ " + levels[rest].Name,
			Count: countWhere(problems, func(r int) bool { return r >= levels[rest].Min }),
		})
	case third < len(levels):
		last := levels[len(levels)-1]
		ranges = append(ranges, Range{
			Label: "≥ " + last.Name,
			Count: countWhere(problems, func(r int) bool { return r >= last.Min }),
		})
	}

	for len(ranges) < analyticsBuckets {
		ranges = append(ranges, Range{Label: "N/A"})
	}
	return ranges[:analyticsBuckets]
}

// FormatLadderNumber returns the display number of a ladder: a two-digit position for
// rating ladders, the id for division ladders and EX-NN for extra ladders. Ladders not
// found in idx fall back to their id.
func FormatLadderNumber(id int, t types.LadderType, idx *types.LadderIndex) string {
	switch t {
	case types.LadderTypeRating:
		if i := positionOf(idx, t, id); i >= 0 {
			return fmt.Sprintf("%02d", i+1)
		}
		return fmt.Sprint(id)
	case types.LadderTypeExtra:
		if i := positionOf(idx, t, id); i >= 0 {
			return fmt.Sprintf("EX-%02d", i+1)
		}
		return fmt.Sprintf("EX-%d", id)
	default:
		return fmt.Sprint(id)
	}
}

func positionOf(idx *types.LadderIndex, t types.LadderType, id int) int {
	if idx == nil {
		return -1
	}
	return slices.IndexFunc(idx.Category(t), func(e types.LadderIndexEntry) bool { return e.ID == id })
}

func ratingOf(p types.Problem) int {
	if p.Rating == nil {
		return 0
	}
	return *p.Rating
}

func countWhere(problems []types.Problem, keep func(rating int) bool) int {
	n := 0
	for _, p := range problems {
		if keep(ratingOf(p)) {
			n++
		}
	}
	return n
}
