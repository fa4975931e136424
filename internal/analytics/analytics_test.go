package analytics

import (
	"testing"

	"github.com/jonathan/ladder-scraper/internal/codeforces"
	"github.com/jonathan/ladder-scraper/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rated(ratings ...int) []types.Problem {
	problems := make([]types.Problem, len(ratings))
	for i, r := range ratings {
		problems[i] = types.Problem{Position: i + 1, ContestID: i + 1, ProblemID: "A"}
		if r >= 0 {
			rating := r
			problems[i].Rating = &rating
		}
	}
	return problems
}

func TestLevelForRating(t *testing.T) {
	tests := []struct {
		rating int
		want   string
	}{
		{800, "Newbie"},
		{1199, "Newbie"},
		{1200, "Pupil"},
		{1899, "Expert"},
		{2350, "International Master"},
		{3500, "Legendary Grandmaster"},
		{-5, "Newbie"},
		{6000, "Newbie"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, LevelForRating(tt.rating).Name, tt.rating)
	}
}

func TestLevelByNumber(t *testing.T) {
	assert.Equal(t, "Expert", LevelByNumber(4).Name)
	assert.Equal(t, "Newbie", LevelByNumber(0).Name)
	assert.Equal(t, "Newbie", LevelByNumber(11).Name)
	assert.Len(t, Levels(), 10)
}

func TestAllTags(t *testing.T) {
	problems := []types.Problem{
		{Tags: []string{"math", "greedy"}},
		{},
		{Tags: []string{"dp", "math"}},
	}
	assert.Equal(t, []string{"dp", "greedy", "math"}, AllTags(problems))
	assert.Empty(t, AllTags(nil))
}

func TestRatings(t *testing.T) {
	assert.Equal(t, RatingRange{Min: 900, Max: 1700}, Ratings(rated(1200, -1, 900, 1700)))
	assert.Equal(t, RatingRange{Min: 800, Max: 3500}, Ratings(rated(-1, -1)))
}

func TestAnalyticsRanges(t *testing.T) {
	tests := []struct {
		name     string
		problems []types.Problem
		want     []Range
	}{
		{
			name:     "peak in first band",
			problems: rated(800, 800, 1200, 1500, 1500, 1500, -1, 2000),
			want: []Range{
				{Label: "Newbie", Count: 3},
				{Label: "Pupil", Count: 1},
				{Label: "Specialist", Count: 3},
				{Label: "≥ Expert", Count: 1},
			},
		},
		{
			name:     "peak in the middle",
			problems: rated(2100, 2200, 2150, 1000, 2500, 3100),
			want: []Range{
				{Label: "≤ Candidate Master", Count: 1},
				{Label: "Master", Count: 3},
				{Label: "International Master", Count: 0},
				{Label: "≥ Grandmaster", Count: 2},
			},
		},
		{
			name:     "peak in last band",
			problems: rated(3000, 3100),
			want: []Range{
				{Label: "≤ International Grandmaster", Count: 0},
				{Label: "Legendary Grandmaster", Count: 2},
				{Label: "N/A", Count: 0},
				{Label: "N/A", Count: 0},
			},
		},
		{
			name:     "no problems",
			problems: nil,
			want: []Range{
				{Label: "Newbie", Count: 0},
				{Label: "Pupil", Count: 0},
				{Label: "Specialist", Count: 0},
				{Label: "≥ Expert", Count: 0},
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, AnalyticsRanges(tt.problems))
		})
	}
}

func TestFormatLadderNumber(t *testing.T) {
	idx := types.NewLadderIndex()
	idx.Add(types.LadderTypeRating, types.LadderIndexEntry{ID: 1})
	idx.Add(types.LadderTypeRating, types.LadderIndexEntry{ID: 2})
	idx.Add(types.LadderTypeDivision, types.LadderIndexEntry{ID: 11})
	idx.Add(types.LadderTypeExtra, types.LadderIndexEntry{ID: 22})

	assert.Equal(t, "02", FormatLadderNumber(2, types.LadderTypeRating, idx))
	assert.Equal(t, "11", FormatLadderNumber(11, types.LadderTypeDivision, idx))
	assert.Equal(t, "EX-01", FormatLadderNumber(22, types.LadderTypeExtra, idx))
	assert.Equal(t, "9", FormatLadderNumber(9, types.LadderTypeRating, idx))
	assert.Equal(t, "EX-30", FormatLadderNumber(30, types.LadderTypeExtra, nil))
}

func TestStatusAndProgress(t *testing.T) {
	status := NewStatus([]codeforces.Submission{
		{ContestID: 1, Index: "A", Verdict: "WRONG_ANSWER"},
		{ContestID: 1, Index: "A", Verdict: "OK"},
		{ContestID: 52, Index: "B2", Verdict: "TIME_LIMIT_EXCEEDED"},
		{ContestID: 71, Index: "A", Verdict: ""},
	})

	assert.Contains(t, status.Solved, "1-A")
	assert.NotContains(t, status.Attempted, "1-A")
	assert.Contains(t, status.Attempted, "52-B2")
	assert.NotContains(t, status.Attempted, "71-A")

	p1, err := types.NewProblem(1, "Theatre Square", 1, "A")
	require.NoError(t, err)
	p2, err := types.NewProblem(2, "Tricky Sum", 52, "B2")
	require.NoError(t, err)
	p3, err := types.NewProblem(3, "Way Too Long Words", 71, "A")
	require.NoError(t, err)
	ladder, err := types.NewLadder(1, "Rating < 1300", types.LadderTypeRating, "", 1, []types.Problem{p1, p2, p3})
	require.NoError(t, err)

	progress := status.Progress(ladder)
	assert.Equal(t, 1, progress.Solved)
	assert.Equal(t, 1, progress.Attempted)
	assert.Equal(t, 3, progress.Total)
	assert.Equal(t, 33, progress.Percent())
	assert.Equal(t, 0, LadderProgress{}.Percent())
}
