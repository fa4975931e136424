package parsing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseProblemLink(t *testing.T) {
	tests := []struct {
		name      string
		href      string
		contestID int
		problemID string
	}{
		{"problemset shape", "https://codeforces.com/problemset/problem/4/A", 4, "A"},
		{"contest shape", "http://codeforces.com/contest/52/problem/B2", 52, "B2"},
		{"lower-case index", "https://codeforces.com/problemset/problem/1352/c", 1352, "C"},
		{"trailing path", "https://www.codeforces.com/contest/266/problem/A?locale=en", 266, "A"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			contestID, problemID, err := ParseProblemLink(tt.href)
			require.NoError(t, err)
			assert.Equal(t, tt.contestID, contestID)
			assert.Equal(t, tt.problemID, problemID)
		})
	}
}

func TestParseProblemLink_Unrecognized(t *testing.T) {
	for _, href := range []string{
		"",
		"https://acm.timus.ru/problem.aspx?num=1000",
		"https://codeforces.com/gym/100000/problem/A",
		"https://codeforces.com/problemset/problem/x/A",
	} {
		_, _, err := ParseProblemLink(href)
		var linkErr *LinkError
		require.ErrorAs(t, err, &linkErr, href)
		assert.Equal(t, href, linkErr.Href)
	}
}

func TestIsDigits(t *testing.T) {
	assert.True(t, isDigits("12"))
	assert.False(t, isDigits(""))
	assert.False(t, isDigits("1a"))
	assert.False(t, isDigits("-1"))
}

func TestCleanText(t *testing.T) {
	assert.Equal(t, "Way Too Long Words", cleanText("\n\t Way  Too\n Long Words  "))
	assert.Equal(t, "", cleanText(" \n "))
}
