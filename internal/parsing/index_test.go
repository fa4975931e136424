package parsing

import (
	"errors"
	"testing"

	"github.com/jonathan/ladder-scraper/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const indexHTML = `<html><body>
<table>
  <tr><th>ID</th><th>Name</th><th>Problems</th></tr>
  <tr><td>11</td><td><a href="Ladder11.html">Codeforces Div. 2, A</a></td><td>100</td></tr>
  <tr><td>2</td><td><a href="Ladder2.html">1300 &lt;= Codeforces Rating &lt;= 1399</a></td><td>100</td></tr>
  <tr><td>1</td><td><a href="Ladder1.html">Codeforces Rating &lt; 1300</a></td><td>100</td></tr>
</table>
<table>
  <tr><td>22</td><td><a href="Ladder22.html">Extra Div. 1, E</a></td><td>39</td></tr>
  <tr><td>x</td><td><a href="LadderX.html">Broken</a></td><td>5</td></tr>
  <tr><td>23</td><td>No link here</td><td>5</td></tr>
  <tr><td>24</td><td><a href="Ladder24.html">Bad count</a></td><td>n/a</td></tr>
  <tr><td>25</td><td><a href="Ladder25.html">  </a></td><td>5</td></tr>
</table>
</body></html>`

func TestClassifyLadder(t *testing.T) {
	tests := []struct {
		name string
		want types.LadderType
	}{
		{"Div. 2 Problems", types.LadderTypeDivision},
		{"Extra 5", types.LadderTypeExtra},
		{"1200-1399", types.LadderTypeRating},
		{"Extra Div. 1, E", types.LadderTypeExtra},
		{"Codeforces Rating >= 2200", types.LadderTypeRating},
		{"Div 2 without dot", types.LadderTypeRating},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ClassifyLadder(tt.name))
		})
	}
}

func TestParseIndex(t *testing.T) {
	ix, skipped, err := ParseIndex(indexHTML)
	require.NoError(t, err)

	require.Len(t, ix.Rating, 2)
	require.Len(t, ix.Division, 1)
	require.Len(t, ix.Extra, 1)

	assert.Equal(t, IndexEntry{
		LadderIndexEntry: types.LadderIndexEntry{ID: 11, Name: "Codeforces Div. 2, A", ProblemCount: 100},
		Type:             types.LadderTypeDivision,
		Href:             "Ladder11.html",
	}, ix.Division[0])
	assert.Equal(t, "1300 <= Codeforces Rating <= 1399", ix.Rating[0].Name)
	assert.Equal(t, 39, ix.Extra[0].ProblemCount)

	// Header row plus four malformed rows.
	require.Len(t, skipped, 5)
	assert.True(t, errors.Is(skipped[0], ErrTooFewCells))
	assert.True(t, errors.Is(skipped[1], ErrNonNumericID))
	assert.True(t, errors.Is(skipped[2], ErrMissingLink))
	assert.True(t, errors.Is(skipped[3], ErrNonNumericCount))
	assert.True(t, errors.Is(skipped[4], ErrMissingName))
	assert.False(t, IsLayoutRow(skipped[4]))
	assert.Equal(t, 1, skipped[1].Table)
}

func TestIndex_SortAndEntries(t *testing.T) {
	ix, _, err := ParseIndex(indexHTML)
	require.NoError(t, err)

	ix.Sort()
	assert.Equal(t, 1, ix.Rating[0].ID)
	assert.Equal(t, 2, ix.Rating[1].ID)

	var ids []int
	for _, e := range ix.Entries() {
		ids = append(ids, e.ID)
	}
	assert.Equal(t, []int{1, 2, 11, 22}, ids)
	assert.Equal(t, 4, ix.Len())
}

func TestParseIndex_NoTables(t *testing.T) {
	ix, skipped, err := ParseIndex("<html><body><p>maintenance</p></body></html>")
	require.NoError(t, err)
	assert.Zero(t, ix.Len())
	assert.Empty(t, skipped)
}
