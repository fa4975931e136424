package scraper

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/jonathan/ladder-scraper/internal/fetch"
	"github.com/jonathan/ladder-scraper/internal/logger"
	"github.com/jonathan/ladder-scraper/internal/observability"
	"github.com/jonathan/ladder-scraper/internal/storage"
	"github.com/jonathan/ladder-scraper/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testBase = "https://a2oj.example/server/"

const indexPage = `<table>
<tr><th>ID</th><th>Name</th><th>Problems</th></tr>
<tr><td>2</td><td><a href="Ladder2.html">1300 &lt;= Rating &lt;= 1399</a></td><td>1</td></tr>
<tr><td>11</td><td><a href="Ladder11.html">Codeforces Div. 2, A</a></td><td>2</td></tr>
<tr><td>1</td><td><a href="Ladder1.html">Rating &lt; 1300</a></td><td>2</td></tr>
<tr><td>22</td><td><a href="">Extra 1</a></td><td>1</td></tr>
</table>`

func ladderPage(rows ...string) string {
	page := `<table><tr><td>Description: practice</td></tr><tr><td>Difficulty Level: 2</td></tr></table><table>
<tr><th>#</th><th>Name</th><th>Judge</th><th>Difficulty</th></tr>`
	for _, r := range rows {
		page += r
	}
	return page + "</table>"
}

func row(pos, contest int, index, name string) string {
	return fmt.Sprintf(`<tr><td>%d</td><td><a href="https://codeforces.com/problemset/problem/%d/%s">%s</a></td><td>CF</td><td>1</td></tr>`,
		pos, contest, index, name)
}

type fakeSource struct {
	pages    map[string]string
	failures map[string]error
	visited  []string
}

func (f *fakeSource) Page(_ context.Context, url string) (string, error) {
	f.visited = append(f.visited, url)
	if err, ok := f.failures[url]; ok {
		return "", err
	}
	page, ok := f.pages[url]
	if !ok {
		return "", &fetch.Error{URL: url, Message: "HTTP status 404", StatusCode: http.StatusNotFound}
	}
	return page, nil
}

func newFakeSource() *fakeSource {
	return &fakeSource{
		pages: map[string]string{
			testBase + "Ladders.html": indexPage,
			testBase + "Ladder1.html": ladderPage(
				row(1, 4, "A", "Watermelon"),
				`<tr><td>2</td><td><a href="https://uva.example/100">Off-site</a></td></tr>`,
				row(3, 71, "A", "Way Too Long Words"),
			),
			testBase + "Ladder2.html":  ladderPage(row(1, 1, "A", "Theatre Square")),
			testBase + "Ladder11.html": ladderPage(row(1, 158, "A", "Next Round"), row(2, 50, "A", "Domino piling")),
			testBase + "Ladder22.html": ladderPage(row(1, 52, "B2", "Tricky")),
		},
		failures: map[string]error{},
	}
}

func newTestScraper(t *testing.T, source fetch.PageSource, failFast bool) (*Scraper, *storage.Store, *observer.ObservedLogs, *bytes.Buffer) {
	t.Helper()
	core, logs := observer.New(zapcore.DebugLevel)
	store := storage.New(t.TempDir())
	var out bytes.Buffer
	s := New(Config{BaseURL: testBase, IndexPage: "Ladders.html", FailFast: failFast},
		source, store, logger.FromZap(zap.New(core)), observability.NewPrinter(&out))
	return s, store, logs, &out
}

func TestRun_WritesLaddersAndIndex(t *testing.T) {
	source := newFakeSource()
	s, store, logs, out := newTestScraper(t, source, false)

	summary, err := s.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 4, summary.Ladders)
	assert.Equal(t, 6, summary.Problems)
	assert.Equal(t, 1, summary.SkippedRows)
	assert.Empty(t, summary.Failed)
	assert.NotEmpty(t, summary.RunID)

	// Fixed category order: rating, division, extra. Page order inside a category.
	assert.Equal(t, []string{
		testBase + "Ladders.html",
		testBase + "Ladder2.html",
		testBase + "Ladder1.html",
		testBase + "Ladder11.html",
		testBase + "Ladder22.html",
	}, source.visited)

	ladder, err := store.ReadLadderByID(1)
	require.NoError(t, err)
	assert.Equal(t, "Rating < 1300", ladder.Name)
	assert.Equal(t, types.LadderTypeRating, ladder.Type)
	assert.Equal(t, "practice", ladder.Description)
	assert.Equal(t, 2, ladder.DifficultyLevel)
	assert.Equal(t, 2, ladder.ProblemCount)
	assert.Equal(t, []int{1, 3}, []int{ladder.Problems[0].Position, ladder.Problems[1].Position})

	idx, err := store.ReadIndex()
	require.NoError(t, err)
	assert.Equal(t, []types.LadderIndexEntry{
		{ID: 1, Name: "Rating < 1300", ProblemCount: 2},
		{ID: 2, Name: "1300 <= Rating <= 1399", ProblemCount: 1},
	}, idx.Rating)
	assert.Equal(t, []types.LadderIndexEntry{{ID: 11, Name: "Codeforces Div. 2, A", ProblemCount: 2}}, idx.Division)
	assert.Equal(t, []types.LadderIndexEntry{{ID: 22, Name: "Extra 1", ProblemCount: 1}}, idx.Extra)

	warnings := logs.FilterMessage("malformed row skipped").All()
	require.Len(t, warnings, 1)
	assert.Equal(t, int64(1), warnings[0].ContextMap()["ladder_id"])
	assert.Equal(t, summary.RunID, warnings[0].ContextMap()["run_id"])

	assert.Contains(t, out.String(), "SCRAPE COMPLETE")
	assert.Contains(t, out.String(), "✓ Ladder 11:   2 problems")
}

func TestRun_SkipsUnreachableLadder(t *testing.T) {
	source := newFakeSource()
	source.failures[testBase+"Ladder11.html"] = errors.New("connection reset")
	s, store, logs, out := newTestScraper(t, source, false)

	summary, err := s.Run(context.Background())
	require.Error(t, err)

	var incomplete *IncompleteError
	require.ErrorAs(t, err, &incomplete)
	var pageErr *PageError
	require.ErrorAs(t, err, &pageErr)
	assert.Equal(t, 11, pageErr.LadderID)

	assert.Equal(t, 3, summary.Ladders)
	require.Len(t, summary.Failed, 1)
	assert.Len(t, source.visited, 5, "the run continues past the failed page")

	_, err = store.ReadLadderByID(11)
	require.Error(t, err)
	idx, err := store.ReadIndex()
	require.NoError(t, err)
	assert.Empty(t, idx.Division, "failed ladders are left out of the index")
	assert.Len(t, idx.Extra, 1)

	assert.Equal(t, 1, logs.FilterMessage("ladder page skipped").Len())
	assert.Contains(t, out.String(), "FAILED LADDERS")
}

func TestRun_FailFastStopsAtFirstFailure(t *testing.T) {
	source := newFakeSource()
	delete(source.pages, testBase+"Ladder1.html")
	s, store, _, _ := newTestScraper(t, source, true)

	summary, err := s.Run(context.Background())
	var pageErr *PageError
	require.ErrorAs(t, err, &pageErr)
	assert.Equal(t, 1, pageErr.LadderID)

	var fetchErr *fetch.Error
	require.ErrorAs(t, err, &fetchErr)
	assert.Equal(t, http.StatusNotFound, fetchErr.StatusCode)

	assert.Equal(t, 1, summary.Ladders, "ladders completed before the failure are kept")
	_, err = store.ReadLadderByID(2)
	require.NoError(t, err)
	_, err = os.Stat(filepath.Join(store.Dir(), storage.IndexFile))
	assert.True(t, os.IsNotExist(err), "no index is written for an aborted run")
}

func TestRun_IndexFailureIsFatal(t *testing.T) {
	source := newFakeSource()
	source.failures[testBase+"Ladders.html"] = errors.New("timeout")
	s, _, _, _ := newTestScraper(t, source, false)

	_, err := s.Run(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to fetch ladder index")
	assert.Len(t, source.visited, 1)
}

func TestRun_CancelledContext(t *testing.T) {
	source := newFakeSource()
	s, _, _, _ := newTestScraper(t, source, false)

	ctx, cancel := context.WithCancel(context.Background())
	cancelling := &cancelAfterIndex{fakeSource: source, cancel: cancel}
	s.source = cancelling

	_, err := s.Run(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Len(t, source.visited, 1)
}

type cancelAfterIndex struct {
	*fakeSource
	cancel context.CancelFunc
}

func (c *cancelAfterIndex) Page(ctx context.Context, url string) (string, error) {
	page, err := c.fakeSource.Page(ctx, url)
	c.cancel()
	return page, err
}

func TestRun_WithPacedCollector(t *testing.T) {
	source := newFakeSource()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		page, ok := source.pages[testBase+r.URL.Path[1:]]
		if !ok {
			http.NotFound(w, r)
			return
		}
		_, _ = w.Write([]byte(page))
	}))
	defer server.Close()

	const delay = 40 * time.Millisecond
	collector, err := fetch.NewCollector(nil, delay)
	require.NoError(t, err)

	store := storage.New(t.TempDir())
	s := New(Config{BaseURL: server.URL + "/", IndexPage: "Ladders.html"},
		collector, store, logger.NewNop(), observability.NewPrinter(&bytes.Buffer{}))

	start := time.Now()
	summary, err := s.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 4, summary.Ladders)
	// Five requests need at least four gaps.
	assert.GreaterOrEqual(t, time.Since(start), 4*delay)
}
