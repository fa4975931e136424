package parsing

import (
	"sort"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/jonathan/ladder-scraper/internal/types"
)

// IndexEntry is one ladder listed on the index page.
type IndexEntry struct {
	types.LadderIndexEntry
	Type types.LadderType
	// Href is the detail page link as written on the page, possibly relative.
	Href string
}

// Index holds the listed ladders by category, in page order until Sort is called.
type Index struct {
	Rating   []IndexEntry
	Division []IndexEntry
	Extra    []IndexEntry
}

// Entries returns every entry in the fixed category order rating, division, extra.
func (ix *Index) Entries() []IndexEntry {
	out := make([]IndexEntry, 0, ix.Len())
	out = append(out, ix.Rating...)
	out = append(out, ix.Division...)
	return append(out, ix.Extra...)
}

// Len returns the number of entries across all categories.
func (ix *Index) Len() int {
	return len(ix.Rating) + len(ix.Division) + len(ix.Extra)
}

// Sort orders each category ascending by id.
func (ix *Index) Sort() {
	for _, entries := range [][]IndexEntry{ix.Rating, ix.Division, ix.Extra} {
		sort.SliceStable(entries, func(i, j int) bool { return entries[i].ID < entries[j].ID })
	}
}

func (ix *Index) add(e IndexEntry) {
	switch e.Type {
	case types.LadderTypeExtra:
		ix.Extra = append(ix.Extra, e)
	case types.LadderTypeDivision:
		ix.Division = append(ix.Division, e)
	default:
		ix.Rating = append(ix.Rating, e)
	}
}

// ClassifyLadder assigns a category from the ladder name. The first matching rule wins.
func ClassifyLadder(name string) types.LadderType {
	switch {
	case strings.Contains(name, "Extra"):
		return types.LadderTypeExtra
	case strings.Contains(name, "Div."):
		return types.LadderTypeDivision
	default:
		return types.LadderTypeRating
	}
}

// ParseIndex reads every table row of the ladder listing page. Rows that cannot be read
// are returned as RowErrors and do not stop the parse.
func ParseIndex(html string) (*Index, []*RowError, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, nil, &ParseError{Message: "failed to parse index HTML", Cause: err}
	}

	ix := &Index{}
	var skipped []*RowError

	doc.Find("table").Each(func(t int, table *goquery.Selection) {
		table.Find("tr").Each(func(r int, row *goquery.Selection) {
			entry, err := parseIndexRow(row)
			if err != nil {
				skipped = append(skipped, &RowError{Table: t, Row: r, Cause: err})
				return
			}
			ix.add(entry)
		})
	})

	return ix, skipped, nil
}

// parseIndexRow reads cells: id, link to the ladder (text is the name), problem count.
func parseIndexRow(row *goquery.Selection) (IndexEntry, error) {
	cells := row.Find("td")
	if cells.Length() < 3 {
		return IndexEntry{}, ErrTooFewCells
	}

	id, err := strconv.Atoi(strings.TrimSpace(cells.Eq(0).Text()))
	if err != nil {
		return IndexEntry{}, ErrNonNumericID
	}

	link := cells.Eq(1).Find("a").First()
	if link.Length() == 0 {
		return IndexEntry{}, ErrMissingLink
	}

	count, err := strconv.Atoi(strings.TrimSpace(cells.Eq(2).Text()))
	if err != nil {
		return IndexEntry{}, ErrNonNumericCount
	}

	name := cleanText(link.Text())
	if name == "" {
		return IndexEntry{}, ErrMissingName
	}
	href, _ := link.Attr("href")

	return IndexEntry{
		LadderIndexEntry: types.LadderIndexEntry{ID: id, Name: name, ProblemCount: count},
		Type:             ClassifyLadder(name),
		Href:             strings.TrimSpace(href),
	}, nil
}
