package parsing

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/jonathan/ladder-scraper/internal/types"
)

const (
	descriptionMarker = "Description:"
	difficultyMarker  = "Difficulty Level:"
)

var difficultyPattern = regexp.MustCompile(`Difficulty Level:\s*(\d+)`)

// ParseLadder builds a Ladder from its detail page. The first table holds the metadata
// and the second the problems. Problem rows that cannot be read are returned as
// RowErrors; the ladder keeps every row that could.
func ParseLadder(html string, id int, name string, ladderType types.LadderType) (*types.Ladder, []*RowError, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, nil, &ParseError{Message: "failed to parse ladder HTML", Cause: err}
	}

	tables := doc.Find("table")

	description, level := "", 1
	if tables.Length() >= 1 {
		description, level = parseMetadata(tables.Eq(0))
	}

	problems := []types.Problem{}
	var skipped []*RowError
	if tables.Length() >= 2 {
		tables.Eq(1).Find("tr").Each(func(r int, row *goquery.Selection) {
			p, err := ParseProblemRow(row)
			if err != nil {
				skipped = append(skipped, &RowError{Table: 1, Row: r, Cause: err})
				return
			}
			problems = append(problems, p)
		})
	}

	ladder, err := types.NewLadder(id, name, ladderType, description, level, problems)
	if err != nil {
		return nil, skipped, err
	}
	return ladder, skipped, nil
}

// parseMetadata returns the description and difficulty level. A missing or unreadable
// level falls back to 1.
func parseMetadata(table *goquery.Selection) (string, int) {
	description, level := "", 1

	table.Find("tr").Each(func(_ int, row *goquery.Selection) {
		text := row.Text()
		switch {
		case strings.Contains(text, descriptionMarker):
			cell := strings.TrimSpace(row.Find("td").First().Text())
			if i := strings.LastIndex(cell, descriptionMarker); i >= 0 {
				description = cleanText(cell[i+len(descriptionMarker):])
			}
		case strings.Contains(text, difficultyMarker):
			if m := difficultyPattern.FindStringSubmatch(text); m != nil {
				if n, err := strconv.Atoi(m[1]); err == nil && n >= 1 {
					level = n
				}
			}
		}
	})

	return description, level
}

// ParseProblemRow reads one row of the problems table: position, link to the problem
// (text is the name) and an optional numeric difficulty in the fourth cell.
func ParseProblemRow(row *goquery.Selection) (types.Problem, error) {
	if row.Find("th").Length() > 0 {
		return types.Problem{}, ErrHeaderRow
	}

	cells := row.Find("td")
	if cells.Length() < 2 {
		return types.Problem{}, ErrTooFewCells
	}

	positionText := strings.TrimSpace(cells.Eq(0).Text())
	if !isDigits(positionText) {
		return types.Problem{}, ErrNonNumericPosition
	}
	position, err := strconv.Atoi(positionText)
	if err != nil {
		return types.Problem{}, ErrNonNumericPosition
	}

	link := cells.Eq(1).Find("a").First()
	if link.Length() == 0 {
		return types.Problem{}, ErrMissingLink
	}
	href, _ := link.Attr("href")

	contestID, problemID, err := ParseProblemLink(href)
	if err != nil {
		return types.Problem{}, err
	}

	p, err := types.NewProblem(position, cleanText(link.Text()), contestID, problemID)
	if err != nil {
		return types.Problem{}, err
	}

	if cells.Length() >= 4 {
		if text := strings.TrimSpace(cells.Eq(3).Text()); isDigits(text) {
			if d, err := strconv.Atoi(text); err == nil {
				p = p.WithDifficulty(d)
			}
		}
	}

	return p, nil
}
