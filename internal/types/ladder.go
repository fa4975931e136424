//nolint:revive // types is a standard Go package name pattern
package types

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
)

// LadderType is the category a ladder is listed under.
type LadderType string

const (
	// LadderTypeRating is a ladder grouped by rating band.
	LadderTypeRating LadderType = "rating"
	// LadderTypeDivision is a ladder grouped by contest division.
	LadderTypeDivision LadderType = "division"
	// LadderTypeExtra is an additional themed ladder.
	LadderTypeExtra LadderType = "extra"
)

// LadderTypes returns the categories in the fixed processing order.
func LadderTypes() []LadderType {
	return []LadderType{LadderTypeRating, LadderTypeDivision, LadderTypeExtra}
}

// ParseLadderType converts a string into a LadderType.
func ParseLadderType(s string) (LadderType, error) {
	switch t := LadderType(strings.ToLower(strings.TrimSpace(s))); t {
	case LadderTypeRating, LadderTypeDivision, LadderTypeExtra:
		return t, nil
	default:
		return "", fmt.Errorf("unknown ladder type %q", s)
	}
}

// Ladder is a complete ladder with its ordered problems.
type Ladder struct {
	ID              int        `json:"id" validate:"min=1"`
	Name            string     `json:"name" validate:"required"`
	Type            LadderType `json:"type" validate:"oneof=rating division extra"`
	Description     string     `json:"description"`
	DifficultyLevel int        `json:"difficultyLevel" validate:"min=1"`
	ProblemCount    int        `json:"problemCount" validate:"min=0"`
	Problems        []Problem  `json:"problems" validate:"dive"`

	extra *members
}

var ladderLayout = memberLayout{
	modeled: []string{"id", "name", "type", "description", "difficultyLevel", "problemCount", "problems"},
}

type ladderFields Ladder

// MarshalJSON writes the ladder along with any members kept from the file it was read from.
func (l Ladder) MarshalJSON() ([]byte, error) {
	return marshalWithMembers(ladderFields(l), ladderLayout, l.extra)
}

// UnmarshalJSON reads a stored ladder. Members outside the struct survive a rewrite.
func (l *Ladder) UnmarshalJSON(data []byte) error {
	if isNull(data) {
		return nil
	}
	var fields ladderFields
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}
	extra, err := extraMembers(data, ladderLayout)
	if err != nil {
		return err
	}
	*l = Ladder(fields)
	l.extra = extra
	return nil
}

// NewLadder builds a validated Ladder. ProblemCount is derived from problems, and a
// difficulty level below 1 falls back to 1.
func NewLadder(id int, name string, ladderType LadderType, description string, difficultyLevel int, problems []Problem) (*Ladder, error) {
	if difficultyLevel < 1 {
		difficultyLevel = 1
	}
	if problems == nil {
		problems = []Problem{}
	}

	l := &Ladder{
		ID:              id,
		Name:            strings.TrimSpace(name),
		Type:            ladderType,
		Description:     strings.TrimSpace(description),
		DifficultyLevel: difficultyLevel,
		ProblemCount:    len(problems),
		Problems:        problems,
	}
	if err := l.Validate(); err != nil {
		return nil, err
	}
	return l, nil
}

// Validate checks the ladder and every contained problem.
func (l *Ladder) Validate() error {
	return newValidationError("ladder", validate.Struct(l))
}

// IndexEntry reduces the ladder to its index form.
func (l *Ladder) IndexEntry() LadderIndexEntry {
	return LadderIndexEntry{
		ID:           l.ID,
		Name:         l.Name,
		ProblemCount: l.ProblemCount,
	}
}

// LadderIndexEntry is one row of index.json.
type LadderIndexEntry struct {
	ID           int    `json:"id"`
	Name         string `json:"name"`
	ProblemCount int    `json:"problemCount"`
}

// LadderIndex groups index entries by category.
type LadderIndex struct {
	Rating   []LadderIndexEntry `json:"rating"`
	Division []LadderIndexEntry `json:"division"`
	Extra    []LadderIndexEntry `json:"extra"`
}

// NewLadderIndex returns an index with empty, non-nil category lists.
func NewLadderIndex() *LadderIndex {
	return &LadderIndex{
		Rating:   []LadderIndexEntry{},
		Division: []LadderIndexEntry{},
		Extra:    []LadderIndexEntry{},
	}
}

// Add appends an entry under the given category.
func (idx *LadderIndex) Add(t LadderType, entry LadderIndexEntry) {
	switch t {
	case LadderTypeRating:
		idx.Rating = append(idx.Rating, entry)
	case LadderTypeDivision:
		idx.Division = append(idx.Division, entry)
	case LadderTypeExtra:
		idx.Extra = append(idx.Extra, entry)
	}
}

// Category returns the entries listed under t.
func (idx *LadderIndex) Category(t LadderType) []LadderIndexEntry {
	switch t {
	case LadderTypeRating:
		return idx.Rating
	case LadderTypeDivision:
		return idx.Division
	case LadderTypeExtra:
		return idx.Extra
	default:
		return nil
	}
}

// Sort orders every category ascending by id.
func (idx *LadderIndex) Sort() {
	for _, entries := range [][]LadderIndexEntry{idx.Rating, idx.Division, idx.Extra} {
		sort.SliceStable(entries, func(i, j int) bool { return entries[i].ID < entries[j].ID })
	}
}

// Len returns the number of entries across all categories.
func (idx *LadderIndex) Len() int {
	return len(idx.Rating) + len(idx.Division) + len(idx.Extra)
}
