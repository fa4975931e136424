// Package types provides the record types shared by the scraper and the enricher.
//
//nolint:revive // types is a standard Go package name pattern
package types

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
)

// problemIndexPattern matches an in-contest problem index: one uppercase letter with an
// optional trailing digit ("A", "B2").
var problemIndexPattern = regexp.MustCompile(`^[A-Z][0-9]?$`)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	if err := v.RegisterValidation("problemindex", func(fl validator.FieldLevel) bool {
		return problemIndexPattern.MatchString(fl.Field().String())
	}); err != nil {
		panic(fmt.Sprintf("failed to register problemindex validation: %v", err))
	}
	return v
}

// Problem is a single entry of a ladder. ContestID and ProblemID identify it and are
// never changed once set; Rating and Tags are filled in by enrichment.
type Problem struct {
	Position   int      `json:"position" validate:"min=1"`
	Name       string   `json:"name"`
	ContestID  int      `json:"contestId" validate:"min=1"`
	ProblemID  string   `json:"problemId" validate:"required,problemindex"`
	Difficulty *int     `json:"difficulty,omitempty" validate:"omitempty,min=0"`
	Rating     *int     `json:"rating,omitempty" validate:"omitempty,min=0"`
	Tags       []string `json:"tags,omitempty"`

	// extra keeps stored members this struct does not carry through a rewrite.
	extra *members
}

var problemLayout = memberLayout{
	modeled:   []string{"position", "name", "contestId", "problemId", "difficulty", "rating", "tags"},
	omittable: []string{"difficulty", "rating", "tags"},
}

type problemFields Problem

// MarshalJSON writes the problem along with any members kept from the file it was
// read from.
func (p Problem) MarshalJSON() ([]byte, error) {
	return marshalWithMembers(problemFields(p), problemLayout, p.extra)
}

// UnmarshalJSON reads a stored problem, keeping members a rewrite would otherwise drop.
func (p *Problem) UnmarshalJSON(data []byte) error {
	if isNull(data) {
		return nil
	}
	var fields problemFields
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}
	extra, err := extraMembers(data, problemLayout)
	if err != nil {
		return err
	}
	*p = Problem(fields)
	p.extra = extra
	return nil
}

// NewProblem builds a validated Problem. The problem index is upper-cased before validation.
func NewProblem(position int, name string, contestID int, problemID string) (Problem, error) {
	p := Problem{
		Position:  position,
		Name:      strings.TrimSpace(name),
		ContestID: contestID,
		ProblemID: strings.ToUpper(strings.TrimSpace(problemID)),
	}
	if err := p.Validate(); err != nil {
		return Problem{}, err
	}
	return p, nil
}

// WithDifficulty returns a copy of p carrying the ladder-local difficulty score.
func (p Problem) WithDifficulty(difficulty int) Problem {
	p.Difficulty = &difficulty
	return p
}

// Validate checks the problem against its field constraints.
func (p Problem) Validate() error {
	return newValidationError("problem", validate.Struct(p))
}

// Key returns the join key used against the external problem source.
func (p Problem) Key() string {
	return JoinKey(p.ContestID, p.ProblemID)
}

// HasIdentity reports whether both halves of the join key are present.
func (p Problem) HasIdentity() bool {
	return p.ContestID > 0 && p.ProblemID != ""
}

// JoinKey builds the "{contestId}-{problemId}" key.
func JoinKey(contestID int, problemID string) string {
	return strconv.Itoa(contestID) + "-" + problemID
}

// ExternalProblem is the rating/tag metadata for one problem as published by the judge.
// It only lives in memory during an enrichment run.
type ExternalProblem struct {
	ContestID int
	Index     string
	Name      string
	Type      string
	// Rating is nil when the problem is unrated.
	Rating *int
	Tags   []string
}

// Key returns the join key of the external record.
func (e ExternalProblem) Key() string {
	return JoinKey(e.ContestID, e.Index)
}
