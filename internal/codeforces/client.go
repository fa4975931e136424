// Package codeforces reads problem metadata and user submissions from the Codeforces API.
package codeforces

import (
	"context"
	"encoding/json"
	"errors"
	"net/url"
	"strings"

	"github.com/jonathan/ladder-scraper/internal/fetch"
	"github.com/jonathan/ladder-scraper/internal/types"
)

const statusOK = "OK"

// Default endpoints.
const (
	DefaultProblemsetURL = "https://codeforces.com/api/problemset.problems"
	DefaultUserStatusURL = "https://codeforces.com/api/user.status"
)

// Config holds the endpoints and HTTP options used by Client.
type Config struct {
	ProblemsetURL string
	UserStatusURL string
	Fetch         *fetch.Options
}

// Client talks to the Codeforces API with one GET per call and no retries.
type Client struct {
	problemsetURL string
	userStatusURL string
	opts          *fetch.Options
}

// NewClient builds a Client, filling unset endpoints with the public ones.
func NewClient(cfg Config) *Client {
	c := &Client{
		problemsetURL: cfg.ProblemsetURL,
		userStatusURL: cfg.UserStatusURL,
		opts:          cfg.Fetch,
	}
	if c.problemsetURL == "" {
		c.problemsetURL = DefaultProblemsetURL
	}
	if c.userStatusURL == "" {
		c.userStatusURL = DefaultUserStatusURL
	}
	if c.opts == nil {
		c.opts = fetch.DefaultOptions()
	}
	return c
}

type envelope struct {
	Status  string          `json:"status"`
	Comment string          `json:"comment"`
	Result  json.RawMessage `json:"result"`
}

type apiProblem struct {
	ContestID int      `json:"contestId"`
	Index     string   `json:"index"`
	Name      string   `json:"name"`
	Type      string   `json:"type"`
	Rating    *int     `json:"rating"`
	Tags      []string `json:"tags"`
}

type apiSubmission struct {
	ID        int64      `json:"id"`
	ContestID int        `json:"contestId"`
	Problem   apiProblem `json:"problem"`
	Verdict   string     `json:"verdict"`
}

// Submission is one attempt by a user on a problem.
type Submission struct {
	ID        int64
	ContestID int
	Index     string
	Verdict   string
}

// Key returns the join key of the submitted problem.
func (s Submission) Key() string {
	return types.JoinKey(s.ContestID, s.Index)
}

// Accepted reports whether the submission was judged correct.
func (s Submission) Accepted() bool {
	return s.Verdict == statusOK
}

// Problemset fetches every known problem. Records without a contest id or an index are
// dropped since they cannot be joined.
func (c *Client) Problemset(ctx context.Context) ([]types.ExternalProblem, error) {
	var result struct {
		Problems []apiProblem `json:"problems"`
	}
	if err := c.get(ctx, c.problemsetURL, &result); err != nil {
		return nil, err
	}

	problems := make([]types.ExternalProblem, 0, len(result.Problems))
	for _, p := range result.Problems {
		if p.ContestID == 0 || p.Index == "" {
			continue
		}
		problems = append(problems, types.ExternalProblem{
			ContestID: p.ContestID,
			Index:     p.Index,
			Name:      p.Name,
			Type:      p.Type,
			Rating:    p.Rating,
			Tags:      p.Tags,
		})
	}
	return problems, nil
}

// UserStatus fetches every submission of handle.
func (c *Client) UserStatus(ctx context.Context, handle string) ([]Submission, error) {
	handle = strings.TrimSpace(handle)
	if handle == "" {
		return nil, errors.New("handle is required")
	}

	u, err := url.Parse(c.userStatusURL)
	if err != nil {
		return nil, &fetch.Error{URL: c.userStatusURL, Message: "invalid URL", Cause: err}
	}
	q := u.Query()
	q.Set("handle", handle)
	u.RawQuery = q.Encode()

	var result []apiSubmission
	if err := c.get(ctx, u.String(), &result); err != nil {
		return nil, err
	}

	subs := make([]Submission, 0, len(result))
	for _, s := range result {
		contestID := s.Problem.ContestID
		if contestID == 0 {
			contestID = s.ContestID
		}
		if contestID == 0 || s.Problem.Index == "" {
			continue
		}
		subs = append(subs, Submission{
			ID:        s.ID,
			ContestID: contestID,
			Index:     s.Problem.Index,
			Verdict:   s.Verdict,
		})
	}
	return subs, nil
}

// get fetches urlStr and decodes the "result" member into out. The API answers errors
// such as an unknown handle with a non-200 status and a JSON body, so the body is
// inspected before the HTTP error is returned.
func (c *Client) get(ctx context.Context, urlStr string, out any) error {
	res, fetchErr := fetch.URL(ctx, urlStr, c.opts)
	if res == nil {
		return fetchErr
	}

	var env envelope
	if err := json.Unmarshal(res.Body, &env); err != nil {
		if fetchErr != nil {
			return fetchErr
		}
		return &DecodeError{URL: urlStr, Cause: err}
	}
	if env.Status != statusOK {
		return &APIError{Status: env.Status, Comment: env.Comment}
	}
	if fetchErr != nil {
		return fetchErr
	}

	if err := json.Unmarshal(env.Result, out); err != nil {
		return &DecodeError{URL: urlStr, Cause: err}
	}
	return nil
}
