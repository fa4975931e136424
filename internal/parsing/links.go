package parsing

import (
	"regexp"
	"strconv"
	"strings"
)

// problemLinkPatterns are the two URL shapes a ladder uses to point at a judge problem.
var problemLinkPatterns = []*regexp.Regexp{
	regexp.MustCompile(`codeforces\.com/problemset/problem/(\d+)/([A-Za-z]\d?)`),
	regexp.MustCompile(`codeforces\.com/contest/(\d+)/problem/([A-Za-z]\d?)`),
}

// ParseProblemLink extracts the contest id and the upper-cased problem index from href.
func ParseProblemLink(href string) (int, string, error) {
	for _, pattern := range problemLinkPatterns {
		match := pattern.FindStringSubmatch(href)
		if match == nil {
			continue
		}
		contestID, err := strconv.Atoi(match[1])
		if err != nil {
			return 0, "", &LinkError{Href: href, Cause: err}
		}
		return contestID, strings.ToUpper(match[2]), nil
	}
	return 0, "", &LinkError{Href: href}
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// cleanText collapses runs of whitespace, including the newlines and indentation left
// by the page markup, into single spaces.
func cleanText(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
