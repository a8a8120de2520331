package matchers

import (
	"strings"

	"github.com/mivanic/redscan/data"
)

// Criteria describes one keyword search pass. Keywords are case-insensitive
// substrings combined with OR semantics; the title is always searched, body
// and comments only when the corresponding flag is set.
type Criteria struct {
	Keywords       []string
	SearchBody     bool
	SearchComments bool
	MinScore       int
}

// ContainsAnyKeyword reports whether any keyword appears as a
// case-insensitive substring of text. An empty keyword set matches nothing.
func ContainsAnyKeyword(text string, keywords []string) bool {
	if text == "" || len(keywords) == 0 {
		return false
	}

	lower := strings.ToLower(text)
	for _, keyword := range keywords {
		if keyword == "" {
			continue
		}
		if strings.Contains(lower, strings.ToLower(keyword)) {
			return true
		}
	}

	return false
}

// MatchPost decides whether a post qualifies for inclusion and returns the
// comments that individually matched. Posts below the score threshold are
// rejected before any keyword test runs.
func MatchPost(post data.Post, comments []data.Comment, c Criteria) (bool, []data.Comment) {
	if post.Score < c.MinScore {
		return false, nil
	}

	titleMatch := ContainsAnyKeyword(post.Title, c.Keywords)

	bodyMatch := false
	if c.SearchBody {
		bodyMatch = ContainsAnyKeyword(post.Text, c.Keywords)
	}

	var matching []data.Comment
	if c.SearchComments {
		for _, comment := range comments {
			if ContainsAnyKeyword(comment.Body, c.Keywords) {
				matching = append(matching, comment)
			}
		}
	}

	if titleMatch || bodyMatch || len(matching) > 0 {
		return true, matching
	}

	return false, nil
}
