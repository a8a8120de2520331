package export

import (
	"encoding/csv"
	"encoding/json"
	"io"
	"sort"
	"strconv"
	"time"

	"github.com/mivanic/redscan/data"
)

const timeLayout = "2006-01-02 15:04:05"

// FlatPost is one export row: a post tagged with the subreddit it came
// from, so the grouped result set flattens into a single table.
type FlatPost struct {
	Subreddit        string         `json:"subreddit"`
	ID               string         `json:"id"`
	Title            string         `json:"title"`
	Text             string         `json:"text"`
	URL              string         `json:"url"`
	Score            int            `json:"score"`
	Author           string         `json:"author"`
	CreatedUTC       string         `json:"created_utc"`
	UpvoteRatio      float64        `json:"upvote_ratio"`
	NumComments      int            `json:"num_comments"`
	Permalink        string         `json:"permalink"`
	Language         string         `json:"language,omitempty"`
	MatchingComments []data.Comment `json:"matching_comments,omitempty"`
}

// Flatten tags every post with its group name. Groups are emitted in sorted
// name order so repeated exports of the same set produce identical files.
// Fields that cannot be rendered come out as empty strings; rows are never
// dropped.
func Flatten(results data.ResultSet) []FlatPost {
	subreddits := make([]string, 0, len(results))
	for subreddit := range results {
		subreddits = append(subreddits, subreddit)
	}
	sort.Strings(subreddits)

	flat := make([]FlatPost, 0, results.TotalPosts())
	for _, subreddit := range subreddits {
		for _, post := range results[subreddit] {
			flat = append(flat, FlatPost{
				Subreddit:        subreddit,
				ID:               post.ID,
				Title:            post.Title,
				Text:             post.Text,
				URL:              post.URL,
				Score:            post.Score,
				Author:           post.Author,
				CreatedUTC:       formatTime(post.CreatedUTC),
				UpvoteRatio:      post.UpvoteRatio,
				NumComments:      post.NumComments,
				Permalink:        post.Permalink,
				Language:         post.Language,
				MatchingComments: post.MatchingComments,
			})
		}
	}

	return flat
}

var csvHeader = []string{
	"subreddit", "id", "title", "text", "url", "score", "author",
	"created_utc", "upvote_ratio", "num_comments", "permalink", "language",
	"matching_comments",
}

// WriteCSV writes one row per post. Matching comments are embedded as a
// JSON string column, empty when there are none.
func WriteCSV(w io.Writer, posts []FlatPost) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(csvHeader); err != nil {
		return err
	}

	for _, post := range posts {
		comments := ""
		if len(post.MatchingComments) > 0 {
			raw, err := json.Marshal(post.MatchingComments)
			if err == nil {
				comments = string(raw)
			}
		}

		record := []string{
			post.Subreddit,
			post.ID,
			post.Title,
			post.Text,
			post.URL,
			strconv.Itoa(post.Score),
			post.Author,
			post.CreatedUTC,
			strconv.FormatFloat(post.UpvoteRatio, 'f', -1, 64),
			strconv.Itoa(post.NumComments),
			post.Permalink,
			post.Language,
			comments,
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

func WriteJSON(w io.Writer, posts []FlatPost) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(posts)
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(timeLayout)
}
