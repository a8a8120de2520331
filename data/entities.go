package data

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// AuthorDeleted is what we render for posts and comments whose author
// account no longer exists.
const AuthorDeleted = "[deleted]"

// Post is a single retrieved content item. MatchingComments holds only the
// comments that individually matched the keyword criteria; it is empty when
// comment search was disabled or nothing matched.
type Post struct {
	ID               string    `json:"id"`
	Title            string    `json:"title"`
	Text             string    `json:"text"`
	URL              string    `json:"url"`
	Score            int       `json:"score"`
	Author           string    `json:"author"`
	CreatedUTC       time.Time `json:"createdUtc"`
	UpvoteRatio      float64   `json:"upvoteRatio"`
	NumComments      int       `json:"numComments"`
	Permalink        string    `json:"permalink"`
	Language         string    `json:"language,omitempty"`
	MatchingComments []Comment `json:"matchingComments,omitempty"`
}

type Comment struct {
	Author     string    `json:"author"`
	Body       string    `json:"body"`
	Score      int       `json:"score"`
	CreatedUTC time.Time `json:"createdUtc"`
}

// ResultSet maps a subreddit name to the posts that matched there, in the
// order the source returned them.
type ResultSet map[string][]Post

// TotalPosts counts posts across all groups.
func (r ResultSet) TotalPosts() int {
	total := 0
	for _, posts := range r {
		total += len(posts)
	}
	return total
}

// Search is one completed search run, recorded for the history view.
type Search struct {
	ID           uuid.UUID      `db:"id"`
	SessionID    uuid.UUID      `db:"session_id"`
	Subreddits   pq.StringArray `db:"subreddits"`
	Keywords     pq.StringArray `db:"keywords"`
	Sort         string         `db:"sort"`
	TotalMatches int            `db:"total_matches"`
	CreatedAt    time.Time      `db:"created_at"`
}

// MatchedPost is the persisted form of a matched post. The full post record
// lives in the JSONB payload; the hash dedupes re-inserts of the same post
// within a search.
type MatchedPost struct {
	ID        int64     `db:"id"`
	SearchID  uuid.UUID `db:"search_id"`
	Subreddit string    `db:"subreddit"`
	Hash      string    `db:"hash"`
	DataRaw   []byte    `db:"data"`
	CreatedAt time.Time `db:"created_at"`
}

func NewMatchedPost(searchID uuid.UUID, subreddit string, post Post) (MatchedPost, error) {
	raw, err := json.Marshal(post)
	if err != nil {
		return MatchedPost{}, fmt.Errorf("marshal matched post: %w", err)
	}

	return MatchedPost{
		SearchID:  searchID,
		Subreddit: subreddit,
		Hash:      buildPostHash(searchID, subreddit, post.Permalink),
		DataRaw:   raw,
	}, nil
}

func buildPostHash(searchID uuid.UUID, subreddit, permalink string) string {
	input := fmt.Sprintf("%s:%s:%s", searchID.String(), subreddit, permalink)
	sum := sha256.Sum256([]byte(input))
	return hex.EncodeToString(sum[:])
}
