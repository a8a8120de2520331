package sources

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/mivanic/redscan/enums"
	"github.com/mivanic/redscan/models"
)

const commentKind = "t1"

// Client fetches reddit's public JSON listings. Authentication, rate limits
// and transport details stay behind the injected http.Client.
type Client struct {
	httpClient *http.Client
	baseURL    string
	userAgent  string
}

func NewClient(httpClient *http.Client, baseURL, userAgent string) *Client {
	return &Client{
		httpClient: httpClient,
		baseURL:    baseURL,
		userAgent:  userAgent,
	}
}

// FetchPosts returns up to limit posts from a subreddit, ordered by the
// requested sort mode.
func (c *Client) FetchPosts(ctx context.Context, subreddit string, sort enums.SortMode, limit int) ([]models.RedditPost, error) {
	url := fmt.Sprintf("%s/r/%s/%s/.json?limit=%d", c.baseURL, subreddit, sort, limit)

	var listing models.RedditListing
	if err := c.fetch(ctx, url, &listing); err != nil {
		return nil, err
	}

	posts := make([]models.RedditPost, 0, len(listing.Data.Children))
	for _, child := range listing.Data.Children {
		posts = append(posts, child.Data)
	}

	return posts, nil
}

// FetchComments returns up to limit top-level-ish comments for a post. The
// comments endpoint answers with two listings; the second one holds the
// comment tree.
func (c *Client) FetchComments(ctx context.Context, subreddit, postID string, limit int) ([]models.RedditPost, error) {
	url := fmt.Sprintf("%s/r/%s/comments/%s/.json?limit=%d", c.baseURL, subreddit, postID, limit)

	var listings []models.RedditListing
	if err := c.fetch(ctx, url, &listings); err != nil {
		return nil, err
	}

	if len(listings) < 2 {
		return nil, nil
	}

	comments := make([]models.RedditPost, 0, len(listings[1].Data.Children))
	for _, child := range listings[1].Data.Children {
		// "more" stubs and other non-comment kinds are skipped
		if child.Kind != commentKind {
			continue
		}
		comments = append(comments, child.Data)
	}

	return comments, nil
}

func (c *Client) fetch(ctx context.Context, url string, dest any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}

	// Make the request look like a real browser to avoid blocks
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")
	req.Header.Set("Connection", "keep-alive")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("reddit returned status %d: %s", resp.StatusCode, string(body))
	}

	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		return err
	}

	return nil
}
