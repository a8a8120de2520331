package sources

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/pemistahl/lingua-go"
	"golang.org/x/sync/errgroup"

	"github.com/mivanic/redscan/data"
	"github.com/mivanic/redscan/enums"
	"github.com/mivanic/redscan/matchers"
	"github.com/mivanic/redscan/metrics"
	"github.com/mivanic/redscan/models"
)

// ScanParams describes one scan run. The same params apply to every
// subreddit in a multi-group scan.
type ScanParams struct {
	Keywords       []string
	Limit          int
	Sort           enums.SortMode
	SearchBody     bool
	SearchComments bool
	MinScore       int
}

// Scanner fetches subreddit listings and runs the keyword matcher over
// them. It holds no per-scan state; concurrent scans are fine.
type Scanner struct {
	logger       *slog.Logger
	client       *Client
	detector     lingua.LanguageDetector
	commentLimit int
	concurrency  int
}

func NewScanner(logger *slog.Logger, client *Client, commentLimit, concurrency int) *Scanner {
	if concurrency < 1 {
		concurrency = 1
	}

	detector := lingua.NewLanguageDetectorBuilder().
		FromLanguages(
			lingua.English,
			lingua.German,
			lingua.French,
			lingua.Spanish,
			lingua.Portuguese,
		).
		Build()

	return &Scanner{
		logger:       logger,
		client:       client,
		detector:     detector,
		commentLimit: commentLimit,
		concurrency:  concurrency,
	}
}

// ScanSubreddit fetches one subreddit and returns the posts that satisfy
// the criteria, in listing order. An upstream fetch failure is returned
// unmodified; zero matches is a valid outcome, not an error.
func (s *Scanner) ScanSubreddit(ctx context.Context, subreddit string, p ScanParams) ([]data.Post, error) {
	listing, err := s.client.FetchPosts(ctx, subreddit, p.Sort, p.Limit)
	if err != nil {
		metrics.ScanErrors.Inc()
		return nil, err
	}

	criteria := matchers.Criteria{
		Keywords:       normalizeKeywords(p.Keywords),
		SearchBody:     p.SearchBody,
		SearchComments: p.SearchComments,
		MinScore:       p.MinScore,
	}

	posts := make([]data.Post, 0, len(listing))
	for _, raw := range listing {
		metrics.PostsScanned.Inc()
		post := toPost(raw)

		var comments []data.Comment
		if p.SearchComments && len(criteria.Keywords) > 0 {
			comments = s.fetchComments(ctx, subreddit, raw.ID)
		}

		ok, matching := matchers.MatchPost(post, comments, criteria)
		if !ok {
			continue
		}

		post.MatchingComments = matching
		post.Language = s.detectLanguage(post.Title + " " + post.Text)
		posts = append(posts, post)
		metrics.MatchesFound.Inc()
	}

	s.logger.Debug("scanned subreddit", "subreddit", subreddit, "scanned", len(listing), "matched", len(posts))
	return posts, nil
}

// ScanSubreddits fans the same criteria out over every subreddit and keys
// the results by name. Group evaluations share no state, so they run in
// parallel up to the configured limit; the first upstream error cancels the
// rest and is surfaced unmodified.
func (s *Scanner) ScanSubreddits(ctx context.Context, subreddits []string, p ScanParams) (data.ResultSet, error) {
	results := make(data.ResultSet, len(subreddits))
	var mu sync.Mutex

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency)

	for _, subreddit := range subreddits {
		g.Go(func() error {
			posts, err := s.ScanSubreddit(ctx, subreddit, p)
			if err != nil {
				return err
			}

			mu.Lock()
			results[subreddit] = posts
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return results, nil
}

// fetchComments is best-effort: a failed comment fetch degrades that post
// to a title/body-only match instead of failing the whole scan.
func (s *Scanner) fetchComments(ctx context.Context, subreddit, postID string) []data.Comment {
	raw, err := s.client.FetchComments(ctx, subreddit, postID, s.commentLimit)
	if err != nil {
		metrics.ScanErrors.Inc()
		s.logger.Error("fetch comments", "subreddit", subreddit, "post_id", postID, "error", err)
		return nil
	}

	if len(raw) > s.commentLimit {
		raw = raw[:s.commentLimit]
	}

	comments := make([]data.Comment, 0, len(raw))
	for _, c := range raw {
		comments = append(comments, data.Comment{
			Author:     orDeleted(c.Author),
			Body:       c.Body,
			Score:      c.Score,
			CreatedUTC: toTime(c.CreatedUTC),
		})
	}

	return comments
}

func (s *Scanner) detectLanguage(text string) string {
	if strings.TrimSpace(text) == "" {
		return ""
	}

	lang, ok := s.detector.DetectLanguageOf(text)
	if !ok {
		return ""
	}

	return lang.IsoCode639_1().String()
}

func toPost(raw models.RedditPost) data.Post {
	return data.Post{
		ID:          raw.ID,
		Title:       raw.Title,
		Text:        raw.Selftext,
		URL:         raw.URL,
		Score:       raw.Score,
		Author:      orDeleted(raw.Author),
		CreatedUTC:  toTime(raw.CreatedUTC),
		UpvoteRatio: raw.UpvoteRatio,
		NumComments: raw.NumComments,
		Permalink:   "https://www.reddit.com" + raw.Permalink,
	}
}

// toTime leaves the zero value in place for missing timestamps; the
// post-hoc filter treats those as unparseable.
func toTime(createdUTC float64) time.Time {
	if createdUTC == 0 {
		return time.Time{}
	}
	return time.Unix(int64(createdUTC), 0).UTC()
}

func orDeleted(author string) string {
	if strings.TrimSpace(author) == "" {
		return data.AuthorDeleted
	}
	return author
}

func normalizeKeywords(keywords []string) []string {
	normalized := make([]string, 0, len(keywords))
	for _, keyword := range keywords {
		kw := strings.TrimSpace(strings.ToLower(keyword))
		if kw == "" {
			continue
		}
		normalized = append(normalized, kw)
	}
	return normalized
}
