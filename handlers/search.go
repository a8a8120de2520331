package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/mivanic/redscan/cache"
	"github.com/mivanic/redscan/config"
	"github.com/mivanic/redscan/data"
	"github.com/mivanic/redscan/data/repos"
	"github.com/mivanic/redscan/enums"
	"github.com/mivanic/redscan/metrics"
	"github.com/mivanic/redscan/models"
	"github.com/mivanic/redscan/sources"
)

const maxPostLimit = 200

type SearchHandler struct {
	scanner    *sources.Scanner
	results    *cache.ResultCache
	searchRepo *repos.SearchRepo
	postRepo   *repos.PostRepo
}

func NewSearchHandler(scanner *sources.Scanner, results *cache.ResultCache, searchRepo *repos.SearchRepo, postRepo *repos.PostRepo) *SearchHandler {
	return &SearchHandler{
		scanner:    scanner,
		results:    results,
		searchRepo: searchRepo,
		postRepo:   postRepo,
	}
}

// RunSearch scans the requested subreddits, caches the result set under the
// session and records the run in the history.
func (h *SearchHandler) RunSearch(w http.ResponseWriter, r *http.Request) Result {
	session := r.Context().Value("session").(uuid.UUID)

	var req models.SearchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return BadRequest("Invalid request.")
	}

	subreddits := normalizeSubreddits(req.Subreddits)
	if len(subreddits) == 0 {
		return BadRequest("At least one subreddit is required.")
	}

	keywords := normalizeKeywords(req.Keywords)
	if len(keywords) == 0 {
		return BadRequest("At least one keyword is required.")
	}

	limit := req.Limit
	if limit <= 0 {
		limit = config.Config.DefaultPostLimit
	}
	if limit > maxPostLimit {
		limit = maxPostLimit
	}

	searchBody := true
	if req.SearchBody != nil {
		searchBody = *req.SearchBody
	}

	params := sources.ScanParams{
		Keywords:       keywords,
		Limit:          limit,
		Sort:           enums.ParseSortMode(req.Sort),
		SearchBody:     searchBody,
		SearchComments: req.SearchComments,
		MinScore:       req.MinScore,
	}

	results, err := h.scanner.ScanSubreddits(r.Context(), subreddits, params)
	if err != nil {
		return BadGateway(err)
	}
	metrics.SearchesTotal.Inc()

	if err := h.results.Set(r.Context(), session, results); err != nil {
		return InternalError(err, "store results: ")
	}

	search := data.Search{
		ID:           uuid.New(),
		SessionID:    session,
		Subreddits:   pq.StringArray(subreddits),
		Keywords:     pq.StringArray(keywords),
		Sort:         string(params.Sort),
		TotalMatches: results.TotalPosts(),
	}
	if err := h.searchRepo.CreateSearch(search); err != nil {
		// history is best effort, the scan already succeeded
		slog.Error("record search", "error", err, "session", session)
	} else {
		h.persistMatches(search.ID, results)
	}

	return Ok(models.SearchResponse{
		SearchID:   search.ID,
		Results:    results,
		TotalPosts: results.TotalPosts(),
	})
}

func (h *SearchHandler) persistMatches(searchID uuid.UUID, results data.ResultSet) {
	matched := make([]data.MatchedPost, 0, results.TotalPosts())
	for subreddit, posts := range results {
		for _, post := range posts {
			mp, err := data.NewMatchedPost(searchID, subreddit, post)
			if err != nil {
				slog.Error("build matched post", "error", err, "post_id", post.ID)
				continue
			}
			matched = append(matched, mp)
		}
	}

	if err := h.postRepo.CreatePosts(matched); err != nil {
		slog.Error("persist matched posts", "error", err, "search_id", searchID)
	}
}

func normalizeSubreddits(values []string) []string {
	normalized := make([]string, 0, len(values))
	for _, value := range values {
		v := strings.TrimSpace(value)
		v = strings.TrimPrefix(v, "r/")
		if v == "" {
			continue
		}
		normalized = append(normalized, v)
	}
	return normalized
}

// normalizeKeywords only trims: a keyword is free text, so an "r/" prefix
// stays part of it.
func normalizeKeywords(values []string) []string {
	normalized := make([]string, 0, len(values))
	for _, value := range values {
		v := strings.TrimSpace(value)
		if v == "" {
			continue
		}
		normalized = append(normalized, v)
	}
	return normalized
}
