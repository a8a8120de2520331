package handlers

import (
	"database/sql"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/mivanic/redscan/data"
	"github.com/mivanic/redscan/data/repos"
	"github.com/mivanic/redscan/models"
)

type HistoryHandler struct {
	searchRepo *repos.SearchRepo
	postRepo   *repos.PostRepo
}

func NewHistoryHandler(searchRepo *repos.SearchRepo, postRepo *repos.PostRepo) *HistoryHandler {
	return &HistoryHandler{
		searchRepo: searchRepo,
		postRepo:   postRepo,
	}
}

func (h *HistoryHandler) GetHistory(w http.ResponseWriter, r *http.Request) Result {
	session := r.Context().Value("session").(uuid.UUID)

	searches, err := h.searchRepo.GetSearchesBySession(session)
	if err != nil {
		return InternalError(err, "get history: ")
	}

	res := models.GetHistoryResponse{Searches: make([]models.SearchInfo, 0, len(searches))}
	for _, s := range searches {
		res.Searches = append(res.Searches, models.SearchInfo{
			ID:           s.ID,
			Subreddits:   []string(s.Subreddits),
			Keywords:     []string(s.Keywords),
			Sort:         s.Sort,
			TotalMatches: s.TotalMatches,
			CreatedAt:    s.CreatedAt,
		})
	}

	return Ok(res)
}

// GetHistoryPosts returns the persisted matches of one past search, grouped
// by subreddit like a live result set. Searches belonging to a different
// session look like they do not exist.
func (h *HistoryHandler) GetHistoryPosts(w http.ResponseWriter, r *http.Request) Result {
	session := r.Context().Value("session").(uuid.UUID)

	searchID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		return BadRequest("Invalid search id.")
	}

	search, err := h.searchRepo.GetSearchByID(searchID)
	if errors.Is(err, sql.ErrNoRows) {
		return NotFound("No such search.")
	}
	if err != nil {
		return InternalError(err, "get search: ")
	}
	if search.SessionID != session {
		return NotFound("No such search.")
	}

	matched, err := h.postRepo.GetPostsBySearchID(searchID)
	if err != nil {
		return InternalError(err, "get matched posts: ")
	}

	results := groupMatchedPosts(matched)

	return Ok(models.GetResultsResponse{
		Results:    results,
		TotalPosts: results.TotalPosts(),
	})
}

func groupMatchedPosts(matched []data.MatchedPost) data.ResultSet {
	results := make(data.ResultSet)
	for _, mp := range matched {
		var post data.Post
		if err := json.Unmarshal(mp.DataRaw, &post); err != nil {
			slog.Error("decode matched post", "error", err, "hash", mp.Hash)
			continue
		}
		results[mp.Subreddit] = append(results[mp.Subreddit], post)
	}
	return results
}
