package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/mivanic/redscan/cache"
	"github.com/mivanic/redscan/enums"
	"github.com/mivanic/redscan/export"
	"github.com/mivanic/redscan/matchers"
	"github.com/mivanic/redscan/metrics"
	"github.com/mivanic/redscan/models"
	"github.com/mivanic/redscan/stats"
)

const dateLayout = "2006-01-02"

type ResultHandler struct {
	results *cache.ResultCache
}

func NewResultHandler(results *cache.ResultCache) *ResultHandler {
	return &ResultHandler{results}
}

func (h *ResultHandler) GetResults(w http.ResponseWriter, r *http.Request) Result {
	session := r.Context().Value("session").(uuid.UUID)

	results, err := h.results.Get(r.Context(), session)
	if err != nil {
		return InternalError(err, "get results: ")
	}
	if results == nil {
		return NotFound("No results for this session. Run a search first.")
	}

	return Ok(models.GetResultsResponse{
		Results:    results,
		TotalPosts: results.TotalPosts(),
	})
}

// FilterResults returns a filtered view of the cached set. The cached set
// itself is left untouched; each call starts from the full results.
func (h *ResultHandler) FilterResults(w http.ResponseWriter, r *http.Request) Result {
	session := r.Context().Value("session").(uuid.UUID)

	var req models.FilterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return BadRequest("Invalid request.")
	}

	filter, err := toPostFilter(req)
	if err != nil {
		return BadRequest(err.Error())
	}

	results, err := h.results.Get(r.Context(), session)
	if err != nil {
		return InternalError(err, "get results: ")
	}
	if results == nil {
		return NotFound("No results for this session. Run a search first.")
	}

	filtered := matchers.FilterResults(results, filter)

	return Ok(models.GetResultsResponse{
		Results:    filtered,
		TotalPosts: filtered.TotalPosts(),
	})
}

func (h *ResultHandler) ClearResults(w http.ResponseWriter, r *http.Request) Result {
	session := r.Context().Value("session").(uuid.UUID)

	if err := h.results.Clear(r.Context(), session); err != nil {
		return InternalError(err, "clear results: ")
	}

	return Ok(nil)
}

func (h *ResultHandler) GetStats(w http.ResponseWriter, r *http.Request) Result {
	session := r.Context().Value("session").(uuid.UUID)

	results, err := h.results.Get(r.Context(), session)
	if err != nil {
		return InternalError(err, "get results: ")
	}
	if results == nil {
		return NotFound("No results for this session. Run a search first.")
	}

	return Ok(stats.Summarize(results))
}

func (h *ResultHandler) Export(w http.ResponseWriter, r *http.Request) Result {
	session := r.Context().Value("session").(uuid.UUID)

	format := enums.ParseExportFormat(r.URL.Query().Get("format"))
	if format == enums.ExportFormatInvalid {
		return BadRequest("Unknown export format. Use csv or json.")
	}

	results, err := h.results.Get(r.Context(), session)
	if err != nil {
		return InternalError(err, "get results: ")
	}
	if results == nil {
		return NotFound("No results for this session. Run a search first.")
	}

	flat := export.Flatten(results)
	filename := fmt.Sprintf("reddit_scrape_%s.%s", time.Now().UTC().Format("20060102_150405"), format)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))

	switch format {
	case enums.ExportFormatCSV:
		w.Header().Set("Content-Type", "text/csv")
		err = export.WriteCSV(w, flat)
	default:
		w.Header().Set("Content-Type", "application/json")
		err = export.WriteJSON(w, flat)
	}
	if err != nil {
		return InternalError(err, "write export: ")
	}

	metrics.ExportsTotal.WithLabelValues(string(format)).Inc()
	return Raw()
}

func toPostFilter(req models.FilterRequest) (matchers.PostFilter, error) {
	filter := matchers.PostFilter{
		MinScore:        req.MinScore,
		RequireComments: req.RequireComments,
	}

	if req.DateFrom != "" {
		from, err := time.Parse(dateLayout, req.DateFrom)
		if err != nil {
			return matchers.PostFilter{}, fmt.Errorf("invalid dateFrom %q, expected YYYY-MM-DD", req.DateFrom)
		}
		filter.From = &from
	}

	if req.DateTo != "" {
		to, err := time.Parse(dateLayout, req.DateTo)
		if err != nil {
			return matchers.PostFilter{}, fmt.Errorf("invalid dateTo %q, expected YYYY-MM-DD", req.DateTo)
		}
		// the whole end day is inside the range
		end := to.Add(24*time.Hour - time.Nanosecond)
		filter.To = &end
	}

	return filter, nil
}
