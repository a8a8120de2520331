package repos

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/mivanic/redscan/data"
)

type SearchRepo struct {
	db *sqlx.DB
}

func NewSearchRepo(db *sqlx.DB) *SearchRepo {
	return &SearchRepo{db}
}

func (r *SearchRepo) CreateSearch(search data.Search) error {
	query := `
		INSERT INTO searches (id, session_id, subreddits, keywords, sort, total_matches, created_at)
		VALUES (:id, :session_id, :subreddits, :keywords, :sort, :total_matches, now())`

	_, err := r.db.NamedExec(query, search)
	if err != nil {
		return fmt.Errorf("create search: %w", err)
	}

	return nil
}

func (r *SearchRepo) GetSearchByID(id uuid.UUID) (data.Search, error) {
	var search data.Search
	query := `
		SELECT id, session_id, subreddits, keywords, sort, total_matches, created_at
		FROM searches
		WHERE id = $1`

	err := r.db.Get(&search, query, id)
	if err != nil {
		return data.Search{}, fmt.Errorf("get search by id: %w", err)
	}

	return search, nil
}

func (r *SearchRepo) GetSearchesBySession(sessionID uuid.UUID) ([]data.Search, error) {
	var searches []data.Search
	query := `
		SELECT id, session_id, subreddits, keywords, sort, total_matches, created_at
		FROM searches
		WHERE session_id = $1
		ORDER BY created_at DESC`

	err := r.db.Select(&searches, query, sessionID)
	if err != nil {
		return nil, fmt.Errorf("get searches by session: %w", err)
	}

	return searches, nil
}

// PruneOlderThan removes history rows past the retention window; matched
// posts go with them through the FK cascade.
func (r *SearchRepo) PruneOlderThan(cutoff time.Time) (int64, error) {
	res, err := r.db.Exec("DELETE FROM searches WHERE created_at < $1", cutoff)
	if err != nil {
		return 0, fmt.Errorf("prune searches: %w", err)
	}

	deleted, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("prune searches rows affected: %w", err)
	}

	return deleted, nil
}
