package repos

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/mivanic/redscan/data"
)

type PostRepo struct {
	db *sqlx.DB
}

func NewPostRepo(db *sqlx.DB) *PostRepo {
	return &PostRepo{db}
}

func (r *PostRepo) CreatePosts(posts []data.MatchedPost) error {
	if len(posts) == 0 {
		return nil
	}

	query := `
		INSERT INTO matched_posts (search_id, subreddit, hash, data, created_at)
		VALUES (:search_id, :subreddit, :hash, :data, now())
		ON CONFLICT (hash) DO NOTHING`

	_, err := r.db.NamedExec(query, posts)
	if err != nil {
		return fmt.Errorf("create matched posts: %w", err)
	}

	return nil
}

func (r *PostRepo) GetPostsBySearchID(searchID uuid.UUID) ([]data.MatchedPost, error) {
	var posts []data.MatchedPost
	query := `
		SELECT id, search_id, subreddit, hash, data, created_at
		FROM matched_posts
		WHERE search_id = $1
		ORDER BY id ASC`

	err := r.db.Select(&posts, query, searchID)
	if err != nil {
		return nil, fmt.Errorf("get posts by search id: %w", err)
	}

	return posts, nil
}
