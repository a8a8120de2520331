package models

import (
	"github.com/google/uuid"

	"github.com/mivanic/redscan/data"
)

type SearchRequest struct {
	Subreddits []string `json:"subreddits"`
	Keywords   []string `json:"keywords"`
	Limit      int      `json:"limit"`
	Sort       string   `json:"sort"`
	// SearchBody defaults to true when omitted, matching the search form.
	SearchBody     *bool `json:"searchBody"`
	SearchComments bool  `json:"searchComments"`
	MinScore       int   `json:"minScore"`
}

type SearchResponse struct {
	SearchID   uuid.UUID      `json:"searchId"`
	Results    data.ResultSet `json:"results"`
	TotalPosts int            `json:"totalPosts"`
}

type GetResultsResponse struct {
	Results    data.ResultSet `json:"results"`
	TotalPosts int            `json:"totalPosts"`
}
