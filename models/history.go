package models

import (
	"time"

	"github.com/google/uuid"
)

type SearchInfo struct {
	ID           uuid.UUID `json:"id"`
	Subreddits   []string  `json:"subreddits"`
	Keywords     []string  `json:"keywords"`
	Sort         string    `json:"sort"`
	TotalMatches int       `json:"totalMatches"`
	CreatedAt    time.Time `json:"createdAt"`
}

type GetHistoryResponse struct {
	Searches []SearchInfo `json:"searches"`
}
