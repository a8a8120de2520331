package main

import (
	"context"
	"log/slog"
	"time"

	"github.com/pkg/errors"

	"github.com/mivanic/redscan/data/repos"
)

// Janitor prunes search history past the retention window so the tables do
// not grow without bound.
type Janitor struct {
	searchRepo *repos.SearchRepo
	retention  time.Duration
	interval   time.Duration
}

func NewJanitor(searchRepo *repos.SearchRepo, retention time.Duration) *Janitor {
	return &Janitor{
		searchRepo: searchRepo,
		retention:  retention,
		interval:   1 * time.Hour,
	}
}

func (j *Janitor) Start(ctx context.Context) {
	if err := j.prune(); err != nil {
		slog.Error("prune history:", "error", err)
	}

	go func() {
		ticker := time.NewTicker(j.interval)
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if err := j.prune(); err != nil {
					slog.Error("prune history:", "error", err)
				}
			}
		}
	}()
}

func (j *Janitor) prune() error {
	cutoff := time.Now().Add(-j.retention)

	deleted, err := j.searchRepo.PruneOlderThan(cutoff)
	if err != nil {
		return errors.Wrap(err, "prune history: delete old searches")
	}

	if deleted > 0 {
		slog.Info("pruned search history", "deleted", deleted, "cutoff", cutoff)
	}

	return nil
}
