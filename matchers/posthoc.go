package matchers

import (
	"time"

	"github.com/mivanic/redscan/data"
)

// PostFilter re-filters an already fetched result set in memory. A nil date
// bound leaves that side unconstrained. The filter holds no state between
// invocations; the caller owns the result set lifecycle.
type PostFilter struct {
	MinScore        int
	From            *time.Time
	To              *time.Time
	RequireComments bool
}

// FilterResults applies the filter to every group and returns a new result
// set of the same shape. Per-group post order is preserved, and groups whose
// posts are all filtered out stay in the output as empty slices so the
// caller can tell "0 posts here" from "group absent".
func FilterResults(results data.ResultSet, f PostFilter) data.ResultSet {
	filtered := make(data.ResultSet, len(results))

	for subreddit, posts := range results {
		kept := make([]data.Post, 0, len(posts))
		for _, post := range posts {
			if post.Score < f.MinScore {
				continue
			}
			if !withinDateRange(post.CreatedUTC, f.From, f.To) {
				continue
			}
			if f.RequireComments && len(post.MatchingComments) == 0 {
				continue
			}
			kept = append(kept, post)
		}
		filtered[subreddit] = kept
	}

	return filtered
}

// withinDateRange is an inclusive range check. A post with no usable
// creation time fails any date-bounded comparison instead of aborting the
// whole pass.
func withinDateRange(created time.Time, from, to *time.Time) bool {
	if from == nil && to == nil {
		return true
	}
	if created.IsZero() {
		return false
	}
	if from != nil && created.Before(*from) {
		return false
	}
	if to != nil && created.After(*to) {
		return false
	}
	return true
}
