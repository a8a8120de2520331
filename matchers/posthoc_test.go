package matchers

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/mivanic/redscan/data"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 12, 0, 0, 0, time.UTC)
}

func datePtr(y int, m time.Month, d int) *time.Time {
	t := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return &t
}

func TestFilterResults_MinScore(t *testing.T) {
	results := data.ResultSet{
		"golang": {
			{Title: "low", Score: 5, CreatedUTC: date(2024, 1, 10)},
			{Title: "high", Score: 15, CreatedUTC: date(2024, 1, 10)},
		},
	}

	filtered := FilterResults(results, PostFilter{MinScore: 10})

	assert.Len(t, filtered["golang"], 1)
	assert.Equal(t, "high", filtered["golang"][0].Title)
}

func TestFilterResults_DateRange(t *testing.T) {
	results := data.ResultSet{
		"golang": {
			{Title: "january", CreatedUTC: date(2024, 1, 15)},
			{Title: "february", CreatedUTC: date(2024, 2, 1)},
		},
	}

	filtered := FilterResults(results, PostFilter{
		From: datePtr(2024, 1, 1),
		To:   datePtr(2024, 1, 31),
	})

	assert.Len(t, filtered["golang"], 1)
	assert.Equal(t, "january", filtered["golang"][0].Title)
}

func TestFilterResults_UnsetBoundUnconstrained(t *testing.T) {
	results := data.ResultSet{
		"golang": {
			{Title: "old", CreatedUTC: date(2020, 6, 1)},
			{Title: "new", CreatedUTC: date(2024, 6, 1)},
		},
	}

	fromOnly := FilterResults(results, PostFilter{From: datePtr(2024, 1, 1)})
	assert.Len(t, fromOnly["golang"], 1)
	assert.Equal(t, "new", fromOnly["golang"][0].Title)

	toOnly := FilterResults(results, PostFilter{To: datePtr(2021, 1, 1)})
	assert.Len(t, toOnly["golang"], 1)
	assert.Equal(t, "old", toOnly["golang"][0].Title)
}

func TestFilterResults_UnusableDateExcludedWhenBounded(t *testing.T) {
	results := data.ResultSet{
		"golang": {
			{Title: "no date"},
			{Title: "dated", CreatedUTC: date(2024, 1, 15)},
		},
	}

	unbounded := FilterResults(results, PostFilter{})
	assert.Len(t, unbounded["golang"], 2, "no date bounds, no date check")

	bounded := FilterResults(results, PostFilter{From: datePtr(2024, 1, 1)})
	assert.Len(t, bounded["golang"], 1)
	assert.Equal(t, "dated", bounded["golang"][0].Title)
}

func TestFilterResults_RequireComments(t *testing.T) {
	results := data.ResultSet{
		"golang": {
			{Title: "bare", CreatedUTC: date(2024, 1, 10)},
			{
				Title:            "discussed",
				CreatedUTC:       date(2024, 1, 10),
				MatchingComments: []data.Comment{{Author: "a", Body: "helpful"}},
			},
		},
	}

	filtered := FilterResults(results, PostFilter{RequireComments: true})

	assert.Len(t, filtered["golang"], 1)
	assert.Equal(t, "discussed", filtered["golang"][0].Title)
}

func TestFilterResults_EmptyGroupsRetained(t *testing.T) {
	results := data.ResultSet{
		"golang": {{Title: "keep", Score: 20}},
		"rust":   {{Title: "drop", Score: 1}},
	}

	filtered := FilterResults(results, PostFilter{MinScore: 10})

	assert.Len(t, filtered, 2, "groups with zero survivors stay as empty slices")
	assert.Len(t, filtered["golang"], 1)
	assert.NotNil(t, filtered["rust"])
	assert.Empty(t, filtered["rust"])
}

func TestFilterResults_OrderPreserved(t *testing.T) {
	results := data.ResultSet{
		"golang": {
			{Title: "first", Score: 10},
			{Title: "second", Score: 1},
			{Title: "third", Score: 10},
			{Title: "fourth", Score: 10},
		},
	}

	filtered := FilterResults(results, PostFilter{MinScore: 5})

	titles := make([]string, 0, len(filtered["golang"]))
	for _, post := range filtered["golang"] {
		titles = append(titles, post.Title)
	}
	assert.Equal(t, []string{"first", "third", "fourth"}, titles)
}

func TestFilterResults_Idempotent(t *testing.T) {
	results := data.ResultSet{
		"golang": {
			{Title: "a", Score: 15, CreatedUTC: date(2024, 1, 10)},
			{Title: "b", Score: 5, CreatedUTC: date(2024, 1, 10)},
			{Title: "c", Score: 30, CreatedUTC: date(2024, 3, 10)},
		},
	}
	filter := PostFilter{
		MinScore: 10,
		From:     datePtr(2024, 1, 1),
		To:       datePtr(2024, 1, 31),
	}

	once := FilterResults(results, filter)
	twice := FilterResults(once, filter)

	assert.Equal(t, once, twice)
}

func TestFilterResults_DoesNotMutateInput(t *testing.T) {
	results := data.ResultSet{
		"golang": {
			{Title: "a", Score: 15},
			{Title: "b", Score: 5},
		},
	}

	FilterResults(results, PostFilter{MinScore: 10})

	assert.Len(t, results["golang"], 2)
}
