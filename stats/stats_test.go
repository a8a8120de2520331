package stats

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/mivanic/redscan/data"
)

func post(score int, created time.Time) data.Post {
	return data.Post{Score: score, CreatedUTC: created}
}

func TestSummarize_Empty(t *testing.T) {
	summary := Summarize(data.ResultSet{})

	assert.Zero(t, summary.TotalPosts)
	assert.Empty(t, summary.Subreddits)
	assert.Len(t, summary.PostsByHour, 24, "all hour buckets present even with no data")
	assert.Len(t, summary.PostsByWeekday, 7)
}

func TestSummarize_SubredditStats(t *testing.T) {
	created := time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC)
	results := data.ResultSet{
		"golang": {post(10, created), post(20, created), post(30, created)},
		"rust":   {post(4, created)},
		"zig":    {},
	}

	summary := Summarize(results)

	assert.Equal(t, 4, summary.TotalPosts)
	assert.Len(t, summary.Subreddits, 3)
	assert.Equal(t, "golang", summary.Subreddits[0].Subreddit, "sorted by count descending")
	assert.Equal(t, 3, summary.Subreddits[0].Count)
	assert.InDelta(t, 20.0, summary.Subreddits[0].AvgScore, 0.001)
	assert.Equal(t, "zig", summary.Subreddits[2].Subreddit)
	assert.Zero(t, summary.Subreddits[2].AvgScore)
}

func TestSummarize_HourBuckets(t *testing.T) {
	results := data.ResultSet{
		"golang": {
			post(1, time.Date(2024, 1, 15, 9, 30, 0, 0, time.UTC)),
			post(1, time.Date(2024, 1, 16, 9, 5, 0, 0, time.UTC)),
			post(1, time.Date(2024, 1, 16, 23, 55, 0, 0, time.UTC)),
		},
	}

	summary := Summarize(results)

	assert.Len(t, summary.PostsByHour, 24)
	assert.Equal(t, 2, summary.PostsByHour[9].Count)
	assert.Equal(t, 1, summary.PostsByHour[23].Count)
	assert.Zero(t, summary.PostsByHour[0].Count)
}

func TestSummarize_WeekdayOrder(t *testing.T) {
	// 2024-01-15 is a Monday, 2024-01-21 a Sunday
	results := data.ResultSet{
		"golang": {
			post(1, time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC)),
			post(1, time.Date(2024, 1, 21, 10, 0, 0, 0, time.UTC)),
		},
	}

	summary := Summarize(results)

	assert.Equal(t, "Monday", summary.PostsByWeekday[0].Day)
	assert.Equal(t, "Sunday", summary.PostsByWeekday[6].Day)
	assert.Equal(t, 1, summary.PostsByWeekday[0].Count)
	assert.Equal(t, 1, summary.PostsByWeekday[6].Count)
}

func TestSummarize_InvalidDatesExcludedFromTimeSeries(t *testing.T) {
	results := data.ResultSet{
		"golang": {
			post(5, time.Time{}),
			post(5, time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC)),
		},
	}

	summary := Summarize(results)

	assert.Equal(t, 2, summary.TotalPosts, "invalid dates still count toward totals")
	assert.Equal(t, 1, summary.InvalidDates)
	assert.Len(t, summary.PostsByDate, 1)
}

func TestSummarize_PostsByDateSorted(t *testing.T) {
	results := data.ResultSet{
		"golang": {
			post(1, time.Date(2024, 1, 20, 10, 0, 0, 0, time.UTC)),
			post(1, time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC)),
			post(1, time.Date(2024, 1, 15, 20, 0, 0, 0, time.UTC)),
		},
	}

	summary := Summarize(results)

	assert.Len(t, summary.PostsByDate, 2)
	assert.Equal(t, "2024-01-15", summary.PostsByDate[0].Date)
	assert.Equal(t, 2, summary.PostsByDate[0].Count)
	assert.Equal(t, "2024-01-20", summary.PostsByDate[1].Date)
}

func TestScoreBuckets_OutlierCapped(t *testing.T) {
	scores := []int{
		1, 1, 2, 2, 2, 3, 3, 3, 3, 4,
		4, 4, 4, 4, 5, 5, 5, 5, 5, 5,
		10000,
	}

	buckets, excluded, maxDisplay := scoreBuckets(scores)

	assert.NotEmpty(t, buckets)
	assert.Equal(t, 1, excluded, "the viral outlier is excluded from the histogram")
	assert.Less(t, maxDisplay, 10000)

	total := 0
	for _, bucket := range buckets {
		total += bucket.Count
	}
	assert.Equal(t, 20, total)
}

func TestScoreBuckets_Empty(t *testing.T) {
	buckets, excluded, maxDisplay := scoreBuckets(nil)

	assert.Nil(t, buckets)
	assert.Zero(t, excluded)
	assert.Zero(t, maxDisplay)
}

func TestQuantile(t *testing.T) {
	sorted := []int{1, 2, 3, 4, 5}

	assert.InDelta(t, 3.0, quantile(sorted, 0.5), 0.001)
	assert.InDelta(t, 1.0, quantile(sorted, 0.0), 0.001)
	assert.InDelta(t, 5.0, quantile(sorted, 1.0), 0.001)
	assert.InDelta(t, 2.0, quantile(sorted, 0.25), 0.001)
}
