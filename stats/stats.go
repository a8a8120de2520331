package stats

import (
	"math"
	"sort"
	"time"

	"github.com/mivanic/redscan/data"
)

// Summary is the chart-ready shape of a result set. Rendering is the UI's
// job; this package only does the aggregation.
type Summary struct {
	TotalPosts        int             `json:"totalPosts"`
	Subreddits        []SubredditStat `json:"subreddits"`
	ScoreBuckets      []ScoreBucket   `json:"scoreBuckets"`
	OutliersExcluded  int             `json:"outliersExcluded"`
	MaxDisplayedScore int             `json:"maxDisplayedScore"`
	PostsByHour       []HourCount     `json:"postsByHour"`
	PostsByWeekday    []WeekdayCount  `json:"postsByWeekday"`
	PostsByDate       []DateCount     `json:"postsByDate"`
	InvalidDates      int             `json:"invalidDates"`
}

type SubredditStat struct {
	Subreddit string  `json:"subreddit"`
	Count     int     `json:"count"`
	AvgScore  float64 `json:"avgScore"`
}

type ScoreBucket struct {
	Low   int `json:"low"`
	High  int `json:"high"`
	Count int `json:"count"`
}

type HourCount struct {
	Hour  int `json:"hour"`
	Count int `json:"count"`
}

type WeekdayCount struct {
	Day   string `json:"day"`
	Count int    `json:"count"`
}

type DateCount struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
}

var weekdayOrder = []time.Weekday{
	time.Monday, time.Tuesday, time.Wednesday, time.Thursday,
	time.Friday, time.Saturday, time.Sunday,
}

// Summarize aggregates a result set. Posts with no usable creation time are
// counted in InvalidDates and excluded from the time series only.
func Summarize(results data.ResultSet) Summary {
	summary := Summary{
		Subreddits:     make([]SubredditStat, 0, len(results)),
		PostsByHour:    make([]HourCount, 24),
		PostsByWeekday: make([]WeekdayCount, len(weekdayOrder)),
	}

	for hour := range summary.PostsByHour {
		summary.PostsByHour[hour].Hour = hour
	}
	for i, day := range weekdayOrder {
		summary.PostsByWeekday[i].Day = day.String()
	}

	var scores []int
	dateCounts := make(map[string]int)

	for subreddit, posts := range results {
		stat := SubredditStat{Subreddit: subreddit, Count: len(posts)}

		scoreSum := 0
		for _, post := range posts {
			scoreSum += post.Score
			scores = append(scores, post.Score)

			if post.CreatedUTC.IsZero() {
				summary.InvalidDates++
				continue
			}
			created := post.CreatedUTC.UTC()
			summary.PostsByHour[created.Hour()].Count++
			summary.PostsByWeekday[weekdayIndex(created.Weekday())].Count++
			dateCounts[created.Format("2006-01-02")]++
		}

		if stat.Count > 0 {
			stat.AvgScore = float64(scoreSum) / float64(stat.Count)
		}
		summary.Subreddits = append(summary.Subreddits, stat)
		summary.TotalPosts += stat.Count
	}

	sort.Slice(summary.Subreddits, func(i, j int) bool {
		a, b := summary.Subreddits[i], summary.Subreddits[j]
		if a.Count != b.Count {
			return a.Count > b.Count
		}
		return a.Subreddit < b.Subreddit
	})

	summary.ScoreBuckets, summary.OutliersExcluded, summary.MaxDisplayedScore = scoreBuckets(scores)

	summary.PostsByDate = make([]DateCount, 0, len(dateCounts))
	for date, count := range dateCounts {
		summary.PostsByDate = append(summary.PostsByDate, DateCount{Date: date, Count: count})
	}
	sort.Slice(summary.PostsByDate, func(i, j int) bool {
		return summary.PostsByDate[i].Date < summary.PostsByDate[j].Date
	})

	return summary
}

// scoreBuckets builds a histogram with extreme outliers capped out, so a
// single viral post does not flatten the scale. The cap is the larger of
// the IQR upper fence and twice the 95th percentile.
func scoreBuckets(scores []int) ([]ScoreBucket, int, int) {
	if len(scores) == 0 {
		return nil, 0, 0
	}

	sorted := append([]int(nil), scores...)
	sort.Ints(sorted)

	q1 := quantile(sorted, 0.25)
	q3 := quantile(sorted, 0.75)
	upperFence := q3 + 1.5*(q3-q1)

	maxScore := float64(sorted[len(sorted)-1])
	maxDisplay := math.Max(math.Min(upperFence, maxScore), quantile(sorted, 0.95)*2)

	kept := make([]int, 0, len(sorted))
	for _, score := range sorted {
		if float64(score) <= maxDisplay {
			kept = append(kept, score)
		}
	}
	excluded := len(sorted) - len(kept)
	if len(kept) == 0 {
		return nil, excluded, int(maxDisplay)
	}

	unique := 1
	for i := 1; i < len(kept); i++ {
		if kept[i] != kept[i-1] {
			unique++
		}
	}
	bins := unique
	if bins > 20 {
		bins = 20
	}

	low := kept[0]
	high := kept[len(kept)-1]
	width := (high - low + bins) / bins
	if width < 1 {
		width = 1
	}

	buckets := make([]ScoreBucket, bins)
	for i := range buckets {
		buckets[i].Low = low + i*width
		buckets[i].High = low + (i+1)*width - 1
	}
	for _, score := range kept {
		idx := (score - low) / width
		if idx >= bins {
			idx = bins - 1
		}
		buckets[idx].Count++
	}

	return buckets, excluded, int(maxDisplay)
}

// quantile uses linear interpolation over a sorted slice.
func quantile(sorted []int, q float64) float64 {
	if len(sorted) == 1 {
		return float64(sorted[0])
	}

	pos := q * float64(len(sorted)-1)
	lower := int(math.Floor(pos))
	upper := int(math.Ceil(pos))
	if lower == upper {
		return float64(sorted[lower])
	}

	frac := pos - float64(lower)
	return float64(sorted[lower])*(1-frac) + float64(sorted[upper])*frac
}

func weekdayIndex(day time.Weekday) int {
	for i, d := range weekdayOrder {
		if d == day {
			return i
		}
	}
	return 0
}
