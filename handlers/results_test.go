package handlers

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/mivanic/redscan/models"
)

func TestToPostFilter_Empty(t *testing.T) {
	filter, err := toPostFilter(models.FilterRequest{})

	assert.NoError(t, err)
	assert.Zero(t, filter.MinScore)
	assert.Nil(t, filter.From)
	assert.Nil(t, filter.To)
	assert.False(t, filter.RequireComments)
}

func TestToPostFilter_Dates(t *testing.T) {
	filter, err := toPostFilter(models.FilterRequest{
		DateFrom: "2024-01-01",
		DateTo:   "2024-01-31",
	})

	assert.NoError(t, err)
	assert.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), *filter.From)

	// the To bound covers the whole end day
	assert.True(t, filter.To.After(time.Date(2024, 1, 31, 23, 59, 59, 0, time.UTC)))
	assert.True(t, filter.To.Before(time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)))
}

func TestToPostFilter_InvalidDates(t *testing.T) {
	_, err := toPostFilter(models.FilterRequest{DateFrom: "01/15/2024"})
	assert.Error(t, err)

	_, err = toPostFilter(models.FilterRequest{DateTo: "yesterday"})
	assert.Error(t, err)
}

func TestNormalizeSubreddits(t *testing.T) {
	assert.Equal(t, []string{"golang", "rust"}, normalizeSubreddits([]string{" golang ", "r/rust", ""}))
	assert.Empty(t, normalizeSubreddits([]string{"", "  "}))
}

func TestNormalizeKeywords_KeepsSlashPrefix(t *testing.T) {
	assert.Equal(t, []string{"r/place", "help"}, normalizeKeywords([]string{"r/place", " help ", ""}))
	assert.Empty(t, normalizeKeywords([]string{"", "  "}))
}
