package enums

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseSortMode(t *testing.T) {
	assert.Equal(t, SortModeHot, ParseSortMode("hot"))
	assert.Equal(t, SortModeNew, ParseSortMode("new"))
	assert.Equal(t, SortModeTop, ParseSortMode("top"))
	assert.Equal(t, SortModeRising, ParseSortMode("rising"))
	assert.Equal(t, SortModeHot, ParseSortMode("controversial"), "unknown modes fall back to hot")
	assert.Equal(t, SortModeHot, ParseSortMode(""))
}

func TestParseExportFormat(t *testing.T) {
	assert.Equal(t, ExportFormatCSV, ParseExportFormat("csv"))
	assert.Equal(t, ExportFormatJSON, ParseExportFormat("json"))
	assert.Equal(t, ExportFormatInvalid, ParseExportFormat("xml"))
	assert.Equal(t, ExportFormatInvalid, ParseExportFormat(""))
}
