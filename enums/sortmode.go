package enums

type SortMode string

const (
	// SortModeHot lists posts by reddit's front-page ranking.
	SortModeHot SortMode = "hot"

	// SortModeNew lists posts by creation time, newest first.
	SortModeNew SortMode = "new"

	SortModeTop    SortMode = "top"
	SortModeRising SortMode = "rising"
)

// ParseSortMode falls back to hot for anything unrecognized.
func ParseSortMode(s string) SortMode {
	switch SortMode(s) {
	case SortModeNew, SortModeTop, SortModeRising:
		return SortMode(s)
	default:
		return SortModeHot
	}
}
