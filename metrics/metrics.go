package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	SearchesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "redscan_searches_total",
		Help: "Completed search runs.",
	})

	PostsScanned = promauto.NewCounter(prometheus.CounterOpts{
		Name: "redscan_posts_scanned_total",
		Help: "Posts examined by the keyword matcher.",
	})

	MatchesFound = promauto.NewCounter(prometheus.CounterOpts{
		Name: "redscan_matches_total",
		Help: "Posts that satisfied the keyword criteria.",
	})

	ScanErrors = promauto.NewCounter(prometheus.CounterOpts{
		Name: "redscan_scan_errors_total",
		Help: "Upstream fetch failures during scans.",
	})

	ExportsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "redscan_exports_total",
		Help: "Result exports by format.",
	}, []string{"format"})
)
