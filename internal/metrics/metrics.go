package metrics

import (
	"context"
	"log/slog"
	"sync"

	"github.com/prometheus/client_golang/prometheus"

	"tripsearch/internal/db"
)

var (
	resolutionDesc = prometheus.NewDesc(
		"tripsearch_resolutions_total",
		"Total resolution count by strategy and outcome",
		[]string{"strategy", "outcome"},
		nil,
	)
)

// ResolutionCollector is a custom Prometheus collector that reads resolution
// counts from the database on each scrape.
type ResolutionCollector struct {
	db *db.DB
}

// Describe sends the metric descriptor to the channel.
func (c *ResolutionCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- resolutionDesc
}

// Collect queries the database for all resolution stats and emits them as
// counters, aggregated over queries per (strategy, outcome).
func (c *ResolutionCollector) Collect(ch chan<- prometheus.Metric) {
	stats, err := c.db.AllResolutionStats(context.Background())
	if err != nil {
		slog.Error("failed to collect resolution metrics", "error", err)
		return
	}

	totals := make(map[[2]string]int64)
	for _, s := range stats {
		totals[[2]string{s.Strategy, s.Outcome}] += s.Count
	}
	for key, count := range totals {
		ch <- prometheus.MustNewConstMetric(
			resolutionDesc,
			prometheus.CounterValue,
			float64(count),
			key[0],
			key[1],
		)
	}
}

// Recorder provides async resolution recording.
type Recorder struct {
	db *db.DB
}

var (
	recorder     *Recorder
	recorderOnce sync.Once
)

// Init registers the custom collector and initializes the recorder.
// Must be called once at startup.
func Init(database *db.DB) {
	recorderOnce.Do(func() {
		recorder = &Recorder{db: database}
		prometheus.MustRegister(&ResolutionCollector{db: database})
	})
}

// RecordResolution asynchronously records a resolution outcome.
func RecordResolution(queryNorm, strategy, outcome string) {
	if recorder == nil {
		return
	}
	go func() {
		if err := recorder.db.IncrementResolution(context.Background(), queryNorm, strategy, outcome); err != nil {
			slog.Error("failed to record resolution", "query", queryNorm, "strategy", strategy, "outcome", outcome, "error", err)
		}
	}()
}
