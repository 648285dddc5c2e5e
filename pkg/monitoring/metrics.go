// Package monitoring tracks process-lifetime pipeline throughput
// counters, adapted from the teacher's pkg/monitoring.MetricsCollector
// (SPEC_FULL.md §11). The teacher's CPU/memory/disk/network sampling
// (via gopsutil) has no analogue here — this pipeline has no queue of
// its own workers to profile system-wide, so only the domain counters
// (sentences seen, rules stored, corrections accepted/rejected) are
// kept, in the same sync/atomic + snapshot style.
package monitoring

import (
	"sync/atomic"
	"time"
)

// Collector accumulates counters for one process's lifetime. Safe for
// concurrent use, though the core pipeline itself is single-threaded
// (spec.md §5); the HTTP facade's /health handler may read Snapshot
// concurrently with an in-flight ingest.
type Collector struct {
	startTime time.Time

	sentencesTotal int64
	sentencesAstro int64
	rulesStored    int64
	ingestRuns     int64

	correctionsAccepted int64
	correctionsRejected int64
}

// NewCollector returns a Collector started at the current time.
func NewCollector() *Collector {
	return &Collector{startTime: time.Now()}
}

// RecordIngest folds one IngestBook run's counts into the running totals.
func (c *Collector) RecordIngest(sentencesTotal, sentencesAstro, rulesStored int) {
	atomic.AddInt64(&c.sentencesTotal, int64(sentencesTotal))
	atomic.AddInt64(&c.sentencesAstro, int64(sentencesAstro))
	atomic.AddInt64(&c.rulesStored, int64(rulesStored))
	atomic.AddInt64(&c.ingestRuns, 1)
}

// RecordCorrection folds one CorrectPending run's counts into the
// running totals.
func (c *Collector) RecordCorrection(accepted, rejected int) {
	atomic.AddInt64(&c.correctionsAccepted, int64(accepted))
	atomic.AddInt64(&c.correctionsRejected, int64(rejected))
}

// Snapshot is a point-in-time, immutable read of the counters.
type Snapshot struct {
	Uptime               time.Duration `json:"uptime"`
	IngestRuns           int64         `json:"ingest_runs"`
	SentencesTotal       int64         `json:"sentences_total"`
	SentencesAstro       int64         `json:"sentences_astrological"`
	RulesStored          int64         `json:"rules_stored"`
	CorrectionsAccepted  int64         `json:"corrections_accepted"`
	CorrectionsRejected  int64         `json:"corrections_rejected"`
}

// Snapshot reads the current counter values.
func (c *Collector) Snapshot() Snapshot {
	return Snapshot{
		Uptime:              time.Since(c.startTime),
		IngestRuns:          atomic.LoadInt64(&c.ingestRuns),
		SentencesTotal:      atomic.LoadInt64(&c.sentencesTotal),
		SentencesAstro:      atomic.LoadInt64(&c.sentencesAstro),
		RulesStored:         atomic.LoadInt64(&c.rulesStored),
		CorrectionsAccepted: atomic.LoadInt64(&c.correctionsAccepted),
		CorrectionsRejected: atomic.LoadInt64(&c.correctionsRejected),
	}
}
