package index

import (
	"sync"
	"time"

	"github.com/smash-proyect/bff/internal/domain"
)

// SnapshotIndex keeps the most recent aggregate health report in memory.
// Reports are stored as copies and handed out as copies, so callers can
// never mutate a recorded result.
type SnapshotIndex struct {
	mu        sync.RWMutex
	report    domain.AggregateHealthReport
	checkedAt time.Time
}

// NewSnapshotIndex creates an empty index.
func NewSnapshotIndex() *SnapshotIndex {
	return &SnapshotIndex{}
}

// Record replaces the stored report unless it is older than the current one.
func (idx *SnapshotIndex) Record(report domain.AggregateHealthReport, checkedAt time.Time) bool {
	idx.mu.Lock()
	defer idx.mu.Unlock()

	if checkedAt.Before(idx.checkedAt) {
		return false
	}
	idx.report = copyReport(report)
	idx.checkedAt = checkedAt
	return true
}

// Last returns the stored snapshot, ok=false when nothing was recorded yet.
func (idx *SnapshotIndex) Last() (domain.Snapshot, bool) {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	if idx.report == nil {
		return domain.Snapshot{}, false
	}
	return domain.Snapshot{
		Services:  copyReport(idx.report),
		CheckedAt: idx.checkedAt,
	}, true
}

// Age returns how old the stored snapshot is, zero when there is none.
func (idx *SnapshotIndex) Age(now time.Time) time.Duration {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	if idx.checkedAt.IsZero() {
		return 0
	}
	return now.Sub(idx.checkedAt)
}

func copyReport(r domain.AggregateHealthReport) domain.AggregateHealthReport {
	out := make(domain.AggregateHealthReport, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}
