package snapshot

import (
	"context"
	"time"

	"github.com/smash-proyect/bff/internal/domain"
	"github.com/smash-proyect/bff/internal/index"
	"github.com/smash-proyect/bff/internal/logger"
)

// Store persists snapshots outside the process. redisstore.Store implements it.
type Store interface {
	SaveSnapshot(ctx context.Context, snap domain.Snapshot) error
	GetSnapshot(ctx context.Context) (domain.Snapshot, bool, error)
}

// Recorder writes every aggregate report to the in-memory index and, when
// configured, to the external store. Store failures are logged and
// swallowed; the memory index stays authoritative.
type Recorder struct {
	index  *index.SnapshotIndex
	store  Store
	logger logger.Logger
}

// NewRecorder builds a recorder; store may be nil.
func NewRecorder(idx *index.SnapshotIndex, store Store, log logger.Logger) *Recorder {
	return &Recorder{index: idx, store: store, logger: log}
}

// Record stores report as taken at checkedAt.
func (r *Recorder) Record(ctx context.Context, report domain.AggregateHealthReport, checkedAt time.Time) {
	if !r.index.Record(report, checkedAt) {
		return
	}
	if r.store == nil {
		return
	}
	snap := domain.Snapshot{Services: report, CheckedAt: checkedAt}
	if err := r.store.SaveSnapshot(context.WithoutCancel(ctx), snap); err != nil {
		r.logger.Warn("failed to save health snapshot to redis", logger.Error(err))
	}
}

// Last returns the latest snapshot held in memory.
func (r *Recorder) Last() (domain.Snapshot, bool) {
	return r.index.Last()
}

// Age returns the age of the latest snapshot.
func (r *Recorder) Age(now time.Time) time.Duration {
	return r.index.Age(now)
}

// Restore loads the stored snapshot into memory, typically once at startup.
func (r *Recorder) Restore(ctx context.Context) error {
	if r.store == nil {
		return nil
	}
	snap, ok, err := r.store.GetSnapshot(ctx)
	if err != nil {
		return err
	}
	if !ok {
		r.logger.Info("no health snapshot found in redis")
		return nil
	}
	r.index.Record(snap.Services, snap.CheckedAt)
	r.logger.Info("restored health snapshot from redis",
		logger.Int("services", len(snap.Services)),
		logger.String("checked_at", snap.CheckedAt.Format(time.RFC3339)))
	return nil
}
