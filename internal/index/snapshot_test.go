package index

import (
	"testing"
	"time"

	"github.com/smash-proyect/bff/internal/domain"
)

func TestSnapshotIndex_Empty(t *testing.T) {
	idx := NewSnapshotIndex()
	if _, ok := idx.Last(); ok {
		t.Error("expected no snapshot")
	}
	if age := idx.Age(time.Now()); age != 0 {
		t.Errorf("Age() = %v, want 0", age)
	}
}

func TestSnapshotIndex_RecordAndCopy(t *testing.T) {
	idx := NewSnapshotIndex()
	now := time.Now()

	report := domain.AggregateHealthReport{"a": {Name: "a", OK: true}}
	if !idx.Record(report, now) {
		t.Fatal("Record() should accept the first snapshot")
	}

	// Mutating the caller's map must not leak into the index.
	report["b"] = domain.HealthCheckResult{Name: "b"}

	snap, ok := idx.Last()
	if !ok {
		t.Fatal("expected a snapshot")
	}
	if len(snap.Services) != 1 || !snap.Services["a"].OK {
		t.Errorf("unexpected snapshot: %+v", snap.Services)
	}
	if !snap.CheckedAt.Equal(now) {
		t.Errorf("CheckedAt = %v, want %v", snap.CheckedAt, now)
	}

	snap.Services["c"] = domain.HealthCheckResult{Name: "c"}
	again, _ := idx.Last()
	if len(again.Services) != 1 {
		t.Errorf("returned snapshot must be a copy, got %d services", len(again.Services))
	}

	if age := idx.Age(now.Add(5 * time.Second)); age != 5*time.Second {
		t.Errorf("Age() = %v, want 5s", age)
	}
}

func TestSnapshotIndex_RejectsOlder(t *testing.T) {
	idx := NewSnapshotIndex()
	now := time.Now()

	idx.Record(domain.AggregateHealthReport{"new": {Name: "new"}}, now)
	if idx.Record(domain.AggregateHealthReport{"old": {Name: "old"}}, now.Add(-time.Minute)) {
		t.Error("older snapshot should be rejected")
	}

	snap, _ := idx.Last()
	if _, ok := snap.Services["new"]; !ok {
		t.Errorf("newest snapshot should be kept, got %+v", snap.Services)
	}
}
