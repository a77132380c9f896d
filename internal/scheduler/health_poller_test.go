package scheduler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/smash-proyect/bff/internal/domain"
	"github.com/smash-proyect/bff/internal/downstream"
	"github.com/smash-proyect/bff/internal/health"
	"github.com/smash-proyect/bff/internal/index"
	"github.com/smash-proyect/bff/internal/logger"
	"github.com/smash-proyect/bff/internal/snapshot"
)

func newPoller(t *testing.T, interval time.Duration, trigger chan struct{}) (*HealthPoller, *snapshot.Recorder, *atomic.Int32) {
	t.Helper()
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.WriteHeader(http.StatusOK)
	}))
	t.Cleanup(srv.Close)

	log := logger.New("error", false)
	agg := health.NewAggregator(downstream.New(nil, log), time.Second, log)
	rec := snapshot.NewRecorder(index.NewSnapshotIndex(), nil, log)
	targets := []domain.ServiceTarget{{Name: "svc", URL: srv.URL}}

	return NewHealthPoller(agg, targets, rec, log, interval, trigger), rec, &hits
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(3 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatal("condition not met in time")
}

func TestHealthPoller_Poll(t *testing.T) {
	p, rec, hits := newPoller(t, 0, nil)

	report := p.Poll(context.Background())
	if len(report) != 1 || !report["svc"].OK {
		t.Fatalf("unexpected report: %+v", report)
	}
	if hits.Load() != 1 {
		t.Errorf("expected 1 downstream call, got %d", hits.Load())
	}
	if _, ok := rec.Last(); !ok {
		t.Error("poll result should be recorded")
	}
}

func TestHealthPoller_ManualTrigger(t *testing.T) {
	trigger := make(chan struct{}, 1)
	p, rec, hits := newPoller(t, 0, trigger)

	if err := p.Start(context.Background()); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	defer p.Stop()

	// The ticker is disabled, nothing runs until triggered.
	time.Sleep(50 * time.Millisecond)
	if hits.Load() != 0 {
		t.Fatalf("no poll expected before trigger, got %d", hits.Load())
	}

	trigger <- struct{}{}
	waitFor(t, func() bool {
		_, ok := rec.Last()
		return ok
	})
	if hits.Load() != 1 {
		t.Errorf("expected 1 downstream call, got %d", hits.Load())
	}
}

func TestHealthPoller_Interval(t *testing.T) {
	p, _, hits := newPoller(t, 50*time.Millisecond, nil)

	if err := p.Start(context.Background()); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	// First poll runs synchronously on start.
	if hits.Load() < 1 {
		t.Fatal("expected an immediate poll")
	}
	waitFor(t, func() bool { return hits.Load() >= 3 })
	p.Stop()

	if err := p.Start(context.Background()); err == nil {
		t.Error("second Start should fail")
	}
}

func TestHealthPoller_StopWithoutStart(t *testing.T) {
	p, _, _ := newPoller(t, 0, nil)
	done := make(chan struct{})
	go func() {
		p.Stop()
		p.Stop()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Stop blocked without Start")
	}
}

func TestHealthPoller_ContextCancel(t *testing.T) {
	p, _, _ := newPoller(t, 0, nil)
	ctx, cancel := context.WithCancel(context.Background())

	if err := p.Start(ctx); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	cancel()

	done := make(chan struct{})
	go func() {
		p.Stop()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("loop did not exit on context cancel")
	}
}
