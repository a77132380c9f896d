package scheduler

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/smash-proyect/bff/internal/domain"
	"github.com/smash-proyect/bff/internal/health"
	"github.com/smash-proyect/bff/internal/logger"
	"github.com/smash-proyect/bff/internal/snapshot"
)

// HealthPoller refreshes the health snapshot in the background, on a
// ticker and whenever the manual trigger fires.
type HealthPoller struct {
	aggregator    *health.Aggregator
	targets       []domain.ServiceTarget
	recorder      *snapshot.Recorder
	logger        logger.Logger
	interval      time.Duration
	now           func() time.Time
	manualTrigger chan struct{}
	stopCh        chan struct{}
	stopOnce      sync.Once
	started       atomic.Bool
	done          chan struct{}
}

// NewHealthPoller creates a poller. interval <= 0 disables the ticker; the
// manual trigger still works.
func NewHealthPoller(
	aggregator *health.Aggregator,
	targets []domain.ServiceTarget,
	recorder *snapshot.Recorder,
	log logger.Logger,
	interval time.Duration,
	manualTrigger chan struct{},
) *HealthPoller {
	return &HealthPoller{
		aggregator:    aggregator,
		targets:       targets,
		recorder:      recorder,
		logger:        log,
		interval:      interval,
		now:           time.Now,
		manualTrigger: manualTrigger,
		stopCh:        make(chan struct{}),
		done:          make(chan struct{}),
	}
}

// Start launches the polling loop. When the ticker is enabled a first poll
// runs immediately.
func (hp *HealthPoller) Start(ctx context.Context) error {
	if !hp.started.CompareAndSwap(false, true) {
		return fmt.Errorf("health poller already started")
	}

	var tick <-chan time.Time
	if hp.interval > 0 {
		hp.Poll(ctx)
		ticker := time.NewTicker(hp.interval)
		tick = ticker.C
		go func() {
			<-hp.done
			ticker.Stop()
		}()
	}

	go func() {
		defer close(hp.done)
		for {
			select {
			case <-tick:
				hp.Poll(ctx)
			case <-hp.manualTrigger:
				hp.logger.Info("manual health poll triggered")
				hp.Poll(ctx)
			case <-hp.stopCh:
				return
			case <-ctx.Done():
				return
			}
		}
	}()

	return nil
}

// Stop ends the loop and waits for an in-flight poll to finish.
func (hp *HealthPoller) Stop() {
	hp.stopOnce.Do(func() { close(hp.stopCh) })
	if hp.started.Load() {
		<-hp.done
	}
}

// Poll checks every target once and records the report.
func (hp *HealthPoller) Poll(ctx context.Context) domain.AggregateHealthReport {
	checkedAt := hp.now()
	report := hp.aggregator.CheckAll(ctx, hp.targets)
	hp.recorder.Record(ctx, report, checkedAt)
	return report
}
