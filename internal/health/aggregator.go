package health

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/smash-proyect/bff/internal/domain"
	"github.com/smash-proyect/bff/internal/logger"
)

// DefaultCheckTimeout bounds every individual health check.
const DefaultCheckTimeout = 3 * time.Second

// Checker performs a single health check. downstream.Client implements it.
type Checker interface {
	Check(ctx context.Context, target domain.ServiceTarget, timeout time.Duration) domain.HealthCheckResult
}

// Aggregator checks many services at once and joins the results.
type Aggregator struct {
	checker Checker
	timeout time.Duration
	logger  logger.Logger
}

// NewAggregator returns an aggregator; timeout <= 0 means DefaultCheckTimeout.
func NewAggregator(checker Checker, timeout time.Duration, log logger.Logger) *Aggregator {
	if timeout <= 0 {
		timeout = DefaultCheckTimeout
	}
	return &Aggregator{
		checker: checker,
		timeout: timeout,
		logger:  log,
	}
}

// CheckAll dispatches one check per target concurrently and waits for all of
// them. A failing target never cancels or delays the others, and every
// target appears in the report exactly once.
func (a *Aggregator) CheckAll(ctx context.Context, targets []domain.ServiceTarget) domain.AggregateHealthReport {
	start := time.Now()
	results := make([]domain.HealthCheckResult, len(targets))

	// Plain Group, not WithContext: checks report failures in their result,
	// they never return an error that would cancel siblings.
	var g errgroup.Group
	for i, target := range targets {
		i, target := i, target
		g.Go(func() error {
			results[i] = a.checker.Check(ctx, target, a.timeout)
			a.logger.Debug("health check finished",
				logger.String("service", target.Name),
				logger.Bool("ok", results[i].OK),
				logger.Int64("time_ms", results[i].TimeMS))
			return nil
		})
	}
	_ = g.Wait()

	report := make(domain.AggregateHealthReport, len(results))
	for _, res := range results {
		if _, dup := report[res.Name]; dup {
			a.logger.Warn("duplicate health target name, keeping last result",
				logger.String("service", res.Name))
		}
		report[res.Name] = res
	}

	a.logger.Info("health aggregation completed",
		logger.Int("healthy", report.Healthy()),
		logger.Int("total", len(targets)),
		logger.Duration("elapsed", time.Since(start)))

	return report
}
