package workers

import (
	"context"
	"time"

	"skyward-mro/shopfloor/internal/metrics"
	"skyward-mro/shopfloor/internal/notify"
	"skyward-mro/shopfloor/internal/registry"
)

type WorkersContainer struct {
	Sweeper *SweepWorker
}

func InitWorkers(
	ctx context.Context,
	reg *registry.Registry,
	evaluator *notify.Evaluator,
	metricsReg *metrics.MetricsRegistry,
	sweepInterval time.Duration,
) *WorkersContainer {
	sweeper := NewSweepWorker(reg, evaluator, metricsReg, sweepInterval)

	go sweeper.Start(ctx)

	return &WorkersContainer{
		Sweeper: sweeper,
	}
}
