package workers

import (
	"context"
	"strings"
	"time"

	"skyward-mro/shopfloor/internal/constants"
	"skyward-mro/shopfloor/internal/logging"
	"skyward-mro/shopfloor/internal/metrics"
	"skyward-mro/shopfloor/internal/models/entities"
	"skyward-mro/shopfloor/internal/notify"
	"skyward-mro/shopfloor/internal/registry"
)

// SweepWorker runs the notification evaluator against the current shop
// snapshot on a fixed interval and feeds the results into the feed.
type SweepWorker struct {
	reg        *registry.Registry
	evaluator  *notify.Evaluator
	metricsReg *metrics.MetricsRegistry
	interval   time.Duration
}

func NewSweepWorker(reg *registry.Registry, evaluator *notify.Evaluator, metricsReg *metrics.MetricsRegistry, interval time.Duration) *SweepWorker {
	if interval <= 0 {
		interval = 5 * time.Minute
	}
	return &SweepWorker{
		reg:        reg,
		evaluator:  evaluator,
		metricsReg: metricsReg,
		interval:   interval,
	}
}

// Start sweeps once immediately, then on every tick until the context
// is cancelled.
func (w *SweepWorker) Start(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	w.RunOnce(time.Now())

	for {
		select {
		case <-ctx.Done():
			logging.Info("Sweep worker stopped")
			return
		case <-ticker.C:
			w.RunOnce(time.Now())
		}
	}
}

// RunOnce evaluates all rules and appends the resulting advisories.
func (w *SweepWorker) RunOnce(now time.Time) int {
	start := time.Now()

	parts := w.reg.Parts()
	technicians := w.reg.Technicians()

	advisories := w.evaluator.Run(parts, technicians, now)
	for _, n := range advisories {
		w.reg.AddNotification(n)
		if w.metricsReg != nil {
			w.metricsReg.NotificationsEmittedTotal.WithLabelValues(ruleOf(n.RuleKey)).Inc()
		}
	}

	if w.metricsReg != nil {
		w.metricsReg.SweepDuration.Observe(time.Since(start).Seconds())
		for status, count := range countByStatus(parts) {
			w.metricsReg.PartsInShop.WithLabelValues(status).Set(float64(count))
		}
	}

	if len(advisories) > 0 {
		logging.Info("Sweep emitted advisories", "count", len(advisories))
	}
	return len(advisories)
}

// ruleOf extracts the rule name from a dedup key like "NOTIFY_overdue:p1".
func ruleOf(ruleKey string) string {
	key := strings.TrimPrefix(ruleKey, string(constants.CachePrefixNotifyRule))
	if i := strings.IndexByte(key, ':'); i >= 0 {
		return key[:i]
	}
	return key
}

func countByStatus(parts []entities.Part) map[string]int {
	counts := make(map[string]int)
	for _, p := range parts {
		counts[string(p.Status)]++
	}
	return counts
}
