// Package notify is a stateless rule pass over the current shop
// snapshot. Each rule is evaluated independently; everything that
// matches proposes an advisory. Emissions are keyed by (rule, subject)
// and suppressed within a cool-down window so a sweep running twice in
// a row does not duplicate advisories.
package notify

import (
	"fmt"
	"time"

	"skyward-mro/shopfloor/internal/common"
	"skyward-mro/shopfloor/internal/constants"
	"skyward-mro/shopfloor/internal/models/entities"
)

// Rule identifiers used in dedup keys.
const (
	RuleOverdue        = "overdue"
	RuleCapacity       = "capacity"
	RuleScrapRate      = "scrap_rate"
	RuleBacklog        = "backlog"
	RuleStuck          = "stuck"
	RuleMilestoneWeek  = "milestone_week"
	RuleMilestoneMonth = "milestone_month"
	RuleMilestoneEff   = "milestone_efficiency"
	RuleCritical       = "critical"
)

// Evaluator inspects snapshots and proposes advisory notifications.
type Evaluator struct {
	cache    common.CacheInterface
	cooldown time.Duration
}

func NewEvaluator(cache common.CacheInterface, cooldown time.Duration) *Evaluator {
	if cooldown <= 0 {
		cooldown = constants.DefaultNotifyCooldown
	}
	return &Evaluator{cache: cache, cooldown: cooldown}
}

// Run evaluates all rules against the snapshot and returns the
// advisories that are not suppressed by an active cool-down.
func (e *Evaluator) Run(parts []entities.Part, technicians []entities.Technician, now time.Time) []entities.Notification {
	var out []entities.Notification

	emit := func(rule, subject string, n entities.Notification) {
		key := fmt.Sprintf("%s%s:%s", constants.CachePrefixNotifyRule, rule, subject)
		if _, suppressed := e.cache.Get(key); suppressed {
			return
		}
		e.cache.Set(key, true, e.cooldown)
		n.Timestamp = now
		n.RuleKey = key
		out = append(out, n)
	}

	e.checkOverdueParts(parts, now, emit)
	e.checkTechnicianCapacity(technicians, parts, emit)
	e.checkScrapRates(technicians, emit)
	e.checkBacklogGrowth(parts, emit)
	e.checkStuckParts(parts, now, emit)
	e.checkPerformanceMilestones(technicians, emit)
	e.checkCriticalParts(parts, emit)

	return out
}

type emitFunc func(rule, subject string, n entities.Notification)

func (e *Evaluator) checkOverdueParts(parts []entities.Part, now time.Time, emit emitFunc) {
	for _, p := range parts {
		if !p.IsOverdue(now) {
			continue
		}
		emit(RuleOverdue, p.ID, entities.Notification{
			Kind:   constants.NotifyWarning,
			Title:  "Overdue Part Alert",
			Message: fmt.Sprintf("Part %s has been in %s status for %d days",
				p.PartNumber, p.Status, p.DaysInStatus(now)),
			PartID: p.ID,
		})
	}
}

func (e *Evaluator) checkTechnicianCapacity(technicians []entities.Technician, parts []entities.Part, emit emitFunc) {
	for _, tech := range technicians {
		totalHours := committedHours(parts, tech.ID)
		utilization := totalHours / constants.DailyCapacityHours * 100

		switch {
		case utilization >= constants.CapacityErrorPercent:
			emit(RuleCapacity, tech.ID, entities.Notification{
				Kind:  constants.NotifyError,
				Title: "Technician Overloaded",
				Message: fmt.Sprintf("%s is at %.0f%% capacity (%.1fh/%.0fh)",
					tech.Name, utilization, totalHours, constants.DailyCapacityHours),
				TechnicianID: tech.ID,
			})
		case utilization >= constants.CapacityWarnPercent:
			emit(RuleCapacity, tech.ID, entities.Notification{
				Kind:  constants.NotifyWarning,
				Title: "Technician Near Capacity",
				Message: fmt.Sprintf("%s is at %.0f%% capacity (%.1fh/%.0fh)",
					tech.Name, utilization, totalHours, constants.DailyCapacityHours),
				TechnicianID: tech.ID,
			})
		}
	}
}

func (e *Evaluator) checkScrapRates(technicians []entities.Technician, emit emitFunc) {
	for _, tech := range technicians {
		if tech.Stats.ScrapRate <= constants.ScrapRateWarnPercent {
			continue
		}
		emit(RuleScrapRate, tech.ID, entities.Notification{
			Kind:  constants.NotifyWarning,
			Title: "High Scrap Rate Alert",
			Message: fmt.Sprintf("%s has a scrap rate of %.1f%% (above %.0f%% threshold)",
				tech.Name, tech.Stats.ScrapRate, constants.ScrapRateWarnPercent),
			TechnicianID: tech.ID,
		})
	}
}

func (e *Evaluator) checkBacklogGrowth(parts []entities.Part, emit emitFunc) {
	total := len(parts)
	if total == 0 {
		return
	}
	unrepaired := 0
	for _, p := range parts {
		if p.Status == constants.StatusUnrepaired {
			unrepaired++
		}
	}
	pct := float64(unrepaired) / float64(total) * 100

	switch {
	case pct > constants.BacklogErrorPercent:
		emit(RuleBacklog, "shop", entities.Notification{
			Kind:  constants.NotifyError,
			Title: "High Backlog Alert",
			Message: fmt.Sprintf("Backlog is at %.0f%% (%d/%d parts unrepaired)",
				pct, unrepaired, total),
		})
	case pct > constants.BacklogWarnPercent:
		emit(RuleBacklog, "shop", entities.Notification{
			Kind:  constants.NotifyWarning,
			Title: "Backlog Growing",
			Message: fmt.Sprintf("Backlog is at %.0f%% (%d/%d parts unrepaired)",
				pct, unrepaired, total),
		})
	}
}

func (e *Evaluator) checkStuckParts(parts []entities.Part, now time.Time, emit emitFunc) {
	for _, p := range parts {
		days := p.DaysInStatus(now)
		if days <= constants.StuckAfterDays || p.Status == constants.StatusShipped {
			continue
		}
		emit(RuleStuck, p.ID, entities.Notification{
			Kind:  constants.NotifyInfo,
			Title: "Part Stuck in Status",
			Message: fmt.Sprintf("Part %s has been in %s status for %d days",
				p.PartNumber, p.Status, days),
			PartID: p.ID,
		})
	}
}

func (e *Evaluator) checkPerformanceMilestones(technicians []entities.Technician, emit emitFunc) {
	for _, tech := range technicians {
		if tech.Stats.RepairedCount.Week >= constants.MilestoneWeeklyRepairs {
			emit(RuleMilestoneWeek, tech.ID, entities.Notification{
				Kind:  constants.NotifySuccess,
				Title: "Weekly Milestone Achieved!",
				Message: fmt.Sprintf("%s has completed %d parts this week!",
					tech.Name, tech.Stats.RepairedCount.Week),
				TechnicianID: tech.ID,
			})
		}

		if tech.Stats.RepairedCount.Month >= constants.MilestoneMonthlyRepairs {
			emit(RuleMilestoneMonth, tech.ID, entities.Notification{
				Kind:  constants.NotifySuccess,
				Title: "Monthly Milestone Achieved!",
				Message: fmt.Sprintf("%s has completed %d parts this month!",
					tech.Name, tech.Stats.RepairedCount.Month),
				TechnicianID: tech.ID,
			})
		}

		if tech.Stats.Efficiency >= constants.MilestoneEfficiency {
			emit(RuleMilestoneEff, tech.ID, entities.Notification{
				Kind:  constants.NotifySuccess,
				Title: "Efficiency Excellence!",
				Message: fmt.Sprintf("%s has achieved %.1f%% efficiency!",
					tech.Name, tech.Stats.Efficiency),
				TechnicianID: tech.ID,
			})
		}
	}
}

func (e *Evaluator) checkCriticalParts(parts []entities.Part, emit emitFunc) {
	for _, p := range parts {
		if p.Priority != constants.PriorityCritical || p.Status != constants.StatusUnrepaired {
			continue
		}
		emit(RuleCritical, p.ID, entities.Notification{
			Kind:  constants.NotifyError,
			Title: "Critical Part Alert",
			Message: fmt.Sprintf("Critical part %s is unrepaired and needs immediate attention",
				p.PartNumber),
			PartID: p.ID,
		})
	}
}

// committedHours sums estimated hours of in-repair parts assigned to the
// technician. This is the utilization numerator everywhere in the app.
func committedHours(parts []entities.Part, technicianID string) float64 {
	total := 0.0
	for _, p := range parts {
		if p.AssignedTechnician == technicianID && p.Status == constants.StatusInRepair {
			total += p.EstimatedHours
		}
	}
	return total
}
