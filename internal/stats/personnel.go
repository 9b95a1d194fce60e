// Package stats derives personnel and shop-level metrics from the
// current registry snapshot. All figures are recomputed on demand and
// cached for a short TTL; nothing here mutates registry state.
package stats

import (
	"fmt"
	"sort"
	"time"

	"skyward-mro/shopfloor/internal/common"
	"skyward-mro/shopfloor/internal/constants"
	"skyward-mro/shopfloor/internal/models/entities"
)

// PartPerformance is the per-part detail row inside a technician's report.
type PartPerformance struct {
	PartID          string               `json:"part_id"`
	PartNumber      string               `json:"part_number"`
	Aircraft        string               `json:"aircraft"`
	Status          constants.PartStatus `json:"status"`
	Priority        constants.Priority   `json:"priority"`
	Customer        string               `json:"customer"`
	EstimatedHours  float64              `json:"estimated_hours"`
	ActualHours     *float64             `json:"actual_hours,omitempty"`
	Efficiency      float64              `json:"efficiency"`
	OnTime          bool                 `json:"on_time"`
	EnteredShop     time.Time            `json:"entered_shop"`
	RepairStarted   *time.Time           `json:"repair_started,omitempty"`
	RepairCompleted *time.Time           `json:"repair_completed,omitempty"`
}

// PersonnelReport is the derived performance block for one technician.
type PersonnelReport struct {
	TechnicianID    string            `json:"technician_id"`
	TechnicianName  string            `json:"technician_name"`
	TotalAssigned   int               `json:"total_assigned"`
	Completed       int               `json:"completed"`
	InProgress      int               `json:"in_progress"`
	Scrapped        int               `json:"scrapped"`
	AvgRepairTime   float64           `json:"avg_repair_time"`
	Efficiency      float64           `json:"efficiency"`
	OnTimeDelivery  float64           `json:"on_time_delivery"`
	TotalHours      float64           `json:"total_hours"`
	LastActivity    *time.Time        `json:"last_activity,omitempty"`
	PartPerformance []PartPerformance `json:"part_performance"`
}

// OverallStats rolls every technician's report into shop-wide totals.
type OverallStats struct {
	TotalParts        int     `json:"total_parts"`
	TotalCompleted    int     `json:"total_completed"`
	TotalHours        float64 `json:"total_hours"`
	AvgEfficiency     float64 `json:"avg_efficiency"`
	AvgOnTimeDelivery float64 `json:"avg_on_time_delivery"`
	CompletionRate    float64 `json:"completion_rate"`
}

// Service computes reports and memoizes them in the shared cache.
type Service struct {
	cache common.CacheInterface
	ttl   time.Duration
}

func NewService(cache common.CacheInterface, ttl time.Duration) *Service {
	if ttl <= 0 {
		ttl = time.Minute
	}
	return &Service{cache: cache, ttl: ttl}
}

// PersonnelReports builds one report per technician, roster order.
// Cached under a key derived from the snapshot itself, so a mutation
// produces fresh figures on the next read instead of waiting out the TTL.
func (s *Service) PersonnelReports(parts []entities.Part, technicians []entities.Technician) []PersonnelReport {
	key := fmt.Sprintf("%sreports:%s", constants.CachePrefixPersonnel, snapshotFingerprint(parts, technicians))
	if cached, found := s.cache.Get(key); found {
		if reports, ok := cached.([]PersonnelReport); ok {
			return reports
		}
	}

	reports := make([]PersonnelReport, 0, len(technicians))
	for _, tech := range technicians {
		reports = append(reports, buildReport(parts, tech))
	}

	s.cache.Set(key, reports, s.ttl)
	return reports
}

// snapshotFingerprint identifies a registry snapshot cheaply. Every
// mutation either appends history or stamps LastUpdated, so the tuple
// (part count, history total, latest update, roster size) changes
// whenever the derived figures could.
func snapshotFingerprint(parts []entities.Part, technicians []entities.Technician) string {
	var latest time.Time
	histories := 0
	for _, p := range parts {
		histories += len(p.History)
		if p.LastUpdated.After(latest) {
			latest = p.LastUpdated
		}
	}
	return fmt.Sprintf("%d:%d:%d:%d", len(parts), histories, latest.UnixNano(), len(technicians))
}

func buildReport(parts []entities.Part, tech entities.Technician) PersonnelReport {
	report := PersonnelReport{
		TechnicianID:   tech.ID,
		TechnicianName: tech.Name,
	}

	var completedWithActual, completedWithBoth, onTime int
	var actualSum, estSum, actualForEffSum float64

	for _, p := range parts {
		if p.AssignedTechnician != tech.ID {
			continue
		}
		report.TotalAssigned++

		switch p.Status {
		case constants.StatusRepaired, constants.StatusShipped:
			report.Completed++
			if p.ActualHours != nil {
				completedWithActual++
				actualSum += *p.ActualHours
				if p.EstimatedHours > 0 {
					completedWithBoth++
					estSum += p.EstimatedHours
					actualForEffSum += *p.ActualHours
					if *p.ActualHours <= p.EstimatedHours {
						onTime++
					}
				}
			}
		case constants.StatusInRepair:
			report.InProgress++
		case constants.StatusScrap:
			report.Scrapped++
		}

		if p.ActualHours != nil {
			report.TotalHours += *p.ActualHours
		}
		if report.LastActivity == nil || p.LastUpdated.After(*report.LastActivity) {
			lu := p.LastUpdated
			report.LastActivity = &lu
		}

		report.PartPerformance = append(report.PartPerformance, partPerformance(p))
	}

	if completedWithActual > 0 {
		report.AvgRepairTime = round1(actualSum / float64(completedWithActual))
	}
	if estSum > 0 {
		report.Efficiency = round1(clampZero((estSum - actualForEffSum) / estSum * 100))
	}
	if completedWithBoth > 0 {
		report.OnTimeDelivery = round1(float64(onTime) / float64(completedWithBoth) * 100)
	}
	report.TotalHours = round1(report.TotalHours)
	return report
}

func partPerformance(p entities.Part) PartPerformance {
	perf := PartPerformance{
		PartID:          p.ID,
		PartNumber:      p.PartNumber,
		Aircraft:        p.Aircraft,
		Status:          p.Status,
		Priority:        p.Priority,
		Customer:        p.Customer,
		EstimatedHours:  p.EstimatedHours,
		ActualHours:     p.ActualHours,
		EnteredShop:     p.EnteredShop,
		RepairStarted:   p.RepairStarted,
		RepairCompleted: p.RepairCompleted,
	}
	if p.ActualHours != nil && p.EstimatedHours > 0 {
		perf.Efficiency = round1(clampZero((p.EstimatedHours - *p.ActualHours) / p.EstimatedHours * 100))
		perf.OnTime = *p.ActualHours <= p.EstimatedHours
	}
	return perf
}

// TopPerformers sorts reports by the named metric and keeps the first
// limit entries. Lower is better for avg_repair_time, higher for the rest.
func TopPerformers(reports []PersonnelReport, metric string, limit int) []PersonnelReport {
	if limit <= 0 {
		limit = 3
	}
	sorted := append([]PersonnelReport(nil), reports...)
	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := metricValue(sorted[i], metric), metricValue(sorted[j], metric)
		if metric == "avg_repair_time" {
			return a < b
		}
		return a > b
	})
	if len(sorted) > limit {
		sorted = sorted[:limit]
	}
	return sorted
}

func metricValue(r PersonnelReport, metric string) float64 {
	switch metric {
	case "avg_repair_time":
		return r.AvgRepairTime
	case "on_time_delivery":
		return r.OnTimeDelivery
	case "total_hours":
		return r.TotalHours
	case "completed":
		return float64(r.Completed)
	default:
		return r.Efficiency
	}
}

// Overall aggregates all reports into shop-wide totals.
func Overall(reports []PersonnelReport) OverallStats {
	var out OverallStats
	for _, r := range reports {
		out.TotalParts += r.TotalAssigned
		out.TotalCompleted += r.Completed
		out.TotalHours += r.TotalHours
		out.AvgEfficiency += r.Efficiency
		out.AvgOnTimeDelivery += r.OnTimeDelivery
	}
	if n := float64(len(reports)); n > 0 {
		out.AvgEfficiency = round1(out.AvgEfficiency / n)
		out.AvgOnTimeDelivery = round1(out.AvgOnTimeDelivery / n)
	}
	if out.TotalParts > 0 {
		out.CompletionRate = round1(float64(out.TotalCompleted) / float64(out.TotalParts) * 100)
	}
	out.TotalHours = round1(out.TotalHours)
	return out
}

func round1(v float64) float64 {
	if v < 0 {
		return float64(int(v*10-0.5)) / 10
	}
	return float64(int(v*10+0.5)) / 10
}

func clampZero(v float64) float64 {
	if v < 0 {
		return 0
	}
	return v
}
