package stats

import (
	"fmt"
	"time"

	"skyward-mro/shopfloor/internal/constants"
	"skyward-mro/shopfloor/internal/models/entities"
)

// BacklogPoint is one day of the backlog trend.
type BacklogPoint struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
}

// Workload is committed in-repair hours for one technician.
type Workload struct {
	TechnicianID   string  `json:"technician_id"`
	TechnicianName string  `json:"technician_name"`
	Hours          float64 `json:"hours"`
	Utilization    float64 `json:"utilization"`
}

// ShopAnalytics is the manager dashboard's health snapshot.
type ShopAnalytics struct {
	TotalParts     int                          `json:"total_parts"`
	CompletedToday int                          `json:"completed_today"`
	OverdueRepairs int                          `json:"overdue_repairs"`
	MTTRHours      float64                      `json:"mttr_hours"`
	ScrapRate      float64                      `json:"scrap_rate"`
	ShippedRate    float64                      `json:"shipped_rate"`
	StatusCounts   map[constants.PartStatus]int `json:"status_counts"`
	PriorityCounts map[constants.Priority]int   `json:"priority_counts"`
	BacklogTrend   []BacklogPoint               `json:"backlog_trend"`
	Workload       []Workload                   `json:"workload"`
}

// ShopAnalytics computes the full health snapshot. Results are cached
// for the service TTL since the dashboard polls aggressively.
func (s *Service) ShopAnalytics(parts []entities.Part, technicians []entities.Technician, now time.Time) ShopAnalytics {
	key := fmt.Sprintf("%sshop:%s", constants.CachePrefixAnalytics, snapshotFingerprint(parts, technicians))
	if cached, found := s.cache.Get(key); found {
		if a, ok := cached.(ShopAnalytics); ok {
			return a
		}
	}

	a := ShopAnalytics{
		TotalParts:     len(parts),
		StatusCounts:   make(map[constants.PartStatus]int),
		PriorityCounts: make(map[constants.Priority]int),
	}

	todayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	var repairSpanHours float64
	var repaired, processed, scrapped, shipped int

	for _, p := range parts {
		a.StatusCounts[p.Status]++
		a.PriorityCounts[p.Priority]++

		if p.RepairCompleted != nil && !p.RepairCompleted.Before(todayStart) {
			a.CompletedToday++
		}
		if p.IsOverdue(now) {
			a.OverdueRepairs++
		}
		if p.RepairStarted != nil && p.RepairCompleted != nil {
			repaired++
			repairSpanHours += p.RepairCompleted.Sub(*p.RepairStarted).Hours()
		}
		switch p.Status {
		case constants.StatusRepaired:
			processed++
		case constants.StatusScrap:
			processed++
			scrapped++
		case constants.StatusShipped:
			processed++
			shipped++
		}
	}

	if repaired > 0 {
		a.MTTRHours = round1(repairSpanHours / float64(repaired))
	}
	if processed > 0 {
		a.ScrapRate = round1(float64(scrapped) / float64(processed) * 100)
		a.ShippedRate = round1(float64(shipped) / float64(processed) * 100)
	}

	a.BacklogTrend = backlogTrend(parts, now)
	a.Workload = workloadDistribution(parts, technicians)

	s.cache.Set(key, a, s.ttl)
	return a
}

// backlogTrend counts, for each of the last 7 days, the parts that were
// sitting unrepaired at end of that day: entered by then and either
// still unrepaired or not yet started as of that day.
func backlogTrend(parts []entities.Part, now time.Time) []BacklogPoint {
	trend := make([]BacklogPoint, 0, 7)
	for i := 6; i >= 0; i-- {
		day := now.AddDate(0, 0, -i)
		count := 0
		for _, p := range parts {
			if p.EnteredShop.After(day) {
				continue
			}
			if p.Status == constants.StatusUnrepaired ||
				(p.RepairStarted != nil && p.RepairStarted.After(day)) {
				count++
			}
		}
		trend = append(trend, BacklogPoint{Date: day.Format("2006-01-02"), Count: count})
	}
	return trend
}

func workloadDistribution(parts []entities.Part, technicians []entities.Technician) []Workload {
	out := make([]Workload, 0, len(technicians))
	for _, tech := range technicians {
		hours := 0.0
		for _, p := range parts {
			if p.AssignedTechnician == tech.ID && p.Status == constants.StatusInRepair {
				hours += p.EstimatedHours
			}
		}
		out = append(out, Workload{
			TechnicianID:   tech.ID,
			TechnicianName: tech.Name,
			Hours:          round1(hours),
			Utilization:    round1(hours / constants.DailyCapacityHours * 100),
		})
	}
	return out
}
