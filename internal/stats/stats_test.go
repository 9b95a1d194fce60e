package stats

import (
	"testing"
	"time"

	"skyward-mro/shopfloor/internal/common"
	"skyward-mro/shopfloor/internal/constants"
	"skyward-mro/shopfloor/internal/models/entities"
)

var statsNow = time.Date(2025, 6, 10, 15, 0, 0, 0, time.UTC)

func newService() *Service {
	return NewService(common.NewCacheService(60, 600), time.Minute)
}

func hoursPtr(h float64) *float64 { return &h }

func timePtr(t time.Time) *time.Time { return &t }

func donePart(id, techID string, estimated, actual float64, completed time.Time) entities.Part {
	started := completed.Add(-time.Duration(actual * float64(time.Hour)))
	return entities.Part{
		ID:                 id,
		PartNumber:         "PN-" + id,
		Status:             constants.StatusRepaired,
		Priority:           constants.PriorityMedium,
		AssignedTechnician: techID,
		EstimatedHours:     estimated,
		ActualHours:        hoursPtr(actual),
		EnteredShop:        completed.AddDate(0, 0, -3),
		StatusChangedAt:    completed,
		LastUpdated:        completed,
		RepairStarted:      timePtr(started),
		RepairCompleted:    timePtr(completed),
	}
}

func activePart(id, techID string, estimated float64) entities.Part {
	return entities.Part{
		ID:                 id,
		PartNumber:         "PN-" + id,
		Status:             constants.StatusInRepair,
		Priority:           constants.PriorityMedium,
		AssignedTechnician: techID,
		EstimatedHours:     estimated,
		EnteredShop:        statsNow.AddDate(0, 0, -2),
		StatusChangedAt:    statsNow.AddDate(0, 0, -1),
		LastUpdated:        statsNow.AddDate(0, 0, -1),
		RepairStarted:      timePtr(statsNow.AddDate(0, 0, -1)),
	}
}

func TestPersonnelReport_Metrics(t *testing.T) {
	tech := entities.Technician{ID: "t1", Name: "Ace"}
	parts := []entities.Part{
		// 4h estimated, 3h actual: 25% saved, on time
		donePart("p1", "t1", 4, 3, statsNow.AddDate(0, 0, -1)),
		// 4h estimated, 6h actual: overrun, late
		donePart("p2", "t1", 4, 6, statsNow.AddDate(0, 0, -2)),
		activePart("p3", "t1", 2),
		donePart("other", "t2", 2, 2, statsNow),
	}

	reports := newService().PersonnelReports(parts, []entities.Technician{tech})
	if len(reports) != 1 {
		t.Fatalf("expected one report, got %d", len(reports))
	}
	r := reports[0]

	if r.TotalAssigned != 3 || r.Completed != 2 || r.InProgress != 1 {
		t.Errorf("counts wrong: %+v", r)
	}
	if r.AvgRepairTime != 4.5 {
		t.Errorf("avg repair time = %v, want 4.5", r.AvgRepairTime)
	}
	// (8 est - 9 actual) / 8 is negative, clamped to 0
	if r.Efficiency != 0 {
		t.Errorf("efficiency = %v, want 0 (clamped)", r.Efficiency)
	}
	if r.OnTimeDelivery != 50.0 {
		t.Errorf("on-time delivery = %v, want 50", r.OnTimeDelivery)
	}
	if r.TotalHours != 9.0 {
		t.Errorf("total hours = %v, want 9", r.TotalHours)
	}
	if len(r.PartPerformance) != 3 {
		t.Errorf("expected 3 part detail rows, got %d", len(r.PartPerformance))
	}
}

func TestPersonnelReport_EfficiencyPositive(t *testing.T) {
	tech := entities.Technician{ID: "t1", Name: "Ace"}
	parts := []entities.Part{donePart("p1", "t1", 10, 8, statsNow)}

	r := newService().PersonnelReports(parts, []entities.Technician{tech})[0]
	if r.Efficiency != 20.0 {
		t.Errorf("efficiency = %v, want 20", r.Efficiency)
	}
	if r.OnTimeDelivery != 100.0 {
		t.Errorf("on-time = %v, want 100", r.OnTimeDelivery)
	}
}

func TestTopPerformers_RepairTimeAscending(t *testing.T) {
	reports := []PersonnelReport{
		{TechnicianID: "slow", AvgRepairTime: 9, Efficiency: 50},
		{TechnicianID: "fast", AvgRepairTime: 2, Efficiency: 10},
		{TechnicianID: "mid", AvgRepairTime: 5, Efficiency: 90},
	}

	top := TopPerformers(reports, "avg_repair_time", 2)
	if top[0].TechnicianID != "fast" || top[1].TechnicianID != "mid" {
		t.Errorf("repair-time ranking wrong: %s, %s", top[0].TechnicianID, top[1].TechnicianID)
	}

	top = TopPerformers(reports, "efficiency", 1)
	if top[0].TechnicianID != "mid" {
		t.Errorf("efficiency ranking wrong: %s", top[0].TechnicianID)
	}
}

func TestOverallRollup(t *testing.T) {
	reports := []PersonnelReport{
		{TotalAssigned: 4, Completed: 2, TotalHours: 10, Efficiency: 80, OnTimeDelivery: 100},
		{TotalAssigned: 6, Completed: 4, TotalHours: 20, Efficiency: 60, OnTimeDelivery: 50},
	}

	o := Overall(reports)
	if o.TotalParts != 10 || o.TotalCompleted != 6 {
		t.Errorf("totals wrong: %+v", o)
	}
	if o.AvgEfficiency != 70.0 || o.AvgOnTimeDelivery != 75.0 {
		t.Errorf("averages wrong: %+v", o)
	}
	if o.CompletionRate != 60.0 {
		t.Errorf("completion rate = %v, want 60", o.CompletionRate)
	}
}

func TestShopAnalytics(t *testing.T) {
	techs := []entities.Technician{
		{ID: "t1", Name: "Ace"},
		{ID: "t2", Name: "Deuce"},
	}

	scrapped := activePart("sc", "t1", 1)
	scrapped.Status = constants.StatusScrap
	scrapped.AssignedTechnician = "t1"

	shipped := donePart("sh", "t2", 3, 3, statsNow.AddDate(0, 0, -1))
	shipped.Status = constants.StatusShipped

	overdue := entities.Part{
		ID: "od", PartNumber: "PN-od",
		Status:          constants.StatusUnrepaired,
		Priority:        constants.PriorityHigh,
		EnteredShop:     statsNow.AddDate(0, 0, -9),
		StatusChangedAt: statsNow.AddDate(0, 0, -9),
	}

	parts := []entities.Part{
		donePart("today", "t1", 4, 2, statsNow.Add(-time.Hour)), // completed today, 2h span
		shipped,
		scrapped,
		overdue,
		activePart("wip", "t1", 5),
	}

	a := newService().ShopAnalytics(parts, techs, statsNow)

	if a.TotalParts != 5 {
		t.Errorf("total parts = %d, want 5", a.TotalParts)
	}
	if a.CompletedToday != 1 {
		t.Errorf("completed today = %d, want 1", a.CompletedToday)
	}
	if a.OverdueRepairs != 1 {
		t.Errorf("overdue = %d, want 1", a.OverdueRepairs)
	}
	// spans: 2h (today) + 3h (shipped) over 2 parts
	if a.MTTRHours != 2.5 {
		t.Errorf("mttr = %v, want 2.5", a.MTTRHours)
	}
	// processed = repaired(1) + shipped(1) + scrap(1)
	if a.ScrapRate != 33.3 || a.ShippedRate != 33.3 {
		t.Errorf("rates = %v/%v, want 33.3/33.3", a.ScrapRate, a.ShippedRate)
	}
	if a.StatusCounts[constants.StatusUnrepaired] != 1 || a.StatusCounts[constants.StatusInRepair] != 1 {
		t.Errorf("status counts wrong: %v", a.StatusCounts)
	}
	if len(a.BacklogTrend) != 7 {
		t.Fatalf("trend length = %d, want 7", len(a.BacklogTrend))
	}
	// overdue part entered 9 days ago and never started, present all week
	if a.BacklogTrend[0].Count < 1 {
		t.Errorf("trend must include the standing backlog: %+v", a.BacklogTrend[0])
	}

	if len(a.Workload) != 2 {
		t.Fatalf("workload rows = %d, want 2", len(a.Workload))
	}
	if a.Workload[0].Hours != 5.0 {
		t.Errorf("t1 workload = %v, want 5 (in-repair only)", a.Workload[0].Hours)
	}
	if a.Workload[0].Utilization != 62.5 {
		t.Errorf("t1 utilization = %v, want 62.5", a.Workload[0].Utilization)
	}
}

func TestShopAnalytics_CacheKeyTracksSnapshot(t *testing.T) {
	svc := newService()
	parts := []entities.Part{activePart("p1", "t1", 2)}

	first := svc.ShopAnalytics(parts, nil, statsNow)
	// identical snapshot is served from cache
	cached := svc.ShopAnalytics(parts, nil, statsNow)
	if cached.TotalParts != first.TotalParts {
		t.Errorf("expected memoized snapshot, got %d parts", cached.TotalParts)
	}

	// a changed snapshot must not be answered with the old figures
	fresh := svc.ShopAnalytics(nil, nil, statsNow)
	if fresh.TotalParts != 0 {
		t.Errorf("stale analytics served after snapshot changed: %d parts", fresh.TotalParts)
	}
}

func TestPersonnelReports_FreshAfterMutation(t *testing.T) {
	svc := newService()
	tech := entities.Technician{ID: "t1", Name: "John Smith", Role: constants.RoleTechnician}

	before := svc.PersonnelReports([]entities.Part{activePart("p1", "t1", 2)}, []entities.Technician{tech})
	if before[0].TotalAssigned != 1 {
		t.Fatalf("expected 1 assigned part, got %d", before[0].TotalAssigned)
	}

	// a second part enters the shop; the next read must see it even
	// though the first result is still inside its TTL
	after := svc.PersonnelReports([]entities.Part{
		activePart("p1", "t1", 2),
		activePart("p2", "t1", 3),
	}, []entities.Technician{tech})
	if after[0].TotalAssigned != 2 {
		t.Errorf("stale report served after mutation: %d assigned, want 2", after[0].TotalAssigned)
	}
}
