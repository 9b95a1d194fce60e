package notify

import (
	"strings"
	"testing"
	"time"

	"skyward-mro/shopfloor/internal/common"
	"skyward-mro/shopfloor/internal/constants"
	"skyward-mro/shopfloor/internal/models/entities"
)

var evalNow = time.Date(2025, 6, 10, 12, 0, 0, 0, time.UTC)

func newEvaluator() *Evaluator {
	return NewEvaluator(common.NewCacheService(60, 600), 30*time.Minute)
}

func daysAgo(n int) time.Time {
	return evalNow.Add(-time.Duration(n) * 24 * time.Hour)
}

func unrepairedPart(id string, enteredDaysAgo int) entities.Part {
	return entities.Part{
		ID:              id,
		PartNumber:      "PN-" + id,
		Status:          constants.StatusUnrepaired,
		Priority:        constants.PriorityMedium,
		EnteredShop:     daysAgo(enteredDaysAgo),
		StatusChangedAt: daysAgo(enteredDaysAgo),
	}
}

func inRepairPart(id, techID string, estimated float64) entities.Part {
	return entities.Part{
		ID:                 id,
		PartNumber:         "PN-" + id,
		Status:             constants.StatusInRepair,
		Priority:           constants.PriorityMedium,
		AssignedTechnician: techID,
		EstimatedHours:     estimated,
		EnteredShop:        daysAgo(1),
		StatusChangedAt:    daysAgo(1),
	}
}

func countRule(ns []entities.Notification, rule string) int {
	n := 0
	for _, x := range ns {
		if strings.Contains(x.RuleKey, rule+":") {
			n++
		}
	}
	return n
}

func TestOverdueRule_FiresOncePerPart(t *testing.T) {
	e := newEvaluator()
	parts := []entities.Part{
		unrepairedPart("p1", 8), // overdue
		unrepairedPart("p2", 2), // fresh
	}

	got := e.Run(parts, nil, evalNow)
	if countRule(got, RuleOverdue) != 1 {
		t.Fatalf("expected exactly one overdue warning, got %d", countRule(got, RuleOverdue))
	}
	var overdue entities.Notification
	for _, n := range got {
		if strings.Contains(n.RuleKey, RuleOverdue) {
			overdue = n
		}
	}
	if overdue.PartID != "p1" || overdue.Kind != constants.NotifyWarning {
		t.Errorf("unexpected overdue advisory: %+v", overdue)
	}
}

func TestCapacityRule_Thresholds(t *testing.T) {
	e := newEvaluator()
	techs := []entities.Technician{
		{ID: "t1", Name: "Overloaded"},
		{ID: "t2", Name: "Near"},
		{ID: "t3", Name: "Fine"},
	}
	parts := []entities.Part{
		// t1: 9h committed over 3 parts -> >=100% -> error
		inRepairPart("a", "t1", 4),
		inRepairPart("b", "t1", 3),
		inRepairPart("c", "t1", 2),
		// t2: 7h -> 87.5% -> warning
		inRepairPart("d", "t2", 7),
		// t3: 4h -> 50% -> nothing
		inRepairPart("e", "t3", 4),
	}

	got := e.Run(parts, techs, evalNow)
	errs, warns := 0, 0
	for _, n := range got {
		if !strings.Contains(n.RuleKey, RuleCapacity+":") {
			continue
		}
		switch n.Kind {
		case constants.NotifyError:
			errs++
			if n.TechnicianID != "t1" {
				t.Errorf("capacity error must reference t1, got %s", n.TechnicianID)
			}
		case constants.NotifyWarning:
			warns++
			if n.TechnicianID != "t2" {
				t.Errorf("capacity warning must reference t2, got %s", n.TechnicianID)
			}
		}
	}
	if errs != 1 || warns != 1 {
		t.Errorf("expected 1 error + 1 warning, got %d/%d", errs, warns)
	}
}

func TestScrapRateRule(t *testing.T) {
	e := newEvaluator()
	techs := []entities.Technician{
		{ID: "t1", Name: "Messy", Stats: entities.TechnicianStats{ScrapRate: 12.5}},
		{ID: "t2", Name: "Tidy", Stats: entities.TechnicianStats{ScrapRate: 10.0}},
	}

	got := e.Run(nil, techs, evalNow)
	if countRule(got, RuleScrapRate) != 1 {
		t.Fatalf("expected one scrap-rate warning, got %d", countRule(got, RuleScrapRate))
	}
}

func TestBacklogRule_Thresholds(t *testing.T) {
	mkParts := func(unrepaired, other int) []entities.Part {
		var ps []entities.Part
		for i := 0; i < unrepaired; i++ {
			ps = append(ps, unrepairedPart(strings.Repeat("u", i+1), 1))
		}
		for i := 0; i < other; i++ {
			ps = append(ps, inRepairPart(strings.Repeat("r", i+1), "t1", 1))
		}
		return ps
	}

	// 6/10 unrepaired -> 60% -> error
	got := newEvaluator().Run(mkParts(6, 4), nil, evalNow)
	found := false
	for _, n := range got {
		if strings.Contains(n.RuleKey, RuleBacklog) {
			found = true
			if n.Kind != constants.NotifyError {
				t.Errorf("60%% backlog must be an error, got %s", n.Kind)
			}
		}
	}
	if !found {
		t.Error("backlog rule did not fire at 60%")
	}

	// 4/10 unrepaired -> 40% -> warning
	got = newEvaluator().Run(mkParts(4, 6), nil, evalNow)
	for _, n := range got {
		if strings.Contains(n.RuleKey, RuleBacklog) && n.Kind != constants.NotifyWarning {
			t.Errorf("40%% backlog must be a warning, got %s", n.Kind)
		}
	}

	// 2/10 -> 20% -> nothing
	got = newEvaluator().Run(mkParts(2, 8), nil, evalNow)
	if countRule(got, RuleBacklog) != 0 {
		t.Error("20% backlog must not fire")
	}

	// empty shop must not divide by zero
	if got := newEvaluator().Run(nil, nil, evalNow); countRule(got, RuleBacklog) != 0 {
		t.Error("empty shop fired backlog rule")
	}
}

func TestStuckRule_SkipsShipped(t *testing.T) {
	e := newEvaluator()
	shippedAt := daysAgo(5)
	parts := []entities.Part{
		{
			ID: "s1", PartNumber: "PN-s1",
			Status:          constants.StatusShipped,
			StatusChangedAt: shippedAt,
			EnteredShop:     daysAgo(10),
			ShippedDate:     &shippedAt,
		},
		inRepairPart("s2", "t1", 2), // 1 day, not stuck
	}
	parts[1].StatusChangedAt = daysAgo(4) // stuck

	got := e.Run(parts, nil, evalNow)
	if countRule(got, RuleStuck) != 1 {
		t.Fatalf("expected one stuck advisory, got %d", countRule(got, RuleStuck))
	}
	for _, n := range got {
		if strings.Contains(n.RuleKey, RuleStuck) && n.PartID != "s2" {
			t.Errorf("stuck advisory must reference s2, got %s", n.PartID)
		}
	}
}

func TestMilestoneRules(t *testing.T) {
	e := newEvaluator()
	techs := []entities.Technician{
		{
			ID: "t1", Name: "Ace",
			Stats: entities.TechnicianStats{
				RepairedCount: entities.PeriodCounts{Week: 12, Month: 45},
				Efficiency:    96.0,
			},
		},
		{
			ID: "t2", Name: "Rookie",
			Stats: entities.TechnicianStats{
				RepairedCount: entities.PeriodCounts{Week: 3, Month: 9},
				Efficiency:    71.0,
			},
		},
	}

	got := e.Run(nil, techs, evalNow)
	success := 0
	for _, n := range got {
		if n.Kind == constants.NotifySuccess {
			success++
			if n.TechnicianID != "t1" {
				t.Errorf("milestone for wrong technician: %s", n.TechnicianID)
			}
		}
	}
	if success != 3 {
		t.Errorf("expected one success per satisfied milestone (3), got %d", success)
	}
}

func TestCriticalRule(t *testing.T) {
	e := newEvaluator()
	crit := unrepairedPart("c1", 1)
	crit.Priority = constants.PriorityCritical
	inRep := inRepairPart("c2", "t1", 2)
	inRep.Priority = constants.PriorityCritical // in-repair, must not fire

	got := e.Run([]entities.Part{crit, inRep}, nil, evalNow)
	if countRule(got, RuleCritical) != 1 {
		t.Fatalf("expected one critical alert, got %d", countRule(got, RuleCritical))
	}
}

func TestCooldownSuppressesRepeatRuns(t *testing.T) {
	e := newEvaluator()
	parts := []entities.Part{unrepairedPart("p1", 8)}

	first := e.Run(parts, nil, evalNow)
	if len(first) == 0 {
		t.Fatal("first run fired nothing")
	}
	second := e.Run(parts, nil, evalNow.Add(time.Minute))
	if len(second) != 0 {
		t.Errorf("second run within cool-down must be suppressed, got %d", len(second))
	}
}
