package assign

import (
	"testing"

	"skyward-mro/shopfloor/internal/constants"
	"skyward-mro/shopfloor/internal/models/entities"
)

func part(id string, prio constants.Priority, hours float64) entities.Part {
	return entities.Part{
		ID:             id,
		PartNumber:     "PN-" + id,
		Status:         constants.StatusUnrepaired,
		Priority:       prio,
		EstimatedHours: hours,
	}
}

func busyPart(id, techID string, hours float64) entities.Part {
	p := part(id, constants.PriorityMedium, hours)
	p.Status = constants.StatusInRepair
	p.AssignedTechnician = techID
	return p
}

func roster(ids ...string) []entities.Technician {
	var ts []entities.Technician
	for _, id := range ids {
		ts = append(ts, entities.Technician{ID: id, Name: "Tech " + id})
	}
	return ts
}

func assignmentOf(p Plan, partID string) (Assignment, bool) {
	for _, a := range p.Assignments {
		if a.PartID == partID {
			return a, true
		}
	}
	return Assignment{}, false
}

func TestBuildPlan_PriorityThenHoursOrdering(t *testing.T) {
	parts := []entities.Part{
		part("low-big", constants.PriorityLow, 6),
		part("crit-small", constants.PriorityCritical, 2),
		part("high-big", constants.PriorityHigh, 5),
		part("high-small", constants.PriorityHigh, 3),
	}
	techs := roster("t1")

	plan := BuildPlan(parts, techs)

	// t1 has 8h: crit-small (2) then high-big (5) fit; high-small (3)
	// and low-big no longer do.
	if len(plan.Assignments) != 2 {
		t.Fatalf("expected 2 assignments, got %d", len(plan.Assignments))
	}
	if plan.Assignments[0].PartID != "crit-small" || plan.Assignments[1].PartID != "high-big" {
		t.Errorf("greedy order wrong: %+v", plan.Assignments)
	}
	if len(plan.Unassigned) != 2 {
		t.Errorf("expected 2 leftovers, got %v", plan.Unassigned)
	}
}

func TestBuildPlan_SeedsFromCommittedHours(t *testing.T) {
	parts := []entities.Part{
		busyPart("busy", "t1", 6), // t1 has only 2h left
		part("p1", constants.PriorityHigh, 4),
	}
	techs := roster("t1", "t2")

	plan := BuildPlan(parts, techs)

	a, ok := assignmentOf(plan, "p1")
	if !ok {
		t.Fatal("p1 was not assigned")
	}
	if a.TechnicianID != "t2" {
		t.Errorf("p1 must skip the loaded t1, got %s", a.TechnicianID)
	}
}

func TestBuildPlan_RosterOrderTieBreak(t *testing.T) {
	parts := []entities.Part{part("p1", constants.PriorityMedium, 3)}
	plan := BuildPlan(parts, roster("t1", "t2"))

	a, ok := assignmentOf(plan, "p1")
	if !ok || a.TechnicianID != "t1" {
		t.Errorf("first technician in roster order must win, got %+v", a)
	}
}

func TestBuildPlan_NeverOverassigns(t *testing.T) {
	parts := []entities.Part{part("whale", constants.PriorityCritical, 12)}
	plan := BuildPlan(parts, roster("t1", "t2", "t3"))

	if len(plan.Assignments) != 0 {
		t.Errorf("no technician can take a 12h part, got %+v", plan.Assignments)
	}
	if len(plan.Unassigned) != 1 || plan.Unassigned[0] != "whale" {
		t.Errorf("oversized part must be reported unassigned, got %v", plan.Unassigned)
	}
}

func TestBuildPlan_SkipsAssignedAndNonUnrepaired(t *testing.T) {
	assigned := part("a", constants.PriorityHigh, 2)
	assigned.AssignedTechnician = "t1"
	repaired := part("r", constants.PriorityHigh, 2)
	repaired.Status = constants.StatusRepaired

	plan := BuildPlan([]entities.Part{assigned, repaired}, roster("t1"))
	if len(plan.Assignments) != 0 || len(plan.Unassigned) != 0 {
		t.Errorf("only unassigned unrepaired parts are candidates, got %+v", plan)
	}
}
