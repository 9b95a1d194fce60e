// Package assign builds first-fit assignment plans for the manager's
// board: a greedy bin-packing approximation, not an optimal one. No
// backtracking, no rebalancing; technician roster order is the
// tie-break between equally capable candidates.
package assign

import (
	"sort"

	"skyward-mro/shopfloor/internal/constants"
	"skyward-mro/shopfloor/internal/models/entities"
)

// Assignment pairs one part with the technician chosen for it.
type Assignment struct {
	PartID         string  `json:"part_id"`
	PartNumber     string  `json:"part_number"`
	TechnicianID   string  `json:"technician_id"`
	TechnicianName string  `json:"technician_name"`
	EstimatedHours float64 `json:"estimated_hours"`
}

// Plan is the outcome of one planning pass.
type Plan struct {
	Assignments []Assignment `json:"assignments"`
	// Unassigned lists part ids no technician had capacity for.
	Unassigned []string `json:"unassigned,omitempty"`
}

// BuildPlan selects every unassigned, unrepaired part and packs it
// first-fit onto the roster:
//
//  1. parts sorted by priority rank desc, then estimated hours desc
//  2. per-technician available hours seeded from the daily capacity
//     minus hours already committed to in-repair work
//  3. each part goes to the first technician with enough remaining
//     hours; the part's estimate is deducted from that technician
func BuildPlan(parts []entities.Part, technicians []entities.Technician) Plan {
	var candidates []entities.Part
	for _, p := range parts {
		if p.Status == constants.StatusUnrepaired && p.AssignedTechnician == "" {
			candidates = append(candidates, p)
		}
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		ri, rj := candidates[i].Priority.Rank(), candidates[j].Priority.Rank()
		if ri != rj {
			return ri > rj
		}
		return candidates[i].EstimatedHours > candidates[j].EstimatedHours
	})

	available := make(map[string]float64, len(technicians))
	for _, t := range technicians {
		remaining := constants.DailyCapacityHours - committedHours(parts, t.ID)
		if remaining < 0 {
			remaining = 0
		}
		available[t.ID] = remaining
	}

	var plan Plan
	for _, p := range candidates {
		placed := false
		for _, t := range technicians {
			if available[t.ID] >= p.EstimatedHours {
				plan.Assignments = append(plan.Assignments, Assignment{
					PartID:         p.ID,
					PartNumber:     p.PartNumber,
					TechnicianID:   t.ID,
					TechnicianName: t.Name,
					EstimatedHours: p.EstimatedHours,
				})
				available[t.ID] -= p.EstimatedHours
				placed = true
				break
			}
		}
		if !placed {
			plan.Unassigned = append(plan.Unassigned, p.ID)
		}
	}
	return plan
}

func committedHours(parts []entities.Part, technicianID string) float64 {
	total := 0.0
	for _, p := range parts {
		if p.AssignedTechnician == technicianID && p.Status == constants.StatusInRepair {
			total += p.EstimatedHours
		}
	}
	return total
}
