// Package seed loads the demo shop used by local development and the
// memory-only deployment. Timestamps are generated relative to startup
// so the dashboard always shows a live-looking floor.
package seed

import (
	"fmt"
	"time"

	"skyward-mro/shopfloor/internal/constants"
	"skyward-mro/shopfloor/internal/logging"
	"skyward-mro/shopfloor/internal/models/entities"
	"skyward-mro/shopfloor/internal/registry"
)

// Load populates the registry with the demo roster and parts.
func Load(reg *registry.Registry) error {
	for _, t := range demoTechnicians() {
		reg.AddTechnician(t)
	}
	for _, m := range demoManagers() {
		reg.AddManager(m)
	}
	for _, i := range demoInspectors() {
		reg.AddInspector(i)
	}

	parts := demoParts(time.Now())
	for _, p := range parts {
		if err := reg.LoadPart(p); err != nil {
			return fmt.Errorf("failed to seed part %s: %w", p.ID, err)
		}
	}

	logging.Info("Demo data seeded",
		"parts", len(parts),
		"technicians", 5,
	)
	return nil
}

func demoTechnicians() []entities.Technician {
	return []entities.Technician{
		{
			ID: "tech1", Name: "John Smith", Role: constants.RoleTechnician,
			Skills: []string{"Hydraulics", "Avionics", "Engine Systems"},
			Stats: entities.TechnicianStats{
				RepairedCount: entities.PeriodCounts{Today: 2, Week: 8, Month: 32},
				AvgRepairTime: 6.5, ScrapRate: 5.2,
				HoursWorked: entities.PeriodHours{Today: 7.5, Week: 38, Month: 152},
				Efficiency:  85.3, OnTimeDelivery: 92.1,
			},
			Badges:   []string{"Speed Demon", "Quality Master", "Team Player"},
			JoinDate: "2022-03-15",
		},
		{
			ID: "tech2", Name: "Sarah Johnson", Role: constants.RoleTechnician,
			Skills: []string{"Landing Gear", "Fuel Systems", "Navigation"},
			Stats: entities.TechnicianStats{
				RepairedCount: entities.PeriodCounts{Today: 1, Week: 6, Month: 28},
				AvgRepairTime: 7.2, ScrapRate: 3.8,
				HoursWorked: entities.PeriodHours{Today: 6.8, Week: 35, Month: 142},
				Efficiency:  78.9, OnTimeDelivery: 88.5,
			},
			Badges:   []string{"Precision Expert", "Safety First"},
			JoinDate: "2021-11-08",
		},
		{
			ID: "tech3", Name: "Mike Davis", Role: constants.RoleTechnician,
			Skills: []string{"Engine Repair", "APU Systems", "Troubleshooting"},
			Stats: entities.TechnicianStats{
				RepairedCount: entities.PeriodCounts{Today: 3, Week: 12, Month: 45},
				AvgRepairTime: 5.8, ScrapRate: 7.1,
				HoursWorked: entities.PeriodHours{Today: 8.0, Week: 40, Month: 160},
				Efficiency:  91.2, OnTimeDelivery: 95.3,
			},
			Badges:   []string{"Speed Demon", "Problem Solver", "Mentor"},
			JoinDate: "2020-06-22",
		},
		{
			ID: "tech4", Name: "Emily Wilson", Role: constants.RoleTechnician,
			Skills: []string{"Cabin Systems", "Environmental Control", "Electrical"},
			Stats: entities.TechnicianStats{
				RepairedCount: entities.PeriodCounts{Today: 2, Week: 9, Month: 38},
				AvgRepairTime: 6.9, ScrapRate: 4.2,
				HoursWorked: entities.PeriodHours{Today: 7.2, Week: 36, Month: 148},
				Efficiency:  82.7, OnTimeDelivery: 89.8,
			},
			Badges:   []string{"Detail Oriented", "Innovation Leader"},
			JoinDate: "2023-01-10",
		},
		{
			ID: "tech5", Name: "David Brown", Role: constants.RoleTechnician,
			Skills: []string{"Structural Repair", "Composite Materials", "Quality Control"},
			Stats: entities.TechnicianStats{
				RepairedCount: entities.PeriodCounts{Today: 1, Week: 7, Month: 31},
				AvgRepairTime: 8.1, ScrapRate: 2.9,
				HoursWorked: entities.PeriodHours{Today: 6.5, Week: 33, Month: 135},
				Efficiency:  76.4, OnTimeDelivery: 85.2,
			},
			Badges:   []string{"Quality Master", "Safety First"},
			JoinDate: "2022-09-03",
		},
	}
}

func demoManagers() []entities.Manager {
	return []entities.Manager{
		{ID: "mgr1", Name: "Robert Taylor", Role: constants.RoleManager},
		{ID: "mgr2", Name: "Lisa Anderson", Role: constants.RoleManager},
	}
}

func demoInspectors() []entities.Inspector {
	return []entities.Inspector{
		{ID: "i1", Name: "Alice Inspector", Role: constants.RoleInspector},
	}
}

// partSeed is the compact form a demo part is described in; buildPart
// expands it into a full record with a consistent audit trail.
type partSeed struct {
	id, partNumber, aircraft, workOrder string
	description, customer, location     string
	status                              constants.PartStatus
	priority                            constants.Priority
	technicianID, technicianName        string
	estimatedHours                      float64
	actualHours                         float64 // 0 means not recorded
	enteredDaysAgo                      int
	startedDaysAgo                      int // <0 means never started
	completedDaysAgo                    int // <0 means never completed
	shippedDaysAgo                      int // <0 means not shipped
	scrappedDaysAgo                     int // <0 means not scrapped
}

func demoParts(now time.Time) []entities.Part {
	seeds := []partSeed{
		{
			id: "part1", partNumber: "PN-001-2024", aircraft: "Boeing 737", workOrder: "WO-2024-001",
			description: "Landing gear hydraulic pump", customer: "Delta Airlines", location: "Bay A-1",
			status: constants.StatusUnrepaired, priority: constants.PriorityHigh,
			estimatedHours: 2, enteredDaysAgo: 5, startedDaysAgo: -1, completedDaysAgo: -1, shippedDaysAgo: -1, scrappedDaysAgo: -1,
		},
		{
			id: "part2", partNumber: "PN-002-2024", aircraft: "Airbus A320", workOrder: "WO-2024-002",
			description: "Engine fuel injector", customer: "American Airlines", location: "Bay B-2",
			status: constants.StatusInRepair, priority: constants.PriorityCritical,
			technicianID: "tech1", technicianName: "John Smith",
			estimatedHours: 3, enteredDaysAgo: 7, startedDaysAgo: 2, completedDaysAgo: -1, shippedDaysAgo: -1, scrappedDaysAgo: -1,
		},
		{
			id: "part3", partNumber: "PN-003-2024", aircraft: "Boeing 777", workOrder: "WO-2024-003",
			description: "Navigation system module", customer: "United Airlines", location: "Bay C-3",
			status: constants.StatusRepaired, priority: constants.PriorityMedium,
			technicianID: "tech2", technicianName: "Sarah Johnson",
			estimatedHours: 2, actualHours: 1.5, enteredDaysAgo: 10, startedDaysAgo: 8, completedDaysAgo: 1, shippedDaysAgo: -1, scrappedDaysAgo: -1,
		},
		{
			id: "part4", partNumber: "PN-004-2024", aircraft: "Airbus A380", workOrder: "WO-2024-004",
			description: "Cabin pressure valve", customer: "Emirates", location: "Bay D-4",
			status: constants.StatusUnrepaired, priority: constants.PriorityLow,
			estimatedHours: 1, enteredDaysAgo: 3, startedDaysAgo: -1, completedDaysAgo: -1, shippedDaysAgo: -1, scrappedDaysAgo: -1,
		},
		{
			id: "part5", partNumber: "PN-005-2024", aircraft: "Boeing 787", workOrder: "WO-2024-005",
			description: "Damaged wing flap actuator", customer: "Southwest Airlines", location: "Scrap Area",
			status: constants.StatusScrap, priority: constants.PriorityHigh,
			technicianID: "tech3", technicianName: "Mike Davis",
			estimatedHours: 3, actualHours: 2.5, enteredDaysAgo: 15, startedDaysAgo: 12, completedDaysAgo: -1, shippedDaysAgo: -1, scrappedDaysAgo: 3,
		},
		{
			id: "part6", partNumber: "PN-006-2024", aircraft: "Airbus A350", workOrder: "WO-2024-006",
			description: "Avionics control unit", customer: "Lufthansa", location: "Shipped",
			status: constants.StatusShipped, priority: constants.PriorityCritical,
			technicianID: "tech4", technicianName: "Emily Wilson",
			estimatedHours: 3, actualHours: 2.5, enteredDaysAgo: 20, startedDaysAgo: 18, completedDaysAgo: 6, shippedDaysAgo: 4, scrappedDaysAgo: -1,
		},
		{
			id: "part7", partNumber: "PN-007-2024", aircraft: "Boeing 747", workOrder: "WO-2024-007",
			description: "Thrust reverser mechanism", customer: "British Airways", location: "Bay E-5",
			status: constants.StatusInRepair, priority: constants.PriorityHigh,
			technicianID: "tech5", technicianName: "David Brown",
			estimatedHours: 2.5, enteredDaysAgo: 8, startedDaysAgo: 5, completedDaysAgo: -1, shippedDaysAgo: -1, scrappedDaysAgo: -1,
		},
		{
			id: "part8", partNumber: "PN-008-2024", aircraft: "Airbus A330", workOrder: "WO-2024-008",
			description: "Brake system controller", customer: "Air France", location: "Bay F-6",
			status: constants.StatusUnrepaired, priority: constants.PriorityMedium,
			estimatedHours: 1.5, enteredDaysAgo: 2, startedDaysAgo: -1, completedDaysAgo: -1, shippedDaysAgo: -1, scrappedDaysAgo: -1,
		},
		{
			id: "part9", partNumber: "PN-009-2024", aircraft: "Boeing 737 MAX", workOrder: "WO-2024-009",
			description: "Flight control computer", customer: "Ryanair", location: "Bay G-7",
			status: constants.StatusRepaired, priority: constants.PriorityCritical,
			technicianID: "tech1", technicianName: "John Smith",
			estimatedHours: 3, actualHours: 2.5, enteredDaysAgo: 12, startedDaysAgo: 10, completedDaysAgo: 2, shippedDaysAgo: -1, scrappedDaysAgo: -1,
		},
		{
			id: "part10", partNumber: "PN-010-2024", aircraft: "Airbus A321", workOrder: "WO-2024-010",
			description: "Environmental control unit", customer: "KLM", location: "Bay H-8",
			status: constants.StatusInRepair, priority: constants.PriorityMedium,
			technicianID: "tech2", technicianName: "Sarah Johnson",
			estimatedHours: 2, enteredDaysAgo: 6, startedDaysAgo: 4, completedDaysAgo: -1, shippedDaysAgo: -1, scrappedDaysAgo: -1,
		},
		{
			id: "part11", partNumber: "PN-011-2024", aircraft: "Boeing 737", workOrder: "WO-2024-011",
			description: "APU starter motor", customer: "JetBlue", location: "Bay I-9",
			status: constants.StatusUnrepaired, priority: constants.PriorityLow,
			estimatedHours: 1.5, enteredDaysAgo: 4, startedDaysAgo: -1, completedDaysAgo: -1, shippedDaysAgo: -1, scrappedDaysAgo: -1,
		},
		{
			id: "part12", partNumber: "PN-012-2024", aircraft: "Airbus A320", workOrder: "WO-2024-012",
			description: "Landing gear actuator", customer: "Alaska Airlines", location: "Bay J-10",
			status: constants.StatusInRepair, priority: constants.PriorityHigh,
			technicianID: "tech3", technicianName: "Mike Davis",
			estimatedHours: 2.5, enteredDaysAgo: 9, startedDaysAgo: 6, completedDaysAgo: -1, shippedDaysAgo: -1, scrappedDaysAgo: -1,
		},
		{
			id: "part13", partNumber: "PN-013-2024", aircraft: "Boeing 777", workOrder: "WO-2024-013",
			description: "Fuel pump assembly", customer: "Virgin Atlantic", location: "Bay K-11",
			status: constants.StatusRepaired, priority: constants.PriorityMedium,
			technicianID: "tech4", technicianName: "Emily Wilson",
			estimatedHours: 2, actualHours: 1.5, enteredDaysAgo: 14, startedDaysAgo: 11, completedDaysAgo: 3, shippedDaysAgo: -1, scrappedDaysAgo: -1,
		},
		{
			id: "part14", partNumber: "PN-014-2024", aircraft: "Airbus A380", workOrder: "WO-2024-014",
			description: "Cockpit display unit", customer: "Singapore Airlines", location: "Shipped",
			status: constants.StatusShipped, priority: constants.PriorityCritical,
			technicianID: "tech5", technicianName: "David Brown",
			estimatedHours: 3, actualHours: 2.5, enteredDaysAgo: 25, startedDaysAgo: 22, completedDaysAgo: 8, shippedDaysAgo: 5, scrappedDaysAgo: -1,
		},
		{
			id: "part15", partNumber: "PN-015-2024", aircraft: "Boeing 787", workOrder: "WO-2024-015",
			description: "Hydraulic reservoir", customer: "Qantas", location: "Bay L-12",
			status: constants.StatusUnrepaired, priority: constants.PriorityLow,
			estimatedHours: 1, enteredDaysAgo: 1, startedDaysAgo: -1, completedDaysAgo: -1, shippedDaysAgo: -1, scrappedDaysAgo: -1,
		},
	}

	parts := make([]entities.Part, 0, len(seeds))
	for _, s := range seeds {
		parts = append(parts, buildPart(s, now))
	}
	return parts
}

func buildPart(s partSeed, now time.Time) entities.Part {
	daysAgo := func(n int) time.Time {
		return now.AddDate(0, 0, -n)
	}

	p := entities.Part{
		ID:                 s.id,
		PartNumber:         s.partNumber,
		WorkOrder:          s.workOrder,
		Aircraft:           s.aircraft,
		Customer:           s.customer,
		Location:           s.location,
		Description:        s.description,
		Status:             s.status,
		Priority:           s.priority,
		AssignedTechnician: s.technicianID,
		UpdatedBy:          s.technicianName,
		EnteredShop:        daysAgo(s.enteredDaysAgo),
		EstimatedHours:     s.estimatedHours,
	}

	if s.actualHours > 0 {
		ah := s.actualHours
		p.ActualHours = &ah
	}

	p.History = append(p.History, entities.HistoryEntry{
		ID:        "entry_" + s.id,
		Timestamp: p.EnteredShop,
		Action:    "Part entered shop",
		ToStatus:  constants.StatusUnrepaired,
	})
	p.StatusChangedAt = p.EnteredShop
	p.LastUpdated = p.EnteredShop

	if s.startedDaysAgo >= 0 {
		started := daysAgo(s.startedDaysAgo)
		p.RepairStarted = &started
		p.History = append(p.History, entities.HistoryEntry{
			ID:             "start_" + s.id,
			Timestamp:      started,
			Action:         "Repair started",
			FromStatus:     constants.StatusUnrepaired,
			ToStatus:       constants.StatusInRepair,
			TechnicianID:   s.technicianID,
			TechnicianName: s.technicianName,
		})
		p.StatusChangedAt = started
		p.LastUpdated = started
	}

	if s.completedDaysAgo >= 0 {
		completed := daysAgo(s.completedDaysAgo)
		p.RepairCompleted = &completed
		p.History = append(p.History, entities.HistoryEntry{
			ID:             "complete_" + s.id,
			Timestamp:      completed,
			Action:         "Repair completed",
			FromStatus:     constants.StatusInRepair,
			ToStatus:       constants.StatusRepaired,
			TechnicianID:   s.technicianID,
			TechnicianName: s.technicianName,
			EstimatedHours: &s.estimatedHours,
			ActualHours:    p.ActualHours,
		})
		p.StatusChangedAt = completed
		p.LastUpdated = completed
	}

	if s.shippedDaysAgo >= 0 {
		shipped := daysAgo(s.shippedDaysAgo)
		p.ShippedDate = &shipped
		p.History = append(p.History, entities.HistoryEntry{
			ID:             "ship_" + s.id,
			Timestamp:      shipped,
			Action:         "Part shipped",
			FromStatus:     constants.StatusRepaired,
			ToStatus:       constants.StatusShipped,
			TechnicianID:   s.technicianID,
			TechnicianName: s.technicianName,
		})
		p.StatusChangedAt = shipped
		p.LastUpdated = shipped
	}

	if s.scrappedDaysAgo >= 0 {
		scrapped := daysAgo(s.scrappedDaysAgo)
		p.ScrappedDate = &scrapped
		p.History = append(p.History, entities.HistoryEntry{
			ID:             "scrap_" + s.id,
			Timestamp:      scrapped,
			Action:         "Part scrapped",
			FromStatus:     constants.StatusInRepair,
			ToStatus:       constants.StatusScrap,
			TechnicianID:   s.technicianID,
			TechnicianName: s.technicianName,
			Note:           "Part deemed unrepairable",
		})
		p.StatusChangedAt = scrapped
		p.LastUpdated = scrapped
	}

	return p
}
