package workflow

import (
	"errors"
	"testing"
	"time"

	"skyward-mro/shopfloor/internal/constants"
	"skyward-mro/shopfloor/internal/models/entities"
)

func newPart(status constants.PartStatus) *entities.Part {
	now := time.Date(2025, 6, 1, 8, 0, 0, 0, time.UTC)
	return &entities.Part{
		ID:              "p1",
		PartNumber:      "HYD-2041",
		Status:          status,
		EnteredShop:     now,
		StatusChangedAt: now,
		LastUpdated:     now,
	}
}

func TestApply_FullLifecycle(t *testing.T) {
	p := newPart(constants.StatusUnrepaired)
	p.AssignedTechnician = "tech1"
	now := time.Date(2025, 6, 2, 9, 0, 0, 0, time.UTC)

	if err := Apply(p, EventStartRepair, now); err != nil {
		t.Fatalf("start repair: %v", err)
	}
	if p.Status != constants.StatusInRepair {
		t.Errorf("expected in-repair, got %s", p.Status)
	}
	if p.RepairStarted == nil || !p.RepairStarted.Equal(now) {
		t.Errorf("RepairStarted not stamped")
	}
	if !p.StatusChangedAt.Equal(now) {
		t.Errorf("StatusChangedAt not reset")
	}

	later := now.Add(6 * time.Hour)
	if err := Apply(p, EventCompleteRepair, later); err != nil {
		t.Fatalf("complete repair: %v", err)
	}
	if p.Status != constants.StatusRepaired || p.RepairCompleted == nil {
		t.Errorf("complete repair did not stamp RepairCompleted")
	}

	shipped := later.Add(24 * time.Hour)
	if err := Apply(p, EventShip, shipped); err != nil {
		t.Fatalf("ship: %v", err)
	}
	if p.Status != constants.StatusShipped {
		t.Errorf("expected shipped, got %s", p.Status)
	}
	if p.ShippedDate == nil || !p.ShippedDate.Equal(shipped) {
		t.Errorf("ShippedDate not stamped")
	}
	if p.ScrappedDate != nil {
		t.Errorf("ScrappedDate must stay nil on a shipped part")
	}
}

func TestApply_StartRequiresTechnician(t *testing.T) {
	p := newPart(constants.StatusUnrepaired)
	err := Apply(p, EventStartRepair, time.Now())
	if err == nil {
		t.Fatal("expected error when starting repair without a technician")
	}
	if p.Status != constants.StatusUnrepaired {
		t.Errorf("status must not change on rejected transition")
	}
	if p.RepairStarted != nil {
		t.Errorf("RepairStarted must not be stamped on rejected transition")
	}
}

func TestApply_ScrapFromEitherActiveState(t *testing.T) {
	for _, from := range []constants.PartStatus{constants.StatusUnrepaired, constants.StatusInRepair} {
		p := newPart(from)
		now := time.Now()
		if err := Apply(p, EventScrap, now); err != nil {
			t.Fatalf("scrap from %s: %v", from, err)
		}
		if p.Status != constants.StatusScrap || p.ScrappedDate == nil {
			t.Errorf("scrap from %s did not stamp ScrappedDate", from)
		}
		if p.ShippedDate != nil {
			t.Errorf("ShippedDate must stay nil on a scrapped part")
		}
	}
}

func TestApply_IllegalTransitions(t *testing.T) {
	cases := []struct {
		from constants.PartStatus
		ev   Event
	}{
		{constants.StatusUnrepaired, EventShip},
		{constants.StatusUnrepaired, EventCompleteRepair},
		{constants.StatusRepaired, EventScrap},
		{constants.StatusRepaired, EventStartRepair},
		{constants.StatusShipped, EventScrap},
		{constants.StatusScrap, EventShip},
		{constants.StatusShipped, EventStartRepair},
	}
	for _, tc := range cases {
		p := newPart(tc.from)
		p.AssignedTechnician = "tech1"
		err := Apply(p, tc.ev, time.Now())
		if !errors.Is(err, ErrIllegalTransition) {
			t.Errorf("%s from %s: expected ErrIllegalTransition, got %v", tc.ev, tc.from, err)
		}
	}
}

func TestEventFor(t *testing.T) {
	ev, err := EventFor(constants.StatusInRepair, constants.StatusRepaired)
	if err != nil || ev != EventCompleteRepair {
		t.Errorf("expected complete_repair, got %s (%v)", ev, err)
	}
	if _, err := EventFor(constants.StatusUnrepaired, constants.StatusShipped); !errors.Is(err, ErrIllegalTransition) {
		t.Errorf("unrepaired -> shipped must be illegal, got %v", err)
	}
	if _, err := EventFor(constants.StatusShipped, constants.StatusUnrepaired); !errors.Is(err, ErrIllegalTransition) {
		t.Errorf("shipped is terminal, got %v", err)
	}
}
