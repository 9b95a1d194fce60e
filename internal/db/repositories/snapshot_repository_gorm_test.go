package repositories

import (
	"context"
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"skyward-mro/shopfloor/internal/constants"
	"skyward-mro/shopfloor/internal/models/entities"
	gormModels "skyward-mro/shopfloor/internal/models/gorm"
	"skyward-mro/shopfloor/internal/registry"
)

// Setup test database
func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}

	if err := db.AutoMigrate(
		&gormModels.Part{},
		&gormModels.PartHistory{},
		&gormModels.PartNote{},
		&gormModels.Technician{},
		&gormModels.ShopUser{},
		&gormModels.Notification{},
	); err != nil {
		t.Fatalf("Failed to migrate: %v", err)
	}

	return db
}

func sampleSnapshot() registry.Snapshot {
	base := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	actual := 3.5

	return registry.Snapshot{
		ExportedAt: base,
		Parts: []entities.Part{
			{
				ID:              "11111111-1111-1111-1111-111111111111",
				PartNumber:      "HYD-PUMP-A320",
				WorkOrder:       "WO-1001",
				Aircraft:        "A320",
				Customer:        "Delta",
				Location:        "Bay 3",
				Status:          constants.StatusRepaired,
				Priority:        constants.PriorityHigh,
				EnteredShop:     base,
				StatusChangedAt: base.Add(48 * time.Hour),
				LastUpdated:     base.Add(48 * time.Hour),
				EstimatedHours:  4,
				ActualHours:     &actual,
				History: []entities.HistoryEntry{
					{ID: "h1", Timestamp: base, Action: "Part registered"},
					{ID: "h2", Timestamp: base.Add(time.Hour), Action: "Repair started",
						FromStatus: constants.StatusUnrepaired, ToStatus: constants.StatusInRepair,
						TechnicianID: "t1", TechnicianName: "John Smith"},
					{ID: "h3", Timestamp: base.Add(48 * time.Hour), Action: "Repair completed",
						FromStatus: constants.StatusInRepair, ToStatus: constants.StatusRepaired},
				},
				Notes: []entities.PartNote{
					{Timestamp: base.Add(2 * time.Hour), AuthorID: "t1", AuthorName: "John Smith", Text: "Seal replaced"},
				},
			},
		},
		Technicians: []entities.Technician{
			{
				ID: "t1", Name: "John Smith", Role: constants.RoleTechnician,
				Skills: []string{"hydraulics", "avionics"},
				Stats:  entities.TechnicianStats{Efficiency: 92.5},
				Badges: []string{"Speed Demon"},
			},
		},
		Managers:   []entities.Manager{{ID: "mgr1", Name: "Robert Taylor", Role: constants.RoleManager}},
		Inspectors: []entities.Inspector{{ID: "insp1", Name: "Alice", Role: constants.RoleInspector}},
		Notifications: []entities.Notification{
			{ID: "n2", Kind: constants.NotifyWarning, Title: "Newest", Timestamp: base.Add(time.Hour)},
			{ID: "n1", Kind: constants.NotifyInfo, Title: "Older", Timestamp: base},
		},
	}
}

func TestSnapshotRoundTrip(t *testing.T) {
	repo := NewSnapshotRepositoryGORM(setupTestDB(t))
	ctx := context.Background()

	want := sampleSnapshot()
	if err := repo.Save(ctx, want); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	got, err := repo.Load(ctx)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if len(got.Parts) != 1 {
		t.Fatalf("expected 1 part, got %d", len(got.Parts))
	}
	p := got.Parts[0]
	if p.PartNumber != "HYD-PUMP-A320" || p.Status != constants.StatusRepaired {
		t.Errorf("part fields lost: %+v", p)
	}
	if p.ActualHours == nil || *p.ActualHours != 3.5 {
		t.Errorf("actual hours lost: %v", p.ActualHours)
	}
	if len(p.History) != 3 {
		t.Fatalf("expected 3 history entries, got %d", len(p.History))
	}
	for i, id := range []string{"h1", "h2", "h3"} {
		if p.History[i].ID != id {
			t.Errorf("history order broken at %d: got %s", i, p.History[i].ID)
		}
	}
	if p.History[1].TechnicianName != "John Smith" {
		t.Errorf("history detail lost: %+v", p.History[1])
	}
	if len(p.Notes) != 1 || p.Notes[0].Text != "Seal replaced" {
		t.Errorf("notes lost: %+v", p.Notes)
	}

	if len(got.Technicians) != 1 {
		t.Fatalf("expected 1 technician, got %d", len(got.Technicians))
	}
	tech := got.Technicians[0]
	if len(tech.Skills) != 2 || tech.Stats.Efficiency != 92.5 || len(tech.Badges) != 1 {
		t.Errorf("technician JSON blocks lost: %+v", tech)
	}

	if len(got.Managers) != 1 || len(got.Inspectors) != 1 {
		t.Errorf("shop users lost: %d managers, %d inspectors", len(got.Managers), len(got.Inspectors))
	}

	if len(got.Notifications) != 2 {
		t.Fatalf("expected 2 notifications, got %d", len(got.Notifications))
	}
	if got.Notifications[0].ID != "n2" || got.Notifications[1].ID != "n1" {
		t.Errorf("notification feed order broken: %s, %s", got.Notifications[0].ID, got.Notifications[1].ID)
	}
}

func TestSnapshotLoad_PreservesCollectionOrder(t *testing.T) {
	repo := NewSnapshotRepositoryGORM(setupTestDB(t))
	ctx := context.Background()
	base := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)

	// ids deliberately out of lexicographic order: a primary-key scan
	// would return c, a, b sorted and break registry insertion order
	snap := registry.Snapshot{
		Parts: []entities.Part{
			{ID: "cccccccc-0000-0000-0000-000000000003", PartNumber: "PN-FIRST", Status: constants.StatusUnrepaired, EnteredShop: base},
			{ID: "aaaaaaaa-0000-0000-0000-000000000001", PartNumber: "PN-SECOND", Status: constants.StatusUnrepaired, EnteredShop: base},
			{ID: "bbbbbbbb-0000-0000-0000-000000000002", PartNumber: "PN-THIRD", Status: constants.StatusUnrepaired, EnteredShop: base},
		},
		Technicians: []entities.Technician{
			{ID: "zz-tech", Name: "Roster First", Role: constants.RoleTechnician},
			{ID: "aa-tech", Name: "Roster Second", Role: constants.RoleTechnician},
		},
	}
	if err := repo.Save(ctx, snap); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	got, err := repo.Load(ctx)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if len(got.Parts) != 3 {
		t.Fatalf("expected 3 parts, got %d", len(got.Parts))
	}
	for i, pn := range []string{"PN-FIRST", "PN-SECOND", "PN-THIRD"} {
		if got.Parts[i].PartNumber != pn {
			t.Errorf("part order broken at %d: got %s, want %s", i, got.Parts[i].PartNumber, pn)
		}
	}

	if len(got.Technicians) != 2 {
		t.Fatalf("expected 2 technicians, got %d", len(got.Technicians))
	}
	if got.Technicians[0].ID != "zz-tech" || got.Technicians[1].ID != "aa-tech" {
		t.Errorf("roster order broken: %s, %s", got.Technicians[0].ID, got.Technicians[1].ID)
	}
}

func TestSnapshotSave_ReplacesPrevious(t *testing.T) {
	repo := NewSnapshotRepositoryGORM(setupTestDB(t))
	ctx := context.Background()

	if err := repo.Save(ctx, sampleSnapshot()); err != nil {
		t.Fatalf("first save failed: %v", err)
	}

	second := registry.Snapshot{
		Technicians: []entities.Technician{{ID: "t9", Name: "Replacement", Role: constants.RoleTechnician}},
	}
	if err := repo.Save(ctx, second); err != nil {
		t.Fatalf("second save failed: %v", err)
	}

	got, err := repo.Load(ctx)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if len(got.Parts) != 0 {
		t.Errorf("previous parts must be gone, got %d", len(got.Parts))
	}
	if len(got.Technicians) != 1 || got.Technicians[0].ID != "t9" {
		t.Errorf("store must hold only the latest snapshot: %+v", got.Technicians)
	}
}
