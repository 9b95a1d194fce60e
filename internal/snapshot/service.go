// Package snapshot handles full-state export and import: the JSON wire
// form served over HTTP, and optional persistence to the snapshot store
// so a restart can pick up where the shop left off.
package snapshot

import (
	"context"
	"encoding/json"
	"fmt"

	"skyward-mro/shopfloor/internal/logging"
	"skyward-mro/shopfloor/internal/registry"
)

// Store is implemented by the GORM snapshot repository. Kept as an
// interface so a memory-only deployment can run without one.
type Store interface {
	Save(ctx context.Context, snap registry.Snapshot) error
	Load(ctx context.Context) (registry.Snapshot, error)
}

type Service struct {
	reg   *registry.Registry
	store Store
}

// NewService wires the snapshot service. store may be nil for
// memory-only deployments.
func NewService(reg *registry.Registry, store Store) *Service {
	return &Service{reg: reg, store: store}
}

// ExportJSON serializes the full registry state.
func (s *Service) ExportJSON() ([]byte, error) {
	snap := s.reg.Export()
	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode snapshot: %w", err)
	}
	return data, nil
}

// ImportJSON replaces registry state with the decoded snapshot.
func (s *Service) ImportJSON(data []byte) error {
	var snap registry.Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return fmt.Errorf("failed to decode snapshot: %w", err)
	}
	if err := s.reg.Import(snap); err != nil {
		return err
	}
	logging.Info("Snapshot imported",
		"parts", len(snap.Parts),
		"technicians", len(snap.Technicians),
	)
	return nil
}

// Persist writes the current state to the snapshot store.
func (s *Service) Persist(ctx context.Context) error {
	if s.store == nil {
		return nil
	}
	return s.store.Save(ctx, s.reg.Export())
}

// Restore loads the persisted snapshot into the registry. An empty
// store is not an error; the registry just stays as seeded.
func (s *Service) Restore(ctx context.Context) error {
	if s.store == nil {
		return nil
	}
	snap, err := s.store.Load(ctx)
	if err != nil {
		return err
	}
	if len(snap.Parts) == 0 && len(snap.Technicians) == 0 {
		return nil
	}
	if err := s.reg.Import(snap); err != nil {
		return err
	}
	logging.Info("Snapshot restored from store",
		"parts", len(snap.Parts),
		"technicians", len(snap.Technicians),
	)
	return nil
}
