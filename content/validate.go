package content

import (
	"errors"
	"fmt"
	"log"
)

var (
	ErrEmptyName      = errors.New("empty id or name")
	ErrDuplicateID    = errors.New("duplicate id")
	ErrUnknownPrimary = errors.New("unknown primary")
	ErrInvalidBinary  = errors.New("invalid binary system")

	ErrUnknownSecondary = errors.New("unknown secondary")
)

// Validate checks referential integrity of a dataset
// Malformed validity windows are not rejected; the core treats them as never visible
func Validate(ds *Dataset) error {
	ids := make(map[string]struct{}, len(ds.Entities))
	for i := range ds.Entities {
		e := &ds.Entities[i]
		if e.ID == "" {
			return fmt.Errorf("entity %d: %w", i, ErrEmptyName)
		}
		if _, dup := ids[e.ID]; dup {
			return fmt.Errorf("entity %q: %w", e.ID, ErrDuplicateID)
		}
		ids[e.ID] = struct{}{}
		if e.ValidityEnd <= e.ValidityStart {
			log.Printf("dataset %s: entity %q has empty window [%g, %g], never visible",
				ds.Source, e.ID, e.ValidityStart, e.ValidityEnd)
		}
	}

	names := make(map[string]struct{}, len(ds.Periods))
	for i, p := range ds.Periods {
		if p.Name == "" {
			return fmt.Errorf("period %d: %w", i, ErrEmptyName)
		}
		if _, dup := names[p.Name]; dup {
			return fmt.Errorf("period %q: %w", p.Name, ErrDuplicateID)
		}
		names[p.Name] = struct{}{}
		if p.End < p.Start {
			log.Printf("dataset %s: period %q ends before it starts, never live", ds.Source, p.Name)
		}
	}

	for i, b := range ds.Bodies {
		if b.ID == "" {
			return fmt.Errorf("body %d: %w", i, ErrEmptyName)
		}
		if _, dup := ids[b.ID]; dup {
			return fmt.Errorf("body %q: %w", b.ID, ErrDuplicateID)
		}
		ids[b.ID] = struct{}{}
		if b.PrimaryID != "" {
			if _, ok := ids[b.PrimaryID]; !ok {
				return fmt.Errorf("body %q primary %q: %w", b.ID, b.PrimaryID, ErrUnknownPrimary)
			}
		}
	}

	if bs := ds.Binary; bs != nil {
		if bs.SeparationDistance <= 0 || bs.MassRatio < 0 || bs.MassRatio > 0.5 {
			return fmt.Errorf("separation %g, mass ratio %g: %w", bs.SeparationDistance, bs.MassRatio, ErrInvalidBinary)
		}
		if bs.PrimaryID != "" {
			if _, ok := ids[bs.PrimaryID]; !ok {
				return fmt.Errorf("binary primary %q: %w", bs.PrimaryID, ErrUnknownPrimary)
			}
		}
		if bs.SecondaryID != "" {
			if _, ok := ids[bs.SecondaryID]; !ok {
				return fmt.Errorf("binary secondary %q: %w", bs.SecondaryID, ErrUnknownSecondary)
			}
			if bs.SecondaryID == bs.PrimaryID {
				return fmt.Errorf("binary secondary %q is its own primary: %w", bs.SecondaryID, ErrInvalidBinary)
			}
		}
	}

	return nil
}
