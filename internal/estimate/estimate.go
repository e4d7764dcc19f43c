// Package estimate ties the store to the pricing core: it freezes catalog
// entries into estimate lines and rolls an estimate up into its summary.
package estimate

import (
	"context"
	"errors"
	"fmt"

	"github.com/Simplici0/estimator/internal/pricing"
	"github.com/Simplici0/estimator/internal/store"
)

var (
	ErrScopeNotFound     = errors.New("scope not found")
	ErrPriceItemDisabled = errors.New("price item is disabled")
	ErrUnknownModifier   = errors.New("unknown modifier")
)

type Service struct {
	store *store.Store
}

func New(s *store.Store) *Service {
	return &Service{store: s}
}

// AddLineInput describes a catalog item being attached to a scope. A nil
// Quantity asks the service to derive one from the scope's measurements.
type AddLineInput struct {
	PriceItemID int64
	Scope       pricing.Scope
	Quantity    *float64
	ModifierIDs []int64
}

// LineUpdate changes the mutable parts of a line. Nil fields are left alone.
type LineUpdate struct {
	Quantity    *float64
	ModifierIDs *[]int64
}

// AddLine snapshots a price item onto the estimate. When no quantity is given
// and none can be derived, the line is stored with quantity 0 and flagged for
// manual entry.
func (s *Service) AddLine(ctx context.Context, estimateID int64, in AddLineInput) (store.LineRecord, error) {
	if _, err := s.store.GetEstimate(ctx, estimateID); err != nil {
		return store.LineRecord{}, err
	}

	item, err := s.store.GetPriceItem(ctx, in.PriceItemID)
	if err != nil {
		return store.LineRecord{}, err
	}
	if !item.Enabled {
		return store.LineRecord{}, fmt.Errorf("%s: %w", item.Name, ErrPriceItemDisabled)
	}

	scope := in.Scope
	if scope.Kind == pricing.ScopePerimeter {
		scope.ID = 0
	}
	measure, err := s.scopeContext(ctx, estimateID, scope)
	if err != nil {
		return store.LineRecord{}, err
	}
	if err := s.checkModifiers(ctx, in.ModifierIDs); err != nil {
		return store.LineRecord{}, err
	}

	var qty float64
	var needsManual bool
	if in.Quantity != nil {
		qty = *in.Quantity
	} else {
		var ok bool
		qty, ok = pricing.Resolve(item.Descriptor(), measure)
		needsManual = !ok
	}

	line := store.LineRecord{
		EstimateID:          estimateID,
		ScopeKind:           scope.Kind,
		ScopeID:             scope.ID,
		PriceItemID:         item.ID,
		Name:                item.Name,
		Category:            item.Category,
		Substrate:           item.Substrate,
		Unit:                item.Unit,
		Rate:                item.Rate,
		UnitCost:            item.UnitCost,
		Quantity:            qty,
		NeedsManualQuantity: needsManual,
		ModifierIDs:         in.ModifierIDs,
	}
	id, err := s.store.CreateLine(ctx, line)
	if err != nil {
		return store.LineRecord{}, fmt.Errorf("add line: %w", err)
	}
	return s.store.GetLine(ctx, estimateID, id)
}

// UpdateLine validates the whole update before writing any of it, so a
// rejected update leaves the line untouched.
func (s *Service) UpdateLine(ctx context.Context, estimateID, lineID int64, u LineUpdate) (store.LineRecord, error) {
	if u.ModifierIDs != nil {
		if err := s.checkModifiers(ctx, *u.ModifierIDs); err != nil {
			return store.LineRecord{}, err
		}
	}
	patch := store.LinePatch{Quantity: u.Quantity, ModifierIDs: u.ModifierIDs}
	if err := s.store.UpdateLine(ctx, estimateID, lineID, patch); err != nil {
		return store.LineRecord{}, err
	}
	return s.store.GetLine(ctx, estimateID, lineID)
}

// Preview resolves a quantity without touching the estimate.
func Preview(item store.PriceItem, measure pricing.Context) (float64, bool) {
	return pricing.Resolve(item.Descriptor(), measure)
}

func (s *Service) scopeContext(ctx context.Context, estimateID int64, scope pricing.Scope) (pricing.Context, error) {
	var measure pricing.Context
	var err error
	switch scope.Kind {
	case pricing.ScopeArea:
		var a store.Area
		a, err = s.store.GetArea(ctx, estimateID, scope.ID)
		if err == nil {
			d := a.Dimensions()
			measure.Room = &d
		}
	case pricing.ScopePerimeter:
		var m store.ExteriorMeasure
		m, err = s.store.GetExteriorMeasure(ctx, estimateID)
		if err == nil {
			em := m.Measure()
			measure.Perimeter = &em
		}
	case pricing.ScopeElevation:
		var e store.Elevation
		e, err = s.store.GetElevation(ctx, estimateID, scope.ID)
		if err == nil {
			d := e.Dimensions()
			measure.Elevation = &d
		}
	case pricing.ScopeCabinetGroup:
		_, err = s.store.GetCabinetGroup(ctx, estimateID, scope.ID)
	default:
		return measure, fmt.Errorf("scope kind %q: %w", scope.Kind, ErrScopeNotFound)
	}
	if errors.Is(err, store.ErrNotFound) {
		return measure, fmt.Errorf("%s %d: %w", scope.Kind, scope.ID, ErrScopeNotFound)
	}
	return measure, err
}

func (s *Service) checkModifiers(ctx context.Context, ids []int64) error {
	if len(ids) == 0 {
		return nil
	}
	mods, err := s.store.ListModifiers(ctx)
	if err != nil {
		return err
	}
	known := make(map[int64]bool, len(mods))
	for _, m := range mods {
		known[m.ID] = true
	}
	for _, id := range ids {
		if !known[id] {
			return fmt.Errorf("modifier %d: %w", id, ErrUnknownModifier)
		}
	}
	return nil
}
