package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Simplici0/estimator/internal/db"
	"github.com/Simplici0/estimator/internal/pricing"
)

// LineRecord is a priced line with the catalog values frozen at the time it
// was added. Catalog edits never reach existing lines.
type LineRecord struct {
	ID                  int64             `json:"id"`
	EstimateID          int64             `json:"estimate_id"`
	ScopeKind           pricing.ScopeKind `json:"scope_kind"`
	ScopeID             int64             `json:"scope_id"`
	PriceItemID         int64             `json:"price_item_id"`
	Name                string            `json:"name"`
	Category            pricing.Section   `json:"category"`
	Substrate           string            `json:"substrate"`
	Unit                pricing.Unit      `json:"unit"`
	Rate                float64           `json:"rate"`
	UnitCost            float64           `json:"unit_cost"`
	Quantity            float64           `json:"quantity"`
	NeedsManualQuantity bool              `json:"needs_manual_quantity"`
	ModifierIDs         []int64           `json:"modifier_ids"`
}

func (l LineRecord) Scope() pricing.Scope {
	return pricing.Scope{Kind: l.ScopeKind, ID: l.ScopeID}
}

// scopeColumns spreads a scope id over the per-kind foreign key columns.
func scopeColumns(kind pricing.ScopeKind, id int64) (area, elevation, cabinetGroup any) {
	switch kind {
	case pricing.ScopeArea:
		return nullID(id), nil, nil
	case pricing.ScopeElevation:
		return nil, nullID(id), nil
	case pricing.ScopeCabinetGroup:
		return nil, nil, nullID(id)
	}
	return nil, nil, nil
}

// CreateLine stores the line and its modifier selections in one transaction.
func (s *Store) CreateLine(ctx context.Context, l LineRecord) (int64, error) {
	if _, ok := pricing.ParseScopeKind(string(l.ScopeKind)); !ok {
		return 0, fmt.Errorf("scope kind %q: %w", l.ScopeKind, ErrInvalidSection)
	}
	area, elevation, group := scopeColumns(l.ScopeKind, l.ScopeID)

	var id int64
	err := db.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		result, err := tx.ExecContext(ctx, `
			INSERT INTO estimate_lines (
				estimate_id, scope_kind, area_id, elevation_id, cabinet_group_id, price_item_id,
				snapshot_name, snapshot_category, snapshot_substrate, snapshot_uom,
				snapshot_rate, snapshot_unit_cost, qty, needs_manual_qty
			)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		`,
			l.EstimateID, string(l.ScopeKind), area, elevation, group, l.PriceItemID,
			l.Name, string(l.Category), l.Substrate, string(l.Unit),
			l.Rate, l.UnitCost, l.Quantity, l.NeedsManualQuantity,
		)
		if err != nil {
			return fmt.Errorf("insert line: %w", err)
		}
		id, err = result.LastInsertId()
		if err != nil {
			return fmt.Errorf("line id: %w", err)
		}
		return insertLineModifiers(ctx, tx, id, l.ModifierIDs)
	})
	if err != nil {
		return 0, err
	}
	return id, nil
}

func insertLineModifiers(ctx context.Context, tx *sql.Tx, lineID int64, modifierIDs []int64) error {
	for _, modID := range modifierIDs {
		if _, err := tx.ExecContext(ctx, `
			INSERT OR IGNORE INTO estimate_line_modifiers (line_id, modifier_id)
			VALUES (?, ?)
		`, lineID, modID); err != nil {
			return fmt.Errorf("insert line modifier: %w", err)
		}
	}
	return nil
}

const lineColumns = `
	id, estimate_id, scope_kind, COALESCE(area_id, elevation_id, cabinet_group_id, 0), price_item_id,
	snapshot_name, snapshot_category, snapshot_substrate, snapshot_uom,
	snapshot_rate, snapshot_unit_cost, qty, needs_manual_qty`

func scanLine(row rowScanner) (LineRecord, error) {
	var l LineRecord
	var kind, category, unit string
	err := row.Scan(
		&l.ID, &l.EstimateID, &kind, &l.ScopeID, &l.PriceItemID,
		&l.Name, &category, &l.Substrate, &unit,
		&l.Rate, &l.UnitCost, &l.Quantity, &l.NeedsManualQuantity,
	)
	l.ScopeKind = pricing.ScopeKind(kind)
	l.Category = pricing.Section(category)
	l.Unit = pricing.Unit(unit)
	return l, err
}

func (s *Store) GetLine(ctx context.Context, estimateID, id int64) (LineRecord, error) {
	l, err := scanLine(s.db.QueryRowContext(ctx, `SELECT `+lineColumns+` FROM estimate_lines WHERE id = ? AND estimate_id = ?`, id, estimateID))
	if err != nil {
		return LineRecord{}, notFound(err, "line")
	}
	mods, err := s.lineModifiers(ctx, estimateID)
	if err != nil {
		return LineRecord{}, err
	}
	l.ModifierIDs = mods[l.ID]
	return l, nil
}

// ListLines returns every line of an estimate in insertion order.
func (s *Store) ListLines(ctx context.Context, estimateID int64) ([]LineRecord, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+lineColumns+`
		FROM estimate_lines
		WHERE estimate_id = ?
		ORDER BY id
	`, estimateID)
	if err != nil {
		return nil, fmt.Errorf("query lines: %w", err)
	}
	defer rows.Close()

	lines := make([]LineRecord, 0)
	for rows.Next() {
		l, err := scanLine(rows)
		if err != nil {
			return nil, fmt.Errorf("scan line: %w", err)
		}
		lines = append(lines, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate lines: %w", err)
	}

	mods, err := s.lineModifiers(ctx, estimateID)
	if err != nil {
		return nil, err
	}
	for i := range lines {
		lines[i].ModifierIDs = mods[lines[i].ID]
	}
	return lines, nil
}

func (s *Store) lineModifiers(ctx context.Context, estimateID int64) (map[int64][]int64, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT lm.line_id, lm.modifier_id
		FROM estimate_line_modifiers lm
		JOIN estimate_lines l ON l.id = lm.line_id
		WHERE l.estimate_id = ?
		ORDER BY lm.line_id, lm.modifier_id
	`, estimateID)
	if err != nil {
		return nil, fmt.Errorf("query line modifiers: %w", err)
	}
	defer rows.Close()

	out := make(map[int64][]int64)
	for rows.Next() {
		var lineID, modID int64
		if err := rows.Scan(&lineID, &modID); err != nil {
			return nil, fmt.Errorf("scan line modifier: %w", err)
		}
		out[lineID] = append(out[lineID], modID)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate line modifiers: %w", err)
	}
	return out, nil
}

// LinePatch changes the mutable parts of a line. Nil fields are left alone.
type LinePatch struct {
	Quantity    *float64
	ModifierIDs *[]int64
}

// UpdateLine applies a patch in one transaction. Setting a quantity clears
// the manual flag; setting modifiers replaces the whole selection.
func (s *Store) UpdateLine(ctx context.Context, estimateID, id int64, p LinePatch) error {
	return db.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		var exists bool
		if err := tx.QueryRowContext(ctx, `
			SELECT EXISTS(SELECT 1 FROM estimate_lines WHERE id = ? AND estimate_id = ?)
		`, id, estimateID).Scan(&exists); err != nil {
			return fmt.Errorf("check line existence: %w", err)
		}
		if !exists {
			return fmt.Errorf("line: %w", ErrNotFound)
		}

		if p.Quantity != nil {
			if _, err := tx.ExecContext(ctx, `
				UPDATE estimate_lines
				SET qty = ?, needs_manual_qty = FALSE, updated_at = CURRENT_TIMESTAMP
				WHERE id = ?
			`, *p.Quantity, id); err != nil {
				return fmt.Errorf("update line quantity: %w", err)
			}
		}
		if p.ModifierIDs != nil {
			if _, err := tx.ExecContext(ctx, `DELETE FROM estimate_line_modifiers WHERE line_id = ?`, id); err != nil {
				return fmt.Errorf("clear line modifiers: %w", err)
			}
			if err := insertLineModifiers(ctx, tx, id, *p.ModifierIDs); err != nil {
				return err
			}
		}
		return nil
	})
}

func (s *Store) DeleteLine(ctx context.Context, estimateID, id int64) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM estimate_lines WHERE id = ? AND estimate_id = ?`, id, estimateID)
	if err != nil {
		return fmt.Errorf("delete line: %w", err)
	}
	return expectAffected(result, "delete line")
}
