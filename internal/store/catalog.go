package store

import (
	"context"
	"fmt"

	"github.com/Simplici0/estimator/internal/pricing"
)

// ParseCategory validates a catalog category (interior, exterior or cabinets).
func ParseCategory(raw string) (pricing.Section, error) {
	for _, s := range pricing.Sections {
		if string(s) == raw {
			return s, nil
		}
	}
	return "", fmt.Errorf("%q: %w", raw, ErrInvalidSection)
}

type PriceItem struct {
	ID             int64              `json:"id"`
	Name           string             `json:"name"`
	Category       pricing.Section    `json:"category"`
	Substrate      string             `json:"substrate"`
	Unit           pricing.Unit       `json:"unit"`
	Formula        pricing.FormulaKey `json:"formula"`
	Rate           float64            `json:"rate"`
	UnitCost       float64            `json:"unit_cost"`
	PrepFinishText string             `json:"prep_finish_text"`
	Enabled        bool               `json:"enabled"`
}

// Descriptor is the snapshot the quantity resolver works from.
func (p PriceItem) Descriptor() pricing.Item {
	return pricing.Item{Name: p.Name, Unit: p.Unit, Formula: p.Formula, Rate: p.Rate}
}

type PriceItemPatch struct {
	Name           *string
	Category       *pricing.Section
	Substrate      *string
	Unit           *pricing.Unit
	Formula        *pricing.FormulaKey
	Rate           *float64
	UnitCost       *float64
	PrepFinishText *string
	Enabled        *bool
}

// Modifier adjusts line totals. Pct and CostPct are fractions (0.25 = +25%).
type Modifier struct {
	ID       int64   `json:"id"`
	Label    string  `json:"label"`
	Category string  `json:"category"`
	Pct      float64 `json:"pct"`
	CostPct  float64 `json:"cost_pct"`
}

func (m Modifier) Adjustment() pricing.Adjustment {
	return pricing.Adjustment{Cost: m.CostPct, Price: m.Pct}
}

type ModifierPatch struct {
	Label    *string
	Category *string
	Pct      *float64
	CostPct  *float64
}

const priceItemColumns = `id, name, category, substrate, uom, formula_key, rate, unit_cost, prep_finish_text, enabled`

func scanPriceItem(row rowScanner) (PriceItem, error) {
	var p PriceItem
	var category, unit, formula string
	err := row.Scan(&p.ID, &p.Name, &category, &p.Substrate, &unit, &formula, &p.Rate, &p.UnitCost, &p.PrepFinishText, &p.Enabled)
	p.Category = pricing.Section(category)
	p.Unit = pricing.Unit(unit)
	p.Formula = pricing.FormulaKey(formula)
	return p, err
}

func (s *Store) CreatePriceItem(ctx context.Context, p PriceItem) (int64, error) {
	result, err := s.db.ExecContext(ctx, `
		INSERT INTO price_items (name, category, substrate, uom, formula_key, rate, unit_cost, prep_finish_text, enabled)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, p.Name, string(p.Category), p.Substrate, string(p.Unit), string(p.Formula), p.Rate, p.UnitCost, p.PrepFinishText, p.Enabled)
	if err != nil {
		return 0, fmt.Errorf("insert price item: %w", err)
	}
	return result.LastInsertId()
}

func (s *Store) GetPriceItem(ctx context.Context, id int64) (PriceItem, error) {
	p, err := scanPriceItem(s.db.QueryRowContext(ctx, `SELECT `+priceItemColumns+` FROM price_items WHERE id = ?`, id))
	if err != nil {
		return PriceItem{}, notFound(err, "price item")
	}
	return p, nil
}

// ListPriceItems returns the catalog ordered by category then name.
func (s *Store) ListPriceItems(ctx context.Context, onlyEnabled bool) ([]PriceItem, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+priceItemColumns+`
		FROM price_items
		WHERE (? = 0 OR enabled = 1)
		ORDER BY category, name
	`, onlyEnabled)
	if err != nil {
		return nil, fmt.Errorf("query price items: %w", err)
	}
	defer rows.Close()

	items := make([]PriceItem, 0)
	for rows.Next() {
		p, err := scanPriceItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scan price item: %w", err)
		}
		items = append(items, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate price items: %w", err)
	}
	return items, nil
}

func stringPtr[T ~string](p *T) *string {
	if p == nil {
		return nil
	}
	s := string(*p)
	return &s
}

func (s *Store) UpdatePriceItem(ctx context.Context, id int64, p PriceItemPatch) error {
	result, err := s.db.ExecContext(ctx, `
		UPDATE price_items
		SET
			name = COALESCE(?, name),
			category = COALESCE(?, category),
			substrate = COALESCE(?, substrate),
			uom = COALESCE(?, uom),
			formula_key = COALESCE(?, formula_key),
			rate = COALESCE(?, rate),
			unit_cost = COALESCE(?, unit_cost),
			prep_finish_text = COALESCE(?, prep_finish_text),
			enabled = COALESCE(?, enabled),
			updated_at = CURRENT_TIMESTAMP
		WHERE id = ?
	`,
		nullable(p.Name),
		nullable(stringPtr(p.Category)),
		nullable(p.Substrate),
		nullable(stringPtr(p.Unit)),
		nullable(stringPtr(p.Formula)),
		nullable(p.Rate),
		nullable(p.UnitCost),
		nullable(p.PrepFinishText),
		nullable(p.Enabled),
		id,
	)
	if err != nil {
		return fmt.Errorf("update price item: %w", err)
	}
	return expectAffected(result, "update price item")
}

func (s *Store) CreateModifier(ctx context.Context, m Modifier) (int64, error) {
	result, err := s.db.ExecContext(ctx, `
		INSERT INTO modifiers (label, category, pct, cost_pct)
		VALUES (?, ?, ?, ?)
	`, m.Label, m.Category, m.Pct, m.CostPct)
	if err != nil {
		return 0, fmt.Errorf("insert modifier: %w", err)
	}
	return result.LastInsertId()
}

// ListModifiers returns all modifiers; an empty category on a modifier means
// it applies to every section.
func (s *Store) ListModifiers(ctx context.Context) ([]Modifier, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, label, category, pct, cost_pct
		FROM modifiers
		ORDER BY id
	`)
	if err != nil {
		return nil, fmt.Errorf("query modifiers: %w", err)
	}
	defer rows.Close()

	mods := make([]Modifier, 0)
	for rows.Next() {
		var m Modifier
		if err := rows.Scan(&m.ID, &m.Label, &m.Category, &m.Pct, &m.CostPct); err != nil {
			return nil, fmt.Errorf("scan modifier: %w", err)
		}
		mods = append(mods, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate modifiers: %w", err)
	}
	return mods, nil
}

func (s *Store) UpdateModifier(ctx context.Context, id int64, p ModifierPatch) error {
	result, err := s.db.ExecContext(ctx, `
		UPDATE modifiers
		SET
			label = COALESCE(?, label),
			category = COALESCE(?, category),
			pct = COALESCE(?, pct),
			cost_pct = COALESCE(?, cost_pct),
			updated_at = CURRENT_TIMESTAMP
		WHERE id = ?
	`, nullable(p.Label), nullable(p.Category), nullable(p.Pct), nullable(p.CostPct), id)
	if err != nil {
		return fmt.Errorf("update modifier: %w", err)
	}
	return expectAffected(result, "update modifier")
}
