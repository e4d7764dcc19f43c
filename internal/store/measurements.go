package store

import (
	"context"
	"fmt"

	"github.com/Simplici0/estimator/internal/pricing"
)

// Area is an interior room.
type Area struct {
	ID         int64   `json:"id"`
	EstimateID int64   `json:"estimate_id"`
	Name       string  `json:"name"`
	Length     float64 `json:"length"`
	Width      float64 `json:"width"`
	Height     float64 `json:"height"`
}

func (a Area) Dimensions() pricing.Dimensions {
	return pricing.Dimensions{Length: a.Length, Width: a.Width, Height: a.Height}
}

type AreaPatch struct {
	Name   *string
	Length *float64
	Width  *float64
	Height *float64
}

// ExteriorMeasure is the single perimeter measurement of an estimate.
type ExteriorMeasure struct {
	ID          int64   `json:"id"`
	EstimateID  int64   `json:"estimate_id"`
	Perimeter   float64 `json:"perimeter"`
	WallHeight  float64 `json:"wall_height"`
	EavesLength float64 `json:"eaves_length"`
	EavesDepth  float64 `json:"eaves_depth"`
}

func (m ExteriorMeasure) Measure() pricing.ExteriorMeasure {
	return pricing.ExteriorMeasure{
		Perimeter:   m.Perimeter,
		WallHeight:  m.WallHeight,
		EavesLength: m.EavesLength,
		EavesDepth:  m.EavesDepth,
	}
}

type Elevation struct {
	ID           int64   `json:"id"`
	EstimateID   int64   `json:"estimate_id"`
	Name         string  `json:"name"`
	Length       float64 `json:"length"`
	Height       float64 `json:"height"`
	EavesLength  float64 `json:"eaves_length"`
	FasciaLength float64 `json:"fascia_length"`
}

func (e Elevation) Dimensions() pricing.ElevationDimensions {
	return pricing.ElevationDimensions{
		Length:       e.Length,
		Height:       e.Height,
		EavesLength:  e.EavesLength,
		FasciaLength: e.FasciaLength,
	}
}

type CabinetGroup struct {
	ID         int64  `json:"id"`
	EstimateID int64  `json:"estimate_id"`
	Name       string `json:"name"`
}

func (s *Store) CreateArea(ctx context.Context, a Area) (int64, error) {
	if a.Height == 0 {
		a.Height = 8
	}
	result, err := s.db.ExecContext(ctx, `
		INSERT INTO areas (estimate_id, name, length_ft, width_ft, height_ft)
		VALUES (?, ?, ?, ?, ?)
	`, a.EstimateID, a.Name, a.Length, a.Width, a.Height)
	if err != nil {
		return 0, fmt.Errorf("insert area: %w", err)
	}
	return result.LastInsertId()
}

func (s *Store) GetArea(ctx context.Context, estimateID, id int64) (Area, error) {
	var a Area
	err := s.db.QueryRowContext(ctx, `
		SELECT id, estimate_id, name, length_ft, width_ft, height_ft
		FROM areas
		WHERE id = ? AND estimate_id = ?
	`, id, estimateID).Scan(&a.ID, &a.EstimateID, &a.Name, &a.Length, &a.Width, &a.Height)
	if err != nil {
		return Area{}, notFound(err, "area")
	}
	return a, nil
}

func (s *Store) ListAreas(ctx context.Context, estimateID int64) ([]Area, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, estimate_id, name, length_ft, width_ft, height_ft
		FROM areas
		WHERE estimate_id = ?
		ORDER BY id
	`, estimateID)
	if err != nil {
		return nil, fmt.Errorf("query areas: %w", err)
	}
	defer rows.Close()

	areas := make([]Area, 0)
	for rows.Next() {
		var a Area
		if err := rows.Scan(&a.ID, &a.EstimateID, &a.Name, &a.Length, &a.Width, &a.Height); err != nil {
			return nil, fmt.Errorf("scan area: %w", err)
		}
		areas = append(areas, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate areas: %w", err)
	}
	return areas, nil
}

func (s *Store) UpdateArea(ctx context.Context, estimateID, id int64, p AreaPatch) error {
	result, err := s.db.ExecContext(ctx, `
		UPDATE areas
		SET
			name = COALESCE(?, name),
			length_ft = COALESCE(?, length_ft),
			width_ft = COALESCE(?, width_ft),
			height_ft = COALESCE(?, height_ft)
		WHERE id = ? AND estimate_id = ?
	`, nullable(p.Name), nullable(p.Length), nullable(p.Width), nullable(p.Height), id, estimateID)
	if err != nil {
		return fmt.Errorf("update area: %w", err)
	}
	return expectAffected(result, "update area")
}

// DeleteArea removes a room; its lines go with it.
func (s *Store) DeleteArea(ctx context.Context, estimateID, id int64) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM areas WHERE id = ? AND estimate_id = ?`, id, estimateID)
	if err != nil {
		return fmt.Errorf("delete area: %w", err)
	}
	return expectAffected(result, "delete area")
}

func (s *Store) UpsertExteriorMeasure(ctx context.Context, m ExteriorMeasure) (ExteriorMeasure, error) {
	if m.EavesDepth == 0 {
		m.EavesDepth = 2
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO exterior_measures (estimate_id, perimeter_ln_ft, wall_height_ft, eaves_ln_ft, eave_depth_ft)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(estimate_id) DO UPDATE SET
			perimeter_ln_ft = excluded.perimeter_ln_ft,
			wall_height_ft = excluded.wall_height_ft,
			eaves_ln_ft = excluded.eaves_ln_ft,
			eave_depth_ft = excluded.eave_depth_ft
	`, m.EstimateID, m.Perimeter, m.WallHeight, m.EavesLength, m.EavesDepth)
	if err != nil {
		return ExteriorMeasure{}, fmt.Errorf("upsert exterior measure: %w", err)
	}
	return s.GetExteriorMeasure(ctx, m.EstimateID)
}

func (s *Store) GetExteriorMeasure(ctx context.Context, estimateID int64) (ExteriorMeasure, error) {
	var m ExteriorMeasure
	err := s.db.QueryRowContext(ctx, `
		SELECT id, estimate_id, perimeter_ln_ft, wall_height_ft, eaves_ln_ft, eave_depth_ft
		FROM exterior_measures
		WHERE estimate_id = ?
	`, estimateID).Scan(&m.ID, &m.EstimateID, &m.Perimeter, &m.WallHeight, &m.EavesLength, &m.EavesDepth)
	if err != nil {
		return ExteriorMeasure{}, notFound(err, "exterior measure")
	}
	return m, nil
}

func (s *Store) CreateElevation(ctx context.Context, e Elevation) (int64, error) {
	result, err := s.db.ExecContext(ctx, `
		INSERT INTO elevations (estimate_id, name, length_ft, height_ft, eaves_ln_ft, fascia_ln_ft)
		VALUES (?, ?, ?, ?, ?, ?)
	`, e.EstimateID, e.Name, e.Length, e.Height, e.EavesLength, e.FasciaLength)
	if err != nil {
		return 0, fmt.Errorf("insert elevation: %w", err)
	}
	return result.LastInsertId()
}

func scanElevation(row rowScanner) (Elevation, error) {
	var e Elevation
	err := row.Scan(&e.ID, &e.EstimateID, &e.Name, &e.Length, &e.Height, &e.EavesLength, &e.FasciaLength)
	return e, err
}

func (s *Store) GetElevation(ctx context.Context, estimateID, id int64) (Elevation, error) {
	e, err := scanElevation(s.db.QueryRowContext(ctx, `
		SELECT id, estimate_id, name, length_ft, height_ft, eaves_ln_ft, fascia_ln_ft
		FROM elevations
		WHERE id = ? AND estimate_id = ?
	`, id, estimateID))
	if err != nil {
		return Elevation{}, notFound(err, "elevation")
	}
	return e, nil
}

func (s *Store) ListElevations(ctx context.Context, estimateID int64) ([]Elevation, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, estimate_id, name, length_ft, height_ft, eaves_ln_ft, fascia_ln_ft
		FROM elevations
		WHERE estimate_id = ?
		ORDER BY id
	`, estimateID)
	if err != nil {
		return nil, fmt.Errorf("query elevations: %w", err)
	}
	defer rows.Close()

	elevations := make([]Elevation, 0)
	for rows.Next() {
		e, err := scanElevation(rows)
		if err != nil {
			return nil, fmt.Errorf("scan elevation: %w", err)
		}
		elevations = append(elevations, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate elevations: %w", err)
	}
	return elevations, nil
}

func (s *Store) DeleteElevation(ctx context.Context, estimateID, id int64) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM elevations WHERE id = ? AND estimate_id = ?`, id, estimateID)
	if err != nil {
		return fmt.Errorf("delete elevation: %w", err)
	}
	return expectAffected(result, "delete elevation")
}

func (s *Store) CreateCabinetGroup(ctx context.Context, g CabinetGroup) (int64, error) {
	result, err := s.db.ExecContext(ctx, `INSERT INTO cabinet_groups (estimate_id, name) VALUES (?, ?)`, g.EstimateID, g.Name)
	if err != nil {
		return 0, fmt.Errorf("insert cabinet group: %w", err)
	}
	return result.LastInsertId()
}

func (s *Store) GetCabinetGroup(ctx context.Context, estimateID, id int64) (CabinetGroup, error) {
	var g CabinetGroup
	err := s.db.QueryRowContext(ctx, `
		SELECT id, estimate_id, name
		FROM cabinet_groups
		WHERE id = ? AND estimate_id = ?
	`, id, estimateID).Scan(&g.ID, &g.EstimateID, &g.Name)
	if err != nil {
		return CabinetGroup{}, notFound(err, "cabinet group")
	}
	return g, nil
}

func (s *Store) ListCabinetGroups(ctx context.Context, estimateID int64) ([]CabinetGroup, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, estimate_id, name
		FROM cabinet_groups
		WHERE estimate_id = ?
		ORDER BY id
	`, estimateID)
	if err != nil {
		return nil, fmt.Errorf("query cabinet groups: %w", err)
	}
	defer rows.Close()

	groups := make([]CabinetGroup, 0)
	for rows.Next() {
		var g CabinetGroup
		if err := rows.Scan(&g.ID, &g.EstimateID, &g.Name); err != nil {
			return nil, fmt.Errorf("scan cabinet group: %w", err)
		}
		groups = append(groups, g)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate cabinet groups: %w", err)
	}
	return groups, nil
}

func (s *Store) DeleteCabinetGroup(ctx context.Context, estimateID, id int64) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM cabinet_groups WHERE id = ? AND estimate_id = ?`, id, estimateID)
	if err != nil {
		return fmt.Errorf("delete cabinet group: %w", err)
	}
	return expectAffected(result, "delete cabinet group")
}
