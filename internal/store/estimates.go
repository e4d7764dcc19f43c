package store

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

// Status is an estimate's position in the sales pipeline.
type Status string

const (
	StatusDraft    Status = "draft"
	StatusSent     Status = "sent"
	StatusAccepted Status = "accepted"
	StatusLost     Status = "lost"
	StatusArchived Status = "archived"
)

func ParseStatus(raw string) (Status, error) {
	switch s := Status(raw); s {
	case StatusDraft, StatusSent, StatusAccepted, StatusLost, StatusArchived:
		return s, nil
	}
	return "", fmt.Errorf("%q: %w", raw, ErrInvalidStatus)
}

type Estimate struct {
	ID              int64   `json:"id"`
	Reference       string  `json:"reference"`
	ClientID        int64   `json:"client_id"`
	Status          Status  `json:"status"`
	ScheduledDate   string  `json:"scheduled_date"`
	OverheadPercent float64 `json:"overhead_percent"`
	ProfitPercent   float64 `json:"profit_percent"`
	TaxPercent      float64 `json:"tax_percent"`
	Notes           string  `json:"notes"`
	CreatedBy       int64   `json:"created_by"`
	CreatedAt       string  `json:"created_at"`
	UpdatedAt       string  `json:"updated_at"`
}

// NewEstimate holds the fields supplied when an estimate is opened.
// Percents are whole percents.
type NewEstimate struct {
	ClientID        int64
	ScheduledDate   string
	OverheadPercent float64
	ProfitPercent   float64
	TaxPercent      float64
	Notes           string
	CreatedBy       int64
}

type EstimatePatch struct {
	Status          *Status
	ScheduledDate   *string
	OverheadPercent *float64
	ProfitPercent   *float64
	TaxPercent      *float64
	Notes           *string
}

// EstimateListItem is one row of the estimates index.
type EstimateListItem struct {
	ID            int64  `json:"id"`
	Reference     string `json:"reference"`
	Status        Status `json:"status"`
	ClientName    string `json:"client_name"`
	ScheduledDate string `json:"scheduled_date"`
	CreatedAt     string `json:"created_at"`
}

const estimateColumns = `id, reference, client_id, status, scheduled_date, overhead_percent, profit_percent, tax_percent, notes, COALESCE(created_by, 0), created_at, updated_at`

func scanEstimate(row rowScanner) (Estimate, error) {
	var e Estimate
	err := row.Scan(&e.ID, &e.Reference, &e.ClientID, &e.Status, &e.ScheduledDate, &e.OverheadPercent, &e.ProfitPercent, &e.TaxPercent, &e.Notes, &e.CreatedBy, &e.CreatedAt, &e.UpdatedAt)
	return e, err
}

// CreateEstimate opens a draft estimate with a fresh public reference.
func (s *Store) CreateEstimate(ctx context.Context, in NewEstimate) (Estimate, error) {
	ref := uuid.NewString()
	result, err := s.db.ExecContext(ctx, `
		INSERT INTO estimates (reference, client_id, status, scheduled_date, overhead_percent, profit_percent, tax_percent, notes, created_by)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, ref, in.ClientID, string(StatusDraft), in.ScheduledDate, in.OverheadPercent, in.ProfitPercent, in.TaxPercent, in.Notes, nullID(in.CreatedBy))
	if err != nil {
		return Estimate{}, fmt.Errorf("insert estimate: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return Estimate{}, fmt.Errorf("estimate id: %w", err)
	}
	return s.GetEstimate(ctx, id)
}

func (s *Store) GetEstimate(ctx context.Context, id int64) (Estimate, error) {
	e, err := scanEstimate(s.db.QueryRowContext(ctx, `SELECT `+estimateColumns+` FROM estimates WHERE id = ?`, id))
	if err != nil {
		return Estimate{}, notFound(err, "estimate")
	}
	return e, nil
}

// ListEstimates returns estimates newest first, filtered by client name or reference.
func (s *Store) ListEstimates(ctx context.Context, query string) ([]EstimateListItem, error) {
	search := "%" + query + "%"
	rows, err := s.db.QueryContext(ctx, `
		SELECT e.id, e.reference, e.status, TRIM(c.first_name || ' ' || c.last_name), e.scheduled_date, e.created_at
		FROM estimates e
		JOIN clients c ON c.id = e.client_id
		WHERE (? = '' OR c.first_name LIKE ? OR c.last_name LIKE ? OR e.reference LIKE ?)
		ORDER BY datetime(e.created_at) DESC, e.id DESC
	`, query, search, search, search)
	if err != nil {
		return nil, fmt.Errorf("query estimates: %w", err)
	}
	defer rows.Close()

	items := make([]EstimateListItem, 0)
	for rows.Next() {
		var it EstimateListItem
		if err := rows.Scan(&it.ID, &it.Reference, &it.Status, &it.ClientName, &it.ScheduledDate, &it.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan estimate: %w", err)
		}
		items = append(items, it)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate estimates: %w", err)
	}
	return items, nil
}

func (s *Store) UpdateEstimate(ctx context.Context, id int64, p EstimatePatch) error {
	var status *string
	if p.Status != nil {
		if _, err := ParseStatus(string(*p.Status)); err != nil {
			return err
		}
		raw := string(*p.Status)
		status = &raw
	}

	result, err := s.db.ExecContext(ctx, `
		UPDATE estimates
		SET
			status = COALESCE(?, status),
			scheduled_date = COALESCE(?, scheduled_date),
			overhead_percent = COALESCE(?, overhead_percent),
			profit_percent = COALESCE(?, profit_percent),
			tax_percent = COALESCE(?, tax_percent),
			notes = COALESCE(?, notes),
			updated_at = CURRENT_TIMESTAMP
		WHERE id = ?
	`,
		nullable(status),
		nullable(p.ScheduledDate),
		nullable(p.OverheadPercent),
		nullable(p.ProfitPercent),
		nullable(p.TaxPercent),
		nullable(p.Notes),
		id,
	)
	if err != nil {
		return fmt.Errorf("update estimate: %w", err)
	}
	return expectAffected(result, "update estimate")
}
