package seed

import (
	"context"
	"database/sql"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/Simplici0/estimator/internal/store"
)

// Config contains the values required by startup seed.
type Config struct {
	AdminEmail    string
	AdminPassword string
	CatalogPath   string
}

// Stats contains seed operation counters.
type Stats struct {
	Inserts int
	Updates int
}

// Run executes the startup seed in an idempotent way. Catalog entries are
// matched by name (price items) or label (modifiers) and never overwritten.
func Run(ctx context.Context, db *sql.DB, cfg Config) (Stats, error) {
	catalog, err := LoadCatalog(cfg.CatalogPath)
	if err != nil {
		return Stats{}, err
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return Stats{}, fmt.Errorf("begin seed transaction: %w", err)
	}

	stats := Stats{}

	if err := seedAdmin(ctx, tx, cfg.AdminEmail, cfg.AdminPassword, &stats); err != nil {
		_ = tx.Rollback()
		return Stats{}, err
	}
	for _, item := range catalog.PriceItems {
		if err := ensurePriceItem(ctx, tx, item, &stats); err != nil {
			_ = tx.Rollback()
			return Stats{}, err
		}
	}
	for _, mod := range catalog.Modifiers {
		if err := ensureModifier(ctx, tx, mod, &stats); err != nil {
			_ = tx.Rollback()
			return Stats{}, err
		}
	}

	if err := tx.Commit(); err != nil {
		return Stats{}, fmt.Errorf("commit seed transaction: %w", err)
	}

	return stats, nil
}

// seedAdmin creates the admin account, or promotes an existing account with
// that email back to ADMIN. The password of an existing account is kept.
func seedAdmin(ctx context.Context, tx *sql.Tx, email, password string, stats *Stats) error {
	if email == "" || password == "" {
		return nil
	}

	var role string
	err := tx.QueryRowContext(ctx, `SELECT role FROM users WHERE email = ?`, email).Scan(&role)
	switch {
	case err == nil:
		if role == string(store.RoleAdmin) {
			return nil
		}
		if _, err := tx.ExecContext(ctx, `UPDATE users SET role = ? WHERE email = ?`, string(store.RoleAdmin), email); err != nil {
			return fmt.Errorf("promote admin user: %w", err)
		}
		stats.Updates++
		return nil
	case err != sql.ErrNoRows:
		return fmt.Errorf("check admin user existence: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash admin password: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `INSERT INTO users (email, password_hash, role) VALUES (?, ?, ?)`, email, string(hash), string(store.RoleAdmin)); err != nil {
		return fmt.Errorf("insert admin user: %w", err)
	}
	stats.Inserts++
	return nil
}

func ensurePriceItem(ctx context.Context, tx *sql.Tx, p store.PriceItem, stats *Stats) error {
	var exists bool
	if err := tx.QueryRowContext(ctx, `SELECT EXISTS(SELECT 1 FROM price_items WHERE name = ? LIMIT 1)`, p.Name).Scan(&exists); err != nil {
		return fmt.Errorf("check price item %s existence: %w", p.Name, err)
	}
	if exists {
		return nil
	}

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO price_items (name, category, substrate, uom, formula_key, rate, unit_cost, prep_finish_text, enabled)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, p.Name, string(p.Category), p.Substrate, string(p.Unit), string(p.Formula), p.Rate, p.UnitCost, p.PrepFinishText, p.Enabled); err != nil {
		return fmt.Errorf("insert price item %s: %w", p.Name, err)
	}
	stats.Inserts++
	return nil
}

func ensureModifier(ctx context.Context, tx *sql.Tx, m store.Modifier, stats *Stats) error {
	var exists bool
	if err := tx.QueryRowContext(ctx, `SELECT EXISTS(SELECT 1 FROM modifiers WHERE label = ? LIMIT 1)`, m.Label).Scan(&exists); err != nil {
		return fmt.Errorf("check modifier %s existence: %w", m.Label, err)
	}
	if exists {
		return nil
	}

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO modifiers (label, category, pct, cost_pct)
		VALUES (?, ?, ?, ?)
	`, m.Label, m.Category, m.Pct, m.CostPct); err != nil {
		return fmt.Errorf("insert modifier %s: %w", m.Label, err)
	}
	stats.Inserts++
	return nil
}
