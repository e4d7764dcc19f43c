package seed

import (
	"context"
	"database/sql"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"github.com/Simplici0/estimator/internal/db"
	"github.com/Simplici0/estimator/internal/migrations"
	"github.com/Simplici0/estimator/internal/pricing"
)

func openMigrated(t *testing.T) *sql.DB {
	t.Helper()

	database, err := db.Open(filepath.Join(t.TempDir(), "seed-test.db"))
	if err != nil {
		t.Fatalf("open sqlite database: %v", err)
	}
	t.Cleanup(func() { database.Close() })

	if err := migrations.Up(database); err != nil {
		t.Fatalf("run migrations: %v", err)
	}
	return database
}

func TestRunIsIdempotent(t *testing.T) {
	database := openMigrated(t)
	ctx := context.Background()

	cfg := Config{
		AdminEmail:    "admin@estimator.test",
		AdminPassword: "12345",
	}

	catalog, err := LoadCatalog("")
	if err != nil {
		t.Fatalf("load default catalog: %v", err)
	}
	want := 1 + len(catalog.PriceItems) + len(catalog.Modifiers)

	for i := 0; i < 5; i++ {
		stats, err := Run(ctx, database, cfg)
		if err != nil {
			t.Fatalf("run seed (iteration=%d): %v", i, err)
		}
		if i == 0 {
			if stats.Inserts != want {
				t.Fatalf("expected %d inserts in first run, got %d", want, stats.Inserts)
			}
			continue
		}
		if stats.Inserts != 0 || stats.Updates != 0 {
			t.Fatalf("expected no changes in iteration %d, got %+v", i, stats)
		}
	}

	assertCount(t, database, `SELECT COUNT(*) FROM users WHERE email = ? AND role = 'ADMIN'`, "admin@estimator.test", 1)
	assertCount(t, database, `SELECT COUNT(*) FROM price_items`, nil, len(catalog.PriceItems))
	assertCount(t, database, `SELECT COUNT(*) FROM modifiers`, nil, len(catalog.Modifiers))

	var hash string
	if err := database.QueryRow(`SELECT password_hash FROM users WHERE email = ?`, "admin@estimator.test").Scan(&hash); err != nil {
		t.Fatalf("query admin hash: %v", err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte("12345")); err != nil {
		t.Fatalf("expected admin hash to match password: %v", err)
	}
}

func TestRunPromotesExistingAdminAccount(t *testing.T) {
	database := openMigrated(t)

	if _, err := database.Exec(`INSERT INTO users (email, password_hash, role) VALUES (?, ?, 'VIEWER')`, "boss@estimator.test", "x"); err != nil {
		t.Fatalf("insert user: %v", err)
	}

	stats, err := Run(context.Background(), database, Config{AdminEmail: "boss@estimator.test", AdminPassword: "pw"})
	if err != nil {
		t.Fatalf("run seed: %v", err)
	}
	if stats.Updates != 1 {
		t.Fatalf("expected 1 update, got %+v", stats)
	}
	assertCount(t, database, `SELECT COUNT(*) FROM users WHERE email = ? AND role = 'ADMIN' AND password_hash = 'x'`, "boss@estimator.test", 1)
}

func TestRunSkipsAdminWithoutCredentials(t *testing.T) {
	database := openMigrated(t)

	if _, err := Run(context.Background(), database, Config{}); err != nil {
		t.Fatalf("run seed: %v", err)
	}
	assertCount(t, database, `SELECT COUNT(*) FROM users`, nil, 0)
}

func TestParseCatalogConvertsPercentsAndAliases(t *testing.T) {
	c, err := ParseCatalog([]byte(`
price_items:
  - name: Trim
    category: interior
    uom: lf
    formula: base_lnft
    rate: 2
  - name: Shutters
    category: exterior
    uom: ea
    rate: 40
    disabled: true
modifiers:
  - label: Rush
    price_pct: 25
    cost_pct: 12.5
`))
	if err != nil {
		t.Fatalf("ParseCatalog() error = %v", err)
	}
	if len(c.PriceItems) != 2 || len(c.Modifiers) != 1 {
		t.Fatalf("unexpected catalog: %+v", c)
	}
	if c.PriceItems[0].Unit != pricing.UnitLinFt || c.PriceItems[0].Formula != pricing.FormulaBaseboard || !c.PriceItems[0].Enabled {
		t.Fatalf("unexpected trim item: %+v", c.PriceItems[0])
	}
	if c.PriceItems[1].Unit != pricing.UnitEach || c.PriceItems[1].Enabled {
		t.Fatalf("unexpected shutters item: %+v", c.PriceItems[1])
	}
	if math.Abs(c.Modifiers[0].Pct-0.25) > 1e-9 || math.Abs(c.Modifiers[0].CostPct-0.125) > 1e-9 {
		t.Fatalf("percents not converted to fractions: %+v", c.Modifiers[0])
	}
}

func TestParseCatalogRejectsBadEntries(t *testing.T) {
	cases := map[string]string{
		"unknown uom":      "price_items:\n  - name: A\n    category: interior\n    uom: gallon\n",
		"unknown formula":  "price_items:\n  - name: A\n    category: interior\n    uom: sqft\n    formula: roof\n",
		"unknown category": "price_items:\n  - name: A\n    category: garage\n    uom: sqft\n",
		"missing label":    "modifiers:\n  - price_pct: 5\n",
	}
	for name, doc := range cases {
		t.Run(name, func(t *testing.T) {
			if _, err := ParseCatalog([]byte(doc)); err == nil {
				t.Fatalf("expected error")
			}
		})
	}
}

func TestLoadCatalogFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	doc := "price_items:\n  - name: Deck\n    category: exterior\n    uom: sqft\n    rate: 3\n"
	if err := os.WriteFile(path, []byte(doc), 0o600); err != nil {
		t.Fatalf("write catalog: %v", err)
	}

	c, err := LoadCatalog(path)
	if err != nil {
		t.Fatalf("LoadCatalog() error = %v", err)
	}
	if len(c.PriceItems) != 1 || c.PriceItems[0].Name != "Deck" {
		t.Fatalf("unexpected catalog: %+v", c)
	}

	if _, err := LoadCatalog(filepath.Join(t.TempDir(), "missing.yaml")); err == nil || !strings.Contains(err.Error(), "read catalog") {
		t.Fatalf("expected read error, got %v", err)
	}
}

func assertCount(t *testing.T, database *sql.DB, query string, args any, expected int) {
	t.Helper()

	var count int
	var err error
	switch v := args.(type) {
	case nil:
		err = database.QueryRow(query).Scan(&count)
	case []any:
		err = database.QueryRow(query, v...).Scan(&count)
	default:
		err = database.QueryRow(query, v).Scan(&count)
	}
	if err != nil {
		t.Fatalf("count query failed: %v", err)
	}
	if count != expected {
		t.Fatalf("expected count %d, got %d", expected, count)
	}
}
