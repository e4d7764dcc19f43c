package seed

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v2"

	"github.com/Simplici0/estimator/internal/pricing"
	"github.com/Simplici0/estimator/internal/store"
)

//go:embed catalog.yaml
var defaultCatalog []byte

// Catalog is the starting price list and modifier set.
type Catalog struct {
	PriceItems []store.PriceItem
	Modifiers  []store.Modifier
}

type catalogFile struct {
	PriceItems []struct {
		Name       string  `yaml:"name"`
		Category   string  `yaml:"category"`
		Substrate  string  `yaml:"substrate"`
		UOM        string  `yaml:"uom"`
		Formula    string  `yaml:"formula"`
		Rate       float64 `yaml:"rate"`
		UnitCost   float64 `yaml:"unit_cost"`
		PrepFinish string  `yaml:"prep_finish"`
		Disabled   bool    `yaml:"disabled"`
	} `yaml:"price_items"`
	Modifiers []struct {
		Label    string  `yaml:"label"`
		Category string  `yaml:"category"`
		PricePct float64 `yaml:"price_pct"`
		CostPct  float64 `yaml:"cost_pct"`
	} `yaml:"modifiers"`
}

// LoadCatalog reads the catalog at path, or the built-in one when path is empty.
func LoadCatalog(path string) (Catalog, error) {
	data := defaultCatalog
	if path != "" {
		var err error
		data, err = os.ReadFile(path)
		if err != nil {
			return Catalog{}, fmt.Errorf("read catalog: %w", err)
		}
	}
	return ParseCatalog(data)
}

// ParseCatalog validates units, formula keys and categories. Modifier
// percents are whole percents in the file and fractions once parsed.
func ParseCatalog(data []byte) (Catalog, error) {
	var raw catalogFile
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return Catalog{}, fmt.Errorf("parse catalog: %w", err)
	}

	var c Catalog
	for _, it := range raw.PriceItems {
		if it.Name == "" {
			return Catalog{}, fmt.Errorf("price item without name")
		}
		category, err := store.ParseCategory(it.Category)
		if err != nil {
			return Catalog{}, fmt.Errorf("price item %s: %w", it.Name, err)
		}
		unit, ok := pricing.ParseUnit(it.UOM)
		if !ok {
			return Catalog{}, fmt.Errorf("price item %s: unknown uom %q", it.Name, it.UOM)
		}
		formula, ok := pricing.ParseFormulaKey(it.Formula)
		if !ok {
			return Catalog{}, fmt.Errorf("price item %s: unknown formula %q", it.Name, it.Formula)
		}
		c.PriceItems = append(c.PriceItems, store.PriceItem{
			Name:           it.Name,
			Category:       category,
			Substrate:      it.Substrate,
			Unit:           unit,
			Formula:        formula,
			Rate:           it.Rate,
			UnitCost:       it.UnitCost,
			PrepFinishText: it.PrepFinish,
			Enabled:        !it.Disabled,
		})
	}

	for _, m := range raw.Modifiers {
		if m.Label == "" {
			return Catalog{}, fmt.Errorf("modifier without label")
		}
		if m.Category != "" {
			if _, err := store.ParseCategory(m.Category); err != nil {
				return Catalog{}, fmt.Errorf("modifier %s: %w", m.Label, err)
			}
		}
		adj := pricing.AdjustmentFromPercent(m.CostPct, m.PricePct)
		c.Modifiers = append(c.Modifiers, store.Modifier{
			Label:    m.Label,
			Category: m.Category,
			Pct:      adj.Price,
			CostPct:  adj.Cost,
		})
	}
	return c, nil
}
