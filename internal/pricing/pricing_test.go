package pricing

import (
	"math"
	"testing"
)

func nearlyEqual(t *testing.T, name string, got, want float64) {
	t.Helper()
	if math.Abs(got-want) > 1e-9 {
		t.Fatalf("%s = %v, want %v", name, got, want)
	}
}

func TestLineTotal_EmptyModifiersIsIdentity(t *testing.T) {
	nearlyEqual(t, "lineTotal", LineTotal(5, 20, nil), 100)
	nearlyEqual(t, "lineTotal", LineTotal(5, 20, []float64{}), 100)
}

func TestLineTotal_ChainsModifiers(t *testing.T) {
	nearlyEqual(t, "lineTotal", LineTotal(3, 50, []float64{0.25, 0.1}), 206.25)
}

func TestSubtotals_GroupByScope(t *testing.T) {
	kitchen := Scope{Kind: ScopeArea, ID: 1}
	front := Scope{Kind: ScopeElevation, ID: 7}
	lines := []Line{
		{Scope: kitchen, Quantity: 100, Rate: 1.5},
		{Scope: kitchen, Quantity: 10, Rate: 2, ModifierPcts: []float64{0.5}},
		{Scope: front, Quantity: 200, Rate: 2},
	}

	sub := Subtotals(lines)
	nearlyEqual(t, "kitchen", sub[kitchen], 180)
	nearlyEqual(t, "front", sub[front], 400)
	if len(sub) != 2 {
		t.Fatalf("expected 2 scopes, got %d", len(sub))
	}
}

func TestSectionTotals_MapsScopesToSections(t *testing.T) {
	lines := []Line{
		{Scope: Scope{Kind: ScopeArea, ID: 1}, Quantity: 1, Rate: 10},
		{Scope: Scope{Kind: ScopePerimeter}, Quantity: 1, Rate: 20},
		{Scope: Scope{Kind: ScopeElevation, ID: 2}, Quantity: 1, Rate: 30},
		{Scope: Scope{Kind: ScopeCabinetGroup, ID: 3}, Quantity: 1, Rate: 40},
	}

	sections := SectionTotals(lines)
	nearlyEqual(t, "interior", sections[SectionInterior], 10)
	nearlyEqual(t, "exterior", sections[SectionExterior], 50)
	nearlyEqual(t, "cabinets", sections[SectionCabinets], 40)
}

func TestSectionTotals_EmptyHasAllSections(t *testing.T) {
	sections := SectionTotals(nil)
	for _, s := range Sections {
		if v, ok := sections[s]; !ok || v != 0 {
			t.Fatalf("section %s = %v (present=%v), want 0", s, v, ok)
		}
	}
}

func TestGrandTotal_PartitionInvariance(t *testing.T) {
	base := []Line{
		{Quantity: 120, Rate: 1.25, ModifierPcts: []float64{0.1}},
		{Quantity: 48, Rate: 0.9},
		{Quantity: 3, Rate: 85, ModifierPcts: []float64{0.25, -0.1}},
		{Quantity: 310.5, Rate: 2.15},
		{Quantity: 1, Rate: 450},
	}
	want := 0.0
	for _, l := range base {
		want += LineTotal(l.Quantity, l.Rate, l.ModifierPcts)
	}

	partitions := [][]Scope{
		{{ScopeArea, 1}, {ScopeArea, 1}, {ScopeArea, 1}, {ScopeArea, 1}, {ScopeArea, 1}},
		{{ScopeArea, 1}, {ScopeArea, 2}, {ScopePerimeter, 0}, {ScopeElevation, 3}, {ScopeCabinetGroup, 4}},
		{{ScopeCabinetGroup, 9}, {ScopeElevation, 3}, {ScopeCabinetGroup, 9}, {ScopeArea, 5}, {ScopeElevation, 3}},
	}

	for i, scopes := range partitions {
		lines := make([]Line, len(base))
		for j := range base {
			lines[j] = base[j]
			lines[j].Scope = scopes[j]
		}

		var bySubtotal, bySection float64
		for _, v := range Subtotals(lines) {
			bySubtotal += v
		}
		for _, v := range SectionTotals(lines) {
			bySection += v
		}

		if math.Abs(GrandTotal(lines)-want) > 1e-9 {
			t.Fatalf("partition %d: grand total %v, want %v", i, GrandTotal(lines), want)
		}
		if math.Abs(bySubtotal-want) > 1e-9 || math.Abs(bySection-want) > 1e-9 {
			t.Fatalf("partition %d: subtotals %v, sections %v, want %v", i, bySubtotal, bySection, want)
		}
	}
}

func TestEstimateTotals_TaxOnTaxableAmount(t *testing.T) {
	totals := EstimateTotals(1000, 10, 15, 8)

	nearlyEqual(t, "overhead", totals.Overhead, 100)
	nearlyEqual(t, "profit", totals.Profit, 150)
	nearlyEqual(t, "taxableAmount", totals.TaxableAmount, 1250)
	nearlyEqual(t, "tax", totals.Tax, 100)
	nearlyEqual(t, "grandTotal", totals.GrandTotal, 1350)
}

func TestEstimateTotals_RoundsEachComponent(t *testing.T) {
	totals := EstimateTotals(333.33, 10, 12.5, 7.25)

	nearlyEqual(t, "overhead", totals.Overhead, 33.33)
	nearlyEqual(t, "profit", totals.Profit, 41.67)
	nearlyEqual(t, "taxableAmount", totals.TaxableAmount, 408.33)
	nearlyEqual(t, "tax", totals.Tax, 29.60)
	nearlyEqual(t, "grandTotal", totals.GrandTotal, 437.93)
}

func TestEstimateTotals_ZeroRates(t *testing.T) {
	totals := EstimateTotals(512.4, 0, 0, 0)

	nearlyEqual(t, "overhead", totals.Overhead, 0)
	nearlyEqual(t, "tax", totals.Tax, 0)
	nearlyEqual(t, "grandTotal", totals.GrandTotal, 512.4)
}

func TestParseScopeKind(t *testing.T) {
	for _, raw := range []string{"area", "perimeter", "elevation", "cabinet_group"} {
		if _, ok := ParseScopeKind(raw); !ok {
			t.Fatalf("ParseScopeKind(%q) rejected", raw)
		}
	}
	if _, ok := ParseScopeKind("roof"); ok {
		t.Fatalf("expected roof to be rejected")
	}
}
