// Package pricing derives quantities from room and building measurements and
// rolls priced lines up into section and estimate totals. Every function is a
// pure computation over its arguments.
package pricing

import "github.com/shopspring/decimal"

// ScopeKind is the kind of bucket a line is attached to.
type ScopeKind string

const (
	ScopeArea         ScopeKind = "area"
	ScopePerimeter    ScopeKind = "perimeter"
	ScopeElevation    ScopeKind = "elevation"
	ScopeCabinetGroup ScopeKind = "cabinet_group"
)

// Section is the proposal-level grouping of scopes.
type Section string

const (
	SectionInterior Section = "interior"
	SectionExterior Section = "exterior"
	SectionCabinets Section = "cabinets"
)

// Sections lists the proposal sections in print order.
var Sections = []Section{SectionInterior, SectionExterior, SectionCabinets}

func (k ScopeKind) Section() Section {
	switch k {
	case ScopeArea:
		return SectionInterior
	case ScopeCabinetGroup:
		return SectionCabinets
	default:
		return SectionExterior
	}
}

func ParseScopeKind(raw string) (ScopeKind, bool) {
	switch k := ScopeKind(raw); k {
	case ScopeArea, ScopePerimeter, ScopeElevation, ScopeCabinetGroup:
		return k, true
	}
	return "", false
}

// Scope identifies one subtotal bucket. ID is zero for the perimeter bucket.
type Scope struct {
	Kind ScopeKind
	ID   int64
}

// Line is a frozen quantity and rate plus the fractions of its selected modifiers.
type Line struct {
	Scope        Scope
	Quantity     float64
	Rate         float64
	ModifierPcts []float64
}

// LineTotal is qty * rate * Π(1+pct), unrounded.
func LineTotal(qty, rate float64, pcts []float64) float64 {
	return qty * rate * Multiplier(pcts)
}

func (l Line) Total() float64 {
	return LineTotal(l.Quantity, l.Rate, l.ModifierPcts)
}

func Subtotals(lines []Line) map[Scope]float64 {
	out := make(map[Scope]float64)
	for _, l := range lines {
		out[l.Scope] += l.Total()
	}
	return out
}

func SectionTotals(lines []Line) map[Section]float64 {
	out := make(map[Section]float64, len(Sections))
	for _, s := range Sections {
		out[s] = 0
	}
	for _, l := range lines {
		out[l.Scope.Kind.Section()] += l.Total()
	}
	return out
}

func GrandTotal(lines []Line) float64 {
	var total float64
	for _, l := range lines {
		total += l.Total()
	}
	return total
}

// Totals contains the estimate-level roll-up layered on a subtotal.
type Totals struct {
	Subtotal      float64 `json:"subtotal"`
	Overhead      float64 `json:"overhead"`
	Profit        float64 `json:"profit"`
	TaxableAmount float64 `json:"taxable_amount"`
	Tax           float64 `json:"tax"`
	GrandTotal    float64 `json:"grand_total"`
}

// EstimateTotals applies overhead, profit and tax given as whole percents.
// Tax is charged on subtotal + overhead + profit.
func EstimateTotals(subtotal, overheadPct, profitPct, taxPct float64) Totals {
	sub := decimal.NewFromFloat(subtotal)
	overhead := sub.Mul(decimal.NewFromFloat(overheadPct)).Div(hundred).Round(2)
	profit := sub.Mul(decimal.NewFromFloat(profitPct)).Div(hundred).Round(2)
	taxable := sub.Add(overhead).Add(profit)
	tax := taxable.Mul(decimal.NewFromFloat(taxPct)).Div(hundred).Round(2)

	t := Totals{Subtotal: subtotal}
	t.Overhead, _ = overhead.Float64()
	t.Profit, _ = profit.Float64()
	t.TaxableAmount, _ = taxable.Float64()
	t.Tax, _ = tax.Float64()
	t.GrandTotal = cents(taxable.Add(tax))
	return t
}
