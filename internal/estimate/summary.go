package estimate

import (
	"context"
	"fmt"
	"sort"

	"github.com/Simplici0/estimator/internal/pricing"
	"github.com/Simplici0/estimator/internal/store"
)

const perimeterScopeName = "Exterior perimeter"

// PricedLine is a stored line with its computed totals.
type PricedLine struct {
	store.LineRecord
	Total   float64         `json:"total"`
	Pricing pricing.Pricing `json:"pricing"`
}

type ScopeSubtotal struct {
	Kind     pricing.ScopeKind `json:"kind"`
	ID       int64             `json:"id"`
	Name     string            `json:"name"`
	Section  pricing.Section   `json:"section"`
	Subtotal float64           `json:"subtotal"`
}

// ItemSummary groups lines sharing a name and substrate.
type ItemSummary struct {
	Name      string          `json:"name"`
	Substrate string          `json:"substrate"`
	Category  pricing.Section `json:"category"`
	Unit      pricing.Unit    `json:"unit"`
	Quantity  float64         `json:"quantity"`
	Total     float64         `json:"total"`
}

type Summary struct {
	Estimate       store.Estimate              `json:"estimate"`
	Lines          []PricedLine                `json:"lines"`
	Scopes         []ScopeSubtotal             `json:"scopes"`
	Sections       map[pricing.Section]float64 `json:"sections"`
	LinesTotal     float64                     `json:"lines_total"`
	Totals         pricing.Totals              `json:"totals"`
	CostTotal      float64                     `json:"cost_total"`
	Items          []ItemSummary               `json:"items"`
	ManualQuantity []int64                     `json:"manual_quantity"`
}

// Summary prices every line of an estimate against the current modifier
// values and rolls the result up by scope, section and item.
func (s *Service) Summary(ctx context.Context, estimateID int64) (Summary, error) {
	est, err := s.store.GetEstimate(ctx, estimateID)
	if err != nil {
		return Summary{}, err
	}
	records, err := s.store.ListLines(ctx, estimateID)
	if err != nil {
		return Summary{}, err
	}
	mods, err := s.store.ListModifiers(ctx)
	if err != nil {
		return Summary{}, err
	}
	names, err := s.scopeNames(ctx, estimateID)
	if err != nil {
		return Summary{}, err
	}

	byID := make(map[int64]store.Modifier, len(mods))
	for _, m := range mods {
		byID[m.ID] = m
	}

	sum := Summary{
		Estimate:       est,
		Lines:          make([]PricedLine, 0, len(records)),
		ManualQuantity: make([]int64, 0),
	}
	lines := make([]pricing.Line, 0, len(records))
	var cost float64
	for _, r := range records {
		pcts := make([]float64, 0, len(r.ModifierIDs))
		adj := make([]pricing.Adjustment, 0, len(r.ModifierIDs))
		for _, id := range r.ModifierIDs {
			if m, ok := byID[id]; ok {
				pcts = append(pcts, m.Pct)
				adj = append(adj, m.Adjustment())
			}
		}

		line := pricing.Line{Scope: r.Scope(), Quantity: r.Quantity, Rate: r.Rate, ModifierPcts: pcts}
		lines = append(lines, line)

		p := pricing.ExtendedPricing(r.Quantity, r.UnitCost, r.Rate, adj)
		cost += p.ExtendedCost
		sum.Lines = append(sum.Lines, PricedLine{LineRecord: r, Total: pricing.Round2(line.Total()), Pricing: p})

		if r.NeedsManualQuantity {
			sum.ManualQuantity = append(sum.ManualQuantity, r.ID)
		}
	}

	sum.Scopes = scopeSubtotals(lines, names)
	sum.Sections = make(map[pricing.Section]float64, len(pricing.Sections))
	for section, total := range pricing.SectionTotals(lines) {
		sum.Sections[section] = pricing.Round2(total)
	}
	sum.LinesTotal = pricing.Round2(pricing.GrandTotal(lines))
	sum.Totals = pricing.EstimateTotals(sum.LinesTotal, est.OverheadPercent, est.ProfitPercent, est.TaxPercent)
	sum.CostTotal = pricing.Round2(cost)
	sum.Items = itemSummaries(sum.Lines)
	return sum, nil
}

// scopeSubtotals orders scopes by section, then by first appearance.
func scopeSubtotals(lines []pricing.Line, names map[pricing.Scope]string) []ScopeSubtotal {
	totals := pricing.Subtotals(lines)
	seen := make(map[pricing.Scope]bool, len(totals))
	out := make([]ScopeSubtotal, 0, len(totals))
	for _, l := range lines {
		if seen[l.Scope] {
			continue
		}
		seen[l.Scope] = true
		out = append(out, ScopeSubtotal{
			Kind:     l.Scope.Kind,
			ID:       l.Scope.ID,
			Name:     names[l.Scope],
			Section:  l.Scope.Kind.Section(),
			Subtotal: pricing.Round2(totals[l.Scope]),
		})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return sectionIndex(out[i].Section) < sectionIndex(out[j].Section)
	})
	return out
}

func sectionIndex(s pricing.Section) int {
	for i, v := range pricing.Sections {
		if v == s {
			return i
		}
	}
	return len(pricing.Sections)
}

func itemSummaries(lines []PricedLine) []ItemSummary {
	type key struct{ name, substrate string }
	index := make(map[key]int)
	out := make([]ItemSummary, 0)
	for _, l := range lines {
		k := key{l.Name, l.Substrate}
		i, ok := index[k]
		if !ok {
			i = len(out)
			index[k] = i
			out = append(out, ItemSummary{Name: l.Name, Substrate: l.Substrate, Category: l.Category, Unit: l.Unit})
		}
		out[i].Quantity += l.Quantity
		out[i].Total += l.Total
	}
	for i := range out {
		out[i].Total = pricing.Round2(out[i].Total)
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Category != out[j].Category {
			return out[i].Category < out[j].Category
		}
		return out[i].Name < out[j].Name
	})
	return out
}

func (s *Service) scopeNames(ctx context.Context, estimateID int64) (map[pricing.Scope]string, error) {
	names := map[pricing.Scope]string{
		{Kind: pricing.ScopePerimeter}: perimeterScopeName,
	}

	areas, err := s.store.ListAreas(ctx, estimateID)
	if err != nil {
		return nil, fmt.Errorf("scope names: %w", err)
	}
	for _, a := range areas {
		names[pricing.Scope{Kind: pricing.ScopeArea, ID: a.ID}] = a.Name
	}

	elevations, err := s.store.ListElevations(ctx, estimateID)
	if err != nil {
		return nil, fmt.Errorf("scope names: %w", err)
	}
	for _, e := range elevations {
		names[pricing.Scope{Kind: pricing.ScopeElevation, ID: e.ID}] = e.Name
	}

	groups, err := s.store.ListCabinetGroups(ctx, estimateID)
	if err != nil {
		return nil, fmt.Errorf("scope names: %w", err)
	}
	for _, g := range groups {
		names[pricing.Scope{Kind: pricing.ScopeCabinetGroup, ID: g.ID}] = g.Name
	}
	return names, nil
}
