package pricing

import "github.com/shopspring/decimal"

var hundred = decimal.NewFromInt(100)

// Multiplier folds fractional adjustments (0.25 = +25%) into one factor.
// An empty list is the identity.
func Multiplier(pcts []float64) float64 {
	m := 1.0
	for _, p := range pcts {
		m *= 1 + p
	}
	return m
}

func ApplyModifiers(base float64, pcts []float64) float64 {
	return base * Multiplier(pcts)
}

// Adjustment is one modifier on the cost/price track, stored as fractions.
type Adjustment struct {
	Cost  float64
	Price float64
}

// AdjustmentFromPercent converts whole percents (25 = +25%) as entered in
// the catalog screens into fractions.
func AdjustmentFromPercent(costPct, pricePct float64) Adjustment {
	return Adjustment{Cost: PercentToFraction(costPct), Price: PercentToFraction(pricePct)}
}

func PercentToFraction(pct float64) float64 {
	f, _ := decimal.NewFromFloat(pct).Div(hundred).Float64()
	return f
}

func FractionToPercent(frac float64) float64 {
	p, _ := decimal.NewFromFloat(frac).Mul(hundred).Float64()
	return p
}

// Pricing is the cost/price track of one line, every field rounded to the cent.
type Pricing struct {
	UnitCost      float64 `json:"unit_cost"`
	UnitPrice     float64 `json:"unit_price"`
	ExtendedCost  float64 `json:"extended_cost"`
	ExtendedPrice float64 `json:"extended_price"`
}

// ExtendedPricing applies cost and price adjustments independently. Extended
// values are taken from the unrounded unit values and rounded once.
func ExtendedPricing(qty, baseUnitCost, baseUnitPrice float64, adj []Adjustment) Pricing {
	costMul := decimal.NewFromInt(1)
	priceMul := decimal.NewFromInt(1)
	for _, a := range adj {
		costMul = costMul.Mul(decimal.NewFromInt(1).Add(decimal.NewFromFloat(a.Cost)))
		priceMul = priceMul.Mul(decimal.NewFromInt(1).Add(decimal.NewFromFloat(a.Price)))
	}

	q := decimal.NewFromFloat(qty)
	unitCost := decimal.NewFromFloat(baseUnitCost).Mul(costMul)
	unitPrice := decimal.NewFromFloat(baseUnitPrice).Mul(priceMul)

	return Pricing{
		UnitCost:      cents(unitCost),
		UnitPrice:     cents(unitPrice),
		ExtendedCost:  cents(unitCost.Mul(q)),
		ExtendedPrice: cents(unitPrice.Mul(q)),
	}
}

// Round2 rounds half away from zero at the cent.
func Round2(v float64) float64 {
	return cents(decimal.NewFromFloat(v))
}

func cents(d decimal.Decimal) float64 {
	f, _ := d.Round(2).Float64()
	return f
}
