package pricing

import "testing"

func TestApplyModifiers_OrderIndependent(t *testing.T) {
	a := ApplyModifiers(100, []float64{0.1, -0.2})
	b := ApplyModifiers(100, []float64{-0.2, 0.1})

	nearlyEqual(t, "forward", a, 88)
	nearlyEqual(t, "reverse", b, 88)
}

func TestApplyModifiers_Empty(t *testing.T) {
	nearlyEqual(t, "nil", ApplyModifiers(42.5, nil), 42.5)
	nearlyEqual(t, "multiplier", Multiplier(nil), 1)
}

func TestExtendedPricing_NoModifiers(t *testing.T) {
	p := ExtendedPricing(10, 1.2, 2.5, nil)

	nearlyEqual(t, "unitCost", p.UnitCost, 1.2)
	nearlyEqual(t, "unitPrice", p.UnitPrice, 2.5)
	nearlyEqual(t, "extendedCost", p.ExtendedCost, 12)
	nearlyEqual(t, "extendedPrice", p.ExtendedPrice, 25)
}

func TestExtendedPricing_IndependentTracks(t *testing.T) {
	adj := []Adjustment{
		AdjustmentFromPercent(10, 25),
		AdjustmentFromPercent(0, -10),
	}
	p := ExtendedPricing(4, 10, 20, adj)

	nearlyEqual(t, "unitCost", p.UnitCost, 11)
	nearlyEqual(t, "unitPrice", p.UnitPrice, 22.5)
	nearlyEqual(t, "extendedCost", p.ExtendedCost, 44)
	nearlyEqual(t, "extendedPrice", p.ExtendedPrice, 90)
}

func TestExtendedPricing_ExtendsUnroundedUnitValues(t *testing.T) {
	p := ExtendedPricing(3, 0.333, 0.335, nil)

	nearlyEqual(t, "unitCost", p.UnitCost, 0.33)
	nearlyEqual(t, "unitPrice", p.UnitPrice, 0.34)
	// 0.333*3 = 0.999, not 0.33*3 = 0.99.
	nearlyEqual(t, "extendedCost", p.ExtendedCost, 1)
	nearlyEqual(t, "extendedPrice", p.ExtendedPrice, 1.01)
}

func TestPercentConversions(t *testing.T) {
	nearlyEqual(t, "25%", PercentToFraction(25), 0.25)
	nearlyEqual(t, "-10%", PercentToFraction(-10), -0.1)
	nearlyEqual(t, "0.15", FractionToPercent(0.15), 15)
}

func TestRound2_HalfAwayFromZero(t *testing.T) {
	nearlyEqual(t, "1.005", Round2(1.005), 1.01)
	nearlyEqual(t, "2.344", Round2(2.344), 2.34)
	nearlyEqual(t, "-1.005", Round2(-1.005), -1.01)
}
