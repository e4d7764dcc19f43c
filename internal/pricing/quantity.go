package pricing

import "strings"

// Unit is a catalog unit of measure.
type Unit string

const (
	UnitSqFt  Unit = "sqft"
	UnitLinFt Unit = "linft"
	UnitEach  Unit = "each"
)

// ParseUnit normalizes the unit spellings found in price catalogs.
func ParseUnit(raw string) (Unit, bool) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "sqft", "sf", "sq ft":
		return UnitSqFt, true
	case "linft", "lf", "lnft", "ln ft":
		return UnitLinFt, true
	case "each", "ea":
		return UnitEach, true
	}
	return "", false
}

// FormulaKey names the geometric formula a price item declares explicitly.
type FormulaKey string

const (
	FormulaWalls          FormulaKey = "walls_sqft"
	FormulaCeiling        FormulaKey = "ceil_sqft"
	FormulaBaseboard      FormulaKey = "base_lnft"
	FormulaExteriorWalls  FormulaKey = "exterior_walls"
	FormulaEaves          FormulaKey = "eaves_sqft"
	FormulaFascia         FormulaKey = "fascia_lnft"
	FormulaElevationWalls FormulaKey = "elevation_walls"
	FormulaManual         FormulaKey = "manual"
)

var formulaKeys = []FormulaKey{
	FormulaWalls,
	FormulaCeiling,
	FormulaBaseboard,
	FormulaExteriorWalls,
	FormulaEaves,
	FormulaFascia,
	FormulaElevationWalls,
	FormulaManual,
}

// ParseFormulaKey accepts the empty string as "no explicit formula".
func ParseFormulaKey(raw string) (FormulaKey, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", true
	}
	for _, k := range formulaKeys {
		if string(k) == raw {
			return k, true
		}
	}
	return "", false
}

// Context is the measurement a quantity is derived from. Exactly one field
// is expected to be set; when several are, Room wins over Perimeter and
// Perimeter over Elevation.
type Context struct {
	Room      *Dimensions
	Perimeter *ExteriorMeasure
	Elevation *ElevationDimensions
}

// Item is the catalog snapshot a quantity is resolved for.
type Item struct {
	Name    string
	Unit    Unit
	Formula FormulaKey
	Rate    float64
}

// ResolveQuantity picks a formula from the item name and unit.
// Discrete items and unmatched names both return 1.
func ResolveQuantity(item Item, ctx Context) float64 {
	if q, ok := byName(item, ctx); ok {
		return q
	}
	return 1
}

// QuantityForFormula evaluates an explicit formula key.
// Manual, unknown and shape-mismatched keys return 0.
func QuantityForFormula(key FormulaKey, ctx Context) float64 {
	q, _ := byFormula(key, ctx)
	return q
}

// Resolve reports whether a quantity could be derived at all. It prefers an
// explicit formula key and falls back to name matching. Discrete items
// resolve to a count of 1.
func Resolve(item Item, ctx Context) (float64, bool) {
	if item.Unit == UnitEach {
		return 1, true
	}
	switch item.Formula {
	case "":
		return byName(item, ctx)
	case FormulaManual:
		return 0, false
	default:
		return byFormula(item.Formula, ctx)
	}
}

func byName(item Item, ctx Context) (float64, bool) {
	if item.Unit == UnitEach {
		return 1, true
	}

	name := strings.ToLower(item.Name)
	switch {
	case strings.Contains(name, "wall") && item.Unit == UnitSqFt:
		switch {
		case ctx.Room != nil:
			return InteriorWalls(*ctx.Room), true
		case ctx.Perimeter != nil:
			return ExteriorWallsPerimeter(*ctx.Perimeter), true
		case ctx.Elevation != nil:
			return ExteriorWallsElevation(*ctx.Elevation), true
		}
	case strings.Contains(name, "ceiling") && item.Unit == UnitSqFt:
		if ctx.Room != nil {
			return Ceiling(*ctx.Room), true
		}
	case strings.Contains(name, "baseboard") && item.Unit == UnitLinFt:
		if ctx.Room != nil {
			return Baseboard(*ctx.Room), true
		}
	case strings.Contains(name, "eaves") && item.Unit == UnitSqFt:
		switch {
		case ctx.Room != nil:
		case ctx.Perimeter != nil:
			return EavesPerimeter(*ctx.Perimeter), true
		case ctx.Elevation != nil:
			return EavesElevation(*ctx.Elevation, defaultEavesDepth), true
		}
	case strings.Contains(name, "fascia") && item.Unit == UnitLinFt:
		switch {
		case ctx.Room != nil:
		case ctx.Perimeter != nil:
			return FasciaPerimeter(*ctx.Perimeter), true
		case ctx.Elevation != nil:
			return FasciaElevation(*ctx.Elevation), true
		}
	}
	return 0, false
}

func byFormula(key FormulaKey, ctx Context) (float64, bool) {
	switch key {
	case FormulaWalls:
		switch {
		case ctx.Room != nil:
			return InteriorWalls(*ctx.Room), true
		case ctx.Perimeter != nil:
			return ExteriorWallsPerimeter(*ctx.Perimeter), true
		case ctx.Elevation != nil:
			return ExteriorWallsElevation(*ctx.Elevation), true
		}
	case FormulaCeiling:
		if ctx.Room != nil {
			return Ceiling(*ctx.Room), true
		}
	case FormulaBaseboard:
		if ctx.Room != nil {
			return Baseboard(*ctx.Room), true
		}
	case FormulaExteriorWalls:
		switch {
		case ctx.Room != nil:
		case ctx.Perimeter != nil:
			return ExteriorWallsPerimeter(*ctx.Perimeter), true
		case ctx.Elevation != nil:
			return ExteriorWallsElevation(*ctx.Elevation), true
		}
	case FormulaEaves:
		switch {
		case ctx.Room != nil:
		case ctx.Perimeter != nil:
			return EavesPerimeter(*ctx.Perimeter), true
		case ctx.Elevation != nil:
			return EavesElevation(*ctx.Elevation, defaultEavesDepth), true
		}
	case FormulaFascia:
		switch {
		case ctx.Room != nil:
		case ctx.Perimeter != nil:
			return FasciaPerimeter(*ctx.Perimeter), true
		case ctx.Elevation != nil:
			return FasciaElevation(*ctx.Elevation), true
		}
	case FormulaElevationWalls:
		switch {
		case ctx.Room != nil:
			return ctx.Room.Length * ctx.Room.height(), true
		case ctx.Perimeter != nil:
		case ctx.Elevation != nil:
			e := *ctx.Elevation
			if e.Height == 0 {
				e.Height = defaultWallHeight
			}
			return ExteriorWallsElevation(e), true
		}
	}
	return 0, false
}
