package pricing

const (
	defaultWallHeight = 8.0
	defaultEavesDepth = 2.0
)

// Dimensions describes a rectangular interior room in feet.
// A zero Height means the standard 8 ft wall.
type Dimensions struct {
	Length float64
	Width  float64
	Height float64
}

func (d Dimensions) height() float64 {
	if d.Height == 0 {
		return defaultWallHeight
	}
	return d.Height
}

// ExteriorMeasure is a whole-building perimeter measurement.
// A zero EavesDepth means 2 ft.
type ExteriorMeasure struct {
	Perimeter   float64
	WallHeight  float64
	EavesLength float64
	EavesDepth  float64
}

// ElevationDimensions describes a single building face.
// Zero EavesLength or FasciaLength fall back to Length.
type ElevationDimensions struct {
	Length       float64
	Height       float64
	EavesLength  float64
	FasciaLength float64
}

// Opening is a window or door cut out of a wall surface.
type Opening struct {
	Width  float64
	Height float64
}

func InteriorWalls(d Dimensions) float64 {
	return 2 * (d.Length + d.Width) * d.height()
}

func Ceiling(d Dimensions) float64 {
	return d.Length * d.Width
}

func Baseboard(d Dimensions) float64 {
	return 2 * (d.Length + d.Width)
}

func ExteriorWallsPerimeter(m ExteriorMeasure) float64 {
	return m.Perimeter * m.WallHeight
}

func EavesPerimeter(m ExteriorMeasure) float64 {
	depth := m.EavesDepth
	if depth == 0 {
		depth = defaultEavesDepth
	}
	return m.EavesLength * depth
}

func FasciaPerimeter(m ExteriorMeasure) float64 {
	return m.Perimeter
}

func ExteriorWallsElevation(e ElevationDimensions) float64 {
	return e.Length * e.Height
}

// EavesElevation returns eaves square footage for one face. A zero depth
// uses the 2 ft default.
func EavesElevation(e ElevationDimensions, depth float64) float64 {
	if depth == 0 {
		depth = defaultEavesDepth
	}
	length := e.EavesLength
	if length == 0 {
		length = e.Length
	}
	return length * depth
}

func FasciaElevation(e ElevationDimensions) float64 {
	if e.FasciaLength == 0 {
		return e.Length
	}
	return e.FasciaLength
}

// SubtractOpenings removes window and door area from a wall surface.
// The result is never negative.
func SubtractOpenings(sqft float64, openings []Opening) float64 {
	var cut float64
	for _, o := range openings {
		cut += o.Width * o.Height
	}
	if sqft-cut < 0 {
		return 0
	}
	return sqft - cut
}

// CabinetComponents counts the pieces of one cabinet group.
type CabinetComponents struct {
	SmallFronts  float64
	MediumFronts float64
	LargeFronts  float64
	Boxes        float64
	Panels       float64
	Crown        float64
	ToeKick      float64
}

// CabinetTotals rolls cabinet components up into priceable quantities.
type CabinetTotals struct {
	Fronts  float64
	Boxes   float64
	Panels  float64
	Crown   float64
	ToeKick float64
}

func CabinetQuantities(c CabinetComponents) CabinetTotals {
	return CabinetTotals{
		Fronts:  c.SmallFronts + c.MediumFronts + c.LargeFronts,
		Boxes:   c.Boxes,
		Panels:  c.Panels,
		Crown:   c.Crown,
		ToeKick: c.ToeKick,
	}
}
