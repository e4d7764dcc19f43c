package pricing

import "testing"

func TestInteriorFormulas(t *testing.T) {
	tests := []struct {
		name                    string
		room                    Dimensions
		walls, ceiling, baseLen float64
	}{
		{"standard room", Dimensions{Length: 12, Width: 10, Height: 9}, 396, 120, 44},
		{"height defaults to 8", Dimensions{Length: 12, Width: 10}, 352, 120, 44},
		{"zero room", Dimensions{}, 0, 0, 0},
		{"fractional", Dimensions{Length: 10.5, Width: 8.25, Height: 8}, 300, 86.625, 37.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			nearlyEqual(t, "walls", InteriorWalls(tt.room), tt.walls)
			nearlyEqual(t, "ceiling", Ceiling(tt.room), tt.ceiling)
			nearlyEqual(t, "baseboard", Baseboard(tt.room), tt.baseLen)
		})
	}
}

func TestPerimeterFormulas(t *testing.T) {
	m := ExteriorMeasure{Perimeter: 180, WallHeight: 10, EavesLength: 160, EavesDepth: 1.5}

	nearlyEqual(t, "walls", ExteriorWallsPerimeter(m), 1800)
	nearlyEqual(t, "eaves", EavesPerimeter(m), 240)
	nearlyEqual(t, "fascia", FasciaPerimeter(m), 180)

	m.EavesDepth = 0
	nearlyEqual(t, "eaves default depth", EavesPerimeter(m), 320)
}

func TestElevationFormulas(t *testing.T) {
	e := ElevationDimensions{Length: 40, Height: 12}

	nearlyEqual(t, "walls", ExteriorWallsElevation(e), 480)
	nearlyEqual(t, "eaves falls back to length", EavesElevation(e, 2), 80)
	nearlyEqual(t, "eaves default depth", EavesElevation(e, 0), 80)
	nearlyEqual(t, "eaves negative depth passes through", EavesElevation(e, -1), -40)
	nearlyEqual(t, "fascia falls back to length", FasciaElevation(e), 40)

	e.EavesLength = 30
	e.FasciaLength = 36
	nearlyEqual(t, "eaves explicit", EavesElevation(e, 3), 90)
	nearlyEqual(t, "fascia explicit", FasciaElevation(e), 36)
}

func TestSubtractOpenings(t *testing.T) {
	nearlyEqual(t, "one window", SubtractOpenings(100, []Opening{{Width: 3, Height: 4}}), 88)
	nearlyEqual(t, "never negative", SubtractOpenings(10, []Opening{{Width: 5, Height: 5}}), 0)
	nearlyEqual(t, "no openings", SubtractOpenings(250, nil), 250)
	nearlyEqual(t, "door and window", SubtractOpenings(352, []Opening{{Width: 3, Height: 6.75}, {Width: 4, Height: 4}}), 315.75)
}

func TestCabinetQuantities(t *testing.T) {
	got := CabinetQuantities(CabinetComponents{
		SmallFronts:  6,
		MediumFronts: 4,
		LargeFronts:  2,
		Boxes:        8,
		Panels:       3,
		Crown:        22,
		ToeKick:      18,
	})

	want := CabinetTotals{Fronts: 12, Boxes: 8, Panels: 3, Crown: 22, ToeKick: 18}
	if got != want {
		t.Fatalf("CabinetQuantities = %+v, want %+v", got, want)
	}
}
