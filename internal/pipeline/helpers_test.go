package pipeline

import (
	"vmolist/internal"
	"vmolist/internal/config"
)

func testRuleset(makes ...string) Ruleset {
	defaults := config.DefaultRules()
	if len(makes) == 0 {
		makes = []string{"RAM", "FORD", "ALFA ROMEO", "CHEVROLET"}
	}
	return NewRuleset(config.Rules{
		MajorMakes:     makes,
		NoiseMarkers:   defaults.NoiseMarkers,
		HeaderCaptions: defaults.HeaderCaptions,
	})
}

func rowsOf(cells ...[2]string) []internal.RawRow {
	out := make([]internal.RawRow, 0, len(cells))
	for i, c := range cells {
		out = append(out, internal.RawRow{RowNumber: i + 1, Col0: c[0], Col1: c[1]})
	}
	return out
}
