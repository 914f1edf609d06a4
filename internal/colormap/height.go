package colormap

import "fmt"

// Vegetation height ramp domain, in metres.
const (
	HeightMin = 0.0
	HeightMax = 25.0
)

var heightColors = []string{
	"black", "#636363", "#fc8d59", "#fee08b",
	"#ffffbf", "#d9ef8b", "#91cf60", "#1a9850",
}

// Height builds the canopy height ramp with a legend caption naming column.
// A new ramp is returned on every call.
func Height(column string) *Ramp {
	r, err := NewLinear(MustParseAll(heightColors...), HeightMin, HeightMax)
	if err != nil {
		panic(err)
	}
	r.Caption = fmt.Sprintf("Vegetation height from ATL08 (%s)", column)
	return r
}
