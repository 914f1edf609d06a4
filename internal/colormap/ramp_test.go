package colormap

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHeight_Endpoints(t *testing.T) {
	r := Height("h_can")

	assert.Equal(t, "#000000", r.Hex(0))
	assert.Equal(t, "#1a9850", r.Hex(25))
	assert.Equal(t, "Vegetation height from ATL08 (h_can)", r.Caption)
	assert.Len(t, r.Stops(), 8)
}

func TestHeight_Clamps(t *testing.T) {
	r := Height("h_can")

	tests := []struct {
		name  string
		value float64
		want  string
	}{
		{"below domain", -3, "#000000"},
		{"far below domain", -1e9, "#000000"},
		{"above domain", 25.01, "#1a9850"},
		{"far above domain", 400, "#1a9850"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, r.Hex(tt.value))
		})
	}
}

func TestHeight_HitsEveryStop(t *testing.T) {
	r := Height("h_can")
	want := []string{
		"#000000", "#636363", "#fc8d59", "#fee08b",
		"#ffffbf", "#d9ef8b", "#91cf60", "#1a9850",
	}

	for i, s := range r.Stops() {
		assert.Equal(t, want[i], r.Hex(s.Value), "stop %d at %g", i, s.Value)
	}
}

func TestHeight_InterpolatesBetweenStops(t *testing.T) {
	r := Height("h_can")
	stops := r.Stops()

	mid := (stops[0].Value + stops[1].Value) / 2
	assert.Equal(t, "#313131", r.Hex(mid))
}

func TestRamp_MonotonicOnGrayscaleSegment(t *testing.T) {
	r := Height("h_can")
	end := r.Stops()[1].Value

	prev := r.At(0)
	for v := 0.0; v <= end; v += end / 50 {
		c := r.At(v)
		assert.GreaterOrEqual(t, c.R, prev.R)
		assert.Equal(t, c.R, c.G)
		assert.Equal(t, c.G, c.B)
		prev = c
	}
}

func TestRamp_MonotonicOnEverySegment(t *testing.T) {
	r := Height("h_can")
	stops := r.Stops()

	monotone := func(from, to, cur, prev uint8) bool {
		if to >= from {
			return cur >= prev && cur >= from && cur <= to
		}
		return cur <= prev && cur <= from && cur >= to
	}

	for i := 0; i+1 < len(stops); i++ {
		lo, hi := stops[i].Value, stops[i+1].Value
		a, b := r.At(lo), r.At(hi)

		prev := a
		for k := 1; k <= 100; k++ {
			c := r.At(lo + (hi-lo)*float64(k)/100)
			assert.True(t, monotone(a.R, b.R, c.R, prev.R), "segment %d red at step %d", i, k)
			assert.True(t, monotone(a.G, b.G, c.G, prev.G), "segment %d green at step %d", i, k)
			assert.True(t, monotone(a.B, b.B, c.B, prev.B), "segment %d blue at step %d", i, k)
			prev = c
		}
		assert.Equal(t, b, prev, "segment %d ends on its stop", i)
	}
}

func TestRamp_Deterministic(t *testing.T) {
	a, b := Height("x"), Height("y")
	for v := -1.0; v <= 26; v += 0.37 {
		assert.Equal(t, a.At(v), b.At(v))
	}
}

func TestNewLinear_Errors(t *testing.T) {
	_, err := NewLinear([]color.RGBA{{0, 0, 0, 255}}, 0, 1)
	assert.Error(t, err)

	_, err = NewLinear(MustParseAll("black", "white"), 5, 5)
	assert.Error(t, err)
}

func TestParse(t *testing.T) {
	c, err := Parse("#fc8d59")
	require.NoError(t, err)
	assert.Equal(t, color.RGBA{0xfc, 0x8d, 0x59, 0xff}, c)

	c, err = Parse("Black")
	require.NoError(t, err)
	assert.Equal(t, color.RGBA{0, 0, 0, 255}, c)

	_, err = Parse("#zzzzzz")
	assert.Error(t, err)
	_, err = Parse("teal")
	assert.Error(t, err)
}
