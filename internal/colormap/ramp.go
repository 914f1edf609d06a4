// Package colormap maps numeric values onto colours along a linear ramp.
package colormap

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"
)

// Stop is a colour pinned to a value of the ramp domain.
type Stop struct {
	Value float64
	Color color.RGBA
}

// Ramp is a piecewise linear colour scale. Stops are sorted by value.
type Ramp struct {
	stops   []Stop
	Caption string
}

// NewLinear spreads colours evenly over [vmin, vmax].
func NewLinear(colors []color.RGBA, vmin, vmax float64) (*Ramp, error) {
	if len(colors) < 2 {
		return nil, fmt.Errorf("colormap: need at least 2 colors, got %d", len(colors))
	}
	if vmax <= vmin {
		return nil, fmt.Errorf("colormap: empty domain [%g, %g]", vmin, vmax)
	}

	stops := make([]Stop, len(colors))
	n := float64(len(colors) - 1)
	for i, c := range colors {
		stops[i] = Stop{
			Value: vmin + (vmax-vmin)*float64(i)/n,
			Color: c,
		}
	}
	return &Ramp{stops: stops}, nil
}

// Stops returns a copy of the ramp stops.
func (r *Ramp) Stops() []Stop {
	out := make([]Stop, len(r.stops))
	copy(out, r.stops)
	return out
}

// Min is the lower end of the domain.
func (r *Ramp) Min() float64 { return r.stops[0].Value }

// Max is the upper end of the domain.
func (r *Ramp) Max() float64 { return r.stops[len(r.stops)-1].Value }

// At returns the colour for v. Values outside the domain clamp to the end
// colours.
func (r *Ramp) At(v float64) color.RGBA {
	first, last := r.stops[0], r.stops[len(r.stops)-1]
	if v <= first.Value {
		return first.Color
	}
	if v >= last.Value {
		return last.Color
	}

	// first stop strictly above v
	i := 1
	for r.stops[i].Value <= v {
		i++
	}
	p1, p2 := r.stops[i-1], r.stops[i]
	t := (v - p1.Value) / (p2.Value - p1.Value)

	return color.RGBA{
		R: lerp(p1.Color.R, p2.Color.R, t),
		G: lerp(p1.Color.G, p2.Color.G, t),
		B: lerp(p1.Color.B, p2.Color.B, t),
		A: lerp(p1.Color.A, p2.Color.A, t),
	}
}

// Hex returns the colour for v as #rrggbb.
func (r *Ramp) Hex(v float64) string {
	return Hex(r.At(v))
}

// lerp interpolates in the unit interval and truncates back to a byte.
func lerp(a, b uint8, t float64) uint8 {
	fa := float64(a) / 255
	fb := float64(b) / 255
	return uint8((fa + t*(fb-fa)) * 255.9999)
}

// Hex formats c as #rrggbb.
func Hex(c color.RGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

var named = map[string]color.RGBA{
	"black": {0, 0, 0, 255},
	"white": {255, 255, 255, 255},
	"gray":  {128, 128, 128, 255},
	"grey":  {128, 128, 128, 255},
}

// Parse reads a CSS colour name from a small set or a #rrggbb literal.
func Parse(s string) (color.RGBA, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if c, ok := named[s]; ok {
		return c, nil
	}
	if len(s) != 7 || s[0] != '#' {
		return color.RGBA{}, fmt.Errorf("colormap: unsupported color %q", s)
	}
	v, err := strconv.ParseUint(s[1:], 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("colormap: parse %q: %w", s, err)
	}
	return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 255}, nil
}

// MustParseAll parses colour literals known at compile time.
func MustParseAll(colors ...string) []color.RGBA {
	out := make([]color.RGBA, len(colors))
	for i, s := range colors {
		c, err := Parse(s)
		if err != nil {
			panic(err)
		}
		out[i] = c
	}
	return out
}
