// Package render exports a composed map as a standalone Leaflet page.
package render

import (
	"bytes"
	"embed"
	"encoding/json"
	"fmt"
	"html/template"
	"io"

	"github.com/atl08-heightmap/internal/domain"
)

//go:embed templates/map.html.tmpl
var templates embed.FS

// DefaultTitle is used when no title is set.
const DefaultTitle = "ATL08 vegetation height"

type layerSpec struct {
	Kind    domain.LayerKind `json:"kind"`
	Options domain.Layer     `json:"options"`
}

type mapSpec struct {
	Center       [2]float64  `json:"center"`
	Zoom         int         `json:"zoom"`
	ControlScale bool        `json:"control_scale"`
	Layers       []layerSpec `json:"layers"`
}

type page struct {
	Title  string
	Width  int
	Height int
	Spec   template.JS
}

// HTMLRenderer writes maps as HTML documents. It is safe for concurrent use.
type HTMLRenderer struct {
	tmpl  *template.Template
	title string
}

// NewHTMLRenderer parses the embedded page template.
func NewHTMLRenderer(title string) (*HTMLRenderer, error) {
	tmpl, err := template.ParseFS(templates, "templates/map.html.tmpl")
	if err != nil {
		return nil, fmt.Errorf("failed to parse map template: %w", err)
	}
	if title == "" {
		title = DefaultTitle
	}
	return &HTMLRenderer{tmpl: tmpl, title: title}, nil
}

// Render writes m to w.
func (r *HTMLRenderer) Render(w io.Writer, m *domain.Map) error {
	spec := mapSpec{
		Center:       [2]float64{m.Center.Lat, m.Center.Lon},
		Zoom:         m.Zoom,
		ControlScale: m.ControlScale,
		Layers:       make([]layerSpec, len(m.Layers)),
	}
	for i, l := range m.Layers {
		spec.Layers[i] = layerSpec{Kind: l.Kind(), Options: l}
	}

	// json.Marshal экранирует <, > и &, поэтому вывод безопасен внутри <script>
	raw, err := json.Marshal(spec)
	if err != nil {
		return fmt.Errorf("failed to encode map layers: %w", err)
	}

	p := page{
		Title:  r.title,
		Width:  m.Figure.Width,
		Height: m.Figure.Height,
		Spec:   template.JS(raw),
	}

	if err := r.tmpl.Execute(w, p); err != nil {
		return fmt.Errorf("failed to render map: %w", err)
	}
	return nil
}

// RenderBytes renders m into memory.
func (r *HTMLRenderer) RenderBytes(m *domain.Map) ([]byte, error) {
	var buf bytes.Buffer
	if err := r.Render(&buf, m); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
