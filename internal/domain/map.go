package domain

import "github.com/paulmach/orb/geojson"

// LayerKind identifies what a map child is.
type LayerKind string

const (
	LayerTile          LayerKind = "tile"
	LayerCircleMarker  LayerKind = "circle_marker"
	LayerGeoJSON       LayerKind = "geojson"
	LayerColorScale    LayerKind = "color_scale"
	LayerControl       LayerKind = "layer_control"
	LayerFullscreen    LayerKind = "fullscreen"
	LayerMousePosition LayerKind = "mouse_position"
	LayerMiniMap       LayerKind = "minimap"
)

// Layer is anything attached to a Map.
type Layer interface {
	Kind() LayerKind
}

// Figure is the pixel size of the canvas holding the map.
type Figure struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// Map accumulates layers in the order they are added.
type Map struct {
	Figure       Figure  `json:"figure"`
	Center       Point   `json:"center"`
	Zoom         int     `json:"zoom"`
	ControlScale bool    `json:"control_scale"`
	Layers       []Layer `json:"-"`
}

// NewMap creates an empty map with no tile layer.
func NewMap(fig Figure, center Point, zoom int) *Map {
	return &Map{
		Figure:       fig,
		Center:       center,
		Zoom:         zoom,
		ControlScale: true,
	}
}

// Add appends l and returns m for chaining.
func (m *Map) Add(l Layer) *Map {
	m.Layers = append(m.Layers, l)
	return m
}

// LayersOf returns the layers of one kind, in insertion order.
func (m *Map) LayersOf(kind LayerKind) []Layer {
	var out []Layer
	for _, l := range m.Layers {
		if l.Kind() == kind {
			out = append(out, l)
		}
	}
	return out
}

// Markers returns every circle marker on the map.
func (m *Map) Markers() []CircleMarker {
	var out []CircleMarker
	for _, l := range m.Layers {
		if cm, ok := l.(CircleMarker); ok {
			out = append(out, cm)
		}
	}
	return out
}

// Overlay returns the vector overlay, if one was added.
func (m *Map) Overlay() (GeoJSONOverlay, bool) {
	for _, l := range m.Layers {
		if o, ok := l.(GeoJSONOverlay); ok {
			return o, true
		}
	}
	return GeoJSONOverlay{}, false
}

// CircleMarker is a fixed pixel radius circle at one observation.
type CircleMarker struct {
	Location    Point   `json:"location"`
	Radius      float64 `json:"radius"`
	Weight      float64 `json:"weight"`
	Color       string  `json:"color"`
	FillColor   string  `json:"fillColor"`
	Fill        bool    `json:"fill"`
	Opacity     float64 `json:"opacity"`
	FillOpacity float64 `json:"fillOpacity"`
	Tooltip     string  `json:"tooltip"`
	Name        string  `json:"name"`
	Value       float64 `json:"value"`
}

func (CircleMarker) Kind() LayerKind { return LayerCircleMarker }

// PathStyle is the Leaflet path style of a vector layer.
type PathStyle struct {
	FillColor   string  `json:"fillColor"`
	Color       string  `json:"color"`
	Weight      float64 `json:"weight"`
	Opacity     float64 `json:"opacity"`
	FillOpacity float64 `json:"fillOpacity"`
}

// GeoJSONOverlay draws a feature collection above the basemaps.
type GeoJSONOverlay struct {
	Name  string                     `json:"name"`
	Data  *geojson.FeatureCollection `json:"data"`
	Style PathStyle                  `json:"style"`
}

func (GeoJSONOverlay) Kind() LayerKind { return LayerGeoJSON }

// ColorStop is one entry of a legend.
type ColorStop struct {
	Value float64 `json:"value"`
	Color string  `json:"color"`
}

// ColorScale is the legend of a colour ramp.
type ColorScale struct {
	Caption string      `json:"caption"`
	Min     float64     `json:"min"`
	Max     float64     `json:"max"`
	Stops   []ColorStop `json:"stops"`
}

func (ColorScale) Kind() LayerKind { return LayerColorScale }

// LayerSwitcher lets the reader toggle basemaps and overlays.
type LayerSwitcher struct {
	Position  string `json:"position"`
	Collapsed bool   `json:"collapsed"`
}

func (LayerSwitcher) Kind() LayerKind { return LayerControl }

// Fullscreen adds a fullscreen toggle button.
type Fullscreen struct {
	Position    string `json:"position"`
	Title       string `json:"title"`
	TitleCancel string `json:"titleCancel"`
}

func (Fullscreen) Kind() LayerKind { return LayerFullscreen }

// MousePosition shows the cursor coordinates.
type MousePosition struct {
	Position    string `json:"position"`
	Separator   string `json:"separator"`
	EmptyString string `json:"emptyString"`
	NumDigits   int    `json:"numDigits"`
	LngFirst    bool   `json:"lngFirst"`
}

func (MousePosition) Kind() LayerKind { return LayerMousePosition }

// MiniMap is an overview inset with its own tile layer.
type MiniMap struct {
	Tiles           string `json:"tiles"`
	Attribution     string `json:"attribution"`
	Position        string `json:"position"`
	Width           int    `json:"width"`
	Height          int    `json:"height"`
	ZoomLevelOffset int    `json:"zoomLevelOffset"`
	ToggleDisplay   bool   `json:"toggleDisplay"`
}

func (MiniMap) Kind() LayerKind { return LayerMiniMap }
