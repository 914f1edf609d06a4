package domain

// Basemap describes a background tile layer.
type Basemap struct {
	Key         string  `json:"key"`
	Tiles       string  `json:"tiles"`
	Attribution string  `json:"attribution"`
	Name        string  `json:"name"`
	Overlay     bool    `json:"overlay"`
	Control     bool    `json:"control"`
	Opacity     float64 `json:"opacity"`
}

func (Basemap) Kind() LayerKind { return LayerTile }
