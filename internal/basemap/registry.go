// Package basemap holds the tile layers a map can be composed from.
package basemap

import (
	"sort"

	"github.com/atl08-heightmap/internal/domain"
)

// Registry keys.
const (
	GoogleTerrain = "Google Terrain"
	Gray          = "basemap_gray"
	Imagery       = "Imagery"
	ESRINatGeo    = "ESRINatGeo"
)

// Registry builds the basemap table. Every call returns a new map, so
// callers may modify the result freely.
func Registry() map[string]domain.Basemap {
	return map[string]domain.Basemap{
		GoogleTerrain: {
			Key:         GoogleTerrain,
			Tiles:       "https://mt1.google.com/vt/lyrs=p&x={x}&y={y}&z={z}",
			Attribution: "Google",
			Name:        "Google Terrain",
			Overlay:     false,
			Control:     true,
			Opacity:     1,
		},
		Gray: {
			Key:         Gray,
			Tiles:       "http://services.arcgisonline.com/ArcGIS/rest/services/Canvas/World_Light_Gray_Base/MapServer/tile/{z}/{y}/{x}",
			Attribution: "ESRI",
			Name:        "World gray basemap",
			Overlay:     false,
			Control:     true,
			Opacity:     1,
		},
		Imagery: {
			Key:         Imagery,
			Tiles:       "https://services.arcgisonline.com/arcgis/rest/services/World_Imagery/MapServer/tile/{z}/{y}/{x}",
			Attribution: "ESRI",
			Name:        "World Imagery",
			Overlay:     false,
			Control:     true,
			Opacity:     1,
		},
		ESRINatGeo: {
			Key:         ESRINatGeo,
			Tiles:       "https://server.arcgisonline.com/ArcGIS/rest/services/NatGeo_World_Map/MapServer/tile/{z}/{y}/{x}",
			Attribution: "ESRI",
			Name:        "ESRI NatGeo",
			Overlay:     false,
			Control:     true,
			Opacity:     1,
		},
	}
}

// Defaults lists the basemaps every map gets, in drawing order.
func Defaults() []string {
	return []string{Imagery, Gray, ESRINatGeo}
}

// Lookup finds a basemap by key.
func Lookup(key string) (domain.Basemap, bool) {
	b, ok := Registry()[key]
	return b, ok
}

// List returns every basemap sorted by key.
func List() []domain.Basemap {
	reg := Registry()
	out := make([]domain.Basemap, 0, len(reg))
	for _, b := range reg {
		out = append(out, b)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out
}
