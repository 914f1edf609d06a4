package dto

import (
	"github.com/google/uuid"

	"github.com/atl08-heightmap/internal/domain"
)

// RenderMapResponse - результат построения карты
type RenderMapResponse struct {
	MapID       string             `json:"map_id"`
	MarkerCount int                `json:"marker_count"`
	Center      domain.Point       `json:"center"`
	Bounds      domain.BoundingBox `json:"bounds"`
	URL         string             `json:"url"`
}

// EnqueueRenderResponse - задание на построение поставлено в очередь
type EnqueueRenderResponse struct {
	JobID  uuid.UUID `json:"job_id"`
	Stream string    `json:"stream"`
}

// BasemapsResponse - список доступных подложек
type BasemapsResponse struct {
	Basemaps []domain.Basemap `json:"basemaps"`
	Defaults []string         `json:"defaults"`
}

// ColormapResponse - шкала цветов высоты растительности
type ColormapResponse struct {
	Caption string             `json:"caption"`
	Min     float64            `json:"min"`
	Max     float64            `json:"max"`
	Stops   []domain.ColorStop `json:"stops"`
	Value   *float64           `json:"value,omitempty"`
	Color   string             `json:"color,omitempty"`
}

// GranulesResponse - гранулы, доступные в хранилище наблюдений
type GranulesResponse struct {
	Granules []string `json:"granules"`
}
