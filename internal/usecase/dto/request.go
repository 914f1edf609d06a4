package dto

// RenderMapRequest - запрос на построение карты высот растительности.
// Наблюдения передаются либо напрямую (rows), либо по имени гранулы.
type RenderMapRequest struct {
	Granule string                   `json:"granule,omitempty" validate:"required_without=Rows,max=255"`
	Rows    []map[string]interface{} `json:"rows,omitempty" validate:"required_without=Granule,max=100000"`

	Column          string `json:"column,omitempty" validate:"omitempty,column"`
	NightOnly       *bool  `json:"night_only,omitempty"`
	NightFlagColumn string `json:"night_flag_column,omitempty" validate:"omitempty,column"`
	// NightSentinel - число или строка, отмечающая ночные наблюдения
	NightSentinel interface{} `json:"night_sentinel,omitempty"`

	AddOverlay   *bool    `json:"add_overlay,omitempty"`
	OverlayPaths []string `json:"overlay_paths,omitempty" validate:"omitempty,max=20,dive,required"`

	Width    int      `json:"width,omitempty" validate:"omitempty,min=100,max=4000"`
	Height   int      `json:"height,omitempty" validate:"omitempty,min=100,max=4000"`
	Radius   float64  `json:"radius,omitempty" validate:"omitempty,gt=0,max=100"`
	Basemaps []string `json:"basemaps,omitempty" validate:"omitempty,max=10"`
}
