package handler

import (
	"math"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/atl08-heightmap/internal/colormap"
	"github.com/atl08-heightmap/internal/domain"
	"github.com/atl08-heightmap/internal/pkg/errors"
	"github.com/atl08-heightmap/internal/pkg/utils"
	"github.com/atl08-heightmap/internal/usecase"
	"github.com/atl08-heightmap/internal/usecase/dto"
)

type ColormapHandler struct{}

func NewColormapHandler() *ColormapHandler {
	return &ColormapHandler{}
}

// GetColormap godoc
// @Summary Шкала цветов высоты
// @Description Возвращает опорные цвета шкалы 0-25 м; с параметром value - цвет для значения
// @Tags Colormap
// @Produce json
// @Param column query string false "Колонка для подписи легенды" default(h_can)
// @Param value query number false "Значение высоты, м"
// @Success 200 {object} utils.SuccessResponse{data=dto.ColormapResponse}
// @Failure 400 {object} utils.ErrorResponse
// @Router /api/v1/colormap [get]
func (h *ColormapHandler) GetColormap(c *fiber.Ctx) error {
	column := c.Query("column", domain.DefaultMetricColumn)
	ramp := colormap.Height(column)
	legend := usecase.Legend(ramp)

	resp := dto.ColormapResponse{
		Caption: legend.Caption,
		Min:     legend.Min,
		Max:     legend.Max,
		Stops:   legend.Stops,
	}

	if raw := c.Query("value"); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil || math.IsNaN(v) {
			return utils.SendError(c, errors.ErrInvalidRequest.WithDetails(map[string]interface{}{"value": raw}))
		}
		resp.Value = &v
		resp.Color = ramp.Hex(v)
	}

	return utils.SendSuccess(c, resp, nil)
}
