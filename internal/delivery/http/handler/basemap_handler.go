package handler

import (
	"github.com/gofiber/fiber/v2"

	"github.com/atl08-heightmap/internal/basemap"
	"github.com/atl08-heightmap/internal/pkg/utils"
	"github.com/atl08-heightmap/internal/usecase/dto"
)

type BasemapHandler struct{}

func NewBasemapHandler() *BasemapHandler {
	return &BasemapHandler{}
}

// ListBasemaps godoc
// @Summary Список подложек
// @Description Все подложки реестра и те, что добавляются на карту по умолчанию
// @Tags Basemaps
// @Produce json
// @Success 200 {object} utils.SuccessResponse{data=dto.BasemapsResponse}
// @Router /api/v1/basemaps [get]
func (h *BasemapHandler) ListBasemaps(c *fiber.Ctx) error {
	list := basemap.List()
	return utils.SendSuccess(c, dto.BasemapsResponse{
		Basemaps: list,
		Defaults: basemap.Defaults(),
	}, &utils.Meta{Total: len(list)})
}
