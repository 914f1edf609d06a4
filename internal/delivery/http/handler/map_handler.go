package handler

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/atl08-heightmap/internal/pkg/errors"
	"github.com/atl08-heightmap/internal/pkg/utils"
	"github.com/atl08-heightmap/internal/pkg/validator"
	"github.com/atl08-heightmap/internal/usecase"
	"github.com/atl08-heightmap/internal/usecase/dto"
)

// MapHandler - обработчик запросов на построение карт
type MapHandler struct {
	renderUC *usecase.RenderUseCase
	logger   *zap.Logger
}

// NewMapHandler - создание нового MapHandler
func NewMapHandler(renderUC *usecase.RenderUseCase, logger *zap.Logger) *MapHandler {
	return &MapHandler{
		renderUC: renderUC,
		logger:   logger,
	}
}

func (h *MapHandler) parseRequest(c *fiber.Ctx) (*dto.RenderMapRequest, error) {
	var req dto.RenderMapRequest
	if err := c.BodyParser(&req); err != nil {
		return nil, errors.ErrInvalidRequest.Wrap(err)
	}
	if err := validator.ValidateRequest(&req); err != nil {
		return nil, err
	}
	return &req, nil
}

// RenderMap godoc
// @Summary Построение карты высот растительности
// @Description Строит карту по наблюдениям ATL08 (переданным в rows или из гранулы), сохраняет HTML в кеш и возвращает его идентификатор
// @Tags Maps
// @Accept json
// @Produce json
// @Param request body dto.RenderMapRequest true "Параметры карты"
// @Success 200 {object} utils.SuccessResponse{data=dto.RenderMapResponse}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 422 {object} utils.ErrorResponse
// @Failure 500 {object} utils.ErrorResponse
// @Router /api/v1/maps [post]
func (h *MapHandler) RenderMap(c *fiber.Ctx) error {
	req, err := h.parseRequest(c)
	if err != nil {
		return utils.SendError(c, err)
	}

	result, err := h.renderUC.RenderAndStore(c.Context(), req)
	if err != nil {
		h.logger.Warn("Failed to render map", zap.Error(err))
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, result, nil)
}

// RenderMapHTML godoc
// @Summary Построение карты с ответом в HTML
// @Description Строит карту и сразу возвращает HTML документ, не сохраняя его
// @Tags Maps
// @Accept json
// @Produce html
// @Param request body dto.RenderMapRequest true "Параметры карты"
// @Success 200 {string} string "HTML документ Leaflet"
// @Failure 400 {object} utils.ErrorResponse
// @Failure 422 {object} utils.ErrorResponse
// @Router /api/v1/maps/html [post]
func (h *MapHandler) RenderMapHTML(c *fiber.Ctx) error {
	req, err := h.parseRequest(c)
	if err != nil {
		return utils.SendError(c, err)
	}

	result, err := h.renderUC.Render(c.Context(), req)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendHTML(c, result.HTML)
}

// GetMap godoc
// @Summary Получение сохранённой карты
// @Description Возвращает HTML карты, ранее построенной через POST /api/v1/maps
// @Tags Maps
// @Produce html
// @Param id path string true "Идентификатор карты"
// @Success 200 {string} string "HTML документ Leaflet"
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/v1/maps/{id} [get]
func (h *MapHandler) GetMap(c *fiber.Ctx) error {
	html, err := h.renderUC.GetMapHTML(c.Context(), c.Params("id"))
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendHTML(c, html)
}

// EnqueueRender godoc
// @Summary Постановка построения карты в очередь
// @Description Публикует запрос в Redis Stream; результат воркер публикует в stream:atl08:render:done
// @Tags Maps
// @Accept json
// @Produce json
// @Param request body dto.RenderMapRequest true "Параметры карты"
// @Success 202 {object} utils.SuccessResponse{data=dto.EnqueueRenderResponse}
// @Failure 400 {object} utils.ErrorResponse
// @Router /api/v1/maps/jobs [post]
func (h *MapHandler) EnqueueRender(c *fiber.Ctx) error {
	req, err := h.parseRequest(c)
	if err != nil {
		return utils.SendError(c, err)
	}

	result, err := h.renderUC.EnqueueRender(c.Context(), req)
	if err != nil {
		return utils.SendError(c, err)
	}

	c.Status(fiber.StatusAccepted)
	return utils.SendSuccess(c, result, nil)
}

// ListGranules godoc
// @Summary Список гранул
// @Description Возвращает гранулы ATL08, доступные в хранилище наблюдений
// @Tags Maps
// @Produce json
// @Success 200 {object} utils.SuccessResponse{data=dto.GranulesResponse}
// @Failure 500 {object} utils.ErrorResponse
// @Router /api/v1/granules [get]
func (h *MapHandler) ListGranules(c *fiber.Ctx) error {
	granules, err := h.renderUC.Granules(c.Context())
	if err != nil {
		h.logger.Error("Failed to list granules", zap.Error(err))
		return utils.SendError(c, errors.ErrDatabaseError.Wrap(err))
	}
	return utils.SendSuccess(c, dto.GranulesResponse{Granules: granules}, &utils.Meta{Total: len(granules)})
}
