package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/duarteol2000/sisreq/internal/application/inventory"
)

const contentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// MaterialHandler leituras do almoxarifado (protegido).
type MaterialHandler struct {
	uc            *inventory.MaterialUseCase
	replenishment *inventory.ReplenishmentUseCase
}

// NewMaterialHandler constrói o handler.
func NewMaterialHandler(uc *inventory.MaterialUseCase, replenishment *inventory.ReplenishmentUseCase) *MaterialHandler {
	return &MaterialHandler{uc: uc, replenishment: replenishment}
}

// List godoc
// @Summary      Listar materiais com posição de estoque
// @Tags         materials
// @Security     Bearer
// @Produce      json
// @Param        active  query     bool  false  "somente ativos"
// @Success      200     {object}  dto.MaterialListResponse
// @Router       /api/materials [get]
func (h *MaterialHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.Context(), GetScope(c), c.QueryBool("active", false))
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// Available godoc
// @Summary      Materiais disponíveis para requisição
// @Description  Ativos e com saldo maior que zero.
// @Tags         materials
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.MaterialListResponse
// @Router       /api/materials/available [get]
func (h *MaterialHandler) Available(c *fiber.Ctx) error {
	out, err := h.uc.Available(c.Context(), GetScope(c))
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// Export godoc
// @Summary      Exportar posição de estoque (XLSX)
// @Tags         materials
// @Security     Bearer
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Success      200  {file}  binary
// @Router       /api/materials/export [get]
func (h *MaterialHandler) Export(c *fiber.Ctx) error {
	data, err := h.uc.Export(c.Context(), GetScope(c))
	if err != nil {
		return err
	}
	c.Set(fiber.HeaderContentType, contentTypeXLSX)
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="estoque.xlsx"`)
	return c.Send(data)
}

// GetReplenishmentList godoc
// @Summary      Lista de reposição
// @Description  Materiais ativos abaixo do estoque mínimo, do maior déficit relativo ao menor.
// @Tags         materials
// @Security     Bearer
// @Produce      json
// @Success      200  {array}   dto.ReplenishmentSuggestionDTO
// @Router       /api/materials/replenishment [get]
func (h *MaterialHandler) GetReplenishmentList(c *fiber.Ctx) error {
	list, err := h.replenishment.GenerateReplenishmentList(c.Context(), GetScope(c))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"total":          len(list),
		"replenishments": list,
	})
}
