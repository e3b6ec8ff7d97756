package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/duarteol2000/sisreq/internal/application/dto"
	"github.com/duarteol2000/sisreq/internal/application/inventory"
	"github.com/duarteol2000/sisreq/internal/domain/repository"
)

// StockHandler movimentos de estoque e entradas por compra (protegido, administrador).
type StockHandler struct {
	register  *inventory.RegisterMovementUseCase
	materials *inventory.MaterialUseCase
}

// NewStockHandler constrói o handler.
func NewStockHandler(register *inventory.RegisterMovementUseCase, materials *inventory.MaterialUseCase) *StockHandler {
	return &StockHandler{register: register, materials: materials}
}

// RegisterMovement godoc
// @Summary      Registrar ajuste de estoque
// @Tags         stock
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body      dto.RegisterMovementRequest  true  "material_id, type, quantity, business_reason"
// @Success      201   {object}  dto.MovementResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/stock/movements [post]
func (h *StockHandler) RegisterMovement(c *fiber.Ctx) error {
	var in dto.RegisterMovementRequest
	if err := bindBody(c, &in); err != nil {
		return err
	}
	out, err := h.register.RegisterMovementFromRequest(c.Context(), GetScope(c), GetActor(c), in)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListMovements godoc
// @Summary      Trilha de movimentos de estoque
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Param        material_id  query     string  false  "filtrar por material"
// @Param        from         query     string  false  "AAAA-MM-DD"
// @Param        to           query     string  false  "AAAA-MM-DD"
// @Param        limit        query     int     false  "padrão 50"
// @Param        offset       query     int     false  "deslocamento"
// @Success      200          {object}  dto.MovementListResponse
// @Router       /api/stock/movements [get]
func (h *StockHandler) ListMovements(c *fiber.Ctx) error {
	var q dto.ListMovementsRequest
	if err := bindQuery(c, &q); err != nil {
		return err
	}
	q.DefaultPage()
	from, to, err := parseDateRange(q.From, q.To)
	if err != nil {
		return err
	}
	out, err := h.materials.ListMovements(c.Context(), GetScope(c), repository.MovementFilter{
		MaterialID: q.MaterialID,
		From:       from,
		To:         to,
		Limit:      q.Limit,
		Offset:     q.Offset,
	})
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// PurchaseEntry godoc
// @Summary      Entrada por compra
// @Description  Cria o documento de suporte e um movimento ENTRADA por linha válida.
// @Tags         stock
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body      dto.PurchaseEntryRequest  true  "documento e linhas"
// @Success      201   {object}  dto.PurchaseEntryResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Router       /api/stock/purchase-entries [post]
func (h *StockHandler) PurchaseEntry(c *fiber.Ctx) error {
	var in dto.PurchaseEntryRequest
	if err := bindBody(c, &in); err != nil {
		return err
	}
	out, err := h.register.PurchaseEntryFromRequest(c.Context(), GetScope(c), GetActor(c), in)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}
