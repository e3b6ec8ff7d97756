package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/duarteol2000/sisreq/internal/application/requisition"
)

// ReceiptHandler consulta e impressão dos recibos de entrega (protegido).
type ReceiptHandler struct {
	uc *requisition.ReceiptUseCase
}

// NewReceiptHandler constrói o handler.
func NewReceiptHandler(uc *requisition.ReceiptUseCase) *ReceiptHandler {
	return &ReceiptHandler{uc: uc}
}

// GetByID godoc
// @Summary      Obter recibo de entrega
// @Tags         receipts
// @Security     Bearer
// @Produce      json
// @Param        id   path      string  true  "ID do recibo"
// @Success      200  {object}  dto.ReceiptResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/receipts/{id} [get]
func (h *ReceiptHandler) GetByID(c *fiber.Ctx) error {
	id, err := idParam(c)
	if err != nil {
		return err
	}
	r, err := h.uc.Get(c.Context(), GetScope(c), id, GetActor(c))
	if err != nil {
		return err
	}
	return c.JSON(toReceiptResponse(r))
}

// DownloadPDF godoc
// @Summary      Baixar recibo em PDF
// @Tags         receipts
// @Security     Bearer
// @Produce      application/pdf
// @Param        id   path  string  true  "ID do recibo"
// @Success      200  {file}    binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/receipts/{id}/pdf [get]
func (h *ReceiptHandler) DownloadPDF(c *fiber.Ctx) error {
	id, err := idParam(c)
	if err != nil {
		return err
	}
	pdf, number, err := h.uc.DownloadPDF(c.Context(), GetScope(c), id)
	if err != nil {
		return err
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s.pdf"`, number))
	return c.Send(pdf)
}
