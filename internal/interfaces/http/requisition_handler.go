package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/duarteol2000/sisreq/internal/application/dto"
	"github.com/duarteol2000/sisreq/internal/application/requisition"
	"github.com/duarteol2000/sisreq/internal/domain/entity"
	rules "github.com/duarteol2000/sisreq/internal/domain/requisition"
	"github.com/duarteol2000/sisreq/internal/domain/repository"
)

// RequisitionHandler maneja as requisições de material (protegido).
type RequisitionHandler struct {
	uc *requisition.UseCase
}

// NewRequisitionHandler constrói o handler.
func NewRequisitionHandler(uc *requisition.UseCase) *RequisitionHandler {
	return &RequisitionHandler{uc: uc}
}

// Create godoc
// @Summary      Criar requisição a partir do carrinho
// @Description  Linhas com material inválido, inativo, sem saldo ou de outra unidade são descartadas.
// @Tags         requisitions
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body      dto.CreateRequisitionRequest  true  "itens do carrinho"
// @Success      201   {object}  dto.RequisitionResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/requisitions [post]
func (h *RequisitionHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateRequisitionRequest
	if err := bindBody(c, &in); err != nil {
		return err
	}
	lines := make([]requisition.CartLine, 0, len(in.Items))
	for _, l := range in.Items {
		lines = append(lines, requisition.CartLine{MaterialID: l.MaterialID.String(), Quantity: l.Quantity.String()})
	}
	req, err := h.uc.Create(c.Context(), requisition.CreateInput{
		Scope:         GetScope(c),
		Requester:     GetActor(c),
		SetorID:       in.SetorID,
		RequesterNote: in.RequesterNote,
		Lines:         lines,
	})
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(toRequisitionResponse(req))
}

// List godoc
// @Summary      Listar requisições da unidade
// @Description  Funcionários veem apenas as próprias requisições.
// @Tags         requisitions
// @Security     Bearer
// @Produce      json
// @Param        status  query     string  false  "PENDENTE, APROVADA, APROVADA_PARCIAL, NEGADA, ENTREGUE"
// @Param        q       query     string  false  "trecho do número"
// @Param        from    query     string  false  "AAAA-MM-DD"
// @Param        to      query     string  false  "AAAA-MM-DD"
// @Param        limit   query     int     false  "padrão 50, máximo 200"
// @Param        offset  query     int     false  "deslocamento"
// @Success      200     {object}  dto.RequisitionListResponse
// @Failure      400     {object}  dto.ErrorResponse
// @Router       /api/requisitions [get]
func (h *RequisitionHandler) List(c *fiber.Ctx) error {
	var q dto.ListRequisitionsRequest
	if err := bindQuery(c, &q); err != nil {
		return err
	}
	q.DefaultPage()
	from, to, err := parseDateRange(q.From, q.To)
	if err != nil {
		return err
	}
	list, err := h.uc.List(c.Context(), GetScope(c), repository.RequisitionFilter{
		Status: entity.RequisitionStatus(strings.ToUpper(strings.TrimSpace(q.Status))),
		Search: q.Search,
		From:   from,
		To:     to,
		Limit:  q.Limit,
		Offset: q.Offset,
	}, GetActor(c))
	if err != nil {
		return err
	}
	out := dto.RequisitionListResponse{
		Items: make([]dto.RequisitionResponse, 0, len(list)),
		Page:  dto.PageResponse{Limit: q.Limit, Offset: q.Offset},
	}
	for _, r := range list {
		out.Items = append(out.Items, toRequisitionResponse(r))
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obter requisição com itens
// @Tags         requisitions
// @Security     Bearer
// @Produce      json
// @Param        id   path      string  true  "ID da requisição"
// @Success      200  {object}  dto.RequisitionResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/requisitions/{id} [get]
func (h *RequisitionHandler) GetByID(c *fiber.Ctx) error {
	id, err := idParam(c)
	if err != nil {
		return err
	}
	req, err := h.uc.Get(c.Context(), GetScope(c), id)
	if err != nil {
		return err
	}
	actor := GetActor(c)
	if !actor.IsAdmin() && req.RequesterID != actor.UserID {
		return notFound()
	}
	return c.JSON(toRequisitionResponse(req))
}

// Analyze godoc
// @Summary      Analisar requisição
// @Description  Define a quantidade liberada de cada item e deriva o status.
// @Tags         requisitions
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path      string                         true  "ID da requisição"
// @Param        body  body      dto.AnalyzeRequisitionRequest  true  "decisões por item"
// @Success      200   {object}  dto.RequisitionResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/requisitions/{id}/analysis [post]
func (h *RequisitionHandler) Analyze(c *fiber.Ctx) error {
	id, err := idParam(c)
	if err != nil {
		return err
	}
	var in dto.AnalyzeRequisitionRequest
	if err := bindBody(c, &in); err != nil {
		return err
	}
	decisions := make([]rules.Decision, 0, len(in.Decisions))
	for _, d := range in.Decisions {
		decisions = append(decisions, rules.Decision{ItemID: d.ItemID, ReleaseAll: d.ReleaseAll, ManualQuantity: d.Quantity})
	}
	req, err := h.uc.Analyze(c.Context(), requisition.AnalyzeInput{
		Scope:         GetScope(c),
		RequisitionID: id,
		Decisions:     decisions,
		AdminNote:     in.AdminNote,
		Approver:      GetActor(c),
	})
	if err != nil {
		return err
	}
	return c.JSON(toRequisitionResponse(req))
}

// ConfirmDelivery godoc
// @Summary      Confirmar entrega
// @Description  Baixa o estoque limitado ao saldo vivo e emite o recibo. Idempotente.
// @Tags         requisitions
// @Security     Bearer
// @Produce      json
// @Param        id   path      string  true  "ID da requisição"
// @Success      200  {object}  dto.ReceiptResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/requisitions/{id}/delivery [post]
func (h *RequisitionHandler) ConfirmDelivery(c *fiber.Ctx) error {
	id, err := idParam(c)
	if err != nil {
		return err
	}
	receipt, err := h.uc.ConfirmDelivery(c.Context(), GetScope(c), id, GetActor(c))
	if err != nil {
		return err
	}
	return c.JSON(toReceiptResponse(receipt))
}

// Close godoc
// @Summary      Marcar requisição como entregue
// @Tags         requisitions
// @Security     Bearer
// @Produce      json
// @Param        id   path      string  true  "ID da requisição"
// @Success      200  {object}  dto.RequisitionResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/requisitions/{id}/close [post]
func (h *RequisitionHandler) Close(c *fiber.Ctx) error {
	id, err := idParam(c)
	if err != nil {
		return err
	}
	req, err := h.uc.MarkDelivered(c.Context(), GetScope(c), id, GetActor(c))
	if err != nil {
		return err
	}
	return c.JSON(toRequisitionResponse(req))
}

// DeliveryReport godoc
// @Summary      Relatório de entrega de material
// @Tags         requisitions
// @Security     Bearer
// @Produce      json
// @Param        id   path      string  true  "ID da requisição"
// @Success      200  {object}  dto.DeliveryReportResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/requisitions/{id}/delivery-report [get]
func (h *RequisitionHandler) DeliveryReport(c *fiber.Ctx) error {
	id, err := idParam(c)
	if err != nil {
		return err
	}
	report, err := h.uc.DeliveryReport(c.Context(), GetScope(c), id)
	if err != nil {
		return err
	}
	actor := GetActor(c)
	if !actor.IsAdmin() && report.Requisition.RequesterID != actor.UserID {
		return notFound()
	}
	return c.JSON(toDeliveryReportResponse(report))
}
