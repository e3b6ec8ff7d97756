package requisition

import (
	"context"
	"fmt"

	"github.com/duarteol2000/sisreq/internal/domain"
	"github.com/duarteol2000/sisreq/internal/domain/entity"
	"github.com/duarteol2000/sisreq/internal/domain/repository"
)

// ReceiptUseCase leitura e impressão dos recibos de entrega.
type ReceiptUseCase struct {
	receiptRepo     repository.ReceiptRepository
	requisitionRepo repository.RequisitionRepository
	unitRepo        repository.UnitRepository
	pdfGen          ReceiptPDFGenerator
}

// NewReceiptUseCase constrói o caso de uso de recibos.
func NewReceiptUseCase(
	receiptRepo repository.ReceiptRepository,
	requisitionRepo repository.RequisitionRepository,
	unitRepo repository.UnitRepository,
	pdfGen ReceiptPDFGenerator,
) *ReceiptUseCase {
	return &ReceiptUseCase{
		receiptRepo:     receiptRepo,
		requisitionRepo: requisitionRepo,
		unitRepo:        unitRepo,
		pdfGen:          pdfGen,
	}
}

// Get devolve o recibo da unidade. Funcionário só enxerga recibos das próprias
// requisições; os demais respondem domain.ErrNotFound, como na leitura da requisição.
func (uc *ReceiptUseCase) Get(ctx context.Context, scope entity.Scope, id string, actor entity.Actor) (*entity.Receipt, error) {
	r, err := uc.get(ctx, scope, id)
	if err != nil {
		return nil, err
	}
	if actor.IsAdmin() {
		return r, nil
	}
	req, err := uc.requisitionRepo.GetByID(ctx, scope, r.RequisitionID)
	if err != nil {
		return nil, err
	}
	if req == nil || req.RequesterID != actor.UserID {
		return nil, domain.ErrNotFound
	}
	return r, nil
}

func (uc *ReceiptUseCase) get(ctx context.Context, scope entity.Scope, id string) (*entity.Receipt, error) {
	r, err := uc.receiptRepo.GetByID(ctx, scope, id)
	if err != nil {
		return nil, err
	}
	if r == nil {
		return nil, domain.ErrNotFound
	}
	return r, nil
}

// DownloadPDF gera o PDF do recibo com os itens entregues da requisição.
// Devolve também o número do recibo para compor o nome do arquivo.
func (uc *ReceiptUseCase) DownloadPDF(ctx context.Context, scope entity.Scope, id string) ([]byte, string, error) {
	if uc.pdfGen == nil {
		return nil, "", fmt.Errorf("gerador de PDF não configurado")
	}
	receipt, err := uc.get(ctx, scope, id)
	if err != nil {
		return nil, "", err
	}
	req, err := uc.requisitionRepo.GetByID(ctx, scope, receipt.RequisitionID)
	if err != nil {
		return nil, "", err
	}
	if req == nil {
		return nil, "", domain.ErrNotFound
	}
	unit, err := uc.unitRepo.GetUnit(ctx, scope)
	if err != nil {
		return nil, "", err
	}
	if unit == nil {
		unit = &entity.Unit{Scope: scope}
	}
	pdf, err := uc.pdfGen.GenerateReceiptPDF(ctx, receipt, req, unit)
	if err != nil {
		return nil, "", fmt.Errorf("gerar PDF do recibo: %w", err)
	}
	return pdf, receipt.Number, nil
}
