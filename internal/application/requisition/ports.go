package requisition

import (
	"context"

	"github.com/duarteol2000/sisreq/internal/domain/entity"
	"github.com/duarteol2000/sisreq/internal/domain/repository"
)

// TxRunner executa fn dentro de uma transação, com repositórios presos a ela.
// Garante atomicidade de criação, análise e confirmação de entrega.
type TxRunner interface {
	RunRequisition(ctx context.Context, fn func(
		materialRepo repository.MaterialRepository,
		requisitionRepo repository.RequisitionRepository,
		receiptRepo repository.ReceiptRepository,
	) error) error
}

// ReceiptPDFGenerator gera a representação impressa de um recibo de entrega.
type ReceiptPDFGenerator interface {
	GenerateReceiptPDF(ctx context.Context, receipt *entity.Receipt, req *entity.Requisition, unit *entity.Unit) ([]byte, error)
}
