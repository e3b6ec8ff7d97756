package requisition

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/duarteol2000/sisreq/internal/domain/entity"
	"github.com/duarteol2000/sisreq/internal/domain/repository"
)

// ReceiptIssuer emite o recibo de uma requisição entregue (get-or-create por requisição).
type ReceiptIssuer struct{}

// IssueOrGet devolve o recibo da requisição, criando-o com os dados da unidade e do
// ator apenas se ainda não existir. Um recibo existente nunca tem o emissor trocado.
func (ReceiptIssuer) IssueOrGet(
	ctx context.Context,
	receiptRepo repository.ReceiptRepository,
	req *entity.Requisition,
	actor entity.Actor,
	now time.Time,
) (*entity.Receipt, error) {
	receipt, _, err := receiptRepo.GetOrCreate(ctx, &entity.Receipt{
		ID:            uuid.New().String(),
		RequisitionID: req.ID,
		Scope:         req.Scope,
		Number:        entity.ReceiptNumber(now, req.ID),
		IssuedBy:      actor.UserID,
		IssuedAt:      now,
	})
	if err != nil {
		return nil, fmt.Errorf("emitir recibo: %w", err)
	}
	return receipt, nil
}
