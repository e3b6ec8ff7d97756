package inventory

import (
	"context"
	"strings"
	"time"

	"github.com/duarteol2000/sisreq/internal/application/dto"
	"github.com/duarteol2000/sisreq/internal/domain"
	"github.com/duarteol2000/sisreq/internal/domain/entity"
)

// RegisterMovementFromRequest adapta o request HTTP ao caso de uso RegisterMovement(ctx, MovementInputDTO).
func (uc *RegisterMovementUseCase) RegisterMovementFromRequest(ctx context.Context, scope entity.Scope, actor entity.Actor, in dto.RegisterMovementRequest) (*dto.MovementResponse, error) {
	input := MovementInputDTO{
		Scope:          scope,
		Actor:          actor,
		MaterialID:     in.MaterialID,
		Type:           entity.MovementType(strings.ToUpper(strings.TrimSpace(in.Type))),
		BusinessReason: entity.BusinessReason(strings.ToUpper(strings.TrimSpace(in.BusinessReason))),
		Quantity:       in.Quantity,
		UnitValue:      in.UnitValue,
		DocumentID:     in.DocumentID,
		ExternalEntity: in.ExternalEntity,
		Note:           in.Note,
	}
	mov, err := uc.RegisterMovement(ctx, input)
	if err != nil {
		return nil, err
	}
	resp := toMovementResponse(mov)
	return &resp, nil
}

// PurchaseEntryFromRequest adapta o request HTTP ao caso de uso PurchaseEntry.
func (uc *RegisterMovementUseCase) PurchaseEntryFromRequest(ctx context.Context, scope entity.Scope, actor entity.Actor, in dto.PurchaseEntryRequest) (*dto.PurchaseEntryResponse, error) {
	var issueDate *time.Time
	if s := strings.TrimSpace(in.IssueDate); s != "" {
		d, err := time.Parse(time.DateOnly, s)
		if err != nil {
			return nil, domain.ErrInvalidInput
		}
		issueDate = &d
	}
	lines := make([]PurchaseLine, 0, len(in.Lines))
	for _, l := range in.Lines {
		lines = append(lines, PurchaseLine{
			MaterialID: l.MaterialID.String(),
			Quantity:   l.Quantity.String(),
			UnitValue:  l.UnitValue.String(),
		})
	}
	res, err := uc.PurchaseEntry(ctx, PurchaseEntryInput{
		Scope:          scope,
		Actor:          actor,
		DocumentType:   entity.DocumentType(strings.ToUpper(strings.TrimSpace(in.DocumentType))),
		DocumentNumber: in.DocumentNumber,
		IssueDate:      issueDate,
		Description:    in.Description,
		FileRef:        in.FileRef,
		Lines:          lines,
	})
	if err != nil {
		return nil, err
	}
	out := &dto.PurchaseEntryResponse{
		DocumentID: res.Document.ID,
		Movements:  make([]dto.MovementResponse, 0, len(res.Movements)),
		Dropped:    res.Dropped,
	}
	for _, m := range res.Movements {
		out.Movements = append(out.Movements, toMovementResponse(m))
	}
	return out, nil
}

func toMovementResponse(m *entity.StockMovement) dto.MovementResponse {
	return dto.MovementResponse{
		ID:             m.ID,
		MaterialID:     m.MaterialID,
		Type:           string(m.Type),
		BusinessReason: string(m.BusinessReason),
		Quantity:       m.Quantity,
		UnitValue:      m.UnitValue,
		DocumentID:     m.DocumentID,
		ExternalEntity: m.ExternalEntity,
		UserID:         m.UserID,
		Note:           m.Note,
		CreatedAt:      m.CreatedAt,
	}
}
