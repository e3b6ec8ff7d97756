package inventory

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/duarteol2000/sisreq/internal/domain"
	"github.com/duarteol2000/sisreq/internal/domain/entity"
	ledger "github.com/duarteol2000/sisreq/internal/domain/inventory"
	"github.com/duarteol2000/sisreq/internal/domain/repository"
	"github.com/duarteol2000/sisreq/pkg/logger"
)

// RegisterMovementUseCase registra movimentos de estoque de forma transacional
// (ENTRADA, AJUSTE_POSITIVO, AJUSTE_NEGATIVO) com bloqueio de linha (SELECT FOR UPDATE).
// O movimento e a alteração de saldo são gravados juntos ou nenhum dos dois.
type RegisterMovementUseCase struct {
	txRunner TxRunner
	log      *logger.Logger
	now      func() time.Time
}

// NewRegisterMovementUseCase constrói o caso de uso.
func NewRegisterMovementUseCase(txRunner TxRunner, log *logger.Logger) *RegisterMovementUseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &RegisterMovementUseCase{txRunner: txRunner, log: log, now: time.Now}
}

// MovementInputDTO entrada de um ajuste manual.
// BusinessReason vazio vale AJUSTE; ExternalEntity, se informado, precisa ser um órgão conhecido.
type MovementInputDTO struct {
	Scope          entity.Scope
	Actor          entity.Actor
	MaterialID     string
	Type           entity.MovementType
	BusinessReason entity.BusinessReason
	Quantity       int
	UnitValue      *decimal.Decimal
	DocumentID     *string
	ExternalEntity string
	Note           string
}

func (in *MovementInputDTO) validate() error {
	if in.Quantity <= 0 {
		return domain.ErrNonPositiveQuantity
	}
	if in.MaterialID == "" || !in.Type.Known() {
		return domain.ErrInvalidInput
	}
	if in.BusinessReason == "" {
		in.BusinessReason = entity.ReasonAdjustment
	}
	if !in.BusinessReason.Known() {
		return domain.ErrInvalidInput
	}
	in.ExternalEntity = strings.TrimSpace(in.ExternalEntity)
	if in.ExternalEntity != "" && !entity.KnownExternalEntity(in.ExternalEntity) {
		return domain.ErrInvalidInput
	}
	if in.UnitValue != nil && in.UnitValue.IsNegative() {
		return domain.ErrInvalidInput
	}
	return nil
}

// RegisterMovement valida o ajuste, bloqueia o material, rejeita saldo resultante negativo
// e grava movimento + saldo na mesma transação. Nenhuma falha altera estado.
func (uc *RegisterMovementUseCase) RegisterMovement(ctx context.Context, input MovementInputDTO) (*entity.StockMovement, error) {
	if !input.Actor.IsAdmin() {
		return nil, domain.ErrForbidden
	}
	if err := input.validate(); err != nil {
		return nil, err
	}

	var movement *entity.StockMovement
	err := uc.txRunner.Run(ctx, func(
		materialRepo repository.MaterialRepository,
		movementRepo repository.StockMovementRepository,
		documentRepo repository.StockDocumentRepository,
	) error {
		material, err := materialRepo.GetForUpdate(ctx, input.Scope, input.MaterialID)
		if err != nil {
			return err
		}
		if material == nil {
			return domain.ErrNotFound
		}
		if input.DocumentID != nil {
			doc, err := documentRepo.GetByID(ctx, input.Scope, *input.DocumentID)
			if err != nil {
				return err
			}
			if doc == nil {
				return fmt.Errorf("documento %s: %w", *input.DocumentID, domain.ErrNotFound)
			}
		}
		if ledger.ResultingStock(material.QuantityOnHand, input.Type, input.Quantity) < 0 {
			return domain.ErrNegativeResultingStock
		}

		movement = &entity.StockMovement{
			ID:             uuid.New().String(),
			Scope:          input.Scope,
			MaterialID:     material.ID,
			Type:           input.Type,
			BusinessReason: input.BusinessReason,
			Quantity:       input.Quantity,
			UnitValue:      input.UnitValue,
			DocumentID:     input.DocumentID,
			ExternalEntity: input.ExternalEntity,
			UserID:         input.Actor.UserID,
			CreatedAt:      uc.now(),
			Note:           strings.TrimSpace(input.Note),
		}
		return uc.apply(ctx, materialRepo, movementRepo, material, movement)
	})
	if err != nil {
		return nil, err
	}
	return movement, nil
}

// apply grava o movimento e o novo saldo do material (já bloqueado pelo chamador).
func (uc *RegisterMovementUseCase) apply(
	ctx context.Context,
	materialRepo repository.MaterialRepository,
	movementRepo repository.StockMovementRepository,
	material *entity.Material,
	movement *entity.StockMovement,
) error {
	if err := movementRepo.Create(ctx, movement); err != nil {
		return err
	}
	before := material.QuantityOnHand
	qty := movement.Quantity
	ledger.Apply(material, movement.Type, &qty)
	if err := materialRepo.UpdateQuantity(ctx, material.ID, material.QuantityOnHand); err != nil {
		return err
	}
	uc.log.Info().
		Str("movement_id", movement.ID).
		Str("material_id", material.ID).
		Str("type", string(movement.Type)).
		Int("quantity", qty).
		Int("on_hand_before", before).
		Int("on_hand", material.QuantityOnHand).
		Msg("movimento de estoque registrado")
	return nil
}

// PurchaseLine linha bruta de uma entrada por compra.
type PurchaseLine struct {
	MaterialID string
	Quantity   string
	UnitValue  string
}

// PurchaseEntryInput entrada por compra: documento de suporte e linhas digitadas.
type PurchaseEntryInput struct {
	Scope          entity.Scope
	Actor          entity.Actor
	DocumentType   entity.DocumentType
	DocumentNumber string
	IssueDate      *time.Time
	Description    string
	FileRef        string
	Lines          []PurchaseLine
}

// PurchaseEntryResult documento gravado e movimentos gerados.
type PurchaseEntryResult struct {
	Document  *entity.StockDocument
	Movements []*entity.StockMovement
	Dropped   int // linhas descartadas (inválidas ou fora da unidade)
}

type purchaseEntry struct {
	materialID string
	quantity   int
	unitValue  *decimal.Decimal
}

// parsePurchaseLines descarta linhas inválidas; valor unitário ilegível vira ausente.
func parsePurchaseLines(lines []PurchaseLine) []purchaseEntry {
	entries := make([]purchaseEntry, 0, len(lines))
	for _, l := range lines {
		matID := strings.TrimSpace(l.MaterialID)
		qtd := strings.TrimSpace(l.Quantity)
		if matID == "" || qtd == "" {
			continue
		}
		id, err := uuid.Parse(matID)
		if err != nil {
			continue
		}
		n, err := strconv.Atoi(qtd)
		if err != nil || n <= 0 {
			continue
		}
		entries = append(entries, purchaseEntry{
			materialID: id.String(),
			quantity:   n,
			unitValue:  parseUnitValue(l.UnitValue),
		})
	}
	return entries
}

func parseUnitValue(raw string) *decimal.Decimal {
	raw = strings.ReplaceAll(strings.TrimSpace(raw), ",", ".")
	if raw == "" {
		return nil
	}
	v, err := decimal.NewFromString(raw)
	if err != nil || v.IsNegative() {
		return nil
	}
	return &v
}

// PurchaseEntry grava o documento e um movimento ENTRADA / SUPRIMENTO_FUNDO por linha válida,
// aplicando cada um ao saldo. Linhas inválidas ou de material fora da unidade são descartadas;
// se nenhuma sobrar, falha com domain.ErrEmptyEntry e o documento não é gravado.
func (uc *RegisterMovementUseCase) PurchaseEntry(ctx context.Context, input PurchaseEntryInput) (*PurchaseEntryResult, error) {
	if !input.Actor.IsAdmin() {
		return nil, domain.ErrForbidden
	}
	if !knownDocumentType(input.DocumentType) {
		return nil, domain.ErrInvalidInput
	}
	entries := parsePurchaseLines(input.Lines)
	if len(entries) == 0 {
		return nil, domain.ErrEmptyEntry
	}

	now := uc.now()
	description := strings.TrimSpace(input.Description)
	result := &PurchaseEntryResult{Dropped: len(input.Lines) - len(entries)}
	err := uc.txRunner.Run(ctx, func(
		materialRepo repository.MaterialRepository,
		movementRepo repository.StockMovementRepository,
		documentRepo repository.StockDocumentRepository,
	) error {
		doc := &entity.StockDocument{
			ID:          uuid.New().String(),
			Scope:       input.Scope,
			Type:        input.DocumentType,
			Number:      strings.TrimSpace(input.DocumentNumber),
			IssueDate:   input.IssueDate,
			Description: description,
			FileRef:     strings.TrimSpace(input.FileRef),
			CreatedAt:   now,
			CreatedBy:   input.Actor.UserID,
		}
		if err := documentRepo.Create(ctx, doc); err != nil {
			return err
		}

		// bloqueio em ordem de ID
		ids := make([]string, 0, len(entries))
		seen := make(map[string]bool, len(entries))
		for _, e := range entries {
			if !seen[e.materialID] {
				seen[e.materialID] = true
				ids = append(ids, e.materialID)
			}
		}
		sort.Strings(ids)
		materials := make(map[string]*entity.Material, len(ids))
		for _, id := range ids {
			m, err := materialRepo.GetForUpdate(ctx, input.Scope, id)
			if err != nil {
				return err
			}
			if m != nil {
				materials[id] = m
			}
		}

		movements := make([]*entity.StockMovement, 0, len(entries))
		docID := doc.ID
		for _, e := range entries {
			m, ok := materials[e.materialID]
			if !ok {
				result.Dropped++
				continue
			}
			mov := &entity.StockMovement{
				ID:             uuid.New().String(),
				Scope:          input.Scope,
				MaterialID:     m.ID,
				Type:           entity.MovementEntry,
				BusinessReason: entity.ReasonPettyCashSupply,
				Quantity:       e.quantity,
				UnitValue:      e.unitValue,
				DocumentID:     &docID,
				UserID:         input.Actor.UserID,
				CreatedAt:      now,
				Note:           description,
			}
			if err := uc.apply(ctx, materialRepo, movementRepo, m, mov); err != nil {
				return err
			}
			movements = append(movements, mov)
		}
		if len(movements) == 0 {
			return domain.ErrEmptyEntry
		}
		result.Document = doc
		result.Movements = movements
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func knownDocumentType(t entity.DocumentType) bool {
	switch t {
	case entity.DocumentInvoice, entity.DocumentReceipt, entity.DocumentInternal, entity.DocumentOfficial, entity.DocumentOther:
		return true
	}
	return false
}
