package requisition

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/duarteol2000/sisreq/internal/domain"
	"github.com/duarteol2000/sisreq/internal/domain/entity"
	ledger "github.com/duarteol2000/sisreq/internal/domain/inventory"
	"github.com/duarteol2000/sisreq/internal/domain/repository"
	rules "github.com/duarteol2000/sisreq/internal/domain/requisition"
	"github.com/duarteol2000/sisreq/pkg/logger"
)

const (
	defaultListLimit = 50
	maxListLimit     = 200
)

// UseCase motor de requisições: criação a partir do carrinho, análise administrativa,
// confirmação de entrega (reconciliação com o saldo vivo) e encerramento.
type UseCase struct {
	txRunner        TxRunner
	unitRepo        repository.UnitRepository
	requisitionRepo repository.RequisitionRepository
	receiptRepo     repository.ReceiptRepository
	issuer          ReceiptIssuer
	log             *logger.Logger
	now             func() time.Time
}

// NewUseCase constrói o motor de requisições. requisitionRepo e receiptRepo atendem às leituras
// fora de transação; as escritas usam os repositórios entregues pelo txRunner.
func NewUseCase(
	txRunner TxRunner,
	unitRepo repository.UnitRepository,
	requisitionRepo repository.RequisitionRepository,
	receiptRepo repository.ReceiptRepository,
	log *logger.Logger,
) *UseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &UseCase{
		txRunner:        txRunner,
		unitRepo:        unitRepo,
		requisitionRepo: requisitionRepo,
		receiptRepo:     receiptRepo,
		log:             log,
		now:             time.Now,
	}
}

// WithClock troca a fonte de horário (numeração e carimbos de data).
func (uc *UseCase) WithClock(now func() time.Time) *UseCase {
	uc.now = now
	return uc
}

// CartLine linha bruta do carrinho, como chega do formulário.
type CartLine struct {
	MaterialID string
	Quantity   string
}

// CreateInput entrada da criação de uma requisição.
type CreateInput struct {
	Scope         entity.Scope
	Requester     entity.Actor
	SetorID       *string // vazio = setor do solicitante
	RequesterNote string
	Lines         []CartLine
}

type cartEntry struct {
	materialID string
	quantity   int
}

// parseCart descarta linhas vazias, com ID malformado ou quantidade não positiva.
func parseCart(lines []CartLine) []cartEntry {
	entries := make([]cartEntry, 0, len(lines))
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
		entries = append(entries, cartEntry{materialID: id.String(), quantity: n})
	}
	return entries
}

// Create cria a requisição em PENDENTE com um item por linha válida do carrinho.
// Materiais fora da unidade, inativos ou sem saldo são descartados em silêncio; se nada
// sobrar, falha com domain.ErrEmptyCart e nada é persistido.
func (uc *UseCase) Create(ctx context.Context, in CreateInput) (*entity.Requisition, error) {
	if !in.Scope.Valid() || in.Requester.UserID == "" {
		return nil, domain.ErrInvalidInput
	}
	entries := parseCart(in.Lines)
	if len(entries) == 0 {
		return nil, domain.ErrEmptyCart
	}

	unit, err := uc.unitRepo.GetUnit(ctx, in.Scope)
	if err != nil {
		return nil, fmt.Errorf("obter unidade: %w", err)
	}
	if unit == nil {
		return nil, domain.ErrNotFound
	}

	setorID := in.SetorID
	if setorID == nil {
		setorID = in.Requester.SetorID
	}
	now := uc.now()
	req := &entity.Requisition{
		ID:            uuid.New().String(),
		Scope:         in.Scope,
		Number:        rules.Number(*unit, in.Requester, now),
		RequesterID:   in.Requester.UserID,
		SetorID:       setorID,
		Status:        entity.StatusPending,
		RequesterNote: strings.TrimSpace(in.RequesterNote),
		CreatedAt:     now,
	}

	err = uc.txRunner.RunRequisition(ctx, func(
		materialRepo repository.MaterialRepository,
		requisitionRepo repository.RequisitionRepository,
		_ repository.ReceiptRepository,
	) error {
		ids := make([]string, 0, len(entries))
		for _, e := range entries {
			ids = append(ids, e.materialID)
		}
		materials, err := materialRepo.ListRequestable(ctx, in.Scope, ids)
		if err != nil {
			return err
		}
		byID := make(map[string]*entity.Material, len(materials))
		for _, m := range materials {
			byID[m.ID] = m
		}

		items := make([]entity.RequisitionItem, 0, len(entries))
		for _, e := range entries {
			m, ok := byID[e.materialID]
			if !ok {
				continue
			}
			items = append(items, entity.RequisitionItem{
				ID:                uuid.New().String(),
				RequisitionID:     req.ID,
				MaterialID:        m.ID,
				QuantityRequested: e.quantity,
				Material:          m,
			})
		}
		if len(items) == 0 {
			return domain.ErrEmptyCart
		}

		if err := requisitionRepo.Create(ctx, req); err != nil {
			return err
		}
		for i := range items {
			if err := requisitionRepo.AddItem(ctx, req.Scope, &items[i]); err != nil {
				return err
			}
		}
		req.Items = items
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.log.Info().
		Str("requisition_id", req.ID).
		Str("number", req.Number).
		Int("items", len(req.Items)).
		Msg("requisição criada")
	return req, nil
}

// AnalyzeInput decisões do administrador sobre os itens de uma requisição.
type AnalyzeInput struct {
	Scope         entity.Scope
	RequisitionID string
	Decisions     []rules.Decision
	AdminNote     string
	Approver      entity.Actor
}

// Analyze grava a quantidade liberada de cada item (limitada a [0, solicitado]) e deriva o
// status do conjunto completo de itens, exceto se a requisição já estiver ENTREGUE.
// Com a entrega confirmada as liberações ficam congeladas; só observação e aprovação mudam.
// Aprovador e data de aprovação são regravados a cada análise.
func (uc *UseCase) Analyze(ctx context.Context, in AnalyzeInput) (*entity.Requisition, error) {
	if in.RequisitionID == "" {
		return nil, domain.ErrInvalidInput
	}
	if !in.Approver.IsAdmin() {
		return nil, domain.ErrForbidden
	}

	decisions := make(map[string]rules.Decision, len(in.Decisions))
	for _, d := range in.Decisions {
		decisions[d.ItemID] = d
	}

	var result *entity.Requisition
	err := uc.txRunner.RunRequisition(ctx, func(
		_ repository.MaterialRepository,
		requisitionRepo repository.RequisitionRepository,
		_ repository.ReceiptRepository,
	) error {
		req, err := requisitionRepo.GetForUpdate(ctx, in.Scope, in.RequisitionID)
		if err != nil {
			return err
		}
		if req == nil {
			return domain.ErrNotFound
		}

		// após a entrega a liberação reflete o que saiu do estoque e não muda mais
		if !req.Delivered() {
			for i := range req.Items {
				item := &req.Items[i]
				d, ok := decisions[item.ID]
				if !ok {
					continue
				}
				released := rules.ReleasedQuantity(d, item.QuantityRequested)
				if err := requisitionRepo.UpdateItemReleased(ctx, item.ID, released); err != nil {
					return err
				}
				item.QuantityReleased = released
			}
		}

		now := uc.now()
		approver := in.Approver.UserID
		req.Status = rules.DeriveStatus(req.Status, req.Items)
		req.AdminNote = strings.TrimSpace(in.AdminNote)
		req.ApproverID = &approver
		req.ApprovedAt = &now
		if err := requisitionRepo.Update(ctx, req); err != nil {
			return err
		}
		result = req
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.log.Info().
		Str("requisition_id", result.ID).
		Str("status", string(result.Status)).
		Str("approver_id", in.Approver.UserID).
		Msg("requisição analisada")
	return result, nil
}

// ConfirmDelivery reconcilia as quantidades liberadas com o saldo vivo de cada material,
// baixa o estoque e emite o recibo. Se a entrega já foi confirmada, apenas garante o
// recibo: nenhum efeito de estoque é reaplicado e as datas não mudam.
//
// A requisição e cada material são bloqueados (SELECT FOR UPDATE, materiais em ordem de ID)
// durante a leitura-limite-escrita, de modo que entregas concorrentes não furam o piso zero.
func (uc *UseCase) ConfirmDelivery(ctx context.Context, scope entity.Scope, requisitionID string, actor entity.Actor) (*entity.Receipt, error) {
	if requisitionID == "" {
		return nil, domain.ErrInvalidInput
	}
	if !actor.IsAdmin() {
		return nil, domain.ErrForbidden
	}

	var receipt *entity.Receipt
	err := uc.txRunner.RunRequisition(ctx, func(
		materialRepo repository.MaterialRepository,
		requisitionRepo repository.RequisitionRepository,
		receiptRepo repository.ReceiptRepository,
	) error {
		req, err := requisitionRepo.GetForUpdate(ctx, scope, requisitionID)
		if err != nil {
			return err
		}
		if req == nil {
			return domain.ErrNotFound
		}

		now := uc.now()
		if req.Delivered() {
			receipt, err = uc.issuer.IssueOrGet(ctx, receiptRepo, req, actor, now)
			return err
		}

		order := make([]int, 0, len(req.Items))
		for i, it := range req.Items {
			if it.QuantityReleased > 0 {
				order = append(order, i)
			}
		}
		sort.SliceStable(order, func(a, b int) bool {
			return req.Items[order[a]].MaterialID < req.Items[order[b]].MaterialID
		})

		log := uc.log.Child("requisition_id", req.ID)
		for _, i := range order {
			item := &req.Items[i]
			material, err := materialRepo.GetForUpdate(ctx, scope, item.MaterialID)
			if err != nil {
				return err
			}
			if material == nil {
				return fmt.Errorf("material %s do item %s: %w", item.MaterialID, item.ID, domain.ErrScopeMismatch)
			}

			onHand := material.QuantityOnHand
			released := rules.ClampToStock(item.QuantityReleased, onHand)
			if released != item.QuantityReleased {
				if err := requisitionRepo.UpdateItemReleased(ctx, item.ID, released); err != nil {
					return err
				}
				log.Warn().
					Str("material_id", material.ID).
					Int("granted", item.QuantityReleased).
					Int("released", released).
					Int("on_hand", onHand).
					Msg("quantidade liberada ajustada ao saldo na entrega")
				item.QuantityReleased = released
			}
			if released == 0 {
				continue
			}

			ledger.DecrementForDelivery(material, released)
			if err := materialRepo.UpdateQuantity(ctx, material.ID, material.QuantityOnHand); err != nil {
				return err
			}
			log.Info().
				Str("material_id", material.ID).
				Int("released", released).
				Int("on_hand_before", onHand).
				Int("on_hand", material.QuantityOnHand).
				Msg("baixa de estoque por entrega")
		}

		req.DeliveredAt = &now
		if err := requisitionRepo.Update(ctx, req); err != nil {
			return err
		}
		receipt, err = uc.issuer.IssueOrGet(ctx, receiptRepo, req, actor, now)
		return err
	})
	if err != nil {
		return nil, err
	}
	return receipt, nil
}

// MarkDelivered encerra a requisição no status terminal ENTREGUE.
// Exige entrega já confirmada (domain.ErrConflict caso contrário); é idempotente.
func (uc *UseCase) MarkDelivered(ctx context.Context, scope entity.Scope, requisitionID string, actor entity.Actor) (*entity.Requisition, error) {
	if !actor.IsAdmin() {
		return nil, domain.ErrForbidden
	}
	var result *entity.Requisition
	err := uc.txRunner.RunRequisition(ctx, func(
		_ repository.MaterialRepository,
		requisitionRepo repository.RequisitionRepository,
		_ repository.ReceiptRepository,
	) error {
		req, err := requisitionRepo.GetForUpdate(ctx, scope, requisitionID)
		if err != nil {
			return err
		}
		if req == nil {
			return domain.ErrNotFound
		}
		if !req.Delivered() {
			return fmt.Errorf("%w: entrega ainda não confirmada", domain.ErrConflict)
		}
		if req.Status != entity.StatusDelivered {
			req.Status = entity.StatusDelivered
			if err := requisitionRepo.Update(ctx, req); err != nil {
				return err
			}
		}
		result = req
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// Get devolve a requisição com itens. domain.ErrNotFound se não existir na unidade.
func (uc *UseCase) Get(ctx context.Context, scope entity.Scope, id string) (*entity.Requisition, error) {
	req, err := uc.requisitionRepo.GetByID(ctx, scope, id)
	if err != nil {
		return nil, err
	}
	if req == nil {
		return nil, domain.ErrNotFound
	}
	return req, nil
}

// List lista as requisições da unidade. Funcionários só veem as próprias; status
// desconhecido é ignorado.
func (uc *UseCase) List(ctx context.Context, scope entity.Scope, f repository.RequisitionFilter, actor entity.Actor) ([]*entity.Requisition, error) {
	if !f.Status.Known() {
		f.Status = ""
	}
	if !actor.IsAdmin() {
		f.RequesterID = actor.UserID
	}
	f.Search = strings.TrimSpace(f.Search)
	if f.Limit <= 0 {
		f.Limit = defaultListLimit
	}
	if f.Limit > maxListLimit {
		f.Limit = maxListLimit
	}
	if f.Offset < 0 {
		f.Offset = 0
	}
	return uc.requisitionRepo.List(ctx, scope, f)
}

// DeliveryReport relatório de entrega de material de uma requisição.
type DeliveryReport struct {
	Requisition   *entity.Requisition
	Receipt       *entity.Receipt // nil enquanto a entrega não for confirmada
	TotalConsumed int
	PrintedAt     time.Time
}

// DeliveryReport monta o relatório de entrega (consumo efetivo = soma das liberações).
func (uc *UseCase) DeliveryReport(ctx context.Context, scope entity.Scope, id string) (*DeliveryReport, error) {
	req, err := uc.Get(ctx, scope, id)
	if err != nil {
		return nil, err
	}
	receipt, err := uc.receiptRepo.GetByRequisition(ctx, scope, req.ID)
	if err != nil {
		return nil, err
	}
	return &DeliveryReport{
		Requisition:   req,
		Receipt:       receipt,
		TotalConsumed: req.TotalReleased(),
		PrintedAt:     uc.now(),
	}, nil
}
