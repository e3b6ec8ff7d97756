package inventory_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/duarteol2000/sisreq/internal/application/inventory"
	"github.com/duarteol2000/sisreq/internal/domain"
	"github.com/duarteol2000/sisreq/internal/domain/entity"
	"github.com/duarteol2000/sisreq/internal/domain/repository"
	"github.com/duarteol2000/sisreq/internal/infrastructure/memory"
	"github.com/duarteol2000/sisreq/pkg/logger"
)

var (
	scope    = entity.Scope{PrefeituraID: "pref-1", SecretariaID: "sec-1"}
	other    = entity.Scope{PrefeituraID: "pref-1", SecretariaID: "sec-2"}
	admin    = entity.Actor{UserID: "admin-1", Role: entity.RoleAdmin}
	employee = entity.Actor{UserID: "func-1", Role: entity.RoleEmployee}
)

func newMaterial(t *testing.T, store *memory.Store, s entity.Scope, code string, onHand, minimum int) *entity.Material {
	t.Helper()
	m := &entity.Material{
		ID:              uuid.New().String(),
		Scope:           s,
		Code:            code,
		Name:            "Material " + code,
		Unit:            entity.UnitPiece,
		QuantityOnHand:  onHand,
		MinimumQuantity: minimum,
		Active:          true,
	}
	require.NoError(t, store.Materials().Create(context.Background(), m))
	return m
}

func onHand(t *testing.T, store *memory.Store, id string) int {
	t.Helper()
	m, err := store.Materials().GetByID(context.Background(), scope, id)
	require.NoError(t, err)
	require.NotNil(t, m)
	return m.QuantityOnHand
}

func movements(t *testing.T, store *memory.Store) []*entity.StockMovement {
	t.Helper()
	list, err := store.Movements().List(context.Background(), scope, repository.MovementFilter{})
	require.NoError(t, err)
	return list
}

func TestRegisterMovement_QuantidadeNaoPositiva(t *testing.T) {
	store := memory.NewStore()
	uc := inventory.NewRegisterMovementUseCase(store, logger.Nop())
	m := newMaterial(t, store, scope, "M1", 10, 0)

	for _, qty := range []int{0, -3} {
		_, err := uc.RegisterMovement(context.Background(), inventory.MovementInputDTO{
			Scope: scope, Actor: admin, MaterialID: m.ID,
			Type: entity.MovementPositiveAdjustment, Quantity: qty,
		})
		assert.ErrorIs(t, err, domain.ErrNonPositiveQuantity)
	}
	assert.Empty(t, movements(t, store))
	assert.Equal(t, 10, onHand(t, store, m.ID))
}

func TestRegisterMovement_AplicaESalvaJuntos(t *testing.T) {
	store := memory.NewStore()
	uc := inventory.NewRegisterMovementUseCase(store, logger.Nop())
	m := newMaterial(t, store, scope, "M1", 10, 0)
	ctx := context.Background()

	mov, err := uc.RegisterMovement(ctx, inventory.MovementInputDTO{
		Scope: scope, Actor: admin, MaterialID: m.ID,
		Type: entity.MovementPositiveAdjustment, Quantity: 5, Note: " inventário ",
	})
	require.NoError(t, err)
	assert.Equal(t, entity.ReasonAdjustment, mov.BusinessReason, "motivo padrão")
	assert.Equal(t, "inventário", mov.Note)
	assert.Equal(t, 15, onHand(t, store, m.ID))

	_, err = uc.RegisterMovement(ctx, inventory.MovementInputDTO{
		Scope: scope, Actor: admin, MaterialID: m.ID,
		Type: entity.MovementNegativeAdjustment, BusinessReason: entity.ReasonLoan,
		ExternalEntity: "GABINETE_PREFEITO", Quantity: 15,
	})
	require.NoError(t, err)
	assert.Equal(t, 0, onHand(t, store, m.ID))
	assert.Len(t, movements(t, store), 2)
}

func TestRegisterMovement_RejeitaSaldoNegativo(t *testing.T) {
	store := memory.NewStore()
	uc := inventory.NewRegisterMovementUseCase(store, logger.Nop())
	m := newMaterial(t, store, scope, "M1", 20, 0)

	_, err := uc.RegisterMovement(context.Background(), inventory.MovementInputDTO{
		Scope: scope, Actor: admin, MaterialID: m.ID,
		Type: entity.MovementNegativeAdjustment, Quantity: 50,
	})
	assert.ErrorIs(t, err, domain.ErrNegativeResultingStock)
	assert.Empty(t, movements(t, store))
	assert.Equal(t, 20, onHand(t, store, m.ID))
}

func TestRegisterMovement_Validacoes(t *testing.T) {
	store := memory.NewStore()
	uc := inventory.NewRegisterMovementUseCase(store, logger.Nop())
	m := newMaterial(t, store, scope, "M1", 20, 0)
	foreign := newMaterial(t, store, other, "M2", 20, 0)
	missingDoc := uuid.New().String()

	cases := []struct {
		name string
		in   inventory.MovementInputDTO
		want error
	}{
		{"funcionário não ajusta", inventory.MovementInputDTO{Actor: employee, MaterialID: m.ID, Type: entity.MovementEntry, Quantity: 1}, domain.ErrForbidden},
		{"tipo desconhecido", inventory.MovementInputDTO{Actor: admin, MaterialID: m.ID, Type: "SAIDA", Quantity: 1}, domain.ErrInvalidInput},
		{"motivo desconhecido", inventory.MovementInputDTO{Actor: admin, MaterialID: m.ID, Type: entity.MovementEntry, BusinessReason: "DOACAO", Quantity: 1}, domain.ErrInvalidInput},
		{"órgão desconhecido", inventory.MovementInputDTO{Actor: admin, MaterialID: m.ID, Type: entity.MovementEntry, ExternalEntity: "XYZ", Quantity: 1}, domain.ErrInvalidInput},
		{"material de outra unidade", inventory.MovementInputDTO{Actor: admin, MaterialID: foreign.ID, Type: entity.MovementEntry, Quantity: 1}, domain.ErrNotFound},
		{"documento inexistente", inventory.MovementInputDTO{Actor: admin, MaterialID: m.ID, Type: entity.MovementEntry, DocumentID: &missingDoc, Quantity: 1}, domain.ErrNotFound},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			tc.in.Scope = scope
			_, err := uc.RegisterMovement(context.Background(), tc.in)
			assert.ErrorIs(t, err, tc.want)
		})
	}
	assert.Empty(t, movements(t, store))
	assert.Equal(t, 20, onHand(t, store, m.ID))
}

func TestPurchaseEntry_DescartaLinhasInvalidas(t *testing.T) {
	store := memory.NewStore()
	uc := inventory.NewRegisterMovementUseCase(store, logger.Nop())
	a := newMaterial(t, store, scope, "A", 2, 0)
	b := newMaterial(t, store, scope, "B", 0, 0)
	foreign := newMaterial(t, store, other, "C", 0, 0)
	ctx := context.Background()

	res, err := uc.PurchaseEntry(ctx, inventory.PurchaseEntryInput{
		Scope:          scope,
		Actor:          admin,
		DocumentType:   entity.DocumentInvoice,
		DocumentNumber: "NF-1234",
		Description:    "Compra de expediente",
		Lines: []inventory.PurchaseLine{
			{MaterialID: a.ID, Quantity: "10", UnitValue: "12,50"},
			{MaterialID: b.ID, Quantity: "3", UnitValue: "abc"},
			{MaterialID: b.ID, Quantity: "0"},
			{MaterialID: "nao-e-uuid", Quantity: "4"},
			{MaterialID: foreign.ID, Quantity: "4"},
			{},
		},
	})
	require.NoError(t, err)
	require.Len(t, res.Movements, 2)
	assert.Equal(t, 4, res.Dropped)

	assert.Equal(t, 12, onHand(t, store, a.ID))
	assert.Equal(t, 3, onHand(t, store, b.ID))

	first := res.Movements[0]
	assert.Equal(t, entity.MovementEntry, first.Type)
	assert.Equal(t, entity.ReasonPettyCashSupply, first.BusinessReason)
	assert.Equal(t, "Compra de expediente", first.Note)
	require.NotNil(t, first.UnitValue)
	assert.True(t, decimal.RequireFromString("12.50").Equal(*first.UnitValue))
	require.NotNil(t, first.DocumentID)
	assert.Equal(t, res.Document.ID, *first.DocumentID)
	assert.Nil(t, res.Movements[1].UnitValue, "valor ilegível vira ausente")

	doc, err := store.Documents().GetByID(ctx, scope, res.Document.ID)
	require.NoError(t, err)
	require.NotNil(t, doc)
	assert.Equal(t, "NF-1234", doc.Number)
}

func TestPurchaseEntry_SemLinhasValidas(t *testing.T) {
	store := memory.NewStore()
	uc := inventory.NewRegisterMovementUseCase(store, logger.Nop())
	foreign := newMaterial(t, store, other, "C", 0, 0)
	ctx := context.Background()

	_, err := uc.PurchaseEntry(ctx, inventory.PurchaseEntryInput{
		Scope: scope, Actor: admin, DocumentType: entity.DocumentReceipt,
		Lines: []inventory.PurchaseLine{{MaterialID: "x", Quantity: "1"}},
	})
	assert.ErrorIs(t, err, domain.ErrEmptyEntry)

	// linhas bem formadas, mas nenhum material da unidade: o documento é desfeito
	_, err = uc.PurchaseEntry(ctx, inventory.PurchaseEntryInput{
		Scope: scope, Actor: admin, DocumentType: entity.DocumentReceipt,
		Lines: []inventory.PurchaseLine{{MaterialID: foreign.ID, Quantity: "1"}},
	})
	assert.ErrorIs(t, err, domain.ErrEmptyEntry)
	assert.Empty(t, movements(t, store))

	_, err = uc.PurchaseEntry(ctx, inventory.PurchaseEntryInput{
		Scope: scope, Actor: admin, DocumentType: "BOLETO",
		Lines: []inventory.PurchaseLine{{MaterialID: foreign.ID, Quantity: "1"}},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestReplenishment_PrioridadePorDeficitRelativo(t *testing.T) {
	store := memory.NewStore()
	uc := inventory.NewReplenishmentUseCase(store.Materials())
	newMaterial(t, store, scope, "OK", 50, 10)
	half := newMaterial(t, store, scope, "HALF", 5, 10)
	empty := newMaterial(t, store, scope, "EMPTY", 0, 3)
	newMaterial(t, store, other, "FOREIGN", 0, 10)

	list, err := uc.GenerateReplenishmentList(context.Background(), scope)
	require.NoError(t, err)
	require.Len(t, list, 2)

	assert.Equal(t, empty.ID, list[0].MaterialID)
	assert.Equal(t, 1, list[0].Priority)
	assert.Equal(t, 5, list[0].IdealStock)
	assert.Equal(t, 5, list[0].SuggestedOrderQty)

	assert.Equal(t, half.ID, list[1].MaterialID)
	assert.Equal(t, 15, list[1].IdealStock)
	assert.Equal(t, 10, list[1].SuggestedOrderQty)
}

func TestIdealStock(t *testing.T) {
	assert.Equal(t, 0, inventory.IdealStock(0))
	assert.Equal(t, 2, inventory.IdealStock(1))
	assert.Equal(t, 5, inventory.IdealStock(3))
	assert.Equal(t, 15, inventory.IdealStock(10))
}
