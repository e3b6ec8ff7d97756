package repository

import (
	"context"
	"time"

	"github.com/duarteol2000/sisreq/internal/domain/entity"
)

// RequisitionFilter filtros da listagem de requisições.
type RequisitionFilter struct {
	Status      entity.RequisitionStatus // vazio = todos
	Search      string                   // trecho do número da requisição
	From, To    *time.Time               // data de criação (inclusive)
	RequesterID string                   // restringe às requisições de um solicitante
	Limit       int
	Offset      int
}

// RequisitionRepository porta de persistência das requisições e seus itens.
// GetByID e GetForUpdate devolvem a requisição com os itens (e seus materiais) carregados.
type RequisitionRepository interface {
	Create(ctx context.Context, r *entity.Requisition) error
	// AddItem falha com domain.ErrScopeMismatch se o material não pertence à unidade da requisição.
	AddItem(ctx context.Context, scope entity.Scope, item *entity.RequisitionItem) error
	GetByID(ctx context.Context, scope entity.Scope, id string) (*entity.Requisition, error)
	GetForUpdate(ctx context.Context, scope entity.Scope, id string) (*entity.Requisition, error)
	Update(ctx context.Context, r *entity.Requisition) error
	UpdateItemReleased(ctx context.Context, itemID string, released int) error
	List(ctx context.Context, scope entity.Scope, f RequisitionFilter) ([]*entity.Requisition, error)
}
