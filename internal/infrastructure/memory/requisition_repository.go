package memory

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/duarteol2000/sisreq/internal/domain"
	"github.com/duarteol2000/sisreq/internal/domain/entity"
	"github.com/duarteol2000/sisreq/internal/domain/repository"
)

var _ repository.RequisitionRepository = (*RequisitionRepo)(nil)

// RequisitionRepo implementação em memória de RequisitionRepository.
type RequisitionRepo struct {
	base
}

// Create grava o cabeçalho da requisição; o número é único.
func (r *RequisitionRepo) Create(_ context.Context, req *entity.Requisition) error {
	return r.with(func(st *state) error {
		if _, ok := st.requisitions[req.ID]; ok {
			return domain.ErrDuplicate
		}
		for _, other := range st.requisitions {
			if other.Number == req.Number {
				return fmt.Errorf("número %s: %w", req.Number, domain.ErrDuplicate)
			}
		}
		head := *req
		head.Items = nil
		st.requisitions[req.ID] = head
		return nil
	})
}

// AddItem grava um item; o material precisa pertencer à unidade da requisição.
func (r *RequisitionRepo) AddItem(_ context.Context, scope entity.Scope, item *entity.RequisitionItem) error {
	if item.QuantityReleased < 0 || item.QuantityReleased > item.QuantityRequested {
		return fmt.Errorf("item %s: %w", item.ID, domain.ErrInvalidInput)
	}
	return r.with(func(st *state) error {
		req, ok := st.requisitions[item.RequisitionID]
		if !ok || req.Scope != scope {
			return domain.ErrNotFound
		}
		m, ok := st.materials[item.MaterialID]
		if !ok || m.Scope != req.Scope {
			return domain.ErrScopeMismatch
		}
		stored := *item
		stored.Material = nil
		st.items = append(st.items, stored)
		return nil
	})
}

func (r *RequisitionRepo) load(st *state, req entity.Requisition) *entity.Requisition {
	req.Items = nil
	for _, it := range st.items {
		if it.RequisitionID != req.ID {
			continue
		}
		if m, ok := st.materials[it.MaterialID]; ok {
			it.Material = &m
		}
		req.Items = append(req.Items, it)
	}
	return &req
}

// GetByID devolve a requisição com itens, ou (nil, nil) se não existir na unidade.
func (r *RequisitionRepo) GetByID(_ context.Context, scope entity.Scope, id string) (*entity.Requisition, error) {
	var out *entity.Requisition
	err := r.with(func(st *state) error {
		if req, ok := st.requisitions[id]; ok && req.Scope == scope {
			out = r.load(st, req)
		}
		return nil
	})
	return out, err
}

// GetForUpdate equivale a GetByID: a transação já serializa o acesso.
func (r *RequisitionRepo) GetForUpdate(ctx context.Context, scope entity.Scope, id string) (*entity.Requisition, error) {
	return r.GetByID(ctx, scope, id)
}

// Update grava os campos mutáveis do cabeçalho.
func (r *RequisitionRepo) Update(_ context.Context, req *entity.Requisition) error {
	return r.with(func(st *state) error {
		cur, ok := st.requisitions[req.ID]
		if !ok {
			return domain.ErrNotFound
		}
		cur.Status = req.Status
		cur.AdminNote = req.AdminNote
		cur.ApproverID = req.ApproverID
		cur.ApprovedAt = req.ApprovedAt
		cur.DeliveredAt = req.DeliveredAt
		st.requisitions[req.ID] = cur
		return nil
	})
}

// UpdateItemReleased grava a quantidade liberada, respeitando 0 <= liberado <= solicitado.
func (r *RequisitionRepo) UpdateItemReleased(_ context.Context, itemID string, released int) error {
	return r.with(func(st *state) error {
		for i := range st.items {
			if st.items[i].ID != itemID {
				continue
			}
			if released < 0 || released > st.items[i].QuantityRequested {
				return fmt.Errorf("item %s: %w", itemID, domain.ErrInvalidInput)
			}
			st.items[i].QuantityReleased = released
			return nil
		}
		return domain.ErrNotFound
	})
}

// List lista as requisições da unidade, das mais recentes às mais antigas.
func (r *RequisitionRepo) List(_ context.Context, scope entity.Scope, f repository.RequisitionFilter) ([]*entity.Requisition, error) {
	var out []*entity.Requisition
	err := r.with(func(st *state) error {
		for _, req := range st.requisitions {
			if req.Scope != scope || !matches(req, f) {
				continue
			}
			out = append(out, r.load(st, req))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].Number > out[j].Number
	})
	return page(out, f.Limit, f.Offset), nil
}

func matches(req entity.Requisition, f repository.RequisitionFilter) bool {
	if f.Status != "" && req.Status != f.Status {
		return false
	}
	if f.RequesterID != "" && req.RequesterID != f.RequesterID {
		return false
	}
	if f.Search != "" && !strings.Contains(strings.ToLower(req.Number), strings.ToLower(f.Search)) {
		return false
	}
	if f.From != nil && req.CreatedAt.Before(*f.From) {
		return false
	}
	if f.To != nil && req.CreatedAt.After(*f.To) {
		return false
	}
	return true
}

func page[T any](list []T, limit, offset int) []T {
	if offset > len(list) {
		return []T{}
	}
	list = list[offset:]
	if limit > 0 && limit < len(list) {
		list = list[:limit]
	}
	return list
}
