package memory

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/duarteol2000/sisreq/internal/domain"
	"github.com/duarteol2000/sisreq/internal/domain/entity"
	"github.com/duarteol2000/sisreq/internal/domain/repository"
)

var _ repository.MaterialRepository = (*MaterialRepo)(nil)

// MaterialRepo implementação em memória de MaterialRepository.
type MaterialRepo struct {
	base
}

// Create grava um material; (unidade, código) é único.
func (r *MaterialRepo) Create(_ context.Context, m *entity.Material) error {
	if m.QuantityOnHand < 0 {
		return fmt.Errorf("material %s: %w", m.Code, domain.ErrInvalidInput)
	}
	return r.with(func(st *state) error {
		for _, other := range st.materials {
			if other.Scope == m.Scope && other.Code == m.Code {
				return domain.ErrDuplicate
			}
		}
		if m.CreatedAt.IsZero() {
			m.CreatedAt = time.Now()
		}
		if m.UpdatedAt.IsZero() {
			m.UpdatedAt = m.CreatedAt
		}
		st.materials[m.ID] = *m
		return nil
	})
}

func (r *MaterialRepo) get(scope entity.Scope, id string) (*entity.Material, error) {
	var out *entity.Material
	err := r.with(func(st *state) error {
		if m, ok := st.materials[id]; ok && m.Scope == scope {
			out = &m
		}
		return nil
	})
	return out, err
}

// GetByID devolve (nil, nil) se o material não existe na unidade.
func (r *MaterialRepo) GetByID(_ context.Context, scope entity.Scope, id string) (*entity.Material, error) {
	return r.get(scope, id)
}

// GetForUpdate equivale a GetByID: a transação já serializa o acesso.
func (r *MaterialRepo) GetForUpdate(_ context.Context, scope entity.Scope, id string) (*entity.Material, error) {
	return r.get(scope, id)
}

func (r *MaterialRepo) list(scope entity.Scope, keep func(m entity.Material) bool) ([]*entity.Material, error) {
	var out []*entity.Material
	err := r.with(func(st *state) error {
		for _, m := range st.materials {
			if m.Scope == scope && keep(m) {
				out = append(out, &m)
			}
		}
		return nil
	})
	sort.Slice(out, func(i, j int) bool {
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return out[i].Code < out[j].Code
	})
	return out, err
}

func idSet(ids []string) map[string]bool {
	set := make(map[string]bool, len(ids))
	for _, id := range ids {
		set[id] = true
	}
	return set
}

// ListByIDs devolve os materiais da unidade cujos IDs estão em ids.
func (r *MaterialRepo) ListByIDs(_ context.Context, scope entity.Scope, ids []string) ([]*entity.Material, error) {
	set := idSet(ids)
	return r.list(scope, func(m entity.Material) bool { return set[m.ID] })
}

// ListRequestable devolve os materiais ativos e com saldo; ids vazio = todos.
func (r *MaterialRepo) ListRequestable(_ context.Context, scope entity.Scope, ids []string) ([]*entity.Material, error) {
	set := idSet(ids)
	return r.list(scope, func(m entity.Material) bool {
		return m.Requestable() && (len(ids) == 0 || set[m.ID])
	})
}

// ListByScope lista os materiais da unidade ordenados por nome.
func (r *MaterialRepo) ListByScope(_ context.Context, scope entity.Scope, onlyActive bool) ([]*entity.Material, error) {
	return r.list(scope, func(m entity.Material) bool { return !onlyActive || m.Active })
}

// UpdateQuantity grava o novo saldo; saldo negativo viola a restrição do cadastro.
func (r *MaterialRepo) UpdateQuantity(_ context.Context, id string, quantityOnHand int) error {
	if quantityOnHand < 0 {
		return fmt.Errorf("saldo negativo para o material %s: %w", id, domain.ErrInvalidInput)
	}
	return r.with(func(st *state) error {
		m, ok := st.materials[id]
		if !ok {
			return domain.ErrNotFound
		}
		m.QuantityOnHand = quantityOnHand
		m.UpdatedAt = time.Now()
		st.materials[id] = m
		return nil
	})
}
