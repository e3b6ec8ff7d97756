package memory

import (
	"context"
	"sort"

	"github.com/duarteol2000/sisreq/internal/domain"
	"github.com/duarteol2000/sisreq/internal/domain/entity"
	"github.com/duarteol2000/sisreq/internal/domain/repository"
)

var (
	_ repository.StockMovementRepository = (*MovementRepo)(nil)
	_ repository.StockDocumentRepository = (*DocumentRepo)(nil)
	_ repository.UnitRepository          = (*UnitRepo)(nil)
)

// MovementRepo implementação em memória de StockMovementRepository (somente inserção).
type MovementRepo struct {
	base
}

// Create acrescenta o movimento à trilha.
func (r *MovementRepo) Create(_ context.Context, m *entity.StockMovement) error {
	if m.Quantity <= 0 {
		return domain.ErrNonPositiveQuantity
	}
	return r.with(func(st *state) error {
		if _, ok := st.materials[m.MaterialID]; !ok {
			return domain.ErrNotFound
		}
		st.movements = append(st.movements, *m)
		return nil
	})
}

// List devolve os movimentos da unidade, do mais recente ao mais antigo.
func (r *MovementRepo) List(_ context.Context, scope entity.Scope, f repository.MovementFilter) ([]*entity.StockMovement, error) {
	var out []*entity.StockMovement
	err := r.with(func(st *state) error {
		for i := len(st.movements) - 1; i >= 0; i-- {
			m := st.movements[i]
			if m.Scope != scope {
				continue
			}
			if f.MaterialID != "" && m.MaterialID != f.MaterialID {
				continue
			}
			if f.From != nil && m.CreatedAt.Before(*f.From) {
				continue
			}
			if f.To != nil && m.CreatedAt.After(*f.To) {
				continue
			}
			out = append(out, &m)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return page(out, f.Limit, f.Offset), nil
}

// DocumentRepo implementação em memória de StockDocumentRepository.
type DocumentRepo struct {
	base
}

// Create grava o documento de suporte.
func (r *DocumentRepo) Create(_ context.Context, d *entity.StockDocument) error {
	return r.with(func(st *state) error {
		if _, ok := st.documents[d.ID]; ok {
			return domain.ErrDuplicate
		}
		st.documents[d.ID] = *d
		return nil
	})
}

// GetByID devolve (nil, nil) se o documento não existe na unidade.
func (r *DocumentRepo) GetByID(_ context.Context, scope entity.Scope, id string) (*entity.StockDocument, error) {
	var out *entity.StockDocument
	err := r.with(func(st *state) error {
		if d, ok := st.documents[id]; ok && d.Scope == scope {
			out = &d
		}
		return nil
	})
	return out, err
}

// UnitRepo leitura em memória dos cadastros de unidade.
type UnitRepo struct {
	base
}

// GetUnit devolve (nil, nil) se a unidade não foi cadastrada.
func (r *UnitRepo) GetUnit(_ context.Context, scope entity.Scope) (*entity.Unit, error) {
	var out *entity.Unit
	err := r.with(func(st *state) error {
		if u, ok := st.units[scope]; ok {
			out = &u
		}
		return nil
	})
	return out, err
}
