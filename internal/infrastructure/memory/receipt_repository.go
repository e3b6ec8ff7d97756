package memory

import (
	"context"
	"fmt"

	"github.com/duarteol2000/sisreq/internal/domain"
	"github.com/duarteol2000/sisreq/internal/domain/entity"
	"github.com/duarteol2000/sisreq/internal/domain/repository"
)

var _ repository.ReceiptRepository = (*ReceiptRepo)(nil)

// ReceiptRepo implementação em memória de ReceiptRepository.
type ReceiptRepo struct {
	base
}

// GetOrCreate devolve o recibo existente da requisição ou grava rec.
func (r *ReceiptRepo) GetOrCreate(_ context.Context, rec *entity.Receipt) (*entity.Receipt, bool, error) {
	var (
		out     *entity.Receipt
		created bool
	)
	err := r.with(func(st *state) error {
		for _, existing := range st.receipts {
			if existing.RequisitionID == rec.RequisitionID {
				out = &existing
				return nil
			}
		}
		for _, existing := range st.receipts {
			if existing.Number == rec.Number {
				return fmt.Errorf("recibo %s: %w", rec.Number, domain.ErrDuplicate)
			}
		}
		st.receipts[rec.ID] = *rec
		stored := *rec
		out, created = &stored, true
		return nil
	})
	if err != nil {
		return nil, false, err
	}
	return out, created, nil
}

// GetByID devolve (nil, nil) se o recibo não existe na unidade.
func (r *ReceiptRepo) GetByID(_ context.Context, scope entity.Scope, id string) (*entity.Receipt, error) {
	var out *entity.Receipt
	err := r.with(func(st *state) error {
		if rec, ok := st.receipts[id]; ok && rec.Scope == scope {
			out = &rec
		}
		return nil
	})
	return out, err
}

// GetByRequisition devolve o recibo da requisição, ou (nil, nil).
func (r *ReceiptRepo) GetByRequisition(_ context.Context, scope entity.Scope, requisitionID string) (*entity.Receipt, error) {
	var out *entity.Receipt
	err := r.with(func(st *state) error {
		for _, rec := range st.receipts {
			if rec.RequisitionID == requisitionID && rec.Scope == scope {
				out = &rec
				return nil
			}
		}
		return nil
	})
	return out, err
}
