// Package memory implementa os repositórios e os executores de transação em memória.
// Serve aos testes e ao modo STORAGE_DRIVER=memory; os dados somem ao reiniciar.
//
// Uma transação segura o mutex do Store do início ao fim e restaura um snapshot do
// estado se fn falhar, o que dá atomicidade e serialização total. Repositórios obtidos
// fora de transação não podem ser chamados de dentro de fn.
package memory

import (
	"context"
	"sync"

	"github.com/duarteol2000/sisreq/internal/application/inventory"
	"github.com/duarteol2000/sisreq/internal/application/requisition"
	"github.com/duarteol2000/sisreq/internal/domain/entity"
	"github.com/duarteol2000/sisreq/internal/domain/repository"
)

var (
	_ requisition.TxRunner = (*Store)(nil)
	_ inventory.TxRunner   = (*Store)(nil)
)

type state struct {
	units        map[entity.Scope]entity.Unit
	materials    map[string]entity.Material
	requisitions map[string]entity.Requisition // sem itens
	items        []entity.RequisitionItem      // ordem de inserção
	receipts     map[string]entity.Receipt
	documents    map[string]entity.StockDocument
	movements    []entity.StockMovement // ordem de inserção
}

func newState() *state {
	return &state{
		units:        make(map[entity.Scope]entity.Unit),
		materials:    make(map[string]entity.Material),
		requisitions: make(map[string]entity.Requisition),
		receipts:     make(map[string]entity.Receipt),
		documents:    make(map[string]entity.StockDocument),
	}
}

func (s *state) clone() *state {
	c := newState()
	for k, v := range s.units {
		c.units[k] = v
	}
	for k, v := range s.materials {
		c.materials[k] = v
	}
	for k, v := range s.requisitions {
		c.requisitions[k] = v
	}
	for k, v := range s.receipts {
		c.receipts[k] = v
	}
	for k, v := range s.documents {
		c.documents[k] = v
	}
	c.items = append([]entity.RequisitionItem(nil), s.items...)
	c.movements = append([]entity.StockMovement(nil), s.movements...)
	return c
}

// Store estado compartilhado de todos os repositórios em memória.
type Store struct {
	mu   sync.Mutex
	data *state
}

// NewStore cria um Store vazio.
func NewStore() *Store {
	return &Store{data: newState()}
}

// PutUnit grava (ou substitui) o cadastro de uma unidade.
func (s *Store) PutUnit(u entity.Unit) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data.units[u.Scope] = u
}

// base dá acesso ao estado com ou sem o mutex, conforme o repositório esteja preso a uma transação.
type base struct {
	store *Store
	tx    bool
}

func (b base) with(fn func(st *state) error) error {
	if !b.tx {
		b.store.mu.Lock()
		defer b.store.mu.Unlock()
	}
	return fn(b.store.data)
}

func (s *Store) run(fn func(b base) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	snapshot := s.data.clone()
	if err := fn(base{store: s, tx: true}); err != nil {
		s.data = snapshot
		return err
	}
	return nil
}

// Materials repositório de materiais fora de transação.
func (s *Store) Materials() *MaterialRepo { return &MaterialRepo{base{store: s}} }

// Requisitions repositório de requisições fora de transação.
func (s *Store) Requisitions() *RequisitionRepo { return &RequisitionRepo{base{store: s}} }

// Receipts repositório de recibos fora de transação.
func (s *Store) Receipts() *ReceiptRepo { return &ReceiptRepo{base{store: s}} }

// Movements repositório de movimentos fora de transação.
func (s *Store) Movements() *MovementRepo { return &MovementRepo{base{store: s}} }

// Documents repositório de documentos fora de transação.
func (s *Store) Documents() *DocumentRepo { return &DocumentRepo{base{store: s}} }

// Units repositório de unidades.
func (s *Store) Units() *UnitRepo { return &UnitRepo{base{store: s}} }

// RunRequisition executa fn numa transação com os repositórios do motor de requisições.
func (s *Store) RunRequisition(ctx context.Context, fn func(
	materialRepo repository.MaterialRepository,
	requisitionRepo repository.RequisitionRepository,
	receiptRepo repository.ReceiptRepository,
) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return s.run(func(b base) error {
		return fn(&MaterialRepo{b}, &RequisitionRepo{b}, &ReceiptRepo{b})
	})
}

// Run executa fn numa transação com os repositórios do livro de estoque.
func (s *Store) Run(ctx context.Context, fn func(
	materialRepo repository.MaterialRepository,
	movementRepo repository.StockMovementRepository,
	documentRepo repository.StockDocumentRepository,
) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return s.run(func(b base) error {
		return fn(&MaterialRepo{b}, &MovementRepo{b}, &DocumentRepo{b})
	})
}
