package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/duarteol2000/sisreq/internal/application/inventory"
	"github.com/duarteol2000/sisreq/internal/application/requisition"
	"github.com/duarteol2000/sisreq/internal/domain/repository"
)

// Garante que TxRunner implementa inventory.TxRunner e requisition.TxRunner.
var (
	_ inventory.TxRunner   = (*TxRunner)(nil)
	_ requisition.TxRunner = (*TxRunner)(nil)
)

// TxRunner executa callbacks dentro de uma transação PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner constrói o runner com o pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// inTx inicia uma transação, executa fn e faz Commit ou Rollback.
func (r *TxRunner) inTx(ctx context.Context, fn func(tx pgx.Tx) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(tx); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// Run executa fn com os repositórios do livro de estoque presos à transação.
func (r *TxRunner) Run(ctx context.Context, fn func(
	materialRepo repository.MaterialRepository,
	movementRepo repository.StockMovementRepository,
	documentRepo repository.StockDocumentRepository,
) error) error {
	return r.inTx(ctx, func(tx pgx.Tx) error {
		return fn(NewMaterialRepository(tx), NewStockMovementRepository(tx), NewStockDocumentRepository(tx))
	})
}

// RunRequisition executa fn com os repositórios do motor de requisições presos à transação.
func (r *TxRunner) RunRequisition(ctx context.Context, fn func(
	materialRepo repository.MaterialRepository,
	requisitionRepo repository.RequisitionRepository,
	receiptRepo repository.ReceiptRepository,
) error) error {
	return r.inTx(ctx, func(tx pgx.Tx) error {
		return fn(NewMaterialRepository(tx), NewRequisitionRepository(tx), NewReceiptRepository(tx))
	})
}
