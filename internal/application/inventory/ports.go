package inventory

import (
	"context"
	"time"

	"github.com/duarteol2000/sisreq/internal/domain/entity"
	"github.com/duarteol2000/sisreq/internal/domain/repository"
)

// TxRunner executa uma função dentro de uma transação, com repositórios presos a ela.
// Garante atomicidade para o livro de estoque.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		materialRepo repository.MaterialRepository,
		movementRepo repository.StockMovementRepository,
		documentRepo repository.StockDocumentRepository,
	) error) error
}

// StockSheetGenerator gera a planilha da posição de estoque de uma unidade.
type StockSheetGenerator interface {
	GenerateStockSheet(ctx context.Context, unit *entity.Unit, materials []*entity.Material, generatedAt time.Time) ([]byte, error)
}
