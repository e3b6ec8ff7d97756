package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/duarteol2000/sisreq/internal/domain"
	"github.com/duarteol2000/sisreq/internal/domain/entity"
	"github.com/duarteol2000/sisreq/internal/domain/repository"
)

var _ repository.MaterialRepository = (*MaterialRepo)(nil)

const materialColumns = `id, prefeitura_id, secretaria_id, codigo, nome, marca, categoria, descricao, unidade,
	quantidade_estoque, estoque_minimo, ativo, created_at, updated_at`

// MaterialRepo implementação de MaterialRepository sobre PostgreSQL (usável com pool ou tx).
type MaterialRepo struct {
	q Querier
}

// NewMaterialRepository constrói o adaptador. Passar pool ou tx (Querier).
func NewMaterialRepository(q Querier) *MaterialRepo {
	return &MaterialRepo{q: q}
}

func scanMaterial(row pgx.Row) (*entity.Material, error) {
	var m entity.Material
	err := row.Scan(
		&m.ID, &m.PrefeituraID, &m.SecretariaID, &m.Code, &m.Name, &m.Brand, &m.Category, &m.Description, &m.Unit,
		&m.QuantityOnHand, &m.MinimumQuantity, &m.Active, &m.CreatedAt, &m.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// Create persiste um material. (unidade, código) é único.
func (r *MaterialRepo) Create(ctx context.Context, m *entity.Material) error {
	query := `
		INSERT INTO materiais (` + materialColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`
	_, err := r.q.Exec(ctx, query,
		m.ID, m.PrefeituraID, m.SecretariaID, m.Code, m.Name, m.Brand, m.Category, m.Description, m.Unit,
		m.QuantityOnHand, m.MinimumQuantity, m.Active, m.CreatedAt, m.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		if isCheckViolation(err) {
			return fmt.Errorf("insert material: %w", domain.ErrInvalidInput)
		}
		return fmt.Errorf("insert material: %w", err)
	}
	return nil
}

func (r *MaterialRepo) getOne(ctx context.Context, query string, args ...any) (*entity.Material, error) {
	m, err := scanMaterial(r.q.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get material: %w", err)
	}
	return m, nil
}

// GetByID obtém um material da unidade. (nil, nil) se não existir.
func (r *MaterialRepo) GetByID(ctx context.Context, scope entity.Scope, id string) (*entity.Material, error) {
	return r.getOne(ctx, `
		SELECT `+materialColumns+`
		FROM materiais WHERE id = $1 AND prefeitura_id = $2 AND secretaria_id = $3`,
		id, scope.PrefeituraID, scope.SecretariaID)
}

// GetForUpdate obtém o material e bloqueia a linha até o fim da transação (SELECT FOR UPDATE).
func (r *MaterialRepo) GetForUpdate(ctx context.Context, scope entity.Scope, id string) (*entity.Material, error) {
	return r.getOne(ctx, `
		SELECT `+materialColumns+`
		FROM materiais WHERE id = $1 AND prefeitura_id = $2 AND secretaria_id = $3
		FOR UPDATE`,
		id, scope.PrefeituraID, scope.SecretariaID)
}

func (r *MaterialRepo) list(ctx context.Context, query string, args ...any) ([]*entity.Material, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list materials: %w", err)
	}
	defer rows.Close()
	var list []*entity.Material
	for rows.Next() {
		m, err := scanMaterial(rows)
		if err != nil {
			return nil, fmt.Errorf("scan material: %w", err)
		}
		list = append(list, m)
	}
	return list, rows.Err()
}

// ListByIDs devolve os materiais da unidade cujos IDs estão em ids.
func (r *MaterialRepo) ListByIDs(ctx context.Context, scope entity.Scope, ids []string) ([]*entity.Material, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	return r.list(ctx, `
		SELECT `+materialColumns+`
		FROM materiais
		WHERE prefeitura_id = $1 AND secretaria_id = $2 AND id = ANY($3::uuid[])
		ORDER BY nome, codigo`,
		scope.PrefeituraID, scope.SecretariaID, ids)
}

// ListRequestable devolve os materiais ativos e com saldo; ids vazio = todos.
func (r *MaterialRepo) ListRequestable(ctx context.Context, scope entity.Scope, ids []string) ([]*entity.Material, error) {
	query := `
		SELECT ` + materialColumns + `
		FROM materiais
		WHERE prefeitura_id = $1 AND secretaria_id = $2 AND ativo AND quantidade_estoque > 0`
	args := []any{scope.PrefeituraID, scope.SecretariaID}
	if len(ids) > 0 {
		query += ` AND id = ANY($3::uuid[])`
		args = append(args, ids)
	}
	return r.list(ctx, query+` ORDER BY nome, codigo`, args...)
}

// ListByScope lista os materiais da unidade ordenados por nome.
func (r *MaterialRepo) ListByScope(ctx context.Context, scope entity.Scope, onlyActive bool) ([]*entity.Material, error) {
	return r.list(ctx, `
		SELECT `+materialColumns+`
		FROM materiais
		WHERE prefeitura_id = $1 AND secretaria_id = $2 AND (ativo OR NOT $3)
		ORDER BY nome, codigo`,
		scope.PrefeituraID, scope.SecretariaID, onlyActive)
}

// UpdateQuantity grava o novo saldo (usado pelo livro de estoque e pela entrega).
func (r *MaterialRepo) UpdateQuantity(ctx context.Context, id string, quantityOnHand int) error {
	cmd, err := r.q.Exec(ctx,
		`UPDATE materiais SET quantidade_estoque = $2, updated_at = now() WHERE id = $1`,
		id, quantityOnHand,
	)
	if err != nil {
		if isCheckViolation(err) {
			return fmt.Errorf("update material quantity: %w", domain.ErrInvalidInput)
		}
		return fmt.Errorf("update material quantity: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
