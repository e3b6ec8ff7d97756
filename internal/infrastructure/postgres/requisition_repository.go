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

var _ repository.RequisitionRepository = (*RequisitionRepo)(nil)

const requisitionColumns = `id, prefeitura_id, secretaria_id, numero, solicitante_id, setor_id, status,
	observacao_solicitante, observacao_admin, aprovador_id, data_criacao, data_aprovacao, data_entrega`

// RequisitionRepo implementação de RequisitionRepository sobre PostgreSQL (usável com pool ou tx).
type RequisitionRepo struct {
	q Querier
}

// NewRequisitionRepository constrói o adaptador. Passar pool ou tx (Querier).
func NewRequisitionRepository(q Querier) *RequisitionRepo {
	return &RequisitionRepo{q: q}
}

func scanRequisition(row pgx.Row) (*entity.Requisition, error) {
	var req entity.Requisition
	err := row.Scan(
		&req.ID, &req.PrefeituraID, &req.SecretariaID, &req.Number, &req.RequesterID, &req.SetorID, &req.Status,
		&req.RequesterNote, &req.AdminNote, &req.ApproverID, &req.CreatedAt, &req.ApprovedAt, &req.DeliveredAt,
	)
	if err != nil {
		return nil, err
	}
	return &req, nil
}

// Create persiste o cabeçalho da requisição. O número é único.
func (r *RequisitionRepo) Create(ctx context.Context, req *entity.Requisition) error {
	query := `
		INSERT INTO requisicoes (` + requisitionColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`
	_, err := r.q.Exec(ctx, query,
		req.ID, req.PrefeituraID, req.SecretariaID, req.Number, req.RequesterID, req.SetorID, req.Status,
		req.RequesterNote, req.AdminNote, req.ApproverID, req.CreatedAt, req.ApprovedAt, req.DeliveredAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("número %s: %w", req.Number, domain.ErrDuplicate)
		}
		return fmt.Errorf("insert requisition: %w", err)
	}
	return nil
}

// AddItem insere o item somente se o material pertencer à unidade da requisição.
func (r *RequisitionRepo) AddItem(ctx context.Context, scope entity.Scope, item *entity.RequisitionItem) error {
	query := `
		INSERT INTO itens_requisicao (id, requisicao_id, material_id, quantidade_solicitada, quantidade_liberada)
		SELECT $1, q.id, m.id, $4, $5
		FROM requisicoes q
		JOIN materiais m ON m.prefeitura_id = q.prefeitura_id AND m.secretaria_id = q.secretaria_id
		WHERE q.id = $2 AND m.id = $3 AND q.prefeitura_id = $6 AND q.secretaria_id = $7`
	cmd, err := r.q.Exec(ctx, query,
		item.ID, item.RequisitionID, item.MaterialID, item.QuantityRequested, item.QuantityReleased,
		scope.PrefeituraID, scope.SecretariaID,
	)
	if err != nil {
		if isCheckViolation(err) {
			return fmt.Errorf("insert requisition item: %w", domain.ErrInvalidInput)
		}
		return fmt.Errorf("insert requisition item: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrScopeMismatch
	}
	return nil
}

func (r *RequisitionRepo) getOne(ctx context.Context, query string, args ...any) (*entity.Requisition, error) {
	req, err := scanRequisition(r.q.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get requisition: %w", err)
	}
	if err := r.loadItems(ctx, []*entity.Requisition{req}); err != nil {
		return nil, err
	}
	return req, nil
}

// GetByID obtém a requisição da unidade com itens e materiais. (nil, nil) se não existir.
func (r *RequisitionRepo) GetByID(ctx context.Context, scope entity.Scope, id string) (*entity.Requisition, error) {
	return r.getOne(ctx, `
		SELECT `+requisitionColumns+`
		FROM requisicoes WHERE id = $1 AND prefeitura_id = $2 AND secretaria_id = $3`,
		id, scope.PrefeituraID, scope.SecretariaID)
}

// GetForUpdate obtém a requisição e bloqueia sua linha até o fim da transação.
func (r *RequisitionRepo) GetForUpdate(ctx context.Context, scope entity.Scope, id string) (*entity.Requisition, error) {
	return r.getOne(ctx, `
		SELECT `+requisitionColumns+`
		FROM requisicoes WHERE id = $1 AND prefeitura_id = $2 AND secretaria_id = $3
		FOR UPDATE`,
		id, scope.PrefeituraID, scope.SecretariaID)
}

// loadItems carrega numa única consulta os itens (com material) das requisições informadas.
func (r *RequisitionRepo) loadItems(ctx context.Context, reqs []*entity.Requisition) error {
	if len(reqs) == 0 {
		return nil
	}
	byID := make(map[string]*entity.Requisition, len(reqs))
	ids := make([]string, 0, len(reqs))
	for _, req := range reqs {
		byID[req.ID] = req
		ids = append(ids, req.ID)
	}

	query := `
		SELECT i.id, i.requisicao_id, i.material_id, i.quantidade_solicitada, i.quantidade_liberada,
		       ` + prefixed("m", materialColumns) + `
		FROM itens_requisicao i
		JOIN materiais m ON m.id = i.material_id
		WHERE i.requisicao_id = ANY($1::uuid[])
		ORDER BY i.requisicao_id, i.ordem`
	rows, err := r.q.Query(ctx, query, ids)
	if err != nil {
		return fmt.Errorf("list requisition items: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var (
			it entity.RequisitionItem
			m  entity.Material
		)
		if err := rows.Scan(
			&it.ID, &it.RequisitionID, &it.MaterialID, &it.QuantityRequested, &it.QuantityReleased,
			&m.ID, &m.PrefeituraID, &m.SecretariaID, &m.Code, &m.Name, &m.Brand, &m.Category, &m.Description, &m.Unit,
			&m.QuantityOnHand, &m.MinimumQuantity, &m.Active, &m.CreatedAt, &m.UpdatedAt,
		); err != nil {
			return fmt.Errorf("scan requisition item: %w", err)
		}
		it.Material = &m
		if req, ok := byID[it.RequisitionID]; ok {
			req.Items = append(req.Items, it)
		}
	}
	return rows.Err()
}

// Update grava os campos mutáveis do cabeçalho (status, análise e entrega).
func (r *RequisitionRepo) Update(ctx context.Context, req *entity.Requisition) error {
	query := `
		UPDATE requisicoes
		SET status = $2, observacao_admin = $3, aprovador_id = $4, data_aprovacao = $5, data_entrega = $6
		WHERE id = $1`
	cmd, err := r.q.Exec(ctx, query,
		req.ID, req.Status, req.AdminNote, req.ApproverID, req.ApprovedAt, req.DeliveredAt,
	)
	if err != nil {
		return fmt.Errorf("update requisition: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// UpdateItemReleased grava a quantidade liberada; o CHECK garante 0 <= liberada <= solicitada.
func (r *RequisitionRepo) UpdateItemReleased(ctx context.Context, itemID string, released int) error {
	cmd, err := r.q.Exec(ctx,
		`UPDATE itens_requisicao SET quantidade_liberada = $2 WHERE id = $1`,
		itemID, released,
	)
	if err != nil {
		if isCheckViolation(err) {
			return fmt.Errorf("update requisition item: %w", domain.ErrInvalidInput)
		}
		return fmt.Errorf("update requisition item: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List lista as requisições da unidade, das mais recentes às mais antigas, com itens.
func (r *RequisitionRepo) List(ctx context.Context, scope entity.Scope, f repository.RequisitionFilter) ([]*entity.Requisition, error) {
	var w whereBuilder
	w.add("prefeitura_id = $%d", scope.PrefeituraID)
	w.add("secretaria_id = $%d", scope.SecretariaID)
	if f.Status != "" {
		w.add("status = $%d", f.Status)
	}
	if f.RequesterID != "" {
		w.add("solicitante_id = $%d", f.RequesterID)
	}
	if f.Search != "" {
		w.add("numero ILIKE '%%' || $%d || '%%'", f.Search)
	}
	if f.From != nil {
		w.add("data_criacao >= $%d", *f.From)
	}
	if f.To != nil {
		w.add("data_criacao <= $%d", *f.To)
	}
	query := `SELECT ` + requisitionColumns + ` FROM requisicoes` + w.sql() +
		` ORDER BY data_criacao DESC, numero DESC` + w.page(f.Limit, f.Offset)

	rows, err := r.q.Query(ctx, query, w.args...)
	if err != nil {
		return nil, fmt.Errorf("list requisitions: %w", err)
	}
	var list []*entity.Requisition
	for rows.Next() {
		req, err := scanRequisition(rows)
		if err != nil {
			rows.Close()
			return nil, fmt.Errorf("scan requisition: %w", err)
		}
		list = append(list, req)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list requisitions: %w", err)
	}
	if err := r.loadItems(ctx, list); err != nil {
		return nil, err
	}
	return list, nil
}
