package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/duarteol2000/sisreq/internal/domain/entity"
	"github.com/duarteol2000/sisreq/internal/domain/repository"
)

var _ repository.UnitRepository = (*UnitRepo)(nil)

// UnitRepo leitura dos cadastros de prefeitura e secretaria.
type UnitRepo struct {
	q Querier
}

// NewUnitRepository constrói o adaptador.
func NewUnitRepository(q Querier) *UnitRepo {
	return &UnitRepo{q: q}
}

// GetUnit devolve (nil, nil) se a secretaria não pertence à prefeitura ou não existe.
func (r *UnitRepo) GetUnit(ctx context.Context, scope entity.Scope) (*entity.Unit, error) {
	query := `
		SELECT p.id, s.id, p.nome, p.codigo_ibge, s.nome, s.sigla
		FROM secretarias s
		JOIN prefeituras p ON p.id = s.prefeitura_id
		WHERE p.id = $1 AND s.id = $2`
	var u entity.Unit
	err := r.q.QueryRow(ctx, query, scope.PrefeituraID, scope.SecretariaID).Scan(
		&u.PrefeituraID, &u.SecretariaID, &u.NomePrefeitura, &u.CodigoIBGE, &u.NomeSecretaria, &u.SiglaSecretaria,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get unit: %w", err)
	}
	return &u, nil
}
