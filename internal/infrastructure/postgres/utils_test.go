package postgres

import (
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestWhereBuilder(t *testing.T) {
	var w whereBuilder
	w.add("prefeitura_id = $%d", "p")
	w.add("numero ILIKE '%%' || $%d || '%%'", "A001")

	assert.Equal(t, " WHERE prefeitura_id = $1 AND numero ILIKE '%' || $2 || '%'", w.sql())
	assert.Equal(t, " LIMIT $3 OFFSET $4", w.page(50, 10))
	assert.Equal(t, []any{"p", "A001", 50, 10}, w.args)
}

func TestWhereBuilder_SemLimite(t *testing.T) {
	var w whereBuilder
	assert.Equal(t, "", w.sql())
	assert.Equal(t, " OFFSET $1", w.page(0, 0))
}

func TestPrefixed(t *testing.T) {
	assert.Equal(t, "m.id, m.nome, m.ativo", prefixed("m", "id, nome,\n\tativo"))
}

func TestErrorCodes(t *testing.T) {
	unique := fmt.Errorf("insert: %w", &pgconn.PgError{Code: "23505"})
	check := &pgconn.PgError{Code: "23514"}

	assert.True(t, isUniqueViolation(unique))
	assert.False(t, isCheckViolation(unique))
	assert.True(t, isCheckViolation(check))
	assert.False(t, isUniqueViolation(fmt.Errorf("outro")))
}
