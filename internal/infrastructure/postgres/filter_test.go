package postgres

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/limpcred/limpcred-api/internal/domain/repository"
)

func TestWhereBuilder(t *testing.T) {
	var w whereBuilder
	w.add("empresa_id = $%d", "e1")
	w.addSearch("ana", "nome", "documento")
	from := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	w.add("created_at >= $%d", from)

	q, args := w.page("SELECT id FROM clientes", "nome", repository.ListFilter{Limit: 10, Offset: 20})
	assert.Equal(t,
		"SELECT id FROM clientes WHERE empresa_id = $1 AND (nome ILIKE $2 OR documento ILIKE $2) AND created_at >= $3 ORDER BY nome LIMIT $4 OFFSET $5",
		q)
	assert.Equal(t, []any{"e1", "%ana%", from, 10, 20}, args)
}

func TestWhereBuilder_Empty(t *testing.T) {
	var w whereBuilder
	q, args := w.page("SELECT 1 FROM x", "id", repository.ListFilter{})
	assert.Equal(t, "SELECT 1 FROM x ORDER BY id LIMIT $1 OFFSET $2", q)
	assert.Equal(t, []any{50, 0}, args)
}
