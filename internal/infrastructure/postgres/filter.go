package postgres

import (
	"fmt"
	"strings"

	"github.com/limpcred/limpcred-api/internal/domain/repository"
)

// whereBuilder monta cláusulas WHERE com placeholders posicionais.
type whereBuilder struct {
	conds []string
	args  []any
}

func (w *whereBuilder) add(cond string, arg any) {
	w.args = append(w.args, arg)
	w.conds = append(w.conds, fmt.Sprintf(cond, len(w.args)))
}

// addSearch aplica o mesmo termo ILIKE a várias colunas (OR).
func (w *whereBuilder) addSearch(term string, columns ...string) {
	w.args = append(w.args, escapeLike(term))
	pos := len(w.args)
	parts := make([]string, 0, len(columns))
	for _, c := range columns {
		parts = append(parts, fmt.Sprintf("%s ILIKE $%d", c, pos))
	}
	w.conds = append(w.conds, "("+strings.Join(parts, " OR ")+")")
}

func (w *whereBuilder) sql() string {
	if len(w.conds) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(w.conds, " AND ")
}

// page acrescenta ORDER BY/LIMIT/OFFSET e devolve a query final com os argumentos.
func (w *whereBuilder) page(base, orderBy string, f repository.ListFilter) (string, []any) {
	limit, offset := pageArgs(f.Limit, f.Offset)
	q := base + w.sql() + " ORDER BY " + orderBy +
		fmt.Sprintf(" LIMIT $%d OFFSET $%d", len(w.args)+1, len(w.args)+2)
	return q, append(w.args, limit, offset)
}
