package postgres

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/limpcred/limpcred-api/internal/domain"
)

// Códigos SQLSTATE tratados explicitamente.
const (
	codeUniqueViolation     = "23505"
	codeForeignKeyViolation = "23503"
	codeCheckViolation      = "23514"
	codeUndefinedTable      = "42P01"
	codeUndefinedColumn     = "42703"
	codeCannotConnectNow    = "57P03"
	codeInvalidCatalog      = "3D000"
)

// isUniqueViolation verifica se um erro é uma violação de constraint único (23505).
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == codeUniqueViolation
	}
	return strings.Contains(err.Error(), codeUniqueViolation)
}

// mapError traduz erros do driver para a taxonomia de domínio, preservando o erro original na cadeia.
// Tabela ausente ou banco iniciando viram ErrSystemConfiguring (transitório, o cliente deve tentar de novo).
func mapError(op string, err error) error {
	if err == nil {
		return nil
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case codeUniqueViolation:
			return fmt.Errorf("%s: %w (%w)", op, domain.ErrDuplicate, err)
		case codeForeignKeyViolation, codeCheckViolation:
			return fmt.Errorf("%s: %w (%w)", op, domain.ErrInvalidInput, err)
		case codeUndefinedTable, codeUndefinedColumn, codeCannotConnectNow, codeInvalidCatalog:
			return fmt.Errorf("%s: %w (%w)", op, domain.ErrSystemConfiguring, err)
		}
		return fmt.Errorf("%s: %w", op, err)
	}
	var connErr *pgconn.ConnectError
	var netErr net.Error
	if errors.As(err, &connErr) || errors.As(err, &netErr) || errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%s: %w (%w)", op, domain.ErrUnavailable, err)
	}
	return fmt.Errorf("%s: %w", op, err)
}

// escapeLike escapa curingas do ILIKE para busca parcial literal.
func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return "%" + r.Replace(s) + "%"
}

// pageArgs aplica limites padrão de paginação.
func pageArgs(limit, offset int) (int, int) {
	if limit <= 0 || limit > 500 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}
