package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/limpcred/limpcred-api/internal/application/billing"
	"github.com/limpcred/limpcred-api/internal/application/usecase"
)

var (
	_ billing.TxRunner         = (*TxRunner)(nil)
	_ usecase.CadastroTxRunner = (*TxRunner)(nil)
)

// TxRunner executa callbacks dentro de uma transação PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner constrói o runner com o pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// run abre a transação, executa fn e faz Commit; qualquer erro (ou panic) desfaz tudo.
func (r *TxRunner) run(ctx context.Context, fn func(tx pgx.Tx) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return mapError("begin transaction", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(tx); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return mapError("commit transaction", err)
	}
	return nil
}

// RunBilling executa fn com os repositórios de faturamento atados à mesma transação
// (criação de processo, pagamento de fatura).
func (r *TxRunner) RunBilling(ctx context.Context, fn func(repos billing.Repos) error) error {
	return r.run(ctx, func(tx pgx.Tx) error {
		return fn(billing.Repos{
			Clientes:     NewClienteRepository(tx),
			Processos:    NewProcessoRepository(tx),
			Faturas:      NewFaturaRepository(tx),
			CentrosCusto: NewCentroCustoRepository(tx),
			Receitas:     NewReceitaRepository(tx),
		})
	})
}

// RunCadastro executa fn com os repositórios de empresa e usuário na mesma transação
// (empresa nova + vínculo do admin, admin novo + vínculo).
func (r *TxRunner) RunCadastro(ctx context.Context, fn func(repos usecase.CadastroRepos) error) error {
	err := r.run(ctx, func(tx pgx.Tx) error {
		return fn(usecase.CadastroRepos{
			Empresas: NewEmpresaRepository(tx),
			Usuarios: NewUsuarioRepository(tx),
		})
	})
	if err != nil {
		return fmt.Errorf("cadastro: %w", err)
	}
	return nil
}
