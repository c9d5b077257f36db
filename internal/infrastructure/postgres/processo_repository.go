package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/limpcred/limpcred-api/internal/domain"
	"github.com/limpcred/limpcred-api/internal/domain/entity"
	"github.com/limpcred/limpcred-api/internal/domain/repository"
)

var _ repository.ProcessoRepository = (*ProcessoRepo)(nil)

// ProcessoRepo implementação de ProcessoRepository (usável com pool ou tx).
type ProcessoRepo struct {
	q Querier
}

// NewProcessoRepository constrói o adaptador. Passar pool ou tx (Querier).
func NewProcessoRepository(q Querier) *ProcessoRepo {
	return &ProcessoRepo{q: q}
}

const processoColumns = `id, empresa_id, numero, tipo, cliente_id, cliente_nome, cliente_documento, vendedor_id,
	status, valor_total, valor_entrada, parcelas, data_garantia, contrato_key, comprovante_key, created_at, updated_at`

func scanProcesso(row pgx.Row) (*entity.Processo, error) {
	var p entity.Processo
	var status string
	err := row.Scan(&p.ID, &p.EmpresaID, &p.Numero, &p.Tipo, &p.ClienteID, &p.ClienteNome, &p.ClienteDoc,
		&p.VendedorID, &status, &p.ValorTotal, &p.ValorEntrada, &p.Parcelas, &p.DataGarantia,
		&p.ContratoKey, &p.ComprovanteKey, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	p.Status = entity.ProcessoStatus(status)
	return &p, nil
}

// Create persiste o processo. Número repetido na empresa vira ErrDuplicate.
func (r *ProcessoRepo) Create(ctx context.Context, p *entity.Processo) error {
	query := `
		INSERT INTO processos (` + processoColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)`
	_, err := r.q.Exec(ctx, query,
		p.ID, p.EmpresaID, p.Numero, p.Tipo, p.ClienteID, p.ClienteNome, p.ClienteDoc, p.VendedorID,
		string(p.Status), p.ValorTotal, p.ValorEntrada, p.Parcelas, p.DataGarantia,
		p.ContratoKey, p.ComprovanteKey, p.CreatedAt, p.UpdatedAt,
	)
	return mapError("insert processo", err)
}

// GetByID obtém um processo por ID.
func (r *ProcessoRepo) GetByID(ctx context.Context, id string) (*entity.Processo, error) {
	p, err := scanProcesso(r.q.QueryRow(ctx, `SELECT `+processoColumns+` FROM processos WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, mapError("get processo", err)
	}
	return p, nil
}

// List lista processos da empresa, mais recentes primeiro.
func (r *ProcessoRepo) List(ctx context.Context, f repository.ListFilter) ([]*entity.Processo, error) {
	var w whereBuilder
	w.add("empresa_id = $%d", f.EmpresaID)
	if f.VendedorID != "" {
		w.add("vendedor_id = $%d", f.VendedorID)
	}
	if f.Status != "" {
		w.add("status = $%d", f.Status)
	}
	if f.From != nil {
		w.add("created_at >= $%d", *f.From)
	}
	if f.To != nil {
		w.add("created_at < $%d", *f.To)
	}
	if f.Search != "" {
		w.addSearch(f.Search, "numero", "cliente_nome", "cliente_documento")
	}
	query, args := w.page(`SELECT `+processoColumns+` FROM processos`, "created_at DESC, numero DESC", f)

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, mapError("list processos", err)
	}
	defer rows.Close()
	var list []*entity.Processo
	for rows.Next() {
		p, err := scanProcesso(rows)
		if err != nil {
			return nil, mapError("scan processo", err)
		}
		list = append(list, p)
	}
	return list, mapError("list processos", rows.Err())
}

// LockNumbering pega um advisory lock transacional por (empresa, ano).
// Duas criações simultâneas na mesma empresa esperam uma pela outra até o commit.
func (r *ProcessoRepo) LockNumbering(ctx context.Context, empresaID string, year int) error {
	_, err := r.q.Exec(ctx, `SELECT pg_advisory_xact_lock(hashtext($1), $2)`, "processos:"+empresaID, year)
	return mapError("lock numeração", err)
}

// LatestNumero devolve o maior número entre os processos da empresa criados em [from, to).
// Ordena pelo comprimento antes do texto para que PROC-2026-10000 venha depois de PROC-2026-9999.
func (r *ProcessoRepo) LatestNumero(ctx context.Context, empresaID string, from, to time.Time) (string, error) {
	var numero string
	err := r.q.QueryRow(ctx, `
		SELECT numero FROM processos
		WHERE empresa_id = $1 AND created_at >= $2 AND created_at < $3
		ORDER BY length(numero) DESC, numero DESC
		LIMIT 1`, empresaID, from, to).Scan(&numero)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", nil
		}
		return "", mapError("último número", err)
	}
	return numero, nil
}

// UpdateStatus muda o andamento.
func (r *ProcessoRepo) UpdateStatus(ctx context.Context, id string, status entity.ProcessoStatus, updatedAt time.Time) error {
	tag, err := r.q.Exec(ctx, `UPDATE processos SET status = $2, updated_at = $3 WHERE id = $1`, id, string(status), updatedAt)
	if err != nil {
		return mapError("update processo status", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// UpdateArquivos grava as chaves de contrato e comprovante.
func (r *ProcessoRepo) UpdateArquivos(ctx context.Context, id, contratoKey, comprovanteKey string, updatedAt time.Time) error {
	tag, err := r.q.Exec(ctx, `
		UPDATE processos SET contrato_key = $2, comprovante_key = $3, updated_at = $4 WHERE id = $1`,
		id, contratoKey, comprovanteKey, updatedAt)
	if err != nil {
		return mapError("update processo arquivos", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
