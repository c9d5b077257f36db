package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/limpcred/limpcred-api/internal/domain"
	"github.com/limpcred/limpcred-api/internal/domain/entity"
	"github.com/limpcred/limpcred-api/internal/domain/repository"
)

var (
	_ repository.NotificacaoRepository = (*NotificacaoRepo)(nil)
	_ repository.SuporteRepository     = (*SuporteRepo)(nil)
)

// NotificacaoRepo notificações in-app e tokens de push.
type NotificacaoRepo struct {
	q Querier
}

// NewNotificacaoRepository constrói o adaptador.
func NewNotificacaoRepository(q Querier) *NotificacaoRepo {
	return &NotificacaoRepo{q: q}
}

func (r *NotificacaoRepo) Create(ctx context.Context, n *entity.Notificacao) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO notificacoes (id, empresa_id, usuario_id, titulo, mensagem, tipo, lida, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		n.ID, n.EmpresaID, n.UsuarioID, n.Titulo, n.Mensagem, n.Tipo, n.Lida, n.CreatedAt)
	return mapError("insert notificacao", err)
}

func (r *NotificacaoRepo) ListByUsuario(ctx context.Context, usuarioID string, apenasNaoLidas bool, limit, offset int) ([]*entity.Notificacao, error) {
	limit, offset = pageArgs(limit, offset)
	rows, err := r.q.Query(ctx, `
		SELECT id, empresa_id, usuario_id, titulo, mensagem, tipo, lida, created_at
		FROM notificacoes
		WHERE usuario_id = $1 AND (NOT $2 OR lida = false)
		ORDER BY created_at DESC
		LIMIT $3 OFFSET $4`, usuarioID, apenasNaoLidas, limit, offset)
	if err != nil {
		return nil, mapError("list notificacoes", err)
	}
	defer rows.Close()
	var list []*entity.Notificacao
	for rows.Next() {
		var n entity.Notificacao
		if err := rows.Scan(&n.ID, &n.EmpresaID, &n.UsuarioID, &n.Titulo, &n.Mensagem, &n.Tipo, &n.Lida, &n.CreatedAt); err != nil {
			return nil, mapError("scan notificacao", err)
		}
		list = append(list, &n)
	}
	return list, mapError("list notificacoes", rows.Err())
}

// MarkRead marca como lida; só o destinatário consegue.
func (r *NotificacaoRepo) MarkRead(ctx context.Context, id, usuarioID string) error {
	tag, err := r.q.Exec(ctx, `UPDATE notificacoes SET lida = true WHERE id = $1 AND usuario_id = $2`, id, usuarioID)
	if err != nil {
		return mapError("mark notificacao lida", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// SaveToken registra (ou renova) o token de push do dispositivo.
func (r *NotificacaoRepo) SaveToken(ctx context.Context, t *entity.TokenNotificacao) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO tokens_notificacao (usuario_id, token, plataforma, updated_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (usuario_id, token) DO UPDATE SET plataforma = EXCLUDED.plataforma, updated_at = EXCLUDED.updated_at`,
		t.UsuarioID, t.Token, t.Plataforma, t.UpdatedAt)
	return mapError("save token", err)
}

// SuporteRepo mensagens de suporte.
type SuporteRepo struct {
	q Querier
}

// NewSuporteRepository constrói o adaptador.
func NewSuporteRepository(q Querier) *SuporteRepo {
	return &SuporteRepo{q: q}
}

const suporteColumns = `id, empresa_id, usuario_id, assunto, mensagem, status, resposta, created_at, updated_at`

func scanSuporte(row pgx.Row) (*entity.MensagemSuporte, error) {
	var m entity.MensagemSuporte
	if err := row.Scan(&m.ID, &m.EmpresaID, &m.UsuarioID, &m.Assunto, &m.Mensagem, &m.Status, &m.Resposta,
		&m.CreatedAt, &m.UpdatedAt); err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *SuporteRepo) Create(ctx context.Context, m *entity.MensagemSuporte) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO mensagens_suporte (`+suporteColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		m.ID, m.EmpresaID, m.UsuarioID, m.Assunto, m.Mensagem, m.Status, m.Resposta, m.CreatedAt, m.UpdatedAt)
	return mapError("insert suporte", err)
}

func (r *SuporteRepo) GetByID(ctx context.Context, id string) (*entity.MensagemSuporte, error) {
	m, err := scanSuporte(r.q.QueryRow(ctx, `SELECT `+suporteColumns+` FROM mensagens_suporte WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, mapError("get suporte", err)
	}
	return m, nil
}

func (r *SuporteRepo) List(ctx context.Context, f repository.ListFilter) ([]*entity.MensagemSuporte, error) {
	var w whereBuilder
	w.add("empresa_id = $%d", f.EmpresaID)
	if f.UsuarioID != "" {
		w.add("usuario_id = $%d", f.UsuarioID)
	}
	if f.Status != "" {
		w.add("status = $%d", f.Status)
	}
	query, args := w.page(`SELECT `+suporteColumns+` FROM mensagens_suporte`, "created_at DESC", f)
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, mapError("list suporte", err)
	}
	defer rows.Close()
	var list []*entity.MensagemSuporte
	for rows.Next() {
		m, err := scanSuporte(rows)
		if err != nil {
			return nil, mapError("scan suporte", err)
		}
		list = append(list, m)
	}
	return list, mapError("list suporte", rows.Err())
}

func (r *SuporteRepo) Update(ctx context.Context, m *entity.MensagemSuporte) error {
	_, err := r.q.Exec(ctx, `
		UPDATE mensagens_suporte SET status = $2, resposta = $3, updated_at = $4 WHERE id = $1`,
		m.ID, m.Status, m.Resposta, m.UpdatedAt)
	return mapError("update suporte", err)
}
