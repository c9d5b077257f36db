package billing_test

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/limpcred/limpcred-api/internal/application/billing"
	"github.com/limpcred/limpcred-api/internal/domain"
	"github.com/limpcred/limpcred-api/internal/domain/entity"
	"github.com/limpcred/limpcred-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Banco em memória com rollback por snapshot
// ──────────────────────────────────────────────────────────────────────────────

type memDB struct {
	mu        sync.Mutex
	clientes  map[string]entity.Cliente
	processos map[string]entity.Processo
	faturas   map[string]entity.Fatura
	centros   map[string]entity.CentroCusto
	receitas  map[string]entity.Receita
	empresas  map[string]entity.Empresa

	// failFaturaAt faz a N-ésima inserção de fatura falhar (0 = nunca).
	failFaturaAt int
	faturaWrites int
}

var errInjected = errors.New("falha injetada")

func newMemDB() *memDB {
	return &memDB{
		clientes:  map[string]entity.Cliente{},
		processos: map[string]entity.Processo{},
		faturas:   map[string]entity.Fatura{},
		centros:   map[string]entity.CentroCusto{},
		receitas:  map[string]entity.Receita{},
		empresas:  map[string]entity.Empresa{},
	}
}

func copyMap[K comparable, V any](m map[K]V) map[K]V {
	out := make(map[K]V, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

func (db *memDB) repos() billing.Repos {
	return billing.Repos{
		Clientes:     &memClientes{db},
		Processos:    &memProcessos{db},
		Faturas:      &memFaturas{db},
		CentrosCusto: &memCentros{db},
		Receitas:     &memReceitas{db},
	}
}

// RunBilling serializa as "transações" e restaura o snapshot em caso de erro.
type memTx struct {
	db   *memDB
	txMu sync.Mutex
}

func (t *memTx) RunBilling(ctx context.Context, fn func(r billing.Repos) error) error {
	t.txMu.Lock()
	defer t.txMu.Unlock()

	t.db.mu.Lock()
	snap := struct {
		p map[string]entity.Processo
		f map[string]entity.Fatura
		c map[string]entity.CentroCusto
		r map[string]entity.Receita
	}{copyMap(t.db.processos), copyMap(t.db.faturas), copyMap(t.db.centros), copyMap(t.db.receitas)}
	t.db.mu.Unlock()

	if err := fn(t.db.repos()); err != nil {
		t.db.mu.Lock()
		t.db.processos, t.db.faturas, t.db.centros, t.db.receitas = snap.p, snap.f, snap.c, snap.r
		t.db.mu.Unlock()
		return err
	}
	return nil
}

func (db *memDB) receitasList() []entity.Receita {
	db.mu.Lock()
	defer db.mu.Unlock()
	out := make([]entity.Receita, 0, len(db.receitas))
	for _, r := range db.receitas {
		out = append(out, r)
	}
	return out
}

func (db *memDB) faturasOf(processoID string) []entity.Fatura {
	db.mu.Lock()
	defer db.mu.Unlock()
	var out []entity.Fatura
	for _, f := range db.faturas {
		if f.ProcessoID == processoID {
			out = append(out, f)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Parcela < out[j].Parcela })
	return out
}

// ── Clientes ─────────────────────────────────────────────────────────────────

type memClientes struct{ db *memDB }

func (r *memClientes) Create(_ context.Context, c *entity.Cliente) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	r.db.clientes[c.ID] = *c
	return nil
}

func (r *memClientes) GetByID(_ context.Context, id string) (*entity.Cliente, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	c, ok := r.db.clientes[id]
	if !ok {
		return nil, nil
	}
	return &c, nil
}

func (r *memClientes) GetByEmpresaAndDocumento(_ context.Context, empresaID, doc string) (*entity.Cliente, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	for _, c := range r.db.clientes {
		if c.EmpresaID == empresaID && c.Documento == doc {
			cc := c
			return &cc, nil
		}
	}
	return nil, nil
}

func (r *memClientes) List(_ context.Context, f repository.ListFilter) ([]*entity.Cliente, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	var out []*entity.Cliente
	for _, c := range r.db.clientes {
		if c.EmpresaID == f.EmpresaID && (f.VendedorID == "" || c.VendedorID == f.VendedorID) {
			cc := c
			out = append(out, &cc)
		}
	}
	return out, nil
}

func (r *memClientes) Update(ctx context.Context, c *entity.Cliente) error {
	return r.Create(ctx, c)
}

// ── Processos ────────────────────────────────────────────────────────────────

type memProcessos struct{ db *memDB }

func (r *memProcessos) Create(_ context.Context, p *entity.Processo) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	for _, existing := range r.db.processos {
		if existing.EmpresaID == p.EmpresaID && existing.Numero == p.Numero {
			return domain.ErrDuplicate
		}
	}
	r.db.processos[p.ID] = *p
	return nil
}

func (r *memProcessos) GetByID(_ context.Context, id string) (*entity.Processo, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	p, ok := r.db.processos[id]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

func (r *memProcessos) List(_ context.Context, f repository.ListFilter) ([]*entity.Processo, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	var out []*entity.Processo
	for _, p := range r.db.processos {
		if p.EmpresaID != f.EmpresaID || (f.VendedorID != "" && p.VendedorID != f.VendedorID) {
			continue
		}
		if f.Status != "" && string(p.Status) != f.Status {
			continue
		}
		pp := p
		out = append(out, &pp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Numero < out[j].Numero })
	return out, nil
}

func (r *memProcessos) LockNumbering(context.Context, string, int) error { return nil }

func (r *memProcessos) LatestNumero(_ context.Context, empresaID string, from, to time.Time) (string, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	var latest *entity.Processo
	for _, p := range r.db.processos {
		if p.EmpresaID != empresaID || p.CreatedAt.Before(from) || !p.CreatedAt.Before(to) {
			continue
		}
		if latest == nil || len(p.Numero) > len(latest.Numero) ||
			(len(p.Numero) == len(latest.Numero) && p.Numero > latest.Numero) {
			pp := p
			latest = &pp
		}
	}
	if latest == nil {
		return "", nil
	}
	return latest.Numero, nil
}

func (r *memProcessos) UpdateStatus(_ context.Context, id string, status entity.ProcessoStatus, at time.Time) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	p, ok := r.db.processos[id]
	if !ok {
		return domain.ErrNotFound
	}
	p.Status, p.UpdatedAt = status, at
	r.db.processos[id] = p
	return nil
}

func (r *memProcessos) UpdateArquivos(_ context.Context, id, contrato, comprovante string, at time.Time) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	p, ok := r.db.processos[id]
	if !ok {
		return domain.ErrNotFound
	}
	p.ContratoKey, p.ComprovanteKey, p.UpdatedAt = contrato, comprovante, at
	r.db.processos[id] = p
	return nil
}

// ── Faturas ──────────────────────────────────────────────────────────────────

type memFaturas struct{ db *memDB }

func (r *memFaturas) Create(_ context.Context, f *entity.Fatura) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	r.db.faturaWrites++
	if r.db.failFaturaAt > 0 && r.db.faturaWrites == r.db.failFaturaAt {
		return errInjected
	}
	r.db.faturas[f.ID] = *f
	return nil
}

func (r *memFaturas) GetByID(_ context.Context, id string) (*entity.Fatura, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	f, ok := r.db.faturas[id]
	if !ok {
		return nil, nil
	}
	return &f, nil
}

func (r *memFaturas) GetByIDForUpdate(ctx context.Context, id string) (*entity.Fatura, error) {
	return r.GetByID(ctx, id)
}

func (r *memFaturas) ListByProcesso(_ context.Context, processoID string) ([]*entity.Fatura, error) {
	var out []*entity.Fatura
	for _, f := range r.db.faturasOf(processoID) {
		ff := f
		out = append(out, &ff)
	}
	return out, nil
}

func (r *memFaturas) List(_ context.Context, f repository.ListFilter) ([]*entity.Fatura, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	var out []*entity.Fatura
	for _, fa := range r.db.faturas {
		if fa.EmpresaID != f.EmpresaID || (f.Status != "" && string(fa.Status) != f.Status) {
			continue
		}
		if f.VendedorID != "" && r.db.processos[fa.ProcessoID].VendedorID != f.VendedorID {
			continue
		}
		ff := fa
		out = append(out, &ff)
	}
	return out, nil
}

func (r *memFaturas) UpdateStatus(_ context.Context, f *entity.Fatura) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if _, ok := r.db.faturas[f.ID]; !ok {
		return domain.ErrNotFound
	}
	r.db.faturas[f.ID] = *f
	return nil
}

func (r *memFaturas) MarkOverdue(_ context.Context, empresaID string, today time.Time) (int64, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	var n int64
	for id, f := range r.db.faturas {
		if f.EmpresaID == empresaID && f.Status == entity.FaturaPendente && f.Vencimento.Before(today) {
			f.Status = entity.FaturaAtrasada
			r.db.faturas[id] = f
			n++
		}
	}
	return n, nil
}

// ── Centros de custo ─────────────────────────────────────────────────────────

type memCentros struct{ db *memDB }

func (r *memCentros) Create(_ context.Context, c *entity.CentroCusto) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	r.db.centros[c.ID] = *c
	return nil
}

func (r *memCentros) LockOwner(context.Context, string, string) error { return nil }

func (r *memCentros) GetByID(_ context.Context, id string) (*entity.CentroCusto, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	c, ok := r.db.centros[id]
	if !ok {
		return nil, nil
	}
	return &c, nil
}

func (r *memCentros) ListByUsuario(_ context.Context, empresaID, usuarioID string) ([]*entity.CentroCusto, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	var out []*entity.CentroCusto
	for _, c := range r.db.centros {
		if c.EmpresaID == empresaID && c.UsuarioID == usuarioID {
			cc := c
			out = append(out, &cc)
		}
	}
	return out, nil
}

func (r *memCentros) ListByEmpresa(_ context.Context, empresaID string) ([]*entity.CentroCusto, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	var out []*entity.CentroCusto
	for _, c := range r.db.centros {
		if c.EmpresaID == empresaID {
			cc := c
			out = append(out, &cc)
		}
	}
	return out, nil
}

func (r *memCentros) IncrementOrcamento(_ context.Context, id string, delta decimal.Decimal) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	c, ok := r.db.centros[id]
	if !ok {
		return domain.ErrNotFound
	}
	c.Orcamento = c.Orcamento.Add(delta)
	r.db.centros[id] = c
	return nil
}

func (r *memCentros) Update(ctx context.Context, c *entity.CentroCusto) error {
	return r.Create(ctx, c)
}

// ── Receitas ─────────────────────────────────────────────────────────────────

type memReceitas struct{ db *memDB }

func (r *memReceitas) Create(_ context.Context, rc *entity.Receita) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if rc.FaturaID != nil {
		for _, existing := range r.db.receitas {
			if existing.FaturaID != nil && *existing.FaturaID == *rc.FaturaID {
				return domain.ErrDuplicate
			}
		}
	}
	r.db.receitas[rc.ID] = *rc
	return nil
}

func (r *memReceitas) ExistsByFatura(_ context.Context, faturaID string) (bool, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	for _, rc := range r.db.receitas {
		if rc.FaturaID != nil && *rc.FaturaID == faturaID {
			return true, nil
		}
	}
	return false, nil
}

func (r *memReceitas) List(_ context.Context, f repository.ListFilter) ([]*entity.Receita, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	var out []*entity.Receita
	for _, rc := range r.db.receitas {
		if rc.EmpresaID == f.EmpresaID {
			rr := rc
			out = append(out, &rr)
		}
	}
	return out, nil
}

// ── Empresas (carnê) ─────────────────────────────────────────────────────────

type memEmpresas struct{ db *memDB }

func (r *memEmpresas) Create(_ context.Context, e *entity.Empresa) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	r.db.empresas[e.ID] = *e
	return nil
}

func (r *memEmpresas) GetByID(_ context.Context, id string) (*entity.Empresa, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	e, ok := r.db.empresas[id]
	if !ok {
		return nil, nil
	}
	return &e, nil
}

func (r *memEmpresas) GetByCNPJ(context.Context, string) (*entity.Empresa, error) { return nil, nil }
func (r *memEmpresas) Update(ctx context.Context, e *entity.Empresa) error { return r.Create(ctx, e) }
func (r *memEmpresas) List(context.Context, int, int) ([]*entity.Empresa, error) { return nil, nil }
func (r *memEmpresas) AddAdmin(context.Context, string, string) error { return nil }
func (r *memEmpresas) IsAdminOf(context.Context, string, string) (bool, error) { return true, nil }
func (r *memEmpresas) ListByAdmin(context.Context, string) ([]*entity.Empresa, error) {
	return nil, nil
}

var (
	_ repository.ClienteRepository     = (*memClientes)(nil)
	_ repository.ProcessoRepository    = (*memProcessos)(nil)
	_ repository.FaturaRepository      = (*memFaturas)(nil)
	_ repository.CentroCustoRepository = (*memCentros)(nil)
	_ repository.ReceitaRepository     = (*memReceitas)(nil)
	_ repository.EmpresaRepository     = (*memEmpresas)(nil)
	_ billing.TxRunner                 = (*memTx)(nil)
)
