package usecase_test

import (
	"context"
	"errors"
	"io"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/limpcred/limpcred-api/internal/application/billing"
	"github.com/limpcred/limpcred-api/internal/application/ports"
	"github.com/limpcred/limpcred-api/internal/application/usecase"
	"github.com/limpcred/limpcred-api/internal/domain"
	"github.com/limpcred/limpcred-api/internal/domain/entity"
	"github.com/limpcred/limpcred-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Cadastro: empresas e usuários
// ──────────────────────────────────────────────────────────────────────────────

type memEmpresas struct {
	mu       sync.Mutex
	empresas map[string]entity.Empresa
	admins   map[string]map[string]bool // admin → empresas
}

func newMemEmpresas() *memEmpresas {
	return &memEmpresas{empresas: map[string]entity.Empresa{}, admins: map[string]map[string]bool{}}
}

func (m *memEmpresas) Create(_ context.Context, e *entity.Empresa) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, x := range m.empresas {
		if x.CNPJ == e.CNPJ {
			return domain.ErrDuplicate
		}
	}
	m.empresas[e.ID] = *e
	return nil
}

func (m *memEmpresas) GetByID(_ context.Context, id string) (*entity.Empresa, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.empresas[id]
	if !ok {
		return nil, nil
	}
	return &e, nil
}

func (m *memEmpresas) GetByCNPJ(_ context.Context, cnpj string) (*entity.Empresa, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, e := range m.empresas {
		if e.CNPJ == cnpj {
			e := e
			return &e, nil
		}
	}
	return nil, nil
}

func (m *memEmpresas) Update(_ context.Context, e *entity.Empresa) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.empresas[e.ID] = *e
	return nil
}

func (m *memEmpresas) List(_ context.Context, _, _ int) ([]*entity.Empresa, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []*entity.Empresa{}
	for _, e := range m.empresas {
		e := e
		out = append(out, &e)
	}
	return out, nil
}

func (m *memEmpresas) AddAdmin(_ context.Context, adminID, empresaID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.admins[adminID] == nil {
		m.admins[adminID] = map[string]bool{}
	}
	m.admins[adminID][empresaID] = true
	return nil
}

func (m *memEmpresas) IsAdminOf(_ context.Context, adminID, empresaID string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.admins[adminID][empresaID], nil
}

func (m *memEmpresas) ListByAdmin(_ context.Context, adminID string) ([]*entity.Empresa, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []*entity.Empresa{}
	for id := range m.admins[adminID] {
		if e, ok := m.empresas[id]; ok {
			e := e
			out = append(out, &e)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].RazaoSocial < out[j].RazaoSocial })
	return out, nil
}

type memUsuarios struct {
	mu       sync.Mutex
	usuarios map[string]entity.Usuario
}

func newMemUsuarios() *memUsuarios { return &memUsuarios{usuarios: map[string]entity.Usuario{}} }

func (m *memUsuarios) Create(_ context.Context, u *entity.Usuario) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, x := range m.usuarios {
		if strings.EqualFold(x.Email, u.Email) {
			return domain.ErrEmailAlreadyExists
		}
	}
	m.usuarios[u.ID] = *u
	return nil
}

func (m *memUsuarios) GetByID(_ context.Context, id string) (*entity.Usuario, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.usuarios[id]
	if !ok {
		return nil, nil
	}
	return &u, nil
}

func (m *memUsuarios) GetByEmail(_ context.Context, email string) (*entity.Usuario, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.usuarios {
		if strings.EqualFold(u.Email, email) {
			u := u
			return &u, nil
		}
	}
	return nil, nil
}

// Update replica o COALESCE do banco: hash vazio mantém a senha.
func (m *memUsuarios) Update(_ context.Context, u *entity.Usuario) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	old, ok := m.usuarios[u.ID]
	if !ok {
		return domain.ErrUserNotFound
	}
	cp := *u
	if cp.PasswordHash == "" {
		cp.PasswordHash = old.PasswordHash
	}
	m.usuarios[u.ID] = cp
	return nil
}

func (m *memUsuarios) ListByEmpresa(_ context.Context, empresaID string, _, _ int) ([]*entity.Usuario, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []*entity.Usuario{}
	for _, u := range m.usuarios {
		if u.EmpresaID == empresaID {
			u := u
			out = append(out, &u)
		}
	}
	return out, nil
}

type cadastroTx struct {
	empresas *memEmpresas
	usuarios *memUsuarios
	calls    int
}

func (t *cadastroTx) RunCadastro(_ context.Context, fn func(r usecase.CadastroRepos) error) error {
	t.calls++
	return fn(usecase.CadastroRepos{Empresas: t.empresas, Usuarios: t.usuarios})
}

// ──────────────────────────────────────────────────────────────────────────────
// Clientes
// ──────────────────────────────────────────────────────────────────────────────

type memClientes struct {
	mu       sync.Mutex
	clientes map[string]entity.Cliente
}

func newMemClientes() *memClientes { return &memClientes{clientes: map[string]entity.Cliente{}} }

func (m *memClientes) Create(_ context.Context, c *entity.Cliente) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.clientes[c.ID] = *c
	return nil
}

func (m *memClientes) GetByID(_ context.Context, id string) (*entity.Cliente, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.clientes[id]
	if !ok {
		return nil, nil
	}
	return &c, nil
}

func (m *memClientes) GetByEmpresaAndDocumento(_ context.Context, empresaID, documento string) (*entity.Cliente, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, c := range m.clientes {
		if c.EmpresaID == empresaID && c.Documento == documento {
			c := c
			return &c, nil
		}
	}
	return nil, nil
}

func (m *memClientes) List(_ context.Context, f repository.ListFilter) ([]*entity.Cliente, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []*entity.Cliente{}
	for _, c := range m.clientes {
		if c.EmpresaID != f.EmpresaID || (f.VendedorID != "" && c.VendedorID != f.VendedorID) {
			continue
		}
		if f.Search != "" && !strings.Contains(strings.ToLower(c.Nome), strings.ToLower(f.Search)) && !strings.Contains(c.Documento, f.Search) {
			continue
		}
		c := c
		out = append(out, &c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Nome < out[j].Nome })
	return out, nil
}

func (m *memClientes) Update(_ context.Context, c *entity.Cliente) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.clientes[c.ID] = *c
	return nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Financeiro
// ──────────────────────────────────────────────────────────────────────────────

type memFinanceiro struct {
	mu       sync.Mutex
	centros  map[string]entity.CentroCusto
	receitas []entity.Receita
	despesas map[string]entity.Despesa

	// failIncrement faz o incremento de orçamento falhar.
	failIncrement bool
}

var errInjected = errors.New("falha injetada")

func newMemFinanceiro() *memFinanceiro {
	return &memFinanceiro{centros: map[string]entity.CentroCusto{}, despesas: map[string]entity.Despesa{}}
}

type memCentros struct{ db *memFinanceiro }

func (m memCentros) Create(_ context.Context, c *entity.CentroCusto) error {
	m.db.mu.Lock()
	defer m.db.mu.Unlock()
	m.db.centros[c.ID] = *c
	return nil
}

func (m memCentros) LockOwner(context.Context, string, string) error { return nil }

func (m memCentros) GetByID(_ context.Context, id string) (*entity.CentroCusto, error) {
	m.db.mu.Lock()
	defer m.db.mu.Unlock()
	c, ok := m.db.centros[id]
	if !ok {
		return nil, nil
	}
	return &c, nil
}

func (m memCentros) ListByUsuario(_ context.Context, empresaID, usuarioID string) ([]*entity.CentroCusto, error) {
	list, _ := m.ListByEmpresa(context.Background(), empresaID)
	out := []*entity.CentroCusto{}
	for _, c := range list {
		if c.UsuarioID == usuarioID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (m memCentros) ListByEmpresa(_ context.Context, empresaID string) ([]*entity.CentroCusto, error) {
	m.db.mu.Lock()
	defer m.db.mu.Unlock()
	out := []*entity.CentroCusto{}
	for _, c := range m.db.centros {
		if c.EmpresaID == empresaID {
			c := c
			out = append(out, &c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Nome < out[j].Nome })
	return out, nil
}

func (m memCentros) IncrementOrcamento(_ context.Context, id string, delta decimal.Decimal) error {
	m.db.mu.Lock()
	defer m.db.mu.Unlock()
	if m.db.failIncrement {
		return errInjected
	}
	c, ok := m.db.centros[id]
	if !ok {
		return domain.ErrNotFound
	}
	c.Orcamento = c.Orcamento.Add(delta)
	m.db.centros[id] = c
	return nil
}

func (m memCentros) Update(_ context.Context, c *entity.CentroCusto) error {
	m.db.mu.Lock()
	defer m.db.mu.Unlock()
	m.db.centros[c.ID] = *c
	return nil
}

type memReceitas struct{ db *memFinanceiro }

func (m memReceitas) Create(_ context.Context, r *entity.Receita) error {
	m.db.mu.Lock()
	defer m.db.mu.Unlock()
	m.db.receitas = append(m.db.receitas, *r)
	return nil
}

func (m memReceitas) ExistsByFatura(_ context.Context, faturaID string) (bool, error) {
	m.db.mu.Lock()
	defer m.db.mu.Unlock()
	for _, r := range m.db.receitas {
		if r.FaturaID != nil && *r.FaturaID == faturaID {
			return true, nil
		}
	}
	return false, nil
}

func (m memReceitas) List(_ context.Context, f repository.ListFilter) ([]*entity.Receita, error) {
	m.db.mu.Lock()
	defer m.db.mu.Unlock()
	out := []*entity.Receita{}
	for _, r := range m.db.receitas {
		if r.EmpresaID != f.EmpresaID || !inPeriod(r.Data, f) {
			continue
		}
		r := r
		out = append(out, &r)
	}
	return out, nil
}

type memDespesas struct{ db *memFinanceiro }

func (m memDespesas) Create(_ context.Context, d *entity.Despesa) error {
	m.db.mu.Lock()
	defer m.db.mu.Unlock()
	m.db.despesas[d.ID] = *d
	return nil
}

func (m memDespesas) GetByID(_ context.Context, id string) (*entity.Despesa, error) {
	m.db.mu.Lock()
	defer m.db.mu.Unlock()
	d, ok := m.db.despesas[id]
	if !ok {
		return nil, nil
	}
	return &d, nil
}

func (m memDespesas) List(_ context.Context, f repository.ListFilter) ([]*entity.Despesa, error) {
	m.db.mu.Lock()
	defer m.db.mu.Unlock()
	out := []*entity.Despesa{}
	for _, d := range m.db.despesas {
		if d.EmpresaID != f.EmpresaID || !inPeriod(d.Data, f) {
			continue
		}
		d := d
		out = append(out, &d)
	}
	return out, nil
}

func (m memDespesas) Delete(_ context.Context, id string) error {
	m.db.mu.Lock()
	defer m.db.mu.Unlock()
	if _, ok := m.db.despesas[id]; !ok {
		return domain.ErrNotFound
	}
	delete(m.db.despesas, id)
	return nil
}

func inPeriod(t time.Time, f repository.ListFilter) bool {
	if f.From != nil && t.Before(*f.From) {
		return false
	}
	if f.To != nil && !t.Before(*f.To) {
		return false
	}
	return true
}

// financeiroTx restaura centros e receitas quando fn falha.
type financeiroTx struct{ db *memFinanceiro }

func (t financeiroTx) RunBilling(_ context.Context, fn func(r billing.Repos) error) error {
	t.db.mu.Lock()
	centros := make(map[string]entity.CentroCusto, len(t.db.centros))
	for k, v := range t.db.centros {
		centros[k] = v
	}
	receitas := append([]entity.Receita(nil), t.db.receitas...)
	t.db.mu.Unlock()

	err := fn(billing.Repos{CentrosCusto: memCentros{t.db}, Receitas: memReceitas{t.db}})
	if err != nil {
		t.db.mu.Lock()
		t.db.centros, t.db.receitas = centros, receitas
		t.db.mu.Unlock()
	}
	return err
}

// ──────────────────────────────────────────────────────────────────────────────
// Contas, notificações e suporte
// ──────────────────────────────────────────────────────────────────────────────

type memContas struct {
	contas  map[string]entity.ContaBancaria
	cartoes map[string]entity.CartaoCredito
}

func newMemContas() *memContas {
	return &memContas{contas: map[string]entity.ContaBancaria{}, cartoes: map[string]entity.CartaoCredito{}}
}

type memContaRepo struct{ db *memContas }

func (m memContaRepo) Create(_ context.Context, c *entity.ContaBancaria) error {
	m.db.contas[c.ID] = *c
	return nil
}

func (m memContaRepo) GetByID(_ context.Context, id string) (*entity.ContaBancaria, error) {
	c, ok := m.db.contas[id]
	if !ok {
		return nil, nil
	}
	return &c, nil
}

func (m memContaRepo) ListByEmpresa(_ context.Context, empresaID string) ([]*entity.ContaBancaria, error) {
	out := []*entity.ContaBancaria{}
	for _, c := range m.db.contas {
		if c.EmpresaID == empresaID {
			c := c
			out = append(out, &c)
		}
	}
	return out, nil
}

func (m memContaRepo) Update(_ context.Context, c *entity.ContaBancaria) error {
	m.db.contas[c.ID] = *c
	return nil
}

func (m memContaRepo) Delete(_ context.Context, id string) error {
	delete(m.db.contas, id)
	return nil
}

type memCartaoRepo struct{ db *memContas }

func (m memCartaoRepo) Create(_ context.Context, c *entity.CartaoCredito) error {
	m.db.cartoes[c.ID] = *c
	return nil
}

func (m memCartaoRepo) GetByID(_ context.Context, id string) (*entity.CartaoCredito, error) {
	c, ok := m.db.cartoes[id]
	if !ok {
		return nil, nil
	}
	return &c, nil
}

func (m memCartaoRepo) ListByEmpresa(_ context.Context, empresaID string) ([]*entity.CartaoCredito, error) {
	out := []*entity.CartaoCredito{}
	for _, c := range m.db.cartoes {
		if c.EmpresaID == empresaID {
			c := c
			out = append(out, &c)
		}
	}
	return out, nil
}

func (m memCartaoRepo) Update(_ context.Context, c *entity.CartaoCredito) error {
	m.db.cartoes[c.ID] = *c
	return nil
}

func (m memCartaoRepo) Delete(_ context.Context, id string) error {
	delete(m.db.cartoes, id)
	return nil
}

type memNotificacoes struct {
	notificacoes []entity.Notificacao
	tokens       map[string]entity.TokenNotificacao
}

func (m *memNotificacoes) Create(_ context.Context, n *entity.Notificacao) error {
	m.notificacoes = append(m.notificacoes, *n)
	return nil
}

func (m *memNotificacoes) ListByUsuario(_ context.Context, usuarioID string, apenasNaoLidas bool, _, _ int) ([]*entity.Notificacao, error) {
	out := []*entity.Notificacao{}
	for _, n := range m.notificacoes {
		if n.UsuarioID == usuarioID && (!apenasNaoLidas || !n.Lida) {
			n := n
			out = append(out, &n)
		}
	}
	return out, nil
}

func (m *memNotificacoes) MarkRead(_ context.Context, id, usuarioID string) error {
	for i, n := range m.notificacoes {
		if n.ID == id && n.UsuarioID == usuarioID {
			m.notificacoes[i].Lida = true
			return nil
		}
	}
	return domain.ErrNotFound
}

func (m *memNotificacoes) SaveToken(_ context.Context, t *entity.TokenNotificacao) error {
	if m.tokens == nil {
		m.tokens = map[string]entity.TokenNotificacao{}
	}
	m.tokens[t.Token] = *t
	return nil
}

type memSuporte struct{ mensagens map[string]entity.MensagemSuporte }

func (m *memSuporte) Create(_ context.Context, s *entity.MensagemSuporte) error {
	if m.mensagens == nil {
		m.mensagens = map[string]entity.MensagemSuporte{}
	}
	m.mensagens[s.ID] = *s
	return nil
}

func (m *memSuporte) GetByID(_ context.Context, id string) (*entity.MensagemSuporte, error) {
	s, ok := m.mensagens[id]
	if !ok {
		return nil, nil
	}
	return &s, nil
}

func (m *memSuporte) List(_ context.Context, f repository.ListFilter) ([]*entity.MensagemSuporte, error) {
	out := []*entity.MensagemSuporte{}
	for _, s := range m.mensagens {
		if s.EmpresaID == f.EmpresaID && (f.UsuarioID == "" || s.UsuarioID == f.UsuarioID) {
			s := s
			out = append(out, &s)
		}
	}
	return out, nil
}

func (m *memSuporte) Update(_ context.Context, s *entity.MensagemSuporte) error {
	m.mensagens[s.ID] = *s
	return nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Adaptadores externos
// ──────────────────────────────────────────────────────────────────────────────

type fakeStorage struct {
	uploaded map[string]int64
	lastKey  string
}

func (s *fakeStorage) GenerateUploadURL(_ context.Context, key, _ string, ttl time.Duration) (string, time.Time, error) {
	s.lastKey = key
	return "https://s3.local/put/" + key, time.Now().Add(ttl), nil
}

func (s *fakeStorage) GenerateDownloadURL(_ context.Context, key string, ttl time.Duration) (string, time.Time, error) {
	s.lastKey = key
	return "https://s3.local/get/" + key, time.Now().Add(ttl), nil
}

func (s *fakeStorage) Upload(_ context.Context, key, _ string, body io.Reader, _ int64) error {
	n, err := io.Copy(io.Discard, body)
	if err != nil {
		return err
	}
	if s.uploaded == nil {
		s.uploaded = map[string]int64{}
	}
	s.uploaded[key] = n
	s.lastKey = key
	return nil
}

type fakeCEP struct {
	enderecos map[string]ports.EnderecoCEP
	err       error
	calledCEP string
}

func (f *fakeCEP) Lookup(ctx context.Context, cep string) (*ports.EnderecoCEP, error) {
	f.calledCEP = cep
	if _, ok := ctx.Deadline(); !ok {
		return nil, errors.New("consulta sem prazo")
	}
	if f.err != nil {
		return nil, f.err
	}
	e, ok := f.enderecos[cep]
	if !ok {
		return nil, ports.ErrCEPNotFound
	}
	return &e, nil
}

var (
	_ repository.EmpresaRepository       = (*memEmpresas)(nil)
	_ repository.UsuarioRepository       = (*memUsuarios)(nil)
	_ repository.ClienteRepository       = (*memClientes)(nil)
	_ repository.CentroCustoRepository   = memCentros{}
	_ repository.ReceitaRepository       = memReceitas{}
	_ repository.DespesaRepository       = memDespesas{}
	_ repository.ContaBancariaRepository = memContaRepo{}
	_ repository.CartaoCreditoRepository = memCartaoRepo{}
	_ repository.NotificacaoRepository   = (*memNotificacoes)(nil)
	_ repository.SuporteRepository       = (*memSuporte)(nil)
	_ usecase.CadastroTxRunner           = (*cadastroTx)(nil)
	_ billing.TxRunner                   = financeiroTx{}
	_ ports.ObjectStorage                = (*fakeStorage)(nil)
	_ ports.CEPService                   = (*fakeCEP)(nil)
)
