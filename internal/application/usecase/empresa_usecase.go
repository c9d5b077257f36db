package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/limpcred/limpcred-api/internal/application/dto"
	"github.com/limpcred/limpcred-api/internal/application/session"
	"github.com/limpcred/limpcred-api/internal/domain"
	"github.com/limpcred/limpcred-api/internal/domain/entity"
	"github.com/limpcred/limpcred-api/internal/domain/repository"
)

// EmpresaUseCase aplica regras de negócio para empresas (casos de uso).
type EmpresaUseCase struct {
	tx   CadastroTxRunner
	repo repository.EmpresaRepository
	now  func() time.Time
}

// NewEmpresaUseCase constrói o caso de uso com a porta de persistência.
func NewEmpresaUseCase(tx CadastroTxRunner, repo repository.EmpresaRepository) *EmpresaUseCase {
	return &EmpresaUseCase{tx: tx, repo: repo, now: time.Now}
}

// Create cria a empresa e a libera para o admin que a cadastrou, na mesma transação.
// Devolve domain.ErrDuplicate se o CNPJ já existir.
func (uc *EmpresaUseCase) Create(ctx context.Context, sess session.Session, in dto.CreateEmpresaRequest) (*dto.EmpresaResponse, error) {
	if err := sess.Require(entity.CapEmpresasGerenciar); err != nil {
		return nil, err
	}
	cnpj := onlyDigits(in.CNPJ)
	if len(cnpj) != 14 || strings.TrimSpace(in.RazaoSocial) == "" {
		return nil, domain.ErrInvalidInput
	}
	now := uc.now()
	empresa := &entity.Empresa{
		ID:           uuid.New().String(),
		RazaoSocial:  strings.TrimSpace(in.RazaoSocial),
		NomeFantasia: strings.TrimSpace(in.NomeFantasia),
		CNPJ:         cnpj,
		Email:        in.Email,
		Telefone:     in.Telefone,
		Endereco:     in.Endereco.ToEndereco(),
		Status:       entity.StatusAtivo,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	err := uc.tx.RunCadastro(ctx, func(r CadastroRepos) error {
		existing, err := r.Empresas.GetByCNPJ(ctx, cnpj)
		if err != nil {
			return err
		}
		if existing != nil {
			return domain.ErrDuplicate
		}
		if err := r.Empresas.Create(ctx, empresa); err != nil {
			return err
		}
		return r.Empresas.AddAdmin(ctx, sess.UserID, empresa.ID)
	})
	if err != nil {
		return nil, err
	}
	out := dto.FromEmpresa(empresa)
	return &out, nil
}

// GetByID obtém uma empresa que o admin pode selecionar.
func (uc *EmpresaUseCase) GetByID(ctx context.Context, sess session.Session, id string) (*dto.EmpresaResponse, error) {
	empresa, err := uc.load(ctx, sess, id)
	if err != nil {
		return nil, err
	}
	out := dto.FromEmpresa(empresa)
	return &out, nil
}

// List lista as empresas vinculadas ao admin.
func (uc *EmpresaUseCase) List(ctx context.Context, sess session.Session) ([]dto.EmpresaResponse, error) {
	if err := sess.Require(entity.CapEmpresasGerenciar); err != nil {
		return nil, err
	}
	list, err := uc.repo.ListByAdmin(ctx, sess.UserID)
	if err != nil {
		return nil, err
	}
	return fromEmpresas(list), nil
}

// Update atualiza os campos informados; vazios são ignorados.
func (uc *EmpresaUseCase) Update(ctx context.Context, sess session.Session, id string, in dto.UpdateEmpresaRequest) (*dto.EmpresaResponse, error) {
	empresa, err := uc.load(ctx, sess, id)
	if err != nil {
		return nil, err
	}
	if v := strings.TrimSpace(in.RazaoSocial); v != "" {
		empresa.RazaoSocial = v
	}
	if v := strings.TrimSpace(in.NomeFantasia); v != "" {
		empresa.NomeFantasia = v
	}
	if in.Email != "" {
		empresa.Email = in.Email
	}
	if in.Telefone != "" {
		empresa.Telefone = in.Telefone
	}
	if in.Endereco != nil {
		empresa.Endereco = in.Endereco.ToEndereco()
	}
	if in.Status != "" {
		empresa.Status = in.Status
	}
	empresa.UpdatedAt = uc.now()
	if err := uc.repo.Update(ctx, empresa); err != nil {
		return nil, err
	}
	out := dto.FromEmpresa(empresa)
	return &out, nil
}

// AddAdmin libera a empresa para outro usuário admin.
func (uc *EmpresaUseCase) AddAdmin(ctx context.Context, sess session.Session, empresaID string, in dto.AddAdminRequest) error {
	if _, err := uc.load(ctx, sess, empresaID); err != nil {
		return err
	}
	return uc.tx.RunCadastro(ctx, func(r CadastroRepos) error {
		admin, err := r.Usuarios.GetByID(ctx, in.AdminID)
		if err != nil {
			return err
		}
		if admin == nil {
			return domain.ErrUserNotFound
		}
		if admin.Tipo != entity.RoleAdmin {
			return domain.ErrInvalidInput
		}
		return r.Empresas.AddAdmin(ctx, admin.ID, empresaID)
	})
}

func (uc *EmpresaUseCase) load(ctx context.Context, sess session.Session, id string) (*entity.Empresa, error) {
	if err := sess.Require(entity.CapEmpresasGerenciar); err != nil {
		return nil, err
	}
	if id != sess.EmpresaID {
		ok, err := uc.repo.IsAdminOf(ctx, sess.UserID, id)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, domain.ErrNotFound
		}
	}
	empresa, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if empresa == nil {
		return nil, domain.ErrNotFound
	}
	return empresa, nil
}

func fromEmpresas(list []*entity.Empresa) []dto.EmpresaResponse {
	out := make([]dto.EmpresaResponse, 0, len(list))
	for _, e := range list {
		out = append(out, dto.FromEmpresa(e))
	}
	return out
}

func onlyDigits(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
