package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/limpcred/limpcred-api/internal/domain"
	"github.com/limpcred/limpcred-api/internal/domain/entity"
)

// BootstrapInput primeira empresa e seu administrador.
type BootstrapInput struct {
	RazaoSocial string
	CNPJ        string
	AdminNome   string
	AdminEmail  string
	Password    string
}

// Bootstrap cria a primeira empresa e o admin numa transação. É idempotente:
// com o CNPJ e o email já cadastrados só garante o vínculo de admin.
func Bootstrap(ctx context.Context, tx CadastroTxRunner, in BootstrapInput) (*entity.Empresa, *entity.Usuario, error) {
	cnpj := onlyDigits(in.CNPJ)
	email := normalizeEmail(in.AdminEmail)
	if len(cnpj) != 14 || strings.TrimSpace(in.RazaoSocial) == "" || email == "" || len(in.Password) < 8 {
		return nil, nil, fmt.Errorf("%w: razão social, CNPJ (14 dígitos), email e senha (8+) obrigatórios", domain.ErrInvalidInput)
	}
	now := time.Now()
	var empresa *entity.Empresa
	var admin *entity.Usuario
	err := tx.RunCadastro(ctx, func(r CadastroRepos) error {
		var err error
		empresa, err = r.Empresas.GetByCNPJ(ctx, cnpj)
		if err != nil {
			return err
		}
		if empresa == nil {
			empresa = &entity.Empresa{
				ID:          uuid.New().String(),
				RazaoSocial: strings.TrimSpace(in.RazaoSocial),
				CNPJ:        cnpj,
				Status:      entity.StatusAtivo,
				CreatedAt:   now,
				UpdatedAt:   now,
			}
			if err := r.Empresas.Create(ctx, empresa); err != nil {
				return err
			}
		}

		admin, err = r.Usuarios.GetByEmail(ctx, email)
		if err != nil {
			return err
		}
		if admin == nil {
			hash, err := HashPassword(in.Password)
			if err != nil {
				return err
			}
			admin = &entity.Usuario{
				ID:           uuid.New().String(),
				EmpresaID:    empresa.ID,
				Nome:         strings.TrimSpace(in.AdminNome),
				Email:        email,
				PasswordHash: hash,
				Tipo:         entity.RoleAdmin,
				Status:       entity.StatusAtivo,
				CreatedAt:    now,
				UpdatedAt:    now,
			}
			if err := r.Usuarios.Create(ctx, admin); err != nil {
				return err
			}
		} else if admin.Tipo != entity.RoleAdmin {
			return fmt.Errorf("%w: %s já existe e não é admin", domain.ErrConflict, email)
		}

		ok, err := r.Empresas.IsAdminOf(ctx, admin.ID, empresa.ID)
		if err != nil || ok {
			return err
		}
		return r.Empresas.AddAdmin(ctx, admin.ID, empresa.ID)
	})
	if err != nil {
		return nil, nil, err
	}
	return empresa, admin, nil
}
