package usecase

import (
	"context"

	"github.com/limpcred/limpcred-api/internal/domain/repository"
)

// CadastroRepos repositórios de cadastro atados à mesma transação.
type CadastroRepos struct {
	Empresas repository.EmpresaRepository
	Usuarios repository.UsuarioRepository
}

// CadastroTxRunner executa fn numa transação (empresa + vínculo de admin, usuário + empresa).
type CadastroTxRunner interface {
	RunCadastro(ctx context.Context, fn func(r CadastroRepos) error) error
}
