// seed cria a primeira empresa e o administrador inicial.
//
// Uso: go run ./cmd/seed -razao "LimpCred Ltda" -cnpj 12345678000190 -nome Ana -email ana@exemplo.com -senha 'segredo123'
// A senha também pode vir de SEED_ADMIN_PASSWORD. Rodar de novo não duplica nada.
package main

import (
	"context"
	"flag"
	"os"
	"time"

	"github.com/limpcred/limpcred-api/internal/application/usecase"
	"github.com/limpcred/limpcred-api/internal/infrastructure/postgres"
	"github.com/limpcred/limpcred-api/pkg/config"
	"github.com/limpcred/limpcred-api/pkg/logger"
)

func main() {
	var in usecase.BootstrapInput
	flag.StringVar(&in.RazaoSocial, "razao", "", "razão social da empresa")
	flag.StringVar(&in.CNPJ, "cnpj", "", "CNPJ da empresa")
	flag.StringVar(&in.AdminNome, "nome", "Administrador", "nome do admin")
	flag.StringVar(&in.AdminEmail, "email", "", "email do admin")
	flag.StringVar(&in.Password, "senha", os.Getenv("SEED_ADMIN_PASSWORD"), "senha do admin")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		panic("carregar configuração: " + err.Error())
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel}).Named("seed")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexão com PostgreSQL")
	}
	defer pool.Close()

	empresa, admin, err := usecase.Bootstrap(ctx, postgres.NewTxRunner(pool), in)
	if err != nil {
		log.Fatal().Err(err).Msg("seed")
	}
	log.Info().
		Str("empresa_id", empresa.ID).
		Str("cnpj", empresa.CNPJ).
		Str("admin_id", admin.ID).
		Str("email", admin.Email).
		Msg("empresa e admin prontos")
}
