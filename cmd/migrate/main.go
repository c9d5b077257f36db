// migrate aplica ou reverte as migrations embutidas.
//
// Uso: go run ./cmd/migrate [up|down|version]
package main

import (
	"fmt"
	"os"

	"github.com/limpcred/limpcred-api/internal/infrastructure/postgres"
	"github.com/limpcred/limpcred-api/pkg/config"
	"github.com/limpcred/limpcred-api/pkg/logger"
)

func main() {
	cmd := "up"
	if len(os.Args) > 1 {
		cmd = os.Args[1]
	}

	cfg, err := config.Load()
	if err != nil {
		panic("carregar configuração: " + err.Error())
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel})

	m, err := postgres.NewMigrator(cfg.DB.ConnectionString(), log)
	if err != nil {
		log.Fatal().Err(err).Msg("migrator")
	}
	defer m.Close()

	switch cmd {
	case "up":
		err = m.Up()
	case "down":
		err = m.Down()
	case "version":
		var v uint
		var dirty bool
		v, dirty, err = m.Version()
		if err == nil {
			fmt.Printf("version=%d dirty=%t\n", v, dirty)
		}
	default:
		fmt.Fprintf(os.Stderr, "comando desconhecido %q (use up, down ou version)\n", cmd)
		os.Exit(2)
	}
	if err != nil {
		log.Fatal().Err(err).Str("cmd", cmd).Msg("migrations")
	}
}
