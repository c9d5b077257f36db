package postgres

import (
	"embed"
	"errors"
	"fmt"
	"strings"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/pgx/v5" // registra o esquema pgx5://
	"github.com/golang-migrate/migrate/v4/source/iofs"

	"github.com/limpcred/limpcred-api/pkg/logger"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// Migrator aplica as migrations SQL embutidas no binário.
type Migrator struct {
	m   *migrate.Migrate
	log *logger.Logger
}

// NewMigrator cria o migrator para a connection string (postgres:// ou postgresql://).
func NewMigrator(databaseURL string, log *logger.Logger) (*Migrator, error) {
	src, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return nil, fmt.Errorf("migrations: fonte: %w", err)
	}
	m, err := migrate.NewWithSourceInstance("iofs", src, pgx5URL(databaseURL))
	if err != nil {
		return nil, mapError("migrations: conectar", err)
	}
	if log == nil {
		log = logger.Nop()
	}
	return &Migrator{m: m, log: log.Named("migrate")}, nil
}

// Up aplica todas as migrations pendentes. Sem mudanças não é erro.
func (m *Migrator) Up() error {
	err := m.m.Up()
	if errors.Is(err, migrate.ErrNoChange) {
		m.log.Info().Msg("nenhuma migration pendente")
		return nil
	}
	if err != nil {
		return fmt.Errorf("migrations up: %w", err)
	}
	v, dirty, _ := m.Version()
	m.log.Info().Uint("version", v).Bool("dirty", dirty).Msg("migrations aplicadas")
	return nil
}

// Down desfaz todas as migrations.
func (m *Migrator) Down() error {
	err := m.m.Down()
	if err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("migrations down: %w", err)
	}
	m.log.Warn().Msg("migrations revertidas")
	return nil
}

// Version devolve a versão atual; banco sem migrations devolve 0.
func (m *Migrator) Version() (uint, bool, error) {
	v, dirty, err := m.m.Version()
	if errors.Is(err, migrate.ErrNilVersion) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("migrations version: %w", err)
	}
	return v, dirty, nil
}

// Close libera fonte e conexão.
func (m *Migrator) Close() error {
	srcErr, dbErr := m.m.Close()
	return errors.Join(srcErr, dbErr)
}

func pgx5URL(databaseURL string) string {
	for _, prefix := range []string{"postgresql://", "postgres://"} {
		if strings.HasPrefix(databaseURL, prefix) {
			return "pgx5://" + strings.TrimPrefix(databaseURL, prefix)
		}
	}
	return databaseURL
}
