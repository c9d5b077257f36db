package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/limpcred/limpcred-api/internal/application/analytics"
	"github.com/limpcred/limpcred-api/internal/application/auth"
	"github.com/limpcred/limpcred-api/internal/application/billing"
	"github.com/limpcred/limpcred-api/internal/application/ports"
	"github.com/limpcred/limpcred-api/internal/application/usecase"
	"github.com/limpcred/limpcred-api/internal/infrastructure/cache"
	"github.com/limpcred/limpcred-api/internal/infrastructure/cep"
	"github.com/limpcred/limpcred-api/internal/infrastructure/events"
	"github.com/limpcred/limpcred-api/internal/infrastructure/oauth"
	infrapdf "github.com/limpcred/limpcred-api/internal/infrastructure/pdf"
	"github.com/limpcred/limpcred-api/internal/infrastructure/postgres"
	"github.com/limpcred/limpcred-api/internal/infrastructure/storage"
	httpRouter "github.com/limpcred/limpcred-api/internal/interfaces/http"
	"github.com/limpcred/limpcred-api/pkg/config"
	"github.com/limpcred/limpcred-api/pkg/logger"
)

const swaggerFile = "./docs/swagger.json"

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("carregar configuração: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicação")

	loc := cfg.App.Location()
	ctx := context.Background()

	if cfg.DB.AutoMigrate {
		if err := migrateUp(cfg.DB, log); err != nil {
			log.Fatal().Err(err).Msg("migrations")
		}
	}

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexão com PostgreSQL")
	}
	defer pool.Close()

	empresaRepo := postgres.NewEmpresaRepository(pool)
	usuarioRepo := postgres.NewUsuarioRepository(pool)
	clienteRepo := postgres.NewClienteRepository(pool)
	processoRepo := postgres.NewProcessoRepository(pool)
	faturaRepo := postgres.NewFaturaRepository(pool)
	centroRepo := postgres.NewCentroCustoRepository(pool)
	receitaRepo := postgres.NewReceitaRepository(pool)
	despesaRepo := postgres.NewDespesaRepository(pool)
	contaRepo := postgres.NewContaBancariaRepository(pool)
	cartaoRepo := postgres.NewCartaoCreditoRepository(pool)
	notificacaoRepo := postgres.NewNotificacaoRepository(pool)
	suporteRepo := postgres.NewSuporteRepository(pool)
	dashboardRepo := postgres.NewDashboardRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	notificacaoUC := usecase.NewNotificacaoUseCase(notificacaoRepo)

	// Eventos: Kafka quando configurado; senão as notificações são gravadas no próprio processo.
	var publisher ports.EventPublisher
	var closePublisher func()
	if cfg.Kafka.Enabled() {
		producer, err := events.NewProducer(cfg.Kafka, log)
		if err != nil {
			log.Fatal().Err(err).Msg("kafka producer")
		}
		publisher, closePublisher = producer, producer.Close
		log.Info().Strs("brokers", cfg.Kafka.Brokers).Str("topic", cfg.Kafka.Topic).Msg("eventos via kafka")
	} else {
		dispatcher := events.NewLocalDispatcher(notificacaoUC.HandleEvent, log)
		publisher, closePublisher = dispatcher, dispatcher.Close
	}

	// Documentos (S3/MinIO) opcionais: sem storage as rotas respondem 503.
	var objectStorage ports.ObjectStorage
	if cfg.Storage.Enabled() {
		s3, err := storage.NewS3Storage(ctx, cfg.Storage, log)
		if err != nil {
			log.Fatal().Err(err).Msg("object storage")
		}
		if err := s3.EnsureBucket(ctx); err != nil {
			log.Warn().Err(err).Str("bucket", cfg.Storage.Bucket).Msg("bucket indisponível")
		}
		objectStorage = s3
	}

	var idempotency ports.IdempotencyStore
	if cfg.Redis.Enabled() {
		rdb, err := cache.NewRedisClient(ctx, cfg.Redis)
		if err != nil {
			log.Warn().Err(err).Msg("redis indisponível, Idempotency-Key desativado")
		} else {
			defer rdb.Close()
			idempotency = cache.NewRedisIdempotencyStore(rdb, "")
		}
	}

	var google ports.GoogleAuthenticator
	if provider := oauth.NewGoogleProvider(cfg.Google); provider != nil {
		google = provider
	}

	billingOpts := []billing.Option{
		billing.WithLocation(loc),
		billing.WithPublisher(publisher),
		billing.WithLogger(log),
	}
	clienteUC := usecase.NewClienteUseCase(clienteRepo)
	authUC := auth.NewAuthUseCase(usuarioRepo, empresaRepo, google, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	errs := httpRouter.NewErrorWriter(log)
	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
		BodyLimit:    cfg.HTTP.BodyLimitMB << 20,
		ErrorHandler: errs.FiberErrorHandler,
	})
	app.Use(recover.New())
	app.Use(httpRouter.RequestLogger(log))

	// Swagger UI: http://localhost:<port>/docs
	if _, err := os.Stat(swaggerFile); err == nil {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: swaggerFile,
			Path:     "docs",
			Title:    "LimpCred API",
		}))
	}

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:         authUC,
		EmpresaUC:      usecase.NewEmpresaUseCase(txRunner, empresaRepo),
		UsuarioUC:      usecase.NewUsuarioUseCase(usuarioRepo),
		ClienteUC:      clienteUC,
		DocumentoUC:    usecase.NewDocumentoUseCase(clienteUC, objectStorage),
		CreateProcesso: billing.NewCreateProcessoUseCase(txRunner, billingOpts...),
		ProcessoUC:     billing.NewProcessoUseCase(processoRepo, faturaRepo, billingOpts...),
		FaturaUC:       billing.NewFaturaUseCase(txRunner, faturaRepo, billingOpts...),
		CarneUC:        billing.NewCarneUseCase(empresaRepo, processoRepo, faturaRepo, infrapdf.NewMarotoCarneGenerator(loc)),
		FinanceiroUC:   usecase.NewFinanceiroUseCase(txRunner, centroRepo, receitaRepo, despesaRepo),
		ContaUC:        usecase.NewContaUseCase(contaRepo, cartaoRepo),
		DashboardUC:    analytics.NewDashboardUseCase(dashboardRepo, loc),
		ReportUC:       analytics.NewReportUseCase(processoRepo, faturaRepo, receitaRepo, despesaRepo, loc),
		CEPUC:          usecase.NewCEPUseCase(cep.NewViaCEPClient(cfg.CEP, log)),
		NotificacaoUC:  notificacaoUC,
		SuporteUC:      usecase.NewSuporteUseCase(suporteRepo),
		Idempotency:    idempotency,
		IdempotencyTTL: cfg.Redis.TTL,
		Errors:         errs,
		Logger:         log,
		Location:       loc,
		JWTSecret:      cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("sinal de desligamento recebido, encerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("desligamento do servidor")
	}
	closePublisher()

	log.Info().Msg("aplicação encerrada")
}

func migrateUp(cfg config.DBConfig, log *logger.Logger) error {
	m, err := postgres.NewMigrator(cfg.ConnectionString(), log)
	if err != nil {
		return err
	}
	defer m.Close()
	return m.Up()
}
