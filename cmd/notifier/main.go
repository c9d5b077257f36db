// notifier consome os eventos de domínio do Kafka e grava as notificações dos usuários.
package main

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/limpcred/limpcred-api/internal/application/usecase"
	"github.com/limpcred/limpcred-api/internal/infrastructure/events"
	"github.com/limpcred/limpcred-api/internal/infrastructure/postgres"
	"github.com/limpcred/limpcred-api/pkg/config"
	"github.com/limpcred/limpcred-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("carregar configuração: " + err.Error())
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel}).Named("notifier")
	if !cfg.Kafka.Enabled() {
		log.Fatal().Msg("KAFKA_BROKERS não configurado")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexão com PostgreSQL")
	}
	defer pool.Close()

	notificacoes := usecase.NewNotificacaoUseCase(postgres.NewNotificacaoRepository(pool))
	consumer, err := events.NewConsumer(cfg.Kafka, notificacoes.HandleEvent, log)
	if err != nil {
		log.Fatal().Err(err).Msg("kafka consumer")
	}
	defer consumer.Close()

	log.Info().Strs("brokers", cfg.Kafka.Brokers).Str("topic", cfg.Kafka.Topic).Str("group", cfg.Kafka.GroupID).Msg("consumindo eventos")
	if err := consumer.Run(ctx); err != nil {
		log.Error().Err(err).Msg("consumer finalizado com erro")
		return
	}
	log.Info().Msg("notifier encerrado")
}
