package events

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/segmentio/kafka-go"

	"github.com/limpcred/limpcred-api/internal/application/ports"
	"github.com/limpcred/limpcred-api/pkg/config"
	"github.com/limpcred/limpcred-api/pkg/logger"
)

// KafkaReader subconjunto de *kafka.Reader usado pelo Consumer.
type KafkaReader interface {
	FetchMessage(ctx context.Context) (kafka.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// Handler processa um evento. Erro mantém a mensagem sem commit.
type Handler func(ctx context.Context, evt ports.DomainEvent) error

// Consumer lê o tópico de eventos num grupo de consumidores.
type Consumer struct {
	reader  KafkaReader
	log     *logger.Logger
	handler Handler
}

// NewConsumer cria o reader do grupo configurado.
func NewConsumer(cfg config.KafkaConfig, handler Handler, log *logger.Logger) (*Consumer, error) {
	if !cfg.Enabled() {
		return nil, errors.New("kafka: nenhum broker configurado")
	}
	r := kafka.NewReader(kafka.ReaderConfig{
		Brokers: cfg.Brokers,
		GroupID: cfg.GroupID,
		Topic:   cfg.Topic,
		Dialer:  kafka.DefaultDialer,
	})
	return newConsumer(r, handler, log), nil
}

func newConsumer(r KafkaReader, handler Handler, log *logger.Logger) *Consumer {
	if log == nil {
		log = logger.Nop()
	}
	return &Consumer{reader: r, handler: handler, log: log.Named("kafka_consumer")}
}

// Run consome até o contexto ser cancelado.
func (c *Consumer) Run(ctx context.Context) error {
	for {
		msg, err := c.reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			if errors.Is(err, context.Canceled) {
				return nil
			}
			c.log.Error().Err(err).Msg("falha ao ler mensagem")
			continue
		}

		var evt ports.DomainEvent
		if err := json.Unmarshal(msg.Value, &evt); err != nil {
			// mensagem inválida nunca vai ser processada: commit para não travar a partição
			c.log.Error().Err(err).Bytes("value", msg.Value).Msg("evento inválido descartado")
			c.commit(ctx, msg, "")
			continue
		}

		if err := c.handler(ctx, evt); err != nil {
			c.log.Error().Err(err).Str("event_type", evt.Type).Str("entity_id", evt.EntityID).Msg("falha ao tratar evento")
			continue
		}
		c.commit(ctx, msg, evt.Type)
	}
}

func (c *Consumer) commit(ctx context.Context, msg kafka.Message, eventType string) {
	if err := c.reader.CommitMessages(ctx, msg); err != nil && ctx.Err() == nil {
		c.log.Error().Err(err).Str("event_type", eventType).Msg("falha no commit da mensagem")
	}
}

// Close fecha o reader.
func (c *Consumer) Close() {
	if err := c.reader.Close(); err != nil {
		c.log.Error().Err(err).Msg("falha ao fechar reader do kafka")
	}
}
