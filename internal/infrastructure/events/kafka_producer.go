// Package events publica e consome os eventos de domínio no Kafka.
package events

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/limpcred/limpcred-api/internal/application/ports"
	"github.com/limpcred/limpcred-api/pkg/config"
	"github.com/limpcred/limpcred-api/pkg/logger"
	"github.com/limpcred/limpcred-api/pkg/metrics"
)

var jsonMarshal = json.Marshal

const (
	queueSize    = 1000
	writeTimeout = 10 * time.Second
)

var _ ports.EventPublisher = (*Producer)(nil)

// KafkaWriter subconjunto de *kafka.Writer usado pelo Producer.
type KafkaWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// Producer publica eventos de forma assíncrona: Publish nunca bloqueia a requisição.
// Com a fila cheia o evento é descartado e registrado no log.
type Producer struct {
	writer    KafkaWriter
	events    chan ports.DomainEvent
	log       *logger.Logger
	closeChan chan struct{}
	done      chan struct{}
	closeOnce sync.Once
}

// NewProducer cria o writer para o tópico configurado e inicia o loop de envio.
func NewProducer(cfg config.KafkaConfig, log *logger.Logger) (*Producer, error) {
	if !cfg.Enabled() {
		return nil, errors.New("kafka: nenhum broker configurado")
	}
	w := &kafka.Writer{
		Addr:                   kafka.TCP(cfg.Brokers...),
		Topic:                  cfg.Topic,
		Balancer:               &kafka.Hash{},
		AllowAutoTopicCreation: true,
	}
	return newProducer(w, log, queueSize), nil
}

func newProducer(w KafkaWriter, log *logger.Logger, size int) *Producer {
	if log == nil {
		log = logger.Nop()
	}
	p := &Producer{
		writer:    w,
		events:    make(chan ports.DomainEvent, size),
		log:       log.Named("kafka_producer"),
		closeChan: make(chan struct{}),
		done:      make(chan struct{}),
	}
	go p.eventLoop()
	return p
}

// Publish enfileira o evento.
func (p *Producer) Publish(evt ports.DomainEvent) {
	select {
	case <-p.closeChan:
		p.log.Warn().Str("event_type", evt.Type).Msg("producer fechado, evento descartado")
		return
	default:
	}
	select {
	case p.events <- evt:
	default:
		metrics.EventosDescartados.Inc()
		p.log.Warn().
			Str("event_type", evt.Type).
			Str("entity_id", evt.EntityID).
			Msg("fila do kafka cheia, evento descartado")
	}
}

func (p *Producer) eventLoop() {
	defer close(p.done)
	for {
		select {
		case evt := <-p.events:
			p.send(evt)
		case <-p.closeChan:
			// esvazia o que já estava na fila
			for {
				select {
				case evt := <-p.events:
					p.send(evt)
				default:
					return
				}
			}
		}
	}
}

func (p *Producer) send(evt ports.DomainEvent) {
	value, err := jsonMarshal(evt)
	if err != nil {
		p.log.Error().Err(err).Str("event_type", evt.Type).Msg("falha ao serializar evento")
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), writeTimeout)
	defer cancel()
	err = p.writer.WriteMessages(ctx, kafka.Message{
		Key:     []byte(evt.EmpresaID),
		Value:   value,
		Headers: []kafka.Header{{Key: "type", Value: []byte(evt.Type)}},
	})
	if err != nil {
		p.log.Error().Err(err).
			Str("event_type", evt.Type).
			Str("entity_id", evt.EntityID).
			Msg("falha ao publicar evento")
		metrics.EventosDescartados.Inc()
	}
}

// Close para o loop depois de enviar os eventos pendentes e fecha o writer.
func (p *Producer) Close() {
	p.closeOnce.Do(func() {
		close(p.closeChan)
		<-p.done
		if err := p.writer.Close(); err != nil {
			p.log.Error().Err(err).Msg("falha ao fechar writer do kafka")
		}
	})
}
