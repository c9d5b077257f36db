package events

import (
	"context"
	"sync"

	"github.com/limpcred/limpcred-api/internal/application/ports"
	"github.com/limpcred/limpcred-api/pkg/logger"
)

var _ ports.EventPublisher = (*LocalDispatcher)(nil)

// LocalDispatcher entrega os eventos ao handler no próprio processo, quando não há Kafka.
// Cada evento roda numa goroutine; Close espera as pendentes.
type LocalDispatcher struct {
	handler Handler
	log     *logger.Logger
	wg      sync.WaitGroup
}

// NewLocalDispatcher constrói o dispatcher.
func NewLocalDispatcher(handler Handler, log *logger.Logger) *LocalDispatcher {
	if log == nil {
		log = logger.Nop()
	}
	return &LocalDispatcher{handler: handler, log: log.Named("events")}
}

// Publish não bloqueia.
func (d *LocalDispatcher) Publish(evt ports.DomainEvent) {
	d.wg.Add(1)
	go func() {
		defer d.wg.Done()
		ctx, cancel := context.WithTimeout(context.Background(), writeTimeout)
		defer cancel()
		if err := d.handler(ctx, evt); err != nil {
			d.log.Error().Err(err).Str("type", evt.Type).Str("entity_id", evt.EntityID).Msg("falha ao tratar evento")
		}
	}()
}

// Close espera os eventos em andamento.
func (d *LocalDispatcher) Close() {
	d.wg.Wait()
}
